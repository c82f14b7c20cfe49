package lexicon

import (
	"bufio"
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/bastiangx/teny/internal/utils"
	"github.com/charmbracelet/log"
)

//go:embed data/base.txt
var baseList string

// Sources lists the optional files merged on top of the base list.
// Empty paths are skipped; missing files are logged and skipped.
type Sources struct {
	DefinitionsPath string
	WordListPath    string
	SnapshotPath    string
}

// BaseWords returns the embedded hand-curated word list.
func BaseWords() []string {
	words, _ := readWordList(strings.NewReader(baseList))
	return words
}

// NewBase returns a Lexicon holding only the embedded base list.
func NewBase() *Lexicon {
	return FromWords(BaseWords()...)
}

// Load builds a Lexicon from the base list and then every configured source, in order.
// Later sources only add entries.
func Load(src Sources) (*Lexicon, error) {
	lex := NewBase()
	log.Debugf("Base lexicon loaded: %d words", lex.Len())

	for _, path := range []string{src.DefinitionsPath, src.WordListPath, src.SnapshotPath} {
		if path == "" {
			continue
		}
		if _, err := os.Stat(path); err != nil {
			log.Infof("Lexicon source %s not found, skipping", path)
			continue
		}
		n, err := lex.LoadFile(path)
		if err != nil {
			return nil, err
		}
		log.Debugf("Lexicon source %s: %d entries", path, n)
	}
	return lex, nil
}

// LoadFile merges one file into l, picking the reader from its format.
func (l *Lexicon) LoadFile(path string) (int, error) {
	format := DetectFormat(path)
	if err := ValidateFileFormat(path, format); err != nil {
		return 0, err
	}
	switch format {
	case FormatSnapshot:
		return l.LoadSnapshotFile(path)
	}

	f, err := os.Open(path)
	if err != nil {
		return 0, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	switch format {
	case FormatJSON:
		return l.LoadDefinitions(f)
	default:
		return l.LoadWordList(f)
	}
}

// LoadDefinitions merges a JSON object of word → definition.
func (l *Lexicon) LoadDefinitions(r io.Reader) (int, error) {
	var defs map[string]string
	if err := json.NewDecoder(r).Decode(&defs); err != nil {
		return 0, fmt.Errorf("decode definitions: %w", err)
	}
	for w, d := range defs {
		l.Add(w, d)
	}
	return len(defs), nil
}

// LoadWordList merges a plain list, one word per line. Blank lines and # comments are skipped.
func (l *Lexicon) LoadWordList(r io.Reader) (int, error) {
	words, err := readWordList(r)
	if err != nil {
		return 0, err
	}
	n := 0
	for _, w := range words {
		if l.Add(w, "") {
			n++
		}
	}
	return n, nil
}

// WriteWordList writes every form, one per line, sorted.
func (l *Lexicon) WriteWordList(w io.Writer) error {
	bw := bufio.NewWriter(w)
	for _, word := range l.Forms() {
		if _, err := bw.WriteString(word + "\n"); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// WriteDefinitions writes the definitions map as indented JSON.
func (l *Lexicon) WriteDefinitions(w io.Writer) error {
	defs := make(map[string]string)
	for _, e := range l.Entries() {
		if e.Definition != "" {
			defs[e.Word] = e.Definition
		}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(defs)
}

func readWordList(r io.Reader) ([]string, error) {
	var words []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		words = append(words, strings.ToLower(line))
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read word list: %w", err)
	}
	return words, nil
}

// Export writes l to path as a word list, or as a definitions map when path
// ends in .json. Snapshots go through Save instead.
func (l *Lexicon) Export(path string) error {
	var buf bytes.Buffer
	var err error
	switch DetectFormat(path) {
	case FormatJSON:
		err = l.WriteDefinitions(&buf)
	case FormatSnapshot:
		return fmt.Errorf("export %s: snapshot format is written with Save", path)
	default:
		err = l.WriteWordList(&buf)
	}
	if err != nil {
		return fmt.Errorf("export %s: %w", path, err)
	}
	return utils.WriteFileAtomic(path, buf.Bytes())
}
