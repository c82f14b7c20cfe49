package ngram

import (
	"bufio"
	_ "embed"
	"fmt"
	"io"
	"os"
	"strings"
)

//go:embed data/corpus.txt
var seedCorpus string

// SeedCorpus returns the embedded training sentences.
func SeedCorpus() []string {
	sentences, _ := ReadCorpus(strings.NewReader(seedCorpus))
	return sentences
}

// NewSeeded returns a model of the given order trained on the seed corpus.
func NewSeeded(order int) (*Model, error) {
	m, err := New(order)
	if err != nil {
		return nil, err
	}
	m.Train(SeedCorpus())
	return m, nil
}

// ReadCorpus reads one sentence per line. Blank lines and # comments are skipped.
func ReadCorpus(r io.Reader) ([]string, error) {
	var out []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		out = append(out, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read corpus: %w", err)
	}
	return out, nil
}

// ReadCorpusFile reads a corpus file with ReadCorpus.
func ReadCorpusFile(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open corpus: %w", err)
	}
	defer f.Close()
	return ReadCorpus(f)
}
