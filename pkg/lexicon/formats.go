package lexicon

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
)

// FileFormat identifies a lexicon source file kind.
type FileFormat int

const (
	FormatUnknown  FileFormat = iota
	FormatText                // one word per line
	FormatJSON                // {"word": "definition"}
	FormatSnapshot            // bbolt database holding an encoded snapshot
)

// FormatInfo contains metadata about a source format
type FormatInfo struct {
	Format      FileFormat
	Description string
	Extensions  []string
	MinSize     int64
}

var supportedFormats = map[FileFormat]FormatInfo{
	FormatText: {
		Format:      FormatText,
		Description: "Plain text word list",
		Extensions:  []string{".txt", ".lst"},
		MinSize:     0,
	},
	FormatJSON: {
		Format:      FormatJSON,
		Description: "JSON definitions",
		Extensions:  []string{".json"},
		MinSize:     2, // "{}"
	},
	FormatSnapshot: {
		Format:      FormatSnapshot,
		Description: "Lexicon snapshot database",
		Extensions:  []string{".db", ".bolt"},
		MinSize:     1,
	},
}

func (f FileFormat) String() string {
	if info, ok := supportedFormats[f]; ok {
		return info.Description
	}
	return "unknown"
}

// DetectFormat picks a format from the file extension. Unknown extensions are read as text.
func DetectFormat(filename string) FileFormat {
	ext := strings.ToLower(filepath.Ext(filename))
	for format, info := range supportedFormats {
		for _, e := range info.Extensions {
			if e == ext {
				return format
			}
		}
	}
	return FormatText
}

// ValidateFileFormat checks that filename exists and is large enough for format.
func ValidateFileFormat(filename string, format FileFormat) error {
	fileInfo, err := os.Stat(filename)
	if err != nil {
		return fmt.Errorf("failed to stat file %s: %w", filename, err)
	}
	if fileInfo.IsDir() {
		return fmt.Errorf("%s is a directory", filename)
	}
	info, ok := supportedFormats[format]
	if !ok {
		return fmt.Errorf("unknown format: %v", format)
	}
	if fileInfo.Size() < info.MinSize {
		return fmt.Errorf("file %s is too small (%d bytes) for format %s (minimum: %d bytes)",
			filename, fileInfo.Size(), info.Description, info.MinSize)
	}
	log.Debugf("Lexicon file %s validated as %s", filename, info.Description)
	return nil
}
