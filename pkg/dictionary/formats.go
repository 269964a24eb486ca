package dictionary

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
)

// FileFormat represents the word list file formats we accept
type FileFormat int

const (
	FormatUnknown FileFormat = iota
	FormatText               // one word per line
	FormatList               // word list with ':' annotations
)

// FormatInfo contains metadata about a word list file format
type FormatInfo struct {
	Format      FileFormat
	Description string
	Extensions  []string
	MinSize     int64
}

var supportedFormats = map[FileFormat]FormatInfo{
	FormatText: {
		Format:      FormatText,
		Description: "Plain Text Word List",
		Extensions:  []string{".txt", ""},
		MinSize:     1,
	},
	FormatList: {
		Format:      FormatList,
		Description: "Annotated Word List",
		Extensions:  []string{".lst", ".dic"},
		MinSize:     1,
	},
}

// DetectFileFormat picks a format from the file extension.
func DetectFileFormat(filename string) FileFormat {
	ext := strings.ToLower(filepath.Ext(filename))
	for _, format := range []FileFormat{FormatText, FormatList} {
		for _, valid := range supportedFormats[format].Extensions {
			if ext == valid {
				return format
			}
		}
	}
	return FormatUnknown
}

// ValidateTextFile checks that filename is a readable, non-empty word list.
func ValidateTextFile(filename string) error {
	fileInfo, err := os.Stat(filename)
	if err != nil {
		return fmt.Errorf("failed to stat file %s: %w", filename, err)
	}
	if fileInfo.IsDir() {
		return fmt.Errorf("%s is a directory", filename)
	}

	format := DetectFileFormat(filename)
	if format == FormatUnknown {
		return fmt.Errorf("file %s has unsupported extension %s", filename, filepath.Ext(filename))
	}

	formatInfo, _ := GetFormatInfo(format)
	if fileInfo.Size() < formatInfo.MinSize {
		return fmt.Errorf("file %s is too small (%d bytes) for format %s (minimum: %d bytes)",
			filename, fileInfo.Size(), formatInfo.Description, formatInfo.MinSize)
	}

	file, err := os.Open(filename)
	if err != nil {
		return fmt.Errorf("failed to open file %s: %w", filename, err)
	}
	defer file.Close()

	buffer := make([]byte, 512)
	if _, err = file.Read(buffer); err != nil {
		return fmt.Errorf("failed to read from text file %s: %w", filename, err)
	}

	log.Debugf("Word list %s validated (%s)", filename, formatInfo.Description)
	return nil
}

// GetFormatInfo returns information about a specific format
func GetFormatInfo(format FileFormat) (FormatInfo, bool) {
	info, exists := supportedFormats[format]
	return info, exists
}
