package source

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/dgallion1/briefpress/internal/notion"
)

// Parser converts raw document bytes into the same block-tree shape the
// document store yields, so uploaded files run through the identical
// pipeline.
type Parser interface {
	Parse(r io.Reader, filename string) ([]*notion.Block, error)
}

// SupportedExtensions lists file extensions the upload path can handle.
var SupportedExtensions = map[string]bool{
	".txt":      true,
	".md":       true,
	".markdown": true,
	".html":     true,
	".htm":      true,
	".pdf":      true,
	".docx":     true,
}

// ForFile returns the appropriate parser for a filename.
func ForFile(filename string) (Parser, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".txt":
		return &TextParser{}, nil
	case ".md", ".markdown":
		return &MarkdownParser{}, nil
	case ".html", ".htm":
		return &HTMLParser{}, nil
	case ".pdf":
		return &PDFParser{}, nil
	case ".docx":
		return &DOCXParser{}, nil
	default:
		return nil, fmt.Errorf("unsupported file extension: %s", ext)
	}
}

// IsSupportedExtension checks if a file extension is supported.
func IsSupportedExtension(filename string) bool {
	ext := strings.ToLower(filepath.Ext(filename))
	return SupportedExtensions[ext]
}

func paragraph(text string) *notion.Block {
	b := notion.NewBlock(notion.TypeParagraph, text)
	return &b
}

func heading(level int, text string) *notion.Block {
	t := notion.TypeHeading3
	switch level {
	case 1:
		t = notion.TypeHeading1
	case 2:
		t = notion.TypeHeading2
	}
	b := notion.NewBlock(t, text)
	return &b
}
