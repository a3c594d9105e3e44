package source

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/dgallion1/briefpress/internal/notion"
	pdflib "github.com/ledongthuc/pdf"
)

// PDFParser handles PDF files.
type PDFParser struct{}

func (p *PDFParser) Parse(r io.Reader, filename string) ([]*notion.Block, error) {
	// ledongthuc/pdf requires a ReadSeeker+size, so we write to a temp file.
	tmp, err := os.CreateTemp("", "briefpress-pdf-*.pdf")
	if err != nil {
		return nil, fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)

	if _, err := io.Copy(tmp, r); err != nil {
		tmp.Close()
		return nil, fmt.Errorf("write temp file: %w", err)
	}
	tmp.Close()

	text, err := extractPDFText(tmpPath)
	if err != nil {
		return nil, fmt.Errorf("extract pdf text: %w", err)
	}

	var blocks []*notion.Block
	for _, page := range strings.Split(text, "\f") {
		for _, line := range strings.Split(page, "\n") {
			line = strings.TrimSpace(line)
			if line == "" {
				continue
			}
			blocks = append(blocks, textLineBlock(line))
		}
	}
	return blocks, nil
}

func extractPDFText(path string) (string, error) {
	f, reader, err := pdflib.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	var buf strings.Builder
	numPages := reader.NumPage()
	for i := 1; i <= numPages; i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			continue
		}
		if i > 1 {
			buf.WriteString("\f") // Form feed as page separator.
		}
		buf.WriteString(text)
	}
	return buf.String(), nil
}
