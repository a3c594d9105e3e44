package source

import (
	"bufio"
	"io"
	"strings"

	"github.com/dgallion1/briefpress/internal/notion"
)

// TextParser handles plain text files. Every non-blank line becomes its own
// block so the classifier sees the same line-oriented view it gets from the
// document store.
type TextParser struct{}

func (p *TextParser) Parse(r io.Reader, filename string) ([]*notion.Block, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	var blocks []*notion.Block
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		blocks = append(blocks, textLineBlock(line))
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return blocks, nil
}

// textLineBlock maps a raw text line to a block, honoring the markers the
// extractor itself emits so round-tripped text keeps its structure.
func textLineBlock(line string) *notion.Block {
	switch {
	case strings.HasPrefix(line, "### "):
		return heading(3, line[4:])
	case strings.HasPrefix(line, "## "):
		return heading(2, line[3:])
	case strings.HasPrefix(line, "# "):
		return heading(1, line[2:])
	case strings.HasPrefix(line, "- "), strings.HasPrefix(line, "* "):
		b := notion.NewBlock(notion.TypeBulleted, line[2:])
		return &b
	case strings.HasPrefix(line, "> "):
		b := notion.NewBlock(notion.TypeQuote, line[2:])
		return &b
	default:
		return paragraph(line)
	}
}
