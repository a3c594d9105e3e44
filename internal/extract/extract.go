package extract

import (
	"strings"

	"github.com/dgallion1/briefpress/internal/notion"
)

// Line is one logical line of exported text plus its structural kind.
type Line struct {
	Kind notion.BlockType
	Text string
}

// Lines flattens an assembled block tree into text lines, visiting each block
// before its children (pre-order) so document order is preserved for the
// classifier downstream.
func Lines(blocks []*notion.Block) []Line {
	var out []Line
	for _, b := range blocks {
		walk(b, &out)
	}
	return out
}

func walk(b *notion.Block, out *[]Line) {
	if text, ok := render(b); ok {
		*out = append(*out, Line{Kind: b.Type, Text: text})
	}
	for _, child := range b.Children {
		walk(child, out)
	}
}

// render maps one block to its exported line. Code, media, dividers and
// unrecognized kinds are excluded from text export.
func render(b *notion.Block) (string, bool) {
	text := strings.TrimSpace(b.PlainText())
	if text == "" {
		return "", false
	}
	switch b.Type {
	case notion.TypeHeading1:
		return "# " + text, true
	case notion.TypeHeading2:
		return "## " + text, true
	case notion.TypeHeading3:
		return "### " + text, true
	case notion.TypeBulleted:
		return "- " + text, true
	case notion.TypeNumbered:
		// No running numbers across non-contiguous extraction; every item
		// carries the same generic ordinal marker.
		return "1. " + text, true
	case notion.TypeQuote:
		return "> " + text, true
	case notion.TypeToDo:
		if b.Checked {
			return "[x] " + text, true
		}
		return "[ ] " + text, true
	case notion.TypeParagraph, notion.TypeCallout, notion.TypeToggle:
		return text, true
	default:
		return "", false
	}
}
