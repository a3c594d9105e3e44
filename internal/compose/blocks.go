package compose

import (
	"regexp"
	"strings"

	"github.com/dgallion1/briefpress/internal/chunker"
	"github.com/dgallion1/briefpress/internal/notion"
	"github.com/dgallion1/briefpress/internal/section"
)

// Limits bounds serializer output against the destination's block model.
type Limits struct {
	BlockTextLimit int // max runes per block text payload
	BatchSize      int // max blocks per write request
}

// DefaultLimits matches the store's published caps with a text safety margin.
func DefaultLimits() Limits {
	return Limits{BlockTextLimit: chunker.DefaultLimit, BatchSize: 100}
}

var (
	numberedRe = regexp.MustCompile(`^\d+[.)]\s+`)
	keyValueRe = regexp.MustCompile(`^([A-Za-z][A-Za-z0-9 &/\-]{0,38}):\s+(\S.*)$`)
)

// Blocks serializes a reassembled brief into destination blocks: a heading
// per section, a divider between sections, and one block per body line with
// the kind sniffed from the line's prefix. Lines longer than the block text
// limit are chunked, one block per chunk.
func Blocks(doc section.Document, lim Limits) []notion.Block {
	if lim.BlockTextLimit <= 0 {
		lim.BlockTextLimit = chunker.DefaultLimit
	}
	var out []notion.Block
	for i, s := range doc.Sections {
		if i > 0 {
			out = append(out, notion.Block{Type: notion.TypeDivider})
		}
		out = append(out, textBlocks(notion.TypeHeading2, s.Key.Title, lim)...)
		for _, line := range strings.Split(s.Text, "\n") {
			line = strings.TrimSpace(line)
			if line == "" {
				continue
			}
			out = append(out, lineBlocks(line, lim)...)
		}
	}
	return out
}

// lineBlocks classifies one line by its marker prefix and wraps it.
func lineBlocks(line string, lim Limits) []notion.Block {
	switch {
	case strings.HasPrefix(line, "### "):
		return textBlocks(notion.TypeHeading3, line[4:], lim)
	case strings.HasPrefix(line, "## "):
		return textBlocks(notion.TypeHeading3, line[3:], lim)
	case strings.HasPrefix(line, "# "):
		return textBlocks(notion.TypeHeading2, line[2:], lim)
	case strings.HasPrefix(line, "- "):
		return textBlocks(notion.TypeBulleted, line[2:], lim)
	case strings.HasPrefix(line, "> "):
		return textBlocks(notion.TypeQuote, line[2:], lim)
	case strings.HasPrefix(line, "[x] "), strings.HasPrefix(line, "[X] "):
		return todoBlocks(line[4:], true, lim)
	case strings.HasPrefix(line, "[ ] "):
		return todoBlocks(line[4:], false, lim)
	case numberedRe.MatchString(line):
		// The generic ordinal marker is dropped; the destination renders its
		// own sequence numbers for numbered items.
		return textBlocks(notion.TypeNumbered, numberedRe.ReplaceAllString(line, ""), lim)
	}
	if m := keyValueRe.FindStringSubmatch(line); m != nil && len(strings.Fields(m[1])) <= 4 {
		return keyValueBlocks(m[1], m[2], lim)
	}
	return textBlocks(notion.TypeParagraph, line, lim)
}

// textBlocks wraps text into blocks of the given kind, one per chunk.
func textBlocks(t notion.BlockType, text string, lim Limits) []notion.Block {
	chunks := chunker.Split(text, lim.BlockTextLimit)
	out := make([]notion.Block, 0, len(chunks))
	for _, c := range chunks {
		out = append(out, notion.NewBlock(t, c.Text))
	}
	return out
}

func todoBlocks(text string, checked bool, lim Limits) []notion.Block {
	out := textBlocks(notion.TypeToDo, text, lim)
	for i := range out {
		out[i].Checked = checked
	}
	return out
}

// keyValueBlocks renders a short "Key: value" line as a two-span paragraph
// with the key emphasized. The bold label counts against the block limit, so
// the value is chunked against the remaining budget; continuation chunks are
// plain paragraphs.
func keyValueBlocks(key, value string, lim Limits) []notion.Block {
	label := key + ": "
	budget := lim.BlockTextLimit - len([]rune(label))
	if budget < 1 {
		// The label alone fills the block, so emphasis has no room; fall back
		// to the plain rendering of the whole line.
		return textBlocks(notion.TypeParagraph, key+": "+value, lim)
	}
	chunks := chunker.Split(value, budget)
	out := []notion.Block{{
		Type: notion.TypeParagraph,
		Rich: []notion.RichText{notion.BoldSpan(label), notion.Span(chunks[0].Text)},
	}}
	for _, c := range chunks[1:] {
		out = append(out, notion.NewBlock(notion.TypeParagraph, c.Text))
	}
	return out
}

// Batches groups blocks into write requests of at most size blocks each,
// preserving order. len(Batches(b, n)) == ceil(len(b)/n).
func Batches(blocks []notion.Block, size int) [][]notion.Block {
	if size <= 0 {
		size = 100
	}
	var out [][]notion.Block
	for len(blocks) > size {
		out = append(out, blocks[:size])
		blocks = blocks[size:]
	}
	if len(blocks) > 0 {
		out = append(out, blocks)
	}
	return out
}

// TextLength sums the span text of every block, in runes.
func TextLength(blocks []notion.Block) int {
	n := 0
	for i := range blocks {
		n += blocks[i].TextLength()
	}
	return n
}
