package source

import (
	"bytes"
	"io"
	"strings"

	"github.com/dgallion1/briefpress/internal/notion"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// MarkdownParser handles Markdown files using goldmark.
type MarkdownParser struct{}

func (p *MarkdownParser) Parse(r io.Reader, filename string) ([]*notion.Block, error) {
	src, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	md := goldmark.New()
	reader := text.NewReader(src)
	doc := md.Parser().Parse(reader)

	var blocks []*notion.Block
	for n := doc.FirstChild(); n != nil; n = n.NextSibling() {
		blocks = append(blocks, blockNodes(n, src)...)
	}
	return blocks, nil
}

// blockNodes maps one top-level markdown AST node to document-store blocks.
func blockNodes(n ast.Node, src []byte) []*notion.Block {
	switch node := n.(type) {
	case *ast.Heading:
		if t := extractText(node, src); t != "" {
			return []*notion.Block{heading(node.Level, t)}
		}
		return nil

	case *ast.List:
		itemType := notion.TypeBulleted
		if node.IsOrdered() {
			itemType = notion.TypeNumbered
		}
		var out []*notion.Block
		for item := node.FirstChild(); item != nil; item = item.NextSibling() {
			if t := extractText(item, src); t != "" {
				b := notion.NewBlock(itemType, t)
				out = append(out, &b)
			}
		}
		return out

	case *ast.Blockquote:
		if t := extractText(node, src); t != "" {
			b := notion.NewBlock(notion.TypeQuote, t)
			return []*notion.Block{&b}
		}
		return nil

	case *ast.FencedCodeBlock, *ast.CodeBlock:
		// Code is excluded from text export anyway; represent it faithfully
		// so extraction drops it in one place.
		if t := extractText(n, src); t != "" {
			b := notion.NewBlock(notion.TypeCode, t)
			return []*notion.Block{&b}
		}
		return nil

	case *ast.ThematicBreak:
		return []*notion.Block{{Type: notion.TypeDivider}}

	default:
		if t := extractText(n, src); t != "" {
			return []*notion.Block{paragraph(t)}
		}
		return nil
	}
}

// extractText gets the text content of a goldmark AST node. Nodes with inline
// children (paragraphs, headings) carry their text in those children; leaf
// blocks like code carry it in their raw line segments. Reading both would
// duplicate the content.
func extractText(n ast.Node, src []byte) string {
	var buf bytes.Buffer
	if !n.HasChildren() {
		if n.Type() == ast.TypeBlock {
			lines := n.Lines()
			for i := 0; i < lines.Len(); i++ {
				seg := lines.At(i)
				buf.Write(seg.Value(src))
			}
		}
		return strings.TrimSpace(buf.String())
	}
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		if t, ok := c.(*ast.Text); ok {
			buf.Write(t.Value(src))
			if t.HardLineBreak() || t.SoftLineBreak() {
				buf.WriteByte(' ')
			}
		} else {
			buf.WriteString(extractText(c, src))
		}
	}
	return strings.TrimSpace(buf.String())
}
