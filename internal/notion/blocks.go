package notion

import (
	"encoding/json"
	"strings"
)

// BlockType identifies the structural kind of a content block.
type BlockType string

const (
	TypeParagraph BlockType = "paragraph"
	TypeHeading1  BlockType = "heading_1"
	TypeHeading2  BlockType = "heading_2"
	TypeHeading3  BlockType = "heading_3"
	TypeBulleted  BlockType = "bulleted_list_item"
	TypeNumbered  BlockType = "numbered_list_item"
	TypeQuote     BlockType = "quote"
	TypeCallout   BlockType = "callout"
	TypeToggle    BlockType = "toggle"
	TypeToDo      BlockType = "to_do"
	TypeCode      BlockType = "code"
	TypeDivider   BlockType = "divider"
)

// RichText is one inline span of a block's text payload.
type RichText struct {
	Type        string       `json:"type"`
	Text        *TextContent `json:"text,omitempty"`
	Annotations *Annotations `json:"annotations,omitempty"`
	PlainText   string       `json:"plain_text,omitempty"`
}

// TextContent carries the writable text of a span.
type TextContent struct {
	Content string `json:"content"`
}

// Annotations holds the span styling briefpress emits.
type Annotations struct {
	Bold bool `json:"bold,omitempty"`
}

// Span builds a plain text span.
func Span(text string) RichText {
	return RichText{Type: "text", Text: &TextContent{Content: text}}
}

// BoldSpan builds a bold text span.
func BoldSpan(text string) RichText {
	return RichText{Type: "text", Text: &TextContent{Content: text}, Annotations: &Annotations{Bold: true}}
}

// Block is one node of the store's content tree. Children is populated when a
// subtree has been assembled locally; it is never serialized.
type Block struct {
	ID          string
	Type        BlockType
	HasChildren bool
	Checked     bool
	Rich        []RichText
	Children    []*Block
}

// NewBlock builds a block of the given kind with a single plain span.
func NewBlock(t BlockType, text string) Block {
	return Block{Type: t, Rich: []RichText{Span(text)}}
}

// PlainText concatenates the block's inline spans.
func (b *Block) PlainText() string {
	var sb strings.Builder
	for _, span := range b.Rich {
		if span.Text != nil {
			sb.WriteString(span.Text.Content)
		} else {
			sb.WriteString(span.PlainText)
		}
	}
	return sb.String()
}

// TextLength returns the total span text length in runes, the unit the store's
// per-block limit is expressed in.
func (b *Block) TextLength() int {
	n := 0
	for _, span := range b.Rich {
		if span.Text != nil {
			n += len([]rune(span.Text.Content))
		} else {
			n += len([]rune(span.PlainText))
		}
	}
	return n
}

// wirePayload is the type-keyed object carrying a block's content on the wire.
type wirePayload struct {
	RichText []RichText `json:"rich_text,omitempty"`
	Checked  *bool      `json:"checked,omitempty"`
}

// MarshalJSON emits the store's {"type": t, t: {...}} wire shape.
func (b Block) MarshalJSON() ([]byte, error) {
	m := map[string]any{
		"object": "block",
		"type":   string(b.Type),
	}
	if b.ID != "" {
		m["id"] = b.ID
	}
	switch b.Type {
	case TypeDivider:
		m[string(b.Type)] = struct{}{}
	case TypeToDo:
		checked := b.Checked
		m[string(b.Type)] = wirePayload{RichText: b.Rich, Checked: &checked}
	default:
		m[string(b.Type)] = wirePayload{RichText: b.Rich}
	}
	return json.Marshal(m)
}

// UnmarshalJSON reads the type-keyed wire shape back into a Block. Unknown
// block kinds decode with an empty payload and are skipped during extraction.
func (b *Block) UnmarshalJSON(data []byte) error {
	var shell struct {
		ID          string    `json:"id"`
		Type        BlockType `json:"type"`
		HasChildren bool      `json:"has_children"`
	}
	if err := json.Unmarshal(data, &shell); err != nil {
		return err
	}
	b.ID = shell.ID
	b.Type = shell.Type
	b.HasChildren = shell.HasChildren

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return err
	}
	raw, ok := fields[string(shell.Type)]
	if !ok {
		return nil
	}
	var payload wirePayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		return err
	}
	b.Rich = payload.RichText
	if payload.Checked != nil {
		b.Checked = *payload.Checked
	}
	return nil
}
