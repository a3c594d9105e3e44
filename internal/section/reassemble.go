package section

import "strings"

// Section is one populated entry of the reassembled brief.
type Section struct {
	Key  Key
	Text string
}

// Document is the brief in canonical table-of-contents order.
type Document struct {
	Sections []Section
}

// Reassemble orders the classified buckets by the canonical table of contents,
// dropping empty sections. The order sections appeared in the source is
// deliberately discarded: the output always normalizes to canonical order.
func Reassemble(b Buckets, tax *Taxonomy) Document {
	var doc Document
	for _, key := range tax.Keys() {
		lines := b[key]
		if len(lines) == 0 {
			continue
		}
		doc.Sections = append(doc.Sections, Section{Key: key, Text: strings.Join(lines, "\n")})
	}
	return doc
}

// Render emits the document as plain text: a header line per section, the
// joined body, and a separator between populated sections. No separator
// trails the final section.
func (d Document) Render() string {
	var sb strings.Builder
	for i, s := range d.Sections {
		if i > 0 {
			sb.WriteString("\n---\n\n")
		}
		sb.WriteString("## ")
		sb.WriteString(s.Key.Title)
		sb.WriteString("\n\n")
		sb.WriteString(s.Text)
		sb.WriteString("\n")
	}
	return sb.String()
}
