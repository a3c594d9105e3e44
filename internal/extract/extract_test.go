package extract

import (
	"testing"

	"github.com/dgallion1/briefpress/internal/notion"
)

func block(t notion.BlockType, text string) *notion.Block {
	b := notion.NewBlock(t, text)
	return &b
}

func TestLines_MarkersPerKind(t *testing.T) {
	checked := block(notion.TypeToDo, "done")
	checked.Checked = true

	tree := []*notion.Block{
		block(notion.TypeHeading1, "Title"),
		block(notion.TypeHeading2, "Sub"),
		block(notion.TypeHeading3, "Subsub"),
		block(notion.TypeBulleted, "point"),
		block(notion.TypeNumbered, "item"),
		block(notion.TypeQuote, "said"),
		checked,
		block(notion.TypeToDo, "open"),
		block(notion.TypeCallout, "note"),
		block(notion.TypeParagraph, "body"),
	}

	lines := Lines(tree)
	want := []string{
		"# Title",
		"## Sub",
		"### Subsub",
		"- point",
		"1. item",
		"> said",
		"[x] done",
		"[ ] open",
		"note",
		"body",
	}
	if len(lines) != len(want) {
		t.Fatalf("expected %d lines, got %d", len(want), len(lines))
	}
	for i, w := range want {
		if lines[i].Text != w {
			t.Errorf("line[%d]: expected %q, got %q", i, w, lines[i].Text)
		}
	}
}

func TestLines_PreOrderTraversal(t *testing.T) {
	child := block(notion.TypeParagraph, "inside")
	grandchild := block(notion.TypeParagraph, "deeper")
	child.Children = []*notion.Block{grandchild}

	toggle := block(notion.TypeToggle, "Details")
	toggle.Children = []*notion.Block{child}

	tree := []*notion.Block{
		block(notion.TypeParagraph, "before"),
		toggle,
		block(notion.TypeParagraph, "after"),
	}

	lines := Lines(tree)
	want := []string{"before", "Details", "inside", "deeper", "after"}
	if len(lines) != len(want) {
		t.Fatalf("expected %d lines, got %d", len(want), len(lines))
	}
	for i, w := range want {
		if lines[i].Text != w {
			t.Errorf("line[%d]: expected %q, got %q", i, w, lines[i].Text)
		}
	}
}

func TestLines_ExcludedKinds(t *testing.T) {
	tree := []*notion.Block{
		block(notion.TypeCode, "x := 1"),
		{Type: notion.TypeDivider},
		{Type: notion.BlockType("image")},
		block(notion.TypeParagraph, ""),
		block(notion.TypeParagraph, "   "),
	}
	if lines := Lines(tree); len(lines) != 0 {
		t.Errorf("expected 0 lines, got %d: %v", len(lines), lines)
	}
}

func TestLines_KindIsCarried(t *testing.T) {
	lines := Lines([]*notion.Block{block(notion.TypeBulleted, "point")})
	if len(lines) != 1 {
		t.Fatalf("expected 1 line, got %d", len(lines))
	}
	if lines[0].Kind != notion.TypeBulleted {
		t.Errorf("expected kind %q, got %q", notion.TypeBulleted, lines[0].Kind)
	}
}
