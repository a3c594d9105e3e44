package source

import (
	"strings"
	"testing"

	"github.com/dgallion1/briefpress/internal/notion"
)

func TestTextParser_LineKinds(t *testing.T) {
	input := strings.Join([]string{
		"# Company Snapshot",
		"",
		"Founded: 2019",
		"- first point",
		"* second point",
		"> a pulled quote",
		"## Key Metrics",
		"plain prose line",
	}, "\n")

	blocks, err := (&TextParser{}).Parse(strings.NewReader(input), "brief.txt")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []struct {
		kind notion.BlockType
		text string
	}{
		{notion.TypeHeading1, "Company Snapshot"},
		{notion.TypeParagraph, "Founded: 2019"},
		{notion.TypeBulleted, "first point"},
		{notion.TypeBulleted, "second point"},
		{notion.TypeQuote, "a pulled quote"},
		{notion.TypeHeading2, "Key Metrics"},
		{notion.TypeParagraph, "plain prose line"},
	}
	if len(blocks) != len(want) {
		t.Fatalf("expected %d blocks, got %d", len(want), len(blocks))
	}
	for i, w := range want {
		if blocks[i].Type != w.kind {
			t.Errorf("block[%d]: expected %s, got %s", i, w.kind, blocks[i].Type)
		}
		if got := blocks[i].PlainText(); got != w.text {
			t.Errorf("block[%d]: expected %q, got %q", i, w.text, got)
		}
	}
}

func TestTextParser_BlankLinesSkipped(t *testing.T) {
	blocks, err := (&TextParser{}).Parse(strings.NewReader("\n\n   \n"), "empty.txt")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(blocks) != 0 {
		t.Errorf("expected no blocks, got %d", len(blocks))
	}
}

func TestForFile(t *testing.T) {
	tests := []struct {
		filename string
		wantErr  bool
	}{
		{"brief.txt", false},
		{"brief.md", false},
		{"brief.markdown", false},
		{"Brief.HTML", false},
		{"brief.pdf", false},
		{"brief.docx", false},
		{"brief.csv", true},
		{"brief", true},
	}
	for _, tt := range tests {
		p, err := ForFile(tt.filename)
		if tt.wantErr {
			if err == nil {
				t.Errorf("ForFile(%q): expected error", tt.filename)
			}
			continue
		}
		if err != nil {
			t.Errorf("ForFile(%q): unexpected error %v", tt.filename, err)
		}
		if p == nil {
			t.Errorf("ForFile(%q): nil parser", tt.filename)
		}
	}
}

func TestIsSupportedExtension(t *testing.T) {
	if !IsSupportedExtension("report.DOCX") {
		t.Error("expected .DOCX to be supported case-insensitively")
	}
	if IsSupportedExtension("archive.zip") {
		t.Error("expected .zip unsupported")
	}
}
