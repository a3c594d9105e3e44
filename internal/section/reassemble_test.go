package section

import (
	"strings"
	"testing"
)

func TestReassemble_CanonicalOrder(t *testing.T) {
	tax := Default()
	// Populate in reverse of canonical order.
	b := Buckets{
		{ScopeAnalysis, "Switching Costs"}:      {"Migrations take months."},
		{ScopeAnalysis, "Data Gravity Analysis"}: {"Data accrues daily."},
		{ScopeOverview, "Company Snapshot"}:     {"Founded: 2019"},
	}

	doc := Reassemble(b, tax)
	want := []string{"Company Snapshot", "Data Gravity Analysis", "Switching Costs"}
	if len(doc.Sections) != len(want) {
		t.Fatalf("expected %d sections, got %d", len(want), len(doc.Sections))
	}
	for i, title := range want {
		if doc.Sections[i].Key.Title != title {
			t.Errorf("section[%d]: expected %q, got %q", i, title, doc.Sections[i].Key.Title)
		}
	}
}

func TestReassemble_EmptySectionsOmitted(t *testing.T) {
	tax := Default()
	b := Buckets{
		{ScopeOverview, "Business Summary"}: {"We sell widgets."},
	}
	doc := Reassemble(b, tax)
	if len(doc.Sections) != 1 {
		t.Fatalf("expected 1 section, got %d", len(doc.Sections))
	}
	if doc.Sections[0].Text != "We sell widgets." {
		t.Errorf("unexpected section text %q", doc.Sections[0].Text)
	}
}

func TestReassemble_JoinsLinesInInsertionOrder(t *testing.T) {
	tax := Default()
	b := Buckets{
		{ScopeOverview, "Key Metrics"}: {"ARR: $2M", "Churn: 3%"},
	}
	doc := Reassemble(b, tax)
	if doc.Sections[0].Text != "ARR: $2M\nChurn: 3%" {
		t.Errorf("unexpected joined text %q", doc.Sections[0].Text)
	}
}

func TestRender_SeparatorsBetweenSectionsOnly(t *testing.T) {
	tax := Default()
	b := Buckets{
		{ScopeOverview, "Company Snapshot"}:  {"Founded: 2019"},
		{ScopeOverview, "Business Summary"}:  {"We sell widgets."},
	}
	out := Reassemble(b, tax).Render()

	if strings.Count(out, "---") != 1 {
		t.Errorf("expected exactly one separator, got %d in %q", strings.Count(out, "---"), out)
	}
	if strings.HasSuffix(strings.TrimSpace(out), "---") {
		t.Errorf("trailing separator left at document end: %q", out)
	}
	if !strings.Contains(out, "## Company Snapshot") || !strings.Contains(out, "## Business Summary") {
		t.Errorf("missing section headers in %q", out)
	}
}

func TestRender_Empty(t *testing.T) {
	if out := (Document{}).Render(); out != "" {
		t.Errorf("expected empty render, got %q", out)
	}
}
