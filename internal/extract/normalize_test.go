package extract

import "testing"

func TestNormalize(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"banner dropped", "=== SECTION 3: THE PROBLEM ===", ""},
		{"dashed banner dropped", "---- Company Overview ----", ""},
		{"standalone step token", "Step 3", ""},
		{"embedded step token", "Complete Step 2 before continuing", "Complete before continuing"},
		{"word count annotation", "Describe the problem (75-150 words)", "Describe the problem"},
		{"single word count", "Summary (150 words)", "Summary"},
		{"nbsp normalized", "total\u00a0revenue", "total revenue"},
		{"whitespace trimmed", "   padded out   ", "padded out"},
		{"section prefix", "Section 2: Business Summary", "Business Summary"},
		{"section prefix with marker", "## Section 2: Business Summary", "Business Summary"},
		{"plain line untouched", "Our users struggle with manual entry.", "Our users struggle with manual entry."},
		{"empty", "", ""},
		// Token removal can leave a bare banner behind; the banner rule must
		// still catch it.
		{"step token hides banner", "Step 1 ===IMPORTANT===", ""},
		{"step token hides dashed banner", "Step 2 ---Overview---", ""},
		{"word count hides banner", "(75 words) ===Notes===", ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := Normalize(tc.in)
			if got != tc.want {
				t.Errorf("Normalize(%q): expected %q, got %q", tc.in, tc.want, got)
			}
			// Normalization must be idempotent.
			if again := Normalize(got); again != got {
				t.Errorf("Normalize not idempotent for %q: %q -> %q", tc.in, got, again)
			}
		})
	}
}

func TestNormalize_StackedSectionPrefixes(t *testing.T) {
	got := Normalize("Section 1: Section 2: Key Metrics")
	if got != "Key Metrics" {
		t.Errorf("expected %q, got %q", "Key Metrics", got)
	}
	if again := Normalize(got); again != got {
		t.Errorf("not idempotent: %q -> %q", got, again)
	}
}
