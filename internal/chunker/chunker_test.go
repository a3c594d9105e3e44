package chunker

import (
	"strings"
	"testing"
	"unicode/utf8"
)

// requireWithinLimit fails if any chunk exceeds max runes.
func requireWithinLimit(t *testing.T, chunks []Chunk, max int) {
	t.Helper()
	for i, c := range chunks {
		if n := utf8.RuneCountInString(c.Text); n > max {
			t.Errorf("chunk %d: %d runes exceeds limit %d", i, n, max)
		}
	}
}

// requireWordsPreserved fails if the chunk boundaries cut inside a word: the
// ordered word sequence across all chunks must equal the input's.
func requireWordsPreserved(t *testing.T, input string, chunks []Chunk) {
	t.Helper()
	var got []string
	for _, c := range chunks {
		got = append(got, strings.Fields(c.Text)...)
	}
	want := strings.Fields(input)
	if len(got) != len(want) {
		t.Fatalf("word count changed: expected %d, got %d", len(want), len(got))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("word[%d]: expected %q, got %q", i, want[i], got[i])
		}
	}
}

// requireLossless fails unless every chunk is a verbatim slice of the input,
// in order, with nothing but whitespace dropped between consecutive chunks.
func requireLossless(t *testing.T, input string, chunks []Chunk) {
	t.Helper()
	rest := input
	for i, c := range chunks {
		idx := strings.Index(rest, c.Text)
		if idx < 0 {
			t.Fatalf("chunk %d: %q is not a verbatim slice of the remaining input %q", i, c.Text, rest)
		}
		if gap := rest[:idx]; strings.TrimSpace(gap) != "" {
			t.Fatalf("chunk %d: non-whitespace %q dropped before it", i, gap)
		}
		rest = rest[idx+len(c.Text):]
	}
	if strings.TrimSpace(rest) != "" {
		t.Fatalf("non-whitespace %q dropped after the final chunk", rest)
	}
}

func TestSplit_ShortTextSingleChunk(t *testing.T) {
	chunks := Split("A short line.", 100)
	if len(chunks) != 1 {
		t.Fatalf("expected 1 chunk, got %d", len(chunks))
	}
	if chunks[0].Text != "A short line." {
		t.Errorf("expected input back unchanged, got %q", chunks[0].Text)
	}
	if chunks[0].Index != 0 || chunks[0].Total != 1 {
		t.Errorf("expected part 0 of 1, got %d of %d", chunks[0].Index, chunks[0].Total)
	}
}

func TestSplit_EmptyInputYieldsSingleEmptyChunk(t *testing.T) {
	for _, in := range []string{"", "   "} {
		chunks := Split(in, 50)
		if len(chunks) != 1 || chunks[0].Text != "" {
			t.Errorf("Split(%q): expected one empty chunk, got %v", in, chunks)
		}
	}
}

func TestSplit_SentenceBoundariesPreferred(t *testing.T) {
	input := "Aaa bbb. Ccc ddd. Eee fff."
	chunks := Split(input, 12)

	if len(chunks) != 3 {
		t.Fatalf("expected 3 chunks, got %d: %v", len(chunks), chunks)
	}
	want := []string{"Aaa bbb.", "Ccc ddd.", "Eee fff."}
	for i, w := range want {
		if chunks[i].Text != w {
			t.Errorf("chunk %d: expected %q, got %q", i, w, chunks[i].Text)
		}
	}
	requireWithinLimit(t, chunks, 12)
}

func TestSplit_RoundTrip(t *testing.T) {
	input := "The platform ingests data. Users build reports. Admins manage access. Billing is monthly."
	chunks := Split(input, 30)

	var parts []string
	for _, c := range chunks {
		parts = append(parts, c.Text)
	}
	if rejoined := strings.Join(parts, " "); rejoined != input {
		t.Errorf("round trip failed:\n in: %q\nout: %q", input, rejoined)
	}
	requireWithinLimit(t, chunks, 30)
	requireWordsPreserved(t, input, chunks)
}

func TestSplit_DoubleSpaceKeptInsideChunk(t *testing.T) {
	input := "aa.  bb. cccccccc dddddddd eeeeeeee"
	chunks := Split(input, 9)

	if chunks[0].Text != "aa.  bb." {
		t.Errorf("expected the double space preserved mid-chunk, got %q", chunks[0].Text)
	}
	requireWithinLimit(t, chunks, 9)
	requireLossless(t, input, chunks)
}

func TestSplit_MixedWhitespaceLossless(t *testing.T) {
	input := "First sentence here.  Second one,\tstill going on and on. Third."
	chunks := Split(input, 28)

	requireWithinLimit(t, chunks, 28)
	requireLossless(t, input, chunks)
	requireWordsPreserved(t, input, chunks)
}

func TestSplit_ClauseFallback(t *testing.T) {
	// One long sentence, no terminal punctuation until the end, but commas.
	input := "alpha beta gamma, delta epsilon zeta, eta theta iota, kappa lambda mu."
	chunks := Split(input, 25)

	if len(chunks) < 2 {
		t.Fatalf("expected clause-level splitting, got %d chunks", len(chunks))
	}
	requireWithinLimit(t, chunks, 25)
	requireWordsPreserved(t, input, chunks)
}

func TestSplit_WordFallbackOnUnpunctuatedText(t *testing.T) {
	// ~5000 characters, one "sentence", no commas: sentence and clause
	// splitting have nothing to cut, so word accumulation takes over.
	input := strings.TrimSpace(strings.Repeat("word ", 1000))
	chunks := Split(input, 1900)

	if len(chunks) != 3 {
		t.Fatalf("expected 3 chunks, got %d", len(chunks))
	}
	requireWithinLimit(t, chunks, 1900)
	requireWordsPreserved(t, input, chunks)
}

func TestSplit_OversizedSingleWordHardCut(t *testing.T) {
	input := strings.Repeat("x", 4000)
	chunks := Split(input, 1900)

	if len(chunks) != 3 {
		t.Fatalf("expected 3 chunks, got %d", len(chunks))
	}
	requireWithinLimit(t, chunks, 1900)
	var total int
	for _, c := range chunks {
		total += len(c.Text)
	}
	if total != 4000 {
		t.Errorf("expected 4000 characters preserved, got %d", total)
	}
}

func TestSplit_PartTags(t *testing.T) {
	chunks := Split(strings.TrimSpace(strings.Repeat("word ", 100)), 50)
	if len(chunks) < 2 {
		t.Fatalf("expected multiple chunks, got %d", len(chunks))
	}
	for i, c := range chunks {
		if c.Index != i {
			t.Errorf("chunk %d: expected index %d, got %d", i, i, c.Index)
		}
		if c.Total != len(chunks) {
			t.Errorf("chunk %d: expected total %d, got %d", i, len(chunks), c.Total)
		}
	}
}

func TestSplit_ZeroLimitUsesDefault(t *testing.T) {
	chunks := Split("hello there", 0)
	if len(chunks) != 1 || chunks[0].Text != "hello there" {
		t.Errorf("expected single chunk with default limit, got %v", chunks)
	}
}

func TestSplit_MultibyteRunesCountedAsRunes(t *testing.T) {
	input := strings.TrimSpace(strings.Repeat("héllo wörld. ", 20))
	chunks := Split(input, 30)
	requireWithinLimit(t, chunks, 30)
	requireWordsPreserved(t, input, chunks)
}
