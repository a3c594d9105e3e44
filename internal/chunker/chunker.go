package chunker

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// DefaultLimit leaves a safety margin under the store's 2000-character
// per-block payload cap for label overhead added during serialization.
const DefaultLimit = 1900

// Chunk is a boundary-safe slice of a longer text, tagged with its position
// in the parent's chunk sequence.
type Chunk struct {
	Text  string
	Index int
	Total int
}

// Granularity levels for splitting, coarse to fine. Each level greedily
// accumulates whole units until the next one would overflow; a unit that is
// itself too long descends to the next level.
const (
	levelSentence = iota
	levelClause
	levelWord
)

// Split breaks text into chunks of at most max runes, never cutting inside a
// word. Sentence boundaries are preferred, then comma-delimited clauses, then
// single words. Concatenating the chunks reconstructs the input up to
// whitespace trimmed at split points. An empty input yields a single empty
// chunk so downstream block creation never sees a zero-length sequence.
func Split(text string, max int) []Chunk {
	if max <= 0 {
		max = DefaultLimit
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return []Chunk{{Text: "", Index: 0, Total: 1}}
	}
	parts := split(text, max, levelSentence)
	chunks := make([]Chunk, len(parts))
	for i, p := range parts {
		chunks[i] = Chunk{Text: p, Index: i, Total: len(parts)}
	}
	return chunks
}

func split(text string, max, level int) []string {
	if utf8.RuneCountInString(text) <= max {
		return []string{text}
	}
	if level > levelWord {
		// A single word longer than the limit. The limit is a hard platform
		// constraint, so cut at the Nth rune as the final fallback.
		return hardCut(text, max)
	}
	return accumulate(units(text, level), max, level)
}

// unit is one splittable piece of text plus the whitespace run that followed
// it in the input. Carrying the separator keeps intra-chunk whitespace exactly
// as written; only the separator at a split point is dropped.
type unit struct {
	text string
	sep  string
}

// accumulate packs units into chunks greedily: flush when the next unit would
// overflow, descend a granularity level when a lone unit already overflows.
func accumulate(units []unit, max, level int) []string {
	var out []string
	var cur strings.Builder
	curLen := 0
	pendingSep := ""

	flush := func() {
		if curLen > 0 {
			out = append(out, cur.String())
			cur.Reset()
			curLen = 0
		}
		pendingSep = ""
	}

	for _, u := range units {
		ul := utf8.RuneCountInString(u.text)
		if ul > max {
			flush()
			out = append(out, split(u.text, max, level+1)...)
			continue
		}
		sepLen := 0
		if curLen > 0 {
			sepLen = utf8.RuneCountInString(pendingSep)
		}
		if curLen+sepLen+ul > max {
			flush()
		}
		if curLen > 0 {
			cur.WriteString(pendingSep)
			curLen += sepLen
		}
		cur.WriteString(u.text)
		curLen += ul
		pendingSep = u.sep
	}
	flush()
	return out
}

func units(text string, level int) []unit {
	switch level {
	case levelSentence:
		return splitAfter(text, isTerminal)
	case levelClause:
		return splitAfter(text, isClauseBreak)
	default:
		return fields(text)
	}
}

func isTerminal(r rune) bool {
	return r == '.' || r == '!' || r == '?'
}

func isClauseBreak(r rune) bool {
	return r == ',' || r == ';'
}

// splitAfter breaks text after any delimiter rune that is followed by
// whitespace, keeping the delimiter with the preceding unit and the whitespace
// run as the unit's separator.
func splitAfter(text string, delim func(rune) bool) []unit {
	var parts []unit
	runes := []rune(text)
	start := 0
	for i := 0; i < len(runes); i++ {
		if !delim(runes[i]) || i+1 >= len(runes) || !unicode.IsSpace(runes[i+1]) {
			continue
		}
		end := i + 1
		j := end
		for j < len(runes) && unicode.IsSpace(runes[j]) {
			j++
		}
		parts = append(parts, unit{text: string(runes[start:end]), sep: string(runes[end:j])})
		start = j
		i = j - 1
	}
	if start < len(runes) {
		parts = append(parts, unit{text: string(runes[start:]), sep: ""})
	}
	return parts
}

// fields is strings.Fields keeping each word's trailing whitespace run.
func fields(text string) []unit {
	var parts []unit
	runes := []rune(text)
	i := 0
	for i < len(runes) {
		start := i
		for i < len(runes) && !unicode.IsSpace(runes[i]) {
			i++
		}
		end := i
		for i < len(runes) && unicode.IsSpace(runes[i]) {
			i++
		}
		parts = append(parts, unit{text: string(runes[start:end]), sep: string(runes[end:i])})
	}
	return parts
}

func hardCut(text string, max int) []string {
	var out []string
	runes := []rune(text)
	for len(runes) > max {
		out = append(out, string(runes[:max]))
		runes = runes[max:]
	}
	if len(runes) > 0 {
		out = append(out, string(runes))
	}
	return out
}
