package extract

import (
	"regexp"
	"strings"
)

var (
	// Template banners: repeated separator, arbitrary text, repeated separator.
	bannerRe = regexp.MustCompile(`^\s*[=\-_*~]{3,}.*[=\-_*~]{3,}\s*$`)
	// Standalone "Step N" template labels.
	stepRe = regexp.MustCompile(`(?i)\bstep\s*\d+\b`)
	// Parenthetical word-count annotations like "(75-150 words)".
	wordCountRe = regexp.MustCompile(`(?i)\(\s*\d+\s*(?:[-–]\s*\d+\s*)?words?\s*\)`)
	// Leading canonical section-number prefix, with or without a heading marker.
	sectionNumRe = regexp.MustCompile(`(?i)^#{0,3}\s*section\s+\d+\s*:\s*`)
	spaceRunRe   = regexp.MustCompile(`[ \t]{2,}`)
)

// Normalize strips template cruft from one exported line. An empty result
// means the line carried nothing meaningful and must be skipped by the caller.
// Normalize(Normalize(s)) == Normalize(s) for any s.
func Normalize(line string) string {
	// Removing one token can expose another (a Step label hiding a banner,
	// stacked section prefixes), so run the rules to a fixpoint. Every rule
	// only removes text, so this converges.
	for {
		next := normalizeOnce(line)
		if next == line {
			return line
		}
		line = next
	}
}

func normalizeOnce(line string) string {
	if bannerRe.MatchString(line) {
		return ""
	}
	line = stepRe.ReplaceAllString(line, "")
	line = wordCountRe.ReplaceAllString(line, "")
	line = strings.ReplaceAll(line, "\u00a0", " ")
	line = spaceRunRe.ReplaceAllString(line, " ")
	line = strings.TrimSpace(line)
	return strings.TrimSpace(sectionNumRe.ReplaceAllString(line, ""))
}
