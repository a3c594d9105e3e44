package section

// Buckets collects the body lines of each section, in order of appearance.
type Buckets map[Key][]string

// Classifier assigns normalized lines to section buckets in a single greedy
// pass. It never looks ahead and never reclassifies earlier lines: source
// documents are semi-structured narrative, and a stateful cursor is as much
// parsing as the noise in real inputs deserves.
type Classifier struct {
	tax     *Taxonomy
	current Key
	open    bool
	buckets Buckets
}

func NewClassifier(tax *Taxonomy) *Classifier {
	return &Classifier{tax: tax, buckets: make(Buckets)}
}

// Feed processes one normalized line. A line matching a rule opens that rule's
// section and is consumed; header lines never contribute body content. Any
// other line lands in the current bucket, or in the fallback bucket when it
// precedes the first recognized header.
func (c *Classifier) Feed(line string) {
	if line == "" {
		return
	}
	for _, rule := range c.tax.Rules {
		if rule.Pattern.MatchString(line) {
			c.current = rule.Key
			c.open = true
			return
		}
	}
	if !c.open {
		c.current = c.tax.Fallback
		c.open = true
	}
	c.buckets[c.current] = append(c.buckets[c.current], line)
}

// Buckets returns the accumulated section content.
func (c *Classifier) Buckets() Buckets {
	return c.buckets
}
