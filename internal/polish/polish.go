package polish

import "context"

// Polisher rewrites a section's narrative text. It is an optional
// collaborator: callers must fall back to the raw text when a Polisher
// returns an error, never fail the run.
type Polisher interface {
	Polish(ctx context.Context, text, companyName string) (string, error)
}

// Noop returns the input unchanged. It is the default when no language model
// is configured, keeping pipeline correctness independent of model
// availability.
type Noop struct{}

func (Noop) Polish(_ context.Context, text, _ string) (string, error) {
	return text, nil
}
