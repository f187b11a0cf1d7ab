package port

import "context"

// RawGenerator produces raw model output for a rendered page. Implementations
// absorb model-side failures internally and always return something usable;
// the returned text may be a degraded placeholder but is never empty.
type RawGenerator interface {
	Generate(ctx context.Context, image []byte, prompt string, pageNumber int) string
}
