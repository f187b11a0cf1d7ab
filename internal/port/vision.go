package port

import "context"

// GenerateOptions carries per-call model tuning parameters.
type GenerateOptions struct {
	Temperature     float64
	MaxOutputTokens int
}

// Part is one content fragment of a model candidate.
type Part struct {
	Text string
}

// Candidate is a single model response candidate.
type Candidate struct {
	FinishReason string
	Parts        []Part
	// Output is an alternate text attribute some response shapes carry
	// instead of structured parts.
	Output string
}

// GenerateResult is the raw model response. The same successful response can
// arrive in different shapes, so text extraction must try Text, then the
// candidate parts, then Output.
type GenerateResult struct {
	Text       string
	Candidates []Candidate
}

// VisionModel abstracts a vision-capable LLM: submit an image and a prompt,
// receive free text.
type VisionModel interface {
	Generate(ctx context.Context, image []byte, prompt string, opts GenerateOptions) (*GenerateResult, error)
}
