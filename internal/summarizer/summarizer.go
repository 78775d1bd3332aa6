package summarizer

import (
	"context"
	"errors"
)

// ErrContentBlocked reports that the provider withheld every candidate output
// because the prompt tripped its safety filters. It is the only upstream
// failure attributed to the caller's input.
var ErrContentBlocked = errors.New("content blocked by safety filters")

// Summarizer produces a summary for the given prompt in a single attempt.
// Implementations must not retry on failure.
type Summarizer interface {
	Summarize(ctx context.Context, prompt string) (string, error)
}
