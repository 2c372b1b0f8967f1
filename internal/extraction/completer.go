package extraction

import "context"

// Completer is the boundary between extraction and an external language
// model. Implementations send one request and return the raw text output.
type Completer interface {
	Complete(ctx context.Context, systemInstruction, prompt string) (string, error)
}
