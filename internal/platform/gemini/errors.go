package gemini

import "errors"

// Error definitions for the gemini package.
var (
	// ErrContentBlocked is returned when Gemini stops a response for safety reasons.
	ErrContentBlocked = errors.New("content blocked by language model safety filters")

	// ErrEmptyPrompt is returned when Complete is called without a prompt.
	ErrEmptyPrompt = errors.New("prompt cannot be empty")
)
