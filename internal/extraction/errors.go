package extraction

import "errors"

// Common errors returned by the extraction package
var (
	// ErrInvalidResponse is returned when the model output cannot be read as a JSON array
	ErrInvalidResponse = errors.New("invalid response from language model")

	// ErrNoItems is returned when the model output contains no usable action items
	ErrNoItems = errors.New("language model returned no action items")

	// ErrInvalidConfig is returned when the extractor configuration is invalid
	ErrInvalidConfig = errors.New("invalid extractor configuration")
)
