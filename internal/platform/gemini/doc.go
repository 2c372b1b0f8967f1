// Package gemini implements the extraction.Completer port on top of
// Google's Gemini API using the google.golang.org/genai SDK.
package gemini
