// Package dashboard implements the terminal dashboard: plain-text
// rendering of the task board and the command dispatch behind the
// dashboard binary.
package dashboard
