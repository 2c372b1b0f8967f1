// Package memory provides a process-local store.TaskStore. Its contents are
// lost when the process exits.
package memory
