// Package client is a Go client for the InsightBoard task API. It is used
// by the dashboard CLI and speaks the same JSON the server writes.
package client
