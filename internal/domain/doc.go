// Package domain contains the core business entities of InsightBoard: the
// task record, its status and priority enums, and the validation rules that
// every store backend relies on. It has no knowledge of HTTP, SQL or the
// language model.
package domain
