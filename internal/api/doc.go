// Package api handles incoming HTTP requests, routing, request validation,
// and response formatting. It translates the task board's JSON interface
// into calls on the task service.
package api
