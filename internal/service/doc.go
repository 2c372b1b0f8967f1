// Package service holds the application logic that sits between the HTTP
// layer and persistence: turning transcripts into stored tasks, changing
// task status, and computing the completion summary.
package service
