// Package store defines the task persistence contract shared by the SQL and
// in-memory backends, the errors they return, and Failover, which routes
// each call to whichever backend is currently usable.
package store
