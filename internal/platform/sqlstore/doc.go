// Package sqlstore implements store.TaskStore on database/sql. It supports
// PostgreSQL through the pgx stdlib driver and SQLite through the pure-Go
// modernc.org/sqlite driver, and applies its own embedded goose migrations
// the first time the database is reachable.
package sqlstore
