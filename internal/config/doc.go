// Package config handles configuration loading, parsing, and validation
// from .env files, an optional config.yaml, and environment variables. It
// provides type-safe access to the settings of the server and the dashboard
// client while keeping configuration details separate from business logic.
package config
