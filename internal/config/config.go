package config

import "time"

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server   ServerConfig   `mapstructure:"server" validate:"required"`
	Database DatabaseConfig `mapstructure:"database"`
	LLM      LLMConfig      `mapstructure:"llm"`
	Client   ClientConfig   `mapstructure:"client"`
}

// ServerConfig contains all server-related configuration settings.
type ServerConfig struct {
	Port        int      `mapstructure:"port" validate:"required,gt=0,lt=65536"`
	LogLevel    string   `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
	CORSOrigins []string `mapstructure:"cors_origins" validate:"required,min=1"`
}

// DatabaseConfig contains all database-related configuration settings.
// An empty URL runs the server against the in-memory store only.
type DatabaseConfig struct {
	URL            string        `mapstructure:"url"`
	HealthInterval time.Duration `mapstructure:"health_interval" validate:"gt=0"`
}

// LLMConfig contains all LLM integration related settings.
// An empty API key disables the model and leaves heuristic extraction only.
type LLMConfig struct {
	GeminiAPIKey       string        `mapstructure:"gemini_api_key"`
	ModelName          string        `mapstructure:"model_name" validate:"required"`
	Temperature        float32       `mapstructure:"temperature" validate:"gte=0,lte=2"`
	Timeout            time.Duration `mapstructure:"timeout" validate:"gt=0"`
	PromptTemplatePath string        `mapstructure:"prompt_template_path" validate:"omitempty,file"`
}

// ClientConfig configures the dashboard client.
type ClientConfig struct {
	APIURL  string        `mapstructure:"api_url" validate:"required,url"`
	Timeout time.Duration `mapstructure:"timeout" validate:"gt=0"`
}

// HasDatabase reports whether a durable store is configured.
func (c DatabaseConfig) HasDatabase() bool {
	return c.URL != ""
}

// HasModel reports whether a model credential is configured.
func (c LLMConfig) HasModel() bool {
	return c.GeminiAPIKey != ""
}
