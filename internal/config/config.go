package config

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server   ServerConfig   `mapstructure:"server"   validate:"required"`
	LLM      LLMConfig      `mapstructure:"llm"      validate:"required"`
	Pipeline PipelineConfig `mapstructure:"pipeline" validate:"required"`
	Task     TaskConfig     `mapstructure:"task"     validate:"required"`
}

// ServerConfig contains all server-related configuration settings.
type ServerConfig struct {
	Port     int    `mapstructure:"port"      validate:"required,gt=0,lt=65536"`
	LogLevel string `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
}

// LLMConfig contains the Gemini integration settings shared by the content
// and image clients.
type LLMConfig struct {
	GeminiAPIKey string `mapstructure:"gemini_api_key" validate:"required"`

	// ContentModel generates the structured deck from the chapter document.
	ContentModel string `mapstructure:"content_model" validate:"required"`

	// ImageModel generates per-slide diagrams.
	ImageModel string `mapstructure:"image_model" validate:"required"`

	// MaxRetries is the retry budget for rate-limited provider calls.
	MaxRetries int `mapstructure:"max_retries" validate:"gte=0"`

	// RetryBaseDelayMillis is the first backoff interval; it doubles after
	// every retry.
	RetryBaseDelayMillis int `mapstructure:"retry_base_delay_millis" validate:"gt=0"`

	// PromptTemplatePath optionally overrides the embedded deck prompt
	// template.
	PromptTemplatePath string `mapstructure:"prompt_template_path"`
}

// PipelineConfig contains deck-assembly settings.
type PipelineConfig struct {
	// ImageRequestDelayMillis is the fixed courtesy delay imposed before
	// every image request.
	ImageRequestDelayMillis int `mapstructure:"image_request_delay_millis" validate:"gt=0"`
}

// TaskConfig contains background task processing settings.
type TaskConfig struct {
	QueueSize int `mapstructure:"queue_size" validate:"required,gt=0"`

	// WorkerCount defaults to one so provider calls across sessions stay
	// strictly sequential.
	WorkerCount int `mapstructure:"worker_count" validate:"required,gt=0"`
}
