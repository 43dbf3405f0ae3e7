package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// Load configuration from environment variables and optionally a config file.
// Environment variables (prefix DECKGEN_, nested keys joined with _) take
// precedence over values from config files, which take precedence over
// defaults. Returns a populated Config struct or an error if loading or
// validation fails.
func Load() (*Config, error) {
	v := viper.New()

	setDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	if err := v.ReadInConfig(); err != nil {
		// A missing config file is fine; the environment carries the rest.
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	v.SetEnvPrefix("DECKGEN")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.log_level", "info")

	v.SetDefault("llm.gemini_api_key", "")
	v.SetDefault("llm.content_model", "gemini-3-pro-preview")
	v.SetDefault("llm.image_model", "gemini-2.5-flash-image")
	v.SetDefault("llm.max_retries", 3)
	v.SetDefault("llm.retry_base_delay_millis", 1000)
	v.SetDefault("llm.prompt_template_path", "")

	v.SetDefault("pipeline.image_request_delay_millis", 800)

	v.SetDefault("task.queue_size", 16)
	v.SetDefault("task.worker_count", 1)
}
