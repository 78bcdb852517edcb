package config

import (
	"os"
	"strconv"
	"unicode/utf8"

	"ecpass/domain/core"
	"ecpass/domain/formula"
	"ecpass/internal/errors"
)

// Config represents the complete application configuration
type Config struct {
	Generator GeneratorConfig
	Output    OutputConfig
	Server    ServerConfig
	LogLevel  string
}

// GeneratorConfig holds password pipeline settings
type GeneratorConfig struct {
	Formula          string
	DefaultLength    int
	MaxLength        int
	MinMemorableLen  int
	BatchConcurrency int
}

// ResolveRequest applies front-end input policy before the pipeline runs.
// A nil length selects DefaultLength. It returns the length to generate.
func (g GeneratorConfig) ResolveRequest(memorable string, length *int) (int, error) {
	if utf8.RuneCountInString(memorable) < g.MinMemorableLen {
		return 0, errors.InvalidInput("memorable text is too short")
	}
	n := g.DefaultLength
	if length != nil {
		n = *length
	}
	if n <= 0 {
		return 0, errors.FromDomain(core.NewInvalidLengthError(n))
	}
	if n > g.MaxLength {
		return 0, errors.InvalidInput("length exceeds the configured maximum of " + strconv.Itoa(g.MaxLength))
	}
	return n, nil
}

// OutputConfig holds file output settings
type OutputConfig struct {
	FileMode os.FileMode
}

// ServerConfig holds web server settings
type ServerConfig struct {
	Port    string
	GinMode string
}

// Load reads configuration from environment variables and validates it
func Load() (*Config, error) {
	mode, err := getEnvFileModeOrDefault("EC_OUTPUT_MODE", 0o600)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load output configuration")
	}

	config := &Config{
		Generator: GeneratorConfig{
			Formula:          getEnvOrDefault("EC_FORMULA", formula.Default),
			DefaultLength:    getEnvIntOrDefault("EC_DEFAULT_LENGTH", 24),
			MaxLength:        getEnvIntOrDefault("EC_MAX_LENGTH", 4096),
			MinMemorableLen:  getEnvIntOrDefault("EC_MIN_MEMORABLE", 1),
			BatchConcurrency: getEnvIntOrDefault("EC_BATCH_CONCURRENCY", 4),
		},
		Output: OutputConfig{FileMode: mode},
		Server: ServerConfig{
			Port:    getEnvOrDefault("PORT", "8080"),
			GinMode: getEnvOrDefault("GIN_MODE", "release"),
		},
		LogLevel: getEnvOrDefault("LOG_LEVEL", "INFO"),
	}

	if err := validateConfig(config); err != nil {
		return nil, errors.Wrap(err, "configuration validation failed")
	}

	return config, nil
}

func validateConfig(config *Config) error {
	if _, err := formula.Get(config.Generator.Formula); err != nil {
		return errors.ConfigInvalid("EC_FORMULA must name a registered formula: " + config.Generator.Formula)
	}
	if config.Generator.DefaultLength <= 0 {
		return errors.ConfigInvalid("EC_DEFAULT_LENGTH must be positive")
	}
	if config.Generator.MaxLength < config.Generator.DefaultLength {
		return errors.ConfigInvalid("EC_MAX_LENGTH must be at least EC_DEFAULT_LENGTH")
	}
	if config.Generator.MinMemorableLen < 1 {
		return errors.ConfigInvalid("EC_MIN_MEMORABLE must be at least 1")
	}
	if config.Generator.BatchConcurrency < 1 {
		return errors.ConfigInvalid("EC_BATCH_CONCURRENCY must be at least 1")
	}
	if config.Output.FileMode&0o077 != 0 {
		return errors.ConfigInvalid("EC_OUTPUT_MODE must not grant group or other access")
	}
	if _, err := strconv.Atoi(config.Server.Port); err != nil {
		return errors.ConfigInvalid("PORT must be numeric")
	}
	return nil
}

// Helper functions for environment variable parsing
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

// getEnvFileModeOrDefault parses an octal permission string such as "0600"
func getEnvFileModeOrDefault(key string, defaultValue os.FileMode) (os.FileMode, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	mode, err := strconv.ParseUint(value, 8, 32)
	if err != nil || mode > 0o777 {
		return 0, errors.ConfigInvalid(key + " must be an octal permission such as 0600")
	}
	return os.FileMode(mode), nil
}
