package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/data-power-io/esd-documents/logging"
)

type Config struct {
	values map[string]string
}

func Load() (*Config, error) {
	cfg := &Config{
		values: make(map[string]string),
	}

	cfg.loadFromEnv()
	return cfg, nil
}

// FromMap builds a config from explicit values, bypassing the environment
func FromMap(values map[string]string) *Config {
	cfg := &Config{values: make(map[string]string, len(values))}
	for k, v := range values {
		if v != "" {
			cfg.values[k] = v
		}
	}
	return cfg
}

func (c *Config) loadFromEnv() {
	envVars := []string{
		"ESD_LOG_LEVEL",
		"ESD_LOG_FORMAT",
		"ESD_LOG_OUTPUT",
		"ESD_LOG_DEVELOPMENT",
		"ESD_METRICS_TEXTFILE",
		"ESD_ARROW_BATCH_SIZE",
		"ESD_PAGE_SIZE",
		"ESD_XML_INDENT",
		"ESD_CODEC_TIMEOUT",
	}

	for _, envVar := range envVars {
		if value := os.Getenv(envVar); value != "" {
			c.values[envVar] = value
		}
	}
}

func (c *Config) GetString(key, defaultValue string) string {
	if value, exists := c.values[key]; exists {
		return value
	}
	return defaultValue
}

func (c *Config) GetInt(key string, defaultValue int) int {
	if value, exists := c.values[key]; exists {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func (c *Config) GetBool(key string, defaultValue bool) bool {
	if value, exists := c.values[key]; exists {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

func (c *Config) GetDuration(key string, defaultValue time.Duration) time.Duration {
	if value, exists := c.values[key]; exists {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

// LoggingConfig maps the ESD_LOG_* keys onto a logging.Config
func (c *Config) LoggingConfig() logging.Config {
	return logging.Config{
		Level:       strings.ToLower(c.GetString("ESD_LOG_LEVEL", "info")),
		Format:      c.GetString("ESD_LOG_FORMAT", "json"),
		OutputPath:  c.GetString("ESD_LOG_OUTPUT", ""),
		Development: c.GetBool("ESD_LOG_DEVELOPMENT", false),
		Fields: map[string]string{
			"service": "esd",
		},
	}
}

func (c *Config) MetricsTextfile() string {
	return c.GetString("ESD_METRICS_TEXTFILE", "")
}

func (c *Config) ArrowBatchSize() int {
	return c.GetInt("ESD_ARROW_BATCH_SIZE", 1000)
}

func (c *Config) PageSize() int {
	return c.GetInt("ESD_PAGE_SIZE", 500)
}

func (c *Config) XMLIndent() bool {
	return c.GetBool("ESD_XML_INDENT", true)
}

func (c *Config) CodecTimeout() time.Duration {
	return c.GetDuration("ESD_CODEC_TIMEOUT", 5*time.Minute)
}
