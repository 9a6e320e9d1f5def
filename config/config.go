// Package config reads the yi settings from the environment and an optional
// .env file.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds application configuration.
type Config struct {
	Store          string // store spec, see package store
	Slot           string
	Port           int
	LogLevel       string
	LogPretty      bool
	DevMode        bool
	GeminiModel    string
	AllowedOrigins []string

	S3Region          string
	S3Endpoint        string
	S3AccessKeyID     string
	S3SecretAccessKey string
}

// Load reads configuration from .env files (when present) then the environment.
func Load(files ...string) (*Config, error) {
	// a missing .env is fine
	_ = godotenv.Load(files...)

	cfg := &Config{
		Store:          getEnv("YI_STORE", "file:.younginvestor"),
		Slot:           getEnv("YI_SLOT", "default"),
		Port:           getEnvAsInt("YI_PORT", 8080),
		LogLevel:       getEnv("YI_LOG_LEVEL", "info"),
		LogPretty:      getEnvAsBool("YI_LOG_PRETTY", true),
		DevMode:        getEnvAsBool("YI_DEV_MODE", false),
		GeminiModel:    getEnv("YI_GEMINI_MODEL", "gemini-2.5-flash"),
		AllowedOrigins: getEnvAsList("YI_ALLOWED_ORIGINS", []string{"*"}),

		S3Region:          getEnv("YI_S3_REGION", ""),
		S3Endpoint:        getEnv("YI_S3_ENDPOINT", ""),
		S3AccessKeyID:     getEnv("YI_S3_ACCESS_KEY_ID", ""),
		S3SecretAccessKey: getEnv("YI_S3_SECRET_ACCESS_KEY", ""),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks that the configuration is usable.
func (c *Config) Validate() error {
	if c.Slot == "" {
		return fmt.Errorf("YI_SLOT must not be empty")
	}
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("YI_PORT out of range: %d", c.Port)
	}
	if (c.S3AccessKeyID == "") != (c.S3SecretAccessKey == "") {
		return fmt.Errorf("YI_S3_ACCESS_KEY_ID and YI_S3_SECRET_ACCESS_KEY go together")
	}
	return nil
}

// Addr is the listen address of the server.
func (c *Config) Addr() string { return fmt.Sprintf(":%d", c.Port) }

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return defaultValue
}

func getEnvAsList(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	var list []string
	for _, v := range strings.Split(value, ",") {
		if v = strings.TrimSpace(v); v != "" {
			list = append(list, v)
		}
	}
	return list
}
