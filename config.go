package main

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"
)

// ErrInvalidConfig is returned when the environment holds unusable settings.
var ErrInvalidConfig = errors.New("invalid configuration")

type Config struct {
	Port            string        `validate:"required,numeric"`
	Mode            string        `validate:"oneof=debug release test"`
	LogLevel        string        `validate:"oneof=trace debug info warn warning error fatal panic"`
	ContentPath     string        `validate:"omitempty,file"`
	ReadTimeout     time.Duration `validate:"gt=0"`
	WriteTimeout    time.Duration `validate:"gt=0"`
	ShutdownTimeout time.Duration `validate:"gt=0"`
}

// loadConfig reads settings from the environment. Variables from a .env file
// are already present thanks to godotenv/autoload.
func loadConfig() (Config, error) {
	cfg := Config{
		Port:        getenv("PORT", "8080"),
		Mode:        getenv("APP_MODE", gin.DebugMode),
		LogLevel:    getenv("LOG_LEVEL", "info"),
		ContentPath: os.Getenv("CONTENT_PATH"),
	}

	var err error
	if cfg.ReadTimeout, err = getenvDuration("READ_TIMEOUT", 10*time.Second); err != nil {
		return Config{}, err
	}
	if cfg.WriteTimeout, err = getenvDuration("WRITE_TIMEOUT", 10*time.Second); err != nil {
		return Config{}, err
	}
	if cfg.ShutdownTimeout, err = getenvDuration("SHUTDOWN_TIMEOUT", 5*time.Second); err != nil {
		return Config{}, err
	}

	if err := validator.New().Struct(cfg); err != nil {
		return Config{}, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	return cfg, nil
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getenvDuration(key string, fallback time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("%w: %s: %v", ErrInvalidConfig, key, err)
	}
	return d, nil
}

// setupLogging applies the configured level; release mode logs JSON.
func setupLogging(cfg Config) {
	level, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = logrus.InfoLevel
	}
	logrus.SetLevel(level)
	if cfg.Mode == gin.ReleaseMode {
		logrus.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}
	gin.SetMode(cfg.Mode)
}
