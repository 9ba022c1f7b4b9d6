package config

import (
	"log"
	"os"
	"sync"
)

type AppConfig struct {
	Name      string
	Env       string
	Port      string
	BaseURL   string
	LogLevel  string
	LogFormat string
	UploadDir string
}

var (
	appConfig *AppConfig
	appOnce   sync.Once
)

func LoadAppConfig() *AppConfig {
	appOnce.Do(func() {
		env := os.Getenv("APP_ENV")
		if env == "" {
			env = "development"
			log.Printf("Warning: APP_ENV not set, defaulting to %s", env)
		}
		name := os.Getenv("APP_NAME")
		if name == "" {
			name = "review-composer"
		}
		port := os.Getenv("APP_PORT")
		if port == "" {
			port = ":8080"
		}
		logFormat := os.Getenv("LOG_FORMAT")
		if logFormat == "" {
			logFormat = "console"
			if env == "production" {
				logFormat = "json"
			}
		}
		appConfig = &AppConfig{
			Name:      name,
			Env:       env,
			Port:      port,
			BaseURL:   os.Getenv("APP_URL"),
			LogLevel:  getEnv("LOG_LEVEL", "info"),
			LogFormat: logFormat,
			UploadDir: getEnv("UPLOAD_DIR", "./uploads/submissions"),
		}
	})
	return appConfig
}

func (c *AppConfig) IsProduction() bool {
	return c.Env == "production"
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
