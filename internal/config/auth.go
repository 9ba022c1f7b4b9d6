package config

import (
	"log"
	"os"
	"sync"
	"time"
)

type AuthConfig struct {
	JWTSecret      []byte
	JWTIssuer      string
	AccessTokenTTL time.Duration
}

var (
	authConfig *AuthConfig
	authOnce   sync.Once
)

func LoadAuthConfig() *AuthConfig {
	authOnce.Do(func() {
		ttl, err := time.ParseDuration(getEnv("JWT_ACCESS_TTL", "12h"))
		if err != nil {
			log.Printf("Warning: invalid JWT_ACCESS_TTL, defaulting to 12h: %v", err)
			ttl = 12 * time.Hour
		}
		authConfig = &AuthConfig{
			JWTSecret:      []byte(os.Getenv("JWT_SECRET")),
			JWTIssuer:      getEnv("JWT_ISSUER", "review-composer"),
			AccessTokenTTL: ttl,
		}
	})
	return authConfig
}
