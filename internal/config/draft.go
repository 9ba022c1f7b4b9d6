package config

import (
	"log"
	"sync"
	"time"
)

const (
	DraftProviderOpenRouter = "openrouter"
	DraftProviderGemini     = "gemini"
)

type DraftConfig struct {
	Provider    string
	Timeout     time.Duration
	Temperature float64
}

var (
	draftConfig *DraftConfig
	draftOnce   sync.Once
)

func LoadDraftConfig() *DraftConfig {
	draftOnce.Do(func() {
		timeout, err := time.ParseDuration(getEnv("DRAFT_TIMEOUT", "90s"))
		if err != nil {
			log.Printf("Warning: invalid DRAFT_TIMEOUT, defaulting to 90s: %v", err)
			timeout = 90 * time.Second
		}
		provider := getEnv("DRAFT_PROVIDER", DraftProviderOpenRouter)
		if provider != DraftProviderOpenRouter && provider != DraftProviderGemini {
			log.Printf("Warning: unknown DRAFT_PROVIDER %q, defaulting to %s", provider, DraftProviderOpenRouter)
			provider = DraftProviderOpenRouter
		}
		draftConfig = &DraftConfig{
			Provider:    provider,
			Timeout:     timeout,
			Temperature: 0.3,
		}
	})
	return draftConfig
}
