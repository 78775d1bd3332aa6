package config

import (
	"time"

	"github.com/caarlos0/env/v11"
)

const defaultSummaryPrompt = "Summarize the following text in a clear, concise paragraph. " +
	"Keep the key points and drop the filler.\n\n"

type Config struct {
	Port        string `env:"PORT" envDefault:"8080"`
	Environment string `env:"ENVIRONMENT" envDefault:"development"`

	OpenAIAPIKey string `env:"OPENAI_API_KEY,required,notEmpty"`

	// DatabaseURL enables the optional request-log sink when set.
	DatabaseURL string `env:"DATABASE_URL"`

	RateLimitWindow   time.Duration `env:"RATE_LIMIT_WINDOW" envDefault:"10m"`
	RateLimitMax      int           `env:"RATE_LIMIT_MAX" envDefault:"5"`
	RateLimitCapacity int           `env:"RATE_LIMIT_CAPACITY" envDefault:"500"`

	MinTextLength int `env:"MIN_TEXT_LENGTH" envDefault:"50"`
	MaxTextLength int `env:"MAX_TEXT_LENGTH" envDefault:"30000"`

	// SummaryPrompt is prepended to every submitted text before the
	// upstream call.
	SummaryPrompt string `env:"SUMMARY_PROMPT"`
}

func Load() (*Config, error) {
	cfg, err := env.ParseAs[Config]()
	if err != nil {
		return nil, err
	}
	if cfg.SummaryPrompt == "" {
		cfg.SummaryPrompt = defaultSummaryPrompt
	}
	return &cfg, nil
}
