package config

import (
	"time"

	"github.com/caarlos0/env/v11"
)

// Config is built once in main and passed to constructors.
// Nothing reads the environment after startup.
type Config struct {
	HTTPAddr string `env:"ADDR" envDefault:":8080"`

	// Yousign API. The base URL defaults to the sandbox; the key never does.
	YousignBaseURL string `env:"YOUSIGN_API_BASE_URL" envDefault:"https://api-sandbox.yousign.app/v3"`
	YousignAPIKey  string `env:"YOUSIGN_API_KEY,required,notEmpty"`

	// Upstash-compatible REST store holding webhook-fed status records.
	StoreURL   string `env:"UPSTASH_REDIS_REST_URL,required,notEmpty"`
	StoreToken string `env:"UPSTASH_REDIS_REST_TOKEN,required,notEmpty"`

	// Path to the NDA AcroForm template filled per signer.
	TemplatePath string `env:"NDA_TEMPLATE_PATH,required,notEmpty"`

	// Signing-link polling bounds after activation.
	PollMaxAttempts int           `env:"POLL_MAX_ATTEMPTS" envDefault:"20"`
	PollInterval    time.Duration `env:"POLL_INTERVAL" envDefault:"5s"`

	// Optional GELF UDP endpoint, e.g. "172.17.0.1:12201".
	GelfAddr string `env:"GELF_ADDR"`
}

func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}
