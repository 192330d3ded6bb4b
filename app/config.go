package app

import (
	"time"

	"github.com/unus-solutions/propdocs/pkg/cookie"
	"github.com/unus-solutions/propdocs/pkg/file"
	"github.com/unus-solutions/propdocs/pkg/httpserver"
	"github.com/unus-solutions/propdocs/pkg/i18n"
	"github.com/unus-solutions/propdocs/svc/documents"
)

// Config is the whole process configuration, read from the environment
// (and an optional .env file) by config.Load.
type Config struct {
	Env             string        `env:"APP_ENV" envDefault:"development"`
	Name            string        `env:"APP_NAME" envDefault:"propdocs"`
	CredentialsFile string        `env:"CREDENTIALS_FILE" envDefault:"config/credentials.yaml"`
	ScratchDir      string        `env:"SCRATCH_DIR"`
	LinkTTL         time.Duration `env:"LINK_TTL" envDefault:"1h"`
	DefaultLanguage string        `env:"DEFAULT_LANGUAGE" envDefault:"pt"`

	// LoginRateLimit is the login attempt burst per client address; zero disables throttling.
	LoginRateLimit    int           `env:"LOGIN_RATE_LIMIT" envDefault:"10"`
	LoginRateInterval time.Duration `env:"LOGIN_RATE_INTERVAL" envDefault:"30s"`

	HTTP   httpserver.Config
	S3     file.S3Config
	Cookie cookie.Config
}

// DefaultConfig returns the values Load would produce with an empty environment.
func DefaultConfig() Config {
	return Config{
		Env:               "development",
		Name:              "propdocs",
		CredentialsFile:   "config/credentials.yaml",
		LinkTTL:           documents.DefaultLinkTTL,
		DefaultLanguage:   i18n.DefaultLanguage,
		LoginRateLimit:    10,
		LoginRateInterval: 30 * time.Second,
		HTTP: httpserver.Config{
			Addr:            ":8080",
			ReadTimeout:     30 * time.Second,
			WriteTimeout:    5 * time.Minute,
			IdleTimeout:     120 * time.Second,
			ShutdownTimeout: 10 * time.Second,
		},
		S3:     file.S3Config{Region: "us-east-1"},
		Cookie: cookie.DefaultConfig(),
	}
}
