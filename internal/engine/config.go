package engine

import (
	"net/http"
	"time"
)

// Config holds all engine configuration, injected from main.
type Config struct {
	MaxFetchAttempts int           // attempts per transcript fetch
	DefaultLanguage  string        // preferred caption language when the caller sends none
	FetchTimeout     time.Duration
	RateLimit        float64 // upstream requests per second; <= 0 disables limiting
	RateBurst        int
	HTTPClient       *http.Client
	BrowserClient    *BrowserClient // nil = watch pages fetched with plain HTTP
}

var cfg Config

// Cfg exposes the engine configuration for sub-packages (transcript, youtube).
// Always points to the current cfg value.
var Cfg = &cfg

// Init initializes the engine with the given configuration.
func Init(c Config) {
	cfg = c
	Cfg = &cfg
}
