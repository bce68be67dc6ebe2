package backend

import (
	"os"
	"strconv"
	"strings"
)

// Operation identifies one kind of call made to the evaluation backend.
type Operation string

const (
	OpSubmitEvaluation Operation = "submit_evaluation"
	OpListExperiences  Operation = "list_experiences"
	OpListEnum         Operation = "list_enum"
)

// Config holds the REST backend settings. An empty BaseURL means no remote
// backend is configured and the local store is used instead.
type Config struct {
	BaseURL    string
	Token      string
	UserID     int
	LogCalls   bool
	TimeoutMs  int
	MaxRetries int
	// Timeouts overrides TimeoutMs per operation when > 0.
	Timeouts map[Operation]int
}

func DefaultConfig() Config {
	return Config{
		TimeoutMs:  15000,
		MaxRetries: 1,
		Timeouts: map[Operation]int{
			OpSubmitEvaluation: 15000,
			OpListExperiences:  10000,
			OpListEnum:         5000,
		},
	}
}

// LoadConfig reads backend configuration from environment variables,
// falling back to defaults for any unset values.
func LoadConfig() Config {
	cfg := DefaultConfig()

	if v := os.Getenv("EVALUADOR_API_URL"); v != "" {
		cfg.BaseURL = strings.TrimRight(v, "/")
	}
	if v := os.Getenv("EVALUADOR_API_TOKEN"); v != "" {
		cfg.Token = v
	}
	if v := os.Getenv("EVALUADOR_USER_ID"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.UserID = n
		}
	}
	if v := os.Getenv("EVALUADOR_API_LOG_CALLS"); v != "" {
		cfg.LogCalls, _ = strconv.ParseBool(v)
	}
	if v := os.Getenv("EVALUADOR_API_TIMEOUT_MS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.TimeoutMs = n
			cfg.Timeouts[OpSubmitEvaluation] = n
		}
	}
	if v := os.Getenv("EVALUADOR_API_MAX_RETRIES"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			cfg.MaxRetries = n
		}
	}
	return cfg
}

// Enabled reports whether a remote backend is configured.
func (c Config) Enabled() bool { return c.BaseURL != "" }

// Timeout returns the effective timeout for op in milliseconds.
func (c Config) Timeout(op Operation) int {
	if ms, ok := c.Timeouts[op]; ok && ms > 0 {
		return ms
	}
	return c.TimeoutMs
}
