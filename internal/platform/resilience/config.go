package resilience

import "time"

// CircuitBreakerConfig is shared by the upstream clients. Zero values are
// replaced by the defaults when the breaker is built.
type CircuitBreakerConfig struct {
	Enabled          bool
	FailureThreshold int
	OpenTimeout      time.Duration
	HalfOpenMaxReq   int
}

const (
	defaultFailureThreshold = 5
	defaultOpenTimeout      = 15 * time.Second
	defaultHalfOpenMaxReq   = 2
)

func DefaultCircuitBreakerConfig() CircuitBreakerConfig {
	return CircuitBreakerConfig{
		Enabled:          true,
		FailureThreshold: defaultFailureThreshold,
		OpenTimeout:      defaultOpenTimeout,
		HalfOpenMaxReq:   defaultHalfOpenMaxReq,
	}
}

// WithDefaults fills unset thresholds and keeps Enabled as given.
func (cfg CircuitBreakerConfig) WithDefaults() CircuitBreakerConfig {
	if cfg.FailureThreshold < 1 {
		cfg.FailureThreshold = defaultFailureThreshold
	}
	if cfg.OpenTimeout <= 0 {
		cfg.OpenTimeout = defaultOpenTimeout
	}
	if cfg.HalfOpenMaxReq < 1 {
		cfg.HalfOpenMaxReq = defaultHalfOpenMaxReq
	}
	return cfg
}
