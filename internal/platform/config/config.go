package config

import (
	"os"
	"time"
)

// FailurePolicy controls how the engine treats a rule evaluator fault.
type FailurePolicy string

const (
	// FailurePolicyWarn downgrades an evaluator fault to a warn flag and
	// continues, so one misbehaving evaluator cannot corrupt unrelated
	// decisions.
	FailurePolicyWarn FailurePolicy = "warn"
	// FailurePolicyReject treats an evaluator fault as a rejecting failure.
	// Use when rules carry security-critical logic.
	FailurePolicyReject FailurePolicy = "reject"
)

// Server captures process-level configuration for the gatekeeper service.
type Server struct {
	Addr                   string
	DatabaseURL            string
	RuleCacheTTL           time.Duration
	EvaluatorFailurePolicy FailurePolicy
	SeedOnStart            bool
}

// FromEnv builds a Server config from environment variables so main stays lean.
func FromEnv() Server {
	addr := os.Getenv("EXHIBIT_ADDR")
	if addr == "" {
		addr = ":8080"
	}

	// Empty URL selects the in-memory stores (development mode).
	databaseURL := os.Getenv("EXHIBIT_DATABASE_URL")

	ttl := 5 * time.Minute
	if raw := os.Getenv("EXHIBIT_RULE_CACHE_TTL"); raw != "" {
		if parsed, err := time.ParseDuration(raw); err == nil && parsed > 0 {
			ttl = parsed
		}
	}

	policy := FailurePolicyWarn
	if os.Getenv("EXHIBIT_EVALUATOR_FAILURE_POLICY") == string(FailurePolicyReject) {
		policy = FailurePolicyReject
	}

	return Server{
		Addr:                   addr,
		DatabaseURL:            databaseURL,
		RuleCacheTTL:           ttl,
		EvaluatorFailurePolicy: policy,
		SeedOnStart:            os.Getenv("EXHIBIT_SKIP_SEED") != "true",
	}
}
