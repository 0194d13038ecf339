// Package config provides configuration loading and management for retailsim.
package config

// Config is the root configuration.
type Config struct {
	Scoring ScoringConfig `json:"scoring" mapstructure:"scoring"`
}

// ScoringConfig tunes the rewards the equivalence scorer emits.
type ScoringConfig struct {
	Match    float64 `json:"match"              mapstructure:"match"`
	Mismatch float64 `json:"mismatch,omitempty" mapstructure:"mismatch"`
}

// Default returns the binary-reward configuration used when no config
// file is present.
func Default() Config {
	return Config{
		Scoring: ScoringConfig{Match: 1.0, Mismatch: 0.0},
	}
}
