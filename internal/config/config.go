package config

import (
	"fmt"
	"os"
	"strconv"
	"sync"

	"github.com/goccy/go-json"

	"shengji/internal/scoring"
)

// EngineConfig configures the rules engine module.
type EngineConfig struct {
	// RulesTokenSecret signs house-rules tokens. Empty disables rules tokens.
	RulesTokenSecret     string `json:"rules_token_secret" mapstructure:"rules_token_secret"`
	RulesTokenIssuer     string `json:"rules_token_issuer" mapstructure:"rules_token_issuer"`
	RulesTokenTTLSeconds int    `json:"rules_token_ttl_seconds" mapstructure:"rules_token_ttl_seconds"`
	// ZstdDictPath points at the dictionary used by zstd_decompress. The file
	// may itself be zstd-compressed.
	ZstdDictPath           string `json:"zstd_dict_path" mapstructure:"zstd_dict_path"`
	ExplainCacheSize       int    `json:"explain_cache_size" mapstructure:"explain_cache_size"`
	ExplainCacheTTLSeconds int    `json:"explain_cache_ttl_seconds" mapstructure:"explain_cache_ttl_seconds"`
	// DefaultScoring fills in scoring params missing from requests.
	DefaultScoring scoring.GameScoringParameters `json:"default_scoring" mapstructure:"default_scoring"`
}

// Env keys read from the Nakama runtime environment.
const (
	EnvConfigPath       = "shengji_config_path"
	EnvRulesSecret      = "shengji_rules_secret"
	EnvRulesIssuer      = "shengji_rules_issuer"
	EnvRulesTTLSeconds  = "shengji_rules_ttl_seconds"
	EnvZstdDictPath     = "shengji_zstd_dict_path"
	EnvExplainCacheSize = "shengji_explain_cache_size"
	EnvExplainCacheTTL  = "shengji_explain_cache_ttl_seconds"
)

// Defaults returns the configuration used when nothing is set.
func Defaults() EngineConfig {
	return EngineConfig{
		RulesTokenIssuer:       "shengji",
		RulesTokenTTLSeconds:   6 * 60 * 60,
		ExplainCacheSize:       256,
		ExplainCacheTTLSeconds: 600,
		DefaultScoring:         scoring.DefaultParameters(),
	}
}

var (
	cfg      *EngineConfig
	loadOnce sync.Once
	loadErr  error
)

// LoadEngineConfig loads the engine configuration from the given path once.
func LoadEngineConfig(path string) error {
	loadOnce.Do(func() {
		data, err := os.ReadFile(path)
		if err != nil {
			loadErr = fmt.Errorf("failed to read engine config: %w", err)
			return
		}
		c, err := Parse(data)
		if err != nil {
			loadErr = err
			return
		}
		cfg = &c
	})
	return loadErr
}

// GetEngineConfig returns the loaded configuration, or the defaults when
// nothing has been loaded.
func GetEngineConfig() EngineConfig {
	if cfg == nil {
		return Defaults()
	}
	return *cfg
}

// Parse decodes a JSON config on top of the defaults.
func Parse(data []byte) (EngineConfig, error) {
	c := Defaults()
	if err := json.Unmarshal(data, &c); err != nil {
		return EngineConfig{}, fmt.Errorf("failed to unmarshal engine config: %w", err)
	}
	return c, nil
}

// ApplyEnv overrides fields from the Nakama runtime environment.
func (c *EngineConfig) ApplyEnv(env map[string]string) error {
	if v := env[EnvRulesSecret]; v != "" {
		c.RulesTokenSecret = v
	}
	if v := env[EnvRulesIssuer]; v != "" {
		c.RulesTokenIssuer = v
	}
	if v := env[EnvZstdDictPath]; v != "" {
		c.ZstdDictPath = v
	}
	ints := []struct {
		key string
		dst *int
	}{
		{EnvRulesTTLSeconds, &c.RulesTokenTTLSeconds},
		{EnvExplainCacheSize, &c.ExplainCacheSize},
		{EnvExplainCacheTTL, &c.ExplainCacheTTLSeconds},
	}
	for _, f := range ints {
		raw := env[f.key]
		if raw == "" {
			continue
		}
		n, err := strconv.Atoi(raw)
		if err != nil {
			return fmt.Errorf("invalid %s: %w", f.key, err)
		}
		*f.dst = n
	}
	return nil
}
