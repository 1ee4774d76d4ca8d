package nakama

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"shengji/internal/app"
	"shengji/internal/codec"
	"shengji/internal/config"
	"shengji/internal/ports"

	"github.com/heroiclabs/nakama-common/runtime"
)

// InitModule loads the engine config and registers the rules engine RPCs.
func InitModule(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, initializer runtime.Initializer) error {
	env, _ := ctx.Value(runtime.RUNTIME_CTX_ENV).(map[string]string)
	if path := env[config.EnvConfigPath]; path != "" {
		if err := config.LoadEngineConfig(path); err != nil {
			logger.Error("Failed to load engine config from %s: %v", path, err)
			return err
		}
	}

	cfg := config.GetEngineConfig()
	if err := cfg.ApplyEnv(env); err != nil {
		logger.Error("Invalid engine env: %v", err)
		return err
	}
	if cfg.RulesTokenSecret == "" {
		logger.Warn("Rules token secret missing from env, rules tokens are disabled.")
	}

	module, err := NewModuleFromConfig(cfg, NewNakamaEventAdapter(nk))
	if err != nil {
		logger.Error("Failed to build module: %v", err)
		return err
	}
	if err := module.RegisterRPCs(initializer); err != nil {
		return err
	}

	logger.Info("Shengji Go module loaded with %d RPCs.", len(module.RpcIDs()))
	return nil
}

// NewModuleFromConfig builds the service, signer and decompressor described
// by cfg.
func NewModuleFromConfig(cfg config.EngineConfig, events ports.EventSink) (*Module, error) {
	opts := []app.Option{
		app.WithDefaultScoring(cfg.DefaultScoring),
		app.WithExplainCache(cfg.ExplainCacheSize, time.Duration(cfg.ExplainCacheTTLSeconds)*time.Second),
	}
	if cfg.RulesTokenSecret != "" {
		ttl := time.Duration(cfg.RulesTokenTTLSeconds) * time.Second
		opts = append(opts, app.WithRulesSigner(app.NewRulesSigner(cfg.RulesTokenSecret, cfg.RulesTokenIssuer, ttl)))
	}

	var dict []byte
	if cfg.ZstdDictPath != "" {
		d, err := codec.LoadDictionary(cfg.ZstdDictPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load zstd dictionary: %w", err)
		}
		dict = d
	}

	return NewModule(app.NewService(opts...), codec.NewDecompressor(dict), events), nil
}
