package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestParseKeepsDefaults(t *testing.T) {
	c, err := Parse([]byte(`{"rules_token_secret":"s3cret","default_scoring":{"deadzone_size":0}}`))
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}
	if c.RulesTokenSecret != "s3cret" {
		t.Errorf("RulesTokenSecret = %q", c.RulesTokenSecret)
	}
	if c.ExplainCacheSize != 256 {
		t.Errorf("ExplainCacheSize = %d, want default 256", c.ExplainCacheSize)
	}
	if c.DefaultScoring.DeadzoneSize != 0 || c.DefaultScoring.StepSizePerDeck != 20 {
		t.Errorf("DefaultScoring = %+v", c.DefaultScoring)
	}
}

func TestParseRejectsMalformed(t *testing.T) {
	if _, err := Parse([]byte(`{"explain_cache_size":"lots"}`)); err == nil {
		t.Fatal("expected error for malformed config")
	}
}

func TestApplyEnv(t *testing.T) {
	c := Defaults()
	err := c.ApplyEnv(map[string]string{
		EnvRulesSecret:      "from-env",
		EnvExplainCacheSize: "12",
	})
	if err != nil {
		t.Fatalf("ApplyEnv error: %v", err)
	}
	if c.RulesTokenSecret != "from-env" || c.ExplainCacheSize != 12 {
		t.Errorf("config = %+v", c)
	}

	if err := c.ApplyEnv(map[string]string{EnvRulesTTLSeconds: "soon"}); err == nil {
		t.Error("expected error for non-numeric ttl")
	}
}

func TestLoadEngineConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "engine.json")
	if err := os.WriteFile(path, []byte(`{"zstd_dict_path":"/tmp/dict"}`), 0o600); err != nil {
		t.Fatal(err)
	}
	if err := LoadEngineConfig(path); err != nil {
		t.Fatalf("LoadEngineConfig error: %v", err)
	}
	if got := GetEngineConfig().ZstdDictPath; got != "/tmp/dict" {
		t.Errorf("ZstdDictPath = %q", got)
	}
}
