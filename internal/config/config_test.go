package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeConfig(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("failed to write config fixture: %v", err)
	}
	return path
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(writeConfig(t, "debug: true\n"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !cfg.Debug {
		t.Error("debug flag not read")
	}
	if cfg.Server.Host != "localhost" || cfg.Server.Port != 8080 {
		t.Errorf("server defaults = %s:%d", cfg.Server.Host, cfg.Server.Port)
	}
	if cfg.Build.MaxSnippets != 5 || cfg.Build.ProgressEvery != 1_000_000 {
		t.Errorf("build defaults = %+v", cfg.Build)
	}
	if cfg.Retrieval.TopK != 5 || cfg.Retrieval.BrowseLimit != 10 {
		t.Errorf("retrieval defaults = %+v", cfg.Retrieval)
	}
	if len(cfg.Classifier.PositiveTitleKeywords) == 0 {
		t.Error("classifier keywords not defaulted")
	}
	if cfg.Scoring.PriceWeight == 0 {
		t.Error("scoring weights not defaulted")
	}
}

func TestLoad_PartialOverride(t *testing.T) {
	cfg, err := Load(writeConfig(t, `
server:
  port: 9000
scoring:
  price_weight: 0.6
classifier:
  core_noun: camera
retrieval:
  top_k: 3
`))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Server.Port != 9000 {
		t.Errorf("port = %d, want 9000", cfg.Server.Port)
	}
	if cfg.Server.Host != "localhost" {
		t.Errorf("host default lost: %q", cfg.Server.Host)
	}
	if cfg.Scoring.PriceWeight != 0.6 {
		t.Errorf("price weight = %v, want 0.6", cfg.Scoring.PriceWeight)
	}
	// Untouched weights keep their defaults.
	if cfg.Scoring.RatingWeight == 0 {
		t.Error("rating weight not defaulted alongside the override")
	}
	if cfg.Classifier.CoreNoun != "camera" {
		t.Errorf("core noun = %q, want camera", cfg.Classifier.CoreNoun)
	}
	// The keyword groups not named still default.
	if len(cfg.Classifier.NegativePhrases) == 0 {
		t.Error("negative phrases not defaulted alongside the override")
	}
	if cfg.Retrieval.TopK != 3 {
		t.Errorf("top_k = %d, want 3", cfg.Retrieval.TopK)
	}
}

func TestLoad_PathExpansion(t *testing.T) {
	path := writeConfig(t, `
data:
  metadata_path: ./data/meta.jsonl
  reviews_path: /var/data/reviews.jsonl
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	wantMeta := filepath.Join(filepath.Dir(path), "data/meta.jsonl")
	if cfg.Data.MetadataPath != wantMeta {
		t.Errorf("metadata path = %q, want %q", cfg.Data.MetadataPath, wantMeta)
	}
	if cfg.Data.ReviewsPath != "/var/data/reviews.jsonl" {
		t.Errorf("absolute path rewritten: %q", cfg.Data.ReviewsPath)
	}
}

func TestLoad_Errors(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
	if _, err := Load(writeConfig(t, "server: [not a mapping\n")); err == nil {
		t.Error("expected error for invalid yaml")
	}
}

func TestSaveRoundTrip(t *testing.T) {
	var cfg Config
	ApplyDefaults(&cfg)
	cfg.Server.Port = 9999
	cfg.Classifier.CoreNoun = "speaker"

	path := filepath.Join(t.TempDir(), "saved.yaml")
	if err := Save(path, &cfg); err != nil {
		t.Fatalf("Save: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load after Save: %v", err)
	}
	if loaded.Server.Port != 9999 {
		t.Errorf("port = %d, want 9999", loaded.Server.Port)
	}
	if loaded.Classifier.CoreNoun != "speaker" {
		t.Errorf("core noun = %q, want speaker", loaded.Classifier.CoreNoun)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read saved config: %v", err)
	}
	if !strings.Contains(string(data), "core_noun: speaker") {
		t.Error("saved yaml missing overridden field")
	}
}
