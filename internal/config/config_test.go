package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadConfig(t *testing.T) {
	// Test default config loading (without config file)
	cfg, err := LoadConfig("")
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}

	// Check defaults
	if cfg.ScoreThreshold != 90 {
		t.Errorf("Default score_threshold = %v, want %v", cfg.ScoreThreshold, 90)
	}

	if cfg.UseHash != true {
		t.Errorf("Default use_hash = %v, want %v", cfg.UseHash, true)
	}

	if cfg.DigestCase != DigestUpper {
		t.Errorf("Default digest_case = %v, want %v", cfg.DigestCase, DigestUpper)
	}

	if cfg.ReportFormat != "" {
		t.Errorf("Default report_format = %v, want %v", cfg.ReportFormat, "")
	}

	if cfg.ConsoleFile != "duplicate.txt" {
		t.Errorf("Default console_file = %v, want %v", cfg.ConsoleFile, "duplicate.txt")
	}

	if cfg.HashBufferBytes() != 64*1024 {
		t.Errorf("Default hash buffer = %v, want %v", cfg.HashBufferBytes(), 64*1024)
	}

	if cfg.Workers <= 0 {
		t.Errorf("Default workers = %v, want > 0", cfg.Workers)
	}

	if len(cfg.Exclude) != 0 {
		t.Errorf("Default exclude count = %v, want 0", len(cfg.Exclude))
	}

	if err := cfg.Validate(); err != nil {
		t.Errorf("Default config Validate() error = %v", err)
	}
}

func TestLoadConfig_Environment(t *testing.T) {
	t.Setenv("DUPHOUND_SCORE_THRESHOLD", "75")
	t.Setenv("DUPHOUND_USE_HASH", "false")
	t.Setenv("DUPHOUND_DIGEST_CASE", "lower")

	cfg, err := LoadConfig("")
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}

	if cfg.ScoreThreshold != 75 {
		t.Errorf("score_threshold = %v, want %v", cfg.ScoreThreshold, 75)
	}
	if cfg.UseHash {
		t.Errorf("use_hash = %v, want %v", cfg.UseHash, false)
	}
	if !cfg.LowerDigest() {
		t.Errorf("LowerDigest() = %v, want %v", cfg.LowerDigest(), true)
	}
}

func TestLoadConfig_File(t *testing.T) {
	tmpDir := t.TempDir()
	configFile := filepath.Join(tmpDir, "duphound.yaml")
	content := "score_threshold: 60\nexclude:\n  - .git\n  - node_modules\nreport_format: json\n"
	if err := os.WriteFile(configFile, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write config file: %v", err)
	}

	cfg, err := LoadConfig(configFile)
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}

	if cfg.ScoreThreshold != 60 {
		t.Errorf("score_threshold = %v, want %v", cfg.ScoreThreshold, 60)
	}
	if len(cfg.Exclude) != 2 {
		t.Errorf("exclude count = %v, want %v", len(cfg.Exclude), 2)
	}
	if cfg.ReportFormat != "json" {
		t.Errorf("report_format = %v, want %v", cfg.ReportFormat, "json")
	}
}

func TestLoadConfig_MissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	if err == nil {
		t.Error("LoadConfig() expected error for missing config file, got nil")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"Valid", func(c *Config) {}, false},
		{"Negative threshold", func(c *Config) { c.ScoreThreshold = -1 }, true},
		{"Zero threshold", func(c *Config) { c.ScoreThreshold = 0 }, false},
		{"Lower digest", func(c *Config) { c.DigestCase = "lower" }, false},
		{"Mixed case digest name", func(c *Config) { c.DigestCase = "LOWER" }, false},
		{"Invalid digest", func(c *Config) { c.DigestCase = "base64" }, true},
		{"JSON report", func(c *Config) { c.ReportFormat = "json" }, false},
		{"SQLite report", func(c *Config) { c.ReportFormat = "sqlite" }, false},
		{"Invalid report", func(c *Config) { c.ReportFormat = "xml" }, true},
		{"Invalid buffer", func(c *Config) { c.HashBuffer = "abc" }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{ScoreThreshold: 90, DigestCase: DigestUpper, HashBuffer: "64K"}
			tt.mutate(cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestGetWorkers(t *testing.T) {
	cfg := &Config{Workers: 3}
	if got := cfg.GetWorkers(); got != 3 {
		t.Errorf("GetWorkers() = %v, want %v", got, 3)
	}

	cfg.Workers = 0
	if got := cfg.GetWorkers(); got <= 0 {
		t.Errorf("GetWorkers() = %v, want > 0", got)
	}
}

func TestParseSize(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected int64
	}{
		{"Bytes", "100", 100},
		{"Kilobytes", "1K", 1024},
		{"Kilobytes lowercase", "1k", 1024},
		{"Megabytes", "1M", 1024 * 1024},
		{"Megabytes lowercase", "1m", 1024 * 1024},
		{"Gigabytes", "1G", 1024 * 1024 * 1024},
		{"Multiple KB", "64K", 64 * 1024},
		{"Multiple MB", "10M", 10 * 1024 * 1024},
		{"Invalid format", "abc", 0},
		{"Empty string", "", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ParseSize(tt.input); got != tt.expected {
				t.Errorf("ParseSize(%q) = %v, want %v", tt.input, got, tt.expected)
			}
		})
	}
}
