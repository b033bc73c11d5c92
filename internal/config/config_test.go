package config

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/spf13/pflag"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Input != "input" {
		t.Errorf("expected Input 'input', got %q", cfg.Input)
	}
	if cfg.Output != "output" {
		t.Errorf("expected Output 'output', got %q", cfg.Output)
	}
	if cfg.Workers != runtime.NumCPU() {
		t.Errorf("expected Workers %d, got %d", runtime.NumCPU(), cfg.Workers)
	}
	if cfg.LogLevel != "info" {
		t.Errorf("expected LogLevel 'info', got %q", cfg.LogLevel)
	}
	if cfg.Debounce != 500*time.Millisecond {
		t.Errorf("expected Debounce 500ms, got %s", cfg.Debounce)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults should validate: %v", err)
	}
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("", nil)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Input != "input" || cfg.Output != "output" {
		t.Errorf("unexpected dirs: %+v", cfg)
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pdfoutline.yaml")
	content := "input: pdfs\noutput: json\nworkers: 3\nlog_level: debug\ndebounce: 2s\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path, nil)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	want := Config{Input: "pdfs", Output: "json", Workers: 3, LogLevel: "debug", Debounce: 2 * time.Second}
	if cfg != want {
		t.Errorf("Load() = %+v, want %+v", cfg, want)
	}
}

func TestLoadMissingExplicitFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml"), nil); err == nil {
		t.Error("expected error for missing explicit config file")
	}
}

func TestLoadPrecedence(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pdfoutline.yaml")
	if err := os.WriteFile(path, []byte("input: from-file\noutput: from-file\nworkers: 2\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	t.Setenv("PDFOUTLINE_OUTPUT", "from-env")
	t.Setenv("PDFOUTLINE_WORKERS", "5")
	t.Setenv("PDFOUTLINE_FAIL_FAST", "true")

	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	fs.String("input", "", "")
	fs.Int("workers", 0, "")
	fs.String("unrelated", "", "")
	if err := fs.Parse([]string{"--workers", "7"}); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path, fs)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Input != "from-file" {
		t.Errorf("unset flag should not override file: Input = %q", cfg.Input)
	}
	if cfg.Output != "from-env" {
		t.Errorf("env should override file: Output = %q", cfg.Output)
	}
	if cfg.Workers != 7 {
		t.Errorf("explicit flag should win: Workers = %d", cfg.Workers)
	}
	if !cfg.FailFast {
		t.Error("expected FailFast from env")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"defaults", func(*Config) {}, false},
		{"zero workers", func(c *Config) { c.Workers = 0 }, true},
		{"negative debounce", func(c *Config) { c.Debounce = -time.Second }, true},
		{"uppercase level", func(c *Config) { c.LogLevel = "WARN" }, false},
		{"unknown level", func(c *Config) { c.LogLevel = "verbose" }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)
			if err := cfg.Validate(); (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestWriteDefault(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pdfoutline.yaml")
	if err := WriteDefault(path); err != nil {
		t.Fatalf("WriteDefault: %v", err)
	}

	cfg, err := Load(path, nil)
	if err != nil {
		t.Fatalf("Load written default: %v", err)
	}
	if cfg != DefaultConfig() {
		t.Errorf("round trip = %+v, want %+v", cfg, DefaultConfig())
	}
}
