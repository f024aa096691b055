package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

const validConfig = `
Timestamp:
  Pattern: 'at (\d{2}:\d{2}:\d{2})'
  Format: '15:04:05'
Durations:
  - Pattern: 'took (?P<m>\d+)m(?P<s>[\d.]+)s'
  - Pattern: 'elapsed (?P<s>[\d.]+)'
Colors:
  - Pattern: 'compile'
    Color: '#4477aa'
  - Pattern: 'link'
    Color: '#aa4444'
    Group: 1
Output:
  Path: 'out.html'
`

func TestLoadConfig_Valid(t *testing.T) {
	cfg, err := LoadConfig(writeConfig(t, validConfig))
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Timestamp.Format != "15:04:05" {
		t.Fatalf("expected format 15:04:05, got %q", cfg.Timestamp.Format)
	}
	if len(cfg.Durations) != 2 {
		t.Fatalf("expected 2 duration rules, got %d", len(cfg.Durations))
	}
	if len(cfg.Colors) != 2 {
		t.Fatalf("expected 2 color rules, got %d", len(cfg.Colors))
	}
	if cfg.Colors[0].Group != 0 {
		t.Fatalf("group must default to 0, got %d", cfg.Colors[0].Group)
	}
	if cfg.Colors[1].Group != 1 {
		t.Fatalf("expected group 1, got %d", cfg.Colors[1].Group)
	}
	if cfg.Output.Path != "out.html" {
		t.Fatalf("expected output path out.html, got %q", cfg.Output.Path)
	}
	if cfg.ClickHouse.Enable {
		t.Fatal("clickhouse export must be off by default")
	}
}

func TestLoadConfig_SanitizesBOMAndTabs(t *testing.T) {
	// BOM в начале файла и табуляции в отступах не должны ломать разбор
	dirty := "\xEF\xBB\xBF" + strings.ReplaceAll(validConfig, "  ", "\t")
	cfg, err := LoadConfig(writeConfig(t, dirty))
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if len(cfg.Durations) != 2 {
		t.Fatalf("expected 2 duration rules, got %d", len(cfg.Durations))
	}
}

func TestLoadConfig_MissingFile(t *testing.T) {
	if _, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatal("expected an error for a missing file")
	}
}

func TestValidate_Errors(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{
			name:    "no timestamp pattern",
			mutate:  func(c *Config) { c.Timestamp.Pattern = "" },
			wantErr: "Timestamp.Pattern",
		},
		{
			name:    "no timestamp format",
			mutate:  func(c *Config) { c.Timestamp.Format = "" },
			wantErr: "Timestamp.Format",
		},
		{
			name:    "no duration rules",
			mutate:  func(c *Config) { c.Durations = nil },
			wantErr: "Durations",
		},
		{
			name:    "no color rules",
			mutate:  func(c *Config) { c.Colors = nil },
			wantErr: "Colors",
		},
		{
			name:    "negative group",
			mutate:  func(c *Config) { c.Colors[0].Group = -1 },
			wantErr: "Group",
		},
		{
			name: "clickhouse enabled without address",
			mutate: func(c *Config) {
				c.ClickHouse.Enable = true
				c.ClickHouse.Database = "default"
				c.ClickHouse.Table = "events"
			},
			wantErr: "ClickHouse.Address",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{
				Timestamp: TimestampConfig{Pattern: `(\d+)`, Format: "15:04:05"},
				Durations: []DurationConfig{{Pattern: `(?P<s>\d+)`}},
				Colors:    []ColorConfig{{Pattern: ".", Color: "#000"}},
			}
			tt.mutate(cfg)
			err := cfg.Validate()
			if err == nil {
				t.Fatal("expected a validation error")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Fatalf("expected error mentioning %q, got: %v", tt.wantErr, err)
			}
		})
	}
}
