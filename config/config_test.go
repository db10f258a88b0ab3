package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.ArchiveDSN != "cmds.db" {
		t.Errorf("ArchiveDSN = %q, want default", cfg.ArchiveDSN)
	}
	if len(cfg.LookbackDays) != 4 || cfg.LookbackDays[3] != 1000 {
		t.Errorf("LookbackDays = %v, want default ladder", cfg.LookbackDays)
	}
	if cfg.SunVectorSampleSecs != 10000 {
		t.Errorf("SunVectorSampleSecs = %v, want 10000", cfg.SunVectorSampleSecs)
	}
	if cfg.LogLevel != "info" {
		t.Errorf("LogLevel = %q, want info", cfg.LogLevel)
	}
}

func TestLoadOverridesPartialValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cfg.yaml")
	content := "archive_dsn: /data/cmds.db\nlog_level: debug\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.ArchiveDSN != "/data/cmds.db" {
		t.Errorf("ArchiveDSN = %q", cfg.ArchiveDSN)
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("LogLevel = %q", cfg.LogLevel)
	}
	if cfg.EventsDSN != "events.db" {
		t.Errorf("EventsDSN = %q, want default to still apply", cfg.EventsDSN)
	}
}

func TestLoadInvalidLogLevelPanics(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cfg.yaml")
	if err := os.WriteFile(path, []byte("log_level: loud\n"), 0644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic for invalid log_level")
		}
	}()
	Load(path)
}
