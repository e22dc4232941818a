package config

import (
	"bytes"
	"strings"
	"testing"
	"time"
)

var allVars = []string{
	"LOG_LEVEL", "LOG_STYLE", "ENGINE_PATH", "ENGINE_DEPTH", "ENGINE_MOVE_TIME_MS",
	"ENGINE_TIMEOUT_MS", "MEDIUM_DEPTH", "HARD_DEPTH", "QUIESCENCE_DEPTH", "HTTP_ADDR",
}

func clearEnv(t *testing.T) {
	t.Helper()
	for _, name := range allVars {
		t.Setenv(name, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if cfg.Logs.Level != "info" || cfg.Logs.Style != "console" {
		t.Fatalf("log defaults: %+v", cfg.Logs)
	}
	if cfg.Engine.Path != "" || cfg.Engine.Depth != 12 || cfg.Engine.MoveTime != 500*time.Millisecond || cfg.Engine.Timeout != 2*time.Second {
		t.Fatalf("engine defaults: %+v", cfg.Engine)
	}
	if cfg.Search.MediumDepth != 2 || cfg.Search.HardDepth != 3 || cfg.Search.QuiescenceDepth != 3 {
		t.Fatalf("search defaults: %+v", cfg.Search)
	}
	if cfg.HTTP.Addr != "0.0.0.0:8080" {
		t.Fatalf("http default: %q", cfg.HTTP.Addr)
	}
}

func TestLoadOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("ENGINE_PATH", "/usr/games/stockfish")
	t.Setenv("ENGINE_MOVE_TIME_MS", "250")
	t.Setenv("HARD_DEPTH", "4")
	t.Setenv("LOG_STYLE", "json")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if cfg.Engine.Path != "/usr/games/stockfish" || cfg.Engine.MoveTime != 250*time.Millisecond {
		t.Fatalf("engine overrides: %+v", cfg.Engine)
	}
	pc := cfg.PolicyConfig()
	if pc.HardDepth != 4 || pc.External.MoveTime != 250*time.Millisecond || pc.External.Depth != 12 {
		t.Fatalf("policy config: %+v", pc)
	}
}

func TestLoadRejectsBadValues(t *testing.T) {
	clearEnv(t)
	t.Setenv("ENGINE_DEPTH", "deep")
	t.Setenv("MEDIUM_DEPTH", "-1")
	t.Setenv("LOG_STYLE", "xml")

	_, err := Load()
	if err == nil {
		t.Fatalf("expected an error for malformed values")
	}
	for _, name := range []string{"ENGINE_DEPTH", "MEDIUM_DEPTH", "LOG_STYLE"} {
		if !strings.Contains(err.Error(), name) {
			t.Fatalf("error %q does not mention %s", err, name)
		}
	}
}

func TestNewLoggerJSON(t *testing.T) {
	var buf bytes.Buffer
	log := NewLogger(LogConfig{Style: "json", Level: "warn"}, &buf)
	log.Info().Msg("hidden")
	log.Warn().Str("tier", "hard").Msg("shown")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Fatalf("info line written at warn level: %q", out)
	}
	if !strings.Contains(out, `"tier":"hard"`) || !strings.Contains(out, `"message":"shown"`) {
		t.Fatalf("unexpected json output: %q", out)
	}
}
