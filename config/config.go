// Package config reads the service configuration from the environment. A .env
// file in the working directory is loaded first when present.
package config

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"chess-opponent/engine"

	// this will automatically load your .env file:
	_ "github.com/joho/godotenv/autoload"
	"github.com/rs/zerolog"
)

type Config struct {
	Logs   LogConfig
	Engine EngineConfig
	Search SearchConfig
	HTTP   HTTPConfig
}

type LogConfig struct {
	Style string // "console" or "json"
	Level string
}

// EngineConfig describes the external UCI engine. An empty Path disables it.
type EngineConfig struct {
	Path     string
	Depth    int
	MoveTime time.Duration
	Timeout  time.Duration
}

type SearchConfig struct {
	MediumDepth     int
	HardDepth       int
	QuiescenceDepth int
}

type HTTPConfig struct {
	Addr string
}

// Load builds a Config from the environment, applying defaults for unset
// variables. Malformed values are reported, not defaulted.
func Load() (*Config, error) {
	var errs []string
	intVar := func(name string, def int) int {
		v, err := envInt(name, def)
		if err != nil {
			errs = append(errs, err.Error())
		}
		return v
	}

	cfg := &Config{
		Logs: LogConfig{
			Style: envString("LOG_STYLE", "console"),
			Level: envString("LOG_LEVEL", "info"),
		},
		Engine: EngineConfig{
			Path:     os.Getenv("ENGINE_PATH"),
			Depth:    intVar("ENGINE_DEPTH", 12),
			MoveTime: time.Duration(intVar("ENGINE_MOVE_TIME_MS", 500)) * time.Millisecond,
			Timeout:  time.Duration(intVar("ENGINE_TIMEOUT_MS", 2000)) * time.Millisecond,
		},
		Search: SearchConfig{
			MediumDepth:     intVar("MEDIUM_DEPTH", 2),
			HardDepth:       intVar("HARD_DEPTH", 3),
			QuiescenceDepth: intVar("QUIESCENCE_DEPTH", engine.DefaultQuiescenceDepth),
		},
		HTTP: HTTPConfig{
			Addr: envString("HTTP_ADDR", "0.0.0.0:8080"),
		},
	}

	if _, err := zerolog.ParseLevel(strings.ToLower(cfg.Logs.Level)); err != nil {
		errs = append(errs, fmt.Sprintf("LOG_LEVEL: %v", err))
	}
	if s := cfg.Logs.Style; s != "console" && s != "json" {
		errs = append(errs, fmt.Sprintf("LOG_STYLE: want console or json, got %q", s))
	}

	if len(errs) > 0 {
		return nil, fmt.Errorf("config: %s", strings.Join(errs, "; "))
	}
	return cfg, nil
}

// PolicyConfig converts the search and engine settings for engine.NewPolicy.
func (c *Config) PolicyConfig() engine.PolicyConfig {
	return engine.PolicyConfig{
		MediumDepth:     c.Search.MediumDepth,
		HardDepth:       c.Search.HardDepth,
		QuiescenceDepth: c.Search.QuiescenceDepth,
		External: engine.ExternalBudget{
			Depth:    c.Engine.Depth,
			MoveTime: c.Engine.MoveTime,
			Timeout:  c.Engine.Timeout,
		},
	}
}

// NewLogger builds the process logger writing to w.
func NewLogger(lc LogConfig, w io.Writer) zerolog.Logger {
	level, err := zerolog.ParseLevel(strings.ToLower(lc.Level))
	if err != nil || level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}
	if lc.Style == "console" {
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: time.Kitchen}
	}
	return zerolog.New(w).Level(level).With().Timestamp().Logger()
}

func envString(name, def string) string {
	if v := strings.TrimSpace(os.Getenv(name)); v != "" {
		return v
	}
	return def
}

func envInt(name string, def int) (int, error) {
	raw := strings.TrimSpace(os.Getenv(name))
	if raw == "" {
		return def, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return def, fmt.Errorf("%s: %v", name, err)
	}
	if v < 0 {
		return def, fmt.Errorf("%s: must not be negative, got %d", name, v)
	}
	return v, nil
}
