// Command server runs the HTTP move service.
package main

import (
	"context"
	"fmt"
	"os"

	"chess-opponent/api"
	"chess-opponent/config"
	"chess-opponent/engine"
	"chess-opponent/uciclient"
)

var _ engine.ExternalEngine = (*uciclient.Engine)(nil)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	log := config.NewLogger(cfg.Logs, os.Stderr)

	var external engine.ExternalEngine
	if cfg.Engine.Path != "" {
		ctx, cancel := context.WithTimeout(context.Background(), cfg.Engine.Timeout)
		eng, err := uciclient.Start(ctx, cfg.Engine.Path, log)
		cancel()
		if err != nil {
			log.Warn().Err(err).Msg("external engine unavailable, hard tier searches locally")
		} else {
			defer eng.Close()
			external = eng
			log.Info().Str("path", cfg.Engine.Path).Msg("external engine ready")
		}
	}

	policy := engine.NewPolicy(cfg.PolicyConfig(), external, log)
	router := api.NewRouter(api.NewHandler(policy, log))

	log.Info().Str("addr", cfg.HTTP.Addr).Msg("listening")
	if err := router.Run(cfg.HTTP.Addr); err != nil {
		log.Error().Err(err).Msg("server stopped")
		os.Exit(1)
	}
}
