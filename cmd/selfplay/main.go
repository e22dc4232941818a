// Command selfplay plays engine-vs-engine games at chosen difficulty tiers and
// prints each game as PGN.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"chess-opponent/config"
	"chess-opponent/engine"
	"chess-opponent/game"
	"chess-opponent/position"
	"chess-opponent/uciclient"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

func main() {
	games := flag.Int("games", 4, "number of games to play")
	parallel := flag.Int("parallel", 2, "games played at once")
	white := flag.String("white", "medium", "tier playing white")
	black := flag.String("black", "easy", "tier playing black")
	fen := flag.String("fen", position.StartFEN, "starting position")
	maxPlies := flag.Int("maxplies", 300, "plies before a game is adjudicated drawn")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	log := config.NewLogger(cfg.Logs, os.Stderr)

	tiers := [2]engine.Tier{}
	for i, name := range []string{*white, *black} {
		if tiers[i], err = engine.ParseTier(name); err != nil {
			log.Fatal().Err(err).Msg("bad tier")
		}
	}

	ctx := context.Background()
	var external engine.ExternalEngine
	if cfg.Engine.Path != "" {
		startCtx, cancel := context.WithTimeout(ctx, cfg.Engine.Timeout)
		eng, err := uciclient.Start(startCtx, cfg.Engine.Path, log)
		cancel()
		if err != nil {
			log.Warn().Err(err).Msg("external engine unavailable, hard tier searches locally")
		} else {
			defer eng.Close()
			external = eng
		}
	}
	policy := engine.NewPolicy(cfg.PolicyConfig(), external, log)

	pgns := make([]string, *games)
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(*parallel)
	for i := 0; i < *games; i++ {
		i := i
		g.Go(func() error {
			pgn, err := playGame(ctx, policy, tiers, *fen, *maxPlies, i+1, log)
			if err != nil {
				return fmt.Errorf("game %d: %w", i+1, err)
			}
			pgns[i] = pgn
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		log.Fatal().Err(err).Msg("selfplay")
	}
	fmt.Println(strings.Join(pgns, "\n\n"))
}

// playGame plays one game on its own Position and Record and returns the PGN.
func playGame(ctx context.Context, policy *engine.Policy, tiers [2]engine.Tier, fen string, maxPlies, round int, log zerolog.Logger) (string, error) {
	pos, err := position.Parse(fen)
	if err != nil {
		return "", err
	}
	rec, err := game.NewRecord(fen)
	if err != nil {
		return "", err
	}
	rec.SetTag("Event", "chess-opponent selfplay")
	rec.SetTag("Round", fmt.Sprint(round))
	rec.SetTag("White", "chess-opponent "+tiers[position.White].String())
	rec.SetTag("Black", "chess-opponent "+tiers[position.Black].String())

	for pos.Status() == position.Ongoing && pos.Ply() < maxPlies {
		if result, _ := rec.Outcome(); result != "*" {
			break
		}
		res, err := policy.ChooseMove(ctx, pos, tiers[pos.SideToMove()])
		if err != nil {
			return "", err
		}
		if _, err := rec.Play(res.Move.String()); err != nil {
			return "", err
		}
		pos.Apply(res.Move)
	}

	if result, _ := rec.Outcome(); result == "*" {
		if err := rec.ClaimDraw(); err != nil {
			return "", err
		}
	}
	result, method := rec.Outcome()
	log.Info().Int("round", round).Str("result", result).Str("method", method).
		Int("plies", pos.Ply()).Int("fullmove", pos.FullmoveNumber()).Str("status", pos.Status().String()).Msg("game over")
	return rec.PGN(), nil
}
