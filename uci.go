package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"chess-opponent/config"
	"chess-opponent/engine"
	"chess-opponent/position"

	"github.com/rs/zerolog"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	// stdout belongs to the protocol.
	logger := config.NewLogger(cfg.Logs, os.Stderr)
	policy := engine.NewPolicy(cfg.PolicyConfig(), nil, logger)
	newUCI(policy, cfg.Search.HardDepth, logger).loop(os.Stdin, os.Stdout)
}

// uci holds the state of one protocol session.
type uci struct {
	policy   *engine.Policy
	log      zerolog.Logger
	pos      *position.Position
	tier     engine.Tier
	maxDepth int
}

func newUCI(policy *engine.Policy, maxDepth int, logger zerolog.Logger) *uci {
	if maxDepth <= 0 {
		maxDepth = engine.DefaultPolicyConfig.HardDepth
	}
	return &uci{
		policy:   policy,
		log:      logger,
		pos:      position.New(),
		tier:     engine.Medium,
		maxDepth: maxDepth,
	}
}

func (u *uci) loop(r io.Reader, w io.Writer) {
	scanner := bufio.NewScanner(r)
	out := bufio.NewWriter(w)
	defer out.Flush()
	say := func(format string, args ...any) {
		fmt.Fprintf(out, format+"\n", args...)
	}

	for scanner.Scan() {
		line := scanner.Text()
		tokens := strings.Fields(line)
		if len(tokens) == 0 { // ignore blank lines
			continue
		}
		switch strings.ToLower(tokens[0]) {
		case "uci":
			say("id name chess-opponent")
			say("id author chess-opponent developers")
			say("option name Difficulty type combo default %s var easy var medium var hard", u.tier)
			say("uciok")
		case "isready":
			say("readyok")
		case "ucinewgame":
			u.pos = position.New()
		case "quit":
			return
		case "stop":
			// searches are synchronous and depth-bounded; nothing to stop
		case "setoption":
			if err := u.setOption(tokens[1:]); err != nil {
				say("info string %v", err)
			}
		case "position":
			if err := u.setPosition(tokens[1:]); err != nil {
				say("info string %v", err)
			}
		case "go":
			u.goCommand(tokens[1:], say)
		default:
			say("info string Unknown command: %s", line)
		}
		out.Flush()
	}
}

// setOption handles "name Difficulty value <tier>".
func (u *uci) setOption(args []string) error {
	var name, value []string
	var cur *[]string
	for _, tok := range args {
		switch strings.ToLower(tok) {
		case "name":
			cur = &name
		case "value":
			cur = &value
		default:
			if cur == nil {
				return fmt.Errorf("malformed setoption")
			}
			*cur = append(*cur, tok)
		}
	}
	if !strings.EqualFold(strings.Join(name, " "), "difficulty") {
		return fmt.Errorf("unknown option %q", strings.Join(name, " "))
	}
	tier, err := engine.ParseTier(strings.Join(value, " "))
	if err != nil {
		return err
	}
	u.tier = tier
	return nil
}

// setPosition handles "startpos [moves ...]" and "fen <fen> [moves ...]". The
// current position is only replaced when the whole command is valid.
func (u *uci) setPosition(args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("malformed position command")
	}
	var (
		pos   *position.Position
		moves []string
		err   error
	)
	switch strings.ToLower(args[0]) {
	case "startpos":
		pos = position.New()
		moves = args[1:]
	case "fen":
		end := len(args)
		for i, tok := range args {
			if strings.EqualFold(tok, "moves") {
				end = i
				break
			}
		}
		if pos, err = position.Parse(strings.Join(args[1:end], " ")); err != nil {
			return err
		}
		moves = args[end:]
	default:
		return fmt.Errorf("invalid position subcommand %q", args[0])
	}

	if len(moves) > 0 {
		if !strings.EqualFold(moves[0], "moves") {
			return fmt.Errorf("expected moves, got %q", moves[0])
		}
		for _, s := range moves[1:] {
			m, err := pos.ParseUCIMove(s)
			if err != nil {
				return err
			}
			pos.Apply(m)
		}
	}
	u.pos = pos
	return nil
}

// goCommand answers with a bestmove. "depth N" forces a local search to that
// depth (capped at the hard tier's depth); otherwise the difficulty tier picks
// the move.
func (u *uci) goCommand(args []string, say func(string, ...any)) {
	depth := 0
	for i := 0; i < len(args); i++ {
		switch strings.ToLower(args[i]) {
		case "depth":
			if i+1 >= len(args) {
				say("info string Malformed go command option depth")
				continue
			}
			i++
			d, err := strconv.Atoi(args[i])
			if err != nil || d <= 0 {
				say("info string Malformed go command option; could not convert depth")
				continue
			}
			depth = d
		case "wtime", "btime", "winc", "binc", "movetime", "movestogo":
			i++ // clocks are ignored; depth is fixed per tier
		case "infinite":
		default:
			say("info string Unknown go subcommand %s", args[i])
		}
	}

	var (
		res engine.Result
		err error
	)
	if depth > 0 {
		res, err = engine.NewSearcher(u.log).Search(u.pos, engine.NewSearchBudget(engine.Min(depth, u.maxDepth)))
	} else {
		res, err = u.policy.ChooseMove(context.Background(), u.pos, u.tier)
	}
	if err != nil {
		u.log.Debug().Err(err).Str("fen", u.pos.FEN()).Msg("go")
		say("bestmove 0000")
		return
	}
	if res.Source == engine.SourceLocal {
		say("info depth %d score %s nodes %d time %d", res.Depth, uciScore(res.Score), res.Stats.Nodes+res.Stats.QNodes, res.Elapsed.Milliseconds())
	}
	say("bestmove %s", res.Move)
}

// uciScore renders a root-perspective score as "cp N" or "mate N" (moves, not plies).
func uciScore(score int) string {
	if !engine.IsMateScore(score) {
		return fmt.Sprintf("cp %d", score)
	}
	plies := engine.MateScore - engine.Abs(score)
	moves := (plies + 1) / 2
	if score < 0 {
		moves = -moves
	}
	return fmt.Sprintf("mate %d", moves)
}
