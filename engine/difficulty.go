package engine

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"chess-opponent/position"

	"github.com/rs/zerolog"
	"lukechampine.com/frand"
)

// ErrUnknownTier is returned for a difficulty name that maps to no tier.
var ErrUnknownTier = errors.New("engine: unknown difficulty tier")

// Tier is a difficulty level offered to players.
type Tier int

const (
	Easy Tier = iota
	Medium
	Hard
)

func (t Tier) String() string {
	switch t {
	case Easy:
		return "easy"
	case Medium:
		return "medium"
	case Hard:
		return "hard"
	}
	return fmt.Sprintf("Tier(%d)", int(t))
}

// ParseTier accepts "easy", "medium" or "hard" in any case.
func ParseTier(s string) (Tier, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "easy":
		return Easy, nil
	case "medium":
		return Medium, nil
	case "hard":
		return Hard, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownTier, s)
}

// Source records which strategy produced a move.
type Source string

const (
	SourceRandom   Source = "random"
	SourceLocal    Source = "local"
	SourceExternal Source = "external"
)

// ExternalEngine is a strong engine reachable over UCI. BestMove returns the
// engine's reply in coordinate notation and must give up when ctx is done.
type ExternalEngine interface {
	Ready() bool
	BestMove(ctx context.Context, fen string, depth int, moveTime time.Duration) (string, error)
}

type strategyKind int

const (
	strategyRandom strategyKind = iota
	strategyLocal
	strategyExternal
)

// strategy is picked once per ChooseMove call. depth is the local search
// depth, which for strategyExternal is the fallback depth.
type strategy struct {
	kind  strategyKind
	depth int
}

// PolicyConfig holds the knobs of a Policy. Zero fields take defaults.
type PolicyConfig struct {
	MediumDepth     int
	HardDepth       int
	QuiescenceDepth int
	External        ExternalBudget
}

// DefaultPolicyConfig is the stock tier mapping.
var DefaultPolicyConfig = PolicyConfig{
	MediumDepth:     2,
	HardDepth:       3,
	QuiescenceDepth: DefaultQuiescenceDepth,
	External:        DefaultExternalBudget,
}

// Policy maps difficulty tiers to move choices. It keeps no per-game state and
// is safe for concurrent use as long as every call gets its own Position.
type Policy struct {
	cfg      PolicyConfig
	external ExternalEngine
	log      zerolog.Logger

	// intn returns a uniform integer in [0, n).
	intn func(n int) int
}

// NewPolicy builds a Policy. external may be nil, in which case the hard tier
// always searches locally.
func NewPolicy(cfg PolicyConfig, external ExternalEngine, logger zerolog.Logger) *Policy {
	if cfg.MediumDepth <= 0 {
		cfg.MediumDepth = DefaultPolicyConfig.MediumDepth
	}
	if cfg.HardDepth <= 0 {
		cfg.HardDepth = DefaultPolicyConfig.HardDepth
	}
	if cfg.QuiescenceDepth <= 0 {
		cfg.QuiescenceDepth = DefaultPolicyConfig.QuiescenceDepth
	}
	if cfg.External == (ExternalBudget{}) {
		cfg.External = DefaultExternalBudget
	}
	return &Policy{
		cfg:      cfg,
		external: external,
		log:      logger,
		intn:     frand.Intn,
	}
}

func (p *Policy) strategyFor(t Tier) (strategy, error) {
	switch t {
	case Easy:
		return strategy{kind: strategyRandom}, nil
	case Medium:
		return strategy{kind: strategyLocal, depth: p.cfg.MediumDepth}, nil
	case Hard:
		if p.external != nil {
			return strategy{kind: strategyExternal, depth: p.cfg.HardDepth}, nil
		}
		return strategy{kind: strategyLocal, depth: p.cfg.HardDepth}, nil
	}
	return strategy{}, fmt.Errorf("%w: %v", ErrUnknownTier, t)
}

// ChooseMove picks a move for the side to move in pos at the given tier. It
// returns ErrNoMoveAvailable when the game is already over. pos is restored
// before ChooseMove returns and must not be used concurrently.
//
// ctx only bounds the external engine exchange; a local search always runs to
// its fixed depth.
func (p *Policy) ChooseMove(ctx context.Context, pos *position.Position, tier Tier) (Result, error) {
	st, err := p.strategyFor(tier)
	if err != nil {
		return Result{}, err
	}
	moves := pos.LegalMoves()
	if len(moves) == 0 {
		return Result{}, ErrNoMoveAvailable
	}

	switch st.kind {
	case strategyRandom:
		return Result{Move: moves[p.intn(len(moves))], Source: SourceRandom}, nil
	case strategyExternal:
		res, err := p.askExternal(ctx, pos)
		if err == nil {
			return res, nil
		}
		p.log.Warn().Err(err).Str("fen", pos.FEN()).Int("fallback_depth", st.depth).
			Msg("external engine failed, searching locally")
	}

	budget := NewSearchBudget(st.depth)
	budget.QuiescenceDepth = p.cfg.QuiescenceDepth
	return NewSearcher(p.log).Search(pos, budget)
}

func (p *Policy) askExternal(ctx context.Context, pos *position.Position) (Result, error) {
	if !p.external.Ready() {
		return Result{}, errors.New("external engine not ready")
	}

	b := p.cfg.External
	if b.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, b.Timeout)
		defer cancel()
	}

	start := time.Now()
	reply, err := p.external.BestMove(ctx, pos.FEN(), b.Depth, b.MoveTime)
	if err != nil {
		return Result{}, fmt.Errorf("external best move: %w", err)
	}
	m, err := pos.ParseUCIMove(reply)
	if err != nil {
		return Result{}, fmt.Errorf("external reply: %w", err)
	}
	return Result{
		Move:    m,
		Depth:   b.Depth,
		Source:  SourceExternal,
		Elapsed: time.Since(start),
	}, nil
}

// Reply carries the outcome of ChooseMoveAsync.
type Reply struct {
	Result Result
	Err    error
}

// ChooseMoveAsync runs ChooseMove on its own goroutine and delivers exactly one
// Reply on the returned channel. The caller must leave pos alone until then.
func (p *Policy) ChooseMoveAsync(ctx context.Context, pos *position.Position, tier Tier) <-chan Reply {
	out := make(chan Reply, 1)
	go func() {
		res, err := p.ChooseMove(ctx, pos, tier)
		out <- Reply{Result: res, Err: err}
	}()
	return out
}
