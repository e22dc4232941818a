// Package engine chooses moves for the computer opponent: a fixed-depth
// alpha-beta search with quiescence at the leaves, a static evaluation, and a
// difficulty policy that can hand the top tier to an external UCI engine.
package engine

import (
	"errors"
	"time"

	"chess-opponent/position"

	"github.com/rs/zerolog"
)

// =============================================================================
// SCORE CONSTANTS
// =============================================================================
const (
	// MateScore is the score of delivering mate at the root. A mate found n
	// plies deep scores MateScore-n so shorter mates are preferred.
	MateScore = 100000
	DrawScore = 0

	infinity = MateScore + 1
	maxPly   = 1000
)

// ErrNoMoveAvailable is returned when the side to move has no legal move.
var ErrNoMoveAvailable = errors.New("engine: no move available")

// IsMateScore reports whether score is a forced mate inside the horizon.
func IsMateScore(score int) bool {
	return Abs(score) >= MateScore-maxPly
}

// Result is the outcome of choosing a move.
type Result struct {
	Move position.Move
	// Score is from the side to move's point of view. Random and external
	// choices carry no score.
	Score   int
	Depth   int
	Source  Source
	Stats   Stats
	Elapsed time.Duration
}

// Searcher runs fixed-depth searches. A Searcher holds per-search state and
// must not be shared between goroutines; the zero value logs nothing.
type Searcher struct {
	log    zerolog.Logger
	pos    *position.Position
	budget SearchBudget
	stats  Stats
}

// NewSearcher returns a Searcher that reports each completed search on logger.
func NewSearcher(logger zerolog.Logger) *Searcher {
	return &Searcher{log: logger}
}

// Search picks the best move for the side to move in pos. pos is mutated
// during the search and restored before Search returns; nothing else may touch
// it meanwhile.
func (s *Searcher) Search(pos *position.Position, budget SearchBudget) (Result, error) {
	moves := pos.LegalMoves()
	if len(moves) == 0 {
		return Result{}, ErrNoMoveAvailable
	}
	if DebugStackCheck {
		defer markStack(pos).verify(pos)
	}

	start := time.Now()
	s.pos = pos
	s.budget = budget.normalized()
	s.stats = Stats{}
	defer func() { s.pos = nil }()

	best, score := s.rootSearch(moves)

	res := Result{
		Move:    best,
		Score:   score,
		Depth:   s.budget.Depth,
		Source:  SourceLocal,
		Stats:   s.stats,
		Elapsed: time.Since(start),
	}
	s.log.Debug().
		Str("fen", pos.FEN()).
		Str("move", best.String()).
		Int("depth", res.Depth).
		Int("score", score).
		Object("stats", res.Stats).
		Dur("elapsed", res.Elapsed).
		Msg("search complete")
	return res, nil
}

// rootSearch walks the root moves in heuristic order and keeps the first move
// reaching the best score.
func (s *Searcher) rootSearch(moves []position.Move) (position.Move, int) {
	s.stats.Nodes++
	alpha, beta := -infinity, infinity
	bestScore := -infinity
	var bestMove position.Move

	for _, m := range orderMoves(s.pos, moves, true) {
		s.pos.Apply(m)
		score := s.alphaBeta(s.budget.Depth-1, 1, alpha, beta, false)
		s.pos.Undo()

		if score > bestScore {
			bestScore = score
			bestMove = m
		}
		alpha = Max(alpha, score)
	}
	return bestMove, bestScore
}

/*
	alphaBeta is minimax with pruning. Scores are always from the root side's
	point of view: the root side moves at maximizing nodes, its opponent at
	minimizing ones. Static scores come back from the side to move's point of
	view, so minimizing nodes flip them on the way in.
*/
func (s *Searcher) alphaBeta(depth, ply, alpha, beta int, maximizing bool) int {
	if DebugStackCheck {
		defer markStack(s.pos).verify(s.pos)
	}
	s.stats.Nodes++

	// Mate outranks the fifty-move rule, so terminal positions are scored
	// before draws.
	moves := s.pos.LegalMoves()
	if len(moves) == 0 {
		if !s.pos.InCheck() {
			return DrawScore
		}
		if maximizing {
			return -(MateScore - ply)
		}
		return MateScore - ply
	}
	if ply > 0 && s.pos.IsDraw() {
		return DrawScore
	}

	if depth <= 0 {
		if maximizing {
			return s.quiescence(alpha, beta, 0)
		}
		return -s.quiescence(-beta, -alpha, 0)
	}

	ordered := orderMoves(s.pos, moves, true)

	if maximizing {
		best := -infinity
		for _, m := range ordered {
			s.pos.Apply(m)
			score := s.alphaBeta(depth-1, ply+1, alpha, beta, false)
			s.pos.Undo()

			best = Max(best, score)
			alpha = Max(alpha, score)
			if beta <= alpha {
				s.stats.BetaCutoffs++
				break
			}
		}
		return best
	}

	best := infinity
	for _, m := range ordered {
		s.pos.Apply(m)
		score := s.alphaBeta(depth-1, ply+1, alpha, beta, true)
		s.pos.Undo()

		best = Min(best, score)
		beta = Min(beta, score)
		if beta <= alpha {
			s.stats.BetaCutoffs++
			break
		}
	}
	return best
}

// quiescence resolves captures and promotions below the horizon. It is
// negamax: scores are from the side to move's point of view, and it fails hard
// so the result always lies within [alpha, beta].
func (s *Searcher) quiescence(alpha, beta, plies int) int {
	s.stats.QNodes++

	standPat := Evaluate(s.pos)
	if standPat >= beta {
		s.stats.QStandPatCutoffs++
		return beta
	}
	alpha = Max(alpha, standPat)

	if plies >= s.budget.QuiescenceDepth {
		return alpha
	}

	tactical := orderMoves(s.pos, s.pos.TacticalMoves(), false)
	if len(tactical) > s.budget.QuiescenceWidth {
		tactical = tactical[:s.budget.QuiescenceWidth]
	}

	for _, m := range tactical {
		s.pos.Apply(m)
		score := -s.quiescence(-beta, -alpha, plies+1)
		s.pos.Undo()

		if score >= beta {
			s.stats.QBetaCutoffs++
			return beta
		}
		alpha = Max(alpha, score)
	}
	return alpha
}
