// Package game keeps the human-readable record of a game: SAN for each move,
// the result, and a PGN export.
package game

import (
	"fmt"
	"strings"

	"chess-opponent/position"

	"github.com/notnil/chess"
)

// Record follows a game move by move. It is independent of the search
// position and is not safe for concurrent use.
type Record struct {
	game     *chess.Game
	startFEN string
	san      []string
}

// NewRecord starts a record from fen; an empty fen means the standard start.
func NewRecord(fen string) (*Record, error) {
	if strings.TrimSpace(fen) == "" {
		fen = position.StartFEN
	}
	opt, err := chess.FEN(fen)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", position.ErrInvalidFEN, err)
	}
	r := &Record{game: chess.NewGame(opt), startFEN: fen}
	if fen != position.StartFEN {
		r.game.AddTagPair("SetUp", "1")
		r.game.AddTagPair("FEN", fen)
	}
	return r, nil
}

// SetTag adds or replaces a PGN tag pair such as Event or White.
func (r *Record) SetTag(key, value string) {
	r.game.RemoveTagPair(key)
	r.game.AddTagPair(key, value)
}

func (r *Record) find(uci string) (*chess.Move, error) {
	uci = strings.ToLower(strings.TrimSpace(uci))
	for _, m := range r.game.ValidMoves() {
		if m.String() == uci {
			return m, nil
		}
	}
	return nil, fmt.Errorf("%w: %q in %s", position.ErrIllegalMove, uci, r.FEN())
}

// SAN renders a coordinate move in standard algebraic notation for the
// current position without playing it.
func (r *Record) SAN(uci string) (string, error) {
	m, err := r.find(uci)
	if err != nil {
		return "", err
	}
	return chess.AlgebraicNotation{}.Encode(r.game.Position(), m), nil
}

// Play applies a coordinate move and returns its SAN.
func (r *Record) Play(uci string) (string, error) {
	if r.game.Outcome() != chess.NoOutcome {
		return "", fmt.Errorf("%w: game already ended %s", position.ErrIllegalMove, r.game.Outcome())
	}
	m, err := r.find(uci)
	if err != nil {
		return "", err
	}
	san := chess.AlgebraicNotation{}.Encode(r.game.Position(), m)
	if err := r.game.Move(m); err != nil {
		return "", fmt.Errorf("%w: %v", position.ErrIllegalMove, err)
	}
	r.san = append(r.san, san)
	return san, nil
}

// ClaimDraw ends the game drawn. A threefold repetition or fifty-move claim
// is used when one is available, otherwise the draw is recorded as agreed.
func (r *Record) ClaimDraw() error {
	for _, method := range r.game.EligibleDraws() {
		if method == chess.ThreefoldRepetition || method == chess.FiftyMoveRule {
			return r.game.Draw(method)
		}
	}
	return r.game.Draw(chess.DrawOffer)
}

// FEN returns the current position.
func (r *Record) FEN() string { return r.game.Position().String() }

// StartFEN returns the position the record started from.
func (r *Record) StartFEN() string { return r.startFEN }

// Moves returns the SAN of every move played so far.
func (r *Record) Moves() []string {
	out := make([]string, len(r.san))
	copy(out, r.san)
	return out
}

// Outcome returns the PGN result ("1-0", "0-1", "1/2-1/2" or "*") and how the
// game ended.
func (r *Record) Outcome() (result string, method string) {
	return string(r.game.Outcome()), r.game.Method().String()
}

// PGN exports the game with its tags.
func (r *Record) PGN() string { return r.game.String() }
