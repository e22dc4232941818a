// Package position adapts the dragontoothmg rules engine to the apply/undo
// interface the search works against. A Position is a single mutable board
// plus the stack of inverse operations needed to walk back to its root.
package position

import (
	"errors"
	"fmt"
	"strings"

	"github.com/dylhunn/dragontoothmg"
	"github.com/notnil/chess"
	"golang.org/x/exp/slices"
)

// StartFEN is the standard initial position.
const StartFEN = dragontoothmg.Startpos

var (
	ErrInvalidFEN  = errors.New("position: invalid FEN")
	ErrIllegalMove = errors.New("position: illegal move")
)

// Position is not safe for concurrent use. Every Apply must be matched by an
// Undo in reverse order; the search relies on this to restore the board
// exactly.
type Position struct {
	board   dragontoothmg.Board
	undo    []func()
	history []Record
	// hashes[0] is the root position, hashes[i] the position after history[i-1].
	hashes []uint64
}

// New returns the standard starting position.
func New() *Position {
	p, err := Parse(StartFEN)
	if err != nil {
		panic(err)
	}
	return p
}

// Parse builds a position from FEN. Four-field FENs (no move counters) are
// accepted and completed with "0 1".
func Parse(fen string) (*Position, error) {
	fields := strings.Fields(fen)
	if len(fields) == 4 {
		fields = append(fields, "0", "1")
	}
	if len(fields) != 6 {
		return nil, fmt.Errorf("%w: want 6 fields, got %d", ErrInvalidFEN, len(fields))
	}
	fen = strings.Join(fields, " ")

	// dragontoothmg trusts its input, so validate with notnil/chess first.
	if _, err := chess.FEN(fen); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidFEN, err)
	}
	if strings.Count(fields[0], "K") != 1 || strings.Count(fields[0], "k") != 1 {
		return nil, fmt.Errorf("%w: each side needs exactly one king", ErrInvalidFEN)
	}

	p := &Position{board: dragontoothmg.ParseFen(fen)}
	p.hashes = append(p.hashes, p.board.Hash())
	return p, nil
}

// FEN serializes the current position.
func (p *Position) FEN() string { return p.board.ToFen() }

// Hash returns the zobrist key of the current position.
func (p *Position) Hash() uint64 { return p.board.Hash() }

// SideToMove reports which side is to play.
func (p *Position) SideToMove() Color {
	if p.board.Wtomove {
		return White
	}
	return Black
}

// HalfmoveClock counts plies since the last capture or pawn move.
func (p *Position) HalfmoveClock() int { return int(p.board.Halfmoveclock) }

// FullmoveNumber starts at 1 and increments after Black moves.
func (p *Position) FullmoveNumber() int { return int(p.board.Fullmoveno) }

// Ply is the height of the undo stack.
func (p *Position) Ply() int { return len(p.undo) }

// LegalMoves returns every legal move for the side to move. An empty result
// means the game is over.
func (p *Position) LegalMoves() []Move {
	raw := p.board.GenerateLegalMoves()
	moves := make([]Move, len(raw))
	for i, m := range raw {
		moves[i] = p.wrap(m)
	}
	return moves
}

// TacticalMoves returns the legal captures (en passant included) and promotions.
func (p *Position) TacticalMoves() []Move {
	raw := p.board.GenerateLegalMoves()
	moves := make([]Move, 0, len(raw))
	for _, m := range raw {
		mv := p.wrap(m)
		if mv.IsCapture() || mv.IsPromotion() {
			moves = append(moves, mv)
		}
	}
	return moves
}

// MoveCount returns the number of legal moves without classifying them.
func (p *Position) MoveCount() int { return len(p.board.GenerateLegalMoves()) }

func (p *Position) wrap(m dragontoothmg.Move) Move {
	own, opp := &p.board.White, &p.board.Black
	if !p.board.Wtomove {
		own, opp = opp, own
	}
	mv := Move{raw: m}
	mv.piece, _ = pieceTypeAt(mv.From(), own)
	mv.captured, _ = pieceTypeAt(mv.To(), opp)
	if mv.piece == Pawn && mv.captured == NoPiece && mv.From().File() != mv.To().File() {
		mv.captured = Pawn
	}
	return mv
}

// Apply plays m, which must have been generated by this position in its
// current state.
func (p *Position) Apply(m Move) {
	rec := Record{Move: m, Color: p.SideToMove(), Castle: m.IsCastle()}
	p.undo = append(p.undo, p.board.Apply(m.raw))
	p.history = append(p.history, rec)
	p.hashes = append(p.hashes, p.board.Hash())
}

// Undo takes back the last applied move. It panics if nothing was applied.
func (p *Position) Undo() {
	n := len(p.undo)
	if n == 0 {
		panic("position: Undo with empty stack")
	}
	unapply := p.undo[n-1]
	p.undo = p.undo[:n-1]
	p.history = p.history[:len(p.history)-1]
	p.hashes = p.hashes[:len(p.hashes)-1]
	unapply()
}

// ParseUCIMove resolves coordinate notation against the legal moves.
func (p *Position) ParseUCIMove(s string) (Move, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	moves := p.LegalMoves()
	i := slices.IndexFunc(moves, func(m Move) bool { return m.String() == s })
	if i < 0 {
		return NullMove, fmt.Errorf("%w: %q in %s", ErrIllegalMove, s, p.FEN())
	}
	return moves[i], nil
}

// PieceAt reports the occupant of sq.
func (p *Position) PieceAt(sq Square) Occupant {
	if t, ok := pieceTypeAt(sq, &p.board.White); ok {
		return Occupant{Type: t, Color: White}
	}
	if t, ok := pieceTypeAt(sq, &p.board.Black); ok {
		return Occupant{Type: t, Color: Black}
	}
	return Occupant{}
}

// Squares returns the whole board indexed a1..h8.
func (p *Position) Squares() [64]Occupant {
	var out [64]Occupant
	for sq := Square(0); sq < 64; sq++ {
		out[sq] = p.PieceAt(sq)
	}
	return out
}

// History returns the moves applied since the position was parsed.
func (p *Position) History() []Record {
	out := make([]Record, len(p.history))
	copy(out, p.history)
	return out
}

// HasCastled reports whether color castled in the recorded history.
func (p *Position) HasCastled(color Color) bool {
	for _, rec := range p.history {
		if rec.Castle && rec.Color == color {
			return true
		}
	}
	return false
}

// OpponentMobility counts the legal moves the opponent would have if it were
// their turn: the side-to-move flag is flipped and en passant cleared on a
// throwaway board, leaving p untouched.
func (p *Position) OpponentMobility() int {
	fields := strings.Fields(p.board.ToFen())
	if fields[1] == "w" {
		fields[1] = "b"
	} else {
		fields[1] = "w"
	}
	fields[3] = "-"
	hypothetical := dragontoothmg.ParseFen(strings.Join(fields, " "))
	return len(hypothetical.GenerateLegalMoves())
}
