package position

import "math/bits"

const fiftyMoveLimit = 100

// Status summarises whether the game can continue from a position.
type Status int

const (
	Ongoing Status = iota
	Checkmate
	Stalemate
	Draw
)

func (s Status) String() string {
	switch s {
	case Checkmate:
		return "checkmate"
	case Stalemate:
		return "stalemate"
	case Draw:
		return "draw"
	default:
		return "ongoing"
	}
}

// InCheck reports whether the side to move is in check.
func (p *Position) InCheck() bool { return p.board.OurKingInCheck() }

func (p *Position) IsCheckmate() bool {
	return p.board.OurKingInCheck() && p.MoveCount() == 0
}

func (p *Position) IsStalemate() bool {
	return !p.board.OurKingInCheck() && p.MoveCount() == 0
}

// IsDraw covers the fifty-move rule, threefold repetition and insufficient
// material. Stalemate is reported separately by IsStalemate.
func (p *Position) IsDraw() bool {
	return p.HalfmoveClock() >= fiftyMoveLimit || p.isRepetition() || p.insufficientMaterial()
}

// Status classifies the position.
func (p *Position) Status() Status {
	if p.MoveCount() == 0 {
		if p.InCheck() {
			return Checkmate
		}
		return Stalemate
	}
	if p.IsDraw() {
		return Draw
	}
	return Ongoing
}

// isRepetition reports a threefold repetition inside the recorded history.
// Only the last HalfmoveClock plies can repeat the current position.
func (p *Position) isRepetition() bool {
	last := len(p.hashes) - 1
	current := p.hashes[last]
	start := last - p.HalfmoveClock()
	if start < 0 {
		start = 0
	}
	matches := 0
	for i := last - 2; i >= start; i -= 2 {
		if p.hashes[i] == current {
			matches++
			if matches >= 2 {
				return true
			}
		}
	}
	return false
}

func (p *Position) insufficientMaterial() bool {
	w, b := &p.board.White, &p.board.Black
	if w.Pawns|b.Pawns|w.Rooks|b.Rooks|w.Queens|b.Queens != 0 {
		return false
	}
	minors := bits.OnesCount64(w.Knights | w.Bishops | b.Knights | b.Bishops)
	return minors <= 1
}
