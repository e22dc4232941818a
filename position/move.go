package position

import "github.com/dylhunn/dragontoothmg"

// Move is a legal transition produced by a Position. It carries the moving
// piece and the captured piece (Pawn for en passant) so callers never have to
// look at the board to classify it. Moves are values and are never mutated.
type Move struct {
	raw      dragontoothmg.Move
	piece    PieceType
	captured PieceType
}

// NullMove is the zero Move; no generated move equals it.
var NullMove Move

func (m Move) From() Square { return Square(m.raw.From()) }

func (m Move) To() Square { return Square(m.raw.To()) }

// Promotion returns the piece a pawn promotes to, or NoPiece.
func (m Move) Promotion() PieceType { return PieceType(m.raw.Promote()) }

// Piece returns the type of the moving piece.
func (m Move) Piece() PieceType { return m.piece }

// Captured returns the type of the captured piece, or NoPiece for quiet moves.
func (m Move) Captured() PieceType { return m.captured }

func (m Move) IsCapture() bool { return m.captured != NoPiece }

func (m Move) IsPromotion() bool { return m.Promotion() != NoPiece }

// IsCastle reports a king move of two files.
func (m Move) IsCastle() bool {
	if m.piece != King {
		return false
	}
	d := m.From().File() - m.To().File()
	return d == 2 || d == -2
}

// String returns coordinate notation, e.g. "e2e4" or "e7e8q".
func (m Move) String() string {
	if m == NullMove {
		return "0000"
	}
	s := m.From().String() + m.To().String()
	if p := m.Promotion(); p != NoPiece {
		s += string(p.Letter())
	}
	return s
}

// Record is one entry of a position's move history.
type Record struct {
	Move   Move
	Color  Color
	Castle bool
}
