package position

import "github.com/dylhunn/dragontoothmg"

// PieceType is a colorless piece kind. Values match dragontoothmg's Piece encoding.
type PieceType uint8

const (
	NoPiece PieceType = PieceType(dragontoothmg.Nothing)
	Pawn    PieceType = PieceType(dragontoothmg.Pawn)
	Knight  PieceType = PieceType(dragontoothmg.Knight)
	Bishop  PieceType = PieceType(dragontoothmg.Bishop)
	Rook    PieceType = PieceType(dragontoothmg.Rook)
	Queen   PieceType = PieceType(dragontoothmg.Queen)
	King    PieceType = PieceType(dragontoothmg.King)
)

var pieceLetters = [7]byte{' ', 'p', 'n', 'b', 'r', 'q', 'k'}

// Letter returns the lower-case letter used for the piece in coordinate notation.
func (p PieceType) Letter() byte {
	if int(p) >= len(pieceLetters) {
		return '?'
	}
	return pieceLetters[p]
}

type Color uint8

const (
	White Color = 0
	Black Color = 1
)

func (c Color) String() string {
	if c == White {
		return "white"
	}
	return "black"
}

// Square is a board index, a1 = 0 ... h8 = 63.
type Square uint8

// File returns 0 for the a-file through 7 for the h-file.
func (sq Square) File() int { return int(sq) % 8 }

// Rank returns 0 for the first rank through 7 for the eighth.
func (sq Square) Rank() int { return int(sq) / 8 }

func (sq Square) String() string {
	return string([]byte{byte('a' + sq.File()), byte('1' + sq.Rank())})
}

// SquareAt builds a square from zero-based file and rank.
func SquareAt(file, rank int) Square { return Square(rank*8 + file) }

// ParseSquare converts "e4" style coordinates. ok is false for malformed input.
func ParseSquare(s string) (sq Square, ok bool) {
	if len(s) != 2 || s[0] < 'a' || s[0] > 'h' || s[1] < '1' || s[1] > '8' {
		return 0, false
	}
	return SquareAt(int(s[0]-'a'), int(s[1]-'1')), true
}

// Occupant describes what stands on a square. Type is NoPiece for empty squares.
type Occupant struct {
	Type  PieceType
	Color Color
}

// Empty reports whether the square holds no piece.
func (o Occupant) Empty() bool { return o.Type == NoPiece }

func pieceTypeAt(sq Square, bitboards *dragontoothmg.Bitboards) (PieceType, bool) {
	mask := uint64(1) << sq
	switch {
	case bitboards.All&mask == 0:
		return NoPiece, false
	case bitboards.Pawns&mask != 0:
		return Pawn, true
	case bitboards.Knights&mask != 0:
		return Knight, true
	case bitboards.Bishops&mask != 0:
		return Bishop, true
	case bitboards.Rooks&mask != 0:
		return Rook, true
	case bitboards.Queens&mask != 0:
		return Queen, true
	case bitboards.Kings&mask != 0:
		return King, true
	}
	return NoPiece, false
}
