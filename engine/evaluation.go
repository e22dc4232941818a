package engine

import (
	"chess-opponent/position"

	"golang.org/x/exp/slices"
)

const (
	bishopPairBonus    = 30
	rookOpenFileBonus  = 20
	mobilityWeight     = 5
	doubledPawnPenalty = 10
	isolatedPawnMalus  = 15
	centerBonus        = 15
	checkPenalty       = 80
	castleBonus        = 50
	advancedPawnBonus  = 10

	// Non-king material on the board at or above which the king stays home.
	middlegameMaterial = 3000
)

var centerSquares = []position.Square{27, 28, 35, 36} // d4 e4 d5 e5

// evaluationTerms breaks a static score down by term. Every field is from
// White's point of view.
type evaluationTerms struct {
	Material      int // piece values and their square tables
	AdvancedPawns int
	King          int
	BishopPair    int
	RookOpenFile  int
	PawnStructure int
	Center        int
	Mobility      int
	Check         int
	Castle        int
}

func (t evaluationTerms) total() int {
	return t.Material + t.AdvancedPawns + t.King + t.BishopPair + t.RookOpenFile +
		t.PawnStructure + t.Center + t.Mobility + t.Check + t.Castle
}

// Evaluate scores pos in centipawns from the side to move's point of view.
//
// Every term is first summed from White's point of view (positive is good for
// White) and the total is negated when Black is to move. The search never
// re-negates a static score except through its own negamax sign flips.
func Evaluate(pos *position.Position) int {
	return colorSign(pos.SideToMove()) * evaluate(pos).total()
}

func evaluate(pos *position.Position) evaluationTerms {
	board := pos.Squares()

	var (
		terms        evaluationTerms
		material     int
		bishops      [2]int
		pawnsPerFile [2][8]int
		rooks        []position.Square
		kings        [2]position.Square
	)

	for sq := position.Square(0); sq < 64; sq++ {
		o := board[sq]
		if o.Empty() {
			continue
		}
		sign := colorSign(o.Color)

		switch o.Type {
		case position.King:
			kings[o.Color] = sq
			continue // scored below, once the phase is known
		case position.Bishop:
			bishops[o.Color]++
		case position.Pawn:
			pawnsPerFile[o.Color][sq.File()]++
			if rel := relativeRank(sq, o.Color); rel > 3 {
				terms.AdvancedPawns += sign * advancedPawnBonus * (rel - 3)
			}
		case position.Rook:
			rooks = append(rooks, sq)
		}

		material += pieceValue[o.Type]
		terms.Material += sign * (pieceValue[o.Type] + tableBonus(o.Type, o.Color, sq))

		if slices.Contains(centerSquares, sq) {
			terms.Center += sign * centerBonus
		}
	}

	// Both kings are always present; their material cancels out.
	for c, sq := range kings {
		color := position.Color(c)
		terms.King += colorSign(color) * kingBonus(color, sq, material)
	}

	for c := range bishops {
		if bishops[c] >= 2 {
			terms.BishopPair += colorSign(position.Color(c)) * bishopPairBonus
		}
	}

	for _, sq := range rooks {
		f := sq.File()
		if pawnsPerFile[position.White][f]+pawnsPerFile[position.Black][f] == 0 {
			terms.RookOpenFile += colorSign(board[sq].Color) * rookOpenFileBonus
		}
	}

	terms.PawnStructure = pawnStructure(&pawnsPerFile[position.White]) - pawnStructure(&pawnsPerFile[position.Black])

	// Mobility is side-to-move minus opponent; turn it into White's view.
	stm := colorSign(pos.SideToMove())
	terms.Mobility = stm * mobilityWeight * (pos.MoveCount() - pos.OpponentMobility())

	if pos.InCheck() {
		terms.Check = -stm * checkPenalty
	}

	if pos.HasCastled(position.White) {
		terms.Castle += castleBonus
	}
	if pos.HasCastled(position.Black) {
		terms.Castle -= castleBonus
	}

	return terms
}

// kingBonus reads the king table while non-king material is at least
// middlegameMaterial, and the table negated and halved after that.
func kingBonus(c position.Color, sq position.Square, material int) int {
	bonus := tableBonus(position.King, c, sq)
	if material < middlegameMaterial {
		return -bonus / 2
	}
	return bonus
}

// pawnStructure returns the (non-positive) doubled and isolated pawn penalty
// for one side.
func pawnStructure(files *[8]int) int {
	penalty := 0
	for f, n := range files {
		if n == 0 {
			continue
		}
		if n > 1 {
			penalty += doubledPawnPenalty * (n - 1)
		}
		left := f > 0 && files[f-1] > 0
		right := f < 7 && files[f+1] > 0
		if !left && !right {
			penalty += isolatedPawnMalus * n
		}
	}
	return -penalty
}

func tableBonus(t position.PieceType, c position.Color, sq position.Square) int {
	table := pieceTables[t]
	if table == nil {
		return 0
	}
	if c == position.White {
		return table[7-sq.Rank()][sq.File()]
	}
	return table[sq.Rank()][sq.File()]
}

// relativeRank counts ranks from the piece owner's side, 0 being its back rank.
func relativeRank(sq position.Square, c position.Color) int {
	if c == position.White {
		return sq.Rank()
	}
	return 7 - sq.Rank()
}

func colorSign(c position.Color) int {
	if c == position.White {
		return 1
	}
	return -1
}
