package engine

import (
	"chess-opponent/position"

	"golang.org/x/exp/slices"
)

/*
	Move ordering offsets!
	- Promotions are rare but almost always decisive, so a queen promotion sits above every capture.
	- Captures use MVV-LVA: ten times the victim minus the attacker, so taking a queen with a pawn
	  comes before taking a pawn with a queen.
	- Checks and central destinations are small nudges on top; they only reorder otherwise equal moves.
	  Quiescence leaves them out and ranks captures by MVV-LVA and promotion alone.
	Nothing here prunes, the sort only changes the order alpha-beta sees moves in.
*/
const (
	queenPromotionOffset = 9000
	minorPromotionOffset = 800
	checkOffset          = 50
	centerOffset         = 30
)

type scoredMove struct {
	move  position.Move
	score int
}

// scoreMove rates m for ordering. With full set the check and center nudges are
// added; the check test applies and undoes the move on pos.
func scoreMove(pos *position.Position, m position.Move, full bool) int {
	score := 0
	if m.IsCapture() {
		score += 10*pieceValue[m.Captured()] - pieceValue[m.Piece()]
	}
	switch m.Promotion() {
	case position.NoPiece:
	case position.Queen:
		score += queenPromotionOffset
	default:
		score += minorPromotionOffset
	}
	if !full {
		return score
	}
	pos.Apply(m)
	if pos.InCheck() {
		score += checkOffset
	}
	pos.Undo()
	if slices.Contains(centerSquares, m.To()) {
		score += centerOffset
	}
	return score
}

// orderMoves returns moves sorted by descending heuristic score. Equal scores
// keep generation order.
func orderMoves(pos *position.Position, moves []position.Move, full bool) []position.Move {
	scored := make([]scoredMove, len(moves))
	for i, m := range moves {
		scored[i] = scoredMove{move: m, score: scoreMove(pos, m, full)}
	}
	slices.SortStableFunc(scored, func(a, b scoredMove) bool { return a.score > b.score })

	ordered := make([]position.Move, len(scored))
	for i, sm := range scored {
		ordered[i] = sm.move
	}
	return ordered
}
