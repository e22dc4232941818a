package engine

import (
	"fmt"

	"chess-opponent/position"
)

// DebugStackCheck makes every search node verify that the position it was
// handed is back in the same state when it returns. Expensive: each node
// serializes the board twice. Set it before starting searches.
var DebugStackCheck bool

type stackMark struct {
	ply int
	fen string
}

func markStack(pos *position.Position) stackMark {
	return stackMark{ply: pos.Ply(), fen: pos.FEN()}
}

func (m stackMark) verify(pos *position.Position) {
	if pos.Ply() != m.ply || pos.FEN() != m.fen {
		panic(fmt.Sprintf("engine: unbalanced apply/undo: ply %d -> %d, fen %q -> %q",
			m.ply, pos.Ply(), m.fen, pos.FEN()))
	}
}
