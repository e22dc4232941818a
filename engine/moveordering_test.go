package engine

import (
	"testing"

	"chess-opponent/position"
)

func TestOrderMovesMVVLVA(t *testing.T) {
	// The e4 pawn can take the queen on d5; the queen on a5 can take the a7 pawn.
	p := mustParse(t, "4k3/p7/8/Q2q4/4P3/8/8/4K3 w - - 0 1")
	ordered := orderMoves(p, p.LegalMoves(), false)
	if got := ordered[0].String(); got != "e4d5" {
		t.Fatalf("first move = %s, want e4d5 (pawn takes queen)", got)
	}
	pxq := scoreMove(p, ordered[0], false)
	qxp := scoreMove(p, mustMove(t, p, "a5a7"), false)
	if pxq != 10*900-100 || qxp != 10*100-900 {
		t.Fatalf("scores: PxQ=%d QxP=%d", pxq, qxp)
	}
	if got := scoreMove(p, ordered[0], true); got != pxq+centerOffset {
		t.Fatalf("full PxQ score = %d, want %d", got, pxq+centerOffset)
	}
}

func TestOrderMovesPromotions(t *testing.T) {
	p := mustParse(t, "1n5k/P7/8/8/8/8/8/7K w - - 0 1")
	ordered := orderMoves(p, p.LegalMoves(), false)
	if ordered[0].String() != "a7b8q" || ordered[1].String() != "a7a8q" {
		t.Fatalf("ordered = %v, want a7b8q then a7a8q", ordered[:2])
	}
	if got := scoreMove(p, mustMove(t, p, "a7a8n"), false); got != minorPromotionOffset {
		t.Fatalf("a7a8n score = %d, want %d", got, minorPromotionOffset)
	}
}

func TestOrderMovesCheckBonus(t *testing.T) {
	p := mustParse(t, "6k1/5ppp/8/8/8/8/8/R5K1 w - - 0 1")
	fen := p.FEN()
	ordered := orderMoves(p, p.LegalMoves(), true)
	if ordered[0].String() != "a1a8" {
		t.Fatalf("first move = %s, want the checking a1a8", ordered[0])
	}
	if p.FEN() != fen || p.Ply() != 0 {
		t.Fatalf("ordering with checks left the position changed")
	}
	if got := scoreMove(p, ordered[0], false); got != 0 {
		t.Fatalf("without the check test a1a8 should score 0, got %d", got)
	}
}

func TestOrderMovesIsStable(t *testing.T) {
	p := position.New()
	moves := p.LegalMoves()
	ordered := orderMoves(p, moves, true)
	if len(ordered) != len(moves) {
		t.Fatalf("ordering dropped moves: %d -> %d", len(moves), len(ordered))
	}

	index := make(map[string]int, len(moves))
	for i, m := range moves {
		index[m.String()] = i
	}
	for i := 1; i < len(ordered); i++ {
		a, b := ordered[i-1], ordered[i]
		sa, sb := scoreMove(p, a, true), scoreMove(p, b, true)
		if sa < sb {
			t.Fatalf("%s (%d) sorted before %s (%d)", a, sa, b, sb)
		}
		if sa == sb && index[a.String()] > index[b.String()] {
			t.Fatalf("tie between %s and %s broke generation order", a, b)
		}
	}
}

func TestCentralDestinationBonus(t *testing.T) {
	p := position.New()
	if got := scoreMove(p, mustMove(t, p, "e2e4"), true); got != centerOffset {
		t.Fatalf("e2e4 score = %d, want %d", got, centerOffset)
	}
	if got := scoreMove(p, mustMove(t, p, "a2a4"), true); got != 0 {
		t.Fatalf("a2a4 score = %d, want 0", got)
	}
}

func TestCaptureOrderingIgnoresCenter(t *testing.T) {
	// Both captures take a pawn with a knight; only c3xd5 lands on the center.
	p := mustParse(t, "4k3/8/8/p2p4/8/1NN5/8/4K3 w - - 0 1")
	central, edge := mustMove(t, p, "c3d5"), mustMove(t, p, "b3a5")
	if a, b := scoreMove(p, central, false), scoreMove(p, edge, false); a != b {
		t.Fatalf("capture ordering scores differ: c3d5=%d b3a5=%d", a, b)
	}
	tactical := p.TacticalMoves()
	ordered := orderMoves(p, tactical, false)
	for i := range tactical {
		if ordered[i] != tactical[i] {
			t.Fatalf("equal captures should keep generation order: %v -> %v", tactical, ordered)
		}
	}
	if got := scoreMove(p, central, true) - scoreMove(p, central, false); got != centerOffset {
		t.Fatalf("full ordering center bonus = %d, want %d", got, centerOffset)
	}
}
