package position

import "testing"

func TestCheckmateFoolsMate(t *testing.T) {
	p := mustParse(t, "rnb1kbnr/pppp1ppp/8/4p3/6Pq/5P2/PPPPP2P/RNBQKBNR w KQkq - 1 3")
	if !p.InCheck() {
		t.Fatalf("expected White to be in check")
	}
	if len(p.LegalMoves()) != 0 {
		t.Fatalf("expected no legal moves for White in mate")
	}
	if !p.IsCheckmate() || p.IsStalemate() {
		t.Fatalf("IsCheckmate=%v IsStalemate=%v", p.IsCheckmate(), p.IsStalemate())
	}
	if p.Status() != Checkmate {
		t.Fatalf("Status() = %v", p.Status())
	}
}

func TestStalemateBasic(t *testing.T) {
	p := mustParse(t, "7k/5Q2/6K1/8/8/8/8/8 b - - 0 1")
	if p.InCheck() {
		t.Fatalf("expected Black not in check")
	}
	if !p.IsStalemate() || p.IsCheckmate() {
		t.Fatalf("IsStalemate=%v IsCheckmate=%v", p.IsStalemate(), p.IsCheckmate())
	}
	if p.Status() != Stalemate {
		t.Fatalf("Status() = %v", p.Status())
	}
}

func TestMateInOneMakeAndDetect(t *testing.T) {
	p := mustParse(t, "6k1/5ppp/8/8/8/8/8/R5K1 w - - 0 1")
	p.Apply(mustMove(t, p, "a1a8"))
	if !p.IsCheckmate() {
		t.Fatalf("expected checkmate after Ra8#")
	}
	p.Undo()
	if p.IsCheckmate() || p.SideToMove() != White {
		t.Fatalf("position not restored after Undo")
	}
}

func TestThreefoldRepetitionKnightShuffle(t *testing.T) {
	p := New()
	cycle := []string{"g1f3", "g8f6", "f3g1", "f6g8"}

	for _, uci := range cycle {
		p.Apply(mustMove(t, p, uci))
	}
	if p.IsDraw() {
		t.Fatalf("should not be threefold after one cycle")
	}

	for _, uci := range cycle {
		p.Apply(mustMove(t, p, uci))
	}
	if !p.IsDraw() || p.Status() != Draw {
		t.Fatalf("expected threefold repetition after two cycles")
	}

	p.Undo()
	if p.IsDraw() {
		t.Fatalf("repetition should disappear after Undo")
	}
}

func TestFiftyMoveRule(t *testing.T) {
	if !mustParse(t, "8/8/8/4k3/8/8/R7/4K3 w - - 100 80").IsDraw() {
		t.Fatalf("halfmove clock 100 should be a draw")
	}
	if mustParse(t, "8/8/8/4k3/8/8/R7/4K3 w - - 99 80").IsDraw() {
		t.Fatalf("halfmove clock 99 should not be a draw")
	}
}

func TestInsufficientMaterial(t *testing.T) {
	for fen, want := range map[string]bool{
		"8/8/8/4k3/8/8/8/4K3 w - - 0 1":   true,
		"8/8/8/4k3/8/8/8/2B1K3 w - - 0 1": true,
		"8/8/8/4k3/8/8/8/1NB1K3 w - - 0 1": false,
		"8/8/8/4k3/8/8/P7/4K3 w - - 0 1":  false,
	} {
		if got := mustParse(t, fen).IsDraw(); got != want {
			t.Fatalf("%s: IsDraw() = %v, want %v", fen, got, want)
		}
	}
}
