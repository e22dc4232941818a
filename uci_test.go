package main

import (
	"strings"
	"testing"

	"chess-opponent/engine"
	"chess-opponent/position"

	"github.com/rs/zerolog"
)

func runUCI(t *testing.T, input string) (*uci, string) {
	t.Helper()
	u := newUCI(engine.NewPolicy(engine.DefaultPolicyConfig, nil, zerolog.Nop()), 3, zerolog.Nop())
	var out strings.Builder
	u.loop(strings.NewReader(input), &out)
	return u, out.String()
}

func TestUCIHandshake(t *testing.T) {
	_, out := runUCI(t, "uci\nisready\nquit\n")
	for _, want := range []string{"id name chess-opponent", "option name Difficulty type combo", "uciok", "readyok"} {
		if !strings.Contains(out, want) {
			t.Fatalf("output missing %q:\n%s", want, out)
		}
	}
}

func TestUCIPositionWithMoves(t *testing.T) {
	u, _ := runUCI(t, "position startpos moves e2e4 e7e5 g1f3\n")
	expected, err := position.Parse("rnbqkbnr/pppp1ppp/8/4p3/4P3/5N2/PPPP1PPP/RNBQKB1R b KQkq - 1 2")
	if err != nil {
		t.Fatal(err)
	}
	want := expected.FEN()
	if got := u.pos.FEN(); got != want {
		t.Fatalf("fen = %q, want %q", got, want)
	}
	if u.pos.Ply() != 3 {
		t.Fatalf("ply = %d, want 3", u.pos.Ply())
	}
}

func TestUCIBadPositionKeepsPrevious(t *testing.T) {
	u, out := runUCI(t, "position startpos moves e2e4\nposition startpos moves e2e5\nposition fen nonsense\n")
	if !strings.Contains(out, "info string") {
		t.Fatalf("expected an error report:\n%s", out)
	}
	if u.pos.Ply() != 1 {
		t.Fatalf("bad commands must leave the last good position, ply = %d", u.pos.Ply())
	}
}

func TestUCIGoDepthFindsMate(t *testing.T) {
	_, out := runUCI(t, "position fen 6k1/5ppp/8/8/8/8/8/R5K1 w - - 0 1\ngo depth 2\n")
	if !strings.Contains(out, "bestmove a1a8") {
		t.Fatalf("expected the back-rank mate:\n%s", out)
	}
	if !strings.Contains(out, "score mate 1") {
		t.Fatalf("expected a mate score:\n%s", out)
	}
}

func TestUCIDifficultyOption(t *testing.T) {
	u, out := runUCI(t, "setoption name Difficulty value Easy\ngo\n")
	if u.tier != engine.Easy {
		t.Fatalf("tier = %v, want easy", u.tier)
	}
	if !strings.Contains(out, "bestmove ") || strings.Contains(out, "info depth") {
		t.Fatalf("easy tier should answer without a search line:\n%s", out)
	}

	_, out = runUCI(t, "setoption name Difficulty value impossible\n")
	if !strings.Contains(out, "info string") {
		t.Fatalf("expected an error for an unknown tier:\n%s", out)
	}
}

func TestUCIGoWithoutMoves(t *testing.T) {
	_, out := runUCI(t, "position fen 7k/5Q2/6K1/8/8/8/8/8 b - - 0 1\ngo\n")
	if !strings.Contains(out, "bestmove 0000") {
		t.Fatalf("stalemate should give the null move:\n%s", out)
	}
}

func TestUCINewGameResets(t *testing.T) {
	u, _ := runUCI(t, "position startpos moves e2e4\nucinewgame\n")
	if u.pos.Ply() != 0 || u.pos.FEN() != position.New().FEN() {
		t.Fatalf("fen = %q after ucinewgame", u.pos.FEN())
	}
}

func TestUCIScore(t *testing.T) {
	for _, tc := range []struct {
		score int
		want  string
	}{
		{35, "cp 35"},
		{-120, "cp -120"},
		{engine.MateScore - 1, "mate 1"},
		{engine.MateScore - 3, "mate 2"},
		{-(engine.MateScore - 2), "mate -1"},
	} {
		if got := uciScore(tc.score); got != tc.want {
			t.Fatalf("uciScore(%d) = %q, want %q", tc.score, got, tc.want)
		}
	}
}

func BenchmarkGoDepth3(b *testing.B) {
	for i := 0; i < b.N; i++ {
		u := newUCI(engine.NewPolicy(engine.DefaultPolicyConfig, nil, zerolog.Nop()), 3, zerolog.Nop())
		var out strings.Builder
		u.loop(strings.NewReader("position startpos\ngo depth 3\n"), &out)
	}
}
