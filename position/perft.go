package position

// Perft counts leaf nodes of the legal move tree to the given depth, walking
// it with Apply/Undo on p itself.
func (p *Position) Perft(depth int) uint64 {
	if depth <= 0 {
		return 1
	}
	moves := p.LegalMoves()
	if depth == 1 {
		return uint64(len(moves))
	}
	var nodes uint64
	for _, m := range moves {
		p.Apply(m)
		nodes += p.Perft(depth - 1)
		p.Undo()
	}
	return nodes
}

// PerftDivide returns the perft count below each root move.
func (p *Position) PerftDivide(depth int) map[string]uint64 {
	out := make(map[string]uint64)
	if depth <= 0 {
		return out
	}
	for _, m := range p.LegalMoves() {
		p.Apply(m)
		out[m.String()] = p.Perft(depth - 1)
		p.Undo()
	}
	return out
}
