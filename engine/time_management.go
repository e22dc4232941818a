package engine

import "time"

const (
	DefaultQuiescenceDepth = 3
	DefaultQuiescenceWidth = 5
)

// SearchBudget bounds one local search. It is built fresh for every move.
type SearchBudget struct {
	// Depth is the main search depth in plies. Zero is treated as one: the
	// root always looks at every reply.
	Depth int
	// QuiescenceDepth caps the capture-only extension in plies.
	QuiescenceDepth int
	// QuiescenceWidth is how many ordered captures each quiescence node tries.
	QuiescenceWidth int
}

// NewSearchBudget returns a budget for depth with the default quiescence limits.
func NewSearchBudget(depth int) SearchBudget {
	return SearchBudget{
		Depth:           depth,
		QuiescenceDepth: DefaultQuiescenceDepth,
		QuiescenceWidth: DefaultQuiescenceWidth,
	}
}

func (b SearchBudget) normalized() SearchBudget {
	if b.Depth < 1 {
		b.Depth = 1
	}
	if b.QuiescenceDepth < 0 {
		b.QuiescenceDepth = 0
	}
	if b.QuiescenceWidth <= 0 {
		b.QuiescenceWidth = DefaultQuiescenceWidth
	}
	return b
}

// ExternalBudget is what the strong engine is asked to spend on one move.
// Timeout bounds the whole exchange, including the engine's own move time.
type ExternalBudget struct {
	Depth    int
	MoveTime time.Duration
	Timeout  time.Duration
}

// DefaultExternalBudget matches the stock configuration.
var DefaultExternalBudget = ExternalBudget{
	Depth:    12,
	MoveTime: 500 * time.Millisecond,
	Timeout:  2 * time.Second,
}
