package engine

import "github.com/rs/zerolog"

// Stats collects node and cutoff counts for one search.
type Stats struct {
	Nodes            uint64
	QNodes           uint64
	BetaCutoffs      uint64
	QStandPatCutoffs uint64
	QBetaCutoffs     uint64
}

// MarshalZerologObject lets a Stats value be logged with Event.Object.
func (s Stats) MarshalZerologObject(e *zerolog.Event) {
	e.Uint64("nodes", s.Nodes).
		Uint64("qnodes", s.QNodes).
		Uint64("beta_cutoffs", s.BetaCutoffs).
		Uint64("q_standpat_cutoffs", s.QStandPatCutoffs).
		Uint64("q_beta_cutoffs", s.QBetaCutoffs)
}

// Add accumulates o into s.
func (s *Stats) Add(o Stats) {
	s.Nodes += o.Nodes
	s.QNodes += o.QNodes
	s.BetaCutoffs += o.BetaCutoffs
	s.QStandPatCutoffs += o.QStandPatCutoffs
	s.QBetaCutoffs += o.QBetaCutoffs
}
