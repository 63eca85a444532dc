package match

import "github.com/poiesic/addrect/core"

// MatchMonitor provides hooks to observe the correction process.
// Implement this interface to track intermediate steps and scores during matching.
type MatchMonitor interface {
	Start(vendorName, address string)
	AfterEmbedding(vector []float32)
	AfterRetrieval(candidates []*core.Candidate)
	CandidateScored(record *core.ReferenceRecord, vendorSim, addressSim, embeddingSim, fused float64)
	Finish(result *core.CorrectionResult)
}

// noopMonitor is a no-op implementation of MatchMonitor
type noopMonitor struct{}

var _ MatchMonitor = (*noopMonitor)(nil)

func (n *noopMonitor) Start(_, _ string)                                           {}
func (n *noopMonitor) AfterEmbedding(_ []float32)                                  {}
func (n *noopMonitor) AfterRetrieval(_ []*core.Candidate)                          {}
func (n *noopMonitor) CandidateScored(_ *core.ReferenceRecord, _, _, _, _ float64) {}
func (n *noopMonitor) Finish(_ *core.CorrectionResult)                             {}
