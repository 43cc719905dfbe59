package domain

import "fmt"

type Stage string

const (
	StageDiscovery     Stage = "discovery"
	StageQualification Stage = "qualification"
	StageProposal      Stage = "proposal"
	StageNegotiation   Stage = "negotiation"
	StageClosedWon     Stage = "closed_won"
	StageClosedLost    Stage = "closed_lost"
)

// PipelineStages lists the active (non-closed) stages in pipeline order.
// Consumers that walk stages in order must use this slice rather than
// re-deriving their own ordering.
var PipelineStages = []Stage{
	StageDiscovery,
	StageQualification,
	StageProposal,
	StageNegotiation,
}

var stageOrder = map[Stage]int{
	StageDiscovery:     0,
	StageQualification: 1,
	StageProposal:      2,
	StageNegotiation:   3,
	StageClosedWon:     4,
	StageClosedLost:    4,
}

// StageOrder returns the position of the stage in the pipeline.
// Unknown stages sort first.
func StageOrder(s Stage) int {
	if o, ok := stageOrder[s]; ok {
		return o
	}
	return 0
}

// StageProgress returns the fraction of the active pipeline completed
// before this stage, in [0,1]. Discovery is 0, negotiation 0.75, closed 1.
func StageProgress(s Stage) float64 {
	if s.IsClosed() {
		return 1
	}
	if len(PipelineStages) == 0 {
		return 0
	}
	return float64(StageOrder(s)) / float64(len(PipelineStages))
}

// IsClosed reports whether the stage is terminal (won or lost).
func (s Stage) IsClosed() bool {
	return s == StageClosedWon || s == StageClosedLost
}

// ParseStage validates a raw stage string.
func ParseStage(raw string) (Stage, error) {
	s := Stage(raw)
	if _, ok := stageOrder[s]; !ok {
		return "", fmt.Errorf("unknown stage %q (expected one of discovery, qualification, proposal, negotiation, closed_won, closed_lost)", raw)
	}
	return s, nil
}
