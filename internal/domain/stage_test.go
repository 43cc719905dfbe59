package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStageProgress_MonotonicAcrossPipeline(t *testing.T) {
	prev := -1.0
	for _, s := range PipelineStages {
		p := StageProgress(s)
		assert.Greater(t, p, prev, "progress should increase at stage %s", s)
		prev = p
	}
	assert.Equal(t, 1.0, StageProgress(StageClosedWon))
	assert.Equal(t, 1.0, StageProgress(StageClosedLost))
}

func TestStageProgress_Bounds(t *testing.T) {
	assert.Equal(t, 0.0, StageProgress(StageDiscovery))
	assert.Equal(t, 0.75, StageProgress(StageNegotiation))
}

func TestParseStage(t *testing.T) {
	s, err := ParseStage("proposal")
	assert.NoError(t, err)
	assert.Equal(t, StageProposal, s)

	_, err = ParseStage("prospecting")
	assert.Error(t, err)
}

func TestIsClosed(t *testing.T) {
	assert.True(t, StageClosedWon.IsClosed())
	assert.True(t, StageClosedLost.IsClosed())
	assert.False(t, StageNegotiation.IsClosed())
}
