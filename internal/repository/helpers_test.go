package repository

import (
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTimeHelpersRoundTrip(t *testing.T) {
	ts := time.Date(2025, 6, 15, 9, 30, 0, 0, time.FixedZone("CEST", 2*3600))

	stored := fmtTime(ts)
	assert.Equal(t, "2025-06-15T07:30:00Z", stored, "storage form is UTC RFC3339")

	got := parseTimePtr(sql.NullString{String: stored, Valid: true})
	require.NotNil(t, got)
	assert.True(t, got.Equal(ts))
}

func TestFmtTimePtr(t *testing.T) {
	assert.Nil(t, fmtTimePtr(nil))

	ts := time.Date(2025, 6, 15, 7, 30, 0, 0, time.UTC)
	assert.Equal(t, "2025-06-15T07:30:00Z", fmtTimePtr(&ts))
}

func TestParseTimePtrToleratesBadValues(t *testing.T) {
	assert.Nil(t, parseTimePtr(sql.NullString{}))
	assert.Nil(t, parseTimePtr(sql.NullString{String: "", Valid: true}))
	assert.Nil(t, parseTimePtr(sql.NullString{String: "yesterday", Valid: true}))
}
