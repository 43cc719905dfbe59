package repository

import (
	"database/sql"
	"time"
)

// Deal and event timestamps persist as RFC3339 TEXT, normalized to UTC, so
// created_at ordering works lexically and rows stay readable in ad-hoc
// queries.

func fmtTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

// fmtTimePtr renders an optional timestamp such as archived_at, mapping nil
// to SQL NULL.
func fmtTimePtr(t *time.Time) any {
	if t == nil {
		return nil
	}
	return fmtTime(*t)
}

// parseTimePtr reads an optional stored timestamp. NULL, empty, and
// unparseable values all come back nil.
func parseTimePtr(s sql.NullString) *time.Time {
	if !s.Valid || s.String == "" {
		return nil
	}
	t, err := time.Parse(time.RFC3339, s.String)
	if err != nil {
		return nil
	}
	return &t
}
