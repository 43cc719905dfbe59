package domain

import (
	"encoding/json"
	"fmt"
	"time"
)

// TimelineEvent is one entry in a deal's append-only activity log.
// Events are supplied to the engine ordered by recency (newest first)
// and are never mutated by it.
type TimelineEvent struct {
	ID        string
	DealID    string
	EventType string
	Metadata  EventMetadata
	CreatedAt time.Time
}

// EventMetadata is the typed payload attached to a timeline event.
// Known event types carry a structured variant; everything else is
// preserved as an opaque key-value map.
type EventMetadata interface {
	isEventMetadata()
}

// CompetitorMention records that a competitor came up during an activity.
type CompetitorMention struct {
	Competitor string `json:"competitor"`
}

func (CompetitorMention) isEventMetadata() {}

// StageChange records a pipeline stage transition.
type StageChange struct {
	From Stage `json:"from"`
	To   Stage `json:"to"`
}

func (StageChange) isEventMetadata() {}

// Note carries free-form text logged against a deal.
type Note struct {
	Text string `json:"text"`
}

func (Note) isEventMetadata() {}

// OpaqueMetadata preserves metadata for event types the engine does not
// interpret.
type OpaqueMetadata map[string]string

func (OpaqueMetadata) isEventMetadata() {}

// metadataEnvelope is the persisted JSON shape for event metadata.
type metadataEnvelope struct {
	Kind string          `json:"kind"`
	Data json.RawMessage `json:"data"`
}

// EncodeMetadata serializes event metadata for storage. Nil metadata
// encodes as an empty string.
func EncodeMetadata(m EventMetadata) (string, error) {
	if m == nil {
		return "", nil
	}
	var kind string
	switch m.(type) {
	case CompetitorMention:
		kind = "competitor_mention"
	case StageChange:
		kind = "stage_change"
	case Note:
		kind = "note"
	case OpaqueMetadata:
		kind = "opaque"
	default:
		return "", fmt.Errorf("unsupported metadata type %T", m)
	}
	data, err := json.Marshal(m)
	if err != nil {
		return "", fmt.Errorf("encoding %s metadata: %w", kind, err)
	}
	env, err := json.Marshal(metadataEnvelope{Kind: kind, Data: data})
	if err != nil {
		return "", fmt.Errorf("encoding metadata envelope: %w", err)
	}
	return string(env), nil
}

// DecodeMetadata deserializes stored event metadata. Unknown kinds fall
// back to OpaqueMetadata rather than failing the read.
func DecodeMetadata(raw string) (EventMetadata, error) {
	if raw == "" {
		return nil, nil
	}
	var env metadataEnvelope
	if err := json.Unmarshal([]byte(raw), &env); err != nil {
		return nil, fmt.Errorf("decoding metadata envelope: %w", err)
	}
	switch env.Kind {
	case "competitor_mention":
		var m CompetitorMention
		if err := json.Unmarshal(env.Data, &m); err != nil {
			return nil, fmt.Errorf("decoding competitor metadata: %w", err)
		}
		return m, nil
	case "stage_change":
		var m StageChange
		if err := json.Unmarshal(env.Data, &m); err != nil {
			return nil, fmt.Errorf("decoding stage_change metadata: %w", err)
		}
		return m, nil
	case "note":
		var m Note
		if err := json.Unmarshal(env.Data, &m); err != nil {
			return nil, fmt.Errorf("decoding note metadata: %w", err)
		}
		return m, nil
	default:
		var m OpaqueMetadata
		if err := json.Unmarshal(env.Data, &m); err != nil {
			return nil, fmt.Errorf("decoding opaque metadata: %w", err)
		}
		return m, nil
	}
}
