package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetadataRoundTrip_Competitor(t *testing.T) {
	raw, err := EncodeMetadata(CompetitorMention{Competitor: "Acme CRM"})
	require.NoError(t, err)

	decoded, err := DecodeMetadata(raw)
	require.NoError(t, err)
	assert.Equal(t, CompetitorMention{Competitor: "Acme CRM"}, decoded)
}

func TestDecodeMetadata_UnknownKindFallsBackToOpaque(t *testing.T) {
	decoded, err := DecodeMetadata(`{"kind":"custom_integration","data":{"source":"salesforce"}}`)
	require.NoError(t, err)
	assert.Equal(t, OpaqueMetadata{"source": "salesforce"}, decoded)
}

func TestEncodeMetadata_NilIsEmpty(t *testing.T) {
	raw, err := EncodeMetadata(nil)
	require.NoError(t, err)
	assert.Empty(t, raw)

	decoded, err := DecodeMetadata("")
	require.NoError(t, err)
	assert.Nil(t, decoded)
}

func TestDealValidate(t *testing.T) {
	d := Deal{Name: "Globex"}
	assert.Error(t, d.Validate(), "zero created_at should fail")

	d.Value = -100
	assert.Error(t, d.Validate())
}
