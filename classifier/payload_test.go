package classifier_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tickertag/classifier"
	"tickertag/models"
)

func samplePayload() classifier.Payload {
	return classifier.Payload{
		Text:      "gm",
		Author:    "acmefounder",
		Timestamp: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC).Format(time.RFC3339),
		Examples:  classifier.DefaultWorkedExamples(),
	}
}

func TestPayloadMarshalPassesGuard(t *testing.T) {
	raw, err := samplePayload().Marshal()
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(raw, &decoded))
	assert.Contains(t, decoded, "text")
	assert.Contains(t, decoded, "author")
	assert.Contains(t, decoded, "timestamp")
	assert.Contains(t, decoded, "examples")
}

func TestCheckPayloadTripsOnDisallowedKey(t *testing.T) {
	for _, key := range []string{"price", "price_change", "impact", "market_cap"} {
		raw, err := json.Marshal(map[string]any{"text": "gm", key: 1.23})
		require.NoError(t, err)
		err = classifier.CheckPayload(raw)
		assert.ErrorIs(t, err, classifier.ErrLeakageDetected, "key %q must trip the guard", key)
	}
}

func TestCheckPayloadTripsOnNestedKey(t *testing.T) {
	raw, err := json.Marshal(map[string]any{
		"text": "gm",
		"meta": map[string]any{"inner": []any{map[string]any{"price": 42}}},
	})
	require.NoError(t, err)
	assert.ErrorIs(t, classifier.CheckPayload(raw), classifier.ErrLeakageDetected)
}

func TestCheckPayloadNeverStripsSilently(t *testing.T) {
	// The guard rejects; it must not return a cleaned payload. Verify the
	// clean case passes untouched and the dirty case errors.
	clean, err := samplePayload().Marshal()
	require.NoError(t, err)
	assert.NoError(t, classifier.CheckPayload(clean))
}

func TestFingerprintDeterministic(t *testing.T) {
	raw, err := samplePayload().Marshal()
	require.NoError(t, err)
	again, err := samplePayload().Marshal()
	require.NoError(t, err)

	assert.Equal(t, classifier.Fingerprint(raw), classifier.Fingerprint(again))
	assert.Len(t, classifier.Fingerprint(raw), 64)
	assert.NotEqual(t, classifier.Fingerprint(raw), classifier.Fingerprint([]byte("other")))
}

func TestParseResponseValid(t *testing.T) {
	tax := models.TaxonomyV1()
	cls, err := classifier.ParseResponse(tax,
		`{"category":"Shitpost","format":"text","tone":"humorous","rationale":"ritual greeting"}`,
		"abc123")
	require.NoError(t, err)
	assert.Equal(t, models.CategoryShitpost, cls.Category)
	assert.Equal(t, models.MethodModel, cls.Method)
	assert.True(t, cls.NeedsReview)
	assert.Equal(t, "abc123", cls.Fingerprint)
	assert.Equal(t, "v1", cls.SchemaVersion)
}

func TestParseResponseRejectsUnknownCategory(t *testing.T) {
	_, err := classifier.ParseResponse(models.TaxonomyV1(),
		`{"category":"Bullish","format":"text","tone":"neutral","rationale":"x"}`, "fp")
	assert.ErrorIs(t, err, classifier.ErrBadResponse)
}

func TestParseResponseRejectsMalformedJSON(t *testing.T) {
	_, err := classifier.ParseResponse(models.TaxonomyV1(), "```json\n{}\n```", "fp")
	assert.ErrorIs(t, err, classifier.ErrBadResponse)
}

func TestParseResponseRejectsUnknownTags(t *testing.T) {
	_, err := classifier.ParseResponse(models.TaxonomyV1(),
		`{"category":"Update","format":"carousel","tone":"neutral","rationale":"x"}`, "fp")
	assert.ErrorIs(t, err, classifier.ErrBadResponse)

	_, err = classifier.ParseResponse(models.TaxonomyV1(),
		`{"category":"Update","format":"text","tone":"sarcastic","rationale":"x"}`, "fp")
	assert.ErrorIs(t, err, classifier.ErrBadResponse)
}

func TestSystemInstructionCarriesTaxonomy(t *testing.T) {
	instr := classifier.SystemInstruction(models.TaxonomyV1())
	for _, c := range models.TaxonomyV1().Categories {
		assert.Contains(t, instr, `"`+string(c)+`"`)
	}
	assert.NotContains(t, instr, "price movement prediction")
}
