package domain

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSerializeObservation(t *testing.T) {
	fixed := time.Date(2025, time.March, 2, 9, 30, 0, 0, time.UTC)
	SetClock(clockwork.NewFakeClockAt(fixed))
	defer SetClock(nil)

	obs := Observation{
		Station: "SEATTLE",
		Date:    time.Date(2024, time.July, 1, 0, 0, 0, 0, time.UTC),
		High:    67,
		Low:     54,
	}

	out, err := SerializeObservation(obs)
	require.NoError(t, err)

	assert.Equal(t, "SEATTLE", out.Headers["station"])
	assert.Equal(t, "2025-03-02T09:30:00Z", out.Headers["extracted_at"])

	var body ExportedObservation
	require.NoError(t, json.Unmarshal(out.Value, &body))
	assert.Equal(t, string(out.Key), body.ID)
	assert.Equal(t, "2024-07-01", body.Date)
	assert.Equal(t, 67, body.High)
	assert.Equal(t, 54, body.Low)
	assert.Equal(t, fixed, body.ExtractedAt)
}

func TestGenerateID(t *testing.T) {
	d := time.Date(2024, time.July, 1, 0, 0, 0, 0, time.UTC)

	t.Run("deterministic", func(t *testing.T) {
		assert.Equal(t, generateID("STN", d), generateID("STN", d))
	})

	t.Run("different dates produce different IDs", func(t *testing.T) {
		assert.NotEqual(t, generateID("STN", d), generateID("STN", d.AddDate(0, 0, 1)))
	})

	t.Run("different stations produce different IDs", func(t *testing.T) {
		assert.NotEqual(t, generateID("STN_A", d), generateID("STN_B", d))
	})

	t.Run("hex length", func(t *testing.T) {
		assert.Len(t, generateID("STN", d), 24)
	})
}
