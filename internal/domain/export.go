package domain

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"
)

// ExportedObservation is the JSON body published for each observation.
type ExportedObservation struct {
	ID          string    `json:"id"`
	Station     string    `json:"station"`
	Date        string    `json:"date"`
	High        int       `json:"high_f"`
	Low         int       `json:"low_f"`
	ExtractedAt time.Time `json:"extracted_at"`
}

// SerializeObservation converts an observation into an OutputEvent keyed by its
// deterministic ID.
func SerializeObservation(obs Observation) (OutputEvent, error) {
	now := clock.Now().UTC()
	body := ExportedObservation{
		ID:          generateID(obs.Station, obs.Date),
		Station:     obs.Station,
		Date:        obs.Date.Format(DateLayout),
		High:        obs.High,
		Low:         obs.Low,
		ExtractedAt: now,
	}

	data, err := json.Marshal(body)
	if err != nil {
		return OutputEvent{}, fmt.Errorf("serialize observation: %w", err)
	}

	return OutputEvent{
		Key:   []byte(body.ID),
		Value: data,
		Headers: map[string]string{
			"station":      obs.Station,
			"extracted_at": now.Format(time.RFC3339),
		},
	}, nil
}

// generateID hashes station|date so republishing a file yields the same keys.
func generateID(station string, date time.Time) string {
	hash := sha256.Sum256([]byte(station + "|" + date.Format(DateLayout)))
	return hex.EncodeToString(hash[:12])
}
