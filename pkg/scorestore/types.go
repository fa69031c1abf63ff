package scorestore

import "errors"

// ErrNegativeScore is returned when a caller tries to store a negative score
var ErrNegativeScore = errors.New("score cannot be negative")

// Record is the persisted safe score document. Both fields are set
// together on every update; a zero-value Record means no score has been
// configured yet.
type Record struct {
	Score *int64 `json:"score,omitempty"`
	// LastUpdate is seconds since the Unix epoch, fractional part kept
	LastUpdate *float64 `json:"last_update,omitempty"`
}
