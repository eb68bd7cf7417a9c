package amqp

import (
	"encoding/json"
	"time"
)

// Refresh reasons carried on the message so the worker can log what triggered
// a recompute.
const (
	ReasonItemCreated = "item_created"
	ReasonItemDeleted = "item_deleted"
	ReasonSettings    = "settings_changed"
	ReasonScheduled   = "scheduled"
)

// ForecastRefreshMessage asks the worker to recompute the forecast chain
// starting at the given month. It is intentionally small: the worker fetches
// the current items from the database, so a stale message can never replay
// old data.
type ForecastRefreshMessage struct {
	Year      int       `json:"year"`
	Month     int       `json:"month"`
	Reason    string    `json:"reason"`
	Timestamp time.Time `json:"timestamp"`
}

// NewForecastRefreshMessage creates a refresh request for the given month.
func NewForecastRefreshMessage(year, month int, reason string) *ForecastRefreshMessage {
	return &ForecastRefreshMessage{
		Year:      year,
		Month:     month,
		Reason:    reason,
		Timestamp: time.Now(),
	}
}

// ToJSON converts the message to JSON bytes.
func (m *ForecastRefreshMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

// ForecastRefreshMessageFromJSON creates a message from JSON bytes.
func ForecastRefreshMessageFromJSON(data []byte) (*ForecastRefreshMessage, error) {
	var msg ForecastRefreshMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
