package kafka

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/segmentio/kafka-go"
)

const (
	EventFlightSaved   = "flight_saved"
	EventFlightDeleted = "flight_deleted"
)

type SavedFlightEvent struct {
	ID           string    `json:"id"`
	Type         string    `json:"type"`
	FlightID     int64     `json:"flight_id,omitempty"`
	FlightNumber string    `json:"flight_number"`
	Departure    string    `json:"departure,omitempty"`
	Arrival      string    `json:"arrival,omitempty"`
	DeletedRows  int64     `json:"deleted_rows,omitempty"`
	OccurredAt   time.Time `json:"occurred_at"`
}

func DecodeEvent(msg kafka.Message) (SavedFlightEvent, error) {
	var event SavedFlightEvent
	if err := json.Unmarshal(msg.Value, &event); err != nil {
		return SavedFlightEvent{}, fmt.Errorf("decode event: %w", err)
	}
	if event.Type == "" {
		return SavedFlightEvent{}, fmt.Errorf("decode event: missing type")
	}
	return event, nil
}
