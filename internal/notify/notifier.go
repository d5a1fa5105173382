package notify

import (
	"context"
	"log/slog"

	"github.com/Domenick1991/flightsearch/internal/kafka"
)

// Notifier reports saved-flight changes. It only logs for now.
type Notifier struct {
	logger *slog.Logger
}

func NewNotifier(logger *slog.Logger) *Notifier {
	return &Notifier{logger: logger}
}

func (n *Notifier) Send(ctx context.Context, event kafka.SavedFlightEvent) error {
	switch event.Type {
	case kafka.EventFlightSaved:
		n.logger.InfoContext(ctx, "flight saved",
			"event_id", event.ID,
			"flight_id", event.FlightID,
			"flight_number", event.FlightNumber,
			"departure", event.Departure,
			"arrival", event.Arrival,
		)
	case kafka.EventFlightDeleted:
		n.logger.InfoContext(ctx, "flight deleted",
			"event_id", event.ID,
			"flight_number", event.FlightNumber,
			"deleted_rows", event.DeletedRows,
		)
	default:
		n.logger.WarnContext(ctx, "unknown event type", "event_id", event.ID, "type", event.Type)
	}
	return nil
}
