package saved

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/Domenick1991/flightsearch/internal/domain"
	"github.com/Domenick1991/flightsearch/internal/kafka"
	"github.com/Domenick1991/flightsearch/internal/metrics"
	"github.com/Domenick1991/flightsearch/internal/repository"
	"github.com/google/uuid"
)

type SavedFlightUseCase interface {
	Save(ctx context.Context, input SaveInput) (int64, error)
	List(ctx context.Context) ([]domain.SavedFlight, error)
	Delete(ctx context.Context, flightNumber string) (int64, error)
}

// Cache keeps the saved-flights list under a generation that every write
// bumps, so a list read before a write is never served after it.
type Cache interface {
	SavedFlightsGeneration(ctx context.Context) (int64, error)
	GetSavedFlights(ctx context.Context, gen int64) ([]domain.SavedFlight, error)
	SetSavedFlights(ctx context.Context, gen int64, flights []domain.SavedFlight) error
	InvalidateSavedFlights(ctx context.Context) error
}

type Producer interface {
	Publish(ctx context.Context, topic, key string, value interface{}) error
}

// SaveInput leaves absent fields nil; they are stored as NULL.
type SaveInput struct {
	FlightNumber *string `json:"flightNumber"`
	Departure    *string `json:"departure"`
	Arrival      *string `json:"arrival"`
}

type Service struct {
	repo     repository.SavedFlightRepository
	cache    Cache
	producer Producer
	topic    string
	logger   *slog.Logger
	now      func() time.Time
}

type Option func(*Service)

func WithCache(cache Cache) Option {
	return func(s *Service) {
		s.cache = cache
	}
}

func WithEvents(producer Producer, topic string) Option {
	return func(s *Service) {
		s.producer = producer
		s.topic = topic
	}
}

func NewService(repo repository.SavedFlightRepository, logger *slog.Logger, opts ...Option) *Service {
	s := &Service{
		repo:   repo,
		logger: logger,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Save stores a new flight and returns its surrogate id. A flight number that
// is already saved returns domain.ErrDuplicateFlight.
func (s *Service) Save(ctx context.Context, input SaveInput) (int64, error) {
	flight := domain.NewFlight{
		FlightNumber: input.FlightNumber,
		Departure:    input.Departure,
		Arrival:      input.Arrival,
	}
	id, err := s.repo.Create(ctx, flight)
	if err != nil {
		if errors.Is(err, domain.ErrDuplicateFlight) {
			metrics.IncSavedFlightOp("save", metrics.OutcomeDuplicate)
		} else {
			metrics.IncSavedFlightOp("save", metrics.OutcomeError)
		}
		return 0, err
	}
	metrics.IncSavedFlightOp("save", metrics.OutcomeSuccess)

	s.invalidate(ctx)
	row := flight.Saved(id)
	s.publish(ctx, kafka.SavedFlightEvent{
		Type:         kafka.EventFlightSaved,
		FlightID:     row.ID,
		FlightNumber: row.FlightNumber,
		Departure:    row.Departure,
		Arrival:      row.Arrival,
	})
	return id, nil
}

func (s *Service) List(ctx context.Context) ([]domain.SavedFlight, error) {
	gen, cacheable := s.listGeneration(ctx)
	if cacheable {
		cached, err := s.cache.GetSavedFlights(ctx, gen)
		if err != nil {
			s.logger.WarnContext(ctx, "saved flights cache read failed", "error", err)
		} else if cached != nil {
			return cached, nil
		}
	}

	flights, err := s.repo.List(ctx)
	if err != nil {
		metrics.IncSavedFlightOp("list", metrics.OutcomeError)
		return nil, err
	}
	metrics.IncSavedFlightOp("list", metrics.OutcomeSuccess)

	if cacheable {
		if err := s.cache.SetSavedFlights(ctx, gen, flights); err != nil {
			s.logger.WarnContext(ctx, "saved flights cache write failed", "error", err)
		}
	}
	return flights, nil
}

// listGeneration returns the generation List reads and fills. It has to be
// taken before the store is queried.
func (s *Service) listGeneration(ctx context.Context) (int64, bool) {
	if s.cache == nil {
		return 0, false
	}
	gen, err := s.cache.SavedFlightsGeneration(ctx)
	if err != nil {
		s.logger.WarnContext(ctx, "saved flights cache generation read failed", "error", err)
		return 0, false
	}
	return gen, true
}

// Delete removes every row with the flight number. Zero rows is not an error.
func (s *Service) Delete(ctx context.Context, flightNumber string) (int64, error) {
	deleted, err := s.repo.DeleteByFlightNumber(ctx, flightNumber)
	if err != nil {
		metrics.IncSavedFlightOp("delete", metrics.OutcomeError)
		return 0, err
	}
	metrics.IncSavedFlightOp("delete", metrics.OutcomeSuccess)

	if deleted > 0 {
		s.invalidate(ctx)
		s.publish(ctx, kafka.SavedFlightEvent{
			Type:         kafka.EventFlightDeleted,
			FlightNumber: flightNumber,
			DeletedRows:  deleted,
		})
	}
	return deleted, nil
}

func (s *Service) invalidate(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.InvalidateSavedFlights(ctx); err != nil {
		s.logger.ErrorContext(ctx, "saved flights cache invalidation failed, list may be stale until ttl", "error", err)
	}
}

// publish is best effort; the write it reports has already been committed.
func (s *Service) publish(ctx context.Context, event kafka.SavedFlightEvent) {
	if s.producer == nil || s.topic == "" {
		return
	}
	event.ID = uuid.NewString()
	event.OccurredAt = s.now().UTC()
	if err := s.producer.Publish(ctx, s.topic, event.FlightNumber, event); err != nil {
		s.logger.WarnContext(ctx, "failed to publish saved flight event",
			"type", event.Type,
			"flight_number", event.FlightNumber,
			"error", err,
		)
	}
}

var _ SavedFlightUseCase = (*Service)(nil)
