package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/Domenick1991/flightsearch/internal/domain"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

const createFlightsTable = `
CREATE TABLE IF NOT EXISTS flights (
    id            BIGSERIAL PRIMARY KEY,
    flight_number TEXT UNIQUE,
    departure     TEXT,
    arrival       TEXT
)`

// DB is the subset of *pgxpool.Pool the repository uses.
type DB interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type SavedFlightRepository interface {
	Create(ctx context.Context, flight domain.NewFlight) (int64, error)
	List(ctx context.Context) ([]domain.SavedFlight, error)
	DeleteByFlightNumber(ctx context.Context, flightNumber string) (int64, error)
}

type PGSavedFlightRepository struct {
	db DB
}

func NewSavedFlightRepository(db DB) *PGSavedFlightRepository {
	return &PGSavedFlightRepository{db: db}
}

func (r *PGSavedFlightRepository) EnsureSchema(ctx context.Context) error {
	if _, err := r.db.Exec(ctx, createFlightsTable); err != nil {
		return fmt.Errorf("create flights table: %w", err)
	}
	return nil
}

// Create inserts the flight and returns its ID. A flight number that is
// already stored yields domain.ErrDuplicateFlight.
func (r *PGSavedFlightRepository) Create(ctx context.Context, flight domain.NewFlight) (int64, error) {
	var id int64
	err := r.db.QueryRow(ctx, `INSERT INTO flights (flight_number, departure, arrival) VALUES ($1, $2, $3) RETURNING id`,
		flight.FlightNumber, flight.Departure, flight.Arrival).Scan(&id)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			return 0, fmt.Errorf("insert flight: %w", domain.ErrDuplicateFlight)
		}
		return 0, fmt.Errorf("insert flight: %w", err)
	}
	return id, nil
}

func (r *PGSavedFlightRepository) List(ctx context.Context) ([]domain.SavedFlight, error) {
	rows, err := r.db.Query(ctx, `SELECT id, COALESCE(flight_number, ''), COALESCE(departure, ''), COALESCE(arrival, '') FROM flights`)
	if err != nil {
		return nil, fmt.Errorf("query flights: %w", err)
	}
	defer rows.Close()

	flights := make([]domain.SavedFlight, 0)
	for rows.Next() {
		var f domain.SavedFlight
		if err := rows.Scan(&f.ID, &f.FlightNumber, &f.Departure, &f.Arrival); err != nil {
			return nil, fmt.Errorf("scan flight: %w", err)
		}
		flights = append(flights, f)
	}
	return flights, rows.Err()
}

func (r *PGSavedFlightRepository) DeleteByFlightNumber(ctx context.Context, flightNumber string) (int64, error) {
	tag, err := r.db.Exec(ctx, `DELETE FROM flights WHERE flight_number = $1`, flightNumber)
	if err != nil {
		return 0, fmt.Errorf("delete flight: %w", err)
	}
	return tag.RowsAffected(), nil
}

var _ SavedFlightRepository = (*PGSavedFlightRepository)(nil)
