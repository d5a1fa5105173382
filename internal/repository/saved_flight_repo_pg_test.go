package repository

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/Domenick1991/flightsearch/internal/domain"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMock(t *testing.T) pgxmock.PgxPoolIface {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)
	return mock
}

func text(s string) *string {
	return &s
}

func newFlight(number, departure, arrival string) domain.NewFlight {
	return domain.NewFlight{FlightNumber: text(number), Departure: text(departure), Arrival: text(arrival)}
}

func TestSavedFlightRepository_EnsureSchema(t *testing.T) {
	mock := newMock(t)
	repo := NewSavedFlightRepository(mock)

	mock.ExpectExec(regexp.QuoteMeta("CREATE TABLE IF NOT EXISTS flights")).
		WillReturnResult(pgxmock.NewResult("CREATE TABLE", 0))

	require.NoError(t, repo.EnsureSchema(context.Background()))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSavedFlightRepository_Create(t *testing.T) {
	mock := newMock(t)
	repo := NewSavedFlightRepository(mock)

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO flights (flight_number, departure, arrival)")).
		WithArgs(text("UA 1234"), text("CLE"), text("LAX")).
		WillReturnRows(pgxmock.NewRows([]string{"id"}).AddRow(int64(7)))

	id, err := repo.Create(context.Background(), newFlight("UA 1234", "CLE", "LAX"))
	require.NoError(t, err)

	assert.Equal(t, int64(7), id)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSavedFlightRepository_Create_AbsentFieldsAreNull(t *testing.T) {
	mock := newMock(t)
	repo := NewSavedFlightRepository(mock)

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO flights")).
		WithArgs((*string)(nil), text("CLE"), (*string)(nil)).
		WillReturnRows(pgxmock.NewRows([]string{"id"}).AddRow(int64(8)))

	id, err := repo.Create(context.Background(), domain.NewFlight{Departure: text("CLE")})

	require.NoError(t, err)
	assert.Equal(t, int64(8), id)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSavedFlightRepository_Create_Duplicate(t *testing.T) {
	mock := newMock(t)
	repo := NewSavedFlightRepository(mock)

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO flights")).
		WithArgs(text("UA 1234"), text("CLE"), text("LAX")).
		WillReturnError(&pgconn.PgError{Code: pgerrcode.UniqueViolation, ConstraintName: "flights_flight_number_key"})

	_, err := repo.Create(context.Background(), newFlight("UA 1234", "CLE", "LAX"))

	assert.ErrorIs(t, err, domain.ErrDuplicateFlight)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSavedFlightRepository_Create_OtherError(t *testing.T) {
	mock := newMock(t)
	repo := NewSavedFlightRepository(mock)

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO flights")).
		WithArgs(text("UA 1234"), text("CLE"), text("LAX")).
		WillReturnError(&pgconn.PgError{Code: pgerrcode.NotNullViolation})

	_, err := repo.Create(context.Background(), newFlight("UA 1234", "CLE", "LAX"))

	require.Error(t, err)
	assert.False(t, errors.Is(err, domain.ErrDuplicateFlight))
}

func TestSavedFlightRepository_List(t *testing.T) {
	mock := newMock(t)
	repo := NewSavedFlightRepository(mock)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, COALESCE(flight_number")).
		WillReturnRows(pgxmock.NewRows([]string{"id", "flight_number", "departure", "arrival"}).
			AddRow(int64(1), "UA 1234", "CLE", "LAX").
			AddRow(int64(2), "DL 88", "ATL", "JFK"))

	flights, err := repo.List(context.Background())

	require.NoError(t, err)
	assert.Equal(t, []domain.SavedFlight{
		{ID: 1, FlightNumber: "UA 1234", Departure: "CLE", Arrival: "LAX"},
		{ID: 2, FlightNumber: "DL 88", Departure: "ATL", Arrival: "JFK"},
	}, flights)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSavedFlightRepository_List_Empty(t *testing.T) {
	mock := newMock(t)
	repo := NewSavedFlightRepository(mock)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, COALESCE(flight_number")).
		WillReturnRows(pgxmock.NewRows([]string{"id", "flight_number", "departure", "arrival"}))

	flights, err := repo.List(context.Background())

	require.NoError(t, err)
	assert.NotNil(t, flights)
	assert.Empty(t, flights)
}

func TestSavedFlightRepository_DeleteByFlightNumber(t *testing.T) {
	mock := newMock(t)
	repo := NewSavedFlightRepository(mock)

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM flights WHERE flight_number = $1")).
		WithArgs("UA 1234").
		WillReturnResult(pgxmock.NewResult("DELETE", 1))
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM flights WHERE flight_number = $1")).
		WithArgs("XX 0").
		WillReturnResult(pgxmock.NewResult("DELETE", 0))

	deleted, err := repo.DeleteByFlightNumber(context.Background(), "UA 1234")
	require.NoError(t, err)
	assert.Equal(t, int64(1), deleted)

	deleted, err = repo.DeleteByFlightNumber(context.Background(), "XX 0")
	require.NoError(t, err)
	assert.Zero(t, deleted)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSavedFlightRepository_DeleteByFlightNumber_Error(t *testing.T) {
	mock := newMock(t)
	repo := NewSavedFlightRepository(mock)

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM flights")).
		WithArgs("UA 1234").
		WillReturnError(errors.New("connection reset"))

	_, err := repo.DeleteByFlightNumber(context.Background(), "UA 1234")
	assert.Error(t, err)
}
