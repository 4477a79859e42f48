package storage

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dhima/event-records/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	created   = time.Date(2025, 1, 2, 3, 0, 0, 0, time.UTC)
	eventCols = []string{"id", "user_id", "title", "description", "duration", "is_private", "created_at", "updated_at"}
)

func newMock(t *testing.T) (*MySQLClient, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() {
		assert.NoError(t, mock.ExpectationsWereMet())
		_ = db.Close()
	})
	return NewMySQLClient(db), mock
}

func q(s string) string { return regexp.QuoteMeta(s) }

func TestGetUserBySubject_WhenFound_ThenMapsNullableColumns(t *testing.T) {
	// Arrange
	client, mock := newMock(t)
	mock.ExpectQuery(q("FROM users WHERE clerk_user_id = ?")).
		WithArgs("user_2abc").
		WillReturnRows(sqlmock.NewRows([]string{"id", "clerk_user_id", "username", "name", "email", "image_url", "created_at", "updated_at"}).
			AddRow("u-1", "user_2abc", "alice", nil, "alice@example.com", nil, created, created))

	// Act
	u, err := client.GetUserBySubject(context.Background(), "user_2abc")

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "u-1", u.ID)
	assert.Equal(t, "alice", u.Username)
	assert.Empty(t, u.Name)
	assert.Empty(t, u.ImageURL)
}

func TestGetUserBySubject_WhenMissing_ThenErrUserNotFound(t *testing.T) {
	client, mock := newMock(t)
	mock.ExpectQuery(q("FROM users WHERE clerk_user_id = ?")).
		WithArgs("ghost").
		WillReturnError(sql.ErrNoRows)

	_, err := client.GetUserBySubject(context.Background(), "ghost")

	assert.True(t, errors.Is(err, ErrUserNotFound))
}

func TestCreateEvent_WhenCalled_ThenInsertsAllColumns(t *testing.T) {
	client, mock := newMock(t)
	desc := "A quick chat"
	ev := &models.Event{ID: "e-1", UserID: "u-1", Title: "Intro Call", Description: &desc, Duration: 30, IsPrivate: true, CreatedAt: created, UpdatedAt: created}
	mock.ExpectExec(q("INSERT INTO events")).
		WithArgs("e-1", "u-1", "Intro Call", sqlmock.AnyArg(), 30, true, created, created).
		WillReturnResult(sqlmock.NewResult(0, 1))

	assert.NoError(t, client.CreateEvent(context.Background(), ev))
}

func TestCreateEvent_WhenExecFails_ThenWrapsError(t *testing.T) {
	client, mock := newMock(t)
	boom := errors.New("connection reset")
	mock.ExpectExec(q("INSERT INTO events")).WillReturnError(boom)

	err := client.CreateEvent(context.Background(), &models.Event{ID: "e-1"})

	assert.True(t, errors.Is(err, boom))
}

func TestGetEvent_WhenMissing_ThenErrEventNotFound(t *testing.T) {
	client, mock := newMock(t)
	mock.ExpectQuery(q("FROM events e WHERE e.id = ?")).
		WithArgs("nope").
		WillReturnRows(sqlmock.NewRows(eventCols))

	_, err := client.GetEvent(context.Background(), "nope")

	assert.True(t, errors.Is(err, ErrEventNotFound))
}

func TestGetEvent_WhenFound_ThenReturnsEvent(t *testing.T) {
	client, mock := newMock(t)
	mock.ExpectQuery(q("FROM events e WHERE e.id = ?")).
		WithArgs("e-1").
		WillReturnRows(sqlmock.NewRows(eventCols).AddRow("e-1", "u-1", "Intro Call", nil, 30, false, created, created))

	ev, err := client.GetEvent(context.Background(), "e-1")

	require.NoError(t, err)
	assert.Equal(t, "u-1", ev.UserID)
	assert.Nil(t, ev.Description)
}

func TestListEventsByUser_WhenRows_ThenKeepsOrderAndCounts(t *testing.T) {
	client, mock := newMock(t)
	later := created.Add(time.Hour)
	mock.ExpectQuery(q("ORDER BY e.created_at DESC")).
		WithArgs("u-1").
		WillReturnRows(sqlmock.NewRows(append(eventCols, "booking_count")).
			AddRow("e-2", "u-1", "Deep Dive", "long", 60, false, later, later, 0).
			AddRow("e-1", "u-1", "Intro Call", nil, 30, true, created, created, 3))

	events, err := client.ListEventsByUser(context.Background(), "u-1")

	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, "e-2", events[0].ID)
	assert.Equal(t, int64(0), events[0].BookingCount)
	assert.Equal(t, "e-1", events[1].ID)
	assert.Equal(t, int64(3), events[1].BookingCount)
}

func TestListEventsByUser_WhenNone_ThenEmptySlice(t *testing.T) {
	client, mock := newMock(t)
	mock.ExpectQuery(q("WHERE e.user_id = ?")).
		WithArgs("u-1").
		WillReturnRows(sqlmock.NewRows(append(eventCols, "booking_count")))

	events, err := client.ListEventsByUser(context.Background(), "u-1")

	require.NoError(t, err)
	assert.NotNil(t, events)
	assert.Empty(t, events)
}

func TestDeleteEvent_WhenRowDeleted_ThenNoError(t *testing.T) {
	client, mock := newMock(t)
	mock.ExpectExec(q("DELETE FROM events WHERE id = ? AND user_id = ?")).
		WithArgs("e-1", "u-1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	assert.NoError(t, client.DeleteEvent(context.Background(), "e-1", "u-1"))
}

func TestDeleteEvent_WhenZeroRows_ThenErrEventNotFound(t *testing.T) {
	client, mock := newMock(t)
	mock.ExpectExec(q("DELETE FROM events WHERE id = ? AND user_id = ?")).
		WithArgs("e-1", "u-1").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := client.DeleteEvent(context.Background(), "e-1", "u-1")

	assert.True(t, errors.Is(err, ErrEventNotFound))
}

func TestGetEventByOwnerUsername_WhenFound_ThenIncludesOwner(t *testing.T) {
	client, mock := newMock(t)
	mock.ExpectQuery(q("WHERE e.id = ? AND u.username = ?")).
		WithArgs("e-1", "alice").
		WillReturnRows(sqlmock.NewRows(append(eventCols, "name", "email", "image_url")).
			AddRow("e-1", "u-1", "Intro Call", nil, 30, false, created, created, "Alice", "alice@example.com", "https://img/a.png"))

	d, err := client.GetEventByOwnerUsername(context.Background(), "alice", "e-1")

	require.NoError(t, err)
	assert.Equal(t, models.Owner{Name: "Alice", Email: "alice@example.com", ImageURL: "https://img/a.png"}, d.User)
	assert.Equal(t, "Intro Call", d.Title)
}

func TestGetEventByOwnerUsername_WhenUsernameMismatch_ThenErrEventNotFound(t *testing.T) {
	client, mock := newMock(t)
	mock.ExpectQuery(q("WHERE e.id = ? AND u.username = ?")).
		WithArgs("e-1", "bob").
		WillReturnError(sql.ErrNoRows)

	_, err := client.GetEventByOwnerUsername(context.Background(), "bob", "e-1")

	assert.True(t, errors.Is(err, ErrEventNotFound))
}

func TestStats_WhenCalled_ThenReturnsTotals(t *testing.T) {
	client, mock := newMock(t)
	mock.ExpectQuery(q("SELECT COUNT(*) FROM bookings")).
		WillReturnRows(sqlmock.NewRows([]string{"users", "events", "bookings"}).AddRow(2, 5, 9))

	s, err := client.Stats(context.Background())

	require.NoError(t, err)
	assert.Equal(t, models.Stats{Users: 2, Events: 5, Bookings: 9}, s)
}

func TestOpen_WhenDSNEmpty_ThenError(t *testing.T) {
	_, err := Open(context.Background(), "")

	assert.Error(t, err)
}
