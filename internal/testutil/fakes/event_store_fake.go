package fakes

import (
	"context"
	"sort"
	"sync"

	"github.com/dhima/event-records/internal/models"
	"github.com/dhima/event-records/internal/storage"
)

// FakeEventStore is an in-memory implementation of the events.Store interface.
// It returns the same sentinel errors as the MySQL client.
type FakeEventStore struct {
	mu       sync.Mutex
	users    map[string]models.User
	events   map[string]models.Event
	bookings map[string]int64

	// Err, when set, is returned by every call.
	Err error
	// Calls counts store calls of any kind.
	Calls int
	// BeforeDelete runs ahead of DeleteEvent; tests use it to simulate a racing delete.
	BeforeDelete func(eventID string)
}

func NewFakeEventStore() *FakeEventStore {
	return &FakeEventStore{
		users:    make(map[string]models.User),
		events:   make(map[string]models.Event),
		bookings: make(map[string]int64),
	}
}

// AddUser seeds a user record.
func (f *FakeEventStore) AddUser(u models.User) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.users[u.ID] = u
}

// AddBookings records n bookings against an event.
func (f *FakeEventStore) AddBookings(eventID string, n int64) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.bookings[eventID] += n
}

// HasEvent reports whether an event row exists.
func (f *FakeEventStore) HasEvent(eventID string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	_, ok := f.events[eventID]
	return ok
}

// RemoveEvent drops an event without going through DeleteEvent.
func (f *FakeEventStore) RemoveEvent(eventID string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.events, eventID)
}

func (f *FakeEventStore) GetUserBySubject(_ context.Context, subject string) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Calls++
	if f.Err != nil {
		return nil, f.Err
	}
	for _, u := range f.users {
		if u.ClerkUserID == subject {
			cpy := u
			return &cpy, nil
		}
	}
	return nil, storage.ErrUserNotFound
}

func (f *FakeEventStore) CreateEvent(_ context.Context, event *models.Event) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Calls++
	if f.Err != nil {
		return f.Err
	}
	f.events[event.ID] = *event
	return nil
}

func (f *FakeEventStore) GetEvent(_ context.Context, eventID string) (*models.Event, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Calls++
	if f.Err != nil {
		return nil, f.Err
	}
	ev, ok := f.events[eventID]
	if !ok {
		return nil, storage.ErrEventNotFound
	}
	return &ev, nil
}

func (f *FakeEventStore) ListEventsByUser(_ context.Context, userID string) ([]models.EventWithCount, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Calls++
	if f.Err != nil {
		return nil, f.Err
	}
	out := make([]models.EventWithCount, 0)
	for _, ev := range f.events {
		if ev.UserID == userID {
			out = append(out, models.EventWithCount{Event: ev, BookingCount: f.bookings[ev.ID]})
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (f *FakeEventStore) DeleteEvent(_ context.Context, eventID, ownerID string) error {
	if f.BeforeDelete != nil {
		f.BeforeDelete(eventID)
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Calls++
	if f.Err != nil {
		return f.Err
	}
	ev, ok := f.events[eventID]
	if !ok || ev.UserID != ownerID {
		return storage.ErrEventNotFound
	}
	delete(f.events, eventID)
	delete(f.bookings, eventID)
	return nil
}

func (f *FakeEventStore) GetEventByOwnerUsername(_ context.Context, username, eventID string) (*models.EventDetails, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Calls++
	if f.Err != nil {
		return nil, f.Err
	}
	ev, ok := f.events[eventID]
	if !ok {
		return nil, storage.ErrEventNotFound
	}
	owner, ok := f.users[ev.UserID]
	if !ok || owner.Username != username {
		return nil, storage.ErrEventNotFound
	}
	return &models.EventDetails{
		Event: ev,
		User:  models.Owner{Name: owner.Name, Email: owner.Email, ImageURL: owner.ImageURL},
	}, nil
}

func (f *FakeEventStore) Stats(_ context.Context) (models.Stats, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Calls++
	if f.Err != nil {
		return models.Stats{}, f.Err
	}
	var bookings int64
	for _, n := range f.bookings {
		bookings += n
	}
	return models.Stats{Users: int64(len(f.users)), Events: int64(len(f.events)), Bookings: bookings}, nil
}
