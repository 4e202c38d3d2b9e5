package booking_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"ticketly-gateway/internal/auth"
	"ticketly-gateway/internal/booking"
	"ticketly-gateway/internal/models"
	"ticketly-gateway/internal/ticket"
)

type MockBackend struct {
	mock.Mock
}

func (m *MockBackend) GetEvent(ctx context.Context, id string) (*models.Event, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Event), args.Error(1)
}

func (m *MockBackend) CreateBooking(ctx context.Context, req models.BookingRequest) (*models.Booking, error) {
	args := m.Called(req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Booking), args.Error(1)
}

func (m *MockBackend) MyBookings(ctx context.Context) ([]models.Booking, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Booking), args.Error(1)
}

type stubSessions struct {
	session *auth.Session
}

func (s stubSessions) Session() *auth.Session { return s.session }

func testEvent() *models.Event {
	return &models.Event{
		ID:       "evt-1",
		Title:    "Jazz Night",
		Price:    "500",
		Date:     "2026-03-14",
		Time:     "18:30",
		Location: "Dhaka",
	}
}

func TestLoadPrefillsFromSessionAndPrice(t *testing.T) {
	backend := new(MockBackend)
	backend.On("GetEvent", "evt-1").Return(testEvent(), nil)

	session := &auth.Session{UID: "u1", Email: "ana@example.com", DisplayName: "Ana"}
	creator := booking.NewCreator(backend, stubSessions{session: session}, nil)

	draft, err := creator.Load(context.Background(), "evt-1")
	require.NoError(t, err)
	assert.Equal(t, 500, draft.Amount)
	assert.Equal(t, "Ana", draft.Name)
	assert.Equal(t, "ana@example.com", draft.Email)
	backend.AssertExpectations(t)
}

func TestLoadAnonymousLeavesIdentityEmpty(t *testing.T) {
	backend := new(MockBackend)
	event := testEvent()
	event.Price = "Free"
	backend.On("GetEvent", "evt-1").Return(event, nil)

	creator := booking.NewCreator(backend, stubSessions{}, nil)

	draft, err := creator.Load(context.Background(), "evt-1")
	require.NoError(t, err)
	assert.Equal(t, 0, draft.Amount)
	assert.Empty(t, draft.Name)
	assert.Empty(t, draft.Email)
}

func TestSubmitRequiresSession(t *testing.T) {
	backend := new(MockBackend)
	creator := booking.NewCreator(backend, stubSessions{}, nil)

	draft := &booking.Draft{Event: *testEvent()}
	form := booking.Form{Name: "Ana", Email: "ana@example.com", PhoneNumber: "0171", Amount: "500"}

	_, err := creator.Submit(context.Background(), draft, form)
	assert.ErrorIs(t, err, auth.ErrAuthRequired)
	backend.AssertNotCalled(t, "CreateBooking", mock.Anything)
}

func TestSubmitMissingFieldNamesItWithoutNetworkCall(t *testing.T) {
	backend := new(MockBackend)
	session := &auth.Session{UID: "u1"}
	creator := booking.NewCreator(backend, stubSessions{session: session}, nil)

	draft := &booking.Draft{Event: *testEvent()}
	form := booking.Form{Name: "Ana", Email: "ana@example.com", PhoneNumber: "", Amount: "500"}

	_, err := creator.Submit(context.Background(), draft, form)

	var validationErr *booking.ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, []string{"phoneNumber"}, validationErr.Missing)
	backend.AssertNotCalled(t, "CreateBooking", mock.Anything)
}

func TestSubmitRejectsNonNumericAmount(t *testing.T) {
	backend := new(MockBackend)
	session := &auth.Session{UID: "u1"}
	creator := booking.NewCreator(backend, stubSessions{session: session}, nil)

	draft := &booking.Draft{Event: *testEvent()}
	form := booking.Form{Name: "Ana", Email: "ana@example.com", PhoneNumber: "0171", Amount: "lots"}

	_, err := creator.Submit(context.Background(), draft, form)

	var validationErr *booking.ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, []string{"amount"}, validationErr.Missing)
}

func TestSubmitDerivesTicketID(t *testing.T) {
	createdAt := time.UnixMilli(1767312345678)
	booked := &models.Booking{
		ID:        "booking-abc123",
		Name:      "Ana",
		Email:     "ana@example.com",
		CreatedAt: createdAt,
	}

	backend := new(MockBackend)
	backend.On("CreateBooking", mock.MatchedBy(func(req models.BookingRequest) bool {
		return req.EventID == "evt-1" && req.Amount == 500 && req.PhoneNumber == "0171"
	})).Return(booked, nil)

	session := &auth.Session{UID: "u1"}
	creator := booking.NewCreator(backend, stubSessions{session: session}, nil)

	draft := &booking.Draft{Event: *testEvent()}
	form := booking.Form{Name: "Ana", Email: "ana@example.com", PhoneNumber: " 0171 ", Amount: "500"}

	conf, err := creator.Submit(context.Background(), draft, form)
	require.NoError(t, err)
	assert.Equal(t, ticket.DeriveTicketID(createdAt, "booking-abc123"), conf.TicketID)
	assert.Equal(t, booking.RedirectDelay, conf.RedirectAfter)
	backend.AssertExpectations(t)
}

func TestSubmitPropagatesBackendError(t *testing.T) {
	backendErr := errors.New("sold out")
	backend := new(MockBackend)
	backend.On("CreateBooking", mock.Anything).Return(nil, backendErr)

	session := &auth.Session{UID: "u1"}
	creator := booking.NewCreator(backend, stubSessions{session: session}, nil)

	draft := &booking.Draft{Event: *testEvent()}
	form := booking.Form{Name: "Ana", Email: "ana@example.com", PhoneNumber: "0171", Amount: "500"}

	_, err := creator.Submit(context.Background(), draft, form)
	assert.ErrorIs(t, err, backendErr)
}

func TestListFailsClosedWithoutSession(t *testing.T) {
	backend := new(MockBackend)
	list := booking.NewList(backend, stubSessions{}, nil)

	_, err := list.Fetch(context.Background())
	assert.ErrorIs(t, err, auth.ErrAuthRequired)
	backend.AssertNotCalled(t, "MyBookings")
}

func TestListDerivesDisplayFields(t *testing.T) {
	createdAt := time.UnixMilli(1767312345678)
	bookings := []models.Booking{
		{
			ID:        "booking-1",
			CreatedAt: createdAt,
			Event:     &models.Event{Title: "Jazz Night", Date: "2026-03-14", Time: "18:30"},
		},
		{ID: "booking-2", CreatedAt: createdAt},
	}

	backend := new(MockBackend)
	backend.On("MyBookings").Return(bookings, nil)

	session := &auth.Session{UID: "u1"}
	list := booking.NewList(backend, stubSessions{session: session}, nil)

	items, err := list.Fetch(context.Background())
	require.NoError(t, err)
	require.Len(t, items, 2)

	assert.Equal(t, ticket.DeriveTicketID(createdAt, "booking-1"), items[0].TicketID)
	assert.Equal(t, "Saturday, March 14, 2026", items[0].DateLabel)
	assert.Equal(t, "6:30 PM", items[0].TimeLabel)

	// Missing event still yields a row with a usable ticket identifier.
	assert.Equal(t, "Time TBA", items[1].TimeLabel)
	assert.Empty(t, items[1].DateLabel)

	// Fetching again with no intervening mutation yields an identical list.
	again, err := list.Fetch(context.Background())
	require.NoError(t, err)
	assert.Equal(t, items, again)
}
