package workflow

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/pointsolution/docbooking/internal/domain"
	"github.com/pointsolution/docbooking/internal/session"
	"github.com/pointsolution/docbooking/internal/upstream"
)

type mockUpstream struct {
	mock.Mock
}

func (m *mockUpstream) ServiceByID(ctx context.Context, id string) (*domain.Service, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Service), args.Error(1)
}

func (m *mockUpstream) CreateBooking(ctx context.Context, req upstream.CreateBookingRequest) (*domain.Booking, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}

func (m *mockUpstream) MyBookings(ctx context.Context) ([]domain.Booking, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Booking), args.Error(1)
}

func (m *mockUpstream) BookingByID(ctx context.Context, id string) (*domain.Booking, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}

func (m *mockUpstream) CancelBooking(ctx context.Context, id string) (*domain.Booking, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}

func (m *mockUpstream) MyBookingStats(ctx context.Context) (*upstream.BookingStats, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*upstream.BookingStats), args.Error(1)
}

func (m *mockUpstream) UpdatePayment(ctx context.Context, bookingID string, update upstream.PaymentUpdate) (*domain.Booking, error) {
	args := m.Called(ctx, bookingID, update)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}

type counter struct{ n int }

func (c *counter) Inc() { c.n++ }

const validServiceID = "507f1f77bcf86cd799439011"

func newSession(t *testing.T, store session.Store, user domain.User) string {
	t.Helper()
	id, err := store.Create(context.Background(), session.Record{Token: "jwt-token", User: user})
	assert.NoError(t, err)
	return id
}

func TestSubmitRejectsInvalidServiceIDLocally(t *testing.T) {
	api := new(mockUpstream)
	store := session.NewMemoryStore(time.Hour)
	svc := NewWorkflowService(api, store, nil, nil)

	sid := newSession(t, store, domain.User{ID: "u1"})
	_, err := svc.Submit(context.Background(), sid, SubmitInput{ServiceID: "short-id"})

	assert.ErrorIs(t, err, ErrInvalidServiceID)
	api.AssertNotCalled(t, "CreateBooking", mock.Anything, mock.Anything)
}

func TestSubmitRejectsOversizedAdditionalInfo(t *testing.T) {
	api := new(mockUpstream)
	store := session.NewMemoryStore(time.Hour)
	svc := NewWorkflowService(api, store, nil, nil)

	sid := newSession(t, store, domain.User{ID: "u1"})
	_, err := svc.Submit(context.Background(), sid, SubmitInput{
		ServiceID:      validServiceID,
		AdditionalInfo: strings.Repeat("x", 501),
	})

	assert.ErrorIs(t, err, ErrAdditionalInfoTooLong)
	api.AssertNotCalled(t, "CreateBooking", mock.Anything, mock.Anything)
}

func TestSubmitSnapshotsProfile(t *testing.T) {
	api := new(mockUpstream)
	store := session.NewMemoryStore(time.Hour)
	submitted := &counter{}
	svc := NewWorkflowService(api, store, submitted, nil)

	user := domain.User{
		ID:            "u1",
		FullName:      "Ramesh Kumar",
		Email:         "ramesh@example.com",
		Phone:         "9876543210",
		AadhaarNumber: "1234-5678-9012",
	}
	sid := newSession(t, store, user)

	api.On("CreateBooking", mock.Anything, mock.MatchedBy(func(req upstream.CreateBookingRequest) bool {
		return req.ServiceID == validServiceID &&
			req.PaymentMethod == domain.PaymentMethodNotPaid &&
			req.UserDetails.FullName == "Ramesh Kumar" &&
			req.UserDetails.Email == "ramesh@example.com" &&
			req.UserDetails.Phone == "9876543210" &&
			req.UserDetails.AadhaarNumber == "1234-5678-9012"
	})).Return(&domain.Booking{BookingID: "BK1", Status: domain.BookingStatusPending}, nil)

	booking, err := svc.Submit(context.Background(), sid, SubmitInput{ServiceID: validServiceID})
	assert.NoError(t, err)
	assert.Equal(t, "BK1", booking.BookingID)
	assert.Equal(t, 1, submitted.n)
	api.AssertExpectations(t)
}

func TestSubmitWithoutSession(t *testing.T) {
	api := new(mockUpstream)
	store := session.NewMemoryStore(time.Hour)
	svc := NewWorkflowService(api, store, nil, nil)

	_, err := svc.Submit(context.Background(), "missing", SubmitInput{ServiceID: validServiceID})
	assert.ErrorIs(t, err, session.ErrNotFound)
	api.AssertNotCalled(t, "CreateBooking", mock.Anything, mock.Anything)
}

func TestStartInactiveService(t *testing.T) {
	api := new(mockUpstream)
	store := session.NewMemoryStore(time.Hour)
	svc := NewWorkflowService(api, store, nil, nil)

	sid := newSession(t, store, domain.User{ID: "u1"})
	api.On("ServiceByID", mock.Anything, validServiceID).
		Return(&domain.Service{ID: validServiceID, IsActive: false}, nil)

	_, err := svc.Start(context.Background(), sid, validServiceID)
	assert.ErrorIs(t, err, ErrServiceInactive)
}

func TestStartOffersCustomerMethodsOnly(t *testing.T) {
	api := new(mockUpstream)
	store := session.NewMemoryStore(time.Hour)
	svc := NewWorkflowService(api, store, nil, nil)

	sid := newSession(t, store, domain.User{ID: "u1", FullName: "Ramesh Kumar"})
	api.On("ServiceByID", mock.Anything, validServiceID).
		Return(&domain.Service{ID: validServiceID, Name: "Passport Renewal", IsActive: true}, nil)

	res, err := svc.Start(context.Background(), sid, validServiceID)
	assert.NoError(t, err)
	assert.Equal(t, "Passport Renewal", res.Service.Name)
	assert.Equal(t, "Ramesh Kumar", res.User.FullName)
	for _, m := range res.Methods {
		assert.False(t, m.AdminOnly)
	}
}

func TestCancelRequiresConfirmation(t *testing.T) {
	api := new(mockUpstream)
	store := session.NewMemoryStore(time.Hour)
	svc := NewWorkflowService(api, store, nil, nil)

	sid := newSession(t, store, domain.User{ID: "u1"})
	_, err := svc.Cancel(context.Background(), sid, "b1", false)

	assert.ErrorIs(t, err, ErrConfirmationRequired)
	api.AssertNotCalled(t, "CancelBooking", mock.Anything, mock.Anything)
}

func TestCancelOnlyPending(t *testing.T) {
	api := new(mockUpstream)
	store := session.NewMemoryStore(time.Hour)
	svc := NewWorkflowService(api, store, nil, nil)

	sid := newSession(t, store, domain.User{ID: "u1"})
	api.On("BookingByID", mock.Anything, "b1").
		Return(&domain.Booking{ID: "b1", Status: domain.BookingStatusProcessing}, nil)

	_, err := svc.Cancel(context.Background(), sid, "b1", true)
	assert.ErrorIs(t, err, ErrNotCancellable)
	api.AssertNotCalled(t, "CancelBooking", mock.Anything, mock.Anything)
}

func TestCancelPendingBooking(t *testing.T) {
	api := new(mockUpstream)
	store := session.NewMemoryStore(time.Hour)
	svc := NewWorkflowService(api, store, nil, nil)

	sid := newSession(t, store, domain.User{ID: "u1"})
	api.On("BookingByID", mock.Anything, "b1").
		Return(&domain.Booking{ID: "b1", Status: domain.BookingStatusPending}, nil)
	api.On("CancelBooking", mock.Anything, "b1").
		Return(&domain.Booking{ID: "b1", Status: domain.BookingStatusCancelled}, nil)

	booking, err := svc.Cancel(context.Background(), sid, "b1", true)
	assert.NoError(t, err)
	assert.Equal(t, domain.BookingStatusCancelled, booking.Status)
	api.AssertExpectations(t)
}

func TestUpdatePaymentMapsStatus(t *testing.T) {
	api := new(mockUpstream)
	store := session.NewMemoryStore(time.Hour)
	svc := NewWorkflowService(api, store, nil, nil)

	sid := newSession(t, store, domain.User{ID: "u1"})
	api.On("UpdatePayment", mock.Anything, "b1", upstream.PaymentUpdate{
		PaymentStatus: domain.PaymentStatusPaid,
		PaymentMethod: "cash",
	}).Return(&domain.Booking{ID: "b1", PaymentStatus: domain.PaymentStatusPaid}, nil)

	booking, err := svc.UpdatePayment(context.Background(), sid, PaymentInput{BookingID: "b1", Method: "cash"})
	assert.NoError(t, err)
	assert.Equal(t, domain.PaymentStatusPaid, booking.PaymentStatus)
	api.AssertExpectations(t)
}

func TestUpdatePaymentRequiresTransactionID(t *testing.T) {
	api := new(mockUpstream)
	store := session.NewMemoryStore(time.Hour)
	svc := NewWorkflowService(api, store, nil, nil)

	sid := newSession(t, store, domain.User{ID: "u1"})
	_, err := svc.UpdatePayment(context.Background(), sid, PaymentInput{
		BookingID: "b1", Method: "upi", TransactionID: "  ",
	})

	assert.ErrorIs(t, err, domain.ErrTransactionIDRequired)
	api.AssertNotCalled(t, "UpdatePayment", mock.Anything, mock.Anything, mock.Anything)
}
