package admin

import (
	"context"
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

func (m *mockUpstream) AdminStats(ctx context.Context) (*upstream.AdminStats, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*upstream.AdminStats), args.Error(1)
}

func (m *mockUpstream) AdminBookings(ctx context.Context, filters upstream.BookingFilters) (*upstream.BookingPage, error) {
	args := m.Called(ctx, filters)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*upstream.BookingPage), args.Error(1)
}

func (m *mockUpstream) AdminRecentBookings(ctx context.Context) ([]domain.Booking, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Booking), args.Error(1)
}

func (m *mockUpstream) AdminBookingByID(ctx context.Context, id string) (*domain.Booking, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}

func (m *mockUpstream) AdminUpdateBookingStatus(ctx context.Context, id string, update upstream.BookingStatusUpdate) (*domain.Booking, error) {
	args := m.Called(ctx, id, update)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}

func (m *mockUpstream) AdminUpdateBookingDetails(ctx context.Context, id string, update upstream.BookingDetailsUpdate) (*domain.Booking, error) {
	args := m.Called(ctx, id, update)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}

func (m *mockUpstream) AdminDeleteBooking(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockUpstream) AdminNotify(ctx context.Context, bookingID string, n upstream.Notification) error {
	return m.Called(ctx, bookingID, n).Error(0)
}

func (m *mockUpstream) AdminUsers(ctx context.Context, filters upstream.UserFilters) (*upstream.UserPage, error) {
	args := m.Called(ctx, filters)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*upstream.UserPage), args.Error(1)
}

func (m *mockUpstream) AdminUpdateUser(ctx context.Context, id string, update upstream.UserUpdate) (*domain.User, error) {
	args := m.Called(ctx, id, update)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *mockUpstream) AdminDeleteUser(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockUpstream) AdminServiceAnalytics(ctx context.Context) (*upstream.ServiceAnalytics, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*upstream.ServiceAnalytics), args.Error(1)
}

func adminSession(t *testing.T, store session.Store) string {
	t.Helper()
	id, err := store.Create(context.Background(), session.Record{
		Token: "jwt-token",
		User:  domain.User{ID: "a1", Role: domain.RoleAdmin},
	})
	assert.NoError(t, err)
	return id
}

func TestListBookingsTrustsServerTotals(t *testing.T) {
	api := new(mockUpstream)
	store := session.NewMemoryStore(time.Hour)
	svc := NewAdminService(api, store, nil)
	sid := adminSession(t, store)

	filters := upstream.BookingFilters{Search: "kumar", Status: "pending", Date: "2026-01-15", Page: 3, Limit: 20}
	api.On("AdminBookings", mock.Anything, filters).Return(&upstream.BookingPage{
		Bookings:   []domain.Booking{{BookingID: "BK41"}},
		Total:      47,
		TotalPages: 3,
	}, nil)

	list, err := svc.ListBookings(context.Background(), sid, filters)
	assert.NoError(t, err)
	assert.Len(t, list.Bookings, 1)
	assert.Equal(t, 3, list.Page.Page)
	assert.Equal(t, 3, list.Page.TotalPages)
	assert.Equal(t, "Showing 41 to 47 of 47", list.Page.Showing())
	api.AssertExpectations(t)
}

func TestUpdateBookingStatusGates(t *testing.T) {
	api := new(mockUpstream)
	store := session.NewMemoryStore(time.Hour)
	svc := NewAdminService(api, store, nil)
	sid := adminSession(t, store)

	_, err := svc.UpdateBookingStatus(context.Background(), sid, "b1", "shipped", "", true)
	assert.ErrorIs(t, err, ErrInvalidStatus)

	_, err = svc.UpdateBookingStatus(context.Background(), sid, "b1", domain.BookingStatusCompleted, "", false)
	assert.ErrorIs(t, err, ErrConfirmationRequired)

	api.AssertNotCalled(t, "AdminUpdateBookingStatus", mock.Anything, mock.Anything, mock.Anything)
}

func TestUpdateBookingStatusDefaultMessage(t *testing.T) {
	api := new(mockUpstream)
	store := session.NewMemoryStore(time.Hour)
	svc := NewAdminService(api, store, nil)
	sid := adminSession(t, store)

	api.On("AdminUpdateBookingStatus", mock.Anything, "b1", upstream.BookingStatusUpdate{
		Status:  domain.BookingStatusProcessing,
		Message: "Status changed to processing",
	}).Return(&domain.Booking{ID: "b1", Status: domain.BookingStatusProcessing}, nil)

	booking, err := svc.UpdateBookingStatus(context.Background(), sid, "b1", domain.BookingStatusProcessing, "", true)
	assert.NoError(t, err)
	assert.Equal(t, domain.BookingStatusProcessing, booking.Status)
	api.AssertExpectations(t)
}

func TestUpdateBookingDetailsRejectsUnknownMethod(t *testing.T) {
	api := new(mockUpstream)
	store := session.NewMemoryStore(time.Hour)
	svc := NewAdminService(api, store, nil)
	sid := adminSession(t, store)

	_, err := svc.UpdateBookingDetails(context.Background(), sid, "b1", upstream.BookingDetailsUpdate{PaymentMethod: "card"})
	assert.ErrorIs(t, err, domain.ErrUnknownPaymentMethod)
	api.AssertNotCalled(t, "AdminUpdateBookingDetails", mock.Anything, mock.Anything, mock.Anything)
}

func TestDeleteBookingRequiresConfirmation(t *testing.T) {
	api := new(mockUpstream)
	store := session.NewMemoryStore(time.Hour)
	svc := NewAdminService(api, store, nil)
	sid := adminSession(t, store)

	err := svc.DeleteBooking(context.Background(), sid, "b1", false)
	assert.ErrorIs(t, err, ErrConfirmationRequired)
	api.AssertNotCalled(t, "AdminDeleteBooking", mock.Anything, mock.Anything)
}

func TestDeleteUserRefusesAdmins(t *testing.T) {
	api := new(mockUpstream)
	store := session.NewMemoryStore(time.Hour)
	svc := NewAdminService(api, store, nil)
	sid := adminSession(t, store)

	err := svc.DeleteUser(context.Background(), sid, domain.User{ID: "a2", Role: domain.RoleAdmin}, true)
	assert.ErrorIs(t, err, ErrAdminUndeletable)
	api.AssertNotCalled(t, "AdminDeleteUser", mock.Anything, mock.Anything)
}

func TestDeleteUser(t *testing.T) {
	api := new(mockUpstream)
	store := session.NewMemoryStore(time.Hour)
	svc := NewAdminService(api, store, nil)
	sid := adminSession(t, store)

	api.On("AdminDeleteUser", mock.Anything, "u2").Return(nil)

	err := svc.DeleteUser(context.Background(), sid, domain.User{ID: "u2", Role: domain.RoleUser}, true)
	assert.NoError(t, err)
	api.AssertExpectations(t)
}

func TestUpdateUserRoleValidation(t *testing.T) {
	api := new(mockUpstream)
	store := session.NewMemoryStore(time.Hour)
	svc := NewAdminService(api, store, nil)
	sid := adminSession(t, store)

	_, err := svc.UpdateUserRole(context.Background(), sid, "u2", "superuser", true)
	assert.ErrorIs(t, err, ErrInvalidRole)

	_, err = svc.UpdateUserRole(context.Background(), sid, "u2", domain.RoleAdmin, false)
	assert.ErrorIs(t, err, ErrConfirmationRequired)

	api.AssertNotCalled(t, "AdminUpdateUser", mock.Anything, mock.Anything, mock.Anything)
}

func TestListUsersPageMath(t *testing.T) {
	api := new(mockUpstream)
	store := session.NewMemoryStore(time.Hour)
	svc := NewAdminService(api, store, nil)
	sid := adminSession(t, store)

	filters := upstream.UserFilters{Page: 1}
	api.On("AdminUsers", mock.Anything, filters).Return(&upstream.UserPage{
		Users: []domain.User{{ID: "u1"}, {ID: "u2"}},
		Total: 2,
	}, nil)

	list, err := svc.ListUsers(context.Background(), sid, filters)
	assert.NoError(t, err)
	assert.Len(t, list.Users, 2)
	assert.Equal(t, 1, list.Page.TotalPages)
	assert.Equal(t, domain.DefaultPageLimit, list.Page.Limit)
}

func TestWithoutSession(t *testing.T) {
	api := new(mockUpstream)
	svc := NewAdminService(api, session.NewMemoryStore(time.Hour), nil)

	_, err := svc.Stats(context.Background(), "missing")
	assert.ErrorIs(t, err, session.ErrNotFound)
	api.AssertNotCalled(t, "AdminStats", mock.Anything)
}
