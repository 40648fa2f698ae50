package admin

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/pointsolution/docbooking/internal/domain"
	"github.com/pointsolution/docbooking/internal/session"
	"github.com/pointsolution/docbooking/internal/upstream"
)

// AdminUseCase is the back-office surface: paginated booking and user lists,
// status and detail mutations, notifications and analytics. Every mutation is
// a single upstream call; local state is only patched from confirmed results.
type AdminUseCase interface {
	ListBookings(ctx context.Context, sessionID string, filters upstream.BookingFilters) (*BookingList, error)
	RecentBookings(ctx context.Context, sessionID string) ([]domain.Booking, error)
	GetBooking(ctx context.Context, sessionID, id string) (*domain.Booking, error)
	UpdateBookingStatus(ctx context.Context, sessionID, id string, status domain.BookingStatus, message string, confirmed bool) (*domain.Booking, error)
	UpdateBookingDetails(ctx context.Context, sessionID, id string, update upstream.BookingDetailsUpdate) (*domain.Booking, error)
	DeleteBooking(ctx context.Context, sessionID, id string, confirmed bool) error
	Notify(ctx context.Context, sessionID, bookingID string, n upstream.Notification) error
	Stats(ctx context.Context, sessionID string) (*upstream.AdminStats, error)
	ServiceAnalytics(ctx context.Context, sessionID string) (*upstream.ServiceAnalytics, error)
	ExportBookings(ctx context.Context, sessionID string, filters upstream.BookingFilters) ([]byte, string, error)
	ListUsers(ctx context.Context, sessionID string, filters upstream.UserFilters) (*UserList, error)
	UpdateUserRole(ctx context.Context, sessionID, userID string, role domain.Role, confirmed bool) (*domain.User, error)
	SetUserActive(ctx context.Context, sessionID, userID string, isActive, confirmed bool) (*domain.User, error)
	DeleteUser(ctx context.Context, sessionID string, target domain.User, confirmed bool) error
}

type Upstream interface {
	AdminStats(ctx context.Context) (*upstream.AdminStats, error)
	AdminBookings(ctx context.Context, filters upstream.BookingFilters) (*upstream.BookingPage, error)
	AdminRecentBookings(ctx context.Context) ([]domain.Booking, error)
	AdminBookingByID(ctx context.Context, id string) (*domain.Booking, error)
	AdminUpdateBookingStatus(ctx context.Context, id string, update upstream.BookingStatusUpdate) (*domain.Booking, error)
	AdminUpdateBookingDetails(ctx context.Context, id string, update upstream.BookingDetailsUpdate) (*domain.Booking, error)
	AdminDeleteBooking(ctx context.Context, id string) error
	AdminNotify(ctx context.Context, bookingID string, n upstream.Notification) error
	AdminUsers(ctx context.Context, filters upstream.UserFilters) (*upstream.UserPage, error)
	AdminUpdateUser(ctx context.Context, id string, update upstream.UserUpdate) (*domain.User, error)
	AdminDeleteUser(ctx context.Context, id string) error
	AdminServiceAnalytics(ctx context.Context) (*upstream.ServiceAnalytics, error)
}

type BookingList struct {
	Bookings []domain.Booking `json:"bookings"`
	Page     domain.Page      `json:"page"`
}

type UserList struct {
	Users []domain.User `json:"users"`
	Page  domain.Page   `json:"page"`
}

var (
	ErrConfirmationRequired = errors.New("this action requires explicit confirmation")
	ErrInvalidStatus        = errors.New("invalid booking status")
	ErrInvalidRole          = errors.New("invalid role")
	ErrAdminUndeletable     = errors.New("admin accounts cannot be deleted")
)

type AdminService struct {
	api    Upstream
	store  session.Store
	logger *zap.Logger
}

func NewAdminService(api Upstream, store session.Store, logger *zap.Logger) *AdminService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AdminService{api: api, store: store, logger: logger}
}

func (s *AdminService) authed(ctx context.Context, sessionID string) (context.Context, error) {
	rec, err := s.store.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	return upstream.WithToken(session.WithID(ctx, sessionID), rec.Token), nil
}

// ListBookings sends every filter upstream and trusts the returned totals.
func (s *AdminService) ListBookings(ctx context.Context, sessionID string, filters upstream.BookingFilters) (*BookingList, error) {
	ctx, err := s.authed(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	page, err := s.api.AdminBookings(ctx, filters)
	if err != nil {
		return nil, err
	}

	limit := filters.Limit
	if limit <= 0 {
		limit = domain.DefaultPageLimit
	}
	return &BookingList{
		Bookings: page.Bookings,
		Page:     domain.PageOf(page.Total, filters.Page, limit),
	}, nil
}

func (s *AdminService) RecentBookings(ctx context.Context, sessionID string) ([]domain.Booking, error) {
	ctx, err := s.authed(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	return s.api.AdminRecentBookings(ctx)
}

func (s *AdminService) GetBooking(ctx context.Context, sessionID, id string) (*domain.Booking, error) {
	ctx, err := s.authed(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	return s.api.AdminBookingByID(ctx, id)
}

// UpdateBookingStatus allows any of the four statuses from any status; the
// server owns transition legality. A tracking message is always appended.
func (s *AdminService) UpdateBookingStatus(ctx context.Context, sessionID, id string, status domain.BookingStatus, message string, confirmed bool) (*domain.Booking, error) {
	if !status.Valid() {
		return nil, ErrInvalidStatus
	}
	if !confirmed {
		return nil, ErrConfirmationRequired
	}

	ctx, err := s.authed(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	if message == "" {
		message = "Status changed to " + string(status)
	}
	booking, err := s.api.AdminUpdateBookingStatus(ctx, id, upstream.BookingStatusUpdate{Status: status, Message: message})
	if err != nil {
		return nil, err
	}
	s.logger.Info("booking status updated", zap.String("bookingId", id), zap.String("status", string(status)))
	return booking, nil
}

func (s *AdminService) UpdateBookingDetails(ctx context.Context, sessionID, id string, update upstream.BookingDetailsUpdate) (*domain.Booking, error) {
	if update.PaymentMethod != "" {
		if _, ok := domain.PaymentMethodByID(update.PaymentMethod); !ok {
			return nil, domain.ErrUnknownPaymentMethod
		}
	}

	ctx, err := s.authed(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	return s.api.AdminUpdateBookingDetails(ctx, id, update)
}

func (s *AdminService) DeleteBooking(ctx context.Context, sessionID, id string, confirmed bool) error {
	if !confirmed {
		return ErrConfirmationRequired
	}

	ctx, err := s.authed(ctx, sessionID)
	if err != nil {
		return err
	}
	return s.api.AdminDeleteBooking(ctx, id)
}

func (s *AdminService) Notify(ctx context.Context, sessionID, bookingID string, n upstream.Notification) error {
	ctx, err := s.authed(ctx, sessionID)
	if err != nil {
		return err
	}
	return s.api.AdminNotify(ctx, bookingID, n)
}

func (s *AdminService) Stats(ctx context.Context, sessionID string) (*upstream.AdminStats, error) {
	ctx, err := s.authed(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	return s.api.AdminStats(ctx)
}

func (s *AdminService) ServiceAnalytics(ctx context.Context, sessionID string) (*upstream.ServiceAnalytics, error) {
	ctx, err := s.authed(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	return s.api.AdminServiceAnalytics(ctx)
}

func (s *AdminService) ListUsers(ctx context.Context, sessionID string, filters upstream.UserFilters) (*UserList, error) {
	ctx, err := s.authed(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	page, err := s.api.AdminUsers(ctx, filters)
	if err != nil {
		return nil, err
	}

	limit := filters.Limit
	if limit <= 0 {
		limit = domain.DefaultPageLimit
	}
	return &UserList{
		Users: page.Users,
		Page:  domain.PageOf(page.Total, filters.Page, limit),
	}, nil
}

func (s *AdminService) UpdateUserRole(ctx context.Context, sessionID, userID string, role domain.Role, confirmed bool) (*domain.User, error) {
	if role != domain.RoleUser && role != domain.RoleAdmin {
		return nil, ErrInvalidRole
	}
	if !confirmed {
		return nil, ErrConfirmationRequired
	}

	ctx, err := s.authed(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	return s.api.AdminUpdateUser(ctx, userID, upstream.UserUpdate{Role: role})
}

func (s *AdminService) SetUserActive(ctx context.Context, sessionID, userID string, isActive, confirmed bool) (*domain.User, error) {
	if !confirmed {
		return nil, ErrConfirmationRequired
	}

	ctx, err := s.authed(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	return s.api.AdminUpdateUser(ctx, userID, upstream.UserUpdate{IsActive: &isActive})
}

// DeleteUser refuses admin accounts before the remote call; the action is
// disabled in the interface for them as well.
func (s *AdminService) DeleteUser(ctx context.Context, sessionID string, target domain.User, confirmed bool) error {
	if target.IsAdmin() {
		return ErrAdminUndeletable
	}
	if !confirmed {
		return ErrConfirmationRequired
	}

	ctx, err := s.authed(ctx, sessionID)
	if err != nil {
		return err
	}
	return s.api.AdminDeleteUser(ctx, target.ID)
}

var _ AdminUseCase = (*AdminService)(nil)
