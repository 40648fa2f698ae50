package workflow

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/pointsolution/docbooking/internal/domain"
	"github.com/pointsolution/docbooking/internal/session"
	"github.com/pointsolution/docbooking/internal/upstream"
)

// WorkflowUseCase turns a service selection plus an authenticated session into
// a submitted booking, and exposes the resulting tracked state.
type WorkflowUseCase interface {
	Start(ctx context.Context, sessionID, serviceID string) (*StartResult, error)
	Submit(ctx context.Context, sessionID string, input SubmitInput) (*domain.Booking, error)
	Cancel(ctx context.Context, sessionID, bookingID string, confirmed bool) (*domain.Booking, error)
	UpdatePayment(ctx context.Context, sessionID string, input PaymentInput) (*domain.Booking, error)
	MyBookings(ctx context.Context, sessionID string) ([]domain.Booking, error)
	Get(ctx context.Context, sessionID, bookingID string) (*domain.Booking, error)
	Stats(ctx context.Context, sessionID string) (*upstream.BookingStats, error)
}

type Upstream interface {
	ServiceByID(ctx context.Context, id string) (*domain.Service, error)
	CreateBooking(ctx context.Context, req upstream.CreateBookingRequest) (*domain.Booking, error)
	MyBookings(ctx context.Context) ([]domain.Booking, error)
	BookingByID(ctx context.Context, id string) (*domain.Booking, error)
	CancelBooking(ctx context.Context, id string) (*domain.Booking, error)
	MyBookingStats(ctx context.Context) (*upstream.BookingStats, error)
	UpdatePayment(ctx context.Context, bookingID string, update upstream.PaymentUpdate) (*domain.Booking, error)
}

type Counter interface {
	Inc()
}

type StartResult struct {
	Service domain.Service         `json:"service"`
	User    domain.User            `json:"user"`
	Methods []domain.PaymentMethod `json:"methods"`
}

type SubmitInput struct {
	ServiceID      string `json:"serviceId"`
	AdditionalInfo string `json:"additionalInfo"`
	PaymentMethod  string `json:"paymentMethod"`
}

type PaymentInput struct {
	BookingID     string `json:"bookingId"`
	Method        string `json:"paymentMethod"`
	TransactionID string `json:"transactionId"`
}

var (
	ErrInvalidServiceID      = errors.New("invalid service id")
	ErrServiceNotFound       = errors.New("service not found")
	ErrServiceInactive       = errors.New("service is not currently offered")
	ErrConfirmationRequired  = errors.New("cancellation requires explicit confirmation")
	ErrNotCancellable        = errors.New("only pending bookings can be cancelled")
	ErrAdditionalInfoTooLong = errors.New("additional information must be at most 500 characters")
)

const maxAdditionalInfo = 500

type WorkflowService struct {
	api       Upstream
	store     session.Store
	submitted Counter
	logger    *zap.Logger
}

func NewWorkflowService(api Upstream, store session.Store, submitted Counter, logger *zap.Logger) *WorkflowService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &WorkflowService{api: api, store: store, submitted: submitted, logger: logger}
}

// authed resolves the session and returns a context carrying the bearer token
// and the session id for the 401 interceptor.
func (s *WorkflowService) authed(ctx context.Context, sessionID string) (*session.Record, context.Context, error) {
	rec, err := s.store.Get(ctx, sessionID)
	if err != nil {
		return nil, nil, err
	}
	return rec, upstream.WithToken(session.WithID(ctx, sessionID), rec.Token), nil
}

// Start resolves the selected service for an authenticated user. Unknown or
// deactivated services surface as not-found before a booking form is shown.
func (s *WorkflowService) Start(ctx context.Context, sessionID, serviceID string) (*StartResult, error) {
	rec, ctx, err := s.authed(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	svc, err := s.api.ServiceByID(ctx, serviceID)
	if err != nil {
		if upstream.IsNotFound(err) {
			return nil, ErrServiceNotFound
		}
		return nil, err
	}
	if !svc.IsActive {
		return nil, ErrServiceInactive
	}

	return &StartResult{
		Service: *svc,
		User:    rec.User,
		Methods: domain.CustomerPaymentMethods(),
	}, nil
}

// Submit validates the service id locally, snapshots the user's current
// profile into the payload and issues the single remote creation call.
func (s *WorkflowService) Submit(ctx context.Context, sessionID string, input SubmitInput) (*domain.Booking, error) {
	if !domain.IsServiceID(input.ServiceID) {
		return nil, ErrInvalidServiceID
	}
	if len(input.AdditionalInfo) > maxAdditionalInfo {
		return nil, ErrAdditionalInfoTooLong
	}

	rec, ctx, err := s.authed(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	method := input.PaymentMethod
	if method == "" {
		method = domain.PaymentMethodNotPaid
	}

	user := rec.User
	booking, err := s.api.CreateBooking(ctx, upstream.CreateBookingRequest{
		ServiceID: input.ServiceID,
		UserDetails: domain.UserDetails{
			FullName:      user.FullName,
			Email:         user.Email,
			Phone:         user.Phone,
			Address:       user.Address,
			AadhaarNumber: user.AadhaarNumber,
			PANNumber:     user.PANNumber,
		},
		AdditionalInfo: input.AdditionalInfo,
		PaymentMethod:  method,
	})
	if err != nil {
		return nil, err
	}

	if s.submitted != nil {
		s.submitted.Inc()
	}
	s.logger.Info("booking submitted",
		zap.String("bookingId", booking.BookingID),
		zap.String("serviceId", input.ServiceID))
	return booking, nil
}

// Cancel is permitted only while the booking is pending and only with the
// user's explicit confirmation. The status check happens before the remote
// call; the server remains the final authority.
func (s *WorkflowService) Cancel(ctx context.Context, sessionID, bookingID string, confirmed bool) (*domain.Booking, error) {
	if !confirmed {
		return nil, ErrConfirmationRequired
	}

	_, ctx, err := s.authed(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	current, err := s.api.BookingByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if !current.CanCancel() {
		return nil, ErrNotCancellable
	}

	return s.api.CancelBooking(ctx, bookingID)
}

// UpdatePayment maps the selected method onto a payment status and gates
// transaction-id-bearing methods locally before the remote call.
func (s *WorkflowService) UpdatePayment(ctx context.Context, sessionID string, input PaymentInput) (*domain.Booking, error) {
	if err := domain.ValidatePaymentUpdate(input.Method, input.TransactionID); err != nil {
		return nil, err
	}

	_, ctx, err := s.authed(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	return s.api.UpdatePayment(ctx, input.BookingID, upstream.PaymentUpdate{
		PaymentStatus: domain.PaymentStatusFor(input.Method),
		PaymentMethod: input.Method,
		TransactionID: input.TransactionID,
	})
}

func (s *WorkflowService) MyBookings(ctx context.Context, sessionID string) ([]domain.Booking, error) {
	_, ctx, err := s.authed(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	return s.api.MyBookings(ctx)
}

func (s *WorkflowService) Get(ctx context.Context, sessionID, bookingID string) (*domain.Booking, error) {
	_, ctx, err := s.authed(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	return s.api.BookingByID(ctx, bookingID)
}

func (s *WorkflowService) Stats(ctx context.Context, sessionID string) (*upstream.BookingStats, error) {
	_, ctx, err := s.authed(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	return s.api.MyBookingStats(ctx)
}

var _ WorkflowUseCase = (*WorkflowService)(nil)
