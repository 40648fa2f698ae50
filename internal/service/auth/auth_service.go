package auth

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/pointsolution/docbooking/internal/domain"
	"github.com/pointsolution/docbooking/internal/session"
	"github.com/pointsolution/docbooking/internal/upstream"
)

type AuthUseCase interface {
	Register(ctx context.Context, input RegisterInput) (*Result, error)
	Login(ctx context.Context, input LoginInput) (*Result, error)
	Logout(ctx context.Context, sessionID string) error
	Current(ctx context.Context, sessionID string) (*domain.User, error)
	UpdateProfile(ctx context.Context, sessionID string, update upstream.ProfileUpdate) (*domain.User, error)
}

type Upstream interface {
	Login(ctx context.Context, email, password string) (*upstream.AuthResponse, error)
	Register(ctx context.Context, req upstream.RegisterRequest) (*upstream.AuthResponse, error)
	CurrentUser(ctx context.Context) (*domain.User, error)
	UpdateProfile(ctx context.Context, update upstream.ProfileUpdate) (*domain.User, error)
}

type RegisterInput struct {
	FullName        string `json:"fullName"`
	Email           string `json:"email"`
	Phone           string `json:"phone"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirmPassword"`
}

type LoginInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	// ReturnTo is the path the user was redirected away from, restored
	// after a successful non-admin login.
	ReturnTo string `json:"returnTo"`
}

// Result is a freshly established session plus where to send the user next.
type Result struct {
	SessionID string
	User      domain.User
	Landing   string
}

const (
	LandingAdmin     = "/admin"
	LandingDashboard = "/dashboard"
)

// ValidationError is a local rejection, raised before any remote call.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string { return e.Msg }

func IsValidation(err error) bool {
	var v *ValidationError
	return errors.As(err, &v)
}

type AuthService struct {
	api    Upstream
	store  session.Store
	logger *zap.Logger
}

func NewAuthService(api Upstream, store session.Store, logger *zap.Logger) *AuthService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AuthService{api: api, store: store, logger: logger}
}

func validateRegistration(input RegisterInput) error {
	fullName := strings.TrimSpace(input.FullName)
	if fullName == "" {
		return &ValidationError{Msg: "Full name is required"}
	}
	if len(fullName) < 2 {
		return &ValidationError{Msg: "Full name must be at least 2 characters"}
	}
	if input.Password != input.ConfirmPassword {
		return &ValidationError{Msg: "Passwords do not match"}
	}
	if len(input.Password) < 6 {
		return &ValidationError{Msg: "Password must be at least 6 characters"}
	}
	if !strings.Contains(input.Email, "@") || !strings.Contains(input.Email, ".") {
		return &ValidationError{Msg: "Please enter a valid email address"}
	}
	if len(input.Phone) < 10 || !allDigits(input.Phone) {
		return &ValidationError{Msg: "Please enter a valid 10-digit phone number"}
	}
	return nil
}

func allDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

func (s *AuthService) Register(ctx context.Context, input RegisterInput) (*Result, error) {
	if err := validateRegistration(input); err != nil {
		return nil, err
	}

	resp, err := s.api.Register(ctx, upstream.RegisterRequest{
		FullName: strings.TrimSpace(input.FullName),
		Email:    input.Email,
		Phone:    input.Phone,
		Password: input.Password,
	})
	if err != nil {
		return nil, err
	}

	return s.establish(ctx, resp, "")
}

func (s *AuthService) Login(ctx context.Context, input LoginInput) (*Result, error) {
	if input.Email == "" || input.Password == "" {
		return nil, &ValidationError{Msg: "Email and password are required"}
	}

	resp, err := s.api.Login(ctx, input.Email, input.Password)
	if err != nil {
		return nil, err
	}

	return s.establish(ctx, resp, input.ReturnTo)
}

func (s *AuthService) establish(ctx context.Context, resp *upstream.AuthResponse, returnTo string) (*Result, error) {
	id, err := s.store.Create(ctx, session.Record{
		Token:     resp.Token,
		User:      resp.User,
		CreatedAt: time.Now(),
	})
	if err != nil {
		return nil, err
	}

	landing := LandingDashboard
	if resp.User.IsAdmin() {
		landing = LandingAdmin
	} else if returnTo != "" {
		landing = returnTo
	}

	s.logger.Info("session established",
		zap.String("user", resp.User.ID),
		zap.String("role", string(resp.User.Role)))

	return &Result{SessionID: id, User: resp.User, Landing: landing}, nil
}

func (s *AuthService) Logout(ctx context.Context, sessionID string) error {
	return s.store.Delete(ctx, sessionID)
}

// Current re-fetches the user from the API and refreshes the cached snapshot.
// A 401 tears the session down through the client's interceptor before this
// returns, so callers never retry the fetch on a dead session.
func (s *AuthService) Current(ctx context.Context, sessionID string) (*domain.User, error) {
	rec, err := s.store.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	user, err := s.api.CurrentUser(upstream.WithToken(session.WithID(ctx, sessionID), rec.Token))
	if err != nil {
		return nil, err
	}

	rec.User = *user
	if err := s.store.Update(ctx, sessionID, *rec); err != nil {
		s.logger.Warn("failed to refresh user snapshot", zap.Error(err))
	}
	return user, nil
}

func (s *AuthService) UpdateProfile(ctx context.Context, sessionID string, update upstream.ProfileUpdate) (*domain.User, error) {
	rec, err := s.store.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	user, err := s.api.UpdateProfile(upstream.WithToken(session.WithID(ctx, sessionID), rec.Token), update)
	if err != nil {
		return nil, err
	}

	rec.User = *user
	if err := s.store.Update(ctx, sessionID, *rec); err != nil {
		s.logger.Warn("failed to store updated profile", zap.Error(err))
	}
	return user, nil
}

var _ AuthUseCase = (*AuthService)(nil)
