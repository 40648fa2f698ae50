package upstream

import (
	"context"

	"github.com/pointsolution/docbooking/internal/domain"
)

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type RegisterRequest struct {
	FullName string `json:"fullName"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Password string `json:"password"`
}

type AuthResponse struct {
	Token string      `json:"token"`
	User  domain.User `json:"user"`
}

type ProfileUpdate struct {
	FullName      string          `json:"fullName,omitempty"`
	Phone         string          `json:"phone,omitempty"`
	Address       *domain.Address `json:"address,omitempty"`
	AadhaarNumber string          `json:"aadhaarNumber,omitempty"`
	PANNumber     string          `json:"panNumber,omitempty"`
}

func (c *Client) Login(ctx context.Context, email, password string) (*AuthResponse, error) {
	var out AuthResponse
	if err := c.post(ctx, "/auth/login", LoginRequest{Email: email, Password: password}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) Register(ctx context.Context, req RegisterRequest) (*AuthResponse, error) {
	var out AuthResponse
	if err := c.post(ctx, "/auth/register", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) CurrentUser(ctx context.Context) (*domain.User, error) {
	var out struct {
		User domain.User `json:"user"`
	}
	if err := c.get(ctx, "/auth/me", nil, &out); err != nil {
		return nil, err
	}
	return &out.User, nil
}

func (c *Client) UpdateProfile(ctx context.Context, update ProfileUpdate) (*domain.User, error) {
	var out struct {
		User domain.User `json:"user"`
	}
	if err := c.put(ctx, "/auth/update-profile", update, &out); err != nil {
		return nil, err
	}
	return &out.User, nil
}
