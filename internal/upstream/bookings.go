package upstream

import (
	"context"

	"github.com/pointsolution/docbooking/internal/domain"
)

type CreateBookingRequest struct {
	ServiceID      string             `json:"serviceId"`
	UserDetails    domain.UserDetails `json:"userDetails"`
	AdditionalInfo string             `json:"additionalInfo,omitempty"`
	PaymentMethod  string             `json:"paymentMethod"`
}

type BookingStats struct {
	TotalBookings      int `json:"totalBookings"`
	PendingBookings    int `json:"pendingBookings"`
	ProcessingBookings int `json:"processingBookings"`
	CompletedBookings  int `json:"completedBookings"`
}

func (c *Client) CreateBooking(ctx context.Context, req CreateBookingRequest) (*domain.Booking, error) {
	var out struct {
		Booking domain.Booking `json:"booking"`
	}
	if err := c.post(ctx, "/bookings", req, &out); err != nil {
		return nil, err
	}
	return &out.Booking, nil
}

func (c *Client) MyBookings(ctx context.Context) ([]domain.Booking, error) {
	var out struct {
		Bookings []domain.Booking `json:"bookings"`
	}
	if err := c.get(ctx, "/bookings/my-bookings", nil, &out); err != nil {
		return nil, err
	}
	return out.Bookings, nil
}

func (c *Client) BookingByID(ctx context.Context, id string) (*domain.Booking, error) {
	var out struct {
		Booking domain.Booking `json:"booking"`
	}
	if err := c.get(ctx, "/bookings/"+id, nil, &out); err != nil {
		return nil, err
	}
	return &out.Booking, nil
}

func (c *Client) CancelBooking(ctx context.Context, id string) (*domain.Booking, error) {
	var out struct {
		Booking domain.Booking `json:"booking"`
	}
	if err := c.put(ctx, "/bookings/"+id+"/cancel", nil, &out); err != nil {
		return nil, err
	}
	return &out.Booking, nil
}

func (c *Client) MyBookingStats(ctx context.Context) (*BookingStats, error) {
	var out struct {
		Stats BookingStats `json:"stats"`
	}
	if err := c.get(ctx, "/bookings/stats", nil, &out); err != nil {
		return nil, err
	}
	return &out.Stats, nil
}
