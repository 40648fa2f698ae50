package upstream

import (
	"context"

	"github.com/pointsolution/docbooking/internal/domain"
)

type PaymentUpdate struct {
	PaymentStatus domain.PaymentStatus `json:"paymentStatus"`
	PaymentMethod string               `json:"paymentMethod"`
	TransactionID string               `json:"transactionId,omitempty"`
}

func (c *Client) PaymentMethods(ctx context.Context) ([]domain.PaymentMethod, error) {
	var out struct {
		Methods []domain.PaymentMethod `json:"methods"`
	}
	if err := c.get(ctx, "/payments/methods", nil, &out); err != nil {
		return nil, err
	}
	return out.Methods, nil
}

func (c *Client) UpdatePayment(ctx context.Context, bookingID string, update PaymentUpdate) (*domain.Booking, error) {
	var out struct {
		Booking domain.Booking `json:"booking"`
	}
	if err := c.put(ctx, "/payments/"+bookingID, update, &out); err != nil {
		return nil, err
	}
	return &out.Booking, nil
}
