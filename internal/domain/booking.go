package domain

import (
	"strings"
	"time"
)

type BookingStatus string

const (
	BookingStatusPending    BookingStatus = "pending"
	BookingStatusProcessing BookingStatus = "processing"
	BookingStatusCompleted  BookingStatus = "completed"
	BookingStatusCancelled  BookingStatus = "cancelled"
)

func (s BookingStatus) Valid() bool {
	switch s {
	case BookingStatusPending, BookingStatusProcessing, BookingStatusCompleted, BookingStatusCancelled:
		return true
	}
	return false
}

type PaymentStatus string

const (
	PaymentStatusPending PaymentStatus = "pending"
	PaymentStatusPaid    PaymentStatus = "paid"
	PaymentStatusFailed  PaymentStatus = "failed"
)

// UserDetails is the snapshot of the customer's profile taken at submission
// time. A booking keeps its own copy, independent of later profile edits.
type UserDetails struct {
	FullName      string  `json:"fullName"`
	Email         string  `json:"email"`
	Phone         string  `json:"phone"`
	Address       Address `json:"address"`
	AadhaarNumber string  `json:"aadhaarNumber,omitempty"`
	PANNumber     string  `json:"panNumber,omitempty"`
}

type TrackingEntry struct {
	Status    BookingStatus `json:"status"`
	Message   string        `json:"message"`
	Timestamp time.Time     `json:"timestamp"`
	UpdatedBy string        `json:"updatedBy,omitempty"`
}

type Booking struct {
	ID             string          `json:"_id"`
	BookingID      string          `json:"bookingId"`
	ServiceID      string          `json:"serviceId"`
	ServiceName    string          `json:"serviceName"`
	UserDetails    UserDetails     `json:"userDetails"`
	Status         BookingStatus   `json:"status"`
	PaymentStatus  PaymentStatus   `json:"paymentStatus"`
	PaymentMethod  string          `json:"paymentMethod"`
	TransactionID  string          `json:"transactionId,omitempty"`
	ServiceFee     float64         `json:"serviceFee"`
	AdditionalInfo string          `json:"additionalInfo,omitempty"`
	Tracking       []TrackingEntry `json:"tracking,omitempty"`
	CreatedAt      time.Time       `json:"createdAt"`
	UpdatedAt      time.Time       `json:"updatedAt"`
}

// CanCancel is the single transition rule enforced on this side of the API:
// cancellation is offered only while a booking is still pending.
func (b Booking) CanCancel() bool {
	return b.Status == BookingStatusPending
}

// CurrentTracking returns the last entry of the append-only tracking log,
// which carries the current status context.
func (b Booking) CurrentTracking() (TrackingEntry, bool) {
	if len(b.Tracking) == 0 {
		return TrackingEntry{}, false
	}
	return b.Tracking[len(b.Tracking)-1], true
}

// MatchesSearch reports whether q is a case-insensitive substring of the
// booking id, service name, customer name or customer email.
func (b Booking) MatchesSearch(q string) bool {
	if q == "" {
		return true
	}
	q = strings.ToLower(q)
	for _, field := range []string{b.BookingID, b.ServiceName, b.UserDetails.FullName, b.UserDetails.Email} {
		if strings.Contains(strings.ToLower(field), q) {
			return true
		}
	}
	return false
}
