package upstream

import (
	"context"
	"net/url"
	"strconv"

	"github.com/pointsolution/docbooking/internal/domain"
)

// BookingFilters are sent to the server as query parameters. All filtering,
// including the date filter, happens server-side; the gateway trusts the
// returned totals and never re-filters the page.
type BookingFilters struct {
	Search string
	Status string
	Date   string // YYYY-MM-DD, matches a single day
	Page   int
	Limit  int
}

func (f BookingFilters) query() url.Values {
	q := url.Values{}
	page := f.Page
	if page < 1 {
		page = 1
	}
	limit := f.Limit
	if limit <= 0 {
		limit = domain.DefaultPageLimit
	}
	q.Set("page", strconv.Itoa(page))
	q.Set("limit", strconv.Itoa(limit))
	if f.Search != "" {
		q.Set("search", f.Search)
	}
	if f.Status != "" && f.Status != "all" {
		q.Set("status", f.Status)
	}
	if f.Date != "" {
		q.Set("date", f.Date)
	}
	return q
}

type BookingPage struct {
	Bookings   []domain.Booking `json:"bookings"`
	Total      int              `json:"total"`
	TotalPages int              `json:"totalPages"`
}

type UserFilters struct {
	Search string
	Role   string
	Page   int
	Limit  int
}

func (f UserFilters) query() url.Values {
	q := url.Values{}
	page := f.Page
	if page < 1 {
		page = 1
	}
	limit := f.Limit
	if limit <= 0 {
		limit = domain.DefaultPageLimit
	}
	q.Set("page", strconv.Itoa(page))
	q.Set("limit", strconv.Itoa(limit))
	if f.Search != "" {
		q.Set("search", f.Search)
	}
	if f.Role != "" && f.Role != "all" {
		q.Set("role", f.Role)
	}
	return q
}

type UserPage struct {
	Users      []domain.User `json:"users"`
	Total      int           `json:"total"`
	TotalPages int           `json:"totalPages"`
}

type AdminStats struct {
	TotalBookings     int            `json:"totalBookings"`
	TotalUsers        int            `json:"totalUsers"`
	TotalRevenue      float64        `json:"totalRevenue"`
	RevenueChange     float64        `json:"revenueChange"`
	BookingsByStatus  map[string]int `json:"bookingsByStatus"`
	BookingsThisMonth int            `json:"bookingsThisMonth"`
}

type ServiceAnalytics struct {
	PopularServices []struct {
		Name     string  `json:"name"`
		Category string  `json:"category"`
		Count    int     `json:"count"`
		Revenue  float64 `json:"revenue"`
	} `json:"popularServices"`
	BookingsByCategory []struct {
		Category string `json:"category"`
		Count    int    `json:"count"`
	} `json:"bookingsByCategory"`
}

type BookingStatusUpdate struct {
	Status  domain.BookingStatus `json:"status"`
	Message string               `json:"message"`
}

type BookingDetailsUpdate struct {
	ServiceFee     *float64 `json:"serviceFee,omitempty"`
	AdditionalInfo *string  `json:"additionalInfo,omitempty"`
	PaymentMethod  string   `json:"paymentMethod,omitempty"`
}

type UserUpdate struct {
	Role     domain.Role `json:"role,omitempty"`
	IsActive *bool       `json:"isActive,omitempty"`
}

type Notification struct {
	Subject string `json:"subject"`
	Message string `json:"message"`
}

func (c *Client) AdminStats(ctx context.Context) (*AdminStats, error) {
	var out struct {
		Stats AdminStats `json:"stats"`
	}
	if err := c.adminGet(ctx, "/admin/stats", nil, &out); err != nil {
		return nil, err
	}
	return &out.Stats, nil
}

func (c *Client) AdminBookings(ctx context.Context, filters BookingFilters) (*BookingPage, error) {
	var out BookingPage
	if err := c.adminGet(ctx, "/admin/bookings", filters.query(), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) AdminRecentBookings(ctx context.Context) ([]domain.Booking, error) {
	var out struct {
		Bookings []domain.Booking `json:"bookings"`
	}
	if err := c.adminGet(ctx, "/admin/bookings/recent", nil, &out); err != nil {
		return nil, err
	}
	return out.Bookings, nil
}

func (c *Client) AdminBookingByID(ctx context.Context, id string) (*domain.Booking, error) {
	var out struct {
		Booking domain.Booking `json:"booking"`
	}
	if err := c.adminGet(ctx, "/admin/bookings/"+id, nil, &out); err != nil {
		return nil, err
	}
	return &out.Booking, nil
}

func (c *Client) AdminUpdateBookingStatus(ctx context.Context, id string, update BookingStatusUpdate) (*domain.Booking, error) {
	var out struct {
		Booking domain.Booking `json:"booking"`
	}
	if err := c.adminPut(ctx, "/admin/bookings/"+id+"/status", update, &out); err != nil {
		return nil, err
	}
	return &out.Booking, nil
}

func (c *Client) AdminUpdateBookingDetails(ctx context.Context, id string, update BookingDetailsUpdate) (*domain.Booking, error) {
	var out struct {
		Booking domain.Booking `json:"booking"`
	}
	if err := c.adminPut(ctx, "/admin/bookings/"+id, update, &out); err != nil {
		return nil, err
	}
	return &out.Booking, nil
}

func (c *Client) AdminDeleteBooking(ctx context.Context, id string) error {
	return c.adminDelete(ctx, "/admin/bookings/"+id)
}

func (c *Client) AdminNotify(ctx context.Context, bookingID string, n Notification) error {
	return c.adminPost(ctx, "/admin/bookings/"+bookingID+"/notify", n, nil)
}

func (c *Client) AdminUsers(ctx context.Context, filters UserFilters) (*UserPage, error) {
	var out UserPage
	if err := c.adminGet(ctx, "/admin/users", filters.query(), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) AdminUpdateUser(ctx context.Context, id string, update UserUpdate) (*domain.User, error) {
	var out struct {
		User domain.User `json:"user"`
	}
	if err := c.adminPut(ctx, "/admin/users/"+id, update, &out); err != nil {
		return nil, err
	}
	return &out.User, nil
}

func (c *Client) AdminDeleteUser(ctx context.Context, id string) error {
	return c.adminDelete(ctx, "/admin/users/"+id)
}

func (c *Client) AdminServiceAnalytics(ctx context.Context) (*ServiceAnalytics, error) {
	var out struct {
		Analytics ServiceAnalytics `json:"analytics"`
	}
	if err := c.adminGet(ctx, "/admin/analytics/services", nil, &out); err != nil {
		return nil, err
	}
	return &out.Analytics, nil
}
