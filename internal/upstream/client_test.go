package upstream

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func newTestClient(t *testing.T, handler http.HandlerFunc, opts ...Option) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(srv.URL, 5*time.Second, 5*time.Second, nil, opts...)
}

func TestClientLogin(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/auth/login", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		w.Write([]byte(`{"success":true,"token":"jwt-token","user":{"_id":"u1","email":"ramesh@example.com","role":"user"}}`))
	})

	resp, err := c.Login(context.Background(), "ramesh@example.com", "secret1")
	assert.NoError(t, err)
	assert.Equal(t, "jwt-token", resp.Token)
	assert.Equal(t, "u1", resp.User.ID)
}

func TestClientBearerToken(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer jwt-token", r.Header.Get("Authorization"))
		w.Write([]byte(`{"success":true,"user":{"_id":"u1"}}`))
	})

	ctx := WithToken(context.Background(), "jwt-token")
	user, err := c.CurrentUser(ctx)
	assert.NoError(t, err)
	assert.Equal(t, "u1", user.ID)
}

func TestClientRejectedRequest(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"success":false,"message":"Email already registered"}`))
	})

	_, err := c.Register(context.Background(), RegisterRequest{Email: "ramesh@example.com"})
	assert.Error(t, err)
	assert.Equal(t, "Email already registered", Message(err, "Registration failed"))
	assert.False(t, IsUnavailable(err))
}

func TestClientFailureEnvelopeWithOKStatus(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"success":false,"message":"Booking not found"}`))
	})

	_, err := c.BookingByID(context.Background(), "b1")
	assert.Error(t, err)
	assert.Equal(t, "Booking not found", Message(err, "fallback"))
}

func TestClientUnauthorizedFiresHookOnce(t *testing.T) {
	calls := 0
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"success":false,"message":"Token expired"}`))
	}, WithUnauthorizedHook(func(ctx context.Context) {
		calls++
	}))

	_, err := c.CurrentUser(context.Background())
	assert.True(t, IsUnauthorized(err))
	assert.Equal(t, 1, calls)
}

func TestClientUnavailable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	srv.Close()

	outcomes := []string{}
	c := NewClient(srv.URL, time.Second, time.Second, nil, WithResultHook(func(outcome string) {
		outcomes = append(outcomes, outcome)
	}))

	err := c.Health(context.Background())
	assert.True(t, IsUnavailable(err))
	assert.Equal(t, []string{"network"}, outcomes)
	assert.Equal(t, "unable to connect to server, please check your connection", Message(err, "fallback"))
}

func TestClientForbidden(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		w.Write([]byte(`{"success":false,"message":"Admin access required"}`))
	})

	_, err := c.AdminStats(context.Background())
	assert.True(t, IsForbidden(err))
	assert.False(t, IsUnauthorized(err))
}

func TestBookingFiltersQuery(t *testing.T) {
	q := BookingFilters{Search: "passport", Status: "pending", Date: "2026-01-15", Page: 2, Limit: 20}.query()
	assert.Equal(t, "2", q.Get("page"))
	assert.Equal(t, "20", q.Get("limit"))
	assert.Equal(t, "passport", q.Get("search"))
	assert.Equal(t, "pending", q.Get("status"))
	assert.Equal(t, "2026-01-15", q.Get("date"))

	q = BookingFilters{Status: "all"}.query()
	assert.Equal(t, "1", q.Get("page"))
	assert.Equal(t, "20", q.Get("limit"))
	assert.False(t, q.Has("status"))
	assert.False(t, q.Has("search"))
	assert.False(t, q.Has("date"))
}

func TestAdminBookingsSendsFilters(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/admin/bookings", r.URL.Path)
		assert.Equal(t, "3", r.URL.Query().Get("page"))
		assert.Equal(t, "kumar", r.URL.Query().Get("search"))
		w.Write([]byte(`{"success":true,"bookings":[{"bookingId":"BK1"}],"total":47,"totalPages":3}`))
	})

	page, err := c.AdminBookings(context.Background(), BookingFilters{Search: "kumar", Page: 3})
	assert.NoError(t, err)
	assert.Equal(t, 47, page.Total)
	assert.Equal(t, 3, page.TotalPages)
	assert.Len(t, page.Bookings, 1)
	assert.Equal(t, "BK1", page.Bookings[0].BookingID)
}
