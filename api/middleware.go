package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/pointsolution/docbooking/internal/metrics"
	"github.com/pointsolution/docbooking/internal/session"
)

const (
	ctxSessionID = "sessionID"
	ctxSession   = "session"
)

var sessionCookieName = "docbooking_session"

// SetSessionCookieName overrides the cookie the gateway stores session ids
// under. Called once during bootstrap.
func SetSessionCookieName(name string) {
	if name != "" {
		sessionCookieName = name
	}
}

func setSessionCookie(c *gin.Context, id string, ttl time.Duration) {
	c.SetCookie(sessionCookieName, id, int(ttl.Seconds()), "/", "", false, true)
}

func clearSessionCookie(c *gin.Context) {
	c.SetCookie(sessionCookieName, "", -1, "/", "", false, true)
}

// Sessions resolves the session cookie, if any, and stashes the record on the
// request. A missing or expired session is not an error here; RequireAuth is.
func Sessions(store session.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := c.Cookie(sessionCookieName)
		if err != nil || id == "" {
			c.Next()
			return
		}

		rec, err := store.Get(c.Request.Context(), id)
		if err != nil {
			clearSessionCookie(c)
			c.Next()
			return
		}

		c.Set(ctxSessionID, id)
		c.Set(ctxSession, rec)
		c.Next()
	}
}

// RequireAuth redirects anonymous callers to the login view, preserving the
// path they came from.
func RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := c.Get(ctxSession); !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"success":  false,
				"message":  "Please sign in to continue",
				"redirect": loginPath,
				"from":     c.Request.URL.Path,
			})
			return
		}
		c.Next()
	}
}

// RequireAdmin sends non-admin users back to their own dashboard.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		rec, ok := currentSession(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"success":  false,
				"message":  "Please sign in to continue",
				"redirect": loginPath,
				"from":     c.Request.URL.Path,
			})
			return
		}
		if !rec.User.IsAdmin() {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"success":  false,
				"message":  "You do not have admin privileges",
				"redirect": dashboardPath,
			})
			return
		}
		c.Next()
	}
}

func currentSession(c *gin.Context) (*session.Record, bool) {
	v, ok := c.Get(ctxSession)
	if !ok {
		return nil, false
	}
	rec, ok := v.(*session.Record)
	return rec, ok
}

func currentSessionID(c *gin.Context) string {
	id, _ := c.Get(ctxSessionID)
	s, _ := id.(string)
	return s
}

// Observe records per-route request counts and latency.
func Observe(m *metrics.Metrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		m.RequestsTotal.WithLabelValues(route, strconv.Itoa(c.Writer.Status())).Inc()
		m.RequestDuration.WithLabelValues(route).Observe(time.Since(start).Seconds())
	}
}
