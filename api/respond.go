package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pointsolution/docbooking/internal/domain"
	"github.com/pointsolution/docbooking/internal/service/admin"
	"github.com/pointsolution/docbooking/internal/service/auth"
	"github.com/pointsolution/docbooking/internal/service/workflow"
	"github.com/pointsolution/docbooking/internal/session"
	"github.com/pointsolution/docbooking/internal/upstream"
)

const (
	loginPath     = "/login"
	dashboardPath = "/dashboard"
)

// respondError is the single place remote failures and local rejections turn
// into user-facing responses. Nothing is retried; every failure degrades to a
// short message and a navigational escape hatch.
func respondError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, session.ErrNotFound) || upstream.IsUnauthorized(err):
		// The upstream interceptor has already torn the session down;
		// drop the cookie and send the user back to login.
		clearSessionCookie(c)
		c.JSON(http.StatusUnauthorized, gin.H{
			"success":  false,
			"message":  "Session expired, please sign in again",
			"redirect": loginPath,
		})

	case upstream.IsForbidden(err):
		c.JSON(http.StatusForbidden, gin.H{
			"success":  false,
			"message":  "You do not have admin privileges",
			"redirect": dashboardPath,
		})

	case upstream.IsNotFound(err) || errors.Is(err, workflow.ErrServiceNotFound):
		c.JSON(http.StatusNotFound, gin.H{
			"success":  false,
			"message":  upstream.Message(err, "Not found"),
			"notFound": true,
		})

	case upstream.IsUnavailable(err):
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"success": false,
			"message": upstream.Message(err, fallback),
		})

	case isLocalRejection(err):
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})

	default:
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": upstream.Message(err, fallback),
		})
	}
}

// isLocalRejection covers validation failures raised before any remote call.
func isLocalRejection(err error) bool {
	if auth.IsValidation(err) {
		return true
	}
	for _, candidate := range []error{
		workflow.ErrInvalidServiceID,
		workflow.ErrServiceInactive,
		workflow.ErrConfirmationRequired,
		workflow.ErrNotCancellable,
		workflow.ErrAdditionalInfoTooLong,
		admin.ErrConfirmationRequired,
		admin.ErrInvalidStatus,
		admin.ErrInvalidRole,
		admin.ErrAdminUndeletable,
		domain.ErrUnknownPaymentMethod,
		domain.ErrTransactionIDRequired,
	} {
		if errors.Is(err, candidate) {
			return true
		}
	}
	return false
}
