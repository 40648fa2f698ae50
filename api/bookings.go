package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pointsolution/docbooking/internal/domain"
	"github.com/pointsolution/docbooking/internal/service/workflow"
)

type BookingHandler struct {
	service workflow.WorkflowUseCase
}

type cancelRequest struct {
	Confirm bool `json:"confirm"`
}

func NewBookingHandler(service workflow.WorkflowUseCase) *BookingHandler {
	return &BookingHandler{service: service}
}

func (h *BookingHandler) Register(router *gin.RouterGroup) {
	authed := router.Group("", RequireAuth())
	authed.GET("/bookings/start/:serviceId", h.start)
	authed.POST("/bookings", h.submit)
	authed.GET("/bookings/my-bookings", h.mine)
	authed.GET("/bookings/stats", h.stats)
	authed.GET("/bookings/track/:id", h.track)
	authed.PUT("/bookings/cancel/:id", h.cancel)
	authed.GET("/payments/methods", h.methods)
	authed.PUT("/payments/:bookingId", h.updatePayment)
}

// start opens the booking form for a service: the resolved catalog entry, the
// customer's profile for review and the selectable payment methods.
func (h *BookingHandler) start(c *gin.Context) {
	result, err := h.service.Start(c.Request.Context(), currentSessionID(c), c.Param("serviceId"))
	if err != nil {
		respondError(c, err, "Failed to load service details")
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"service": result.Service,
		"user":    result.User,
		"methods": result.Methods,
	})
}

func (h *BookingHandler) submit(c *gin.Context) {
	var input workflow.SubmitInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid request body"})
		return
	}

	booking, err := h.service.Submit(c.Request.Context(), currentSessionID(c), input)
	if err != nil {
		respondError(c, err, "Failed to create booking. Please try again.")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success":  true,
		"booking":  booking,
		"redirect": "/booking-success/" + booking.BookingID,
	})
}

func (h *BookingHandler) mine(c *gin.Context) {
	bookings, err := h.service.MyBookings(c.Request.Context(), currentSessionID(c))
	if err != nil {
		respondError(c, err, "Failed to load bookings")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "bookings": bookings})
}

func (h *BookingHandler) stats(c *gin.Context) {
	stats, err := h.service.Stats(c.Request.Context(), currentSessionID(c))
	if err != nil {
		respondError(c, err, "Failed to load booking stats")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "stats": stats})
}

func (h *BookingHandler) track(c *gin.Context) {
	booking, err := h.service.Get(c.Request.Context(), currentSessionID(c), c.Param("id"))
	if err != nil {
		respondError(c, err, "Failed to load booking details")
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success":   true,
		"booking":   booking,
		"canCancel": booking.CanCancel(),
	})
}

func (h *BookingHandler) cancel(c *gin.Context) {
	var req cancelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid request body"})
		return
	}

	booking, err := h.service.Cancel(c.Request.Context(), currentSessionID(c), c.Param("id"), req.Confirm)
	if err != nil {
		respondError(c, err, "Failed to cancel booking")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "booking": booking})
}

func (h *BookingHandler) methods(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"success": true, "methods": domain.CustomerPaymentMethods()})
}

func (h *BookingHandler) updatePayment(c *gin.Context) {
	var input workflow.PaymentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid request body"})
		return
	}
	input.BookingID = c.Param("bookingId")

	booking, err := h.service.UpdatePayment(c.Request.Context(), currentSessionID(c), input)
	if err != nil {
		respondError(c, err, "Failed to update payment status")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "booking": booking})
}
