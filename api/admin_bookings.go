package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/pointsolution/docbooking/internal/domain"
	"github.com/pointsolution/docbooking/internal/service/admin"
	"github.com/pointsolution/docbooking/internal/upstream"
)

type AdminBookingHandler struct {
	service admin.AdminUseCase
}

func NewAdminBookingHandler(service admin.AdminUseCase) *AdminBookingHandler {
	return &AdminBookingHandler{service: service}
}

func (h *AdminBookingHandler) Register(router *gin.RouterGroup) {
	router.GET("/stats", h.stats)
	router.GET("/analytics/services", h.analytics)
	router.GET("/bookings", h.list)
	router.GET("/bookings/recent", h.recent)
	router.GET("/bookings/export", h.export)
	router.GET("/bookings/detail/:id", h.get)
	router.PUT("/bookings/status/:id", h.updateStatus)
	router.PUT("/bookings/detail/:id", h.updateDetails)
	router.DELETE("/bookings/detail/:id", h.delete)
	router.POST("/bookings/notify/:id", h.notify)
}

func bookingFilters(c *gin.Context) upstream.BookingFilters {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(domain.DefaultPageLimit)))
	return upstream.BookingFilters{
		Search: c.Query("search"),
		Status: c.Query("status"),
		Date:   c.Query("date"),
		Page:   page,
		Limit:  limit,
	}
}

func (h *AdminBookingHandler) list(c *gin.Context) {
	list, err := h.service.ListBookings(c.Request.Context(), currentSessionID(c), bookingFilters(c))
	if err != nil {
		respondError(c, err, "Failed to load bookings")
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"bookings":   list.Bookings,
		"total":      list.Page.Total,
		"totalPages": list.Page.TotalPages,
		"page":       list.Page.Page,
		"showing":    list.Page.Showing(),
		"pageWindow": list.Page.Window(5),
	})
}

func (h *AdminBookingHandler) recent(c *gin.Context) {
	bookings, err := h.service.RecentBookings(c.Request.Context(), currentSessionID(c))
	if err != nil {
		respondError(c, err, "Failed to load recent bookings")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "bookings": bookings})
}

func (h *AdminBookingHandler) get(c *gin.Context) {
	booking, err := h.service.GetBooking(c.Request.Context(), currentSessionID(c), c.Param("id"))
	if err != nil {
		respondError(c, err, "Failed to load booking")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "booking": booking})
}

type statusUpdateRequest struct {
	Status  domain.BookingStatus `json:"status"`
	Message string               `json:"message"`
	Confirm bool                 `json:"confirm"`
}

func (h *AdminBookingHandler) updateStatus(c *gin.Context) {
	var req statusUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid request body"})
		return
	}

	booking, err := h.service.UpdateBookingStatus(c.Request.Context(), currentSessionID(c), c.Param("id"), req.Status, req.Message, req.Confirm)
	if err != nil {
		respondError(c, err, "Failed to update status")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "booking": booking})
}

func (h *AdminBookingHandler) updateDetails(c *gin.Context) {
	var update upstream.BookingDetailsUpdate
	if err := c.ShouldBindJSON(&update); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid request body"})
		return
	}

	booking, err := h.service.UpdateBookingDetails(c.Request.Context(), currentSessionID(c), c.Param("id"), update)
	if err != nil {
		respondError(c, err, "Failed to update booking")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "booking": booking})
}

func (h *AdminBookingHandler) delete(c *gin.Context) {
	confirm := c.Query("confirm") == "true"
	if err := h.service.DeleteBooking(c.Request.Context(), currentSessionID(c), c.Param("id"), confirm); err != nil {
		respondError(c, err, "Failed to delete booking")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Booking deleted successfully"})
}

func (h *AdminBookingHandler) notify(c *gin.Context) {
	var n upstream.Notification
	if err := c.ShouldBindJSON(&n); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid request body"})
		return
	}

	if err := h.service.Notify(c.Request.Context(), currentSessionID(c), c.Param("id"), n); err != nil {
		respondError(c, err, "Failed to send notification")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Notification sent"})
}

func (h *AdminBookingHandler) export(c *gin.Context) {
	data, filename, err := h.service.ExportBookings(c.Request.Context(), currentSessionID(c), bookingFilters(c))
	if err != nil {
		respondError(c, err, "Failed to export bookings")
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", data)
}

func (h *AdminBookingHandler) stats(c *gin.Context) {
	stats, err := h.service.Stats(c.Request.Context(), currentSessionID(c))
	if err != nil {
		respondError(c, err, "Failed to load stats")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "stats": stats})
}

func (h *AdminBookingHandler) analytics(c *gin.Context) {
	analytics, err := h.service.ServiceAnalytics(c.Request.Context(), currentSessionID(c))
	if err != nil {
		respondError(c, err, "Failed to load analytics")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "analytics": analytics})
}
