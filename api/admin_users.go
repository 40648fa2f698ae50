package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/pointsolution/docbooking/internal/domain"
	"github.com/pointsolution/docbooking/internal/service/admin"
	"github.com/pointsolution/docbooking/internal/upstream"
)

type AdminUserHandler struct {
	service admin.AdminUseCase
}

func NewAdminUserHandler(service admin.AdminUseCase) *AdminUserHandler {
	return &AdminUserHandler{service: service}
}

func (h *AdminUserHandler) Register(router *gin.RouterGroup) {
	router.GET("/users", h.list)
	router.PUT("/users/role/:id", h.updateRole)
	router.PUT("/users/active/:id", h.setActive)
	router.DELETE("/users/:id", h.delete)
}

func (h *AdminUserHandler) list(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(domain.DefaultPageLimit)))

	list, err := h.service.ListUsers(c.Request.Context(), currentSessionID(c), upstream.UserFilters{
		Search: c.Query("search"),
		Role:   c.Query("role"),
		Page:   page,
		Limit:  limit,
	})
	if err != nil {
		respondError(c, err, "Failed to load users")
		return
	}

	// The delete action is disabled for admin rows; surface that alongside
	// the data so the interface does not have to re-derive it.
	deletable := make(map[string]bool, len(list.Users))
	for _, u := range list.Users {
		deletable[u.ID] = !u.IsAdmin()
	}

	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"users":      list.Users,
		"deletable":  deletable,
		"total":      list.Page.Total,
		"totalPages": list.Page.TotalPages,
		"page":       list.Page.Page,
		"showing":    list.Page.Showing(),
		"pageWindow": list.Page.Window(5),
	})
}

type roleUpdateRequest struct {
	Role    domain.Role `json:"role"`
	Confirm bool        `json:"confirm"`
}

func (h *AdminUserHandler) updateRole(c *gin.Context) {
	var req roleUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid request body"})
		return
	}

	user, err := h.service.UpdateUserRole(c.Request.Context(), currentSessionID(c), c.Param("id"), req.Role, req.Confirm)
	if err != nil {
		respondError(c, err, "Failed to update user role")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "user": user})
}

type activeUpdateRequest struct {
	IsActive bool `json:"isActive"`
	Confirm  bool `json:"confirm"`
}

func (h *AdminUserHandler) setActive(c *gin.Context) {
	var req activeUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid request body"})
		return
	}

	user, err := h.service.SetUserActive(c.Request.Context(), currentSessionID(c), c.Param("id"), req.IsActive, req.Confirm)
	if err != nil {
		respondError(c, err, "Failed to update user")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "user": user})
}

type deleteUserRequest struct {
	Role    domain.Role `json:"role"`
	Confirm bool        `json:"confirm"`
}

func (h *AdminUserHandler) delete(c *gin.Context) {
	var req deleteUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid request body"})
		return
	}

	target := domain.User{ID: c.Param("id"), Role: req.Role}
	if err := h.service.DeleteUser(c.Request.Context(), currentSessionID(c), target, req.Confirm); err != nil {
		respondError(c, err, "Failed to delete user")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "User deleted successfully"})
}
