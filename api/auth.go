package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/pointsolution/docbooking/internal/service/auth"
	"github.com/pointsolution/docbooking/internal/upstream"
)

type AuthHandler struct {
	service    auth.AuthUseCase
	sessionTTL time.Duration
}

func NewAuthHandler(service auth.AuthUseCase, sessionTTL time.Duration) *AuthHandler {
	return &AuthHandler{service: service, sessionTTL: sessionTTL}
}

func (h *AuthHandler) Register(router *gin.RouterGroup) {
	router.POST("/auth/register", h.register)
	router.POST("/auth/login", h.login)
	router.POST("/auth/logout", h.logout)
	router.GET("/auth/me", RequireAuth(), h.me)
	router.PUT("/auth/profile", RequireAuth(), h.updateProfile)
}

func (h *AuthHandler) register(c *gin.Context) {
	var input auth.RegisterInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid request body"})
		return
	}

	result, err := h.service.Register(c.Request.Context(), input)
	if err != nil {
		respondError(c, err, "Registration failed")
		return
	}

	setSessionCookie(c, result.SessionID, h.sessionTTL)
	c.JSON(http.StatusCreated, gin.H{
		"success":  true,
		"user":     result.User,
		"redirect": result.Landing,
	})
}

func (h *AuthHandler) login(c *gin.Context) {
	var input auth.LoginInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid request body"})
		return
	}

	result, err := h.service.Login(c.Request.Context(), input)
	if err != nil {
		respondError(c, err, "Login failed")
		return
	}

	setSessionCookie(c, result.SessionID, h.sessionTTL)
	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"user":     result.User,
		"redirect": result.Landing,
	})
}

func (h *AuthHandler) logout(c *gin.Context) {
	if id := currentSessionID(c); id != "" {
		if err := h.service.Logout(c.Request.Context(), id); err != nil {
			respondError(c, err, "Logout failed")
			return
		}
	}
	clearSessionCookie(c)
	c.JSON(http.StatusOK, gin.H{"success": true, "redirect": "/"})
}

func (h *AuthHandler) me(c *gin.Context) {
	user, err := h.service.Current(c.Request.Context(), currentSessionID(c))
	if err != nil {
		respondError(c, err, "Failed to load profile")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "user": user})
}

func (h *AuthHandler) updateProfile(c *gin.Context) {
	var update upstream.ProfileUpdate
	if err := c.ShouldBindJSON(&update); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid request body"})
		return
	}

	user, err := h.service.UpdateProfile(c.Request.Context(), currentSessionID(c), update)
	if err != nil {
		respondError(c, err, "Update failed")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "user": user})
}
