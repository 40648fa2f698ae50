package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pointsolution/docbooking/internal/service/catalog"
)

type CatalogHandler struct {
	service catalog.CatalogUseCase
}

func NewCatalogHandler(service catalog.CatalogUseCase) *CatalogHandler {
	return &CatalogHandler{service: service}
}

func (h *CatalogHandler) Register(router *gin.RouterGroup) {
	router.GET("/services", h.list)
	router.GET("/services/id/:id", h.get)
	router.GET("/services/category/:category", h.byCategory)
	router.GET("/services/categories", h.categories)
}

func (h *CatalogHandler) list(c *gin.Context) {
	groups, err := h.service.Grouped(c.Request.Context())
	if err != nil {
		respondError(c, err, "Failed to load services")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "services": groups})
}

func (h *CatalogHandler) get(c *gin.Context) {
	svc, err := h.service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err, "Failed to load service details")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "service": svc})
}

func (h *CatalogHandler) byCategory(c *gin.Context) {
	services, err := h.service.ByCategory(c.Request.Context(), c.Param("category"))
	if err != nil {
		respondError(c, err, "Failed to load services")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "services": services})
}

func (h *CatalogHandler) categories(c *gin.Context) {
	categories, err := h.service.Categories(c.Request.Context())
	if err != nil {
		respondError(c, err, "Failed to load categories")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "categories": categories})
}
