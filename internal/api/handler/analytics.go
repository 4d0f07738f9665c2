package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Admin-facing aggregate counts. Read-only, no side effects.

// AnalyticsCategories returns complaint counts grouped by category.
func (h *Handler) AnalyticsCategories(c *gin.Context) {
	data, err := h.Storage.CountByCategory(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Analytics data retrieved successfully", "data": data})
}

// AnalyticsStatus returns resolved vs unresolved counts.
func (h *Handler) AnalyticsStatus(c *gin.Context) {
	data, err := h.Storage.CountByResolution(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Status analytics retrieved successfully", "data": data})
}

// AnalyticsPriority returns complaint counts grouped by priority.
func (h *Handler) AnalyticsPriority(c *gin.Context) {
	data, err := h.Storage.CountByPriority(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Priority analytics retrieved successfully", "data": data})
}
