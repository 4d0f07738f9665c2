// Package handler wires the complaint workflow to the HTTP surface.
package handler

import (
	"errors"
	"log"
	"net/http"

	"complaintwall/backend/internal/auth"
	"complaintwall/backend/internal/complaint"
	"complaintwall/backend/internal/feed"
	"complaintwall/backend/internal/models"
	"complaintwall/backend/internal/storage"

	"github.com/gin-gonic/gin"
)

// Handler bundles the dependencies of all route handlers.
type Handler struct {
	Service *complaint.Service
	Storage storage.Storage
	Auth    *auth.Manager
	Hub     *feed.Hub
}

// NewHandler creates the HTTP handler set.
func NewHandler(svc *complaint.Service, s storage.Storage, authMgr *auth.Manager, hub *feed.Hub) *Handler {
	return &Handler{Service: svc, Storage: s, Auth: authMgr, Hub: hub}
}

// RegisterRoutes mounts every endpoint on the gin engine.
func (h *Handler) RegisterRoutes(r *gin.Engine) {
	r.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, "Welcome to Digital Complaint Wall API")
	})

	api := r.Group("/api")
	api.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	authRoutes := api.Group("/auth")
	authRoutes.POST("/register", h.Register)
	authRoutes.POST("/login", h.Login)

	complaints := api.Group("/complaints")
	complaints.POST("", h.Auth.OptionalAuthenticate(), h.RateLimitSubmit(), h.SubmitComplaint)
	complaints.GET("", h.Auth.Authenticate(), auth.RequireRole(models.RoleAdmin), h.ListComplaints)
	complaints.GET("/status/:complaintNumber", h.GetStatus)
	complaints.PATCH("/:id", h.Auth.Authenticate(), auth.RequireRole(models.RoleAdmin), h.UpdateComplaint)

	api.GET("/files/:id", h.Auth.Authenticate(), h.DownloadFile)

	analytics := api.Group("/analytics", h.Auth.Authenticate(), auth.RequireRole(models.RoleAdmin))
	analytics.GET("/categories", h.AnalyticsCategories)
	analytics.GET("/status", h.AnalyticsStatus)
	analytics.GET("/priority", h.AnalyticsPriority)

	r.GET("/ws/feed", h.ServeFeed)
}

// respondError maps the service error taxonomy to HTTP responses.
// Unrecognized errors are logged server-side and come back as a generic
// 500 without leaking internals.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, complaint.ErrValidation):
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
	case errors.Is(err, complaint.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"message": "Complaint not found"})
	case errors.Is(err, complaint.ErrNoAttachment):
		c.JSON(http.StatusNotFound, gin.H{"message": "No file attached to this complaint"})
	case errors.Is(err, complaint.ErrFileMissing):
		c.JSON(http.StatusNotFound, gin.H{"message": "File not found on server"})
	case errors.Is(err, complaint.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"message": "Access denied"})
	case errors.Is(err, complaint.ErrConflict):
		c.JSON(http.StatusConflict, gin.H{"message": "Could not allocate a unique complaint number"})
	default:
		log.Printf("ERROR: %s %s: %v", c.Request.Method, c.FullPath(), err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
	}
}
