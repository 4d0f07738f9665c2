package handler

import (
	"net/http"
	"slices"
	"strconv"

	"complaintwall/backend/internal/auth"
	"complaintwall/backend/internal/complaint"
	"complaintwall/backend/internal/config"

	"github.com/gin-gonic/gin"
)

// SubmitComplaint accepts the public multipart submission form. Auth is
// optional: a valid token attaches the caller as submitter, anything else
// stays anonymous.
func (h *Handler) SubmitComplaint(c *gin.Context) {
	in := complaint.SubmitInput{
		Category:     c.PostForm("category"),
		Description:  c.PostForm("description"),
		Priority:     c.PostForm("priority"),
		ContactEmail: c.PostForm("contactEmail"),
		ContactPhone: c.PostForm("contactPhone"),
	}

	if claims := auth.ClaimsFrom(c); claims != nil {
		id := claims.UserID
		in.SubmitterID = &id
	}

	fileHeader, err := c.FormFile("file")
	if err == nil && fileHeader != nil {
		if fileHeader.Size > config.MaxUploadBytes {
			c.JSON(http.StatusBadRequest, gin.H{"message": "File exceeds the 10MB limit"})
			return
		}
		mimeType := fileHeader.Header.Get("Content-Type")
		if !slices.Contains(config.AllowedMIMETypes, mimeType) {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Only JPG, PNG, PDF, and TXT files are allowed"})
			return
		}
		f, err := fileHeader.Open()
		if err != nil {
			respondError(c, err)
			return
		}
		defer f.Close()
		in.File = &complaint.Upload{
			OriginalName: fileHeader.Filename,
			MIMEType:     mimeType,
			Reader:       f,
		}
	}

	created, err := h.Service.Submit(c.Request.Context(), in)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":         "Complaint submitted successfully",
		"complaintNumber": created.ComplaintNumber,
		"complaint":       created.ReceiptView(),
	})
}

// ListComplaints returns every complaint full-fidelity, newest first.
// Admin-gated at the route.
func (h *Handler) ListComplaints(c *gin.Context) {
	complaints, err := h.Service.ListAll(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, complaints)
}

// GetStatus is the unauthenticated status lookup; the complaint number is
// the capability.
func (h *Handler) GetStatus(c *gin.Context) {
	view, err := h.Service.GetPublicStatus(c.Request.Context(), c.Param("complaintNumber"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

type updateRequest struct {
	Status    *string `json:"status"`
	AdminNote *string `json:"adminNote"`
}

// UpdateComplaint applies an admin status/note update.
func (h *Handler) UpdateComplaint(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid complaint id"})
		return
	}

	var req updateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request body"})
		return
	}

	updated, err := h.Service.UpdateStatus(c.Request.Context(), uint(id), complaint.UpdateInput{
		Status:    req.Status,
		AdminNote: req.AdminNote,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":   "Complaint updated successfully",
		"complaint": updated,
	})
}

// RateLimitSubmit caps submissions per client IP over a sliding window.
// Without Redis the counter always reads zero and nothing is limited.
func (h *Handler) RateLimitSubmit() gin.HandlerFunc {
	return func(c *gin.Context) {
		key := "rl:submit:" + c.ClientIP()
		n, err := h.Storage.IncrWindow(c.Request.Context(), key, config.RateLimitWindow)
		if err != nil {
			// A broken limiter must not take the endpoint down.
			c.Next()
			return
		}
		if n > config.RateLimitMax {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"message": "Too many requests"})
			return
		}
		c.Next()
	}
}
