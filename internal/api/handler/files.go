package handler

import (
	"fmt"
	"net/http"
	"strconv"

	"complaintwall/backend/internal/auth"

	"github.com/gin-gonic/gin"
)

// DownloadFile streams a complaint's attachment to an authorized caller
// with the original filename and content type.
func (h *Handler) DownloadFile(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid complaint id"})
		return
	}

	dl, err := h.Service.DownloadAttachment(c.Request.Context(), uint(id), auth.ClaimsFrom(c))
	if err != nil {
		respondError(c, err)
		return
	}
	defer dl.Reader.Close()

	headers := map[string]string{
		"Content-Disposition": fmt.Sprintf("attachment; filename=%q", dl.OriginalName),
	}
	c.DataFromReader(http.StatusOK, dl.Size, dl.MIMEType, dl.Reader, headers)
}
