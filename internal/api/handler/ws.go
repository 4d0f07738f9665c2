package handler

import (
	"net/http"

	"complaintwall/backend/internal/feed"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// Browser origins are already filtered by the CORS allow-list.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// ServeFeed upgrades an admin connection to the live complaint feed. The
// token is checked before the upgrade; browsers that cannot set headers
// on WebSocket requests pass it as a query parameter.
func (h *Handler) ServeFeed(c *gin.Context) {
	raw := ""
	if header := c.GetHeader("Authorization"); len(header) > 7 && header[:7] == "Bearer " {
		raw = header[7:]
	} else {
		raw = c.Query("token")
	}

	claims, err := h.Auth.VerifyToken(raw)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Invalid token"})
		return
	}
	if !claims.IsAdmin() {
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"message": "Forbidden"})
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"message": "Failed to upgrade connection"})
		return
	}

	client := &feed.Client{
		Hub:  h.Hub,
		Conn: conn,
		Send: make(chan feed.Event, 64),
	}
	h.Hub.RegisterCh <- client
	client.Run()
}
