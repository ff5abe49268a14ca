package websocket

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/partyup/matchmaking_backend/services"
	"github.com/partyup/matchmaking_backend/utils"
	"go.uber.org/zap"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // Allow all origins
	},
}

// Handler owns the socket endpoint: it authenticates the upgrade and routes
// client actions into the services.
type Handler struct {
	Hub      *Hub
	Parties  *services.PartyService
	Messages *services.MessageService
	Logger   *zap.SugaredLogger
}

// HandleConnection handles websocket connections. The credential travels as
// a token query parameter since browsers cannot set headers on upgrades.
func (h *Handler) HandleConnection(c *gin.Context) {
	token := c.Query("token")
	if token == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "token is required"})
		return
	}

	userID, err := utils.ParseToken(token)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
		return
	}

	// Upgrade HTTP connection to WebSocket
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.Logger.Errorw("websocket upgrade failed", "error", err)
		return
	}

	client := &Client{
		hub:    h.Hub,
		conn:   conn,
		send:   make(chan []byte, 256),
		userID: userID,
	}

	client.hub.register <- client

	go client.readPump(h)
	go client.writePump()
}
