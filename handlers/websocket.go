package handlers

import (
	"net/http"

	"github.com/apex/log"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"report-triage-service/middleware"
	"report-triage-service/models"
	"report-triage-service/services"
)

// WebSocketHandler upgrades dashboard connections onto the report feed.
type WebSocketHandler struct {
	hub *services.WebSocketHub
}

func NewWebSocketHandler(hub *services.WebSocketHub) *WebSocketHandler {
	return &WebSocketHandler{
		hub: hub,
	}
}

// ListenReports handles GET /ws/reports: live feed of new submissions.
func (h *WebSocketHandler) ListenReports(c *gin.Context) {
	principal := middleware.GetPrincipalFromContext(c)
	log.Infof("WebSocket connection request from user %s", principal.UserID)

	upgrader := websocket.Upgrader{
		CheckOrigin: func(r *http.Request) bool {
			return true
		},
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Errorf("Error upgrading connection to WebSocket: %v", err)
		return
	}

	h.hub.RegisterClient(conn, principal.UserID)
}

// HealthCheck reports the hub's connection count.
func (h *WebSocketHandler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, models.HealthResponse{
		Status:           "healthy",
		Service:          "report-triage-websocket",
		ConnectedClients: h.hub.GetConnectedClientsCount(),
	})
}
