package websocket

import (
	"context"
	"net/http"
	"strings"
	"time"

	"taxigo/pkg/logger"

	"github.com/gin-gonic/gin"
)

// Authenticate verifies a bearer token and returns the user id.
type Authenticate func(token string) (string, error)

// LocationSource produces the current tracking payload for a ride. An
// error means the ride is gone and its room can go quiet.
type LocationSource func(ctx context.Context, rideID string) (map[string]interface{}, error)

// Handler upgrades tracking connections and periodically pushes
// simulated driver locations to every watched ride.
type Handler struct {
	hub      *Hub
	auth     Authenticate
	source   LocationSource
	interval time.Duration
	logger   *logger.Logger
}

func NewHandler(auth Authenticate, source LocationSource, interval time.Duration, logger *logger.Logger) *Handler {
	hub := NewHub()
	go hub.Run()

	h := &Handler{
		hub:      hub,
		auth:     auth,
		source:   source,
		interval: interval,
		logger:   logger,
	}
	go h.publishLoop()

	return h
}

// HandleTrack serves GET /ws/rides/:rideId/track. Browsers cannot set
// headers on WebSocket dials, so the token is also accepted as a query
// parameter.
func (h *Handler) HandleTrack(c *gin.Context) {
	token := c.Query("token")
	if token == "" {
		token = strings.TrimPrefix(c.GetHeader("Authorization"), "Bearer ")
	}

	userID, err := h.auth(token)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
		return
	}

	rideID := c.Param("rideId")
	if _, err := h.source(c.Request.Context(), rideID); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "ride not found"})
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.WithError(err).Warn("WebSocket upgrade failed")
		return
	}

	client := NewClient(h.hub, conn, userID, rideID)
	h.hub.register <- client

	go client.writePump()
	go client.readPump()
}

func (h *Handler) publishLoop() {
	ticker := time.NewTicker(h.interval)
	defer ticker.Stop()

	for range ticker.C {
		for _, rideID := range h.hub.ActiveRides() {
			ctx, cancel := context.WithTimeout(context.Background(), h.interval)
			data, err := h.source(ctx, rideID)
			cancel()
			if err != nil {
				continue
			}

			h.hub.SendToRide(rideID, Message{
				Type:      "location_update",
				RideID:    rideID,
				Timestamp: time.Now().Unix(),
				Data:      data,
			})
		}
	}
}
