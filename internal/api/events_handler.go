package api

import (
	"net/http"
	"time"

	"github.com/blog-platform-api/internal/metrics"
	"github.com/blog-platform-api/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
)

// writeWait bounds how long a single event write may block
const writeWait = 10 * time.Second

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// The API is token-authenticated; origin checks add nothing here.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// EventsHandler streams auth-state changes over a websocket. It is
// the push channel a client subscribes to instead of polling the
// session endpoint.
type EventsHandler struct {
	services *service.Services
	log      zerolog.Logger
}

// NewEventsHandler creates a new EventsHandler
func NewEventsHandler(services *service.Services, log zerolog.Logger) *EventsHandler {
	return &EventsHandler{
		services: services,
		log:      log.With().Str("handler", "events").Logger(),
	}
}

// Stream handles GET /v1/auth/events
func (h *EventsHandler) Stream(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.log.Warn().Err(err).Msg("Websocket upgrade failed")
		return
	}
	defer conn.Close()

	events, unsubscribe := h.services.Auth.Subscribe()
	defer unsubscribe()

	metrics.AuthSubscribers.Inc()
	defer metrics.AuthSubscribers.Dec()

	h.log.Debug().Str("client_ip", c.ClientIP()).Msg("Auth event subscriber connected")

	// Reader goroutine only detects the peer going away; clients do
	// not send application messages.
	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	for {
		select {
		case <-done:
			return
		case event, ok := <-events:
			if !ok {
				return
			}
			conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteJSON(event); err != nil {
				h.log.Debug().Err(err).Msg("Auth event write failed, dropping subscriber")
				return
			}
		}
	}
}
