package realtime

import (
	"context"
	"net/http"
	"net/url"
	"strings"

	"turfbook/internal/auth"
	"turfbook/internal/booking"
	"turfbook/internal/logger"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

// Booker books a slot on behalf of a socket user.
type Booker interface {
	BookSlot(ctx context.Context, userID, slotID int) (*booking.Booking, error)
}

type Handler struct {
	hub      *Hub
	booker   Booker
	upgrader websocket.Upgrader
}

// NewHandler accepts same-host origins plus allowedOrigins. A "*" entry
// accepts any origin.
func NewHandler(hub *Hub, booker Booker, allowedOrigins []string) *Handler {
	h := &Handler{hub: hub, booker: booker}
	h.upgrader = websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin:     originChecker(allowedOrigins),
	}
	return h
}

func originChecker(allowed []string) func(r *http.Request) bool {
	set := make(map[string]struct{}, len(allowed))
	for _, o := range allowed {
		set[strings.TrimRight(strings.TrimSpace(o), "/")] = struct{}{}
	}
	_, wildcard := set["*"]

	return func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		if origin == "" || wildcard {
			return true
		}
		if _, ok := set[origin]; ok {
			return true
		}
		u, err := url.Parse(origin)
		return err == nil && strings.EqualFold(u.Host, r.Host)
	}
}

// Serve godoc
// @Summary      Live slot updates
// @Description  Upgrades to a WebSocket. Frames are {"event": ..., "data": ...}.
// @Tags         realtime
// @Success      101
// @Router       /ws [get]
func (h *Handler) Serve(c *gin.Context) {
	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		logger.WithError(err).Warn("websocket upgrade failed")
		return
	}

	userID, _ := auth.GetUserID(c)
	client := newClient(h.hub, conn, h.booker, userID)
	h.hub.register(client)

	ctx, cancel := context.WithCancel(context.WithoutCancel(c.Request.Context()))
	defer cancel()

	go client.writePump()
	client.readPump(ctx)
}
