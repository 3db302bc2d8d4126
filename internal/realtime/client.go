package realtime

import (
	"context"
	"encoding/json"
	"time"

	"turfbook/internal/booking"
	"turfbook/internal/logger"
	"turfbook/internal/metrics"

	"github.com/gorilla/websocket"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 4096
	sendBuffer     = 32
)

// Client is one socket connection. turfID and closed are guarded by the
// hub's mutex.
type Client struct {
	hub    *Hub
	conn   *websocket.Conn
	booker Booker
	userID int
	send   chan []byte

	turfID int
	closed bool
}

func newClient(hub *Hub, conn *websocket.Conn, booker Booker, userID int) *Client {
	return &Client{
		hub:    hub,
		conn:   conn,
		booker: booker,
		userID: userID,
		send:   make(chan []byte, sendBuffer),
	}
}

func (c *Client) close() {
	if c.conn != nil {
		c.conn.Close()
	}
	c.hub.unregister(c)
}

func (c *Client) readPump(ctx context.Context) {
	defer c.close()

	c.conn.SetReadLimit(maxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure, websocket.CloseNoStatusReceived) {
				logger.WithError(err).Debug("realtime connection closed", "user_id", c.userID)
			}
			return
		}
		c.handle(ctx, data)
	}
}

func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case msg, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				return
			}
		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

func (c *Client) handle(ctx context.Context, data []byte) {
	var env Envelope
	if err := json.Unmarshal(data, &env); err != nil {
		logger.Debug("ignoring malformed realtime frame", "user_id", c.userID)
		return
	}

	switch env.Event {
	case EventRequestSlots:
		metrics.RecordRealtimeMessage("in", env.Event)
		var p RequestSlots
		decodeData(env.Data, &p)
		c.requestSlots(ctx, int(p.TurfID))
	case EventBookSlot:
		metrics.RecordRealtimeMessage("in", env.Event)
		var p BookSlot
		decodeData(env.Data, &p)
		c.bookSlot(ctx, int(p.SlotID))
	default:
		metrics.RecordRealtimeMessage("in", "unknown")
		logger.Info("ignoring unknown realtime event", "event", env.Event, "user_id", c.userID)
	}
}

// decodeData leaves v zeroed when the payload is missing or the wrong shape.
func decodeData(raw json.RawMessage, v any) {
	if len(raw) == 0 {
		return
	}
	_ = json.Unmarshal(raw, v)
}

func (c *Client) requestSlots(ctx context.Context, turfID int) {
	c.hub.watch(c, turfID)
	c.hub.sendSlots(ctx, c, turfID)
}

func (c *Client) bookSlot(ctx context.Context, slotID int) {
	if c.userID == 0 {
		c.replyData(EventBookingError, BookingError{Msg: "Authentication required"})
		return
	}

	_, err := c.booker.BookSlot(ctx, c.userID, slotID)
	metrics.RecordBooking(booking.Outcome(err), "ws")
	if err != nil {
		c.replyData(EventBookingError, BookingError{Msg: booking.Message(err)})
		return
	}
	c.replyData(EventBookingSuccess, BookingSuccess{SlotID: slotID})
}

func (c *Client) replyData(event string, data any) {
	msg, err := encode(event, data)
	if err != nil {
		logger.WithError(err).Error("encode realtime reply failed", "event", event)
		return
	}
	c.reply(event, msg)
}

func (c *Client) reply(event string, msg []byte) {
	c.hub.deliver(c, msg)
	metrics.RecordRealtimeMessage("out", event)
}
