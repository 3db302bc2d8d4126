package realtime

import (
	"bytes"
	"encoding/json"
	"strconv"
)

// Client to server.
const (
	EventRequestSlots = "request_slots"
	EventBookSlot     = "book_slot"
)

// Server to client.
const (
	EventUpdateSlots    = "update_slots"
	EventBookingSuccess = "booking_success"
	EventBookingError   = "booking_error"
)

// Envelope is the frame shape in both directions.
type Envelope struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data,omitempty"`
}

type outbound struct {
	Event string `json:"event"`
	Data  any    `json:"data"`
}

// ID accepts a JSON number or a numeric string. Browsers often send route
// params as strings. Anything else decodes to zero.
type ID int

func (id *ID) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		n, err := strconv.Atoi(s)
		if err != nil {
			*id = 0
			return nil
		}
		*id = ID(n)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		*id = 0
		return nil
	}
	v, err := n.Int64()
	if err != nil {
		*id = 0
		return nil
	}
	*id = ID(v)
	return nil
}

type RequestSlots struct {
	TurfID ID `json:"turf_id"`
}

type BookSlot struct {
	SlotID ID `json:"slot_id"`
}

type BookingSuccess struct {
	SlotID int `json:"slot_id"`
}

type BookingError struct {
	Msg string `json:"msg"`
}

func encode(event string, data any) ([]byte, error) {
	return json.Marshal(outbound{Event: event, Data: data})
}
