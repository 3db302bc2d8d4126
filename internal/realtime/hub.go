package realtime

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"turfbook/internal/logger"
	"turfbook/internal/metrics"
	"turfbook/internal/turf"
)

// SlotSource loads the slot list pushed to watchers.
type SlotSource interface {
	SlotViews(ctx context.Context, turfID int) ([]turf.SlotView, error)
}

// Hub tracks connected clients and which turf each one is watching.
// A client watches at most one turf at a time.
type Hub struct {
	slots  SlotSource
	fanout Fanout

	// subscribed is true only while this instance receives fan-out
	// notifications. Until then changes are also pushed locally.
	subscribed atomic.Bool
	retryMin   time.Duration
	retryMax   time.Duration

	mu       sync.RWMutex
	clients  map[*Client]struct{}
	watchers map[int]map[*Client]struct{}

	// turfLocks serialise load-then-deliver per turf so the last list a
	// watcher receives is the last one loaded.
	locksMu   sync.Mutex
	turfLocks map[int]*sync.Mutex
}

func NewHub(slots SlotSource, fanout Fanout) *Hub {
	return &Hub{
		slots:     slots,
		fanout:    fanout,
		retryMin:  time.Second,
		retryMax:  30 * time.Second,
		clients:   make(map[*Client]struct{}),
		watchers:  make(map[int]map[*Client]struct{}),
		turfLocks: make(map[int]*sync.Mutex),
	}
}

// Run listens for slot changes from other instances until ctx ends,
// resubscribing with backoff whenever the subscription fails.
// Without a fan-out it returns immediately.
func (h *Hub) Run(ctx context.Context) {
	if h.fanout == nil {
		return
	}

	ready := func() {
		// Notifications sent while we were away are lost.
		h.refreshAll(ctx)
		h.subscribed.Store(true)
	}

	wait := h.retryMin
	for {
		err := h.fanout.Subscribe(ctx, ready, h.refresh)
		wasUp := h.subscribed.Swap(false)
		if ctx.Err() != nil {
			return
		}
		if wasUp {
			wait = h.retryMin
		}
		if err != nil {
			logger.WithError(err).Warn("slot fan-out unavailable, retrying", "retry_in", wait.String())
		} else {
			logger.Warn("slot fan-out closed, retrying", "retry_in", wait.String())
		}

		t := time.NewTimer(wait)
		select {
		case <-ctx.Done():
			t.Stop()
			return
		case <-t.C:
		}
		wait = min(wait*2, h.retryMax)
	}
}

// Subscribed reports whether fan-out notifications are currently received.
func (h *Hub) Subscribed() bool {
	return h.subscribed.Load()
}

func (h *Hub) register(c *Client) {
	h.mu.Lock()
	h.clients[c] = struct{}{}
	h.mu.Unlock()

	metrics.RealtimeConnections.Inc()
}

func (h *Hub) unregister(c *Client) {
	h.mu.Lock()
	removed := h.removeLocked(c)
	h.mu.Unlock()

	if removed {
		metrics.RealtimeConnections.Dec()
	}
}

// removeLocked forgets c and closes its queue exactly once.
func (h *Hub) removeLocked(c *Client) bool {
	if c.closed {
		return false
	}
	c.closed = true
	close(c.send)

	delete(h.clients, c)
	h.unwatchLocked(c)
	return true
}

func (h *Hub) unwatchLocked(c *Client) {
	if c.turfID == 0 {
		return
	}
	if set, ok := h.watchers[c.turfID]; ok {
		delete(set, c)
		if len(set) == 0 {
			delete(h.watchers, c.turfID)
		}
	}
	c.turfID = 0
}

// watch replaces whatever c was watching with turfID. Zero clears it.
func (h *Hub) watch(c *Client, turfID int) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if c.closed {
		return
	}
	h.unwatchLocked(c)
	if turfID <= 0 {
		return
	}

	set, ok := h.watchers[turfID]
	if !ok {
		set = make(map[*Client]struct{})
		h.watchers[turfID] = set
	}
	set[c] = struct{}{}
	c.turfID = turfID
}

// deliver queues msg for c without blocking. A client whose queue is
// full is dropped.
func (h *Hub) deliver(c *Client, msg []byte) {
	h.mu.RLock()
	if c.closed {
		h.mu.RUnlock()
		return
	}
	full := false
	select {
	case c.send <- msg:
	default:
		full = true
	}
	h.mu.RUnlock()

	if full {
		h.drop(c)
	}
}

func (h *Hub) drop(c *Client) {
	h.mu.Lock()
	removed := h.removeLocked(c)
	h.mu.Unlock()

	if removed {
		metrics.RealtimeConnections.Dec()
		metrics.RecordRealtimeDrop()
		logger.Warn("dropping slow realtime client", "user_id", c.userID)
	}
}

// SlotsChanged tells every watcher of turfID, on every instance, to
// replace its slot list.
func (h *Hub) SlotsChanged(ctx context.Context, turfID int) {
	if turfID <= 0 {
		return
	}
	if h.fanout != nil {
		err := h.fanout.Publish(ctx, turfID)
		if err == nil && h.subscribed.Load() {
			return
		}
		if err != nil {
			logger.WithError(err).Warn("slot fan-out publish failed, refreshing locally", "turf_id", turfID)
		}
	}
	h.refresh(ctx, turfID)
}

func (h *Hub) lockTurf(turfID int) func() {
	h.locksMu.Lock()
	l, ok := h.turfLocks[turfID]
	if !ok {
		l = &sync.Mutex{}
		h.turfLocks[turfID] = l
	}
	h.locksMu.Unlock()

	l.Lock()
	return l.Unlock
}

func (h *Hub) refresh(ctx context.Context, turfID int) {
	unlock := h.lockTurf(turfID)
	defer unlock()

	targets := h.watchersOf(turfID)
	if len(targets) == 0 {
		return
	}

	msg, err := h.slotList(ctx, turfID)
	if err != nil {
		logger.WithError(err).Error("load slots for broadcast failed", "turf_id", turfID)
		return
	}

	for _, c := range targets {
		h.deliver(c, msg)
	}
	metrics.RealtimeMessagesTotal.WithLabelValues("out", EventUpdateSlots).Add(float64(len(targets)))
}

func (h *Hub) refreshAll(ctx context.Context) {
	h.mu.RLock()
	turfs := make([]int, 0, len(h.watchers))
	for id := range h.watchers {
		turfs = append(turfs, id)
	}
	h.mu.RUnlock()

	for _, id := range turfs {
		h.refresh(ctx, id)
	}
}

// sendSlots pushes the current list for turfID to c alone. A failed
// load sends nothing so the client keeps the list it has.
func (h *Hub) sendSlots(ctx context.Context, c *Client, turfID int) {
	unlock := h.lockTurf(turfID)
	defer unlock()

	msg, err := h.slotList(ctx, turfID)
	if err != nil {
		logger.WithError(err).Error("load slots failed", "turf_id", turfID)
		return
	}
	c.reply(EventUpdateSlots, msg)
}

func (h *Hub) watchersOf(turfID int) []*Client {
	h.mu.RLock()
	defer h.mu.RUnlock()

	set := h.watchers[turfID]
	out := make([]*Client, 0, len(set))
	for c := range set {
		out = append(out, c)
	}
	return out
}

func (h *Hub) slotList(ctx context.Context, turfID int) ([]byte, error) {
	views := []turf.SlotView{}
	if turfID > 0 {
		var err error
		views, err = h.slots.SlotViews(ctx, turfID)
		if err != nil {
			return nil, err
		}
	}
	return encode(EventUpdateSlots, views)
}

// Watchers reports how many clients currently watch turfID.
func (h *Hub) Watchers(turfID int) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.watchers[turfID])
}

// Shutdown disconnects every client.
func (h *Hub) Shutdown() {
	h.mu.Lock()
	clients := make([]*Client, 0, len(h.clients))
	for c := range h.clients {
		clients = append(clients, c)
	}
	h.mu.Unlock()

	for _, c := range clients {
		c.close()
	}
}
