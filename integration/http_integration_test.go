package integration_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"turfbook/internal/booking"
	"turfbook/internal/config"
	"turfbook/internal/realtime"
	"turfbook/internal/server"
	"turfbook/internal/turf"
	"turfbook/internal/user"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type app struct {
	url   string
	turfs turf.Service
}

func startApp(t *testing.T, conn *sqlx.DB) *app {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := &config.Config{
		Port:               "0",
		JWTSecret:          testSecret,
		SessionTTL:         time.Hour,
		AuthRateLimitRPS:   100,
		AuthRateLimitBurst: 100,
	}

	turfSvc := turf.NewService(turf.NewRepository(conn))
	hub := realtime.NewHub(turfSvc, nil)
	bookingSvc := booking.NewService(booking.NewRepository(conn), turfSvc, hub, nil, nil)
	userSvc := user.NewService(user.NewRepository(conn), cfg.JWTSecret, cfg.SessionTTL)

	srv := server.New(cfg, server.Handlers{
		User:     user.NewHandler(userSvc, cfg.SessionTTL, false),
		Turf:     turf.NewHandler(turfSvc, hub),
		Booking:  booking.NewHandler(bookingSvc),
		Realtime: realtime.NewHandler(hub, bookingSvc, nil),
	})

	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(func() {
		hub.Shutdown()
		ts.Close()
	})
	return &app{url: ts.URL, turfs: turfSvc}
}

func login(t *testing.T, baseURL, email, password string) *http.Client {
	t.Helper()
	jar, err := cookiejar.New(nil)
	require.NoError(t, err)
	client := &http.Client{Jar: jar}

	body := fmt.Sprintf(`{"email":%q,"password":%q}`, email, password)
	resp, err := client.Post(baseURL+"/api/login", "application/json", bytes.NewBufferString(body))
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	return client
}

func decodeBody(t *testing.T, resp *http.Response) map[string]interface{} {
	t.Helper()
	defer resp.Body.Close()
	var out map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

func TestBookingFlowOverHTTP(t *testing.T) {
	conn := setupTestDB(t)
	a := startApp(t, conn)

	turfs, err := a.turfs.ListTurfs(context.Background())
	require.NoError(t, err)
	turfID := turfs[1].ID

	slot, err := a.turfs.CreateSlot(context.Background(), turfID, turf.CreateSlotRequest{StartTime: time.Now().Add(5 * time.Hour)})
	require.NoError(t, err)

	watcher, resp, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(a.url, "http")+"/ws", nil)
	require.NoError(t, err)
	resp.Body.Close()
	defer watcher.Close()

	require.NoError(t, watcher.WriteJSON(map[string]any{"event": "request_slots", "data": map[string]any{"turf_id": turfID}}))
	var frame struct {
		Event string          `json:"event"`
		Data  []turf.SlotView `json:"data"`
	}
	require.NoError(t, watcher.SetReadDeadline(time.Now().Add(3*time.Second)))
	require.NoError(t, watcher.ReadJSON(&frame))
	assert.Equal(t, "update_slots", frame.Event)

	player := login(t, a.url, "user@example.com", "user123")

	resp, err = player.Post(fmt.Sprintf("%s/api/book/%d", a.url, slot.ID), "application/json", nil)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "Booking confirmed", decodeBody(t, resp)["message"])

	require.NoError(t, watcher.SetReadDeadline(time.Now().Add(3*time.Second)))
	require.NoError(t, watcher.ReadJSON(&frame))
	assert.Equal(t, "update_slots", frame.Event)
	var pushed *turf.SlotView
	for i := range frame.Data {
		if frame.Data[i].ID == slot.ID {
			pushed = &frame.Data[i]
		}
	}
	require.NotNil(t, pushed)
	assert.True(t, pushed.Booked)

	resp, err = player.Post(fmt.Sprintf("%s/api/book/%d", a.url, slot.ID), "application/json", nil)
	require.NoError(t, err)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	assert.Equal(t, "Already booked", decodeBody(t, resp)["message"])

	resp, err = player.Get(a.url + "/api/user/bookings")
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	bookings := decodeBody(t, resp)["bookings"].([]interface{})
	assert.Len(t, bookings, 2)

	resp, err = player.Get(a.url + "/api/admin/dashboard")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	admin := login(t, a.url, "admin@example.com", "admin123")
	resp, err = admin.Get(a.url + "/api/admin/dashboard")
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	stats := decodeBody(t, resp)
	assert.Equal(t, float64(2), stats["total_bookings"])
}
