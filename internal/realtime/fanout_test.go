package realtime

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/go-redis/redismock/v9"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRedisFanout_Publish(t *testing.T) {
	rdb, mock := redismock.NewClientMock()
	f := NewRedisFanout(rdb, "")

	mock.ExpectPublish(DefaultChannel, "3").SetVal(1)
	require.NoError(t, f.Publish(context.Background(), 3))

	mock.ExpectPublish(DefaultChannel, "4").SetErr(errors.New("connection refused"))
	assert.Error(t, f.Publish(context.Background(), 4))

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRedisFanout_CustomChannel(t *testing.T) {
	rdb, mock := redismock.NewClientMock()
	f := NewRedisFanout(rdb, "staging:slots")

	mock.ExpectPublish("staging:slots", "9").SetVal(0)
	require.NoError(t, f.Publish(context.Background(), 9))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestHandlePayload(t *testing.T) {
	tests := []struct {
		payload string
		want    int
	}{
		{"7", 7},
		{"0", 0},
		{"-2", 0},
		{"seven", 0},
		{"", 0},
	}

	for _, tt := range tests {
		t.Run(tt.payload, func(t *testing.T) {
			got := 0
			ok := handlePayload(context.Background(), tt.payload, func(_ context.Context, turfID int) {
				got = turfID
			})
			assert.Equal(t, tt.want != 0, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRedisFanout_SubscribeUnreachable(t *testing.T) {
	rdb := redis.NewClient(&redis.Options{Addr: "127.0.0.1:1", DialTimeout: 200 * time.Millisecond, MaxRetries: -1})
	defer rdb.Close()

	readyCalled := false
	err := NewRedisFanout(rdb, "").Subscribe(context.Background(), func() { readyCalled = true }, func(context.Context, int) {})

	assert.Error(t, err)
	assert.False(t, readyCalled)
}

// Needs a live Redis at TEST_REDIS_ADDR.
func TestRedisFanout_SubscribeLive(t *testing.T) {
	addr := os.Getenv("TEST_REDIS_ADDR")
	if addr == "" {
		t.Skip("TEST_REDIS_ADDR not set")
	}
	rdb := redis.NewClient(&redis.Options{Addr: addr})
	defer rdb.Close()
	if err := rdb.Ping(context.Background()).Err(); err != nil {
		t.Skipf("redis not reachable: %v", err)
	}

	f := NewRedisFanout(rdb, "turfbook:test:"+uuid.NewString())
	ctx, cancel := context.WithCancel(context.Background())
	ready := make(chan struct{})
	got := make(chan int, 4)
	done := make(chan error, 1)
	go func() {
		done <- f.Subscribe(ctx, func() { close(ready) }, func(_ context.Context, turfID int) { got <- turfID })
	}()

	select {
	case <-ready:
	case <-time.After(5 * time.Second):
		t.Fatal("subscription never became ready")
	}

	require.NoError(t, rdb.Publish(context.Background(), f.channel, "junk").Err())
	require.NoError(t, f.Publish(context.Background(), 4))

	select {
	case id := <-got:
		assert.Equal(t, 4, id)
	case <-time.After(5 * time.Second):
		t.Fatal("no notification received")
	}

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("subscribe did not return after cancel")
	}
	assert.Empty(t, got)
}
