package client

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/pokioni/roomserver/room"
	"github.com/pokioni/roomserver/transport/websocket"
)

func startServer(t *testing.T) (*room.Store, string) {
	t.Helper()

	logger := zap.NewNop().Sugar()
	store := room.NewStore(nil, logger)
	hub := websocket.NewHub(store, logger)

	ctx, cancel := context.WithCancel(context.Background())
	go hub.Run(ctx)

	srv := httptest.NewServer(http.HandlerFunc(hub.ServeWS))
	t.Cleanup(func() {
		srv.Close()
		cancel()
	})

	return store, "ws" + strings.TrimPrefix(srv.URL, "http")
}

func waitForFrame(t *testing.T, c *Client, wantType string) Frame {
	t.Helper()

	deadline := time.After(2 * time.Second)
	for {
		select {
		case frame, ok := <-c.Frames():
			require.True(t, ok, "connection dropped while waiting for %q", wantType)
			if frame.Type == wantType {
				return frame
			}
		case <-deadline:
			t.Fatalf("timed out waiting for %q frame", wantType)
		}
	}
}

func TestConnectAndJoin(t *testing.T) {
	store, url := startServer(t)
	roomID := store.Create()

	c := New(url)
	require.NoError(t, c.Connect(context.Background()))
	defer c.Close()

	require.NoError(t, c.Join(roomID))

	reply := waitForFrame(t, c, "join")
	assert.Equal(t, roomID, reply.RoomID)
	assert.True(t, reply.RoomExists)
	assert.Len(t, reply.PlayerID, 9)
}

func TestJoinMissingRoom(t *testing.T) {
	_, url := startServer(t)

	c := New(url)
	require.NoError(t, c.Connect(context.Background()))
	defer c.Close()

	require.NoError(t, c.Join("nosuchroom"))

	reply := waitForFrame(t, c, "join")
	assert.False(t, reply.RoomExists)
	assert.Empty(t, reply.PlayerID)
}

func TestMoveReachesOtherClient(t *testing.T) {
	store, url := startServer(t)
	roomID := store.Create()

	a := New(url)
	require.NoError(t, a.Connect(context.Background()))
	defer a.Close()
	require.NoError(t, a.Join(roomID))
	joined := waitForFrame(t, a, "join")

	b := New(url)
	require.NoError(t, b.Connect(context.Background()))
	defer b.Close()
	require.NoError(t, b.Join(roomID))
	waitForFrame(t, b, "join")
	waitForFrame(t, a, "new-player")

	require.NoError(t, a.Move(room.Position{X: 3, Y: 4}))

	move := waitForFrame(t, b, "move")
	assert.Equal(t, joined.PlayerID, move.ID)
	require.NotNil(t, move.Position)
	assert.Equal(t, room.Position{X: 3, Y: 4}, *move.Position)
}

func TestFramesClosedOnDisconnect(t *testing.T) {
	_, url := startServer(t)

	c := New(url)
	require.NoError(t, c.Connect(context.Background()))
	frames := c.Frames()
	require.NoError(t, c.Close())

	deadline := time.After(2 * time.Second)
	for {
		select {
		case _, ok := <-frames:
			if !ok {
				return
			}
		case <-deadline:
			t.Fatal("frame channel not closed after Close")
		}
	}
}

func TestSendBeforeConnect(t *testing.T) {
	c := New("ws://localhost:0/ws")
	assert.Error(t, c.Join("anywhere"))
}

func TestConnectGivesUpAfterBoundedAttempts(t *testing.T) {
	if testing.Short() {
		t.Skip("retries across fixed delays")
	}

	c := New("ws://127.0.0.1:1/ws")

	start := time.Now()
	err := c.Connect(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to connect after 5 attempts")
	assert.GreaterOrEqual(t, time.Since(start), 4*dialDelay)
}

func TestConnectHonorsContextCancel(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	c := New("ws://127.0.0.1:1/ws")
	err := c.Connect(ctx)
	require.Error(t, err)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}
