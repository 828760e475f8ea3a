package client

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/jpillora/backoff"

	"github.com/pokioni/roomserver/room"
)

const (
	// dialAttempts bounds the reconnect loop; the delay between attempts is
	// fixed at dialDelay like the browser client's retry timer.
	dialAttempts = 5
	dialDelay    = time.Second

	writeWait = 10 * time.Second
)

// Frame is a decoded server message. Fields beyond Type are populated
// depending on the frame kind.
type Frame struct {
	Type             string         `json:"type"`
	RoomID           string         `json:"roomId,omitempty"`
	RoomExists       bool           `json:"roomExists,omitempty"`
	PlayerID         string         `json:"playerId,omitempty"`
	ID               string         `json:"id,omitempty"`
	Position         *room.Position `json:"position,omitempty"`
	ParticipantCount int            `json:"participantCount,omitempty"`
}

// Client is one connection to the coordination server.
type Client struct {
	url string

	mu     sync.Mutex
	conn   *websocket.Conn
	frames chan Frame
}

// New creates a client for the given WebSocket URL (e.g.
// "ws://localhost:8080/ws"). Call Connect before anything else.
func New(url string) *Client {
	return &Client{url: url}
}

// Connect dials the server, retrying a bounded number of times with a fixed
// delay. It returns the last dial error when all attempts fail, or the
// context error when cancelled between attempts.
func (c *Client) Connect(ctx context.Context) error {
	b := &backoff.Backoff{
		Min:    dialDelay,
		Max:    dialDelay,
		Factor: 1,
	}

	var lastErr error
	for attempt := 0; attempt < dialAttempts; attempt++ {
		if attempt > 0 {
			select {
			case <-time.After(b.Duration()):
			case <-ctx.Done():
				return ctx.Err()
			}
		}

		conn, _, err := websocket.DefaultDialer.DialContext(ctx, c.url, nil)
		if err != nil {
			lastErr = err
			continue
		}

		frames := make(chan Frame, 64)
		c.mu.Lock()
		c.conn = conn
		c.frames = frames
		c.mu.Unlock()

		go c.readLoop(conn, frames)
		return nil
	}

	return fmt.Errorf("failed to connect after %d attempts: %w", dialAttempts, lastErr)
}

// Frames returns the channel of decoded server frames. It is closed when the
// connection drops.
func (c *Client) Frames() <-chan Frame {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.frames
}

// Join asks to enter the room. The server answers with a join frame carrying
// roomExists and, on success, the assigned player identifier.
func (c *Client) Join(roomID string) error {
	return c.send(map[string]any{"type": "join", "roomId": roomID})
}

// Leave exits the current room, if any.
func (c *Client) Leave() error {
	return c.send(map[string]any{"type": "leave"})
}

// Move reports a new position.
func (c *Client) Move(pos room.Position) error {
	return c.send(map[string]any{"type": "move", "position": pos})
}

// StartGame broadcasts a game start to the current room.
func (c *Client) StartGame() error {
	return c.send(map[string]any{"type": "startGame"})
}

// EndGame broadcasts a game end to the current room.
func (c *Client) EndGame() error {
	return c.send(map[string]any{"type": "endGame"})
}

// Close tears down the connection.
func (c *Client) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.conn == nil {
		return nil
	}
	err := c.conn.Close()
	c.conn = nil
	return err
}

func (c *Client) send(v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to marshal frame: %w", err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.conn == nil {
		return fmt.Errorf("client is not connected")
	}
	c.conn.SetWriteDeadline(time.Now().Add(writeWait))
	return c.conn.WriteMessage(websocket.TextMessage, data)
}

// readLoop decodes server frames until the connection drops, then closes the
// frame channel. Undecodable frames are skipped.
func (c *Client) readLoop(conn *websocket.Conn, frames chan Frame) {
	defer close(frames)

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			return
		}

		var frame Frame
		if err := json.Unmarshal(data, &frame); err != nil {
			continue
		}

		select {
		case frames <- frame:
		default:
			// Receiver stopped draining; drop rather than block the read loop.
		}
	}
}
