package websocket

import (
	"context"
	"errors"
	"net/http"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/pokioni/roomserver/room"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// Rooms are joined by unguessable identifier, not by origin.
		return true
	},
}

// inboundFrame pairs a raw frame with the connection it arrived on.
type inboundFrame struct {
	client *Client
	data   []byte
}

// Hub is the connection registry, message router, and broadcast engine in
// one. All session and registry state is owned by the Run loop goroutine;
// connection events and inbound frames are funneled through channels, so
// handlers never race with each other. Room state lives in the store, which
// has its own lock because the HTTP room-creation path mutates it too.
type Hub struct {
	store  *room.Store
	logger *zap.SugaredLogger

	clients map[*Client]bool

	inbound    chan inboundFrame
	register   chan *Client
	unregister chan *Client

	// done is closed when Run exits so connection goroutines never block
	// sending to a hub that stopped consuming.
	done chan struct{}
}

// NewHub creates a hub over the given room store.
func NewHub(store *room.Store, logger *zap.SugaredLogger) *Hub {
	return &Hub{
		store:      store,
		logger:     logger,
		clients:    make(map[*Client]bool),
		inbound:    make(chan inboundFrame),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		done:       make(chan struct{}),
	}
}

// Run executes the hub's event loop until ctx is cancelled.
func (h *Hub) Run(ctx context.Context) {
	for {
		select {
		case client := <-h.register:
			h.registerClient(client)

		case client := <-h.unregister:
			h.unregisterClient(client)

		case frame := <-h.inbound:
			h.routeFrame(frame.client, frame.data)

		case <-ctx.Done():
			close(h.done)
			for client := range h.clients {
				client.conn.Close()
			}
			return
		}
	}
}

// ServeWS upgrades an HTTP request to a WebSocket connection and hands it to
// the hub.
func (h *Hub) ServeWS(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warnw("websocket upgrade failed", "error", err)
		return
	}

	client := &Client{
		hub:  h,
		conn: conn,
		send: make(chan []byte, sendBufferSize),
	}

	select {
	case h.register <- client:
	case <-h.done:
		conn.Close()
		return
	}

	go client.writePump()
	go client.readPump()
}

// registerClient adds a connection to the registry and announces the new
// participant count to everyone.
func (h *Hub) registerClient(client *Client) {
	h.clients[client] = true
	h.logger.Infow("client connected", "connections", len(h.clients))
	h.broadcastParticipantCount()
}

// unregisterClient removes a connection from the registry, retracting any
// room membership it held before the entry is discarded. Safe to reach twice
// for the same client (dropped for a full buffer, then again when its
// readPump exits).
func (h *Hub) unregisterClient(client *Client) {
	if !h.clients[client] {
		return
	}
	delete(h.clients, client)
	client.closed = true
	close(client.send)

	if client.roomID != "" {
		h.leaveRoom(client)
	}

	h.logger.Infow("client disconnected", "connections", len(h.clients))
	h.broadcastParticipantCount()
}

// routeFrame decodes one inbound frame and dispatches it to its handler.
// Malformed and unknown frames are dropped with a diagnostic; they never
// close the connection.
func (h *Hub) routeFrame(client *Client, data []byte) {
	// A client evicted mid-broadcast still delivers frames its read pump had
	// in flight until the transport closes; its session is gone, so they must
	// not act on the store.
	if !h.clients[client] {
		return
	}

	frame, err := decodeFrame(data)
	if err != nil {
		h.logger.Debugw("dropping malformed frame", "error", err)
		return
	}

	switch frame.Type {
	case TypeJoin:
		h.handleJoin(client, frame.RoomID)
	case TypeLeave:
		h.handleLeave(client)
	case TypeMove:
		h.handleMove(client, *frame.Position)
	case TypeStartGame, TypeEndGame:
		h.handleGameEvent(client, frame.Type)
	default:
		h.logger.Debugw("dropping frame of unknown type", "type", frame.Type)
	}
}

// handleJoin attempts to add the client to a room. A join while already
// joined is a protocol violation and is ignored; re-joining requires an
// explicit leave first.
func (h *Hub) handleJoin(client *Client, roomID string) {
	if client.roomID != "" {
		h.logger.Debugw("ignoring join from already joined client",
			"room_id", client.roomID, "player_id", client.playerID)
		return
	}

	playerID, others, err := h.store.Join(roomID, client)
	if err != nil {
		if errors.Is(err, room.ErrRoomNotFound) {
			h.sendTo(client, mustMarshal(joinReply{Type: TypeJoin, RoomID: roomID, RoomExists: false}))
		}
		return
	}

	client.roomID = roomID
	client.playerID = playerID
	h.logger.Infow("player joined room", "room_id", roomID, "player_id", playerID)

	h.sendTo(client, mustMarshal(joinReply{
		Type:       TypeJoin,
		RoomID:     roomID,
		RoomExists: true,
		PlayerID:   playerID,
	}))

	// Announce the newcomer to the existing participants, then sync the
	// newcomer with their current positions, in join order.
	h.broadcastRoom(roomID, mustMarshal(playerFrame{Type: TypeNewPlayer, ID: playerID}), client)
	for _, other := range others {
		h.sendTo(client, mustMarshal(playerFrame{Type: TypeMove, ID: other.PlayerID, Position: other.Position}))
	}
}

// handleLeave removes the client from its current room. A leave from an
// unjoined client is a no-op.
func (h *Hub) handleLeave(client *Client) {
	if client.roomID == "" {
		return
	}
	h.leaveRoom(client)
}

// handleMove stores the reported position and fans it out to the rest of the
// room. Frames from unjoined clients are ignored.
func (h *Hub) handleMove(client *Client, pos room.Position) {
	if client.roomID == "" {
		return
	}

	playerID, err := h.store.UpdatePosition(client.roomID, client, pos)
	if err != nil {
		return
	}

	h.broadcastRoom(client.roomID, mustMarshal(playerFrame{Type: TypeMove, ID: playerID, Position: pos}), client)
}

// handleGameEvent relays startGame/endGame to the whole room, sender
// included. Frames from unjoined clients are ignored.
func (h *Hub) handleGameEvent(client *Client, frameType string) {
	if client.roomID == "" {
		return
	}
	h.broadcastRoom(client.roomID, mustMarshal(eventFrame{Type: frameType}), nil)
}

// leaveRoom retracts the client's room membership, notifies the remaining
// participants, and clears the session state. When the room was emptied and
// removed, every connection hears about it so lobby pages can refresh.
func (h *Hub) leaveRoom(client *Client) {
	roomID, playerID := client.roomID, client.playerID
	client.roomID, client.playerID = "", ""

	_, emptied, err := h.store.Leave(roomID, client)
	if err != nil {
		return
	}

	h.logger.Infow("player left room", "room_id", roomID, "player_id", playerID)

	if emptied {
		h.broadcastAll(mustMarshal(roomDeletedFrame{Type: TypeRoomDeleted, RoomID: roomID}))
		return
	}
	h.broadcastRoom(roomID, mustMarshal(playerLeftFrame{Type: TypePlayerLeft, ID: playerID}), client)
}

// sendTo delivers one message to one client, best effort. A client whose
// buffer is full has stopped consuming and is dropped so it cannot stall the
// rest of a broadcast batch.
func (h *Hub) sendTo(client *Client, message []byte) {
	if client.Send(message) {
		return
	}
	if !client.closed {
		h.logger.Warnw("send buffer full, dropping client", "player_id", client.playerID)
		h.unregisterClient(client)
	}
}

// broadcastRoom delivers a message to every current participant of the room
// except exclude, in join order. Delivery failures are isolated per
// connection.
func (h *Hub) broadcastRoom(roomID string, message []byte, exclude *Client) {
	participants, ok := h.store.Participants(roomID)
	if !ok {
		return
	}
	for _, p := range participants {
		client, ok := p.Conn.(*Client)
		if !ok || client == exclude {
			continue
		}
		h.sendTo(client, message)
	}
}

// broadcastAll delivers a message to every registered connection.
func (h *Hub) broadcastAll(message []byte) {
	for client := range h.clients {
		h.sendTo(client, message)
	}
}

// broadcastParticipantCount tells every connection how many clients are
// online, on every open and close.
func (h *Hub) broadcastParticipantCount() {
	h.broadcastAll(mustMarshal(participantsFrame{
		Type:             TypeUpdateParticipants,
		ParticipantCount: len(h.clients),
	}))
}
