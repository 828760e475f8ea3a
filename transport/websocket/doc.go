// Package websocket provides the WebSocket transport for the room
// coordination server.
//
// The websocket package implements:
//   - Real-time bidirectional communication
//   - Connection registry with per-connection session state
//   - Typed JSON frame routing (join, leave, move, startGame, endGame)
//   - Room-scoped and global broadcasting with isolated failure
//   - Connection lifecycle management and keepalive
//
// Architecture:
//
// The package uses a hub-and-spoke model where a central Hub manages all
// connections. Each connection gets a read goroutine and a write goroutine;
// registration, frame handling, and broadcasting all happen on the Hub's
// single Run loop goroutine, so handlers never race. The hub is the
// only component that joins connections to rooms in the room store.
//
// Message Protocol:
//
// Frames are JSON objects discriminated by a "type" field:
//   - Incoming: {"type":"join","roomId":"abc12345"},
//     {"type":"move","position":{"x":42,"y":7}}, {"type":"leave"},
//     {"type":"startGame"}, {"type":"endGame"}
//   - Outgoing: join replies, new-player/move/player-left fan-out within a
//     room, global updateParticipants counts, and roomDeleted notices.
//
// Malformed or unknown frames are dropped with a logged diagnostic; they
// never terminate the connection or the process.
//
// Session State:
//
// A connection starts unjoined. A successful join assigns it a room and a
// player identifier; leave or disconnect clears them. Frames that need a room
// (move, startGame, endGame) are ignored while unjoined, and a second join
// without an intervening leave is ignored as a protocol violation.
//
// Delivery:
//
// Each connection has a bounded outbound buffer written by a non-blocking
// enqueue. A connection that stops consuming is dropped; the rest of the
// broadcast batch is unaffected. Within one connection, sends preserve order;
// no ordering is guaranteed across connections.
//
// Usage:
//
//	hub := websocket.NewHub(store, logger)
//	go hub.Run(ctx)
//	http.HandleFunc("/ws", hub.ServeWS)
package websocket
