// Package client implements a Go client for the room coordination protocol.
//
// The client package implements:
//   - WebSocket dialing with a bounded, fixed-delay retry loop
//   - Typed send helpers for every inbound frame the server accepts
//   - A channel of decoded frames received from the server
//
// Reconnection:
//
// The server exposes no session resumption; a reconnecting client is simply
// a new connection performing a fresh join. Connect retries the dial a
// bounded number of times with a fixed delay between attempts and stops as
// soon as the context is cancelled, mirroring the browser client's behavior
// of re-dialing once per second until the page is navigated away.
//
// Usage:
//
//	c := client.New("ws://localhost:8080/ws")
//	if err := c.Connect(ctx); err != nil {
//		log.Fatal(err)
//	}
//	defer c.Close()
//
//	c.Join("k3f9x2ab")
//	for frame := range c.Frames() {
//		// handle frame.Type
//	}
package client
