// Package api provides the HTTP surface of the room coordination server.
//
// The api package implements:
//   - Room creation endpoint
//   - Room list endpoint
//   - Config file passthrough for browser clients
//   - WebSocket upgrade handling
//   - Static file serving
//   - Health check
//
// Endpoints:
//
// Room Management:
//   - POST /create-room - Allocate a new empty room, returns {success, roomId}
//   - GET /rooms - List current rooms in creation order
//
// Client Bootstrap:
//   - GET /config.json - Raw server config (clients read the WS address here)
//   - GET /ws - WebSocket upgrade; all gameplay traffic flows over this
//   - GET / - Static assets from the configured static dir
//
// Operations:
//   - GET /healthz - Liveness check
//
// Request/Response Format:
//
// All JSON endpoints return JSON. Room creation takes no body:
//
//	POST /create-room
//	=> {"success": true, "roomId": "k3f9x2ab"}
//
// Error Handling:
//
// Errors are returned as plain HTTP status codes; the coordination protocol
// itself reports errors in-band over the WebSocket (for example a join
// against an unknown room answers roomExists:false rather than failing the
// HTTP layer).
package api
