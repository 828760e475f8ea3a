// Package room provides the room store for the multiplayer coordination server.
//
// The room package implements:
//   - Thread-safe room storage and lookup
//   - Random room and player identifier generation
//   - Participant membership tracking in join order
//   - Durable snapshotting of the room list to storage
//
// Core Types:
//
// Store is the single owner of all Room objects; every mutation goes through
// its methods under one lock, which is the serialization boundary for
// concurrent joins, leaves, and position updates. Room owns its Participant
// entries; a Participant holds a weak transport reference (Conn) used only
// for sending.
//
// Identifiers:
//
// Room identifiers are 8 random lowercase alphanumeric characters, player
// identifiers 9, both drawn from crypto/rand. The identifier space is large
// enough that collisions are treated as practically impossible and are not
// retried.
//
// Persistence:
//
// Room creation and every participant removal (including the removal of an
// emptied room) are written to durable storage before the operation
// completes, so a restarted server reconstructs the room list from the last
// snapshot. Position updates are deliberately not persisted. A failed write
// is logged and the in-memory state stays authoritative for the process
// lifetime.
package room
