package room

import "crypto/rand"

const (
	idAlphabet  = "abcdefghijklmnopqrstuvwxyz0123456789"
	roomIDLen   = 8
	playerIDLen = 9
)

// randomID returns n random characters from the lowercase alphanumeric
// alphabet. With 36 symbols the space is large enough that collisions are
// negligible; callers do not retry on collision.
func randomID(n int) string {
	b := make([]byte, n)
	_, _ = rand.Read(b)
	for i := range b {
		b[i] = idAlphabet[int(b[i])%len(idAlphabet)]
	}
	return string(b)
}

func newRoomID() string   { return randomID(roomIDLen) }
func newPlayerID() string { return randomID(playerIDLen) }
