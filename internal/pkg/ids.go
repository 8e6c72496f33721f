package pkg

import (
	"crypto/rand"
	"math/big"

	"github.com/google/uuid"
)

// roomAlphabet skips I and O so codes read unambiguously.
const roomAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ"

const roomIDLength = 4

// GenerateClientID - generates an id for a new websocket connection.
func GenerateClientID() string {
	return uuid.NewString()
}

// GenerateCardID - generates a unique card id.
func GenerateCardID() string {
	return uuid.NewString()
}

// GenerateRoomID - generates a short room code such as "KQTD".
func GenerateRoomID() string {
	code := make([]byte, roomIDLength)
	for i := range code {
		n, err := rand.Int(rand.Reader, big.NewInt(int64(len(roomAlphabet))))
		if err != nil {
			return ""
		}
		code[i] = roomAlphabet[n.Int64()]
	}

	return string(code)
}
