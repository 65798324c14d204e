package pkg

import (
	"crypto/rand"
	"math/big"
	"strings"

	"github.com/google/uuid"
)

// roomCodeAlphabet is URL-safe and upper case so codes survive normalization.
const roomCodeAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

const DefaultRoomCodeLength = 6

// GenerateRoomCode - generates a random short room code of the given length.
func GenerateRoomCode(length int) string {
	if length <= 0 {
		length = DefaultRoomCodeLength
	}

	limit := big.NewInt(int64(len(roomCodeAlphabet)))

	var builder strings.Builder
	builder.Grow(length)

	for i := 0; i < length; i++ {
		n, err := rand.Int(rand.Reader, limit)
		if err != nil {
			// crypto/rand does not fail on supported platforms
			panic(err)
		}

		builder.WriteByte(roomCodeAlphabet[n.Int64()])
	}

	return builder.String()
}

// NormalizeRoomCode - trims and upper-cases a client supplied room code.
func NormalizeRoomCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// GenerateParticipantID - generates the identity of a new connection.
func GenerateParticipantID() string {
	return uuid.NewString()
}
