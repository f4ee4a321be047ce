package hsm

import (
	"crypto/rand"
	"crypto/sha256"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// GenerateTransactionID creates an opaque transaction reference
func GenerateTransactionID() string {
	id := uuid.New().String()
	timestamp := time.Now().UnixNano()
	random := make([]byte, 8)
	rand.Read(random)

	data := fmt.Sprintf("%s:%d:%x", id, timestamp, random)
	hashed := sha256.Sum256([]byte(data))

	return fmt.Sprintf("TX%x", hashed[:8])
}
