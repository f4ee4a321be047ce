package hsm

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/argon2"
)

// PINHasher hashes and verifies card PINs with Argon2id.
type PINHasher interface {
	HashPIN(pin string) (string, error)
	VerifyPIN(pin, hashedPIN string) bool
}

// Argon2Params tunes the key derivation
type Argon2Params struct {
	Time       uint32
	Memory     uint32
	Threads    uint8
	KeyLength  uint32
	SaltLength uint32
}

// DefaultArgon2Params matches the interactive PIN profile
var DefaultArgon2Params = Argon2Params{
	Time:       1,
	Memory:     64 * 1024,
	Threads:    4,
	KeyLength:  32,
	SaltLength: 16,
}

type Argon2PINHasher struct {
	params Argon2Params
}

func NewPINHasher(params Argon2Params) *Argon2PINHasher {
	if params.Time == 0 || params.Memory == 0 || params.Threads == 0 || params.KeyLength == 0 {
		params = DefaultArgon2Params
	}
	if params.SaltLength == 0 {
		params.SaltLength = DefaultArgon2Params.SaltLength
	}
	return &Argon2PINHasher{params: params}
}

// HashPIN returns base64(salt)$base64(hash)
func (h *Argon2PINHasher) HashPIN(pin string) (string, error) {
	if pin == "" {
		return "", errors.New("PIN cannot be empty")
	}

	salt := make([]byte, h.params.SaltLength)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("failed to generate salt: %w", err)
	}

	hash := h.derive(pin, salt)
	return fmt.Sprintf("%s$%s", base64.StdEncoding.EncodeToString(salt), base64.StdEncoding.EncodeToString(hash)), nil
}

// VerifyPIN compares in constant time. Malformed hashes never verify.
func (h *Argon2PINHasher) VerifyPIN(pin, hashedPIN string) bool {
	parts := strings.Split(hashedPIN, "$")
	if len(parts) != 2 {
		return false
	}

	salt, err := base64.StdEncoding.DecodeString(parts[0])
	if err != nil || len(salt) == 0 {
		return false
	}

	storedHash, err := base64.StdEncoding.DecodeString(parts[1])
	if err != nil || len(storedHash) == 0 {
		return false
	}

	inputHash := argon2.IDKey([]byte(pin), salt, h.params.Time, h.params.Memory, h.params.Threads, uint32(len(storedHash)))
	return subtle.ConstantTimeCompare(inputHash, storedHash) == 1
}

func (h *Argon2PINHasher) derive(pin string, salt []byte) []byte {
	return argon2.IDKey([]byte(pin), salt, h.params.Time, h.params.Memory, h.params.Threads, h.params.KeyLength)
}
