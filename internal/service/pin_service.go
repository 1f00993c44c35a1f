package service

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"fmt"
	"strings"

	"golang.org/x/crypto/argon2"
)

// Argon2id parameters. Tuned down from server-side credential hashing since
// PINs are verified on every interactive operation.
const (
	pinArgonTime    = 2
	pinArgonMemory  = 19 * 1024 // 19MB
	pinArgonThreads = 1
	pinArgonKeyLen  = 32
	pinArgonSaltLen = 16
)

// Argon2PINHasher implements ports.PINHasher using Argon2id.
type Argon2PINHasher struct{}

// NewArgon2PINHasher creates a new Argon2id PIN hasher.
func NewArgon2PINHasher() *Argon2PINHasher {
	return &Argon2PINHasher{}
}

// Hash generates an Argon2id hash of the PIN.
// Returns format: $argon2id$v=19$m=19456,t=2,p=1$<salt>$<hash>
func (h *Argon2PINHasher) Hash(pin string) (string, error) {
	salt := make([]byte, pinArgonSaltLen)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("generating salt: %w", err)
	}

	sum := argon2.IDKey([]byte(pin), salt, pinArgonTime, pinArgonMemory, pinArgonThreads, pinArgonKeyLen)

	return fmt.Sprintf(
		"$argon2id$v=%d$m=%d,t=%d,p=%d$%s$%s",
		argon2.Version,
		pinArgonMemory, pinArgonTime, pinArgonThreads,
		base64.RawStdEncoding.EncodeToString(salt),
		base64.RawStdEncoding.EncodeToString(sum),
	), nil
}

// Verify checks if a PIN matches the given encoded hash in constant time.
func (h *Argon2PINHasher) Verify(pin string, encoded string) (bool, error) {
	parts := strings.Split(encoded, "$")
	if len(parts) != 6 {
		return false, fmt.Errorf("invalid hash format: expected 6 parts, got %d", len(parts))
	}
	if parts[1] != "argon2id" {
		return false, fmt.Errorf("unsupported algorithm: %s", parts[1])
	}

	var version int
	if _, err := fmt.Sscanf(parts[2], "v=%d", &version); err != nil {
		return false, fmt.Errorf("parsing version: %w", err)
	}

	var memory, time uint32
	var threads uint8
	if _, err := fmt.Sscanf(parts[3], "m=%d,t=%d,p=%d", &memory, &time, &threads); err != nil {
		return false, fmt.Errorf("parsing params: %w", err)
	}

	salt, err := base64.RawStdEncoding.DecodeString(parts[4])
	if err != nil {
		return false, fmt.Errorf("decoding salt: %w", err)
	}
	sum, err := base64.RawStdEncoding.DecodeString(parts[5])
	if err != nil {
		return false, fmt.Errorf("decoding hash: %w", err)
	}

	other := argon2.IDKey([]byte(pin), salt, time, memory, threads, uint32(len(sum)))

	return subtle.ConstantTimeCompare(sum, other) == 1, nil
}
