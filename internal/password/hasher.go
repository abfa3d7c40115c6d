// Package password provides argon2id password hashing and verification.
//
// Hash produces a self-describing PHC-encoded hash that embeds the algorithm
// parameters and salt, plus the salt separately for storage alongside it.
// Verify recomputes the digest from the parameters embedded in the stored
// hash and compares in constant time.
package password

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"strings"

	"golang.org/x/crypto/argon2"
)

// ErrMismatch is returned by Verify when the password does not match.
var ErrMismatch = errors.New("password: invalid password")

// ErrInvalidHash is returned by Verify when the stored hash is not a valid
// encoded argon2id hash. Callers must treat it exactly like a mismatch so the
// response shape never reveals whether the stored record was malformed.
var ErrInvalidHash = errors.New("password: invalid argon2id hash format")

// Output is the result of hashing a password. Encoded is the self-describing
// hash; Salt is the same salt base64-encoded separately for storage.
type Output struct {
	Encoded string
	Salt    string
}

// Hasher hashes passwords with argon2id.
type Hasher struct {
	time    uint32
	memory  uint32
	threads uint8
	keyLen  uint32
	saltLen int
}

// Option configures the hasher.
type Option func(*Hasher)

// WithTime sets the number of iterations (default: 1).
func WithTime(t uint32) Option {
	return func(h *Hasher) { h.time = t }
}

// WithMemory sets the memory usage in KiB (default: 64*1024 = 64MB).
func WithMemory(m uint32) Option {
	return func(h *Hasher) { h.memory = m }
}

// WithThreads sets the parallelism (default: 4).
func WithThreads(t uint8) Option {
	return func(h *Hasher) { h.threads = t }
}

// New creates an argon2id password hasher.
// Defaults follow OWASP recommendations: time=1, memory=64MB, threads=4.
func New(opts ...Option) *Hasher {
	h := &Hasher{
		time:    1,
		memory:  64 * 1024,
		threads: 4,
		keyLen:  32,
		saltLen: 16,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Hash derives an argon2id hash of the password with a fresh random salt.
// The salt is never reused between calls.
func (h *Hasher) Hash(password string) (Output, error) {
	salt, err := generateRandomBytes(h.saltLen)
	if err != nil {
		return Output{}, fmt.Errorf("password: generate salt: %w", err)
	}

	hash := argon2.IDKey([]byte(password), salt, h.time, h.memory, h.threads, h.keyLen)

	encodedSalt := base64.RawStdEncoding.EncodeToString(salt)

	// Encode as: $argon2id$v=19$m=MEMORY,t=TIME,p=THREADS$SALT$HASH
	encoded := fmt.Sprintf("$argon2id$v=%d$m=%d,t=%d,p=%d$%s$%s",
		argon2.Version,
		h.memory, h.time, h.threads,
		encodedSalt,
		base64.RawStdEncoding.EncodeToString(hash),
	)
	return Output{Encoded: encoded, Salt: encodedSalt}, nil
}

// Verify checks the password against a stored encoded hash. It returns nil on
// a match, ErrMismatch on a mismatch, and ErrInvalidHash when the stored hash
// cannot be parsed. The digest comparison is constant time.
func (h *Hasher) Verify(password, encodedHash string) error {
	parts := strings.Split(encodedHash, "$")
	if len(parts) != 6 || parts[1] != "argon2id" {
		return ErrInvalidHash
	}

	var memory, time uint32
	var threads uint8
	if _, err := fmt.Sscanf(parts[3], "m=%d,t=%d,p=%d", &memory, &time, &threads); err != nil {
		return ErrInvalidHash
	}

	salt, err := base64.RawStdEncoding.DecodeString(parts[4])
	if err != nil {
		return ErrInvalidHash
	}

	expectedHash, err := base64.RawStdEncoding.DecodeString(parts[5])
	if err != nil {
		return ErrInvalidHash
	}

	hash := argon2.IDKey([]byte(password), salt, time, memory, threads, uint32(len(expectedHash)))

	if subtle.ConstantTimeCompare(hash, expectedHash) != 1 {
		return ErrMismatch
	}
	return nil
}

// generateRandomBytes returns cryptographically secure random bytes.
func generateRandomBytes(n int) ([]byte, error) {
	b := make([]byte, n)
	if _, err := io.ReadFull(rand.Reader, b); err != nil {
		return nil, err
	}
	return b, nil
}
