package auth

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"golang.org/x/crypto/chacha20poly1305"
	"golang.org/x/crypto/hkdf"
)

// errInvalidToken is returned for any cookie that fails to open: wrong
// length, bad encoding, or failed authentication. Callers must not
// distinguish the causes.
var errInvalidToken = errors.New("invalid session token")

// sessionCodec seals Session values into opaque cookie strings using
// XChaCha20-Poly1305. The key is HKDF-derived from the application secret
// with its own info string, so it never collides with the CSRF key.
type sessionCodec struct {
	key []byte
}

// newSessionCodec derives the sealing key from the application secret.
func newSessionCodec(secretKey string) *sessionCodec {
	key := make([]byte, chacha20poly1305.KeySize)
	kdf := hkdf.New(sha256.New, []byte(secretKey), nil, []byte("folio/session"))
	if _, err := io.ReadFull(kdf, key); err != nil {
		panic("auth: deriving session key: " + err.Error())
	}
	return &sessionCodec{key: key}
}

// Seal encrypts a session into a base64url cookie value. The random nonce
// is prepended to the ciphertext.
func (sc *sessionCodec) Seal(s *Session) (string, error) {
	payload, err := json.Marshal(s)
	if err != nil {
		return "", fmt.Errorf("marshaling session: %w", err)
	}

	aead, err := chacha20poly1305.NewX(sc.key)
	if err != nil {
		return "", fmt.Errorf("creating aead: %w", err)
	}

	nonce := make([]byte, aead.NonceSize())
	if _, err := rand.Read(nonce); err != nil {
		return "", fmt.Errorf("generating nonce: %w", err)
	}

	sealed := aead.Seal(nonce, nonce, payload, nil)
	return base64.RawURLEncoding.EncodeToString(sealed), nil
}

// Open decrypts a cookie value back into a session. Any tampering with the
// ciphertext, including a forged expiry, fails authentication here.
func (sc *sessionCodec) Open(token string) (*Session, error) {
	raw, err := base64.RawURLEncoding.DecodeString(token)
	if err != nil {
		return nil, errInvalidToken
	}

	aead, err := chacha20poly1305.NewX(sc.key)
	if err != nil {
		return nil, fmt.Errorf("creating aead: %w", err)
	}

	if len(raw) < aead.NonceSize() {
		return nil, errInvalidToken
	}

	nonce, ciphertext := raw[:aead.NonceSize()], raw[aead.NonceSize():]
	payload, err := aead.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return nil, errInvalidToken
	}

	var s Session
	if err := json.Unmarshal(payload, &s); err != nil {
		return nil, errInvalidToken
	}
	return &s, nil
}
