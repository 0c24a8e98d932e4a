// Package passcode implements the shared-secret gate for private case
// studies. It is deliberately weaker than the admin authenticator: the
// grant cookie is a capability token with no identity, and holding it
// grants nothing on admin routes (and vice versa).
package passcode

import (
	"crypto/rand"
	"encoding/hex"
	"log/slog"

	"golang.org/x/crypto/bcrypt"

	"github.com/acampos/folio/internal/apperror"
)

// grantBytes is the number of random bytes in a grant token.
const grantBytes = 16

// Service verifies the shared passcode and mints grant tokens.
type Service interface {
	// Login verifies the code against the configured bcrypt hash and
	// returns an opaque grant token. No hash configured means the gate
	// never opens.
	Login(code string) (string, error)
}

// service implements Service against the startup-loaded hash.
type service struct {
	passcodeHash string
}

// NewService creates the passcode gate from the configured hash. An empty
// hash is allowed; the gate simply rejects everything.
func NewService(passcodeHash string) Service {
	if passcodeHash == "" {
		slog.Info("no passcode hash configured; private content gate is closed")
	}
	return &service{passcodeHash: passcodeHash}
}

// Login verifies the code. Absent hash, malformed hash, and wrong code are
// indistinguishable to the caller.
func (s *service) Login(code string) (string, error) {
	if s.passcodeHash == "" {
		return "", apperror.NewUnauthorized("invalid passcode")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(s.passcodeHash), []byte(code)); err != nil {
		if err != bcrypt.ErrMismatchedHashAndPassword {
			slog.Warn("passcode hash is malformed; treating as invalid passcode")
		}
		return "", apperror.NewUnauthorized("invalid passcode")
	}

	return generateGrant(), nil
}

// generateGrant creates a random hex grant token. The token carries no
// meaning server-side; cookie presence is the whole check.
func generateGrant() string {
	b := make([]byte, grantBytes)
	if _, err := rand.Read(b); err != nil {
		panic("passcode: reading random: " + err.Error())
	}
	return hex.EncodeToString(b)
}
