package auth

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/hex"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/acampos/folio/internal/apperror"
	"github.com/acampos/folio/internal/config"
)

// devPassword is the fixed development-only password accepted when no admin
// hash is configured AND config resolved AllowDevPassword at startup. It is
// unreachable in production: config.Load never sets the flag there.
const devPassword = "test123"

// sidBytes is the number of random bytes in a session ID.
const sidBytes = 16

// Service is the session authenticator contract. Handlers and middleware
// call these methods; credential material never leaves this package.
type Service interface {
	// Login verifies the admin credentials and returns a new session plus
	// its sealed cookie value. Every failure cause (unknown username,
	// wrong password, malformed stored hash) yields the same Unauthorized
	// error.
	Login(username, password string) (*Session, string, error)

	// Validate opens a cookie value and returns the session if it is
	// intact and unexpired, nil otherwise.
	Validate(cookieValue string) *Session

	// Refresh extends the session's inactivity deadline and returns a
	// re-sealed cookie value (sliding expiration).
	Refresh(s *Session) (string, error)
}

// service implements Service with config-backed credentials and a sealed
// cookie codec. The credential store is immutable after construction.
type service struct {
	username         string
	passwordHash     string
	allowDevPassword bool
	ttl              time.Duration
	codec            *sessionCodec
}

// NewService creates the authenticator from the loaded configuration.
func NewService(cfg config.AuthConfig) Service {
	return &service{
		username:         cfg.AdminUsername,
		passwordHash:     cfg.AdminPasswordHash,
		allowDevPassword: cfg.AllowDevPassword,
		ttl:              cfg.SessionTTL,
		codec:            newSessionCodec(cfg.SecretKey),
	}
}

// Login verifies the username and password and mints a session.
func (s *service) Login(username, password string) (*Session, string, error) {
	// Evaluate both factors before deciding, so the response shape and
	// timing don't reveal which one was wrong.
	userOK := subtle.ConstantTimeCompare([]byte(username), []byte(s.username)) == 1
	passOK := s.verifyPassword(password)

	if !userOK || !passOK {
		return nil, "", apperror.NewUnauthorized("invalid username or password")
	}

	now := time.Now().UTC()
	session := &Session{
		Identity:  s.username,
		Roles:     []string{RoleAdmin},
		SID:       generateSID(),
		IssuedAt:  now,
		ExpiresAt: now.Add(s.ttl),
	}

	sealed, err := s.codec.Seal(session)
	if err != nil {
		return nil, "", apperror.NewInternal(fmt.Errorf("sealing session: %w", err))
	}

	slog.Info("admin logged in", slog.String("user", session.Identity))
	return session, sealed, nil
}

// Validate opens the cookie and checks expiry. A tampered cookie fails
// decryption regardless of its claimed expiry; an authentic but expired one
// is rejected here.
func (s *service) Validate(cookieValue string) *Session {
	session, err := s.codec.Open(cookieValue)
	if err != nil {
		return nil
	}
	if time.Now().UTC().After(session.ExpiresAt) {
		return nil
	}
	// A session with no identity or roles should be impossible; treat it
	// as invalid rather than letting an empty principal through.
	if session.Identity == "" || len(session.Roles) == 0 {
		return nil
	}
	return session
}

// Refresh pushes the inactivity deadline out by the full TTL and re-seals.
// The SID is preserved: a refresh is the same login, so CSRF pairs stay valid.
func (s *service) Refresh(session *Session) (string, error) {
	session.ExpiresAt = time.Now().UTC().Add(s.ttl)
	sealed, err := s.codec.Seal(session)
	if err != nil {
		return "", apperror.NewInternal(fmt.Errorf("resealing session: %w", err))
	}
	return sealed, nil
}

// verifyPassword checks the password against the configured bcrypt hash.
// A malformed stored hash makes bcrypt error, which reads as a plain
// verification failure -- never a server fault visible to the caller.
func (s *service) verifyPassword(password string) bool {
	if s.passwordHash != "" {
		err := bcrypt.CompareHashAndPassword([]byte(s.passwordHash), []byte(password))
		if err != nil && err != bcrypt.ErrMismatchedHashAndPassword {
			slog.Warn("admin password hash is malformed; treating as invalid credentials")
		}
		return err == nil
	}

	// Dev fallback, gated by the startup-resolved capability flag.
	if s.allowDevPassword {
		return subtle.ConstantTimeCompare([]byte(password), []byte(devPassword)) == 1
	}

	return false
}

// generateSID creates a random hex session ID.
func generateSID() string {
	b := make([]byte, sidBytes)
	if _, err := rand.Read(b); err != nil {
		// crypto/rand failure is unrecoverable process state.
		panic("auth: reading random: " + err.Error())
	}
	return hex.EncodeToString(b)
}
