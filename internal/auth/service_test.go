package auth

import (
	"errors"
	"net/http"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/acampos/folio/internal/apperror"
	"github.com/acampos/folio/internal/config"
)

// --- Test Helpers ---

// newTestService builds a service with a bcrypt hash for the given password.
// MinCost keeps the tests fast; cost does not change verification semantics.
func newTestService(t *testing.T, password string) Service {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("generating hash: %v", err)
	}
	return NewService(config.AuthConfig{
		SecretKey:         "test-secret-key",
		AdminUsername:     "Admin",
		AdminPasswordHash: string(hash),
		SessionTTL:        time.Hour,
	})
}

// assertUnauthorized checks that err is the generic credentials failure.
func assertUnauthorized(t *testing.T, err error) {
	t.Helper()
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	var appErr *apperror.AppError
	if !errors.As(err, &appErr) {
		t.Fatalf("expected *apperror.AppError, got %T: %v", err, err)
	}
	if appErr.Code != http.StatusUnauthorized {
		t.Errorf("expected status 401, got %d", appErr.Code)
	}
	if appErr.Message != "invalid username or password" {
		t.Errorf("expected the generic credentials message, got %q", appErr.Message)
	}
}

// --- Login Tests ---

func TestLogin_Success(t *testing.T) {
	svc := newTestService(t, "correct horse battery staple")

	session, sealed, err := svc.Login("Admin", "correct horse battery staple")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if session == nil {
		t.Fatal("expected session, got nil")
	}
	if sealed == "" {
		t.Fatal("expected sealed cookie value")
	}
	if session.Identity != "Admin" {
		t.Errorf("expected identity Admin, got %q", session.Identity)
	}
	if !session.HasRole(RoleAdmin) {
		t.Error("expected session to carry the admin role")
	}
	if session.SID == "" {
		t.Error("expected a session ID")
	}
	if !session.ExpiresAt.After(time.Now().UTC()) {
		t.Error("expected expiry in the future")
	}
}

func TestLogin_WrongPassword(t *testing.T) {
	svc := newTestService(t, "correct horse battery staple")
	_, _, err := svc.Login("Admin", "wrong")
	assertUnauthorized(t, err)
}

func TestLogin_WrongUsername(t *testing.T) {
	svc := newTestService(t, "correct horse battery staple")
	_, _, err := svc.Login("admin", "correct horse battery staple")
	assertUnauthorized(t, err)
}

func TestLogin_FailuresAreIndistinguishable(t *testing.T) {
	svc := newTestService(t, "correct horse battery staple")

	_, _, errUser := svc.Login("nobody", "correct horse battery staple")
	_, _, errPass := svc.Login("Admin", "wrong")
	_, _, errBoth := svc.Login("nobody", "wrong")

	for _, err := range []error{errUser, errPass, errBoth} {
		assertUnauthorized(t, err)
	}
	if errUser.Error() != errPass.Error() || errPass.Error() != errBoth.Error() {
		t.Error("expected identical errors regardless of which factor failed")
	}
}

func TestLogin_MalformedStoredHash(t *testing.T) {
	svc := NewService(config.AuthConfig{
		SecretKey:         "test-secret-key",
		AdminUsername:     "Admin",
		AdminPasswordHash: "not-a-bcrypt-hash",
		SessionTTL:        time.Hour,
	})
	_, _, err := svc.Login("Admin", "anything")
	assertUnauthorized(t, err)
}

func TestLogin_UniqueSIDPerLogin(t *testing.T) {
	svc := newTestService(t, "pw")

	a, _, err := svc.Login("Admin", "pw")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	b, _, err := svc.Login("Admin", "pw")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if a.SID == b.SID {
		t.Error("expected a fresh SID per login")
	}
}

// --- Dev Password Tests ---

func TestLogin_DevPasswordWhenAllowed(t *testing.T) {
	svc := NewService(config.AuthConfig{
		SecretKey:        "test-secret-key",
		AdminUsername:    "Admin",
		AllowDevPassword: true,
		SessionTTL:       time.Hour,
	})

	if _, _, err := svc.Login("Admin", devPassword); err != nil {
		t.Fatalf("expected dev password to work when allowed, got %v", err)
	}
	_, _, err := svc.Login("Admin", "test1234")
	assertUnauthorized(t, err)
}

func TestLogin_DevPasswordDeniedByDefault(t *testing.T) {
	// No hash and no dev flag: nothing can log in.
	svc := NewService(config.AuthConfig{
		SecretKey:     "test-secret-key",
		AdminUsername: "Admin",
		SessionTTL:    time.Hour,
	})
	_, _, err := svc.Login("Admin", devPassword)
	assertUnauthorized(t, err)
}

func TestLogin_DevPasswordIgnoredWhenHashConfigured(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("real-password"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("generating hash: %v", err)
	}
	svc := NewService(config.AuthConfig{
		SecretKey:         "test-secret-key",
		AdminUsername:     "Admin",
		AdminPasswordHash: string(hash),
		AllowDevPassword:  true, // Must be a no-op once a hash exists.
		SessionTTL:        time.Hour,
	})

	_, _, loginErr := svc.Login("Admin", devPassword)
	assertUnauthorized(t, loginErr)
	if _, _, err := svc.Login("Admin", "real-password"); err != nil {
		t.Fatalf("expected configured hash to win, got %v", err)
	}
}

// --- Validate Tests ---

func TestValidate_AcceptsFreshSession(t *testing.T) {
	svc := newTestService(t, "pw")
	session, sealed, err := svc.Login("Admin", "pw")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got := svc.Validate(sealed)
	if got == nil {
		t.Fatal("expected session, got nil")
	}
	if got.SID != session.SID {
		t.Errorf("expected SID %q, got %q", session.SID, got.SID)
	}
}

func TestValidate_RejectsExpired(t *testing.T) {
	svc := NewService(config.AuthConfig{
		SecretKey:        "test-secret-key",
		AdminUsername:    "Admin",
		AllowDevPassword: true,
		SessionTTL:       -time.Minute, // Already expired when minted.
	})
	_, sealed, err := svc.Login("Admin", devPassword)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got := svc.Validate(sealed); got != nil {
		t.Error("expected expired session to be rejected")
	}
}

func TestValidate_RejectsTampered(t *testing.T) {
	svc := newTestService(t, "pw")
	_, sealed, err := svc.Login("Admin", "pw")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got := svc.Validate(sealed[:len(sealed)-2] + "xx"); got != nil {
		t.Error("expected tampered cookie to be rejected")
	}
	if got := svc.Validate("garbage"); got != nil {
		t.Error("expected garbage cookie to be rejected")
	}
}

func TestValidate_RejectsEmptyPrincipal(t *testing.T) {
	svc := newTestService(t, "pw").(*service)

	sealed, err := svc.codec.Seal(&Session{
		ExpiresAt: time.Now().UTC().Add(time.Hour),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := svc.Validate(sealed); got != nil {
		t.Error("expected session without identity or roles to be rejected")
	}
}

// --- Refresh Tests ---

func TestRefresh_ExtendsDeadlinePreservesSID(t *testing.T) {
	svc := newTestService(t, "pw")
	session, _, err := svc.Login("Admin", "pw")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	oldSID := session.SID
	oldExpiry := session.ExpiresAt

	time.Sleep(10 * time.Millisecond)
	resealed, err := svc.Refresh(session)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got := svc.Validate(resealed)
	if got == nil {
		t.Fatal("expected refreshed cookie to validate")
	}
	if got.SID != oldSID {
		t.Error("expected refresh to preserve the SID")
	}
	if !got.ExpiresAt.After(oldExpiry) {
		t.Error("expected refresh to push the deadline out")
	}
}
