package passcode

import (
	"errors"
	"net/http"
	"testing"

	"golang.org/x/crypto/bcrypt"

	"github.com/acampos/folio/internal/apperror"
)

func assertInvalidPasscode(t *testing.T, err error) {
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
	if appErr.Message != "invalid passcode" {
		t.Errorf("expected the generic passcode message, got %q", appErr.Message)
	}
}

func TestLogin_CorrectCode(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("open sesame"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("generating hash: %v", err)
	}
	svc := NewService(string(hash))

	grant, err := svc.Login("open sesame")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if grant == "" {
		t.Fatal("expected a grant token")
	}

	// Each grant is freshly random.
	other, err := svc.Login("open sesame")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if grant == other {
		t.Error("expected distinct grant tokens per login")
	}
}

func TestLogin_WrongCode(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("open sesame"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("generating hash: %v", err)
	}
	svc := NewService(string(hash))

	_, loginErr := svc.Login("wrong")
	assertInvalidPasscode(t, loginErr)
}

func TestLogin_GateClosedWithoutHash(t *testing.T) {
	svc := NewService("")
	_, err := svc.Login("anything")
	assertInvalidPasscode(t, err)
	// Even the empty code is rejected.
	_, err = svc.Login("")
	assertInvalidPasscode(t, err)
}

func TestLogin_MalformedHashReadsAsWrongCode(t *testing.T) {
	svc := NewService("not-a-bcrypt-hash")
	_, err := svc.Login("anything")
	assertInvalidPasscode(t, err)
}
