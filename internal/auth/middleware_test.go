package auth

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/acampos/folio/internal/apperror"
	"github.com/acampos/folio/internal/config"
)

// newDevService builds a service that accepts the dev password.
func newDevService(ttl time.Duration) Service {
	return NewService(config.AuthConfig{
		SecretKey:        "test-secret-key",
		AdminUsername:    "Admin",
		AllowDevPassword: true,
		SessionTTL:       ttl,
	})
}

func newAdminContext(cookieValue string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/admin/profile", nil)
	if cookieValue != "" {
		req.AddCookie(&http.Cookie{Name: sessionCookieName, Value: cookieValue})
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

// runRequireAdmin sends one request through the middleware and reports
// whether the handler ran and what session it saw.
func runRequireAdmin(svc Service, c echo.Context) (session *Session, err error) {
	handler := RequireAdmin(svc, false, time.Hour)(func(c echo.Context) error {
		session = GetSession(c)
		return c.NoContent(http.StatusOK)
	})
	err = handler(c)
	return session, err
}

func assertStatus(t *testing.T, err error, expectedCode int) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected error with code %d, got nil", expectedCode)
	}
	var appErr *apperror.AppError
	if !errors.As(err, &appErr) {
		t.Fatalf("expected *apperror.AppError, got %T: %v", err, err)
	}
	if appErr.Code != expectedCode {
		t.Errorf("expected status %d, got %d", expectedCode, appErr.Code)
	}
}

func TestRequireAdmin_ValidSession(t *testing.T) {
	svc := newDevService(time.Hour)
	_, sealed, err := svc.Login("Admin", devPassword)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	c, rec := newAdminContext(sealed)
	session, err := runRequireAdmin(svc, c)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if session == nil {
		t.Fatal("expected the session in the request context")
	}
	if session.Identity != "Admin" {
		t.Errorf("expected identity Admin, got %q", session.Identity)
	}

	// Sliding expiration: a refreshed cookie is re-issued on the response.
	var refreshed *http.Cookie
	for _, ck := range rec.Result().Cookies() {
		if ck.Name == sessionCookieName {
			refreshed = ck
		}
	}
	if refreshed == nil {
		t.Fatal("expected the session cookie to be re-issued")
	}
	if refreshed.Value == "" || refreshed.MaxAge <= 0 {
		t.Error("expected a fresh cookie value with a positive MaxAge")
	}
	if got := svc.Validate(refreshed.Value); got == nil {
		t.Error("expected the re-issued cookie to validate")
	}
}

func TestRequireAdmin_NoCookie(t *testing.T) {
	svc := newDevService(time.Hour)
	c, _ := newAdminContext("")
	session, err := runRequireAdmin(svc, c)
	assertStatus(t, err, http.StatusUnauthorized)
	if session != nil {
		t.Error("expected no session on the context")
	}
}

func TestRequireAdmin_InvalidCookieIsCleared(t *testing.T) {
	svc := newDevService(time.Hour)
	c, rec := newAdminContext("garbage")
	_, err := runRequireAdmin(svc, c)
	assertStatus(t, err, http.StatusUnauthorized)

	var cleared *http.Cookie
	for _, ck := range rec.Result().Cookies() {
		if ck.Name == sessionCookieName {
			cleared = ck
		}
	}
	if cleared == nil {
		t.Fatal("expected a clearing Set-Cookie for the stale session")
	}
	if cleared.MaxAge != -1 {
		t.Errorf("expected MaxAge -1, got %d", cleared.MaxAge)
	}
}

func TestRequireAdmin_ExpiredSession(t *testing.T) {
	expired := newDevService(-time.Minute)
	_, sealed, err := expired.Login("Admin", devPassword)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	c, _ := newAdminContext(sealed)
	_, err = runRequireAdmin(expired, c)
	assertStatus(t, err, http.StatusUnauthorized)
}

func TestRequireAdmin_MissingAdminRole(t *testing.T) {
	svc := newDevService(time.Hour).(*service)

	sealed, err := svc.codec.Seal(&Session{
		Identity:  "guest",
		Roles:     []string{"Viewer"},
		SID:       "sid",
		IssuedAt:  time.Now().UTC(),
		ExpiresAt: time.Now().UTC().Add(time.Hour),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	c, _ := newAdminContext(sealed)
	_, err = runRequireAdmin(svc, c)
	assertStatus(t, err, http.StatusForbidden)
}

func TestSessionBinding(t *testing.T) {
	svc := newDevService(time.Hour)
	binding := SessionBinding(svc)

	c, _ := newAdminContext("")
	if got := binding(c); got != "" {
		t.Errorf("expected empty binding without a session, got %q", got)
	}

	c, _ = newAdminContext("garbage")
	if got := binding(c); got != "" {
		t.Errorf("expected empty binding for an invalid cookie, got %q", got)
	}

	session, sealed, err := svc.Login("Admin", devPassword)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	c, _ = newAdminContext(sealed)
	if got := binding(c); got != session.SID {
		t.Errorf("expected the session SID %q, got %q", session.SID, got)
	}
}
