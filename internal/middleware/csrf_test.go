package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/acampos/folio/internal/apperror"
)

// --- Test Helpers ---

// staticBinding returns a binding resolver that always yields b.
func staticBinding(b string) func(echo.Context) string {
	return func(echo.Context) string { return b }
}

// newCSRFContext builds an echo context for method with an optional CSRF
// cookie and header already attached.
func newCSRFContext(method, cookieValue, headerValue string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(method, "/api/admin/projects", nil)
	if cookieValue != "" {
		req.AddCookie(&http.Cookie{Name: csrfCookieName, Value: cookieValue})
	}
	if headerValue != "" {
		req.Header.Set(csrfHeaderName, headerValue)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

// runCSRF invokes the validation middleware around a handler that records
// whether it was reached.
func runCSRF(cs *CSRF, c echo.Context) (called bool, err error) {
	handler := cs.Middleware()(func(c echo.Context) error {
		called = true
		return c.NoContent(http.StatusOK)
	})
	return called, handler(c)
}

// assertCSRFRejected checks that err is the 403 CSRF failure.
func assertCSRFRejected(t *testing.T, err error) {
	t.Helper()
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	var appErr *apperror.AppError
	if !errors.As(err, &appErr) {
		t.Fatalf("expected *apperror.AppError, got %T: %v", err, err)
	}
	if appErr.Code != http.StatusForbidden {
		t.Errorf("expected status 403, got %d", appErr.Code)
	}
}

// --- Token Issue / Validate Tests ---

func TestCSRF_ValidPairPasses(t *testing.T) {
	cs := NewCSRF("test-secret-key", false, staticBinding("session-1"))

	issueCtx, rec := newCSRFContext(http.MethodGet, "", "")
	token, err := cs.IssueToken(issueCtx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if token == "" {
		t.Fatal("expected a token")
	}

	// The token must have landed in a script-readable cookie.
	cookies := rec.Result().Cookies()
	var found *http.Cookie
	for _, ck := range cookies {
		if ck.Name == csrfCookieName {
			found = ck
		}
	}
	if found == nil {
		t.Fatal("expected the XSRF-TOKEN cookie to be set")
	}
	if found.Value != token {
		t.Error("expected cookie value to match the returned token")
	}
	if found.HttpOnly {
		t.Error("expected the CSRF cookie to be script-readable")
	}

	c, _ := newCSRFContext(http.MethodPost, token, token)
	called, err := runCSRF(cs, c)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !called {
		t.Error("expected the handler to be reached")
	}
}

func TestCSRF_MissingHeader(t *testing.T) {
	cs := NewCSRF("test-secret-key", false, staticBinding("session-1"))
	token, _ := cs.mint("session-1")

	c, _ := newCSRFContext(http.MethodPost, token, "")
	called, err := runCSRF(cs, c)
	assertCSRFRejected(t, err)
	if called {
		t.Error("expected the handler to be skipped")
	}
}

func TestCSRF_MissingCookie(t *testing.T) {
	cs := NewCSRF("test-secret-key", false, staticBinding("session-1"))
	token, _ := cs.mint("session-1")

	c, _ := newCSRFContext(http.MethodPost, "", token)
	_, err := runCSRF(cs, c)
	assertCSRFRejected(t, err)
}

func TestCSRF_PairMismatch(t *testing.T) {
	cs := NewCSRF("test-secret-key", false, staticBinding("session-1"))
	a, _ := cs.mint("session-1")
	b, _ := cs.mint("session-1")

	c, _ := newCSRFContext(http.MethodPost, a, b)
	_, err := runCSRF(cs, c)
	assertCSRFRejected(t, err)
}

func TestCSRF_ForgedToken(t *testing.T) {
	cs := NewCSRF("test-secret-key", false, staticBinding("session-1"))
	forged := "00112233445566778899aabbccddeeff.bm90LWEtcmVhbC1tYWM"

	c, _ := newCSRFContext(http.MethodPost, forged, forged)
	_, err := runCSRF(cs, c)
	assertCSRFRejected(t, err)
}

// A token minted under one session stops verifying after re-login changes
// the binding, even though cookie and header still agree.
func TestCSRF_ReLoginInvalidatesOldTokens(t *testing.T) {
	binding := "session-1"
	cs := NewCSRF("test-secret-key", false, func(echo.Context) string { return binding })

	token, err := cs.mint("session-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	c, _ := newCSRFContext(http.MethodPost, token, token)
	if _, err := runCSRF(cs, c); err != nil {
		t.Fatalf("expected token to verify under its own session, got %v", err)
	}

	binding = "session-2"
	c, _ = newCSRFContext(http.MethodPost, token, token)
	_, err = runCSRF(cs, c)
	assertCSRFRejected(t, err)
}

func TestCSRF_AnonymousBinding(t *testing.T) {
	cs := NewCSRF("test-secret-key", false, staticBinding(""))

	token, err := cs.mint(anonymousBinding)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	c, _ := newCSRFContext(http.MethodPost, token, token)
	if _, err := runCSRF(cs, c); err != nil {
		t.Fatalf("expected anonymous token to verify without a session, got %v", err)
	}
}

func TestCSRF_SafeMethodsExempt(t *testing.T) {
	cs := NewCSRF("test-secret-key", false, staticBinding("session-1"))

	for _, method := range []string{http.MethodGet, http.MethodHead, http.MethodOptions} {
		c, _ := newCSRFContext(method, "", "")
		called, err := runCSRF(cs, c)
		if err != nil {
			t.Fatalf("%s: unexpected error: %v", method, err)
		}
		if !called {
			t.Errorf("%s: expected the handler to be reached without a token", method)
		}
	}
}

func TestCSRF_KeysAreIndependent(t *testing.T) {
	a := NewCSRF("secret-one", false, staticBinding("s"))
	b := NewCSRF("secret-two", false, staticBinding("s"))

	token, err := a.mint("s")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	c, _ := newCSRFContext(http.MethodPost, token, token)
	_, err = runCSRF(b, c)
	assertCSRFRejected(t, err)
}
