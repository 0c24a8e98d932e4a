package middleware

import (
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"
	"encoding/hex"
	"io"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"golang.org/x/crypto/hkdf"

	"github.com/acampos/folio/internal/apperror"
)

// csrfNonceLength is the number of random bytes in a CSRF token nonce.
const csrfNonceLength = 16

// csrfCookieName is the script-readable cookie the SPA reads the token from.
const csrfCookieName = "XSRF-TOKEN"

// csrfHeaderName is the header the SPA echoes the token back in.
const csrfHeaderName = "X-CSRF-TOKEN"

// anonymousBinding is the token binding used when no admin session exists
// (e.g. tokens issued after a passcode login).
const anonymousBinding = "anonymous"

// CSRF implements the double-submit cookie pattern with a keyed twist: the
// token is nonce.mac where mac = HMAC-SHA256(key, nonce|binding) and the
// binding is the current session's ID. A third-party origin can make the
// browser send the cookie but cannot read it to populate the header, and a
// captured token stops verifying as soon as the session binding changes
// (re-login), so stale pairs from a previous session are rejected.
type CSRF struct {
	key    []byte
	secure bool

	// binding resolves the current request's session binding. Wired at
	// startup to peek at the auth cookie; returns "" for anonymous
	// requests. A callback keeps this package free of auth imports.
	binding func(echo.Context) string
}

// NewCSRF creates the CSRF issuer/validator. The HMAC key is derived from
// the application secret so the session-sealing key and the CSRF key never
// coincide.
func NewCSRF(secretKey string, secure bool, binding func(echo.Context) string) *CSRF {
	key := make([]byte, 32)
	kdf := hkdf.New(sha256.New, []byte(secretKey), nil, []byte("folio/csrf"))
	if _, err := io.ReadFull(kdf, key); err != nil {
		// HKDF over SHA-256 cannot fail for a 32-byte read.
		panic("csrf: deriving key: " + err.Error())
	}
	return &CSRF{key: key, secure: secure, binding: binding}
}

// IssueToken mints a fresh token bound to the current request's session
// context and sets it in the script-readable XSRF-TOKEN cookie. Called after
// every authentication success and on privileged GETs the SPA uses before
// mutations (e.g. /api/admin/auth/me).
func (cs *CSRF) IssueToken(c echo.Context) (string, error) {
	token, err := cs.mint(cs.currentBinding(c))
	if err != nil {
		return "", apperror.NewInternal(err)
	}

	c.SetCookie(&http.Cookie{
		Name:     csrfCookieName,
		Value:    token,
		Path:     "/",
		HttpOnly: false, // The SPA must read it to echo it as a header.
		Secure:   cs.secure,
		SameSite: http.SameSiteLaxMode,
	})

	return token, nil
}

// Middleware returns the validation middleware for state-changing requests.
// GET/HEAD/OPTIONS pass through. Everything else must present the token in
// both the cookie and the header, the two must match, and the MAC must
// verify against the current session binding.
func (cs *CSRF) Middleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if isSafeMethod(c.Request().Method) {
				return next(c)
			}

			headerToken := c.Request().Header.Get(csrfHeaderName)
			if headerToken == "" {
				return apperror.NewCSRFRejected("missing CSRF token header")
			}

			cookie, err := c.Request().Cookie(csrfCookieName)
			if err != nil || cookie.Value == "" {
				return apperror.NewCSRFRejected("missing CSRF token cookie")
			}

			// Double submit: the header must carry the cookie's value.
			// Constant-time compare to avoid a timing side channel.
			if subtle.ConstantTimeCompare([]byte(headerToken), []byte(cookie.Value)) != 1 {
				return apperror.NewCSRFRejected("CSRF token mismatch")
			}

			// Keyed check: the MAC must be derivable from the cookie value
			// for the CURRENT binding, not merely string-equal to whatever
			// pair the client cached under a previous session.
			if !cs.verify(headerToken, cs.currentBinding(c)) {
				return apperror.NewCSRFRejected("invalid CSRF token")
			}

			return next(c)
		}
	}
}

// currentBinding resolves the binding for the request, falling back to the
// anonymous binding when no session is present.
func (cs *CSRF) currentBinding(c echo.Context) string {
	if cs.binding != nil {
		if b := cs.binding(c); b != "" {
			return b
		}
	}
	return anonymousBinding
}

// mint creates a token for the given binding: hex(nonce) "." base64(mac).
func (cs *CSRF) mint(binding string) (string, error) {
	nonce := make([]byte, csrfNonceLength)
	if _, err := rand.Read(nonce); err != nil {
		return "", err
	}
	nonceHex := hex.EncodeToString(nonce)
	return nonceHex + "." + cs.mac(nonceHex, binding), nil
}

// verify checks that token's MAC matches the one derivable from its nonce
// under the given binding.
func (cs *CSRF) verify(token, binding string) bool {
	nonceHex, gotMAC, ok := strings.Cut(token, ".")
	if !ok || nonceHex == "" || gotMAC == "" {
		return false
	}
	want, err := base64.RawURLEncoding.DecodeString(gotMAC)
	if err != nil {
		return false
	}
	computed, err := base64.RawURLEncoding.DecodeString(cs.mac(nonceHex, binding))
	if err != nil {
		return false
	}
	return hmac.Equal(want, computed)
}

// mac computes HMAC-SHA256(key, nonce|binding), base64url-encoded.
func (cs *CSRF) mac(nonceHex, binding string) string {
	h := hmac.New(sha256.New, cs.key)
	h.Write([]byte(nonceHex))
	h.Write([]byte("|"))
	h.Write([]byte(binding))
	return base64.RawURLEncoding.EncodeToString(h.Sum(nil))
}

// isSafeMethod returns true for HTTP methods that should not change state.
func isSafeMethod(method string) bool {
	return method == http.MethodGet ||
		method == http.MethodHead ||
		method == http.MethodOptions
}
