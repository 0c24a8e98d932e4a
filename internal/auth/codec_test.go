package auth

import (
	"encoding/base64"
	"testing"
	"time"
)

func testSession() *Session {
	now := time.Now().UTC().Truncate(time.Second)
	return &Session{
		Identity:  "Admin",
		Roles:     []string{RoleAdmin},
		SID:       "0123456789abcdef0123456789abcdef",
		IssuedAt:  now,
		ExpiresAt: now.Add(time.Hour),
	}
}

func TestCodec_SealOpenRoundTrip(t *testing.T) {
	codec := newSessionCodec("test-secret-key")
	want := testSession()

	token, err := codec.Seal(want)
	if err != nil {
		t.Fatalf("unexpected seal error: %v", err)
	}
	if token == "" {
		t.Fatal("expected non-empty token")
	}

	got, err := codec.Open(token)
	if err != nil {
		t.Fatalf("unexpected open error: %v", err)
	}
	if got.Identity != want.Identity {
		t.Errorf("expected identity %q, got %q", want.Identity, got.Identity)
	}
	if got.SID != want.SID {
		t.Errorf("expected SID %q, got %q", want.SID, got.SID)
	}
	if !got.ExpiresAt.Equal(want.ExpiresAt) {
		t.Errorf("expected expiry %v, got %v", want.ExpiresAt, got.ExpiresAt)
	}
	if !got.HasRole(RoleAdmin) {
		t.Error("expected admin role to survive the round trip")
	}
}

func TestCodec_SealIsNondeterministic(t *testing.T) {
	codec := newSessionCodec("test-secret-key")
	s := testSession()

	a, err := codec.Seal(s)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	b, err := codec.Seal(s)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if a == b {
		t.Error("expected distinct tokens for the same session (random nonce)")
	}
}

func TestCodec_OpenRejectsTampering(t *testing.T) {
	codec := newSessionCodec("test-secret-key")
	token, err := codec.Seal(testSession())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	raw, err := base64.RawURLEncoding.DecodeString(token)
	if err != nil {
		t.Fatalf("decoding token: %v", err)
	}
	// Flip one bit in the last byte (inside the auth tag).
	raw[len(raw)-1] ^= 0x01
	tampered := base64.RawURLEncoding.EncodeToString(raw)

	if _, err := codec.Open(tampered); err != errInvalidToken {
		t.Errorf("expected errInvalidToken for tampered token, got %v", err)
	}
}

func TestCodec_OpenRejectsGarbage(t *testing.T) {
	codec := newSessionCodec("test-secret-key")

	cases := []string{
		"",
		"not base64!!!",
		"aGVsbG8", // valid base64, far too short for nonce + tag
		base64.RawURLEncoding.EncodeToString(make([]byte, 10)),
	}
	for _, token := range cases {
		if _, err := codec.Open(token); err != errInvalidToken {
			t.Errorf("token %q: expected errInvalidToken, got %v", token, err)
		}
	}
}

func TestCodec_KeysAreIndependent(t *testing.T) {
	a := newSessionCodec("secret-one")
	b := newSessionCodec("secret-two")

	token, err := a.Seal(testSession())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := b.Open(token); err != errInvalidToken {
		t.Errorf("expected token sealed under one key to fail under another, got %v", err)
	}
}
