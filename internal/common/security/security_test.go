package security

import (
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"taskhub/internal/platform/config"
)

func TestMain(m *testing.M) {
	config.Load()
	InitJWT()
	os.Exit(m.Run())
}

func TestPasswordHashRoundTrip(t *testing.T) {
	hash, err := HashPassword("secret1")
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	if hash == "secret1" {
		t.Fatal("password stored in plaintext")
	}
	if !CheckPasswordHash("secret1", hash) {
		t.Error("correct password rejected")
	}
	if CheckPasswordHash("wrongpass", hash) {
		t.Error("wrong password accepted")
	}
}

func TestGenerateTokenCarriesUserID(t *testing.T) {
	tokenString, err := GenerateToken("user-123")
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}

	tok, err := TokenAuth.Decode(tokenString)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	got, ok := tok.Get("user_id")
	if !ok || got != "user-123" {
		t.Errorf("user_id claim = %v, want user-123", got)
	}
	if _, ok := tok.Get("role"); ok {
		t.Error("token must not carry a role claim")
	}
}

func TestSessionCookieFlags(t *testing.T) {
	w := httptest.NewRecorder()
	SetSessionCookie(w, "sometoken")

	cookies := w.Result().Cookies()
	if len(cookies) != 1 {
		t.Fatalf("cookies = %d, want 1", len(cookies))
	}
	c := cookies[0]
	if c.Name != config.AppConfig.CookieName || c.Value != "sometoken" {
		t.Errorf("cookie = %s=%s", c.Name, c.Value)
	}
	if !c.HttpOnly {
		t.Error("cookie must be HttpOnly")
	}
	if !c.Secure {
		t.Error("cookie must be Secure")
	}
	if c.SameSite != http.SameSiteNoneMode {
		t.Errorf("SameSite = %v, want None", c.SameSite)
	}
	if c.MaxAge != int(config.AppConfig.CookieMaxAge.Seconds()) {
		t.Errorf("MaxAge = %d, want %d", c.MaxAge, int(config.AppConfig.CookieMaxAge.Seconds()))
	}
}

func TestClearSessionCookie(t *testing.T) {
	w := httptest.NewRecorder()
	ClearSessionCookie(w)

	cookies := w.Result().Cookies()
	if len(cookies) != 1 {
		t.Fatalf("cookies = %d, want 1", len(cookies))
	}
	c := cookies[0]
	if c.Value != "" || c.MaxAge >= 0 {
		t.Errorf("cookie = %q maxAge = %d, want empty and expired", c.Value, c.MaxAge)
	}
}
