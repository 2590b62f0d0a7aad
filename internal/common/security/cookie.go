package security

import (
	"net/http"

	"taskhub/internal/platform/config"
)

// SetSessionCookie installs the signed token as a browser session cookie.
// The cookie max age intentionally exceeds the token's signed expiry; see
// the note in config.
func SetSessionCookie(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     config.AppConfig.CookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(config.AppConfig.CookieMaxAge.Seconds()),
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteNoneMode,
	})
}

// ClearSessionCookie overwrites the cookie client-side. The signed token
// itself stays valid until its encoded expiry; there is no revocation list.
func ClearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     config.AppConfig.CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteNoneMode,
	})
}
