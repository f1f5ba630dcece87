package session

import (
	"net/http"
	"time"

	"alcyxob/fitness-dashboard/internal/domain"
)

// Lifetime of both session cookies.
const Lifetime = 24 * time.Hour

// SetCookies stores a freshly issued token. The role cookie is a readable copy
// for client-side UI; it is never used for authorization.
func SetCookies(w http.ResponseWriter, token string, role domain.Role, secure bool) {
	http.SetCookie(w, &http.Cookie{
		Name:     TokenCookie,
		Value:    token,
		Path:     "/",
		MaxAge:   int(Lifetime.Seconds()),
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	})
	http.SetCookie(w, &http.Cookie{
		Name:     RoleCookie,
		Value:    string(role),
		Path:     "/",
		MaxAge:   int(Lifetime.Seconds()),
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	})
}

// ClearCookies ends the session in the browser.
func ClearCookies(w http.ResponseWriter, secure bool) {
	for _, name := range []string{TokenCookie, RoleCookie} {
		http.SetCookie(w, &http.Cookie{
			Name:     name,
			Value:    "",
			Path:     "/",
			MaxAge:   -1,
			HttpOnly: name == TokenCookie,
			Secure:   secure,
			SameSite: http.SameSiteLaxMode,
		})
	}
}
