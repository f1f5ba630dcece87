package api

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"alcyxob/fitness-dashboard/internal/access"
	"alcyxob/fitness-dashboard/internal/domain"
	"alcyxob/fitness-dashboard/internal/logging"
	"alcyxob/fitness-dashboard/internal/service"
	"alcyxob/fitness-dashboard/internal/session"

	"github.com/getsentry/sentry-go"
	sentrygin "github.com/getsentry/sentry-go/gin"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/csrf"
)

// Constants for context keys
const (
	ContextClaimsKey    = "claims"
	ContextTokenKey     = "token"
	ContextRequestIDKey = "requestID"
)

const requestIDHeader = "X-Request-ID"

// Gate reads the session cookie and applies the access policy to every
// request. The role comes from the decoded token only; a token that cannot be
// decoded counts as no session. Decoded claims are stored in the gin context
// for handlers.
func Gate() gin.HandlerFunc {
	return func(c *gin.Context) {
		var sess *access.Session
		if token, err := c.Cookie(session.TokenCookie); err == nil && token != "" {
			claims, err := session.Decode(token)
			if err != nil {
				logging.FromContext(c.Request.Context()).Debug("ignoring unreadable session token", "error", err)
			} else {
				sess = &access.Session{Token: token, Role: claims.Role}
				c.Set(ContextClaimsKey, claims)
				c.Set(ContextTokenKey, token)
				if hub := sentrygin.GetHubFromContext(c); hub != nil {
					hub.Scope().SetUser(sentry.User{ID: strconv.Itoa(claims.UserID)})
					hub.Scope().SetTag("role", string(claims.Role))
				}
			}
		}

		decision := access.Authorize(c.Request.URL.Path, sess)
		if !decision.Allowed() {
			c.Redirect(http.StatusSeeOther, decision.Redirect)
			c.Abort()
			return
		}
		c.Next()
	}
}

// getClaimsFromContext returns the claims Gate stored, if the request carried a valid token.
func getClaimsFromContext(c *gin.Context) (domain.Claims, bool) {
	raw, exists := c.Get(ContextClaimsKey)
	if !exists {
		return domain.Claims{}, false
	}
	claims, ok := raw.(domain.Claims)
	return claims, ok
}

// credentials is what the form pipeline needs to act on behalf of the caller.
func credentials(c *gin.Context) service.Credentials {
	claims, _ := getClaimsFromContext(c)
	return service.Credentials{Token: c.GetString(ContextTokenKey), Claims: claims}
}

// RequestID tags each request with an id, reusing the caller's X-Request-ID when present.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(requestIDHeader)
		if id == "" || len(id) > 128 {
			id = uuid.NewString()
		}
		c.Set(ContextRequestIDKey, id)
		c.Header(requestIDHeader, id)
		c.Request = c.Request.WithContext(logging.WithRequestID(c.Request.Context(), id))
		c.Next()
	}
}

// AccessLog writes one structured line per request.
func AccessLog() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		status := c.Writer.Status()
		level := slog.LevelInfo
		switch {
		case status >= 500:
			level = slog.LevelError
		case status >= 400:
			level = slog.LevelWarn
		}
		logging.FromContext(c.Request.Context()).Log(c.Request.Context(), level, "http_request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", status,
			"duration_ms", time.Since(start).Milliseconds(),
			"client_ip", c.ClientIP(),
		)
	}
}

// SecurityHeaders adds OWASP recommended headers.
func SecurityHeaders() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Content-Security-Policy", "default-src 'self'; style-src 'self' 'unsafe-inline'; form-action 'self'; frame-ancestors 'none'")
		c.Header("X-Frame-Options", "DENY")
		c.Header("X-Content-Type-Options", "nosniff")
		c.Header("Referrer-Policy", "strict-origin-when-cross-origin")
		c.Next()
	}
}

// NoStore keeps browsers and proxies from caching dashboard pages, so every
// view reflects the remote API as of the request.
func NoStore() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Cache-Control", "no-store")
		c.Next()
	}
}

// CSRF protects every form post of handler. authKey must be 32 bytes. Over
// plain HTTP the request is marked as such so the origin check does not
// demand HTTPS.
func CSRF(authKey []byte, secure bool, trustedOrigins []string) func(http.Handler) http.Handler {
	protect := csrf.Protect(
		authKey,
		csrf.Secure(secure),
		csrf.Path("/"),
		csrf.TrustedOrigins(trustedOrigins),
	)
	return func(next http.Handler) http.Handler {
		protected := protect(next)
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !secure {
				r = csrf.PlaintextHTTPRequest(r)
			}
			protected.ServeHTTP(w, r)
		})
	}
}
