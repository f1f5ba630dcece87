package api

import (
	"errors"
	"net/http"

	"alcyxob/fitness-dashboard/internal/service"
	"alcyxob/fitness-dashboard/internal/session"
	"alcyxob/fitness-dashboard/internal/views"

	"github.com/gin-gonic/gin"
)

// AuthHandler serves the public pages and the session lifecycle.
type AuthHandler struct {
	authService   service.AuthService
	secureCookies bool
}

// NewAuthHandler creates an AuthHandler. secureCookies marks the session cookies Secure.
func NewAuthHandler(authService service.AuthService, secureCookies bool) *AuthHandler {
	return &AuthHandler{authService: authService, secureCookies: secureCookies}
}

// Home renders the landing page.
func (h *AuthHandler) Home(c *gin.Context) {
	c.HTML(http.StatusOK, views.PageHome, newPage(c, "Fitness Dashboard"))
}

// LoginForm renders the sign-in form, or sends a signed-in user to their dashboard.
func (h *AuthHandler) LoginForm(c *gin.Context) {
	if claims, ok := getClaimsFromContext(c); ok {
		c.Redirect(http.StatusSeeOther, claims.HomePath())
		return
	}
	c.HTML(http.StatusOK, views.PageLogin, newPage(c, "Log in"))
}

// Login exchanges the submitted credentials for a session cookie.
func (h *AuthHandler) Login(c *gin.Context) {
	email, password := c.PostForm("email"), c.PostForm("password")

	res, err := h.authService.Login(c.Request.Context(), email, password)
	if err != nil {
		p := newPage(c, "Log in")
		p.Form = withoutSecrets(c.Request.PostForm)
		p.Message = service.LoginFailedMessage
		if !errors.Is(err, service.ErrLoginFailed) {
			p.Message = "An error occurred. Please try again."
		}
		c.HTML(http.StatusUnauthorized, views.PageLogin, p)
		return
	}

	session.SetCookies(c.Writer, res.Token, res.Claims.Role, h.secureCookies)
	c.Redirect(http.StatusSeeOther, res.Redirect)
}

// Logout clears the session cookies.
func (h *AuthHandler) Logout(c *gin.Context) {
	session.ClearCookies(c.Writer, h.secureCookies)
	c.Redirect(http.StatusSeeOther, "/")
}
