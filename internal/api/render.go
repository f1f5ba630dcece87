package api

import (
	"errors"
	"net/http"
	"net/url"
	"strconv"

	"alcyxob/fitness-dashboard/internal/gateway"
	"alcyxob/fitness-dashboard/internal/logging"
	"alcyxob/fitness-dashboard/internal/service"
	"alcyxob/fitness-dashboard/internal/views"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/csrf"
)

// newPage fills the parts of a page every template needs.
func newPage(c *gin.Context, title string) views.Page {
	p := views.Page{
		Title:     title,
		Path:      c.Request.URL.Path,
		CSRFField: csrf.TemplateField(c.Request),
	}
	if claims, ok := getClaimsFromContext(c); ok {
		p.Claims = &claims
		p.Nav = views.Nav(claims.Role, p.Path)
	}
	return p
}

// renderError logs err and shows a generic error page. Remote details never
// reach the browser.
func renderError(c *gin.Context, status int, message string, err error) {
	if err != nil {
		logging.FromContext(c.Request.Context()).Error("page failed",
			"path", c.Request.URL.Path, "status", status, "error", err)
	}
	p := newPage(c, "Error")
	p.Message = message
	c.HTML(status, views.PageError, p)
}

// renderLoadError maps a failed gateway read to an error page.
func renderLoadError(c *gin.Context, what string, err error) {
	if gateway.StatusCode(err) == http.StatusNotFound {
		renderError(c, http.StatusNotFound, what+" not found.", err)
		return
	}
	renderError(c, http.StatusBadGateway, "Could not load "+what+". Please try again.", err)
}

// applyOutcome finishes a form post: redirect on success, otherwise render the
// form again with the submitted values and messages.
func applyOutcome(c *gin.Context, out service.Outcome, formPage string, p views.Page) {
	switch out.Kind {
	case service.OutcomeNavigate:
		c.Redirect(http.StatusSeeOther, out.Redirect)
		return
	case service.OutcomeInvalid:
		p.Errors = out.Errors
		p.Message = out.Message
		p.Form = withoutSecrets(c.Request.PostForm)
		c.HTML(http.StatusUnprocessableEntity, formPage, p)
	default:
		p.Message = out.Message
		p.Form = withoutSecrets(c.Request.PostForm)
		c.HTML(http.StatusBadGateway, formPage, p)
	}
}

func withoutSecrets(form url.Values) url.Values {
	out := make(url.Values, len(form))
	for k, v := range form {
		if k == "password" {
			continue
		}
		out[k] = v
	}
	return out
}

// queryID reads a positive integer query parameter.
func queryID(c *gin.Context, name string) (int, error) {
	raw := c.Query(name)
	id, err := strconv.Atoi(raw)
	if err != nil || id <= 0 {
		return 0, errors.New("invalid " + name + ": " + strconv.Quote(raw))
	}
	return id, nil
}
