// Package auth contains the controllers for the login pipeline: the
// provider login dispatch and the redirect landing.
package auth

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	providers "github.com/kjunlab/authfront/internal/auth"
	httpx "github.com/kjunlab/authfront/internal/http"
	httperrors "github.com/kjunlab/authfront/internal/http/errors"
	"github.com/kjunlab/authfront/internal/http/helpers"
	"github.com/kjunlab/authfront/internal/login"
	"github.com/kjunlab/authfront/internal/observability/logger"
)

// LoginController handles the provider login dispatch.
type LoginController struct {
	orchestrator *login.Orchestrator
}

// NewLoginController creates a new LoginController.
func NewLoginController(o *login.Orchestrator) *LoginController {
	return &LoginController{orchestrator: o}
}

// Login handles POST /api/auth/{provider}/login.
//
// RedirectRequired answers 303 to the provider's login URL with
// Cache-Control: no-store, so the login request is never re-submittable
// from history. TokenIssued persists the session and answers 303 to the
// dashboard. Classified failures become a JSON error; no navigation.
func (c *LoginController) Login(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.From(ctx).With(logger.Layer("controller"), logger.Op("LoginController.Login"))

	seg := chi.URLParam(r, "provider")
	provider, err := providers.Parse(seg)
	if err != nil {
		log.Warn("login with unknown provider", logger.String("segment", seg))
		httpx.ObserveLogin("unknown", "error")
		httperrors.WriteError(w, httperrors.ErrBadRequest.WithDetail("unknown provider").WithCause(err))
		return
	}

	out, err := c.orchestrator.Login(ctx, provider)
	if err != nil {
		httpx.ObserveLogin(provider.String(), "error")
		httperrors.WriteError(w, httperrors.Classify(err))
		return
	}

	helpers.NoStore(w)
	if out.RedirectURL != "" {
		httpx.ObserveLogin(provider.String(), "redirect")
		http.Redirect(w, r, out.RedirectURL, http.StatusSeeOther)
		return
	}

	httpx.ObserveLogin(provider.String(), "token")
	http.Redirect(w, r, out.Landing, http.StatusSeeOther)
}
