// Package session contains the controllers for the session-consuming
// endpoints: current session, logout and transient login state.
package session

import (
	"net/http"

	httperrors "github.com/kjunlab/authfront/internal/http/errors"
	"github.com/kjunlab/authfront/internal/http/helpers"
	"github.com/kjunlab/authfront/internal/login"
	"github.com/kjunlab/authfront/internal/observability/logger"
	"github.com/kjunlab/authfront/internal/session"
)

// Controller serves the session views.
type Controller struct {
	store        *session.Store
	orchestrator *login.Orchestrator
}

// NewController creates a new session Controller.
func NewController(store *session.Store, o *login.Orchestrator) *Controller {
	return &Controller{store: store, orchestrator: o}
}

type sessionResponse struct {
	Authenticated bool                 `json:"authenticated"`
	Provider      string               `json:"provider,omitempty"`
	ProviderName  string               `json:"providerName,omitempty"`
	User          *session.UserProfile `json:"user,omitempty"`
	Claims        map[string]any       `json:"claims,omitempty"`
}

// Get handles GET /api/session.
//
// Token presence is the sole authenticated signal: without a token the
// response carries nothing else, whatever other keys are stored.
func (c *Controller) Get(w http.ResponseWriter, r *http.Request) {
	helpers.NoStore(w)

	if !c.store.Authenticated() {
		helpers.WriteJSON(w, http.StatusOK, sessionResponse{Authenticated: false})
		return
	}

	resp := sessionResponse{
		Authenticated: true,
		User:          c.store.User(),
		Claims:        c.store.Claims(),
	}
	if p, ok := c.store.Provider(); ok {
		resp.Provider = p.String()
		resp.ProviderName = p.DisplayName()
	}
	helpers.WriteJSON(w, http.StatusOK, resp)
}

// Logout handles POST /api/logout. Idempotent: logging out an empty
// session still answers 204.
func (c *Controller) Logout(w http.ResponseWriter, r *http.Request) {
	log := logger.From(r.Context()).With(logger.Layer("controller"), logger.Op("Controller.Logout"))

	if err := c.store.Clear(); err != nil {
		log.Error("session clear failed", logger.Err(err))
		httperrors.WriteError(w, httperrors.ErrInternalServerError.WithCause(err))
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// State handles GET /api/login/state: per-provider loading flags and the
// last login error, for the login page to poll.
func (c *Controller) State(w http.ResponseWriter, r *http.Request) {
	helpers.NoStore(w)
	helpers.WriteJSON(w, http.StatusOK, c.orchestrator.State())
}
