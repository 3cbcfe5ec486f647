package auth

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	httperrors "github.com/kjunlab/authfront/internal/http/errors"
	"github.com/kjunlab/authfront/internal/http/helpers"
	"github.com/kjunlab/authfront/internal/login"
	"github.com/kjunlab/authfront/internal/observability/logger"
)

// LandingController handles the provider redirect landing.
type LandingController struct {
	landing *login.LandingHandler
}

// NewLandingController creates a new LandingController.
func NewLandingController(h *login.LandingHandler) *LandingController {
	return &LandingController{landing: h}
}

// Success handles GET /auth/{provider}/success.
//
// The provider comes from the route segment, the result from the query
// string (token, and optionally id/email/nickname). On success the
// session is persisted and the browser is sent to the dashboard.
func (c *LandingController) Success(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.From(ctx).With(logger.Layer("controller"), logger.Op("LandingController.Success"))

	seg := chi.URLParam(r, "provider")
	res, err := c.landing.Handle(ctx, seg, r.URL.Query())
	if err != nil {
		log.Warn("redirect landing failed", logger.Err(err))
		httperrors.WriteError(w, httperrors.Classify(err))
		return
	}

	helpers.NoStore(w)
	http.Redirect(w, r, res.Landing, http.StatusSeeOther)
}
