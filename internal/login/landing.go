package login

import (
	"context"
	"net/url"

	"github.com/kjunlab/authfront/internal/auth"
	"github.com/kjunlab/authfront/internal/observability/logger"
	"github.com/kjunlab/authfront/internal/session"
)

// LandingHandler turns the query string of a provider redirect landing
// into a persisted session. Pure with respect to its inputs; its single
// side effect is the session store write.
type LandingHandler struct {
	store *session.Store
}

// NewLandingHandler creates a landing handler over the session store.
func NewLandingHandler(store *session.Store) *LandingHandler {
	return &LandingHandler{store: store}
}

// LandingResult is the successful outcome of a redirect landing.
type LandingResult struct {
	Provider auth.Provider
	Landing  string
}

// Handle processes a redirect landing for the raw provider route segment
// and the landing URL's query parameters.
//
// The provider segment is validated against the closed provider set
// before anything is stored. A missing token parameter fails with
// KindTokenNotReceived and performs zero store writes.
func (h *LandingHandler) Handle(ctx context.Context, providerSeg string, query url.Values) (*LandingResult, error) {
	log := logger.From(ctx).With(logger.Layer("service"), logger.Op("LandingHandler.Handle"))

	provider, err := auth.Parse(providerSeg)
	if err != nil {
		log.Warn("redirect landing with unknown provider", logger.String("segment", providerSeg))
		return nil, &Error{Kind: KindUnknownProvider, Message: msgInvalidRequest, cause: err}
	}
	log = log.With(logger.Provider(provider.String()))

	token := query.Get("token")
	if token == "" {
		log.Warn("redirect landing without token")
		return nil, &Error{Kind: KindTokenNotReceived, Message: msgTokenNotReceived}
	}

	// Partial profiles are allowed; only present parameters are kept.
	user := &session.UserProfile{
		ID:       query.Get("id"),
		Email:    query.Get("email"),
		Nickname: query.Get("nickname"),
	}

	if err := h.store.Save(token, provider, user); err != nil {
		log.Error("session save failed", logger.Err(err))
		return nil, &Error{Kind: KindTokenSaveFailed, Message: msgTokenSaveFailed, cause: err}
	}

	log.Info("redirect landing persisted", logger.Bool("has_profile", !user.Empty()))
	return &LandingResult{Provider: provider, Landing: LandingPath}, nil
}
