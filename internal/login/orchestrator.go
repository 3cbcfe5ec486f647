// Package login coordinates the social login pipeline: it dispatches the
// gateway request, tracks per-provider loading state, handles the
// redirect landing and writes the resulting session.
package login

import (
	"context"
	"sync"

	"github.com/kjunlab/authfront/internal/auth"
	"github.com/kjunlab/authfront/internal/gateway"
	"github.com/kjunlab/authfront/internal/observability/logger"
	"github.com/kjunlab/authfront/internal/session"
)

// LandingPath is where a successful login navigates to.
const LandingPath = "/dashboard"

// Requester is the gateway dependency of the orchestrator.
type Requester interface {
	RequestLogin(ctx context.Context, provider auth.Provider) (gateway.LoginResult, error)
}

// Outcome is the successful result of Login: exactly one field is set.
type Outcome struct {
	// RedirectURL: the provider completes authentication out-of-band;
	// the caller must perform a non-history-preserving navigation there.
	RedirectURL string
	// Landing: a token was issued and persisted; navigate here.
	Landing string
}

// State is a snapshot of the transient login UI state.
type State struct {
	// Loading is the per-provider in-flight flag.
	Loading map[auth.Provider]bool `json:"loading"`
	// AnyLoading is true while any provider request is in flight.
	AnyLoading bool `json:"anyLoading"`
	// Error is the last failure's user-visible message, cleared when a
	// new login starts.
	Error string `json:"error,omitempty"`
}

// Orchestrator runs the login state machine. Safe for concurrent use;
// callers are still expected to disable all provider affordances while
// any one is loading (cooperative exclusion, not enforced here).
type Orchestrator struct {
	gw    Requester
	store *session.Store

	mu      sync.Mutex
	loading map[auth.Provider]bool
	errMsg  string
}

// NewOrchestrator creates an orchestrator over the gateway client and
// session store.
func NewOrchestrator(gw Requester, store *session.Store) *Orchestrator {
	return &Orchestrator{
		gw:      gw,
		store:   store,
		loading: make(map[auth.Provider]bool),
	}
}

// Login runs one login attempt for provider.
//
// The loading flag is always reset on exit, including the redirect path,
// so a later failed attempt is never stuck loading. On failure the
// user-visible message is recorded and no navigation happens; the
// attempt is terminal but the caller may retry immediately.
func (o *Orchestrator) Login(ctx context.Context, provider auth.Provider) (*Outcome, error) {
	log := logger.From(ctx).With(
		logger.Layer("service"),
		logger.Op("Orchestrator.Login"),
		logger.Provider(provider.String()),
	)

	o.setLoading(provider, true)
	defer o.setLoading(provider, false)

	res, err := o.gw.RequestLogin(ctx, provider)
	if err != nil {
		log.Warn("login request failed", logger.Err(err))
		o.setError(err.Error())
		return nil, err
	}

	switch r := res.(type) {
	case gateway.RedirectRequired:
		log.Info("provider requires redirect")
		return &Outcome{RedirectURL: r.LoginURL}, nil

	case gateway.TokenIssued:
		if r.Token == "" {
			// success flag without a token; never proceed silently.
			ferr := &Error{Kind: KindLoginFailed, Message: msgLoginFailed}
			log.Warn("gateway success without token")
			o.setError(ferr.Message)
			return nil, ferr
		}
		if err := o.store.Save(r.Token, provider, r.User); err != nil {
			ferr := &Error{Kind: KindTokenSaveFailed, Message: msgTokenSaveFailed, cause: err}
			log.Error("session save failed", logger.Err(err))
			o.setError(ferr.Message)
			return nil, ferr
		}
		log.Info("login succeeded, session saved")
		return &Outcome{Landing: LandingPath}, nil

	default:
		ferr := &Error{Kind: KindLoginFailed, Message: msgLoginFailed}
		o.setError(ferr.Message)
		return nil, ferr
	}
}

// State returns a copy of the current per-provider loading flags and the
// last error message.
func (o *Orchestrator) State() State {
	o.mu.Lock()
	defer o.mu.Unlock()

	st := State{Loading: make(map[auth.Provider]bool, len(auth.All()))}
	for _, p := range auth.All() {
		st.Loading[p] = o.loading[p]
		if o.loading[p] {
			st.AnyLoading = true
		}
	}
	st.Error = o.errMsg
	return st
}

func (o *Orchestrator) setLoading(p auth.Provider, v bool) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.loading[p] = v
	if v {
		// a new attempt clears the previous error
		o.errMsg = ""
	}
}

func (o *Orchestrator) setError(msg string) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.errMsg = msg
}
