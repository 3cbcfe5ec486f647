// Package session persists the result of a social login in a local
// key/value store and reads it back for the authenticated views.
//
// The four storage keys are a wire contract with the browser front-end
// and must not change.
package session

import (
	"encoding/json"
	"errors"

	"github.com/kjunlab/authfront/internal/auth"
	"github.com/kjunlab/authfront/internal/kv"
	"github.com/kjunlab/authfront/internal/observability/logger"
)

// Storage keys. Contract with the browser front-end; keep verbatim.
const (
	KeyAccessToken   = "access_token"
	KeyRefreshToken  = "refresh_token"
	KeyUserInfo      = "user_info"
	KeyLoginProvider = "login_provider"
)

// UserProfile is the optional display-only attribute bag attached to a
// session. All fields may be empty.
type UserProfile struct {
	ID       string `json:"id,omitempty"`
	Email    string `json:"email,omitempty"`
	Nickname string `json:"nickname,omitempty"`
}

// Empty reports whether no sub-field is set.
func (u *UserProfile) Empty() bool {
	return u == nil || (u.ID == "" && u.Email == "" && u.Nickname == "")
}

// Store wraps a kv.Store with typed session operations.
type Store struct {
	kv kv.Store
}

// New creates a session store over the given persistence backend.
func New(backend kv.Store) *Store {
	return &Store{kv: backend}
}

// Save persists a login result: token and provider unconditionally, the
// user profile only when at least one sub-field is present, so an absent
// profile stays distinguishable from an all-empty one. The token is not
// validated; a prior session is overwritten, never merged.
func (s *Store) Save(token string, provider auth.Provider, user *UserProfile) error {
	if err := s.kv.Set(KeyAccessToken, []byte(token)); err != nil {
		return err
	}
	if err := s.kv.Set(KeyLoginProvider, []byte(provider)); err != nil {
		return err
	}
	if !user.Empty() {
		b, err := json.Marshal(user)
		if err != nil {
			return err
		}
		if err := s.kv.Set(KeyUserInfo, b); err != nil {
			return err
		}
	}
	return nil
}

// SaveTokens is Save plus the refresh token. No read path consumes the
// refresh token yet; the key is kept for contract parity.
func (s *Store) SaveTokens(access, refresh string, provider auth.Provider, user *UserProfile) error {
	if err := s.Save(access, provider, user); err != nil {
		return err
	}
	if refresh == "" {
		return nil
	}
	return s.kv.Set(KeyRefreshToken, []byte(refresh))
}

// Token returns the stored access token. Token presence is the sole
// authenticated signal.
func (s *Store) Token() (string, bool) {
	b, ok := s.kv.Get(KeyAccessToken)
	if !ok || len(b) == 0 {
		return "", false
	}
	return string(b), true
}

// Authenticated reports whether an access token is present.
func (s *Store) Authenticated() bool {
	_, ok := s.Token()
	return ok
}

// Provider returns the stored login provider, validated against the
// closed provider set. A stored value outside the set (external write,
// corruption) is treated as unauthenticated and logged, never surfaced.
func (s *Store) Provider() (auth.Provider, bool) {
	b, ok := s.kv.Get(KeyLoginProvider)
	if !ok {
		return "", false
	}
	p, err := auth.Parse(string(b))
	if err != nil {
		logger.L().Warn("stored provider is not a known value, ignoring",
			logger.Component("session"),
			logger.String("stored", string(b)),
		)
		return "", false
	}
	return p, true
}

// User returns the stored profile, or nil when absent or unreadable.
// A parse failure is swallowed and logged; consumers degrade to
// "no profile known".
func (s *Store) User() *UserProfile {
	b, ok := s.kv.Get(KeyUserInfo)
	if !ok {
		return nil
	}
	var u UserProfile
	if err := json.Unmarshal(b, &u); err != nil {
		logger.L().Warn("stored user profile is malformed, ignoring",
			logger.Component("session"),
			logger.Err(err),
		)
		return nil
	}
	return &u
}

// Clear removes all four session keys. Clearing an empty store is a
// no-op. Key removals are independent; every deletion is attempted even
// if an earlier one fails.
func (s *Store) Clear() error {
	return errors.Join(
		s.kv.Delete(KeyAccessToken),
		s.kv.Delete(KeyRefreshToken),
		s.kv.Delete(KeyUserInfo),
		s.kv.Delete(KeyLoginProvider),
	)
}
