package session

import (
	"github.com/golang-jwt/jwt/v5"
)

// Claims decodes the stored access token as a JWT without verifying the
// signature and returns its claims for display (dashboard, CLI). The
// gateway token is otherwise opaque to this service: claims are never
// used to decide authentication, and a token that is not a JWT simply
// yields nil.
func (s *Store) Claims() map[string]any {
	tok, ok := s.Token()
	if !ok {
		return nil
	}
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(tok, claims); err != nil {
		return nil
	}
	if len(claims) == 0 {
		return nil
	}
	return claims
}
