// Package auth defines the closed set of social login providers and the
// fixed per-provider routing data shared by the gateway client and the
// HTTP surface.
package auth

import (
	"fmt"
)

// Provider identifies one of the supported social identity providers.
type Provider string

const (
	Kakao  Provider = "kakao"
	Naver  Provider = "naver"
	Google Provider = "google"
)

// ErrUnknownProvider is returned when a string does not name a known provider.
var ErrUnknownProvider = fmt.Errorf("unknown provider")

// info is the fixed per-provider routing data. The login paths are a wire
// contract with the gateway: kakao uses the /login suffix, the others do not.
type info struct {
	loginPath   string
	displayName string
}

var table = map[Provider]info{
	Kakao:  {loginPath: "/api/auth/kakao/login", displayName: "카카오"},
	Naver:  {loginPath: "/api/auth/naver", displayName: "네이버"},
	Google: {loginPath: "/api/auth/google", displayName: "구글"},
}

// All returns the providers in a stable order.
func All() []Provider {
	return []Provider{Kakao, Naver, Google}
}

// Parse validates a raw string (route segment, stored value) against the
// closed provider set. Unrecognized values fail fast instead of flowing
// into storage.
func Parse(s string) (Provider, error) {
	p := Provider(s)
	if _, ok := table[p]; !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownProvider, s)
	}
	return p, nil
}

// Valid reports whether p is one of the known providers.
func Valid(p Provider) bool {
	_, ok := table[p]
	return ok
}

// LoginPath returns the gateway login path for p.
func (p Provider) LoginPath() string {
	return table[p].loginPath
}

// DisplayName returns the human-readable (Korean) provider name.
// Unknown providers fall back to the generic "소셜" label.
func (p Provider) DisplayName() string {
	if in, ok := table[p]; ok {
		return in.displayName
	}
	return "소셜"
}

func (p Provider) String() string { return string(p) }
