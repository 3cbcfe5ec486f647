package gateway

// Kind classifies a gateway failure.
type Kind string

const (
	// KindNetworkUnreachable: the request never got an HTTP response.
	KindNetworkUnreachable Kind = "network_unreachable"
	// KindEndpointNotFound: the gateway answered 404 for the login path.
	KindEndpointNotFound Kind = "endpoint_not_found"
	// KindLoginFailed: any other non-2xx, or success != true.
	KindLoginFailed Kind = "login_failed"
)

// Error is a classified gateway failure. Message is the user-visible
// string (verbatim from the gateway when it supplied one) and is exactly
// what Error() returns, so callers can surface err.Error() directly.
type Error struct {
	Kind    Kind
	Message string
	cause   error
}

func (e *Error) Error() string { return e.Message }

func (e *Error) Unwrap() error { return e.cause }

func wrap(kind Kind, message string, cause error) *Error {
	return &Error{Kind: kind, Message: message, cause: cause}
}
