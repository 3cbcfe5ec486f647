package login

// Kind classifies a login-flow failure.
type Kind string

const (
	// KindUnknownProvider: the route segment is not a known provider.
	KindUnknownProvider Kind = "unknown_provider"
	// KindTokenNotReceived: the redirect landed without a token parameter.
	KindTokenNotReceived Kind = "token_not_received"
	// KindTokenSaveFailed: the session store write failed.
	KindTokenSaveFailed Kind = "token_save_failed"
	// KindLoginFailed: the gateway reported success without a usable token.
	KindLoginFailed Kind = "login_failed"
)

// User-visible messages, contract with the browser front-end.
const (
	msgInvalidRequest   = "잘못된 요청입니다."
	msgTokenNotReceived = "토큰을 받지 못했습니다."
	msgTokenSaveFailed  = "토큰 저장에 실패했습니다."
	msgLoginFailed      = "로그인에 실패했습니다."
)

// Error is a classified login-flow failure. Error() returns the
// user-visible message verbatim.
type Error struct {
	Kind    Kind
	Message string
	cause   error
}

func (e *Error) Error() string { return e.Message }

func (e *Error) Unwrap() error { return e.cause }
