// Package gateway is the HTTP client for the auth gateway that brokers
// social login with each provider and issues session tokens.
package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/kjunlab/authfront/internal/auth"
	"github.com/kjunlab/authfront/internal/observability/logger"
	"github.com/kjunlab/authfront/internal/session"
)

// User-visible fallback messages. The strings are a product contract
// with the browser front-end; gateway-provided messages pass through
// verbatim instead.
const (
	msgServerConnectionFailed = "서버 연결에 실패했습니다. 서버가 실행 중인지 확인해주세요."
	msgLoginFailed            = "로그인에 실패했습니다."
)

// Client calls the auth gateway. Zero value is not usable; use New.
type Client struct {
	base string
	http *http.Client
}

// New creates a gateway client for the given base URL.
func New(baseURL string) *Client {
	return &Client{
		base: strings.TrimRight(baseURL, "/"),
		http: &http.Client{Timeout: 10 * time.Second},
	}
}

// NewWithHTTPClient is New with a caller-supplied http.Client (tests,
// custom transports).
func NewWithHTTPClient(baseURL string, hc *http.Client) *Client {
	c := New(baseURL)
	if hc != nil {
		c.http = hc
	}
	return c
}

// authResponse is the gateway's login response shape. loginUrl and token
// are mutually exclusive in practice but the wire format does not enforce
// it; ToResult turns it into an explicit tagged result immediately.
type authResponse struct {
	Success  bool                 `json:"success"`
	Token    string               `json:"token"`
	LoginURL string               `json:"loginUrl"`
	User     *session.UserProfile `json:"user"`
	Message  string               `json:"message"`
}

// LoginResult is the outcome of a login request: RedirectRequired or
// TokenIssued. Failures are reported as *Error.
type LoginResult interface{ isLoginResult() }

// RedirectRequired means the provider completes authentication
// out-of-band: the browser must be sent to LoginURL.
type RedirectRequired struct {
	LoginURL string
}

// TokenIssued means the gateway issued a session token directly
// (synchronous/test path). Token may still be empty on a malformed
// success response; callers must check.
type TokenIssued struct {
	Token string
	User  *session.UserProfile
}

func (RedirectRequired) isLoginResult() {}
func (TokenIssued) isLoginResult()      {}

// RequestLogin issues the provider-specific login request.
//
// Routing is a fixed wire contract (kakao carries a /login suffix, the
// others do not). Any non-2xx response or a well-formed body with
// success != true fails with a classified *Error carrying the
// normalized user-visible message.
func (c *Client) RequestLogin(ctx context.Context, provider auth.Provider) (LoginResult, error) {
	endpoint := provider.LoginPath()
	log := logger.From(ctx).With(
		logger.Layer("gateway"),
		logger.Provider(provider.String()),
		logger.Endpoint(endpoint),
	)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.base+endpoint, bytes.NewReader([]byte("{}")))
	if err != nil {
		return nil, wrap(KindNetworkUnreachable, msgServerConnectionFailed, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		log.Error("gateway unreachable", logger.Err(err))
		return nil, wrap(KindNetworkUnreachable, msgServerConnectionFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		gerr := c.errorFromResponse(resp, endpoint)
		log.Warn("gateway rejected login",
			logger.Status(resp.StatusCode),
			logger.String("message", gerr.Message),
		)
		return nil, gerr
	}

	var data authResponse
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return nil, wrap(KindLoginFailed, msgLoginFailed, err)
	}

	log.Info("gateway responded",
		logger.Bool("success", data.Success),
		logger.Bool("redirect", data.LoginURL != ""),
	)
	return data.toResult()
}

// toResult discriminates the response shape once, right after decoding.
// loginUrl wins over token.
func (a *authResponse) toResult() (LoginResult, error) {
	if a.LoginURL != "" {
		return RedirectRequired{LoginURL: a.LoginURL}, nil
	}
	if a.Success {
		return TokenIssued{Token: a.Token, User: a.User}, nil
	}
	msg := a.Message
	if msg == "" {
		msg = msgLoginFailed
	}
	return nil, &Error{Kind: KindLoginFailed, Message: msg}
}

// errorBody is the JSON shape of gateway error responses.
type errorBody struct {
	Message string `json:"message"`
	Error   string `json:"error"`
}

// errorFromResponse normalizes a non-2xx response into a single message:
// 404 gets a fixed diagnostic naming the endpoint, otherwise prefer the
// body's message field, then error, then the raw text; an unreadable
// body falls back to a synthetic status line.
func (c *Client) errorFromResponse(resp *http.Response, endpoint string) *Error {
	if resp.StatusCode == http.StatusNotFound {
		return &Error{
			Kind: KindEndpointNotFound,
			Message: fmt.Sprintf(
				"Gateway API 엔드포인트를 찾을 수 없습니다.\nGateway에 POST %s 엔드포인트가 있는지 확인해주세요.",
				endpoint,
			),
		}
	}

	message := fmt.Sprintf("HTTP error! status: %d", resp.StatusCode)
	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return &Error{Kind: KindLoginFailed, Message: message, cause: err}
	}

	text := string(raw)
	var body errorBody
	if json.Unmarshal(raw, &body) == nil {
		switch {
		case body.Message != "":
			message = body.Message
		case body.Error != "":
			message = body.Error
		case text != "":
			message = text
		}
	} else if text != "" {
		message = text
	}
	return &Error{Kind: KindLoginFailed, Message: message}
}
