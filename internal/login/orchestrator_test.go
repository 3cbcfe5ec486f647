package login

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kjunlab/authfront/internal/auth"
	"github.com/kjunlab/authfront/internal/gateway"
	"github.com/kjunlab/authfront/internal/kv/memory"
	"github.com/kjunlab/authfront/internal/session"
)

// fakeGateway returns a canned result per provider.
type fakeGateway struct {
	result gateway.LoginResult
	err    error
	calls  int
}

func (f *fakeGateway) RequestLogin(ctx context.Context, p auth.Provider) (gateway.LoginResult, error) {
	f.calls++
	return f.result, f.err
}

func TestLoginTokenIssuedSavesExactlyOneSession(t *testing.T) {
	for _, p := range auth.All() {
		backend := memory.New()
		store := session.New(backend)
		gw := &fakeGateway{result: gateway.TokenIssued{
			Token: "tok-" + p.String(),
			User:  &session.UserProfile{ID: "1"},
		}}
		o := NewOrchestrator(gw, store)

		out, err := o.Login(context.Background(), p)
		require.NoError(t, err)
		assert.Equal(t, LandingPath, out.Landing)
		assert.Empty(t, out.RedirectURL)

		tok, ok := store.Token()
		require.True(t, ok)
		assert.Equal(t, "tok-"+p.String(), tok)
		got, ok := store.Provider()
		require.True(t, ok)
		assert.Equal(t, p, got)
		assert.Equal(t, 1, gw.calls)
	}
}

func TestLoginRedirectRequired(t *testing.T) {
	store := session.New(memory.New())
	gw := &fakeGateway{result: gateway.RedirectRequired{LoginURL: "https://idp/authorize"}}
	o := NewOrchestrator(gw, store)

	out, err := o.Login(context.Background(), auth.Kakao)
	require.NoError(t, err)
	assert.Equal(t, "https://idp/authorize", out.RedirectURL)

	// Redirect path never writes a session.
	assert.False(t, store.Authenticated())
	// Loading must be reset on the redirect path too.
	assert.False(t, o.State().Loading[auth.Kakao])
}

func TestLoginGatewayErrorSurfacesMessageAndResetsLoading(t *testing.T) {
	store := session.New(memory.New())
	gw := &fakeGateway{err: &gateway.Error{Kind: gateway.KindLoginFailed, Message: "bad credentials"}}
	o := NewOrchestrator(gw, store)

	_, err := o.Login(context.Background(), auth.Naver)
	require.Error(t, err)
	assert.Equal(t, "bad credentials", err.Error())

	st := o.State()
	assert.Equal(t, "bad credentials", st.Error)
	assert.False(t, st.Loading[auth.Naver])
	assert.False(t, st.AnyLoading)
	assert.False(t, store.Authenticated())
}

func TestLoginSuccessWithoutTokenFails(t *testing.T) {
	store := session.New(memory.New())
	gw := &fakeGateway{result: gateway.TokenIssued{Token: ""}}
	o := NewOrchestrator(gw, store)

	_, err := o.Login(context.Background(), auth.Google)
	require.Error(t, err)

	var ferr *Error
	require.ErrorAs(t, err, &ferr)
	assert.Equal(t, KindLoginFailed, ferr.Kind)
	assert.False(t, store.Authenticated(), "must not proceed silently")
}

func TestLoginSaveFailure(t *testing.T) {
	boom := errors.New("storage unavailable")
	store := session.New(&failingKV{err: boom})
	gw := &fakeGateway{result: gateway.TokenIssued{Token: "t"}}
	o := NewOrchestrator(gw, store)

	_, err := o.Login(context.Background(), auth.Kakao)
	require.Error(t, err)

	var ferr *Error
	require.ErrorAs(t, err, &ferr)
	assert.Equal(t, KindTokenSaveFailed, ferr.Kind)
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, "토큰 저장에 실패했습니다.", err.Error())
}

func TestNewAttemptClearsPreviousError(t *testing.T) {
	store := session.New(memory.New())
	gw := &fakeGateway{err: &gateway.Error{Kind: gateway.KindLoginFailed, Message: "nope"}}
	o := NewOrchestrator(gw, store)

	_, _ = o.Login(context.Background(), auth.Kakao)
	require.Equal(t, "nope", o.State().Error)

	gw.err = nil
	gw.result = gateway.TokenIssued{Token: "t"}
	_, err := o.Login(context.Background(), auth.Kakao)
	require.NoError(t, err)
	assert.Empty(t, o.State().Error)
}

type failingKV struct{ err error }

func (f *failingKV) Get(string) ([]byte, bool) { return nil, false }
func (f *failingKV) Set(string, []byte) error  { return f.err }
func (f *failingKV) Delete(string) error       { return f.err }
