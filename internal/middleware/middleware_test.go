package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"quicknotes/internal/model"
	"quicknotes/internal/session"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
)

type fakeResolver struct {
	id    session.Identity
	calls int
}

func (f *fakeResolver) Resolve(echo.Context) session.Identity {
	f.calls++
	return f.id
}

func newContext() (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestAuthenticate(t *testing.T) {
	alice := &model.User{ID: 1}
	r := &fakeResolver{id: session.Authenticated(alice)}

	ctx, _ := newContext()
	var got session.Identity
	err := Authenticate(r)(func(c echo.Context) error {
		got = CurrentIdentity(c)
		return nil
	})(ctx)
	require.NoError(t, err)
	require.Equal(t, 1, r.calls)
	u, ok := got.User()
	require.True(t, ok)
	require.Equal(t, 1, u.ID)
}

func TestCurrentIdentityDefaultsToUnauthenticated(t *testing.T) {
	ctx, _ := newContext()
	require.Equal(t, session.Unauthenticated, CurrentIdentity(ctx))

	ctx.Set(ContextIdentityKey, "not an identity")
	require.Equal(t, session.Unauthenticated, CurrentIdentity(ctx))
}

func TestRequireAuth(t *testing.T) {
	// 已登入
	ctx, rec := newContext()
	ctx.Set(ContextIdentityKey, session.Authenticated(&model.User{ID: 2}))
	called := false
	err := RequireAuth(func(c echo.Context) error {
		called = true
		return c.String(http.StatusOK, "ok")
	})(ctx)
	require.NoError(t, err)
	require.True(t, called)
	require.Equal(t, http.StatusOK, rec.Code)

	// 未登入 → 導向登入頁
	ctx, rec = newContext()
	called = false
	err = RequireAuth(func(echo.Context) error { called = true; return nil })(ctx)
	require.NoError(t, err)
	require.False(t, called)
	require.Equal(t, http.StatusSeeOther, rec.Code)
	require.Equal(t, LoginPath, rec.Header().Get(echo.HeaderLocation))
}

func TestRequireAuthJSON(t *testing.T) {
	ctx, rec := newContext()
	ctx.Set(ContextIdentityKey, session.Authenticated(&model.User{ID: 3}))
	called := false
	require.NoError(t, RequireAuthJSON(func(c echo.Context) error { called = true; return c.NoContent(http.StatusOK) })(ctx))
	require.True(t, called)
	require.Equal(t, http.StatusOK, rec.Code)

	ctx, rec = newContext()
	ctx.Set(ContextIdentityKey, session.Unauthenticated)
	called = false
	require.NoError(t, RequireAuthJSON(func(echo.Context) error { called = true; return nil })(ctx))
	require.False(t, called)
	require.Equal(t, http.StatusUnauthorized, rec.Code)
	require.Contains(t, rec.Body.String(), "authentication required")
}
