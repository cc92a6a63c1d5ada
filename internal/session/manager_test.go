package session

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"quicknotes/internal/cache"
	"quicknotes/internal/database"
	"quicknotes/internal/model"
	"quicknotes/internal/store"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
)

var testOpts = Options{
	Secret:      []byte("test-secret"),
	TTL:         time.Hour,
	RememberTTL: 30 * 24 * time.Hour,
}

func newCtx(cookies ...*http.Cookie) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	for _, c := range cookies {
		req.AddCookie(c)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func sessionCookie(t *testing.T, rec *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()
	for _, c := range rec.Result().Cookies() {
		if c.Name == CookieName {
			return c
		}
	}
	t.Fatal("session cookie not set")
	return nil
}

// notRevoked 模擬 Redis 中沒有撤銷紀錄
func notRevoked() *cache.FakeCache {
	return &cache.FakeCache{
		GetFn: func(context.Context, string) *redis.StringCmd { return redis.NewStringResult("", redis.Nil) },
	}
}

func stubUser(u *model.User) {
	getUserByID = func(_ context.Context, _ database.DB, id int) (*model.User, error) {
		if u == nil || id != u.ID {
			return nil, store.ErrNotFound
		}
		return u, nil
	}
}

func TestStartAndResolve(t *testing.T) {
	t.Cleanup(restoreGlobals)
	alice := &model.User{ID: 7, Email: "alice@example.com", FirstName: "Alice"}
	stubUser(alice)
	m := NewManager(&database.FakeDB{}, notRevoked(), testOpts, nil)

	t.Run("session cookie", func(t *testing.T) {
		ctx, rec := newCtx()
		require.NoError(t, m.Start(ctx, alice, false))
		c := sessionCookie(t, rec)
		require.True(t, c.HttpOnly)
		require.Equal(t, "/", c.Path)
		require.Equal(t, 0, c.MaxAge)
		require.Equal(t, http.SameSiteLaxMode, c.SameSite)

		ctx, _ = newCtx(c)
		u, ok := m.Resolve(ctx).User()
		require.True(t, ok)
		require.Equal(t, 7, u.ID)
	})

	t.Run("remembered cookie persists", func(t *testing.T) {
		ctx, rec := newCtx()
		require.NoError(t, m.Start(ctx, alice, true))
		c := sessionCookie(t, rec)
		require.Equal(t, int((30 * 24 * time.Hour).Seconds()), c.MaxAge)

		claims, err := verifyToken(testOpts.Secret, c.Value)
		require.NoError(t, err)
		require.True(t, claims.Remember)
		require.WithinDuration(t, time.Now().Add(30*24*time.Hour), claims.ExpiresAt.Time, time.Minute)
	})

	t.Run("secure flag", func(t *testing.T) {
		opts := testOpts
		opts.CookieSecure = true
		sm := NewManager(&database.FakeDB{}, notRevoked(), opts, nil)
		ctx, rec := newCtx()
		require.NoError(t, sm.Start(ctx, alice, false))
		require.True(t, sessionCookie(t, rec).Secure)
	})

	t.Run("missing secret", func(t *testing.T) {
		sm := NewManager(&database.FakeDB{}, notRevoked(), Options{TTL: time.Hour}, nil)
		ctx, rec := newCtx()
		require.Error(t, sm.Start(ctx, alice, false))
		require.Empty(t, rec.Result().Cookies())
	})
}

func TestResolveUnauthenticated(t *testing.T) {
	t.Cleanup(restoreGlobals)
	alice := &model.User{ID: 7}
	stubUser(alice)

	valid, _, err := issueToken(testOpts.Secret, 7, "jti", false, time.Hour)
	require.NoError(t, err)
	forged, _, err := issueToken([]byte("attacker"), 7, "jti", false, time.Hour)
	require.NoError(t, err)
	ghost, _, err := issueToken(testOpts.Secret, 99, "jti", false, time.Hour)
	require.NoError(t, err)

	cases := []struct {
		name   string
		cookie *http.Cookie
		cache  cache.Cache
	}{
		{"no cookie", nil, notRevoked()},
		{"empty cookie", &http.Cookie{Name: CookieName, Value: ""}, notRevoked()},
		{"garbage", &http.Cookie{Name: CookieName, Value: "abc"}, notRevoked()},
		{"forged signature", &http.Cookie{Name: CookieName, Value: forged}, notRevoked()},
		{"deleted user", &http.Cookie{Name: CookieName, Value: ghost}, notRevoked()},
		{"revoked", &http.Cookie{Name: CookieName, Value: valid}, &cache.FakeCache{
			GetFn: func(context.Context, string) *redis.StringCmd { return redis.NewStringResult("1", nil) },
		}},
		{"cache down", &http.Cookie{Name: CookieName, Value: valid}, &cache.FakeCache{
			GetFn: func(context.Context, string) *redis.StringCmd {
				return redis.NewStringResult("", errors.New("connection refused"))
			},
		}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			m := NewManager(&database.FakeDB{}, tc.cache, testOpts, nil)
			var ctx echo.Context
			if tc.cookie != nil {
				ctx, _ = newCtx(tc.cookie)
			} else {
				ctx, _ = newCtx()
			}
			id := m.Resolve(ctx)
			require.Equal(t, Unauthenticated, id)
			_, ok := id.User()
			require.False(t, ok)
		})
	}

	t.Run("store error", func(t *testing.T) {
		getUserByID = func(context.Context, database.DB, int) (*model.User, error) {
			return nil, errors.New("db down")
		}
		m := NewManager(&database.FakeDB{}, notRevoked(), testOpts, nil)
		ctx, _ := newCtx(&http.Cookie{Name: CookieName, Value: valid})
		_, ok := m.Resolve(ctx).User()
		require.False(t, ok)
	})
}

func TestEnd(t *testing.T) {
	t.Cleanup(restoreGlobals)
	alice := &model.User{ID: 7}
	stubUser(alice)

	t.Run("revokes token and clears cookie", func(t *testing.T) {
		revoked := map[string]time.Duration{}
		c := &cache.FakeCache{
			GetFn: func(_ context.Context, key string) *redis.StringCmd {
				if _, ok := revoked[key]; ok {
					return redis.NewStringResult("1", nil)
				}
				return redis.NewStringResult("", redis.Nil)
			},
			SetFn: func(_ context.Context, key string, _ any, ttl time.Duration) *redis.StatusCmd {
				revoked[key] = ttl
				return redis.NewStatusResult("OK", nil)
			},
		}
		m := NewManager(&database.FakeDB{}, c, testOpts, nil)
		newTokenID = func() string { return "fixed-jti" }

		ctx, rec := newCtx()
		require.NoError(t, m.Start(ctx, alice, false))
		issued := sessionCookie(t, rec)

		ctx, rec = newCtx(issued)
		require.NoError(t, m.End(ctx))
		cleared := sessionCookie(t, rec)
		require.Equal(t, "", cleared.Value)
		require.Less(t, cleared.MaxAge, 0)

		ttl, ok := revoked["session:revoked:fixed-jti"]
		require.True(t, ok)
		require.InDelta(t, time.Hour.Seconds(), ttl.Seconds(), 60)

		// 登出後重送舊 cookie 不再有效
		ctx, _ = newCtx(issued)
		_, authed := m.Resolve(ctx).User()
		require.False(t, authed)
	})

	t.Run("no cookie still clears", func(t *testing.T) {
		m := NewManager(&database.FakeDB{}, &cache.FakeCache{}, testOpts, nil)
		ctx, rec := newCtx()
		require.NoError(t, m.End(ctx))
		require.Less(t, sessionCookie(t, rec).MaxAge, 0)
	})

	t.Run("invalid cookie skips revocation", func(t *testing.T) {
		m := NewManager(&database.FakeDB{}, &cache.FakeCache{}, testOpts, nil)
		ctx, rec := newCtx(&http.Cookie{Name: CookieName, Value: "junk"})
		require.NoError(t, m.End(ctx))
		require.Less(t, sessionCookie(t, rec).MaxAge, 0)
	})

	t.Run("revocation failure reported", func(t *testing.T) {
		c := &cache.FakeCache{
			SetFn: func(context.Context, string, any, time.Duration) *redis.StatusCmd {
				return redis.NewStatusResult("", errors.New("set"))
			},
		}
		m := NewManager(&database.FakeDB{}, c, testOpts, nil)
		tok, _, err := issueToken(testOpts.Secret, 7, "j", false, time.Hour)
		require.NoError(t, err)
		ctx, rec := newCtx(&http.Cookie{Name: CookieName, Value: tok})
		require.Error(t, m.End(ctx))
		require.Less(t, sessionCookie(t, rec).MaxAge, 0)
	})
}
