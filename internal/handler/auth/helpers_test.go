package auth

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"
	"time"

	"quicknotes/internal/api"
	"quicknotes/internal/app"
	"quicknotes/internal/cache"
	"quicknotes/internal/database"
	"quicknotes/internal/metrics"
	"quicknotes/internal/model"
	"quicknotes/internal/service"
	"quicknotes/internal/session"
	"quicknotes/internal/store"
	"quicknotes/internal/validation"
	"quicknotes/internal/worker"

	"github.com/jackc/pgx/v5"
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func restore() {
	getUserByEmail = store.GetUserByEmail
	createUser = store.CreateUser
}

// memUsers 以 map 模擬 users 表，email 具 UNIQUE 約束
type memUsers struct {
	mu     sync.Mutex
	nextID int
	byMail map[string]*model.User
}

func newMemUsers() *memUsers {
	return &memUsers{nextID: 1, byMail: map[string]*model.User{}}
}

func (m *memUsers) install() {
	getUserByEmail = func(_ context.Context, _ database.DB, email string) (*model.User, error) {
		m.mu.Lock()
		defer m.mu.Unlock()
		u, ok := m.byMail[email]
		if !ok {
			return nil, store.ErrNotFound
		}
		cp := *u
		return &cp, nil
	}
	createUser = func(_ context.Context, _ database.DB, u *model.User) (*model.User, error) {
		m.mu.Lock()
		defer m.mu.Unlock()
		if _, ok := m.byMail[u.Email]; ok {
			return nil, store.ErrEmailTaken
		}
		cp := *u
		cp.ID = m.nextID
		cp.CreatedAt = time.Now()
		m.nextID++
		m.byMail[cp.Email] = &cp
		out := cp
		return &out, nil
	}
}

func (m *memUsers) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.byMail)
}

type fakeRecorder struct {
	metrics.Nop
	mu      sync.Mutex
	signUps []string
	logins  []string
}

func (f *fakeRecorder) RecordSignUp(r string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.signUps = append(f.signUps, r)
}

func (f *fakeRecorder) RecordLogin(r string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.logins = append(f.logins, r)
}

// revocations 記錄 session.End 寫入 Redis 的 key
type revocations struct {
	mu   sync.Mutex
	keys map[string]time.Duration
}

func (r *revocations) cache() *cache.FakeCache {
	return &cache.FakeCache{
		GetFn: func(_ context.Context, key string) *redis.StringCmd {
			r.mu.Lock()
			defer r.mu.Unlock()
			if _, ok := r.keys[key]; ok {
				return redis.NewStringResult("1", nil)
			}
			return redis.NewStringResult("", redis.Nil)
		},
		SetFn: func(_ context.Context, key string, _ any, ttl time.Duration) *redis.StatusCmd {
			r.mu.Lock()
			defer r.mu.Unlock()
			r.keys[key] = ttl
			return redis.NewStatusResult("OK", nil)
		},
	}
}

func newTestApp(t *testing.T) (*app.App, *fakeRecorder, *revocations) {
	t.Helper()
	rec := &fakeRecorder{}
	rev := &revocations{keys: map[string]time.Duration{}}
	pool := worker.NewPool(4)
	t.Cleanup(pool.Stop)
	db := &database.FakeDB{}
	cch := rev.cache()
	return &app.App{
		Logger:  zap.NewNop(),
		DB:      db,
		Cache:   cch,
		Workers: pool,
		Hasher:  service.NewPasswordHasher(pool, 1000, rec),
		Sessions: session.NewManager(db, cch, session.Options{
			Secret:      []byte("test-secret"),
			TTL:         time.Hour,
			RememberTTL: 365 * 24 * time.Hour,
		}, zap.NewNop()),
		Metrics: rec,
	}, rec, rev
}

func newEcho() *echo.Echo {
	e := echo.New()
	e.Validator = validation.New()
	return e
}

func postForm(e *echo.Echo, path string, form url.Values) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func decodePage(t *testing.T, rec *httptest.ResponseRecorder) api.PageResponse {
	t.Helper()
	var page api.PageResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &page))
	return page
}

func sessionCookie(rec *httptest.ResponseRecorder) *http.Cookie {
	for _, c := range rec.Result().Cookies() {
		if c.Name == session.CookieName {
			return c
		}
	}
	return nil
}

func seedUser(t *testing.T, a *app.App, email, firstName, password string) *model.User {
	t.Helper()
	hash, err := a.Hasher.Hash(context.Background(), password)
	require.NoError(t, err)
	u, err := createUser(context.Background(), a.DB, &model.User{Email: email, FirstName: firstName, PasswordHash: hash})
	require.NoError(t, err)
	return u
}

type userRow struct {
	u   *model.User
	err error
}

func (r userRow) Scan(dest ...any) error {
	if r.err != nil {
		return r.err
	}
	*dest[0].(*int) = r.u.ID
	*dest[1].(*string) = r.u.Email
	*dest[2].(*string) = r.u.PasswordHash
	*dest[3].(*string) = r.u.FirstName
	*dest[4].(*time.Time) = r.u.CreatedAt
	return nil
}

// resolveCookie 以新的請求帶上 cookie，確認 session 是否還原為 want
func resolveCookie(a *app.App, c *http.Cookie, want *model.User) (*model.User, bool) {
	db := &database.FakeDB{QueryRowFn: func(_ context.Context, _ string, args ...any) pgx.Row {
		if args[0].(int) != want.ID {
			return userRow{err: pgx.ErrNoRows}
		}
		return userRow{u: want}
	}}
	sessions := session.NewManager(db, a.Cache, session.Options{Secret: []byte("test-secret")}, nil)
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(c)
	return sessions.Resolve(echo.New().NewContext(req, httptest.NewRecorder())).User()
}

func errNotFound() error {
	return fmt.Errorf("GetUserByEmail: %w", store.ErrNotFound)
}
