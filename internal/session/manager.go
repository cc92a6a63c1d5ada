// Package session 將登入結果綁定到簽章 cookie，並在後續請求中還原使用者身分。
package session

import (
	"errors"
	"net/http"
	"time"

	"quicknotes/internal/cache"
	"quicknotes/internal/database"
	"quicknotes/internal/model"
	"quicknotes/internal/store"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const (
	// CookieName 為 session cookie 名稱
	CookieName = "session"

	revokedKeyPrefix = "session:revoked:"
)

var (
	newTokenID  = uuid.NewString
	getUserByID = store.GetUserByID
)

// Identity 是 Resolve 的結果：Authenticated(user) 或 Unauthenticated，不存在中間狀態
type Identity struct {
	user *model.User
}

// Unauthenticated 表示請求沒有有效的 session
var Unauthenticated = Identity{}

// Authenticated 以使用者建立已驗證的 Identity
func Authenticated(u *model.User) Identity {
	return Identity{user: u}
}

// User 回傳已驗證的使用者；未驗證時 ok 為 false
func (i Identity) User() (*model.User, bool) {
	return i.user, i.user != nil
}

// Options 控制 token 期限與 cookie 屬性
type Options struct {
	Secret       []byte
	TTL          time.Duration
	RememberTTL  time.Duration
	CookieSecure bool
}

// Manager 簽發、驗證與撤銷 session
type Manager struct {
	db     database.DB
	cache  cache.Cache
	opts   Options
	logger *zap.Logger
}

func NewManager(db database.DB, c cache.Cache, opts Options, logger *zap.Logger) *Manager {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Manager{db: db, cache: c, opts: opts, logger: logger}
}

// Start 簽發 token 並寫入回應的 cookie。remember 為 true 時使用較長的期限且 cookie 持久化。
func (m *Manager) Start(c echo.Context, user *model.User, remember bool) error {
	ttl := m.opts.TTL
	if remember {
		ttl = m.opts.RememberTTL
	}

	token, claims, err := issueToken(m.opts.Secret, user.ID, newTokenID(), remember, ttl)
	if err != nil {
		return err
	}

	cookie := m.cookie(token)
	if remember {
		cookie.Expires = claims.ExpiresAt.Time
		cookie.MaxAge = int(ttl / time.Second)
	}
	c.SetCookie(cookie)
	return nil
}

// Resolve 驗證 cookie 並載入對應使用者。缺少、竄改、過期、已撤銷的 token，
// 以及查無使用者或後端錯誤，一律回傳 Unauthenticated。
func (m *Manager) Resolve(c echo.Context) Identity {
	cookie, err := c.Cookie(CookieName)
	if err != nil || cookie.Value == "" {
		return Unauthenticated
	}

	claims, err := verifyToken(m.opts.Secret, cookie.Value)
	if err != nil {
		m.logger.Debug("rejected session token", zap.Error(err))
		return Unauthenticated
	}

	ctx := c.Request().Context()
	err = m.cache.Get(ctx, revokedKeyPrefix+claims.ID).Err()
	switch {
	case err == nil:
		return Unauthenticated
	case !errors.Is(err, redis.Nil):
		m.logger.Warn("session revocation lookup failed", zap.Error(err))
		return Unauthenticated
	}

	user, err := getUserByID(ctx, m.db, claims.UserID)
	if err != nil {
		if !errors.Is(err, store.ErrNotFound) {
			m.logger.Error("load session user failed", zap.Int("user_id", claims.UserID), zap.Error(err))
		}
		return Unauthenticated
	}
	return Authenticated(user)
}

// End 讓 cookie 立即失效，並把 token 的 jti 記入撤銷清單直到原本的到期時間。
// 撤銷失敗時 cookie 仍會被清除，error 交由呼叫端記錄。
func (m *Manager) End(c echo.Context) error {
	expired := m.cookie("")
	expired.MaxAge = -1
	expired.Expires = time.Unix(0, 0)
	defer c.SetCookie(expired)

	cookie, err := c.Cookie(CookieName)
	if err != nil || cookie.Value == "" {
		return nil
	}
	claims, err := verifyToken(m.opts.Secret, cookie.Value)
	if err != nil {
		return nil
	}

	remaining := claims.ExpiresAt.Time.Sub(timeNow())
	if remaining <= 0 {
		return nil
	}
	return m.cache.Set(c.Request().Context(), revokedKeyPrefix+claims.ID, "1", remaining).Err()
}

func (m *Manager) cookie(value string) *http.Cookie {
	return &http.Cookie{
		Name:     CookieName,
		Value:    value,
		Path:     "/",
		HttpOnly: true,
		Secure:   m.opts.CookieSecure,
		SameSite: http.SameSiteLaxMode,
	}
}
