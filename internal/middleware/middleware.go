package middleware

import (
	"net/http"

	"quicknotes/internal/api"
	"quicknotes/internal/session"

	"github.com/labstack/echo/v4"
)

// ContextIdentityKey 為 Authenticate 存放 session.Identity 的 context key
const ContextIdentityKey = "identity"

// LoginPath 為未登入的瀏覽器請求被導向的位置
const LoginPath = "/login"

// Resolver 由 session.Manager 實作
type Resolver interface {
	Resolve(c echo.Context) session.Identity
}

// Authenticate 每個請求解析一次 session，結果放進 context 供後續中介層與 handler 使用
func Authenticate(r Resolver) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			c.Set(ContextIdentityKey, r.Resolve(c))
			return next(c)
		}
	}
}

// CurrentIdentity 取得 Authenticate 存放的身分；未經 Authenticate 時視為未登入
func CurrentIdentity(c echo.Context) session.Identity {
	id, ok := c.Get(ContextIdentityKey).(session.Identity)
	if !ok {
		return session.Unauthenticated
	}
	return id
}

// RequireAuth 未登入時以 303 導向登入頁
func RequireAuth(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if _, ok := CurrentIdentity(c).User(); !ok {
			return c.Redirect(http.StatusSeeOther, LoginPath)
		}
		return next(c)
	}
}

// RequireAuthJSON 供 JSON 端點使用，未登入時回傳 401
func RequireAuthJSON(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if _, ok := CurrentIdentity(c).User(); !ok {
			return c.JSON(http.StatusUnauthorized, api.ErrorResponse{Message: "authentication required"})
		}
		return next(c)
	}
}
