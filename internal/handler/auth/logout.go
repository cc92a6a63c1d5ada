package auth

import (
	"net/http"

	"quicknotes/internal/app"
	"quicknotes/internal/middleware"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// LogoutHandler 結束 session 並導向登入頁
// @Summary     登出
// @Description 清除 session cookie 並撤銷 token
// @Tags        auth
// @Success     303
// @Router      /logout [get]
func LogoutHandler(a *app.App) echo.HandlerFunc {
	return func(c echo.Context) error {
		user, ok := middleware.CurrentIdentity(c).User()
		if !ok {
			return c.Redirect(http.StatusSeeOther, middleware.LoginPath)
		}
		if err := a.Sessions.End(c); err != nil {
			// cookie 已清除，撤銷失敗只影響複製出去的 token
			a.Logger.Warn("revoke session failed", zap.Int("user_id", user.ID), zap.Error(err))
		}
		a.Logger.Info("user logged out", zap.Int("user_id", user.ID))
		return c.Redirect(http.StatusSeeOther, middleware.LoginPath)
	}
}
