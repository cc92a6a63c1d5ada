// File: internal/handler/auth/login.go
package auth

import (
	"errors"
	"net/http"
	"strings"

	"quicknotes/internal/api"
	"quicknotes/internal/app"
	"quicknotes/internal/handler"
	"quicknotes/internal/metrics"
	"quicknotes/internal/middleware"
	"quicknotes/internal/store"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

const (
	msgEmailNotFound = "Email does not exist."
	msgWrongPassword = "Incorrect password, try again."
)

var (
	getUserByEmail = store.GetUserByEmail
	createUser     = store.CreateUser
)

// LoginPage 顯示登入表單
// @Summary     登入頁
// @Tags        auth
// @Produce     json
// @Success     200 {object} api.PageResponse
// @Router      /login [get]
func LoginPage(a *app.App) echo.HandlerFunc {
	return func(c echo.Context) error {
		user, _ := middleware.CurrentIdentity(c).User()
		return handler.Page(c, http.StatusOK, user, nil)
	}
}

// LoginHandler 以 Email/Password 驗證並建立 session
// @Summary     登入使用者
// @Description 驗證成功時設定 session cookie 並導向首頁；失敗時不建立 session
// @Tags        auth
// @Accept      application/x-www-form-urlencoded
// @Produce     json
// @Param       email    formData string true "Email"
// @Param       password formData string true "密碼"
// @Success     303
// @Failure     400 {object} api.ErrorResponse
// @Failure     401 {object} api.PageResponse
// @Failure     429 {object} api.ErrorResponse
// @Failure     500 {object} api.ErrorResponse
// @Router      /login [post]
func LoginHandler(a *app.App) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req api.LoginRequest
		if err := c.Bind(&req); err != nil {
			return c.JSON(http.StatusBadRequest, api.ErrorResponse{Message: "invalid form data"})
		}
		email := strings.ToLower(req.Email)
		ctx := c.Request().Context()

		// 撈使用者資料
		user, err := getUserByEmail(ctx, a.DB, email)
		if errors.Is(err, store.ErrNotFound) {
			a.Metrics.RecordLogin(metrics.ResultNoEmail)
			return handler.Page(c, http.StatusUnauthorized, nil, nil, handler.Flash(api.FlashError, msgEmailNotFound))
		}
		if err != nil {
			a.Logger.Error("login lookup failed", zap.Error(err))
			return handler.InternalError(c)
		}

		// 驗證密碼
		ok, err := a.Hasher.Verify(ctx, user.PasswordHash, req.Password)
		if err != nil {
			a.Logger.Error("password verify failed", zap.Int("user_id", user.ID), zap.Error(err))
			return handler.InternalError(c)
		}
		if !ok {
			a.Metrics.RecordLogin(metrics.ResultBadPass)
			return handler.Page(c, http.StatusUnauthorized, nil, nil, handler.Flash(api.FlashError, msgWrongPassword))
		}

		if err := a.Sessions.Start(c, user, true); err != nil {
			a.Logger.Error("start session failed", zap.Int("user_id", user.ID), zap.Error(err))
			return handler.InternalError(c)
		}
		a.Metrics.RecordLogin(metrics.ResultSuccess)
		a.Logger.Info("user logged in", zap.Int("user_id", user.ID))
		return c.Redirect(http.StatusSeeOther, "/")
	}
}
