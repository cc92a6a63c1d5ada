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
	"quicknotes/internal/model"
	"quicknotes/internal/store"
	"quicknotes/internal/validation"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

const msgEmailTaken = "This email is already registered."

// signUpRules 依優先序排列，第一個失敗的欄位決定回應訊息
var signUpRules = []struct {
	field   string
	message string
}{
	{"Email", "Email must be at least 4 characters long."},
	{"FirstName", "First name must be at least 3 characters long."},
	{"Password2", "Passwords don't match."},
	{"Password1", "Password must be at least 3 characters long."},
}

// SignUpPage 顯示註冊表單
// @Summary     註冊頁
// @Tags        auth
// @Produce     json
// @Success     200 {object} api.PageResponse
// @Router      /sign-up [get]
func SignUpPage(a *app.App) echo.HandlerFunc {
	return func(c echo.Context) error {
		user, _ := middleware.CurrentIdentity(c).User()
		return handler.Page(c, http.StatusOK, user, nil)
	}
}

// SignUpHandler 建立帳號並直接登入
// @Summary     註冊使用者
// @Description 依序檢查 Email 是否已註冊、Email 長度、名字長度、兩次密碼是否一致、密碼長度
// @Tags        auth
// @Accept      application/x-www-form-urlencoded
// @Produce     json
// @Param       email     formData string true "Email"
// @Param       firstName formData string true "名字"
// @Param       password1 formData string true "密碼"
// @Param       password2 formData string true "確認密碼"
// @Success     303
// @Failure     400 {object} api.PageResponse
// @Failure     409 {object} api.PageResponse
// @Failure     429 {object} api.ErrorResponse
// @Failure     500 {object} api.ErrorResponse
// @Router      /sign-up [post]
func SignUpHandler(a *app.App) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req api.SignUpRequest
		if err := c.Bind(&req); err != nil {
			return c.JSON(http.StatusBadRequest, api.ErrorResponse{Message: "invalid form data"})
		}
		req.Email = strings.ToLower(req.Email)
		ctx := c.Request().Context()

		// Email 是否已註冊優先於其他規則
		_, err := getUserByEmail(ctx, a.DB, req.Email)
		switch {
		case err == nil:
			return emailTaken(c, a)
		case !errors.Is(err, store.ErrNotFound):
			a.Logger.Error("sign-up lookup failed", zap.Error(err))
			return handler.InternalError(c)
		}

		msg, err := signUpViolation(c.Validate(&req))
		if err != nil {
			a.Logger.Error("sign-up validation failed", zap.Error(err))
			return handler.InternalError(c)
		}
		if msg != "" {
			a.Metrics.RecordSignUp(metrics.ResultRejected)
			return handler.Page(c, http.StatusBadRequest, nil, nil, handler.Flash(api.FlashError, msg))
		}

		hash, err := a.Hasher.Hash(ctx, req.Password1)
		if err != nil {
			a.Logger.Error("hash password failed", zap.Error(err))
			return handler.InternalError(c)
		}

		user, err := createUser(ctx, a.DB, &model.User{
			Email:        req.Email,
			FirstName:    req.FirstName,
			PasswordHash: hash,
		})
		if errors.Is(err, store.ErrEmailTaken) {
			// 同一 Email 併發註冊，由 UNIQUE 約束決定勝負
			return emailTaken(c, a)
		}
		if err != nil {
			a.Logger.Error("create user failed", zap.Error(err))
			return handler.InternalError(c)
		}

		if err := a.Sessions.Start(c, user, true); err != nil {
			a.Logger.Error("start session failed", zap.Int("user_id", user.ID), zap.Error(err))
			return handler.InternalError(c)
		}
		a.Metrics.RecordSignUp(metrics.ResultSuccess)
		a.Logger.Info("user signed up", zap.Int("user_id", user.ID))
		return c.Redirect(http.StatusSeeOther, "/")
	}
}

func emailTaken(c echo.Context, a *app.App) error {
	a.Metrics.RecordSignUp(metrics.ResultConflict)
	return handler.Page(c, http.StatusConflict, nil, nil, handler.Flash(api.FlashWarning, msgEmailTaken))
}

// signUpViolation 將驗證錯誤轉為第一條失敗規則的訊息；err 為 nil 時回傳空字串
func signUpViolation(err error) (string, error) {
	if err == nil {
		return "", nil
	}
	fields, ok := validation.FailedFields(err)
	if !ok {
		return "", err
	}
	for _, r := range signUpRules {
		if _, failed := fields[r.field]; failed {
			return r.message, nil
		}
	}
	return "", err
}
