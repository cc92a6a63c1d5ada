// File: internal/router/router.go
package router

import (
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"quicknotes/internal/app"
	"quicknotes/internal/handler"
	"quicknotes/internal/handler/auth"
	"quicknotes/internal/handler/notes"
	"quicknotes/internal/metrics"
	"quicknotes/internal/middleware"
)

// /delete-note 只接受 {"noteId": n}
const deleteBodyLimit = "4K"

// Setup 註冊所有路由與中介層
func Setup(e *echo.Echo, a *app.App) {
	// 每個請求先解析 session，後續 gate 與 handler 都讀取同一個 Identity
	e.Use(middleware.Authenticate(a.Sessions))

	// 直接使用連線位址，不信任 X-Forwarded-For / X-Real-IP
	e.IPExtractor = echo.ExtractIPDirect()
	limiter := middleware.NewRateLimiter(a.Config.LoginRatePerMin)

	// 登入、註冊（POST 依 IP 限流）
	e.GET("/login", auth.LoginPage(a))
	e.POST("/login", auth.LoginHandler(a), limiter.Middleware())
	e.GET("/sign-up", auth.SignUpPage(a))
	e.POST("/sign-up", auth.SignUpHandler(a), limiter.Middleware())
	e.GET("/logout", auth.LogoutHandler(a), middleware.RequireAuth)

	// 筆記（需登入）
	e.GET("/", notes.HomeHandler(a), middleware.RequireAuth)
	e.POST("/", notes.CreateNoteHandler(a), middleware.RequireAuth)
	e.POST("/delete-note", notes.DeleteNoteHandler(a), echomw.BodyLimit(deleteBodyLimit), middleware.RequireAuthJSON)

	// 健康檢查與 metrics
	api := e.Group("/api")
	api.GET("/ping", handler.PingHandler(a.DB, a.Cache))
	e.GET("/metrics", echo.WrapHandler(metrics.Handler(a.Registry)))
}
