// @title        Quicknotes API
// @version      1.0
// @description  多使用者筆記服務：註冊、登入登出與個人筆記管理。頁面以 JSON 呈現。
// @host         localhost:8080
// @BasePath     /
// @securityDefinitions.apikey SessionCookie
// @in cookie
// @name session
package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"quicknotes/internal/app"
	"quicknotes/internal/config"
	"quicknotes/internal/logger"
	"quicknotes/internal/middleware"
	"quicknotes/internal/router"
	"quicknotes/internal/validation"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	_ "quicknotes/docs" // 引入 swag 產出的 docs

	echoSwagger "github.com/swaggo/echo-swagger"
)

var (
	newApp         = app.New
	startServer    = func(e *echo.Echo, addr string) error { return e.Start(addr) }
	shutdownServer = func(ctx context.Context, e *echo.Echo) error { return e.Shutdown(ctx) }
	notifyShutdown = func(ch chan<- os.Signal) func() {
		signal.Notify(ch, os.Interrupt, syscall.SIGTERM)
		return func() { signal.Stop(ch) }
	}
	exitFunc = os.Exit
)

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	lg, err := logger.New(cfg.LogLevel)
	if err != nil {
		return fmt.Errorf("建立 logger 失敗: %w", err)
	}
	defer func() { _ = lg.Sync() }()

	a, err := newApp(context.Background(), cfg, lg)
	if err != nil {
		return err
	}
	defer a.Close()

	e := echo.New()
	e.HideBanner = true
	e.Validator = validation.New()
	e.Use(middleware.RequestLogger(lg))
	e.Use(echomw.Recover())

	router.Setup(e, a)

	// Swagger UI
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	sigCh := make(chan os.Signal, 1)
	stopNotify := notifyShutdown(sigCh)
	defer stopNotify()

	errCh := make(chan error, 1)
	go func() {
		lg.Info("server starting", zap.String("addr", cfg.ListenAddr))
		errCh <- startServer(e, cfg.ListenAddr)
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case sig := <-sigCh:
		lg.Info("shutting down", zap.String("signal", sig.String()))
	}

	// 先停止收新請求並等待進行中的請求，再由 defer 關閉 worker、Redis 與 DB
	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := shutdownServer(ctx, e); err != nil {
		return fmt.Errorf("關閉 server 失敗: %w", err)
	}
	return nil
}

func main() {
	if err := run(); err != nil {
		log.Print(err)
		exitFunc(1)
	}
}
