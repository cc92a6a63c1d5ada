// Package app 組裝服務執行期所需的所有依賴，handler 透過 *App 取得它們。
package app

import (
	"context"
	"fmt"

	"quicknotes/internal/cache"
	"quicknotes/internal/config"
	"quicknotes/internal/database"
	"quicknotes/internal/metrics"
	"quicknotes/internal/service"
	"quicknotes/internal/session"
	"quicknotes/internal/worker"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"
)

// 以下變數可於測試中覆寫
var (
	newPgxPool      = database.NewPgxPool
	newRedisClient  = cache.NewRedisClient
	runMigrationsFn = database.RunMigrations
	newWorkerPool   = worker.NewPool
)

// App 持有連線、session 管理、密碼雜湊與 metrics
type App struct {
	Config   *config.Config
	Logger   *zap.Logger
	DB       database.DB
	Cache    cache.Cache
	Workers  worker.Pool
	Hasher   *service.PasswordHasher
	Sessions *session.Manager
	Metrics  metrics.Recorder
	Registry *prometheus.Registry
}

// New 依序建立 DB 連線、Redis、執行 migration 並組裝其餘元件。
// 任何一步失敗都會釋放先前取得的資源。
func New(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*App, error) {
	db, err := newPgxPool(ctx, cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("DB 連線失敗: %w", err)
	}

	rdb, err := newRedisClient(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("Redis 連線失敗: %w", err)
	}

	if err := runMigrationsFn(cfg.DatabaseURL); err != nil {
		db.Close()
		_ = rdb.Close()
		return nil, fmt.Errorf("Migration 執行失敗: %w", err)
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	rec := metrics.NewCollector(reg)

	wp := newWorkerPool(cfg.WorkerCount)

	return &App{
		Config:  cfg,
		Logger:  logger,
		DB:      db,
		Cache:   rdb,
		Workers: wp,
		Hasher:  service.NewPasswordHasher(wp, service.DefaultIterations, rec),
		Sessions: session.NewManager(db, rdb, session.Options{
			Secret:       []byte(cfg.JWTSecret),
			TTL:          cfg.SessionTTL,
			RememberTTL:  cfg.RememberTTL,
			CookieSecure: cfg.CookieSecure,
		}, logger),
		Metrics:  rec,
		Registry: reg,
	}, nil
}

// Close 先停止 worker，再關閉 Redis 與 DB
func (a *App) Close() {
	if a.Workers != nil {
		a.Workers.Stop()
	}
	if a.Cache != nil {
		if err := a.Cache.Close(); err != nil && a.Logger != nil {
			a.Logger.Warn("關閉 Redis 連線失敗", zap.Error(err))
		}
	}
	if a.DB != nil {
		a.DB.Close()
	}
}
