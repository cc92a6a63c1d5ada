// Package config 從環境變數載入服務設定。
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config 於啟動時載入一次，之後視為唯讀
type Config struct {
	DatabaseURL string

	RedisAddr     string
	RedisDB       int
	RedisPassword string

	// JWTSecret 用於簽署 session token
	JWTSecret    string
	SessionTTL   time.Duration
	RememberTTL  time.Duration
	CookieSecure bool

	WorkerCount     int
	LoginRatePerMin int

	ListenAddr string
	LogLevel   string

	// ShutdownTimeout 為收到終止訊號後等待進行中請求結束的上限
	ShutdownTimeout time.Duration
}

// Load 讀取環境變數，必填項目缺漏或格式錯誤時回傳 error
func Load() (*Config, error) {
	cfg := &Config{
		RedisPassword: os.Getenv("REDIS_PASSWORD"),
		ListenAddr:    getEnv("LISTEN_ADDR", ":8080"),
		LogLevel:      getEnv("LOG_LEVEL", "info"),
	}

	var err error
	if cfg.DatabaseURL, err = requireEnv("DATABASE_URL"); err != nil {
		return nil, err
	}
	if cfg.RedisAddr, err = requireEnv("REDIS_ADDR"); err != nil {
		return nil, err
	}

	redisDBStr, err := requireEnv("REDIS_DB")
	if err != nil {
		return nil, err
	}
	if cfg.RedisDB, err = strconv.Atoi(redisDBStr); err != nil {
		return nil, fmt.Errorf("無效的 REDIS_DB: %v", err)
	}

	if cfg.JWTSecret, err = requireEnv("JWT_SECRET"); err != nil {
		return nil, err
	}

	if cfg.WorkerCount, err = positiveInt("WORKER_COUNT", 1); err != nil {
		return nil, err
	}
	if cfg.LoginRatePerMin, err = positiveInt("LOGIN_RATE_PER_MIN", 30); err != nil {
		return nil, err
	}
	if cfg.SessionTTL, err = positiveDuration("SESSION_TTL", 24*time.Hour); err != nil {
		return nil, err
	}
	if cfg.RememberTTL, err = positiveDuration("REMEMBER_TTL", 365*24*time.Hour); err != nil {
		return nil, err
	}
	if cfg.ShutdownTimeout, err = positiveDuration("SHUTDOWN_TIMEOUT", 15*time.Second); err != nil {
		return nil, err
	}

	if v := os.Getenv("COOKIE_SECURE"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return nil, fmt.Errorf("無效的 COOKIE_SECURE: %v", err)
		}
		cfg.CookieSecure = b
	}

	return cfg, nil
}

func requireEnv(key string) (string, error) {
	v := os.Getenv(key)
	if v == "" {
		return "", fmt.Errorf("環境變數 %s 未設定", key)
	}
	return v, nil
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func positiveInt(key string, def int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("無效的 %s: %q", key, v)
	}
	return n, nil
}

func positiveDuration(key string, def time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		return 0, fmt.Errorf("無效的 %s: %q", key, v)
	}
	return d, nil
}
