// File: internal/service/password.go
package service

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"crypto/sha512"
	"crypto/subtle"
	"encoding/hex"
	"fmt"
	"hash"
	"strconv"
	"strings"
	"time"

	"quicknotes/internal/metrics"
	"quicknotes/internal/worker"

	"golang.org/x/crypto/bcrypt"
	"golang.org/x/crypto/pbkdf2"
)

const (
	// DefaultIterations 為新雜湊使用的 PBKDF2 迭代次數
	DefaultIterations = 600000

	saltLength = 16
	saltChars  = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
)

// 以下變數可於測試中覆寫
var (
	randRead                     = rand.Read
	pbkdf2Key                    = pbkdf2.Key
	bcryptCompareHashAndPassword = bcrypt.CompareHashAndPassword
	timeNow                      = time.Now
)

// PasswordHasher 以 PBKDF2-HMAC 產生 "pbkdf2:sha256:<iter>$<salt>$<hex>" 格式的雜湊，
// 與舊系統存下的雜湊相容；驗證時亦接受 bcrypt 雜湊。
// 所有運算都在 worker pool 上執行，限制同時進行的雜湊數量。
type PasswordHasher struct {
	pool       worker.Pool
	iterations int
	metrics    metrics.Recorder
}

// NewPasswordHasher iterations <= 0 時使用 DefaultIterations
func NewPasswordHasher(pool worker.Pool, iterations int, rec metrics.Recorder) *PasswordHasher {
	if iterations <= 0 {
		iterations = DefaultIterations
	}
	if rec == nil {
		rec = metrics.Nop{}
	}
	return &PasswordHasher{pool: pool, iterations: iterations, metrics: rec}
}

// Hash 接收明文密碼，回傳加鹽後的雜湊字串
func (h *PasswordHasher) Hash(ctx context.Context, password string) (string, error) {
	salt, err := genSalt(saltLength)
	if err != nil {
		return "", fmt.Errorf("generate salt: %w", err)
	}

	var sum []byte
	if err := h.run(ctx, func() {
		sum = pbkdf2Key([]byte(password), []byte(salt), h.iterations, sha256.Size, sha256.New)
	}); err != nil {
		return "", err
	}
	return fmt.Sprintf("pbkdf2:sha256:%d$%s$%s", h.iterations, salt, hex.EncodeToString(sum)), nil
}

// Verify 比對明文密碼與雜湊。格式不正確的雜湊視為不符，不回傳錯誤；
// 只有 context 取消等執行層面的問題才會回傳 error。
func (h *PasswordHasher) Verify(ctx context.Context, encoded, password string) (bool, error) {
	var ok bool
	if err := h.run(ctx, func() {
		ok = verify(encoded, password)
	}); err != nil {
		return false, err
	}
	return ok, nil
}

func (h *PasswordHasher) run(ctx context.Context, fn func()) error {
	start := timeNow()
	if err := h.pool.Do(ctx, fn); err != nil {
		return err
	}
	h.metrics.ObservePasswordHash(timeNow().Sub(start))
	return nil
}

func verify(encoded, password string) bool {
	if strings.HasPrefix(encoded, "$2") {
		return bcryptCompareHashAndPassword([]byte(encoded), []byte(password)) == nil
	}

	parts := strings.SplitN(encoded, "$", 3)
	if len(parts) != 3 {
		return false
	}
	method, salt, want := parts[0], parts[1], parts[2]

	newHash, size, iterations, ok := parseMethod(method)
	if !ok {
		return false
	}
	wantBytes, err := hex.DecodeString(want)
	if err != nil || len(wantBytes) != size {
		return false
	}
	got := pbkdf2Key([]byte(password), []byte(salt), iterations, size, newHash)
	return subtle.ConstantTimeCompare(got, wantBytes) == 1
}

// parseMethod 解析 "pbkdf2:<digest>[:<iterations>]"
func parseMethod(method string) (func() hash.Hash, int, int, bool) {
	fields := strings.Split(method, ":")
	if len(fields) < 2 || len(fields) > 3 || fields[0] != "pbkdf2" {
		return nil, 0, 0, false
	}

	iterations := DefaultIterations
	if len(fields) == 3 {
		n, err := strconv.Atoi(fields[2])
		if err != nil || n <= 0 {
			return nil, 0, 0, false
		}
		iterations = n
	}

	switch fields[1] {
	case "sha256":
		return sha256.New, sha256.Size, iterations, true
	case "sha512":
		return sha512.New, sha512.Size, iterations, true
	default:
		return nil, 0, 0, false
	}
}

// genSalt 以拒絕取樣從 saltChars 產生 n 個字元，避免取模偏差
func genSalt(n int) (string, error) {
	const limit = 256 - 256%len(saltChars)
	out := make([]byte, 0, n)
	buf := make([]byte, n*2)
	for len(out) < n {
		if _, err := randRead(buf); err != nil {
			return "", err
		}
		for _, b := range buf {
			if int(b) >= limit {
				continue
			}
			out = append(out, saltChars[int(b)%len(saltChars)])
			if len(out) == n {
				break
			}
		}
	}
	return string(out), nil
}
