package store

import (
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

var (
	// ErrNotFound 表示查無資料列
	ErrNotFound = errors.New("record not found")
	// ErrEmailTaken 表示 email 已被註冊（users_email_key 唯一鍵衝突）
	ErrEmailTaken = errors.New("email already registered")
)

// uniqueViolation 為 PostgreSQL unique_violation 的 SQLSTATE
const uniqueViolation = "23505"

// translate 將 driver 錯誤轉為 store 的 sentinel error
func translate(err error) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrNotFound
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		return ErrEmailTaken
	}
	return err
}
