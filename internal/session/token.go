package session

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Claims 定義 session JWT 負載內容
type Claims struct {
	UserID   int  `json:"uid"`
	Remember bool `json:"remember,omitempty"`
	jwt.RegisteredClaims
}

// 以下變數可於測試中覆寫
var (
	timeNow         = time.Now
	parseWithClaims = jwt.ParseWithClaims
)

var errInvalidToken = errors.New("invalid session token")

// issueToken 依使用者 ID 與有效期限產生 HS256 JWT，jti 供登出時撤銷使用
func issueToken(secret []byte, userID int, jti string, remember bool, ttl time.Duration) (string, *Claims, error) {
	if len(secret) == 0 {
		return "", nil, fmt.Errorf("session secret not set")
	}

	now := timeNow()
	claims := &Claims{
		UserID:   userID,
		Remember: remember,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        jti,
			Subject:   strconv.Itoa(userID),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(secret)
	if err != nil {
		return "", nil, err
	}
	return signed, claims, nil
}

// verifyToken 驗證簽章、演算法與期限；任何不符皆回傳 error
func verifyToken(secret []byte, tokenString string) (*Claims, error) {
	if len(secret) == 0 {
		return nil, fmt.Errorf("session secret not set")
	}

	token, err := parseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(timeNow),
	)
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid || claims.UserID <= 0 || claims.ID == "" {
		return nil, errInvalidToken
	}
	if claims.Subject != strconv.Itoa(claims.UserID) {
		return nil, errInvalidToken
	}
	return claims, nil
}
