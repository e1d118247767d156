package client

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenSource 提供访问后端使用的 Bearer token
type TokenSource interface {
	Token() (string, error)
}

// StaticToken 固定 token; 如果是 JWT 则在过期后拒绝继续使用, 避免拿着失效 token 反复请求
type StaticToken struct {
	raw       string
	expiresAt time.Time
	subject   string
	now       func() time.Time
}

var _ TokenSource = (*StaticToken)(nil)

func NewStaticToken(raw string) *StaticToken {
	t := &StaticToken{raw: raw, now: time.Now}
	if raw == "" {
		return t
	}

	// 签名由后端校验, 客户端只读取过期时间
	var claims jwt.RegisteredClaims
	if _, _, err := jwt.NewParser().ParseUnverified(raw, &claims); err == nil {
		if claims.ExpiresAt != nil {
			t.expiresAt = claims.ExpiresAt.Time
		}
		t.subject = claims.Subject
	}
	return t
}

func (t *StaticToken) Token() (string, error) {
	if t.raw == "" {
		return "", nil
	}
	if !t.expiresAt.IsZero() && !t.now().Before(t.expiresAt) {
		return "", fmt.Errorf("%w at %s", ErrTokenExpired, t.expiresAt.Format(time.RFC3339))
	}
	return t.raw, nil
}

// Subject JWT 中的用户标识, 非 JWT token 返回空串
func (t *StaticToken) Subject() string {
	return t.subject
}

// ExpiresAt 非 JWT 或未设置过期时间时返回零值
func (t *StaticToken) ExpiresAt() time.Time {
	return t.expiresAt
}
