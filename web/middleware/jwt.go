package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/to404hanga/codestudio_arena/pkg/gintool"
	"github.com/to404hanga/pkg404/logger"
	loggerv2 "github.com/to404hanga/pkg404/logger/v2"
)

// ContextHostClaimsKey 校验通过后 claims 在 gin.Context 中的键
const ContextHostClaimsKey = "host_claims"

// HostClaims 页面访问本地会话服务时携带的令牌
type HostClaims struct {
	jwt.RegisteredClaims
}

// JWTMiddlewareBuilder 未配置密钥时不做校验
type JWTMiddlewareBuilder struct {
	key         []byte
	log         loggerv2.Logger
	ignorePaths []string
}

func NewJWTMiddlewareBuilder(secret string, log loggerv2.Logger, ignorePaths []string) *JWTMiddlewareBuilder {
	return &JWTMiddlewareBuilder{
		key:         []byte(secret),
		log:         log,
		ignorePaths: ignorePaths,
	}
}

func (m *JWTMiddlewareBuilder) ignored(path string) bool {
	for _, p := range m.ignorePaths {
		if strings.HasPrefix(path, p) {
			return true
		}
	}
	return false
}

// ExtractToken 优先读取 Authorization: Bearer, websocket 握手时读取 query 中的 token
func ExtractToken(c *gin.Context) string {
	if auth := c.GetHeader("Authorization"); auth != "" {
		if token, ok := strings.CutPrefix(auth, "Bearer "); ok {
			return strings.TrimSpace(token)
		}
		return ""
	}
	return c.Query("token")
}

func (m *JWTMiddlewareBuilder) Build() gin.HandlerFunc {
	return func(c *gin.Context) {
		if len(m.key) == 0 || m.ignored(c.Request.URL.Path) {
			c.Next()
			return
		}

		var claims HostClaims
		token, err := jwt.ParseWithClaims(ExtractToken(c), &claims, func(t *jwt.Token) (any, error) {
			return m.key, nil
		}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg(), jwt.SigningMethodHS512.Alg()}))
		if err != nil || token == nil || !token.Valid {
			m.log.WarnContext(c.Request.Context(), "host token rejected",
				logger.Error(err),
				logger.String("path", c.Request.URL.Path),
			)
			c.Abort()
			gintool.GinResponse(c, &gintool.Response{
				Code:    http.StatusUnauthorized,
				Message: "invalid or missing token",
			})
			return
		}

		c.Set(ContextHostClaimsKey, claims)
		c.Next()
	}
}
