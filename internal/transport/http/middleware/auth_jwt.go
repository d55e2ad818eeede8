package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/SprintFox/TaskManager-Back/internal/core/auth"
	resp "github.com/SprintFox/TaskManager-Back/internal/transport/http/response"
)

const (
	KeyLogin = "login"
	KeyRole  = "role"
)

// AuthJWT 解析 Bearer 令牌并把登录名/角色放进上下文；
// requireRole 非空时额外校验全局角色
func AuthJWT(j *auth.JWTer, requireRole string) gin.HandlerFunc {
	return func(c *gin.Context) {
		ah := c.GetHeader("Authorization")
		if !strings.HasPrefix(ah, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized,
				resp.Error(resp.CodeUnauthorized, "missing token"))
			return
		}
		claims, err := j.Parse(strings.TrimPrefix(ah, "Bearer "))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized,
				resp.Error(resp.CodeUnauthorized, "invalid token"))
			return
		}
		if requireRole != "" && claims.Role != requireRole {
			c.AbortWithStatusJSON(http.StatusForbidden,
				resp.Error(resp.CodeForbidden, "forbidden"))
			return
		}
		c.Set(KeyLogin, claims.Subject)
		c.Set(KeyRole, claims.Role)
		c.Next()
	}
}
