package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/SprintFox/TaskManager-Back/internal/domain"
	"github.com/SprintFox/TaskManager-Back/internal/service"
	mdw "github.com/SprintFox/TaskManager-Back/internal/transport/http/middleware"
	resp "github.com/SprintFox/TaskManager-Back/internal/transport/http/response"
)

// Base 操作者解析：中间件已验签，这里把登录名换成用户实体
type Base struct {
	identity *service.Identity
}

func NewBase(identity *service.Identity) Base { return Base{identity: identity} }

func (b Base) actor(c *gin.Context) (*domain.User, bool) {
	login := c.GetString(mdw.KeyLogin)
	if login == "" {
		c.AbortWithStatusJSON(http.StatusUnauthorized,
			resp.Error(resp.CodeUnauthorized, "unauthorized"))
		return nil, false
	}
	u, err := b.identity.Resolve(c.Request.Context(), login)
	if err != nil {
		resp.AbortError(c, err)
		return nil, false
	}
	return u, true
}
