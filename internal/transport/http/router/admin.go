package router

import (
	"net/http"
	"time"

	ginzap "github.com/gin-contrib/zap"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/SprintFox/TaskManager-Back/internal/core/auth"
	"github.com/SprintFox/TaskManager-Back/internal/domain"
	"github.com/SprintFox/TaskManager-Back/internal/transport/http/handler"
	mdw "github.com/SprintFox/TaskManager-Back/internal/transport/http/middleware"
)

// NewAdminEngine 管理端：技能目录维护 + 用户总览，统一要求全局 ADMIN
func NewAdminEngine(l *zap.Logger, jwter *auth.JWTer, skills *handler.SkillHandler) *gin.Engine {
	r := gin.New()

	r.Use(
		ginzap.RecoveryWithZap(l, true),
		mdw.RequestID(),
		mdw.RateLimit(200, 400),
		mdw.ConcurrencyLimit(300),
		mdw.MaxBodyBytes(1<<20),
		mdw.Timeout(10*time.Second),
		mdw.Metrics(),
		mdw.AccessLog(l),
	)

	r.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"ok": 1}) })

	admin := r.Group("/admin/v1")
	admin.Use(mdw.AuthJWT(jwter, domain.RoleAdmin))

	admin.GET("/users", skills.ListUsers)
	admin.GET("/skills", skills.List)
	admin.POST("/skills", skills.Create)

	return r
}
