package router

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	ginzap "github.com/gin-contrib/zap"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/SprintFox/TaskManager-Back/internal/core/auth"
	"github.com/SprintFox/TaskManager-Back/internal/transport/http/handler"
	mdw "github.com/SprintFox/TaskManager-Back/internal/transport/http/middleware"
)

type APIHandlers struct {
	Auth    *handler.AuthHandler
	User    *handler.UserHandler
	Project *handler.ProjectHandler
	Branch  *handler.BranchHandler
	Task    *handler.TaskHandler
	Skill   *handler.SkillHandler
	File    *handler.FileHandler
}

func NewAPIEngine(l *zap.Logger, jwter *auth.JWTer, h APIHandlers, uploadDir string) *gin.Engine {
	r := gin.New()

	r.Use(
		ginzap.RecoveryWithZap(l, true),
		cors.Default(),
		mdw.RequestID(),
		mdw.RateLimit(200, 400),
		mdw.ConcurrencyLimit(300),
		mdw.MaxBodyBytes(16<<20),
		mdw.Timeout(10*time.Second),
		mdw.Metrics(),
		mdw.AccessLog(l),
	)

	r.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"ok": 1}) })
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	r.Static("/uploads", uploadDir)

	api := r.Group("/api/v1")

	// 公共
	api.POST("/auth/register", h.Auth.Register)
	api.POST("/auth/login", h.Auth.Login)

	// 鉴权
	authed := api.Group("")
	authed.Use(mdw.AuthJWT(jwter, ""))

	authed.GET("/user", h.User.Me)
	authed.GET("/user/tasks", h.User.MyTasks)
	authed.POST("/user/edit", h.User.Edit)

	authed.GET("/projects/list", h.Project.List)
	authed.POST("/projects", h.Project.Create)
	authed.POST("/projects/:projectId/edit", h.Project.Edit)
	authed.POST("/projects/:projectId/delete", h.Project.Delete)
	authed.POST("/projects/:projectId/users", h.Project.AddMember)
	authed.POST("/projects/:projectId/users/:userId/delete", h.Project.RemoveMember)

	authed.GET("/project/:projectId", h.Project.Info)
	authed.POST("/project/:projectId/branch", h.Branch.Create)
	authed.POST("/project/:projectId/branch/edit", h.Branch.Edit)
	authed.POST("/project/:projectId/branch/delete", h.Branch.Delete)

	authed.POST("/project/:projectId/branch/:branchId", h.Task.Create)
	authed.POST("/project/:projectId/branch/:branchId/task/:taskId", h.Task.Edit)
	authed.POST("/project/:projectId/branch/:branchId/task/:taskId/delete", h.Task.Delete)
	authed.POST("/project/:projectId/branch/:branchId/task/:taskId/done", h.Task.MarkDone)
	authed.POST("/project/:projectId/branch/:branchId/task/:taskId/problem", h.Task.MarkProblem)

	authed.GET("/skills", h.Skill.List)

	authed.POST("/images", h.File.Upload)
	authed.POST("/files", h.File.Upload)

	return r
}
