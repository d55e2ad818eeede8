package handler

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/SprintFox/TaskManager-Back/internal/service"
	resp "github.com/SprintFox/TaskManager-Back/internal/transport/http/response"
)

type ProjectHandler struct {
	Base
	projects *service.Projects
}

func NewProjectHandler(base Base, projects *service.Projects) *ProjectHandler {
	return &ProjectHandler{Base: base, projects: projects}
}

type projectIn struct {
	Name        string  `json:"name"        binding:"required"`
	Description string  `json:"description"`
	AvatarURL   *string `json:"avatarUrl"`
}

// POST /projects
func (h *ProjectHandler) Create(c *gin.Context) {
	u, ok := h.actor(c)
	if !ok {
		return
	}
	var in projectIn
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(400, resp.Error(resp.CodeBadRequest, err.Error()))
		return
	}
	p, err := h.projects.Create(c.Request.Context(), u, service.ProjectInput{
		Name:        in.Name,
		Description: in.Description,
		AvatarURL:   in.AvatarURL,
	})
	if err != nil {
		resp.AbortError(c, err)
		return
	}
	resp.JSON(c, p)
}

// GET /projects/list
func (h *ProjectHandler) List(c *gin.Context) {
	u, ok := h.actor(c)
	if !ok {
		return
	}
	ps, err := h.projects.List(c.Request.Context(), u)
	if err != nil {
		resp.AbortError(c, err)
		return
	}
	resp.JSON(c, ps)
}

// GET /project/:projectId 项目详情 + 分支/任务统计
func (h *ProjectHandler) Info(c *gin.Context) {
	u, ok := h.actor(c)
	if !ok {
		return
	}
	pid, ok := projectID(c)
	if !ok {
		return
	}
	info, err := h.projects.Info(c.Request.Context(), u, pid, time.Now())
	if err != nil {
		resp.AbortError(c, err)
		return
	}
	resp.JSON(c, info)
}

// POST /projects/:projectId/edit
func (h *ProjectHandler) Edit(c *gin.Context) {
	u, ok := h.actor(c)
	if !ok {
		return
	}
	pid, ok := projectID(c)
	if !ok {
		return
	}
	var in projectIn
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(400, resp.Error(resp.CodeBadRequest, err.Error()))
		return
	}
	p, err := h.projects.Edit(c.Request.Context(), u, pid, service.ProjectInput{
		Name:        in.Name,
		Description: in.Description,
		AvatarURL:   in.AvatarURL,
	})
	if err != nil {
		resp.AbortError(c, err)
		return
	}
	resp.JSON(c, p)
}

// POST /projects/:projectId/delete
func (h *ProjectHandler) Delete(c *gin.Context) {
	u, ok := h.actor(c)
	if !ok {
		return
	}
	pid, ok := projectID(c)
	if !ok {
		return
	}
	if err := h.projects.Delete(c.Request.Context(), u, pid); err != nil {
		resp.AbortError(c, err)
		return
	}
	resp.JSON(c, gin.H{"id": pid})
}

type addMemberIn struct {
	UserID uint `json:"userId" binding:"required"`
}

// POST /projects/:projectId/users
func (h *ProjectHandler) AddMember(c *gin.Context) {
	u, ok := h.actor(c)
	if !ok {
		return
	}
	pid, ok := projectID(c)
	if !ok {
		return
	}
	var in addMemberIn
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(400, resp.Error(resp.CodeBadRequest, err.Error()))
		return
	}
	if err := h.projects.AddMember(c.Request.Context(), u, pid, in.UserID); err != nil {
		resp.AbortError(c, err)
		return
	}
	resp.JSON(c, gin.H{"projectId": pid, "userId": in.UserID})
}

// POST /projects/:projectId/users/:userId/delete
func (h *ProjectHandler) RemoveMember(c *gin.Context) {
	u, ok := h.actor(c)
	if !ok {
		return
	}
	pid, ok := projectID(c)
	if !ok {
		return
	}
	uid64, err := strconv.ParseUint(c.Param("userId"), 10, 64)
	if err != nil {
		c.JSON(400, resp.Error(resp.CodeBadRequest, "invalid user id"))
		return
	}
	if err := h.projects.RemoveMember(c.Request.Context(), u, pid, uint(uid64)); err != nil {
		resp.AbortError(c, err)
		return
	}
	resp.JSON(c, gin.H{"projectId": pid, "userId": uint(uid64)})
}

func projectID(c *gin.Context) (uint, bool) {
	id64, err := strconv.ParseUint(c.Param("projectId"), 10, 64)
	if err != nil {
		c.JSON(400, resp.Error(resp.CodeBadRequest, "invalid project id"))
		return 0, false
	}
	return uint(id64), true
}
