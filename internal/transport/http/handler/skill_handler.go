package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/SprintFox/TaskManager-Back/internal/service"
	resp "github.com/SprintFox/TaskManager-Back/internal/transport/http/response"
)

type SkillHandler struct {
	Base
	skills *service.Skills
	users  *service.Users
}

func NewSkillHandler(base Base, skills *service.Skills, users *service.Users) *SkillHandler {
	return &SkillHandler{Base: base, skills: skills, users: users}
}

// GET /skills
func (h *SkillHandler) List(c *gin.Context) {
	ss, err := h.skills.List(c.Request.Context())
	if err != nil {
		resp.AbortError(c, err)
		return
	}
	resp.JSON(c, ss)
}

type createSkillIn struct {
	Name string `json:"name" binding:"required"`
}

// POST /skills（管理端）
func (h *SkillHandler) Create(c *gin.Context) {
	u, ok := h.actor(c)
	if !ok {
		return
	}
	var in createSkillIn
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(400, resp.Error(resp.CodeBadRequest, err.Error()))
		return
	}
	sk, err := h.skills.Create(c.Request.Context(), u, in.Name)
	if err != nil {
		resp.AbortError(c, err)
		return
	}
	resp.JSON(c, sk)
}

// GET /users（管理端）
func (h *SkillHandler) ListUsers(c *gin.Context) {
	out, err := h.users.List(c.Request.Context())
	if err != nil {
		resp.AbortError(c, err)
		return
	}
	resp.JSON(c, out)
}
