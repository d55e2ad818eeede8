package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/SprintFox/TaskManager-Back/internal/service"
	resp "github.com/SprintFox/TaskManager-Back/internal/transport/http/response"
)

type UserHandler struct {
	Base
	users *service.Users
	tasks *service.Tasks
}

func NewUserHandler(base Base, users *service.Users, tasks *service.Tasks) *UserHandler {
	return &UserHandler{Base: base, users: users, tasks: tasks}
}

// GET /user 当前用户资料
func (h *UserHandler) Me(c *gin.Context) {
	u, ok := h.actor(c)
	if !ok {
		return
	}
	resp.JSON(c, h.users.Profile(c.Request.Context(), u))
}

// GET /user/tasks 指派给当前用户的任务
func (h *UserHandler) MyTasks(c *gin.Context) {
	u, ok := h.actor(c)
	if !ok {
		return
	}
	out, err := h.tasks.ListAssigned(c.Request.Context(), u)
	if err != nil {
		resp.AbortError(c, err)
		return
	}
	resp.JSON(c, out)
}

type editUserIn struct {
	ID         uint    `json:"id"         binding:"required"`
	Login      string  `json:"login"      binding:"required"`
	Email      string  `json:"email"      binding:"required"`
	FullName   *string `json:"fullName"`
	GlobalRole string  `json:"globalRole" binding:"required"`
	AvatarURL  *string `json:"avatarUrl"`
	SkillIDs   *[]uint `json:"skillIds"`
}

// POST /user/edit 本人或 ADMIN
func (h *UserHandler) Edit(c *gin.Context) {
	u, ok := h.actor(c)
	if !ok {
		return
	}
	var in editUserIn
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(400, resp.Error(resp.CodeBadRequest, err.Error()))
		return
	}
	out, err := h.users.Edit(c.Request.Context(), u, service.EditUserInput{
		ID:         in.ID,
		Login:      in.Login,
		Email:      in.Email,
		FullName:   in.FullName,
		GlobalRole: in.GlobalRole,
		AvatarURL:  in.AvatarURL,
		SkillIDs:   in.SkillIDs,
	})
	if err != nil {
		resp.AbortError(c, err)
		return
	}
	resp.JSON(c, out)
}
