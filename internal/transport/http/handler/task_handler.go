package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/SprintFox/TaskManager-Back/internal/service"
	resp "github.com/SprintFox/TaskManager-Back/internal/transport/http/response"
	"github.com/SprintFox/TaskManager-Back/pkg/opt"
)

type TaskHandler struct {
	Base
	tasks *service.Tasks
}

func NewTaskHandler(base Base, tasks *service.Tasks) *TaskHandler {
	return &TaskHandler{Base: base, tasks: tasks}
}

type createTaskIn struct {
	Title          string  `json:"title" binding:"required"`
	Description    *string `json:"description"`
	ParentID       *string `json:"parentId"`
	AssignedTo     *uint   `json:"assignedTo"`
	SkillID        *uint   `json:"skillId"`
	StartDate      string  `json:"startDate"`
	EndDate        string  `json:"endDate"`
	File           *string `json:"file"`
	Done           bool    `json:"done"`
	HasProblem     bool    `json:"hasProblem"`
	ProblemMessage *string `json:"problemMessage"`
}

// POST /project/:projectId/branch/:branchId
func (h *TaskHandler) Create(c *gin.Context) {
	u, ok := h.actor(c)
	if !ok {
		return
	}
	pid, ok := projectID(c)
	if !ok {
		return
	}
	var in createTaskIn
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(400, resp.Error(resp.CodeBadRequest, err.Error()))
		return
	}
	t, err := h.tasks.Create(c.Request.Context(), u, pid, c.Param("branchId"), service.CreateTaskInput{
		Title:          in.Title,
		Description:    in.Description,
		ParentID:       in.ParentID,
		AssignedTo:     in.AssignedTo,
		SkillID:        in.SkillID,
		StartDate:      in.StartDate,
		EndDate:        in.EndDate,
		File:           in.File,
		Done:           in.Done,
		HasProblem:     in.HasProblem,
		ProblemMessage: in.ProblemMessage,
	})
	if err != nil {
		resp.AbortError(c, err)
		return
	}
	resp.JSON(c, t)
}

// editTaskIn 用 opt.Opt 区分缺失 / null / 有值
type editTaskIn struct {
	Title          opt.Opt[string] `json:"title"`
	Description    opt.Opt[string] `json:"description"`
	AssignedTo     opt.Opt[uint]   `json:"assignedTo"`
	SkillID        opt.Opt[uint]   `json:"skillId"`
	File           opt.Opt[string] `json:"file"`
	ProblemMessage opt.Opt[string] `json:"problemMessage"`
	StartDate      opt.Opt[string] `json:"startDate"`
	EndDate        opt.Opt[string] `json:"endDate"`
}

// POST /project/:projectId/branch/:branchId/task/:taskId
func (h *TaskHandler) Edit(c *gin.Context) {
	u, ok := h.actor(c)
	if !ok {
		return
	}
	pid, ok := projectID(c)
	if !ok {
		return
	}
	var in editTaskIn
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(400, resp.Error(resp.CodeBadRequest, err.Error()))
		return
	}
	t, err := h.tasks.Edit(c.Request.Context(), u, pid, c.Param("branchId"), c.Param("taskId"), service.EditTaskInput{
		Title:          in.Title,
		Description:    in.Description,
		AssignedTo:     in.AssignedTo,
		SkillID:        in.SkillID,
		File:           in.File,
		ProblemMessage: in.ProblemMessage,
		StartDate:      in.StartDate,
		EndDate:        in.EndDate,
	})
	if err != nil {
		resp.AbortError(c, err)
		return
	}
	resp.JSON(c, t)
}

// POST /project/:projectId/branch/:branchId/task/:taskId/delete
func (h *TaskHandler) Delete(c *gin.Context) {
	u, ok := h.actor(c)
	if !ok {
		return
	}
	pid, ok := projectID(c)
	if !ok {
		return
	}
	if err := h.tasks.Delete(c.Request.Context(), u, pid, c.Param("branchId"), c.Param("taskId")); err != nil {
		resp.AbortError(c, err)
		return
	}
	resp.JSON(c, gin.H{"taskId": c.Param("taskId")})
}

type stateIn struct {
	ProblemMessage *string `json:"problemMessage"`
}

// POST /project/:projectId/branch/:branchId/task/:taskId/done
func (h *TaskHandler) MarkDone(c *gin.Context) {
	h.setState(c, true)
}

// POST /project/:projectId/branch/:branchId/task/:taskId/problem
func (h *TaskHandler) MarkProblem(c *gin.Context) {
	h.setState(c, false)
}

func (h *TaskHandler) setState(c *gin.Context, done bool) {
	u, ok := h.actor(c)
	if !ok {
		return
	}
	pid, ok := projectID(c)
	if !ok {
		return
	}
	var in stateIn
	if err := c.ShouldBindJSON(&in); err != nil && err.Error() != "EOF" {
		c.JSON(400, resp.Error(resp.CodeBadRequest, err.Error()))
		return
	}
	var err error
	if done {
		err = h.tasks.MarkDone(c.Request.Context(), u, pid, c.Param("branchId"), c.Param("taskId"), in.ProblemMessage)
	} else {
		err = h.tasks.MarkProblem(c.Request.Context(), u, pid, c.Param("branchId"), c.Param("taskId"), in.ProblemMessage)
	}
	if err != nil {
		resp.AbortError(c, err)
		return
	}
	resp.JSON(c, gin.H{"taskId": c.Param("taskId")})
}
