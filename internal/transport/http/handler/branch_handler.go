package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/SprintFox/TaskManager-Back/internal/service"
	resp "github.com/SprintFox/TaskManager-Back/internal/transport/http/response"
)

type BranchHandler struct {
	Base
	branches *service.Branches
}

func NewBranchHandler(base Base, branches *service.Branches) *BranchHandler {
	return &BranchHandler{Base: base, branches: branches}
}

type createBranchIn struct {
	Name string `json:"name" binding:"required"`
}

// POST /project/:projectId/branch
func (h *BranchHandler) Create(c *gin.Context) {
	u, ok := h.actor(c)
	if !ok {
		return
	}
	pid, ok := projectID(c)
	if !ok {
		return
	}
	var in createBranchIn
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(400, resp.Error(resp.CodeBadRequest, err.Error()))
		return
	}
	b, err := h.branches.Create(c.Request.Context(), u, pid, in.Name)
	if err != nil {
		resp.AbortError(c, err)
		return
	}
	resp.JSON(c, b)
}

type editBranchIn struct {
	ID          string  `json:"id"   binding:"required"`
	Name        string  `json:"name" binding:"required"`
	Description *string `json:"description"`
}

// POST /project/:projectId/branch/edit
func (h *BranchHandler) Edit(c *gin.Context) {
	u, ok := h.actor(c)
	if !ok {
		return
	}
	pid, ok := projectID(c)
	if !ok {
		return
	}
	var in editBranchIn
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(400, resp.Error(resp.CodeBadRequest, err.Error()))
		return
	}
	b, err := h.branches.Edit(c.Request.Context(), u, pid, in.ID, in.Name, in.Description)
	if err != nil {
		resp.AbortError(c, err)
		return
	}
	resp.JSON(c, b)
}

type deleteBranchIn struct {
	BranchID string `json:"branchId" binding:"required"`
}

// POST /project/:projectId/branch/delete
func (h *BranchHandler) Delete(c *gin.Context) {
	u, ok := h.actor(c)
	if !ok {
		return
	}
	pid, ok := projectID(c)
	if !ok {
		return
	}
	var in deleteBranchIn
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(400, resp.Error(resp.CodeBadRequest, err.Error()))
		return
	}
	if err := h.branches.Delete(c.Request.Context(), u, pid, in.BranchID); err != nil {
		resp.AbortError(c, err)
		return
	}
	resp.JSON(c, gin.H{"branchId": in.BranchID})
}
