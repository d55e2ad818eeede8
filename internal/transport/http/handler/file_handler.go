package handler

import (
	"io"
	"path/filepath"

	"github.com/gin-gonic/gin"

	"github.com/SprintFox/TaskManager-Back/internal/storage"
	resp "github.com/SprintFox/TaskManager-Back/internal/transport/http/response"
)

type FileHandler struct {
	Base
	store *storage.LocalStore
}

func NewFileHandler(base Base, store *storage.LocalStore) *FileHandler {
	return &FileHandler{Base: base, store: store}
}

// POST /images、POST /files multipart 上传，返回可访问 URL
func (h *FileHandler) Upload(c *gin.Context) {
	if _, ok := h.actor(c); !ok {
		return
	}
	fh, err := c.FormFile("file")
	if err != nil {
		c.JSON(400, resp.Error(resp.CodeBadRequest, "no file uploaded"))
		return
	}
	f, err := fh.Open()
	if err != nil {
		c.JSON(400, resp.Error(resp.CodeBadRequest, "invalid multipart form"))
		return
	}
	defer f.Close()
	data, err := io.ReadAll(f)
	if err != nil {
		c.JSON(500, resp.Error(resp.CodeServerError, "read upload failed"))
		return
	}
	url, err := h.store.Store(data, filepath.Ext(fh.Filename))
	if err != nil {
		c.JSON(500, resp.Error(resp.CodeServerError, "store upload failed"))
		return
	}
	resp.JSON(c, gin.H{"url": url})
}
