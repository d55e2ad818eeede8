package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/SprintFox/TaskManager-Back/internal/service"
	resp "github.com/SprintFox/TaskManager-Back/internal/transport/http/response"
)

type AuthHandler struct {
	identity *service.Identity
}

func NewAuthHandler(identity *service.Identity) *AuthHandler {
	return &AuthHandler{identity: identity}
}

type registerIn struct {
	Login    string `json:"login"    binding:"required"`
	Email    string `json:"email"    binding:"required"`
	Password string `json:"password" binding:"required"`
}

type tokenOut struct {
	Token string `json:"token"`
}

func (h *AuthHandler) Register(c *gin.Context) {
	var in registerIn
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(400, resp.Error(resp.CodeBadRequest, err.Error()))
		return
	}
	_, tok, err := h.identity.Register(c.Request.Context(), service.RegisterInput{
		Login:    in.Login,
		Email:    in.Email,
		Password: in.Password,
	})
	if err != nil {
		resp.AbortError(c, err)
		return
	}
	resp.JSON(c, tokenOut{Token: tok})
}

type loginIn struct {
	Login    string `json:"login"    binding:"required"`
	Password string `json:"password" binding:"required"`
}

func (h *AuthHandler) Login(c *gin.Context) {
	var in loginIn
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(400, resp.Error(resp.CodeBadRequest, err.Error()))
		return
	}
	tok, err := h.identity.Login(c.Request.Context(), in.Login, in.Password)
	if err != nil {
		resp.AbortError(c, err)
		return
	}
	resp.JSON(c, tokenOut{Token: tok})
}
