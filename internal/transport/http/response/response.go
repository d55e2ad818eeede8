package response

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/SprintFox/TaskManager-Back/internal/domain"
)

type Resp struct {
	Code int         `json:"code"`
	Msg  string      `json:"msg"`
	Data interface{} `json:"data"`
}

// New 构造函数（保证 data 不为 null）
func New(code int, msg string, data interface{}) Resp {
	if data == nil {
		data = struct{}{}
	}
	return Resp{Code: code, Msg: msg, Data: data}
}

func OK(data interface{}) Resp {
	return New(CodeOK, CodeMsgMap[CodeOK], data)
}

func Error(code int, customMsg string) Resp {
	msg := CodeMsgMap[code]
	if customMsg != "" {
		msg = customMsg
	}
	return New(code, msg, struct{}{})
}

// JSON 成功响应统一出口
func JSON(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, OK(data))
}

// AbortError 核心错误 → HTTP 响应的唯一翻译点。
// Internal 类错误不把底层信息透给客户端。
func AbortError(c *gin.Context, err error) {
	status := StatusOf(domain.KindOf(err))
	msg := err.Error()
	if status == http.StatusInternalServerError {
		msg = CodeMsgMap[CodeServerError]
	}
	c.AbortWithStatusJSON(status, Error(status, msg))
}
