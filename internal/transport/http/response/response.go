package response

import "github.com/gin-gonic/gin"

// Resp 统一信封：{status, message}；需要额外字段的响应内嵌它
type Resp struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
}

func OK(msg string) Resp {
	return Resp{Status: StatusSuccess, Message: msg}
}

// Error 失败响应（customMsg 为空时取 CodeMsgMap 默认值）
func Error(code int, customMsg string) Resp {
	msg := CodeMsgMap[code]
	if customMsg != "" {
		msg = customMsg
	}
	return Resp{Status: StatusError, Message: msg}
}

func Abort(c *gin.Context, code int, customMsg string) {
	c.AbortWithStatusJSON(code, Error(code, customMsg))
}
