package response

import "net/http"

const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// CodeMsgMap HTTP 状态码 → 默认 message（未给出自定义 message 时使用）
var CodeMsgMap = map[int]string{
	http.StatusOK:                    "OK",
	http.StatusBadRequest:            "Bad request",
	http.StatusUnauthorized:          "Access token required",
	http.StatusForbidden:             "Forbidden",
	http.StatusNotFound:              "Not found",
	http.StatusConflict:              "Conflict",
	http.StatusRequestEntityTooLarge: "Request body too large",
	http.StatusInternalServerError:   "Internal server error",
	http.StatusServiceUnavailable:    "Server busy",
	http.StatusGatewayTimeout:        "Request timeout",
}
