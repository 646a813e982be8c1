package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	resp "blood-portal/internal/transport/http/response"
)

// RecoveryHandler 交给 ginzap.CustomRecoveryWithZap：panic 已由 ginzap 记录，这里只负责回统一信封
func RecoveryHandler(c *gin.Context, _ any) {
	resp.Abort(c, http.StatusInternalServerError, "")
}
