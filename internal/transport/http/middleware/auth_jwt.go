package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"blood-portal/internal/core/auth"
	resp "blood-portal/internal/transport/http/response"
)

const (
	KeyClaims = "claims"
	KeyUserID = "userId"
	KeyRole   = "role"

	msgTokenRequired = "Access token required"
	msgTokenInvalid  = "Invalid or expired token"
	msgTokenExpired  = "Token expired"
)

type identityKey struct{}

// IdentityFrom 从请求 context 取出鉴权后的身份
func IdentityFrom(ctx context.Context) (auth.Identity, bool) {
	id, ok := ctx.Value(identityKey{}).(auth.Identity)
	return id, ok
}

func bearerToken(c *gin.Context) string {
	ah := strings.TrimSpace(c.GetHeader("Authorization"))
	if len(ah) < 7 || !strings.EqualFold(ah[:7], "Bearer ") {
		return ""
	}
	return strings.TrimSpace(ah[7:])
}

// AuthJWT 缺少 token → 401；token 无效或过期 → 403
func AuthJWT(j *auth.JWTer, l *zap.Logger) gin.HandlerFunc {
	if l == nil {
		l = zap.NewNop()
	}
	return func(c *gin.Context) {
		tok := bearerToken(c)
		if tok == "" {
			authRejections.WithLabelValues("missing").Inc()
			resp.Abort(c, http.StatusUnauthorized, msgTokenRequired)
			return
		}
		claims, err := j.Verify(tok)
		if err != nil {
			msg, reason := msgTokenInvalid, "invalid"
			if errors.Is(err, auth.ErrTokenExpired) {
				msg, reason = msgTokenExpired, "expired"
			}
			authRejections.WithLabelValues(reason).Inc()
			l.Debug("token rejected", zap.String("rid", c.GetString(KeyRequestID)), zap.Error(err))
			resp.Abort(c, http.StatusForbidden, msg)
			return
		}

		c.Set(KeyClaims, claims)
		c.Set(KeyUserID, claims.UID)
		c.Set(KeyRole, claims.Role)
		ctx := context.WithValue(c.Request.Context(), identityKey{}, claims.Identity())
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}

// RequireRole 挂在 AuthJWT 之后
func RequireRole(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		role := c.GetString(KeyRole)
		for _, r := range roles {
			if role == r {
				c.Next()
				return
			}
		}
		authRejections.WithLabelValues("forbidden").Inc()
		resp.Abort(c, http.StatusForbidden, "")
	}
}

// RoleLookup 按用户 id 读取当前持久化的角色；用户不存在时返回 ""
type RoleLookup func(ctx context.Context, userID string) (string, error)

// RequireStoredRole 不信任 token 里的 role：降权后旧 token 立即失去权限
func RequireStoredRole(lookup RoleLookup, l *zap.Logger, roles ...string) gin.HandlerFunc {
	if l == nil {
		l = zap.NewNop()
	}
	return func(c *gin.Context) {
		role, err := lookup(c.Request.Context(), c.GetString(KeyUserID))
		if err != nil {
			l.Error("role lookup failed", zap.String("rid", c.GetString(KeyRequestID)), zap.Error(err))
			_ = c.Error(err)
			resp.Abort(c, http.StatusInternalServerError, "")
			return
		}
		for _, r := range roles {
			if role == r {
				c.Set(KeyRole, role)
				c.Next()
				return
			}
		}
		authRejections.WithLabelValues("stale_role").Inc()
		resp.Abort(c, http.StatusForbidden, "")
	}
}
