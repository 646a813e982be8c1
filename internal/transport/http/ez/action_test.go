package ez

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"blood-portal/internal/core/auth"
	"blood-portal/internal/domain"
	mdw "blood-portal/internal/transport/http/middleware"
)

func init() { gin.SetMode(gin.TestMode) }

func TestStatusOf(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{domain.Validation("x"), http.StatusBadRequest},
		{fmt.Errorf("wrapped: %w", domain.InvalidCredentials()), http.StatusUnauthorized},
		{auth.ErrTokenExpired, http.StatusForbidden},
		{fmt.Errorf("%w: bad sig", auth.ErrTokenInvalid), http.StatusForbidden},
		{domain.NotFound("x"), http.StatusNotFound},
		{domain.Duplicate("x"), http.StatusConflict},
		{BadRequest("x"), http.StatusBadRequest},
		{fmt.Errorf("list donors: %w", context.DeadlineExceeded), http.StatusGatewayTimeout},
		{errors.New("db down"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, StatusOf(tc.err), tc.err.Error())
	}
}

type groupIn struct {
	Group string `json:"group" binding:"required,bloodgroup"`
}

func engine(h func(*gin.Context, *groupIn) (gin.H, error)) *gin.Engine {
	RegisterValidators()
	r := gin.New()
	RegisterAction(New(r.Group("")), Action[groupIn, gin.H]{
		Method:  http.MethodPost,
		Path:    "/x",
		Binder:  BindJSON,
		Handler: h,
	})
	return r
}

func post(r http.Handler, body string) (*httptest.ResponseRecorder, map[string]any) {
	req := httptest.NewRequest(http.MethodPost, "/x", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	var m map[string]any
	_ = json.Unmarshal(w.Body.Bytes(), &m)
	return w, m
}

func TestRegisterAction_BindingAndErrors(t *testing.T) {
	r := engine(func(c *gin.Context, in *groupIn) (gin.H, error) {
		switch in.Group {
		case "O+":
			return gin.H{"group": in.Group}, nil
		case "A+":
			return nil, domain.NotFound("Donor not found")
		default:
			return nil, errors.New("secret db detail")
		}
	})

	w, m := post(r, `{"group":"O+"}`)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "O+", m["group"])

	w, m = post(r, `{}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "All fields are required", m["message"])

	w, m = post(r, `{"group":"ZZ"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Invalid blood group", m["message"])

	w, m = post(r, `{"group":1}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "error", m["status"])

	w, m = post(r, `{"group":"A+"}`)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Donor not found", m["message"])

	w, m = post(r, `{"group":"B+"}`)
	require.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "Internal server error", m["message"])
	assert.NotContains(t, w.Body.String(), "secret db detail")
}

func TestRegisterAction_RolesAndAuth(t *testing.T) {
	r := gin.New()
	r.Use(func(c *gin.Context) {
		if role := c.GetHeader("X-Role"); role != "" {
			c.Set("userId", "u-1")
			c.Set("role", role)
		}
	})
	RegisterAction(New(r.Group("")), Action[struct{}, gin.H]{
		Method: http.MethodGet, Path: "/a", Binder: BindNone, Auth: true, Roles: []string{"admin"},
		Handler: func(*gin.Context, *struct{}) (gin.H, error) { return gin.H{"ok": true}, nil },
	})

	get := func(role string) int {
		req := httptest.NewRequest(http.MethodGet, "/a", nil)
		if role != "" {
			req.Header.Set("X-Role", role)
		}
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w.Code
	}
	assert.Equal(t, http.StatusUnauthorized, get(""))
	assert.Equal(t, http.StatusForbidden, get("user"))
	assert.Equal(t, http.StatusOK, get("admin"))
}

func TestRegisterAction_DeadlineFromTimeoutIs504(t *testing.T) {
	r := gin.New()
	r.Use(mdw.Timeout(20 * time.Millisecond))
	RegisterAction(New(r.Group("")), Action[struct{}, gin.H]{
		Method: http.MethodGet,
		Path:   "/slow",
		Binder: BindNone,
		Handler: func(c *gin.Context, _ *struct{}) (gin.H, error) {
			ctx := c.Request.Context()
			<-ctx.Done()
			return nil, fmt.Errorf("list donors: %w", ctx.Err())
		},
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/slow", nil))
	assert.Equal(t, http.StatusGatewayTimeout, w.Code)
	var m map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &m))
	assert.Equal(t, "error", m["status"])
	assert.Equal(t, "Request timeout", m["message"])
}

func TestRegisterAction_AuthAndRolesReadGateKeys(t *testing.T) {
	r := gin.New()
	r.Use(func(c *gin.Context) {
		if uid := c.GetHeader("X-Uid"); uid != "" {
			c.Set(mdw.KeyUserID, uid)
			c.Set(mdw.KeyRole, c.GetHeader("X-Role"))
		}
	})
	RegisterAction(New(r.Group("")), Action[struct{}, gin.H]{
		Method:  http.MethodGet,
		Path:    "/admin",
		Binder:  BindNone,
		Auth:    true,
		Roles:   []string{"admin"},
		Handler: func(*gin.Context, *struct{}) (gin.H, error) { return gin.H{"ok": true}, nil },
	})

	get := func(uid, role string) int {
		req := httptest.NewRequest(http.MethodGet, "/admin", nil)
		if uid != "" {
			req.Header.Set("X-Uid", uid)
			req.Header.Set("X-Role", role)
		}
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w.Code
	}
	assert.Equal(t, http.StatusUnauthorized, get("", ""))
	assert.Equal(t, http.StatusForbidden, get("u-1", "user"))
	assert.Equal(t, http.StatusOK, get("u-1", "admin"))
}
