package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"blood-portal/internal/core/auth"
)

func init() { gin.SetMode(gin.TestMode) }

var testJWT = &auth.JWTer{Secret: []byte("mw-secret"), Issuer: "blood-portal"}

type envelope struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

func decode(t *testing.T, w *httptest.ResponseRecorder) envelope {
	t.Helper()
	var e envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &e))
	return e
}

func protectedEngine(extra ...gin.HandlerFunc) *gin.Engine {
	r := gin.New()
	chain := append([]gin.HandlerFunc{AuthJWT(testJWT, zap.NewNop())}, extra...)
	chain = append(chain, func(c *gin.Context) {
		id, ok := IdentityFrom(c.Request.Context())
		c.JSON(http.StatusOK, gin.H{"uid": c.GetString(KeyUserID), "ctxUid": id.UserID, "ok": ok})
	})
	r.GET("/p", chain...)
	return r
}

func do(r http.Handler, authz string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/p", nil)
	if authz != "" {
		req.Header.Set("Authorization", authz)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuthJWT_MissingTokenIs401(t *testing.T) {
	r := protectedEngine()
	for _, h := range []string{"", "Basic abc", "Bearer ", "Bearer"} {
		w := do(r, h)
		assert.Equal(t, http.StatusUnauthorized, w.Code, "header %q", h)
		assert.Equal(t, envelope{"error", "Access token required"}, decode(t, w))
	}
}

func TestAuthJWT_InvalidTokenIs403(t *testing.T) {
	r := protectedEngine()
	other := &auth.JWTer{Secret: []byte("other"), Issuer: "blood-portal"}
	forged, err := other.Issue(auth.Identity{UserID: "u-1", Role: "user"})
	require.NoError(t, err)

	for _, tok := range []string{"garbage", forged} {
		w := do(r, "Bearer "+tok)
		assert.Equal(t, http.StatusForbidden, w.Code)
		assert.Equal(t, envelope{"error", "Invalid or expired token"}, decode(t, w))
	}
}

func TestAuthJWT_ExpiredTokenIs403(t *testing.T) {
	expired := &auth.JWTer{Secret: testJWT.Secret, Issuer: testJWT.Issuer, TTL: -time.Minute}
	tok, err := expired.Issue(auth.Identity{UserID: "u-1", Role: "user"})
	require.NoError(t, err)

	w := do(protectedEngine(), "Bearer "+tok)
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, "Token expired", decode(t, w).Message)
}

func TestAuthJWT_ValidTokenSetsIdentity(t *testing.T) {
	tok, err := testJWT.Issue(auth.Identity{UserID: "u-1", Username: "alice", Role: "user"})
	require.NoError(t, err)

	w := do(protectedEngine(), "bearer "+tok)
	require.Equal(t, http.StatusOK, w.Code)
	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "u-1", body["uid"])
	assert.Equal(t, "u-1", body["ctxUid"])
	assert.Equal(t, true, body["ok"])
}

func TestRequireRole(t *testing.T) {
	r := protectedEngine(RequireRole("admin"))

	userTok, err := testJWT.Issue(auth.Identity{UserID: "u-1", Role: "user"})
	require.NoError(t, err)
	w := do(r, "Bearer "+userTok)
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, "Forbidden", decode(t, w).Message)

	adminTok, err := testJWT.Issue(auth.Identity{UserID: "u-2", Role: "admin"})
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, do(r, "Bearer "+adminTok).Code)
}

func TestRequestID(t *testing.T) {
	r := gin.New()
	r.Use(RequestID())
	r.GET("/p", func(c *gin.Context) { c.String(http.StatusOK, c.GetString(KeyRequestID)) })

	w := do(r, "")
	assert.NotEmpty(t, w.Header().Get(HeaderRequestID))
	assert.Equal(t, w.Header().Get(HeaderRequestID), w.Body.String())

	req := httptest.NewRequest(http.MethodGet, "/p", nil)
	req.Header.Set(HeaderRequestID, "abc-123")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, "abc-123", w.Body.String())
}

func TestTimeout_WritesEnvelopeWhenHandlerSilent(t *testing.T) {
	r := gin.New()
	r.Use(Timeout(10 * time.Millisecond))
	r.GET("/p", func(c *gin.Context) {
		<-c.Request.Context().Done()
	})
	w := do(r, "")
	assert.Equal(t, http.StatusGatewayTimeout, w.Code)
	assert.Equal(t, "error", decode(t, w).Status)
}

func TestConcurrencyLimit_RejectsWhenContextDone(t *testing.T) {
	r := gin.New()
	r.Use(ConcurrencyLimit(1))
	hold := make(chan struct{})
	entered := make(chan struct{})
	r.GET("/p", func(c *gin.Context) {
		close(entered)
		<-hold
		c.Status(http.StatusOK)
	})

	go do(r, "")
	<-entered

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	req := httptest.NewRequest(http.MethodGet, "/p", nil).WithContext(ctx)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	close(hold)

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestAccessLog_MasksSecretsAndLogsErrors(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	r := gin.New()
	r.Use(RequestID(), AccessLog(zap.New(core)))
	r.GET("/p", func(c *gin.Context) {
		_ = c.Error(assert.AnError)
		c.Status(http.StatusInternalServerError)
	})

	req := httptest.NewRequest(http.MethodGet, "/p?token=abc&page=2", nil)
	r.ServeHTTP(httptest.NewRecorder(), req)

	require.Equal(t, 1, logs.Len())
	entry := logs.All()[0]
	assert.Equal(t, zap.ErrorLevel, entry.Level)
	ctx := entry.ContextMap()
	assert.Equal(t, "/p", ctx["path"])
	q := ctx["query"].(map[string][]string)
	assert.Equal(t, []string{"****"}, q["token"])
	assert.Equal(t, []string{"2"}, q["page"])
	assert.True(t, strings.Contains(ctx["errors"].(string), assert.AnError.Error()))
}

func TestMaxBodyBytes(t *testing.T) {
	r := gin.New()
	r.Use(MaxBodyBytes(8))
	r.POST("/p", func(c *gin.Context) {
		var v map[string]any
		if err := c.ShouldBindJSON(&v); err != nil {
			c.Status(http.StatusRequestEntityTooLarge)
			return
		}
		c.Status(http.StatusOK)
	})
	req := httptest.NewRequest(http.MethodPost, "/p", strings.NewReader(`{"a":"0123456789"}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
}

func TestRequireStoredRole(t *testing.T) {
	roles := map[string]string{"u-1": "admin", "u-2": "user"}
	lookup := func(_ context.Context, uid string) (string, error) {
		if uid == "u-err" {
			return "", assert.AnError
		}
		return roles[uid], nil
	}
	r := protectedEngine(RequireStoredRole(lookup, nil, "admin"))

	for uid, want := range map[string]int{
		"u-1":    http.StatusOK,
		"u-2":    http.StatusForbidden,
		"u-gone": http.StatusForbidden,
		"u-err":  http.StatusInternalServerError,
	} {
		// token 里一律声称 admin
		tok, err := testJWT.Issue(auth.Identity{UserID: uid, Role: "admin"})
		require.NoError(t, err)
		assert.Equal(t, want, do(r, "Bearer "+tok).Code, uid)
	}
}
