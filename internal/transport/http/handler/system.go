package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"blood-portal/internal/core/database"
)

// SystemHandler 根路径与健康检查，不需要鉴权
type SystemHandler struct {
	db   *gorm.DB
	port int
	now  func() time.Time
}

func NewSystemHandler(db *gorm.DB, port int) *SystemHandler {
	return &SystemHandler{db: db, port: port, now: time.Now}
}

func (h *SystemHandler) Mount(r gin.IRoutes) {
	r.GET("/", h.root)
	r.GET("/health", h.health)
}

func (h *SystemHandler) root(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "success",
		"message":   "🩸 Blood Donation Portal API is Running!",
		"timestamp": h.now().UTC().Format("2006-01-02T15:04:05.000Z07:00"),
	})
}

// health 进程存活即返回 200，数据库状态放在 body 里
func (h *SystemHandler) health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()
	state := "connected"
	if err := database.Ping(ctx, h.db); err != nil {
		state = "disconnected"
	}
	c.JSON(http.StatusOK, gin.H{
		"status":   "ok",
		"port":     h.port,
		"database": state,
	})
}
