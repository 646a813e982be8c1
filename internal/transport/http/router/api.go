package router

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"blood-portal/internal/core/auth"
	"blood-portal/internal/core/server"
	"blood-portal/internal/service"
	"blood-portal/internal/transport/http/ez"
	"blood-portal/internal/transport/http/handler"
	mdw "blood-portal/internal/transport/http/middleware"
)

type Services struct {
	Auth      *service.AuthService
	Donor     *service.DonorService
	Request   *service.RequestService
	Inventory *service.InventoryService
	Stats     *service.StatsService
	Admin     *service.AdminService
}

// Limits 请求级保护；零值表示不启用对应中间件
type Limits struct {
	RequestTimeout time.Duration
	MaxConcurrent  int64
	MaxBodyBytes   int64
}

type Options struct {
	Log      *zap.Logger
	DB       *gorm.DB // 仅用于 /health
	JWT      *auth.JWTer
	Port     int
	Limits   Limits
	Services Services
}

func NewAPIEngine(o Options) *gin.Engine {
	if o.Log == nil {
		o.Log = zap.NewNop()
	}
	ez.RegisterValidators()

	r := server.NewRouter(o.Log, mdw.RecoveryHandler)
	r.Use(
		mdw.RequestID(),
		mdw.AccessLog(o.Log),
		mdw.Metrics(),
		mdw.ConcurrencyLimit(o.Limits.MaxConcurrent),
		mdw.MaxBodyBytes(o.Limits.MaxBodyBytes),
		mdw.Timeout(o.Limits.RequestTimeout),
	)

	handler.NewSystemHandler(o.DB, o.Port).Mount(r)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	gate := mdw.AuthJWT(o.JWT, o.Log)
	s := o.Services

	api := r.Group("/api")
	handler.NewAuthHandler(s.Auth).Mount(api.Group("/auth"), api.Group("/auth", gate))
	handler.NewDonorHandler(s.Donor).Mount(api.Group("/donors", gate))
	handler.NewRequestHandler(s.Request).Mount(api.Group("/requests", gate))
	handler.NewInventoryHandler(s.Inventory).Mount(api.Group("/inventory", gate))
	handler.NewStatsHandler(s.Stats).Mount(api.Group("/statistics", gate))

	// token 中的 role 先快速拦截，再以库中当前角色为准
	admin := r.Group("/admin/v1",
		gate,
		mdw.RequireRole("admin"),
		mdw.RequireStoredRole(s.Admin.CurrentRole, o.Log, "admin"),
	)
	handler.NewAdminHandler(s.Admin).Mount(admin)

	return r
}
