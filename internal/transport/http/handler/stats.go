package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"blood-portal/internal/domain"
	"blood-portal/internal/service"
	"blood-portal/internal/transport/http/ez"
)

type StatsHandler struct{ svc *service.StatsService }

func NewStatsHandler(svc *service.StatsService) *StatsHandler { return &StatsHandler{svc: svc} }

func (h *StatsHandler) Mount(g *gin.RouterGroup) {
	ez.RegisterAction(ez.New(g), ez.Action[struct{}, domain.Statistics]{
		Method: http.MethodGet,
		Path:   "",
		Binder: ez.BindNone,
		Auth:   true,
		Handler: func(c *gin.Context, _ *struct{}) (domain.Statistics, error) {
			return h.svc.Compute(c.Request.Context())
		},
	})
}
