package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"blood-portal/internal/domain"
	"blood-portal/internal/service"
	"blood-portal/internal/transport/http/ez"
	resp "blood-portal/internal/transport/http/response"
)

type InventoryHandler struct{ svc *service.InventoryService }

func NewInventoryHandler(svc *service.InventoryService) *InventoryHandler {
	return &InventoryHandler{svc: svc}
}

type inventoryIn struct {
	BloodGroup     string   `json:"bloodGroup" binding:"required,bloodgroup"`
	UnitsAvailable *numeric `json:"unitsAvailable" binding:"required"`
}

func (h *InventoryHandler) Mount(g *gin.RouterGroup) {
	e := ez.New(g)

	ez.RegisterAction(e, ez.Action[struct{}, []domain.InventoryRecord]{
		Method: http.MethodGet,
		Path:   "/viewAll",
		Binder: ez.BindNone,
		Auth:   true,
		Handler: func(c *gin.Context, _ *struct{}) ([]domain.InventoryRecord, error) {
			return h.svc.List(c.Request.Context())
		},
	})

	ez.RegisterAction(e, ez.Action[inventoryIn, resp.Resp]{
		Method: http.MethodPost,
		Path:   "/update",
		Binder: ez.BindJSON,
		Auth:   true,
		Handler: func(c *gin.Context, in *inventoryIn) (resp.Resp, error) {
			if _, err := h.svc.Set(c.Request.Context(), in.BloodGroup, int(*in.UnitsAvailable)); err != nil {
				return resp.Resp{}, err
			}
			return resp.OK("Inventory updated successfully"), nil
		},
	})
}
