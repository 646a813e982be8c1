package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"blood-portal/internal/domain"
	"blood-portal/internal/service"
	"blood-portal/internal/transport/http/ez"
	resp "blood-portal/internal/transport/http/response"
)

// AdminHandler 管理端接口，分组需挂 AuthJWT + RequireRole("admin")
type AdminHandler struct{ svc *service.AdminService }

func NewAdminHandler(svc *service.AdminService) *AdminHandler { return &AdminHandler{svc: svc} }

type listQ struct {
	Offset int `form:"offset,default=0"`
	Limit  int `form:"limit,default=20"`
}

type userRow struct {
	domain.UserView
	IsVerified bool      `json:"isVerified"`
	CreatedAt  time.Time `json:"createdAt"`
}

type listOut struct {
	Total int64     `json:"total"`
	Items []userRow `json:"items"`
}

type roleIn struct {
	Role string `json:"role" binding:"required,oneof=user admin"`
}

func (h *AdminHandler) Mount(g *gin.RouterGroup) {
	e := ez.New(g)

	ez.RegisterAction(e, ez.Action[listQ, listOut]{
		Method: http.MethodGet,
		Path:   "/users",
		Binder: ez.BindQuery,
		Auth:   true,
		Roles:  []string{string(domain.RoleAdmin)},
		Handler: func(c *gin.Context, in *listQ) (listOut, error) {
			us, total, err := h.svc.ListUsers(c.Request.Context(), in.Offset, in.Limit)
			if err != nil {
				return listOut{}, err
			}
			out := listOut{Total: total, Items: make([]userRow, 0, len(us))}
			for i := range us {
				out.Items = append(out.Items, userRow{
					UserView:   us[i].View(),
					IsVerified: us[i].IsVerified,
					CreatedAt:  us[i].CreatedAt,
				})
			}
			return out, nil
		},
	})

	ez.RegisterAction(e, ez.Action[roleIn, resp.Resp]{
		Method: http.MethodPost,
		Path:   "/users/:id/role",
		Binder: ez.BindJSON,
		Auth:   true,
		Roles:  []string{string(domain.RoleAdmin)},
		Handler: func(c *gin.Context, in *roleIn) (resp.Resp, error) {
			if err := h.svc.SetRole(c.Request.Context(), c.Param("id"), in.Role); err != nil {
				return resp.Resp{}, err
			}
			return resp.OK("Role updated"), nil
		},
	})
}
