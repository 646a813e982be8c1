package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"blood-portal/internal/domain"
	"blood-portal/internal/service"
	"blood-portal/internal/transport/http/ez"
	mdw "blood-portal/internal/transport/http/middleware"
	resp "blood-portal/internal/transport/http/response"
)

type DonorHandler struct{ svc *service.DonorService }

func NewDonorHandler(svc *service.DonorService) *DonorHandler { return &DonorHandler{svc: svc} }

type donorIn struct {
	Name       string  `json:"name"`
	Email      string  `json:"email"`
	Phone      string  `json:"phone"`
	BloodGroup string  `json:"bloodGroup" binding:"omitempty,bloodgroup"`
	Age        numeric `json:"age"`
	Address    string  `json:"address"`
}

type donorPatchIn struct {
	ID               string     `json:"id"`
	Name             *string    `json:"name"`
	Email            *string    `json:"email"`
	Phone            *string    `json:"phone"`
	BloodGroup       *string    `json:"bloodGroup" binding:"omitempty,bloodgroup"`
	Age              *numeric   `json:"age"`
	Address          *string    `json:"address"`
	IsAvailable      *bool      `json:"isAvailable"`
	LastDonationDate *time.Time `json:"lastDonationDate"`
}

func (h *DonorHandler) Mount(g *gin.RouterGroup) {
	e := ez.New(g)

	ez.RegisterAction(e, ez.Action[struct{}, []domain.Donor]{
		Method: http.MethodGet,
		Path:   "/viewAll",
		Binder: ez.BindNone,
		Auth:   true,
		Handler: func(c *gin.Context, _ *struct{}) ([]domain.Donor, error) {
			return h.svc.List(c.Request.Context())
		},
	})

	ez.RegisterAction(e, ez.Action[donorIn, resp.Resp]{
		Method: http.MethodPost,
		Path:   "/add",
		Binder: ez.BindJSON,
		Auth:   true,
		Handler: func(c *gin.Context, in *donorIn) (resp.Resp, error) {
			_, err := h.svc.Add(c.Request.Context(), c.GetString(mdw.KeyUserID), domain.NewDonor{
				Name:       in.Name,
				Email:      in.Email,
				Phone:      in.Phone,
				BloodGroup: in.BloodGroup,
				Age:        int(in.Age),
				Address:    in.Address,
			})
			if err != nil {
				return resp.Resp{}, err
			}
			return resp.OK("Donor registered successfully!"), nil
		},
	})

	ez.RegisterAction(e, ez.Action[donorPatchIn, resp.Resp]{
		Method: http.MethodPost,
		Path:   "/update",
		Binder: ez.BindJSON,
		Auth:   true,
		Handler: func(c *gin.Context, in *donorPatchIn) (resp.Resp, error) {
			err := h.svc.Update(c.Request.Context(), in.ID, domain.DonorPatch{
				Name:             in.Name,
				Email:            in.Email,
				Phone:            in.Phone,
				BloodGroup:       in.BloodGroup,
				Age:              in.Age.intPtr(),
				Address:          in.Address,
				IsAvailable:      in.IsAvailable,
				LastDonationDate: in.LastDonationDate,
			})
			if err != nil {
				return resp.Resp{}, err
			}
			return resp.OK("Donor updated successfully"), nil
		},
	})

	ez.RegisterAction(e, ez.Action[idIn, resp.Resp]{
		Method: http.MethodPost,
		Path:   "/delete",
		Binder: ez.BindJSON,
		Auth:   true,
		Handler: func(c *gin.Context, in *idIn) (resp.Resp, error) {
			if err := h.svc.Delete(c.Request.Context(), in.ID); err != nil {
				return resp.Resp{}, err
			}
			return resp.OK("Donor deleted successfully"), nil
		},
	})
}
