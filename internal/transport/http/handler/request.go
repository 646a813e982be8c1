package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"blood-portal/internal/domain"
	"blood-portal/internal/service"
	"blood-portal/internal/transport/http/ez"
	mdw "blood-portal/internal/transport/http/middleware"
	resp "blood-portal/internal/transport/http/response"
)

type RequestHandler struct{ svc *service.RequestService }

func NewRequestHandler(svc *service.RequestService) *RequestHandler {
	return &RequestHandler{svc: svc}
}

type requestIn struct {
	PatientName   string  `json:"patientName"`
	HospitalName  string  `json:"hospitalName"`
	BloodGroup    string  `json:"bloodGroup" binding:"omitempty,bloodgroup"`
	UnitsNeeded   numeric `json:"unitsNeeded"`
	Urgency       string  `json:"urgency"`
	ContactNumber string  `json:"contactNumber"`
}

type statusIn struct {
	ID     string `json:"id"`
	Status string `json:"status"`
}

func (h *RequestHandler) Mount(g *gin.RouterGroup) {
	e := ez.New(g)

	ez.RegisterAction(e, ez.Action[struct{}, []domain.BloodRequest]{
		Method: http.MethodGet,
		Path:   "/viewAll",
		Binder: ez.BindNone,
		Auth:   true,
		Handler: func(c *gin.Context, _ *struct{}) ([]domain.BloodRequest, error) {
			return h.svc.List(c.Request.Context())
		},
	})

	ez.RegisterAction(e, ez.Action[requestIn, resp.Resp]{
		Method: http.MethodPost,
		Path:   "/add",
		Binder: ez.BindJSON,
		Auth:   true,
		Handler: func(c *gin.Context, in *requestIn) (resp.Resp, error) {
			_, err := h.svc.Add(c.Request.Context(), c.GetString(mdw.KeyUserID), domain.NewBloodRequest{
				PatientName:   in.PatientName,
				HospitalName:  in.HospitalName,
				BloodGroup:    in.BloodGroup,
				UnitsNeeded:   int(in.UnitsNeeded),
				Urgency:       in.Urgency,
				ContactNumber: in.ContactNumber,
			})
			if err != nil {
				return resp.Resp{}, err
			}
			return resp.OK("Blood request submitted successfully!"), nil
		},
	})

	ez.RegisterAction(e, ez.Action[statusIn, resp.Resp]{
		Method: http.MethodPost,
		Path:   "/updateStatus",
		Binder: ez.BindJSON,
		Auth:   true,
		Handler: func(c *gin.Context, in *statusIn) (resp.Resp, error) {
			if err := h.svc.UpdateStatus(c.Request.Context(), in.ID, in.Status); err != nil {
				return resp.Resp{}, err
			}
			return resp.OK("Request status updated"), nil
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
			return resp.OK("Request deleted successfully"), nil
		},
	})
}
