package ez

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"
	"sync"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"blood-portal/internal/domain"
)

var registerOnce sync.Once

// RegisterValidators 向 gin 的校验引擎注册自定义规则（重复调用无副作用）
func RegisterValidators() {
	registerOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		_ = v.RegisterValidation("bloodgroup", func(fl validator.FieldLevel) bool {
			return domain.NormalizeBloodGroup(fl.Field().String()).Valid()
		})
	})
}

func bindError(err error) error {
	var mbe *http.MaxBytesError
	if errors.As(err, &mbe) {
		return &AErr{Code: http.StatusRequestEntityTooLarge, Err: err}
	}
	var ves validator.ValidationErrors
	if errors.As(err, &ves) && len(ves) > 0 {
		fe := ves[0]
		switch fe.Tag() {
		case "required":
			return &AErr{Code: http.StatusBadRequest, Msg: "All fields are required", Err: err}
		case "bloodgroup":
			return &AErr{Code: http.StatusBadRequest, Msg: "Invalid blood group", Err: err}
		default:
			return &AErr{Code: http.StatusBadRequest, Msg: "Invalid value for " + lowerFirst(fe.Field()), Err: err}
		}
	}
	var ute *json.UnmarshalTypeError
	if errors.As(err, &ute) {
		return &AErr{Code: http.StatusBadRequest, Msg: "Invalid value for " + ute.Field, Err: err}
	}
	if errors.Is(err, io.EOF) {
		return &AErr{Code: http.StatusBadRequest, Msg: "Request body is required", Err: err}
	}
	return &AErr{Code: http.StatusBadRequest, Msg: "Invalid request body", Err: err}
}

func lowerFirst(s string) string {
	if s == "" {
		return s
	}
	return strings.ToLower(s[:1]) + s[1:]
}
