// Package service 承载业务规则；仓储通过 domain 中的接口注入，HTTP 层只做绑定与错误映射。
package service

import (
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

const msgAllFieldsRequired = "All fields are required"

var validate = validator.New(validator.WithRequiredStructEnabled())

func utcNow() time.Time { return time.Now().UTC() }

func validEmail(s string) bool { return validate.Var(s, "required,email") == nil }

// anyBlank 任一字段去空白后为空
func anyBlank(vals ...string) bool {
	for _, v := range vals {
		if strings.TrimSpace(v) == "" {
			return true
		}
	}
	return false
}
