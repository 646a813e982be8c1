package handler

import (
	"encoding/json"
	"math"
	"reflect"
	"strconv"
	"strings"
)

// numeric 兼容前端把数字作为字符串提交："30" 与 30 等价，"" / null 视为 0
type numeric int

func (n *numeric) UnmarshalJSON(b []byte) error {
	s := strings.TrimSpace(string(b))
	if s == "null" {
		return nil
	}
	if unq, err := strconv.Unquote(s); err == nil {
		s = strings.TrimSpace(unq)
	}
	if s == "" {
		*n = 0
		return nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) || f != math.Trunc(f) ||
		f > math.MaxInt32 || f < math.MinInt32 {
		return &json.UnmarshalTypeError{Value: "number " + s, Type: reflect.TypeOf(0)}
	}
	*n = numeric(f)
	return nil
}

func (n *numeric) intPtr() *int {
	if n == nil {
		return nil
	}
	v := int(*n)
	return &v
}

type idIn struct {
	ID string `json:"id"`
}
