package domain

import "errors"

var (
	ErrValidation         = errors.New("validation failed")
	ErrDuplicateIdentity  = errors.New("duplicate identity")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrNotFound           = errors.New("not found")
)

// Error 携带面向客户端的提示语，Kind 用于 errors.Is 判定类别
type Error struct {
	Kind error
	Msg  string
}

func (e *Error) Error() string {
	if e.Msg != "" {
		return e.Msg
	}
	return e.Kind.Error()
}

func (e *Error) Unwrap() error { return e.Kind }

func Validation(msg string) error { return &Error{Kind: ErrValidation, Msg: msg} }
func Duplicate(msg string) error  { return &Error{Kind: ErrDuplicateIdentity, Msg: msg} }
func NotFound(msg string) error   { return &Error{Kind: ErrNotFound, Msg: msg} }
func InvalidCredentials() error {
	return &Error{Kind: ErrInvalidCredentials, Msg: "Invalid credentials"}
}

// Message 返回可以展示给客户端的提示；非领域错误返回空串
func Message(err error) string {
	var de *Error
	if errors.As(err, &de) {
		return de.Error()
	}
	return ""
}
