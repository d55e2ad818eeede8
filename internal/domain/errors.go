package domain

import "errors"

// 核心层统一错误分类，边界层据此映射 HTTP 状态码。
type ErrorKind int

const (
	KindValidation ErrorKind = iota + 1
	KindConflict
	KindNotFound
	KindForbidden
	KindUnauthorized
	KindInternal
)

type Error struct {
	Kind ErrorKind
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	if e.Msg != "" {
		return e.Msg
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return "error"
}

func (e *Error) Unwrap() error { return e.Err }

func ErrValidation(msg string) error   { return &Error{Kind: KindValidation, Msg: msg} }
func ErrConflict(msg string) error     { return &Error{Kind: KindConflict, Msg: msg} }
func ErrNotFound(msg string) error     { return &Error{Kind: KindNotFound, Msg: msg} }
func ErrForbidden(msg string) error    { return &Error{Kind: KindForbidden, Msg: msg} }
func ErrUnauthorized(msg string) error { return &Error{Kind: KindUnauthorized, Msg: msg} }

// ErrInternal 包装存储等底层错误，避免细节泄漏给调用方
func ErrInternal(msg string, err error) error {
	return &Error{Kind: KindInternal, Msg: msg, Err: err}
}

// KindOf 未分类错误一律按 Internal 处理
func KindOf(err error) ErrorKind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}
