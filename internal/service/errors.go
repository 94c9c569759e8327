package service

import (
	"errors"
	"fmt"
)

// 登录/注册失败对外不区分原因，防邮箱枚举
var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrEmailExists        = errors.New("email already exists")
)

// ValidationError rejects malformed input before any store mutation.
type ValidationError struct{ Msg string }

func (e *ValidationError) Error() string { return e.Msg }

func invalid(format string, args ...any) error {
	return &ValidationError{Msg: fmt.Sprintf(format, args...)}
}

// NotFoundError targets a nonexistent record; the id is echoed back.
type NotFoundError struct {
	Kind string
	ID   uint
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s with ID : %d not found", e.Kind, e.ID)
}

func notFound(kind string, id uint) error { return &NotFoundError{Kind: kind, ID: id} }
