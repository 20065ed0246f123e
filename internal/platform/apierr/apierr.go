package apierr

import (
	"errors"
	"fmt"
	"net/http"
)

const (
	CodeNotFound            = "not_found"
	CodeInvalidArgument     = "invalid_argument"
	CodeConstraintViolation = "constraint_violation"
	CodeDataCorruption      = "data_corruption"
)

type Error struct {
	Status int
	Code   string
	Err    error
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	if e.Code != "" {
		return e.Code
	}
	if e.Status != 0 {
		return fmt.Sprintf("api error (%d)", e.Status)
	}
	return "api error"
}

func (e *Error) Unwrap() error { return e.Err }

func New(status int, code string, err error) *Error {
	return &Error{Status: status, Code: code, Err: err}
}

func NotFound(format string, args ...interface{}) *Error {
	return New(http.StatusNotFound, CodeNotFound, fmt.Errorf(format, args...))
}

func InvalidArgument(format string, args ...interface{}) *Error {
	return New(http.StatusBadRequest, CodeInvalidArgument, fmt.Errorf(format, args...))
}

func ConstraintViolation(format string, args ...interface{}) *Error {
	return New(http.StatusConflict, CodeConstraintViolation, fmt.Errorf(format, args...))
}

func DataCorruption(err error) *Error {
	return New(http.StatusInternalServerError, CodeDataCorruption, err)
}

func IsCode(err error, code string) bool {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.Code == code
	}
	return false
}

func IsNotFound(err error) bool { return IsCode(err, CodeNotFound) }
