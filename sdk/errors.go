package sdk

import (
	"errors"
	"fmt"
)

// Error represents an API error
type Error struct {
	Status int    `json:"-"`
	Code   int    `json:"code"`
	Msg    string `json:"message"`
}

func (e *Error) Error() string {
	return fmt.Sprintf("status: %d, code: %d, msg: %s", e.Status, e.Code, e.Msg)
}

// Is matches errors by code so callers can use errors.Is with the predefined values
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Code == e.Code
}

// NewError creates a new error
func NewError(code int, msg string) *Error {
	return &Error{Code: code, Msg: msg}
}

// StatusOf returns the HTTP status carried by an API error, or 0
func StatusOf(err error) int {
	var e *Error
	if errors.As(err, &e) {
		return e.Status
	}
	return 0
}

// Common error codes
const (
	CodeInvalidParam   = 1001
	CodeInternalServer = 1002
	CodeUnauthorized   = 1003
	CodeForbidden      = 1004
	CodeNotFound       = 1005
	CodeConflict       = 1006
	CodeNoPermission   = 1007

	CodeTokenInvalid = 2001
	CodeTokenExpired = 2002
	CodeTokenMissing = 2003
	CodeLoginFailed  = 2005
	CodeUserNotFound = 2006
	CodeUserExists   = 2007

	CodeAgencyNotFound   = 3001
	CodeCustomerNotFound = 3003
	CodeCustomerExists   = 3004
	CodePropertyNotFound = 3005

	CodeConvNotFound     = 4003
	CodeReceiverNotFound = 4004
	CodeEmptyMessage     = 4005
)

// Predefined errors
var (
	ErrInvalidParam = NewError(CodeInvalidParam, "invalid parameter")
	ErrUnauthorized = NewError(CodeUnauthorized, "unauthorized")
	ErrForbidden    = NewError(CodeForbidden, "forbidden")
	ErrNotFound     = NewError(CodeNotFound, "not found")
	ErrNoPermission = NewError(CodeNoPermission, "no permission to access this resource")

	ErrTokenInvalid = NewError(CodeTokenInvalid, "token invalid")
	ErrTokenExpired = NewError(CodeTokenExpired, "token expired")
	ErrTokenMissing = NewError(CodeTokenMissing, "token missing")
	ErrLoginFailed  = NewError(CodeLoginFailed, "invalid email or password")
	ErrUserExists   = NewError(CodeUserExists, "a user with this email already exists")

	ErrCustomerExists = NewError(CodeCustomerExists, "This customer already exists in your agency.")
	ErrConvNotFound   = NewError(CodeConvNotFound, "Conversation not found")
)
