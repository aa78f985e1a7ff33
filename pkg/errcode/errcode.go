package errcode

import (
	"errors"
	"fmt"
	"net/http"
)

// Error represents a business error
type Error struct {
	Code   int    `json:"code"`
	Msg    string `json:"msg"`
	Status int    `json:"-"`
}

func (e *Error) Error() string {
	return fmt.Sprintf("errcode: %d, msg: %s", e.Code, e.Msg)
}

// New creates a new error with code, HTTP status and message
func New(code, status int, msg string) *Error {
	return &Error{Code: code, Status: status, Msg: msg}
}

// Wrap wraps an error with additional context
func (e *Error) Wrap(err error) *Error {
	if err == nil {
		return e
	}
	return &Error{
		Code:   e.Code,
		Status: e.Status,
		Msg:    fmt.Sprintf("%s: %v", e.Msg, err),
	}
}

// WithMsg returns a copy of e carrying msg instead of the default message
func (e *Error) WithMsg(msg string) *Error {
	return &Error{Code: e.Code, Status: e.Status, Msg: msg}
}

// Is reports whether target carries the same code
func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) {
		return false
	}
	return t.Code == e.Code
}

// HTTPStatus returns the HTTP status to answer with, 500 when unset
func (e *Error) HTTPStatus() int {
	if e.Status == 0 {
		return http.StatusInternalServerError
	}
	return e.Status
}

// From converts any error into an *Error, mapping unknown errors to ErrInternalServer
func From(err error) *Error {
	if err == nil {
		return nil
	}
	var e *Error
	if errors.As(err, &e) {
		return e
	}
	return ErrInternalServer.WithMsg(err.Error())
}

// Common error codes
var (
	// Success
	ErrSuccess = New(0, http.StatusOK, "success")

	// Common errors (1xxx)
	ErrInvalidParam   = New(1001, http.StatusBadRequest, "invalid parameter")
	ErrInternalServer = New(1002, http.StatusInternalServerError, "internal server error")
	ErrUnauthorized   = New(1003, http.StatusUnauthorized, "unauthorized")
	ErrForbidden      = New(1004, http.StatusForbidden, "forbidden")
	ErrNotFound       = New(1005, http.StatusNotFound, "not found")
	ErrConflict       = New(1006, http.StatusConflict, "resource already exists")
	ErrNoPermission   = New(1007, http.StatusForbidden, "no permission to access this resource")

	// Auth errors (2xxx)
	ErrTokenInvalid  = New(2001, http.StatusUnauthorized, "token invalid")
	ErrTokenExpired  = New(2002, http.StatusUnauthorized, "token expired")
	ErrTokenMissing  = New(2003, http.StatusUnauthorized, "token missing")
	ErrLoginFailed   = New(2005, http.StatusUnauthorized, "invalid email or password")
	ErrUserNotFound  = New(2006, http.StatusNotFound, "user not found")
	ErrUserExists    = New(2007, http.StatusConflict, "a user with this email already exists")
	ErrPasswordWrong = New(2008, http.StatusUnauthorized, "password wrong")

	// Directory errors (3xxx)
	ErrAgencyNotFound   = New(3001, http.StatusNotFound, "Agency not found")
	ErrAgentNotFound    = New(3002, http.StatusNotFound, "Agent not found")
	ErrCustomerNotFound = New(3003, http.StatusNotFound, "Customer not found")
	ErrCustomerExists   = New(3004, http.StatusConflict, "This customer already exists in your agency.")
	ErrPropertyNotFound = New(3005, http.StatusNotFound, "Property not found")
	ErrMeetingNotFound  = New(3006, http.StatusNotFound, "Meeting not found")
	ErrShareNotFound    = New(3007, http.StatusNotFound, "Property share not found")
	ErrAgencyRequired   = New(3008, http.StatusBadRequest, "agencyId is required")

	// Messaging errors (4xxx)
	ErrConvNotFound     = New(4003, http.StatusNotFound, "Conversation not found")
	ErrReceiverNotFound = New(4004, http.StatusNotFound, "Receiver not found")
	ErrEmptyMessage     = New(4005, http.StatusBadRequest, "message content or attachments required")
	ErrSelfConversation = New(4006, http.StatusBadRequest, "cannot start a conversation with yourself")
	ErrNotificationGone = New(4007, http.StatusNotFound, "Notification not found")
	ErrSubscriptionGone = New(4008, http.StatusNotFound, "Subscription not found")
)
