package response

import (
	"context"
	"net/http"
	"reflect"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/mbeoliero/kit/log"

	"github.com/mbeoliero/realty/pkg/errcode"
)

// Response represents a standard API response
type Response struct {
	Success    bool        `json:"success"`
	Code       int         `json:"code,omitempty"`
	Message    string      `json:"message,omitempty"`
	Data       interface{} `json:"data,omitempty"`
	Pagination interface{} `json:"pagination,omitempty"`
	Stats      interface{} `json:"stats,omitempty"`
}

// listResponse always carries data, so an empty page renders as "data": []
type listResponse struct {
	Success    bool        `json:"success"`
	Data       interface{} `json:"data"`
	Pagination interface{} `json:"pagination,omitempty"`
	Stats      interface{} `json:"stats,omitempty"`
}

// Success sends a 200 response with data
func Success(ctx context.Context, c *app.RequestContext, data interface{}) {
	c.JSON(http.StatusOK, Response{
		Success: true,
		Data:    data,
	})
}

// Created sends a 201 response with data and message
func Created(ctx context.Context, c *app.RequestContext, data interface{}, msg string) {
	c.JSON(http.StatusCreated, Response{
		Success: true,
		Message: msg,
		Data:    data,
	})
}

// Message sends a 200 response carrying only a message
func Message(ctx context.Context, c *app.RequestContext, msg string) {
	c.JSON(http.StatusOK, Response{
		Success: true,
		Message: msg,
	})
}

// List sends a page of items; a nil slice is rendered as []
func List(ctx context.Context, c *app.RequestContext, data interface{}, pagination interface{}, stats interface{}) {
	c.JSON(http.StatusOK, listResponse{
		Success:    true,
		Data:       nonNilSlice(data),
		Pagination: pagination,
		Stats:      stats,
	})
}

// Error sends an error response with the status carried by the error
func Error(ctx context.Context, c *app.RequestContext, err error) {
	e := errcode.From(err)
	if e.HTTPStatus() >= http.StatusInternalServerError {
		log.CtxError(ctx, "request failed: path=%s, error=%v", c.Path(), err)
	}
	c.JSON(e.HTTPStatus(), Response{
		Success: false,
		Code:    e.Code,
		Message: e.Msg,
	})
}

// ErrorWithCode sends an error response with specific error code
func ErrorWithCode(ctx context.Context, c *app.RequestContext, e *errcode.Error) {
	c.JSON(e.HTTPStatus(), Response{
		Success: false,
		Code:    e.Code,
		Message: e.Msg,
	})
}

// AbortWithCode writes an error response and stops the handler chain
func AbortWithCode(ctx context.Context, c *app.RequestContext, e *errcode.Error) {
	ErrorWithCode(ctx, c, e)
	c.Abort()
}

func nonNilSlice(data interface{}) interface{} {
	if data == nil {
		return []struct{}{}
	}
	v := reflect.ValueOf(data)
	if v.Kind() == reflect.Slice && v.IsNil() {
		return reflect.MakeSlice(v.Type(), 0, 0).Interface()
	}
	return data
}
