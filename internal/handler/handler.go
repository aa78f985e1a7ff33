package handler

import (
	"context"

	"github.com/cloudwego/hertz/pkg/app"

	"github.com/mbeoliero/realty/internal/query"
	"github.com/mbeoliero/realty/internal/service"
	"github.com/mbeoliero/realty/pkg/errcode"
	"github.com/mbeoliero/realty/pkg/response"
)

// bindBody binds the request body into req, answering 400 on malformed input
func bindBody(ctx context.Context, c *app.RequestContext, req interface{}) bool {
	if err := c.BindAndValidate(req); err != nil {
		response.ErrorWithCode(ctx, c, errcode.ErrInvalidParam.WithMsg("invalid request body"))
		return false
	}
	return true
}

// bindList binds the common list query parameters
func bindList(ctx context.Context, c *app.RequestContext) (query.ListParams, bool) {
	var p query.ListParams
	if err := c.BindQuery(&p); err != nil {
		response.ErrorWithCode(ctx, c, errcode.ErrInvalidParam.WithMsg("invalid list parameters"))
		return p, false
	}
	return p, true
}

// sendPage writes a list page with its pagination and stats
func sendPage[T any](ctx context.Context, c *app.RequestContext, page *service.Page[T]) {
	response.List(ctx, c, page.Items, page.Pagination, page.Stats)
}
