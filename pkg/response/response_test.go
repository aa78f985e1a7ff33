package response

import (
	"context"
	"net/http"
	"testing"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/common/config"
	"github.com/cloudwego/hertz/pkg/common/ut"
	"github.com/cloudwego/hertz/pkg/route"
	"github.com/stretchr/testify/assert"

	"github.com/mbeoliero/realty/pkg/errcode"
)

func TestNonNilSlice(t *testing.T) {
	var items []string
	got := nonNilSlice(items)
	assert.NotNil(t, got)
	assert.Len(t, got, 0)

	assert.Equal(t, []int{1, 2}, nonNilSlice([]int{1, 2}))
	assert.Equal(t, []struct{}{}, nonNilSlice(nil))
	assert.Equal(t, "x", nonNilSlice("x"))
}

func TestList_EmptyPage(t *testing.T) {
	e := route.NewEngine(config.NewOptions(nil))
	e.GET("/items", func(ctx context.Context, c *app.RequestContext) {
		var items []string
		List(ctx, c, items, map[string]int{"total": 0}, nil)
	})
	e.GET("/missing", func(ctx context.Context, c *app.RequestContext) {
		Error(ctx, c, errcode.ErrNotFound)
	})

	w := ut.PerformRequest(e, http.MethodGet, "/items", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"success":true,"data":[],"pagination":{"total":0}}`, w.Body.String())

	w = ut.PerformRequest(e, http.MethodGet, "/missing", nil)
	assert.Equal(t, errcode.ErrNotFound.HTTPStatus(), w.Code)
	assert.Contains(t, w.Body.String(), `"success":false`)
}
