package router

import (
	"bytes"
	"context"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/protocol/consts"
	"github.com/mbeoliero/kit/log"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"

	"github.com/mbeoliero/realty/pkg/errcode"
	"github.com/mbeoliero/realty/pkg/response"
)

// metricsHandler renders the gatherer in the Prometheus text format as one buffered body
func metricsHandler(gatherer prometheus.Gatherer) app.HandlerFunc {
	format := expfmt.NewFormat(expfmt.TypeTextPlain)
	return func(ctx context.Context, c *app.RequestContext) {
		families, err := gatherer.Gather()
		if err != nil {
			// Gather returns what it could collect next to the error
			log.CtxWarn(ctx, "gather metrics: %v", err)
		}

		var buf bytes.Buffer
		enc := expfmt.NewEncoder(&buf, format)
		for _, mf := range families {
			if err := enc.Encode(mf); err != nil {
				log.CtxError(ctx, "encode metrics failed: name=%s, error=%v", mf.GetName(), err)
				response.ErrorWithCode(ctx, c, errcode.ErrInternalServer)
				return
			}
		}
		c.Data(consts.StatusOK, string(format), buf.Bytes())
	}
}
