package client

import (
	"errors"
	"net/http"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"
)

const instrumentationName = "github.com/adamwoolhether/hermes/client"

// startSpan starts a client span for req and injects its context into the
// request headers with the global propagator.
func (c *Client) startSpan(req *http.Request) (*http.Request, trace.Span) {
	ctx, span := c.tracer.Start(req.Context(), "hermes "+req.Method,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("http.request.method", req.Method),
			attribute.String("url.full", req.URL.String()),
			attribute.String("server.address", req.URL.Hostname()),
		),
	)

	req = req.WithContext(ctx)
	otel.GetTextMapPropagator().Inject(ctx, propagation.HeaderCarrier(req.Header))

	return req, span
}

func endSpan(span trace.Span, resp *Response, err error) {
	defer span.End()

	if resp != nil {
		span.SetAttributes(attribute.Int("http.response.status_code", resp.StatusCode))
	}

	if err == nil {
		return
	}

	var nerr *NetworkError
	if errors.As(err, &nerr) {
		span.SetAttributes(attribute.String("error.type", nerr.Kind.String()))
		if nerr.Kind == KindServerError {
			span.SetAttributes(attribute.Int("http.response.status_code", nerr.StatusCode))
		}
	}

	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
}
