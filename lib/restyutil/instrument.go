package restyutil

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"sync/atomic"
	"time"

	"github.com/go-resty/resty/v2"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/semconv/v1.13.0/httpconv"
	"go.opentelemetry.io/otel/trace"
)

// InstrumentOutput receives a rendered dump of every request/response pair
// when debug logging is enabled.
type InstrumentOutput interface {
	Write(id string, contents string)
}

var meter = otel.Meter("sabrmetrics/restyutil")
var requestCounter, _ = meter.Int64Counter(
	"http.client.requests",
	metric.WithDescription("Number of upstream requests by status code."),
)
var durationHistogram, _ = meter.Float64Histogram(
	"http.client.duration",
	metric.WithUnit("s"),
)

type instrumentCtx struct {
	output    InstrumentOutput
	tracer    trace.Tracer
	idcounter *uint64
}

type reqCtxKeyType int

var reqCtxKey reqCtxKeyType

type reqCtx struct {
	id        string
	startTime time.Time
}

// InstrumentClient attaches tracing, request metrics and debug logging to
// a resty client.
//
// `tracer` can be nil, it will default to a library name of "resty".
// `output` can also be nil, if it is request/response dumps are skipped.
func InstrumentClient(client *resty.Client, tracer trace.Tracer, output InstrumentOutput) {
	if tracer == nil {
		tracer = otel.Tracer("resty")
	}

	var idcounter uint64
	i := instrumentCtx{output: output, tracer: tracer, idcounter: &idcounter}
	client.OnBeforeRequest(i.onBeforeRequest)
	client.OnAfterResponse(i.onAfterResponse)
	client.OnError(i.onError)
}

func (i instrumentCtx) onBeforeRequest(_ *resty.Client, req *resty.Request) error {
	ctx, _ := i.tracer.Start(req.Context(), req.Method)

	id := strconv.FormatUint(atomic.AddUint64(i.idcounter, 1), 10)
	slog.DebugContext(
		ctx, "start request",
		"method", req.Method,
		"url", req.URL,
		"message_id", id,
	)
	ctx = context.WithValue(ctx, reqCtxKey, reqCtx{id: id, startTime: time.Now()})

	req.SetContext(ctx)
	return nil
}

func (i instrumentCtx) onAfterResponse(_ *resty.Client, res *resty.Response) error {
	ctx := res.Request.Context()
	span := trace.SpanFromContext(ctx)
	defer span.End()

	// setting request attributes here since res.Request.RawRequest is nil in onBeforeRequest
	span.SetName(fmt.Sprintf("http %s", res.Request.Method))
	span.SetAttributes(httpconv.ClientRequest(res.Request.RawRequest)...)
	span.SetAttributes(httpconv.ClientResponse(res.RawResponse)...)
	if !res.IsSuccess() {
		span.SetStatus(codes.Error, res.Status())
	}

	requestCounter.Add(ctx, 1, metric.WithAttributes(
		attribute.Int("status", res.StatusCode()),
	))

	info, ok := ctx.Value(reqCtxKey).(reqCtx)
	if !ok {
		return nil
	}
	durationHistogram.Record(ctx, time.Since(info.startTime).Seconds())

	if i.output != nil && slog.Default().Enabled(ctx, slog.LevelDebug) {
		i.output.Write(info.id, formatHttpMessage(res))
	}
	slog.DebugContext(
		ctx, "request finished",
		"method", res.Request.Method,
		"url", res.Request.URL,
		"status", res.StatusCode(),
		"message_id", info.id,
	)

	return nil
}

func (i instrumentCtx) onError(req *resty.Request, err error) {
	ctx := req.Context()
	span := trace.SpanFromContext(ctx)
	defer span.End()

	span.RecordError(err)
	span.SetStatus(codes.Error, "request failed")
	span.SetName(fmt.Sprintf("http %s", req.Method))

	info, _ := ctx.Value(reqCtxKey).(reqCtx)
	slog.ErrorContext(
		ctx, "request failed",
		"method", req.Method,
		"url", req.URL,
		"err", err,
		"message_id", info.id,
	)

	if req.RawRequest == nil {
		return
	}
	span.SetAttributes(httpconv.ClientRequest(req.RawRequest)...)
}
