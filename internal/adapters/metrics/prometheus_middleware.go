package metrics

import (
	"context"
	"reflect"
	"strings"
	"time"

	"github.com/andrescamacho/architect-tracker/internal/application/mediator"
)

// PrometheusMiddleware records duration and success of every command and query
// sent through the mediator. A nil collector disables recording.
func PrometheusMiddleware(collector *RequestMetricsCollector) mediator.Middleware {
	return func(ctx context.Context, request mediator.Request, next mediator.HandlerFunc) (mediator.Response, error) {
		if collector == nil {
			return next(ctx, request)
		}

		start := time.Now()
		response, err := next(ctx, request)
		collector.RecordRequest(RequestName(request), time.Since(start).Seconds(), err)

		return response, err
	}
}

// RequestName returns the bare type name of a request:
//   - "*commands.ApplyCargoTransfersCommand" → "ApplyCargoTransfersCommand"
//   - "*queries.GetFacilityViewQuery" → "GetFacilityViewQuery"
func RequestName(request mediator.Request) string {
	if request == nil {
		return "UnknownCommand"
	}
	fullName := strings.TrimPrefix(reflect.TypeOf(request).String(), "*")
	if idx := strings.LastIndex(fullName, "."); idx >= 0 {
		return fullName[idx+1:]
	}
	return fullName
}
