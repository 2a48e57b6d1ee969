package event

import (
	"context"

	"go.opentelemetry.io/otel/propagation"
)

// Otel carries trace context across the event bus so consumers can link
// their spans back to the producing request.
type Otel struct {
	Carrier map[string]string `json:"otel_carrier,omitempty"`
}

func (o *Otel) Propagate(ctx context.Context) {
	if o.Carrier == nil {
		o.Carrier = make(map[string]string)
	}

	propagation.TraceContext{}.Inject(ctx, propagation.MapCarrier(o.Carrier))
	propagation.Baggage{}.Inject(ctx, propagation.MapCarrier(o.Carrier))
}

func (o *Otel) Extract() context.Context {
	if o.Carrier == nil {
		o.Carrier = make(map[string]string)
	}

	ctx := context.Background()
	ctx = propagation.TraceContext{}.Extract(ctx, propagation.MapCarrier(o.Carrier))
	ctx = propagation.Baggage{}.Extract(ctx, propagation.MapCarrier(o.Carrier))

	return ctx
}
