package observability

import (
	"context"
	"log"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/prometheus"
	otelmetric "go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/sdk/metric"
)

type Observability struct {
	meterProvider *metric.MeterProvider
	meter         otelmetric.Meter
	itemCounter   otelmetric.Int64Counter
	itemDuration  otelmetric.Float64Histogram
}

func New(serviceName string) *Observability {
	exporter, err := prometheus.New()
	if err != nil {
		log.Printf("Failed to create Prometheus exporter: %v", err)
		return &Observability{}
	}

	provider := metric.NewMeterProvider(metric.WithReader(exporter))
	otel.SetMeterProvider(provider)

	meter := provider.Meter(serviceName)

	itemCounter, _ := meter.Int64Counter(
		"pipeline.items.processed",
		otelmetric.WithDescription("Number of batch items processed"),
	)

	itemDuration, _ := meter.Float64Histogram(
		"pipeline.items.duration",
		otelmetric.WithDescription("Batch item processing duration"),
		otelmetric.WithUnit("ms"),
	)

	return &Observability{
		meterProvider: provider,
		meter:         meter,
		itemCounter:   itemCounter,
		itemDuration:  itemDuration,
	}
}

func (o *Observability) RecordItemProcessed(ctx context.Context, status string) {
	if o.itemCounter != nil {
		o.itemCounter.Add(ctx, 1, otelmetric.WithAttributes(
			attribute.String("status", status),
		))
	}
}

func (o *Observability) RecordItemDuration(ctx context.Context, duration time.Duration, status string) {
	if o.itemDuration != nil {
		o.itemDuration.Record(ctx, float64(duration.Milliseconds()), otelmetric.WithAttributes(
			attribute.String("status", status),
		))
	}
}

func (o *Observability) Shutdown() {
	if o.meterProvider != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		o.meterProvider.Shutdown(ctx)
	}
}
