package observability

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// Metrics holds the configurator's counters. It satisfies the recorder
// interfaces of the pricing, wizard and submission packages.
type Metrics struct {
	SessionsStarted      metric.Int64Counter
	Submissions          metric.Int64Counter
	NotificationFailures metric.Int64Counter
	PricingFallbacks     metric.Int64Counter
}

// NewMetrics creates the instruments on meter; nil uses the global provider.
func NewMetrics(meter metric.Meter) (*Metrics, error) {
	if meter == nil {
		meter = otel.Meter("configurator")
	}

	sessions, err := meter.Int64Counter("configurator.sessions.started",
		metric.WithDescription("Wizard sessions started"),
	)
	if err != nil {
		return nil, err
	}

	submissions, err := meter.Int64Counter("configurator.submissions",
		metric.WithDescription("Submit attempts by result"),
	)
	if err != nil {
		return nil, err
	}

	notifications, err := meter.Int64Counter("configurator.notifications.failed",
		metric.WithDescription("Lead notifications that could not be delivered"),
	)
	if err != nil {
		return nil, err
	}

	fallbacks, err := meter.Int64Counter("configurator.pricing.fallback",
		metric.WithDescription("Sessions that started on the built-in pricing table"),
	)
	if err != nil {
		return nil, err
	}

	return &Metrics{
		SessionsStarted:      sessions,
		Submissions:          submissions,
		NotificationFailures: notifications,
		PricingFallbacks:     fallbacks,
	}, nil
}

func (m *Metrics) RecordSessionStarted(ctx context.Context, productLine string) {
	m.SessionsStarted.Add(ctx, 1,
		metric.WithAttributes(attribute.String("product_line", productLine)),
	)
}

// RecordSubmission counts a submit attempt; result is ok, invalid,
// upload_failed or persist_failed.
func (m *Metrics) RecordSubmission(ctx context.Context, productLine, result string) {
	m.Submissions.Add(ctx, 1,
		metric.WithAttributes(
			attribute.String("product_line", productLine),
			attribute.String("result", result),
		),
	)
}

func (m *Metrics) RecordNotificationFailure(ctx context.Context, channel string) {
	m.NotificationFailures.Add(ctx, 1,
		metric.WithAttributes(attribute.String("channel", channel)),
	)
}

func (m *Metrics) RecordPricingFallback(ctx context.Context, productLine string) {
	m.PricingFallbacks.Add(ctx, 1,
		metric.WithAttributes(attribute.String("product_line", productLine)),
	)
}
