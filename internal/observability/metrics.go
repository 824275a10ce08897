package observability

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	promexporter "go.opentelemetry.io/otel/exporters/prometheus"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
)

// Metrics bundles the provider, the scrape handler, and the instruments the
// service records on.
type Metrics struct {
	Provider *sdkmetric.MeterProvider
	Handler  http.Handler

	ScoreComputations metric.Int64Counter
	LoanApplications  metric.Int64Counter
	LoanDecisions     metric.Int64Counter
	Repayments        metric.Int64Counter
}

// InitMetrics sets up the Prometheus exporter and the domain counters.
func InitMetrics(serviceName string) (*Metrics, error) {
	exporter, err := promexporter.New()
	if err != nil {
		return nil, err
	}

	provider := sdkmetric.NewMeterProvider(
		sdkmetric.WithReader(exporter),
	)
	meter := provider.Meter(serviceName)

	m := &Metrics{
		Provider: provider,
		Handler:  promhttp.Handler(),
	}

	if m.ScoreComputations, err = meter.Int64Counter("trust_score_computations_total",
		metric.WithDescription("Trust score recalculations performed")); err != nil {
		return nil, err
	}
	if m.LoanApplications, err = meter.Int64Counter("loan_applications_total",
		metric.WithDescription("Loan applications submitted")); err != nil {
		return nil, err
	}
	if m.LoanDecisions, err = meter.Int64Counter("loan_decisions_total",
		metric.WithDescription("Approve, reject, and disburse decisions")); err != nil {
		return nil, err
	}
	if m.Repayments, err = meter.Int64Counter("loan_repayments_total",
		metric.WithDescription("Repayments recorded")); err != nil {
		return nil, err
	}

	return m, nil
}
