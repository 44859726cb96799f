package catalogai

import (
	"context"
	"time"

	domusage "github.com/kailas-cloud/catalogai/internal/domain/usage"
)

// UsagePeriod is the aggregation granularity for usage reports.
type UsagePeriod string

// UsagePeriod constants.
const (
	PeriodDay   UsagePeriod = "day"
	PeriodMonth UsagePeriod = "month"
	PeriodTotal UsagePeriod = "total"
)

// UsageReport contains model usage for a time period.
type UsageReport struct {
	Period      UsagePeriod
	Provider    string
	PeriodStart time.Time
	PeriodEnd   time.Time
	// Requests is only counted for PeriodTotal.
	Requests int
	Tokens   int
}

// Usage returns a model usage report for the given period.
// Observer always records success: the underlying use-case is in-memory
// and does not produce errors.
func (c *Client) Usage(ctx context.Context, period UsagePeriod) UsageReport {
	start := time.Now()
	defer func() { c.obs.observe("usage", start, nil) }()

	report := c.usageSvc.GetReport(ctx, domusage.Period(period))
	m := report.Metrics()

	out := UsageReport{
		Period:   UsagePeriod(report.Period()),
		Provider: report.Provider(),
		Requests: m.Requests(),
		Tokens:   m.Tokens(),
	}
	if report.PeriodStart() > 0 {
		out.PeriodStart = time.UnixMilli(report.PeriodStart()).UTC()
		out.PeriodEnd = time.UnixMilli(report.PeriodEnd()).UTC()
	}
	return out
}
