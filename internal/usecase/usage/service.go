package usage

import (
	"context"
	"time"

	domusage "github.com/kailas-cloud/catalogai/internal/domain/usage"
	"github.com/kailas-cloud/catalogai/internal/domain/usage/budget"
	"github.com/kailas-cloud/catalogai/internal/domain/usage/metrics"
)

// Service handles AI usage reporting.
type Service struct {
	br       BudgetReader
	provider string
	now      func() time.Time
}

// New creates a Service. br can be nil (AI disabled or unlimited).
func New(br BudgetReader, provider string) *Service {
	return &Service{br: br, provider: provider, now: time.Now}
}

// GetReport builds a usage report for the given period.
func (s *Service) GetReport(_ context.Context, period domusage.Period) domusage.Report {
	now := s.now().UTC()
	var start, end int64
	var limit, used, remaining, calls int64

	switch period {
	case domusage.PeriodDay:
		dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
		start = dayStart.UnixMilli()
		end = dayStart.Add(24 * time.Hour).UnixMilli()
		if s.br != nil {
			limit = s.br.DailyLimit()
			used = s.br.DailyUsed()
			remaining = s.br.RemainingDaily()
		}
	case domusage.PeriodMonth:
		monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
		start = monthStart.UnixMilli()
		end = monthStart.AddDate(0, 1, 0).UnixMilli()
		if s.br != nil {
			limit = s.br.MonthlyLimit()
			used = s.br.MonthlyUsed()
			remaining = s.br.RemainingMonthly()
		}
	default:
		// total: monthly counters, call count since process start
		if s.br != nil {
			limit = s.br.MonthlyLimit()
			used = s.br.MonthlyUsed()
			remaining = s.br.RemainingMonthly()
			calls = s.br.Calls()
		}
	}

	exhausted := limit > 0 && remaining <= 0
	b := budget.New(int(limit), int(remaining), exhausted, end)
	m := metrics.New(int(calls), int(used))

	return domusage.NewReport(period, start, end, s.provider, m, b)
}
