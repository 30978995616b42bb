package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/danivilar/atelier/internal/domain"
	"github.com/danivilar/atelier/internal/repository"
)

// Forecast model constants. Taxes assume the Spanish autónomo regime:
// 21% VAT is passed through, a quarter of it is held back for IRPF and
// quarterly settlements.
const (
	forecastLookbackMonths = 6
	taxVATRate             = 0.21
	taxRetentionShare      = 0.25
	baseConfidence         = 0.85
	confidenceDecay        = 0.10
	minConfidence          = 0.30
)

type forecastService struct {
	forecasts repository.ForecastRepo
	income    repository.IncomeRepo
	expenses  repository.ExpenseRepo
	clients   repository.ClientRepo
}

func NewForecastService(forecasts repository.ForecastRepo, income repository.IncomeRepo,
	expenses repository.ExpenseRepo, clients repository.ClientRepo) ForecastService {
	return &forecastService{forecasts: forecasts, income: income, expenses: expenses, clients: clients}
}

// Generate projects the next months of income, expenses and taxes.
// Projected income per month is the larger of the trailing six-month
// average and the recurring baseline from active client fees; projected
// expenses likewise take the larger of the trailing average and the
// recurring-expense baseline. The baselines win when history is thin or
// lumpy. Confidence decays the further out the month is.
func (s *forecastService) Generate(ctx context.Context, months int) ([]*domain.Forecast, error) {
	if months <= 0 {
		months = 3
	}
	now := time.Now().UTC()
	thisMonth := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	lookbackStart := thisMonth.AddDate(0, -forecastLookbackMonths, 0)

	incomeTotals, err := s.income.MonthlyTotals(ctx, lookbackStart, thisMonth.AddDate(0, 0, -1))
	if err != nil {
		return nil, err
	}
	expenseTotals, err := s.expenses.MonthlyTotals(ctx, lookbackStart, thisMonth.AddDate(0, 0, -1))
	if err != nil {
		return nil, err
	}

	avgIncome := averageOverMonths(incomeTotals, forecastLookbackMonths)
	avgExpenses := averageOverMonths(expenseTotals, forecastLookbackMonths)

	baseline, err := s.recurringBaseline(ctx)
	if err != nil {
		return nil, err
	}

	projectedIncome := avgIncome
	if baseline > projectedIncome {
		projectedIncome = baseline
	}

	expenseBaseline, err := s.recurringExpenseBaseline(ctx)
	if err != nil {
		return nil, err
	}
	projectedExpenses := avgExpenses
	if expenseBaseline > projectedExpenses {
		projectedExpenses = expenseBaseline
	}

	generated := make([]*domain.Forecast, 0, months)
	for i := 0; i < months; i++ {
		month := thisMonth.AddDate(0, i, 0)
		taxes := projectedIncome * taxVATRate * taxRetentionShare
		confidence := baseConfidence - confidenceDecay*float64(i)
		if confidence < minConfidence {
			confidence = minConfidence
		}

		f := &domain.Forecast{
			ID:                uuid.New().String(),
			Month:             month,
			ProjectedIncome:   projectedIncome,
			ProjectedExpenses: projectedExpenses,
			ProjectedTaxes:    taxes,
			ProjectedProfit:   projectedIncome - projectedExpenses - taxes,
			Confidence:        confidence,
			GeneratedAt:       now,
		}
		if err := s.forecasts.Upsert(ctx, f); err != nil {
			return nil, err
		}
		generated = append(generated, f)
	}
	return generated, nil
}

func (s *forecastService) List(ctx context.Context) ([]*domain.Forecast, error) {
	return s.forecasts.List(ctx)
}

// recurringBaseline sums active clients' fees normalized to a monthly
// figure.
func (s *forecastService) recurringBaseline(ctx context.Context) (float64, error) {
	clients, err := s.clients.List(ctx, false)
	if err != nil {
		return 0, err
	}
	var total float64
	for _, c := range clients {
		if c.Status != domain.ClientActive || c.MonthlyFee == nil {
			continue
		}
		switch c.BillingCycle {
		case domain.CycleBimonthly:
			total += *c.MonthlyFee / 2
		case domain.CycleQuarterly:
			total += *c.MonthlyFee / 3
		case domain.CycleAnnual:
			total += *c.MonthlyFee / 12
		case domain.CycleOneTime:
			// not recurring
		default:
			total += *c.MonthlyFee
		}
	}
	return total, nil
}

// recurringExpenseBaseline averages recurring expenses over the months
// that actually carry them, so a subscription logged in one month still
// projects at its full monthly cost.
func (s *forecastService) recurringExpenseBaseline(ctx context.Context) (float64, error) {
	totals, err := s.expenses.RecurringMonthlyTotals(ctx)
	if err != nil {
		return 0, err
	}
	if len(totals) == 0 {
		return 0, nil
	}
	var sum float64
	for _, v := range totals {
		sum += v
	}
	return sum / float64(len(totals)), nil
}

// averageOverMonths divides by the window length, not the number of
// months with data, so a quiet month drags the average down.
func averageOverMonths(totals map[string]float64, window int) float64 {
	if window <= 0 {
		return 0
	}
	var sum float64
	for _, v := range totals {
		sum += v
	}
	return sum / float64(window)
}
