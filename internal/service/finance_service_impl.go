package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/danivilar/atelier/internal/db"
	"github.com/danivilar/atelier/internal/domain"
	"github.com/danivilar/atelier/internal/importer"
	"github.com/danivilar/atelier/internal/repository"
)

type financeService struct {
	income   repository.IncomeRepo
	expenses repository.ExpenseRepo
	uow      db.UnitOfWork
}

func NewFinanceService(income repository.IncomeRepo, expenses repository.ExpenseRepo, uow db.UnitOfWork) FinanceService {
	return &financeService{income: income, expenses: expenses, uow: uow}
}

func (s *financeService) AddIncome(ctx context.Context, i *domain.Income) error {
	if i.Amount <= 0 {
		return fmt.Errorf("income amount must be positive")
	}
	if i.ID == "" {
		i.ID = uuid.New().String()
	}
	if i.Type == "" {
		i.Type = domain.IncomeOneTime
	}
	i.CreatedAt = time.Now().UTC()
	return s.income.Create(ctx, i)
}

func (s *financeService) AddExpense(ctx context.Context, e *domain.Expense) error {
	if e.Amount <= 0 {
		return fmt.Errorf("expense amount must be positive")
	}
	if e.ID == "" {
		e.ID = uuid.New().String()
	}
	e.CreatedAt = time.Now().UTC()
	return s.expenses.Create(ctx, e)
}

// MonthlySummaries merges income and expense totals per month, sorted
// chronologically. Months with activity on only one side still appear.
func (s *financeService) MonthlySummaries(ctx context.Context, from, to time.Time) ([]domain.MonthlySummary, error) {
	incomeTotals, err := s.income.MonthlyTotals(ctx, from, to)
	if err != nil {
		return nil, err
	}
	expenseTotals, err := s.expenses.MonthlyTotals(ctx, from, to)
	if err != nil {
		return nil, err
	}

	months := make(map[string]struct{}, len(incomeTotals)+len(expenseTotals))
	for m := range incomeTotals {
		months[m] = struct{}{}
	}
	for m := range expenseTotals {
		months[m] = struct{}{}
	}

	summaries := make([]domain.MonthlySummary, 0, len(months))
	for m := range months {
		summaries = append(summaries, domain.MonthlySummary{
			Month:    m,
			Income:   incomeTotals[m],
			Expenses: expenseTotals[m],
		})
	}
	sort.Slice(summaries, func(i, j int) bool { return summaries[i].Month < summaries[j].Month })
	return summaries, nil
}

// ImportBank stores converted bank rows: positive amounts as income,
// negative amounts as expenses. The whole batch is one transaction.
func (s *financeService) ImportBank(ctx context.Context, result *importer.Result) (int, error) {
	if result == nil || len(result.Records) == 0 {
		return 0, nil
	}

	now := time.Now().UTC()
	added := 0
	err := s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txIncome := repository.NewSQLiteIncomeRepo(tx)
		txExpenses := repository.NewSQLiteExpenseRepo(tx)

		for _, rec := range result.Records {
			if rec.Amount >= 0 {
				err := txIncome.Create(ctx, &domain.Income{
					ID:          uuid.New().String(),
					Date:        rec.Date,
					Amount:      rec.Amount,
					Description: rec.Description,
					Type:        domain.IncomeOneTime,
					Category:    rec.Category,
					CreatedAt:   now,
				})
				if err != nil {
					return err
				}
			} else {
				err := txExpenses.Create(ctx, &domain.Expense{
					ID:          uuid.New().String(),
					Date:        rec.Date,
					Amount:      -rec.Amount,
					Description: rec.Description,
					Category:    rec.Category,
					CreatedAt:   now,
				})
				if err != nil {
					return err
				}
			}
			added++
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return added, nil
}
