package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/danivilar/atelier/internal/cli/formatter"
	"github.com/danivilar/atelier/internal/domain"
	"github.com/danivilar/atelier/internal/importer"
)

func newFinanceCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "finance",
		Short: "Income, expenses and forecasting",
	}

	cmd.AddCommand(
		newFinanceIncomeCmd(app),
		newFinanceExpenseCmd(app),
		newFinanceSummaryCmd(app),
		newFinanceImportCmd(app),
		newFinanceForecastCmd(app),
	)

	return cmd
}

func newFinanceIncomeCmd(app *App) *cobra.Command {
	var clientRef, description, incomeType, category, date string
	var amount float64

	cmd := &cobra.Command{
		Use:   "income",
		Short: "Record income",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			day := time.Now().UTC()
			if date != "" {
				parsed, err := parseDateFlag(date, "date")
				if err != nil {
					return err
				}
				day = *parsed
			}

			inc := &domain.Income{
				Date:        day,
				Amount:      amount,
				Description: description,
				Type:        domain.IncomeType(incomeType),
				Category:    category,
			}
			if clientRef != "" {
				c, err := resolveClient(ctx, app, clientRef)
				if err != nil {
					return err
				}
				inc.ClientID = c.ID
			}

			if err := app.Finance.AddIncome(ctx, inc); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Recorded income of %s\n", formatter.Money(amount, "EUR"))
			return nil
		},
	}

	cmd.Flags().Float64Var(&amount, "amount", 0, "Amount")
	cmd.Flags().StringVar(&clientRef, "client", "", "Client this income came from")
	cmd.Flags().StringVar(&description, "desc", "", "Description")
	cmd.Flags().StringVar(&incomeType, "type", "one_time", "Income type (recurring|one_time)")
	cmd.Flags().StringVar(&category, "category", "", "Category")
	addDateFlag(cmd.Flags(), &date, "date", "Date, defaults to today")
	_ = cmd.MarkFlagRequired("amount")

	return cmd
}

func newFinanceExpenseCmd(app *App) *cobra.Command {
	var description, category, date string
	var amount float64
	var recurring bool

	cmd := &cobra.Command{
		Use:   "expense",
		Short: "Record an expense",
		RunE: func(cmd *cobra.Command, args []string) error {
			day := time.Now().UTC()
			if date != "" {
				parsed, err := parseDateFlag(date, "date")
				if err != nil {
					return err
				}
				day = *parsed
			}

			exp := &domain.Expense{
				Date:        day,
				Amount:      amount,
				Description: description,
				Category:    category,
				IsRecurring: recurring,
			}
			if err := app.Finance.AddExpense(context.Background(), exp); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Recorded expense of %s\n", formatter.Money(amount, "EUR"))
			return nil
		},
	}

	cmd.Flags().Float64Var(&amount, "amount", 0, "Amount")
	cmd.Flags().StringVar(&description, "desc", "", "Description")
	cmd.Flags().StringVar(&category, "category", "", "Category")
	cmd.Flags().BoolVar(&recurring, "recurring", false, "Recurs every month")
	addDateFlag(cmd.Flags(), &date, "date", "Date, defaults to today")
	_ = cmd.MarkFlagRequired("amount")

	return cmd
}

func newFinanceSummaryCmd(app *App) *cobra.Command {
	var months int

	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Monthly income vs expenses",
		RunE: func(cmd *cobra.Command, args []string) error {
			now := time.Now().UTC()
			from := now.AddDate(0, -months+1, 0)

			summaries, err := app.Finance.MonthlySummaries(context.Background(), from, now)
			if err != nil {
				return err
			}
			if len(summaries) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No finance data in this window.")
				return nil
			}

			rows := make([][]string, 0, len(summaries))
			for _, s := range summaries {
				net := formatter.Money(s.Net(), "EUR")
				if s.Net() < 0 {
					net = formatter.StyleRed.Render(net)
				} else {
					net = formatter.StyleGreen.Render(net)
				}
				rows = append(rows, []string{
					s.Month,
					formatter.Money(s.Income, "EUR"),
					formatter.Money(s.Expenses, "EUR"),
					net,
				})
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.RenderTable(
				[]string{"MONTH", "INCOME", "EXPENSES", "NET"}, rows))
			return nil
		},
	}

	cmd.Flags().IntVar(&months, "months", 6, "How many months back to show")
	return cmd
}

func newFinanceImportCmd(app *App) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "import <file.csv>",
		Short: "Import a bank CSV export",
		Long: "Parses a bank or accounting CSV export, auto-detects the date, amount,\n" +
			"description and category columns, and files each row as income or an\n" +
			"expense depending on the amount's sign.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			content, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("reading %s: %w", args[0], err)
			}

			table, err := importer.Parse(string(content))
			if err != nil {
				return err
			}
			if len(table.Rows) == 0 {
				return fmt.Errorf("%s has no data rows", args[0])
			}

			mapping := importer.DetectColumns(table.Headers)
			out := cmd.OutOrStdout()

			interactive := app.IsInteractive != nil && app.IsInteractive()
			if interactive && !yes {
				mapping, err = runImportWizard(out, table, mapping)
				if err != nil {
					return err
				}
			} else if !mapping.Complete() {
				return fmt.Errorf("could not detect date and amount columns in %v; run interactively to map them", table.Headers)
			}

			result, err := importer.Convert(table, mapping)
			if err != nil {
				return err
			}

			added, err := app.Finance.ImportBank(context.Background(), result)
			if err != nil {
				return err
			}

			fmt.Fprintf(out, "Imported %d of %d rows\n", added, len(table.Rows))
			for _, rowErr := range result.Errors {
				fmt.Fprintln(out, formatter.Dim("  skipped "+rowErr.Error()))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&yes, "yes", false, "Accept the detected column mapping without the wizard")
	return cmd
}

func newFinanceForecastCmd(app *App) *cobra.Command {
	var months int
	var regenerate bool

	cmd := &cobra.Command{
		Use:   "forecast",
		Short: "Project income, expenses and taxes",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			var forecasts []*domain.Forecast
			var err error
			if regenerate {
				forecasts, err = app.Forecast.Generate(ctx, months)
			} else {
				forecasts, err = app.Forecast.List(ctx)
				if err == nil && len(forecasts) == 0 {
					forecasts, err = app.Forecast.Generate(ctx, months)
				}
			}
			if err != nil {
				return err
			}

			rows := make([][]string, 0, len(forecasts))
			for _, f := range forecasts {
				rows = append(rows, []string{
					f.Month.Format("2006-01"),
					formatter.Money(f.ProjectedIncome, "EUR"),
					formatter.Money(f.ProjectedExpenses, "EUR"),
					formatter.Money(f.ProjectedTaxes, "EUR"),
					formatter.Money(f.ProjectedProfit, "EUR"),
					fmt.Sprintf("%.0f%%", f.Confidence*100),
				})
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.RenderTable(
				[]string{"MONTH", "INCOME", "EXPENSES", "TAXES", "PROFIT", "CONFIDENCE"}, rows))
			return nil
		},
	}

	cmd.Flags().IntVar(&months, "months", 3, "Months to project")
	cmd.Flags().BoolVar(&regenerate, "regenerate", false, "Recompute instead of showing the stored projection")
	return cmd
}
