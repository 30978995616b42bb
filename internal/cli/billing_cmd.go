package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/danivilar/atelier/internal/cli/formatter"
)

func newBillingCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "billing",
		Short: "Invoicing schedule and billing history",
	}

	cmd.AddCommand(
		newBillingDueCmd(app),
		newBillingInvoiceCmd(app),
		newBillingPaymentCmd(app),
		newBillingHistoryCmd(app),
		newBillingSyncCmd(app),
	)

	return cmd
}

func newBillingDueCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "due",
		Short: "Clients due for invoicing",
		RunE: func(cmd *cobra.Command, args []string) error {
			clients, err := app.Billing.DueForInvoicing(context.Background(), time.Now().UTC())
			if err != nil {
				return err
			}
			if len(clients) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "Nobody to invoice right now.")
				return nil
			}

			rows := make([][]string, 0, len(clients))
			for _, c := range clients {
				fee := "—"
				if c.MonthlyFee != nil {
					fee = formatter.Money(*c.MonthlyFee, c.Currency)
				}
				rows = append(rows, []string{
					shortID(c.ID),
					c.Name,
					string(c.BillingCycle),
					fee,
					formatter.Date(c.NextInvoiceDate),
				})
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.RenderTable(
				[]string{"ID", "CLIENT", "CYCLE", "FEE", "DUE"}, rows))
			return nil
		},
	}
}

func newBillingInvoiceCmd(app *App) *cobra.Command {
	var note string
	var amount float64
	var push bool

	cmd := &cobra.Command{
		Use:   "invoice <client>",
		Short: "Record an invoice sent and advance the schedule",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			c, err := resolveClient(ctx, app, args[0])
			if err != nil {
				return err
			}

			if amount == 0 && c.MonthlyFee != nil {
				amount = *c.MonthlyFee
			}

			if err := app.Billing.RecordInvoiceSent(ctx, c.ID, amount, note); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Invoice of %s recorded for %s\n",
				formatter.Money(amount, c.Currency), c.Name)

			if push {
				if app.Sync == nil {
					return fmt.Errorf("holded sync is not configured; set HOLDED_API_KEY")
				}
				draftID, err := app.Sync.PushInvoiceDraft(ctx, c.ID, amount, note)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Holded draft %s created\n", draftID)
			}
			return nil
		},
	}

	cmd.Flags().Float64Var(&amount, "amount", 0, "Invoice amount, defaults to the client fee")
	cmd.Flags().StringVar(&note, "note", "", "Invoice concept")
	cmd.Flags().BoolVar(&push, "push", false, "Also open a draft invoice in Holded")
	return cmd
}

func newBillingPaymentCmd(app *App) *cobra.Command {
	var note string
	var amount float64

	cmd := &cobra.Command{
		Use:   "payment <client>",
		Short: "Record a payment received",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			c, err := resolveClient(ctx, app, args[0])
			if err != nil {
				return err
			}
			if err := app.Billing.RecordPayment(ctx, c.ID, amount, note); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Payment of %s recorded for %s\n",
				formatter.Money(amount, c.Currency), c.Name)
			return nil
		},
	}

	cmd.Flags().Float64Var(&amount, "amount", 0, "Payment amount")
	cmd.Flags().StringVar(&note, "note", "", "Payment note")
	_ = cmd.MarkFlagRequired("amount")
	return cmd
}

func newBillingHistoryCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "history <client>",
		Short: "Show a client's billing events",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			c, err := resolveClient(ctx, app, args[0])
			if err != nil {
				return err
			}

			events, err := app.Billing.History(ctx, c.ID)
			if err != nil {
				return err
			}
			if len(events) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No billing history yet.")
				return nil
			}

			rows := make([][]string, 0, len(events))
			for _, e := range events {
				amount := "—"
				if e.Amount != nil {
					amount = formatter.Money(*e.Amount, c.Currency)
				}
				rows = append(rows, []string{
					e.OccurredAt.Format("2006-01-02"),
					string(e.Type),
					amount,
					formatter.Truncate(e.Note, 40),
				})
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.RenderTable(
				[]string{"DATE", "EVENT", "AMOUNT", "NOTE"}, rows))
			return nil
		},
	}
}

func newBillingSyncCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "sync",
		Short: "Mirror active clients as Holded contacts",
		RunE: func(cmd *cobra.Command, args []string) error {
			if app.Sync == nil {
				return fmt.Errorf("holded sync is not configured; set HOLDED_API_KEY")
			}
			synced, err := app.Sync.SyncContacts(context.Background())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Synced %d contacts\n", synced)
			return nil
		},
	}
}
