package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/danivilar/atelier/internal/cli/formatter"
	"github.com/danivilar/atelier/internal/domain"
)

func newClientCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "client",
		Short: "Manage clients",
	}

	cmd.AddCommand(
		newClientAddCmd(app),
		newClientListCmd(app),
		newClientShowCmd(app),
		newClientUpdateCmd(app),
		newClientHealthCmd(app),
		newClientContactCmd(app),
		newClientContactsCmd(app),
		newClientRemoveCmd(app),
	)

	return cmd
}

func newClientAddCmd(app *App) *cobra.Command {
	var name, company, email, contract, cycle, currency string
	var fee, budget float64
	var billingDay int

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Create a new client",
		RunE: func(cmd *cobra.Command, args []string) error {
			c := &domain.Client{
				Name:         name,
				Company:      company,
				Email:        email,
				ContractType: domain.ContractType(contract),
				BillingCycle: domain.BillingCycle(cycle),
				BillingDay:   billingDay,
				Currency:     currency,
			}
			if fee > 0 {
				c.MonthlyFee = &fee
			}
			if budget > 0 {
				c.MonthlyBudget = &budget
			}

			if err := app.Clients.Create(context.Background(), c); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Created client %s (%s)\n", c.Name, shortID(c.ID))
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Client name")
	cmd.Flags().StringVar(&company, "company", "", "Company name")
	cmd.Flags().StringVar(&email, "email", "", "Contact email")
	cmd.Flags().StringVar(&contract, "contract", "monthly", "Contract type (monthly|one_time)")
	cmd.Flags().StringVar(&cycle, "cycle", "monthly", "Billing cycle (monthly|bimonthly|quarterly|annual|one_time)")
	cmd.Flags().StringVar(&currency, "currency", "EUR", "Billing currency")
	cmd.Flags().Float64Var(&fee, "fee", 0, "Recurring fee per billing cycle")
	cmd.Flags().Float64Var(&budget, "budget", 0, "Monthly hours budget in money terms")
	cmd.Flags().IntVar(&billingDay, "billing-day", 0, "Day of month invoices go out (1-28)")
	_ = cmd.MarkFlagRequired("name")

	return cmd
}

func newClientListCmd(app *App) *cobra.Command {
	var all bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List clients",
		RunE: func(cmd *cobra.Command, args []string) error {
			clients, err := app.Clients.List(context.Background(), all)
			if err != nil {
				return err
			}
			if len(clients) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No clients yet. Add one with: atelier client add --name ...")
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
					formatter.ClientStatusPill(c.Status),
					fee,
					formatter.Date(c.NextInvoiceDate),
				})
			}

			fmt.Fprint(cmd.OutOrStdout(), formatter.RenderTable(
				[]string{"ID", "NAME", "STATUS", "FEE", "NEXT INVOICE"}, rows))
			return nil
		},
	}

	cmd.Flags().BoolVar(&all, "all", false, "Include finished clients")
	return cmd
}

func newClientShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show <client>",
		Short: "Show one client in detail",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			c, err := resolveClient(ctx, app, args[0])
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, formatter.Header(c.Name))
			fmt.Fprintf(out, "Status:        %s\n", formatter.ClientStatusPill(c.Status))
			if c.Company != "" {
				fmt.Fprintf(out, "Company:       %s\n", c.Company)
			}
			if c.Email != "" {
				fmt.Fprintf(out, "Email:         %s\n", c.Email)
			}
			fmt.Fprintf(out, "Contract:      %s, billed %s\n", c.ContractType, c.BillingCycle)
			if c.MonthlyFee != nil {
				fmt.Fprintf(out, "Fee:           %s\n", formatter.Money(*c.MonthlyFee, c.Currency))
			}
			fmt.Fprintf(out, "Next invoice:  %s\n", formatter.Date(c.NextInvoiceDate))
			fmt.Fprintf(out, "Last invoiced: %s\n", formatter.Date(c.LastInvoicedAt))

			projects, err := app.Projects.ListByClient(ctx, c.ID)
			if err != nil {
				return err
			}
			if len(projects) > 0 {
				fmt.Fprintln(out)
				fmt.Fprintln(out, formatter.Bold("Projects"))
				for _, p := range projects {
					fmt.Fprintf(out, "  %s  %s  %s\n",
						shortID(p.ID), p.Name, formatter.Percent(p.ProgressPct))
				}
			}
			return nil
		},
	}
}

func newClientUpdateCmd(app *App) *cobra.Command {
	var status, email string
	var fee float64

	cmd := &cobra.Command{
		Use:   "update <client>",
		Short: "Update client fields",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			c, err := resolveClient(ctx, app, args[0])
			if err != nil {
				return err
			}

			if cmd.Flags().Changed("status") {
				c.Status = domain.ClientStatus(strings.ToLower(status))
			}
			if cmd.Flags().Changed("email") {
				c.Email = email
			}
			if cmd.Flags().Changed("fee") {
				c.MonthlyFee = &fee
			}

			if err := app.Clients.Update(ctx, c); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Updated %s\n", c.Name)
			return nil
		},
	}

	cmd.Flags().StringVar(&status, "status", "", "Status (active|paused|finished)")
	cmd.Flags().StringVar(&email, "email", "", "Contact email")
	cmd.Flags().Float64Var(&fee, "fee", 0, "Recurring fee per billing cycle")
	return cmd
}

func newClientHealthCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "health [client]",
		Short: "Show client health scores",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			out := cmd.OutOrStdout()

			if len(args) == 1 {
				c, err := resolveClient(ctx, app, args[0])
				if err != nil {
					return err
				}
				score, err := app.Health.ScoreClient(ctx, c.ID)
				if err != nil {
					return err
				}

				fmt.Fprintln(out, formatter.Header(score.ClientName))
				fmt.Fprintf(out, "%s  %d/100\n\n", formatter.RiskIndicator(score.Risk), score.Total)
				for _, f := range score.Factors {
					fmt.Fprintf(out, "  %-16s %2d/%d\n", f.Name, f.Points, f.Max)
				}
				return nil
			}

			scores, err := app.Health.ScoreAll(ctx)
			if err != nil {
				return err
			}
			rows := make([][]string, 0, len(scores))
			for _, s := range scores {
				rows = append(rows, []string{
					s.ClientName,
					fmt.Sprintf("%d", s.Total),
					formatter.RiskIndicator(s.Risk),
				})
			}
			fmt.Fprint(out, formatter.RenderTable([]string{"CLIENT", "SCORE", "RISK"}, rows))
			return nil
		},
	}
}

func newClientContactCmd(app *App) *cobra.Command {
	var channel, summary, followUp string

	cmd := &cobra.Command{
		Use:   "contact <client>",
		Short: "Log a touchpoint with a client",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			c, err := resolveClient(ctx, app, args[0])
			if err != nil {
				return err
			}

			comm := &domain.Communication{
				ClientID: c.ID,
				Channel:  domain.CommunicationChannel(channel),
				Summary:  summary,
			}
			if followUp != "" {
				date, err := parseDateFlag(followUp, "follow-up")
				if err != nil {
					return err
				}
				comm.RequiresFollowUp = true
				comm.FollowUpDate = date
			}

			if err := app.Clients.LogContact(ctx, comm); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Logged %s contact with %s\n", comm.Channel, c.Name)
			return nil
		},
	}

	cmd.Flags().StringVar(&channel, "channel", "email", "Channel (email|call|meeting|whatsapp|slack|other)")
	cmd.Flags().StringVar(&summary, "summary", "", "What was discussed")
	addDateFlag(cmd.Flags(), &followUp, "follow-up", "Schedule a follow-up for this date")
	_ = cmd.MarkFlagRequired("summary")

	return cmd
}

func newClientContactsCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "contacts <client>",
		Short: "Show a client's contact history",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			c, err := resolveClient(ctx, app, args[0])
			if err != nil {
				return err
			}

			comms, err := app.Clients.ListContacts(ctx, c.ID)
			if err != nil {
				return err
			}
			if len(comms) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No contacts logged yet.")
				return nil
			}

			rows := make([][]string, 0, len(comms))
			for _, comm := range comms {
				followUp := "—"
				if comm.RequiresFollowUp {
					followUp = formatter.Date(comm.FollowUpDate)
				}
				rows = append(rows, []string{
					comm.OccurredAt.Format("2006-01-02"),
					string(comm.Channel),
					formatter.Truncate(comm.Summary, 48),
					followUp,
				})
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.RenderTable(
				[]string{"DATE", "CHANNEL", "SUMMARY", "FOLLOW-UP"}, rows))
			return nil
		},
	}
}

func newClientRemoveCmd(app *App) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "remove <client>",
		Short: "Delete a client and all its data",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			c, err := resolveClient(ctx, app, args[0])
			if err != nil {
				return err
			}
			if !force {
				return fmt.Errorf("removing %s deletes its projects, tasks and history; re-run with --force", c.Name)
			}
			if err := app.Clients.Delete(ctx, c.ID); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed %s\n", c.Name)
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Skip the confirmation guard")
	return cmd
}

// shortID returns the first UUID segment, enough to resolve by prefix.
func shortID(id string) string {
	if i := strings.IndexByte(id, '-'); i > 0 {
		return id[:i]
	}
	return id
}
