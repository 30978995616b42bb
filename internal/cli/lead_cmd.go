package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/danivilar/atelier/internal/cli/formatter"
	"github.com/danivilar/atelier/internal/domain"
)

func newLeadCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "lead",
		Short: "Manage the sales pipeline",
	}

	cmd.AddCommand(
		newLeadAddCmd(app),
		newLeadListCmd(app),
		newLeadStageCmd(app),
		newLeadNoteCmd(app),
		newLeadFollowUpsCmd(app),
		newLeadConvertCmd(app),
		newLeadHistoryCmd(app),
	)

	return cmd
}

func newLeadAddCmd(app *App) *cobra.Command {
	var name, company, email, source, followUp string
	var value float64

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Create a new lead",
		RunE: func(cmd *cobra.Command, args []string) error {
			followUpDate, err := parseDateFlag(followUp, "follow-up")
			if err != nil {
				return err
			}

			l := &domain.Lead{
				Name:         name,
				Company:      company,
				Email:        email,
				Source:       domain.LeadSource(source),
				NextFollowUp: followUpDate,
			}
			if value > 0 {
				l.EstimatedValue = &value
			}

			if err := app.Leads.Create(context.Background(), l); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created lead %s (%s)\n", l.Name, shortID(l.ID))
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Lead name")
	cmd.Flags().StringVar(&company, "company", "", "Company")
	cmd.Flags().StringVar(&email, "email", "", "Contact email")
	cmd.Flags().StringVar(&source, "source", "other", "Source (website|referral|linkedin|conference|cold_outreach|other)")
	cmd.Flags().Float64Var(&value, "value", 0, "Estimated deal value")
	addDateFlag(cmd.Flags(), &followUp, "follow-up", "Next follow-up date")
	_ = cmd.MarkFlagRequired("name")

	return cmd
}

func newLeadListCmd(app *App) *cobra.Command {
	var all bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List pipeline leads by stage",
		RunE: func(cmd *cobra.Command, args []string) error {
			leads, err := app.Leads.List(context.Background(), all)
			if err != nil {
				return err
			}
			if len(leads) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "Pipeline is empty.")
				return nil
			}

			rows := make([][]string, 0, len(leads))
			for _, l := range leads {
				value := "—"
				if l.EstimatedValue != nil {
					value = formatter.Money(*l.EstimatedValue, "EUR")
				}
				rows = append(rows, []string{
					shortID(l.ID),
					l.Name,
					formatter.LeadStagePill(l.Status),
					value,
					formatter.RelativeDate(l.NextFollowUp, time.Now()),
				})
			}

			fmt.Fprint(cmd.OutOrStdout(), formatter.RenderTable(
				[]string{"ID", "NAME", "STAGE", "VALUE", "FOLLOW-UP"}, rows))
			return nil
		},
	}

	cmd.Flags().BoolVar(&all, "all", false, "Include won and lost leads")
	return cmd
}

func newLeadStageCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "stage <lead> <status>",
		Short: "Move a lead to another pipeline stage",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			l, err := resolveLead(ctx, app, args[0])
			if err != nil {
				return err
			}

			to := domain.LeadStatus(args[1])
			if err := app.Leads.ChangeStatus(ctx, l.ID, to); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s is now %s\n", l.Name, to.Label())
			return nil
		},
	}
}

func newLeadNoteCmd(app *App) *cobra.Command {
	var activityType string

	cmd := &cobra.Command{
		Use:   "note <lead> <text>",
		Short: "Record an activity on a lead",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			l, err := resolveLead(ctx, app, args[0])
			if err != nil {
				return err
			}

			a := &domain.LeadActivity{
				LeadID: l.ID,
				Type:   domain.LeadActivityType(activityType),
				Body:   strings.Join(args[1:], " "),
			}
			if err := app.Leads.AddActivity(ctx, a); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Noted on %s\n", l.Name)
			return nil
		},
	}

	cmd.Flags().StringVar(&activityType, "type", "note", "Activity type (note|email_sent|call|meeting|proposal_sent)")
	return cmd
}

func newLeadFollowUpsCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "followups",
		Short: "Leads whose follow-up is due",
		RunE: func(cmd *cobra.Command, args []string) error {
			leads, err := app.Leads.ListFollowUpsDue(context.Background(), time.Now().UTC())
			if err != nil {
				return err
			}
			if len(leads) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No follow-ups due. Well done.")
				return nil
			}

			rows := make([][]string, 0, len(leads))
			for _, l := range leads {
				rows = append(rows, []string{
					shortID(l.ID),
					l.Name,
					formatter.LeadStagePill(l.Status),
					formatter.RelativeDate(l.NextFollowUp, time.Now()),
				})
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.RenderTable(
				[]string{"ID", "NAME", "STAGE", "DUE"}, rows))
			return nil
		},
	}
}

func newLeadConvertCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "convert <lead>",
		Short: "Convert a won lead into a client",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			l, err := resolveLead(ctx, app, args[0])
			if err != nil {
				return err
			}

			c, err := app.Leads.Convert(ctx, l.ID)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Converted %s into client %s (%s)\n", l.Name, c.Name, shortID(c.ID))
			return nil
		},
	}
}

func newLeadHistoryCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "history <lead>",
		Short: "Show a lead's activity trail",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			l, err := resolveLead(ctx, app, args[0])
			if err != nil {
				return err
			}

			activities, err := app.Leads.ListActivities(ctx, l.ID)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, formatter.Header(l.Name))
			if len(activities) == 0 {
				fmt.Fprintln(out, formatter.Dim("No activity yet."))
				return nil
			}
			for _, a := range activities {
				fmt.Fprintf(out, "%s  %-14s %s\n",
					formatter.Dim(a.CreatedAt.Format("2006-01-02 15:04")),
					a.Type, a.Body)
			}
			return nil
		},
	}
}
