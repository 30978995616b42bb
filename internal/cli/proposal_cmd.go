package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/danivilar/atelier/internal/cli/formatter"
	"github.com/danivilar/atelier/internal/domain"
)

func newProposalCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "proposal",
		Short: "Manage proposals",
	}

	cmd.AddCommand(
		newProposalAddCmd(app),
		newProposalListCmd(app),
		newProposalSendCmd(app),
		newProposalAcceptCmd(app),
		newProposalRejectCmd(app),
		newProposalExpireCmd(app),
	)

	return cmd
}

func newProposalAddCmd(app *App) *cobra.Command {
	var leadRef, clientRef, title, company, serviceType, validUntil string
	var amount float64

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Draft a new proposal",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			validDate, err := parseDateFlag(validUntil, "valid-until")
			if err != nil {
				return err
			}

			p := &domain.Proposal{
				Title:       title,
				CompanyName: company,
				ServiceType: domain.ServiceType(serviceType),
				ValidUntil:  validDate,
			}
			if amount > 0 {
				p.Amount = &amount
			}
			if leadRef != "" {
				l, err := resolveLead(ctx, app, leadRef)
				if err != nil {
					return err
				}
				p.LeadID = l.ID
				if p.CompanyName == "" {
					p.CompanyName = l.Company
				}
			}
			if clientRef != "" {
				c, err := resolveClient(ctx, app, clientRef)
				if err != nil {
					return err
				}
				p.ClientID = c.ID
				if p.CompanyName == "" {
					p.CompanyName = c.Company
				}
			}

			if err := app.Proposals.Create(ctx, p); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Drafted proposal %s (%s)\n", p.Title, shortID(p.ID))
			return nil
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "Proposal title")
	cmd.Flags().StringVar(&leadRef, "lead", "", "Lead this proposal is for")
	cmd.Flags().StringVar(&clientRef, "client", "", "Existing client this proposal is for")
	cmd.Flags().StringVar(&company, "company", "", "Company name on the proposal")
	cmd.Flags().StringVar(&serviceType, "service", "custom", "Service (seo_sprint|migration|market_study|consulting_retainer|brand_audit|custom)")
	cmd.Flags().Float64Var(&amount, "amount", 0, "Proposal amount")
	addDateFlag(cmd.Flags(), &validUntil, "valid-until", "Validity deadline")
	_ = cmd.MarkFlagRequired("title")

	return cmd
}

func newProposalListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List proposals",
		RunE: func(cmd *cobra.Command, args []string) error {
			proposals, err := app.Proposals.List(context.Background())
			if err != nil {
				return err
			}
			if len(proposals) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No proposals yet.")
				return nil
			}

			rows := make([][]string, 0, len(proposals))
			for _, p := range proposals {
				amount := "—"
				if p.Amount != nil {
					amount = formatter.Money(*p.Amount, "EUR")
				}
				rows = append(rows, []string{
					shortID(p.ID),
					formatter.Truncate(p.Title, 36),
					p.CompanyName,
					string(p.Status),
					amount,
					formatter.Date(p.ValidUntil),
				})
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.RenderTable(
				[]string{"ID", "TITLE", "COMPANY", "STATUS", "AMOUNT", "VALID UNTIL"}, rows))
			return nil
		},
	}
}

func newProposalSendCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "send <proposal-id>",
		Short: "Mark a draft proposal sent",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.Proposals.Send(context.Background(), args[0]); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Proposal sent.")
			return nil
		},
	}
}

func newProposalAcceptCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "accept <proposal-id>",
		Short: "Mark a sent proposal accepted",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.Proposals.Accept(context.Background(), args[0]); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Proposal accepted. Congratulations.")
			return nil
		},
	}
}

func newProposalRejectCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "reject <proposal-id>",
		Short: "Mark a sent proposal rejected",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.Proposals.Reject(context.Background(), args[0]); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Proposal rejected.")
			return nil
		},
	}
}

func newProposalExpireCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "expire",
		Short: "Expire outstanding proposals past their validity date",
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := app.Proposals.ExpireOutstanding(context.Background(), time.Now().UTC())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Expired %d proposals\n", n)
			return nil
		},
	}
}
