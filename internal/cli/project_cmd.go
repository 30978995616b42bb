package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/danivilar/atelier/internal/cli/formatter"
	"github.com/danivilar/atelier/internal/domain"
)

// resolveProjectID accepts a project ID, a unique ID prefix or a name.
func resolveProjectID(ctx context.Context, app *App, input string) (string, error) {
	if input == "" {
		return "", fmt.Errorf("project is required")
	}

	projects, err := app.Projects.List(ctx, false)
	if err != nil {
		return "", err
	}

	for _, p := range projects {
		if p.ID == input {
			return p.ID, nil
		}
	}
	for _, p := range projects {
		if strings.EqualFold(p.Name, input) {
			return p.ID, nil
		}
	}

	var matches []string
	for _, p := range projects {
		if strings.HasPrefix(p.ID, input) {
			matches = append(matches, p.ID)
		}
	}

	switch len(matches) {
	case 0:
		return "", fmt.Errorf("project not found: %q", input)
	case 1:
		return matches[0], nil
	default:
		return "", fmt.Errorf("project %q is ambiguous (%d matches)", input, len(matches))
	}
}

func newProjectCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "project",
		Short: "Manage projects",
	}

	cmd.AddCommand(
		newProjectAddCmd(app),
		newProjectListCmd(app),
		newProjectCompleteCmd(app),
		newProjectRemoveCmd(app),
	)

	return cmd
}

func newProjectAddCmd(app *App) *cobra.Command {
	var clientRef, name, description, projectType, start, target string
	var budgetHours float64
	var recurring bool

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Create a new project",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			c, err := resolveClient(ctx, app, clientRef)
			if err != nil {
				return err
			}

			startDate, err := parseDateFlag(start, "start")
			if err != nil {
				return err
			}
			targetDate, err := parseDateFlag(target, "target")
			if err != nil {
				return err
			}

			p := &domain.Project{
				ClientID:      c.ID,
				Name:          name,
				Description:   description,
				Type:          projectType,
				Status:        domain.ProjectPlanning,
				StartDate:     startDate,
				TargetEndDate: targetDate,
				IsRecurring:   recurring,
			}
			if budgetHours > 0 {
				p.BudgetHours = &budgetHours
			}

			if err := app.Projects.Create(ctx, p); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Created project %s for %s (%s)\n", p.Name, c.Name, shortID(p.ID))
			return nil
		},
	}

	cmd.Flags().StringVar(&clientRef, "client", "", "Client name or ID")
	cmd.Flags().StringVar(&name, "name", "", "Project name")
	cmd.Flags().StringVar(&description, "desc", "", "Description")
	cmd.Flags().StringVar(&projectType, "type", "custom", "Project type (seo_audit|content_strategy|linkbuilding|technical_seo|custom)")
	addDateFlag(cmd.Flags(), &start, "start", "Start date")
	addDateFlag(cmd.Flags(), &target, "target", "Target end date")
	cmd.Flags().Float64Var(&budgetHours, "budget-hours", 0, "Budgeted hours")
	cmd.Flags().BoolVar(&recurring, "recurring", false, "Recurring engagement")
	_ = cmd.MarkFlagRequired("client")
	_ = cmd.MarkFlagRequired("name")

	return cmd
}

func newProjectListCmd(app *App) *cobra.Command {
	var all bool
	var clientRef string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List projects",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			var projects []*domain.Project
			var err error
			if clientRef != "" {
				c, rerr := resolveClient(ctx, app, clientRef)
				if rerr != nil {
					return rerr
				}
				projects, err = app.Projects.ListByClient(ctx, c.ID)
			} else {
				projects, err = app.Projects.List(ctx, !all)
			}
			if err != nil {
				return err
			}
			if len(projects) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No projects found.")
				return nil
			}

			rows := make([][]string, 0, len(projects))
			for _, p := range projects {
				rows = append(rows, []string{
					shortID(p.ID),
					p.Name,
					string(p.Status),
					formatter.Date(p.StartDate),
					formatter.Date(p.TargetEndDate),
					formatter.Percent(p.ProgressPct),
				})
			}

			fmt.Fprint(cmd.OutOrStdout(), formatter.RenderTable(
				[]string{"ID", "NAME", "STATUS", "START", "TARGET", "PROGRESS"}, rows))
			return nil
		},
	}

	cmd.Flags().BoolVar(&all, "all", false, "Include completed and cancelled projects")
	cmd.Flags().StringVar(&clientRef, "client", "", "Only projects for this client")
	return cmd
}

func newProjectCompleteCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "complete <project>",
		Short: "Mark a project completed",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			id, err := resolveProjectID(ctx, app, args[0])
			if err != nil {
				return err
			}
			if err := app.Projects.Complete(ctx, id); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Project completed.")
			return nil
		},
	}
}

func newProjectRemoveCmd(app *App) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "remove <project>",
		Short: "Delete a project",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			id, err := resolveProjectID(ctx, app, args[0])
			if err != nil {
				return err
			}
			if !force {
				return fmt.Errorf("removing a project detaches its tasks; re-run with --force")
			}
			if err := app.Projects.Delete(ctx, id); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Project removed.")
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Skip the confirmation guard")
	return cmd
}
