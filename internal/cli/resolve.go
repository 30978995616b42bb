package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/pflag"

	"github.com/danivilar/atelier/internal/domain"
)

// resolveClient accepts a client ID, an ID prefix or a name and returns
// the matching client.
func resolveClient(ctx context.Context, app *App, input string) (*domain.Client, error) {
	if input == "" {
		return nil, fmt.Errorf("client is required")
	}
	return app.Clients.Resolve(ctx, input)
}

// resolveTaskID accepts a task ID or unique ID prefix.
func resolveTaskID(ctx context.Context, app *App, input string) (string, error) {
	if input == "" {
		return "", fmt.Errorf("task ID is required")
	}

	tasks, err := app.Tasks.List(ctx)
	if err != nil {
		return "", err
	}

	for _, t := range tasks {
		if t.ID == input {
			return t.ID, nil
		}
	}

	var matches []string
	for _, t := range tasks {
		if strings.HasPrefix(t.ID, input) {
			matches = append(matches, t.ID)
		}
	}

	switch len(matches) {
	case 0:
		return "", fmt.Errorf("task not found: %q", input)
	case 1:
		return matches[0], nil
	default:
		return "", fmt.Errorf("task ID prefix %q is ambiguous (%d matches)", input, len(matches))
	}
}

// resolveLead accepts a lead ID, an ID prefix or a name.
func resolveLead(ctx context.Context, app *App, input string) (*domain.Lead, error) {
	if input == "" {
		return nil, fmt.Errorf("lead is required")
	}

	leads, err := app.Leads.List(ctx, true)
	if err != nil {
		return nil, err
	}

	for _, l := range leads {
		if l.ID == input {
			return l, nil
		}
	}
	for _, l := range leads {
		if strings.EqualFold(l.Name, input) {
			return l, nil
		}
	}

	var matches []*domain.Lead
	for _, l := range leads {
		if strings.HasPrefix(l.ID, input) {
			matches = append(matches, l)
		}
	}

	switch len(matches) {
	case 0:
		return nil, fmt.Errorf("lead not found: %q", input)
	case 1:
		return matches[0], nil
	default:
		return nil, fmt.Errorf("lead %q is ambiguous (%d matches)", input, len(matches))
	}
}

// addDateFlag registers an optional YYYY-MM-DD flag.
func addDateFlag(fs *pflag.FlagSet, target *string, name, usage string) {
	fs.StringVar(target, name, "", usage+" (YYYY-MM-DD)")
}

// parseDateFlag parses a YYYY-MM-DD flag value; empty returns nil.
func parseDateFlag(value, flag string) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	t, err := time.Parse("2006-01-02", value)
	if err != nil {
		return nil, fmt.Errorf("invalid --%s date %q: expected YYYY-MM-DD", flag, value)
	}
	return &t, nil
}
