// Package cli defines the cobra command surface for taste.
package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/tastemaker/taste/internal/app"
)

// Options holds CLI-level configuration.
type Options struct {
	Verbose bool
}

// NewRootCmd wires the cobra root command.
func NewRootCmd(ctx context.Context, opts Options) (*cobra.Command, error) {
	container, err := app.BuildContainer(ctx, opts.Verbose)
	if err != nil {
		return nil, err
	}

	root := &cobra.Command{
		Use:           "taste",
		Short:         "taste - learn coding-taste rules from commits",
		Long:          "taste analyzes commits for generalizable style improvements, persists them as rules, and checks source files against the learned corpus.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(newLearnCommand(container))
	root.AddCommand(newCheckCommand(container))
	root.AddCommand(newRulesCommand(container))
	root.AddCommand(newHistoryCommand(container))
	return root, nil
}
