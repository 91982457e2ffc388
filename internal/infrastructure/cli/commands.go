package cli

import (
	"context"
	"time"

	"github.com/spf13/cobra"

	"github.com/tastemaker/taste/internal/app"
	"github.com/tastemaker/taste/internal/domain"
)

func newLearnCommand(container *app.Container) *cobra.Command {
	var (
		debug   bool
		timeout time.Duration
	)

	cmd := &cobra.Command{
		Use:   "learn <commit-url>",
		Short: "Learn a new taste rule from a commit",
		Long: "Analyzes a commit diff to extract a generalizable coding-style pattern " +
			"and creates a new rule if a clear improvement is detected.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if timeout > 0 {
				var cancel context.CancelFunc
				ctx, cancel = context.WithTimeout(ctx, timeout)
				defer cancel()
			}

			learnService, err := container.BuildLearnService()
			if err != nil {
				return err
			}

			result, err := learnService.Run(domain.LearnRequest{
				Context:   ctx,
				CommitURL: args[0],
				Debug:     debug,
			})
			if err != nil {
				return err
			}

			RenderLearnResult(result)
			return nil
		},
	}

	cmd.Flags().BoolVar(&debug, "debug", false, "Enable verbose logging")
	cmd.Flags().DurationVar(&timeout, "timeout", 0, "Override request timeout (default from config)")
	return cmd
}

func newCheckCommand(container *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "check <files...>",
		Short: "Check source files against the learned rules",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			report, err := container.CheckService.Run(args)
			if err != nil {
				return err
			}
			RenderCheckReport(report)
			return nil
		},
	}
}

func newRulesCommand(container *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "rules",
		Short: "List all learned taste rules",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			stored, err := container.CatalogService.List()
			if err != nil {
				return err
			}
			RenderRules(stored)
			return nil
		},
	}
}

func newHistoryCommand(container *app.Container) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show recent learn invocations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			records, err := container.Ledger.Recent(limit)
			if err != nil {
				return err
			}
			RenderHistory(records)
			return nil
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 20, "Number of entries to show")
	return cmd
}
