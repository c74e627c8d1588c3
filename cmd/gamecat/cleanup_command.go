package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"gamecat/internal/classify"
	"gamecat/internal/logging"
	"gamecat/internal/pipeline"
	"gamecat/internal/services"
)

func newCleanupCommand(ctx *commandContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cleanup",
		Short: "Remove non-game entries from the catalog",
	}
	cmd.AddCommand(newCleanupVerdictCommand(ctx))
	cmd.AddCommand(newCleanupKeywordsCommand(ctx))
	return cmd
}

func newCleanupVerdictCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "verdict",
		Short: "Remove entries whose stored details mark them as non-games",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, release, err := ctx.begin(cmd, true)
			if err != nil {
				return ctx.fail(cmd, "cleanup", err)
			}
			defer release()

			report, err := pipeline.NewCleaner(s.store, s.logger, s.recorder).PurgeNonGamesByRecordedVerdict(s.ctx)
			return finishCleanup(ctx, cmd, report, err)
		},
	}
}

func newCleanupKeywordsCommand(ctx *commandContext) *cobra.Command {
	var keywords []string

	cmd := &cobra.Command{
		Use:   "keywords",
		Short: "Remove entries whose name contains a non-game keyword",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, release, err := ctx.begin(cmd, true)
			if err != nil {
				return ctx.fail(cmd, "cleanup", err)
			}
			defer release()

			set := s.cfg.Keywords()
			if cmd.Flags().Changed("keyword") {
				set = classify.NewKeywords(keywords...)
			}
			s.logger.Debug("keyword cleanup", logging.Args(logging.String("keywords", strings.Join(set.List(), ", ")))...)
			report, err := pipeline.NewCleaner(s.store, s.logger, s.recorder).PurgeByKeywordHeuristic(s.ctx, set)
			return finishCleanup(ctx, cmd, report, err)
		},
	}
	cmd.Flags().StringArrayVarP(&keywords, "keyword", "k", nil, "Keyword to match (repeatable; replaces classifier.non_game_keywords)")
	return cmd
}

func finishCleanup(ctx *commandContext, cmd *cobra.Command, report pipeline.CleanupReport, err error) error {
	if err != nil {
		return ctx.finish(cmd, "cleanup", services.Failure(err), report, nil, err)
	}
	msg := fmt.Sprintf("scanned %d, removed %d, failed %d", report.Scanned, report.Removed, report.Failed)
	return ctx.finish(cmd, "cleanup", services.Success(msg, report.Removed), report, nil, nil)
}
