package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"gamecat/internal/pipeline"
	"gamecat/internal/services"
)

func newEnrichCommand(ctx *commandContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "enrich <id>",
		Short: "Fetch storefront details for one catalog entry",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseEntryID(args[0])
			if err != nil {
				return ctx.fail(cmd, "enrich", err)
			}
			s, release, err := ctx.begin(cmd, true)
			if err != nil {
				return ctx.fail(cmd, "enrich", err)
			}
			defer release()

			enricher, err := s.enricher()
			if err != nil {
				return ctx.fail(cmd, "enrich", err)
			}
			result, err := enricher.Enrich(s.ctx, id)
			if err != nil {
				return ctx.fail(cmd, "enrich", err)
			}
			payload := map[string]any{"id": id, "result": result}
			return ctx.finish(cmd, "enrich", services.Success(enrichMessage(id, result), 1), payload, nil, nil)
		},
	}
	cmd.AddCommand(newEnrichPendingCommand(ctx))
	return cmd
}

func newEnrichPendingCommand(ctx *commandContext) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "pending",
		Short: "Enrich every entry that has no details yet",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, release, err := ctx.begin(cmd, true)
			if err != nil {
				return ctx.fail(cmd, "enrich", err)
			}
			defer release()

			if !cmd.Flags().Changed("limit") {
				limit = s.cfg.Enrichment.PendingLimit
			}
			searcher, err := s.searcher()
			if err != nil {
				return ctx.fail(cmd, "enrich", err)
			}
			report, err := searcher.EnrichAllPending(s.ctx, limit)
			if err != nil {
				return ctx.finish(cmd, "enrich", services.Failure(err), report, nil, err)
			}
			msg := fmt.Sprintf("scanned %d, enriched %d, unchanged %d, removed %d, not found %d, failed %d",
				report.Scanned, report.Enriched, report.Unchanged, report.Removed, report.NotFound, report.Failed)
			return ctx.finish(cmd, "enrich", services.Success(msg, report.Scanned), report, nil, nil)
		},
	}
	cmd.Flags().IntVar(&limit, "limit", 0, "Maximum number of entries to enrich (0 uses enrichment.pending_limit)")
	return cmd
}

func enrichMessage(id int64, result pipeline.EnrichResult) string {
	switch result {
	case pipeline.EnrichCreated:
		return fmt.Sprintf("entry %d enriched", id)
	case pipeline.EnrichUnchanged:
		return fmt.Sprintf("entry %d already enriched", id)
	case pipeline.EnrichRemoved:
		return fmt.Sprintf("entry %d is not a game and was removed", id)
	default:
		return fmt.Sprintf("entry %d: %s", id, result)
	}
}

func parseEntryID(raw string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil || id <= 0 {
		return 0, services.Wrap(services.ErrValidation, "cli", "parse id", fmt.Sprintf("%q is not a positive app id", raw), nil)
	}
	return id, nil
}
