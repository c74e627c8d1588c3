package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"gamecat/internal/catalog"
	"gamecat/internal/services"
)

func newSearchCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "search <text>",
		Short: "Find entries by name and enrich pending matches",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			query := strings.Join(args, " ")
			s, release, err := ctx.begin(cmd, true)
			if err != nil {
				return ctx.fail(cmd, "search", err)
			}
			defer release()

			searcher, err := s.searcher()
			if err != nil {
				return ctx.fail(cmd, "search", err)
			}
			result, err := searcher.SearchAndEnrich(s.ctx, query)
			if err != nil {
				return ctx.fail(cmd, "search", err)
			}
			msg := fmt.Sprintf("%d matches for %q (enriched %d, removed %d, failed %d)",
				len(result.Entries), result.Query, result.Enriched, result.Removed, result.Failed)
			return ctx.finish(cmd, "search", services.Success(msg, len(result.Entries)), result, func(w io.Writer) {
				if len(result.Entries) > 0 {
					fmt.Fprintln(w, renderEntries(result.Entries))
				}
			}, nil)
		},
	}
}

func renderEntries(entries []catalog.Entry) string {
	rows := make([][]string, 0, len(entries))
	for _, entry := range entries {
		rows = append(rows, []string{
			strconv.FormatInt(entry.ID, 10),
			truncate(entry.Name, 60),
			yesNo(entry.Enriched),
		})
	}
	return renderTable([]string{"ID", "Name", "Enriched"}, rows, []columnAlignment{alignRight, alignLeft, alignLeft})
}
