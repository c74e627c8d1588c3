package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"gamecat/internal/catalog"
	"gamecat/internal/services"
)

func newListCommand(ctx *commandContext) *cobra.Command {
	var pending bool
	var limit int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List catalog entries",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, release, err := ctx.begin(cmd, false)
			if err != nil {
				return ctx.fail(cmd, "list", err)
			}
			defer release()

			entries, err := s.store.List(s.ctx, catalog.ListFilter{PendingOnly: pending, Limit: limit})
			if err != nil {
				return ctx.fail(cmd, "list", services.Wrap(services.ErrStorage, "catalog", "list", "", err))
			}
			if entries == nil {
				entries = []catalog.Entry{}
			}
			msg := fmt.Sprintf("%d entries", len(entries))
			if pending {
				msg = fmt.Sprintf("%d pending entries", len(entries))
			}
			return ctx.finish(cmd, "list", services.Success(msg, len(entries)), entries, func(w io.Writer) {
				if len(entries) > 0 {
					fmt.Fprintln(w, renderEntries(entries))
				}
			}, nil)
		},
	}
	cmd.Flags().BoolVar(&pending, "pending", false, "Only list entries that have not been enriched")
	cmd.Flags().IntVar(&limit, "limit", 0, "Maximum number of entries to list (0 for all)")
	return cmd
}
