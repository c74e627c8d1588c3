package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"gamecat/internal/pipeline"
	"gamecat/internal/services"
)

func newSyncCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "sync",
		Short: "Copy new apps from the Steam directory into the catalog",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, release, err := ctx.begin(cmd, true)
			if err != nil {
				return ctx.fail(cmd, "sync", err)
			}
			defer release()

			client, err := s.steamClient()
			if err != nil {
				return ctx.fail(cmd, "sync", err)
			}
			report, err := pipeline.NewSyncer(s.store, client, s.logger, s.recorder).SyncCatalog(s.ctx)
			if err != nil {
				return ctx.finish(cmd, "sync", services.Failure(err), report, nil, err)
			}
			msg := fmt.Sprintf("fetched %d, inserted %d, existing %d, skipped %d, failed %d",
				report.Fetched, report.Inserted, report.Existing, report.Skipped, report.Failed)
			return ctx.finish(cmd, "sync", services.Success(msg, report.Inserted), report, nil, nil)
		},
	}
}
