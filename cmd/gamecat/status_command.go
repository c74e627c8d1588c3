package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"gamecat/internal/catalog"
	"gamecat/internal/services"
)

type statusResult struct {
	Stats  catalog.Stats          `json:"stats"`
	Health catalog.DatabaseHealth `json:"health"`
}

func newStatusCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show catalog counts and database health",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, release, err := ctx.begin(cmd, false)
			if err != nil {
				return ctx.fail(cmd, "status", err)
			}
			defer release()

			stats, err := s.store.Stats(s.ctx)
			if err != nil {
				return ctx.fail(cmd, "status", services.Wrap(services.ErrStorage, "catalog", "stats", "", err))
			}
			health, err := s.store.CheckHealth(s.ctx)
			if err != nil {
				return ctx.fail(cmd, "status", services.Wrap(services.ErrStorage, "catalog", "health", "", err))
			}

			result := statusResult{Stats: stats, Health: health}
			body := func(w io.Writer) {
				fmt.Fprintln(w, renderFields(statusFields(stats, health)))
			}
			if !health.IntegrityCheck || health.InvariantViolations > 0 || len(health.MissingTables) > 0 {
				err := services.Wrap(services.ErrStorage, "catalog", "health", healthProblem(health), nil)
				return ctx.finish(cmd, "status", services.Failure(err), result, body, err)
			}
			msg := fmt.Sprintf("%d entries, %d pending", stats.Entries, stats.Pending)
			return ctx.finish(cmd, "status", services.Success(msg, stats.Entries), result, body, nil)
		},
	}
}

func statusFields(stats catalog.Stats, health catalog.DatabaseHealth) [][2]string {
	return [][2]string{
		{"Database", health.DBPath},
		{"Schema", fmt.Sprintf("v%d", health.SchemaVersion)},
		{"Integrity", yesNo(health.IntegrityCheck)},
		{"Entries", fmt.Sprint(stats.Entries)},
		{"Enriched", fmt.Sprint(stats.Enriched)},
		{"Pending", fmt.Sprint(stats.Pending)},
		{"Details", fmt.Sprint(stats.Details)},
		{"Non-game", fmt.Sprint(stats.NonGameDetails)},
		{"Violations", fmt.Sprint(health.InvariantViolations)},
		{"Missing", strings.Join(health.MissingTables, ", ")},
	}
}

func healthProblem(health catalog.DatabaseHealth) string {
	switch {
	case len(health.MissingTables) > 0:
		return "missing tables: " + strings.Join(health.MissingTables, ", ")
	case !health.IntegrityCheck:
		if health.Error != "" {
			return "integrity check failed: " + health.Error
		}
		return "integrity check failed"
	default:
		return fmt.Sprintf("%d entries disagree with their details", health.InvariantViolations)
	}
}
