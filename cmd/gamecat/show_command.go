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

type showResult struct {
	Entry  *catalog.Entry  `json:"entry"`
	Detail *catalog.Detail `json:"detail,omitempty"`
}

func newShowCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show one catalog entry and its stored details",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseEntryID(args[0])
			if err != nil {
				return ctx.fail(cmd, "show", err)
			}
			s, release, err := ctx.begin(cmd, false)
			if err != nil {
				return ctx.fail(cmd, "show", err)
			}
			defer release()

			entry, err := s.store.FindByID(s.ctx, id)
			if err != nil {
				return ctx.fail(cmd, "show", services.Wrap(services.ErrStorage, "catalog", "find", "", err))
			}
			if entry == nil {
				return ctx.fail(cmd, "show", services.Wrap(services.ErrNotFound, "catalog", "find", fmt.Sprintf("entry %d", id), nil))
			}
			detail, err := s.store.FindDetail(s.ctx, id)
			if err != nil {
				return ctx.fail(cmd, "show", services.Wrap(services.ErrStorage, "catalog", "find detail", "", err))
			}

			result := showResult{Entry: entry, Detail: detail}
			return ctx.finish(cmd, "show", services.Success(entry.Name, 0), result, func(w io.Writer) {
				fmt.Fprintln(w, renderFields(showFields(entry, detail)))
			}, nil)
		},
	}
}

func showFields(entry *catalog.Entry, detail *catalog.Detail) [][2]string {
	fields := [][2]string{
		{"ID", strconv.FormatInt(entry.ID, 10)},
		{"Name", entry.Name},
		{"Enriched", yesNo(entry.Enriched)},
		{"Added", entry.CreatedAt.Local().Format("2006-01-02 15:04")},
	}
	if detail == nil {
		return fields
	}
	return append(fields, [][2]string{
		{"Game", yesNo(detail.IsGame)},
		{"Price", detail.PriceLabel()},
		{"Required age", detail.RequiredAge},
		{"Developers", detail.Developers},
		{"Publishers", detail.Publishers},
		{"Genres", detail.Genres},
		{"Categories", strings.Join(detail.CategoryNames(), ", ")},
		{"Released", detail.ReleaseDate},
		{"Website", detail.WebsiteURL},
		{"Header", detail.HeaderImageURL},
		{"About", truncate(detail.About, 200)},
	}...)
}
