package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"gamecat/internal/config"
	"gamecat/internal/services"
)

func newConfigCommand(ctx *commandContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage gamecat configuration",
	}
	cmd.AddCommand(newConfigInitCommand(ctx))
	cmd.AddCommand(newConfigValidateCommand(ctx))
	return cmd
}

func newConfigInitCommand(ctx *commandContext) *cobra.Command {
	var targetPath string
	var overwrite bool

	cmd := &cobra.Command{
		Use:         "init",
		Short:       "Write a sample configuration file",
		Args:        cobra.NoArgs,
		Annotations: map[string]string{"skipConfigLoad": "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			path := strings.TrimSpace(targetPath)
			if path == "" {
				var err error
				path, err = config.DefaultConfigPath()
				if err != nil {
					return ctx.fail(cmd, "config", err)
				}
			} else {
				expanded, err := config.ExpandPath(path)
				if err != nil {
					return ctx.fail(cmd, "config", err)
				}
				path = expanded
			}

			if _, err := os.Stat(path); err == nil && !overwrite {
				return ctx.fail(cmd, "config", services.Wrap(services.ErrValidation, "config", "init",
					fmt.Sprintf("%s already exists (use --overwrite to replace)", path), nil))
			} else if err != nil && !errors.Is(err, fs.ErrNotExist) {
				return ctx.fail(cmd, "config", fmt.Errorf("inspect %s: %w", path, err))
			}

			if err := config.CreateSample(path); err != nil {
				return ctx.fail(cmd, "config", err)
			}
			return ctx.finish(cmd, "config", services.Success("wrote "+path, 0), map[string]string{"path": path}, nil, nil)
		},
	}
	cmd.Flags().StringVarP(&targetPath, "path", "p", "", "Destination for the sample config (defaults to ~/.config/gamecat/config.toml)")
	cmd.Flags().BoolVar(&overwrite, "overwrite", false, "Replace an existing file")
	return cmd
}

func newConfigValidateCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:         "validate",
		Short:       "Load and validate the configuration",
		Args:        cobra.NoArgs,
		Annotations: map[string]string{"skipConfigLoad": "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return ctx.fail(cmd, "config", services.Wrap(services.ErrConfiguration, "config", "validate", "", err))
			}
			summary := map[string]any{
				"data_dir":          cfg.Paths.DataDir,
				"log_dir":           cfg.Paths.LogDir,
				"database":          cfg.DatabasePath(),
				"app_list_url":      cfg.Steam.AppListURL,
				"app_details_url":   cfg.Steam.AppDetailsURL,
				"non_game_keywords": cfg.Classifier.NonGameKeywords,
			}
			return ctx.finish(cmd, "config", services.Success("configuration is valid", 0), summary, nil, nil)
		},
	}
}
