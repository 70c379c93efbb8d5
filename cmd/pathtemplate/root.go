// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/pathtemplate

package main

import (
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"github.com/go-git/go-billy/v5/osfs"
	"github.com/spf13/cobra"
	"github.com/woozymasta/pathtemplate"
)

var (
	schemaPaths   []string
	discoverRoots []string
	logLevel      string
	logFormat     string
	noColor       bool

	logger = slog.New(slog.NewTextHandler(io.Discard, nil))
)

var rootCmd = &cobra.Command{
	Use:           "pathtemplate",
	Short:         "Parse, format and remap paths with declarative templates",
	SilenceUsage:  true,
	SilenceErrors: false,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		level, err := parseLevel(logLevel)
		if err != nil {
			return err
		}

		logger = newLogger(cmd.ErrOrStderr(), logFormat, level)
		if noColor {
			color.NoColor = true
		}

		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringArrayVarP(&schemaPaths, "schema", "s", nil, "Schema definition file (yaml, json or hcl), repeatable")
	rootCmd.PersistentFlags().StringArrayVarP(&discoverRoots, "discover", "d", nil, "Directory searched for schema definition files, repeatable (default $"+pathtemplate.SearchPathEnv+")")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "warn", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "text", "Log format: text or json")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "Disable colored output")
}

// newLogger builds slog logger writing to w.
func newLogger(w io.Writer, format string, level slog.Level) *slog.Logger {
	opts := &slog.HandlerOptions{Level: level}
	if strings.EqualFold(format, "json") {
		return slog.New(slog.NewJSONHandler(w, opts))
	}

	return slog.New(slog.NewTextHandler(w, opts))
}

// parseLevel converts level name to slog level.
func parseLevel(level string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug, nil
	case "info", "":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("unknown log level %q", level)
	}
}

// templateSet is either one schema or discovered templates tried in order.
type templateSet struct {
	schema    *pathtemplate.Schema
	templates []*pathtemplate.Template
}

// loadTemplateSet loads --schema files into one schema, or discovers templates
// under --discover roots (or $PATHTEMPLATE_PATH) when no schema is given.
func loadTemplateSet() (*templateSet, error) {
	if len(schemaPaths) > 0 {
		schema, err := pathtemplate.LoadSchemaFiles(schemaPaths...)
		if err != nil {
			return nil, err
		}

		if err := schema.Compile(); err != nil {
			return nil, err
		}

		logger.Debug("loaded schema", "files", schemaPaths, "templates", schema.Len())
		return &templateSet{schema: schema, templates: schema.Templates()}, nil
	}

	roots := discoverRoots
	if len(roots) == 0 {
		roots = pathtemplate.SearchPathsFromEnv()
	}

	if len(roots) == 0 {
		return nil, fmt.Errorf("no --schema or --discover given and $%s is empty", pathtemplate.SearchPathEnv)
	}

	// Discovery runs over the host filesystem rooted at "/", so roots become absolute.
	absRoots := make([]string, 0, len(roots))
	for _, root := range roots {
		abs, err := filepath.Abs(root)
		if err != nil {
			return nil, fmt.Errorf("abs root %s: %w", root, err)
		}

		absRoots = append(absRoots, abs)
	}

	d, err := pathtemplate.NewDiscoverer(osfs.New("/"), pathtemplate.DiscoveryOptions{Logger: logger})
	if err != nil {
		return nil, err
	}

	templates, err := d.Discover(absRoots...)
	if err != nil {
		return nil, err
	}

	logger.Debug("discovered templates", "roots", roots, "templates", len(templates))
	return &templateSet{templates: templates}, nil
}
