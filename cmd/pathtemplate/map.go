// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/pathtemplate

package main

import (
	"errors"
	"fmt"

	"github.com/sergi/go-diff/diffmatchpatch"
	"github.com/spf13/cobra"
	"github.com/woozymasta/pathtemplate"
)

var (
	mapTargets []string
	mapDiff    bool
)

var mapCmd = &cobra.Command{
	Use:   "map --to FILE PATH...",
	Short: "Convert paths into the naming convention of another schema",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(schemaPaths) == 0 {
			return errors.New("map requires source --schema")
		}

		if len(mapTargets) == 0 {
			return errors.New("map requires target --to schema")
		}

		set, err := loadTemplateSet()
		if err != nil {
			return err
		}

		target, err := pathtemplate.LoadSchemaFiles(mapTargets...)
		if err != nil {
			return err
		}

		mappings, err := set.schema.Map(args, target)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		dmp := diffmatchpatch.New()
		for _, m := range mappings {
			rendered := pathColor.Sprint(m.OtherPath)
			if mapDiff {
				rendered = dmp.DiffPrettyText(dmp.DiffMain(m.OriginalPath, m.OtherPath, false))
			}

			_, _ = fmt.Fprintf(out, "%s\t%s\t%s\n", dimColor.Sprint(m.OriginalPath), nameColor.Sprint(m.OriginalTemplate.Name()), rendered)
		}

		logger.Debug("mapped paths", "paths", len(args), "mappings", len(mappings))
		return nil
	},
}

func init() {
	mapCmd.Flags().StringArrayVar(&mapTargets, "to", nil, "Target schema definition file, repeatable")
	mapCmd.Flags().BoolVar(&mapDiff, "diff", false, "Show character diff between original and mapped path")
	rootCmd.AddCommand(mapCmd)
}
