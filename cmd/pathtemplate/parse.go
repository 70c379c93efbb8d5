// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/pathtemplate

package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/woozymasta/pathtemplate"
)

var parseAll bool

var parseCmd = &cobra.Command{
	Use:   "parse PATH...",
	Short: "Extract structured data from paths",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		set, err := loadTemplateSet()
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		misses := 0
		for _, path := range args {
			if !parseAll {
				data, t, err := pathtemplate.Parse(path, set.templates)
				if err != nil {
					if errors.Is(err, pathtemplate.ErrNoMatch) {
						logger.Warn("no template matched", "path", path)
						misses++
						continue
					}

					return err
				}

				writeParsed(out, path, t.Name(), data)
				continue
			}

			matched := false
			for res, err := range pathtemplate.ParseIter(path, set.templates) {
				if err != nil {
					return err
				}

				matched = true
				writeParsed(out, path, res.Template.Name(), res.Data)
			}

			if !matched {
				logger.Warn("no template matched", "path", path)
				misses++
			}
		}

		if misses > 0 {
			return fmt.Errorf("%d of %d paths did not match", misses, len(args))
		}

		return nil
	},
}

func init() {
	parseCmd.Flags().BoolVarP(&parseAll, "all", "a", false, "Print every matching template instead of the first one")
	rootCmd.AddCommand(parseCmd)
}
