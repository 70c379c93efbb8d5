// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/pathtemplate

package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List templates in match order",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		set, err := loadTemplateSet()
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		for _, t := range set.templates {
			expanded, err := t.ExpandedPattern()
			if err != nil {
				return err
			}

			_, _ = fmt.Fprintf(out, "%s\t%s\t%s\t%s\n", nameColor.Sprint(t.Name()), t.Anchor(), t.DuplicateMode(), expanded)
		}

		return nil
	},
}

func init() {
	rootCmd.AddCommand(listCmd)
}
