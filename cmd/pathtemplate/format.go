// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/pathtemplate

package main

import (
	"fmt"
	"io"
	"os"

	"github.com/ohler55/ojg/jp"
	"github.com/ohler55/ojg/oj"
	"github.com/spf13/cobra"
	"github.com/woozymasta/pathtemplate"
)

var (
	formatData     string
	formatDataFile string
	formatSelect   string
	formatAll      bool
	formatTemplate string
)

var formatCmd = &cobra.Command{
	Use:   "format",
	Short: "Produce paths from structured JSON data",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := readFormatData(cmd.InOrStdin())
		if err != nil {
			return err
		}

		set, err := loadTemplateSet()
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if formatTemplate != "" {
			t, err := pathtemplate.GetTemplate(formatTemplate, set.templates)
			if err != nil {
				return err
			}

			path, err := t.Format(data)
			if err != nil {
				return err
			}

			writeFormatted(out, t.Name(), path)
			return nil
		}

		if !formatAll {
			path, t, err := pathtemplate.Format(data, set.templates)
			if err != nil {
				return err
			}

			writeFormatted(out, t.Name(), path)
			return nil
		}

		for res, err := range pathtemplate.FormatIter(data, set.templates) {
			if err != nil {
				return err
			}

			writeFormatted(out, res.Template.Name(), res.Path)
		}

		return nil
	},
}

func init() {
	formatCmd.Flags().StringVar(&formatData, "data", "", "JSON document with data (default: read stdin)")
	formatCmd.Flags().StringVar(&formatDataFile, "data-file", "", "File with JSON data")
	formatCmd.Flags().StringVar(&formatSelect, "select", "", "JSONPath selecting data root inside document, e.g. $.shots[0]")
	formatCmd.Flags().BoolVarP(&formatAll, "all", "a", false, "Print every template able to format data")
	formatCmd.Flags().StringVarP(&formatTemplate, "template", "t", "", "Format only with named template")
	rootCmd.AddCommand(formatCmd)
}

// readFormatData reads JSON document from flag, file or stdin and applies --select.
func readFormatData(stdin io.Reader) (any, error) {
	var src []byte
	switch {
	case formatData != "":
		src = []byte(formatData)
	case formatDataFile != "":
		b, err := os.ReadFile(formatDataFile)
		if err != nil {
			return nil, fmt.Errorf("read data file: %w", err)
		}

		src = b
	default:
		b, err := io.ReadAll(stdin)
		if err != nil {
			return nil, fmt.Errorf("read stdin: %w", err)
		}

		src = b
	}

	data, err := oj.Parse(src)
	if err != nil {
		return nil, fmt.Errorf("parse data: %w", err)
	}

	if formatSelect == "" {
		return data, nil
	}

	x, err := jp.ParseString(formatSelect)
	if err != nil {
		return nil, fmt.Errorf("invalid jsonpath %q: %w", formatSelect, err)
	}

	selected := x.First(data)
	if selected == nil {
		return nil, fmt.Errorf("jsonpath %q selected nothing", formatSelect)
	}

	return selected, nil
}
