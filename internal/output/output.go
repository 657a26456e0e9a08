// Copyright © 2025 snipforge authors
// SPDX-License-Identifier: MIT

package output

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/apex/log"
	"github.com/charmbracelet/lipgloss/v2"
	"github.com/charmbracelet/lipgloss/v2/table"
	"github.com/urfave/cli/v3"
	"golang.org/x/term"
	yaml "gopkg.in/yaml.v2"

	"github.com/snipforge/snipctl/internal/config"
)

// Formats accepted by the --output flag.
var Formats = []string{"text", "json", "yaml"}

// ValidFormat is the --output flag validator.
func ValidFormat(value string) error {
	for _, f := range Formats {
		if value == f {
			return nil
		}
	}
	return fmt.Errorf("invalid output format %q (want one of %v)", value, Formats)
}

// Spit renders the result set to w per the --output flag. cols fixes the
// column order; map iteration order would scramble it.
func Spit(resultSet []map[string]interface{}, cols []string, cmd *cli.Command, w io.Writer) error {
	switch cmd.String("output") {
	case "json":
		raw, err := json.MarshalIndent(resultSet, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal results: %w", err)
		}
		fmt.Fprintln(w, string(raw))
	case "yaml":
		raw, err := yaml.Marshal(resultSet)
		if err != nil {
			return fmt.Errorf("failed to marshal results: %w", err)
		}
		fmt.Fprint(w, string(raw))
	default:
		TableWriter(resultSet, cols, cmd, w)
	}

	return nil
}

// TableWriter renders the result set in tabular form honoring color,
// titles and padding options.
func TableWriter(
	resultSet []map[string]interface{},
	cols []string,
	cmd *cli.Command,
	w io.Writer) {

	if len(resultSet) == 0 {
		return
	}

	var (
		headerStyle  = lipgloss.NewStyle().Align(lipgloss.Left)
		cellStyle    = lipgloss.NewStyle().Padding(0, 0).Align(lipgloss.Left)
		evenRowStyle = cellStyle
		oddRowStyle  = cellStyle
	)

	if Colorized(cmd) {
		headerColor, evenColor, oddColor := getColors("colors")

		headerStyle = headerStyle.Foreground(lipgloss.Color(headerColor))
		evenRowStyle = evenRowStyle.Foreground(lipgloss.Color(evenColor))
		oddRowStyle = oddRowStyle.Foreground(lipgloss.Color(oddColor))
	}

	var rows [][]string
	for _, result := range resultSet {
		row := make([]string, 0, len(cols))
		for _, col := range cols {
			row = append(row, InterfaceToString(result[col], "-"))
		}
		rows = append(rows, row)
	}

	t := table.New().
		BorderBottom(false).
		BorderTop(false).
		BorderLeft(false).
		BorderRight(false).
		Border(lipgloss.HiddenBorder()).
		StyleFunc(func(row, col int) lipgloss.Style {

			pad, _ := config.GetInt("padding", 2)

			var style lipgloss.Style
			switch {
			case row == table.HeaderRow:
				style = headerStyle
			case row%2 == 0:
				style = evenRowStyle
			default:
				style = oddRowStyle
			}

			if col > 0 {
				style = style.PaddingLeft(pad)
			}

			return style
		}).
		Headers().
		Rows(rows...)

	if cmd.Bool("titles") {
		// https://github.com/charmbracelet/lipgloss/issues/261
		t = t.Headers(cols...).BorderHeader(false)
	}

	fmt.Fprintln(w, t)
}

// Colorized reports whether output should be colored: the --color flag is
// set and stdout is a terminal.
func Colorized(cmd *cli.Command) bool {
	return cmd.Bool("color") && term.IsTerminal(int(os.Stdout.Fd()))
}

// InterfaceToString renders an arbitrary result value for a table cell,
// substituting dash when the value is absent.
func InterfaceToString(v interface{}, dash string) string {
	switch val := v.(type) {
	case nil:
		return dash
	case string:
		if val == "" {
			return dash
		}
		return val
	case bool:
		return strconv.FormatBool(val)
	case int:
		return strconv.Itoa(val)
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	default:
		return fmt.Sprintf("%v", val)
	}
}

// getColors returns configured color values for table rendering.
func getColors(key string) (header string, even string, odd string) {
	header, _ = config.GetString(fmt.Sprintf("%s.title", key), "#f6be00")
	even, _ = config.GetString(fmt.Sprintf("%s.even", key), "#ffffff")
	odd, _ = config.GetString(fmt.Sprintf("%s.odd", key), "#00c8f0")

	log.Debugf("colors: %s %s %s", header, even, odd)
	return
}
