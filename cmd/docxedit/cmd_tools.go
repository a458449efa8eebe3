package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/mattn/go-runewidth"
	"github.com/spf13/cobra"

	"github.com/tsawler/docxedit/mcp"
	"github.com/tsawler/docxedit/session"
	"github.com/tsawler/docxedit/tools"
)

var toolsJSON bool

// toolsCmd lists the registered tools
var toolsCmd = &cobra.Command{
	Use:   "tools",
	Short: "List the available document tools",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		reg, err := newRegistry(session.New(logger), nil)
		if err != nil {
			return err
		}
		if toolsJSON {
			return printSchemas(cmd.OutOrStdout(), reg)
		}
		printTools(cmd.OutOrStdout(), reg)
		return nil
	},
}

func printSchemas(w io.Writer, reg *tools.Registry) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(mcp.Schemas(reg))
}

func printTools(w io.Writer, reg *tools.Registry) {
	all := reg.All()
	width := 0
	for _, t := range all {
		width = max(width, runewidth.StringWidth(t.Name))
	}
	var category tools.Category
	for _, t := range all {
		if t.Category != category {
			if category != "" {
				fmt.Fprintln(w)
			}
			category = t.Category
			fmt.Fprintf(w, "%s\n", category)
		}
		fmt.Fprintf(w, "  %s  %s\n", runewidth.FillRight(t.Name, width), t.Description)
	}
}
