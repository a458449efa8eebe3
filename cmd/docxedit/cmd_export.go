package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/tsawler/docxedit/session"
	"github.com/tsawler/docxedit/tools"
)

// exportCmd converts a document to HTML
var exportCmd = &cobra.Command{
	Use:   "export <input.docx> <output.html>",
	Short: "Export a document as HTML",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runExport(args[0], args[1], cmd.OutOrStdout())
	},
}

func runExport(in, out string, w io.Writer) error {
	sess := session.New(logger)
	if err := sess.Open(in); err != nil {
		return err
	}
	doc, err := sess.Document()
	if err != nil {
		return err
	}
	if err := tools.WriteHTML(out, doc); err != nil {
		return err
	}
	fmt.Fprintf(w, "Document exported as HTML: %s\n", out)
	return nil
}
