package main

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tsawler/docxedit/session"
)

var (
	callFile string
	callSave bool
)

// callCmd runs a single tool
var callCmd = &cobra.Command{
	Use:   "call <tool> [json-args]",
	Short: "Run one document tool",
	Long: `Runs one tool with its arguments given as a JSON object.

  docxedit call get_document_text --file report.docx
  docxedit call add_heading '{"text":"Summary","level":2}' --file report.docx --save`,
	Args: cobra.RangeArgs(1, 2),
	RunE: runCall,
}

func runCall(cmd *cobra.Command, args []string) error {
	sess := session.New(logger)
	if callFile != "" {
		if err := sess.Open(callFile); err != nil {
			return err
		}
	}
	reg, err := newRegistry(sess, nil)
	if err != nil {
		return err
	}

	var raw json.RawMessage
	if len(args) == 2 {
		raw = json.RawMessage(args[1])
		if !json.Valid(raw) {
			return errors.New("arguments must be a JSON object")
		}
	}

	res := reg.Call(cmd.Context(), args[0], raw)
	fmt.Fprintln(cmd.OutOrStdout(), res.Status())
	if !res.OK() {
		return fmt.Errorf("%s failed", args[0])
	}
	if callSave && sess.IsOpen() {
		if err := sess.Save(); err != nil {
			return err
		}
	}
	return nil
}
