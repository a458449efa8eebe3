package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/tsawler/docxedit/session"
	"github.com/tsawler/docxedit/tools"
)

// Script is a batch of tool calls read from YAML:
//
//	document: report.docx
//	save: true
//	steps:
//	  - tool: add_heading
//	    args: {text: Summary, level: 2}
//	  - tool: add_paragraph
//	    args: {text: All figures are preliminary.}
type Script struct {
	// Document is opened before the first step when set
	Document        string `yaml:"document"`
	Save            bool   `yaml:"save"`
	ContinueOnError bool   `yaml:"continue_on_error"`
	Steps           []Step `yaml:"steps" validate:"required,min=1,dive"`
}

// Step is one tool call.
type Step struct {
	Tool string         `yaml:"tool" validate:"required"`
	Args map[string]any `yaml:"args"`
}

var scriptValidate = validator.New()

// runCmd executes a script of tool calls against one session
var runCmd = &cobra.Command{
	Use:   "run <script.yaml>",
	Short: "Run a YAML script of tool calls",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := loadScript(args[0])
		if err != nil {
			return err
		}
		sess := session.New(logger)
		reg, err := newRegistry(sess, nil)
		if err != nil {
			return err
		}
		return runScript(cmd.Context(), s, reg, sess, cmd.OutOrStdout())
	},
}

func loadScript(path string) (*Script, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read script: %w", err)
	}
	return parseScript(data)
}

func parseScript(data []byte) (*Script, error) {
	var s Script
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("failed to parse script: %w", err)
	}
	if err := scriptValidate.Struct(&s); err != nil {
		return nil, fmt.Errorf("invalid script: %w", err)
	}
	return &s, nil
}

// runScript runs the steps in order and writes one status line per step.
// It stops at the first failure, and skips the save, unless ContinueOnError
// is set.
func runScript(ctx context.Context, s *Script, reg *tools.Registry, sess *session.Session, w io.Writer) error {
	if s.Document != "" {
		if err := sess.Open(s.Document); err != nil {
			return err
		}
	}

	failed, ran := 0, 0
	for i, step := range s.Steps {
		args, err := json.Marshal(step.Args)
		if err != nil {
			return fmt.Errorf("step %d: failed to encode args: %w", i+1, err)
		}
		if step.Args == nil {
			args = nil
		}

		res := reg.Call(ctx, step.Tool, args)
		ran++
		fmt.Fprintf(w, "[%d] %s: %s\n", i+1, step.Tool, res.Status())
		if !res.OK() {
			failed++
			if !s.ContinueOnError {
				break
			}
		}
	}

	if s.Save && sess.IsOpen() && (failed == 0 || s.ContinueOnError) {
		if err := sess.Save(); err != nil {
			return err
		}
		logger.Info("saved document", zap.String("path", sess.Path()))
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d steps failed", failed, ran)
	}
	return nil
}
