package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/tsawler/docxedit/internal/config"
	"github.com/tsawler/docxedit/mcp"
	"github.com/tsawler/docxedit/session"
)

func setup(t *testing.T) {
	t.Helper()
	logger = zap.NewNop()
	cfg = config.DefaultConfig()
	cfg.StateFile = filepath.Join(t.TempDir(), config.StateFileName)
	cfg.Logging.File = ""
}

func TestParseScript(t *testing.T) {
	s, err := parseScript([]byte(`
document: in.docx
save: true
steps:
  - tool: add_heading
    args: {text: Summary, level: 2}
  - tool: get_document_text
`))
	require.NoError(t, err)
	assert.Equal(t, "in.docx", s.Document)
	assert.True(t, s.Save)
	require.Len(t, s.Steps, 2)
	assert.Equal(t, "add_heading", s.Steps[0].Tool)
	assert.Equal(t, 2, s.Steps[0].Args["level"])
	assert.Nil(t, s.Steps[1].Args)

	tests := []struct {
		name string
		yaml string
	}{
		{"no steps", "document: a.docx\n"},
		{"empty steps", "steps: []\n"},
		{"missing tool", "steps:\n  - args: {text: x}\n"},
		{"bad yaml", "steps: [\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := parseScript([]byte(tt.yaml))
			assert.Error(t, err)
		})
	}
}

func TestRunScript(t *testing.T) {
	setup(t)
	path := filepath.Join(t.TempDir(), "script.docx")

	s := &Script{
		Save: true,
		Steps: []Step{
			{Tool: "create_document", Args: map[string]any{"file_path": path}},
			{Tool: "add_heading", Args: map[string]any{"text": "Summary", "level": 1}},
			{Tool: "add_paragraph", Args: map[string]any{"text": "hello"}},
			{Tool: "add_table", Args: map[string]any{"rows": 1, "cols": 2, "data": []any{[]any{"a", 1}}}},
		},
	}
	sess := session.New(logger)
	reg, err := newRegistry(sess, nil)
	require.NoError(t, err)

	var out bytes.Buffer
	require.NoError(t, runScript(context.Background(), s, reg, sess, &out))
	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, "[1] create_document: Document created successfully: "+path, lines[0])
	assert.Equal(t, "[3] add_paragraph: Paragraph added", lines[2])

	reopened := session.New(logger)
	require.NoError(t, reopened.Open(path))
	doc, err := reopened.Document()
	require.NoError(t, err)
	assert.Equal(t, 2, len(doc.Paragraphs()))
}

func TestRunScript_StopsOnFailure(t *testing.T) {
	setup(t)
	s := &Script{Steps: []Step{
		{Tool: "add_paragraph", Args: map[string]any{"text": "no document"}},
		{Tool: "get_document_text"},
	}}
	sess := session.New(logger)
	reg, err := newRegistry(sess, nil)
	require.NoError(t, err)

	var out bytes.Buffer
	err = runScript(context.Background(), s, reg, sess, &out)
	require.EqualError(t, err, "1 of 1 steps failed")
	assert.Equal(t, "[1] add_paragraph: Error: no document is open\n", out.String())

	s.ContinueOnError = true
	out.Reset()
	err = runScript(context.Background(), s, reg, sess, &out)
	require.EqualError(t, err, "2 of 2 steps failed")
	assert.Contains(t, out.String(), "[2] get_document_text: Error: no document is open")
}

func TestPrintTools(t *testing.T) {
	setup(t)
	reg, err := newRegistry(session.New(logger), nil)
	require.NoError(t, err)

	var out bytes.Buffer
	printTools(&out, reg)
	text := out.String()
	assert.True(t, strings.HasPrefix(text, "/document\n  create_document "))
	for _, c := range []string{"/content", "/table", "/layout", "/view"} {
		assert.Contains(t, text, "\n"+c+"\n")
	}

	out.Reset()
	require.NoError(t, printSchemas(&out, reg))
	var schemas []mcp.ToolSchema
	require.NoError(t, json.Unmarshal(out.Bytes(), &schemas))
	assert.Len(t, schemas, reg.Count())
}

func TestNewRegistry_BadBoundary(t *testing.T) {
	setup(t)
	cfg.HeadingBoundary = "sideways"
	_, err := newRegistry(session.New(logger), nil)
	assert.Error(t, err)
}

func testCommand(out *bytes.Buffer) *cobra.Command {
	cmd := &cobra.Command{}
	cmd.SetOut(out)
	cmd.SetContext(context.Background())
	return cmd
}

func TestRunCallAndExport(t *testing.T) {
	setup(t)
	dir := t.TempDir()
	path := filepath.Join(dir, "call.docx")
	require.NoError(t, session.New(logger).Create(path))

	callFile, callSave = path, true
	t.Cleanup(func() { callFile, callSave = "", false })

	var out bytes.Buffer
	require.NoError(t, runCall(testCommand(&out), []string{"add_heading", `{"text":"Title","level":1}`}))
	assert.Equal(t, "Added level 1 heading\n", out.String())

	out.Reset()
	err := runCall(testCommand(&out), []string{"delete_paragraph", `{"paragraph_index":5}`})
	assert.Error(t, err)
	assert.True(t, strings.HasPrefix(out.String(), "Error: "))

	err = runCall(testCommand(&out), []string{"add_heading", `{"text":`})
	assert.EqualError(t, err, "arguments must be a JSON object")

	html := filepath.Join(dir, "call.html")
	out.Reset()
	require.NoError(t, runExport(path, html, &out))
	assert.Equal(t, "Document exported as HTML: "+html+"\n", out.String())
	data, err := os.ReadFile(html)
	require.NoError(t, err)
	assert.Contains(t, string(data), "<h1>Title</h1>")
}
