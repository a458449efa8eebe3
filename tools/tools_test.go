package tools

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/tsawler/docxedit/docerr"
	"github.com/tsawler/docxedit/edit"
	"github.com/tsawler/docxedit/internal/metrics"
	"github.com/tsawler/docxedit/session"
)

type harness struct {
	t       *testing.T
	reg     *Registry
	sess    *session.Session
	metrics *metrics.Metrics
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	sess := session.New(zaptest.NewLogger(t))
	m := metrics.New()
	env := &Env{Session: sess, Radius: edit.DefaultRadius, CopySuffix: session.DefaultCopySuffix}
	return &harness{t: t, reg: NewDefaultRegistry(env, zaptest.NewLogger(t), m), sess: sess, metrics: m}
}

func (h *harness) call(name string, args map[string]any) Result {
	h.t.Helper()
	raw, err := json.Marshal(args)
	require.NoError(h.t, err)
	return h.reg.Call(context.Background(), name, raw)
}

// ok calls a tool and requires it to succeed, returning its status line.
func (h *harness) ok(name string, args map[string]any) string {
	h.t.Helper()
	res := h.call(name, args)
	require.NoError(h.t, res.Err, "%s failed: %s", name, res.Status())
	return res.Status()
}

func (h *harness) create() string {
	h.t.Helper()
	path := filepath.Join(h.t.TempDir(), "doc.docx")
	h.ok("create_document", map[string]any{"file_path": path})
	return path
}

func (h *harness) texts() []string {
	h.t.Helper()
	doc, err := h.sess.Document()
	require.NoError(h.t, err)
	var out []string
	for _, p := range doc.Paragraphs() {
		out = append(out, p.Text())
	}
	return out
}

// ============================================================================
// Registry
// ============================================================================

func TestRegister_Validation(t *testing.T) {
	reg := NewRegistry(&Env{}, nil, nil)
	noop := func(context.Context, *Env, json.RawMessage) (string, error) { return "", nil }

	assert.ErrorIs(t, reg.Register(&Tool{Execute: noop}), ErrToolNameEmpty)
	assert.ErrorIs(t, reg.Register(&Tool{Name: "x"}), ErrToolExecuteNil)

	require.NoError(t, reg.Register(&Tool{Name: "x", Execute: noop}))
	assert.ErrorIs(t, reg.Register(&Tool{Name: "x", Execute: noop}), ErrToolAlreadyRegistered)
	assert.Panics(t, func() { reg.MustRegister(&Tool{Name: "x", Execute: noop}) })
	assert.Equal(t, 1, reg.Count())
}

func TestDefaultRegistry(t *testing.T) {
	h := newHarness(t)
	assert.Equal(t, 26, h.reg.Count())

	all := h.reg.All()
	assert.Equal(t, "create_document", all[0].Name, "registration order is kept")
	assert.Equal(t, "export_html", all[len(all)-1].Name)

	names := h.reg.Names()
	assert.Equal(t, "add_heading", names[0], "names are sorted")
	for _, tool := range all {
		assert.NotEmpty(t, tool.Description, tool.Name)
		assert.NotNil(t, tool.Schema.Properties, tool.Name)
		for _, req := range tool.Schema.Required {
			assert.Contains(t, tool.Schema.Properties, req, "%s requires an undeclared %s", tool.Name, req)
		}
	}
}

func TestCall_UnknownTool(t *testing.T) {
	h := newHarness(t)
	res := h.call("no_such_tool", nil)
	assert.True(t, IsNotFound(res.Err))
	assert.Equal(t, docerr.Invalid, res.Kind)
	assert.Equal(t, `Error: unknown tool "no_such_tool": tool not found`, res.Status())
}

func TestCall_ArgumentErrors(t *testing.T) {
	h := newHarness(t)
	h.create()

	tests := []struct {
		name   string
		tool   string
		args   map[string]any
		status string
	}{
		{"missing required", "open_document", map[string]any{}, "Error: missing required argument: file_path"},
		{"empty required", "open_document", map[string]any{"file_path": ""}, "Error: invalid arguments: file_path is required"},
		{"bad enum", "add_paragraph", map[string]any{"text": "x", "alignment": "middle"}, "Error: invalid arguments: alignment must be one of [left center right justify]"},
		{"bad font size", "add_paragraph", map[string]any{"text": "x", "font_size": -2}, "Error: invalid arguments: font_size must satisfy gt=0"},
		{"bad color", "add_paragraph", map[string]any{"text": "x", "color": "red"}, `Error: invalid color: invalid color "red": want #RRGGBB`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := h.call(tt.tool, tt.args)
			assert.Equal(t, docerr.Invalid, res.Kind)
			assert.Equal(t, tt.status, res.Status())
		})
	}

	res := h.call("add_paragraph", map[string]any{"text": "x", "bogus": 1})
	assert.Equal(t, docerr.Invalid, res.Kind)
	assert.Contains(t, res.Status(), "unknown field")

	res = h.reg.Call(context.Background(), "add_paragraph", json.RawMessage(`{"text":`))
	assert.Equal(t, docerr.Invalid, res.Kind)
}

func TestCall_NoDocumentOpen(t *testing.T) {
	h := newHarness(t)
	for _, name := range []string{"save_document", "get_document_info", "add_page_break", "get_document_text"} {
		res := h.call(name, nil)
		assert.Equal(t, docerr.NoDocumentOpen, res.Kind, name)
		assert.Equal(t, "Error: no document is open", res.Status(), name)
	}
}

func TestCall_RecoversPanics(t *testing.T) {
	reg := NewRegistry(&Env{Session: session.New(nil)}, zaptest.NewLogger(t), nil)
	reg.MustRegister(&Tool{Name: "boom", Execute: func(context.Context, *Env, json.RawMessage) (string, error) {
		panic("kaboom")
	}})

	res := reg.Call(context.Background(), "boom", nil)
	assert.ErrorIs(t, res.Err, ErrToolPanicked)
	assert.Equal(t, "Error: tool panicked: kaboom", res.Status())
	assert.Equal(t, docerr.Unknown, res.Kind)
}

func TestCall_CancelledContext(t *testing.T) {
	h := newHarness(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	res := h.reg.Call(ctx, "get_document_info", nil)
	assert.True(t, errors.Is(res.Err, context.Canceled))
}

func TestCall_Metrics(t *testing.T) {
	h := newHarness(t)
	h.create()
	h.call("delete_paragraph", map[string]any{"paragraph_index": 5})

	n, err := testutil.GatherAndCount(h.metrics.Registry(), "docxedit_commands_total")
	require.NoError(t, err)
	assert.Equal(t, 2, n, "one series per tool and status")

	expected := `
# HELP docxedit_document_open Whether a document is currently open
# TYPE docxedit_document_open gauge
docxedit_document_open 1
`
	require.NoError(t, testutil.GatherAndCompare(h.metrics.Registry(), strings.NewReader(expected), "docxedit_document_open"))
}

// ============================================================================
// Commands
// ============================================================================

func TestDocumentCommands(t *testing.T) {
	h := newHarness(t)
	dir := t.TempDir()
	path := filepath.Join(dir, "report.docx")

	assert.Equal(t, "Document created successfully: "+path, h.ok("create_document", map[string]any{"file_path": path}))
	assert.Equal(t, "Document saved successfully to original file: "+path, h.ok("save_document", nil))

	moved := filepath.Join(dir, "moved.docx")
	assert.Equal(t, "Document saved as: "+moved, h.ok("save_as_document", map[string]any{"new_file_path": moved}))

	assert.Equal(t, "Document copy created: "+filepath.Join(dir, "moved-副本.docx"), h.ok("create_document_copy", nil))
	assert.Equal(t, "Document copy created: "+filepath.Join(dir, "moved.bak.docx"), h.ok("create_document_copy", map[string]any{"suffix": ".bak"}))

	info := h.ok("get_document_info", nil)
	assert.True(t, strings.HasPrefix(info, "Document path: "+moved+"\nSection count: 1\nParagraph count: 0\nTable count: 0\n"))

	missing := filepath.Join(dir, "missing.docx")
	res := h.call("open_document", map[string]any{"file_path": missing})
	assert.Equal(t, docerr.FileNotFound, res.Kind)
	assert.Equal(t, "Error: file does not exist: "+missing, res.Status())

	assert.Equal(t, "Document opened successfully: "+path, h.ok("open_document", map[string]any{"file_path": path}))
}

func TestContentCommands(t *testing.T) {
	h := newHarness(t)
	path := h.create()

	assert.Equal(t, "Added level 1 heading", h.ok("add_heading", map[string]any{"text": "Intro", "level": 1}))
	assert.Equal(t, "Paragraph added", h.ok("add_paragraph", map[string]any{
		"text": "Hello world", "bold": true, "font_size": 14, "font_name": "Arial", "color": "#112233", "alignment": "center",
	}))
	h.ok("add_heading", map[string]any{"text": "Next", "level": 1})
	h.ok("add_paragraph", map[string]any{"text": "tail"})

	res := h.call("add_heading", map[string]any{"text": "x", "level": 12})
	assert.Equal(t, docerr.Invalid, res.Kind)

	assert.Equal(t,
		"Replaced content under title 'Intro', keeping original format and style",
		h.ok("replace_section", map[string]any{"section_title": "Intro", "new_content": []string{"A", "B"}}))
	assert.Equal(t, []string{"Intro", "A", "B", "Next", "tail"}, h.texts())

	doc, _ := h.sess.Document()
	a := doc.Paragraph(1)
	require.Len(t, a.Runs, 1)
	assert.True(t, *a.Runs[0].Format.Bold, "format comes from the replaced paragraph")
	assert.Equal(t, 14.0, a.Runs[0].Format.Size)
	assert.Equal(t, "Arial", a.Runs[0].Format.Font)

	res = h.call("replace_section", map[string]any{"section_title": "Missing", "new_content": []string{}})
	assert.Equal(t, docerr.TitleNotFound, res.Kind)

	assert.Equal(t, "Found 1 occurrences of 'tail':\n\n1. paragraph index 4: tail\n", h.ok("search_text", map[string]any{"keyword": "tail"}))
	assert.Equal(t, "Keyword 'zzz' not found", h.ok("search_text", map[string]any{"keyword": "zzz"}))

	preview := h.ok("search_and_replace", map[string]any{"keyword": "B", "replace_with": "Bee", "preview_only": true})
	assert.Contains(t, preview, "Preview 'B' with 'Bee', found 1 locations, 1 occurrences:")
	assert.Equal(t, "B", h.texts()[2], "preview does not mutate")
	h.ok("search_and_replace", map[string]any{"keyword": "B", "replace_with": "Bee"})
	assert.Equal(t, "Bee", h.texts()[2])

	assert.Equal(t, "Replaced 'e' with 'E', 3 occurrences", h.ok("find_and_replace", map[string]any{"find_text": "e", "replace_text": "E"}))
	assert.Equal(t, []string{"Intro", "A", "BEE", "NExt", "tail"}, h.texts())

	h.ok("edit_section_by_keyword", map[string]any{"keyword": "BEE", "new_content": []string{"middle"}, "section_range": 0})
	assert.Equal(t, []string{"Intro", "A", "middle", "NExt", "tail"}, h.texts())
	res = h.call("edit_section_by_keyword", map[string]any{"keyword": "nope", "new_content": []string{}})
	assert.Equal(t, docerr.KeywordNotFound, res.Kind)

	assert.Equal(t, "Deleted text from position 0 to 1 in paragraph 2", h.ok("delete_text", map[string]any{"paragraph_index": 2, "start_pos": 0, "end_pos": 1}))
	assert.Equal(t, "Paragraph 0 deleted", h.ok("delete_paragraph", map[string]any{"paragraph_index": 0}))
	assert.Equal(t, []string{"A", "iddle", "NExt", "tail"}, h.texts())

	res = h.call("delete_paragraph", map[string]any{"paragraph_index": 99})
	assert.Equal(t, docerr.IndexOutOfRange, res.Kind)
	assert.Equal(t, "Error: paragraph index out of range: 99, document has 4 paragraphs", res.Status())

	h.ok("save_document", nil)
	reopened := session.New(nil)
	require.NoError(t, reopened.Open(path))
	rdoc, _ := reopened.Document()
	assert.Equal(t, 4, rdoc.ParagraphCount())
}

func TestTableCommands(t *testing.T) {
	h := newHarness(t)
	h.create()

	assert.Equal(t, "Added 3x2 table", h.ok("add_table", map[string]any{
		"rows": 3, "cols": 2, "data": []any{[]any{"a", 1}, []any{true, "d"}, []any{"e", "f", "ignored"}},
	}))
	doc, _ := h.sess.Document()
	tbl := doc.Table(0)
	txt, _ := tbl.CellText(0, 1)
	assert.Equal(t, "1", txt)
	txt, _ = tbl.CellText(1, 0)
	assert.Equal(t, "true", txt)

	assert.Equal(t, "Added new row to table 0", h.ok("add_table_row", map[string]any{"table_index": 0, "data": []string{"g", "h"}}))
	assert.Equal(t, "Cell (0, 0) in table 0 has been modified", h.ok("edit_table_cell", map[string]any{"table_index": 0, "row_index": 0, "col_index": 0, "text": "A"}))
	assert.Equal(t, "Deleted row 1 from table 0", h.ok("delete_table_row", map[string]any{"table_index": 0, "row_index": 1}))
	assert.Equal(t, 3, tbl.RowCount())

	assert.Equal(t, "Merged cells in table 0 from (0,0) to (0,1)", h.ok("merge_table_cells", map[string]any{
		"table_index": 0, "start_row": 0, "start_col": 0, "end_row": 0, "end_col": 1,
	}))
	grid := h.ok("get_table", map[string]any{"table_index": 0})
	assert.True(t, strings.HasPrefix(grid, "Table 0 (3x2):\n+"))
	assert.Contains(t, grid, "| A     |\n| 1     |\n", "merged content joins the anchor")

	assert.Equal(t, "Split table 0 after row 0", h.ok("split_table", map[string]any{"table_index": 0, "row_index": 0}))
	assert.Equal(t, 2, doc.TableCount())

	res := h.call("split_table", map[string]any{"table_index": 0, "row_index": 0})
	assert.Equal(t, docerr.InvalidRange, res.Kind)

	res = h.call("add_table_row", map[string]any{"table_index": 7})
	assert.Equal(t, "Error: table index out of range: 7, document has 2 tables", res.Status())

	res = h.call("add_table", map[string]any{"rows": 0, "cols": 2})
	assert.Equal(t, docerr.Invalid, res.Kind)

	res = h.call("add_table", map[string]any{"rows": 1, "cols": 1, "data": []any{[]any{map[string]any{}}}})
	assert.Equal(t, docerr.Invalid, res.Kind)
}

func TestLayoutAndViewCommands(t *testing.T) {
	h := newHarness(t)
	h.create()

	assert.Equal(t, "Document is empty", h.ok("get_document_text", nil))

	h.ok("add_paragraph", map[string]any{"text": "first"})
	assert.Equal(t, "Page break added", h.ok("add_page_break", nil))
	assert.Equal(t, "Page margins set", h.ok("set_page_margins", map[string]any{"top": 2.54, "left": 3.0}))

	doc, _ := h.sess.Document()
	assert.Equal(t, 1440, doc.Section.Margins.Top)
	assert.Equal(t, 1701, doc.Section.Margins.Left)

	res := h.call("set_page_margins", map[string]any{"bottom": -1})
	assert.Equal(t, docerr.Invalid, res.Kind)

	assert.Equal(t, "[0] first\n[1] <page break>\n", h.ok("get_document_text", nil))

	out := filepath.Join(t.TempDir(), "doc.html")
	assert.Equal(t, "Document exported as HTML: "+out, h.ok("export_html", map[string]any{"file_path": out}))
	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Contains(t, string(data), "<p>first</p>")
	assert.Contains(t, string(data), `<hr class="page-break"/>`)
}
