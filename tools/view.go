package tools

import (
	"context"
	"fmt"
	"os"

	"github.com/tsawler/docxedit/docerr"
	"github.com/tsawler/docxedit/model"
	"github.com/tsawler/docxedit/render"
	"github.com/tsawler/docxedit/tables"
)

// GetDocumentTextTool returns a tool that prints the document body.
func GetDocumentTextTool() *Tool {
	return &Tool{
		Name:        "get_document_text",
		Description: "Show every paragraph with its index and style, and every table as a grid",
		Category:    CategoryView,
		Execute:     typed(executeGetDocumentText),
		Schema:      Schema{Properties: map[string]Property{}},
	}
}

func executeGetDocumentText(_ context.Context, env *Env, _ noParams) (string, error) {
	doc, err := env.Session.Document()
	if err != nil {
		return "", err
	}
	if doc.Len() == 0 {
		return "Document is empty", nil
	}
	return render.Text(doc), nil
}

type tableParams struct {
	TableIndex int `json:"table_index"`
}

// GetTableTool returns a tool that draws one table.
func GetTableTool() *Tool {
	return &Tool{
		Name:        "get_table",
		Description: "Show a table as a text grid",
		Category:    CategoryView,
		Execute:     typed(executeGetTable),
		Schema: Schema{
			Required: []string{"table_index"},
			Properties: map[string]Property{
				"table_index": tableIndexProperty(),
			},
		},
	}
}

func executeGetTable(_ context.Context, env *Env, p tableParams) (string, error) {
	doc, err := env.Session.Document()
	if err != nil {
		return "", err
	}
	t, err := tables.Get(doc, p.TableIndex)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("Table %d (%dx%d):\n%s", p.TableIndex, t.RowCount(), t.ColCount(), render.Table(t)), nil
}

// ExportHTMLTool returns a tool that writes an HTML rendering of the
// document.
func ExportHTMLTool() *Tool {
	return &Tool{
		Name:        "export_html",
		Description: "Write the document as an HTML page",
		Category:    CategoryView,
		Execute:     typed(executeExportHTML),
		Schema:      filePathSchema("Path of the HTML file to write"),
	}
}

func executeExportHTML(_ context.Context, env *Env, p filePathParams) (string, error) {
	doc, err := env.Session.Document()
	if err != nil {
		return "", err
	}
	if err := WriteHTML(p.FilePath, doc); err != nil {
		return "", err
	}
	return fmt.Sprintf("Document exported as HTML: %s", p.FilePath), nil
}

// WriteHTML renders doc as an HTML page into the file at path.
func WriteHTML(path string, doc *model.Document) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return docerr.Wrap(docerr.IOFailure, err, "failed to export html")
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = docerr.Wrap(docerr.IOFailure, cerr, "failed to export html")
		}
	}()
	if err := render.HTML(f, doc); err != nil {
		return docerr.Wrap(docerr.IOFailure, err, "failed to export html")
	}
	return nil
}
