package tools

import (
	"context"
	"fmt"

	"github.com/tsawler/docxedit/tables"
)

func tableIndexProperty() Property {
	return Property{Type: "integer", Description: "Table index, counting from 0"}
}

type addTableParams struct {
	Rows int          `json:"rows"`
	Cols int          `json:"cols"`
	Data [][]cellText `json:"data"`
}

// AddTableTool returns a tool that appends a grid table.
func AddTableTool() *Tool {
	return &Tool{
		Name:        "add_table",
		Description: "Add a table to the end of the document",
		Category:    CategoryTable,
		Execute:     typed(executeAddTable),
		Schema: Schema{
			Required: []string{"rows", "cols"},
			Properties: map[string]Property{
				"rows": {Type: "integer", Description: "Number of rows"},
				"cols": {Type: "integer", Description: "Number of columns"},
				"data": {
					Type:        "array",
					Description: "Table data, one array of cell texts per row",
					Items:       &Property{Type: "array", Items: &Property{Type: "string"}},
				},
			},
		},
	}
}

func executeAddTable(_ context.Context, env *Env, p addTableParams) (string, error) {
	doc, err := env.Session.Document()
	if err != nil {
		return "", err
	}
	var data [][]string
	for _, row := range p.Data {
		data = append(data, cellStrings(row))
	}
	if _, err := tables.Add(doc, p.Rows, p.Cols, data); err != nil {
		return "", err
	}
	return fmt.Sprintf("Added %dx%d table", p.Rows, p.Cols), nil
}

type addRowParams struct {
	TableIndex int        `json:"table_index"`
	Data       []cellText `json:"data"`
}

// AddTableRowTool returns a tool that appends a row to a table.
func AddTableRowTool() *Tool {
	return &Tool{
		Name:        "add_table_row",
		Description: "Add a row to the end of a table",
		Category:    CategoryTable,
		Execute:     typed(executeAddTableRow),
		Schema: Schema{
			Required: []string{"table_index"},
			Properties: map[string]Property{
				"table_index": tableIndexProperty(),
				"data":        {Type: "array", Description: "Cell texts of the new row", Items: &Property{Type: "string"}},
			},
		},
	}
}

func executeAddTableRow(_ context.Context, env *Env, p addRowParams) (string, error) {
	doc, err := env.Session.Document()
	if err != nil {
		return "", err
	}
	if _, err := tables.AddRow(doc, p.TableIndex, cellStrings(p.Data)); err != nil {
		return "", err
	}
	return fmt.Sprintf("Added new row to table %d", p.TableIndex), nil
}

type rowParams struct {
	TableIndex int `json:"table_index"`
	RowIndex   int `json:"row_index"`
}

// DeleteTableRowTool returns a tool that removes a row from a table.
func DeleteTableRowTool() *Tool {
	return &Tool{
		Name:        "delete_table_row",
		Description: "Delete a row from a table",
		Category:    CategoryTable,
		Execute:     typed(executeDeleteTableRow),
		Schema: Schema{
			Required: []string{"table_index", "row_index"},
			Properties: map[string]Property{
				"table_index": tableIndexProperty(),
				"row_index":   {Type: "integer", Description: "Row index"},
			},
		},
	}
}

func executeDeleteTableRow(_ context.Context, env *Env, p rowParams) (string, error) {
	doc, err := env.Session.Document()
	if err != nil {
		return "", err
	}
	if err := tables.DeleteRow(doc, p.TableIndex, p.RowIndex); err != nil {
		return "", err
	}
	return fmt.Sprintf("Deleted row %d from table %d", p.RowIndex, p.TableIndex), nil
}

type editCellParams struct {
	TableIndex int    `json:"table_index"`
	RowIndex   int    `json:"row_index"`
	ColIndex   int    `json:"col_index"`
	Text       string `json:"text"`
}

// EditTableCellTool returns a tool that rewrites one cell.
func EditTableCellTool() *Tool {
	return &Tool{
		Name:        "edit_table_cell",
		Description: "Replace the text of a table cell",
		Category:    CategoryTable,
		Execute:     typed(executeEditTableCell),
		Schema: Schema{
			Required: []string{"table_index", "row_index", "col_index", "text"},
			Properties: map[string]Property{
				"table_index": tableIndexProperty(),
				"row_index":   {Type: "integer", Description: "Row index"},
				"col_index":   {Type: "integer", Description: "Column index"},
				"text":        {Type: "string", Description: "New cell text"},
			},
		},
	}
}

func executeEditTableCell(_ context.Context, env *Env, p editCellParams) (string, error) {
	doc, err := env.Session.Document()
	if err != nil {
		return "", err
	}
	if err := tables.EditCell(doc, p.TableIndex, p.RowIndex, p.ColIndex, p.Text); err != nil {
		return "", err
	}
	return fmt.Sprintf("Cell (%d, %d) in table %d has been modified", p.RowIndex, p.ColIndex, p.TableIndex), nil
}

type mergeParams struct {
	TableIndex int `json:"table_index"`
	StartRow   int `json:"start_row"`
	StartCol   int `json:"start_col"`
	EndRow     int `json:"end_row"`
	EndCol     int `json:"end_col"`
}

// MergeTableCellsTool returns a tool that merges a rectangle of cells.
func MergeTableCellsTool() *Tool {
	return &Tool{
		Name:        "merge_table_cells",
		Description: "Merge the rectangle of cells from (start_row, start_col) to (end_row, end_col) inclusive",
		Category:    CategoryTable,
		Execute:     typed(executeMergeTableCells),
		Schema: Schema{
			Required: []string{"table_index", "start_row", "start_col", "end_row", "end_col"},
			Properties: map[string]Property{
				"table_index": tableIndexProperty(),
				"start_row":   {Type: "integer", Description: "Top row"},
				"start_col":   {Type: "integer", Description: "Left column"},
				"end_row":     {Type: "integer", Description: "Bottom row"},
				"end_col":     {Type: "integer", Description: "Right column"},
			},
		},
	}
}

func executeMergeTableCells(_ context.Context, env *Env, p mergeParams) (string, error) {
	doc, err := env.Session.Document()
	if err != nil {
		return "", err
	}
	if err := tables.Merge(doc, p.TableIndex, p.StartRow, p.StartCol, p.EndRow, p.EndCol); err != nil {
		return "", err
	}
	return fmt.Sprintf("Merged cells in table %d from (%d,%d) to (%d,%d)", p.TableIndex, p.StartRow, p.StartCol, p.EndRow, p.EndCol), nil
}

// SplitTableTool returns a tool that splits a table in two.
func SplitTableTool() *Tool {
	return &Tool{
		Name:        "split_table",
		Description: "Split a table after the given row; the following rows move to a new table",
		Category:    CategoryTable,
		Execute:     typed(executeSplitTable),
		Schema: Schema{
			Required: []string{"table_index", "row_index"},
			Properties: map[string]Property{
				"table_index": tableIndexProperty(),
				"row_index":   {Type: "integer", Description: "Last row kept in the original table"},
			},
		},
	}
}

func executeSplitTable(_ context.Context, env *Env, p rowParams) (string, error) {
	doc, err := env.Session.Document()
	if err != nil {
		return "", err
	}
	if _, err := tables.Split(doc, p.TableIndex, p.RowIndex); err != nil {
		return "", err
	}
	return fmt.Sprintf("Split table %d after row %d", p.TableIndex, p.RowIndex), nil
}
