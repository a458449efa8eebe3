package tables

import (
	"github.com/tsawler/docxedit/docerr"
	"github.com/tsawler/docxedit/model"
)

// GridStyle is the style given to tables created by Add.
const GridStyle = "Table Grid"

func table(doc *model.Document, index int) (*model.Table, error) {
	n := doc.TableCount()
	if n == 0 {
		return nil, docerr.Newf(docerr.IndexOutOfRange, "no tables in document")
	}
	if index < 0 || index >= n {
		return nil, docerr.Newf(docerr.IndexOutOfRange, "table index out of range: %d, document has %d tables", index, n)
	}
	return doc.Table(index), nil
}

// Get returns the table with the given ordinal, failing the way every table
// command does when it is out of range.
func Get(doc *model.Document, index int) (*model.Table, error) {
	return table(doc, index)
}

func checkRow(t *model.Table, row int) error {
	if row < 0 || row >= t.RowCount() {
		return docerr.Newf(docerr.IndexOutOfRange, "row index out of range: %d, table has %d rows", row, t.RowCount())
	}
	return nil
}

func checkCol(t *model.Table, col int) error {
	if col < 0 || col >= t.ColCount() {
		return docerr.Newf(docerr.IndexOutOfRange, "column index out of range: %d, table has %d columns", col, t.ColCount())
	}
	return nil
}

// Add appends a rows x cols table whose columns share the page text width.
// data fills the cells row by row; values beyond the grid are ignored.
func Add(doc *model.Document, rows, cols int, data [][]string) (*model.Table, error) {
	if rows < 1 || cols < 1 {
		return nil, docerr.Newf(docerr.Invalid, "table must have at least one row and one column, got %dx%d", rows, cols)
	}
	if err := doc.Styles.Ensure(GridStyle); err != nil {
		return nil, docerr.Wrap(docerr.Invalid, err, "failed to add table style")
	}

	t := model.NewTable(rows, cols, doc.Section.TextWidth())
	t.Properties.Style = GridStyle
	for r, values := range data {
		if r >= rows {
			break
		}
		fillRow(t, r, values)
	}
	doc.Append(t)
	return t, nil
}

func fillRow(t *model.Table, row int, values []string) {
	for c, v := range values {
		if c >= len(t.Rows[row].Cells) {
			break
		}
		t.Rows[row].Cells[c].SetText(v)
	}
}

// AddRow appends a row to table index and fills it from data.
func AddRow(doc *model.Document, index int, data []string) (int, error) {
	t, err := table(doc, index)
	if err != nil {
		return 0, err
	}
	row := t.AppendRow()
	fillRow(t, row, data)
	return row, nil
}

// DeleteRow removes a row. A vertical merge that started on the removed row
// restarts on the row below.
func DeleteRow(doc *model.Document, index, row int) error {
	t, err := table(doc, index)
	if err != nil {
		return err
	}
	if err := checkRow(t, row); err != nil {
		return err
	}

	if row+1 < t.RowCount() {
		removed, below := t.Rows[row].Cells, t.Rows[row+1].Cells
		for c := range below {
			if below[c].VMerge != model.MergeContinue {
				continue
			}
			if c < len(removed) && removed[c].VMerge == model.MergeRestart {
				below[c].VMerge = model.MergeRestart
			}
		}
	}
	if _, err := t.RemoveRowAt(row); err != nil {
		return err
	}
	// A merge that lost its only continuation collapses to a plain cell
	collapseVMerges(t)
	return nil
}

// collapseVMerges clears restart marks that no longer have a continuation.
func collapseVMerges(t *model.Table) {
	for r := range t.Rows {
		for c := range t.Rows[r].Cells {
			cell := &t.Rows[r].Cells[c]
			if cell.VMerge != model.MergeRestart {
				continue
			}
			if r+1 >= len(t.Rows) || c >= len(t.Rows[r+1].Cells) || t.Rows[r+1].Cells[c].VMerge != model.MergeContinue {
				cell.VMerge = model.MergeNone
			}
		}
	}
}

// EditCell replaces the text of the cell covering (row, col).
func EditCell(doc *model.Document, index, row, col int, text string) error {
	t, err := table(doc, index)
	if err != nil {
		return err
	}
	if err := checkRow(t, row); err != nil {
		return err
	}
	if err := checkCol(t, col); err != nil {
		return err
	}
	return t.SetCellText(row, col, text)
}

// Split moves the rows after row into a new table inserted right after the
// original. The new table copies the properties and grid of the original.
func Split(doc *model.Document, index, row int) (*model.Table, error) {
	t, err := table(doc, index)
	if err != nil {
		return nil, err
	}
	n := t.RowCount()
	if n < 2 || row < 0 || row > n-2 {
		return nil, docerr.Newf(docerr.InvalidRange, "row index invalid: %d, should be between 0 and %d", row, n-2)
	}

	tail := t.CloneShell()
	if err := t.MoveRows(row+1, tail); err != nil {
		return nil, docerr.Wrap(docerr.Unknown, err, "failed to move rows")
	}
	for c := range tail.Rows[0].Cells {
		if tail.Rows[0].Cells[c].VMerge == model.MergeContinue {
			tail.Rows[0].Cells[c].VMerge = model.MergeRestart
		}
	}
	collapseVMerges(t)
	collapseVMerges(tail)

	if err := doc.InsertTableAfter(index, tail); err != nil {
		return nil, docerr.Wrap(docerr.Unknown, err, "failed to insert split table")
	}
	return tail, nil
}
