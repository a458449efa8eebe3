package model

import (
	"fmt"
	"strings"
)

// MergeState marks a cell's part in a merged region along one axis
type MergeState int

const (
	MergeNone MergeState = iota
	MergeRestart
	MergeContinue
)

func (m MergeState) String() string {
	switch m {
	case MergeRestart:
		return "restart"
	case MergeContinue:
		return "continue"
	default:
		return "none"
	}
}

// TableProperties are table-level properties
type TableProperties struct {
	Style     string // style name, e.g. "Table Grid"
	Preserved []Preserved
}

// Cell is one grid position of a table row
type Cell struct {
	Paragraphs []*Paragraph
	Width      int // twips, 0 when unspecified
	HMerge     MergeState
	VMerge     MergeState
	Preserved  []Preserved
}

// Row is a table row holding one Cell per grid column
type Row struct {
	Cells     []Cell
	Preserved []Preserved
}

// Table represents a table with cells organized in rows and grid columns
type Table struct {
	Properties TableProperties
	Grid       []int // column widths in twips
	Rows       []Row
}

func (t *Table) Type() BlockType { return BlockTypeTable }
func (t *Table) block()          {}

// NewCell creates a cell holding one empty paragraph
func NewCell(width int) Cell {
	return Cell{Paragraphs: []*Paragraph{{}}, Width: width}
}

// NewTable creates a table with the given dimensions whose columns share
// width twips equally.
func NewTable(rows, cols, width int) *Table {
	t := &Table{Grid: make([]int, cols)}
	for i := range t.Grid {
		t.Grid[i] = width / cols
	}
	for i := 0; i < rows; i++ {
		t.Rows = append(t.Rows, t.newRow())
	}
	return t
}

func (t *Table) newRow() Row {
	cols := t.ColCount()
	row := Row{Cells: make([]Cell, cols)}
	for j := 0; j < cols; j++ {
		w := 0
		if j < len(t.Grid) {
			w = t.Grid[j]
		}
		row.Cells[j] = NewCell(w)
	}
	return row
}

// RowCount returns the number of rows
func (t *Table) RowCount() int {
	return len(t.Rows)
}

// ColCount returns the number of grid columns
func (t *Table) ColCount() int {
	if len(t.Grid) > 0 {
		return len(t.Grid)
	}
	n := 0
	for _, r := range t.Rows {
		if len(r.Cells) > n {
			n = len(r.Cells)
		}
	}
	return n
}

// InBounds reports whether (row, col) addresses a grid position
func (t *Table) InBounds(row, col int) bool {
	return row >= 0 && row < len(t.Rows) && col >= 0 && col < len(t.Rows[row].Cells)
}

// Anchor resolves a grid position to the position of the cell that owns it.
// Positions outside merged regions resolve to themselves.
func (t *Table) Anchor(row, col int) (int, int) {
	for col > 0 && t.Rows[row].Cells[col].HMerge == MergeContinue {
		col--
	}
	for row > 0 && t.Rows[row].Cells[col].VMerge == MergeContinue && col < len(t.Rows[row-1].Cells) {
		row--
	}
	return row, col
}

// IsAnchor reports whether the cell at (row, col) owns its grid position
func (t *Table) IsAnchor(row, col int) bool {
	r, c := t.Anchor(row, col)
	return r == row && c == col
}

// Cell returns the anchor cell covering (row, col), or nil when the position
// is out of bounds.
func (t *Table) Cell(row, col int) *Cell {
	if !t.InBounds(row, col) {
		return nil
	}
	r, c := t.Anchor(row, col)
	return &t.Rows[r].Cells[c]
}

// Span returns the extent in rows and columns of the region anchored at
// (row, col).
func (t *Table) Span(row, col int) (rows, cols int) {
	cols = 1
	for c := col + 1; c < len(t.Rows[row].Cells) && t.Rows[row].Cells[c].HMerge == MergeContinue; c++ {
		cols++
	}
	rows = 1
	for r := row + 1; r < len(t.Rows) && col < len(t.Rows[r].Cells) && t.Rows[r].Cells[col].VMerge == MergeContinue; r++ {
		rows++
	}
	return rows, cols
}

// Text returns the text of the cell, one line per paragraph
func (c *Cell) Text() string {
	parts := make([]string, len(c.Paragraphs))
	for i, p := range c.Paragraphs {
		parts[i] = p.Text()
	}
	return strings.Join(parts, "\n")
}

// SetText replaces the cell content with a single paragraph holding text
func (c *Cell) SetText(text string) {
	c.Paragraphs = []*Paragraph{NewParagraph(text)}
}

// IsEmpty reports whether the cell holds nothing but empty paragraphs
func (c *Cell) IsEmpty() bool {
	for _, p := range c.Paragraphs {
		if !p.IsEmpty() {
			return false
		}
	}
	return true
}

// CellText returns the text of the cell covering (row, col)
func (t *Table) CellText(row, col int) (string, error) {
	c := t.Cell(row, col)
	if c == nil {
		return "", fmt.Errorf("cell (%d, %d) out of bounds", row, col)
	}
	return c.Text(), nil
}

// SetCellText replaces the content of the cell covering (row, col)
func (t *Table) SetCellText(row, col int, text string) error {
	c := t.Cell(row, col)
	if c == nil {
		return fmt.Errorf("cell (%d, %d) out of bounds", row, col)
	}
	c.SetText(text)
	return nil
}

// AppendRow adds a row with one empty cell per grid column and returns its
// index.
func (t *Table) AppendRow() int {
	t.Rows = append(t.Rows, t.newRow())
	return len(t.Rows) - 1
}

// InsertRowAt inserts row so that it lands at index i
func (t *Table) InsertRowAt(i int, row Row) error {
	if i < 0 || i > len(t.Rows) {
		return fmt.Errorf("row index %d out of range [0, %d]", i, len(t.Rows))
	}
	t.Rows = append(t.Rows, Row{})
	copy(t.Rows[i+1:], t.Rows[i:])
	t.Rows[i] = row
	return nil
}

// RemoveRowAt removes and returns the row at index i
func (t *Table) RemoveRowAt(i int) (Row, error) {
	if i < 0 || i >= len(t.Rows) {
		return Row{}, fmt.Errorf("row index %d out of range [0, %d)", i, len(t.Rows))
	}
	row := t.Rows[i]
	t.Rows = append(t.Rows[:i], t.Rows[i+1:]...)
	return row, nil
}

// MoveRows moves rows [from, RowCount()) to the end of dst, keeping their
// order. The rows are no longer part of t afterwards.
func (t *Table) MoveRows(from int, dst *Table) error {
	if from < 0 || from > len(t.Rows) {
		return fmt.Errorf("row index %d out of range [0, %d]", from, len(t.Rows))
	}
	dst.Rows = append(dst.Rows, t.Rows[from:]...)
	t.Rows = t.Rows[:from:from]
	return nil
}

// CloneShell returns a table with copies of t's properties and grid and no
// rows.
func (t *Table) CloneShell() *Table {
	return &Table{
		Properties: TableProperties{
			Style:     t.Properties.Style,
			Preserved: clonePreserved(t.Properties.Preserved),
		},
		Grid: append([]int(nil), t.Grid...),
	}
}
