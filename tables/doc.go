// Package tables performs structural edits on the tables of a document.
//
// Tables are addressed by their ordinal among the document's tables, rows and
// columns by their grid position. Every grid column of a row has a cell;
// merged regions are marked on the covered cells, so a position inside a
// region resolves to the region's top-left (anchor) cell.
//
// # Operations
//
//   - [Add] appends a "Table Grid" table sized to the page text width
//   - [AddRow] and [DeleteRow] grow and shrink a table
//   - [EditCell] replaces the text of the cell covering a position
//   - [Split] moves the rows below a given row into a new table
//   - [Merge] merges a rectangle of cells into one
//
// # Merging
//
// The rectangle passed to [Merge] is first grown to contain every merged
// region it touches. Content of the covered cells is appended to the anchor,
// in row-major order, and the covered cells are emptied:
//
//	err := tables.Merge(doc, 0, 0, 0, 1, 1)
//	text, _ := doc.Table(0).CellText(1, 1) // text of the anchor at (0, 0)
//
// # Splitting
//
// [Split] requires at least one row on each side. Vertical merges cut by the
// split restart in the new table so both tables stay well-formed.
package tables
