package tables

import (
	"github.com/tsawler/docxedit/docerr"
	"github.com/tsawler/docxedit/model"
)

// rect is an inclusive rectangle of grid positions
type rect struct {
	r0, c0, r1, c1 int
}

// Merge merges the cells from (r0, c0) to (r1, c1) inclusive into one cell
// anchored at the top-left corner.
func Merge(doc *model.Document, index, r0, c0, r1, c1 int) error {
	t, err := table(doc, index)
	if err != nil {
		return err
	}
	if r1 < r0 || c1 < c0 {
		return docerr.Newf(docerr.InvalidRange, "invalid merge range (%d,%d) to (%d,%d): end must not precede start", r0, c0, r1, c1)
	}
	for _, p := range [][2]int{{r0, c0}, {r1, c1}} {
		if err := checkRow(t, p[0]); err != nil {
			return err
		}
		if err := checkCol(t, p[1]); err != nil {
			return err
		}
	}

	area := grow(t, rect{r0, c0, r1, c1})
	anchor := &t.Rows[area.r0].Cells[area.c0]

	var moved []*model.Paragraph
	for r := area.r0; r <= area.r1; r++ {
		for c := area.c0; c <= area.c1; c++ {
			if r == area.r0 && c == area.c0 {
				continue
			}
			cell := &t.Rows[r].Cells[c]
			if !cell.IsEmpty() {
				moved = append(moved, cell.Paragraphs...)
			}
			cell.Paragraphs = []*model.Paragraph{{}}
		}
	}
	if len(moved) > 0 {
		anchor.Paragraphs = append(trimTrailingEmpty(anchor.Paragraphs), moved...)
	}

	height, width := area.r1-area.r0+1, area.c1-area.c0+1
	for r := area.r0; r <= area.r1; r++ {
		spanWidth := 0
		for c := area.c0; c <= area.c1; c++ {
			cell := &t.Rows[r].Cells[c]
			cell.HMerge = mergeState(width, c == area.c0)
			cell.VMerge = mergeState(height, r == area.r0)
			spanWidth += columnWidth(t, c)
		}
		if width > 1 && spanWidth > 0 {
			t.Rows[r].Cells[area.c0].Width = spanWidth
		}
	}
	return nil
}

// grow extends area until every merged region that overlaps it lies inside.
func grow(t *model.Table, area rect) rect {
	for {
		next := area
		for r := area.r0; r <= area.r1; r++ {
			for c := area.c0; c <= area.c1; c++ {
				if !t.InBounds(r, c) {
					continue
				}
				ar, ac := t.Anchor(r, c)
				rows, cols := t.Span(ar, ac)
				next.r0 = min(next.r0, ar)
				next.c0 = min(next.c0, ac)
				next.r1 = max(next.r1, ar+rows-1)
				next.c1 = max(next.c1, ac+cols-1)
			}
		}
		if next == area {
			return area
		}
		area = next
	}
}

func mergeState(extent int, first bool) model.MergeState {
	switch {
	case extent == 1:
		return model.MergeNone
	case first:
		return model.MergeRestart
	default:
		return model.MergeContinue
	}
}

func columnWidth(t *model.Table, col int) int {
	if col < len(t.Grid) {
		return t.Grid[col]
	}
	return 0
}

func trimTrailingEmpty(ps []*model.Paragraph) []*model.Paragraph {
	for len(ps) > 0 && ps[len(ps)-1].IsEmpty() {
		ps = ps[:len(ps)-1]
	}
	return ps
}
