package docx

import (
	"encoding/xml"
	"strconv"

	"github.com/tsawler/docxedit/model"
)

// table decodes a <w:tbl> whose start tag was consumed. Cells spanning
// several grid columns are expanded into a restart cell followed by
// continuation cells so that every row has one cell per grid column.
func (bd *bodyDecoder) table() (*model.Table, error) {
	tbl := &model.Table{}
	for {
		tok, err := bd.d.Token()
		if err != nil {
			return nil, err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "tblPr":
				if err := bd.tableProps(tbl); err != nil {
					return nil, err
				}
			case "tblGrid":
				if err := bd.tableGrid(tbl); err != nil {
					return nil, err
				}
			case "tr":
				row, err := bd.tableRow()
				if err != nil {
					return nil, err
				}
				tbl.Rows = append(tbl.Rows, row)
			default:
				if err := bd.d.Skip(); err != nil {
					return nil, err
				}
			}
		case xml.EndElement:
			normalizeRows(tbl)
			return tbl, nil
		}
	}
}

// normalizeRows pads short rows and widens the grid for long ones.
func normalizeRows(tbl *model.Table) {
	cols := len(tbl.Grid)
	for _, r := range tbl.Rows {
		if len(r.Cells) > cols {
			cols = len(r.Cells)
		}
	}
	for len(tbl.Grid) < cols {
		tbl.Grid = append(tbl.Grid, 0)
	}
	for i := range tbl.Rows {
		for len(tbl.Rows[i].Cells) < cols {
			tbl.Rows[i].Cells = append(tbl.Rows[i].Cells, model.NewCell(tbl.Grid[len(tbl.Rows[i].Cells)]))
		}
	}
}

func (bd *bodyDecoder) tableProps(tbl *model.Table) error {
	for {
		tok, err := bd.d.Token()
		if err != nil {
			return err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			if t.Name.Local == "tblStyle" {
				tbl.Properties.Style = bd.styleName(attr(t, "val"))
				if err := bd.d.Skip(); err != nil {
					return err
				}
				continue
			}
			e, err := bd.raw(t)
			if err != nil {
				return err
			}
			tbl.Properties.Preserved = append(tbl.Properties.Preserved, e)
		case xml.EndElement:
			return nil
		}
	}
}

func (bd *bodyDecoder) tableGrid(tbl *model.Table) error {
	for {
		tok, err := bd.d.Token()
		if err != nil {
			return err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			if t.Name.Local == "gridCol" {
				tbl.Grid = append(tbl.Grid, parseInt(attr(t, "w")))
			}
			if err := bd.d.Skip(); err != nil {
				return err
			}
		case xml.EndElement:
			return nil
		}
	}
}

func (bd *bodyDecoder) tableRow() (model.Row, error) {
	var row model.Row
	for {
		tok, err := bd.d.Token()
		if err != nil {
			return row, err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "trPr", "tblPrEx":
				e, err := bd.raw(t)
				if err != nil {
					return row, err
				}
				row.Preserved = append(row.Preserved, e)
			case "tc":
				cells, err := bd.tableCell()
				if err != nil {
					return row, err
				}
				row.Cells = append(row.Cells, cells...)
			default:
				if err := bd.d.Skip(); err != nil {
					return row, err
				}
			}
		case xml.EndElement:
			return row, nil
		}
	}
}

// tableCell decodes a <w:tc> into one cell per grid column it spans.
func (bd *bodyDecoder) tableCell() ([]model.Cell, error) {
	cell := model.Cell{}
	span := 1
	for {
		tok, err := bd.d.Token()
		if err != nil {
			return nil, err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "tcPr":
				span, err = bd.cellProps(&cell)
				if err != nil {
					return nil, err
				}
			case "p":
				p, err := bd.paragraph()
				if err != nil {
					return nil, err
				}
				cell.Paragraphs = append(cell.Paragraphs, p)
			default:
				// Nested tables are not modeled
				if err := bd.d.Skip(); err != nil {
					return nil, err
				}
			}
		case xml.EndElement:
			if len(cell.Paragraphs) == 0 {
				cell.Paragraphs = []*model.Paragraph{{}}
			}
			if span <= 1 {
				return []model.Cell{cell}, nil
			}
			cells := make([]model.Cell, span)
			cell.HMerge = model.MergeRestart
			cells[0] = cell
			for i := 1; i < span; i++ {
				cells[i] = model.NewCell(0)
				cells[i].HMerge = model.MergeContinue
				cells[i].VMerge = cell.VMerge
			}
			return cells, nil
		}
	}
}

func (bd *bodyDecoder) cellProps(cell *model.Cell) (int, error) {
	span := 1
	for {
		tok, err := bd.d.Token()
		if err != nil {
			return span, err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "tcW":
				cell.Width = parseInt(attr(t, "w"))
				if typ := attr(t, "type"); typ != "" && typ != "dxa" {
					// Percent and auto widths are kept as written
					cell.Width = 0
					e, err := bd.raw(t)
					if err != nil {
						return span, err
					}
					cell.Preserved = append(cell.Preserved, e)
					continue
				}
			case "gridSpan":
				if n, err := strconv.Atoi(attr(t, "val")); err == nil && n > 1 {
					span = n
				}
			case "vMerge":
				if attr(t, "val") == "restart" {
					cell.VMerge = model.MergeRestart
				} else {
					cell.VMerge = model.MergeContinue
				}
			default:
				e, err := bd.raw(t)
				if err != nil {
					return span, err
				}
				cell.Preserved = append(cell.Preserved, e)
				continue
			}
			if err := bd.d.Skip(); err != nil {
				return span, err
			}
		case xml.EndElement:
			return span, nil
		}
	}
}
