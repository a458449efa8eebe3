package render

import (
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/tsawler/docxedit/model"
)

// region is one anchor cell of a table and the grid area it covers
type region struct {
	row, col   int
	rows, cols int
	lines      []string
}

// grid is the computed layout of a table
type grid struct {
	rows, cols int
	owner      [][]*region // owner[r][c] is the region covering (r, c)
	widths     []int       // content width per column
	heights    []int       // text lines per row
}

// Table draws t as an ASCII box grid. Column widths are measured in display
// cells, so wide characters take two. A merged region is drawn once.
func Table(t *model.Table) string {
	g := layout(t)
	if g.rows == 0 || g.cols == 0 {
		return ""
	}
	var sb strings.Builder
	sb.WriteString(g.border(-1))
	for r := 0; r < g.rows; r++ {
		for line := 0; line < g.heights[r]; line++ {
			sb.WriteString(g.content(r, line))
		}
		sb.WriteString(g.border(r))
	}
	return sb.String()
}

func layout(t *model.Table) *grid {
	g := &grid{rows: t.RowCount(), cols: t.ColCount()}
	g.owner = make([][]*region, g.rows)
	for r := range g.owner {
		g.owner[r] = make([]*region, g.cols)
	}

	var regions []*region
	for r := 0; r < g.rows; r++ {
		for c := 0; c < g.cols; c++ {
			if !t.InBounds(r, c) || !t.IsAnchor(r, c) {
				continue
			}
			rows, cols := t.Span(r, c)
			reg := &region{row: r, col: c, rows: rows, cols: cols, lines: strings.Split(t.Rows[r].Cells[c].Text(), "\n")}
			regions = append(regions, reg)
			for dr := 0; dr < rows && r+dr < g.rows; dr++ {
				for dc := 0; dc < cols && c+dc < g.cols; dc++ {
					g.owner[r+dr][c+dc] = reg
				}
			}
		}
	}

	// Short rows and continuation marks no anchor claims are drawn blank
	for r := range g.owner {
		for c, reg := range g.owner[r] {
			if reg == nil {
				g.owner[r][c] = &region{row: r, col: c, rows: 1, cols: 1, lines: []string{""}}
				regions = append(regions, g.owner[r][c])
			}
		}
	}

	g.widths = make([]int, g.cols)
	for i := range g.widths {
		g.widths[i] = 1
	}
	for _, reg := range regions {
		if reg.cols == 1 {
			g.widths[reg.col] = max(g.widths[reg.col], widest(reg.lines))
		}
	}
	for _, reg := range regions {
		if reg.cols == 1 {
			continue
		}
		// Spanned borders count as content width
		have := (reg.cols - 1) * 3
		for c := reg.col; c < reg.col+reg.cols && c < g.cols; c++ {
			have += g.widths[c]
		}
		if need := widest(reg.lines); need > have {
			extra := need - have
			for i := 0; i < reg.cols && reg.col+i < g.cols; i++ {
				g.widths[reg.col+i] += extra / reg.cols
				if i < extra%reg.cols {
					g.widths[reg.col+i]++
				}
			}
		}
	}

	g.heights = make([]int, g.rows)
	for r := range g.heights {
		g.heights[r] = 1
	}
	for _, reg := range regions {
		g.heights[reg.row] = max(g.heights[reg.row], len(reg.lines))
	}
	return g
}

func widest(lines []string) int {
	w := 0
	for _, l := range lines {
		w = max(w, runewidth.StringWidth(l))
	}
	return w
}

// border draws the line below row r, or the top border for r == -1.
func (g *grid) border(r int) string {
	var sb strings.Builder
	sb.WriteByte('+')
	for c := 0; c < g.cols; c++ {
		fill := "-"
		if r >= 0 && r < g.rows-1 && g.owner[r][c] == g.owner[r+1][c] {
			fill = " "
		}
		sb.WriteString(strings.Repeat(fill, g.widths[c]+2))
		if c < g.cols-1 {
			sb.WriteByte(g.joint(r, c))
		}
	}
	sb.WriteString("+\n")
	return sb.String()
}

func (g *grid) joint(r, c int) byte {
	if r < 0 || r == g.rows-1 {
		return '+'
	}
	above := g.owner[r][c] != g.owner[r][c+1]
	below := g.owner[r+1][c] != g.owner[r+1][c+1]
	across := g.owner[r][c] != g.owner[r+1][c] || g.owner[r][c+1] != g.owner[r+1][c+1]
	switch {
	case (above || below) && across:
		return '+'
	case above || below:
		return '|'
	default:
		return '-'
	}
}

func (g *grid) content(r, line int) string {
	var sb strings.Builder
	sb.WriteByte('|')
	for c := 0; c < g.cols; {
		reg := g.owner[r][c]
		span := reg.cols - (c - reg.col)
		width := (span - 1) * 3
		for i := 0; i < span && c+i < g.cols; i++ {
			width += g.widths[c+i]
		}

		text := ""
		if reg.row == r && line < len(reg.lines) {
			text = reg.lines[line]
		}
		sb.WriteByte(' ')
		sb.WriteString(text)
		sb.WriteString(strings.Repeat(" ", max(0, width-runewidth.StringWidth(text))))
		sb.WriteString(" |")
		c += span
	}
	sb.WriteByte('\n')
	return sb.String()
}
