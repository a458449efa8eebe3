// Package render draws documents as plain text and HTML.
package render

import (
	"fmt"
	"strings"

	"github.com/tsawler/docxedit/model"
)

// Text renders the document in block order: one line per paragraph, with
// tables drawn as grids. Paragraphs are prefixed with their ordinal and tables
// with a header naming their ordinal so that command indices can be read off
// the output.
func Text(doc *model.Document) string {
	var sb strings.Builder
	p, t := 0, 0
	for _, b := range doc.Blocks {
		switch b := b.(type) {
		case *model.Paragraph:
			fmt.Fprintf(&sb, "[%d] ", p)
			if b.Style != "" {
				fmt.Fprintf(&sb, "(%s) ", b.Style)
			}
			sb.WriteString(paragraphText(b))
			sb.WriteByte('\n')
			p++
		case *model.Table:
			fmt.Fprintf(&sb, "[table %d: %dx%d]\n", t, b.RowCount(), b.ColCount())
			sb.WriteString(Table(b))
			t++
		}
	}
	return sb.String()
}

func paragraphText(p *model.Paragraph) string {
	var sb strings.Builder
	for _, r := range p.Runs {
		if r.Break == model.BreakPage {
			sb.WriteString("<page break>")
			continue
		}
		sb.WriteString(r.Text)
	}
	return sb.String()
}
