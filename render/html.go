package render

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/tsawler/docxedit/model"
)

func element(a atom.Atom, attrs ...html.Attribute) *html.Node {
	return &html.Node{Type: html.ElementNode, DataAtom: a, Data: a.String(), Attr: attrs}
}

func textNode(s string) *html.Node {
	return &html.Node{Type: html.TextNode, Data: s}
}

func attr(key, val string) html.Attribute {
	return html.Attribute{Key: key, Val: val}
}

// HTML writes doc as a standalone HTML page. Headings map to h1 through h6,
// run formatting to strong, em, u and inline styles, and merged table cells
// to colspan and rowspan.
func HTML(w io.Writer, doc *model.Document) error {
	root := &html.Node{Type: html.DocumentNode}
	root.AppendChild(&html.Node{Type: html.DoctypeNode, Data: "html"})

	page := element(atom.Html)
	root.AppendChild(page)

	head := element(atom.Head)
	head.AppendChild(element(atom.Meta, attr("charset", "utf-8")))
	if title := doc.Metadata.Title; title != "" {
		t := element(atom.Title)
		t.AppendChild(textNode(title))
		head.AppendChild(t)
	}
	page.AppendChild(head)

	body := element(atom.Body)
	page.AppendChild(body)
	for _, b := range doc.Blocks {
		switch b := b.(type) {
		case *model.Paragraph:
			body.AppendChild(paragraphNode(doc, b))
		case *model.Table:
			body.AppendChild(tableNode(doc, b))
		}
	}

	if err := html.Render(w, root); err != nil {
		return fmt.Errorf("failed to render html: %w", err)
	}
	return nil
}

var headingAtoms = []atom.Atom{atom.H1, atom.H2, atom.H3, atom.H4, atom.H5, atom.H6}

func paragraphNode(doc *model.Document, p *model.Paragraph) *html.Node {
	tag := atom.P
	switch style := doc.StyleName(p); {
	case style == "Title":
		tag = atom.H1
	case model.HeadingLevel(style) > 0:
		tag = headingAtoms[min(model.HeadingLevel(style), len(headingAtoms))-1]
	}

	n := element(tag)
	if p.Alignment != model.AlignUnset {
		n.Attr = append(n.Attr, attr("style", "text-align: "+p.Alignment.String()))
	}
	for _, r := range p.Runs {
		n.AppendChild(runNode(r))
	}
	return n
}

func runNode(r model.Run) *html.Node {
	if r.Break == model.BreakPage {
		return element(atom.Hr, attr("class", "page-break"))
	}

	var inner *html.Node
	lines := strings.Split(r.Text, "\n")
	if len(lines) == 1 {
		inner = textNode(r.Text)
	} else {
		inner = element(atom.Span)
		for i, line := range lines {
			if i > 0 {
				inner.AppendChild(element(atom.Br))
			}
			inner.AppendChild(textNode(line))
		}
	}

	f := r.Format
	wrap := func(a atom.Atom) {
		outer := element(a)
		outer.AppendChild(inner)
		inner = outer
	}
	if f.Underline != nil && *f.Underline {
		wrap(atom.U)
	}
	if f.Italic != nil && *f.Italic {
		wrap(atom.Em)
	}
	if f.Bold != nil && *f.Bold {
		wrap(atom.Strong)
	}

	var css []string
	if f.Font != "" {
		css = append(css, "font-family: "+strconv.Quote(f.Font))
	}
	if f.Size > 0 {
		css = append(css, "font-size: "+strconv.FormatFloat(f.Size, 'f', -1, 64)+"pt")
	}
	if f.Color != nil {
		css = append(css, "color: "+f.Color.String())
	}
	if len(css) > 0 {
		span := element(atom.Span, attr("style", strings.Join(css, "; ")))
		span.AppendChild(inner)
		inner = span
	}
	return inner
}

func tableNode(doc *model.Document, t *model.Table) *html.Node {
	n := element(atom.Table, attr("border", "1"))
	if t.Properties.Style != "" {
		n.Attr = append(n.Attr, attr("class", strings.ReplaceAll(t.Properties.Style, " ", "-")))
	}
	for r := range t.Rows {
		tr := element(atom.Tr)
		for c := range t.Rows[r].Cells {
			if !t.IsAnchor(r, c) {
				continue
			}
			td := element(atom.Td)
			rows, cols := t.Span(r, c)
			if cols > 1 {
				td.Attr = append(td.Attr, attr("colspan", strconv.Itoa(cols)))
			}
			if rows > 1 {
				td.Attr = append(td.Attr, attr("rowspan", strconv.Itoa(rows)))
			}
			for _, p := range t.Rows[r].Cells[c].Paragraphs {
				td.AppendChild(paragraphNode(doc, p))
			}
			tr.AppendChild(td)
		}
		n.AppendChild(tr)
	}
	return n
}
