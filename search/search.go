// Package search finds and replaces text across the paragraphs and table
// cells of a document.
package search

import (
	"strings"

	"github.com/tsawler/docxedit/model"
)

// Kind tells where a hit was found
type Kind int

const (
	InParagraph Kind = iota
	InTableCell
)

func (k Kind) String() string {
	if k == InTableCell {
		return "table cell"
	}
	return "paragraph"
}

// Hit is one paragraph or table cell whose text contains the keyword.
// Paragraph is set for paragraph hits; Table, Row and Col for cell hits.
type Hit struct {
	Kind      Kind
	Paragraph int
	Table     int
	Row, Col  int
	Text      string
}

// Replacement is a hit together with its replaced text and the number of
// keyword occurrences in the original.
type Replacement struct {
	Hit
	Original string
	Replaced string
	Count    int
}

// visit calls fn for every body paragraph and then every table cell, in
// document order. Merged regions are visited once, at their anchor.
func visit(doc *model.Document, paragraph func(i int, p *model.Paragraph), cell func(t, r, c int, cell *model.Cell)) {
	for i, p := range doc.Paragraphs() {
		paragraph(i, p)
	}
	for ti, tbl := range doc.Tables() {
		for r := range tbl.Rows {
			for c := range tbl.Rows[r].Cells {
				if !tbl.IsAnchor(r, c) {
					continue
				}
				cell(ti, r, c, &tbl.Rows[r].Cells[c])
			}
		}
	}
}

// Search returns every paragraph, then every table cell, whose text contains
// keyword. Matching is case-sensitive.
func Search(doc *model.Document, keyword string) []Hit {
	var hits []Hit
	visit(doc,
		func(i int, p *model.Paragraph) {
			if text := p.Text(); strings.Contains(text, keyword) {
				hits = append(hits, Hit{Kind: InParagraph, Paragraph: i, Text: text})
			}
		},
		func(t, r, c int, cell *model.Cell) {
			if text := cell.Text(); strings.Contains(text, keyword) {
				hits = append(hits, Hit{Kind: InTableCell, Table: t, Row: r, Col: c, Text: text})
			}
		},
	)
	return hits
}

// SearchAndReplace replaces keyword with replacement in every matching
// paragraph and cell and reports each location. With preview set the
// document is left untouched; the report is the same either way.
func SearchAndReplace(doc *model.Document, keyword, replacement string, preview bool) []Replacement {
	var out []Replacement
	record := func(h Hit) {
		out = append(out, Replacement{
			Hit:      h,
			Original: h.Text,
			Replaced: strings.ReplaceAll(h.Text, keyword, replacement),
			Count:    strings.Count(h.Text, keyword),
		})
	}
	visit(doc,
		func(i int, p *model.Paragraph) {
			text := p.Text()
			if !strings.Contains(text, keyword) {
				return
			}
			record(Hit{Kind: InParagraph, Paragraph: i, Text: text})
			if !preview {
				p.SetText(out[len(out)-1].Replaced)
			}
		},
		func(t, r, c int, cell *model.Cell) {
			text := cell.Text()
			if !strings.Contains(text, keyword) {
				return
			}
			record(Hit{Kind: InTableCell, Table: t, Row: r, Col: c, Text: text})
			if !preview {
				replaceInParagraphs(cell.Paragraphs, keyword, replacement)
			}
		},
	)
	return out
}

func replaceInParagraphs(ps []*model.Paragraph, find, replace string) int {
	n := 0
	for _, p := range ps {
		text := p.Text()
		if !strings.Contains(text, find) {
			continue
		}
		text = strings.ReplaceAll(text, find, replace)
		p.SetText(text)
		n += strings.Count(text, replace)
	}
	return n
}

// FindAndReplace replaces find with replace in every paragraph, including
// those inside table cells. The returned count is the number of occurrences
// of replace in the rewritten paragraphs, which includes occurrences that
// were there before the replacement.
func FindAndReplace(doc *model.Document, find, replace string) int {
	total := 0
	visit(doc,
		func(_ int, p *model.Paragraph) {
			total += replaceInParagraphs([]*model.Paragraph{p}, find, replace)
		},
		func(_, _, _ int, cell *model.Cell) {
			total += replaceInParagraphs(cell.Paragraphs, find, replace)
		},
	)
	return total
}

const excerptRadius = 50

// Excerpt returns the parts of original and replaced shown in a report.
// Texts of up to 100 code points are shown whole; longer ones are cut to a
// 100 code point window starting 50 before the first occurrence of keyword,
// and the same window is taken from replaced.
func Excerpt(original, replaced, keyword string) (string, string) {
	orig := []rune(original)
	if len(orig) <= excerptRadius*2 {
		return original, replaced
	}
	idx := strings.Index(original, keyword)
	if idx > 0 {
		idx = len([]rune(original[:idx]))
	}
	start := max(0, idx-excerptRadius)
	return "..." + window(orig, start) + "...", "..." + window([]rune(replaced), start) + "..."
}

func window(rs []rune, start int) string {
	if start >= len(rs) {
		return ""
	}
	return string(rs[start:min(len(rs), start+excerptRadius*2)])
}
