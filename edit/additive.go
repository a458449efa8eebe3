package edit

import (
	"github.com/tsawler/docxedit/docerr"
	"github.com/tsawler/docxedit/model"
)

// AddParagraph appends a paragraph holding text as one run with format f.
func AddParagraph(doc *model.Document, text string, f model.RunFormat, align model.Alignment) *model.Paragraph {
	p := &model.Paragraph{
		Alignment: align,
		Runs:      []model.Run{{Text: text, Format: f.Clone()}},
	}
	doc.Append(p)
	return p
}

// AddHeading appends a heading paragraph. Level 0 is the document title.
func AddHeading(doc *model.Document, text string, level int) (*model.Paragraph, error) {
	if level < 0 || level > 9 {
		return nil, docerr.Newf(docerr.Invalid, "heading level must be between 0 and 9, got %d", level)
	}
	style := "Title"
	if level > 0 {
		style = headingStyle(level)
	}
	if err := doc.Styles.Ensure(style); err != nil {
		return nil, docerr.Wrap(docerr.Invalid, err, "failed to add heading style")
	}
	p := model.NewParagraph(text)
	p.Style = style
	doc.Append(p)
	return p, nil
}

func headingStyle(level int) string {
	return "Heading " + string(rune('0'+level))
}

// DeleteParagraph removes the paragraph at ordinal i.
func DeleteParagraph(doc *model.Document, i int) error {
	count := doc.ParagraphCount()
	if i < 0 || i >= count {
		return docerr.Newf(docerr.IndexOutOfRange, "paragraph index out of range: %d, document has %d paragraphs", i, count)
	}
	_, err := doc.RemoveParagraph(i)
	return err
}

// DeleteText removes the code points [start, end) from paragraph p. The
// paragraph is left with a single plain run.
func DeleteText(doc *model.Document, p, start, end int) error {
	count := doc.ParagraphCount()
	if p < 0 || p >= count {
		return docerr.Newf(docerr.IndexOutOfRange, "paragraph index out of range: %d, document has %d paragraphs", p, count)
	}
	para := doc.Paragraph(p)
	text := []rune(para.Text())
	if start < 0 || start >= len(text) {
		return docerr.Newf(docerr.IndexOutOfRange, "start position out of range: %d, paragraph length is %d", start, len(text))
	}
	if end <= start || end > len(text) {
		return docerr.Newf(docerr.InvalidRange, "end position invalid: %d, should be between %d and %d", end, start+1, len(text))
	}
	para.SetText(string(text[:start]) + string(text[end:]))
	return nil
}

// AddPageBreak appends a paragraph that holds only a page break.
func AddPageBreak(doc *model.Document) {
	doc.Append(&model.Paragraph{Runs: []model.Run{{Break: model.BreakPage}}})
}

// Margins are optional page margins in centimeters. Nil fields are left
// unchanged.
type Margins struct {
	Top, Bottom, Left, Right *float64
}

// SetPageMargins applies m to the document's final section.
func SetPageMargins(doc *model.Document, m Margins) error {
	fields := []struct {
		name string
		cm   *float64
		dst  *int
	}{
		{"top", m.Top, &doc.Section.Margins.Top},
		{"bottom", m.Bottom, &doc.Section.Margins.Bottom},
		{"left", m.Left, &doc.Section.Margins.Left},
		{"right", m.Right, &doc.Section.Margins.Right},
	}
	for _, f := range fields {
		if f.cm != nil && *f.cm < 0 {
			return docerr.Newf(docerr.Invalid, "%s margin must not be negative: %g", f.name, *f.cm)
		}
	}
	for _, f := range fields {
		if f.cm != nil {
			*f.dst = model.CentimetersToTwips(*f.cm)
		}
	}
	return nil
}
