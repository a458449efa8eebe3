package docx

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/tsawler/docxedit/model"
)

func roundTrip(t *testing.T, f *File) *File {
	t.Helper()
	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		t.Fatalf("Write() error = %v", err)
	}
	out, err := Read(bytes.NewReader(buf.Bytes()), int64(buf.Len()))
	if err != nil {
		t.Fatalf("Read() error = %v", err)
	}
	return out
}

func TestNew_RoundTrip(t *testing.T) {
	f := New()
	doc := f.Document

	heading := model.NewParagraph("Title A")
	heading.Style = "Heading 1"
	body := model.NewParagraph("Hello\tWorld")
	body.Alignment = model.AlignJustify
	body.Runs[0].Format = model.RunFormat{
		Bold:      model.Bool(true),
		Italic:    model.Bool(false),
		Underline: model.Bool(true),
		Size:      10.5,
		Font:      "宋体",
		Color:     &model.Color{R: 0x12, G: 0x34, B: 0x56},
	}
	brk := &model.Paragraph{Runs: []model.Run{{Break: model.BreakPage}}}
	doc.Append(heading, body, brk)

	got := roundTrip(t, f).Document
	if got.ParagraphCount() != 3 {
		t.Fatalf("ParagraphCount() = %d, want 3", got.ParagraphCount())
	}
	if p := got.Paragraph(0); p.Style != "Heading 1" || p.Text() != "Title A" {
		t.Errorf("heading = %q/%q", p.Style, p.Text())
	}

	p := got.Paragraph(1)
	if p.Text() != "Hello\tWorld" {
		t.Errorf("Text() = %q", p.Text())
	}
	if p.Alignment != model.AlignJustify {
		t.Errorf("Alignment = %v", p.Alignment)
	}
	f1 := p.Runs[0].Format
	if !*f1.Bold || *f1.Italic || !*f1.Underline || f1.Size != 10.5 || f1.Font != "宋体" {
		t.Errorf("format = %+v", f1)
	}
	if f1.Color.String() != "#123456" {
		t.Errorf("Color = %v", f1.Color)
	}
	if got.Paragraph(2).Runs[0].Break != model.BreakPage {
		t.Error("page break lost")
	}
	if got.Section.Margins != model.DefaultSection().Margins {
		t.Errorf("Margins = %+v", got.Section.Margins)
	}
}

func TestWrite_PreservesUnknownMarkup(t *testing.T) {
	content := `<w:p><w:pPr><w:pStyle w:val="Heading1"/><w:keepNext/><w:spacing w:after="120"/><w:outlineLvl w:val="0"/></w:pPr><w:r><w:rPr><w:highlight w:val="yellow"/></w:rPr><w:t>Kept</w:t></w:r></w:p>
<w:sectPr><w:pgSz w:w="11906" w:h="16838"/><w:cols w:space="425"/></w:sectPr>`
	f, err := Open(createTestDOCXWithStyles(t, content, testStyles))
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	f.Document.Paragraph(0).Alignment = model.AlignRight

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		t.Fatalf("Write() error = %v", err)
	}
	xmlData, _ := f.part(partDocument)
	s := string(xmlData)

	// jc belongs between spacing and outlineLvl
	order := []string{`<w:pStyle w:val="Heading1"/>`, `<w:keepNext/>`, `<w:spacing`, `<w:jc w:val="right"/>`, `<w:outlineLvl`}
	last := -1
	for _, frag := range order {
		i := strings.Index(s, frag)
		if i < 0 {
			t.Fatalf("missing %s in %s", frag, s)
		}
		if i < last {
			t.Errorf("%s is out of schema order", frag)
		}
		last = i
	}
	if !strings.Contains(s, `<w:highlight w:val="yellow"/>`) {
		t.Error("run property lost")
	}
	if !strings.Contains(s, `<w:cols w:space="425"/>`) {
		t.Error("section property lost")
	}

	again, err := Read(bytes.NewReader(buf.Bytes()), int64(buf.Len()))
	if err != nil {
		t.Fatalf("Read() error = %v", err)
	}
	if again.Document.Paragraph(0).Style != "Heading 1" {
		t.Errorf("Style = %q", again.Document.Paragraph(0).Style)
	}
}

func TestWrite_TableMerges(t *testing.T) {
	f := New()
	tbl := model.NewTable(2, 3, 9000)
	tbl.Properties.Style = "Table Grid"
	for r := 0; r < 2; r++ {
		for c := 0; c < 2; c++ {
			cell := &tbl.Rows[r].Cells[c]
			cell.HMerge = model.MergeContinue
			if c == 0 {
				cell.HMerge = model.MergeRestart
			}
			cell.VMerge = model.MergeContinue
			if r == 0 {
				cell.VMerge = model.MergeRestart
			}
		}
	}
	tbl.Rows[0].Cells[0].SetText("big")
	tbl.Rows[1].Cells[2].SetText("x")
	f.Document.Append(tbl)

	xmlData := encodeDocument(f.Document, nil)
	if n := strings.Count(string(xmlData), "<w:tc>"); n != 4 {
		t.Errorf("tc count = %d, want 4", n)
	}
	if !strings.Contains(string(xmlData), `<w:gridSpan w:val="2"/>`) {
		t.Error("gridSpan missing")
	}

	got := roundTrip(t, f).Document.Table(0)
	if rows, cols := got.Span(0, 0); rows != 2 || cols != 2 {
		t.Errorf("Span(0,0) = %dx%d, want 2x2", rows, cols)
	}
	if txt, _ := got.CellText(1, 1); txt != "big" {
		t.Errorf("CellText(1,1) = %q, want big", txt)
	}
	if txt, _ := got.CellText(1, 2); txt != "x" {
		t.Errorf("CellText(1,2) = %q, want x", txt)
	}
	if got.Properties.Style != "Table Grid" {
		t.Errorf("Style = %q", got.Properties.Style)
	}
}

func TestSave_AddsMissingStyles(t *testing.T) {
	f, err := Open(createTestDOCXWithStyles(t, `<w:p/>`, `<w:style w:type="paragraph" w:default="1" w:styleId="Normal"><w:name w:val="Normal"/></w:style>`))
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	if err := f.Document.Styles.Ensure("Heading 3"); err != nil {
		t.Fatalf("Ensure() error = %v", err)
	}
	p := model.NewParagraph("Section")
	p.Style = "Heading 3"
	f.Document.Append(p)

	path := filepath.Join(t.TempDir(), "out.docx")
	if err := f.Save(path); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	again, err := Open(path)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	if _, ok := again.Document.Styles.Lookup("Heading 3"); !ok {
		t.Error("Heading 3 definition was not written")
	}
	if again.Document.Paragraph(1).Style != "Heading 3" {
		t.Errorf("Style = %q", again.Document.Paragraph(1).Style)
	}

	// A second save must not duplicate the definition
	if err := again.Save(path); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	data, _ := again.part(partStyles)
	if n := strings.Count(string(data), `w:styleId="Heading3"`); n != 1 {
		t.Errorf("Heading3 defined %d times", n)
	}
}

func TestWrite_FontSizeWholeHalfPoints(t *testing.T) {
	tests := []struct {
		size float64
		want string
		back float64
	}{
		{12, `<w:sz w:val="24"/>`, 12},
		{10.5, `<w:sz w:val="21"/>`, 10.5},
		{10.25, `<w:sz w:val="21"/>`, 10.5},
		{10.2, `<w:sz w:val="20"/>`, 10},
	}
	for _, tt := range tests {
		f := New()
		p := model.NewParagraph("sized")
		p.Runs[0].Format.Size = tt.size
		f.Document.Append(p)

		enc := &encoder{doc: f.Document}
		enc.paragraph(p)
		if got := enc.b.String(); !strings.Contains(got, tt.want) {
			t.Errorf("size %v: markup %s does not contain %s", tt.size, got, tt.want)
		}

		got := roundTrip(t, f).Document.Paragraph(0).Runs[0].Format.Size
		if got != tt.back {
			t.Errorf("size %v: read back %v, want %v", tt.size, got, tt.back)
		}
	}
}

func TestRunText_Segments(t *testing.T) {
	enc := &encoder{doc: model.NewDocument()}
	enc.runText(" lead\tmid\nend")
	got := enc.b.String()
	want := `<w:t xml:space="preserve"> lead</w:t><w:tab/><w:t>mid</w:t><w:br/><w:t>end</w:t>`
	if got != want {
		t.Errorf("runText() = %s, want %s", got, want)
	}
}
