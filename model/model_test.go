package model

import (
	"strings"
	"testing"
)

// ============================================================================
// Document Tests
// ============================================================================

func paragraphTexts(d *Document) []string {
	var out []string
	for _, p := range d.Paragraphs() {
		out = append(out, p.Text())
	}
	return out
}

func TestDocumentInsertRemove(t *testing.T) {
	doc := NewDocument()
	doc.Append(NewParagraph("a"), NewParagraph("c"))

	if err := doc.InsertAt(1, NewParagraph("b")); err != nil {
		t.Fatalf("InsertAt() error = %v", err)
	}
	if got := strings.Join(paragraphTexts(doc), ","); got != "a,b,c" {
		t.Errorf("after InsertAt texts = %q, want a,b,c", got)
	}

	if err := doc.InsertAt(doc.Len(), NewParagraph("d")); err != nil {
		t.Fatalf("InsertAt(Len) error = %v", err)
	}
	if err := doc.InsertAt(10, NewParagraph("x")); err == nil {
		t.Error("InsertAt(10) expected error")
	}

	b, err := doc.RemoveAt(0)
	if err != nil {
		t.Fatalf("RemoveAt() error = %v", err)
	}
	if b.(*Paragraph).Text() != "a" {
		t.Errorf("RemoveAt(0) removed %q, want a", b.(*Paragraph).Text())
	}
	if _, err := doc.RemoveAt(3); err == nil {
		t.Error("RemoveAt(3) expected error")
	}
	if got := strings.Join(paragraphTexts(doc), ","); got != "b,c,d" {
		t.Errorf("texts = %q, want b,c,d", got)
	}
}

func TestDocumentMoveRange(t *testing.T) {
	doc := NewDocument()
	for _, s := range []string{"a", "b", "c", "d", "e"} {
		doc.Append(NewParagraph(s))
	}
	// move [b c] to the end
	if err := doc.MoveRange(1, 3, 3); err != nil {
		t.Fatalf("MoveRange() error = %v", err)
	}
	if got := strings.Join(paragraphTexts(doc), ""); got != "adebc" {
		t.Errorf("after MoveRange = %q, want adebc", got)
	}
	if err := doc.MoveRange(3, 1, 0); err == nil {
		t.Error("MoveRange with inverted bounds expected error")
	}
}

func TestParagraphOrdinals(t *testing.T) {
	doc := NewDocument()
	doc.Append(NewTable(1, 1, 100), NewParagraph("p0"), NewTable(1, 1, 100), NewParagraph("p1"))

	tests := []struct {
		ordinal int
		want    int
	}{
		{0, 1},
		{1, 3},
		{2, -1},
		{-1, -1},
	}
	for _, tt := range tests {
		if got := doc.ParagraphBlockIndex(tt.ordinal); got != tt.want {
			t.Errorf("ParagraphBlockIndex(%d) = %d, want %d", tt.ordinal, got, tt.want)
		}
	}
	if doc.ParagraphCount() != 2 {
		t.Errorf("ParagraphCount() = %d, want 2", doc.ParagraphCount())
	}
	if doc.TableCount() != 2 {
		t.Errorf("TableCount() = %d, want 2", doc.TableCount())
	}
	if doc.TableBlockIndex(1) != 2 {
		t.Errorf("TableBlockIndex(1) = %d, want 2", doc.TableBlockIndex(1))
	}

	p, err := doc.RemoveParagraph(0)
	if err != nil || p.Text() != "p0" {
		t.Fatalf("RemoveParagraph(0) = %v, %v", p, err)
	}
	if doc.Len() != 3 {
		t.Errorf("Len() = %d, want 3", doc.Len())
	}
}

func TestInsertTableAfter(t *testing.T) {
	doc := NewDocument()
	first := NewTable(1, 1, 100)
	doc.Append(first, NewParagraph("after"))

	second := NewTable(2, 1, 100)
	if err := doc.InsertTableAfter(0, second); err != nil {
		t.Fatalf("InsertTableAfter() error = %v", err)
	}
	if doc.Block(1) != Block(second) {
		t.Error("new table should directly follow the original")
	}
	if err := doc.InsertTableAfter(5, second); err == nil {
		t.Error("InsertTableAfter(5) expected error")
	}
}

// ============================================================================
// Paragraph and Run Tests
// ============================================================================

func TestParagraphSetText(t *testing.T) {
	p := &Paragraph{
		Style:     "Heading 1",
		Alignment: AlignCenter,
		Runs: []Run{
			{Text: "Hello ", Format: RunFormat{Bold: Bool(true)}},
			{Text: "World"},
		},
	}
	if p.Text() != "Hello World" {
		t.Errorf("Text() = %q", p.Text())
	}
	p.SetText("Bye")
	if len(p.Runs) != 1 || p.Runs[0].Text != "Bye" || !p.Runs[0].Format.IsZero() {
		t.Errorf("SetText() runs = %+v", p.Runs)
	}
	if p.Style != "Heading 1" || p.Alignment != AlignCenter {
		t.Error("SetText() must keep style and alignment")
	}
	p.SetText("")
	if !p.IsEmpty() {
		t.Error("SetText(\"\") should leave an empty paragraph")
	}
}

func TestParagraphClone(t *testing.T) {
	p := &Paragraph{Runs: []Run{{Text: "x", Format: RunFormat{Bold: Bool(true), Color: &Color{1, 2, 3}}}}}
	c := p.Clone()
	*c.Runs[0].Format.Bold = false
	c.Runs[0].Format.Color.R = 9
	if !*p.Runs[0].Format.Bold || p.Runs[0].Format.Color.R != 1 {
		t.Error("Clone() shares formatting with the original")
	}
}

func TestParseColor(t *testing.T) {
	tests := []struct {
		in      string
		want    Color
		wantErr bool
	}{
		{"#FF0000", Color{255, 0, 0}, false},
		{"#00ff7f", Color{0, 255, 127}, false},
		{"FF0000", Color{}, true},
		{"#FF00", Color{}, true},
		{"#FF00000", Color{}, true},
		{"#GG0000", Color{}, true},
		{"", Color{}, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseColor(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseColor(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if err == nil && *got != tt.want {
				t.Errorf("ParseColor(%q) = %v, want %v", tt.in, *got, tt.want)
			}
		})
	}
	if (Color{255, 0, 16}).String() != "#FF0010" {
		t.Errorf("String() = %s", Color{255, 0, 16}.String())
	}
}

// ============================================================================
// Alignment Tests
// ============================================================================

func TestAlignmentString(t *testing.T) {
	tests := []struct {
		a        Alignment
		expected string
	}{
		{AlignUnset, "unset"},
		{AlignLeft, "left"},
		{AlignCenter, "center"},
		{AlignRight, "right"},
		{AlignJustify, "justify"},
	}
	for _, tt := range tests {
		if tt.a.String() != tt.expected {
			t.Errorf("Alignment(%d).String() = %v, want %v", tt.a, tt.a.String(), tt.expected)
		}
		got, err := ParseAlignment(tt.expected)
		if tt.a != AlignUnset && (err != nil || got != tt.a) {
			t.Errorf("ParseAlignment(%q) = %v, %v", tt.expected, got, err)
		}
	}
	if _, err := ParseAlignment("middle"); err == nil {
		t.Error("ParseAlignment(middle) expected error")
	}
}

// ============================================================================
// Style Tests
// ============================================================================

func TestHeadingLevel(t *testing.T) {
	tests := map[string]int{
		"Heading 1":  1,
		"Heading 9":  9,
		"Heading 10": 0,
		"Heading":    0,
		"Normal":     0,
		"Title":      0,
	}
	for name, want := range tests {
		if got := HeadingLevel(name); got != want {
			t.Errorf("HeadingLevel(%q) = %d, want %d", name, got, want)
		}
	}
}

func TestStylesEnsure(t *testing.T) {
	var s Styles
	if s.DefaultParagraphStyle() != "Normal" {
		t.Errorf("DefaultParagraphStyle() = %q", s.DefaultParagraphStyle())
	}
	if err := s.Ensure("Heading 2"); err != nil {
		t.Fatalf("Ensure() error = %v", err)
	}
	st, ok := s.Lookup("Heading 2")
	if !ok || st.ID != "Heading2" || !st.Added {
		t.Errorf("Lookup(Heading 2) = %+v, %v", st, ok)
	}
	if err := s.Ensure("Heading 2"); err != nil || len(s.List) != 1 {
		t.Errorf("second Ensure() added a duplicate")
	}
	if err := s.Ensure("Fancy"); err == nil {
		t.Error("Ensure(Fancy) expected error")
	}
	if s.IDFor("Table Grid") != "TableGrid" {
		t.Errorf("IDFor(Table Grid) = %q", s.IDFor("Table Grid"))
	}
}

// ============================================================================
// Section Tests
// ============================================================================

func TestCentimetersToTwips(t *testing.T) {
	tests := []struct {
		cm   float64
		want int
	}{
		{2.54, 1440},
		{1, 567},
		{0, 0},
	}
	for _, tt := range tests {
		if got := CentimetersToTwips(tt.cm); got != tt.want {
			t.Errorf("CentimetersToTwips(%v) = %d, want %d", tt.cm, got, tt.want)
		}
	}
	if DefaultSection().TextWidth() != 8640 {
		t.Errorf("TextWidth() = %d, want 8640", DefaultSection().TextWidth())
	}
}

func TestSectionCount(t *testing.T) {
	doc := NewDocument()
	doc.Append(&Paragraph{SectionBreak: true}, NewParagraph("x"))
	if doc.SectionCount() != 2 {
		t.Errorf("SectionCount() = %d, want 2", doc.SectionCount())
	}
}

// ============================================================================
// Table Tests
// ============================================================================

func TestNewTable(t *testing.T) {
	tbl := NewTable(2, 3, 9000)
	if tbl.RowCount() != 2 || tbl.ColCount() != 3 {
		t.Fatalf("dimensions = %dx%d, want 2x3", tbl.RowCount(), tbl.ColCount())
	}
	if tbl.Grid[0] != 3000 || tbl.Rows[1].Cells[2].Width != 3000 {
		t.Errorf("widths = %v / %d", tbl.Grid, tbl.Rows[1].Cells[2].Width)
	}
	if len(tbl.Rows[0].Cells[0].Paragraphs) != 1 {
		t.Error("new cell should hold one paragraph")
	}
}

func TestTableCellText(t *testing.T) {
	tbl := NewTable(2, 2, 200)
	if err := tbl.SetCellText(1, 1, "d"); err != nil {
		t.Fatalf("SetCellText() error = %v", err)
	}
	got, err := tbl.CellText(1, 1)
	if err != nil || got != "d" {
		t.Errorf("CellText(1,1) = %q, %v", got, err)
	}
	if _, err := tbl.CellText(2, 0); err == nil {
		t.Error("CellText(2,0) expected error")
	}
	if err := tbl.SetCellText(0, 5, "x"); err == nil {
		t.Error("SetCellText(0,5) expected error")
	}
}

func TestTableAnchorAndSpan(t *testing.T) {
	tbl := NewTable(3, 3, 300)
	// 2x2 region anchored at (0,0)
	for r := 0; r < 2; r++ {
		for c := 0; c < 2; c++ {
			cell := &tbl.Rows[r].Cells[c]
			if c == 0 {
				cell.HMerge = MergeRestart
			} else {
				cell.HMerge = MergeContinue
			}
			if r == 0 {
				cell.VMerge = MergeRestart
			} else {
				cell.VMerge = MergeContinue
			}
		}
	}
	tbl.Rows[0].Cells[0].SetText("anchor")

	for _, pos := range [][2]int{{0, 0}, {0, 1}, {1, 0}, {1, 1}} {
		r, c := tbl.Anchor(pos[0], pos[1])
		if r != 0 || c != 0 {
			t.Errorf("Anchor(%v) = (%d,%d), want (0,0)", pos, r, c)
		}
		if txt, _ := tbl.CellText(pos[0], pos[1]); txt != "anchor" {
			t.Errorf("CellText(%v) = %q", pos, txt)
		}
	}
	if rows, cols := tbl.Span(0, 0); rows != 2 || cols != 2 {
		t.Errorf("Span(0,0) = %dx%d, want 2x2", rows, cols)
	}
	if !tbl.IsAnchor(2, 2) || tbl.IsAnchor(1, 1) {
		t.Error("IsAnchor mismatch")
	}
}

func TestTableRowOperations(t *testing.T) {
	tbl := NewTable(3, 1, 100)
	for i, s := range []string{"r0", "r1", "r2"} {
		_ = tbl.SetCellText(i, 0, s)
	}

	if _, err := tbl.RemoveRowAt(0); err != nil {
		t.Fatalf("RemoveRowAt() error = %v", err)
	}
	if got, _ := tbl.CellText(0, 0); got != "r1" {
		t.Errorf("row 0 after remove = %q, want r1", got)
	}

	dst := tbl.CloneShell()
	if err := tbl.MoveRows(1, dst); err != nil {
		t.Fatalf("MoveRows() error = %v", err)
	}
	if tbl.RowCount() != 1 || dst.RowCount() != 1 {
		t.Fatalf("row counts = %d/%d, want 1/1", tbl.RowCount(), dst.RowCount())
	}
	if got, _ := dst.CellText(0, 0); got != "r2" {
		t.Errorf("moved row = %q, want r2", got)
	}

	tbl.AppendRow()
	if tbl.RowCount() != 2 {
		t.Errorf("AppendRow() rows = %d", tbl.RowCount())
	}
	if err := tbl.InsertRowAt(5, Row{}); err == nil {
		t.Error("InsertRowAt(5) expected error")
	}
}
