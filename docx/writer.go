package docx

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/tsawler/docxedit/model"
)

// File is a DOCX package: the editable document plus every other part of the
// archive, kept byte for byte.
type File struct {
	Document *model.Document

	parts     []part
	rootAttrs []xml.Attr
}

type part struct {
	name   string
	method uint16
	data   []byte
}

func (f *File) part(name string) ([]byte, bool) {
	for _, p := range f.parts {
		if p.name == name {
			return p.data, true
		}
	}
	return nil, false
}

func (f *File) setPart(name string, data []byte) {
	for i := range f.parts {
		if f.parts[i].name == name {
			f.parts[i].data = data
			return
		}
	}
	f.parts = append(f.parts, part{name: name, method: zip.Deflate, data: data})
}

// Save writes the package to filename, replacing it atomically.
func (f *File) Save(filename string) error {
	dir := filepath.Dir(filename)
	tmp, err := os.CreateTemp(dir, ".docxedit-*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if err := f.Write(tmp); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("closing temp file: %w", err)
	}
	if err := os.Rename(tmpName, filename); err != nil {
		return fmt.Errorf("replacing %s: %w", filename, err)
	}
	return nil
}

// Write serializes the package as a ZIP archive.
func (f *File) Write(w io.Writer) error {
	if err := f.sync(); err != nil {
		return err
	}
	zw := zip.NewWriter(w)
	for _, p := range f.parts {
		fw, err := zw.CreateHeader(&zip.FileHeader{Name: p.name, Method: p.method})
		if err != nil {
			return fmt.Errorf("writing %s: %w", p.name, err)
		}
		if _, err := fw.Write(p.data); err != nil {
			return fmt.Errorf("writing %s: %w", p.name, err)
		}
	}
	if err := zw.Close(); err != nil {
		return fmt.Errorf("closing ZIP archive: %w", err)
	}
	return nil
}

// sync regenerates the parts derived from the model.
func (f *File) sync() error {
	doc := f.Document
	var added []model.Style
	for i := range doc.Styles.List {
		if doc.Styles.List[i].Added {
			added = append(added, doc.Styles.List[i])
		}
	}
	if len(added) > 0 {
		if data, ok := f.part(partStyles); ok {
			patched, err := addStyleDefinitions(data, added)
			if err != nil {
				return err
			}
			f.setPart(partStyles, patched)
			for i := range doc.Styles.List {
				doc.Styles.List[i].Added = false
			}
		}
	}

	f.setPart(partDocument, encodeDocument(doc, f.rootAttrs))
	return nil
}

// xmlBuilder accumulates WordprocessingML with literal prefixes.
type xmlBuilder struct {
	bytes.Buffer
}

func (b *xmlBuilder) startTag(name string, attrs []string, empty bool) {
	b.WriteByte('<')
	b.WriteString(name)
	for i := 0; i+1 < len(attrs); i += 2 {
		b.WriteByte(' ')
		b.WriteString(attrs[i])
		b.WriteString(`="`)
		xml.EscapeText(b, []byte(attrs[i+1]))
		b.WriteByte('"')
	}
	if empty {
		b.WriteString("/>")
		return
	}
	b.WriteByte('>')
}

// open writes a start tag; attrs alternate names and values.
func (b *xmlBuilder) open(name string, attrs ...string) { b.startTag(name, attrs, false) }

// empty writes a self-closing element.
func (b *xmlBuilder) empty(name string, attrs ...string) { b.startTag(name, attrs, true) }

func (b *xmlBuilder) close(name string) {
	b.WriteString("</")
	b.WriteString(name)
	b.WriteByte('>')
}

func (b *xmlBuilder) text(s string) {
	xml.EscapeText(b, []byte(s))
}

func (b *xmlBuilder) preserved(e model.Preserved) {
	attrs := make([]string, 0, 2*len(e.Attrs))
	for _, a := range e.Attrs {
		attrs = append(attrs, a.Name, a.Value)
	}
	if len(e.Inner) == 0 {
		b.empty(e.Name, attrs...)
		return
	}
	b.open(e.Name, attrs...)
	b.Write(e.Inner)
	b.close(e.Name)
}

// child is one property element waiting to be written in schema order.
type child struct {
	rank  int
	write func()
}

func (b *xmlBuilder) ordered(name string, order map[string]int, children []child, preserved []model.Preserved) {
	for _, e := range preserved {
		e := e
		children = append(children, child{rank: rank(order, e.Name), write: func() { b.preserved(e) }})
	}
	if len(children) == 0 {
		return
	}
	sort.SliceStable(children, func(i, j int) bool { return children[i].rank < children[j].rank })
	b.open(name)
	for _, c := range children {
		c.write()
	}
	b.close(name)
}

var defaultRootAttrs = []string{
	"xmlns:w", nsW,
	"xmlns:r", nsR,
	"xmlns:wp", nsWP,
	"xmlns:a", nsA,
	"xmlns:pic", nsPic,
	"xmlns:mc", nsMC,
	"xmlns:w14", nsW14,
}

func encodeDocument(doc *model.Document, root []xml.Attr) []byte {
	enc := &encoder{doc: doc}
	b := &enc.b
	b.WriteString(xmlHeader)

	attrs := defaultRootAttrs
	if len(root) > 0 {
		ns := newNamespaces(root)
		attrs = nil
		for _, a := range root {
			name, ok := ns.qualify(a.Name)
			if !ok {
				continue
			}
			if a.Name.Space == "" && a.Name.Local == "xmlns" {
				name = "xmlns"
			}
			attrs = append(attrs, name, a.Value)
		}
		if !declares(attrs, "xmlns:w") {
			attrs = append(attrs, "xmlns:w", nsW)
		}
	}
	b.open("w:document", attrs...)
	b.open("w:body")
	for _, blk := range doc.Blocks {
		switch v := blk.(type) {
		case *model.Paragraph:
			enc.paragraph(v)
		case *model.Table:
			enc.table(v)
		}
	}
	enc.section(doc.Section)
	b.close("w:body")
	b.close("w:document")
	return b.Bytes()
}

func declares(attrs []string, name string) bool {
	for i := 0; i < len(attrs); i += 2 {
		if attrs[i] == name {
			return true
		}
	}
	return false
}

type encoder struct {
	doc *model.Document
	b   xmlBuilder
}

func (e *encoder) paragraph(p *model.Paragraph) {
	b := &e.b
	b.open("w:p")
	var props []child
	if p.Style != "" {
		id := e.doc.Styles.IDFor(p.Style)
		props = append(props, child{rank: pPrOrder["pStyle"], write: func() { b.empty("w:pStyle", "w:val", id) }})
	}
	if jc := justification(p.Alignment); jc != "" {
		props = append(props, child{rank: pPrOrder["jc"], write: func() { b.empty("w:jc", "w:val", jc) }})
	}
	b.ordered("w:pPr", pPrOrder, props, p.Preserved)
	for i := range p.Runs {
		e.run(&p.Runs[i])
	}
	b.close("w:p")
}

func justification(a model.Alignment) string {
	switch a {
	case model.AlignLeft:
		return "left"
	case model.AlignCenter:
		return "center"
	case model.AlignRight:
		return "right"
	case model.AlignJustify:
		return "both"
	}
	return ""
}

func (e *encoder) run(r *model.Run) {
	b := &e.b
	b.open("w:r")
	e.runProps(r.Format, r.Preserved)
	switch {
	case r.Break == model.BreakPage:
		b.empty("w:br", "w:type", "page")
	case len(r.Embedded) > 0:
		for _, el := range r.Embedded {
			b.preserved(el)
		}
	}
	e.runText(r.Text)
	b.close("w:r")
}

// runText writes text, turning tabs and newlines into their elements.
func (e *encoder) runText(s string) {
	b := &e.b
	for s != "" {
		i := strings.IndexAny(s, "\t\n")
		if i < 0 {
			i = len(s)
		}
		if i > 0 {
			seg := s[:i]
			if strings.TrimSpace(seg) != seg {
				b.open("w:t", "xml:space", "preserve")
			} else {
				b.open("w:t")
			}
			b.text(seg)
			b.close("w:t")
		}
		if i == len(s) {
			return
		}
		if s[i] == '\t' {
			b.empty("w:tab")
		} else {
			b.empty("w:br")
		}
		s = s[i+1:]
	}
}

func onOff(v bool) string {
	if v {
		return "1"
	}
	return "0"
}

func (e *encoder) runProps(f model.RunFormat, preserved []model.Preserved) {
	b := &e.b
	var props []child
	if f.Font != "" {
		font := f.Font
		props = append(props, child{rank: rPrOrder["rFonts"], write: func() {
			b.empty("w:rFonts", "w:ascii", font, "w:hAnsi", font, "w:eastAsia", font)
		}})
	}
	toggle := func(name string, v *bool) {
		if v == nil {
			return
		}
		val := *v
		props = append(props, child{rank: rPrOrder[name], write: func() {
			if val {
				b.empty("w:" + name)
			} else {
				b.empty("w:"+name, "w:val", "0")
			}
		}})
	}
	toggle("b", f.Bold)
	toggle("i", f.Italic)
	if f.Color != nil {
		hex := f.Color.Hex()
		props = append(props, child{rank: rPrOrder["color"], write: func() { b.empty("w:color", "w:val", hex) }})
	}
	if f.Size > 0 {
		half := strconv.Itoa(int(math.Round(f.Size * 2)))
		props = append(props, child{rank: rPrOrder["sz"], write: func() { b.empty("w:sz", "w:val", half) }})
	}
	if f.Underline != nil {
		val := "none"
		if *f.Underline {
			val = "single"
		}
		props = append(props, child{rank: rPrOrder["u"], write: func() { b.empty("w:u", "w:val", val) }})
	}
	b.ordered("w:rPr", rPrOrder, props, preserved)
}

func (e *encoder) table(t *model.Table) {
	b := &e.b
	b.open("w:tbl")

	var props []child
	if t.Properties.Style != "" {
		id := e.doc.Styles.IDFor(t.Properties.Style)
		props = append(props, child{rank: tblPrOrder["tblStyle"], write: func() { b.empty("w:tblStyle", "w:val", id) }})
	}
	if !hasPreserved(t.Properties.Preserved, "w:tblW") {
		props = append(props, child{rank: tblPrOrder["tblW"], write: func() { b.empty("w:tblW", "w:w", "0", "w:type", "auto") }})
	}
	if !hasPreserved(t.Properties.Preserved, "w:tblLook") {
		props = append(props, child{rank: tblPrOrder["tblLook"], write: func() {
			b.empty("w:tblLook", "w:val", "04A0", "w:firstRow", "1", "w:lastRow", "0",
				"w:firstColumn", "1", "w:lastColumn", "0", "w:noHBand", "0", "w:noVBand", "1")
		}})
	}
	b.ordered("w:tblPr", tblPrOrder, props, t.Properties.Preserved)

	b.open("w:tblGrid")
	for _, w := range t.Grid {
		b.empty("w:gridCol", "w:w", strconv.Itoa(w))
	}
	b.close("w:tblGrid")

	for i := range t.Rows {
		e.row(&t.Rows[i])
	}
	b.close("w:tbl")
}

func hasPreserved(list []model.Preserved, name string) bool {
	for _, e := range list {
		if e.Name == name {
			return true
		}
	}
	return false
}

// row writes a table row, folding horizontal continuation cells back into
// the gridSpan of the cell that starts them.
func (e *encoder) row(r *model.Row) {
	b := &e.b
	b.open("w:tr")
	for _, p := range r.Preserved {
		b.preserved(p)
	}
	for c := 0; c < len(r.Cells); {
		span := 1
		if r.Cells[c].HMerge != model.MergeContinue {
			for c+span < len(r.Cells) && r.Cells[c+span].HMerge == model.MergeContinue {
				span++
			}
		}
		e.cell(&r.Cells[c], span)
		c += span
	}
	b.close("w:tr")
}

func (e *encoder) cell(c *model.Cell, span int) {
	b := &e.b
	b.open("w:tc")
	var props []child
	if c.Width > 0 {
		w := strconv.Itoa(c.Width)
		props = append(props, child{rank: tcPrOrder["tcW"], write: func() { b.empty("w:tcW", "w:w", w, "w:type", "dxa") }})
	}
	if span > 1 {
		n := strconv.Itoa(span)
		props = append(props, child{rank: tcPrOrder["gridSpan"], write: func() { b.empty("w:gridSpan", "w:val", n) }})
	}
	switch c.VMerge {
	case model.MergeRestart:
		props = append(props, child{rank: tcPrOrder["vMerge"], write: func() { b.empty("w:vMerge", "w:val", "restart") }})
	case model.MergeContinue:
		props = append(props, child{rank: tcPrOrder["vMerge"], write: func() { b.empty("w:vMerge") }})
	}
	b.ordered("w:tcPr", tcPrOrder, props, c.Preserved)

	paragraphs := c.Paragraphs
	if len(paragraphs) == 0 {
		paragraphs = []*model.Paragraph{{}}
	}
	for _, p := range paragraphs {
		e.paragraph(p)
	}
	b.close("w:tc")
}

func (e *encoder) section(s model.Section) {
	b := &e.b
	var props []child
	if s.PageWidth > 0 && s.PageHeight > 0 {
		attrs := []string{"w:w", strconv.Itoa(s.PageWidth), "w:h", strconv.Itoa(s.PageHeight)}
		if s.Landscape {
			attrs = append(attrs, "w:orient", "landscape")
		}
		props = append(props, child{rank: sectPrOrder["pgSz"], write: func() { b.empty("w:pgSz", attrs...) }})
	}
	m := s.Margins
	if m != (model.Margins{}) {
		props = append(props, child{rank: sectPrOrder["pgMar"], write: func() {
			b.empty("w:pgMar",
				"w:top", strconv.Itoa(m.Top), "w:right", strconv.Itoa(m.Right),
				"w:bottom", strconv.Itoa(m.Bottom), "w:left", strconv.Itoa(m.Left),
				"w:header", strconv.Itoa(m.Header), "w:footer", strconv.Itoa(m.Footer),
				"w:gutter", strconv.Itoa(m.Gutter))
		}})
	}
	b.ordered("w:sectPr", sectPrOrder, props, s.Preserved)
}
