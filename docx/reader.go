package docx

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/tsawler/docxedit/model"
)

// Open reads a DOCX package from disk.
func Open(filename string) (*File, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", filename, err)
	}
	return Read(bytes.NewReader(data), int64(len(data)))
}

// Read parses a DOCX package from r.
func Read(r io.ReaderAt, size int64) (*File, error) {
	zr, err := zip.NewReader(r, size)
	if err != nil {
		return nil, fmt.Errorf("opening ZIP archive: %w", err)
	}

	f := &File{}
	for _, zf := range zr.File {
		data, err := readZipFile(zf)
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", zf.Name, err)
		}
		f.parts = append(f.parts, part{name: zf.Name, method: zf.Method, data: data})
	}

	// Validate required files exist
	if err := f.validate(); err != nil {
		return nil, err
	}

	doc := model.NewDocument()

	// Styles first: paragraphs reference them by ID
	if data, ok := f.part(partStyles); ok {
		styles, err := parseStyles(data)
		if err != nil {
			return nil, fmt.Errorf("parsing styles: %w", err)
		}
		doc.Styles = styles
	}

	if data, ok := f.part(partCoreProps); ok {
		doc.Metadata = parseCoreProperties(data)
	}

	data, _ := f.part(partDocument)
	dec := newBodyDecoder(data, &doc.Styles)
	if err := dec.document(doc); err != nil {
		return nil, fmt.Errorf("parsing document: %w", err)
	}
	f.rootAttrs = dec.rootAttrs
	f.Document = doc

	return f, nil
}

func readZipFile(zf *zip.File) ([]byte, error) {
	rc, err := zf.Open()
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	return io.ReadAll(rc)
}

// validate checks that required DOCX files exist.
func (f *File) validate() error {
	required := []string{
		partContentTypes,
		partDocument,
	}

	for _, name := range required {
		if _, ok := f.part(name); !ok {
			return fmt.Errorf("missing required file: %s", name)
		}
	}

	return nil
}

// bodyDecoder walks word/document.xml token by token so that block order is
// kept exactly.
type bodyDecoder struct {
	d         *xml.Decoder
	styles    *model.Styles
	ns        namespaces
	rootAttrs []xml.Attr
}

func newBodyDecoder(data []byte, styles *model.Styles) *bodyDecoder {
	return &bodyDecoder{
		d:      xml.NewDecoder(bytes.NewReader(data)),
		styles: styles,
		ns:     newNamespaces(nil),
	}
}

func (bd *bodyDecoder) document(doc *model.Document) error {
	for {
		tok, err := bd.d.Token()
		if err == io.EOF {
			return fmt.Errorf("no document body")
		}
		if err != nil {
			return err
		}
		start, ok := tok.(xml.StartElement)
		if !ok {
			continue
		}
		switch start.Name.Local {
		case "document":
			bd.rootAttrs = append([]xml.Attr(nil), start.Attr...)
			bd.ns = newNamespaces(start.Attr)
		case "body":
			return bd.body(doc)
		default:
			if err := bd.d.Skip(); err != nil {
				return err
			}
		}
	}
}

func (bd *bodyDecoder) body(doc *model.Document) error {
	for {
		tok, err := bd.d.Token()
		if err != nil {
			return err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "p":
				p, err := bd.paragraph()
				if err != nil {
					return err
				}
				doc.Append(p)
			case "tbl":
				tbl, err := bd.table()
				if err != nil {
					return err
				}
				doc.Append(tbl)
			case "sectPr":
				sec, err := bd.section()
				if err != nil {
					return err
				}
				doc.Section = sec
			case "sdt", "sdtContent", "customXml":
				// Content controls are unwrapped; their blocks join the body
				if err := bd.body(doc); err != nil {
					return err
				}
			default:
				if err := bd.d.Skip(); err != nil {
					return err
				}
			}
		case xml.EndElement:
			return nil
		}
	}
}

// paragraph decodes the content of a <w:p> whose start tag was consumed.
func (bd *bodyDecoder) paragraph() (*model.Paragraph, error) {
	p := &model.Paragraph{}
	if err := bd.paragraphContent(p); err != nil {
		return nil, err
	}
	return p, nil
}

// paragraphContent reads runs until the end of the current element. Runs
// nested in hyperlinks, insertions and content controls are flattened.
func (bd *bodyDecoder) paragraphContent(p *model.Paragraph) error {
	for {
		tok, err := bd.d.Token()
		if err != nil {
			return err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "pPr":
				if err := bd.paragraphProps(p); err != nil {
					return err
				}
			case "r":
				runs, err := bd.run()
				if err != nil {
					return err
				}
				p.Runs = append(p.Runs, runs...)
			case "hyperlink", "ins", "smartTag", "fldSimple", "customXml", "sdtContent", "sdt":
				if err := bd.paragraphContent(p); err != nil {
					return err
				}
			default:
				if err := bd.d.Skip(); err != nil {
					return err
				}
			}
		case xml.EndElement:
			return nil
		}
	}
}

func (bd *bodyDecoder) raw(start xml.StartElement) (model.Preserved, error) {
	var r rawXML
	if err := bd.d.DecodeElement(&r, &start); err != nil {
		return model.Preserved{}, err
	}
	return bd.ns.preserve(r), nil
}

func (bd *bodyDecoder) paragraphProps(p *model.Paragraph) error {
	for {
		tok, err := bd.d.Token()
		if err != nil {
			return err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "pStyle":
				p.Style = bd.styleName(attr(t, "val"))
				if err := bd.d.Skip(); err != nil {
					return err
				}
			case "jc":
				p.Alignment = parseJustification(attr(t, "val"))
				if err := bd.d.Skip(); err != nil {
					return err
				}
			default:
				if t.Name.Local == "sectPr" {
					p.SectionBreak = true
				}
				e, err := bd.raw(t)
				if err != nil {
					return err
				}
				p.Preserved = append(p.Preserved, e)
			}
		case xml.EndElement:
			return nil
		}
	}
}

func (bd *bodyDecoder) styleName(id string) string {
	if st, ok := bd.styles.ByID(id); ok {
		return st.Name
	}
	return id
}

func parseJustification(v string) model.Alignment {
	switch v {
	case "left", "start":
		return model.AlignLeft
	case "center":
		return model.AlignCenter
	case "right", "end":
		return model.AlignRight
	case "both", "distribute":
		return model.AlignJustify
	}
	return model.AlignUnset
}

// run decodes a <w:r>. A single XML run becomes several model runs when it
// mixes text with page breaks or embedded objects; all of them share the
// run's formatting.
func (bd *bodyDecoder) run() ([]model.Run, error) {
	var (
		format    model.RunFormat
		preserved []model.Preserved
		out       []model.Run
		text      strings.Builder
	)
	flush := func() {
		if text.Len() > 0 {
			out = append(out, model.Run{Text: text.String()})
			text.Reset()
		}
	}

	for {
		tok, err := bd.d.Token()
		if err != nil {
			return nil, err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "rPr":
				format, preserved, err = bd.runProps()
				if err != nil {
					return nil, err
				}
				continue
			case "t":
				var s string
				if err := bd.d.DecodeElement(&s, &t); err != nil {
					return nil, err
				}
				text.WriteString(s)
				continue
			case "tab":
				text.WriteString("\t")
			case "cr":
				text.WriteString("\n")
			case "noBreakHyphen":
				text.WriteString("-")
			case "br":
				switch attr(t, "type") {
				case "page":
					flush()
					out = append(out, model.Run{Break: model.BreakPage})
				case "column":
					flush()
					e, err := bd.raw(t)
					if err != nil {
						return nil, err
					}
					out = appendEmbedded(out, e)
					continue
				default:
					text.WriteString("\n")
				}
			case "softHyphen", "lastRenderedPageBreak", "delText":
			default:
				flush()
				e, err := bd.raw(t)
				if err != nil {
					return nil, err
				}
				out = appendEmbedded(out, e)
				continue
			}
			if err := bd.d.Skip(); err != nil {
				return nil, err
			}
		case xml.EndElement:
			flush()
			if len(out) == 0 {
				out = append(out, model.Run{})
			}
			for i := range out {
				out[i].Format = format.Clone()
				out[i].Preserved = clone(preserved)
			}
			return out, nil
		}
	}
}

// appendEmbedded adds e to the trailing embedded-only run, or starts one.
func appendEmbedded(runs []model.Run, e model.Preserved) []model.Run {
	if n := len(runs); n > 0 && runs[n-1].Text == "" && runs[n-1].Break == model.BreakNone && len(runs[n-1].Embedded) > 0 {
		runs[n-1].Embedded = append(runs[n-1].Embedded, e)
		return runs
	}
	return append(runs, model.Run{Embedded: []model.Preserved{e}})
}

func clone(src []model.Preserved) []model.Preserved {
	if len(src) == 0 {
		return nil
	}
	return append([]model.Preserved(nil), src...)
}

func (bd *bodyDecoder) runProps() (model.RunFormat, []model.Preserved, error) {
	var (
		f         model.RunFormat
		preserved []model.Preserved
	)
	for {
		tok, err := bd.d.Token()
		if err != nil {
			return f, nil, err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			handled := true
			switch t.Name.Local {
			case "b":
				f.Bold = model.Bool(parseOnOff(attr(t, "val")))
			case "i":
				f.Italic = model.Bool(parseOnOff(attr(t, "val")))
			case "u":
				f.Underline = model.Bool(parseOnOff(attr(t, "val")))
			case "sz":
				f.Size = parseHalfPoints(attr(t, "val"))
				handled = f.Size > 0
			case "rFonts":
				f.Font = firstNonEmpty(attr(t, "ascii"), attr(t, "hAnsi"), attr(t, "eastAsia"))
				handled = f.Font != ""
			case "color":
				c, err := model.ParseColor("#" + attr(t, "val"))
				if err == nil {
					f.Color = c
				}
				handled = err == nil
			default:
				handled = false
			}
			if handled {
				if err := bd.d.Skip(); err != nil {
					return f, nil, err
				}
				continue
			}
			e, err := bd.raw(t)
			if err != nil {
				return f, nil, err
			}
			preserved = append(preserved, e)
		case xml.EndElement:
			return f, preserved, nil
		}
	}
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}

// parseHalfPoints converts a half-point measure to points.
func parseHalfPoints(s string) float64 {
	val, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return val / 2
}

func parseInt(s string) int {
	v, err := strconv.Atoi(s)
	if err != nil {
		f, ferr := strconv.ParseFloat(s, 64)
		if ferr != nil {
			return 0
		}
		return int(f)
	}
	return v
}

func (bd *bodyDecoder) section() (model.Section, error) {
	sec := model.Section{}
	for {
		tok, err := bd.d.Token()
		if err != nil {
			return sec, err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "pgSz":
				sec.PageWidth = parseInt(attr(t, "w"))
				sec.PageHeight = parseInt(attr(t, "h"))
				sec.Landscape = attr(t, "orient") == "landscape"
			case "pgMar":
				sec.Margins = model.Margins{
					Top:    parseInt(attr(t, "top")),
					Bottom: parseInt(attr(t, "bottom")),
					Left:   parseInt(attr(t, "left")),
					Right:  parseInt(attr(t, "right")),
					Header: parseInt(attr(t, "header")),
					Footer: parseInt(attr(t, "footer")),
					Gutter: parseInt(attr(t, "gutter")),
				}
			default:
				e, err := bd.raw(t)
				if err != nil {
					return sec, err
				}
				sec.Preserved = append(sec.Preserved, e)
				continue
			}
			if err := bd.d.Skip(); err != nil {
				return sec, err
			}
		case xml.EndElement:
			return sec, nil
		}
	}
}
