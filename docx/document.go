package docx

import (
	"encoding/xml"
	"strings"

	"github.com/tsawler/docxedit/model"
)

// XML namespaces used in DOCX files
const (
	nsW     = "http://schemas.openxmlformats.org/wordprocessingml/2006/main"
	nsR     = "http://schemas.openxmlformats.org/officeDocument/2006/relationships"
	nsWP    = "http://schemas.openxmlformats.org/drawingml/2006/wordprocessingDrawing"
	nsA     = "http://schemas.openxmlformats.org/drawingml/2006/main"
	nsPic   = "http://schemas.openxmlformats.org/drawingml/2006/picture"
	nsMC    = "http://schemas.openxmlformats.org/markup-compatibility/2006"
	nsM     = "http://schemas.openxmlformats.org/officeDocument/2006/math"
	nsW14   = "http://schemas.microsoft.com/office/word/2010/wordml"
	nsW15   = "http://schemas.microsoft.com/office/word/2012/wordml"
	nsWP14  = "http://schemas.microsoft.com/office/word/2010/wordprocessingDrawing"
	nsV     = "urn:schemas-microsoft-com:vml"
	nsO     = "urn:schemas-microsoft-com:office:office"
	nsXML   = "http://www.w3.org/XML/1998/namespace"
	nsDC    = "http://purl.org/dc/elements/1.1/"
	nsCP    = "http://schemas.openxmlformats.org/package/2006/metadata/core-properties"
	nsRels  = "http://schemas.openxmlformats.org/package/2006/relationships"
	nsTypes = "http://schemas.openxmlformats.org/package/2006/content-types"
)

// defaultPrefixes maps namespaces to the prefixes Word uses for them.
var defaultPrefixes = map[string]string{
	nsW:    "w",
	nsR:    "r",
	nsWP:   "wp",
	nsA:    "a",
	nsPic:  "pic",
	nsMC:   "mc",
	nsM:    "m",
	nsW14:  "w14",
	nsW15:  "w15",
	nsWP14: "wp14",
	nsV:    "v",
	nsO:    "o",
	nsXML:  "xml",
}

// Package part names
const (
	partContentTypes = "[Content_Types].xml"
	partRootRels     = "_rels/.rels"
	partDocument     = "word/document.xml"
	partDocumentRels = "word/_rels/document.xml.rels"
	partStyles       = "word/styles.xml"
	partCoreProps    = "docProps/core.xml"
	partAppProps     = "docProps/app.xml"
)

// rawXML captures an element the model does not interpret
type rawXML struct {
	XMLName xml.Name
	Attrs   []xml.Attr `xml:",any,attr"`
	Inner   []byte     `xml:",innerxml"`
}

// namespaces resolves namespace URIs to the prefixes declared by the
// document root, falling back to the conventional ones.
type namespaces map[string]string

func newNamespaces(root []xml.Attr) namespaces {
	ns := namespaces{}
	for uri, p := range defaultPrefixes {
		ns[uri] = p
	}
	for _, a := range root {
		if a.Name.Space == "xmlns" {
			ns[a.Value] = a.Name.Local
		}
	}
	return ns
}

// qualify returns the prefixed form of name. ok is false when the namespace
// has no known prefix.
func (ns namespaces) qualify(name xml.Name) (string, bool) {
	switch name.Space {
	case "":
		return name.Local, true
	case "xmlns":
		return "xmlns:" + name.Local, true
	}
	p, ok := ns[name.Space]
	if !ok {
		return name.Local, false
	}
	return p + ":" + name.Local, true
}

// preserve converts a captured element into its model form.
func (ns namespaces) preserve(raw rawXML) model.Preserved {
	name, ok := ns.qualify(raw.XMLName)
	e := model.Preserved{Name: name, Inner: raw.Inner}
	if !ok {
		e.Attrs = append(e.Attrs, model.Attr{Name: "xmlns", Value: raw.XMLName.Space})
	}
	for _, a := range raw.Attrs {
		if a.Name.Space == "" && a.Name.Local == "xmlns" {
			continue
		}
		an, ok := ns.qualify(a.Name)
		if !ok {
			continue
		}
		e.Attrs = append(e.Attrs, model.Attr{Name: an, Value: a.Value})
	}
	return e
}

// attr returns the value of the attribute with the given local name.
func attr(start xml.StartElement, local string) string {
	for _, a := range start.Attr {
		if a.Name.Local == local {
			return a.Value
		}
	}
	return ""
}

// hasAttr reports whether the attribute with the given local name is set.
func hasAttr(start xml.StartElement, local string) bool {
	for _, a := range start.Attr {
		if a.Name.Local == local {
			return true
		}
	}
	return false
}

// parseOnOff interprets an ST_OnOff value; an absent value means on.
func parseOnOff(v string) bool {
	switch strings.ToLower(v) {
	case "0", "false", "off", "none":
		return false
	}
	return true
}

// Schema order of property children. Word rejects documents whose property
// elements are out of sequence, so writers sort by these ranks.
var (
	pPrOrder = rankOf("pStyle", "keepNext", "keepLines", "pageBreakBefore", "framePr",
		"widowControl", "numPr", "suppressLineNumbers", "pBdr", "shd", "tabs",
		"suppressAutoHyphens", "kinsoku", "wordWrap", "overflowPunct", "topLinePunct",
		"autoSpaceDE", "autoSpaceDN", "bidi", "adjustRightInd", "snapToGrid", "spacing",
		"ind", "contextualSpacing", "mirrorIndents", "suppressOverlap", "jc",
		"textDirection", "textAlignment", "textboxTightWrap", "outlineLvl", "divId",
		"cnfStyle", "rPr", "sectPr", "pPrChange")

	rPrOrder = rankOf("rStyle", "rFonts", "b", "bCs", "i", "iCs", "caps", "smallCaps",
		"strike", "dstrike", "outline", "shadow", "emboss", "imprint", "noProof",
		"snapToGrid", "vanish", "webHidden", "color", "spacing", "w", "kern", "position",
		"sz", "szCs", "highlight", "u", "effect", "bdr", "shd", "fitText", "vertAlign",
		"rtl", "cs", "em", "lang", "eastAsianLayout", "specVanish", "oMath", "rPrChange")

	tblPrOrder = rankOf("tblStyle", "tblpPr", "tblOverlap", "bidiVisual",
		"tblStyleRowBandSize", "tblStyleColBandSize", "tblW", "jc", "tblCellSpacing",
		"tblInd", "tblBorders", "shd", "tblLayout", "tblCellMar", "tblLook",
		"tblCaption", "tblDescription", "tblPrChange")

	tcPrOrder = rankOf("cnfStyle", "tcW", "gridSpan", "hMerge", "vMerge", "tcBorders",
		"shd", "noWrap", "tcMar", "textDirection", "tcFitText", "vAlign", "hideMark",
		"headers", "cellIns", "cellDel", "cellMerge", "tcPrChange")

	sectPrOrder = rankOf("headerReference", "footerReference", "footnotePr", "endnotePr",
		"type", "pgSz", "pgMar", "paperSrc", "pgBorders", "lnNumType", "pgNumType", "cols",
		"formProt", "vAlign", "noEndnote", "titlePg", "textDirection", "bidi", "rtlGutter",
		"docGrid", "printerSettings", "sectPrChange")
)

func rankOf(names ...string) map[string]int {
	m := make(map[string]int, len(names))
	for i, n := range names {
		m[n] = i
	}
	return m
}

// rank returns the schema position of a qualified w: element name. Foreign
// elements sort last.
func rank(order map[string]int, qname string) int {
	local, ok := strings.CutPrefix(qname, "w:")
	if !ok {
		return len(order) + 1
	}
	if r, ok := order[local]; ok {
		return r
	}
	return len(order)
}
