package docx

import (
	"archive/zip"
	"strings"
	"time"

	"github.com/tsawler/docxedit/model"
)

// New returns an empty package with the default style catalog.
func New() *File {
	doc := model.NewDocument()
	for _, name := range []string{"Normal", "Title", "Heading 1", "Heading 2", "Heading 3",
		"Heading 4", "Heading 5", "Heading 6", "Heading 7", "Heading 8", "Heading 9"} {
		st, _ := model.BuiltinStyle(name)
		doc.Styles.List = append(doc.Styles.List, st)
	}
	doc.Styles.List = append(doc.Styles.List,
		model.Style{ID: "DefaultParagraphFont", Name: "Default Paragraph Font", Type: model.StyleCharacter, Default: true},
		model.Style{ID: "TableNormal", Name: "Normal Table", Type: model.StyleTable, Default: true},
		model.Style{ID: "TableGrid", Name: "Table Grid", Type: model.StyleTable, BasedOn: "TableNormal"},
	)
	now := time.Now().UTC().Truncate(time.Second)
	doc.Metadata.Created = now
	doc.Metadata.Modified = now

	return &File{
		Document: doc,
		parts: []part{
			{name: partContentTypes, method: zip.Deflate, data: []byte(contentTypesXML)},
			{name: partRootRels, method: zip.Deflate, data: []byte(rootRelsXML)},
			{name: partDocument, method: zip.Deflate},
			{name: partDocumentRels, method: zip.Deflate, data: []byte(documentRelsXML)},
			{name: partStyles, method: zip.Deflate, data: []byte(defaultStylesXML())},
			{name: partCoreProps, method: zip.Deflate, data: []byte(corePropsXML(now))},
			{name: partAppProps, method: zip.Deflate, data: []byte(appPropsXML)},
		},
	}
}

const xmlHeader = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>` + "\n"

const contentTypesXML = xmlHeader + `<Types xmlns="` + nsTypes + `">` +
	`<Default Extension="rels" ContentType="application/vnd.openxmlformats-package.relationships+xml"/>` +
	`<Default Extension="xml" ContentType="application/xml"/>` +
	`<Override PartName="/word/document.xml" ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.document.main+xml"/>` +
	`<Override PartName="/word/styles.xml" ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.styles+xml"/>` +
	`<Override PartName="/docProps/core.xml" ContentType="application/vnd.openxmlformats-package.core-properties+xml"/>` +
	`<Override PartName="/docProps/app.xml" ContentType="application/vnd.openxmlformats-officedocument.extended-properties+xml"/>` +
	`</Types>`

const rootRelsXML = xmlHeader + `<Relationships xmlns="` + nsRels + `">` +
	`<Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/officeDocument" Target="word/document.xml"/>` +
	`<Relationship Id="rId2" Type="http://schemas.openxmlformats.org/package/2006/relationships/metadata/core-properties" Target="docProps/core.xml"/>` +
	`<Relationship Id="rId3" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/extended-properties" Target="docProps/app.xml"/>` +
	`</Relationships>`

const documentRelsXML = xmlHeader + `<Relationships xmlns="` + nsRels + `">` +
	`<Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/styles" Target="styles.xml"/>` +
	`</Relationships>`

const appPropsXML = xmlHeader + `<Properties xmlns="http://schemas.openxmlformats.org/officeDocument/2006/extended-properties">` +
	`<Application>docxedit</Application></Properties>`

func corePropsXML(now time.Time) string {
	ts := now.Format(time.RFC3339)
	return xmlHeader + `<cp:coreProperties xmlns:cp="` + nsCP + `" xmlns:dc="` + nsDC + `" ` +
		`xmlns:dcterms="http://purl.org/dc/terms/" xmlns:xsi="http://www.w3.org/2001/XMLSchema-instance">` +
		`<dc:title></dc:title><dc:creator></dc:creator><cp:revision>1</cp:revision>` +
		`<dcterms:created xsi:type="dcterms:W3CDTF">` + ts + `</dcterms:created>` +
		`<dcterms:modified xsi:type="dcterms:W3CDTF">` + ts + `</dcterms:modified>` +
		`</cp:coreProperties>`
}

func defaultStylesXML() string {
	var sb strings.Builder
	sb.WriteString(xmlHeader)
	sb.WriteString(`<w:styles xmlns:w="` + nsW + `">`)
	sb.WriteString(`<w:docDefaults><w:rPrDefault><w:rPr><w:rFonts w:asciiTheme="minorHAnsi" w:eastAsiaTheme="minorEastAsia" w:hAnsiTheme="minorHAnsi" w:cstheme="minorBidi"/>` +
		`<w:sz w:val="24"/><w:szCs w:val="24"/><w:lang w:val="en-US" w:eastAsia="en-US" w:bidi="ar-SA"/></w:rPr></w:rPrDefault><w:pPrDefault/></w:docDefaults>`)
	sb.WriteString(`<w:style w:type="paragraph" w:default="1" w:styleId="Normal"><w:name w:val="Normal"/><w:qFormat/></w:style>`)
	sb.WriteString(`<w:style w:type="character" w:default="1" w:styleId="DefaultParagraphFont"><w:name w:val="Default Paragraph Font"/><w:uiPriority w:val="1"/><w:semiHidden/><w:unhideWhenUsed/></w:style>`)
	sb.WriteString(`<w:style w:type="table" w:default="1" w:styleId="TableNormal"><w:name w:val="Normal Table"/><w:uiPriority w:val="99"/><w:semiHidden/><w:unhideWhenUsed/>` +
		`<w:tblPr><w:tblInd w:w="0" w:type="dxa"/><w:tblCellMar><w:top w:w="0" w:type="dxa"/><w:left w:w="108" w:type="dxa"/><w:bottom w:w="0" w:type="dxa"/><w:right w:w="108" w:type="dxa"/></w:tblCellMar></w:tblPr></w:style>`)
	title, _ := model.BuiltinStyle("Title")
	sb.WriteString(styleDefinition(title))
	for level := 1; level <= 9; level++ {
		st, _ := model.BuiltinStyle("Heading " + string(rune('0'+level)))
		sb.WriteString(styleDefinition(st))
	}
	sb.WriteString(tableGridStyle)
	sb.WriteString(`</w:styles>`)
	return sb.String()
}
