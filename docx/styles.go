package docx

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"strings"
	"time"

	"github.com/tsawler/docxedit/model"
)

// stylesXML represents the structure of word/styles.xml
type stylesXML struct {
	XMLName xml.Name      `xml:"styles"`
	Styles  []styleDefXML `xml:"style"`
}

// styleDefXML represents a style definition.
type styleDefXML struct {
	Type    string  `xml:"type,attr"` // paragraph, character, table, numbering
	StyleID string  `xml:"styleId,attr"`
	Default string  `xml:"default,attr"` // "1" if default style
	Name    valXML  `xml:"name"`
	BasedOn *valXML `xml:"basedOn"`
}

// valXML is the common <w:x w:val="..."/> shape.
type valXML struct {
	Val string `xml:"val,attr"`
}

// corePropertiesXML represents docProps/core.xml (Dublin Core metadata)
type corePropertiesXML struct {
	XMLName  xml.Name `xml:"coreProperties"`
	Title    string   `xml:"title"`
	Subject  string   `xml:"subject"`
	Creator  string   `xml:"creator"`
	Keywords string   `xml:"keywords"`
	Created  string   `xml:"created"`
	Modified string   `xml:"modified"`
}

func parseStyles(data []byte) (model.Styles, error) {
	var sx stylesXML
	if err := xml.Unmarshal(data, &sx); err != nil {
		return model.Styles{}, err
	}
	var styles model.Styles
	for _, def := range sx.Styles {
		st := model.Style{
			ID:      def.StyleID,
			Name:    displayName(def.Name.Val, def.StyleID),
			Type:    parseStyleType(def.Type),
			Default: parseOnOff(def.Default) && def.Default != "",
		}
		if def.BasedOn != nil {
			st.BasedOn = def.BasedOn.Val
		}
		styles.List = append(styles.List, st)
	}
	return styles, nil
}

// displayName maps the lowercase names Word stores for built-in styles
// ("heading 1") to the names the UI shows ("Heading 1").
func displayName(name, id string) string {
	if name == "" {
		return id
	}
	lower := strings.ToLower(name)
	switch {
	case lower == "normal", lower == "title", lower == "subtitle", lower == "caption":
		return strings.ToUpper(name[:1]) + name[1:]
	case strings.HasPrefix(lower, "heading "):
		return "Heading " + name[len("heading "):]
	}
	return name
}

func parseStyleType(s string) model.StyleType {
	switch s {
	case "character":
		return model.StyleCharacter
	case "table":
		return model.StyleTable
	case "numbering":
		return model.StyleNumbering
	}
	return model.StyleParagraph
}

func parseCoreProperties(data []byte) model.Metadata {
	var cp corePropertiesXML
	if err := xml.Unmarshal(data, &cp); err != nil {
		return model.Metadata{}
	}
	meta := model.Metadata{
		Title:   cp.Title,
		Author:  cp.Creator,
		Subject: cp.Subject,
	}
	if cp.Keywords != "" {
		meta.Keywords = strings.Split(cp.Keywords, ",")
		for i, kw := range meta.Keywords {
			meta.Keywords[i] = strings.TrimSpace(kw)
		}
	}
	meta.Created, _ = time.Parse(time.RFC3339, cp.Created)
	meta.Modified, _ = time.Parse(time.RFC3339, cp.Modified)
	return meta
}

// styleDefinition returns the w:style element for a built-in style.
func styleDefinition(st model.Style) string {
	if st.Name == "Table Grid" {
		return tableGridStyle
	}
	if st.Name == "Title" {
		return `<w:style w:type="paragraph" w:styleId="Title"><w:name w:val="Title"/><w:basedOn w:val="Normal"/><w:next w:val="Normal"/><w:uiPriority w:val="10"/><w:qFormat/><w:pPr><w:spacing w:after="300" w:line="240" w:lineRule="auto"/><w:contextualSpacing/></w:pPr><w:rPr><w:rFonts w:asciiTheme="majorHAnsi" w:hAnsiTheme="majorHAnsi" w:eastAsiaTheme="majorEastAsia" w:cstheme="majorBidi"/><w:spacing w:val="5"/><w:kern w:val="28"/><w:sz w:val="52"/><w:szCs w:val="52"/></w:rPr></w:style>`
	}
	if level := model.HeadingLevel(st.Name); level > 0 {
		sizes := [...]int{28, 26, 24, 22, 22, 22, 22, 22, 22}
		return fmt.Sprintf(`<w:style w:type="paragraph" w:styleId="%s"><w:name w:val="heading %d"/><w:basedOn w:val="Normal"/><w:next w:val="Normal"/><w:uiPriority w:val="9"/><w:qFormat/><w:pPr><w:keepNext/><w:keepLines/><w:spacing w:before="%d" w:after="0"/><w:outlineLvl w:val="%d"/></w:pPr><w:rPr><w:rFonts w:asciiTheme="majorHAnsi" w:hAnsiTheme="majorHAnsi" w:eastAsiaTheme="majorEastAsia" w:cstheme="majorBidi"/><w:b/><w:bCs/><w:color w:val="365F91" w:themeColor="accent1" w:themeShade="BF"/><w:sz w:val="%d"/><w:szCs w:val="%d"/></w:rPr></w:style>`,
			st.ID, level, headingSpacing(level), level-1, sizes[level-1], sizes[level-1])
	}
	return fmt.Sprintf(`<w:style w:type="paragraph" w:styleId="%s"><w:name w:val="%s"/><w:basedOn w:val="Normal"/><w:qFormat/></w:style>`, st.ID, st.Name)
}

func headingSpacing(level int) int {
	if level == 1 {
		return 480
	}
	return 200
}

const tableGridStyle = `<w:style w:type="table" w:styleId="TableGrid"><w:name w:val="Table Grid"/><w:basedOn w:val="TableNormal"/><w:uiPriority w:val="59"/><w:pPr><w:spacing w:after="0" w:line="240" w:lineRule="auto"/></w:pPr><w:tblPr><w:tblBorders><w:top w:val="single" w:sz="4" w:space="0" w:color="auto"/><w:left w:val="single" w:sz="4" w:space="0" w:color="auto"/><w:bottom w:val="single" w:sz="4" w:space="0" w:color="auto"/><w:right w:val="single" w:sz="4" w:space="0" w:color="auto"/><w:insideH w:val="single" w:sz="4" w:space="0" w:color="auto"/><w:insideV w:val="single" w:sz="4" w:space="0" w:color="auto"/></w:tblBorders></w:tblPr></w:style>`

// addStyleDefinitions appends definitions for styles added by edits to an
// existing styles part.
func addStyleDefinitions(data []byte, styles []model.Style) ([]byte, error) {
	end := bytes.LastIndex(data, []byte("</w:styles>"))
	if end < 0 {
		return nil, fmt.Errorf("styles part has no closing w:styles tag")
	}
	var buf bytes.Buffer
	buf.Write(data[:end])
	for _, st := range styles {
		buf.WriteString(styleDefinition(st))
	}
	buf.Write(data[end:])
	return buf.Bytes(), nil
}
