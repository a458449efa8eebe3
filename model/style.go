package model

import (
	"fmt"
	"strings"
)

// StyleType is the kind of element a style applies to
type StyleType int

const (
	StyleParagraph StyleType = iota
	StyleCharacter
	StyleTable
	StyleNumbering
)

// Style is one entry of the document's style catalog
type Style struct {
	ID      string
	Name    string
	Type    StyleType
	Default bool
	BasedOn string

	// Added marks styles introduced by an edit rather than read from the
	// package; writers must emit a definition for them.
	Added bool
}

// Styles is the ordered style catalog of a document
type Styles struct {
	List []Style
}

// Lookup finds a style by name
func (s *Styles) Lookup(name string) (Style, bool) {
	for _, st := range s.List {
		if st.Name == name {
			return st, true
		}
	}
	return Style{}, false
}

// ByID finds a style by identifier
func (s *Styles) ByID(id string) (Style, bool) {
	for _, st := range s.List {
		if st.ID == id {
			return st, true
		}
	}
	return Style{}, false
}

// ParagraphStyleNames returns the names of all paragraph styles in catalog
// order.
func (s *Styles) ParagraphStyleNames() []string {
	var names []string
	for _, st := range s.List {
		if st.Type == StyleParagraph {
			names = append(names, st.Name)
		}
	}
	return names
}

// DefaultParagraphStyle returns the name of the default paragraph style, or
// "Normal" when the catalog does not declare one.
func (s *Styles) DefaultParagraphStyle() string {
	for _, st := range s.List {
		if st.Type == StyleParagraph && st.Default {
			return st.Name
		}
	}
	return "Normal"
}

// IDFor returns the style identifier to reference for a style name. Names
// missing from the catalog map to the name without spaces, which is how
// built-in styles are identified.
func (s *Styles) IDFor(name string) string {
	if st, ok := s.Lookup(name); ok {
		return st.ID
	}
	return strings.ReplaceAll(name, " ", "")
}

// Ensure makes sure a built-in style with the given name is in the catalog.
func (s *Styles) Ensure(name string) error {
	if _, ok := s.Lookup(name); ok {
		return nil
	}
	st, ok := BuiltinStyle(name)
	if !ok {
		return fmt.Errorf("no style with name %q", name)
	}
	st.Added = true
	s.List = append(s.List, st)
	return nil
}

// BuiltinStyle returns the catalog entry of a well-known style: Normal,
// Title, Heading 1 to Heading 9 and Table Grid.
func BuiltinStyle(name string) (Style, bool) {
	switch {
	case name == "Normal":
		return Style{ID: "Normal", Name: name, Type: StyleParagraph, Default: true}, true
	case name == "Title":
		return Style{ID: "Title", Name: name, Type: StyleParagraph, BasedOn: "Normal"}, true
	case name == "Table Grid":
		return Style{ID: "TableGrid", Name: name, Type: StyleTable}, true
	case HeadingLevel(name) > 0:
		return Style{ID: strings.ReplaceAll(name, " ", ""), Name: name, Type: StyleParagraph, BasedOn: "Normal"}, true
	}
	return Style{}, false
}

// HeadingLevel returns N for a style named "Heading N" with N in 1..9, and 0
// for every other name.
func HeadingLevel(name string) int {
	rest, ok := strings.CutPrefix(name, "Heading ")
	if !ok || len(rest) != 1 || rest[0] < '1' || rest[0] > '9' {
		return 0
	}
	return int(rest[0] - '0')
}
