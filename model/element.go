package model

import (
	"fmt"
	"strconv"
	"strings"
)

// BlockType represents the type of a body-level block
type BlockType int

const (
	BlockTypeUnknown BlockType = iota
	BlockTypeParagraph
	BlockTypeTable
)

func (bt BlockType) String() string {
	switch bt {
	case BlockTypeParagraph:
		return "Paragraph"
	case BlockTypeTable:
		return "Table"
	default:
		return "Unknown"
	}
}

// Block is a paragraph or a table occupying a position in document order.
// The interface is closed: only *Paragraph and *Table implement it.
type Block interface {
	Type() BlockType
	block()
}

// Alignment represents paragraph alignment. The zero value means the
// alignment is inherited from the style.
type Alignment int

const (
	AlignUnset Alignment = iota
	AlignLeft
	AlignCenter
	AlignRight
	AlignJustify
)

func (a Alignment) String() string {
	switch a {
	case AlignLeft:
		return "left"
	case AlignCenter:
		return "center"
	case AlignRight:
		return "right"
	case AlignJustify:
		return "justify"
	default:
		return "unset"
	}
}

// ParseAlignment maps an alignment name to its value. The empty string is
// AlignUnset.
func ParseAlignment(s string) (Alignment, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "":
		return AlignUnset, nil
	case "left":
		return AlignLeft, nil
	case "center":
		return AlignCenter, nil
	case "right":
		return AlignRight, nil
	case "justify":
		return AlignJustify, nil
	}
	return AlignUnset, fmt.Errorf("unknown alignment %q", s)
}

// Color represents an RGB color
type Color struct {
	R, G, B uint8
}

// ParseColor parses a color in exactly the form #RRGGBB.
func ParseColor(s string) (*Color, error) {
	if len(s) != 7 || s[0] != '#' {
		return nil, fmt.Errorf("invalid color %q: want #RRGGBB", s)
	}
	var rgb [3]uint8
	for i := range rgb {
		v, err := strconv.ParseUint(s[1+2*i:3+2*i], 16, 8)
		if err != nil {
			return nil, fmt.Errorf("invalid color %q: want #RRGGBB", s)
		}
		rgb[i] = uint8(v)
	}
	return &Color{R: rgb[0], G: rgb[1], B: rgb[2]}, nil
}

// Hex returns the color as RRGGBB without a leading '#'.
func (c Color) Hex() string {
	return fmt.Sprintf("%02X%02X%02X", c.R, c.G, c.B)
}

func (c Color) String() string { return "#" + c.Hex() }

// Bool returns a pointer to v, for setting tri-state toggles.
func Bool(v bool) *bool { return &v }

// RunFormat is the character formatting of a run. Nil toggles and zero
// values inherit from the paragraph or character style.
type RunFormat struct {
	Bold      *bool
	Italic    *bool
	Underline *bool
	Size      float64 // points
	Font      string  // applied to Latin and East Asian ranges
	Color     *Color
}

// IsZero reports whether no attribute is set.
func (f RunFormat) IsZero() bool {
	return f.Bold == nil && f.Italic == nil && f.Underline == nil &&
		f.Size == 0 && f.Font == "" && f.Color == nil
}

// Clone returns a deep copy of f.
func (f RunFormat) Clone() RunFormat {
	out := f
	if f.Bold != nil {
		out.Bold = Bool(*f.Bold)
	}
	if f.Italic != nil {
		out.Italic = Bool(*f.Italic)
	}
	if f.Underline != nil {
		out.Underline = Bool(*f.Underline)
	}
	if f.Color != nil {
		c := *f.Color
		out.Color = &c
	}
	return out
}

// BreakKind distinguishes runs that carry a hard break instead of text
type BreakKind int

const (
	BreakNone BreakKind = iota
	BreakPage
)

// Preserved is markup the model does not interpret. Readers capture it and
// writers emit it again unchanged.
type Preserved struct {
	Name  string // qualified name, e.g. "w:spacing"
	Attrs []Attr
	Inner []byte
}

// Attr is a qualified attribute of a preserved element
type Attr struct {
	Name  string
	Value string
}

// Run is a span of text within a paragraph sharing one formatting set
type Run struct {
	Text      string
	Format    RunFormat
	Break     BreakKind
	Preserved []Preserved

	// Embedded holds non-text run content such as drawings and field codes.
	Embedded []Preserved
}

// Paragraph represents a paragraph of text
type Paragraph struct {
	Style     string // style name; empty means the document default
	Alignment Alignment
	Runs      []Run
	Preserved []Preserved

	// SectionBreak is set when the paragraph ends a section; the section
	// properties themselves travel in Preserved.
	SectionBreak bool
}

func (p *Paragraph) Type() BlockType { return BlockTypeParagraph }
func (p *Paragraph) block()          {}

// NewParagraph creates a paragraph with a single plain run. An empty text
// produces a paragraph with no runs.
func NewParagraph(text string) *Paragraph {
	p := &Paragraph{}
	if text != "" {
		p.Runs = []Run{{Text: text}}
	}
	return p
}

// Text returns the concatenated text of all runs
func (p *Paragraph) Text() string {
	if len(p.Runs) == 1 {
		return p.Runs[0].Text
	}
	var sb strings.Builder
	for _, r := range p.Runs {
		sb.WriteString(r.Text)
	}
	return sb.String()
}

// SetText replaces every run with one plain run holding s. The paragraph
// style, alignment and paragraph properties are kept.
func (p *Paragraph) SetText(s string) {
	p.Runs = p.Runs[:0]
	if s != "" {
		p.Runs = append(p.Runs, Run{Text: s})
	}
}

// IsEmpty reports whether the paragraph carries no text and no breaks.
func (p *Paragraph) IsEmpty() bool {
	for _, r := range p.Runs {
		if r.Text != "" || r.Break != BreakNone || len(r.Embedded) > 0 {
			return false
		}
	}
	return true
}

// Clone returns a deep copy of p.
func (p *Paragraph) Clone() *Paragraph {
	out := &Paragraph{Style: p.Style, Alignment: p.Alignment, SectionBreak: p.SectionBreak}
	if len(p.Runs) > 0 {
		out.Runs = make([]Run, len(p.Runs))
		for i, r := range p.Runs {
			out.Runs[i] = Run{
				Text:      r.Text,
				Format:    r.Format.Clone(),
				Break:     r.Break,
				Preserved: clonePreserved(r.Preserved),
				Embedded:  clonePreserved(r.Embedded),
			}
		}
	}
	out.Preserved = clonePreserved(p.Preserved)
	return out
}

func clonePreserved(src []Preserved) []Preserved {
	if len(src) == 0 {
		return nil
	}
	out := make([]Preserved, len(src))
	for i, e := range src {
		out[i] = Preserved{
			Name:  e.Name,
			Attrs: append([]Attr(nil), e.Attrs...),
			Inner: append([]byte(nil), e.Inner...),
		}
	}
	return out
}
