package model

import "math"

// Section holds page setup of the document's final section. Lengths are in
// twips (1/20 pt).
type Section struct {
	PageWidth  int
	PageHeight int
	Landscape  bool
	Margins    Margins
	Preserved  []Preserved
}

// Margins are page margins in twips
type Margins struct {
	Top, Bottom, Left, Right int
	Header, Footer, Gutter   int
}

// DefaultSection returns US Letter with 1in top and bottom margins and
// 1.25in side margins.
func DefaultSection() Section {
	return Section{
		PageWidth:  12240,
		PageHeight: 15840,
		Margins: Margins{
			Top: 1440, Bottom: 1440, Left: 1800, Right: 1800,
			Header: 720, Footer: 720,
		},
	}
}

// TextWidth returns the width between the side margins in twips. A section
// without page size reports 6in.
func (s Section) TextWidth() int {
	w := s.PageWidth - s.Margins.Left - s.Margins.Right
	if w <= 0 {
		return 8640
	}
	return w
}

// CentimetersToTwips converts a length in centimeters to twips, rounding
// through English Metric Units the way Office does.
func CentimetersToTwips(cm float64) int {
	emu := math.Round(cm * 360000)
	return int(math.Round(emu / 635))
}

// TwipsToCentimeters converts twips to centimeters
func TwipsToCentimeters(tw int) float64 {
	return float64(tw) * 635 / 360000
}

// SectionCount returns the number of sections: one for the body plus one for
// every paragraph that ends a section.
func (d *Document) SectionCount() int {
	n := 1
	for _, p := range d.Paragraphs() {
		if p.SectionBreak {
			n++
		}
	}
	return n
}
