package edit

import (
	"fmt"
	"strings"

	"github.com/tsawler/docxedit/docerr"
	"github.com/tsawler/docxedit/model"
)

// DefaultRadius is the number of paragraphs taken on each side of a keyword.
const DefaultRadius = 3

// Range is a half-open span [Start, End) of paragraph ordinals. Anchor is the
// ordinal of the paragraph that matched.
type Range struct {
	Start, End int
	Anchor     int
}

// Len returns the number of paragraphs in the range.
func (r Range) Len() int { return r.End - r.Start }

// Boundary decides which heading closes a title-anchored section.
type Boundary int

const (
	// LexicalBoundary ends a section at the first later paragraph whose style
	// name starts with "Heading" and sorts at or before the anchor's style
	// name. This compares names as strings, so a "Normal" anchor is closed
	// by any heading.
	LexicalBoundary Boundary = iota

	// LevelBoundary compares parsed heading levels: a section ends at the
	// first heading whose level is at most the anchor's. A non-heading
	// anchor is closed by any heading.
	LevelBoundary
)

func (b Boundary) String() string {
	if b == LevelBoundary {
		return "level"
	}
	return "lexical"
}

// ParseBoundary maps a configuration value to a Boundary.
func ParseBoundary(s string) (Boundary, error) {
	switch s {
	case "", "lexical":
		return LexicalBoundary, nil
	case "level":
		return LevelBoundary, nil
	}
	return LexicalBoundary, fmt.Errorf("unknown heading boundary %q", s)
}

// closes reports whether a paragraph styled candidate ends a section whose
// anchor is styled anchor.
func (b Boundary) closes(anchor, candidate string) bool {
	if b == LevelBoundary {
		level := model.HeadingLevel(candidate)
		if level == 0 {
			return false
		}
		anchorLevel := model.HeadingLevel(anchor)
		return anchorLevel == 0 || level <= anchorLevel
	}
	return strings.HasPrefix(candidate, "Heading") && candidate <= anchor
}

// LocateTitle finds the section introduced by the first paragraph whose text
// contains title. With preserveTitle the range starts after that paragraph.
func LocateTitle(doc *model.Document, title string, preserveTitle bool, boundary Boundary) (Range, error) {
	paragraphs := doc.Paragraphs()
	anchor := -1
	for i, p := range paragraphs {
		if strings.Contains(p.Text(), title) {
			anchor = i
			break
		}
	}
	if anchor < 0 {
		return Range{}, docerr.Newf(docerr.TitleNotFound, "section title not found: %q", title)
	}

	r := Range{Start: anchor, End: len(paragraphs), Anchor: anchor}
	if preserveTitle {
		r.Start = anchor + 1
	}

	anchorStyle := doc.StyleName(paragraphs[anchor])
	for i := anchor + 1; i < len(paragraphs); i++ {
		if boundary.closes(anchorStyle, doc.StyleName(paragraphs[i])) {
			r.End = i
			break
		}
	}
	return r, nil
}

// LocateKeyword returns the window of radius paragraphs on each side of the
// first paragraph containing keyword, clamped to the document.
func LocateKeyword(doc *model.Document, keyword string, radius int) (Range, error) {
	if radius < 0 {
		return Range{}, docerr.Newf(docerr.InvalidRange, "section range must not be negative: %d", radius)
	}
	paragraphs := doc.Paragraphs()
	radius = min(radius, len(paragraphs))
	for i, p := range paragraphs {
		if strings.Contains(p.Text(), keyword) {
			return Range{
				Start:  max(0, i-radius),
				End:    min(len(paragraphs), i+radius+1),
				Anchor: i,
			}, nil
		}
	}
	return Range{}, docerr.Newf(docerr.KeywordNotFound, "keyword not found: %q", keyword)
}
