package edit

import (
	"github.com/tsawler/docxedit/docerr"
	"github.com/tsawler/docxedit/model"
)

// Replace deletes the paragraphs of r and inserts one paragraph per line at
// the position they occupied, stamping line i with snaps[i]. Missing
// snapshots are padded as in Capture. Tables inside the span are not
// paragraphs and stay where they are.
//
// The operation is not transactional: a failure after deletion leaves the
// document without the deleted paragraphs.
func Replace(doc *model.Document, r Range, lines []string, snaps []Snapshot) error {
	count := doc.ParagraphCount()
	if r.Start < 0 || r.End < r.Start || r.End > count {
		return docerr.Newf(docerr.InvalidRange, "invalid paragraph range [%d, %d) for %d paragraphs", r.Start, r.End, count)
	}

	pos := insertionPoint(doc, r.Start, count)

	for i := r.End - 1; i >= r.Start; i-- {
		if _, err := doc.RemoveParagraph(i); err != nil {
			return docerr.Wrap(docerr.Unknown, err, "failed to delete paragraph %d", i)
		}
	}

	if len(lines) == 0 {
		return nil
	}
	var pad Snapshot
	if len(snaps) > 0 {
		pad = snaps[len(snaps)-1]
	}
	blocks := make([]model.Block, len(lines))
	for i, line := range lines {
		s := pad
		if i < len(snaps) {
			s = snaps[i]
		}
		blocks[i] = s.Apply(line)
	}
	if err := doc.InsertAt(pos, blocks...); err != nil {
		return docerr.Wrap(docerr.Unknown, err, "failed to insert replacement content")
	}
	return nil
}

// insertionPoint returns the block position where content replacing the
// paragraphs starting at ordinal start belongs. It is computed before
// deletion; removing paragraphs at or after it does not move it.
func insertionPoint(doc *model.Document, start, count int) int {
	switch {
	case start < count:
		return doc.ParagraphBlockIndex(start)
	case start > 0:
		return doc.ParagraphBlockIndex(start-1) + 1
	default:
		return doc.Len()
	}
}

// ReplaceSection replaces the section introduced by title with lines.
func ReplaceSection(doc *model.Document, title string, lines []string, preserveTitle bool, boundary Boundary) (Range, error) {
	r, err := LocateTitle(doc, title, preserveTitle, boundary)
	if err != nil {
		return Range{}, err
	}
	snaps := Capture(doc, r, len(lines))
	return r, Replace(doc, r, lines, snaps)
}

// EditSectionByKeyword replaces the paragraphs within radius of the first
// paragraph containing keyword with lines.
func EditSectionByKeyword(doc *model.Document, keyword string, lines []string, radius int) (Range, error) {
	r, err := LocateKeyword(doc, keyword, radius)
	if err != nil {
		return Range{}, err
	}
	snaps := Capture(doc, r, len(lines))
	return r, Replace(doc, r, lines, snaps)
}
