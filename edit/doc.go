// Package edit implements the structural edits on a [model.Document]:
// locating a section by heading title or keyword, capturing its formatting,
// and replacing it with new lines that carry that formatting.
//
// Ranges count paragraphs only. Tables between paragraphs keep their block
// position and are never removed by a replacement.
//
//	r, err := edit.ReplaceSection(doc, "Summary", []string{"one", "two"}, true, edit.LexicalBoundary)
//
// The additive helpers (AddParagraph, AddHeading, AddPageBreak and
// SetPageMargins) and the single-paragraph deletions live here as well.
package edit
