// Package model provides the in-memory representation of an editable
// word-processing document.
//
// A [Document] is an ordered sequence of [Block] values. Every block is either
// a [*Paragraph] or a [*Table], and position in the sequence is its only
// identity: no block carries an ID, so an index obtained from a document is
// valid only until the next insert or delete at or before it.
//
// # Blocks
//
// Documents expose two views of their content:
//
//   - the block view, addressed with [Document.Block], [Document.InsertAt],
//     [Document.RemoveAt] and [Document.MoveRange]
//   - the paragraph view, addressed by paragraph ordinal through
//     [Document.Paragraph] and [Document.ParagraphCount], which skips tables
//
// Operations that count paragraphs convert back to block positions with
// [Document.ParagraphBlockIndex].
//
// # Formatting
//
// A [Paragraph] holds a style name, an [Alignment] and a list of [Run] values.
// Each run carries a [RunFormat] whose toggles are tri-state: a nil pointer
// means the value is inherited from the style.
//
//	p := model.NewParagraph("Hello")
//	p.Runs[0].Format.Bold = model.Bool(true)
//	p.Runs[0].Format.Color, _ = model.ParseColor("#FF0000")
//
// # Tables
//
// A [Table] stores one [Cell] per grid column in every [Row]. Merged regions
// are expressed with horizontal and vertical merge flags on the covered cells,
// and [Table.Cell] resolves any grid position to the anchor cell that owns it.
//
// Containers own their children outright. There are no parent pointers, so
// moving rows or paragraphs between containers is a matter of slice surgery.
package model
