// Package docx reads and writes DOCX (Office Open XML) packages.
//
// [Open] and [Read] parse word/document.xml into a [model.Document], keeping
// block order exactly and capturing every property element the model does not
// interpret so that [File.Save] can emit it again in schema order. All other
// parts of the archive (images, headers, numbering, settings) are carried
// through unchanged.
//
//	f, err := docx.Open("report.docx")
//	if err != nil {
//		return err
//	}
//	f.Document.Append(model.NewParagraph("Appendix"))
//	err = f.Save("report.docx")
//
// [New] returns a fresh package with the usual built-in styles (Normal, Title,
// Heading 1 to 9 and Table Grid) on a US Letter page.
package docx
