package edit

import "github.com/tsawler/docxedit/model"

// Snapshot is the formatting captured from one paragraph: its style, its
// alignment and the format of its first run. Later runs are not captured.
type Snapshot struct {
	Style     string
	Alignment model.Alignment
	HasRun    bool
	Run       model.RunFormat
}

// SnapshotOf captures the formatting of p.
func SnapshotOf(p *model.Paragraph) Snapshot {
	s := Snapshot{Style: p.Style, Alignment: p.Alignment}
	if len(p.Runs) > 0 {
		s.HasRun = true
		s.Run = p.Runs[0].Format.Clone()
	}
	return s
}

// Capture reads up to n snapshots from the paragraphs of r and pads the
// result to exactly n entries with the last snapshot, or with the zero
// Snapshot when the range is empty.
func Capture(doc *model.Document, r Range, n int) []Snapshot {
	if n <= 0 {
		return nil
	}
	paragraphs := doc.Paragraphs()
	snaps := make([]Snapshot, 0, n)
	for i := r.Start; i < r.End && i < r.Start+n && i < len(paragraphs); i++ {
		snaps = append(snaps, SnapshotOf(paragraphs[i]))
	}

	var pad Snapshot
	if len(snaps) > 0 {
		pad = snaps[len(snaps)-1]
	}
	for len(snaps) < n {
		snaps = append(snaps, pad)
	}
	return snaps
}

// Apply builds a paragraph holding text as a single run stamped with s.
func (s Snapshot) Apply(text string) *model.Paragraph {
	run := model.Run{Text: text}
	if s.HasRun {
		run.Format = s.Run.Clone()
	}
	return &model.Paragraph{
		Style:     s.Style,
		Alignment: s.Alignment,
		Runs:      []model.Run{run},
	}
}
