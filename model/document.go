package model

import (
	"fmt"
	"time"
)

// Document represents an editable document as an ordered list of blocks
type Document struct {
	Metadata Metadata
	Styles   Styles
	Section  Section
	Blocks   []Block
}

// Metadata contains document-level information
type Metadata struct {
	Title    string
	Author   string
	Subject  string
	Keywords []string
	Created  time.Time
	Modified time.Time
}

// NewDocument creates a new empty document with letter-sized page setup
func NewDocument() *Document {
	return &Document{
		Section: DefaultSection(),
		Blocks:  make([]Block, 0),
	}
}

// Len returns the number of blocks
func (d *Document) Len() int {
	return len(d.Blocks)
}

// Block returns the block at position i, or nil when i is out of range
func (d *Document) Block(i int) Block {
	if i < 0 || i >= len(d.Blocks) {
		return nil
	}
	return d.Blocks[i]
}

// Append adds blocks to the end of the body
func (d *Document) Append(blocks ...Block) {
	d.Blocks = append(d.Blocks, blocks...)
}

// InsertAt inserts blocks so that the first lands at position i. Position
// Len() appends.
func (d *Document) InsertAt(i int, blocks ...Block) error {
	if i < 0 || i > len(d.Blocks) {
		return fmt.Errorf("block position %d out of range [0, %d]", i, len(d.Blocks))
	}
	if len(blocks) == 0 {
		return nil
	}
	d.Blocks = append(d.Blocks, blocks...)
	copy(d.Blocks[i+len(blocks):], d.Blocks[i:])
	copy(d.Blocks[i:], blocks)
	return nil
}

// RemoveAt removes and returns the block at position i
func (d *Document) RemoveAt(i int) (Block, error) {
	if i < 0 || i >= len(d.Blocks) {
		return nil, fmt.Errorf("block position %d out of range [0, %d)", i, len(d.Blocks))
	}
	b := d.Blocks[i]
	copy(d.Blocks[i:], d.Blocks[i+1:])
	d.Blocks[len(d.Blocks)-1] = nil
	d.Blocks = d.Blocks[:len(d.Blocks)-1]
	return b, nil
}

// MoveRange relocates blocks [from, to) so that they begin at position dst
// of the document as it looks after their removal.
func (d *Document) MoveRange(from, to, dst int) error {
	if from < 0 || to > len(d.Blocks) || from > to {
		return fmt.Errorf("block range [%d, %d) out of range [0, %d)", from, to, len(d.Blocks))
	}
	moved := append([]Block(nil), d.Blocks[from:to]...)
	d.Blocks = append(d.Blocks[:from], d.Blocks[to:]...)
	return d.InsertAt(dst, moved...)
}

// Paragraphs returns the body-level paragraphs in order
func (d *Document) Paragraphs() []*Paragraph {
	var out []*Paragraph
	for _, b := range d.Blocks {
		if p, ok := b.(*Paragraph); ok {
			out = append(out, p)
		}
	}
	return out
}

// ParagraphCount returns the number of body-level paragraphs
func (d *Document) ParagraphCount() int {
	n := 0
	for _, b := range d.Blocks {
		if _, ok := b.(*Paragraph); ok {
			n++
		}
	}
	return n
}

// Paragraph returns the paragraph with the given ordinal, or nil
func (d *Document) Paragraph(ordinal int) *Paragraph {
	i := d.ParagraphBlockIndex(ordinal)
	if i < 0 {
		return nil
	}
	return d.Blocks[i].(*Paragraph)
}

// ParagraphBlockIndex returns the block position of the paragraph with the
// given ordinal, or -1 when there is no such paragraph.
func (d *Document) ParagraphBlockIndex(ordinal int) int {
	if ordinal < 0 {
		return -1
	}
	n := 0
	for i, b := range d.Blocks {
		if _, ok := b.(*Paragraph); ok {
			if n == ordinal {
				return i
			}
			n++
		}
	}
	return -1
}

// RemoveParagraph removes the paragraph with the given ordinal
func (d *Document) RemoveParagraph(ordinal int) (*Paragraph, error) {
	i := d.ParagraphBlockIndex(ordinal)
	if i < 0 {
		return nil, fmt.Errorf("paragraph %d out of range [0, %d)", ordinal, d.ParagraphCount())
	}
	b, err := d.RemoveAt(i)
	if err != nil {
		return nil, err
	}
	return b.(*Paragraph), nil
}

// Tables returns the body-level tables in order
func (d *Document) Tables() []*Table {
	var out []*Table
	for _, b := range d.Blocks {
		if t, ok := b.(*Table); ok {
			out = append(out, t)
		}
	}
	return out
}

// TableCount returns the number of body-level tables
func (d *Document) TableCount() int {
	return len(d.Tables())
}

// Table returns the table with the given ordinal, or nil
func (d *Document) Table(ordinal int) *Table {
	i := d.TableBlockIndex(ordinal)
	if i < 0 {
		return nil
	}
	return d.Blocks[i].(*Table)
}

// TableBlockIndex returns the block position of the table with the given
// ordinal, or -1 when there is no such table.
func (d *Document) TableBlockIndex(ordinal int) int {
	if ordinal < 0 {
		return -1
	}
	n := 0
	for i, b := range d.Blocks {
		if _, ok := b.(*Table); ok {
			if n == ordinal {
				return i
			}
			n++
		}
	}
	return -1
}

// InsertTableAfter places t immediately after the table with the given
// ordinal in block order.
func (d *Document) InsertTableAfter(ordinal int, t *Table) error {
	i := d.TableBlockIndex(ordinal)
	if i < 0 {
		return fmt.Errorf("table %d out of range [0, %d)", ordinal, d.TableCount())
	}
	return d.InsertAt(i+1, t)
}

// StyleName returns the effective style name of p, falling back to the
// document's default paragraph style.
func (d *Document) StyleName(p *Paragraph) string {
	if p.Style != "" {
		return p.Style
	}
	return d.Styles.DefaultParagraphStyle()
}
