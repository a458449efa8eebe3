package render

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tsawler/docxedit/model"
)

func textTable(rows [][]string) *model.Table {
	t := model.NewTable(len(rows), len(rows[0]), 1000)
	for r, row := range rows {
		for c, v := range row {
			t.Rows[r].Cells[c].SetText(v)
		}
	}
	return t
}

func TestTable_Simple(t *testing.T) {
	got := Table(textTable([][]string{{"a", "b"}, {"c", "dd"}}))
	want := strings.Join([]string{
		"+---+----+",
		"| a | b  |",
		"+---+----+",
		"| c | dd |",
		"+---+----+",
		"",
	}, "\n")
	assert.Equal(t, want, got)
}

func TestTable_HorizontalMerge(t *testing.T) {
	tbl := textTable([][]string{{"wide text", ""}, {"a", "b"}})
	tbl.Rows[0].Cells[0].HMerge = model.MergeRestart
	tbl.Rows[0].Cells[1].HMerge = model.MergeContinue

	want := strings.Join([]string{
		"+-----+-----+",
		"| wide text |",
		"+-----+-----+",
		"| a   | b   |",
		"+-----+-----+",
		"",
	}, "\n")
	assert.Equal(t, want, Table(tbl))
}

func TestTable_VerticalMerge(t *testing.T) {
	tbl := textTable([][]string{{"x", "1"}, {"", "2"}})
	tbl.Rows[0].Cells[0].VMerge = model.MergeRestart
	tbl.Rows[1].Cells[0].VMerge = model.MergeContinue

	want := strings.Join([]string{
		"+---+---+",
		"| x | 1 |",
		"+   +---+",
		"|   | 2 |",
		"+---+---+",
		"",
	}, "\n")
	assert.Equal(t, want, Table(tbl))
}

func TestTable_WideRunes(t *testing.T) {
	got := Table(textTable([][]string{{"中文", "a"}}))
	assert.Equal(t, "+------+---+\n| 中文 | a |\n+------+---+\n", got)
}

func TestTable_MultilineCell(t *testing.T) {
	tbl := textTable([][]string{{"a", "b"}})
	tbl.Rows[0].Cells[0].Paragraphs = append(tbl.Rows[0].Cells[0].Paragraphs, model.NewParagraph("second"))
	got := Table(tbl)
	assert.Contains(t, got, "| a      | b |\n| second |   |\n")
}

func TestText(t *testing.T) {
	doc := model.NewDocument()
	h := model.NewParagraph("Intro")
	h.Style = "Heading 1"
	doc.Append(h, textTable([][]string{{"a"}}))
	doc.Append(&model.Paragraph{Runs: []model.Run{{Break: model.BreakPage}}})
	doc.Append(model.NewParagraph("end"))

	got := Text(doc)
	assert.True(t, strings.HasPrefix(got, "[0] (Heading 1) Intro\n[table 0: 1x1]\n+---+\n"))
	assert.Contains(t, got, "[1] <page break>\n")
	assert.True(t, strings.HasSuffix(got, "[2] end\n"))
}

func TestHTML(t *testing.T) {
	doc := model.NewDocument()
	doc.Metadata.Title = "Report"

	h := model.NewParagraph("Title A")
	h.Style = "Heading 1"
	body := model.NewParagraph("bold & big")
	body.Alignment = model.AlignCenter
	body.Runs[0].Format = model.RunFormat{Bold: model.Bool(true), Italic: model.Bool(false), Size: 12, Color: &model.Color{R: 0xFF}}
	deep := model.NewParagraph("deep")
	deep.Style = "Heading 8"
	doc.Append(h, body, deep)

	tbl := textTable([][]string{{"merged", ""}, {"a", "b"}})
	tbl.Rows[0].Cells[0].HMerge = model.MergeRestart
	tbl.Rows[0].Cells[1].HMerge = model.MergeContinue
	tbl.Properties.Style = "Table Grid"
	doc.Append(tbl)

	var buf bytes.Buffer
	require.NoError(t, HTML(&buf, doc))
	out := buf.String()

	assert.True(t, strings.HasPrefix(out, "<!DOCTYPE html><html><head><meta charset=\"utf-8\"/><title>Report</title></head><body>"))
	assert.Contains(t, out, "<h1>Title A</h1>")
	assert.Contains(t, out, `<p style="text-align: center"><span style="font-size: 12pt; color: #FF0000"><strong>bold &amp; big</strong></span></p>`)
	assert.Contains(t, out, "<h6>deep</h6>")
	assert.Contains(t, out, `<table border="1" class="Table-Grid"><tr><td colspan="2"><p>merged</p></td></tr>`)
	assert.NotContains(t, out, "<em>")
}
