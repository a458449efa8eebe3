package tools

import (
	"context"
	"fmt"

	"github.com/tsawler/docxedit/docerr"
	"github.com/tsawler/docxedit/edit"
	"github.com/tsawler/docxedit/model"
	"github.com/tsawler/docxedit/search"
)

type addParagraphParams struct {
	Text      string   `json:"text"`
	Bold      bool     `json:"bold"`
	Italic    bool     `json:"italic"`
	Underline bool     `json:"underline"`
	FontSize  *float64 `json:"font_size" validate:"omitempty,gt=0,lte=1638"`
	FontName  string   `json:"font_name"`
	Color     string   `json:"color"`
	Alignment string   `json:"alignment" validate:"omitempty,oneof=left center right justify"`
}

// AddParagraphTool returns a tool that appends a formatted paragraph.
func AddParagraphTool() *Tool {
	return &Tool{
		Name:        "add_paragraph",
		Description: "Add paragraph text to the end of the document",
		Category:    CategoryContent,
		Execute:     typed(executeAddParagraph),
		Schema: Schema{
			Required: []string{"text"},
			Properties: map[string]Property{
				"text":      {Type: "string", Description: "Paragraph text content"},
				"bold":      {Type: "boolean", Description: "Whether to bold", Default: false},
				"italic":    {Type: "boolean", Description: "Whether to italicize", Default: false},
				"underline": {Type: "boolean", Description: "Whether to underline", Default: false},
				"font_size": {Type: "number", Description: "Font size in points"},
				"font_name": {Type: "string", Description: "Font name, applied to Latin and East Asian text"},
				"color":     {Type: "string", Description: "Text color in the form #FF0000"},
				"alignment": {Type: "string", Description: "Paragraph alignment", Enum: []any{"left", "center", "right", "justify"}},
			},
		},
	}
}

func executeAddParagraph(_ context.Context, env *Env, p addParagraphParams) (string, error) {
	doc, err := env.Session.Document()
	if err != nil {
		return "", err
	}
	f := model.RunFormat{
		Bold:      model.Bool(p.Bold),
		Italic:    model.Bool(p.Italic),
		Underline: model.Bool(p.Underline),
		Font:      p.FontName,
	}
	if p.FontSize != nil {
		f.Size = *p.FontSize
	}
	if p.Color != "" {
		if f.Color, err = model.ParseColor(p.Color); err != nil {
			return "", docerr.Wrap(docerr.Invalid, err, "invalid color")
		}
	}
	align, err := model.ParseAlignment(p.Alignment)
	if err != nil {
		return "", docerr.Wrap(docerr.Invalid, err, "invalid alignment")
	}
	edit.AddParagraph(doc, p.Text, f, align)
	return "Paragraph added", nil
}

type addHeadingParams struct {
	Text  string `json:"text"`
	Level int    `json:"level"`
}

// AddHeadingTool returns a tool that appends a heading.
func AddHeadingTool() *Tool {
	return &Tool{
		Name:        "add_heading",
		Description: "Add a heading to the document; level 0 adds a title",
		Category:    CategoryContent,
		Execute:     typed(executeAddHeading),
		Schema: Schema{
			Required: []string{"text", "level"},
			Properties: map[string]Property{
				"text":  {Type: "string", Description: "Heading text"},
				"level": {Type: "integer", Description: "Heading level (1-9)"},
			},
		},
	}
}

func executeAddHeading(_ context.Context, env *Env, p addHeadingParams) (string, error) {
	doc, err := env.Session.Document()
	if err != nil {
		return "", err
	}
	if _, err := edit.AddHeading(doc, p.Text, p.Level); err != nil {
		return "", err
	}
	return fmt.Sprintf("Added level %d heading", p.Level), nil
}

type paragraphIndexParams struct {
	ParagraphIndex int `json:"paragraph_index"`
}

// DeleteParagraphTool returns a tool that removes one paragraph.
func DeleteParagraphTool() *Tool {
	return &Tool{
		Name:        "delete_paragraph",
		Description: "Delete the paragraph at the given index",
		Category:    CategoryContent,
		Execute:     typed(executeDeleteParagraph),
		Schema: Schema{
			Required: []string{"paragraph_index"},
			Properties: map[string]Property{
				"paragraph_index": {Type: "integer", Description: "Index of the paragraph to delete"},
			},
		},
	}
}

func executeDeleteParagraph(_ context.Context, env *Env, p paragraphIndexParams) (string, error) {
	doc, err := env.Session.Document()
	if err != nil {
		return "", err
	}
	if err := edit.DeleteParagraph(doc, p.ParagraphIndex); err != nil {
		return "", err
	}
	return fmt.Sprintf("Paragraph %d deleted", p.ParagraphIndex), nil
}

type deleteTextParams struct {
	ParagraphIndex int `json:"paragraph_index"`
	StartPos       int `json:"start_pos"`
	EndPos         int `json:"end_pos"`
}

// DeleteTextTool returns a tool that cuts characters out of a paragraph.
func DeleteTextTool() *Tool {
	return &Tool{
		Name:        "delete_text",
		Description: "Delete the characters [start_pos, end_pos) of a paragraph",
		Category:    CategoryContent,
		Execute:     typed(executeDeleteText),
		Schema: Schema{
			Required: []string{"paragraph_index", "start_pos", "end_pos"},
			Properties: map[string]Property{
				"paragraph_index": {Type: "integer", Description: "Paragraph index"},
				"start_pos":       {Type: "integer", Description: "Start position (inclusive)"},
				"end_pos":         {Type: "integer", Description: "End position (exclusive)"},
			},
		},
	}
}

func executeDeleteText(_ context.Context, env *Env, p deleteTextParams) (string, error) {
	doc, err := env.Session.Document()
	if err != nil {
		return "", err
	}
	if err := edit.DeleteText(doc, p.ParagraphIndex, p.StartPos, p.EndPos); err != nil {
		return "", err
	}
	return fmt.Sprintf("Deleted text from position %d to %d in paragraph %d", p.StartPos, p.EndPos, p.ParagraphIndex), nil
}

type searchParams struct {
	Keyword string `json:"keyword" validate:"required"`
}

// SearchTextTool returns a tool that lists paragraphs and cells containing a
// keyword.
func SearchTextTool() *Tool {
	return &Tool{
		Name:        "search_text",
		Description: "Search for text in paragraphs and table cells",
		Category:    CategoryContent,
		Execute:     typed(executeSearchText),
		Schema: Schema{
			Required: []string{"keyword"},
			Properties: map[string]Property{
				"keyword": {Type: "string", Description: "Keyword to search for"},
			},
		},
	}
}

func executeSearchText(_ context.Context, env *Env, p searchParams) (string, error) {
	doc, err := env.Session.Document()
	if err != nil {
		return "", err
	}
	return search.FormatHits(p.Keyword, search.Search(doc, p.Keyword)), nil
}

type searchReplaceParams struct {
	Keyword     string `json:"keyword" validate:"required"`
	ReplaceWith string `json:"replace_with"`
	PreviewOnly bool   `json:"preview_only"`
}

// SearchAndReplaceTool returns a tool that replaces a keyword and reports
// every location it changed.
func SearchAndReplaceTool() *Tool {
	return &Tool{
		Name:        "search_and_replace",
		Description: "Search and replace text, with an optional preview that changes nothing",
		Category:    CategoryContent,
		Execute:     typed(executeSearchAndReplace),
		Schema: Schema{
			Required: []string{"keyword", "replace_with"},
			Properties: map[string]Property{
				"keyword":      {Type: "string", Description: "Keyword to search for"},
				"replace_with": {Type: "string", Description: "Text to replace with"},
				"preview_only": {Type: "boolean", Description: "Only preview the replacements", Default: false},
			},
		},
	}
}

func executeSearchAndReplace(_ context.Context, env *Env, p searchReplaceParams) (string, error) {
	doc, err := env.Session.Document()
	if err != nil {
		return "", err
	}
	reps := search.SearchAndReplace(doc, p.Keyword, p.ReplaceWith, p.PreviewOnly)
	return search.FormatReplacements(p.Keyword, p.ReplaceWith, reps, p.PreviewOnly), nil
}

type findReplaceParams struct {
	FindText    string `json:"find_text" validate:"required"`
	ReplaceText string `json:"replace_text"`
}

// FindAndReplaceTool returns a tool that replaces text everywhere.
func FindAndReplaceTool() *Tool {
	return &Tool{
		Name:        "find_and_replace",
		Description: "Find and replace text in paragraphs and table cells",
		Category:    CategoryContent,
		Execute:     typed(executeFindAndReplace),
		Schema: Schema{
			Required: []string{"find_text", "replace_text"},
			Properties: map[string]Property{
				"find_text":    {Type: "string", Description: "Text to find"},
				"replace_text": {Type: "string", Description: "Replacement text"},
			},
		},
	}
}

func executeFindAndReplace(_ context.Context, env *Env, p findReplaceParams) (string, error) {
	doc, err := env.Session.Document()
	if err != nil {
		return "", err
	}
	n := search.FindAndReplace(doc, p.FindText, p.ReplaceText)
	return search.FormatFindAndReplace(p.FindText, p.ReplaceText, n), nil
}

var contentLinesProperty = Property{
	Type:        "array",
	Description: "New content, one paragraph per entry",
	Items:       &Property{Type: "string"},
}

type replaceSectionParams struct {
	SectionTitle  string   `json:"section_title" validate:"required"`
	NewContent    []string `json:"new_content"`
	PreserveTitle *bool    `json:"preserve_title"`
}

// ReplaceSectionTool returns a tool that rewrites the content under a title.
func ReplaceSectionTool() *Tool {
	return &Tool{
		Name:        "replace_section",
		Description: "Replace the content under a title, keeping the original format and style",
		Category:    CategoryContent,
		Execute:     typed(executeReplaceSection),
		Schema: Schema{
			Required: []string{"section_title", "new_content"},
			Properties: map[string]Property{
				"section_title":  {Type: "string", Description: "Text contained in the title paragraph"},
				"new_content":    contentLinesProperty,
				"preserve_title": {Type: "boolean", Description: "Keep the title paragraph", Default: true},
			},
		},
	}
}

func executeReplaceSection(_ context.Context, env *Env, p replaceSectionParams) (string, error) {
	doc, err := env.Session.Document()
	if err != nil {
		return "", err
	}
	preserve := p.PreserveTitle == nil || *p.PreserveTitle
	if _, err := edit.ReplaceSection(doc, p.SectionTitle, p.NewContent, preserve, env.Boundary); err != nil {
		return "", err
	}
	return fmt.Sprintf("Replaced content under title '%s', keeping original format and style", p.SectionTitle), nil
}

type editByKeywordParams struct {
	Keyword      string   `json:"keyword" validate:"required"`
	NewContent   []string `json:"new_content"`
	SectionRange *int     `json:"section_range"`
}

// EditSectionByKeywordTool returns a tool that rewrites the paragraphs around
// a keyword.
func EditSectionByKeywordTool() *Tool {
	return &Tool{
		Name:        "edit_section_by_keyword",
		Description: "Replace the paragraphs around the first paragraph containing a keyword, keeping the original format and style",
		Category:    CategoryContent,
		Execute:     typed(executeEditSectionByKeyword),
		Schema: Schema{
			Required: []string{"keyword", "new_content"},
			Properties: map[string]Property{
				"keyword":       {Type: "string", Description: "Keyword to locate"},
				"new_content":   contentLinesProperty,
				"section_range": {Type: "integer", Description: "Paragraphs taken on each side of the match", Default: edit.DefaultRadius},
			},
		},
	}
}

func executeEditSectionByKeyword(_ context.Context, env *Env, p editByKeywordParams) (string, error) {
	doc, err := env.Session.Document()
	if err != nil {
		return "", err
	}
	radius := env.Radius
	if p.SectionRange != nil {
		radius = *p.SectionRange
	}
	if _, err := edit.EditSectionByKeyword(doc, p.Keyword, p.NewContent, radius); err != nil {
		return "", err
	}
	return fmt.Sprintf("Replaced paragraphs containing keyword '%s' and their surrounding content, keeping original format and style", p.Keyword), nil
}
