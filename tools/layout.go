package tools

import (
	"context"

	"github.com/tsawler/docxedit/edit"
)

// AddPageBreakTool returns a tool that appends a page break.
func AddPageBreakTool() *Tool {
	return &Tool{
		Name:        "add_page_break",
		Description: "Add a page break to the end of the document",
		Category:    CategoryLayout,
		Execute:     typed(executeAddPageBreak),
		Schema:      Schema{Properties: map[string]Property{}},
	}
}

func executeAddPageBreak(_ context.Context, env *Env, _ noParams) (string, error) {
	doc, err := env.Session.Document()
	if err != nil {
		return "", err
	}
	edit.AddPageBreak(doc)
	return "Page break added", nil
}

type marginParams struct {
	Top    *float64 `json:"top"`
	Bottom *float64 `json:"bottom"`
	Left   *float64 `json:"left"`
	Right  *float64 `json:"right"`
}

// SetPageMarginsTool returns a tool that changes the page margins.
func SetPageMarginsTool() *Tool {
	cm := func(desc string) Property { return Property{Type: "number", Description: desc + " (cm)"} }
	return &Tool{
		Name:        "set_page_margins",
		Description: "Set page margins; omitted margins are left unchanged",
		Category:    CategoryLayout,
		Execute:     typed(executeSetPageMargins),
		Schema: Schema{
			Properties: map[string]Property{
				"top":    cm("Top margin"),
				"bottom": cm("Bottom margin"),
				"left":   cm("Left margin"),
				"right":  cm("Right margin"),
			},
		},
	}
}

func executeSetPageMargins(_ context.Context, env *Env, p marginParams) (string, error) {
	doc, err := env.Session.Document()
	if err != nil {
		return "", err
	}
	m := edit.Margins{Top: p.Top, Bottom: p.Bottom, Left: p.Left, Right: p.Right}
	if err := edit.SetPageMargins(doc, m); err != nil {
		return "", err
	}
	return "Page margins set", nil
}
