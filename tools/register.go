package tools

import (
	"go.uber.org/zap"

	"github.com/tsawler/docxedit/internal/metrics"
)

// Definitions returns a fresh definition of every document tool, in the order they
// are listed to clients.
func Definitions() []*Tool {
	return []*Tool{
		// Document management
		CreateDocumentTool(),
		OpenDocumentTool(),
		SaveDocumentTool(),
		SaveAsDocumentTool(),
		CreateDocumentCopyTool(),
		GetDocumentInfoTool(),

		// Content
		AddParagraphTool(),
		AddHeadingTool(),
		DeleteParagraphTool(),
		DeleteTextTool(),
		SearchTextTool(),
		SearchAndReplaceTool(),
		FindAndReplaceTool(),
		ReplaceSectionTool(),
		EditSectionByKeywordTool(),

		// Tables
		AddTableTool(),
		AddTableRowTool(),
		DeleteTableRowTool(),
		EditTableCellTool(),
		MergeTableCellsTool(),
		SplitTableTool(),

		// Layout
		AddPageBreakTool(),
		SetPageMarginsTool(),

		// Views
		GetDocumentTextTool(),
		GetTableTool(),
		ExportHTMLTool(),
	}
}

// NewDefaultRegistry returns a registry holding every document tool.
func NewDefaultRegistry(env *Env, log *zap.Logger, m *metrics.Metrics) *Registry {
	r := NewRegistry(env, log, m)
	for _, tool := range Definitions() {
		r.MustRegister(tool)
	}
	return r
}
