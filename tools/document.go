package tools

import (
	"context"
	"fmt"
)

type filePathParams struct {
	FilePath string `json:"file_path" validate:"required"`
}

type noParams struct{}

func filePathSchema(desc string) Schema {
	return Schema{
		Required: []string{"file_path"},
		Properties: map[string]Property{
			"file_path": {Type: "string", Description: desc},
		},
	}
}

// CreateDocumentTool returns a tool that starts a new document.
func CreateDocumentTool() *Tool {
	return &Tool{
		Name:        "create_document",
		Description: "Create a new Word document and save it to the given path",
		Category:    CategoryDocument,
		Execute:     typed(executeCreateDocument),
		Schema:      filePathSchema("Document save path"),
	}
}

func executeCreateDocument(_ context.Context, env *Env, p filePathParams) (string, error) {
	if err := env.Session.Create(p.FilePath); err != nil {
		return "", err
	}
	return fmt.Sprintf("Document created successfully: %s", p.FilePath), nil
}

// OpenDocumentTool returns a tool that opens an existing document.
func OpenDocumentTool() *Tool {
	return &Tool{
		Name:        "open_document",
		Description: "Open an existing Word document",
		Category:    CategoryDocument,
		Execute:     typed(executeOpenDocument),
		Schema:      filePathSchema("Path to the document to open"),
	}
}

func executeOpenDocument(_ context.Context, env *Env, p filePathParams) (string, error) {
	if err := env.Session.Open(p.FilePath); err != nil {
		return "", err
	}
	return fmt.Sprintf("Document opened successfully: %s", p.FilePath), nil
}

// SaveDocumentTool returns a tool that saves the document over its file.
func SaveDocumentTool() *Tool {
	return &Tool{
		Name:        "save_document",
		Description: "Save the currently open Word document to the original file",
		Category:    CategoryDocument,
		Execute:     typed(executeSaveDocument),
		Schema:      Schema{Properties: map[string]Property{}},
	}
}

func executeSaveDocument(_ context.Context, env *Env, _ noParams) (string, error) {
	if err := env.Session.Save(); err != nil {
		return "", err
	}
	return fmt.Sprintf("Document saved successfully to original file: %s", env.Session.Path()), nil
}

type saveAsParams struct {
	NewFilePath string `json:"new_file_path" validate:"required"`
}

// SaveAsDocumentTool returns a tool that saves the document under a new path.
func SaveAsDocumentTool() *Tool {
	return &Tool{
		Name:        "save_as_document",
		Description: "Save the current document as a new file and continue editing it there",
		Category:    CategoryDocument,
		Execute:     typed(executeSaveAsDocument),
		Schema: Schema{
			Required: []string{"new_file_path"},
			Properties: map[string]Property{
				"new_file_path": {Type: "string", Description: "Path to save the new file"},
			},
		},
	}
}

func executeSaveAsDocument(_ context.Context, env *Env, p saveAsParams) (string, error) {
	if err := env.Session.SaveAs(p.NewFilePath); err != nil {
		return "", err
	}
	return fmt.Sprintf("Document saved as: %s", p.NewFilePath), nil
}

type copyParams struct {
	Suffix string `json:"suffix"`
}

// CreateDocumentCopyTool returns a tool that saves a copy next to the file.
func CreateDocumentCopyTool() *Tool {
	return &Tool{
		Name:        "create_document_copy",
		Description: "Create a copy of the current document in the directory of the original file",
		Category:    CategoryDocument,
		Execute:     typed(executeCreateDocumentCopy),
		Schema: Schema{
			Properties: map[string]Property{
				"suffix": {Type: "string", Description: "Suffix added to the original file name", Default: "-副本"},
			},
		},
	}
}

func executeCreateDocumentCopy(_ context.Context, env *Env, p copyParams) (string, error) {
	suffix := p.Suffix
	if suffix == "" {
		suffix = env.CopySuffix
	}
	dst, err := env.Session.Copy(suffix)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("Document copy created: %s", dst), nil
}

// GetDocumentInfoTool returns a tool that summarizes the open document.
func GetDocumentInfoTool() *Tool {
	return &Tool{
		Name:        "get_document_info",
		Description: "Get document information, including paragraph count, table count and styles",
		Category:    CategoryDocument,
		Execute:     typed(executeGetDocumentInfo),
		Schema:      Schema{Properties: map[string]Property{}},
	}
}

func executeGetDocumentInfo(_ context.Context, env *Env, _ noParams) (string, error) {
	info, err := env.Session.Info()
	if err != nil {
		return "", err
	}
	return info.String(), nil
}
