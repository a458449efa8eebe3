package tools

import (
	"context"
	"encoding/json"
	"time"

	"github.com/tsawler/docxedit/docerr"
	"github.com/tsawler/docxedit/edit"
	"github.com/tsawler/docxedit/session"
)

// Category groups tools the way they are presented to clients.
type Category string

const (
	// CategoryDocument covers creating, opening, saving and copying.
	CategoryDocument Category = "/document"

	// CategoryContent covers paragraphs, headings, search and section edits.
	CategoryContent Category = "/content"

	// CategoryTable covers table creation and surgery.
	CategoryTable Category = "/table"

	// CategoryLayout covers page breaks and margins.
	CategoryLayout Category = "/layout"

	// CategoryView covers read-only renderings of the document.
	CategoryView Category = "/view"
)

// Property describes a single parameter property for JSON schema.
type Property struct {
	Type        string `json:"type"`
	Description string `json:"description,omitempty"`
	Default     any    `json:"default,omitempty"`
	Enum        []any  `json:"enum,omitempty"`
	// Items describes array elements and is required for type="array"
	Items *Property `json:"items,omitempty"`
}

// Schema defines the JSON schema for tool arguments.
type Schema struct {
	// Required lists parameters that must be present.
	Required []string `json:"required,omitempty"`

	// Properties describes each parameter.
	Properties map[string]Property `json:"properties"`
}

// Env is what a tool runs against: the caller's session and the
// configured defaults.
type Env struct {
	Session *session.Session

	// Radius is the default section_range of edit_section_by_keyword
	Radius int

	// Boundary decides where replace_section stops
	Boundary edit.Boundary

	// CopySuffix is the default suffix of create_document_copy
	CopySuffix string
}

// ExecuteFunc is the signature for tool execution. args holds the raw JSON
// object sent by the client.
type ExecuteFunc func(ctx context.Context, env *Env, args json.RawMessage) (string, error)

// Tool defines one document command.
type Tool struct {
	// Name is the unique identifier clients call the tool by.
	Name string

	// Description explains what the tool does.
	Description string

	Category Category

	// Execute runs the tool with the given arguments.
	Execute ExecuteFunc

	// Schema defines the expected arguments.
	Schema Schema
}

// Validate checks if the tool definition is valid.
func (t *Tool) Validate() error {
	if t.Name == "" {
		return ErrToolNameEmpty
	}
	if t.Execute == nil {
		return ErrToolExecuteNil
	}
	return nil
}

// Result is the outcome of one command call. Exactly one of Text and Err is
// meaningful.
type Result struct {
	Tool     string
	Text     string
	Err      error
	Kind     docerr.Kind
	Duration time.Duration
}

// OK reports whether the command succeeded.
func (r Result) OK() bool {
	return r.Err == nil
}

// Status renders the result as the single status line shown to users.
func (r Result) Status() string {
	if r.Err != nil {
		return "Error: " + r.Err.Error()
	}
	return r.Text
}
