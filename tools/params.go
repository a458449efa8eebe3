package tools

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/tsawler/docxedit/docerr"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	// Report fields by their JSON names
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// typed adapts a handler taking decoded parameters to an ExecuteFunc.
func typed[P any](fn func(ctx context.Context, env *Env, p P) (string, error)) ExecuteFunc {
	return func(ctx context.Context, env *Env, args json.RawMessage) (string, error) {
		var p P
		if err := decodeArgs(args, &p); err != nil {
			return "", err
		}
		return fn(ctx, env, p)
	}
}

func orEmptyObject(args json.RawMessage) json.RawMessage {
	trimmed := bytes.TrimSpace(args)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return json.RawMessage("{}")
	}
	return trimmed
}

// decodeArgs unmarshals args into dst, rejecting unknown fields, and runs the
// struct's validate tags.
func decodeArgs(args json.RawMessage, dst any) error {
	dec := json.NewDecoder(bytes.NewReader(orEmptyObject(args)))
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return docerr.Wrap(docerr.Invalid, err, "invalid arguments")
	}
	if err := validate.Struct(dst); err != nil {
		return docerr.Newf(docerr.Invalid, "invalid arguments: %s", describe(err))
	}
	return nil
}

func describe(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err.Error()
	}
	parts := make([]string, len(verrs))
	for i, fe := range verrs {
		switch {
		case fe.Tag() == "required":
			parts[i] = fe.Field() + " is required"
		case fe.Tag() == "oneof":
			parts[i] = fmt.Sprintf("%s must be one of [%s]", fe.Field(), fe.Param())
		case fe.Param() != "":
			parts[i] = fmt.Sprintf("%s must satisfy %s=%s", fe.Field(), fe.Tag(), fe.Param())
		default:
			parts[i] = fmt.Sprintf("%s must satisfy %s", fe.Field(), fe.Tag())
		}
	}
	return strings.Join(parts, "; ")
}

// cellText is table cell content. Clients may send any JSON scalar; numbers
// and booleans are kept as written.
type cellText string

func (c *cellText) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	switch {
	case len(b) == 0 || bytes.Equal(b, []byte("null")):
		*c = ""
	case b[0] == '"':
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*c = cellText(s)
	case b[0] == '{' || b[0] == '[':
		return fmt.Errorf("cell value must be a string, number or boolean")
	default:
		*c = cellText(b)
	}
	return nil
}

func cellStrings(row []cellText) []string {
	if row == nil {
		return nil
	}
	out := make([]string, len(row))
	for i, v := range row {
		out[i] = string(v)
	}
	return out
}
