// Package docerr defines the error kinds reported by document commands.
package docerr

import (
	"errors"
	"fmt"
)

// Kind classifies a command failure
type Kind int

const (
	Unknown Kind = iota
	NoDocumentOpen
	FileNotFound
	IndexOutOfRange
	InvalidRange
	TitleNotFound
	KeywordNotFound
	IOFailure
	Invalid
)

func (k Kind) String() string {
	switch k {
	case NoDocumentOpen:
		return "NoDocumentOpen"
	case FileNotFound:
		return "FileNotFound"
	case IndexOutOfRange:
		return "IndexOutOfRange"
	case InvalidRange:
		return "InvalidRange"
	case TitleNotFound:
		return "TitleNotFound"
	case KeywordNotFound:
		return "KeywordNotFound"
	case IOFailure:
		return "IOFailure"
	case Invalid:
		return "Invalid"
	default:
		return "Unknown"
	}
}

// Error is a classified failure. Two errors match under errors.Is when the
// target is a bare sentinel of the same kind.
type Error struct {
	Kind Kind
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	switch {
	case e.Msg == "" && e.Err == nil:
		if e.Kind == NoDocumentOpen {
			return "no document is open"
		}
		return e.Kind.String()
	case e.Err == nil:
		return e.Msg
	case e.Msg == "":
		return e.Err.Error()
	}
	return e.Msg + ": " + e.Err.Error()
}

func (e *Error) Unwrap() error { return e.Err }

func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Msg == "" && t.Err == nil && t.Kind == e.Kind
}

// Sentinels for errors.Is checks
var (
	ErrNoDocumentOpen  = &Error{Kind: NoDocumentOpen}
	ErrFileNotFound    = &Error{Kind: FileNotFound}
	ErrIndexOutOfRange = &Error{Kind: IndexOutOfRange}
	ErrInvalidRange    = &Error{Kind: InvalidRange}
	ErrTitleNotFound   = &Error{Kind: TitleNotFound}
	ErrKeywordNotFound = &Error{Kind: KeywordNotFound}
	ErrIOFailure       = &Error{Kind: IOFailure}
	ErrInvalid         = &Error{Kind: Invalid}
)

// Newf returns an error of the given kind with a formatted message
func Newf(kind Kind, format string, args ...any) error {
	return &Error{Kind: kind, Msg: fmt.Sprintf(format, args...)}
}

// Wrap classifies err under kind, prefixing it with a formatted message
func Wrap(kind Kind, err error, format string, args ...any) error {
	return &Error{Kind: kind, Msg: fmt.Sprintf(format, args...), Err: err}
}

// KindOf returns the kind of the outermost classified error in err's chain
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return Unknown
}
