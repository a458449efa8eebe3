// Package session holds the document a client is editing.
//
// A [Session] is an explicit handle passed to every command; there is no
// process-wide current document. A [StateStore] remembers the path of the
// open document across process restarts.
package session

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/tsawler/docxedit/docerr"
	"github.com/tsawler/docxedit/docx"
	"github.com/tsawler/docxedit/model"
)

// DefaultCopySuffix is inserted before the extension by Copy
const DefaultCopySuffix = "-副本"

// Session owns at most one open document. It is not safe for concurrent use;
// callers run commands one at a time.
type Session struct {
	ID string

	log  *zap.Logger
	file *docx.File
	path string
}

// New returns an empty session.
func New(log *zap.Logger) *Session {
	if log == nil {
		log = zap.NewNop()
	}
	id := uuid.NewString()
	return &Session{ID: id, log: log.With(zap.String("session", id))}
}

// Create starts a new document and saves it to path right away.
func (s *Session) Create(path string) error {
	f := docx.New()
	if err := f.Save(path); err != nil {
		return docerr.Wrap(docerr.IOFailure, err, "failed to create document")
	}
	s.file, s.path = f, path
	s.log.Info("document created", zap.String("path", path))
	return nil
}

// Open loads the document at path, replacing any open one.
func (s *Session) Open(path string) error {
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		return docerr.Newf(docerr.FileNotFound, "file does not exist: %s", path)
	}
	f, err := docx.Open(path)
	if err != nil {
		return docerr.Wrap(docerr.IOFailure, err, "failed to open document")
	}
	s.file, s.path = f, path
	s.log.Info("document opened", zap.String("path", path), zap.Int("blocks", f.Document.Len()))
	return nil
}

// Save writes the open document back to its path.
func (s *Session) Save() error {
	if s.file == nil {
		return docerr.ErrNoDocumentOpen
	}
	if s.path == "" {
		return docerr.Newf(docerr.Invalid, "current document has not been saved before, please use save_as_document to specify a save path")
	}
	if err := s.file.Save(s.path); err != nil {
		return docerr.Wrap(docerr.IOFailure, err, "failed to save document")
	}
	s.log.Debug("document saved", zap.String("path", s.path))
	return nil
}

// SaveAs writes the open document to path and makes path current.
func (s *Session) SaveAs(path string) error {
	if s.file == nil {
		return docerr.ErrNoDocumentOpen
	}
	if err := s.file.Save(path); err != nil {
		return docerr.Wrap(docerr.IOFailure, err, "failed to save document")
	}
	s.path = path
	return nil
}

// Copy saves the open document next to its file with suffix inserted before
// the extension and returns the new path. The current path does not change.
func (s *Session) Copy(suffix string) (string, error) {
	if s.file == nil {
		return "", docerr.ErrNoDocumentOpen
	}
	if s.path == "" {
		return "", docerr.Newf(docerr.NoDocumentOpen, "current document has not been saved, cannot create a copy")
	}
	if suffix == "" {
		suffix = DefaultCopySuffix
	}
	dst := CopyPath(s.path, suffix)
	if err := s.file.Save(dst); err != nil {
		return "", docerr.Wrap(docerr.IOFailure, err, "failed to create document copy")
	}
	return dst, nil
}

// CopyPath inserts suffix between the base name and the extension of path.
func CopyPath(path, suffix string) string {
	dir, name := filepath.Split(path)
	ext := filepath.Ext(name)
	return filepath.Join(dir, strings.TrimSuffix(name, ext)+suffix+ext)
}

// Document returns the open document.
func (s *Session) Document() (*model.Document, error) {
	if s.file == nil {
		return nil, docerr.ErrNoDocumentOpen
	}
	return s.file.Document, nil
}

// IsOpen reports whether a document is open.
func (s *Session) IsOpen() bool { return s.file != nil }

// Path returns the path of the open document, or "".
func (s *Session) Path() string { return s.path }

// Close forgets the open document without saving it.
func (s *Session) Close() {
	s.file, s.path = nil, ""
}

// Info summarizes the open document.
type Info struct {
	Path       string
	Sections   int
	Paragraphs int
	Tables     int
	Styles     []string // first paragraph styles of the catalog
}

const infoStyles = 10

func (s *Session) Info() (Info, error) {
	doc, err := s.Document()
	if err != nil {
		return Info{}, err
	}
	styles := doc.Styles.ParagraphStyleNames()
	if len(styles) > infoStyles {
		styles = styles[:infoStyles]
	}
	return Info{
		Path:       s.path,
		Sections:   doc.SectionCount(),
		Paragraphs: doc.ParagraphCount(),
		Tables:     doc.TableCount(),
		Styles:     styles,
	}, nil
}

func (i Info) String() string {
	return fmt.Sprintf("Document path: %s\nSection count: %d\nParagraph count: %d\nTable count: %d\nAvailable paragraph styles: %s...",
		i.Path, i.Sections, i.Paragraphs, i.Tables, strings.Join(i.Styles, ", "))
}
