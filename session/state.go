package session

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"go.uber.org/zap"
)

// StateStore is a one-line file holding the path of the last open document.
type StateStore struct {
	Path string
	log  *zap.Logger
}

func NewStateStore(path string, log *zap.Logger) *StateStore {
	if log == nil {
		log = zap.NewNop()
	}
	return &StateStore{Path: path, log: log}
}

// Clear deletes the state file. A missing file is not an error.
func (st *StateStore) Clear() error {
	if err := os.Remove(st.Path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to remove state file: %w", err)
	}
	return nil
}

// Record stores path as the last open document.
func (st *StateStore) Record(path string) error {
	if err := os.WriteFile(st.Path, []byte(path), 0644); err != nil {
		return fmt.Errorf("failed to save current document path: %w", err)
	}
	return nil
}

// Restore returns the recorded path when it names an existing file. An empty
// or stale record is deleted.
func (st *StateStore) Restore() (string, bool) {
	data, err := os.ReadFile(st.Path)
	if errors.Is(err, fs.ErrNotExist) {
		return "", false
	}
	if err != nil {
		st.log.Error("failed to read state file", zap.Error(err))
		st.discard("unreadable state file")
		return "", false
	}

	path := strings.TrimSpace(string(data))
	if path == "" {
		st.discard("empty state file")
		return "", false
	}
	if _, err := os.Stat(path); err != nil {
		st.discard("state file points to a missing document")
		return "", false
	}
	return path, true
}

func (st *StateStore) discard(reason string) {
	if err := st.Clear(); err != nil {
		st.log.Error("failed to remove state file", zap.Error(err))
		return
	}
	st.log.Info("removed invalid state file", zap.String("reason", reason))
}

// RestoreLast reopens the recorded document in sess. A document that fails
// to load has its record deleted.
func RestoreLast(sess *Session, st *StateStore) bool {
	path, ok := st.Restore()
	if !ok {
		return false
	}
	if err := sess.Open(path); err != nil {
		st.log.Error("failed to load recorded document", zap.String("path", path), zap.Error(err))
		st.discard("recorded document is corrupt")
		return false
	}
	return true
}

// Shutdown saves the open document, if any, and records its path.
func Shutdown(sess *Session, st *StateStore) error {
	if !sess.IsOpen() {
		return nil
	}
	if err := sess.Save(); err != nil {
		return err
	}
	if err := st.Record(sess.Path()); err != nil {
		return err
	}
	st.log.Info("recorded current document", zap.String("path", sess.Path()))
	return nil
}
