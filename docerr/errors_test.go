package docerr

import (
	"errors"
	"fmt"
	"io/fs"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorIs(t *testing.T) {
	err := Newf(TitleNotFound, "title not found: %q", "Intro")

	assert.True(t, errors.Is(err, ErrTitleNotFound))
	assert.False(t, errors.Is(err, ErrKeywordNotFound))
	assert.Equal(t, `title not found: "Intro"`, err.Error())

	wrapped := fmt.Errorf("replace section: %w", err)
	assert.True(t, errors.Is(wrapped, ErrTitleNotFound))
	assert.Equal(t, TitleNotFound, KindOf(wrapped))
}

func TestWrap(t *testing.T) {
	err := Wrap(IOFailure, fs.ErrPermission, "failed to save %s", "a.docx")

	assert.Equal(t, "failed to save a.docx: permission denied", err.Error())
	assert.True(t, errors.Is(err, ErrIOFailure))
	assert.True(t, errors.Is(err, fs.ErrPermission))
}

func TestKindOf(t *testing.T) {
	assert.Equal(t, Unknown, KindOf(errors.New("plain")))
	assert.Equal(t, Unknown, KindOf(nil))
	assert.Equal(t, "no document is open", ErrNoDocumentOpen.Error())
	assert.Equal(t, "InvalidRange", ErrInvalidRange.Error())
	assert.Equal(t, "IndexOutOfRange", IndexOutOfRange.String())
}
