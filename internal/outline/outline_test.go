package outline

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckInput(t *testing.T) {
	dir := t.TempDir()
	deck := filepath.Join(dir, "Slides.PPTX")
	require.NoError(t, os.WriteFile(deck, []byte("x"), 0o644))
	legacy := filepath.Join(dir, "old.ppt")
	require.NoError(t, os.WriteFile(legacy, []byte("x"), 0o644))
	doc := filepath.Join(dir, "notes.docx")
	require.NoError(t, os.WriteFile(doc, []byte("0123456789"), 0o644))

	assert.NoError(t, CheckInput(deck, FormatDeck, 0), "extension check is case-insensitive")
	assert.NoError(t, CheckInput(legacy, FormatDeck, 0), "legacy suffix passes the name check")
	assert.NoError(t, CheckInput(doc, FormatDocument, 0))

	err := CheckInput(filepath.Join(dir, "missing.pptx"), FormatDeck, 0)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNotFound))
	assert.Contains(t, err.Error(), "file not found")

	err = CheckInput(doc, FormatDeck, 0)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidInput))
	assert.Contains(t, err.Error(), ".pptx or .ppt")

	err = CheckInput(doc, FormatDocument, 5)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidInput))
	assert.Contains(t, err.Error(), "too large")

	err = CheckInput(dir, FormatDeck, 0)
	assert.True(t, errors.Is(err, ErrInvalidInput))
}

func TestCheckOutput(t *testing.T) {
	assert.NoError(t, CheckOutput("/tmp/out.PPTX"))
	assert.True(t, errors.Is(CheckOutput(""), ErrInvalidInput))
	assert.True(t, errors.Is(CheckOutput("/tmp/out.ppt"), ErrInvalidInput))
}

func TestCombinedOutline_Validate(t *testing.T) {
	ok := CombinedOutline{Slides: []OutputSlide{
		{SlideType: SlideTypeTitle, Title: "T"},
		{SlideType: SlideTypeContent, Title: "C"},
	}}
	assert.NoError(t, ok.Validate())
	assert.NoError(t, CombinedOutline{}.Validate())

	bad := CombinedOutline{Slides: []OutputSlide{{SlideType: "chart"}}}
	err := bad.Validate()
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidInput))
	assert.Contains(t, err.Error(), `"chart"`)
}

func TestErrorKind(t *testing.T) {
	cause := errors.New("boom")
	tests := []struct {
		err  error
		want string
	}{
		{fmt.Errorf("%w: x", ErrNotFound), KindNotFound},
		{fmt.Errorf("%w: x", ErrInvalidInput), KindInvalidInput},
		{&DeckReadError{Path: "a.pptx", Err: cause}, KindDeckReadError},
		{fmt.Errorf("combine: %w", &DocumentReadError{Path: "a.docx", Err: cause}), KindDocumentReadError},
		{&RenderError{Path: "o.pptx", Err: cause}, KindRenderError},
		{cause, KindInternal},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ErrorKind(tt.err), tt.err.Error())
	}

	err := &DeckReadError{Path: "a.pptx", Err: cause}
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "read deck a.pptx: boom", err.Error())
}

func TestSlideRecord_ContentTexts(t *testing.T) {
	s := SlideRecord{ContentItems: []ContentItem{{Text: "a", ShapeName: "x"}, {Text: "b"}}}
	assert.Equal(t, []string{"a", "b"}, s.ContentTexts())
	assert.Empty(t, SlideRecord{}.ContentTexts())
}
