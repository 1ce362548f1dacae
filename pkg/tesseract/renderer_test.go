package tesseract

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRenderer struct {
	calls    []string
	beginErr error
	addErr   error
	docOpen  bool
	pages    int
}

func (f *fakeRenderer) BeginDocument(title string) error {
	f.calls = append(f.calls, "begin:"+title)
	if f.beginErr != nil {
		return f.beginErr
	}
	f.docOpen = true
	return nil
}

func (f *fakeRenderer) AddPage(*Page) error {
	f.calls = append(f.calls, "add")
	if f.addErr != nil {
		return f.addErr
	}
	f.pages++
	return nil
}

func (f *fakeRenderer) EndDocument() error {
	f.calls = append(f.calls, "end")
	f.docOpen = false
	return nil
}

func (f *fakeRenderer) PageNumber() int {
	if !f.docOpen {
		return -1
	}
	return f.pages - 1
}

func (f *fakeRenderer) Close() error {
	f.calls = append(f.calls, "close")
	return nil
}

func TestAggregateRenderer_FanOut(t *testing.T) {
	a, b := &fakeRenderer{}, &fakeRenderer{}
	agg := NewAggregateRenderer(a, b)

	assert.Equal(t, -1, agg.PageNumber())
	require.NoError(t, agg.BeginDocument("doc"))
	assert.Equal(t, -1, agg.PageNumber())
	assert.ErrorIs(t, agg.BeginDocument("again"), ErrDocumentInProgress)

	require.NoError(t, agg.AddPage(nil))
	require.NoError(t, agg.AddPage(nil))
	assert.Equal(t, 1, agg.PageNumber())

	require.NoError(t, agg.EndDocument())
	assert.Equal(t, -1, agg.PageNumber())
	assert.ErrorIs(t, agg.EndDocument(), ErrNoDocument)
	assert.ErrorIs(t, agg.AddPage(nil), ErrNoDocument)

	require.NoError(t, agg.Close())
	require.NoError(t, agg.Close())
	assert.ErrorIs(t, agg.BeginDocument("closed"), ErrClosed)

	want := []string{"begin:doc", "add", "add", "end", "close"}
	assert.Equal(t, want, a.calls)
	assert.Equal(t, want, b.calls)
}

func TestAggregateRenderer_BeginFailureEndsStarted(t *testing.T) {
	boom := errors.New("boom")
	a, b := &fakeRenderer{}, &fakeRenderer{beginErr: boom}
	agg := NewAggregateRenderer(a, b)

	assert.ErrorIs(t, agg.BeginDocument("doc"), boom)
	assert.Equal(t, []string{"begin:doc", "end"}, a.calls)
	assert.Equal(t, -1, agg.PageNumber())
}

func TestAggregateRenderer_CloseEndsOpenDocument(t *testing.T) {
	a := &fakeRenderer{}
	agg := NewAggregateRenderer(a)
	require.NoError(t, agg.BeginDocument("doc"))
	require.NoError(t, agg.Close())
	assert.Equal(t, []string{"begin:doc", "end", "close"}, a.calls)
}

func TestParseRenderFormat(t *testing.T) {
	for _, f := range RenderFormats {
		got, err := ParseRenderFormat(string(f))
		require.NoError(t, err)
		assert.Equal(t, f, got)
	}
	got, err := ParseRenderFormat("TEXT")
	require.NoError(t, err)
	assert.Equal(t, FormatText, got)

	_, err = ParseRenderFormat("docx")
	assert.Error(t, err)
}

func TestRenderer_Nil(t *testing.T) {
	var r *Renderer
	assert.Equal(t, -1, r.PageNumber())
	assert.NoError(t, r.Close())
	assert.ErrorIs(t, r.BeginDocument("x"), ErrClosed)
}
