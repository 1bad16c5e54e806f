package pptx

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dusk-indust/deckmerge/internal/fixture"
)

func TestOpen_ShapeKinds(t *testing.T) {
	path := filepath.Join(t.TempDir(), "deck.pptx")
	fixture.WriteDeck(t, path,
		fixture.Slide{
			Layout: "Title Slide",
			Shapes: []fixture.Shape{
				fixture.TitleShape("Quarterly Review"),
				{Kind: fixture.TextBox, Name: "TextBox 3", Text: "line one\nline & two", Width: 100, Height: 50},
			},
		},
		fixture.Slide{
			Shapes: []fixture.Shape{
				{Kind: fixture.Table, Name: "Table 1", Rows: [][]string{{"h1", " h2 "}, {"a", "b"}}, Width: 10, Height: 20},
				{Kind: fixture.Picture, Name: "Picture 2", Width: 914400, Height: 457200},
				{Kind: fixture.Group, Name: "Group 3", Text: "inside"},
				{Kind: fixture.Connector, Name: "Connector 4"},
			},
		},
	)

	pres, err := Open(path)
	require.NoError(t, err)
	require.Len(t, pres.Slides, 2)

	first := pres.Slides[0]
	assert.Equal(t, "Title Slide", first.LayoutName)
	require.Len(t, first.Shapes, 2)
	assert.Equal(t, ShapePlaceholder, first.Shapes[0].Kind)
	assert.Equal(t, "Title 1", first.Shapes[0].Name)
	assert.Equal(t, "Quarterly Review", first.Shapes[0].Text)
	assert.Equal(t, ShapeAuto, first.Shapes[1].Kind)
	assert.Equal(t, "line one\nline & two", first.Shapes[1].Text)
	assert.EqualValues(t, 100, first.Shapes[1].Width)
	assert.True(t, first.Shapes[1].HasTextFrame())

	second := pres.Slides[1]
	assert.Equal(t, "", second.LayoutName)
	require.Len(t, second.Shapes, 4)

	table := second.Shapes[0]
	assert.Equal(t, ShapeTable, table.Kind)
	assert.True(t, table.HasTable())
	assert.False(t, table.HasTextFrame())
	assert.Equal(t, [][]string{{"h1", "h2"}, {"a", "b"}}, table.Table)

	pic := second.Shapes[1]
	assert.Equal(t, ShapePicture, pic.Kind)
	assert.EqualValues(t, 914400, pic.Width)
	assert.EqualValues(t, 457200, pic.Height)

	assert.Equal(t, ShapeGroup, second.Shapes[2].Kind)
	assert.Empty(t, second.Shapes[2].Text, "group children are not flattened")
	assert.Equal(t, ShapeConnector, second.Shapes[3].Kind)
}

func TestBuilder_RoundTrip(t *testing.T) {
	b := NewBuilder()

	title, err := b.AddSlide(LayoutTitleSlide)
	require.NoError(t, err)
	title.SetTitle("Deck & Doc")
	assert.True(t, title.SetBody("Generated"))

	content, err := b.AddSlide(LayoutTitleAndContent)
	require.NoError(t, err)
	content.SetTitle("Introduction")
	content.SetBody("• first\n  - nested")

	_, err = b.AddSlide(LayoutTitleAndContent)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "out", "deck.pptx")
	require.NoError(t, b.Save(path))

	pres, err := Open(path)
	require.NoError(t, err)
	require.Len(t, pres.Slides, 3)

	assert.Equal(t, LayoutTitleSlide, pres.Slides[0].LayoutName)
	assert.Equal(t, "Deck & Doc", pres.Slides[0].Shapes[0].Text)
	assert.Equal(t, "Text Placeholder 2", pres.Slides[0].Shapes[1].Name)
	assert.Equal(t, "Generated", pres.Slides[0].Shapes[1].Text)

	assert.Equal(t, LayoutTitleAndContent, pres.Slides[1].LayoutName)
	assert.Equal(t, "Introduction", pres.Slides[1].Shapes[0].Text)
	assert.Equal(t, "• first\n  - nested", pres.Slides[1].Shapes[1].Text)

	assert.Equal(t, "", pres.Slides[2].Shapes[0].Text)
	assert.Equal(t, "", pres.Slides[2].Shapes[1].Text)

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temp file is renamed into place")
}

func TestBuilder_EmptyDeck(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewBuilder().Write(&buf))

	pres, err := parse(buf.Bytes())
	require.NoError(t, err)
	assert.Empty(t, pres.Slides)
}

func TestBuilder_UnknownLayout(t *testing.T) {
	_, err := NewBuilder().AddSlide("Two Content")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown layout")
}

func TestBuilder_SaveFailureLeavesNoFile(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "file")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0o644))

	// The parent of the target is a regular file.
	err := NewBuilder().Save(filepath.Join(blocker, "deck.pptx"))
	require.Error(t, err)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestParse_Errors(t *testing.T) {
	_, err := parse([]byte("plain text"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "open zip")

	path := filepath.Join(t.TempDir(), "legacy.ppt")
	fixture.WriteFile(t, path, "\xd0\xcf\x11\xe0 legacy binary")
	_, err = Open(path)
	require.Error(t, err)
}

func TestResolveTarget(t *testing.T) {
	assert.Equal(t, "ppt/slides/slide1.xml", resolveTarget("ppt/presentation.xml", "slides/slide1.xml"))
	assert.Equal(t, "ppt/slideLayouts/slideLayout2.xml", resolveTarget("ppt/slides/slide1.xml", "../slideLayouts/slideLayout2.xml"))
	assert.Equal(t, "ppt/media/image1.png", resolveTarget("ppt/slides/slide1.xml", "/ppt/media/image1.png"))
	assert.Equal(t, "ppt/slides/_rels/slide1.xml.rels", relsPath("ppt/slides/slide1.xml"))
}
