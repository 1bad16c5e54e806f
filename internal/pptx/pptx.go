// Package pptx reads and writes PresentationML (.pptx) packages.
//
// Reading walks ppt/presentation.xml in slide-list order and decodes the
// direct children of each slide's shape tree into Shape values. Writing
// produces a minimal package with a "Title Slide" and a "Title and Content"
// layout, enough to hold titled text slides.
package pptx

// ShapeKind tags the variant of a slide shape.
type ShapeKind int

const (
	ShapeAuto ShapeKind = iota
	ShapePlaceholder
	ShapePicture
	ShapeTable
	ShapeGraphicFrame
	ShapeGroup
	ShapeConnector
)

// Presentation is a parsed deck.
type Presentation struct {
	Slides []Slide
}

// Slide is one slide with its top-level shapes in document order.
type Slide struct {
	Path       string // part name inside the package
	LayoutName string // empty when the layout has no name
	Shapes     []Shape
}

// Shape is one top-level element of a slide's shape tree.
type Shape struct {
	ID     int
	Name   string
	Kind   ShapeKind
	Text   string     // paragraphs joined with "\n"; set for text-bearing kinds
	Table  [][]string // cell text grid; set for ShapeTable
	Width  int64      // EMU
	Height int64      // EMU
}

// HasTextFrame reports whether the shape kind can carry text.
func (s Shape) HasTextFrame() bool {
	return s.Kind == ShapeAuto || s.Kind == ShapePlaceholder
}

// HasTable reports whether the shape holds a table grid.
func (s Shape) HasTable() bool {
	return s.Kind == ShapeTable
}

// Layout names of the authoring template.
const (
	LayoutTitleSlide      = "Title Slide"
	LayoutTitleAndContent = "Title and Content"
)
