// Package fixture writes small .pptx and .docx packages for tests.
package fixture

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"fmt"
	"os"
	"strings"
	"testing"
)

const xmlHeader = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>` + "\n"

func esc(s string) string {
	var buf bytes.Buffer
	xml.EscapeText(&buf, []byte(s))
	return buf.String()
}

// writeZip writes parts in the given order to path.
func writeZip(tb testing.TB, path string, names []string, parts map[string]string) {
	tb.Helper()
	f, err := os.Create(path)
	if err != nil {
		tb.Fatalf("create %s: %v", path, err)
	}
	w := zip.NewWriter(f)
	for _, name := range names {
		fw, err := w.Create(name)
		if err != nil {
			tb.Fatalf("zip create %s: %v", name, err)
		}
		if _, err := fw.Write([]byte(parts[name])); err != nil {
			tb.Fatalf("zip write %s: %v", name, err)
		}
	}
	if err := w.Close(); err != nil {
		tb.Fatalf("zip close: %v", err)
	}
	if err := f.Close(); err != nil {
		tb.Fatalf("close %s: %v", path, err)
	}
}

// WriteFile writes raw bytes, for inputs that must fail to parse.
func WriteFile(tb testing.TB, path string, data string) {
	tb.Helper()
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		tb.Fatalf("write %s: %v", path, err)
	}
}

// --- Deck ---

// ShapeKind selects the XML element written for a Shape.
type ShapeKind int

const (
	TextBox ShapeKind = iota
	Placeholder
	Picture
	Table
	Group
	Connector
)

// Shape is a top-level shape of a fixture slide.
type Shape struct {
	Kind   ShapeKind
	Name   string
	Text   string // lines separated by "\n"
	Rows   [][]string
	Width  int64
	Height int64
}

// Slide is a fixture slide. An empty Layout writes a layout without a name.
type Slide struct {
	Layout string
	Shapes []Shape
}

// TitleShape returns a title placeholder.
func TitleShape(text string) Shape {
	return Shape{Kind: Placeholder, Name: "Title 1", Text: text}
}

// BodyShape returns a body placeholder.
func BodyShape(text string) Shape {
	return Shape{Kind: Placeholder, Name: "Content Placeholder 2", Text: text}
}

// WriteDeck writes a deck with one slide layout per slide.
func WriteDeck(tb testing.TB, path string, slides ...Slide) {
	tb.Helper()

	const (
		nsDecl = `xmlns:a="http://schemas.openxmlformats.org/drawingml/2006/main" ` +
			`xmlns:r="http://schemas.openxmlformats.org/officeDocument/2006/relationships" ` +
			`xmlns:p="http://schemas.openxmlformats.org/presentationml/2006/main"`
		relNS     = "http://schemas.openxmlformats.org/package/2006/relationships"
		relSlide  = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/slide"
		relLayout = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/slideLayout"
	)

	parts := make(map[string]string)
	var names []string
	add := func(name, body string) {
		names = append(names, name)
		parts[name] = xmlHeader + body
	}

	var ids, rels strings.Builder
	for i := range slides {
		fmt.Fprintf(&ids, `<p:sldId id="%d" r:id="rId%d"/>`, 256+i, i+10)
		fmt.Fprintf(&rels, `<Relationship Id="rId%d" Type="%s" Target="slides/slide%d.xml"/>`, i+10, relSlide, i+1)
	}
	add("ppt/presentation.xml", fmt.Sprintf(`<p:presentation %s><p:sldIdLst>%s</p:sldIdLst></p:presentation>`, nsDecl, ids.String()))
	add("ppt/_rels/presentation.xml.rels", fmt.Sprintf(`<Relationships xmlns="%s">%s</Relationships>`, relNS, rels.String()))

	for i, s := range slides {
		n := i + 1
		var tree strings.Builder
		for j, sh := range s.Shapes {
			tree.WriteString(shapeXML(j+2, sh))
		}
		add(fmt.Sprintf("ppt/slides/slide%d.xml", n), fmt.Sprintf(
			`<p:sld %s><p:cSld><p:spTree><p:nvGrpSpPr><p:cNvPr id="1" name=""/><p:cNvGrpSpPr/><p:nvPr/></p:nvGrpSpPr><p:grpSpPr/>%s</p:spTree></p:cSld></p:sld>`,
			nsDecl, tree.String()))
		add(fmt.Sprintf("ppt/slides/_rels/slide%d.xml.rels", n), fmt.Sprintf(
			`<Relationships xmlns="%s"><Relationship Id="rId1" Type="%s" Target="../slideLayouts/slideLayout%d.xml"/></Relationships>`,
			relNS, relLayout, n))

		cSld := "<p:cSld>"
		if s.Layout != "" {
			cSld = fmt.Sprintf(`<p:cSld name="%s">`, esc(s.Layout))
		}
		add(fmt.Sprintf("ppt/slideLayouts/slideLayout%d.xml", n), fmt.Sprintf(
			`<p:sldLayout %s>%s<p:spTree/></p:cSld></p:sldLayout>`, nsDecl, cSld))
	}

	writeZip(tb, path, names, parts)
}

func txBody(tag, text string) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "<%s><a:bodyPr/>", tag)
	for _, line := range strings.Split(text, "\n") {
		if line == "" {
			sb.WriteString(`<a:p/>`)
			continue
		}
		fmt.Fprintf(&sb, `<a:p><a:r><a:rPr lang="en-US"/><a:t>%s</a:t></a:r></a:p>`, esc(line))
	}
	fmt.Fprintf(&sb, "</%s>", tag)
	return sb.String()
}

func xfrm(tag string, w, h int64) string {
	return fmt.Sprintf(`<%s><a:off x="0" y="0"/><a:ext cx="%d" cy="%d"/></%s>`, tag, w, h, tag)
}

func shapeXML(id int, sh Shape) string {
	cNvPr := fmt.Sprintf(`<p:cNvPr id="%d" name="%s"/>`, id, esc(sh.Name))
	switch sh.Kind {
	case Placeholder:
		return fmt.Sprintf(`<p:sp><p:nvSpPr>%s<p:cNvSpPr/><p:nvPr><p:ph/></p:nvPr></p:nvSpPr><p:spPr>%s</p:spPr>%s</p:sp>`,
			cNvPr, xfrm("a:xfrm", sh.Width, sh.Height), txBody("p:txBody", sh.Text))
	case Picture:
		return fmt.Sprintf(`<p:pic><p:nvPicPr>%s<p:cNvPicPr/><p:nvPr/></p:nvPicPr><p:blipFill/><p:spPr>%s</p:spPr></p:pic>`,
			cNvPr, xfrm("a:xfrm", sh.Width, sh.Height))
	case Table:
		var rows strings.Builder
		for _, row := range sh.Rows {
			rows.WriteString("<a:tr>")
			for _, cell := range row {
				rows.WriteString("<a:tc>" + txBody("a:txBody", cell) + "</a:tc>")
			}
			rows.WriteString("</a:tr>")
		}
		return fmt.Sprintf(`<p:graphicFrame><p:nvGraphicFramePr>%s<p:cNvGraphicFramePr/><p:nvPr/></p:nvGraphicFramePr>%s<a:graphic><a:graphicData uri="http://schemas.openxmlformats.org/drawingml/2006/table"><a:tbl>%s</a:tbl></a:graphicData></a:graphic></p:graphicFrame>`,
			cNvPr, xfrm("p:xfrm", sh.Width, sh.Height), rows.String())
	case Group:
		return fmt.Sprintf(`<p:grpSp><p:nvGrpSpPr>%s<p:cNvGrpSpPr/><p:nvPr/></p:nvGrpSpPr><p:grpSpPr/><p:sp><p:nvSpPr><p:cNvPr id="%d" name="Inner"/><p:cNvSpPr/><p:nvPr/></p:nvSpPr><p:spPr/>%s</p:sp></p:grpSp>`,
			cNvPr, id+100, txBody("p:txBody", sh.Text))
	case Connector:
		return fmt.Sprintf(`<p:cxnSp><p:nvCxnSpPr>%s<p:cNvCxnSpPr/><p:nvPr/></p:nvCxnSpPr><p:spPr/></p:cxnSp>`, cNvPr)
	default:
		return fmt.Sprintf(`<p:sp><p:nvSpPr>%s<p:cNvSpPr txBox="1"/><p:nvPr/></p:nvSpPr><p:spPr>%s</p:spPr>%s</p:sp>`,
			cNvPr, xfrm("a:xfrm", sh.Width, sh.Height), txBody("p:txBody", sh.Text))
	}
}

// --- Document ---

// Block is a body-level paragraph or table of a fixture document.
type Block struct {
	Style string // paragraph style id; empty for the default style
	Text  string // lines separated by "\n" become w:br breaks
	Rows  [][]string
	table bool
}

// P returns a paragraph block.
func P(style, text string) Block {
	return Block{Style: style, Text: text}
}

// T returns a table block.
func T(rows ...[]string) Block {
	return Block{Rows: rows, table: true}
}

// DefaultStyles is the styles.xml written by WriteDocument: id -> name,
// with "Normal" as the default paragraph style.
var DefaultStyles = map[string]string{
	"Normal":        "Normal",
	"Title":         "Title",
	"Heading1":      "heading 1",
	"Heading2":      "heading 2",
	"Heading3":      "heading 3",
	"ListParagraph": "List Paragraph",
	"MyHeading":     "Custom Heading",
}

// WriteDocument writes a document with word/styles.xml and the given body.
func WriteDocument(tb testing.TB, path string, blocks ...Block) {
	tb.Helper()

	const nsW = `xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"`

	var styles strings.Builder
	for id, name := range DefaultStyles {
		def := ""
		if id == "Normal" {
			def = ` w:default="1"`
		}
		fmt.Fprintf(&styles, `<w:style w:type="paragraph"%s w:styleId="%s"><w:name w:val="%s"/></w:style>`, def, id, esc(name))
	}

	var body strings.Builder
	for _, b := range blocks {
		if b.table {
			body.WriteString(tableXML(b.Rows))
			continue
		}
		body.WriteString(paragraphXML(b.Style, b.Text))
	}

	parts := map[string]string{
		"word/document.xml": xmlHeader + fmt.Sprintf(`<w:document %s><w:body>%s<w:sectPr/></w:body></w:document>`, nsW, body.String()),
		"word/styles.xml":   xmlHeader + fmt.Sprintf(`<w:styles %s>%s</w:styles>`, nsW, styles.String()),
	}
	writeZip(tb, path, []string{"word/document.xml", "word/styles.xml"}, parts)
}

func paragraphXML(style, text string) string {
	var sb strings.Builder
	sb.WriteString("<w:p>")
	if style != "" {
		fmt.Fprintf(&sb, `<w:pPr><w:pStyle w:val="%s"/></w:pPr>`, esc(style))
	}
	for i, line := range strings.Split(text, "\n") {
		if i > 0 {
			sb.WriteString("<w:r><w:br/></w:r>")
		}
		if line != "" {
			fmt.Fprintf(&sb, `<w:r><w:t xml:space="preserve">%s</w:t></w:r>`, esc(line))
		}
	}
	sb.WriteString("</w:p>")
	return sb.String()
}

func tableXML(rows [][]string) string {
	cols := 0
	for _, row := range rows {
		if len(row) > cols {
			cols = len(row)
		}
	}
	var sb strings.Builder
	sb.WriteString("<w:tbl><w:tblPr/><w:tblGrid>")
	for i := 0; i < cols; i++ {
		sb.WriteString(`<w:gridCol w:w="2000"/>`)
	}
	sb.WriteString("</w:tblGrid>")
	for _, row := range rows {
		sb.WriteString("<w:tr>")
		for _, cell := range row {
			sb.WriteString("<w:tc>" + paragraphXML("", cell) + "</w:tc>")
		}
		sb.WriteString("</w:tr>")
	}
	sb.WriteString("</w:tbl>")
	return sb.String()
}
