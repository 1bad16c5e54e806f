// Package docx reads the body of WordprocessingML (.docx) packages.
//
// Only body-level paragraphs and tables are reported; paragraphs nested in
// table cells, headers, footers and text boxes are not part of the
// paragraph sequence.
package docx

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"os"
	"strings"
)

const (
	documentPart = "word/document.xml"
	stylesPart   = "word/styles.xml"
)

// Document is a parsed document body.
type Document struct {
	Paragraphs []Paragraph
	Tables     []Table
}

// Paragraph is one body paragraph.
type Paragraph struct {
	Text  string
	Style string // resolved style name, e.g. "Heading 1"
}

// Table is one body table.
type Table struct {
	Rows        [][]string
	ColumnCount int
}

// Open parses the document at path.
func Open(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read package: %w", err)
	}
	return parse(data)
}

func parse(data []byte) (*Document, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("open zip: %w", err)
	}
	return read(zr)
}

func read(r *zip.Reader) (*Document, error) {
	styles, err := loadStyles(r)
	if err != nil {
		return nil, err
	}
	data, err := readZipFile(r, documentPart)
	if err != nil {
		return nil, err
	}
	doc, err := parseBody(data, styles)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", documentPart, err)
	}
	return doc, nil
}

func readZipFile(r *zip.Reader, name string) ([]byte, error) {
	for _, f := range r.File {
		if f.Name != name {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return nil, fmt.Errorf("open %s: %w", name, err)
		}
		defer rc.Close()
		return io.ReadAll(rc)
	}
	return nil, fmt.Errorf("%s not found in archive", name)
}

// parseBody streams document.xml and keeps the direct children of w:body.
func parseBody(data []byte, styles styleMap) (*Document, error) {
	d := xml.NewDecoder(bytes.NewReader(data))

	for {
		tok, err := d.Token()
		if err == io.EOF {
			return nil, fmt.Errorf("body not found")
		}
		if err != nil {
			return nil, err
		}
		if se, ok := tok.(xml.StartElement); ok && se.Name.Local == "body" {
			break
		}
	}

	doc := &Document{}
	for {
		tok, err := d.Token()
		if err != nil {
			return nil, err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "p":
				p, err := decodeParagraph(d)
				if err != nil {
					return nil, err
				}
				doc.Paragraphs = append(doc.Paragraphs, Paragraph{
					Text:  p.text,
					Style: styles.name(p.styleID),
				})
			case "tbl":
				tbl, err := decodeTable(d)
				if err != nil {
					return nil, err
				}
				doc.Tables = append(doc.Tables, tbl)
			default:
				if err := d.Skip(); err != nil {
					return nil, err
				}
			}
		case xml.EndElement:
			if t.Name.Local == "body" {
				return doc, nil
			}
		}
	}
}

type rawParagraph struct {
	styleID string
	text    string
}

// decodeParagraph consumes a w:p element whose start tag was already read.
func decodeParagraph(d *xml.Decoder) (rawParagraph, error) {
	var (
		p      rawParagraph
		sb     strings.Builder
		inText bool
		inPPr  bool
		depth  = 1
	)
	for depth > 0 {
		tok, err := d.Token()
		if err != nil {
			return p, err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			depth++
			switch t.Name.Local {
			case "pPr":
				inPPr = true
			case "pStyle":
				if inPPr {
					p.styleID = attr(t, "val")
				}
			case "t":
				inText = true
			case "tab":
				// w:pPr/w:tabs holds tab stop definitions, not tab characters.
				if !inPPr {
					sb.WriteByte('\t')
				}
			case "br", "cr":
				sb.WriteByte('\n')
			case "delText", "instrText", "pPrChange", "rPrChange", "Fallback", "txbxContent":
				// Revision history, alternate renderings and text box bodies
				// carry no text of this paragraph.
				if err := d.Skip(); err != nil {
					return p, err
				}
				depth--
			}
		case xml.EndElement:
			depth--
			switch t.Name.Local {
			case "t":
				inText = false
			case "pPr":
				inPPr = false
			}
		case xml.CharData:
			if inText {
				sb.Write(t)
			}
		}
	}
	p.text = sb.String()
	return p, nil
}

// decodeTable consumes a w:tbl element whose start tag was already read.
// Cell text is the cell's paragraphs joined with "\n" and trimmed.
func decodeTable(d *xml.Decoder) (Table, error) {
	var (
		tbl      Table
		gridCols int
		row      []string
		cell     []string
		inCell   bool
		depth    = 1
	)
	for depth > 0 {
		tok, err := d.Token()
		if err != nil {
			return tbl, err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "tbl":
				// Nested tables belong to the enclosing cell.
				if err := d.Skip(); err != nil {
					return tbl, err
				}
				continue
			case "gridCol":
				if depth == 2 {
					gridCols++
				}
			case "tr":
				row = []string{}
			case "tc":
				inCell = true
				cell = nil
			case "p":
				if inCell {
					p, err := decodeParagraph(d)
					if err != nil {
						return tbl, err
					}
					cell = append(cell, p.text)
					continue
				}
			}
			depth++
		case xml.EndElement:
			depth--
			switch t.Name.Local {
			case "tc":
				row = append(row, strings.TrimSpace(strings.Join(cell, "\n")))
				inCell = false
			case "tr":
				tbl.Rows = append(tbl.Rows, row)
			}
		}
	}

	tbl.ColumnCount = gridCols
	if tbl.ColumnCount == 0 {
		for _, r := range tbl.Rows {
			if len(r) > tbl.ColumnCount {
				tbl.ColumnCount = len(r)
			}
		}
	}
	return tbl, nil
}

func attr(se xml.StartElement, local string) string {
	for _, a := range se.Attr {
		if a.Name.Local == local {
			return a.Value
		}
	}
	return ""
}
