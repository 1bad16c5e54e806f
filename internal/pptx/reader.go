package pptx

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"os"
	"strings"
)

const presentationPart = "ppt/presentation.xml"

type xmlPresentation struct {
	SlideIDs []struct {
		RelID string `xml:"http://schemas.openxmlformats.org/officeDocument/2006/relationships id,attr"`
	} `xml:"sldIdLst>sldId"`
}

type xmlLayout struct {
	CSld struct {
		Name string `xml:"name,attr"`
	} `xml:"cSld"`
}

type xmlNonVisual struct {
	CNvPr struct {
		ID   int    `xml:"id,attr"`
		Name string `xml:"name,attr"`
	} `xml:"cNvPr"`
	NvPr struct {
		Placeholder *struct{} `xml:"ph"`
	} `xml:"nvPr"`
}

type xmlTransform struct {
	Ext *struct {
		Cx int64 `xml:"cx,attr"`
		Cy int64 `xml:"cy,attr"`
	} `xml:"ext"`
}

func (t *xmlTransform) size() (int64, int64) {
	if t == nil || t.Ext == nil {
		return 0, 0
	}
	return t.Ext.Cx, t.Ext.Cy
}

type xmlShapeProps struct {
	Xfrm *xmlTransform `xml:"xfrm"`
}

// xmlTextParagraph collects the visible text of an a:p element.
type xmlTextParagraph struct {
	Text string
}

func (p *xmlTextParagraph) UnmarshalXML(d *xml.Decoder, start xml.StartElement) error {
	var sb strings.Builder
	inText := false
	depth := 1
	for depth > 0 {
		tok, err := d.Token()
		if err != nil {
			return err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			depth++
			switch t.Name.Local {
			case "t":
				inText = true
			case "br":
				sb.WriteByte('\n')
			}
		case xml.EndElement:
			depth--
			if t.Name.Local == "t" {
				inText = false
			}
		case xml.CharData:
			if inText {
				sb.Write(t)
			}
		}
	}
	p.Text = sb.String()
	return nil
}

type xmlTextBody struct {
	Paragraphs []xmlTextParagraph `xml:"p"`
}

func (b *xmlTextBody) text() string {
	if b == nil {
		return ""
	}
	lines := make([]string, len(b.Paragraphs))
	for i, p := range b.Paragraphs {
		lines[i] = p.Text
	}
	return strings.Join(lines, "\n")
}

type xmlAutoShape struct {
	NvSpPr xmlNonVisual  `xml:"nvSpPr"`
	SpPr   xmlShapeProps `xml:"spPr"`
	TxBody *xmlTextBody  `xml:"txBody"`
}

type xmlPicture struct {
	NvPicPr xmlNonVisual  `xml:"nvPicPr"`
	SpPr    xmlShapeProps `xml:"spPr"`
}

type xmlConnector struct {
	NvCxnSpPr xmlNonVisual  `xml:"nvCxnSpPr"`
	SpPr      xmlShapeProps `xml:"spPr"`
}

type xmlGroup struct {
	NvGrpSpPr xmlNonVisual `xml:"nvGrpSpPr"`
	GrpSpPr   struct {
		Xfrm *xmlTransform `xml:"xfrm"`
	} `xml:"grpSpPr"`
}

type xmlGraphicFrame struct {
	NvGraphicFramePr xmlNonVisual  `xml:"nvGraphicFramePr"`
	Xfrm             *xmlTransform `xml:"xfrm"`
	Table            *struct {
		Rows []struct {
			Cells []struct {
				TxBody *xmlTextBody `xml:"txBody"`
			} `xml:"tc"`
		} `xml:"tr"`
	} `xml:"graphic>graphicData>tbl"`
}

// Open parses the deck at path.
func Open(path string) (*Presentation, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read package: %w", err)
	}
	return parse(data)
}

func parse(data []byte) (*Presentation, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("open zip: %w", err)
	}
	return read(zr)
}

func read(r *zip.Reader) (*Presentation, error) {
	data, err := readZipFile(r, presentationPart)
	if err != nil {
		return nil, err
	}
	var pres xmlPresentation
	if err := xml.Unmarshal(data, &pres); err != nil {
		return nil, fmt.Errorf("parse %s: %w", presentationPart, err)
	}
	rels, err := readRels(r, presentationPart)
	if err != nil {
		return nil, err
	}

	layoutNames := make(map[string]string)
	out := &Presentation{}
	for _, id := range pres.SlideIDs {
		rel, ok := rels[id.RelID]
		if !ok || rel.Type != relSlide {
			return nil, fmt.Errorf("slide relationship %q not found", id.RelID)
		}
		slide, err := readSlide(r, rel.Target, layoutNames)
		if err != nil {
			return nil, err
		}
		out.Slides = append(out.Slides, *slide)
	}
	return out, nil
}

func readSlide(r *zip.Reader, part string, layoutNames map[string]string) (*Slide, error) {
	data, err := readZipFile(r, part)
	if err != nil {
		return nil, err
	}
	shapes, err := parseShapeTree(data)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", part, err)
	}

	slide := &Slide{Path: part, Shapes: shapes}

	rels, err := readRels(r, part)
	if err != nil {
		return nil, err
	}
	for _, rel := range rels {
		if rel.Type != relSlideLayout {
			continue
		}
		name, ok := layoutNames[rel.Target]
		if !ok {
			name = readLayoutName(r, rel.Target)
			layoutNames[rel.Target] = name
		}
		slide.LayoutName = name
		break
	}
	return slide, nil
}

// readLayoutName returns the layout's cSld name, or "" when unreadable.
func readLayoutName(r *zip.Reader, part string) string {
	data, err := readZipFile(r, part)
	if err != nil {
		return ""
	}
	var layout xmlLayout
	if err := xml.Unmarshal(data, &layout); err != nil {
		return ""
	}
	return layout.CSld.Name
}

// parseShapeTree decodes the direct children of the first p:spTree.
func parseShapeTree(data []byte) ([]Shape, error) {
	d := xml.NewDecoder(bytes.NewReader(data))

	for {
		tok, err := d.Token()
		if err == io.EOF {
			return nil, fmt.Errorf("shape tree not found")
		}
		if err != nil {
			return nil, err
		}
		if se, ok := tok.(xml.StartElement); ok && se.Name.Local == "spTree" {
			break
		}
	}

	var shapes []Shape
	for {
		tok, err := d.Token()
		if err != nil {
			return nil, err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			shape, ok, err := decodeShape(d, t)
			if err != nil {
				return nil, err
			}
			if ok {
				shapes = append(shapes, shape)
			}
		case xml.EndElement:
			if t.Name.Local == "spTree" {
				return shapes, nil
			}
		}
	}
}

func decodeShape(d *xml.Decoder, start xml.StartElement) (Shape, bool, error) {
	switch start.Name.Local {
	case "sp":
		var x xmlAutoShape
		if err := d.DecodeElement(&x, &start); err != nil {
			return Shape{}, false, err
		}
		kind := ShapeAuto
		if x.NvSpPr.NvPr.Placeholder != nil {
			kind = ShapePlaceholder
		}
		w, h := x.SpPr.Xfrm.size()
		return Shape{
			ID:     x.NvSpPr.CNvPr.ID,
			Name:   x.NvSpPr.CNvPr.Name,
			Kind:   kind,
			Text:   x.TxBody.text(),
			Width:  w,
			Height: h,
		}, true, nil

	case "pic":
		var x xmlPicture
		if err := d.DecodeElement(&x, &start); err != nil {
			return Shape{}, false, err
		}
		w, h := x.SpPr.Xfrm.size()
		return Shape{
			ID:     x.NvPicPr.CNvPr.ID,
			Name:   x.NvPicPr.CNvPr.Name,
			Kind:   ShapePicture,
			Width:  w,
			Height: h,
		}, true, nil

	case "graphicFrame":
		var x xmlGraphicFrame
		if err := d.DecodeElement(&x, &start); err != nil {
			return Shape{}, false, err
		}
		w, h := x.Xfrm.size()
		shape := Shape{
			ID:     x.NvGraphicFramePr.CNvPr.ID,
			Name:   x.NvGraphicFramePr.CNvPr.Name,
			Kind:   ShapeGraphicFrame,
			Width:  w,
			Height: h,
		}
		if x.Table != nil {
			shape.Kind = ShapeTable
			shape.Table = make([][]string, 0, len(x.Table.Rows))
			for _, row := range x.Table.Rows {
				cells := make([]string, 0, len(row.Cells))
				for _, cell := range row.Cells {
					cells = append(cells, strings.TrimSpace(cell.TxBody.text()))
				}
				shape.Table = append(shape.Table, cells)
			}
		}
		return shape, true, nil

	case "grpSp":
		var x xmlGroup
		if err := d.DecodeElement(&x, &start); err != nil {
			return Shape{}, false, err
		}
		w, h := x.GrpSpPr.Xfrm.size()
		return Shape{
			ID:     x.NvGrpSpPr.CNvPr.ID,
			Name:   x.NvGrpSpPr.CNvPr.Name,
			Kind:   ShapeGroup,
			Width:  w,
			Height: h,
		}, true, nil

	case "cxnSp":
		var x xmlConnector
		if err := d.DecodeElement(&x, &start); err != nil {
			return Shape{}, false, err
		}
		w, h := x.SpPr.Xfrm.size()
		return Shape{
			ID:     x.NvCxnSpPr.CNvPr.ID,
			Name:   x.NvCxnSpPr.CNvPr.Name,
			Kind:   ShapeConnector,
			Width:  w,
			Height: h,
		}, true, nil

	default:
		// nvGrpSpPr, grpSpPr, extLst, mc:AlternateContent
		return Shape{}, false, d.Skip()
	}
}
