package pptx

import (
	"archive/zip"
	"bytes"
	"embed"
	"encoding/xml"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"text/template"

	"github.com/google/uuid"
)

// skeletonFS holds the static parts of a new package: theme, master and
// the two layouts. Walk from "skeleton".
//
//go:embed all:skeleton
var skeletonFS embed.FS

// layoutParts maps the writable layout names to their part numbers.
var layoutParts = map[string]int{
	LayoutTitleSlide:      1,
	LayoutTitleAndContent: 2,
}

// SlideDraft is a slide being authored. Text set on it is written on Save.
type SlideDraft struct {
	layout string
	title  string
	body   string
}

// SetTitle sets the title placeholder text.
func (s *SlideDraft) SetTitle(text string) {
	s.title = text
}

// SetBody sets the secondary placeholder text (subtitle or content body);
// each line becomes a paragraph. Both template layouts carry one, so it
// always reports true.
func (s *SlideDraft) SetBody(text string) bool {
	s.body = text
	return true
}

// Builder authors a new deck from the embedded template.
type Builder struct {
	slides []*SlideDraft
}

// NewBuilder creates an empty deck.
func NewBuilder() *Builder {
	return &Builder{}
}

// AddSlide appends a slide using the named layout.
func (b *Builder) AddSlide(layout string) (*SlideDraft, error) {
	if _, ok := layoutParts[layout]; !ok {
		return nil, fmt.Errorf("unknown layout %q", layout)
	}
	s := &SlideDraft{layout: layout}
	b.slides = append(b.slides, s)
	return s, nil
}

// Save writes the deck to path. The package is written to a temporary file
// in the same directory and renamed into place, so path either holds a
// complete deck or is left untouched.
func (b *Builder) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}

	tmp := filepath.Join(dir, fmt.Sprintf(".%s.%s.tmp", filepath.Base(path), uuid.NewString()))
	f, err := os.OpenFile(tmp, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}

	if err := b.Write(f); err != nil {
		f.Close()
		os.Remove(tmp)
		return err
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("rename into place: %w", err)
	}
	return nil
}

// Write streams the package as a zip archive to w.
func (b *Builder) Write(w io.Writer) error {
	zw := zip.NewWriter(w)

	err := fs.WalkDir(skeletonFS, "skeleton", func(p string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return err
		}
		data, err := skeletonFS.ReadFile(p)
		if err != nil {
			return fmt.Errorf("read embedded %s: %w", p, err)
		}
		return writePart(zw, strings.TrimPrefix(p, "skeleton/"), data)
	})
	if err != nil {
		return err
	}

	parts := []struct {
		name string
		tmpl *template.Template
		data any
	}{
		{"[Content_Types].xml", contentTypesTmpl, b.slides},
		{"_rels/.rels", rootRelsTmpl, nil},
		{presentationPart, presentationTmpl, b.slides},
		{relsPath(presentationPart), presentationRelsTmpl, b.slides},
	}
	for _, p := range parts {
		if err := writeTemplate(zw, p.name, p.tmpl, p.data); err != nil {
			return err
		}
	}

	for i, s := range b.slides {
		part := fmt.Sprintf("ppt/slides/slide%d.xml", i+1)
		if err := writeTemplate(zw, part, slideTmpl, slideView(s)); err != nil {
			return err
		}
		if err := writeTemplate(zw, relsPath(part), slideRelsTmpl, layoutParts[s.layout]); err != nil {
			return err
		}
	}

	if err := zw.Close(); err != nil {
		return fmt.Errorf("close zip: %w", err)
	}
	return nil
}

func writePart(zw *zip.Writer, name string, data []byte) error {
	fw, err := zw.Create(name)
	if err != nil {
		return fmt.Errorf("create %s: %w", name, err)
	}
	if _, err := fw.Write(data); err != nil {
		return fmt.Errorf("write %s: %w", name, err)
	}
	return nil
}

func writeTemplate(zw *zip.Writer, name string, tmpl *template.Template, data any) error {
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return fmt.Errorf("render %s: %w", name, err)
	}
	return writePart(zw, name, buf.Bytes())
}

type placeholderView struct {
	ID    int
	Name  string
	Ph    string // attributes of p:ph
	Lines []string
}

type slideXMLView struct {
	Shapes []placeholderView
}

func slideView(s *SlideDraft) slideXMLView {
	if s.layout == LayoutTitleSlide {
		return slideXMLView{Shapes: []placeholderView{
			{ID: 2, Name: "Title 1", Ph: `type="ctrTitle"`, Lines: splitLines(s.title)},
			{ID: 3, Name: "Text Placeholder 2", Ph: `type="subTitle" idx="1"`, Lines: splitLines(s.body)},
		}}
	}
	return slideXMLView{Shapes: []placeholderView{
		{ID: 2, Name: "Title 1", Ph: `type="title"`, Lines: splitLines(s.title)},
		{ID: 3, Name: "Content Placeholder 2", Ph: `idx="1"`, Lines: splitLines(s.body)},
	}}
}

func splitLines(text string) []string {
	if text == "" {
		return nil
	}
	return strings.Split(text, "\n")
}

func escapeXML(s string) (string, error) {
	var buf bytes.Buffer
	if err := xml.EscapeText(&buf, []byte(s)); err != nil {
		return "", err
	}
	return buf.String(), nil
}

var funcs = template.FuncMap{
	"x":        escapeXML,
	"inc":      func(i int) int { return i + 1 },
	"slideID":  func(i int) int { return 256 + i },
	"slideRel": func(i int) string { return fmt.Sprintf("rId%d", i+3) },
	"nsA":      func() string { return nsA },
	"nsR":      func() string { return nsR },
	"nsP":      func() string { return nsP },
}

func mustTemplate(name, text string) *template.Template {
	return template.Must(template.New(name).Funcs(funcs).Parse(strings.TrimSpace(text)))
}

const xmlHeader = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>` + "\n"

var contentTypesTmpl = mustTemplate("content-types", xmlHeader+`
<Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types">
<Default Extension="rels" ContentType="application/vnd.openxmlformats-package.relationships+xml"/>
<Default Extension="xml" ContentType="application/xml"/>
<Override PartName="/ppt/presentation.xml" ContentType="application/vnd.openxmlformats-officedocument.presentationml.presentation.main+xml"/>
<Override PartName="/ppt/slideMasters/slideMaster1.xml" ContentType="application/vnd.openxmlformats-officedocument.presentationml.slideMaster+xml"/>
<Override PartName="/ppt/slideLayouts/slideLayout1.xml" ContentType="application/vnd.openxmlformats-officedocument.presentationml.slideLayout+xml"/>
<Override PartName="/ppt/slideLayouts/slideLayout2.xml" ContentType="application/vnd.openxmlformats-officedocument.presentationml.slideLayout+xml"/>
<Override PartName="/ppt/theme/theme1.xml" ContentType="application/vnd.openxmlformats-officedocument.theme+xml"/>
{{range $i, $s := .}}<Override PartName="/ppt/slides/slide{{inc $i}}.xml" ContentType="application/vnd.openxmlformats-officedocument.presentationml.slide+xml"/>
{{end}}</Types>`)

var rootRelsTmpl = mustTemplate("root-rels", xmlHeader+`
<Relationships xmlns="`+nsRel+`"><Relationship Id="rId1" Type="`+relOfficeDocument+`" Target="ppt/presentation.xml"/></Relationships>`)

// Slide relationships start at rId3; rId1 is the master and rId2 the theme.
var presentationTmpl = mustTemplate("presentation", xmlHeader+`
<p:presentation xmlns:a="{{nsA}}" xmlns:r="{{nsR}}" xmlns:p="{{nsP}}" saveSubsetFonts="1">
<p:sldMasterIdLst><p:sldMasterId id="2147483648" r:id="rId1"/></p:sldMasterIdLst>
{{if .}}<p:sldIdLst>{{range $i, $s := .}}<p:sldId id="{{slideID $i}}" r:id="{{slideRel $i}}"/>{{end}}</p:sldIdLst>{{end}}
<p:sldSz cx="9144000" cy="6858000" type="screen4x3"/>
<p:notesSz cx="6858000" cy="9144000"/>
</p:presentation>`)

var presentationRelsTmpl = mustTemplate("presentation-rels", xmlHeader+`
<Relationships xmlns="`+nsRel+`">
<Relationship Id="rId1" Type="`+relSlideMaster+`" Target="slideMasters/slideMaster1.xml"/>
<Relationship Id="rId2" Type="`+relTheme+`" Target="theme/theme1.xml"/>
{{range $i, $s := .}}<Relationship Id="{{slideRel $i}}" Type="`+relSlide+`" Target="slides/slide{{inc $i}}.xml"/>
{{end}}</Relationships>`)

var slideTmpl = mustTemplate("slide", xmlHeader+`
<p:sld xmlns:a="{{nsA}}" xmlns:r="{{nsR}}" xmlns:p="{{nsP}}"><p:cSld><p:spTree>
<p:nvGrpSpPr><p:cNvPr id="1" name=""/><p:cNvGrpSpPr/><p:nvPr/></p:nvGrpSpPr>
<p:grpSpPr><a:xfrm><a:off x="0" y="0"/><a:ext cx="0" cy="0"/><a:chOff x="0" y="0"/><a:chExt cx="0" cy="0"/></a:xfrm></p:grpSpPr>
{{range .Shapes}}<p:sp><p:nvSpPr><p:cNvPr id="{{.ID}}" name="{{.Name}}"/><p:cNvSpPr><a:spLocks noGrp="1"/></p:cNvSpPr><p:nvPr><p:ph {{.Ph}}/></p:nvPr></p:nvSpPr><p:spPr/><p:txBody><a:bodyPr/><a:lstStyle/>{{if .Lines}}{{range .Lines}}<a:p><a:r><a:rPr lang="en-US" dirty="0"/><a:t>{{x .}}</a:t></a:r></a:p>{{end}}{{else}}<a:p><a:endParaRPr lang="en-US"/></a:p>{{end}}</p:txBody></p:sp>
{{end}}</p:spTree></p:cSld><p:clrMapOvr><a:masterClrMapping/></p:clrMapOvr></p:sld>`)

var slideRelsTmpl = mustTemplate("slide-rels", xmlHeader+`
<Relationships xmlns="`+nsRel+`"><Relationship Id="rId1" Type="`+relSlideLayout+`" Target="../slideLayouts/slideLayout{{.}}.xml"/></Relationships>`)
