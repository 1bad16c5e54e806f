package docx

import (
	"archive/zip"
	"encoding/xml"
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"
)

const defaultStyleName = "Normal"

type xmlStyles struct {
	Styles []struct {
		Type    string `xml:"type,attr"`
		Default string `xml:"default,attr"`
		ID      string `xml:"styleId,attr"`
		Name    struct {
			Val string `xml:"val,attr"`
		} `xml:"name"`
	} `xml:"style"`
}

// styleMap resolves paragraph style ids to display names.
type styleMap struct {
	names    map[string]string
	fallback string
}

// name returns the display name for a pStyle id. An empty id is the
// default paragraph style; an unknown id is reported as-is.
func (m styleMap) name(id string) string {
	if id == "" {
		return m.fallback
	}
	if n, ok := m.names[id]; ok {
		return n
	}
	return id
}

// loadStyles reads word/styles.xml. A package without one resolves every
// paragraph to its raw style id, or "Normal".
func loadStyles(r *zip.Reader) (styleMap, error) {
	m := styleMap{names: map[string]string{}, fallback: defaultStyleName}
	data, err := readZipFile(r, stylesPart)
	if err != nil {
		return m, nil
	}
	var x xmlStyles
	if err := xml.Unmarshal(data, &x); err != nil {
		return m, fmt.Errorf("parse %s: %w", stylesPart, err)
	}
	for _, s := range x.Styles {
		if s.ID == "" {
			continue
		}
		name := displayName(s.Name.Val)
		if name == "" {
			name = s.ID
		}
		m.names[s.ID] = name
		if s.Type == "paragraph" && isOn(s.Default) {
			m.fallback = name
		}
	}
	return m, nil
}

// displayName presents built-in names stored in lower case ("heading 1",
// "caption") the way word processors show them.
func displayName(name string) string {
	r, size := utf8.DecodeRuneInString(name)
	if r == utf8.RuneError || !unicode.IsLower(r) {
		return name
	}
	return string(unicode.ToUpper(r)) + name[size:]
}

func isOn(v string) bool {
	switch strings.ToLower(v) {
	case "1", "true", "on":
		return true
	}
	return false
}
