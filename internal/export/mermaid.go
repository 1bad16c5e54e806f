package export

import (
	"fmt"
	"strings"

	"github.com/dusk-indust/deckmerge/internal/outline"
)

// GenerateMermaid produces a Mermaid graph TD diagram of a document
// outline: the document title at the root, one node per section and one
// per subsection.
func GenerateMermaid(doc outline.DocumentOutline) string {
	nextID := 0
	newID := func() string {
		id := fmt.Sprintf("N%d", nextID)
		nextID++
		return id
	}

	root := doc.DocumentTitle
	if root == "" {
		root = "Document"
	}

	var sb strings.Builder
	sb.WriteString("graph TD\n")

	rootID := newID()
	sb.WriteString(fmt.Sprintf("  %s[\"%s\"]\n", rootID, label(root)))

	for _, sec := range doc.Sections {
		secID := newID()
		sb.WriteString(fmt.Sprintf("  %s[\"%s\"]\n", secID, label(sec.Title)))
		sb.WriteString(fmt.Sprintf("  %s --> %s\n", rootID, secID))
		for _, sub := range sec.Subsections {
			subID := newID()
			sb.WriteString(fmt.Sprintf("  %s(\"%s\")\n", subID, label(sub.Title)))
			sb.WriteString(fmt.Sprintf("  %s --> %s\n", secID, subID))
		}
	}

	return sb.String()
}

// label truncates to 40 runes and replaces characters that end a Mermaid
// quoted label.
func label(s string) string {
	s = strings.ReplaceAll(s, `"`, "#quot;")
	s = strings.ReplaceAll(s, "\n", " ")
	r := []rune(s)
	if len(r) > 40 {
		return string(r[:40])
	}
	return s
}
