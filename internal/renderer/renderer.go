// Package renderer turns a ranked lookup result into the text and HTML
// shown by each host surface: the status line, code lens titles, hover
// markdown, the side panel and the terminal table.
//
// Every function here is pure. Callers run the lookup, decide whether the
// surface is enabled and hand the result over for rendering.
package renderer

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/conneroisu/lwcswitch/internal/types"
)

const (
	// StatusPrefix starts every status bar text.
	StatusPrefix = "LWC: "
	// LensHeader is the title of the first code lens.
	LensHeader = "LWC Component Files:"
	// HoverHeader opens the hover markdown.
	HoverHeader = "### LWC Component Files"
	// HoverMaxLine is the last zero-based line that can show a hover.
	HoverMaxLine = 10
)

// StatusText returns "LWC: <component> (<count>)", or "" when there is
// nothing to show.
func StatusText(list *types.RankedFileList) string {
	if list.Empty() {
		return ""
	}
	return fmt.Sprintf("%s%s (%d)", StatusPrefix, list.Component, list.Len())
}

// CodeLensTitles returns the header lens followed by one "<Label> (<name>)"
// title per related file. It returns nil for an empty result.
func CodeLensTitles(list *types.RankedFileList) []string {
	if list.Empty() {
		return nil
	}
	titles := make([]string, 0, list.Len()+1)
	titles = append(titles, LensHeader)
	for _, f := range list.Files {
		titles = append(titles, fmt.Sprintf("%s (%s)", f.Label, f.Name))
	}
	return titles
}

// HoverMarkdown renders the hover card for a cursor on line (zero-based)
// whose text is lineText. The card only appears near the top of the file
// and only when the line mentions the component.
func HoverMarkdown(list *types.RankedFileList, line int, lineText string) (string, bool) {
	if list.Empty() || line < 0 || line > HoverMaxLine {
		return "", false
	}
	if !strings.Contains(lineText, list.Component) {
		return "", false
	}

	var b strings.Builder
	b.WriteString(HoverHeader)
	b.WriteString("\n\n")
	b.WriteString(hoverStyles())
	b.WriteString("\n\n")
	for _, f := range list.Files {
		fmt.Fprintf(&b, "- <span class=\"hover-file-type hover-%s\">%s</span> [%s](%s)\n",
			f.Class, f.Label, f.Name, fileURL(f.Path))
	}
	return b.String(), true
}

func hoverStyles() string {
	var b strings.Builder
	b.WriteString("<style>\n")
	b.WriteString(".hover-file-type { display: inline-block; margin-right: 5px; padding: 2px 5px; border-radius: 3px; font-weight: bold; font-size: 90%; }\n")
	for _, k := range types.AllKinds() {
		r, g, bl := rgb(k.Color())
		fmt.Fprintf(&b, ".hover-%s { border-left: 3px solid %s; background-color: rgba(%d, %d, %d, 0.1); }\n",
			k.CSSClass(), k.Color(), r, g, bl)
	}
	b.WriteString("</style>")
	return b.String()
}

// rgb splits a "#rrggbb" color into its components.
func rgb(hex string) (int, int, int) {
	var r, g, b int
	if _, err := fmt.Sscanf(hex, "#%02x%02x%02x", &r, &g, &b); err != nil {
		return 0, 0, 0
	}
	return r, g, b
}

func fileURL(path string) string {
	return (&url.URL{Scheme: "file", Path: path}).String()
}
