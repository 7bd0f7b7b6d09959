package renderer

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/a-h/templ"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/conneroisu/lwcswitch/internal/types"
)

// Panel messages shown instead of a file list.
const (
	MessageNoFile      = "Select an LWC component file"
	MessageNotLWC      = "Not an LWC component file"
	MessageNoSiblings  = "No other component files found"
	panelTitle         = "LWC File Switcher"
	unsavedIndicator   = "●"
	liveReloadEndpoint = "/ws"
)

// LiveReloadParam marks a WebSocket subscription from the panel page
// itself. The page already shows the current result, so such a socket
// only receives updates caused by later changes.
const LiveReloadParam = "live"

// PanelView is everything the side panel needs to draw itself.
type PanelView struct {
	// List is the lookup result; nil means no file is open.
	List *types.RankedFileList
	// Dirty holds the paths that have unsaved changes.
	Dirty map[string]bool
	// LiveReload adds a script that reloads the page when the server
	// pushes a new result.
	LiveReload bool
}

// Message returns the placeholder text for a view without files, or "".
func (v PanelView) Message() string {
	switch {
	case v.List == nil || v.List.Trigger == "":
		return MessageNoFile
	case v.List.Component == "":
		return MessageNotLWC
	case v.List.Empty():
		return MessageNoSiblings
	default:
		return ""
	}
}

// Title returns the document title for the view.
func (v PanelView) Title() string {
	if v.List == nil || v.List.Component == "" {
		return panelTitle
	}
	return cases.Title(language.Und, cases.NoLower).String(v.List.Component) + " - " + panelTitle
}

// Panel renders the side panel page.
func Panel(view PanelView) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if err := ctx.Err(); err != nil {
			return err
		}

		p := &htmlWriter{w: w}
		p.printf("<!DOCTYPE html>\n<html lang=\"en\">\n<head>\n")
		p.printf("<meta charset=\"UTF-8\">\n")
		p.printf("<meta name=\"viewport\" content=\"width=device-width, initial-scale=1.0\">\n")
		p.printf("<title>%s</title>\n", templ.EscapeString(view.Title()))
		p.printf("<style>\n%s</style>\n", panelStyles())
		p.printf("</head>\n<body>\n")

		if msg := view.Message(); msg != "" {
			p.printf("<div class=\"component-header\">%s</div>\n", panelTitle)
			p.printf("<div class=\"no-files\">%s</div>\n", templ.EscapeString(msg))
		} else {
			writeFileList(p, view)
		}

		if view.LiveReload {
			p.printf("<script>\n%s</script>\n", liveReloadScript(view.List))
		}
		p.printf("</body>\n</html>\n")
		return p.err
	})
}

func writeFileList(p *htmlWriter, view PanelView) {
	list := view.List
	current := types.NewRelatedFile(list.Trigger)

	p.printf("<div class=\"component-header\">Component: <span class=\"component-name\">%s</span></div>\n",
		templ.EscapeString(list.Component))
	p.printf("<div class=\"current-file\">\n<span class=\"current-file-label\">Current:</span> %s%s\n",
		templ.EscapeString(current.Name), unsavedMarker(view.Dirty[list.Trigger]))
	writeKindBadge(p, current)
	p.printf("</div>\n<div class=\"file-list\">\n")

	for _, f := range list.Files {
		p.printf("<a class=\"file-button\" data-path=\"%s\" href=\"%s\">\n",
			templ.EscapeString(f.Path), templ.EscapeString(fileURL(f.Path)))
		p.printf("<span class=\"file-name\">%s%s</span>\n",
			templ.EscapeString(f.Name), unsavedMarker(view.Dirty[f.Path]))
		writeKindBadge(p, f)
		p.printf("</a>\n")
	}
	p.printf("</div>\n")
}

func writeKindBadge(p *htmlWriter, f types.RelatedFile) {
	p.printf("<span class=\"file-type file-type-%s\"><span class=\"file-type-indicator\"></span><span>%s</span></span>\n",
		f.Class, templ.EscapeString(f.Label))
}

func unsavedMarker(dirty bool) string {
	if !dirty {
		return ""
	}
	return " <span class=\"unsaved-indicator\">" + unsavedIndicator + "</span>"
}

func panelStyles() string {
	var b strings.Builder
	b.WriteString("body { font-family: var(--vscode-font-family, sans-serif); padding: 0 8px; }\n")
	b.WriteString(".component-header { font-weight: bold; margin: 8px 0; }\n")
	b.WriteString(".current-file { display: flex; gap: 4px; align-items: center; margin-bottom: 8px; }\n")
	b.WriteString(".file-list { display: flex; flex-direction: column; gap: 2px; }\n")
	b.WriteString(".file-button { display: flex; justify-content: space-between; padding: 4px 6px; text-decoration: none; color: inherit; }\n")
	b.WriteString(".file-type-indicator { display: inline-block; width: 8px; height: 8px; border-radius: 50%; margin-right: 4px; }\n")
	b.WriteString(".unsaved-indicator { color: #e2c08d; }\n")
	b.WriteString(".no-files { font-style: italic; opacity: 0.8; }\n")
	for _, k := range types.AllKinds() {
		fmt.Fprintf(&b, ".file-type-%s .file-type-indicator { background-color: %s; }\n", k.CSSClass(), k.Color())
	}
	return b.String()
}

func liveReloadScript(list *types.RankedFileList) string {
	watched := ""
	if list != nil {
		watched = list.Trigger
	}
	quoted, _ := json.Marshal(watched)
	return fmt.Sprintf(`const ws = new WebSocket((location.protocol === 'https:' ? 'wss://' : 'ws://') + location.host + '%s?path=' + encodeURIComponent(%s) + '&%s=1');
ws.onmessage = function(event) {
    const message = JSON.parse(event.data);
    if (message.type === 'related') {
        window.location.reload();
    }
};
`, liveReloadEndpoint, quoted, LiveReloadParam)
}

// htmlWriter remembers the first write error so rendering code can stay
// linear.
type htmlWriter struct {
	w   io.Writer
	err error
}

func (p *htmlWriter) printf(format string, args ...interface{}) {
	if p.err != nil {
		return
	}
	_, p.err = fmt.Fprintf(p.w, format, args...)
}
