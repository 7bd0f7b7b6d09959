package renderer

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"gopkg.in/yaml.v3"

	"github.com/conneroisu/lwcswitch/internal/types"
)

// Output formats accepted by WriteList and WriteComponents.
const (
	FormatTable = "table"
	FormatJSON  = "json"
	FormatYAML  = "yaml"
	FormatPaths = "paths"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#7C3AED"))
	mutedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#6B7280"))
)

// Terminal writes human-readable output. With Color off it emits plain
// text and no escape sequences.
type Terminal struct {
	Color bool
}

// WriteList writes a lookup result in the given format.
func (t Terminal) WriteList(w io.Writer, list *types.RankedFileList, format string) error {
	switch strings.ToLower(format) {
	case FormatJSON:
		return writeJSON(w, list)
	case FormatYAML:
		return writeYAML(w, list)
	case FormatPaths:
		return writePaths(w, list.Paths())
	case FormatTable, "":
		return t.writeTable(w, list)
	default:
		return fmt.Errorf("unsupported output format %q", format)
	}
}

// WriteComponents writes the result of a directory scan in the given format.
func (t Terminal) WriteComponents(w io.Writer, infos []*types.ComponentInfo, format string) error {
	if infos == nil {
		infos = []*types.ComponentInfo{}
	}
	switch strings.ToLower(format) {
	case FormatJSON:
		return writeJSON(w, infos)
	case FormatYAML:
		return writeYAML(w, infos)
	case FormatPaths:
		dirs := make([]string, len(infos))
		for i, info := range infos {
			dirs[i] = info.Directory
		}
		return writePaths(w, dirs)
	case FormatTable, "":
		for _, info := range infos {
			if _, err := fmt.Fprintf(w, "%s  %s\n", t.style(headerStyle, info.Name), t.style(mutedStyle, info.Directory)); err != nil {
				return err
			}
			if err := t.writeRows(w, info.Files); err != nil {
				return err
			}
		}
		_, err := fmt.Fprintf(w, "%d component(s)\n", len(infos))
		return err
	default:
		return fmt.Errorf("unsupported output format %q", format)
	}
}

func (t Terminal) writeTable(w io.Writer, list *types.RankedFileList) error {
	if list.Empty() {
		_, err := fmt.Fprintln(w, t.style(mutedStyle, MessageNoSiblings))
		return err
	}
	if _, err := fmt.Fprintln(w, t.style(headerStyle, StatusText(list))); err != nil {
		return err
	}
	return t.writeRows(w, list.Files)
}

func (t Terminal) writeRows(w io.Writer, files []types.RelatedFile) error {
	width := 0
	for _, f := range files {
		if n := len(f.Label); n > width {
			width = n
		}
	}
	for _, f := range files {
		swatch := lipgloss.NewStyle().Foreground(lipgloss.Color(f.Color))
		label := fmt.Sprintf("%-*s", width, f.Label)
		if _, err := fmt.Fprintf(w, "  %s %s  %s\n", t.style(swatch, "●"), t.style(swatch, label), f.Name); err != nil {
			return err
		}
	}
	return nil
}

func (t Terminal) style(s lipgloss.Style, text string) string {
	if !t.Color {
		return text
	}
	return s.Render(text)
}

func writeJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func writeYAML(w io.Writer, v interface{}) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return err
	}
	return enc.Close()
}

func writePaths(w io.Writer, paths []string) error {
	for _, p := range paths {
		if _, err := fmt.Fprintln(w, p); err != nil {
			return err
		}
	}
	return nil
}
