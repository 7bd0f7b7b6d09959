package renderer

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/html"
	"gopkg.in/yaml.v3"

	"github.com/conneroisu/lwcswitch/internal/types"
)

const componentDir = "/repo/force-app/main/default/lwc/myComponent"

func sampleList() *types.RankedFileList {
	return &types.RankedFileList{
		Trigger:   componentDir + "/myComponent.js",
		Component: "myComponent",
		Directory: componentDir,
		Files: []types.RelatedFile{
			types.NewRelatedFile(componentDir + "/myComponent.html"),
			types.NewRelatedFile(componentDir + "/myComponent.css"),
			types.NewRelatedFile(componentDir + "/myComponent.js-meta.xml"),
			types.NewRelatedFile(componentDir + "/__tests__/myComponent.test.js"),
		},
	}
}

func emptyList() *types.RankedFileList {
	return &types.RankedFileList{Trigger: "/tmp/x.js", Files: []types.RelatedFile{}}
}

func TestStatusText(t *testing.T) {
	assert.Equal(t, "LWC: myComponent (4)", StatusText(sampleList()))
	assert.Equal(t, "", StatusText(emptyList()))
	assert.Equal(t, "", StatusText(nil))
}

func TestCodeLensTitles(t *testing.T) {
	titles := CodeLensTitles(sampleList())
	assert.Equal(t, []string{
		"LWC Component Files:",
		"Template (myComponent.html)",
		"Stylesheet (myComponent.css)",
		"Configuration (myComponent.js-meta.xml)",
		"Test (myComponent.test.js)",
	}, titles)

	assert.Nil(t, CodeLensTitles(emptyList()))
}

func TestHoverMarkdown(t *testing.T) {
	tests := []struct {
		name     string
		list     *types.RankedFileList
		line     int
		text     string
		expectOK bool
	}{
		{name: "class declaration", list: sampleList(), line: 2, text: "export default class myComponent extends LightningElement {", expectOK: true},
		{name: "last eligible line", list: sampleList(), line: HoverMaxLine, text: "myComponent", expectOK: true},
		{name: "below the header", list: sampleList(), line: HoverMaxLine + 1, text: "myComponent"},
		{name: "line without name", list: sampleList(), line: 0, text: "import { LightningElement } from 'lwc';"},
		{name: "negative line", list: sampleList(), line: -1, text: "myComponent"},
		{name: "empty result", list: emptyList(), line: 0, text: "anything"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			md, ok := HoverMarkdown(tt.list, tt.line, tt.text)
			assert.Equal(t, tt.expectOK, ok)
			if !tt.expectOK {
				assert.Empty(t, md)
				return
			}
			assert.True(t, strings.HasPrefix(md, HoverHeader))
			assert.Contains(t, md, ".hover-html { border-left: 3px solid #e44d26; background-color: rgba(228, 77, 38, 0.1); }")
			assert.Contains(t, md, `- <span class="hover-file-type hover-css">Stylesheet</span> [myComponent.css](file://`+componentDir+`/myComponent.css)`)
		})
	}
}

func TestHoverMarkdownKeepsRankOrder(t *testing.T) {
	md, ok := HoverMarkdown(sampleList(), 0, "myComponent")
	require.True(t, ok)

	html := strings.Index(md, "[myComponent.html]")
	css := strings.Index(md, "[myComponent.css]")
	meta := strings.Index(md, "[myComponent.js-meta.xml]")
	test := strings.Index(md, "[myComponent.test.js]")
	assert.True(t, html < css && css < meta && meta < test)
}

func TestRGB(t *testing.T) {
	r, g, b := rgb("#9c27b0")
	assert.Equal(t, []int{156, 39, 176}, []int{r, g, b})

	r, g, b = rgb("bogus")
	assert.Equal(t, []int{0, 0, 0}, []int{r, g, b})
}

func renderPanel(t *testing.T, view PanelView) (string, *html.Node) {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, Panel(view).Render(context.Background(), &buf))
	doc, err := html.Parse(strings.NewReader(buf.String()))
	require.NoError(t, err)
	return buf.String(), doc
}

func findAll(n *html.Node, match func(*html.Node) bool) []*html.Node {
	var out []*html.Node
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && match(n) {
			out = append(out, n)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return out
}

func hasClass(class string) func(*html.Node) bool {
	return func(n *html.Node) bool {
		for _, a := range n.Attr {
			if a.Key == "class" {
				for _, c := range strings.Fields(a.Val) {
					if c == class {
						return true
					}
				}
			}
		}
		return false
	}
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

func text(n *html.Node) string {
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return b.String()
}

func TestPanelFileList(t *testing.T) {
	list := sampleList()
	_, doc := renderPanel(t, PanelView{
		List:  list,
		Dirty: map[string]bool{componentDir + "/myComponent.css": true},
	})

	titles := findAll(doc, func(n *html.Node) bool { return n.Data == "title" })
	require.Len(t, titles, 1)
	assert.Equal(t, "MyComponent - LWC File Switcher", text(titles[0]))

	names := findAll(doc, hasClass("component-name"))
	require.Len(t, names, 1)
	assert.Equal(t, "myComponent", text(names[0]))

	buttons := findAll(doc, hasClass("file-button"))
	require.Len(t, buttons, len(list.Files))
	for i, b := range buttons {
		assert.Equal(t, list.Files[i].Path, attr(b, "data-path"))
	}

	unsaved := findAll(doc, hasClass("unsaved-indicator"))
	require.Len(t, unsaved, 1)
	assert.Contains(t, text(buttons[1]), "myComponent.css")
	assert.Len(t, findAll(buttons[1], hasClass("unsaved-indicator")), 1)

	assert.Len(t, findAll(doc, hasClass("file-type-xml")), 1)
	assert.Len(t, findAll(doc, hasClass("file-type-js")), 1, "current file badge")
	assert.Empty(t, findAll(doc, func(n *html.Node) bool { return n.Data == "script" }))
}

func TestPanelMessages(t *testing.T) {
	tests := []struct {
		name    string
		view    PanelView
		message string
	}{
		{name: "no file", view: PanelView{}, message: MessageNoFile},
		{name: "not a component", view: PanelView{List: emptyList()}, message: MessageNotLWC},
		{name: "no siblings", view: PanelView{List: &types.RankedFileList{
			Trigger: componentDir + "/myComponent.js", Component: "myComponent", Files: []types.RelatedFile{},
		}}, message: MessageNoSiblings},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, doc := renderPanel(t, tt.view)
			nodes := findAll(doc, hasClass("no-files"))
			require.Len(t, nodes, 1)
			assert.Equal(t, tt.message, text(nodes[0]))
			assert.Empty(t, findAll(doc, hasClass("file-button")))
		})
	}
}

func TestPanelEscapesNames(t *testing.T) {
	list := &types.RankedFileList{
		Trigger:   "/lwc/<x>/<x>.js",
		Component: "<x>",
		Files:     []types.RelatedFile{types.NewRelatedFile("/lwc/<x>/<x>.html")},
	}
	out, doc := renderPanel(t, PanelView{List: list})

	assert.NotContains(t, out, "<x>")
	names := findAll(doc, hasClass("component-name"))
	require.Len(t, names, 1)
	assert.Equal(t, "<x>", text(names[0]))
}

func TestPanelLiveReload(t *testing.T) {
	out, doc := renderPanel(t, PanelView{List: sampleList(), LiveReload: true})

	scripts := findAll(doc, func(n *html.Node) bool { return n.Data == "script" })
	require.Len(t, scripts, 1)
	assert.Contains(t, out, "/ws?path=")
	assert.Contains(t, out, "'&"+LiveReloadParam+"=1'")
	assert.Contains(t, out, `"`+componentDir+`/myComponent.js"`)
}

func TestPanelCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var buf bytes.Buffer
	err := Panel(PanelView{List: sampleList()}).Render(ctx, &buf)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Zero(t, buf.Len())
}

func TestWriteListFormats(t *testing.T) {
	list := sampleList()
	term := Terminal{}

	t.Run("table", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, term.WriteList(&buf, list, FormatTable))
		lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
		require.Len(t, lines, 5)
		assert.Equal(t, "LWC: myComponent (4)", lines[0])
		assert.Contains(t, lines[1], "Template")
		assert.True(t, strings.HasSuffix(lines[1], "myComponent.html"))
		assert.NotContains(t, buf.String(), "\x1b[")
	})

	t.Run("empty table", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, term.WriteList(&buf, emptyList(), FormatTable))
		assert.Equal(t, MessageNoSiblings+"\n", buf.String())
	})

	t.Run("json", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, term.WriteList(&buf, list, FormatJSON))
		var decoded types.RankedFileList
		require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
		assert.Equal(t, list.Paths(), decoded.Paths())
		assert.Equal(t, types.KindConfiguration, decoded.Files[2].Kind)
	})

	t.Run("yaml", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, term.WriteList(&buf, list, FormatYAML))
		assert.Contains(t, buf.String(), "component: myComponent")
		var decoded map[string]interface{}
		require.NoError(t, yaml.Unmarshal(buf.Bytes(), &decoded))
		assert.Len(t, decoded["files"], 4)
	})

	t.Run("paths", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, term.WriteList(&buf, list, FormatPaths))
		assert.Equal(t, strings.Join(list.Paths(), "\n")+"\n", buf.String())
	})

	t.Run("unknown", func(t *testing.T) {
		var buf bytes.Buffer
		assert.Error(t, term.WriteList(&buf, list, "csv"))
	})
}

func TestWriteComponents(t *testing.T) {
	infos := []*types.ComponentInfo{
		{Name: "alpha", Directory: "/lwc/alpha", MetaFile: "/lwc/alpha/alpha.js-meta.xml", Files: []types.RelatedFile{
			types.NewRelatedFile("/lwc/alpha/alpha.js"),
			types.NewRelatedFile("/lwc/alpha/alpha.js-meta.xml"),
		}},
		{Name: "beta", Directory: "/lwc/beta", MetaFile: "/lwc/beta/beta.js-meta.xml"},
	}
	term := Terminal{}

	var table bytes.Buffer
	require.NoError(t, term.WriteComponents(&table, infos, FormatTable))
	assert.Contains(t, table.String(), "alpha  /lwc/alpha")
	assert.True(t, strings.HasSuffix(table.String(), "2 component(s)\n"))

	var paths bytes.Buffer
	require.NoError(t, term.WriteComponents(&paths, infos, FormatPaths))
	assert.Equal(t, "/lwc/alpha\n/lwc/beta\n", paths.String())

	var js bytes.Buffer
	require.NoError(t, term.WriteComponents(&js, nil, FormatJSON))
	assert.Equal(t, "[]\n", js.String())
}
