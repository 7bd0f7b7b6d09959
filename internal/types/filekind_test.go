package types

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name     string
		fileName string
		filePath string
		kind     FileKind
		label    string
		priority int
	}{
		{"template", "foo.html", "/p/lwc/foo/foo.html", KindTemplate, "Template", 10},
		{"logic", "foo.js", "/p/lwc/foo/foo.js", KindLogic, "JavaScript Controller", 20},
		{"style", "foo.css", "/p/lwc/foo/foo.css", KindStyle, "Stylesheet", 30},
		{"resource", "foo.svg", "/p/lwc/foo/foo.svg", KindResource, "SVG Resource", 40},
		{"other", "foo.txt", "/p/lwc/foo/foo.txt", KindOther, "TXT", 50},
		{"plain xml is other", "foo.xml", "/p/lwc/foo/foo.xml", KindOther, "XML", 50},
		{"no extension", "Makefile", "/p/lwc/foo/Makefile", KindOther, "File", 50},
		{"suffix test", "foo.test.js", "/p/lwc/foo/foo.test.js", KindTest, "Test", 80},
		{"configuration", "foo.js-meta.xml", "/p/lwc/foo/foo.js-meta.xml", KindConfiguration, "Configuration", 90},
		{"folder test", "foo.test.js", "/p/lwc/foo/__tests__/foo.test.js", KindTest, "Test", 100},
		{"folder overrides extension", "foo.html", "/p/lwc/foo/__tests__/foo.html", KindTest, "Test", 100},
		{"folder suffix is not the folder", "foo.js", "/p/lwc/foo/x__tests__/foo.js", KindLogic, "JavaScript Controller", 20},
		{"no path given", "foo.test.js", "", KindTest, "Test", 80},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := Classify(tt.fileName, tt.filePath)
			assert.Equal(t, tt.kind, c.Kind)
			assert.Equal(t, tt.label, c.Label)
			assert.Equal(t, tt.priority, c.Priority)
			assert.Equal(t, tt.priority, Priority(tt.fileName, tt.filePath))
		})
	}
}

func TestPriorityTiers(t *testing.T) {
	assert.Less(t, PriorityOther, PrioritySuffixTest)
	assert.Less(t, PrioritySuffixTest, PriorityConfiguration)
	assert.Less(t, PriorityConfiguration, PriorityFolderTest)
}

func TestKindAttributes(t *testing.T) {
	tests := []struct {
		kind  FileKind
		color string
		class string
	}{
		{KindTemplate, "#e44d26", "html"},
		{KindLogic, "#f0db4f", "js"},
		{KindStyle, "#264de4", "css"},
		{KindConfiguration, "#f16529", "xml"},
		{KindResource, "#ffb13b", "svg"},
		{KindTest, "#9c27b0", "test"},
		{KindOther, "#607d8b", "other"},
	}

	for _, tt := range tests {
		t.Run(tt.kind.String(), func(t *testing.T) {
			assert.Equal(t, tt.color, tt.kind.Color())
			assert.Equal(t, tt.class, tt.kind.CSSClass())
		})
	}
}

func TestFileKindText(t *testing.T) {
	for kind := range kindNames {
		text, err := kind.MarshalText()
		require.NoError(t, err)

		var decoded FileKind
		require.NoError(t, decoded.UnmarshalText(text))
		assert.Equal(t, kind, decoded)
	}

	var k FileKind
	assert.Error(t, k.UnmarshalText([]byte("binary")))
	assert.Equal(t, "unknown", FileKind(42).String())
}

func TestNewRelatedFile(t *testing.T) {
	f := NewRelatedFile("/p/lwc/foo/foo.css")

	assert.Equal(t, RelatedFile{
		Path:     "/p/lwc/foo/foo.css",
		Name:     "foo.css",
		Kind:     KindStyle,
		Label:    "Stylesheet",
		Color:    "#264de4",
		Class:    "css",
		Priority: 30,
	}, f)
}

func TestRankedFileListEncoding(t *testing.T) {
	list := &RankedFileList{
		Trigger:   "/p/lwc/foo/foo.js",
		Component: "foo",
		Directory: "/p/lwc/foo",
		Files:     []RelatedFile{NewRelatedFile("/p/lwc/foo/foo.html")},
	}

	data, err := json.Marshal(list)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"kind":"template"`)

	out, err := yaml.Marshal(list)
	require.NoError(t, err)
	assert.Contains(t, string(out), "kind: template")
}

func TestRankedFileListHelpers(t *testing.T) {
	var nilList *RankedFileList
	assert.True(t, nilList.Empty())
	assert.Equal(t, 0, nilList.Len())
	assert.Nil(t, nilList.Paths())
	assert.Equal(t, "<none>", nilList.String())

	list := &RankedFileList{Files: []RelatedFile{
		NewRelatedFile("/p/lwc/foo/foo.html"),
		NewRelatedFile("/p/lwc/foo/foo.css"),
	}}
	assert.False(t, list.Empty())
	assert.Equal(t, []string{"/p/lwc/foo/foo.html", "/p/lwc/foo/foo.css"}, list.Paths())
	assert.Equal(t, "foo.html (Template), foo.css (Stylesheet)", list.String())
}

func FuzzClassify(f *testing.F) {
	f.Add("foo.js", "/p/lwc/foo/foo.js")
	f.Add("foo.js-meta.xml", "")
	f.Add(".", "/")
	f.Add("a.b.c", "/__tests__/a.b.c")

	f.Fuzz(func(t *testing.T, fileName, filePath string) {
		c := Classify(fileName, filePath)
		if c.Label == "" {
			t.Errorf("empty label for %q", fileName)
		}
		if c.Priority < PriorityTemplate || c.Priority > PriorityFolderTest {
			t.Errorf("priority %d out of range for %q", c.Priority, fileName)
		}
	})
}
