package types

import (
	"fmt"
	"path/filepath"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Conventional names inside a component folder.
const (
	// TestsDirName is the nested test-fixtures folder of a component.
	TestsDirName = "__tests__"
	// MetaSuffix is the compound suffix of a component's metadata file.
	MetaSuffix = ".js-meta.xml"
	// TestSuffix marks a logic file as a test by naming convention.
	TestSuffix = ".test.js"
)

// FileKind is the semantic kind of a component file.
type FileKind int

const (
	KindOther FileKind = iota
	KindTemplate
	KindLogic
	KindStyle
	KindConfiguration
	KindResource
	KindTest
)

// Sort priorities. Lower values sort first. Tests found by the .test.js
// naming convention sort before the metadata file; tests living in the
// __tests__ folder sort after everything.
const (
	PriorityTemplate      = 10
	PriorityLogic         = 20
	PriorityStyle         = 30
	PriorityResource      = 40
	PriorityOther         = 50
	PrioritySuffixTest    = 80
	PriorityConfiguration = 90
	PriorityFolderTest    = 100
)

var kindNames = map[FileKind]string{
	KindOther:         "other",
	KindTemplate:      "template",
	KindLogic:         "logic",
	KindStyle:         "style",
	KindConfiguration: "configuration",
	KindResource:      "resource",
	KindTest:          "test",
}

// AllKinds returns every kind in display order, Other last.
func AllKinds() []FileKind {
	return []FileKind{KindTemplate, KindLogic, KindStyle, KindConfiguration, KindResource, KindTest, KindOther}
}

// String returns the lowercase name of the kind.
func (k FileKind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "unknown"
}

// MarshalText encodes the kind by name for JSON and YAML output.
func (k FileKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// UnmarshalText decodes a kind name.
func (k *FileKind) UnmarshalText(text []byte) error {
	parsed, err := ParseFileKind(string(text))
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}

// ParseFileKind returns the kind with the given name.
func ParseFileKind(name string) (FileKind, error) {
	for k, n := range kindNames {
		if strings.EqualFold(n, name) {
			return k, nil
		}
	}
	return KindOther, fmt.Errorf("unknown file kind %q", name)
}

// Label returns the fixed label for the kind. Other has no fixed label;
// use Classification.Label for the per-file text.
func (k FileKind) Label() string {
	switch k {
	case KindTemplate:
		return "Template"
	case KindLogic:
		return "JavaScript Controller"
	case KindStyle:
		return "Stylesheet"
	case KindConfiguration:
		return "Configuration"
	case KindResource:
		return "SVG Resource"
	case KindTest:
		return "Test"
	default:
		return "File"
	}
}

// Color returns the display color as a hex string.
func (k FileKind) Color() string {
	switch k {
	case KindTemplate:
		return "#e44d26" // HTML orange
	case KindLogic:
		return "#f0db4f" // JavaScript yellow
	case KindStyle:
		return "#264de4" // CSS blue
	case KindConfiguration:
		return "#f16529" // XML orange-red
	case KindResource:
		return "#ffb13b" // SVG amber
	case KindTest:
		return "#9c27b0" // purple
	default:
		return "#607d8b" // gray
	}
}

// CSSClass returns a short identifier that is safe to use as a CSS class.
func (k FileKind) CSSClass() string {
	switch k {
	case KindTemplate:
		return "html"
	case KindLogic:
		return "js"
	case KindStyle:
		return "css"
	case KindConfiguration:
		return "xml"
	case KindResource:
		return "svg"
	case KindTest:
		return "test"
	default:
		return "other"
	}
}

// Classification is the result of classifying one file.
type Classification struct {
	Kind     FileKind
	Label    string
	Priority int
}

// Classify maps a file to its kind. filePath may be empty, in which case the
// __tests__ folder rule cannot apply. The first matching rule wins:
// a file inside __tests__ is always a Test, otherwise the extension decides.
func Classify(fileName, filePath string) Classification {
	if filePath != "" && InTestsDir(filePath) {
		return Classification{Kind: KindTest, Label: KindTest.Label(), Priority: PriorityFolderTest}
	}

	if strings.HasSuffix(fileName, MetaSuffix) {
		return Classification{Kind: KindConfiguration, Label: KindConfiguration.Label(), Priority: PriorityConfiguration}
	}

	ext := filepath.Ext(fileName)
	switch ext {
	case ".html":
		return Classification{Kind: KindTemplate, Label: KindTemplate.Label(), Priority: PriorityTemplate}
	case ".js":
		if strings.HasSuffix(fileName, TestSuffix) {
			return Classification{Kind: KindTest, Label: KindTest.Label(), Priority: PrioritySuffixTest}
		}
		return Classification{Kind: KindLogic, Label: KindLogic.Label(), Priority: PriorityLogic}
	case ".css":
		return Classification{Kind: KindStyle, Label: KindStyle.Label(), Priority: PriorityStyle}
	case ".svg":
		return Classification{Kind: KindResource, Label: KindResource.Label(), Priority: PriorityResource}
	}

	label := cases.Upper(language.Und).String(strings.TrimPrefix(ext, "."))
	if label == "" {
		label = KindOther.Label()
	}
	return Classification{Kind: KindOther, Label: label, Priority: PriorityOther}
}

// Priority returns the sort priority of a file.
func Priority(fileName, filePath string) int {
	return Classify(fileName, filePath).Priority
}

// InTestsDir reports whether the file's parent folder is the __tests__ folder.
func InTestsDir(filePath string) bool {
	return filepath.Base(filepath.Dir(filePath)) == TestsDirName
}

// NewRelatedFile classifies path and returns the labeled entry for it.
func NewRelatedFile(path string) RelatedFile {
	name := filepath.Base(path)
	c := Classify(name, path)
	return RelatedFile{
		Path:     path,
		Name:     name,
		Kind:     c.Kind,
		Label:    c.Label,
		Color:    c.Kind.Color(),
		Class:    c.Kind.CSSClass(),
		Priority: c.Priority,
	}
}
