//go:build integration
// +build integration

package integration_tests

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/conneroisu/lwcswitch/internal/types"
)

// ProjectGenerator lays out Salesforce DX style projects on disk.
type ProjectGenerator struct {
	baseDir string
}

// NewProjectGenerator creates a generator that writes below baseDir.
func NewProjectGenerator(baseDir string) *ProjectGenerator {
	return &ProjectGenerator{baseDir: baseDir}
}

// lwcDir is the conventional component root of a project.
func (g *ProjectGenerator) lwcDir() string {
	return filepath.Join(g.baseDir, "force-app", "main", "default", "lwc")
}

// GenerateComponent writes one component folder holding the metadata
// file plus files, which may name paths under __tests__.
func (g *ProjectGenerator) GenerateComponent(name string, files ...string) (string, error) {
	dir := filepath.Join(g.lwcDir(), name)
	for _, f := range append([]string{name + types.MetaSuffix}, files...) {
		path := filepath.Join(dir, f)
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return "", err
		}
		if err := os.WriteFile(path, []byte(contentFor(name, f)), 0644); err != nil {
			return "", err
		}
	}
	return dir, nil
}

// GenerateProject writes count components. Every third component gets
// a __tests__ folder and every fifth an SVG resource.
func (g *ProjectGenerator) GenerateProject(count int) ([]string, error) {
	dirs := make([]string, 0, count)
	for i := 0; i < count; i++ {
		name := fmt.Sprintf("component%03d", i)
		files := []string{name + ".html", name + ".js", name + ".css"}
		if i%3 == 0 {
			files = append(files, filepath.Join(types.TestsDirName, name+".test.js"))
		}
		if i%5 == 0 {
			files = append(files, name+".svg")
		}

		dir, err := g.GenerateComponent(name, files...)
		if err != nil {
			return nil, err
		}
		dirs = append(dirs, dir)
	}
	return dirs, nil
}

func contentFor(name, file string) string {
	switch filepath.Ext(file) {
	case ".html":
		return "<template>\n\t<p>" + name + "</p>\n</template>\n"
	case ".js":
		return "import { LightningElement } from 'lwc';\n\nexport default class extends LightningElement {}\n"
	case ".css":
		return ":host { display: block; }\n"
	case ".xml":
		return "<?xml version=\"1.0\" encoding=\"UTF-8\"?>\n<LightningComponentBundle xmlns=\"http://soap.sforce.com/2006/04/metadata\">\n\t<isExposed>false</isExposed>\n</LightningComponentBundle>\n"
	case ".svg":
		return "<svg xmlns=\"http://www.w3.org/2000/svg\"></svg>\n"
	default:
		return ""
	}
}
