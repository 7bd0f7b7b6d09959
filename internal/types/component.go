// Package types provides common type definitions used throughout lwcswitch.
// This package contains shared types to avoid circular dependencies between packages.
package types

import "strings"

// RelatedFile is one sibling file of a component, labeled for display.
type RelatedFile struct {
	// Path is the absolute path of the sibling file
	Path string `json:"path" yaml:"path"`
	// Name is the base name of Path
	Name string `json:"name" yaml:"name"`
	// Kind is the semantic file kind
	Kind FileKind `json:"kind" yaml:"kind"`
	// Label is the human-readable description shown next to the name
	Label string `json:"label" yaml:"label"`
	// Color is the display color as a hex string (e.g. "#e44d26")
	Color string `json:"color" yaml:"color"`
	// Class is a CSS-safe identifier for the kind
	Class string `json:"class" yaml:"class"`
	// Priority is the sort key; lower values sort first
	Priority int `json:"priority" yaml:"priority"`
}

// RankedFileList is the ordered result of one lookup. It is built fresh for
// every call and never cached.
type RankedFileList struct {
	// Trigger is the file the lookup was started from
	Trigger string `json:"trigger" yaml:"trigger"`
	// Component is the derived component name of Trigger
	Component string `json:"component" yaml:"component"`
	// Directory is the folder that was listed
	Directory string `json:"directory" yaml:"directory"`
	// Files holds the siblings in rank order, never including Trigger
	Files []RelatedFile `json:"files" yaml:"files"`
}

// Empty reports whether the lookup produced nothing to show. Every
// "nothing to show" case (not a component, unreadable folder, no siblings)
// collapses into this one signal.
func (l *RankedFileList) Empty() bool {
	return l == nil || len(l.Files) == 0
}

// Len returns the number of related files.
func (l *RankedFileList) Len() int {
	if l == nil {
		return 0
	}
	return len(l.Files)
}

// Paths returns the file paths in rank order.
func (l *RankedFileList) Paths() []string {
	if l == nil {
		return nil
	}
	paths := make([]string, len(l.Files))
	for i, f := range l.Files {
		paths[i] = f.Path
	}
	return paths
}

// Kinds returns the distinct kinds present, in rank order.
func (l *RankedFileList) Kinds() []FileKind {
	if l == nil {
		return nil
	}
	seen := make(map[FileKind]bool)
	var kinds []FileKind
	for _, f := range l.Files {
		if !seen[f.Kind] {
			seen[f.Kind] = true
			kinds = append(kinds, f.Kind)
		}
	}
	return kinds
}

// String renders the list as "name (Label), ..." for log lines.
func (l *RankedFileList) String() string {
	if l.Empty() {
		return "<none>"
	}
	parts := make([]string, len(l.Files))
	for i, f := range l.Files {
		parts[i] = f.Name + " (" + f.Label + ")"
	}
	return strings.Join(parts, ", ")
}

// ComponentInfo describes one component folder found by a directory scan.
type ComponentInfo struct {
	// Name is the component name, equal to the folder name
	Name string `json:"name" yaml:"name"`
	// Directory is the component folder
	Directory string `json:"directory" yaml:"directory"`
	// MetaFile is the path of <Name>.js-meta.xml
	MetaFile string `json:"meta_file" yaml:"meta_file"`
	// Files holds every file of the component in rank order, metadata included
	Files []RelatedFile `json:"files" yaml:"files"`
}
