// Package docs serves the static module documentation shown on the
// "module" tab: one markdown section per facet plus an introduction.
package docs

import (
	"embed"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"
)

//go:embed modules/*.md
var modulesFS embed.FS

// Section is one markdown document, keyed by the facet it describes.
// The introduction has the key "einleitung".
type Section struct {
	Key      string
	Markdown string
}

// Sections returns every section in display order.
func Sections() ([]Section, error) {
	entries, err := fs.ReadDir(modulesFS, "modules")
	if err != nil {
		return nil, fmt.Errorf("reading embedded modules: %w", err)
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Name() < entries[j].Name() })

	sections := make([]Section, 0, len(entries))
	for _, e := range entries {
		data, err := fs.ReadFile(modulesFS, path.Join("modules", e.Name()))
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", e.Name(), err)
		}
		sections = append(sections, Section{Key: sectionKey(e.Name()), Markdown: string(data)})
	}
	return sections, nil
}

// Markdown returns all sections joined into one document.
func Markdown() (string, error) {
	sections, err := Sections()
	if err != nil {
		return "", err
	}
	var b strings.Builder
	for i, s := range sections {
		if i > 0 {
			b.WriteString("\n---\n\n")
		}
		b.WriteString(s.Markdown)
	}
	return b.String(), nil
}

// Lookup returns the section for key.
func Lookup(key string) (Section, error) {
	sections, err := Sections()
	if err != nil {
		return Section{}, err
	}
	for _, s := range sections {
		if s.Key == key {
			return s, nil
		}
	}
	return Section{}, fmt.Errorf("no module documentation for %q", key)
}

// sectionKey turns "01-corelexikon.md" into "corelexikon".
func sectionKey(name string) string {
	name = strings.TrimSuffix(name, ".md")
	if i := strings.IndexByte(name, '-'); i >= 0 {
		name = name[i+1:]
	}
	return name
}
