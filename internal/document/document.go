// Package document abstracts the element tree a theme is applied to.
// HTML wraps a parsed golang.org/x/net/html tree; Memory is a bare pair of
// elements for front ends without markup and for tests.
package document

import (
	"sort"
	"strings"
)

// Element is the subset of element behavior the theme applicator needs.
type Element interface {
	Attribute(name string) (string, bool)
	SetAttribute(name, value string)
	RemoveAttribute(name string)

	Classes() []string
	HasClass(name string) bool
	AddClass(names ...string)
	RemoveClass(names ...string)

	// SetStyleProperty sets an inline style property such as "--color-primary".
	SetStyleProperty(name, value string)
	StyleProperty(name string) string
}

// Document exposes the root and body elements.
type Document interface {
	Root() Element
	Body() Element
}

// parseStyle splits an inline style attribute into ordered declarations.
func parseStyle(style string) ([]string, map[string]string) {
	var order []string
	props := make(map[string]string)
	for _, decl := range strings.Split(style, ";") {
		name, value, ok := strings.Cut(decl, ":")
		if !ok {
			continue
		}
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		if _, seen := props[name]; !seen {
			order = append(order, name)
		}
		props[name] = strings.TrimSpace(value)
	}
	return order, props
}

func formatStyle(order []string, props map[string]string) string {
	parts := make([]string, 0, len(order))
	for _, name := range order {
		if v, ok := props[name]; ok {
			parts = append(parts, name+": "+v)
		}
	}
	if len(parts) == 0 {
		return ""
	}
	return strings.Join(parts, "; ") + ";"
}

func splitClasses(s string) []string {
	return strings.Fields(s)
}

func containsString(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
