package document

import "sync"

// MemoryElement is an Element held entirely in memory.
type MemoryElement struct {
	mu      sync.RWMutex
	attrs   map[string]string
	classes []string
	styles  map[string]string
}

// NewMemoryElement creates an empty element.
func NewMemoryElement() *MemoryElement {
	return &MemoryElement{
		attrs:  make(map[string]string),
		styles: make(map[string]string),
	}
}

func (e *MemoryElement) Attribute(name string) (string, bool) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	v, ok := e.attrs[name]
	return v, ok
}

func (e *MemoryElement) SetAttribute(name, value string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.attrs[name] = value
}

func (e *MemoryElement) RemoveAttribute(name string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	delete(e.attrs, name)
}

// Attributes returns attribute names in sorted order.
func (e *MemoryElement) Attributes() []string {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return sortedKeys(e.attrs)
}

func (e *MemoryElement) Classes() []string {
	e.mu.RLock()
	defer e.mu.RUnlock()
	out := make([]string, len(e.classes))
	copy(out, e.classes)
	return out
}

func (e *MemoryElement) HasClass(name string) bool {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return containsString(e.classes, name)
}

func (e *MemoryElement) AddClass(names ...string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	for _, name := range names {
		if name != "" && !containsString(e.classes, name) {
			e.classes = append(e.classes, name)
		}
	}
}

func (e *MemoryElement) RemoveClass(names ...string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	kept := e.classes[:0]
	for _, c := range e.classes {
		if !containsString(names, c) {
			kept = append(kept, c)
		}
	}
	e.classes = kept
}

func (e *MemoryElement) SetStyleProperty(name, value string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.styles[name] = value
}

func (e *MemoryElement) StyleProperty(name string) string {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.styles[name]
}

// Memory is a Document made of two MemoryElements.
type Memory struct {
	root *MemoryElement
	body *MemoryElement
}

// NewMemory creates an empty in-memory document.
func NewMemory() *Memory {
	return &Memory{
		root: NewMemoryElement(),
		body: NewMemoryElement(),
	}
}

func (m *Memory) Root() Element { return m.root }
func (m *Memory) Body() Element { return m.body }
