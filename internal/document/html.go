package document

import (
	"fmt"
	"io"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// HTML is a Document backed by a parsed HTML tree.
type HTML struct {
	doc  *html.Node
	root *html.Node
	body *html.Node
}

// ParseHTML parses r. The html5 parser always synthesizes <html> and <body>.
func ParseHTML(r io.Reader) (*HTML, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("failed to parse html: %w", err)
	}

	h := &HTML{doc: doc}
	h.root = FindFirst(doc, func(n *html.Node) bool { return n.DataAtom == atom.Html })
	if h.root == nil {
		h.root = &html.Node{Type: html.ElementNode, Data: "html", DataAtom: atom.Html}
		doc.AppendChild(h.root)
	}
	h.body = FindFirst(h.root, func(n *html.Node) bool { return n.DataAtom == atom.Body })
	if h.body == nil {
		h.body = &html.Node{Type: html.ElementNode, Data: "body", DataAtom: atom.Body}
		h.root.AppendChild(h.body)
	}
	return h, nil
}

// NewHTML creates an empty HTML document.
func NewHTML() *HTML {
	h, _ := ParseHTML(strings.NewReader("<!DOCTYPE html>"))
	return h
}

func (h *HTML) Root() Element { return NodeElement(h.root) }
func (h *HTML) Body() Element { return NodeElement(h.body) }

// Node returns the document node.
func (h *HTML) Node() *html.Node { return h.doc }

// BodyNode returns the <body> node.
func (h *HTML) BodyNode() *html.Node { return h.body }

// Render writes the document as HTML.
func (h *HTML) Render(w io.Writer) error {
	return html.Render(w, h.doc)
}

// String renders the document, returning an empty string on failure.
func (h *HTML) String() string {
	var sb strings.Builder
	if err := h.Render(&sb); err != nil {
		return ""
	}
	return sb.String()
}

// FindByClass returns the first element under the document carrying class.
func (h *HTML) FindByClass(class string) *html.Node {
	return FindFirst(h.doc, HasClassMatcher(class))
}

// FindByAttr returns the first element whose attribute name equals value.
func (h *HTML) FindByAttr(name, value string) *html.Node {
	return FindFirst(h.doc, func(n *html.Node) bool {
		v, ok := attr(n, name)
		return ok && v == value
	})
}

// FindFirst returns the first element node under n (inclusive) matching fn,
// in document order.
func FindFirst(n *html.Node, fn func(*html.Node) bool) *html.Node {
	if n == nil {
		return nil
	}
	if n.Type == html.ElementNode && fn(n) {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := FindFirst(c, fn); found != nil {
			return found
		}
	}
	return nil
}

// FindAll returns every element node under n (inclusive) matching fn.
func FindAll(n *html.Node, fn func(*html.Node) bool) []*html.Node {
	var out []*html.Node
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && fn(n) {
			out = append(out, n)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	if n != nil {
		walk(n)
	}
	return out
}

// HasClassMatcher returns a matcher for FindFirst/FindAll.
func HasClassMatcher(class string) func(*html.Node) bool {
	return func(n *html.Node) bool {
		v, _ := attr(n, "class")
		return containsString(splitClasses(v), class)
	}
}

// NodeElement adapts an element node to Element.
func NodeElement(n *html.Node) Element {
	return nodeElement{n: n}
}

type nodeElement struct {
	n *html.Node
}

func attr(n *html.Node, name string) (string, bool) {
	for _, a := range n.Attr {
		if a.Namespace == "" && a.Key == name {
			return a.Val, true
		}
	}
	return "", false
}

func (e nodeElement) Attribute(name string) (string, bool) {
	return attr(e.n, name)
}

func (e nodeElement) SetAttribute(name, value string) {
	for i, a := range e.n.Attr {
		if a.Namespace == "" && a.Key == name {
			e.n.Attr[i].Val = value
			return
		}
	}
	e.n.Attr = append(e.n.Attr, html.Attribute{Key: name, Val: value})
}

func (e nodeElement) RemoveAttribute(name string) {
	kept := e.n.Attr[:0]
	for _, a := range e.n.Attr {
		if a.Namespace == "" && a.Key == name {
			continue
		}
		kept = append(kept, a)
	}
	e.n.Attr = kept
}

func (e nodeElement) Classes() []string {
	v, _ := attr(e.n, "class")
	return splitClasses(v)
}

func (e nodeElement) HasClass(name string) bool {
	return containsString(e.Classes(), name)
}

func (e nodeElement) AddClass(names ...string) {
	classes := e.Classes()
	for _, name := range names {
		if name != "" && !containsString(classes, name) {
			classes = append(classes, name)
		}
	}
	e.setClasses(classes)
}

func (e nodeElement) RemoveClass(names ...string) {
	var kept []string
	for _, c := range e.Classes() {
		if !containsString(names, c) {
			kept = append(kept, c)
		}
	}
	e.setClasses(kept)
}

func (e nodeElement) setClasses(classes []string) {
	if len(classes) == 0 {
		e.RemoveAttribute("class")
		return
	}
	e.SetAttribute("class", strings.Join(classes, " "))
}

func (e nodeElement) SetStyleProperty(name, value string) {
	style, _ := attr(e.n, "style")
	order, props := parseStyle(style)
	if _, ok := props[name]; !ok {
		order = append(order, name)
	}
	props[name] = value
	e.SetAttribute("style", formatStyle(order, props))
}

func (e nodeElement) StyleProperty(name string) string {
	style, _ := attr(e.n, "style")
	_, props := parseStyle(style)
	return props[name]
}
