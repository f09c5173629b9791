package ui

import (
	"strings"
	"sync"

	"github.com/oklog/ulid/v2"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/jmylchreest/themetoggle/internal/document"
	"github.com/jmylchreest/themetoggle/internal/theme"
)

// Markup hooks.
const (
	HeaderClass          = "main-header"
	HeaderButtonClass    = "theme-toggle-btn"
	SettingsSectionAttr  = "data-settings-section"
	AppearanceSection    = "appearance"
	ThemeToggleClass     = "theme-toggle"
	SystemToggleClass    = "theme-system-toggle"
	PreviewCardClass     = "theme-preview-card"
	ActiveClass          = "active"
	ControlAttr          = "data-theme-control"
	ControlIDAttr        = "data-control-id"
	headerButtonStyle    = "background: transparent; border: none; font-size: 20px; cursor: pointer; padding: 8px; border-radius: 8px; margin-left: auto; display: flex; align-items: center; justify-content: center;"
	settingsItemClass    = "settings-item"
	settingsLabelClass   = "settings-item-label"
	settingsDescClass    = "settings-item-description"
	previewHeaderClass   = "theme-preview-header"
	previewBodyClass     = "theme-preview-body"
	previewSwatchClass   = "color-sample"
	switchClass          = "switch"
	sliderClass          = "slider"
	checkedAttr          = "checked"
	backgroundColorStyle = "background-color: "
)

// HTMLView renders controls into an HTML document and keeps the rendered
// nodes in sync with the bindings.
type HTMLView struct {
	bindings *Bindings
	doc      *document.HTML

	mu     sync.Mutex
	remove func()
}

// NewHTMLView attaches a view of b to doc.
func NewHTMLView(b *Bindings, doc *document.HTML) *HTMLView {
	v := &HTMLView{bindings: b, doc: doc}
	v.remove = b.OnRender(v.render)
	return v
}

// Close detaches the view from the bindings.
func (v *HTMLView) Close() {
	v.mu.Lock()
	remove := v.remove
	v.remove = nil
	v.mu.Unlock()
	if remove != nil {
		remove()
	}
}

// AddHeaderButton appends an icon button to the .main-header element. It
// returns nil when there is no header or a button is already present.
func (v *HTMLView) AddHeaderButton() *IconButton {
	v.mu.Lock()
	defer v.mu.Unlock()

	header := v.doc.FindByClass(HeaderClass)
	if header == nil {
		v.bindings.logger.Debug("no header element, skipping theme button")
		return nil
	}
	if document.FindFirst(header, document.HasClassMatcher(HeaderButtonClass)) != nil {
		return nil
	}

	btn := v.bindings.NewIconButton()
	node := element(atom.Button,
		"class", HeaderButtonClass,
		"type", "button",
		"title", btn.Title(),
		"aria-label", btn.Title(),
		"style", headerButtonStyle,
	)
	tagControl(node, btn)
	node.AppendChild(text(btn.Icon()))
	header.AppendChild(node)
	return btn
}

// RenderSettings replaces the theme settings inside the appearance section.
// It returns false when the section is missing.
func (v *HTMLView) RenderSettings() (*ToggleSwitch, *SystemToggle, bool) {
	v.mu.Lock()
	defer v.mu.Unlock()

	section := v.doc.FindByAttr(SettingsSectionAttr, AppearanceSection)
	if section == nil {
		return nil, nil, false
	}

	for _, class := range []string{ThemeToggleClass, SystemToggleClass} {
		for _, old := range document.FindAll(section, document.HasClassMatcher(class)) {
			v.dropControls(old)
			old.Parent.RemoveChild(old)
		}
	}

	themeSwitch := v.bindings.NewToggleSwitch()
	themeDiv := element(atom.Div, "class", ThemeToggleClass)
	themeDiv.AppendChild(settingsItem(themeSwitch, ThemeModeLabel, ThemeModeDescription, themeSwitch.Checked()))

	systemSwitch := v.bindings.NewSystemToggle()
	systemDiv := element(atom.Div, "class", SystemToggleClass)
	systemDiv.AppendChild(settingsItem(systemSwitch, FollowSystemLabel, FollowSystemDesc, systemSwitch.Checked()))

	section.AppendChild(themeDiv)
	section.AppendChild(systemDiv)
	return themeSwitch, systemSwitch, true
}

// RenderPreviewCard returns a detached preview card node for id.
func (v *HTMLView) RenderPreviewCard(id theme.ID) (*PreviewCard, *html.Node) {
	v.mu.Lock()
	defer v.mu.Unlock()

	card := v.bindings.NewPreviewCard(id)
	info := card.Theme()

	node := element(atom.Div, "class", previewCardClasses(card.Active()))
	tagControl(node, card)

	header := element(atom.Div,
		"class", previewHeaderClass,
		"style", backgroundColorStyle+info.Palette.Primary,
	)
	title := element(atom.H4)
	title.AppendChild(text(card.Name()))
	header.AppendChild(title)

	body := element(atom.Div, "class", previewBodyClass)
	for _, color := range []string{info.Palette.Secondary, info.Palette.Tertiary} {
		body.AppendChild(element(atom.Div,
			"class", previewSwatchClass,
			"style", backgroundColorStyle+color,
		))
	}

	node.AppendChild(header)
	node.AppendChild(body)
	return card, node
}

func (v *HTMLView) render(st State) {
	v.mu.Lock()
	defer v.mu.Unlock()

	for _, n := range document.FindAll(v.doc.Node(), hasAttr(ControlIDAttr)) {
		raw, _ := document.NodeElement(n).Attribute(ControlIDAttr)
		id, err := ulid.Parse(raw)
		if err != nil {
			continue
		}
		c, ok := v.bindings.Control(id)
		if !ok {
			continue
		}
		switch c := c.(type) {
		case *IconButton:
			setText(n, IconFor(st.Theme))
		case *ToggleSwitch:
			setChecked(n, st.Theme == theme.Light)
		case *SystemToggle:
			setChecked(n, st.FollowSystem)
		case *PreviewCard:
			document.NodeElement(n).SetAttribute("class", previewCardClasses(st.Theme == c.Theme().ID))
		}
	}
}

// dropControls unregisters every control rendered under n.
func (v *HTMLView) dropControls(n *html.Node) {
	for _, tagged := range document.FindAll(n, hasAttr(ControlIDAttr)) {
		raw, _ := document.NodeElement(tagged).Attribute(ControlIDAttr)
		if id, err := ulid.Parse(raw); err == nil {
			v.bindings.Remove(id)
		}
	}
}

func settingsItem(c Control, label, desc string, checked bool) *html.Node {
	item := element(atom.Div, "class", settingsItemClass)

	labelDiv := element(atom.Div, "class", settingsLabelClass)
	title := element(atom.Div)
	title.AppendChild(text(label))
	description := element(atom.Div, "class", settingsDescClass)
	description.AppendChild(text(desc))
	labelDiv.AppendChild(title)
	labelDiv.AppendChild(description)

	sw := element(atom.Label, "class", switchClass)
	input := element(atom.Input, "type", "checkbox")
	tagControl(input, c)
	setChecked(input, checked)
	sw.AppendChild(input)
	sw.AppendChild(element(atom.Span, "class", sliderClass))

	item.AppendChild(labelDiv)
	item.AppendChild(sw)
	return item
}

func previewCardClasses(active bool) string {
	if active {
		return PreviewCardClass + " " + ActiveClass
	}
	return PreviewCardClass
}

func element(a atom.Atom, attrs ...string) *html.Node {
	n := &html.Node{Type: html.ElementNode, DataAtom: a, Data: a.String()}
	for i := 0; i+1 < len(attrs); i += 2 {
		n.Attr = append(n.Attr, html.Attribute{Key: attrs[i], Val: attrs[i+1]})
	}
	return n
}

func text(s string) *html.Node {
	return &html.Node{Type: html.TextNode, Data: s}
}

func tagControl(n *html.Node, c Control) {
	e := document.NodeElement(n)
	e.SetAttribute(ControlAttr, string(c.Kind()))
	e.SetAttribute(ControlIDAttr, c.ID().String())
}

func setText(n *html.Node, s string) {
	for c := n.FirstChild; c != nil; {
		next := c.NextSibling
		n.RemoveChild(c)
		c = next
	}
	n.AppendChild(text(s))
}

func setChecked(n *html.Node, checked bool) {
	e := document.NodeElement(n)
	if checked {
		e.SetAttribute(checkedAttr, "")
	} else {
		e.RemoveAttribute(checkedAttr)
	}
}

func hasAttr(name string) func(*html.Node) bool {
	return func(n *html.Node) bool {
		for _, a := range n.Attr {
			if a.Namespace == "" && strings.EqualFold(a.Key, name) {
				return true
			}
		}
		return false
	}
}
