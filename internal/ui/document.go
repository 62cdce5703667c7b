package ui

import (
	"fmt"
	"os"
	"slices"
	"strings"
	"sync"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Box is one element ready to draw: its screen rectangle, resolved style and
// the text of its direct text children.
type Box struct {
	X, Y, Width, Height int32
	Style               ComputedStyle
	Text                string
}

// Document is a small HTML overlay styled by a stylesheet. Layout results are
// cached and only recomputed when the markup, stylesheet or screen size changes.
// All methods are safe for concurrent use.
type Document struct {
	mu    sync.Mutex
	body  *html.Node
	sheet *Stylesheet

	cached     []Box
	cacheValid bool
	cacheW     int32
	cacheH     int32
}

// NewDocument parses markup as the body of a new document.
func NewDocument(markup string) (*Document, error) {
	root, err := html.Parse(strings.NewReader(markup))
	if err != nil {
		return nil, fmt.Errorf("ui: parse html: %w", err)
	}
	body := findElement(root, func(n *html.Node) bool { return n.DataAtom == atom.Body })
	if body == nil {
		return nil, fmt.Errorf("ui: document has no body")
	}
	return &Document{body: body}, nil
}

// LoadCSS loads and parses a CSS file from path. Replaces the current stylesheet.
func (d *Document) LoadCSS(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	sheet, err := ParseCSS(string(data))
	if err != nil {
		return err
	}
	d.SetStylesheet(sheet)
	return nil
}

// SetStylesheet sets the stylesheet directly (e.g. from embedded or merged CSS).
func (d *Document) SetStylesheet(sheet *Stylesheet) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.sheet = sheet
	d.cacheValid = false
}

// HasStylesheet returns whether a stylesheet with rules is set.
func (d *Document) HasStylesheet() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.sheet != nil && len(d.sheet.Rules) > 0
}

// Element is a handle to one element of a Document.
type Element struct {
	doc  *Document
	node *html.Node
}

// GetElementByID returns the element with the given id, or nil.
func (d *Document) GetElementByID(id string) *Element {
	d.mu.Lock()
	defer d.mu.Unlock()
	n := findElement(d.body, func(n *html.Node) bool { return attr(n, "id") == id })
	if n == nil {
		return nil
	}
	return &Element{doc: d, node: n}
}

// ID returns the element's id attribute.
func (e *Element) ID() string {
	e.doc.mu.Lock()
	defer e.doc.mu.Unlock()
	return attr(e.node, "id")
}

// Classes returns the element's class list.
func (e *Element) Classes() []string {
	e.doc.mu.Lock()
	defer e.doc.mu.Unlock()
	return strings.Fields(attr(e.node, "class"))
}

// HasClass reports whether class is in the element's class list.
func (e *Element) HasClass(class string) bool {
	return slices.Contains(e.Classes(), class)
}

// AddClass adds class to the element. Adding a present class is a no-op.
func (e *Element) AddClass(class string) {
	if e.HasClass(class) {
		return
	}
	e.doc.mu.Lock()
	defer e.doc.mu.Unlock()
	classes := append(strings.Fields(attr(e.node, "class")), class)
	setAttr(e.node, "class", strings.Join(classes, " "))
	e.doc.cacheValid = false
}

// RemoveClass removes class from the element.
func (e *Element) RemoveClass(class string) {
	e.doc.mu.Lock()
	defer e.doc.mu.Unlock()
	classes := slices.DeleteFunc(strings.Fields(attr(e.node, "class")), func(c string) bool { return c == class })
	setAttr(e.node, "class", strings.Join(classes, " "))
	e.doc.cacheValid = false
}

// SetInnerHTML replaces the element's children with the parsed markup.
func (e *Element) SetInnerHTML(markup string) error {
	nodes, err := html.ParseFragment(strings.NewReader(markup), e.node)
	if err != nil {
		return fmt.Errorf("ui: parse fragment: %w", err)
	}
	e.doc.mu.Lock()
	defer e.doc.mu.Unlock()
	for c := e.node.FirstChild; c != nil; {
		next := c.NextSibling
		e.node.RemoveChild(c)
		c = next
	}
	for _, n := range nodes {
		e.node.AppendChild(n)
	}
	e.doc.cacheValid = false
	return nil
}

// InnerText returns the concatenated, space-normalized text under the element.
func (e *Element) InnerText() string {
	e.doc.mu.Lock()
	defer e.doc.mu.Unlock()
	var b strings.Builder
	collectText(e.node, &b)
	return strings.Join(strings.Fields(b.String()), " ")
}

// Layout resolves styles and positions for every visible element. Elements
// with display: none, and everything inside them, are skipped. Elements
// without an explicit position flow top to bottom inside their parent.
func (d *Document) Layout(screenW, screenH int32) []Box {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.cacheValid && d.cacheW == screenW && d.cacheH == screenH {
		return d.cached
	}
	rules := d.matchRules()
	var out []Box
	root := Box{Width: screenW, Height: screenH, Style: DefaultComputedStyle()}
	root.Style.Padding = 0
	d.layoutChildren(d.body, root, rules, &out)
	d.cached = out
	d.cacheValid = true
	d.cacheW, d.cacheH = screenW, screenH
	return out
}

// matchRules returns the merged stylesheet properties for each matched element.
func (d *Document) matchRules() map[*html.Node]map[string]string {
	props := make(map[*html.Node]map[string]string)
	if d.sheet == nil {
		return props
	}
	for _, rule := range d.sheet.Rules {
		for _, n := range rule.matches(d.body) {
			m := props[n]
			if m == nil {
				m = make(map[string]string)
				props[n] = m
			}
			for k, v := range rule.Props {
				m[k] = v
			}
		}
	}
	return props
}

func (d *Document) resolve(n *html.Node, parent ComputedStyle, rules map[*html.Node]map[string]string) ComputedStyle {
	style := inherit(parent)
	for k, v := range rules[n] {
		style.Apply(k, v)
	}
	if inline := attr(n, "style"); inline != "" {
		// bad inline styles are ignored, as a browser would
		if props, err := ParseInlineStyle(inline); err == nil {
			for k, v := range props {
				style.Apply(k, v)
			}
		}
	}
	return style
}

func (d *Document) layoutChildren(parent *html.Node, pbox Box, rules map[*html.Node]map[string]string, out *[]Box) {
	cursor := pbox.Y + pbox.Style.Padding
	if directText(parent) != "" {
		cursor += pbox.Style.FontSize + pbox.Style.Padding
	}
	for c := parent.FirstChild; c != nil; c = c.NextSibling {
		if c.Type != html.ElementNode {
			continue
		}
		style := d.resolve(c, pbox.Style, rules)
		if style.Hidden {
			continue
		}
		b := Box{Style: style, Text: directText(c)}
		b.Width = style.Width
		if b.Width <= 0 {
			b.Width = pbox.Width - 2*pbox.Style.Padding
		}
		b.Height = style.Height
		if b.Height <= 0 {
			b.Height = style.FontSize + 2*style.Padding
		}
		b.X = pbox.X + pbox.Style.Padding + style.Left
		b.Y = cursor + style.Top
		if style.LeftPct >= 0 {
			b.X = pbox.X + (pbox.Width-b.Width)*style.LeftPct/100
		}
		if style.TopPct >= 0 {
			b.Y = pbox.Y + (pbox.Height-b.Height)*style.TopPct/100
		} else {
			cursor = b.Y + b.Height
		}
		*out = append(*out, b)
		d.layoutChildren(c, b, rules, out)
	}
}

func findElement(n *html.Node, match func(*html.Node) bool) *html.Node {
	if n.Type == html.ElementNode && match(n) {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := findElement(c, match); found != nil {
			return found
		}
	}
	return nil
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

func setAttr(n *html.Node, key, val string) {
	for i := range n.Attr {
		if n.Attr[i].Key == key {
			n.Attr[i].Val = val
			return
		}
	}
	n.Attr = append(n.Attr, html.Attribute{Key: key, Val: val})
}

// directText joins the text nodes that are direct children of n.
func directText(n *html.Node) string {
	var parts []string
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.TextNode {
			if t := strings.TrimSpace(c.Data); t != "" {
				parts = append(parts, t)
			}
		}
	}
	return strings.Join(parts, " ")
}

func collectText(n *html.Node, b *strings.Builder) {
	if n.Type == html.TextNode {
		b.WriteString(n.Data)
		b.WriteByte(' ')
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		collectText(c, b)
	}
}
