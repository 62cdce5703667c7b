package ui

import (
	"fmt"
	"strings"

	"github.com/aymerick/douceur/css"
	"github.com/aymerick/douceur/parser"
	selcss "github.com/ericchiang/css"
	"golang.org/x/net/html"
)

// Rule is a single CSS rule: one selector and a set of property values (raw strings).
type Rule struct {
	Selector string            // e.g. ".hidden", "#loading" or "#loading p"
	Props    map[string]string // e.g. "background" -> "#333"

	sel *selcss.Selector
}

// Stylesheet is a list of rules (order matters: later overrides earlier).
type Stylesheet struct {
	Rules []Rule
}

// ParseCSS parses a stylesheet. At-rules are skipped. A rule with several
// selectors becomes one Rule per selector so cascade order is kept.
func ParseCSS(content string) (*Stylesheet, error) {
	parsed, err := parser.Parse(content)
	if err != nil {
		return nil, fmt.Errorf("ui: parse css: %w", err)
	}
	sheet := &Stylesheet{}
	for _, r := range parsed.Rules {
		if r.Kind == css.AtRule || len(r.Declarations) == 0 {
			continue
		}
		props := declarations(r.Declarations)
		for _, s := range r.Selectors {
			s = strings.TrimSpace(s)
			sel, err := selcss.Parse(s)
			if err != nil {
				return nil, fmt.Errorf("ui: selector %q: %w", s, err)
			}
			sheet.Rules = append(sheet.Rules, Rule{Selector: s, Props: props, sel: sel})
		}
	}
	return sheet, nil
}

// ParseInlineStyle parses the contents of a style attribute.
func ParseInlineStyle(style string) (map[string]string, error) {
	// the declaration parser wants a trailing semicolon, inline styles often omit it
	style = strings.TrimSpace(style)
	if style != "" && !strings.HasSuffix(style, ";") {
		style += ";"
	}
	decls, err := parser.ParseDeclarations(style)
	if err != nil {
		return nil, fmt.Errorf("ui: parse style %q: %w", style, err)
	}
	return declarations(decls), nil
}

func declarations(decls []*css.Declaration) map[string]string {
	props := make(map[string]string, len(decls))
	for _, d := range decls {
		props[strings.ToLower(d.Property)] = d.Value
	}
	return props
}

// matches returns every element under root the rule applies to.
func (r Rule) matches(root *html.Node) []*html.Node {
	if r.sel == nil {
		return nil
	}
	return r.sel.Select(root)
}
