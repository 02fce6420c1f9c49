// Package fixture provides an in-memory document handle over parsed
// HTML. It implements the same query contract as the live browser
// backends, so resolution logic is testable without a browser, and it
// emulates the interaction state a browser would track: input values,
// radio group exclusivity and option selection.
package fixture

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"

	"form_automation/domain/interfaces"
)

// Document is a fixture implementation of interfaces.Document.
type Document struct {
	doc      *goquery.Document
	values   map[*html.Node]string
	selected map[*html.Node]bool
}

// Parse - builds a fixture document from an HTML source string
func Parse(src string) (*Document, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(src))
	if err != nil {
		return nil, fmt.Errorf("failed to parse fixture html: %w", err)
	}
	return &Document{
		doc:      doc,
		values:   make(map[*html.Node]string),
		selected: make(map[*html.Node]bool),
	}, nil
}

// Find - first element matching the CSS selector
func (d *Document) Find(selector string) (interfaces.Element, error) {
	sel := d.doc.Find(selector)
	if sel.Length() == 0 {
		return nil, fmt.Errorf("no element matches %q", selector)
	}
	return d.wrap(sel.Nodes[0]), nil
}

// FindAll - all elements matching the CSS selector, in document order
func (d *Document) FindAll(selector string) ([]interfaces.Element, error) {
	sel := d.doc.Find(selector)
	elements := make([]interfaces.Element, 0, sel.Length())
	for _, n := range sel.Nodes {
		elements = append(elements, d.wrap(n))
	}
	return elements, nil
}

// FindByID - element whose id attribute equals id exactly. Compared
// node by node so ids with selector metacharacters still match.
func (d *Document) FindByID(id string) (interfaces.Element, error) {
	sel := d.doc.Find("*").FilterFunction(func(_ int, s *goquery.Selection) bool {
		return s.AttrOr("id", "") == id
	})
	if sel.Length() == 0 {
		return nil, fmt.Errorf("no element has id %q", id)
	}
	return d.wrap(sel.Nodes[0]), nil
}

func (d *Document) wrap(n *html.Node) *element {
	return &element{doc: d, node: n, sel: d.doc.FindNodes(n)}
}

type element struct {
	doc  *Document
	node *html.Node
	sel  *goquery.Selection
}

func (e *element) TagName() (string, error) {
	return goquery.NodeName(e.sel), nil
}

func (e *element) Text() (string, error) {
	return e.sel.Text(), nil
}

func (e *element) Attribute(name string) (string, error) {
	// selection state emulated by clicks is exposed the way a live
	// widget would expose it
	if name == "aria-selected" {
		if on, ok := e.doc.selected[e.node]; ok {
			if on {
				return "true", nil
			}
			return "false", nil
		}
	}
	return e.sel.AttrOr(name, ""), nil
}

func (e *element) Value() (string, error) {
	if v, ok := e.doc.values[e.node]; ok {
		return v, nil
	}
	return e.sel.AttrOr("value", ""), nil
}

func (e *element) Selected() (bool, error) {
	if on, ok := e.doc.selected[e.node]; ok {
		return on, nil
	}
	switch goquery.NodeName(e.sel) {
	case "input":
		_, checked := e.sel.Attr("checked")
		return checked, nil
	case "option":
		_, selected := e.sel.Attr("selected")
		return selected, nil
	}
	return e.sel.AttrOr("aria-selected", "") == "true", nil
}

func (e *element) Find(selector string) (interfaces.Element, error) {
	sel := e.sel.Find(selector)
	if sel.Length() == 0 {
		return nil, fmt.Errorf("no descendant matches %q", selector)
	}
	return e.doc.wrap(sel.Nodes[0]), nil
}

func (e *element) FindAll(selector string) ([]interfaces.Element, error) {
	sel := e.sel.Find(selector)
	elements := make([]interfaces.Element, 0, sel.Length())
	for _, n := range sel.Nodes {
		elements = append(elements, e.doc.wrap(n))
	}
	return elements, nil
}

func (e *element) FollowingSiblings() ([]interfaces.Element, error) {
	var siblings []interfaces.Element
	for n := e.node.NextSibling; n != nil; n = n.NextSibling {
		if n.Type == html.ElementNode {
			siblings = append(siblings, e.doc.wrap(n))
		}
	}
	return siblings, nil
}

func (e *element) PrecedingSiblings() ([]interfaces.Element, error) {
	var siblings []interfaces.Element
	for n := e.node.PrevSibling; n != nil; n = n.PrevSibling {
		if n.Type == html.ElementNode {
			siblings = append(siblings, e.doc.wrap(n))
		}
	}
	return siblings, nil
}

// Click - emulates the state change a browser applies on click
func (e *element) Click() error {
	switch goquery.NodeName(e.sel) {
	case "input":
		switch e.sel.AttrOr("type", "") {
		case "radio":
			e.clickRadio()
		case "checkbox":
			on, _ := e.Selected()
			e.doc.selected[e.node] = !on
		}
	case "option":
		e.clickOption()
	default:
		if e.sel.AttrOr("role", "") == "option" {
			e.clickRoleOption()
		}
	}
	return nil
}

// clickRadio - selects the radio and deselects the rest of its name group
func (e *element) clickRadio() {
	if name := e.sel.AttrOr("name", ""); name != "" {
		group := e.doc.doc.Find("input[type='radio']").FilterFunction(func(_ int, s *goquery.Selection) bool {
			return s.AttrOr("name", "") == name
		})
		for _, n := range group.Nodes {
			e.doc.selected[n] = false
		}
	}
	e.doc.selected[e.node] = true
}

// clickOption - selects the option within its enclosing native select
func (e *element) clickOption() {
	if owner := ancestor(e.node, func(n *html.Node) bool { return n.Data == "select" }); owner != nil {
		for _, n := range e.doc.doc.FindNodes(owner).Find("option").Nodes {
			e.doc.selected[n] = false
		}
	}
	e.doc.selected[e.node] = true
}

// clickRoleOption - selects the option within its enclosing composite widget
func (e *element) clickRoleOption() {
	owner := ancestor(e.node, func(n *html.Node) bool {
		role := nodeAttr(n, "role")
		return role == "combobox" || role == "listbox"
	})
	if owner == nil {
		owner = e.node.Parent
	}
	if owner != nil {
		for _, n := range e.doc.doc.FindNodes(owner).Find("[role='option']").Nodes {
			e.doc.selected[n] = false
		}
	}
	e.doc.selected[e.node] = true
}

func (e *element) Clear() error {
	e.doc.values[e.node] = ""
	return nil
}

func (e *element) Fill(value string) error {
	e.doc.values[e.node] = value
	return nil
}

func (e *element) ScrollIntoView() error {
	return nil
}

func ancestor(n *html.Node, match func(*html.Node) bool) *html.Node {
	for p := n.Parent; p != nil; p = p.Parent {
		if p.Type == html.ElementNode && match(p) {
			return p
		}
	}
	return nil
}

func nodeAttr(n *html.Node, name string) string {
	for _, a := range n.Attr {
		if a.Key == name {
			return a.Val
		}
	}
	return ""
}

var _ interfaces.Document = (*Document)(nil)
var _ interfaces.Element = (*element)(nil)
