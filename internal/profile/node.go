package profile

import (
	"context"
	"fmt"
	"io"
	"strings"

	"overstats/pkg/htmlutil"

	"github.com/PuerkitoBio/goquery"
)

// Node is an element of a parsed profile page.
type Node interface {
	// Select returns every descendant matching sel, in document order.
	Select(sel Selector) []Node
	// Text returns the visible text of the node, one rendered line per "\n"
	// separated line.
	Text() string
	Attr(name string) (string, bool)
}

// Provider supplies the parsed profile page. It owns network I/O, timeouts and
// retries.
type Provider interface {
	Document(ctx context.Context) (Node, error)
}

// ProviderFunc adapts a function to Provider.
type ProviderFunc func(ctx context.Context) (Node, error)

func (f ProviderFunc) Document(ctx context.Context) (Node, error) {
	return f(ctx)
}

// Selector matches elements by tag, attribute equality and class. Empty fields
// are not constrained.
type Selector struct {
	Tag   string
	Attr  string
	Value string
	Class string
}

func ByAttr(tag, attr, value string) Selector {
	return Selector{Tag: tag, Attr: attr, Value: value}
}

func ByClass(class string) Selector {
	return Selector{Class: class}
}

func ByTag(tag string) Selector {
	return Selector{Tag: tag}
}

// css renders the parts of sel that are plain identifiers. Attribute values
// are compared in Select instead, they may hold characters CSS would need
// escaped.
func (sel Selector) css() string {
	var b strings.Builder
	b.WriteString(sel.Tag)
	if sel.Attr != "" {
		fmt.Fprintf(&b, "[%s]", sel.Attr)
	}
	if sel.Class != "" {
		b.WriteByte('.')
		b.WriteString(sel.Class)
	}
	if b.Len() == 0 {
		return "*"
	}
	return b.String()
}

// String renders sel like a CSS selector, for messages.
func (sel Selector) String() string {
	var b strings.Builder
	b.WriteString(sel.Tag)
	if sel.Attr != "" {
		fmt.Fprintf(&b, "[%s=%q]", sel.Attr, sel.Value)
	}
	if sel.Class != "" {
		b.WriteByte('.')
		b.WriteString(sel.Class)
	}
	if b.Len() == 0 {
		return "*"
	}
	return b.String()
}

type document struct {
	sel *goquery.Selection
}

// NewDocument wraps a goquery document as a Node.
func NewDocument(doc *goquery.Document) Node {
	return document{sel: doc.Selection}
}

// ParseDocument parses an html page into a Node.
func ParseDocument(r io.Reader) (Node, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, err
	}
	return NewDocument(doc), nil
}

func (d document) Select(sel Selector) []Node {
	matched := d.sel.Find(sel.css())
	if sel.Attr != "" {
		matched = matched.FilterFunction(func(_ int, s *goquery.Selection) bool {
			value, ok := s.Attr(sel.Attr)
			return ok && value == sel.Value
		})
	}
	nodes := make([]Node, 0, matched.Length())
	matched.Each(func(_ int, s *goquery.Selection) {
		nodes = append(nodes, document{sel: s})
	})
	return nodes
}

func (d document) Text() string {
	var lines []string
	for _, n := range d.sel.Nodes {
		lines = append(lines, htmlutil.VisibleLines(n)...)
	}
	return strings.Join(lines, "\n")
}

func (d document) Attr(name string) (string, bool) {
	return d.sel.Attr(name)
}
