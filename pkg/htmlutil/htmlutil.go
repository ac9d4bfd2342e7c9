package htmlutil

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

var innerWhitespace = regexp.MustCompile(`\s+`)

func removeNonPrintable(s string) string {
	newStr := strings.Builder{}
	for _, c := range s {
		if unicode.IsPrint(c) || unicode.IsSpace(c) {
			newStr.WriteRune(c)
		}
	}
	return newStr.String()
}

// elements that start a new line of visible text
var blockElements = map[atom.Atom]bool{
	atom.Address:    true,
	atom.Article:    true,
	atom.Aside:      true,
	atom.Blockquote: true,
	atom.Br:         true,
	atom.Dd:         true,
	atom.Div:        true,
	atom.Dl:         true,
	atom.Dt:         true,
	atom.Figcaption: true,
	atom.Figure:     true,
	atom.Footer:     true,
	atom.Form:       true,
	atom.H1:         true,
	atom.H2:         true,
	atom.H3:         true,
	atom.H4:         true,
	atom.H5:         true,
	atom.H6:         true,
	atom.Header:     true,
	atom.Hr:         true,
	atom.Li:         true,
	atom.Main:       true,
	atom.Nav:        true,
	atom.Ol:         true,
	atom.Option:     true,
	atom.P:          true,
	atom.Pre:        true,
	atom.Section:    true,
	atom.Select:     true,
	atom.Table:      true,
	atom.Tbody:      true,
	atom.Td:         true,
	atom.Tfoot:      true,
	atom.Th:         true,
	atom.Thead:      true,
	atom.Tr:         true,
	atom.Ul:         true,
}

// elements whose contents are never rendered
var hiddenElements = map[atom.Atom]bool{
	atom.Script:   true,
	atom.Style:    true,
	atom.Noscript: true,
	atom.Template: true,
}

type lineWriter struct {
	lines   []string
	current strings.Builder
}

func (w *lineWriter) flush() {
	line := strings.TrimSpace(w.current.String())
	w.current.Reset()
	if line != "" {
		w.lines = append(w.lines, line)
	}
}

func (w *lineWriter) write(text string) {
	text = removeNonPrintable(text)
	text = innerWhitespace.ReplaceAllString(text, " ")
	w.current.WriteString(text)
}

func (w *lineWriter) walk(node *html.Node) {
	switch node.Type {
	case html.TextNode:
		w.write(node.Data)
		return
	case html.ElementNode:
		if hiddenElements[node.DataAtom] {
			return
		}
	case html.CommentNode, html.DoctypeNode:
		return
	}

	block := node.Type == html.ElementNode && blockElements[node.DataAtom]
	if block {
		w.flush()
	}
	for child := node.FirstChild; child != nil; child = child.NextSibling {
		w.walk(child)
	}
	if block {
		w.flush()
	}
}

// VisibleLines returns the lines of text a browser would render for node.
// Block-level elements break lines, inline runs are joined and whitespace is
// collapsed. Empty lines are dropped.
func VisibleLines(node *html.Node) []string {
	if node == nil {
		return nil
	}
	w := &lineWriter{}
	w.walk(node)
	w.flush()
	return w.lines
}

// VisibleText is VisibleLines joined with "\n".
func VisibleText(node *html.Node) string {
	return strings.Join(VisibleLines(node), "\n")
}
