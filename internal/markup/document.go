// Package markup provides CSS selector-based element lookups over parsed
// HTML documents.
package markup

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

var ErrParse = errors.New("failed to parse HTML")

// Document is a parsed HTML page.
type Document struct {
	doc *goquery.Document
}

// Element is a single node of a parsed document.
type Element struct {
	sel *goquery.Selection
}

// Parse parses an HTML document from r.
func Parse(r io.Reader) (*Document, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrParse, err)
	}
	return &Document{doc: doc}, nil
}

// ParseBytes parses an HTML document from raw bytes.
func ParseBytes(b []byte) (*Document, error) {
	return Parse(bytes.NewReader(b))
}

// ParseString parses an HTML document from a string.
func ParseString(s string) (*Document, error) {
	return ParseBytes([]byte(s))
}

// FindAll returns every element matching selector, in document order.
func (d *Document) FindAll(selector string) []*Element {
	return wrap(d.doc.Find(selector))
}

// Root returns the document node as an element.
func (d *Document) Root() *Element {
	return &Element{sel: d.doc.Selection}
}

// FindAll returns every descendant matching selector, in document order.
func (e *Element) FindAll(selector string) []*Element {
	return wrap(e.sel.Find(selector))
}

// Text returns the combined text content of the element and its
// descendants, untrimmed.
func (e *Element) Text() string {
	return e.sel.Text()
}

// Attr returns the named attribute and whether it was present.
func (e *Element) Attr(name string) (string, bool) {
	return e.sel.Attr(name)
}

// AttrOr returns the named attribute or fallback when absent.
func (e *Element) AttrOr(name, fallback string) string {
	return e.sel.AttrOr(name, fallback)
}

// Tag returns the element's tag name.
func (e *Element) Tag() string {
	return goquery.NodeName(e.sel)
}

// Parent returns the parent element, or nil at the top of the tree.
func (e *Element) Parent() *Element {
	parent := e.sel.Parent()
	if parent.Length() == 0 {
		return nil
	}
	return &Element{sel: parent}
}

// PrevSiblingIsElement reports whether the node immediately before this one
// is an element. Text and comment nodes count as siblings, so whitespace
// between tags makes this false.
func (e *Element) PrevSiblingIsElement() bool {
	if len(e.sel.Nodes) == 0 {
		return false
	}
	prev := e.sel.Nodes[0].PrevSibling
	return prev != nil && prev.Type == html.ElementNode
}

func wrap(sel *goquery.Selection) []*Element {
	elements := make([]*Element, 0, sel.Length())
	sel.Each(func(_ int, s *goquery.Selection) {
		elements = append(elements, &Element{sel: s})
	})
	return elements
}
