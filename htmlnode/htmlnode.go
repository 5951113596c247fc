// Package htmlnode wraps golang.org/x/net/html trees with attribute lookup
// and XPath selection that only ever yields element nodes.
package htmlnode

import (
	"errors"
	"fmt"
	"io"

	"github.com/antchfx/htmlquery"
	"golang.org/x/net/html"
)

// ErrNoBody is returned when a document has no <body> element to query.
var ErrNoBody = errors.New("htmlnode: document has no body")

// Parse reads an HTML document.
func Parse(r io.Reader) (*html.Node, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("htmlnode: parse: %w", err)
	}
	return doc, nil
}

// AttributeValue returns the value of attribute name on n. ok is false when
// n is nil, not an element, or lacks the attribute.
func AttributeValue(n *html.Node, name string) (value string, ok bool) {
	if n == nil || name == "" || n.Type != html.ElementNode {
		return "", false
	}
	for _, attr := range n.Attr {
		if attr.Namespace == "" && attr.Key == name {
			return attr.Val, true
		}
	}
	return "", false
}

// Body returns the <body> element of doc.
func Body(doc *html.Node) (*html.Node, error) {
	if doc == nil {
		return nil, ErrNoBody
	}
	body := findElement(doc, "body")
	if body == nil {
		return nil, ErrNoBody
	}
	return body, nil
}

// SelectNodes evaluates xpath relative to the document body.
func SelectNodes(doc *html.Node, xpath string) ([]*html.Node, error) {
	body, err := Body(doc)
	if err != nil {
		return nil, err
	}
	return SelectElementNodes(body, xpath)
}

// SelectSingleNode returns the first match of xpath relative to the document
// body, or nil.
func SelectSingleNode(doc *html.Node, xpath string) (*html.Node, error) {
	body, err := Body(doc)
	if err != nil {
		return nil, err
	}
	return SelectSingleElementNode(body, xpath)
}

// SelectElementNodes evaluates xpath relative to el and keeps element
// matches only; text, comment and attribute hits are dropped.
func SelectElementNodes(el *html.Node, xpath string) ([]*html.Node, error) {
	nodes, err := htmlquery.QueryAll(el, xpath)
	if err != nil {
		return nil, fmt.Errorf("htmlnode: xpath %q: %w", xpath, err)
	}

	elements := make([]*html.Node, 0, len(nodes))
	for _, n := range nodes {
		if n.Type == html.ElementNode {
			elements = append(elements, n)
		}
	}
	return elements, nil
}

// SelectSingleElementNode returns the first element matching xpath relative
// to el, or nil.
func SelectSingleElementNode(el *html.Node, xpath string) (*html.Node, error) {
	elements, err := SelectElementNodes(el, xpath)
	if err != nil || len(elements) == 0 {
		return nil, err
	}
	return elements[0], nil
}

func findElement(n *html.Node, tag string) *html.Node {
	if n.Type == html.ElementNode && n.Data == tag {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := findElement(c, tag); found != nil {
			return found
		}
	}
	return nil
}
