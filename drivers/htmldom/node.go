// Package htmldom implements the bem Node interface on top of
// golang.org/x/net/html trees.
package htmldom

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/atdiar/bem"
	"github.com/yosssi/gohtml"
	"golang.org/x/net/html"
)

// Node wraps an *html.Node. Only element nodes carry classes.
type Node struct {
	raw *html.Node
}

func Wrap(n *html.Node) Node {
	return Node{n}
}

func (n Node) Raw() *html.Node { return n.raw }

func (n Node) ClassName() string {
	if n.raw == nil {
		return ""
	}
	for _, a := range n.raw.Attr {
		if a.Namespace == "" && a.Key == "class" {
			return a.Val
		}
	}
	return ""
}

func (n Node) SetClassName(class string) {
	if n.raw == nil || n.raw.Type != html.ElementNode {
		return
	}
	for i, a := range n.raw.Attr {
		if a.Namespace == "" && a.Key == "class" {
			n.raw.Attr[i].Val = class
			return
		}
	}
	n.raw.Attr = append(n.raw.Attr, html.Attribute{Key: "class", Val: class})
}

// Find walks the descendants of n in document order.
func (n Node) Find(class string) []bem.Node {
	var res []bem.Node
	if n.raw == nil {
		return res
	}
	var traverse func(*html.Node)
	traverse = func(h *html.Node) {
		for c := h.FirstChild; c != nil; c = c.NextSibling {
			if c.Type == html.ElementNode && bem.HasClass(Wrap(c).ClassName(), class) {
				res = append(res, Wrap(c))
			}
			traverse(c)
		}
	}
	traverse(n.raw)
	return res
}

// String returns the opening tag of n, which is what log lines show.
func (n Node) String() string {
	if n.raw == nil {
		return "<nil>"
	}
	if n.raw.Type != html.ElementNode {
		return n.raw.Data
	}
	var sb strings.Builder
	sb.WriteString("<" + n.raw.Data)
	for _, a := range n.raw.Attr {
		fmt.Fprintf(&sb, " %s=%q", a.Key, a.Val)
	}
	sb.WriteString(">")
	return sb.String()
}

// Parse reads a full HTML document.
func Parse(r io.Reader) (Node, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return Node{}, fmt.Errorf("parsing html: %w", err)
	}
	return Wrap(doc), nil
}

var (
	ErrNoRoot = errors.New("block root element not found")
)

// Mount returns the block named block whose root is the first element at or
// below doc carrying the block class.
func Mount(doc Node, block string, options ...bem.Option) (*bem.Block, error) {
	root, ok := Root(doc, block)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrNoRoot, block)
	}
	return bem.NewBlock(bem.NewWidget(block, root), options...), nil
}

// Root returns the first element at or below doc carrying the block class.
func Root(doc Node, block string) (Node, bool) {
	if doc.raw == nil {
		return Node{}, false
	}
	if doc.raw.Type == html.ElementNode && bem.HasClass(doc.ClassName(), block) {
		return doc, true
	}
	nodes := doc.Find(block)
	if len(nodes) == 0 {
		return Node{}, false
	}
	return nodes[0].(Node), true
}

func Render(w io.Writer, n Node) error {
	if n.raw == nil {
		return nil
	}
	if err := html.Render(w, n.raw); err != nil {
		return fmt.Errorf("rendering html: %w", err)
	}
	return nil
}

// RenderPretty renders n indented.
func RenderPretty(w io.Writer, n Node) error {
	var buf bytes.Buffer
	if err := Render(&buf, n); err != nil {
		return err
	}
	_, err := io.WriteString(w, gohtml.Format(buf.String()))
	return err
}
