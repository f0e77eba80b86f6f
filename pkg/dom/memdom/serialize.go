package memdom

import (
	"strings"

	"golang.org/x/net/html"

	"github.com/vango-dev/nsdom/pkg/dom"
)

// voidElements are HTML elements written without a closing tag.
var voidElements = map[string]bool{
	"area":   true,
	"base":   true,
	"br":     true,
	"col":    true,
	"embed":  true,
	"hr":     true,
	"img":    true,
	"input":  true,
	"link":   true,
	"meta":   true,
	"source": true,
	"track":  true,
	"wbr":    true,
}

// OuterHTML returns markup for n and its subtree. It is a diagnostic view:
// attribute order is insertion order and foreign elements are written with
// explicit end tags.
func OuterHTML(n dom.Node) string {
	var b strings.Builder
	writeNode(&b, n)
	return b.String()
}

// InnerHTML returns markup for the children of n.
func InnerHTML(n dom.Node) string {
	var b strings.Builder
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		writeNode(&b, c)
	}
	return b.String()
}

func writeNode(b *strings.Builder, n dom.Node) {
	switch v := n.(type) {
	case *Text:
		b.WriteString(html.EscapeString(v.Data()))
	case *Element:
		name := v.qualifiedName()
		b.WriteByte('<')
		b.WriteString(name)
		for _, a := range v.Attributes() {
			b.WriteByte(' ')
			b.WriteString(a.Name)
			b.WriteString(`="`)
			b.WriteString(html.EscapeString(a.Value))
			b.WriteByte('"')
		}
		b.WriteByte('>')
		if v.isHTML() && voidElements[v.LocalName()] && v.hn.FirstChild == nil {
			return
		}
		for c := v.FirstChild(); c != nil; c = c.NextSibling() {
			writeNode(b, c)
		}
		b.WriteString("</")
		b.WriteString(name)
		b.WriteByte('>')
	}
}

// Describe returns a one-node summary such as `svg{http://www.w3.org/2000/svg}`.
func Describe(n dom.Node) string {
	switch v := n.(type) {
	case *Text:
		return "#text"
	case *Element:
		return v.qualifiedName() + "{" + v.NamespaceURI() + "}"
	case nil:
		return "<nil>"
	default:
		return "#foreign"
	}
}
