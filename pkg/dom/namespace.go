package dom

import "strings"

// Well-known namespace URIs.
const (
	// HTMLNamespace is the namespace of elements created by
	// Document.CreateElement in an HTML document.
	HTMLNamespace = "http://www.w3.org/1999/xhtml"

	// SVGNamespace is the namespace every <svg> element opens.
	SVGNamespace = "http://www.w3.org/2000/svg"

	// MathMLNamespace is the MathML namespace.
	MathMLNamespace = "http://www.w3.org/1998/Math/MathML"

	// XLinkNamespace is the fixed namespace bound to the xlink: prefix.
	XLinkNamespace = "http://www.w3.org/1999/xlink"

	// XMLNamespace is the fixed namespace bound to the xml: prefix.
	XMLNamespace = "http://www.w3.org/XML/1998/namespace"

	// XMLNSNamespace is the namespace of xmlns and xmlns:* attributes.
	XMLNSNamespace = "http://www.w3.org/2000/xmlns/"
)

// prefixNamespaces maps reserved attribute prefixes to their fixed namespace.
var prefixNamespaces = map[string]string{
	"xlink": XLinkNamespace,
	"xml":   XMLNamespace,
}

// PrefixNamespace returns the fixed namespace bound to an attribute prefix
// such as "xlink", and whether the prefix is known.
func PrefixNamespace(prefix string) (string, bool) {
	ns, ok := prefixNamespaces[prefix]
	return ns, ok
}

// SplitQualifiedName splits "prefix:local" into its parts.
// A name without a colon has an empty prefix.
func SplitQualifiedName(name string) (prefix, local string) {
	if prefix, local, ok := strings.Cut(name, ":"); ok {
		return prefix, local
	}
	return "", name
}
