package memdom

import (
	"strings"

	"github.com/vango-dev/nsdom/pkg/dom"
)

// validateName returns an InvalidCharacterError for names that are not XML Names.
func validateName(name string) error {
	if !dom.ValidName(name) {
		return dom.NewException(dom.InvalidCharacterError, "%q is not a valid name", name)
	}
	return nil
}

// validateAndExtract runs the DOM "validate and extract" algorithm and
// returns the prefix and local name of qualifiedName.
func validateAndExtract(namespaceURI, qualifiedName string) (prefix, local string, err error) {
	if err := validateName(qualifiedName); err != nil {
		return "", "", err
	}
	prefix, local = dom.SplitQualifiedName(qualifiedName)
	if prefix != "" || local != qualifiedName {
		if prefix == "" || !dom.ValidName(local) || strings.ContainsRune(local, ':') {
			return "", "", dom.NewException(dom.InvalidCharacterError, "%q is not a valid qualified name", qualifiedName)
		}
	}

	switch {
	case prefix != "" && namespaceURI == "":
		return "", "", dom.NewException(dom.NamespaceError, "prefix %q requires a namespace", prefix)
	case prefix == "xml" && namespaceURI != dom.XMLNamespace:
		return "", "", dom.NewException(dom.NamespaceError, "prefix xml is bound to %s", dom.XMLNamespace)
	case (qualifiedName == "xmlns" || prefix == "xmlns") && namespaceURI != dom.XMLNSNamespace:
		return "", "", dom.NewException(dom.NamespaceError, "%q is reserved for %s", qualifiedName, dom.XMLNSNamespace)
	case namespaceURI == dom.XMLNSNamespace && qualifiedName != "xmlns" && prefix != "xmlns":
		return "", "", dom.NewException(dom.NamespaceError, "%s only holds xmlns attributes", dom.XMLNSNamespace)
	}
	return prefix, local, nil
}

// asciiLower lowercases ASCII letters only, as HTML documents do for
// element and attribute names.
func asciiLower(s string) string {
	return strings.Map(func(r rune) rune {
		if 'A' <= r && r <= 'Z' {
			return r + ('a' - 'A')
		}
		return r
	}, s)
}

func asciiUpper(s string) string {
	return strings.Map(func(r rune) rune {
		if 'a' <= r && r <= 'z' {
			return r - ('a' - 'A')
		}
		return r
	}, s)
}
