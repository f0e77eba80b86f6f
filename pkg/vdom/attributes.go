package vdom

import "strconv"

// attr creates an Attr with the given key and value.
func attr(key string, value any) Attr {
	return Attr{Key: key, Value: value}
}

// A creates an attribute with any key. A nil value leaves it unset.
func A(key string, value any) Attr { return attr(key, value) }

// ID sets the id attribute.
func ID(id string) Attr { return attr("id", id) }

// Class sets the class attribute. One class is a scalar; several are a
// list, serialized comma-joined in order.
func Class(classes ...string) Attr {
	if len(classes) == 1 {
		return attr("class", classes[0])
	}
	return attr("class", append([]string(nil), classes...))
}

// Namespace attributes

// Xmlns sets the xmlns attribute, which also decides the namespace of the
// element and of its descendants.
func Xmlns(uri string) Attr { return attr("xmlns", uri) }

// XlinkHref sets xlink:href in the XLink namespace.
func XlinkHref(href string) Attr { return attr("xlink:href", href) }

// XMLLang sets xml:lang in the XML namespace.
func XMLLang(lang string) Attr { return attr("xml:lang", lang) }

// SVG presentation attributes

// Width sets the width attribute.
func Width(w int) Attr { return attr("width", w) }

// Height sets the height attribute.
func Height(h int) Attr { return attr("height", h) }

// ViewBox sets the viewBox attribute.
func ViewBox(minX, minY, width, height float64) Attr {
	return attr("viewBox", formatFloat(minX)+" "+formatFloat(minY)+" "+
		formatFloat(width)+" "+formatFloat(height))
}

// Version sets the version attribute.
func Version(v string) Attr { return attr("version", v) }

// BaseProfile sets the baseProfile attribute.
func BaseProfile(p string) Attr { return attr("baseProfile", p) }

// D sets the path data attribute.
func D(d string) Attr { return attr("d", d) }

// Fill sets the fill attribute.
func Fill(color string) Attr { return attr("fill", color) }

// Stroke sets the stroke attribute.
func Stroke(color string) Attr { return attr("stroke", color) }

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
