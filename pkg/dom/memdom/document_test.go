package memdom

import (
	"errors"
	"testing"

	"github.com/vango-dev/nsdom/pkg/dom"
)

func TestCreateElement(t *testing.T) {
	doc := NewDocument()

	el, err := doc.CreateElement("DIV")
	if err != nil {
		t.Fatalf("CreateElement() error = %v", err)
	}
	if got := el.LocalName(); got != "div" {
		t.Errorf("LocalName() = %q, want div", got)
	}
	if got := el.TagName(); got != "DIV" {
		t.Errorf("TagName() = %q, want DIV", got)
	}
	if got := el.NamespaceURI(); got != dom.HTMLNamespace {
		t.Errorf("NamespaceURI() = %q, want %q", got, dom.HTMLNamespace)
	}
	if el.NodeType() != dom.ElementNode {
		t.Errorf("NodeType() = %v", el.NodeType())
	}

	// Only ASCII letters change case.
	el, err = doc.CreateElement("\u00c4B")
	if err != nil {
		t.Fatalf("CreateElement() error = %v", err)
	}
	if got := el.LocalName(); got != "\u00c4b" {
		t.Errorf("LocalName() = %q, want \u00c4b", got)
	}
	if got := el.TagName(); got != "\u00c4B" {
		t.Errorf("TagName() = %q, want \u00c4B", got)
	}
}

func TestCreateElementNS(t *testing.T) {
	doc := NewDocument()

	el, err := doc.CreateElementNS(dom.SVGNamespace, "foreignObject")
	if err != nil {
		t.Fatalf("CreateElementNS() error = %v", err)
	}
	if got := el.TagName(); got != "foreignObject" {
		t.Errorf("TagName() = %q, want foreignObject", got)
	}
	if got := el.NamespaceURI(); got != dom.SVGNamespace {
		t.Errorf("NamespaceURI() = %q", got)
	}

	prefixed, err := doc.CreateElementNS(dom.SVGNamespace, "svg:g")
	if err != nil {
		t.Fatalf("CreateElementNS(svg:g) error = %v", err)
	}
	if prefixed.LocalName() != "g" || prefixed.TagName() != "svg:g" {
		t.Errorf("prefixed element = %q/%q", prefixed.LocalName(), prefixed.TagName())
	}
}

func TestCreateElementInvalidNames(t *testing.T) {
	doc := NewDocument()

	tests := []struct {
		name   string
		create func() error
		want   string
	}{
		{"empty tag", func() error { _, err := doc.CreateElement(""); return err }, dom.InvalidCharacterError},
		{"space in tag", func() error { _, err := doc.CreateElement("a b"); return err }, dom.InvalidCharacterError},
		{"digit start", func() error { _, err := doc.CreateElement("1div"); return err }, dom.InvalidCharacterError},
		{"double colon", func() error { _, err := doc.CreateElementNS(dom.SVGNamespace, "a:b:c"); return err }, dom.InvalidCharacterError},
		{"prefix without namespace", func() error { _, err := doc.CreateElementNS("", "svg:g"); return err }, dom.NamespaceError},
		{"xml prefix wrong namespace", func() error { _, err := doc.CreateElementNS(dom.SVGNamespace, "xml:g"); return err }, dom.NamespaceError},
		{"xmlns element", func() error { _, err := doc.CreateElementNS(dom.SVGNamespace, "xmlns"); return err }, dom.NamespaceError},
		{"xmlns namespace", func() error { _, err := doc.CreateElementNS(dom.XMLNSNamespace, "g"); return err }, dom.NamespaceError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.create()
			if err == nil {
				t.Fatal("expected error")
			}
			if !errors.Is(err, &dom.Exception{Name: tt.want}) {
				t.Errorf("error = %v, want %s", err, tt.want)
			}
		})
	}
}

func TestAttributes(t *testing.T) {
	doc := NewDocument()
	svg, _ := doc.CreateElementNS(dom.SVGNamespace, "svg")

	if err := svg.SetAttribute("viewBox", "0 0 50 20"); err != nil {
		t.Fatal(err)
	}
	if v, ok := svg.GetAttribute("viewBox"); !ok || v != "0 0 50 20" {
		t.Errorf("viewBox = %q, %v", v, ok)
	}
	if svg.HasAttribute("viewbox") {
		t.Error("attribute names on SVG elements are case-sensitive")
	}

	div := doc.MustCreateElement("div")
	if err := div.SetAttribute("DATA-X", "1"); err != nil {
		t.Fatal(err)
	}
	if v, _ := div.GetAttribute("data-x"); v != "1" {
		t.Errorf("HTML attribute names should be lowercased, got %q", v)
	}

	if err := svg.SetAttribute("bad name", "x"); !errors.Is(err, &dom.Exception{Name: dom.InvalidCharacterError}) {
		t.Errorf("SetAttribute(bad name) error = %v", err)
	}
}

func TestNamespacedAttributes(t *testing.T) {
	doc := NewDocument()
	img, _ := doc.CreateElementNS(dom.SVGNamespace, "image")

	if err := img.SetAttributeNS(dom.XLinkNamespace, "xlink:href", "test.jpg"); err != nil {
		t.Fatalf("SetAttributeNS() error = %v", err)
	}
	if v, ok := img.GetAttributeNS(dom.XLinkNamespace, "href"); !ok || v != "test.jpg" {
		t.Errorf("GetAttributeNS() = %q, %v", v, ok)
	}
	if !img.HasAttributeNS(dom.XLinkNamespace, "href") {
		t.Error("HasAttributeNS() = false")
	}
	if v, ok := img.GetAttribute("xlink:href"); !ok || v != "test.jpg" {
		t.Errorf("GetAttribute(qualified) = %q, %v", v, ok)
	}
	if img.HasAttributeNS("", "href") {
		t.Error("plain href must not match the xlink attribute")
	}

	if err := img.SetAttributeNS(dom.XLinkNamespace, "xlink:href", "other.jpg"); err != nil {
		t.Fatal(err)
	}
	if got := len(img.(*Element).Attributes()); got != 1 {
		t.Errorf("updating an attribute should not add one, have %d", got)
	}

	if err := img.RemoveAttributeNS(dom.XLinkNamespace, "href"); err != nil {
		t.Fatal(err)
	}
	if img.HasAttributeNS(dom.XLinkNamespace, "href") {
		t.Error("attribute still present after RemoveAttributeNS")
	}
	if err := img.RemoveAttributeNS(dom.XLinkNamespace, "href"); err != nil {
		t.Errorf("removing a missing attribute should be a no-op, got %v", err)
	}

	if err := img.SetAttributeNS("", "xlink:href", "x"); !errors.Is(err, &dom.Exception{Name: dom.NamespaceError}) {
		t.Errorf("prefixed name without namespace error = %v", err)
	}
	if err := img.SetAttributeNS(dom.SVGNamespace, "xml:lang", "en"); !errors.Is(err, &dom.Exception{Name: dom.NamespaceError}) {
		t.Errorf("xml prefix with wrong namespace error = %v", err)
	}
	if err := img.SetAttributeNS(dom.XMLNSNamespace, "xmlns", dom.SVGNamespace); err != nil {
		t.Errorf("xmlns in the xmlns namespace should be allowed, got %v", err)
	}
}

func TestSetClassName(t *testing.T) {
	doc := NewDocument()

	div := doc.MustCreateElement("div")
	if err := div.SetClassName("a b"); err != nil {
		t.Fatal(err)
	}
	if v, _ := div.GetAttribute("class"); v != "a b" {
		t.Errorf("class = %q", v)
	}

	svg, _ := doc.CreateElementNS(dom.SVGNamespace, "svg")
	if err := svg.SetClassName("x"); !errors.Is(err, &dom.Exception{Name: dom.NotSupportedError}) {
		t.Errorf("SetClassName on svg error = %v", err)
	}
}

func TestTreeOperations(t *testing.T) {
	doc := NewDocument()
	container := doc.MustCreateElement("div")
	a := doc.MustCreateElement("span")
	b := doc.MustCreateElement("p")

	if err := container.AppendChild(a); err != nil {
		t.Fatal(err)
	}
	if !container.FirstChild().IsSameNode(a) {
		t.Error("FirstChild() is not the appended node")
	}
	if !a.ParentNode().IsSameNode(container) {
		t.Error("ParentNode() mismatch")
	}

	if err := container.ReplaceChild(b, a); err != nil {
		t.Fatal(err)
	}
	if !container.FirstChild().IsSameNode(b) || a.ParentNode() != nil {
		t.Error("ReplaceChild() did not swap nodes")
	}

	if err := container.RemoveChild(a); !errors.Is(err, &dom.Exception{Name: dom.NotFoundError}) {
		t.Errorf("RemoveChild(non-child) error = %v", err)
	}
	if err := container.ReplaceChild(a, a); !errors.Is(err, &dom.Exception{Name: dom.NotFoundError}) {
		t.Errorf("ReplaceChild(non-child) error = %v", err)
	}
	if err := b.AppendChild(container); !errors.Is(err, &dom.Exception{Name: dom.HierarchyRequestError}) {
		t.Errorf("appending an ancestor error = %v", err)
	}

	text := doc.CreateTextNode("hi")
	if err := text.AppendChild(a); !errors.Is(err, &dom.Exception{Name: dom.HierarchyRequestError}) {
		t.Errorf("appending under text error = %v", err)
	}

	other := NewDocument().MustCreateElement("div")
	if err := container.AppendChild(other); !errors.Is(err, &dom.Exception{Name: dom.WrongDocumentError}) {
		t.Errorf("foreign node error = %v", err)
	}

	// Appending an attached node moves it.
	second := doc.MustCreateElement("section")
	if err := second.AppendChild(b); err != nil {
		t.Fatal(err)
	}
	if container.FirstChild() != nil {
		t.Error("node was not moved out of its old parent")
	}
	if len(dom.Children(second)) != 1 || !dom.Contains(second, b) {
		t.Error("node was not moved into the new parent")
	}
}

func TestReplacedSubtreesLeaveTheTree(t *testing.T) {
	doc := NewDocument()
	container := doc.MustCreateElement("div")

	build := func() *Element {
		svg, _ := doc.CreateElementNS(dom.SVGNamespace, "svg")
		g, _ := doc.CreateElementNS(dom.SVGNamespace, "g")
		if err := g.AppendChild(doc.CreateTextNode("x")); err != nil {
			t.Fatal(err)
		}
		if err := svg.AppendChild(g); err != nil {
			t.Fatal(err)
		}
		return svg.(*Element)
	}

	current := build()
	if err := container.AppendChild(current); err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 50; i++ {
		next := build()
		if err := container.ReplaceChild(next, current); err != nil {
			t.Fatal(err)
		}
		if got := current.TreeSize(); got != 3 {
			t.Fatalf("replaced subtree TreeSize() = %d, want 3", got)
		}
		current = next
	}
	if got := container.TreeSize(); got != 4 {
		t.Errorf("container TreeSize() = %d after 50 replaces, want 4", got)
	}

	if err := container.RemoveChild(current); err != nil {
		t.Fatal(err)
	}
	if got := container.TreeSize(); got != 1 {
		t.Errorf("container TreeSize() = %d after remove, want 1", got)
	}

	// A detached subtree can still be navigated and reinserted.
	g := current.FirstChild()
	if g == nil || g.FirstChild() == nil {
		t.Fatal("detached subtree lost its children")
	}
	if err := container.AppendChild(current); err != nil {
		t.Fatal(err)
	}
	if got := container.TreeSize(); got != 4 {
		t.Errorf("container TreeSize() = %d after reinsert, want 4", got)
	}
	if !container.FirstChild().FirstChild().IsSameNode(g) {
		t.Error("reinserted subtree is not reachable from the container")
	}
}

func TestMutationRecords(t *testing.T) {
	doc := NewDocument()
	container := doc.MustCreateElement("div")
	svg, _ := doc.CreateElementNS(dom.SVGNamespace, "svg")

	rec := doc.Record()
	_ = container.AppendChild(svg)
	_ = svg.SetAttribute("width", "200")
	_ = svg.SetAttributeNS(dom.XLinkNamespace, "xlink:href", "#a")
	_ = svg.RemoveAttributeNS(dom.XLinkNamespace, "href")
	text := doc.CreateTextNode("a")
	text.SetData("b")
	text.SetData("b")
	rec.Stop()
	_ = svg.SetAttribute("width", "300")

	got := rec.Mutations()
	want := []struct {
		typ     MutationType
		name    string
		deleted bool
	}{
		{MutationChildList, "", false},
		{MutationAttributes, "width", false},
		{MutationAttributes, "xlink:href", false},
		{MutationAttributes, "xlink:href", true},
		{MutationCharacterData, "", false},
	}
	if len(got) != len(want) {
		t.Fatalf("recorded %d mutations, want %d: %+v", len(got), len(want), got)
	}
	for i, w := range want {
		if got[i].Type != w.typ || got[i].Name != w.name || got[i].Deleted != w.deleted {
			t.Errorf("mutation %d = %+v, want %+v", i, got[i], w)
		}
	}
	if got[0].Added != svg.(*Element).ID() {
		t.Errorf("childList Added = %d, want %d", got[0].Added, svg.(*Element).ID())
	}
	if got[2].Namespace != dom.XLinkNamespace {
		t.Errorf("namespace = %q", got[2].Namespace)
	}
}

func TestOuterHTML(t *testing.T) {
	doc := NewDocument()
	container := doc.MustCreateElement("div")
	svg, _ := doc.CreateElementNS(dom.SVGNamespace, "svg")
	_ = svg.SetAttribute("viewBox", "0 0 1 1")
	img, _ := doc.CreateElementNS(dom.SVGNamespace, "image")
	_ = img.SetAttributeNS(dom.XLinkNamespace, "xlink:href", `a"b`)
	_ = svg.AppendChild(img)
	_ = container.AppendChild(svg)
	br := doc.MustCreateElement("br")
	_ = container.AppendChild(br)
	_ = container.AppendChild(doc.CreateTextNode("<x>"))

	want := `<svg viewBox="0 0 1 1"><image xlink:href="a&#34;b"></image></svg><br>&lt;x&gt;`
	if got := InnerHTML(container); got != want {
		t.Errorf("InnerHTML() =\n%s\nwant\n%s", got, want)
	}
	if got := Describe(svg); got != "svg{"+dom.SVGNamespace+"}" {
		t.Errorf("Describe() = %q", got)
	}
	if got := Describe(nil); got != "<nil>" {
		t.Errorf("Describe(nil) = %q", got)
	}
}
