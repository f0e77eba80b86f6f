package vdom

import "testing"

func TestH(t *testing.T) {
	child := H("circle", nil, nil)
	n := H("svg", Props{"height": 200}, child)

	if n.Kind != KindElement || n.Tag != "svg" {
		t.Fatalf("H() = %v %q", n.Kind, n.Tag)
	}
	if n.Props["height"] != 200 {
		t.Errorf("Props[height] = %v, want 200", n.Props["height"])
	}
	if n.Child != child {
		t.Error("Child not set")
	}
	if n.DOM != nil {
		t.Error("DOM should be nil before mount")
	}
	if H("div", nil, nil).Props == nil {
		t.Error("nil props should become an empty map")
	}
}

func TestEl(t *testing.T) {
	tests := []struct {
		name      string
		node      *VNode
		wantProps Props
		wantChild string
	}{
		{
			name:      "attrs and child",
			node:      SVG(Width(200), Height(100), Circle()),
			wantProps: Props{"width": 200, "height": 100},
			wantChild: "circle",
		},
		{
			name:      "nil args ignored",
			node:      Div(nil, Attr{}, (*VNode)(nil)),
			wantProps: Props{},
		},
		{
			name:      "attr slice",
			node:      G([]Attr{ID("a"), Fill("red")}),
			wantProps: Props{"id": "a", "fill": "red"},
		},
		{
			name:      "props merged",
			node:      Path(Props{"d": "M0 0"}, Stroke("blue")),
			wantProps: Props{"d": "M0 0", "stroke": "blue"},
		},
		{
			name:      "string child",
			node:      Span("hello"),
			wantProps: Props{},
			wantChild: "#text",
		},
		{
			name:      "later attr wins",
			node:      Rect(Width(1), Width(2)),
			wantProps: Props{"width": 2},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if len(tt.node.Props) != len(tt.wantProps) {
				t.Fatalf("Props = %v, want %v", tt.node.Props, tt.wantProps)
			}
			for k, v := range tt.wantProps {
				if tt.node.Props[k] != v {
					t.Errorf("Props[%q] = %v, want %v", k, tt.node.Props[k], v)
				}
			}
			if tt.wantChild == "" {
				if tt.node.Child != nil {
					t.Errorf("Child = %s, want none", tt.node.Child.Name())
				}
				return
			}
			if got := tt.node.Child.Name(); got != tt.wantChild {
				t.Errorf("Child = %s, want %s", got, tt.wantChild)
			}
			if err := tt.node.Validate(); err != nil {
				t.Errorf("Validate() = %v", err)
			}
		})
	}
}

func TestElKeepsFirstChild(t *testing.T) {
	first := Circle()
	n := G(first, Rect(), Path())
	if n.Child != first {
		t.Error("first child should be kept")
	}
	if n.extra != 2 {
		t.Errorf("extra = %d, want 2", n.extra)
	}
}

func TestTagHelpers(t *testing.T) {
	tests := []struct {
		fn   func(...any) *VNode
		want string
	}{
		{Div, "div"},
		{Span, "span"},
		{P, "p"},
		{SVG, "svg"},
		{G, "g"},
		{Path, "path"},
		{Circle, "circle"},
		{Rect, "rect"},
		{Image, "image"},
		{Use, "use"},
		{Math, "math"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := tt.fn().Tag; got != tt.want {
				t.Errorf("Tag = %q, want %q", got, tt.want)
			}
		})
	}
}
