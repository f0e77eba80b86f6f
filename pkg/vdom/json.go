package vdom

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// jsonNode is the object form of a vnode:
//
//	{"tag": "svg", "attrs": {"height": 200}, "children": {...}, "text": ""}
//
// A "dom" key is tolerated and ignored.
type jsonNode struct {
	Tag      string          `json:"tag,omitempty"`
	Attrs    map[string]any  `json:"attrs,omitempty"`
	Children json.RawMessage `json:"children,omitempty"`
	Text     *string         `json:"text,omitempty"`
	DOM      json.RawMessage `json:"dom,omitempty"`
}

// MarshalJSON implements json.Marshaler.
func (v *VNode) MarshalJSON() ([]byte, error) {
	if v == nil {
		return []byte("null"), nil
	}
	out := jsonNode{}
	switch v.Kind {
	case KindText:
		text := v.Text
		out.Text = &text
	default:
		out.Tag = v.Tag
		if len(v.Props) > 0 {
			out.Attrs = map[string]any(v.Props)
		}
	}
	if v.Child != nil {
		child, err := json.Marshal(v.Child)
		if err != nil {
			return nil, err
		}
		out.Children = child
	}
	return json.Marshal(out)
}

// UnmarshalJSON implements json.Unmarshaler. Numbers in attrs decode as
// json.Number so they keep their written form.
func (v *VNode) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var in jsonNode
	if err := dec.Decode(&in); err != nil {
		return err
	}

	*v = VNode{}
	switch {
	case in.Tag != "":
		v.Kind = KindElement
		v.Tag = in.Tag
		v.Props = Props(in.Attrs)
		if v.Props == nil {
			v.Props = Props{}
		}
		if in.Text != nil {
			return fmt.Errorf("vnode %q: element nodes have no text", in.Tag)
		}
	case in.Text != nil:
		v.Kind = KindText
		v.Text = *in.Text
		if len(in.Attrs) > 0 {
			return fmt.Errorf("text vnode: attrs are not allowed")
		}
	default:
		// No tag: the placeholder.
		v.Kind = KindText
	}

	child, err := decodeChild(in.Children)
	if err != nil {
		return err
	}
	v.Child = child
	return nil
}

func decodeChild(raw json.RawMessage) (*VNode, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return nil, nil
	}
	if raw[0] == '"' {
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return nil, err
		}
		return Text(s), nil
	}
	if raw[0] == '[' {
		var list []json.RawMessage
		if err := json.Unmarshal(raw, &list); err != nil {
			return nil, err
		}
		switch len(list) {
		case 0:
			return nil, nil
		case 1:
			return decodeChild(list[0])
		default:
			return nil, fmt.Errorf("children: %d nodes given, at most one is supported", len(list))
		}
	}
	child := &VNode{}
	if err := json.Unmarshal(raw, child); err != nil {
		return nil, err
	}
	return child, nil
}

// Unmarshal decodes a vnode from JSON. The literal null yields nil.
func Unmarshal(data []byte) (*VNode, error) {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		return nil, nil
	}
	v := &VNode{}
	if err := json.Unmarshal(data, v); err != nil {
		return nil, err
	}
	return v, nil
}
