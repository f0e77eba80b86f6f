package vdom

import (
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// ValueKind discriminates AttrValue.
type ValueKind uint8

const (
	ValueUnset ValueKind = iota
	ValueScalar
	ValueList
)

// AttrValue is a normalized attribute value: unset, a scalar string, or an
// ordered list of strings (class only).
type AttrValue struct {
	kind   ValueKind
	scalar string
	list   []string
}

// Unset is the absent attribute value.
var Unset = AttrValue{}

// Scalar returns a scalar value.
func Scalar(s string) AttrValue {
	return AttrValue{kind: ValueScalar, scalar: s}
}

// List returns a list value.
func List(items ...string) AttrValue {
	return AttrValue{kind: ValueList, list: append([]string(nil), items...)}
}

// Kind returns the variant of v.
func (v AttrValue) Kind() ValueKind { return v.kind }

// IsSet reports whether v is present.
func (v AttrValue) IsSet() bool { return v.kind != ValueUnset }

// Items returns a copy of the list items of v, or nil for other variants.
func (v AttrValue) Items() []string {
	if v.kind != ValueList {
		return nil
	}
	return append([]string(nil), v.list...)
}

// Serialize returns the string written to the DOM. Lists join with ",".
func (v AttrValue) Serialize() string {
	switch v.kind {
	case ValueScalar:
		return v.scalar
	case ValueList:
		return strings.Join(v.list, ",")
	default:
		return ""
	}
}

// Equal compares two values by presence and serialized form.
func (v AttrValue) Equal(other AttrValue) bool {
	if v.IsSet() != other.IsSet() {
		return false
	}
	return v.Serialize() == other.Serialize()
}

// MarshalJSON writes Unset as null, a scalar as a string and a list as an
// array, the forms ValueOf reads back.
func (v AttrValue) MarshalJSON() ([]byte, error) {
	switch v.kind {
	case ValueScalar:
		return json.Marshal(v.scalar)
	case ValueList:
		items := v.list
		if items == nil {
			items = []string{}
		}
		return json.Marshal(items)
	default:
		return []byte("null"), nil
	}
}

// UnmarshalJSON implements json.Unmarshaler for the forms MarshalJSON writes.
func (v *AttrValue) UnmarshalJSON(data []byte) error {
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	switch raw := raw.(type) {
	case nil:
		*v = Unset
	case string:
		*v = Scalar(raw)
	case []any:
		items := make([]string, 0, len(raw))
		for _, item := range raw {
			s, ok := item.(string)
			if !ok {
				return fmt.Errorf("attribute list item: unsupported value of type %T", item)
			}
			items = append(items, s)
		}
		*v = List(items...)
	default:
		return fmt.Errorf("attribute value: unsupported value of type %T", raw)
	}
	return nil
}

// String implements fmt.Stringer.
func (v AttrValue) String() string {
	switch v.kind {
	case ValueScalar:
		return strconv.Quote(v.scalar)
	case ValueList:
		return fmt.Sprintf("%q", v.list)
	default:
		return "<unset>"
	}
}

// Attrs is a normalized attribute mapping. Absent keys are unset.
type Attrs map[string]AttrValue

// Get returns the value for key, Unset if absent.
func (a Attrs) Get(key string) AttrValue {
	return a[key]
}

// Keys returns the set keys in sorted order.
func (a Attrs) Keys() []string {
	keys := make([]string, 0, len(a))
	for k, v := range a {
		if v.IsSet() {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	return keys
}

// valueError reports a prop value that cannot become an attribute.
type valueError struct {
	Key   string
	Value any
}

func (e *valueError) Error() string {
	switch e.Value.(type) {
	case []string, []any:
		if e.Key != "class" {
			return fmt.Sprintf("attribute %q: only class accepts a list", e.Key)
		}
	}
	return fmt.Sprintf("attribute %q: unsupported value of type %T", e.Key, e.Value)
}

// ValueOf normalizes a prop value for key.
func ValueOf(key string, value any) (AttrValue, error) {
	switch v := value.(type) {
	case nil:
		return Unset, nil
	case AttrValue:
		if v.kind == ValueList && key != "class" {
			return Unset, &valueError{Key: key, Value: v.list}
		}
		return v, nil
	case string:
		return Scalar(v), nil
	case bool:
		return Scalar(strconv.FormatBool(v)), nil
	case int:
		return Scalar(strconv.FormatInt(int64(v), 10)), nil
	case int8:
		return Scalar(strconv.FormatInt(int64(v), 10)), nil
	case int16:
		return Scalar(strconv.FormatInt(int64(v), 10)), nil
	case int32:
		return Scalar(strconv.FormatInt(int64(v), 10)), nil
	case int64:
		return Scalar(strconv.FormatInt(v, 10)), nil
	case uint:
		return Scalar(strconv.FormatUint(uint64(v), 10)), nil
	case uint8:
		return Scalar(strconv.FormatUint(uint64(v), 10)), nil
	case uint16:
		return Scalar(strconv.FormatUint(uint64(v), 10)), nil
	case uint32:
		return Scalar(strconv.FormatUint(uint64(v), 10)), nil
	case uint64:
		return Scalar(strconv.FormatUint(v, 10)), nil
	case float32:
		return Scalar(strconv.FormatFloat(float64(v), 'f', -1, 32)), nil
	case float64:
		return Scalar(strconv.FormatFloat(v, 'f', -1, 64)), nil
	case json.Number:
		return Scalar(v.String()), nil
	case []string:
		if key != "class" {
			return Unset, &valueError{Key: key, Value: value}
		}
		return List(v...), nil
	case []any:
		if key != "class" {
			return Unset, &valueError{Key: key, Value: value}
		}
		items := make([]string, 0, len(v))
		for _, item := range v {
			if item == nil {
				continue
			}
			iv, err := ValueOf("", item)
			if err != nil || iv.kind != ValueScalar {
				return Unset, &valueError{Key: key, Value: item}
			}
			items = append(items, iv.scalar)
		}
		return List(items...), nil
	default:
		return Unset, &valueError{Key: key, Value: value}
	}
}

// NormalizeProps converts props to Attrs. Keys are visited in sorted order
// so the reported key is the same on every call.
func NormalizeProps(props Props) (Attrs, error) {
	attrs := make(Attrs, len(props))
	if len(props) == 0 {
		return attrs, nil
	}
	keys := make([]string, 0, len(props))
	for k := range props {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		v, err := ValueOf(k, props[k])
		if err != nil {
			return nil, err
		}
		if v.IsSet() {
			attrs[k] = v
		}
	}
	return attrs, nil
}
