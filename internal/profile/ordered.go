package profile

import (
	"bytes"
	"encoding/json"
)

// Ordered is a string keyed map that remembers insertion order. Keys follow the
// order in which they appear on the profile page.
//
// The zero value is an empty map ready to use.
type Ordered[V any] struct {
	keys   []string
	values map[string]V
}

// Set stores value under key. A key that is set again keeps its original
// position.
func (o *Ordered[V]) Set(key string, value V) {
	if o.values == nil {
		o.values = make(map[string]V)
	}
	if _, exists := o.values[key]; !exists {
		o.keys = append(o.keys, key)
	}
	o.values[key] = value
}

func (o Ordered[V]) Get(key string) (V, bool) {
	v, ok := o.values[key]
	return v, ok
}

// Keys returns a copy of the keys in insertion order.
func (o Ordered[V]) Keys() []string {
	return append([]string{}, o.keys...)
}

func (o Ordered[V]) Len() int {
	return len(o.keys)
}

// Each calls fn for every entry in insertion order.
func (o Ordered[V]) Each(fn func(key string, value V)) {
	for _, k := range o.keys {
		fn(k, o.values[k])
	}
}

// Clone returns a copy of o that shares nothing with it. Values are copied
// with clone, or as is when clone is nil.
func (o Ordered[V]) Clone(clone func(V) V) Ordered[V] {
	out := Ordered[V]{
		keys:   append([]string(nil), o.keys...),
		values: make(map[string]V, len(o.values)),
	}
	for k, v := range o.values {
		if clone != nil {
			v = clone(v)
		}
		out.values[k] = v
	}
	return out
}

// MarshalJSON encodes the map as a JSON object, preserving key order.
func (o Ordered[V]) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range o.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		value, err := json.Marshal(o.values[k])
		if err != nil {
			return nil, err
		}
		buf.Write(value)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
