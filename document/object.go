package document

import (
	"iter"
	"slices"
)

// Object is a JSON object that remembers the order in which its keys were
// declared. Setting an existing key replaces the value in place.
type Object struct {
	keys   []string
	values map[string]Value
}

// NewObject returns an empty Object.
func NewObject() *Object {
	return &Object{values: make(map[string]Value)}
}

// NewObjectWithCapacity returns an empty Object sized for n keys.
func NewObjectWithCapacity(n int) *Object {
	return &Object{
		keys:   make([]string, 0, n),
		values: make(map[string]Value, n),
	}
}

// Kind implements Value.
func (*Object) Kind() Kind { return KindObject }

func (*Object) isValue() {}

// Len returns the number of keys.
func (o *Object) Len() int {
	if o == nil {
		return 0
	}
	return len(o.keys)
}

// Keys returns the keys in declaration order. The slice is a copy.
func (o *Object) Keys() []string {
	if o == nil {
		return nil
	}
	return slices.Clone(o.keys)
}

// Has reports whether key is present.
func (o *Object) Has(key string) bool {
	if o == nil {
		return false
	}
	_, ok := o.values[key]
	return ok
}

// Get returns the value for key.
func (o *Object) Get(key string) (Value, bool) {
	if o == nil {
		return nil, false
	}
	v, ok := o.values[key]
	return v, ok
}

// Set stores value under key. New keys are appended to the key order.
func (o *Object) Set(key string, value Value) {
	if value == nil {
		value = Null{}
	}
	if _, exists := o.values[key]; !exists {
		o.keys = append(o.keys, key)
	}
	o.values[key] = value
}

// Delete removes key, keeping the order of the remaining keys.
func (o *Object) Delete(key string) {
	if _, exists := o.values[key]; !exists {
		return
	}
	delete(o.values, key)
	if i := slices.Index(o.keys, key); i >= 0 {
		o.keys = slices.Delete(o.keys, i, i+1)
	}
}

// All iterates over key/value pairs in declaration order.
func (o *Object) All() iter.Seq2[string, Value] {
	return func(yield func(string, Value) bool) {
		if o == nil {
			return
		}
		for _, k := range o.keys {
			if !yield(k, o.values[k]) {
				return
			}
		}
	}
}

// GetObject returns the value for key when it is an object.
func (o *Object) GetObject(key string) (*Object, bool) {
	v, ok := o.Get(key)
	if !ok {
		return nil, false
	}
	return AsObject(v)
}

// GetArray returns the value for key when it is an array.
func (o *Object) GetArray(key string) (Array, bool) {
	v, ok := o.Get(key)
	if !ok {
		return nil, false
	}
	return AsArray(v)
}

// GetString returns the value for key when it is a string.
func (o *Object) GetString(key string) (string, bool) {
	v, ok := o.Get(key)
	if !ok {
		return "", false
	}
	return AsString(v)
}

// Reorder moves the keys listed in order to the front, in that order.
// Keys not present in o are ignored and the remaining keys keep their
// relative order after the listed ones.
func (o *Object) Reorder(order []string) {
	if o == nil || len(order) == 0 {
		return
	}
	reordered := make([]string, 0, len(o.keys))
	seen := make(map[string]bool, len(order))
	for _, k := range order {
		if _, ok := o.values[k]; ok && !seen[k] {
			reordered = append(reordered, k)
			seen[k] = true
		}
	}
	for _, k := range o.keys {
		if !seen[k] {
			reordered = append(reordered, k)
		}
	}
	o.keys = reordered
}

// String returns the compact JSON encoding of o.
func (o *Object) String() string {
	data, err := o.MarshalJSON()
	if err != nil {
		return "{}"
	}
	return string(data)
}
