package models

// TypedFields is mapping from field name to typed value (string, int64 or float64).
// Iteration follows insertion order, that is FieldSchema order.
type TypedFields struct {
	keys   []string
	values map[string]interface{}
}

// NewTypedFields is constructor of TypedFields
func NewTypedFields() *TypedFields {
	return &TypedFields{
		values: make(map[string]interface{}),
	}
}

// Set stores value. Order of an existing key is not changed.
func (x *TypedFields) Set(name string, value interface{}) {
	if _, ok := x.values[name]; !ok {
		x.keys = append(x.keys, name)
	}
	x.values[name] = value
}

// Get returns value of the field
func (x *TypedFields) Get(name string) (interface{}, bool) {
	v, ok := x.values[name]
	return v, ok
}

// Delete removes the field if it exists.
func (x *TypedFields) Delete(name string) {
	if _, ok := x.values[name]; !ok {
		return
	}

	delete(x.values, name)
	for i, key := range x.keys {
		if key == name {
			x.keys = append(x.keys[:i], x.keys[i+1:]...)
			break
		}
	}
}

// Len returns number of fields
func (x *TypedFields) Len() int { return len(x.keys) }

// Keys returns field names in order
func (x *TypedFields) Keys() []string {
	keys := make([]string, len(x.keys))
	copy(keys, x.keys)
	return keys
}

// Each calls f for each field in order.
func (x *TypedFields) Each(f func(name string, value interface{})) {
	for _, key := range x.keys {
		f(key, x.values[key])
	}
}
