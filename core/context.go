package core

// ContextLookup resolves mapped context keys. ok is false when the key
// is missing or its value is null.
type ContextLookup interface {
	Lookup(key string) (value string, ok bool)
}

// Fields is an ordered mapped context. When a key occurs more than once
// the last occurrence wins.
type Fields []Field

// Lookup implements ContextLookup
func (fs Fields) Lookup(key string) (string, bool) {
	for i := len(fs) - 1; i >= 0; i-- {
		if fs[i].Key != key {
			continue
		}
		if fs[i].IsNull() {
			return "", false
		}
		return fs[i].StringValue(), true
	}
	return "", false
}

// MapContext adapts a map to ContextLookup. Values are rendered via
// their string form.
type MapContext map[string]any

// Lookup implements ContextLookup
func (m MapContext) Lookup(key string) (string, bool) {
	v, ok := m[key]
	if !ok || v == nil {
		return "", false
	}
	return Render(v), true
}
