package world

import "slices"

// ordered is a map that remembers insertion order. Iteration order matters:
// earlier players get first claim on contested pellets.
type ordered[K comparable, V any] struct {
	index map[K]V
	keys  []K
}

func newOrdered[K comparable, V any]() ordered[K, V] {
	return ordered[K, V]{index: make(map[K]V)}
}

func (o *ordered[K, V]) get(k K) (V, bool) {
	v, ok := o.index[k]
	return v, ok
}

func (o *ordered[K, V]) set(k K, v V) {
	if _, ok := o.index[k]; !ok {
		o.keys = append(o.keys, k)
	}
	o.index[k] = v
}

func (o *ordered[K, V]) remove(k K) (V, bool) {
	v, ok := o.index[k]
	if !ok {
		return v, false
	}
	delete(o.index, k)
	if i := slices.Index(o.keys, k); i >= 0 {
		o.keys = slices.Delete(o.keys, i, i+1)
	}
	return v, true
}

func (o *ordered[K, V]) len() int {
	return len(o.keys)
}

// values returns a snapshot copy in insertion order.
func (o *ordered[K, V]) values() []V {
	out := make([]V, 0, len(o.keys))
	for _, k := range o.keys {
		out = append(out, o.index[k])
	}
	return out
}

func (o *ordered[K, V]) keyList() []K {
	return slices.Clone(o.keys)
}
