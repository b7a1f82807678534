package value

import "reflect"

// Seq is a read-only view of a slice or array.
type Seq struct {
	items []any
	rv    reflect.Value
}

// AsSeq returns a view of v when v is a slice or an array.
func AsSeq(v any) (Seq, bool) {
	switch s := v.(type) {
	case nil:
		return Seq{}, false
	case []any:
		return Seq{items: s}, true
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
		return Seq{rv: rv}, true
	default:
		return Seq{}, false
	}
}

// IsSequence reports whether v is an ordered sequence.
func IsSequence(v any) bool {
	_, ok := AsSeq(v)
	return ok
}

// Len returns the number of elements.
func (s Seq) Len() int {
	if s.items != nil || !s.rv.IsValid() {
		return len(s.items)
	}
	return s.rv.Len()
}

// At returns the element at index i.
func (s Seq) At(i int) any {
	if s.items != nil || !s.rv.IsValid() {
		return s.items[i]
	}
	return s.rv.Index(i).Interface()
}

// From copies the elements from index i onwards into a new slice. The
// result is never nil.
func (s Seq) From(i int) []any {
	n := s.Len()
	if i > n {
		i = n
	}
	out := make([]any, 0, n-i)
	for ; i < n; i++ {
		out = append(out, s.At(i))
	}
	return out
}
