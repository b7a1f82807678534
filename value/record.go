package value

import (
	"reflect"
	"strings"
)

// Object is a keyed record with an optional prototype. Keys of the
// prototype chain are visible to prototype lookups but are not own keys.
type Object struct {
	Fields map[string]any
	Proto  *Object
}

// NewObject returns an object holding fields and inheriting from proto.
func NewObject(proto *Object, fields map[string]any) *Object {
	if fields == nil {
		fields = make(map[string]any)
	}
	return &Object{Fields: fields, Proto: proto}
}

// HasOwn reports whether the object itself holds name.
func (o *Object) HasOwn(name string) bool {
	if o == nil {
		return false
	}
	_, ok := o.Fields[name]
	return ok
}

// Get looks name up on the object and then along its prototype chain.
func (o *Object) Get(name string) (any, bool) {
	for cur := o; cur != nil; cur = cur.Proto {
		if v, ok := cur.Fields[name]; ok {
			return v, true
		}
	}
	return nil, false
}

var objectType = reflect.TypeOf(Object{})

// Record is a read-only view of a keyed record.
type Record struct {
	obj *Object
	rv  reflect.Value
}

// AsRecord returns a view of v when v is a keyed record: an *Object, a map
// with string keys, a struct or a non-nil pointer to a struct. Sequences
// are never records.
func AsRecord(v any) (Record, bool) {
	switch o := v.(type) {
	case nil:
		return Record{}, false
	case *Object:
		if o == nil {
			return Record{}, false
		}
		return Record{obj: o}, true
	case Object:
		return Record{obj: &o}, true
	case map[string]any:
		return Record{rv: reflect.ValueOf(o)}, true
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Map:
		if rv.Type().Key().Kind() != reflect.String {
			return Record{}, false
		}
		return Record{rv: rv}, true
	case reflect.Struct:
		return Record{rv: rv}, true
	case reflect.Pointer:
		if rv.IsNil() || rv.Elem().Kind() != reflect.Struct {
			return Record{}, false
		}
		return Record{rv: rv}, true
	default:
		return Record{}, false
	}
}

// IsRecord reports whether v is a keyed record.
func IsRecord(v any) bool {
	_, ok := AsRecord(v)
	return ok
}

// Own returns the value the record holds directly under name.
func (r Record) Own(name string) (any, bool) {
	if r.obj != nil {
		v, ok := r.obj.Fields[name]
		return v, ok
	}
	switch r.rv.Kind() {
	case reflect.Map:
		return mapIndex(r.rv, name)
	case reflect.Struct:
		return ownField(r.rv, name)
	case reflect.Pointer:
		return ownField(r.rv.Elem(), name)
	}
	return nil, false
}

// Lookup returns the value reachable under name anywhere in the record's
// inheritance chain: the prototype chain of an *Object, or the promoted
// fields and methods of a struct.
func (r Record) Lookup(name string) (any, bool) {
	if r.obj != nil {
		return r.obj.Get(name)
	}
	switch r.rv.Kind() {
	case reflect.Map:
		return mapIndex(r.rv, name)
	case reflect.Struct, reflect.Pointer:
		if v, ok := promotedField(reflect.Indirect(r.rv), name); ok {
			return v, true
		}
		return method(r.rv, name)
	}
	return nil, false
}

func mapIndex(rv reflect.Value, name string) (any, bool) {
	key := reflect.ValueOf(name).Convert(rv.Type().Key())
	v := rv.MapIndex(key)
	if !v.IsValid() {
		return nil, false
	}
	return v.Interface(), true
}

// ownField finds an exported field declared directly on the struct, by Go
// name or by json tag name.
func ownField(rv reflect.Value, name string) (any, bool) {
	if rv.Type() == objectType {
		o := rv.Interface().(Object)
		return Record{obj: &o}.Own(name)
	}
	rt := rv.Type()
	for i := 0; i < rt.NumField(); i++ {
		f := rt.Field(i)
		if !f.IsExported() {
			continue
		}
		if f.Name == name || jsonName(f) == name {
			return rv.Field(i).Interface(), true
		}
	}
	return nil, false
}

func promotedField(rv reflect.Value, name string) (any, bool) {
	if v, ok := ownField(rv, name); ok {
		return v, true
	}
	rt := rv.Type()
	for i := 0; i < rt.NumField(); i++ {
		f := rt.Field(i)
		if !f.Anonymous {
			continue
		}
		fv := rv.Field(i)
		if fv.Kind() == reflect.Pointer {
			if fv.IsNil() {
				continue
			}
			fv = fv.Elem()
		}
		if fv.Kind() != reflect.Struct {
			continue
		}
		if v, ok := promotedField(fv, name); ok {
			return v, true
		}
	}
	return nil, false
}

func method(rv reflect.Value, name string) (any, bool) {
	m := rv.MethodByName(name)
	if !m.IsValid() {
		return nil, false
	}
	return m.Interface(), true
}

func jsonName(f reflect.StructField) string {
	tag := f.Tag.Get("json")
	if tag == "" || tag == "-" {
		return ""
	}
	name, _, _ := strings.Cut(tag, ",")
	return name
}
