package history

import (
	"fmt"
	"reflect"
	"sort"
	"unicode"
	"unicode/utf8"
)

// Accessor is a getter/setter pair for one property of T, resolved once at
// registration time. Build it with Field.
type Accessor[T any] struct {
	valueType reflect.Type
	get       func(T) any
	set       func(T, any)
}

// Field builds an Accessor from typed getter and setter functions.
func Field[T any, V any](get func(T) V, set func(T, V)) Accessor[T] {
	if get == nil || set == nil {
		panic("history: Field requires both a getter and a setter")
	}
	return Accessor[T]{
		valueType: reflect.TypeOf((*V)(nil)).Elem(),
		get:       func(t T) any { return get(t) },
		set: func(t T, v any) {
			if v == nil {
				var zero V
				set(t, zero)
				return
			}
			set(t, v.(V))
		},
	}
}

// ValueType returns the type the setter expects.
func (a Accessor[T]) ValueType() reflect.Type {
	return a.valueType
}

// Accepts reports whether v can be passed to the setter without a conversion.
func (a Accessor[T]) Accepts(v any) bool {
	if v == nil {
		switch a.valueType.Kind() {
		case reflect.Pointer, reflect.Interface, reflect.Slice, reflect.Map, reflect.Func, reflect.Chan:
			return true
		}
		return false
	}
	t := reflect.TypeOf(v)
	if a.valueType.Kind() == reflect.Interface {
		return t.Implements(a.valueType)
	}
	return t == a.valueType
}

// Get reads the property from instance.
func (a Accessor[T]) Get(instance T) any {
	return a.get(instance)
}

// Set writes v into instance. v must satisfy Accepts.
func (a Accessor[T]) Set(instance T, v any) {
	a.set(instance, v)
}

// Registry maps property names of T onto accessors.
type Registry[T any] struct {
	props map[string]Accessor[T]
}

// NewRegistry creates an empty registry.
func NewRegistry[T any]() *Registry[T] {
	return &Registry[T]{props: make(map[string]Accessor[T])}
}

// Register adds an accessor under name. Registering the same name twice is a
// programming error and panics.
func (r *Registry[T]) Register(name string, acc Accessor[T]) *Registry[T] {
	key := NormalizeName(name)
	if key == "" {
		panic("history: empty property name")
	}
	if _, dup := r.props[key]; dup {
		panic(fmt.Sprintf("history: property %q registered twice", key))
	}
	r.props[key] = acc
	return r
}

// Lookup resolves name, normalized with NormalizeName.
func (r *Registry[T]) Lookup(name string) (Accessor[T], error) {
	key := NormalizeName(name)
	acc, ok := r.props[key]
	if !ok {
		var zero T
		return Accessor[T]{}, fmt.Errorf("%w: %q on %T", ErrPropertyNotFound, key, zero)
	}
	return acc, nil
}

// Has reports whether name resolves to an accessor.
func (r *Registry[T]) Has(name string) bool {
	_, ok := r.props[NormalizeName(name)]
	return ok
}

// Names lists the registered property names in sorted order.
func (r *Registry[T]) Names() []string {
	names := make([]string, 0, len(r.props))
	for name := range r.props {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// NormalizeName upper-cases the first character, so "colorFill" and
// "ColorFill" name the same property.
func NormalizeName(name string) string {
	if name == "" {
		return ""
	}
	first, size := utf8.DecodeRuneInString(name)
	if unicode.IsUpper(first) {
		return name
	}
	return string(unicode.ToUpper(first)) + name[size:]
}
