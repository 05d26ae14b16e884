package assertion

import (
	"fmt"
	"reflect"
	"sort"
	"strconv"

	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// OrderedMap is the insertion-ordered keyed structure accepted
// as a composite value alongside maps, structs and slices.
type OrderedMap = orderedmap.OrderedMap[string, any]

// NewOrderedMap returns an empty OrderedMap.
func NewOrderedMap() *OrderedMap {
	return orderedmap.New[string, any]()
}

type shape int

const (
	shapeScalar shape = iota
	shapeArray
	shapeKeyed
)

var orderedMapType = reflect.TypeOf((*OrderedMap)(nil))

// Equals reports whether a and b are structurally equal.
//
// Slices and arrays are array-like; maps, structs with exported
// fields and *OrderedMap are keyed structures. Non-nil pointers
// to composites are followed. Everything else is a scalar
// compared by strict identity: same dynamic type and ==, so NaN
// never equals itself and int(1) never equals float64(1).
// Scalars that == cannot compare, such as structs holding
// slices in unexported fields, are compared field by field. A
// composite never equals a scalar.
//
// Cyclic values are not supported and will not terminate.
func Equals(a, b any) bool {
	av, as := classify(a)
	bv, bs := classify(b)

	if as == shapeScalar || bs == shapeScalar {
		if as != bs {
			return false
		}
		return identical(a, b)
	}

	return compareKeyed(av, as, bv, bs) &&
		compareKeyed(bv, bs, av, as)
}

// classify resolves pointers to composites and reports the
// shape of v.
func classify(v any) (reflect.Value, shape) {
	if v == nil {
		return reflect.Value{}, shapeScalar
	}

	rv := reflect.ValueOf(v)
	if rv.Type() == orderedMapType {
		if rv.IsNil() {
			return rv, shapeScalar
		}
		return rv, shapeKeyed
	}

	for rv.Kind() == reflect.Ptr && !rv.IsNil() &&
		shapeOfValue(rv.Elem()) != shapeScalar {
		rv = rv.Elem()
	}
	return rv, shapeOfValue(rv)
}

func shapeOfValue(rv reflect.Value) shape {
	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
		return shapeArray
	case reflect.Map:
		return shapeKeyed
	case reflect.Struct:
		// Opaque structs such as time.Time compare by identity.
		t := rv.Type()
		for i := 0; i < t.NumField(); i++ {
			if t.Field(i).IsExported() {
				return shapeKeyed
			}
		}
	}
	return shapeScalar
}

// identical applies strict identity to two scalars.
func identical(a, b any) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}

	ta, tb := reflect.TypeOf(a), reflect.TypeOf(b)
	if ta != tb {
		return false
	}

	if ta.Kind() == reflect.Func {
		va, vb := reflect.ValueOf(a), reflect.ValueOf(b)
		return va.Pointer() == vb.Pointer()
	}

	if ta.Comparable() {
		if eq, ok := compareComparable(a, b); ok {
			return eq
		}
	}
	return reflect.DeepEqual(a, b)
}

// compareComparable applies ==, reporting ok=false when the
// comparison panics on an incomparable value held in an
// interface field.
func compareComparable(a, b any) (eq, ok bool) {
	defer func() {
		if recover() != nil {
			eq, ok = false, false
		}
	}()
	return a == b, true
}

// compareArrays compares two array-like values element by
// element.
func compareArrays(a, b reflect.Value) bool {
	if a.Len() != b.Len() {
		return false
	}
	for i := 0; i < a.Len(); i++ {
		if !Equals(a.Index(i).Interface(), b.Index(i).Interface()) {
			return false
		}
	}
	return true
}

// compareKeyed checks that every key owned by a is owned by b
// with an equal value. Two array-likes are compared as arrays
// first; mixed shapes fall back to key ownership, where an
// array owns its indices.
func compareKeyed(
	a reflect.Value, as shape,
	b reflect.Value, bs shape,
) bool {
	if as == shapeArray && bs == shapeArray {
		return compareArrays(a, b)
	}
	if sameKeyedMaps(a, b) {
		return compareMapEntries(a, b)
	}

	for _, key := range keysOf(a, as) {
		av, _ := lookup(a, as, key)
		bv, ok := lookup(b, bs, key)
		if !ok {
			return false
		}
		if !Equals(av, bv) {
			return false
		}
	}
	return true
}

// sameKeyedMaps reports whether a and b are maps sharing a
// non-string key type, which are compared key by key without
// rendering keys as strings.
func sameKeyedMaps(a, b reflect.Value) bool {
	if a.Kind() != reflect.Map || b.Kind() != reflect.Map {
		return false
	}
	key := a.Type().Key()
	return key == b.Type().Key() && key.Kind() != reflect.String
}

// compareMapEntries checks that every entry of a is present in
// b with an equal value.
func compareMapEntries(a, b reflect.Value) bool {
	iter := a.MapRange()
	for iter.Next() {
		bv := b.MapIndex(iter.Key())
		if !bv.IsValid() {
			return false
		}
		if !Equals(iter.Value().Interface(), bv.Interface()) {
			return false
		}
	}
	return true
}

// mapKey renders a map key the way keyed structures name their
// members.
func mapKey(k reflect.Value) string {
	if k.Kind() == reflect.String {
		return k.String()
	}
	return fmt.Sprint(k.Interface())
}

// keysOf lists the keys owned by a composite value.
func keysOf(v reflect.Value, s shape) []string {
	if s == shapeArray {
		keys := make([]string, v.Len())
		for i := range keys {
			keys[i] = strconv.Itoa(i)
		}
		return keys
	}

	if v.Type() == orderedMapType {
		om := v.Interface().(*OrderedMap)
		keys := make([]string, 0, om.Len())
		for pair := om.Oldest(); pair != nil; pair = pair.Next() {
			keys = append(keys, pair.Key)
		}
		return keys
	}

	switch v.Kind() {
	case reflect.Map:
		keys := make([]string, 0, v.Len())
		for _, k := range v.MapKeys() {
			keys = append(keys, mapKey(k))
		}
		sort.Strings(keys)
		return keys
	case reflect.Struct:
		t := v.Type()
		keys := make([]string, 0, t.NumField())
		for i := 0; i < t.NumField(); i++ {
			if t.Field(i).IsExported() {
				keys = append(keys, t.Field(i).Name)
			}
		}
		return keys
	}
	return nil
}

// lookup returns the value owned by v under key.
func lookup(v reflect.Value, s shape, key string) (any, bool) {
	if s == shapeArray {
		i, err := strconv.Atoi(key)
		if err != nil || i < 0 || i >= v.Len() ||
			strconv.Itoa(i) != key {
			return nil, false
		}
		return v.Index(i).Interface(), true
	}

	if v.Type() == orderedMapType {
		return v.Interface().(*OrderedMap).Get(key)
	}

	switch v.Kind() {
	case reflect.Map:
		if v.Type().Key().Kind() != reflect.String {
			iter := v.MapRange()
			for iter.Next() {
				if mapKey(iter.Key()) == key {
					return iter.Value().Interface(), true
				}
			}
			return nil, false
		}
		mv := v.MapIndex(reflect.ValueOf(key).Convert(v.Type().Key()))
		if !mv.IsValid() {
			return nil, false
		}
		return mv.Interface(), true
	case reflect.Struct:
		f, ok := v.Type().FieldByName(key)
		if !ok || !f.IsExported() {
			return nil, false
		}
		return v.FieldByIndex(f.Index).Interface(), true
	}
	return nil, false
}
