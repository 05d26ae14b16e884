package suite

// Value is the actual side of a staged assertion: either a
// literal captured at registration time or a producer invoked
// once when the assertion runs.
type Value struct {
	literal  any
	producer func() (any, error)
}

// Literal wraps v as an immediately available value.
func Literal(v any) Value {
	return Value{literal: v}
}

// Deferred wraps a zero-argument producer. It is not invoked
// until the assertion is evaluated.
func Deferred(fn func() any) Value {
	return Value{producer: func() (any, error) {
		return fn(), nil
	}}
}

// DeferredErr wraps a producer that can fail. A returned error
// aborts the run as an evaluation fault.
func DeferredErr(fn func() (any, error)) Value {
	return Value{producer: fn}
}

// ValueOf converts an argument given to an assertion handle into
// a Value. A Value is kept as is, a func() any or
// func() (any, error) becomes Deferred, anything else becomes a
// Literal.
func ValueOf(v any) Value {
	switch x := v.(type) {
	case Value:
		return x
	case func() any:
		return Deferred(x)
	case func() (any, error):
		return DeferredErr(x)
	default:
		return Literal(v)
	}
}

// IsDeferred reports whether resolving v invokes a producer.
func (v Value) IsDeferred() bool {
	return v.producer != nil
}

// Resolve returns the actual value, invoking the producer if
// there is one.
func (v Value) Resolve() (any, error) {
	if v.producer != nil {
		return v.producer()
	}
	return v.literal, nil
}
