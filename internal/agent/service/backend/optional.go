package backend

// Optional tracks whether a field was supplied, so that "not supplied" and
// "supplied as the zero value" stay distinguishable in partial updates.
type Optional[T any] struct {
	value T
	set   bool
}

// Some returns a supplied value.
func Some[T any](v T) Optional[T] {
	return Optional[T]{value: v, set: true}
}

// None returns an absent value.
func None[T any]() Optional[T] {
	return Optional[T]{}
}

// Get returns the value and whether it was supplied.
func (o Optional[T]) Get() (T, bool) {
	return o.value, o.set
}

// IsSet reports whether the value was supplied.
func (o Optional[T]) IsSet() bool {
	return o.set
}

// OrElse returns the value, or def when absent.
func (o Optional[T]) OrElse(def T) T {
	if o.set {
		return o.value
	}
	return def
}

// put writes key into payload only when o was supplied.
func put[T any](payload map[string]interface{}, key string, o Optional[T]) {
	if v, ok := o.Get(); ok {
		payload[key] = v
	}
}
