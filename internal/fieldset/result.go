package fieldset

// FieldError describes one validation problem and the field names it
// applies to. A single error entry covers a whole category (for example
// every missing field), so callers always see the complete picture.
type FieldError struct {
	Message string   `json:"message"`
	Names   []string `json:"names,omitempty"`
}

// Result is an explicit sum type: either a success payload or a non-empty
// error list, never both. The fields are unexported so the only way to
// build one is through OK or Errors, which keeps the invariant.
type Result[T any] struct {
	ok   *T
	errs []FieldError
}

// OK wraps a success value.
func OK[T any](v T) Result[T] {
	return Result[T]{ok: &v}
}

// Errors wraps a non-empty error list. Passing an empty list is a
// programming error and panics rather than producing an impossible state.
func Errors[T any](errs []FieldError) Result[T] {
	if len(errs) == 0 {
		panic("fieldset: Errors called with no errors")
	}
	return Result[T]{errs: errs}
}

// OK returns the success payload and true, or the zero value and false if
// the result is the error variant.
func (r Result[T]) OK() (T, bool) {
	if r.ok == nil {
		var zero T
		return zero, false
	}
	return *r.ok, true
}

// Errors returns the error list, nil for the success variant.
func (r Result[T]) Errors() []FieldError {
	return r.errs
}
