package dyncodec

// DataResult is the universal return type of decode/encode: either a success
// carrying a value, or an error carrying a lazily-built message, an optional
// best-effort partial value, and a lifecycle marker. Composing results
// concatenates error messages with "; ", joins lifecycles, and keeps a
// partial value only when both sides have one.
//
// The zero value is a success holding the zero value of R.
type DataResult[R any] struct {
	value     R
	hasValue  bool
	failed    bool
	message   func() string
	lifecycle Lifecycle
}

// Success wraps a value with a stable lifecycle.
func Success[R any](value R) DataResult[R] {
	return DataResult[R]{value: value, hasValue: true}
}

// SuccessWithLifecycle wraps a value with an explicit lifecycle.
func SuccessWithLifecycle[R any](value R, lc Lifecycle) DataResult[R] {
	return DataResult[R]{value: value, hasValue: true, lifecycle: lc}
}

// Error produces a total failure with no usable value.
func Error[R any](message string) DataResult[R] {
	return DataResult[R]{failed: true, message: func() string { return message }}
}

// ErrorLazy produces a total failure whose message is built on demand.
// Decode paths use this to avoid formatting costs on results nobody reads.
func ErrorLazy[R any](message func() string) DataResult[R] {
	return DataResult[R]{failed: true, message: message}
}

// ErrorWithPartial produces a failure that still carries a best-effort value.
func ErrorWithPartial[R any](message string, partial R) DataResult[R] {
	return DataResult[R]{failed: true, message: func() string { return message }, value: partial, hasValue: true}
}

// IsSuccess reports whether the result holds a value without error.
func (r DataResult[R]) IsSuccess() bool { return !r.failed }

// IsError reports whether the result carries an error message.
func (r DataResult[R]) IsError() bool { return r.failed }

// HasPartial reports whether an errored result still carries a usable value.
func (r DataResult[R]) HasPartial() bool { return r.failed && r.hasValue }

// Result returns the success value. The second return is false for errors,
// even those carrying a partial value.
func (r DataResult[R]) Result() (R, bool) {
	if r.failed {
		var zero R
		return zero, false
	}
	return r.value, true
}

// ResultOrPartial returns the success value, or the partial value of an
// error after reporting the message to onError. onError may be nil.
func (r DataResult[R]) ResultOrPartial(onError func(message string)) (R, bool) {
	if !r.failed {
		return r.value, true
	}
	if onError != nil {
		onError(r.message())
	}
	if r.hasValue {
		return r.value, true
	}
	var zero R
	return zero, false
}

// PromotePartial converts an error carrying a partial value into a success
// holding that value, reporting the original message to onError. Results
// without a partial value and successes are returned unchanged.
func (r DataResult[R]) PromotePartial(onError func(message string)) DataResult[R] {
	if !r.failed || !r.hasValue {
		return r
	}
	if onError != nil {
		onError(r.message())
	}
	return DataResult[R]{value: r.value, hasValue: true, lifecycle: r.lifecycle}
}

// WithPartial attaches (or replaces) the partial value of an error.
// Successes are returned unchanged.
func (r DataResult[R]) WithPartial(partial R) DataResult[R] {
	if !r.failed {
		return r
	}
	r.value = partial
	r.hasValue = true
	return r
}

// MapError rewrites the error message; no-op on success.
func (r DataResult[R]) MapError(f func(message string) string) DataResult[R] {
	if !r.failed {
		return r
	}
	prev := r.message
	r.message = func() string { return f(prev()) }
	return r
}

// Message returns the error message, or "" for a success.
func (r DataResult[R]) Message() string {
	if !r.failed {
		return ""
	}
	return r.message()
}

// Lifecycle returns the stability marker accumulated so far.
func (r DataResult[R]) Lifecycle() Lifecycle { return r.lifecycle }

// SetLifecycle replaces the lifecycle marker.
func (r DataResult[R]) SetLifecycle(lc Lifecycle) DataResult[R] {
	r.lifecycle = lc
	return r
}

// AddLifecycle joins another lifecycle into the result.
func (r DataResult[R]) AddLifecycle(lc Lifecycle) DataResult[R] {
	r.lifecycle = r.lifecycle.Add(lc)
	return r
}

// ResultError is the error form of a failed DataResult, produced only at the
// extraction boundary.
type ResultError struct {
	Msg string
}

func (e *ResultError) Error() string { return e.Msg }

// ResultOrErr is the extraction boundary into Go's error convention: the
// success value, or a *ResultError for any failure.
func (r DataResult[R]) ResultOrErr() (R, error) {
	if r.failed {
		var zero R
		return zero, &ResultError{Msg: r.message()}
	}
	return r.value, nil
}

// PartialOrErr extracts the success or partial value, erroring only when no
// usable value exists at all.
func (r DataResult[R]) PartialOrErr() (R, error) {
	if r.hasValue {
		return r.value, nil
	}
	var zero R
	return zero, &ResultError{Msg: r.message()}
}

func joinMessages(a, b func() string) func() string {
	return func() string { return a() + "; " + b() }
}

// Map transforms the value of a success, or the partial value of an error.
// Errors without a partial value pass through untouched.
func Map[R, R2 any](r DataResult[R], f func(R) R2) DataResult[R2] {
	out := DataResult[R2]{failed: r.failed, message: r.message, lifecycle: r.lifecycle}
	if r.hasValue {
		out.value = f(r.value)
		out.hasValue = true
	}
	return out
}

// FlatMap chains a result-producing continuation. On success the
// continuation's lifecycle is joined in. On an error carrying a partial
// value the continuation still runs against the partial: if it succeeds the
// original error is kept with the new value as partial; if it fails the
// messages accumulate. Errors without a partial short-circuit.
func FlatMap[R, R2 any](r DataResult[R], f func(R) DataResult[R2]) DataResult[R2] {
	if !r.failed {
		return f(r.value).AddLifecycle(r.lifecycle)
	}
	if !r.hasValue {
		return DataResult[R2]{failed: true, message: r.message, lifecycle: r.lifecycle}
	}
	next := f(r.value)
	out := DataResult[R2]{failed: true, lifecycle: r.lifecycle.Add(next.lifecycle)}
	if next.failed {
		out.message = joinMessages(r.message, next.message)
	} else {
		out.message = r.message
	}
	if next.hasValue {
		out.value = next.value
		out.hasValue = true
	}
	return out
}

// Ap applies a wrapped function to a wrapped argument. The application
// succeeds only when both sides do; otherwise each failing side contributes
// its message, and a partial value survives only when both sides have one.
func Ap[R, R2 any](fn DataResult[func(R) R2], arg DataResult[R]) DataResult[R2] {
	lc := fn.lifecycle.Add(arg.lifecycle)
	if !fn.failed && !arg.failed {
		return DataResult[R2]{value: fn.value(arg.value), hasValue: true, lifecycle: lc}
	}
	out := DataResult[R2]{failed: true, lifecycle: lc}
	switch {
	case fn.failed && arg.failed:
		out.message = joinMessages(fn.message, arg.message)
	case fn.failed:
		out.message = fn.message
	default:
		out.message = arg.message
	}
	if fn.hasValue && arg.hasValue {
		out.value = fn.value(arg.value)
		out.hasValue = true
	}
	return out
}

// Apply2 combines two results with a binary function under Ap semantics.
func Apply2[A, B, R any](f func(A, B) R, ra DataResult[A], rb DataResult[B]) DataResult[R] {
	curried := Map(ra, func(a A) func(B) R {
		return func(b B) R { return f(a, b) }
	})
	return Ap(curried, rb)
}

// Apply3 combines three results with a ternary function under Ap semantics.
func Apply3[A, B, C, R any](f func(A, B, C) R, ra DataResult[A], rb DataResult[B], rc DataResult[C]) DataResult[R] {
	curried := Apply2(func(a A, b B) func(C) R {
		return func(c C) R { return f(a, b, c) }
	}, ra, rb)
	return Ap(curried, rc)
}
