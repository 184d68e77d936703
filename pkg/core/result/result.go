// Package result defines the error-aware result algebra used at every
// component boundary. Soft failures (a model answering off-schema, a
// backing store hiccup) travel as values, not panics, so partial-failure
// branches stay ordinary conditional logic.
package result

import "fmt"

// SoftError is a structured, non-fatal failure. Context carries the raw
// material that produced the failure (usually the model's verbatim answer)
// for diagnostics.
type SoftError struct {
	Message string `json:"error"`
	Context string `json:"context,omitempty"`
}

func (e *SoftError) Error() string {
	if e.Context == "" {
		return e.Message
	}
	return fmt.Sprintf("%s (context: %s)", e.Message, e.Context)
}

// ErrorAware holds either a value of T or a SoftError. Callers must check
// Failed() before touching Value.
type ErrorAware[T any] struct {
	value T
	err   *SoftError
}

// OK wraps a successful value.
func OK[T any](v T) ErrorAware[T] {
	return ErrorAware[T]{value: v}
}

// Fail wraps a soft failure with optional context.
func Fail[T any](message, context string) ErrorAware[T] {
	return ErrorAware[T]{err: &SoftError{Message: message, Context: context}}
}

// FailWith propagates an existing SoftError into a differently-typed result.
func FailWith[T any](err *SoftError) ErrorAware[T] {
	return ErrorAware[T]{err: err}
}

// Failed reports whether the result carries an error instead of a value.
func (r ErrorAware[T]) Failed() bool { return r.err != nil }

// Err returns the soft error, or nil on success.
func (r ErrorAware[T]) Err() *SoftError { return r.err }

// Value returns the wrapped value. Only meaningful when !Failed().
func (r ErrorAware[T]) Value() T { return r.value }

// Unpack returns both parts at once for the common
// `v, serr := res.Unpack(); if serr != nil { ... }` shape.
func (r ErrorAware[T]) Unpack() (T, *SoftError) { return r.value, r.err }

// Search distinguishes "query ran but nothing matched" from a found value.
type Search[T any] struct {
	Found  bool `json:"found"`
	Result T    `json:"result,omitempty"`
}

// SearchResult is the two-level outcome: first check the error, then
// found/not-found.
type SearchResult[T any] = ErrorAware[Search[T]]

// Found wraps a positive search outcome.
func Found[T any](v T) SearchResult[T] {
	return OK(Search[T]{Found: true, Result: v})
}

// NotFound is the legitimate, non-exceptional empty outcome.
func NotFound[T any]() SearchResult[T] {
	return OK(Search[T]{})
}
