package errobj

import (
	"github.com/neuroradiology/qtdeclarative/heap"
	"github.com/neuroradiology/qtdeclarative/shape"
)

// The per-kind convenience constructors below give each built-in error
// its own call site even though they share one Error implementation
// underneath, matching how callers expect each built-in constructor to
// read.

func NewEvalError(pool *shape.Pool, alloc *heap.Allocator, message string, frames []StackFrame) *Error {
	return New(pool, alloc, KindEvalError, message, frames)
}

func NewRangeError(pool *shape.Pool, alloc *heap.Allocator, message string, frames []StackFrame) *Error {
	return New(pool, alloc, KindRangeError, message, frames)
}

func NewReferenceError(pool *shape.Pool, alloc *heap.Allocator, message string, frames []StackFrame) *Error {
	return New(pool, alloc, KindReferenceError, message, frames)
}

func NewSyntaxError(pool *shape.Pool, alloc *heap.Allocator, message string, frames []StackFrame) *Error {
	return New(pool, alloc, KindSyntaxError, message, frames)
}

func NewTypeError(pool *shape.Pool, alloc *heap.Allocator, message string, frames []StackFrame) *Error {
	return New(pool, alloc, KindTypeError, message, frames)
}

func NewURIError(pool *shape.Pool, alloc *heap.Allocator, message string, frames []StackFrame) *Error {
	return New(pool, alloc, KindURIError, message, frames)
}
