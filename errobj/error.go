// Package errobj implements the managed Error object family (Error,
// EvalError, RangeError, ReferenceError, SyntaxError, TypeError,
// URIError): each instance is a real heap.Allocator-carved object whose
// message/name/fileName/lineNumber/stack properties are installed through
// shape.Class.AddMember rather than kept as private Go fields, including a
// lazily-materialized "stack" string.
package errobj

import (
	"fmt"
	"strings"

	"github.com/facebookgo/stackerr"

	"github.com/neuroradiology/qtdeclarative/heap"
	"github.com/neuroradiology/qtdeclarative/shape"
)

// Kind names the built-in error constructor used to create an Error, used
// for both its [[Prototype]] name and its default toString() prefix. All
// kinds collapse to one Go type parameterized by Kind since none of them
// add fields beyond what Error itself carries.
type Kind uint8

const (
	KindError Kind = iota
	KindEvalError
	KindRangeError
	KindReferenceError
	KindSyntaxError
	KindTypeError
	KindURIError
)

func (k Kind) String() string {
	switch k {
	case KindEvalError:
		return "EvalError"
	case KindRangeError:
		return "RangeError"
	case KindReferenceError:
		return "ReferenceError"
	case KindSyntaxError:
		return "SyntaxError"
	case KindTypeError:
		return "TypeError"
	case KindURIError:
		return "URIError"
	default:
		return "Error"
	}
}

// StackFrame is one entry of a captured call stack: functionName,
// fileName, line, and column, built from the engine's frames.
type StackFrame struct {
	Function string
	File     string
	Line     int
	Column   int
}

// managedString is the minimal managed box around a string value: just
// enough of shape.Markable, plus its own Mark, for the collector to trace
// a string once something holds a reference to it. This module has no
// other need for a general JS string type, so it stays private to errobj
// rather than growing into one.
type managedString struct {
	text   string
	marked bool
}

func newManagedString(text string) *managedString { return &managedString{text: text} }

func (s *managedString) Marked() bool          { return s.marked }
func (s *managedString) SetMarked(v bool)      { s.marked = v }
func (s *managedString) ClassOf() *shape.Class { return nil }

func (s *managedString) Mark(shape.Tracer) {
	s.marked = true
}

// Error is a managed JS error object: obj is the heap.Allocator-carved
// header/slots pair its shape.Class describes, message/name/fileName/
// lineNumber/stack live in that object's property slots (or, for stack,
// in a header-level cache — see stackRef), and kind/frames/internal are
// plain Go bookkeeping with no JS-visible property of their own.
type Error struct {
	obj *heap.Object

	kind   Kind
	frames []StackFrame

	// internal captures where, in this Go program, the error was raised;
	// grounded on facebookgo/stackerr's habit of attaching a Go stack to
	// every internal error at the point of creation. Distinct from the
	// JS-visible frames/stack string above.
	internal error

	messageIndex    int // -1 if message was not installed
	nameIndex       int
	fileNameIndex   int // -1 if no frames were captured
	lineNumberIndex int // -1 if no frames were captured
	stackIndex      int

	// stackRef caches the stack getter's materialized value as a field on
	// Error itself rather than in the property array, so errorVTable's
	// MarkObjects marks it as an extra step rather than relying on the
	// ordinary slot walk.
	stackRef *managedString
}

// New constructs an Error of the given kind, allocating it through alloc
// and building its shape by walking pool's transition DAG exactly as a
// real constructor would: an accessor "stack" first, then a data
// "message" property if message is non-empty, then a data "name", then
// (only if frames is non-empty) data "fileName"/"lineNumber" copied from
// frames[0].
func New(pool *shape.Pool, alloc *heap.Allocator, kind Kind, message string, frames []StackFrame) *Error {
	ids := pool.Identifiers
	class := pool.Empty.ChangeVTable(errorVTable)

	class, idx := class.AddMember(ids.Intern("stack"), shape.NewAccessorAttributes(false, true))
	stackIndex := int(idx)

	messageIndex := -1
	if message != "" {
		class, idx = class.AddMember(ids.Intern("message"), shape.NewDataAttributes(true, false, true))
		messageIndex = int(idx)
	}

	class, idx = class.AddMember(ids.Intern("name"), shape.NewDataAttributes(true, false, true))
	nameIndex := int(idx)

	fileNameIndex, lineNumberIndex := -1, -1
	if len(frames) > 0 {
		class, idx = class.AddMember(ids.Intern("fileName"), shape.NewDataAttributes(true, false, true))
		fileNameIndex = int(idx)
		class, idx = class.AddMember(ids.Intern("lineNumber"), shape.NewDataAttributes(true, false, true))
		lineNumberIndex = int(idx)
	}

	obj := alloc.Alloc(class, class.Size())
	if messageIndex >= 0 {
		obj.Slots[messageIndex] = shape.FromManaged(newManagedString(message))
	}
	obj.Slots[nameIndex] = shape.FromManaged(newManagedString(kind.String()))
	if fileNameIndex >= 0 {
		obj.Slots[fileNameIndex] = shape.FromManaged(newManagedString(frames[0].File))
		obj.Slots[lineNumberIndex] = shape.FromNumber(float64(frames[0].Line))
	}

	return &Error{
		obj:             obj,
		kind:            kind,
		frames:          frames,
		internal:        stackerr.Newf("%s: %s", kind, message),
		messageIndex:    messageIndex,
		nameIndex:       nameIndex,
		fileNameIndex:   fileNameIndex,
		lineNumberIndex: lineNumberIndex,
		stackIndex:      stackIndex,
	}
}

// NewWithLocation is the explicit fileName/line/column constructor
// variant: it prepends a synthetic frame built from those arguments
// before capturing, so fileName/lineNumber and the stack string reflect
// the named call site rather than whatever frames[0] would otherwise be.
func NewWithLocation(pool *shape.Pool, alloc *heap.Allocator, kind Kind, message, fileName string, line, column int, frames []StackFrame) *Error {
	prefixed := make([]StackFrame, 0, len(frames)+1)
	prefixed = append(prefixed, StackFrame{File: fileName, Line: line, Column: column})
	prefixed = append(prefixed, frames...)
	return New(pool, alloc, kind, message, prefixed)
}

// Kind returns the error's constructor kind.
func (e *Error) Kind() Kind { return e.kind }

// Message returns the installed "message" property, or "" if none was
// installed (the error was constructed with an empty message).
func (e *Error) Message() string { return e.stringSlot(e.messageIndex) }

// FileName returns the installed "fileName" property, or "" if no frames
// were captured at construction.
func (e *Error) FileName() string { return e.stringSlot(e.fileNameIndex) }

// LineNumber returns the installed "lineNumber" property and whether it
// was installed at all.
func (e *Error) LineNumber() (int, bool) {
	if e.lineNumberIndex < 0 {
		return 0, false
	}
	n, ok := e.obj.Slots[e.lineNumberIndex].Number()
	return int(n), ok
}

func (e *Error) stringSlot(index int) string {
	if index < 0 {
		return ""
	}
	m, ok := e.obj.Slots[index].AsManaged()
	if !ok {
		return ""
	}
	ms, ok := m.(*managedString)
	if !ok {
		return ""
	}
	return ms.text
}

// Stack returns the JS-visible stack trace string, joining frames with
// "\n" and formatting each as "function@source:line" (no line suffix if
// the frame carries none). Built and cached on first call.
func (e *Error) Stack() string {
	if e.stackRef != nil {
		return e.stackRef.text
	}
	parts := make([]string, len(e.frames))
	for i, f := range e.frames {
		if f.Line != 0 {
			parts[i] = fmt.Sprintf("%s@%s:%d", f.Function, f.File, f.Line)
		} else {
			parts[i] = fmt.Sprintf("%s@%s", f.Function, f.File)
		}
	}
	e.stackRef = newManagedString(strings.Join(parts, "\n"))
	return e.stackRef.text
}

// String implements Error.prototype.toString(): name defaults to "Error"
// only when no name property was installed at all; an explicitly empty
// name (as opposed to absent) falls through to returning message alone.
func (e *Error) String() string {
	name := "Error"
	if e.nameIndex >= 0 {
		name = e.stringSlot(e.nameIndex)
	}
	message := e.Message()

	switch {
	case name == "":
		return message
	case message == "":
		return name
	default:
		return name + ": " + message
	}
}

// InternalStack returns the Go-level stack captured at construction time,
// for engine-side logging; never exposed to JS code.
func (e *Error) InternalStack() error { return e.internal }

// Marked, SetMarked and ClassOf satisfy shape.Markable by forwarding to
// the underlying heap.Object.
func (e *Error) Marked() bool          { return e.obj.Marked() }
func (e *Error) SetMarked(v bool)      { e.obj.SetMarked(v) }
func (e *Error) ClassOf() *shape.Class { return e.obj.ClassOf() }

// Mark mirrors heap.Object.Mark's algorithm, but passes e itself (not the
// bare object header) to the vtable's MarkObjects hook, so errorVTable's
// hook can reach stackRef, which lives on Error rather than in a slot.
func (e *Error) Mark(tracer shape.Tracer) {
	if e.obj.Marked() {
		return
	}
	e.obj.SetMarked(true)
	class := e.obj.ClassOf()
	if class != nil && class.VTable() != nil && class.VTable().MarkObjects != nil {
		class.VTable().MarkObjects(e, tracer)
	}
	for _, v := range e.obj.Slots {
		v.Mark(tracer)
	}
}

// errorVTable is the shared shape.VTable every Error object's Class
// carries.
var errorVTable = &shape.VTable{
	Name: "Error",
	MarkObjects: func(self shape.Markable, tracer shape.Tracer) {
		e, ok := self.(*Error)
		if !ok || e.stackRef == nil {
			return
		}
		if !e.stackRef.Marked() {
			tracer.Push(e.stackRef)
		}
	},
	Destroy: func(self shape.Markable) {
		if e, ok := self.(*Error); ok {
			e.stackRef = nil
		}
	},
}

// VTable returns the shared vtable for Error objects.
func VTable() *shape.VTable { return errorVTable }
