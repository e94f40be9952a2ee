package errobj

import (
	"testing"

	"github.com/neuroradiology/qtdeclarative/heap"
	"github.com/neuroradiology/qtdeclarative/pagealloc"
	"github.com/neuroradiology/qtdeclarative/shape"
)

func newTestHeap() (*shape.Pool, *heap.Allocator) {
	pages := pagealloc.New(nil)
	return shape.NewPool(), heap.NewAllocator(pages, 0)
}

func TestStringWithAndWithoutMessage(t *testing.T) {
	pool, alloc := newTestHeap()

	withMsg := New(pool, alloc, KindTypeError, "not a function", nil)
	if withMsg.String() != "TypeError: not a function" {
		t.Fatalf("String() = %q", withMsg.String())
	}

	noMsg := New(pool, alloc, KindRangeError, "", nil)
	if noMsg.String() != "RangeError" {
		t.Fatalf("String() = %q, want bare kind name", noMsg.String())
	}
}

func TestStringEmptyNameFallsBackToMessage(t *testing.T) {
	pool, alloc := newTestHeap()
	e := New(pool, alloc, KindTypeError, "bad", nil)

	// An explicitly empty name (as opposed to no name property at all)
	// makes toString() return the message alone.
	e.obj.Slots[e.nameIndex] = shape.FromManaged(newManagedString(""))

	if got, want := e.String(), "bad"; got != want {
		t.Fatalf("String() = %q, want %q", got, want)
	}
}

func TestStackFormatIsFunctionAtSourceLine(t *testing.T) {
	pool, alloc := newTestHeap()
	e := New(pool, alloc, KindError, "", []StackFrame{
		{Function: "f", File: "a.js", Line: 3},
		{Function: "g", File: "b.js", Line: 7},
	})

	if got, want := e.Stack(), "f@a.js:3\ng@b.js:7"; got != want {
		t.Fatalf("Stack() = %q, want %q", got, want)
	}
}

func TestStackIsLazyAndMemoized(t *testing.T) {
	pool, alloc := newTestHeap()
	e := New(pool, alloc, KindReferenceError, "x is not defined", []StackFrame{
		{Function: "foo", File: "main.js", Line: 10, Column: 3},
	})

	if e.stackRef != nil {
		t.Fatalf("stack string built before Stack() was ever called")
	}

	s1 := e.Stack()
	if s1 != "foo@main.js:10" {
		t.Fatalf("Stack() = %q, want %q", s1, "foo@main.js:10")
	}

	s2 := e.Stack()
	if s1 != s2 {
		t.Fatalf("Stack() not memoized: %q vs %q", s1, s2)
	}
}

func TestConstructorInstallsFileNameAndLineNumberFromFrameZero(t *testing.T) {
	pool, alloc := newTestHeap()
	e := New(pool, alloc, KindSyntaxError, "oops", []StackFrame{
		{Function: "main", File: "main.js", Line: 42},
	})

	if got := e.FileName(); got != "main.js" {
		t.Fatalf("FileName() = %q, want %q", got, "main.js")
	}
	line, ok := e.LineNumber()
	if !ok || line != 42 {
		t.Fatalf("LineNumber() = (%d, %v), want (42, true)", line, ok)
	}

	noFrames := New(pool, alloc, KindSyntaxError, "oops", nil)
	if noFrames.FileName() != "" {
		t.Fatalf("FileName() = %q, want empty without frames", noFrames.FileName())
	}
	if _, ok := noFrames.LineNumber(); ok {
		t.Fatalf("LineNumber() reported present without frames")
	}
}

func TestNewWithLocationPrependsFrame(t *testing.T) {
	pool, alloc := newTestHeap()
	e := NewWithLocation(pool, alloc, KindEvalError, "bad eval", "eval.js", 5, 1, nil)

	if got := e.FileName(); got != "eval.js" {
		t.Fatalf("FileName() = %q, want %q", got, "eval.js")
	}
	if got, want := e.Stack(), "@eval.js:5"; got != want {
		t.Fatalf("Stack() = %q, want %q", got, want)
	}
}

func TestPerKindConstructors(t *testing.T) {
	pool, alloc := newTestHeap()
	cases := []struct {
		new  func(*shape.Pool, *heap.Allocator, string, []StackFrame) *Error
		kind Kind
	}{
		{NewEvalError, KindEvalError},
		{NewRangeError, KindRangeError},
		{NewReferenceError, KindReferenceError},
		{NewSyntaxError, KindSyntaxError},
		{NewTypeError, KindTypeError},
		{NewURIError, KindURIError},
	}
	for _, c := range cases {
		e := c.new(pool, alloc, "boom", nil)
		if e.Kind() != c.kind {
			t.Fatalf("Kind() = %v, want %v", e.Kind(), c.kind)
		}
	}
}

func TestInternalStackCaptured(t *testing.T) {
	pool, alloc := newTestHeap()
	e := New(pool, alloc, KindError, "oops", nil)
	if e.InternalStack() == nil {
		t.Fatalf("InternalStack() returned nil")
	}
}

func TestErrorImplementsMarkable(t *testing.T) {
	pool, alloc := newTestHeap()
	e := New(pool, alloc, KindError, "oops", nil)
	if e.Marked() {
		t.Fatalf("fresh Error reports Marked() = true")
	}
	e.SetMarked(true)
	if !e.Marked() {
		t.Fatalf("SetMarked(true) did not stick")
	}
}

func TestMarkObjectsMarksCachedStack(t *testing.T) {
	pool, alloc := newTestHeap()
	e := New(pool, alloc, KindError, "oops", []StackFrame{{Function: "f", File: "a.js", Line: 1}})
	e.Stack() // force materialization of stackRef

	var stack MarkStackFake
	e.Mark(&stack)

	if !e.stackRef.Marked() {
		t.Fatalf("Mark() did not mark the cached stack string")
	}
}

// MarkStackFake is a minimal shape.Tracer double recording pushed values
// and marking them immediately, standing in for gc.MarkStack's drain loop.
type MarkStackFake struct {
	pushed []shape.Markable
}

func (s *MarkStackFake) Push(m shape.Markable) {
	s.pushed = append(s.pushed, m)
	m.SetMarked(true)
}
