// Package pagealloc is the page-granular bottom of the managed heap. It
// hands out aligned, zeroed page ranges to the size-classed allocator
// above it and accounts for how many pages are outstanding.
//
// A real engine talks to the OS (mmap/VirtualAlloc) here. This module has
// no cgo, so pages are realized as plain Go byte slices rounded up to a
// PageSize multiple and aligned by over-allocating and trimming: a backing
// store addressed by page index rather than a raw OS mapping.
package pagealloc

import (
	"fmt"
	"unsafe"
)

// PageSize is the page granularity every allocation above this package is
// rounded to.
const PageSize = 4096

// Alloc is one page-aligned range returned by the Allocator. Base is the
// first byte of the aligned range; Bytes is the full range as a slice.
type Alloc struct {
	Bytes []byte
	base  uintptr
}

// Base returns the aligned start address of the allocation, for callers
// (the HeapChunk registry) that need to sort chunks by base address.
func (a Alloc) Base() uintptr { return a.base }

// Size is the Alloc's length in bytes.
func (a Alloc) Size() int { return len(a.Bytes) }

// FatalFunc is invoked when Allocate is asked for a non-positive page
// count. It is a func value (not a hardwired log.Fatal) so the engine can
// plug in its own Logger.Fatalf.
type FatalFunc func(format string, args ...interface{})

// Allocator hands out page ranges and tracks how many pages are currently
// outstanding.
type Allocator struct {
	onFatal FatalFunc

	pagesOutstanding int64
	bytesOutstanding int64
}

// New returns a PageAllocator. onFatal defaults to panicking if nil.
func New(onFatal FatalFunc) *Allocator {
	if onFatal == nil {
		onFatal = func(format string, args ...interface{}) {
			panic(fmt.Sprintf(format, args...))
		}
	}
	return &Allocator{onFatal: onFatal}
}

// Allocate returns a zeroed range of exactly npages pages, page-aligned.
// Allocate never returns an error: running out of address space is fatal
// to the engine, with no recovery path.
func (p *Allocator) Allocate(npages int) Alloc {
	if npages <= 0 {
		p.onFatal("pagealloc: invalid page count %d", npages)
		return Alloc{}
	}
	want := npages * PageSize

	// Over-allocate by one page so we can trim to alignment; Go's allocator
	// gives no alignment guarantee for arbitrary sizes.
	raw := make([]byte, want+PageSize)
	base := uintptr(unsafe.Pointer(&raw[0]))
	pad := (PageSize - int(base%PageSize)) % PageSize
	aligned := raw[pad : pad+want]
	alignedBase := uintptr(unsafe.Pointer(&aligned[0]))

	p.pagesOutstanding += int64(npages)
	p.bytesOutstanding += int64(want)

	return Alloc{Bytes: aligned, base: alignedBase}
}

// Release returns a range's pages to "the OS" — in this pure-Go realization
// that means dropping the last reference so Go's own GC can reclaim it, and
// updating accounting. Callers must not touch a.Bytes after Release.
func (p *Allocator) Release(a Alloc) {
	n := len(a.Bytes) / PageSize
	p.pagesOutstanding -= int64(n)
	p.bytesOutstanding -= int64(len(a.Bytes))
}

// PagesOutstanding reports how many pages have been Allocate'd but not yet
// Release'd. Used by gc.Stats for before/after collection reporting.
func (p *Allocator) PagesOutstanding() int64 { return p.pagesOutstanding }

// BytesOutstanding is PagesOutstanding in bytes.
func (p *Allocator) BytesOutstanding() int64 { return p.bytesOutstanding }

// RoundUpToPage rounds size up to the next multiple of PageSize.
func RoundUpToPage(size uintptr) uintptr {
	return (size + PageSize - 1) &^ (PageSize - 1)
}
