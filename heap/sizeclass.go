package heap

// sizeClasses is a small, fixed ladder of bucket sizes in bytes, with one
// freelist head per rung, plus a final overflow rung for anything larger
// that is satisfied directly from the page allocator instead of being
// pooled: size-classed freelists, tcmalloc-style, where objects above a
// large-object threshold bypass the freelists entirely.
var sizeClasses = []int{16, 32, 64, 128, 256, 512}

// largeObjectThreshold is this module's plain byte-accounting cutoff: any
// object whose slot storage would make it bigger than this skips the
// freelists and is tracked individually (the "large object path"); an
// object of exactly this size is served by the last sizeClasses rung.
const largeObjectThreshold = 512

// classForSize returns the index into sizeClasses that should serve an
// object needing at least size bytes, or -1 if size belongs on the large
// object path.
func classForSize(size int) int {
	for i, sz := range sizeClasses {
		if size <= sz {
			return i
		}
	}
	return -1
}

func classByteSize(class int) int {
	return sizeClasses[class]
}
