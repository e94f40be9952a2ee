package engine

import (
	"sync"

	"github.com/neuroradiology/qtdeclarative/errobj"
	"github.com/neuroradiology/qtdeclarative/gc"
	"github.com/neuroradiology/qtdeclarative/heap"
	"github.com/neuroradiology/qtdeclarative/ident"
	"github.com/neuroradiology/qtdeclarative/pagealloc"
	"github.com/neuroradiology/qtdeclarative/shape"
)

// Engine is the single entry point a host program talks to: it owns the
// page allocator, the size-classed heap allocator, the collector, the
// identifier table and the root of the shape DAG, and the prototype
// vtables built-in types share. NewObject, Collect, Stats and Close are
// serialized by a single mutex; the exported fields are not guarded by it.
type Engine struct {
	mu sync.Mutex // big kernel lock: serializes allocation/collection

	Config *Config

	Pages     *pagealloc.Allocator
	Allocator *heap.Allocator
	Collector *gc.Collector
	Idents    *ident.Table
	Shapes    *shape.Pool

	errorVTable *shape.VTable
	closed      bool
}

// New wires a fresh Engine from cfg. Pass nil to use LoadConfig's
// environment-derived defaults.
func New(cfg *Config) (*Engine, error) {
	if cfg == nil {
		var err error
		cfg, err = LoadConfig()
		if err != nil {
			return nil, err
		}
	} else if err := cfg.check(); err != nil {
		return nil, err
	}

	pages := pagealloc.New(func(format string, args ...interface{}) {
		cfg.Logger.Fatalf(format, args...)
	})
	alloc := heap.NewAllocator(pages, cfg.MaxChunkShift)
	policy := gc.NewPolicy(cfg.GrowthThreshold, cfg.AggressiveGC)
	collector := gc.NewCollector(alloc, policy)
	pool := shape.NewPool()

	return &Engine{
		Config:      cfg,
		Pages:       pages,
		Allocator:   alloc,
		Collector:   collector,
		Idents:      pool.Identifiers,
		Shapes:      pool,
		errorVTable: errobj.VTable(),
	}, nil
}

// NewObject allocates a fresh heap.Object of class with room for
// numSlots property values, running a collection first if Config/policy
// says one is due.
func (e *Engine) NewObject(class *shape.Class, numSlots int) *heap.Object {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.Collector.Policy.RecordAllocation(int64(numSlots) * 8)
	e.Collector.MaybeCollect(nil)
	obj := e.Allocator.Alloc(class, numSlots)
	if e.Config.Stats {
		e.Config.Logger.Debugf("engine: allocated object class=%p slots=%d", class, numSlots)
	}
	return obj
}

// Collect forces an unconditional collection, ignoring Policy, the same
// operation the CLI's "alloc" subcommand runs after allocating.
func (e *Engine) Collect() gc.SweepStats {
	e.mu.Lock()
	defer e.mu.Unlock()

	stats := e.Collector.Collect(nil)
	if e.Config.Stats {
		e.Config.Logger.Infof("engine: gc swept=%d reclaimed=%d", stats.Swept, stats.Reclaimed)
	}
	return stats
}

// Stats returns the allocator/collector's current counters.
func (e *Engine) Stats() gc.Stats {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.Collector.Stats()
}

// ErrorVTable returns the shared vtable installed on every errobj.Error's
// Class, so callers building an error's shape transition chain can call
// class.ChangeVTable(e.ErrorVTable()).
func (e *Engine) ErrorVTable() *shape.VTable { return e.errorVTable }

// Close marks the engine closed. There is no persistent storage to flush
// (this module's heap is process-memory only), and no other method
// consults the closed flag.
func (e *Engine) Close() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.closed = true
	return nil
}
