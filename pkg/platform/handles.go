package platform

import (
	"sync"
	"sync/atomic"
)

// HandleID identifies a native resource. Zero is never allocated.
type HandleID int64

// HandleTable tracks which native resources are still alive. Native code can
// release a handle at any time, from any thread, independently of the Go
// objects that wrap it.
type HandleTable struct {
	mu     sync.RWMutex
	live   map[HandleID]string
	nextID atomic.Int64
}

// NewHandleTable returns an empty table.
func NewHandleTable() *HandleTable {
	return &HandleTable{live: make(map[HandleID]string)}
}

// DefaultHandles is the process-wide table used by controls created with
// NewNativeControl and by the native bridge.
var DefaultHandles = NewHandleTable()

// Allocate registers a new live handle. kind names the native type for
// diagnostics.
func (t *HandleTable) Allocate(kind string) Handle {
	id := HandleID(t.nextID.Add(1))
	t.mu.Lock()
	t.live[id] = kind
	t.mu.Unlock()
	return Handle{id: id, table: t}
}

// Release marks id as dead. It reports whether the handle was live.
func (t *HandleTable) Release(id HandleID) bool {
	t.mu.Lock()
	_, ok := t.live[id]
	delete(t.live, id)
	t.mu.Unlock()
	return ok
}

// IsLive reports whether id is still live.
func (t *HandleTable) IsLive(id HandleID) bool {
	t.mu.RLock()
	_, ok := t.live[id]
	t.mu.RUnlock()
	return ok
}

// Len returns the number of live handles.
func (t *HandleTable) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.live)
}

func (t *HandleTable) reset() {
	t.mu.Lock()
	t.live = make(map[HandleID]string)
	t.mu.Unlock()
	t.nextID.Store(0)
}

// Handle is a reference to a native resource. The zero Handle is never valid.
type Handle struct {
	id    HandleID
	table *HandleTable
}

// ID returns the handle id.
func (h Handle) ID() HandleID { return h.id }

// Valid reports whether the native resource still exists.
func (h Handle) Valid() bool {
	return h.table != nil && h.id != 0 && h.table.IsLive(h.id)
}

// Release frees the native resource. Releasing twice is harmless.
func (h Handle) Release() {
	if h.table != nil {
		h.table.Release(h.id)
	}
}
