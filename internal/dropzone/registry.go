package dropzone

import (
	"sync"

	"go.uber.org/zap"
)

// Target is a list that can receive drops
type Target interface {
	ContainerID() string
}

// Connector is a drag source that needs to know where cross-list drops go
type Connector interface {
	ConnectTo(target Target)
}

// Registry defers drop-zone wiring until the render layer reports that a
// frame has been drawn. The element list of a newly selected group only
// exists after that frame, so wiring earlier would hand the catalog a
// stale or missing target.
type Registry struct {
	mutex   sync.Mutex
	pending []func()
	log     *zap.Logger
}

// NewRegistry creates an empty registry
func NewRegistry(log *zap.Logger) *Registry {
	if log == nil {
		log = zap.NewNop()
	}
	return &Registry{log: log}
}

// Rewire queues the connection of catalog to whatever resolve returns once
// the current render pass has finished
func (r *Registry) Rewire(resolve func() Target, catalog Connector) {
	r.Defer(func() {
		target := resolve()
		if target == nil {
			r.log.Debug("drop zone rewire skipped, no active target")
			return
		}
		catalog.ConnectTo(target)
		r.log.Debug("drop zone rewired", zap.String("target", target.ContainerID()))
	})
}

// Defer queues task to run on the next Flush
func (r *Registry) Defer(task func()) {
	r.mutex.Lock()
	r.pending = append(r.pending, task)
	r.mutex.Unlock()
}

// Flush runs every queued task in order and reports how many ran. Tasks
// queued while flushing wait for the next Flush.
func (r *Registry) Flush() int {
	r.mutex.Lock()
	tasks := r.pending
	r.pending = nil
	r.mutex.Unlock()

	for _, task := range tasks {
		task()
	}
	return len(tasks)
}

// Pending returns the number of queued tasks
func (r *Registry) Pending() int {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	return len(r.pending)
}
