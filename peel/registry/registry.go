// Package registry maps the opaque integer instance handles spec §6
// describes onto *peel.Instance pointers. Direct Go callers can use
// *peel.Instance directly and skip this package entirely; it exists for
// callers that want the spec's handle-table shape — a future cgo export
// layer, or a driver that wants to log a short handle instead of a
// pointer. The cmd/peelctl driver does not use it.
package registry

import (
	"sync"

	"github.com/clademodel/peelcore/peel"
)

// Registry hands out small integer handles for *peel.Instance values and
// looks them back up by handle, the way the C ABI of spec §6 expects
// createInstance/finalize to address instances by integer rather than by
// pointer. A zero Registry is ready to use.
type Registry struct {
	mu        sync.Mutex
	instances map[int]*peel.Instance
	next      int
}

// New returns an empty, ready-to-use Registry.
func New() *Registry {
	return &Registry{instances: make(map[int]*peel.Instance)}
}

// Create allocates a new instance via peel.NewInstance and returns the
// handle under which it is now registered. On error the instance is never
// registered, matching spec §7's "allocation failure... leaves no
// partially constructed state visible to the client".
func (r *Registry) Create(d peel.Dims) (int, error) {
	inst, err := peel.NewInstance(d)
	if err != nil {
		return 0, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if r.instances == nil {
		r.instances = make(map[int]*peel.Instance)
	}
	r.next++
	handle := r.next
	r.instances[handle] = inst
	return handle, nil
}

// Lookup returns the instance registered under handle, or
// peel.StatusUninitializedInstance if no such handle is live.
func (r *Registry) Lookup(handle int) (*peel.Instance, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	inst, ok := r.instances[handle]
	if !ok {
		return nil, peel.StatusUninitializedInstance
	}
	return inst, nil
}

// Finalize releases the instance registered under handle and removes it
// from the registry. After Finalize, handle is no longer valid; Finalize
// does not recycle the integer, and a later Create never hands it out again.
func (r *Registry) Finalize(handle int) error {
	r.mu.Lock()
	inst, ok := r.instances[handle]
	if !ok {
		r.mu.Unlock()
		return peel.StatusUninitializedInstance
	}
	delete(r.instances, handle)
	r.mu.Unlock()

	return inst.Finalize()
}

// Len reports the number of live (un-finalized) instances currently registered.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.instances)
}
