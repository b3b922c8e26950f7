package peel

// StrictChecks enables the precondition assertions described in spec §7
// ("debug builds must be caught by assertions"). Go has no separate
// release/debug build mode by default, so this package-level switch plays
// that role; it defaults to on. Disabling it trades safety for the last
// few percent of hot-path latency in a release deployment.
var StrictChecks = true

// Dims holds the scalar dimensions fixed at instance construction and
// immutable thereafter (spec §3).
type Dims struct {
	TipCount      int // T
	BufferCount   int // B; B > T, internal nodes use buffers [T, B)
	StateCount    int // S
	PatternCount  int // P
	CategoryCount int // C
	EigenCount    int // E
	MatrixCount   int // M, allocated transition-matrix slots

	// PartialsBufferCount and CompactBufferCount are the buffer-count-
	// oriented constructor parameters spec §9 names as authoritative. They
	// are accepted but do not change allocation: every one of the B buffers
	// gets a full partials vector, and every tip slot may use the compact
	// tip-state path.
	PartialsBufferCount int
	CompactBufferCount  int
}

// Instance is a single bundle of preallocated numeric buffers implementing
// the peeling engine. All buffers are sized exclusively from Dims at
// construction and never resized; Finalize releases them as a whole.
//
// An Instance is the Go-native analogue of the spec's opaque integer
// handle: the *Instance pointer plays that role directly. See
// peel/registry for an optional integer-handle wrapper.
type Instance struct {
	dims Dims

	store   *bufferStore
	eigen   *eigenCache
	model   *rateModel
	scale   *scaleBuffers
	scratch *workScratch

	finalized bool
}

// NewInstance allocates all buffers sized from the given dimensions. It
// returns StatusOutOfMemory if a computed buffer length overflows and
// StatusOutOfRange if the dimensions are structurally invalid (e.g.
// BufferCount <= TipCount). An allocation the Go runtime cannot satisfy is
// not turned into a Status; it fails inside the runtime.
// A successfully created Instance must eventually be Finalized by the
// caller.
func NewInstance(d Dims) (*Instance, error) {
	if d.TipCount < 0 || d.BufferCount <= d.TipCount || d.StateCount <= 0 ||
		d.PatternCount <= 0 || d.CategoryCount <= 0 || d.EigenCount <= 0 || d.MatrixCount <= 0 {
		return nil, outOfRange("invalid dimensions %+v", d)
	}
	if d.PartialsBufferCount <= 0 {
		d.PartialsBufferCount = d.BufferCount
	}

	inst := &Instance{dims: d}

	store, err := newBufferStore(d)
	if err != nil {
		return nil, err
	}
	inst.store = store

	inst.eigen = newEigenCache(d.EigenCount, d.StateCount)
	inst.model = newRateModel(d.CategoryCount, d.StateCount, d.MatrixCount)
	inst.scale = newScaleBuffers(d.PatternCount, d.CategoryCount, d.StateCount, d.BufferCount)
	inst.scratch = newWorkScratch(d)

	return inst, nil
}

// Dims returns the dimensions the instance was constructed with.
func (inst *Instance) Dims() Dims { return inst.dims }

// Finalize releases all buffers owned by the instance. After Finalize, the
// instance must not be used again.
func (inst *Instance) Finalize() error {
	if inst.finalized {
		return general("instance already finalized")
	}
	inst.finalized = true
	inst.store = nil
	inst.eigen = nil
	inst.model = nil
	inst.scale = nil
	inst.scratch = nil
	return nil
}

func (inst *Instance) checkAlive() error {
	if inst.finalized {
		return StatusUninitializedInstance
	}
	return nil
}

// isTip reports whether buffer index i addresses a tip slot.
func (inst *Instance) isTip(i int) bool { return i < inst.dims.TipCount }
