package reactive

import mapset "github.com/deckarep/golang-set/v2"

// An Owner is something that can have cells as dependencies and resources to
// dispose of. Effects and memos run under their own owner, roots give one to
// arbitrary code.
type Owner struct {
	rt *Runtime

	// The parent owner, if any, we need this because context reads and errors bubble up
	parent *Owner
	// Custom cleanup functions registered via OnCleanup
	cleanups []func()
	// Context values, plus error handlers, keyed by symbol
	contexts map[int64]any
	// Child owners, disposed together with this one
	children mapset.Set[*Owner]
	// Cells this owner depends on, so disposal can unsubscribe from them
	sources mapset.Set[*cell]

	// Hooks installed by computations, nil on plain owners
	waiting func() int
	update  func() error
	stale   func(change int, fresh bool) error
}

func newOwner(rt *Runtime) *Owner {
	return &Owner{
		rt:       rt,
		parent:   rt.observer,
		contexts: map[int64]any{},
		children: mapset.NewSet[*Owner](),
		sources:  mapset.NewSet[*cell](),
	}
}

// Disposing, clearing everything
func (o *Owner) dispose() {
	// Child owners first, recursively
	for _, child := range o.children.ToSlice() {
		child.dispose()
	}

	// Telling cells to not notify us anymore
	for _, src := range o.sources.ToSlice() {
		src.observers.Remove(o)
	}

	// Custom cleanup functions, most recent first
	for i := len(o.cleanups) - 1; i >= 0; i-- {
		o.cleanups[i]()
	}

	o.cleanups = o.cleanups[:0]
	o.contexts = map[int64]any{}
	o.children.Clear()
	o.sources.Clear()

	// Unlinking from the parent, or this owner is never garbage collected while the parent lives
	if o.parent != nil {
		o.parent.children.Remove(o)
	}
}

// Getting something from the context storage, walking up the owner tree
func (o *Owner) get(id int64) (any, bool) {
	if v, ok := o.contexts[id]; ok {
		return v, true
	}
	if o.parent != nil {
		return o.parent.get(id)
	}
	return nil, false
}

// Setting something in the context storage
func (o *Owner) set(id int64, value any) {
	o.contexts[id] = value
}

// OnCleanup registers fn to run when the current owner is disposed.
// No-op when no owner is active.
func OnCleanup(rt *Runtime, fn func()) {
	if rt.observer == nil {
		return
	}
	rt.observer.cleanups = append(rt.observer.cleanups, fn)
}

// OnError registers fn as an error handler on the current owner. Errors
// returned by computations under this owner, or any of its descendants
// without a closer handler, are routed to fn instead of bubbling.
func OnError(rt *Runtime, fn func(err error)) {
	if rt.observer == nil {
		return
	}
	var fns []errorFunction
	if x, ok := rt.observer.contexts[symbolErrors]; ok {
		fns, _ = x.([]errorFunction)
	}
	rt.observer.contexts[symbolErrors] = append(fns, errorFunction(fn))
}

// A root is a plain owner that exposes its dispose function and survives its
// parent being disposed: the parent never learns about it, so you have to
// dispose of roots yourself. It still knows its parent because context reads
// and errors bubble up.
func CreateRoot[T any](rt *Runtime, fn func(dispose func()) (T, error)) (T, error) {
	o := newOwner(rt)

	x, err := wrap(rt, func() (any, error) {
		return fn(o.dispose)
	}, o, false)

	var t T
	if err != nil {
		return t, err
	}
	t, _ = x.(T)
	return t, nil
}
