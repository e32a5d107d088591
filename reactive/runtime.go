package reactive

// Runtime holds the whole reactive state for one independent signal graph.
// The zero value is ready to use. Nothing here is safe for concurrent use,
// execution is single threaded and cooperative: synchronous code runs to
// completion, then Flush drains whatever microtasks it scheduled.
type Runtime struct {
	// It says whether we are currently batching and where to keep the pending values
	batch map[*cell]any
	// It says what the current owner is, depending on the call stack, if any
	observer *Owner
	// Whether cells should register themselves as dependencies for the current owner or not
	tracking bool
	// Queued microtasks, drained by Flush in order
	tasks []ErrFn
	// Guards against re-entrant drains
	draining bool
}

// Function that executes a function with the OBSERVER and TRACKING slots swapped out
// It keeps track of what the previous owner and tracking values were, sets the new ones, and restores the old ones after the function has finished executing
func wrap(rt *Runtime, fn callback, o *Owner, tracking bool) (any, error) {
	observerPrev := rt.observer
	trackingPrev := rt.tracking
	defer func() {
		rt.observer = observerPrev
		rt.tracking = trackingPrev
	}()

	rt.observer = o
	rt.tracking = tracking

	t, err := fn()
	if err != nil {
		// The owner, or one of its ancestors, may be able to handle it via an error handler
		var fns []errorFunction
		if rt.observer != nil {
			if x, ok := rt.observer.get(symbolErrors); ok {
				fns, _ = x.([]errorFunction)
			}
		}

		if len(fns) == 0 {
			// No handlers, bubbling
			return t, err
		}
		for _, fn := range fns {
			fn(err)
		}
	}

	return t, nil
}

// Owner returns the owner currently on the call stack, if any.
func (rt *Runtime) Owner() *Owner {
	return rt.observer
}

// RunWithOwner executes fn with the given owner installed as the current one,
// with tracking turned off. It is the hook for carrying an ownership scope
// across a microtask boundary, so cleanups registered inside fn attach to the
// scope that was live when the task was scheduled.
func (rt *Runtime) RunWithOwner(o *Owner, fn ErrFn) error {
	_, err := wrap(rt, func() (any, error) {
		return nil, fn()
	}, o, false)
	return err
}

// Microtask schedules fn to run on the next Flush, after the current
// synchronous execution completes.
func (rt *Runtime) Microtask(fn ErrFn) {
	rt.tasks = append(rt.tasks, fn)
}

// Flush drains the microtask queue, including tasks scheduled while draining.
// The first task error aborts the drain and is returned, the remaining tasks
// stay queued. A re-entrant call is a no-op.
func (rt *Runtime) Flush() error {
	if rt.draining {
		return nil
	}
	rt.draining = true
	defer func() {
		rt.draining = false
	}()

	for len(rt.tasks) > 0 {
		fn := rt.tasks[0]
		rt.tasks = rt.tasks[1:]
		if err := fn(); err != nil {
			return err
		}
	}
	return nil
}
