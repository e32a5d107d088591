package reactive

// Batch holds onto cell writes until fn has finished executing, so
// computations re-run the minimum number of times: change a cell in a loop
// and its observers are refreshed once at the end instead of per iteration.
// While batching, getters still return the old values.
func Batch[T any](rt *Runtime, fn func() (T, error)) (T, error) {
	// Already batching? Nothing else to do then
	if rt.batch != nil {
		return fn()
	}

	rt.batch = map[*cell]any{}

	defer func() {
		pending := rt.batch
		rt.batch = nil

		// Mark all the written cells stale at once: an observer listening to
		// several of them must still run only once
		for c := range pending {
			c.stale(1, false)
		}
		for c, value := range pending {
			c.write(value)
		}
		for c := range pending {
			c.stale(-1, false)
		}
	}()

	return fn()
}

// Untrack executes fn with tracking turned off: reads inside do not register
// dependencies on the current owner.
func Untrack[T any](rt *Runtime, fn func() (T, error)) (T, error) {
	x, err := wrap(rt, func() (any, error) {
		return fn()
	}, rt.observer, false)

	var t T
	if err != nil {
		return t, err
	}
	t, _ = x.(T)
	return t, nil
}
