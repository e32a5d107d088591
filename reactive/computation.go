package reactive

// A computation is an owner that can be re-executed: the unit behind effects
// and memos. It threads its own previous return value into each re-run.
type computation struct {
	owner *Owner

	// Function to potentially re-execute, receiving the previous value
	fn func(prev any) (any, error)
	// Cell holding the last value returned by the function, created after the
	// first run so a custom first value never goes through the equality check
	out *cell
	// waiting > 0 means that many of our dependencies are stale
	// waiting == 0 means the value is current, nothing to wait for
	waiting int
	// Whether at least one dependency actually changed since the last run
	fresh bool
}

func newComputation(rt *Runtime, fn func(prev any) (any, error), initial any) (*computation, error) {
	c := &computation{
		owner: newOwner(rt),
		fn:    fn,
	}

	t, err := c.run(initial)
	if err != nil {
		return nil, err
	}

	c.out = newCell(rt, t)
	// Linking the cell back, so reads can tell whether their source is stale
	c.out.parent = c.owner

	// Hooks go in only after the first run: a write landing on a half-built
	// computation must not try to refresh a cell that does not exist yet
	c.owner.waiting = func() int { return c.waiting }
	c.owner.update = c.update
	c.owner.stale = c.stale

	return c, nil
}

// Execute the computation. It disposes of itself first and re-links with its
// parent, which is what makes dynamic dependencies possible: only what this
// run actually reads is subscribed afterwards.
func (c *computation) run(prev any) (any, error) {
	c.owner.dispose()

	if c.owner.parent != nil {
		c.owner.parent.children.Add(c.owner)
	}

	return wrap(c.owner.rt, func() (any, error) {
		return c.fn(prev)
	}, c.owner, true)
}

// Same as run, but also pushes the result into the cell
func (c *computation) update() error {
	c.waiting = 0
	c.fresh = false

	prev := c.out.value
	t, err := c.run(prev)
	if err != nil {
		return err
	}
	c.out.write(t)
	return nil
}

// Propagating the "stale" status through this computation's own cell.
// We propagate false for fresh here, the cell itself propagates a true one
// when and if its value actually changes.
func (c *computation) stale(change int, fresh bool) error {
	// Already settled but told to settle again: the computation got refreshed
	// forcefully through a read, nothing to do
	if c.waiting == 0 && change < 0 {
		return nil
	}

	// Going from settled to waiting, tell the downstream to wait for us
	if c.waiting == 0 && change > 0 {
		c.out.stale(1, false)
	}

	c.waiting += change

	if fresh {
		c.fresh = true
	}

	// Everything we were waiting for has settled
	if c.waiting == 0 {
		if c.fresh {
			if err := c.update(); err != nil {
				return err
			}
		}
		c.out.stale(-1, false)
	}

	return nil
}

// Effect registers fn to re-run, synchronously and immediately, whenever any
// cell it read during its previous run changes. fn receives the value it
// returned last time, seeded with initial. The first run happens before
// Effect returns, its error (after OnError handlers had their chance) is the
// returned error.
func Effect[T any](rt *Runtime, fn func(prev T) (T, error), initial T) error {
	_, err := newComputation(rt, func(prev any) (any, error) {
		p, _ := prev.(T)
		return fn(p)
	}, initial)
	return err
}

// Memo is a computation exposing a getter to its cached value. Reading the
// getter never observes a stale value: if dependencies changed, the
// computation refreshes before the read returns.
func Memo[T any](rt *Runtime, fn func(prev T) (T, error), initial T) (Getter[T], error) {
	c, err := newComputation(rt, func(prev any) (any, error) {
		p, _ := prev.(T)
		return fn(p)
	}, initial)
	if err != nil {
		return nil, err
	}
	return func() T {
		return c.out.read().(T)
	}, nil
}
