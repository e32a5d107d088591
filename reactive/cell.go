package reactive

import (
	"reflect"

	mapset "github.com/deckarep/golang-set/v2"
)

// Cells make values reactive, going through function calls to get/set values
// enables the automatic dependency tracking and computation re-execution
type cell struct {
	rt *Runtime

	// The "parent" computation owning this cell, if any. Reading a cell whose
	// parent is stale refreshes the parent first, so reads never observe a
	// value that is out of date with respect to its inputs.
	parent *Owner
	// The current value
	value any
	// Owners to notify when the value changes. A set, because a cell read
	// multiple times inside one computation must still refresh it only once.
	observers mapset.Set[*Owner]
}

func newCell(rt *Runtime, value any) *cell {
	return &cell{
		rt:        rt,
		value:     value,
		observers: mapset.NewSet[*Owner](),
	}
}

// Propagating a change of the "stale" status to every observer of this cell.
// +1 means a dependency went stale, wait for it. -1 means it settled, update
// yourself if you are not waiting for anything else. fresh says whether
// something actually changed, if nothing changed anywhere a computation is
// just not re-executed.
func (c *cell) stale(change int, fresh bool) {
	for _, o := range c.observers.ToSlice() {
		if o.stale != nil {
			o.stale(change, fresh)
		}
	}
}

func (c *cell) read() any {
	// Registering the cell as a dependency of the current owner, if tracking
	if c.rt.tracking && c.rt.observer != nil {
		c.observers.Add(c.rt.observer)
		c.rt.observer.sources.Add(c)
	}

	// The parent is stale, refresh it first or this read glitches: the caller
	// could see "count" at 3 while "doubleCount" still says 4
	if c.parent != nil && c.parent.waiting != nil && c.parent.waiting() != 0 {
		c.parent.update()
	}

	return c.value
}

func (c *cell) write(next any) any {
	// Nothing changed, nothing to re-run
	if reflect.DeepEqual(c.value, next) {
		return c.value
	}

	// Batching, keep the value for later
	if c.rt.batch != nil {
		c.rt.batch[c] = next
		return c.value
	}

	c.value = next

	// Mark every transitive observer stale, then settle them. Doing it in two
	// waves is what keeps a computation observed from two paths from running
	// twice per write.
	c.stale(1, true)
	c.stale(-1, true)

	return c.value
}

// Signal creates one base read/write cell, with no deferral involved: writes
// re-run dependent effects synchronously and immediately.
func Signal[T any](rt *Runtime, initial T) (Getter[T], Setter[T]) {
	c := newCell(rt, initial)
	get := func() T {
		return c.read().(T)
	}
	set := func(v T) {
		c.write(v)
	}
	return get, set
}
