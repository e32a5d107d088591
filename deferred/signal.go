package deferred

import "github.com/delaneyj/afterparty/reactive"

// Type for the getter half of a tracked signal
type Getter[T any] func() T

// Type for the setter half of a tracked signal
type Setter[T any] func(value T)

// Signal wraps one base cell into tracked read/write capabilities.
//
// Reads outside scheduler-controlled execution are the plain base read.
// During a deferred effect's run, a read additionally records this signal
// into that effect's dependency set.
//
// Writes outside a flush are the plain base write. While the flush loop is
// draining, a write first pushes every dependent pending effect to the tail
// of the queue, so it observes this value instead of one captured earlier in
// the same flush, and only then hits the base cell.
func Signal[T any](sc *Scheduler, initial T) (Getter[T], Setter[T]) {
	read, write := reactive.Signal(sc.rt, initial)
	src := &source{id: nextID()}

	get := func() T {
		if sc.current != nil {
			sc.recordRead(src)
		}
		return read()
	}

	set := func(v T) {
		if sc.runningEffects {
			sc.reorderDependents(src)
		}
		write(v)
	}

	return get, set
}
