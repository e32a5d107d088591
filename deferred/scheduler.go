// Package deferred reschedules effect re-runs to a microtask flush instead of
// running them synchronously on every write. While the flush drains, tracked
// writes push dependent effects to the tail of the pending queue, so an
// effect always observes the most recent write to anything it depends on.
package deferred

import (
	"sync/atomic"

	mapset "github.com/deckarep/golang-set/v2"

	"github.com/delaneyj/afterparty/reactive"
)

// Scheduler owns all deferral state for one runtime: the pending effect
// queue, the dependency registry and the two flush flags. Schedulers are
// independent, create one per runtime. Like the runtime it wraps, a
// Scheduler is single threaded and cooperative.
type Scheduler struct {
	rt *reactive.Runtime

	// Registry: which sources each registered effect has read since its
	// dependencies were last cleared
	deps map[*runner]mapset.Set[*source]

	// Insertion-ordered set of effects awaiting a deferred re-run
	queue []*runner

	// True while the flush loop is draining the queue
	runningEffects bool
	// True while a microtask flush is pending
	flushScheduled bool

	// The effect currently executing under this scheduler, reads attribute
	// their source to it. Pushed and popped around each run, never a global.
	current *runner
}

func NewScheduler(rt *reactive.Runtime) *Scheduler {
	return &Scheduler{
		rt:   rt,
		deps: map[*runner]mapset.Set[*source]{},
	}
}

// Runtime returns the base runtime this scheduler defers effects for.
func (sc *Scheduler) Runtime() *reactive.Runtime {
	return sc.rt
}

// source is the opaque handle identifying one tracked signal's write
// capability, the key dependency tracking runs on.
type source struct {
	id uint64
}

// runner is the opaque handle identifying one registered deferred effect.
// Replays share the handle, and with it the dependency set.
type runner struct {
	id uint64
	// The effect function, re-executed with its previous return value
	fn func(prev any) (any, error)
	// Last value fn returned, seeds the next replay's base registration
	value any
}

var lastID uint64

func nextID() uint64 {
	return atomic.AddUint64(&lastID, 1)
}

// runAs executes r's effect function with r installed as the currently
// executing effect, so tracked reads inside land in r's dependency set.
func (sc *Scheduler) runAs(r *runner, prev any) (any, error) {
	parent := sc.current
	sc.current = r
	defer func() {
		sc.current = parent
	}()

	next, err := r.fn(prev)
	if err != nil {
		return nil, err
	}
	r.value = next
	return next, nil
}

// scheduleFlush schedules exactly one microtask to drain the queue, unless a
// flush is already running or scheduled. The current ownership scope is
// captured so cleanups registered during replays attach to the right place.
func (sc *Scheduler) scheduleFlush() {
	if sc.runningEffects || sc.flushScheduled {
		return
	}
	sc.flushScheduled = true

	owner := sc.rt.Owner()
	sc.rt.Microtask(func() error {
		return sc.rt.RunWithOwner(owner, sc.flush)
	})
}

// flush drains the pending queue, replaying each effect through the
// subsequent-run registration path. Replays may enqueue or reorder other
// effects, the loop keeps going until the queue is empty, so members added
// mid-drain are still visited.
//
// An error out of a replay aborts the drain with the remaining effects
// unexecuted and both flags still set, so no further flush gets scheduled
// on this scheduler. Known gap, kept until error recovery semantics are
// settled rather than inventing a policy here.
func (sc *Scheduler) flush() error {
	sc.runningEffects = true

	for len(sc.queue) > 0 {
		r := sc.queue[0]
		sc.queue = sc.queue[1:]
		if err := sc.register(r); err != nil {
			return err
		}
	}

	sc.runningEffects = false
	sc.flushScheduled = false
	return nil
}
