package deferred

import "github.com/delaneyj/afterparty/reactive"

// Effect registers fn as a deferred effect. The first run happens
// synchronously, before Effect returns, with initial as the previous value,
// and records which tracked signals fn reads. Every re-run the base runtime
// triggers after that is coalesced into the next microtask flush instead of
// executing immediately.
//
// If an ownership scope is active, tearing it down unregisters the effect:
// it is removed from the registry and the pending queue and never replayed.
//
// The first run's error, after OnError handlers up the owner tree had their
// chance, is returned. Errors from deferred replays surface out of the
// runtime's Flush.
func Effect[T any](sc *Scheduler, fn func(prev T) (T, error), initial T) error {
	r := &runner{
		id: nextID(),
		fn: func(prev any) (any, error) {
			p, _ := prev.(T)
			return fn(p)
		},
		value: initial,
	}
	sc.clearDeps(r)
	return sc.register(r)
}

// register wires r into the base effect primitive. The base effect's first
// invocation is the synchronous run; every later invocation means a
// dependency changed, so r goes to the pending queue instead and one flush
// gets scheduled.
//
// The flush loop re-enters here to replay a drained effect: a fresh base
// registration seeded with r's previous return value, sharing r's dependency
// set. Only the public entry point clears the set first, replays accumulate,
// new reads refresh it as they happen.
func (sc *Scheduler) register(r *runner) error {
	reactive.OnCleanup(sc.rt, func() {
		sc.removeEffect(r)
	})

	first := true
	return reactive.Effect(sc.rt, func(prev any) (any, error) {
		if first {
			first = false
			return sc.runAs(r, prev)
		}

		// Subsequent base trigger: defer. The enqueue looks redundant with
		// the write-triggered move-to-tail, but each covers writes the other
		// misses, dropping either changes ordering under replay.
		// TODO fold enqueue and reorder bookkeeping together once the
		// overlap is characterized.
		sc.enqueue(r)
		sc.scheduleFlush()
		return prev, nil
	}, r.value)
}
