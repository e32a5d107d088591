package deferred

import mapset "github.com/deckarep/golang-set/v2"

// recordRead adds src to the currently executing effect's dependency set,
// creating the set on first use. No-op outside scheduler-controlled runs.
func (sc *Scheduler) recordRead(src *source) {
	if sc.current == nil {
		return
	}
	set, ok := sc.deps[sc.current]
	if !ok {
		set = mapset.NewSet[*source]()
		sc.deps[sc.current] = set
	}
	set.Add(src)
}

// clearDeps empties r's dependency set. Runs once per public registration,
// replays keep accumulating into the same set.
func (sc *Scheduler) clearDeps(r *runner) {
	if set, ok := sc.deps[r]; ok {
		set.Clear()
		return
	}
	sc.deps[r] = mapset.NewSet[*source]()
}

// removeEffect deletes r's registry entry and takes it out of the pending
// queue. Called on ownership scope teardown, a torn-down effect must never
// be replayed.
func (sc *Scheduler) removeEffect(r *runner) {
	delete(sc.deps, r)
	sc.removeQueued(r)
}

// reorderDependents scans the whole registry and moves every effect that has
// src among its dependencies to the queue tail. Runs on every tracked write
// during a flush, including for effects mid-execution elsewhere in the same
// flush.
func (sc *Scheduler) reorderDependents(src *source) {
	for r, set := range sc.deps {
		if set.Contains(src) {
			sc.moveToTail(r)
		}
	}
}
