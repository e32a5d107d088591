package deferred

// The pending queue is an insertion-ordered set: membership is unique, and
// the only way an existing member changes position is moveToTail.

// enqueue appends r unless it is already pending.
func (sc *Scheduler) enqueue(r *runner) {
	for _, queued := range sc.queue {
		if queued == r {
			return
		}
	}
	sc.queue = append(sc.queue, r)
}

// moveToTail removes r if present, then re-appends it, so it is scheduled to
// observe a write that just happened rather than a value captured earlier in
// the same flush. An effect already drained this pass gets re-added: that is
// what makes it run again and see the newer value.
func (sc *Scheduler) moveToTail(r *runner) {
	sc.removeQueued(r)
	sc.queue = append(sc.queue, r)
}

// removeQueued takes r out of the queue, a no-op when absent.
func (sc *Scheduler) removeQueued(r *runner) {
	for i, queued := range sc.queue {
		if queued == r {
			sc.queue = append(sc.queue[:i], sc.queue[i+1:]...)
			return
		}
	}
}
