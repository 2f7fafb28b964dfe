// vi: sw=4 ts=4:

/*

	Mnemonic:	queue
	Abstract:	C5 -- the chateau work queue. A FIFO of PendingChateau plus a
				coalescing set, both mutated under one mutex so the invariant
				"every fifo entry has a matching in_flight_set entry" never
				has to survive a window where only one of the two is updated
.
	Date:		31 July 2026
	Author:		Aspen team
*/

package managers

import (
	"sync"

	"github.com/tanneberger/aspen/gizmos"
)

/*
	Chateau_queue is C5. Submit/Take are both O(1) under the single mutex.
*/
type Chateau_queue struct {
	mu            sync.Mutex
	fifo          []gizmos.PendingChateau
	in_flight_set map[string]bool
}

/*
	Mk_chateau_queue allocates an empty queue.
*/
func Mk_chateau_queue() *Chateau_queue {
	return &Chateau_queue{
		in_flight_set: make(map[string]bool),
	}
}

/*
	Submit enqueues p unless p.ChateauId is already queued or being
	processed, in which case it is silently dropped -- this is the
	coalescing guarantee: at any instant at most one
	job per chateau is resident across queue + workers. Returns true if the
	job was enqueued.
*/
func (q *Chateau_queue) Submit(p gizmos.PendingChateau) bool {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.in_flight_set[p.ChateauId] {
		queue_sheep.Baa(2, "queue: %s already in flight, coalesced", p.ChateauId)
		return false
	}

	q.in_flight_set[p.ChateauId] = true
	q.fifo = append(q.fifo, p)
	queue_sheep.Baa(2, "queue: %s enqueued, depth=%d", p.ChateauId, len(q.fifo))

	return true
}

/*
	Take removes and returns the oldest pending job, or ok=false if the
	queue is empty. Taking a job does NOT remove it from in_flight_set --
	that happens only when the caller later calls Release, after
	enrichment completes (success or failure), so a submission arriving
	mid-processing is dropped rather than queued.
*/
func (q *Chateau_queue) Take() (p gizmos.PendingChateau, ok bool) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if len(q.fifo) == 0 {
		return gizmos.PendingChateau{}, false
	}

	p = q.fifo[0]
	q.fifo = q.fifo[1:]

	return p, true
}

/*
	Release removes chateau_id from in_flight_set, re-opening it for future
	submissions. Must be called by C6 exactly once per Take, regardless of
	whether enrichment succeeded.
*/
func (q *Chateau_queue) Release(chateau_id string) {
	q.mu.Lock()
	defer q.mu.Unlock()

	delete(q.in_flight_set, chateau_id)
}

/*
	Len reports the combined queue+in-flight size, used by the coalescing
	bound property test.
*/
func (q *Chateau_queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()

	return len(q.in_flight_set)
}
