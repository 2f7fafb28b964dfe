// vi: sw=4 ts=4:

package managers

import (
	"testing"

	"github.com/tanneberger/aspen/gizmos"
)

func TestQueueSubmitTakeFifoOrder(t *testing.T) {
	q := Mk_chateau_queue()

	q.Submit(gizmos.PendingChateau{ChateauId: "c1"})
	q.Submit(gizmos.PendingChateau{ChateauId: "c2"})

	p1, ok := q.Take()
	if !ok || p1.ChateauId != "c1" {
		t.Fatalf("expected c1 first, got %v ok=%v", p1, ok)
	}

	p2, ok := q.Take()
	if !ok || p2.ChateauId != "c2" {
		t.Fatalf("expected c2 second, got %v ok=%v", p2, ok)
	}

	if _, ok := q.Take(); ok {
		t.Fatalf("expected the queue to be empty")
	}
}

func TestQueueCoalescesDuplicateSubmissions(t *testing.T) {
	q := Mk_chateau_queue()

	if ok := q.Submit(gizmos.PendingChateau{ChateauId: "c1"}); !ok {
		t.Fatalf("expected the first submission to be accepted")
	}
	if ok := q.Submit(gizmos.PendingChateau{ChateauId: "c1"}); ok {
		t.Fatalf("expected a second submission for the same chateau to be coalesced")
	}

	if got := q.Len(); got != 1 {
		t.Fatalf("expected exactly one in-flight entry, got %d", got)
	}
}

func TestQueueReleaseReopensForResubmission(t *testing.T) {
	q := Mk_chateau_queue()

	q.Submit(gizmos.PendingChateau{ChateauId: "c1"})
	q.Take()

	if ok := q.Submit(gizmos.PendingChateau{ChateauId: "c1"}); ok {
		t.Fatalf("a job still in flight (taken but not released) must still coalesce")
	}

	q.Release("c1")

	if ok := q.Submit(gizmos.PendingChateau{ChateauId: "c1"}); !ok {
		t.Fatalf("after Release, the chateau must be eligible for resubmission")
	}
}

func TestQueueBoundsOneJobPerChateau(t *testing.T) {
	q := Mk_chateau_queue()

	for i := 0; i < 5; i++ {
		q.Submit(gizmos.PendingChateau{ChateauId: "c1"})
	}

	if got := q.Len(); got != 1 {
		t.Fatalf("expected at most one resident job per chateau, got %d", got)
	}
}
