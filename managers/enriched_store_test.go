// vi: sw=4 ts=4:

package managers

import (
	"testing"

	"github.com/tanneberger/aspen/gizmos"
)

func TestEnrichedStoreUnknownChateau(t *testing.T) {
	s := Mk_enriched_store()

	if s.Has("nope") {
		t.Fatalf("expected Has=false for an unpublished chateau")
	}
	if got := s.Get("nope"); got != nil {
		t.Fatalf("expected nil Get for an unpublished chateau, got %v", got)
	}
}

func TestEnrichedStoreGetReturnsAClone(t *testing.T) {
	s := Mk_enriched_store()
	art := gizmos.Mk_artifact(1)
	art.VehicleRoutesCache["10"] = &gizmos.RouteDisplay{RouteId: "10"}

	s.Put("c1", art)

	got := s.Get("c1")
	if got == art {
		t.Fatalf("Get must not return the stored pointer itself")
	}

	got.VehicleRoutesCache["20"] = &gizmos.RouteDisplay{RouteId: "20"}
	if _, ok := art.VehicleRoutesCache["20"]; ok {
		t.Fatalf("mutating a Get snapshot must not affect the stored artifact")
	}
}

func TestEnrichedStorePutOverwrites(t *testing.T) {
	s := Mk_enriched_store()
	s.Put("c1", gizmos.Mk_artifact(1))
	s.Put("c1", gizmos.Mk_artifact(2))

	got := s.Get("c1")
	if got.LastUpdatedTimeMs != 2 {
		t.Fatalf("expected the second Put to win, got LastUpdatedTimeMs=%d", got.LastUpdatedTimeMs)
	}
	if !s.Has("c1") {
		t.Fatalf("expected Has=true after a Put")
	}
}
