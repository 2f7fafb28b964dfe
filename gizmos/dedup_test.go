// vi: sw=4 ts=4:

package gizmos

import "testing"

func TestDedupObserveNoTimestampAlwaysNew(t *testing.T) {
	d := Mk_dedup_index()
	key := FeedKey{FeedId: "f-bart~rt", Kind: VehiclePositions}

	if v := d.Observe(key, 0, false, []string{"a", "b"}); v != New {
		t.Fatalf("expected New on first no-timestamp observe, got %v", v)
	}
	if v := d.Observe(key, 0, false, []string{"a", "b"}); v != New {
		t.Fatalf("expected New on every no-timestamp observe, got %v", v)
	}
}

func TestDedupObserveSameTimestampIsOld(t *testing.T) {
	d := Mk_dedup_index()
	key := FeedKey{FeedId: "f-bart~rt", Kind: VehiclePositions}

	if v := d.Observe(key, 100, true, []string{"a", "b"}); v != New {
		t.Fatalf("expected New on first timestamped observe, got %v", v)
	}
	if v := d.Observe(key, 100, true, []string{"a", "b", "c"}); v != Old {
		t.Fatalf("expected Old when timestamp repeats even with a different entity set, got %v", v)
	}
}

func TestDedupObserveSameRoughHashDifferentTimestampIsOld(t *testing.T) {
	d := Mk_dedup_index()
	key := FeedKey{FeedId: "f-bart~rt", Kind: VehiclePositions}

	d.Observe(key, 100, true, []string{"a", "b"})
	if v := d.Observe(key, 101, true, []string{"b", "a"}); v != Old {
		t.Fatalf("expected Old when the rough hash matches despite reordering, got %v", v)
	}
}

func TestDedupObserveChangedEntitySetIsNew(t *testing.T) {
	d := Mk_dedup_index()
	key := FeedKey{FeedId: "f-bart~rt", Kind: VehiclePositions}

	d.Observe(key, 100, true, []string{"a", "b"})
	if v := d.Observe(key, 101, true, []string{"a", "b", "c"}); v != New {
		t.Fatalf("expected New when the entity set actually changes, got %v", v)
	}
}

func TestDedupObserveKeysAreIndependent(t *testing.T) {
	d := Mk_dedup_index()
	vp := FeedKey{FeedId: "f-bart~rt", Kind: VehiclePositions}
	tu := FeedKey{FeedId: "f-bart~rt", Kind: TripUpdates}

	d.Observe(vp, 100, true, []string{"a"})
	d.Observe(tu, 100, true, []string{"x"})

	if got := d.Len(); got != 2 {
		t.Fatalf("expected two independent keys tracked, got %d", got)
	}
}
