// vi: sw=4 ts=4:

package gizmos

import (
	"errors"
	"testing"

	gtfsrt "github.com/MobilityData/gtfs-realtime-bindings/golang/gtfs"
	"google.golang.org/protobuf/proto"
)

func mk_raw_message(entities ...*gtfsrt.FeedEntity) []byte {
	msg := &gtfsrt.FeedMessage{
		Header: &gtfsrt.FeedHeader{
			Timestamp: proto.Uint64(1700000000),
		},
		Entity: entities,
	}
	b, err := proto.Marshal(msg)
	if err != nil {
		panic(err)
	}
	return b
}

func TestCleanDecodesValidPayload(t *testing.T) {
	raw := mk_raw_message(&gtfsrt.FeedEntity{
		Id: proto.String("v1"),
		Vehicle: &gtfsrt.VehiclePosition{
			Vehicle: &gtfsrt.VehicleDescriptor{Id: proto.String("bus-1")},
			Trip:    &gtfsrt.TripDescriptor{RouteId: proto.String("10")},
		},
	})

	msg, err := Clean(raw, "f-actransit~rt")
	if err != nil {
		t.Fatalf("unexpected decode error: %s", err)
	}
	if len(msg.Entity) != 1 {
		t.Fatalf("expected one surviving entity, got %d", len(msg.Entity))
	}
}

func TestCleanRejectsGarbageBytes(t *testing.T) {
	// tag for field 1, wire type 2 (length-delimited), followed by a huge
	// varint length with no data behind it -- guaranteed truncated.
	_, err := Clean([]byte{0x0a, 0xff, 0xff, 0xff, 0xff, 0x0f}, "f-actransit~rt")
	if err == nil {
		t.Fatalf("expected a decode error for garbage bytes")
	}

	var de *DecodeError
	if !errors.As(err, &de) {
		t.Fatalf("expected *DecodeError, got %T", err)
	}
	if de.FeedId != "f-actransit~rt" {
		t.Fatalf("decode error should carry the feed id, got %q", de.FeedId)
	}
}

func TestCleanStripsEntitiesWithoutId(t *testing.T) {
	raw := mk_raw_message(
		&gtfsrt.FeedEntity{Id: proto.String("  "), Vehicle: &gtfsrt.VehiclePosition{}},
		&gtfsrt.FeedEntity{Id: proto.String("ok"), Vehicle: &gtfsrt.VehiclePosition{}},
	)

	msg, err := Clean(raw, "f-actransit~rt")
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	if len(msg.Entity) != 1 || msg.Entity[0].GetId() != "ok" {
		t.Fatalf("expected only the entity with a non-blank id to survive, got %+v", msg.Entity)
	}
}

func TestCleanCanonicalisesLirrRouteIds(t *testing.T) {
	raw := mk_raw_message(&gtfsrt.FeedEntity{
		Id: proto.String("t1"),
		TripUpdate: &gtfsrt.TripUpdate{
			Trip: &gtfsrt.TripDescriptor{RouteId: proto.String("1"), TripId: proto.String("trip-1")},
		},
	})

	msg, err := Clean(raw, "f-lirr~rt")
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	got := msg.Entity[0].TripUpdate.Trip.GetRouteId()
	if got != "lirr1" {
		t.Fatalf("expected route id prefixed with lirr, got %q", got)
	}
}

func TestCleanCanonicalisationIsIdempotent(t *testing.T) {
	raw := mk_raw_message(&gtfsrt.FeedEntity{
		Id: proto.String("t1"),
		Vehicle: &gtfsrt.VehiclePosition{
			Trip: &gtfsrt.TripDescriptor{RouteId: proto.String("lirr1")},
		},
	})

	msg, err := Clean(raw, "f-lirr~rt")
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	got := msg.Entity[0].Vehicle.Trip.GetRouteId()
	if got != "lirr1" {
		t.Fatalf("expected an already-prefixed route id to be left alone, got %q", got)
	}
}

func TestCleanUnknownFeedSkipsCanonicalisation(t *testing.T) {
	raw := mk_raw_message(&gtfsrt.FeedEntity{
		Id: proto.String("t1"),
		Vehicle: &gtfsrt.VehiclePosition{
			Trip: &gtfsrt.TripDescriptor{RouteId: proto.String("1")},
		},
	})

	msg, err := Clean(raw, "f-actransit~rt")
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	if got := msg.Entity[0].Vehicle.Trip.GetRouteId(); got != "1" {
		t.Fatalf("unregistered feed should not have its route id touched, got %q", got)
	}
}

func TestCleanAppliesAmtrakAllowlist(t *testing.T) {
	raw := mk_raw_message(
		&gtfsrt.FeedEntity{
			Id:      proto.String("keep"),
			Vehicle: &gtfsrt.VehiclePosition{Trip: &gtfsrt.TripDescriptor{RouteId: proto.String("Capitol Corridor")}},
		},
		&gtfsrt.FeedEntity{
			Id:      proto.String("drop"),
			Vehicle: &gtfsrt.VehiclePosition{Trip: &gtfsrt.TripDescriptor{RouteId: proto.String("Coast Starlight")}},
		},
	)

	msg, err := Clean(raw, "f-amtrak~rt")
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	if len(msg.Entity) != 1 || msg.Entity[0].GetId() != "keep" {
		t.Fatalf("expected only the Capitol Corridor entity to survive the allowlist, got %+v", msg.Entity)
	}
}

func TestCleanNormalisesWhitespace(t *testing.T) {
	raw := mk_raw_message(&gtfsrt.FeedEntity{
		Id: proto.String(" v2 "),
		Vehicle: &gtfsrt.VehiclePosition{
			Vehicle: &gtfsrt.VehicleDescriptor{Id: proto.String(" bus-2 "), Label: proto.String("   ")},
		},
	})

	msg, err := Clean(raw, "f-actransit~rt")
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	ent := msg.Entity[0]
	if ent.GetId() != "v2" {
		t.Fatalf("expected trimmed entity id, got %q", ent.GetId())
	}
	if ent.Vehicle.Vehicle.GetId() != "bus-2" {
		t.Fatalf("expected trimmed vehicle id, got %q", ent.Vehicle.Vehicle.GetId())
	}
	if ent.Vehicle.Vehicle.Label != nil {
		t.Fatalf("expected a blank label to be nilled out, got %q", ent.Vehicle.Vehicle.GetLabel())
	}
}
