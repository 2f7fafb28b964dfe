// vi: sw=4 ts=4:

package managers

import (
	"testing"

	gtfsrt "github.com/MobilityData/gtfs-realtime-bindings/golang/gtfs"
	"google.golang.org/protobuf/proto"

	"github.com/tanneberger/aspen/gizmos"
)

func TestHello(t *testing.T) {
	resp := Hello("alpenrose")
	if resp.Greeting != "aspen: hello alpenrose" {
		t.Fatalf("unexpected greeting: %q", resp.Greeting)
	}
}

func TestGetGtfsRtUnknownFeed(t *testing.T) {
	rt := Mk_rt_store()
	resp := Get_gtfs_rt(rt, "f-bart~rt", gizmos.VehiclePositions)
	if resp.Present {
		t.Fatalf("expected Present=false for an unknown feed")
	}
}

func TestGetGtfsRtKnownFeedReencodesPayload(t *testing.T) {
	rt := Mk_rt_store()
	key := gizmos.FeedKey{FeedId: "f-bart~rt", Kind: gizmos.VehiclePositions}
	msg := &gtfsrt.FeedMessage{Header: &gtfsrt.FeedHeader{Timestamp: proto.Uint64(5)}}
	rt.Put(key, msg)

	resp := Get_gtfs_rt(rt, "f-bart~rt", gizmos.VehiclePositions)
	if !resp.Present {
		t.Fatalf("expected Present=true for a known feed")
	}

	var decoded gtfsrt.FeedMessage
	if err := proto.Unmarshal(resp.Payload, &decoded); err != nil {
		t.Fatalf("payload did not decode as a FeedMessage: %s", err)
	}
	if decoded.Header.GetTimestamp() != 5 {
		t.Fatalf("expected round-tripped timestamp 5, got %d", decoded.Header.GetTimestamp())
	}
}

func TestGetVehicleLocationsUnknownChateau(t *testing.T) {
	enriched := Mk_enriched_store()
	resp := Get_vehicle_locations(enriched, "nope", 0, false)
	if resp.Found {
		t.Fatalf("expected Found=false for an unknown chateau")
	}
}

func TestGetVehicleLocationsOmitsCacheWhenHashMatches(t *testing.T) {
	enriched := Mk_enriched_store()
	art := gizmos.Mk_artifact(10)
	art.VehicleRoutesCache["10"] = &gizmos.RouteDisplay{RouteId: "10"}
	enriched.Put("c1", art)

	hash := gizmos.Fast_hash(route_display_values(art.VehicleRoutesCache, art.Sorted_route_ids()))

	resp := Get_vehicle_locations(enriched, "c1", hash, true)
	if !resp.Found {
		t.Fatalf("expected Found=true for a known chateau")
	}
	if resp.CacheSent {
		t.Fatalf("expected CacheSent=false when the caller's hash matches")
	}
	if len(resp.Cache) != 0 {
		t.Fatalf("expected no cache bytes when CacheSent=false, got %d bytes", len(resp.Cache))
	}
}

func TestGetVehicleLocationsHashChangesWhenDisplayFieldsChangeWithSameIds(t *testing.T) {
	enriched := Mk_enriched_store()
	art := gizmos.Mk_artifact(10)
	art.VehicleRoutesCache["10"] = &gizmos.RouteDisplay{RouteId: "10", ShortName: "A"}
	enriched.Put("c1", art)

	first := Get_vehicle_locations(enriched, "c1", 0, false)

	refreshed := gizmos.Mk_artifact(20)
	refreshed.VehicleRoutesCache["10"] = &gizmos.RouteDisplay{RouteId: "10", ShortName: "Express A"}
	enriched.Put("c1", refreshed)

	second := Get_vehicle_locations(enriched, "c1", first.Hash, true)
	if second.Hash == first.Hash {
		t.Fatalf("expected the hash to change when a route's display fields change, even though its id set did not")
	}
	if !second.CacheSent {
		t.Fatalf("expected CacheSent=true so the client picks up the refreshed display fields")
	}
}

func TestGetVehicleLocationsSendsCacheWhenHashDiffers(t *testing.T) {
	enriched := Mk_enriched_store()
	art := gizmos.Mk_artifact(10)
	art.VehicleRoutesCache["10"] = &gizmos.RouteDisplay{RouteId: "10", ShortName: "A"}
	enriched.Put("c1", art)

	resp := Get_vehicle_locations(enriched, "c1", 0, false)
	if !resp.CacheSent {
		t.Fatalf("expected CacheSent=true when the caller has no prior hash")
	}
	if len(resp.Cache) == 0 {
		t.Fatalf("expected non-empty cache bytes")
	}
}

func TestGetSingleVehicleLocationFromGtfsId(t *testing.T) {
	enriched := Mk_enriched_store()
	art := gizmos.Mk_artifact(1)
	art.VehiclePositions["bus-1"] = &gtfsrt.VehiclePosition{}
	enriched.Put("c1", art)

	if _, found := Get_single_vehicle_location_from_gtfsid(enriched, "c1", "bus-99"); found {
		t.Fatalf("expected not found for an unknown vehicle id")
	}
	if _, found := Get_single_vehicle_location_from_gtfsid(enriched, "c1", "bus-1"); !found {
		t.Fatalf("expected the known vehicle id to be found")
	}
}

func TestGetTripUpdatesFromTripId(t *testing.T) {
	enriched := Mk_enriched_store()
	art := gizmos.Mk_artifact(1)
	art.TripUpdates["u1"] = &gtfsrt.TripUpdate{}
	art.TripUpdates["u2"] = &gtfsrt.TripUpdate{}
	art.TripUpdatesByTripId["t1"] = []string{"u1", "u2"}
	enriched.Put("c1", art)

	updates, found := Get_trip_updates_from_trip_id(enriched, "c1", "t1")
	if !found || len(updates) != 2 {
		t.Fatalf("expected two updates for t1, got %d found=%v", len(updates), found)
	}

	if _, found := Get_trip_updates_from_trip_id(enriched, "c1", "unknown-trip"); found {
		t.Fatalf("expected not found for an unknown trip id")
	}
}

func TestGetAlertsByRouteStopTrip(t *testing.T) {
	enriched := Mk_enriched_store()
	art := gizmos.Mk_artifact(1)
	art.AspenisedAlerts["a1"] = &gtfsrt.Alert{}
	art.AlertsByRoute["r1"] = []string{"a1"}
	art.AlertsByStop["s1"] = []string{"a1"}
	art.AlertsByTrip["t1"] = []string{"a1"}
	enriched.Put("c1", art)

	if alerts, found := Get_alerts_by_route(enriched, "c1", "r1"); !found || len(alerts) != 1 {
		t.Fatalf("expected one alert by route, got %d found=%v", len(alerts), found)
	}
	if alerts, found := Get_alerts_by_stop(enriched, "c1", "s1"); !found || len(alerts) != 1 {
		t.Fatalf("expected one alert by stop, got %d found=%v", len(alerts), found)
	}
	if alerts, found := Get_alerts_by_trip(enriched, "c1", "t1"); !found || len(alerts) != 1 {
		t.Fatalf("expected one alert by trip, got %d found=%v", len(alerts), found)
	}
	if alerts, found := Get_alerts_by_route(enriched, "c1", "unknown-route"); !found || len(alerts) != 0 {
		t.Fatalf("expected a known chateau with no matches to be found=true, empty, got %d found=%v", len(alerts), found)
	}
}

func TestGetAlertsByManyStopsDeduplicates(t *testing.T) {
	enriched := Mk_enriched_store()
	art := gizmos.Mk_artifact(1)
	art.AspenisedAlerts["a1"] = &gtfsrt.Alert{}
	art.AlertsByStop["s1"] = []string{"a1"}
	art.AlertsByStop["s2"] = []string{"a1"}
	enriched.Put("c1", art)

	alerts, found := Get_alerts_by_many_stops(enriched, "c1", []string{"s1", "s2"})
	if !found {
		t.Fatalf("expected found=true")
	}
	if len(alerts) != 1 {
		t.Fatalf("expected the shared alert deduplicated across stops, got %d", len(alerts))
	}
}

func TestGetAllAlerts(t *testing.T) {
	enriched := Mk_enriched_store()
	art := gizmos.Mk_artifact(1)
	art.AspenisedAlerts["a1"] = &gtfsrt.Alert{}
	art.AspenisedAlerts["a2"] = &gtfsrt.Alert{}
	enriched.Put("c1", art)

	alerts, found := Get_all_alerts(enriched, "c1")
	if !found || len(alerts) != 2 {
		t.Fatalf("expected two alerts, got %d found=%v", len(alerts), found)
	}
}
