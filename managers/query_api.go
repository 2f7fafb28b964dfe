// vi: sw=4 ts=4:

/*

	Mnemonic:	query_api
	Abstract:	C8 -- the query RPC. Read-only handlers over the realtime
				store (C3) and enriched store (C4), each returning an
				optional-shaped result that distinguishes "unknown chateau/
				feed" from "known but empty".
	Date:		31 July 2026
	Author:		Aspen team
*/

package managers

import (
	"strconv"

	gtfsrt "github.com/MobilityData/gtfs-realtime-bindings/golang/gtfs"
	"google.golang.org/protobuf/proto"

	"github.com/tanneberger/aspen/gizmos"
)

/*
	Hello answers a liveness/identity check; name is echoed back so a
	caller can confirm it reached the worker it thinks it dialed.
*/
func Hello(name string) *HelloResponse {
	return &HelloResponse{Greeting: "aspen: hello " + name}
}

/*
	Get_gtfs_rt re-encodes the current C3 entry for (feed_id, kind), or
	reports absence. Present=false covers "never successfully ingested"
	(C3 only ever holds decoded payloads) and a failed re-encode.
*/
func Get_gtfs_rt(rt *Rt_store, feed_id string, kind gizmos.RtKind) *GetGtfsRtResponse {
	msg := rt.Get(gizmos.FeedKey{FeedId: feed_id, Kind: kind})
	if msg == nil {
		return &GetGtfsRtResponse{Present: false}
	}

	payload, err := proto.Marshal(msg)
	if err != nil {
		qry_sheep.Baa(1, "get_gtfs_rt: re-encode failed for %s/%s: %s", feed_id, kind, err)
		return &GetGtfsRtResponse{Present: false}
	}

	return &GetGtfsRtResponse{Present: true, Payload: payload}
}

/*
	Get_vehicle_locations answers the conditional-GET vehicle query: the
	client's existing_hash is compared against
	fast_hash(values of vehicle_routes_cache, in route-id sorted order); a
	match omits the (bandwidth-heavy) cache from the response, since
	vehicle_positions is sent unconditionally every call. Hashing the
	display values rather than just the route ids means a schedule refresh
	that changes a route's name/color/type without adding or removing a
	route id still invalidates a client's cached hash.
*/
func Get_vehicle_locations(enriched *Enriched_store, chateau_id string, existing_hash uint64, has_existing_hash bool) *GetVehicleLocationsResponse {
	art := enriched.Get(chateau_id)
	if art == nil {
		return &GetVehicleLocationsResponse{Found: false}
	}

	ids := art.Sorted_route_ids()
	hash := gizmos.Fast_hash(route_display_values(art.VehicleRoutesCache, ids))

	resp := &GetVehicleLocationsResponse{
		Found:             true,
		Hash:              hash,
		Positions:         encode_positions(art.VehiclePositions),
		LastUpdatedTimeMs: art.LastUpdatedTimeMs,
	}

	if has_existing_hash && existing_hash == hash {
		resp.CacheSent = false
		return resp
	}

	resp.CacheSent = true
	resp.Cache = encode_route_cache(art.VehicleRoutesCache, ids)
	return resp
}

/*
	Get_single_vehicle_location_from_gtfsid looks a single vehicle position
	up by its GTFS vehicle id within one chateau's artifact.
*/
func Get_single_vehicle_location_from_gtfsid(enriched *Enriched_store, chateau_id, gtfs_id string) (*gtfsrt.VehiclePosition, bool) {
	art := enriched.Get(chateau_id)
	if art == nil {
		return nil, false
	}
	vp, ok := art.VehiclePositions[gtfs_id]
	return vp, ok
}

/*
	Get_trip_updates_from_trip_id resolves trip_id through
	TripUpdatesByTripId before reading the TripUpdates master map, since a
	trip may have more than one update id associated with it.
*/
func Get_trip_updates_from_trip_id(enriched *Enriched_store, chateau_id, trip_id string) ([]*gtfsrt.TripUpdate, bool) {
	art := enriched.Get(chateau_id)
	if art == nil {
		return nil, false
	}

	ids, ok := art.TripUpdatesByTripId[trip_id]
	if !ok {
		return nil, false
	}

	out := make([]*gtfsrt.TripUpdate, 0, len(ids))
	for _, id := range ids {
		if tu := art.TripUpdates[id]; tu != nil {
			out = append(out, tu)
		}
	}
	return out, true
}

/*
	Get_all_alerts returns every alert currently held for a chateau.
*/
func Get_all_alerts(enriched *Enriched_store, chateau_id string) ([]*gtfsrt.Alert, bool) {
	art := enriched.Get(chateau_id)
	if art == nil {
		return nil, false
	}

	out := make([]*gtfsrt.Alert, 0, len(art.AspenisedAlerts))
	for _, al := range art.AspenisedAlerts {
		out = append(out, al)
	}
	return out, true
}

/*
	Get_alerts_by_route, Get_alerts_by_stop and Get_alerts_by_trip index
	through the corresponding AlertsBy* sub-map before reading the master
	alert map.
*/
func Get_alerts_by_route(enriched *Enriched_store, chateau_id, route_id string) ([]*gtfsrt.Alert, bool) {
	return alerts_by_index(enriched, chateau_id, func(a *gizmos.AspenisedArtifact) []string { return a.AlertsByRoute[route_id] })
}

func Get_alerts_by_stop(enriched *Enriched_store, chateau_id, stop_id string) ([]*gtfsrt.Alert, bool) {
	return alerts_by_index(enriched, chateau_id, func(a *gizmos.AspenisedArtifact) []string { return a.AlertsByStop[stop_id] })
}

func Get_alerts_by_trip(enriched *Enriched_store, chateau_id, trip_id string) ([]*gtfsrt.Alert, bool) {
	return alerts_by_index(enriched, chateau_id, func(a *gizmos.AspenisedArtifact) []string { return a.AlertsByTrip[trip_id] })
}

/*
	Get_alerts_by_many_stops unions the alert ids found for each stop in
	stop_ids before resolving them, so a caller watching a whole route
	alignment gets one deduplicated result set.
*/
func Get_alerts_by_many_stops(enriched *Enriched_store, chateau_id string, stop_ids []string) ([]*gtfsrt.Alert, bool) {
	art := enriched.Get(chateau_id)
	if art == nil {
		return nil, false
	}

	seen := make(map[string]bool)
	out := make([]*gtfsrt.Alert, 0)
	for _, stop_id := range stop_ids {
		for _, alert_id := range art.AlertsByStop[stop_id] {
			if seen[alert_id] {
				continue
			}
			seen[alert_id] = true
			if al := art.AspenisedAlerts[alert_id]; al != nil {
				out = append(out, al)
			}
		}
	}
	return out, true
}

func alerts_by_index(enriched *Enriched_store, chateau_id string, ids_for func(*gizmos.AspenisedArtifact) []string) ([]*gtfsrt.Alert, bool) {
	art := enriched.Get(chateau_id)
	if art == nil {
		return nil, false
	}

	ids := ids_for(art)
	out := make([]*gtfsrt.Alert, 0, len(ids))
	for _, id := range ids {
		if al := art.AspenisedAlerts[id]; al != nil {
			out = append(out, al)
		}
	}
	return out, true
}

// ---- response body encodings ----------------------------------------------

/*
	route_display_values flattens each RouteDisplay's fields, in ordered_ids
	order, into the string list Fast_hash consumes -- so a schedule refresh
	that only changes a route's short/long name, colors, or type (without
	adding or removing a route id) still changes the hash.
*/
func route_display_values(cache map[string]*gizmos.RouteDisplay, ordered_ids []string) []string {
	out := make([]string, 0, len(ordered_ids)*6)
	for _, id := range ordered_ids {
		rd := cache[id]
		if rd == nil {
			continue
		}
		out = append(out,
			rd.RouteId,
			rd.ShortName,
			rd.LongName,
			rd.Color,
			rd.TextColor,
			strconv.Itoa(int(rd.RouteType)),
		)
	}
	return out
}

func encode_route_cache(cache map[string]*gizmos.RouteDisplay, ordered_ids []string) []byte {
	var out []byte
	for _, id := range ordered_ids {
		rd := cache[id]
		if rd == nil {
			continue
		}
		var entry []byte
		entry = append_string_field(entry, 1, rd.RouteId)
		entry = append_string_field(entry, 2, rd.ShortName)
		entry = append_string_field(entry, 3, rd.LongName)
		entry = append_string_field(entry, 4, rd.Color)
		entry = append_string_field(entry, 5, rd.TextColor)
		entry = append_varint_field(entry, 6, uint64(rd.RouteType))

		out = append_bytes_field(out, 1, entry)
	}
	return out
}

func encode_positions(positions map[string]*gtfsrt.VehiclePosition) []byte {
	var out []byte
	for gtfs_id, vp := range positions {
		payload, err := proto.Marshal(vp)
		if err != nil {
			qry_sheep.Baa(1, "encode_positions: skipping %s, re-encode failed: %s", gtfs_id, err)
			continue
		}

		var entry []byte
		entry = append_string_field(entry, 1, gtfs_id)
		entry = append_bytes_field(entry, 2, payload)

		out = append_bytes_field(out, 1, entry)
	}
	return out
}

/*
	marshal_single_vehicle_response, marshal_trip_updates_response and
	marshal_alerts_response convert a handler's native protobuf result into
	its wire response, re-encoding each sub-message with proto.Marshal and
	dropping any entry that fails to encode (logged, never fatal to the
	whole response -- matching the decode-error policy C2 uses on the way
	in).
*/
func marshal_single_vehicle_response(vp *gtfsrt.VehiclePosition, found bool) []byte {
	if !found || vp == nil {
		return (&SingleVehicleLocationResponse{Found: false}).Marshal()
	}

	payload, err := proto.Marshal(vp)
	if err != nil {
		qry_sheep.Baa(1, "get_single_vehicle_location: re-encode failed: %s", err)
		return (&SingleVehicleLocationResponse{Found: false}).Marshal()
	}

	return (&SingleVehicleLocationResponse{Found: true, Payload: payload}).Marshal()
}

func marshal_trip_updates_response(updates []*gtfsrt.TripUpdate, found bool) []byte {
	if !found {
		return (&TripUpdatesResponse{Found: false}).Marshal()
	}

	out := make([][]byte, 0, len(updates))
	for _, tu := range updates {
		payload, err := proto.Marshal(tu)
		if err != nil {
			qry_sheep.Baa(1, "get_trip_updates_from_trip_id: skipping entry, re-encode failed: %s", err)
			continue
		}
		out = append(out, payload)
	}

	return (&TripUpdatesResponse{Found: true, Updates: out}).Marshal()
}

func marshal_alerts_response(alerts []*gtfsrt.Alert, found bool) []byte {
	if !found {
		return (&AlertsResponse{Found: false}).Marshal()
	}

	out := make([][]byte, 0, len(alerts))
	for _, al := range alerts {
		payload, err := proto.Marshal(al)
		if err != nil {
			qry_sheep.Baa(1, "alerts response: skipping entry, re-encode failed: %s", err)
			continue
		}
		out = append(out, payload)
	}

	return (&AlertsResponse{Found: true, Alerts: out}).Marshal()
}
