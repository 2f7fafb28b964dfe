// vi: sw=4 ts=4:

/*

	Mnemonic:	artifact
	Abstract:	The AspenisedArtifact type -- the enriched, joined, per-chateau
				snapshot C6 produces and C4 stores. Alert indexes are kept as
				three independent id->list<alert_id> maps plus one
				alert_id->Alert master, never as cross-linked objects.
	Date:		31 July 2026
	Author:		Aspen team
*/

package gizmos

import (
	"sort"

	gtfsrt "github.com/MobilityData/gtfs-realtime-bindings/golang/gtfs"
)

/*
	RouteDisplay is the slice of a static `routes` row a vehicle's route
	cache entry needs: short/long name, colors, and GTFS route type.
*/
type RouteDisplay struct {
	RouteId   string
	ShortName string
	LongName  string
	Color     string
	TextColor string
	RouteType int32
}

/*
	AspenisedArtifact is the C4 value type: everything the query plane (C8)
	needs to answer a request about one chateau without touching the
	database or the raw realtime store.
*/
type AspenisedArtifact struct {
	VehiclePositions   map[string]*gtfsrt.VehiclePosition // vehicle_gtfs_id -> position
	VehicleRoutesCache map[string]*RouteDisplay           // route_id -> display info

	TripUpdates         map[string]*gtfsrt.TripUpdate // trip_update_id -> update
	TripUpdatesByTripId map[string][]string           // trip_id -> []trip_update_id

	AspenisedAlerts map[string]*gtfsrt.Alert // alert_id -> alert

	AlertsByRoute map[string][]string // route_id -> []alert_id
	AlertsByStop  map[string][]string // stop_id -> []alert_id
	AlertsByTrip  map[string][]string // trip_id -> []alert_id

	LastUpdatedTimeMs uint64
}

/*
	Mk_artifact allocates an artifact with every map initialised (never nil),
	so that an enrichment run producing zero vehicles or zero alerts still
	publishes empty maps rather than absent ones.
*/
func Mk_artifact(now_ms uint64) *AspenisedArtifact {
	return &AspenisedArtifact{
		VehiclePositions:    make(map[string]*gtfsrt.VehiclePosition),
		VehicleRoutesCache:  make(map[string]*RouteDisplay),
		TripUpdates:         make(map[string]*gtfsrt.TripUpdate),
		TripUpdatesByTripId: make(map[string][]string),
		AspenisedAlerts:     make(map[string]*gtfsrt.Alert),
		AlertsByRoute:       make(map[string][]string),
		AlertsByStop:        make(map[string][]string),
		AlertsByTrip:        make(map[string][]string),
		LastUpdatedTimeMs:   now_ms,
	}
}

/*
	Clone produces a snapshot copy suitable for handing to an RPC response
	encoder outside of whatever lock protected the original. The protobuf
	sub-messages (VehiclePosition, TripUpdate, Alert) are shared by pointer
	-- C6 only ever replaces them wholesale, it never mutates one in place
	after install, so sharing is safe.
*/
func (a *AspenisedArtifact) Clone() *AspenisedArtifact {
	if a == nil {
		return nil
	}

	c := &AspenisedArtifact{
		VehiclePositions:    make(map[string]*gtfsrt.VehiclePosition, len(a.VehiclePositions)),
		VehicleRoutesCache:  make(map[string]*RouteDisplay, len(a.VehicleRoutesCache)),
		TripUpdates:         make(map[string]*gtfsrt.TripUpdate, len(a.TripUpdates)),
		TripUpdatesByTripId: make(map[string][]string, len(a.TripUpdatesByTripId)),
		AspenisedAlerts:     make(map[string]*gtfsrt.Alert, len(a.AspenisedAlerts)),
		AlertsByRoute:       make(map[string][]string, len(a.AlertsByRoute)),
		AlertsByStop:        make(map[string][]string, len(a.AlertsByStop)),
		AlertsByTrip:        make(map[string][]string, len(a.AlertsByTrip)),
		LastUpdatedTimeMs:   a.LastUpdatedTimeMs,
	}

	for k, v := range a.VehiclePositions {
		c.VehiclePositions[k] = v
	}
	for k, v := range a.VehicleRoutesCache {
		c.VehicleRoutesCache[k] = v
	}
	for k, v := range a.TripUpdates {
		c.TripUpdates[k] = v
	}
	for k, v := range a.TripUpdatesByTripId {
		c.TripUpdatesByTripId[k] = append([]string(nil), v...)
	}
	for k, v := range a.AspenisedAlerts {
		c.AspenisedAlerts[k] = v
	}
	for k, v := range a.AlertsByRoute {
		c.AlertsByRoute[k] = append([]string(nil), v...)
	}
	for k, v := range a.AlertsByStop {
		c.AlertsByStop[k] = append([]string(nil), v...)
	}
	for k, v := range a.AlertsByTrip {
		c.AlertsByTrip[k] = append([]string(nil), v...)
	}

	return c
}

/*
	Sorted_route_ids returns the artifact's route cache keys in sorted
	order, the stable iteration order Fast_hash needs to produce the same
	hash across calls regardless of map iteration order.
*/
func (a *AspenisedArtifact) Sorted_route_ids() []string {
	ids := make([]string, 0, len(a.VehicleRoutesCache))
	for id := range a.VehicleRoutesCache {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
