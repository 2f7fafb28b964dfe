// vi: sw=4 ts=4:

/*

	Mnemonic:	ingest_api
	Abstract:	C7 -- the ingestion RPC. from_alpenrose is the single entry
				point Alpenrose pollers call with whatever they fetched for a
				chateau's three realtime slots (vehicles, trips, alerts).
	Date:		31 July 2026
	Author:		Aspen team
*/

package managers

import (
	"github.com/tanneberger/aspen/gizmos"
)

/*
	From_alpenrose implements the per-slot decode/dedup/install/enqueue
	sequence. Each of the three slots is handled independently:

		1. response_code == 200 and bytes present -> Clean (C2). A decode
		   error is logged and the slot is treated as absent from here on.
		2. Otherwise the slot is absent.
		3. If present, call Dedup_index.Observe (C1); remember whether any
		   slot returned New.
		4. If present, install into Rt_store (C3) regardless of the New/Old
		   verdict, so direct C3 readers always see the latest raw payload.

	If any slot produced New, the chateau is submitted to the work queue
	(C5). The return value is a liveness acknowledgement, not a correctness
	signal -- false is reserved for policy-level refusals this entry point
	does not currently produce.
*/
func From_alpenrose(rt *Rt_store, dedup *gizmos.Dedup_index, queue *Chateau_queue, req *FromAlpenroseRequest) bool {
	any_new := false

	if ingest_slot(rt, dedup, req.RealtimeFeedId, gizmos.VehiclePositions, req.Vehicles, req.VehiclesResponseCode) {
		any_new = true
	}
	if ingest_slot(rt, dedup, req.RealtimeFeedId, gizmos.TripUpdates, req.Trips, req.TripsResponseCode) {
		any_new = true
	}
	if ingest_slot(rt, dedup, req.RealtimeFeedId, gizmos.Alerts, req.Alerts, req.AlertsResponseCode) {
		any_new = true
	}

	if any_new {
		queue.Submit(gizmos.PendingChateau{
			ChateauId:            req.ChateauId,
			RealtimeFeedId:       req.RealtimeFeedId,
			HasVehicles:          req.HasVehicles,
			HasTrips:             req.HasTrips,
			HasAlerts:            req.HasAlerts,
			VehiclesResponseCode: req.VehiclesResponseCode,
			TripsResponseCode:    req.TripsResponseCode,
			AlertsResponseCode:   req.AlertsResponseCode,
			TimeOfSubmissionMs:   req.TimeOfSubmissionMs,
		})
	}

	return true
}

/*
	ingest_slot handles one of the three payload slots and reports whether
	it produced a New dedup verdict. Per spec.md §4.6, slot presence is
	decided from response_code == 200 and bytes present alone; the
	has_vehicles/has_trips/has_alerts booleans that accompany each slot are
	carried on the request but never consulted here. A non-200 response
	code or an empty payload is a silent no-op: nothing is decoded,
	observed, or installed.
*/
func ingest_slot(rt *Rt_store, dedup *gizmos.Dedup_index, feed_id string, kind gizmos.RtKind, payload []byte, response_code int) bool {
	if response_code != 200 || len(payload) == 0 {
		return false
	}

	key := gizmos.FeedKey{FeedId: feed_id, Kind: kind}

	msg, err := gizmos.Clean(payload, feed_id)
	if err != nil {
		ing_sheep.Baa(1, "from_alpenrose: %s/%s decode failed, treating as absent: %s", feed_id, kind, err)
		return false
	}

	ts, has_ts := gizmos.Header_timestamp(msg)
	verdict := dedup.Observe(key, ts, has_ts, gizmos.Entity_ids(msg))

	rt.Put(key, msg)

	return verdict == gizmos.New
}
