// vi: sw=4 ts=4:

/*

	Mnemonic:	cleaner
	Abstract:	C2 -- the GTFS-Realtime cleaner. Decodes a raw protobuf payload,
				canonicalises route identifiers for known multi-operator feeds,
				applies per-feed allowlist filters, and strips malformed
				entities. Pure and deterministic: the same bytes always yield
				the same FeedMessage.
	Date:		31 July 2026
	Author:		Aspen team
*/

package gizmos

import (
	"fmt"
	"strings"

	gtfsrt "github.com/MobilityData/gtfs-realtime-bindings/golang/gtfs"
	"google.golang.org/protobuf/proto"
)

/*
	DecodeError wraps a protobuf unmarshal failure. The ingestion RPC (C7)
	treats it as "log and treat payload as absent".
*/
type DecodeError struct {
	FeedId string
	Cause  error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("gtfs-rt decode error for feed %s: %s", e.FeedId, e.Cause)
}

func (e *DecodeError) Unwrap() error {
	return e.Cause
}

/*
	route_prefixes maps a realtime feed id to the canonicalisation prefix
	its route ids must carry, for the known multi-operator feeds whose
	numbering collides (LIRR, Metro-North).
*/
var route_prefixes = map[string]string{
	"f-lirr~rt": "lirr",
	"f-mnr~rt":  "mnr",
}

/*
	feed_allowlists restricts certain feeds to a subset of their own service.
	Amtrak's nationwide feed is filtered down to Capital Corridor trips only.
*/
var feed_allowlists = map[string]func(routeId string) bool{
	"f-amtrak~rt": is_capital_corridor_route,
}

func is_capital_corridor_route(routeId string) bool {
	return strings.HasPrefix(strings.ToLower(routeId), "capitol") ||
		strings.EqualFold(routeId, "capital corridor") ||
		strings.EqualFold(routeId, "84")
}

/*
	Clean decodes bytes as a GTFS-Realtime FeedMessage and applies the
	canonicalisation, allowlist, and malformed-entity cleanup passes. It
	never mutates its input slice.
*/
func Clean(payload []byte, feed_id string) (*FeedMessage, error) {
	msg := &FeedMessage{}
	if err := proto.Unmarshal(payload, msg); err != nil {
		return nil, &DecodeError{FeedId: feed_id, Cause: err}
	}

	canonicalise_route_ids(msg, feed_id)
	apply_allowlist(msg, feed_id)
	strip_malformed_entities(msg)

	return msg, nil
}

/*
	canonicalise_route_ids prefixes route ids embedded in trip/vehicle
	descriptors for feeds known to collide with other operators' numbering
	(e.g. LIRR train "1" vs MNR train "1").
*/
func canonicalise_route_ids(msg *FeedMessage, feed_id string) {
	prefix, known := route_prefixes[feed_id]
	if !known {
		return
	}

	for _, ent := range msg.Entity {
		if ent == nil {
			continue
		}

		if vp := ent.Vehicle; vp != nil && vp.Trip != nil && vp.Trip.RouteId != nil {
			vp.Trip.RouteId = proto.String(prefix_once(vp.Trip.GetRouteId(), prefix))
		}
		if tu := ent.TripUpdate; tu != nil && tu.Trip != nil && tu.Trip.RouteId != nil {
			tu.Trip.RouteId = proto.String(prefix_once(tu.Trip.GetRouteId(), prefix))
		}
	}
}

func prefix_once(routeId, prefix string) string {
	if strings.HasPrefix(routeId, prefix) {
		return routeId
	}
	return prefix + routeId
}

/*
	apply_allowlist drops entities whose route id fails the feed's allowlist
	predicate, if the feed has one registered.
*/
func apply_allowlist(msg *FeedMessage, feed_id string) {
	allowed, known := feed_allowlists[feed_id]
	if !known {
		return
	}

	kept := msg.Entity[:0]
	for _, ent := range msg.Entity {
		if entity_route_id(ent) != "" && !allowed(entity_route_id(ent)) {
			continue
		}
		kept = append(kept, ent)
	}
	msg.Entity = kept
}

func entity_route_id(ent *gtfsrt.FeedEntity) string {
	if ent == nil {
		return ""
	}
	if vp := ent.Vehicle; vp != nil && vp.Trip != nil {
		return vp.Trip.GetRouteId()
	}
	if tu := ent.TripUpdate; tu != nil && tu.Trip != nil {
		return tu.Trip.GetRouteId()
	}
	return ""
}

/*
	strip_malformed_entities removes entities lacking a primary key (an
	empty entity id) and normalises whitespace/empty strings on the fields
	C6 and C8 read back out later.
*/
func strip_malformed_entities(msg *FeedMessage) {
	kept := msg.Entity[:0]
	for _, ent := range msg.Entity {
		if ent == nil || strings.TrimSpace(ent.GetId()) == "" {
			continue
		}

		ent.Id = proto.String(strings.TrimSpace(ent.GetId()))
		normalise_vehicle(ent.Vehicle)
		normalise_trip_update(ent.TripUpdate)
		normalise_alert(ent.Alert)

		kept = append(kept, ent)
	}
	msg.Entity = kept
}

func normalise_vehicle(vp *gtfsrt.VehiclePosition) {
	if vp == nil || vp.Vehicle == nil {
		return
	}
	if vp.Vehicle.Id != nil {
		vp.Vehicle.Id = proto.String(strings.TrimSpace(vp.Vehicle.GetId()))
	}
	if vp.Vehicle.Label != nil {
		label := strings.TrimSpace(vp.Vehicle.GetLabel())
		if label == "" {
			vp.Vehicle.Label = nil
		} else {
			vp.Vehicle.Label = proto.String(label)
		}
	}
}

func normalise_trip_update(tu *gtfsrt.TripUpdate) {
	if tu == nil || tu.Trip == nil {
		return
	}
	if tu.Trip.TripId != nil {
		tu.Trip.TripId = proto.String(strings.TrimSpace(tu.Trip.GetTripId()))
	}
}

func normalise_alert(al *gtfsrt.Alert) {
	if al == nil || al.HeaderText == nil {
		return
	}
	for _, tr := range al.HeaderText.Translation {
		if tr != nil && tr.Text != nil {
			tr.Text = proto.String(strings.TrimSpace(tr.GetText()))
		}
	}
}
