// vi: sw=4 ts=4:

/*

	Mnemonic:	feed
	Abstract:	Thin wrappers around the decoded GTFS-Realtime protobuf message.
				A FeedMessage is treated as opaque once decoded except for the
				header timestamp and the entity identifiers that C2 and C6
				need.
	Date:		31 July 2026
	Author:		Aspen team
*/

package gizmos

import (
	gtfsrt "github.com/MobilityData/gtfs-realtime-bindings/golang/gtfs"
)

/*
	FeedMessage is the decoded GTFS-Realtime payload. We alias rather than
	wrap so that callers can pass it straight through to anything that
	expects the MobilityData bindings type (the protobuf re-encoder in the
	query plane, for instance) without a conversion step.
*/
type FeedMessage = gtfsrt.FeedMessage

/*
	Header_timestamp returns the header timestamp if present. A missing
	header or an unset timestamp is the "upstream lacks freshness info" case
	C1 must force a New verdict for; an explicitly set zero timestamp is
	reported as present.
*/
func Header_timestamp(msg *FeedMessage) (ts uint64, present bool) {
	if msg == nil || msg.Header == nil || msg.Header.Timestamp == nil {
		return 0, false
	}

	return msg.Header.GetTimestamp(), true
}

/*
	Entity_ids extracts the stable identifier of every entity in the message,
	used by Rough_hash to build a reordering-insensitive fingerprint.
*/
func Entity_ids(msg *FeedMessage) []string {
	if msg == nil {
		return nil
	}

	ids := make([]string, 0, len(msg.Entity))
	for _, ent := range msg.Entity {
		if ent == nil {
			continue
		}
		ids = append(ids, ent.GetId())
	}

	return ids
}
