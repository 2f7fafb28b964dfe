// vi: sw=4 ts=4:

/*

	Mnemonic:	chateau
	Abstract:	The Chateau type: a logical shard grouping the transit agency
				feeds that must be processed together. Chateaux are produced by
				an external grouping algorithm (out of scope here, §1) and are
				immutable within one leader epoch (§3).
	Date:		31 July 2026
	Author:		Aspen team
*/

package gizmos

/*
	RtKind enumerates the three GTFS-Realtime feed kinds. It is the second
	half of the (feed_id, kind) key that C1 and C3 index by.
*/
type RtKind int

const (
	VehiclePositions RtKind = iota
	TripUpdates
	Alerts
)

func (k RtKind) String() string {
	switch k {
	case VehiclePositions:
		return "vehicle_positions"
	case TripUpdates:
		return "trip_updates"
	case Alerts:
		return "alerts"
	default:
		return "unknown"
	}
}

/*
	FeedKey is the unique key for a realtime feed identity: (feed_id, kind).
	It is used verbatim as the map key in both C1 (dedup index) and C3
	(realtime store), so its equality must be exact value equality -- no
	pointer fields.
*/
type FeedKey struct {
	FeedId string
	Kind   RtKind
}

/*
	Chateau is the logical shard: an id plus the static and realtime feed ids
	that belong to it. Chateau values are read from the static database by
	Chateau_registry.Refresh (once at startup, then on every leader tick)
	and are treated as immutable thereafter -- nothing in this repository
	mutates a Chateau after construction.
*/
type Chateau struct {
	Id            string
	StaticFeedIds []string
	RealtimeFeeds []FeedKey
}

/*
	Mk_chateau builds a Chateau from its id and feed lists. Copies the slices
	so that the caller's backing arrays can be reused/mutated afterward
	without reaching into what we just handed out.
*/
func Mk_chateau(id string, static_feed_ids []string, realtime_feeds []FeedKey) *Chateau {
	c := &Chateau{
		Id:            id,
		StaticFeedIds: append([]string(nil), static_feed_ids...),
		RealtimeFeeds: append([]FeedKey(nil), realtime_feeds...),
	}

	return c
}
