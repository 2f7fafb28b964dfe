// vi: sw=4 ts=4:

/*

	Mnemonic:	wire
	Abstract:	The on-the-wire envelope every RPC call (C7's from_alpenrose, every
				C8 query) travels inside, plus the per-method request/response
				messages it carries. Encoded by hand with protowire -- the same
				bytes protoc would emit for these shapes, without a .proto file
				or generated code to go with it.
	Date:		31 July 2026
	Author:		Aspen team
*/

package managers

import (
	"fmt"

	"google.golang.org/protobuf/encoding/protowire"
)

// Op identifies which RPC method an Envelope carries.
type Op uint32

const (
	Op_hello Op = iota + 1
	Op_from_alpenrose
	Op_get_gtfs_rt
	Op_get_vehicle_locations
	Op_get_single_vehicle_location
	Op_get_trip_updates_from_trip_id
	Op_get_all_alerts
	Op_get_alerts_by_route
	Op_get_alerts_by_stop
	Op_get_alerts_by_trip
	Op_get_alerts_by_stops
)

/*
	Envelope is the outermost message on the wire: Envelope { op: uint32 (1),
	seq: uint64 (2), body: bytes (3) }. seq lets a caller match an
	out-of-order response on a multiplexed connection back to its request.
*/
type Envelope struct {
	Op   Op
	Seq  uint64
	Body []byte
}

func (e *Envelope) Marshal() []byte {
	var b []byte
	b = protowire.AppendTag(b, 1, protowire.VarintType)
	b = protowire.AppendVarint(b, uint64(e.Op))
	b = protowire.AppendTag(b, 2, protowire.VarintType)
	b = protowire.AppendVarint(b, e.Seq)
	b = protowire.AppendTag(b, 3, protowire.BytesType)
	b = protowire.AppendBytes(b, e.Body)
	return b
}

func Unmarshal_envelope(buf []byte) (*Envelope, error) {
	e := &Envelope{}

	for len(buf) > 0 {
		num, typ, n := protowire.ConsumeTag(buf)
		if n < 0 {
			return nil, fmt.Errorf("wire: bad envelope tag: %w", protowire.ParseError(n))
		}
		buf = buf[n:]

		switch num {
		case 1:
			v, n := protowire.ConsumeVarint(buf)
			if n < 0 {
				return nil, fmt.Errorf("wire: bad envelope.op: %w", protowire.ParseError(n))
			}
			e.Op = Op(v)
			buf = buf[n:]
		case 2:
			v, n := protowire.ConsumeVarint(buf)
			if n < 0 {
				return nil, fmt.Errorf("wire: bad envelope.seq: %w", protowire.ParseError(n))
			}
			e.Seq = v
			buf = buf[n:]
		case 3:
			v, n := protowire.ConsumeBytes(buf)
			if n < 0 {
				return nil, fmt.Errorf("wire: bad envelope.body: %w", protowire.ParseError(n))
			}
			e.Body = append([]byte(nil), v...)
			buf = buf[n:]
		default:
			n := protowire.ConsumeFieldValue(num, typ, buf)
			if n < 0 {
				return nil, fmt.Errorf("wire: bad envelope field %d: %w", num, protowire.ParseError(n))
			}
			buf = buf[n:]
		}
	}

	return e, nil
}

// ---- hello --------------------------------------------------------------

type HelloRequest struct {
	Name string
}

func (r *HelloRequest) Marshal() []byte {
	var b []byte
	b = protowire.AppendTag(b, 1, protowire.BytesType)
	b = protowire.AppendString(b, r.Name)
	return b
}

func Unmarshal_hello_request(buf []byte) (*HelloRequest, error) {
	r := &HelloRequest{}
	for len(buf) > 0 {
		num, typ, n := protowire.ConsumeTag(buf)
		if n < 0 {
			return nil, fmt.Errorf("wire: bad hello request: %w", protowire.ParseError(n))
		}
		buf = buf[n:]
		if num == 1 {
			v, n := protowire.ConsumeString(buf)
			if n < 0 {
				return nil, fmt.Errorf("wire: bad hello.name: %w", protowire.ParseError(n))
			}
			r.Name = v
			buf = buf[n:]
		} else {
			n := protowire.ConsumeFieldValue(num, typ, buf)
			if n < 0 {
				return nil, fmt.Errorf("wire: bad hello field %d: %w", num, protowire.ParseError(n))
			}
			buf = buf[n:]
		}
	}
	return r, nil
}

type HelloResponse struct {
	Greeting string
}

func (r *HelloResponse) Marshal() []byte {
	var b []byte
	b = protowire.AppendTag(b, 1, protowire.BytesType)
	b = protowire.AppendString(b, r.Greeting)
	return b
}

// ---- from_alpenrose -------------------------------------------------------

/*
	FromAlpenroseRequest carries the three independent payload slots named
	in the ingestion RPC: vehicles, trip updates, alerts. Each slot has its
	own has_* flag and HTTP-style response code from the upstream poll; a
	slot's bytes are encoded whenever they are non-empty, whatever its flag.
*/
type FromAlpenroseRequest struct {
	ChateauId          string
	RealtimeFeedId     string
	Vehicles           []byte
	HasVehicles        bool
	VehiclesResponseCode int
	Trips              []byte
	HasTrips           bool
	TripsResponseCode  int
	Alerts             []byte
	HasAlerts          bool
	AlertsResponseCode int
	TimeOfSubmissionMs uint64
}

func (r *FromAlpenroseRequest) Marshal() []byte {
	var b []byte
	b = append_string_field(b, 1, r.ChateauId)
	b = append_string_field(b, 2, r.RealtimeFeedId)
	if len(r.Vehicles) > 0 {
		b = append_bytes_field(b, 3, r.Vehicles)
	}
	b = append_bool_field(b, 4, r.HasVehicles)
	b = append_varint_field(b, 5, uint64(r.VehiclesResponseCode))
	if len(r.Trips) > 0 {
		b = append_bytes_field(b, 6, r.Trips)
	}
	b = append_bool_field(b, 7, r.HasTrips)
	b = append_varint_field(b, 8, uint64(r.TripsResponseCode))
	if len(r.Alerts) > 0 {
		b = append_bytes_field(b, 9, r.Alerts)
	}
	b = append_bool_field(b, 10, r.HasAlerts)
	b = append_varint_field(b, 11, uint64(r.AlertsResponseCode))
	b = append_varint_field(b, 12, r.TimeOfSubmissionMs)
	return b
}

func Unmarshal_from_alpenrose_request(buf []byte) (*FromAlpenroseRequest, error) {
	r := &FromAlpenroseRequest{}
	for len(buf) > 0 {
		num, typ, n := protowire.ConsumeTag(buf)
		if n < 0 {
			return nil, fmt.Errorf("wire: bad from_alpenrose request tag: %w", protowire.ParseError(n))
		}
		buf = buf[n:]

		switch num {
		case 1:
			v, n, err := consume_string(buf)
			if err != nil {
				return nil, err
			}
			r.ChateauId = v
			buf = buf[n:]
		case 2:
			v, n, err := consume_string(buf)
			if err != nil {
				return nil, err
			}
			r.RealtimeFeedId = v
			buf = buf[n:]
		case 3:
			v, n, err := consume_bytes(buf)
			if err != nil {
				return nil, err
			}
			r.Vehicles = v
			buf = buf[n:]
		case 4:
			v, n, err := consume_varint(buf)
			if err != nil {
				return nil, err
			}
			r.HasVehicles = v != 0
			buf = buf[n:]
		case 5:
			v, n, err := consume_varint(buf)
			if err != nil {
				return nil, err
			}
			r.VehiclesResponseCode = int(v)
			buf = buf[n:]
		case 6:
			v, n, err := consume_bytes(buf)
			if err != nil {
				return nil, err
			}
			r.Trips = v
			buf = buf[n:]
		case 7:
			v, n, err := consume_varint(buf)
			if err != nil {
				return nil, err
			}
			r.HasTrips = v != 0
			buf = buf[n:]
		case 8:
			v, n, err := consume_varint(buf)
			if err != nil {
				return nil, err
			}
			r.TripsResponseCode = int(v)
			buf = buf[n:]
		case 9:
			v, n, err := consume_bytes(buf)
			if err != nil {
				return nil, err
			}
			r.Alerts = v
			buf = buf[n:]
		case 10:
			v, n, err := consume_varint(buf)
			if err != nil {
				return nil, err
			}
			r.HasAlerts = v != 0
			buf = buf[n:]
		case 11:
			v, n, err := consume_varint(buf)
			if err != nil {
				return nil, err
			}
			r.AlertsResponseCode = int(v)
			buf = buf[n:]
		case 12:
			v, n, err := consume_varint(buf)
			if err != nil {
				return nil, err
			}
			r.TimeOfSubmissionMs = v
			buf = buf[n:]
		default:
			n := protowire.ConsumeFieldValue(num, typ, buf)
			if n < 0 {
				return nil, fmt.Errorf("wire: bad from_alpenrose field %d: %w", num, protowire.ParseError(n))
			}
			buf = buf[n:]
		}
	}
	return r, nil
}

type FromAlpenroseResponse struct {
	Ok bool
}

func (r *FromAlpenroseResponse) Marshal() []byte {
	return append_bool_field(nil, 1, r.Ok)
}

// ---- get_gtfs_rt ----------------------------------------------------------

// Kind is the wire ordinal of a gizmos.RtKind (VehiclePositions=0,
// TripUpdates=1, Alerts=2); kept as a bare int32 here so this file has no
// dependency on the gizmos package.
type GetGtfsRtRequest struct {
	FeedId string
	Kind   int32
}

func (r *GetGtfsRtRequest) Marshal() []byte {
	var b []byte
	b = append_string_field(b, 1, r.FeedId)
	b = append_varint_field(b, 2, uint64(r.Kind))
	return b
}

func Unmarshal_get_gtfs_rt_request(buf []byte) (*GetGtfsRtRequest, error) {
	r := &GetGtfsRtRequest{}
	for len(buf) > 0 {
		num, typ, n := protowire.ConsumeTag(buf)
		if n < 0 {
			return nil, fmt.Errorf("wire: bad get_gtfs_rt request tag: %w", protowire.ParseError(n))
		}
		buf = buf[n:]
		switch num {
		case 1:
			v, n, err := consume_string(buf)
			if err != nil {
				return nil, err
			}
			r.FeedId = v
			buf = buf[n:]
		case 2:
			v, n, err := consume_varint(buf)
			if err != nil {
				return nil, err
			}
			r.Kind = int32(v)
			buf = buf[n:]
		default:
			n := protowire.ConsumeFieldValue(num, typ, buf)
			if n < 0 {
				return nil, fmt.Errorf("wire: bad get_gtfs_rt field %d: %w", num, protowire.ParseError(n))
			}
			buf = buf[n:]
		}
	}
	return r, nil
}

type GetGtfsRtResponse struct {
	Present bool
	Payload []byte
}

func (r *GetGtfsRtResponse) Marshal() []byte {
	var b []byte
	b = append_bool_field(b, 1, r.Present)
	if r.Present {
		b = append_bytes_field(b, 2, r.Payload)
	}
	return b
}

// ---- get_vehicle_locations --------------------------------------------

type GetVehicleLocationsRequest struct {
	ChateauId    string
	HasExistingHash bool
	ExistingHash uint64
}

func (r *GetVehicleLocationsRequest) Marshal() []byte {
	var b []byte
	b = append_string_field(b, 1, r.ChateauId)
	b = append_bool_field(b, 2, r.HasExistingHash)
	b = append_varint_field(b, 3, r.ExistingHash)
	return b
}

func Unmarshal_get_vehicle_locations_request(buf []byte) (*GetVehicleLocationsRequest, error) {
	r := &GetVehicleLocationsRequest{}
	for len(buf) > 0 {
		num, typ, n := protowire.ConsumeTag(buf)
		if n < 0 {
			return nil, fmt.Errorf("wire: bad get_vehicle_locations tag: %w", protowire.ParseError(n))
		}
		buf = buf[n:]
		switch num {
		case 1:
			v, n, err := consume_string(buf)
			if err != nil {
				return nil, err
			}
			r.ChateauId = v
			buf = buf[n:]
		case 2:
			v, n, err := consume_varint(buf)
			if err != nil {
				return nil, err
			}
			r.HasExistingHash = v != 0
			buf = buf[n:]
		case 3:
			v, n, err := consume_varint(buf)
			if err != nil {
				return nil, err
			}
			r.ExistingHash = v
			buf = buf[n:]
		default:
			n := protowire.ConsumeFieldValue(num, typ, buf)
			if n < 0 {
				return nil, fmt.Errorf("wire: bad get_vehicle_locations field %d: %w", num, protowire.ParseError(n))
			}
			buf = buf[n:]
		}
	}
	return r, nil
}

/*
	GetVehicleLocationsResponse. Found=false means the chateau is unknown to
	C4 -- distinct from an empty but known chateau, which still has
	Found=true with zero-length Positions. CacheSent=false means
	existing_hash matched the current hash and the (bandwidth-heavy) route
	cache was omitted.
*/
type GetVehicleLocationsResponse struct {
	Found             bool
	CacheSent         bool
	Cache             []byte // serialized route-id -> RouteDisplay entries, only if CacheSent
	Positions         []byte // serialized vehicle_gtfs_id -> VehiclePosition entries
	Hash              uint64
	LastUpdatedTimeMs uint64
}

func (r *GetVehicleLocationsResponse) Marshal() []byte {
	var b []byte
	b = append_bool_field(b, 1, r.Found)
	if !r.Found {
		return b
	}
	b = append_bool_field(b, 2, r.CacheSent)
	if r.CacheSent {
		b = append_bytes_field(b, 3, r.Cache)
	}
	b = append_bytes_field(b, 4, r.Positions)
	b = append_varint_field(b, 5, r.Hash)
	b = append_varint_field(b, 6, r.LastUpdatedTimeMs)
	return b
}

// ---- shared helpers -------------------------------------------------------

func append_string_field(b []byte, field protowire.Number, v string) []byte {
	b = protowire.AppendTag(b, field, protowire.BytesType)
	return protowire.AppendString(b, v)
}

func append_bytes_field(b []byte, field protowire.Number, v []byte) []byte {
	b = protowire.AppendTag(b, field, protowire.BytesType)
	return protowire.AppendBytes(b, v)
}

func append_varint_field(b []byte, field protowire.Number, v uint64) []byte {
	b = protowire.AppendTag(b, field, protowire.VarintType)
	return protowire.AppendVarint(b, v)
}

func append_bool_field(b []byte, field protowire.Number, v bool) []byte {
	n := uint64(0)
	if v {
		n = 1
	}
	return append_varint_field(b, field, n)
}

func consume_string(buf []byte) (string, int, error) {
	v, n := protowire.ConsumeString(buf)
	if n < 0 {
		return "", 0, fmt.Errorf("wire: bad string field: %w", protowire.ParseError(n))
	}
	return v, n, nil
}

func consume_bytes(buf []byte) ([]byte, int, error) {
	v, n := protowire.ConsumeBytes(buf)
	if n < 0 {
		return nil, 0, fmt.Errorf("wire: bad bytes field: %w", protowire.ParseError(n))
	}
	return append([]byte(nil), v...), n, nil
}

func consume_varint(buf []byte) (uint64, int, error) {
	v, n := protowire.ConsumeVarint(buf)
	if n < 0 {
		return 0, 0, fmt.Errorf("wire: bad varint field: %w", protowire.ParseError(n))
	}
	return v, n, nil
}

// ---- get_single_vehicle_location_from_gtfsid ------------------------------

type GetSingleVehicleLocationRequest struct {
	ChateauId string
	GtfsId    string
}

func (r *GetSingleVehicleLocationRequest) Marshal() []byte {
	var b []byte
	b = append_string_field(b, 1, r.ChateauId)
	b = append_string_field(b, 2, r.GtfsId)
	return b
}

func Unmarshal_get_single_vehicle_location_request(buf []byte) (*GetSingleVehicleLocationRequest, error) {
	r := &GetSingleVehicleLocationRequest{}
	for len(buf) > 0 {
		num, typ, n, err := consume_tag(buf)
		if err != nil {
			return nil, err
		}
		buf = buf[n:]
		switch num {
		case 1:
			v, n, err := consume_string(buf)
			if err != nil {
				return nil, err
			}
			r.ChateauId = v
			buf = buf[n:]
		case 2:
			v, n, err := consume_string(buf)
			if err != nil {
				return nil, err
			}
			r.GtfsId = v
			buf = buf[n:]
		default:
			buf = buf[skip_field(num, typ, buf):]
		}
	}
	return r, nil
}

type SingleVehicleLocationResponse struct {
	Found   bool
	Payload []byte
}

func (r *SingleVehicleLocationResponse) Marshal() []byte {
	var b []byte
	b = append_bool_field(b, 1, r.Found)
	if r.Found {
		b = append_bytes_field(b, 2, r.Payload)
	}
	return b
}

// ---- get_trip_updates_from_trip_id ----------------------------------------

type GetTripUpdatesRequest struct {
	ChateauId string
	TripId    string
}

func (r *GetTripUpdatesRequest) Marshal() []byte {
	var b []byte
	b = append_string_field(b, 1, r.ChateauId)
	b = append_string_field(b, 2, r.TripId)
	return b
}

func Unmarshal_get_trip_updates_request(buf []byte) (*GetTripUpdatesRequest, error) {
	r := &GetTripUpdatesRequest{}
	for len(buf) > 0 {
		num, typ, n, err := consume_tag(buf)
		if err != nil {
			return nil, err
		}
		buf = buf[n:]
		switch num {
		case 1:
			v, n, err := consume_string(buf)
			if err != nil {
				return nil, err
			}
			r.ChateauId = v
			buf = buf[n:]
		case 2:
			v, n, err := consume_string(buf)
			if err != nil {
				return nil, err
			}
			r.TripId = v
			buf = buf[n:]
		default:
			buf = buf[skip_field(num, typ, buf):]
		}
	}
	return r, nil
}

/*
	TripUpdatesResponse and AlertsResponse both carry Found plus a repeated
	bytes payload (field 2, one tag per element) -- the shape every
	list-of-protobuf-submessage response in C8 needs, so they share
	encode/decode helpers below.
*/
type TripUpdatesResponse struct {
	Found   bool
	Updates [][]byte
}

func (r *TripUpdatesResponse) Marshal() []byte {
	return marshal_found_list(r.Found, r.Updates)
}

type AlertsResponse struct {
	Found  bool
	Alerts [][]byte
}

func (r *AlertsResponse) Marshal() []byte {
	return marshal_found_list(r.Found, r.Alerts)
}

func marshal_found_list(found bool, items [][]byte) []byte {
	var b []byte
	b = append_bool_field(b, 1, found)
	if !found {
		return b
	}
	for _, it := range items {
		b = append_bytes_field(b, 2, it)
	}
	return b
}

// ---- get_all_alerts / alert lookups by route, stop, trip ------------------

type GetAllAlertsRequest struct {
	ChateauId string
}

func (r *GetAllAlertsRequest) Marshal() []byte {
	return append_string_field(nil, 1, r.ChateauId)
}

func Unmarshal_get_all_alerts_request(buf []byte) (*GetAllAlertsRequest, error) {
	r := &GetAllAlertsRequest{}
	for len(buf) > 0 {
		num, typ, n, err := consume_tag(buf)
		if err != nil {
			return nil, err
		}
		buf = buf[n:]
		if num == 1 {
			v, n, err := consume_string(buf)
			if err != nil {
				return nil, err
			}
			r.ChateauId = v
			buf = buf[n:]
		} else {
			buf = buf[skip_field(num, typ, buf):]
		}
	}
	return r, nil
}

/*
	GetAlertsByKeyRequest serves the by-route, by-stop and by-trip lookups:
	all three take a chateau id plus one index key.
*/
type GetAlertsByKeyRequest struct {
	ChateauId string
	Key       string
}

func (r *GetAlertsByKeyRequest) Marshal() []byte {
	var b []byte
	b = append_string_field(b, 1, r.ChateauId)
	b = append_string_field(b, 2, r.Key)
	return b
}

func Unmarshal_get_alerts_by_key_request(buf []byte) (*GetAlertsByKeyRequest, error) {
	r := &GetAlertsByKeyRequest{}
	for len(buf) > 0 {
		num, typ, n, err := consume_tag(buf)
		if err != nil {
			return nil, err
		}
		buf = buf[n:]
		switch num {
		case 1:
			v, n, err := consume_string(buf)
			if err != nil {
				return nil, err
			}
			r.ChateauId = v
			buf = buf[n:]
		case 2:
			v, n, err := consume_string(buf)
			if err != nil {
				return nil, err
			}
			r.Key = v
			buf = buf[n:]
		default:
			buf = buf[skip_field(num, typ, buf):]
		}
	}
	return r, nil
}

type GetAlertsByManyStopsRequest struct {
	ChateauId string
	StopIds   []string
}

func (r *GetAlertsByManyStopsRequest) Marshal() []byte {
	var b []byte
	b = append_string_field(b, 1, r.ChateauId)
	for _, id := range r.StopIds {
		b = append_string_field(b, 2, id)
	}
	return b
}

func Unmarshal_get_alerts_by_many_stops_request(buf []byte) (*GetAlertsByManyStopsRequest, error) {
	r := &GetAlertsByManyStopsRequest{}
	for len(buf) > 0 {
		num, typ, n, err := consume_tag(buf)
		if err != nil {
			return nil, err
		}
		buf = buf[n:]
		switch num {
		case 1:
			v, n, err := consume_string(buf)
			if err != nil {
				return nil, err
			}
			r.ChateauId = v
			buf = buf[n:]
		case 2:
			v, n, err := consume_string(buf)
			if err != nil {
				return nil, err
			}
			r.StopIds = append(r.StopIds, v)
			buf = buf[n:]
		default:
			buf = buf[skip_field(num, typ, buf):]
		}
	}
	return r, nil
}

// ---- shared tag helpers ----------------------------------------------------

func consume_tag(buf []byte) (protowire.Number, protowire.Type, int, error) {
	num, typ, n := protowire.ConsumeTag(buf)
	if n < 0 {
		return 0, 0, 0, fmt.Errorf("wire: bad tag: %w", protowire.ParseError(n))
	}
	return num, typ, n, nil
}

func skip_field(num protowire.Number, typ protowire.Type, buf []byte) int {
	n := protowire.ConsumeFieldValue(num, typ, buf)
	if n < 0 {
		return len(buf)
	}
	return n
}
