// vi: sw=4 ts=4:

/*

	Mnemonic:	rpcserver
	Abstract:	The shared TCP listener C7 and C8 are served over: 4-byte
				length-prefixed Envelope frames on a connection managed by
				connman.Cmgr. This file owns framing and
				dispatch only; the RPC semantics live in ingest_api.go and
				query_api.go.
	Date:		31 July 2026
	Author:		Aspen team
*/

package managers

import (
	"context"
	"encoding/binary"

	"github.com/att/gopkgs/connman"

	"github.com/tanneberger/aspen/gizmos"
)

const frame_header_len = 4

/*
	Rpc_server holds the singletons every RPC handler reads or writes.
	Constructed once in main and run for the lifetime of the process.
*/
type Rpc_server struct {
	port     string
	rt       *Rt_store
	enriched *Enriched_store
	dedup    *gizmos.Dedup_index
	queue    *Chateau_queue
}

func Mk_rpc_server(port string, rt *Rt_store, enriched *Enriched_store, dedup *gizmos.Dedup_index, queue *Chateau_queue) *Rpc_server {
	return &Rpc_server{
		port:     port,
		rt:       rt,
		enriched: enriched,
		dedup:    dedup,
		queue:    queue,
	}
}

/*
	conn_buf accumulates bytes for one connection until a full frame (4
	byte big-endian length prefix + body) is available, supporting partial
	reads and multiple frames arriving in one Sess_data buffer.
*/
type conn_buf struct {
	pending []byte
}

func (c *conn_buf) add(b []byte) {
	c.pending = append(c.pending, b...)
}

func (c *conn_buf) take_frame() ([]byte, bool) {
	if len(c.pending) < frame_header_len {
		return nil, false
	}

	n := binary.BigEndian.Uint32(c.pending[:frame_header_len])
	if uint32(len(c.pending)-frame_header_len) < n {
		return nil, false
	}

	frame := c.pending[frame_header_len : frame_header_len+int(n)]
	c.pending = c.pending[frame_header_len+int(n):]

	return frame, true
}

func frame_bytes(body []byte) []byte {
	out := make([]byte, frame_header_len+len(body))
	binary.BigEndian.PutUint32(out, uint32(len(body)))
	copy(out[frame_header_len:], body)
	return out
}

/*
	Run binds the RPC port and services connections until ctx is
	cancelled. channel_depth bounds the backlog of unhandled session
	events on the buffered sess_chan -- set from CHANNELS.
*/
func (s *Rpc_server) Run(ctx context.Context, channel_depth int) {
	sess_chan := make(chan *connman.Sess_data, channel_depth)
	smgr := connman.NewManager(s.port, sess_chan)

	conns := make(map[string]*conn_buf)

	ing_sheep.Baa(1, "rpcserver: listening on port %s", s.port)

	for {
		select {
		case <-ctx.Done():
			return

		case sreq := <-sess_chan:
			switch sreq.State {
			case connman.ST_NEW:
				conns[sreq.Id] = &conn_buf{}

			case connman.ST_DISC:
				delete(conns, sreq.Id)

			case connman.ST_DATA:
				cb, known := conns[sreq.Id]
				if !known {
					cb = &conn_buf{}
					conns[sreq.Id] = cb
				}

				cb.add(sreq.Buf)
				for {
					frame, ok := cb.take_frame()
					if !ok {
						break
					}
					s.dispatch(smgr, sreq.Id, frame)
				}
			}
		}
	}
}

/*
	dispatch decodes one Envelope and routes it by Op, recovering from any
	handler panic so a single malformed or unlucky request drops only its
	own connection's in-flight reply, never the server loop.
*/
func (s *Rpc_server) dispatch(smgr *connman.Cmgr, conn_id string, raw []byte) {
	defer func() {
		if r := recover(); r != nil {
			ing_sheep.Baa(0, "rpcserver: recovered panic handling request from %s: %v", conn_id, r)
		}
	}()

	env, err := Unmarshal_envelope(raw)
	if err != nil {
		ing_sheep.Baa(1, "rpcserver: dropping malformed frame from %s: %s", conn_id, err)
		return
	}

	body := s.handle(env)
	if body == nil {
		return
	}

	reply := &Envelope{Op: env.Op, Seq: env.Seq, Body: body}
	smgr.Write(conn_id, frame_bytes(reply.Marshal()))
}

func (s *Rpc_server) handle(env *Envelope) []byte {
	switch env.Op {
	case Op_hello:
		req, err := Unmarshal_hello_request(env.Body)
		if err != nil {
			qry_sheep.Baa(1, "rpcserver: bad hello request: %s", err)
			return nil
		}
		return Hello(req.Name).Marshal()

	case Op_from_alpenrose:
		req, err := Unmarshal_from_alpenrose_request(env.Body)
		if err != nil {
			ing_sheep.Baa(1, "rpcserver: bad from_alpenrose request: %s", err)
			return nil
		}
		ok := From_alpenrose(s.rt, s.dedup, s.queue, req)
		return (&FromAlpenroseResponse{Ok: ok}).Marshal()

	case Op_get_gtfs_rt:
		req, err := Unmarshal_get_gtfs_rt_request(env.Body)
		if err != nil {
			qry_sheep.Baa(1, "rpcserver: bad get_gtfs_rt request: %s", err)
			return nil
		}
		return Get_gtfs_rt(s.rt, req.FeedId, gizmos.RtKind(req.Kind)).Marshal()

	case Op_get_vehicle_locations:
		req, err := Unmarshal_get_vehicle_locations_request(env.Body)
		if err != nil {
			qry_sheep.Baa(1, "rpcserver: bad get_vehicle_locations request: %s", err)
			return nil
		}
		return Get_vehicle_locations(s.enriched, req.ChateauId, req.ExistingHash, req.HasExistingHash).Marshal()

	case Op_get_single_vehicle_location:
		req, err := Unmarshal_get_single_vehicle_location_request(env.Body)
		if err != nil {
			qry_sheep.Baa(1, "rpcserver: bad get_single_vehicle_location request: %s", err)
			return nil
		}
		vp, found := Get_single_vehicle_location_from_gtfsid(s.enriched, req.ChateauId, req.GtfsId)
		return marshal_single_vehicle_response(vp, found)

	case Op_get_trip_updates_from_trip_id:
		req, err := Unmarshal_get_trip_updates_request(env.Body)
		if err != nil {
			qry_sheep.Baa(1, "rpcserver: bad get_trip_updates request: %s", err)
			return nil
		}
		updates, found := Get_trip_updates_from_trip_id(s.enriched, req.ChateauId, req.TripId)
		return marshal_trip_updates_response(updates, found)

	case Op_get_all_alerts:
		req, err := Unmarshal_get_all_alerts_request(env.Body)
		if err != nil {
			qry_sheep.Baa(1, "rpcserver: bad get_all_alerts request: %s", err)
			return nil
		}
		alerts, found := Get_all_alerts(s.enriched, req.ChateauId)
		return marshal_alerts_response(alerts, found)

	case Op_get_alerts_by_route:
		req, err := Unmarshal_get_alerts_by_key_request(env.Body)
		if err != nil {
			qry_sheep.Baa(1, "rpcserver: bad get_alerts_by_route request: %s", err)
			return nil
		}
		alerts, found := Get_alerts_by_route(s.enriched, req.ChateauId, req.Key)
		return marshal_alerts_response(alerts, found)

	case Op_get_alerts_by_stop:
		req, err := Unmarshal_get_alerts_by_key_request(env.Body)
		if err != nil {
			qry_sheep.Baa(1, "rpcserver: bad get_alerts_by_stop request: %s", err)
			return nil
		}
		alerts, found := Get_alerts_by_stop(s.enriched, req.ChateauId, req.Key)
		return marshal_alerts_response(alerts, found)

	case Op_get_alerts_by_trip:
		req, err := Unmarshal_get_alerts_by_key_request(env.Body)
		if err != nil {
			qry_sheep.Baa(1, "rpcserver: bad get_alerts_by_trip request: %s", err)
			return nil
		}
		alerts, found := Get_alerts_by_trip(s.enriched, req.ChateauId, req.Key)
		return marshal_alerts_response(alerts, found)

	case Op_get_alerts_by_stops:
		req, err := Unmarshal_get_alerts_by_many_stops_request(env.Body)
		if err != nil {
			qry_sheep.Baa(1, "rpcserver: bad get_alerts_by_stops request: %s", err)
			return nil
		}
		alerts, found := Get_alerts_by_many_stops(s.enriched, req.ChateauId, req.StopIds)
		return marshal_alerts_response(alerts, found)

	default:
		qry_sheep.Baa(1, "rpcserver: unrecognised op %d", env.Op)
		return nil
	}
}
