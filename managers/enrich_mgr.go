// vi: sw=4 ts=4:

/*

	Mnemonic:	enrich_mgr
	Abstract:	C6 -- the enrichment worker pool. A fixed-size set of
				cooperative tasks draining the chateau work queue (C5),
				joining the raw realtime store (C3) against static schedule
				data, and publishing the result into the enriched store (C4).
	Date:		31 July 2026
	Author:		Aspen team
*/

package managers

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/tanneberger/aspen/gizmos"
)

/*
	Enrich_pool is C6. Run spawns n cooperative workers bounded by
	errgroup.SetLimit and blocks until ctx is cancelled; a worker panic is
	recovered locally so it never brings down its peers or the group.
*/
type Enrich_pool struct {
	queue     *Chateau_queue
	rt        *Rt_store
	enriched  *Enriched_store
	db        Static_db
	chateaus  *Chateau_registry
	n_workers int
}

func Mk_enrich_pool(queue *Chateau_queue, rt *Rt_store, enriched *Enriched_store, db Static_db, chateaus *Chateau_registry, n_workers int) *Enrich_pool {
	if n_workers < 1 {
		n_workers = 1
	}
	return &Enrich_pool{
		queue:     queue,
		rt:        rt,
		enriched:  enriched,
		db:        db,
		chateaus:  chateaus,
		n_workers: n_workers,
	}
}

/*
	Run launches the pool and blocks until ctx is done. Each worker loops:
	take a job (idling briefly when the queue is empty rather than
	busy-spinning), enrich it, release it -- exactly once per take,
	regardless of outcome, so a failed job re-opens its chateau for the
	next submission rather than wedging it permanently in-flight.
*/
func (p *Enrich_pool) Run(ctx context.Context) error {
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(p.n_workers)

	for i := 0; i < p.n_workers; i++ {
		g.Go(func() error {
			p.worker_loop(gctx)
			return nil
		})
	}

	return g.Wait()
}

func (p *Enrich_pool) worker_loop(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		job, ok := p.queue.Take()
		if !ok {
			select {
			case <-ctx.Done():
				return
			case <-time.After(50 * time.Millisecond):
			}
			continue
		}

		p.run_job(ctx, job)
	}
}

func (p *Enrich_pool) run_job(ctx context.Context, job gizmos.PendingChateau) {
	defer p.queue.Release(job.ChateauId)
	defer func() {
		if r := recover(); r != nil {
			enr_sheep.Baa(0, "enrich: recovered panic processing chateau %s: %v", job.ChateauId, r)
		}
	}()

	chateau, known := p.chateaus.Get(job.ChateauId)
	if !known {
		enr_sheep.Baa(1, "enrich: chateau %s not in static universe, abandoning job", job.ChateauId)
		return
	}

	art, err := p.build_artifact(ctx, chateau)
	if err != nil {
		enr_sheep.Baa(1, "enrich: chateau %s failed, releasing without publish: %s", job.ChateauId, err)
		return
	}

	p.enriched.Put(job.ChateauId, art)
	enr_sheep.Baa(2, "enrich: chateau %s published (%d vehicles, %d trip updates, %d alerts)",
		job.ChateauId, len(art.VehiclePositions), len(art.TripUpdates), len(art.AspenisedAlerts))
}

/*
	build_artifact joins every (feed_id, kind) belonging to chateau against
	C3 and the static routes table, producing one AspenisedArtifact. A
	route missing from the static join is not an error -- the vehicle
	entry is kept without route display embellishment.
*/
func (p *Enrich_pool) build_artifact(ctx context.Context, chateau gizmos.Chateau) (*gizmos.AspenisedArtifact, error) {
	art := gizmos.Mk_artifact(uint64(time.Now().UnixMilli()))

	route_ids := make(map[string]bool)

	for _, key := range chateau.RealtimeFeeds {
		msg := p.rt.Get(key)
		if msg == nil {
			continue
		}

		switch key.Kind {
		case gizmos.VehiclePositions:
			collect_vehicles(art, msg, route_ids)
		case gizmos.TripUpdates:
			collect_trip_updates(art, msg)
		case gizmos.Alerts:
			collect_alerts(art, msg)
		}
	}

	if len(route_ids) > 0 {
		ids := make([]string, 0, len(route_ids))
		for id := range route_ids {
			ids = append(ids, id)
		}

		displays, err := p.db.Route_displays(ctx, ids)
		if err != nil {
			return nil, err
		}
		for id, rd := range displays {
			art.VehicleRoutesCache[id] = rd
		}
	}

	return art, nil
}

func collect_vehicles(art *gizmos.AspenisedArtifact, msg *gizmos.FeedMessage, route_ids map[string]bool) {
	for _, ent := range msg.Entity {
		if ent == nil || ent.Vehicle == nil {
			continue
		}
		vp := ent.Vehicle

		gtfs_id := ent.GetId()
		if vp.Vehicle != nil && vp.Vehicle.GetId() != "" {
			gtfs_id = vp.Vehicle.GetId()
		}

		art.VehiclePositions[gtfs_id] = vp

		if vp.Trip != nil && vp.Trip.GetRouteId() != "" {
			route_ids[vp.Trip.GetRouteId()] = true
		}
	}
}

func collect_trip_updates(art *gizmos.AspenisedArtifact, msg *gizmos.FeedMessage) {
	for _, ent := range msg.Entity {
		if ent == nil || ent.TripUpdate == nil {
			continue
		}
		tu := ent.TripUpdate

		update_id := ent.GetId()
		art.TripUpdates[update_id] = tu

		if tu.Trip != nil && tu.Trip.GetTripId() != "" {
			trip_id := tu.Trip.GetTripId()
			art.TripUpdatesByTripId[trip_id] = append(art.TripUpdatesByTripId[trip_id], update_id)
		}
	}
}

func collect_alerts(art *gizmos.AspenisedArtifact, msg *gizmos.FeedMessage) {
	for _, ent := range msg.Entity {
		if ent == nil || ent.Alert == nil {
			continue
		}
		al := ent.Alert

		alert_id := ent.GetId()
		art.AspenisedAlerts[alert_id] = al

		for _, informed := range al.InformedEntity {
			if informed == nil {
				continue
			}
			if informed.RouteId != nil && informed.GetRouteId() != "" {
				rid := informed.GetRouteId()
				art.AlertsByRoute[rid] = append(art.AlertsByRoute[rid], alert_id)
			}
			if informed.StopId != nil && informed.GetStopId() != "" {
				sid := informed.GetStopId()
				art.AlertsByStop[sid] = append(art.AlertsByStop[sid], alert_id)
			}
			if informed.Trip != nil && informed.Trip.GetTripId() != "" {
				tid := informed.Trip.GetTripId()
				art.AlertsByTrip[tid] = append(art.AlertsByTrip[tid], alert_id)
			}
		}
	}
}
