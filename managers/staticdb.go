// vi: sw=4 ts=4:

/*

	Mnemonic:	staticdb
	Abstract:	The static-schedule database pool that C6 joins realtime data
				against, and that C9's leader loop queries for the chateau
				universe. The Postgres/PostGIS schema itself is an external
				collaborator (Maple's concern); this is only the read-only
				client side of that boundary.
	Date:		31 July 2026
	Author:		Aspen team
*/

package managers

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/lib/pq"

	"github.com/tanneberger/aspen/gizmos"
)

/*
	Static_db is the read-only join surface C6 and C9 need. A narrow
	interface (rather than handing callers a raw *sql.DB) keeps the
	enrichment and leader-loop code testable against an in-memory Fake_static_db
	without a running Postgres instance.
*/
type Static_db interface {
	// Chateau_universe returns every chateau known to the static schedule,
	// used by the leader to partition work across live workers.
	Chateau_universe(ctx context.Context) ([]gizmos.Chateau, error)

	// Route_displays resolves route ids to their static display metadata
	// for the vehicle_routes_cache join. A route id absent from the
	// returned map means static data is missing for it; the vehicle entry
	// is retained without route cache embellishment.
	Route_displays(ctx context.Context, route_ids []string) (map[string]*gizmos.RouteDisplay, error)
}

/*
	Pq_static_db is the production Static_db backed by lib/pq against a
	Postgres/PostGIS instance holding the Maple-ingested static GTFS tables.
*/
type Pq_static_db struct {
	db *sql.DB
}

/*
	Mk_pq_static_db opens a connection pool against dsn and pings it once,
	failing if the database cannot be reached. Connection pooling is the only assumption made about the database;
	sql.DB already gives a fixed-size pool with acquire/use/release
	semantics.
*/
func Mk_pq_static_db(dsn string) (*Pq_static_db, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("staticdb: opening pool: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("staticdb: ping failed: %w", err)
	}

	db_sheep.Baa(1, "staticdb: connected")

	return &Pq_static_db{db: db}, nil
}

func (p *Pq_static_db) Close() error {
	return p.db.Close()
}

/*
	Chateau_universe joins the chateau grouping tables Maple maintains to
	produce every chateau id plus its static and realtime feed id sets.
*/
func (p *Pq_static_db) Chateau_universe(ctx context.Context) ([]gizmos.Chateau, error) {
	rows, err := p.db.QueryContext(ctx, `
		SELECT c.chateau_id, c.static_feed_ids, c.realtime_feed_ids, c.realtime_feed_kinds
		FROM chateaus c
	`)
	if err != nil {
		return nil, fmt.Errorf("staticdb: chateau_universe query: %w", err)
	}
	defer rows.Close()

	var out []gizmos.Chateau
	for rows.Next() {
		var (
			chateauId   string
			staticFeeds []string
			rtFeedIds   []string
			rtFeedKinds []string
		)

		if err := rows.Scan(&chateauId, pq.Array(&staticFeeds), pq.Array(&rtFeedIds), pq.Array(&rtFeedKinds)); err != nil {
			return nil, fmt.Errorf("staticdb: chateau_universe scan: %w", err)
		}

		keys := make([]gizmos.FeedKey, 0, len(rtFeedIds))
		for i := range rtFeedIds {
			kind := gizmos.VehiclePositions
			if i < len(rtFeedKinds) {
				kind = parse_rt_kind(rtFeedKinds[i])
			}
			keys = append(keys, gizmos.FeedKey{FeedId: rtFeedIds[i], Kind: kind})
		}

		out = append(out, *gizmos.Mk_chateau(chateauId, staticFeeds, keys))
	}

	return out, rows.Err()
}

/*
	Route_displays resolves a batch of route ids against the static `routes`
	table. Missing ids are simply absent from the result map.
*/
func (p *Pq_static_db) Route_displays(ctx context.Context, route_ids []string) (map[string]*gizmos.RouteDisplay, error) {
	out := make(map[string]*gizmos.RouteDisplay, len(route_ids))
	if len(route_ids) == 0 {
		return out, nil
	}

	rows, err := p.db.QueryContext(ctx, `
		SELECT route_id, route_short_name, route_long_name, route_color, route_text_color, route_type
		FROM routes
		WHERE route_id = ANY($1)
	`, pq.Array(route_ids))
	if err != nil {
		return nil, fmt.Errorf("staticdb: route_displays query: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		rd := &gizmos.RouteDisplay{}
		if err := rows.Scan(&rd.RouteId, &rd.ShortName, &rd.LongName, &rd.Color, &rd.TextColor, &rd.RouteType); err != nil {
			return nil, fmt.Errorf("staticdb: route_displays scan: %w", err)
		}
		out[rd.RouteId] = rd
	}

	return out, rows.Err()
}

func parse_rt_kind(s string) gizmos.RtKind {
	switch s {
	case "trip_updates":
		return gizmos.TripUpdates
	case "alerts":
		return gizmos.Alerts
	default:
		return gizmos.VehiclePositions
	}
}
