// vi: sw=4 ts=4:

/*

	Mnemonic:	staticdb_fake
	Abstract:	An in-memory Static_db for tests that exercise C6/C9 logic
				without a running Postgres instance.
	Date:		31 July 2026
	Author:		Aspen team
*/

package managers

import (
	"context"

	"github.com/tanneberger/aspen/gizmos"
)

type Fake_static_db struct {
	Chateaus []gizmos.Chateau
	Routes   map[string]*gizmos.RouteDisplay
}

func Mk_fake_static_db() *Fake_static_db {
	return &Fake_static_db{Routes: make(map[string]*gizmos.RouteDisplay)}
}

func (f *Fake_static_db) Chateau_universe(ctx context.Context) ([]gizmos.Chateau, error) {
	return append([]gizmos.Chateau(nil), f.Chateaus...), nil
}

func (f *Fake_static_db) Route_displays(ctx context.Context, route_ids []string) (map[string]*gizmos.RouteDisplay, error) {
	out := make(map[string]*gizmos.RouteDisplay, len(route_ids))
	for _, id := range route_ids {
		if rd, ok := f.Routes[id]; ok {
			out[id] = rd
		}
	}
	return out, nil
}
