// vi: sw=4 ts=4:

/*

	Mnemonic:	chateau_registry
	Abstract:	The shared, periodically refreshed view of the static chateau
				universe that both C6 (to know which feeds belong to a
				chateau) and C9's leader loop (to know what to partition)
				need. Neither owns the refresh; whichever task calls
				Refresh first after startup populates it for both.
	Date:		31 July 2026
	Author:		Aspen team
*/

package managers

import (
	"context"
	"sync"

	"github.com/tanneberger/aspen/gizmos"
)

type Chateau_registry struct {
	mu        sync.RWMutex
	chateaus  map[string]gizmos.Chateau
}

func Mk_chateau_registry() *Chateau_registry {
	return &Chateau_registry{
		chateaus: make(map[string]gizmos.Chateau),
	}
}

/*
	Refresh replaces the registry's contents with a fresh read from db. The
	old contents remain visible to concurrent readers until the swap
	completes.
*/
func (r *Chateau_registry) Refresh(ctx context.Context, db Static_db) error {
	universe, err := db.Chateau_universe(ctx)
	if err != nil {
		return err
	}

	next := make(map[string]gizmos.Chateau, len(universe))
	for _, c := range universe {
		next[c.Id] = c
	}

	r.mu.Lock()
	r.chateaus = next
	r.mu.Unlock()

	return nil
}

func (r *Chateau_registry) Get(chateau_id string) (gizmos.Chateau, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	c, ok := r.chateaus[chateau_id]
	return c, ok
}

/*
	All returns every known chateau, sorted order not guaranteed --
	callers needing a stable order (C9's partitioning) sort it themselves.
*/
func (r *Chateau_registry) All() []gizmos.Chateau {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]gizmos.Chateau, 0, len(r.chateaus))
	for _, c := range r.chateaus {
		out = append(out, c)
	}
	return out
}
