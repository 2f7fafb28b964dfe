// vi: sw=4 ts=4:

/*

	Mnemonic:	enriched_store
	Abstract:	C4 -- the enriched store. A concurrent map chateau_id ->
				AspenisedArtifact, authoritative for the enriched plane.
				Readers get a cloned snapshot so that the query plane (C8)
				can serialize it outside of any lock, long enough to finish
				encoding a response without blocking the next enrichment
				write.
	Date:		31 July 2026
	Author:		Aspen team
*/

package managers

import (
	"sync"

	"github.com/tanneberger/aspen/gizmos"
)

/*
	Enriched_store is C4. Same sharded-by-sync.Map approach as Rt_store
	(C3); see rtstore.go for the rationale.
*/
type Enriched_store struct {
	m sync.Map // string (chateau id) -> *gizmos.AspenisedArtifact
}

/*
	Mk_enriched_store allocates an empty enriched store.
*/
func Mk_enriched_store() *Enriched_store {
	return &Enriched_store{}
}

/*
	Put installs artifact under chateau_id, overwriting whatever was there.
*/
func (s *Enriched_store) Put(chateau_id string, artifact *gizmos.AspenisedArtifact) {
	s.m.Store(chateau_id, artifact)
	store_sheep.Baa(3, "enriched-store: installed chateau %s (updated=%d)", chateau_id, artifact.LastUpdatedTimeMs)
}

/*
	Get returns a cloned snapshot of the current artifact for chateau_id, or
	nil if the chateau is unknown to C4 (it may still be known to C3/the
	static universe -- this just means no enrichment cycle has published it
	yet).
*/
func (s *Enriched_store) Get(chateau_id string) *gizmos.AspenisedArtifact {
	v, ok := s.m.Load(chateau_id)
	if !ok {
		return nil
	}
	return v.(*gizmos.AspenisedArtifact).Clone()
}

/*
	Has reports whether chateau_id has a published artifact, without paying
	for a clone -- used by handlers that only need the unknown-chateau
	optional-none behaviour.
*/
func (s *Enriched_store) Has(chateau_id string) bool {
	_, ok := s.m.Load(chateau_id)
	return ok
}
