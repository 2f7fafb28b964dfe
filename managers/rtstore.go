// vi: sw=4 ts=4:

/*

	Mnemonic:	rtstore
	Abstract:	C3 -- the realtime store. A concurrent map (feed_id, kind) ->
				FeedMessage, authoritative for the raw plane.
				Write-only-grow from the RPC side: entries are overwritten,
				never deleted, within one process.
	Date:		31 July 2026
	Author:		Aspen team
*/

package managers

import (
	"sync"

	"github.com/tanneberger/aspen/gizmos"
)

/*
	Rt_store avoids one global mutex: readers (the query plane, C8) vastly
	outnumber writers (the ingestion plane, C7), and reads must never block
	behind a writer. A sync.Map gives that trade-off without hand-rolling a
	sharded lock table, and its installs are whole value replacements so a
	reader never observes a torn message.
*/
type Rt_store struct {
	m sync.Map // gizmos.FeedKey -> *gizmos.FeedMessage
}

/*
	Mk_rt_store allocates an empty realtime store.
*/
func Mk_rt_store() *Rt_store {
	return &Rt_store{}
}

/*
	Put installs msg under key, overwriting whatever was there. Never
	deletes; the only shrink path is external intervention.
*/
func (s *Rt_store) Put(key gizmos.FeedKey, msg *gizmos.FeedMessage) {
	s.m.Store(key, msg)
	store_sheep.Baa(3, "rtstore: installed %s/%s", key.FeedId, key.Kind)
}

/*
	Get returns the current FeedMessage for key, or nil if unknown.
*/
func (s *Rt_store) Get(key gizmos.FeedKey) *gizmos.FeedMessage {
	v, ok := s.m.Load(key)
	if !ok {
		return nil
	}
	return v.(*gizmos.FeedMessage)
}
