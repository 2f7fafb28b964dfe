// vi: sw=4 ts=4:

/*

	Mnemonic:	dedup
	Abstract:	C1 -- the per-(feed,kind) dedup index. A two-level test
				(timestamp, then rough hash) that tells the ingestion RPC
				whether a submission is worth enqueueing for enrichment.
	Date:		31 July 2026
	Author:		Aspen team
*/

package gizmos

import (
	"sync"
)

/*
	Verdict is the result of Dedup_index.Observe.
*/
type Verdict int

const (
	New Verdict = iota
	Old
)

/*
	DedupEntry holds the last-seen timestamp and rough hash for one
	(feed_id, kind). Lifetime is process lifetime -- a restart simply
	triggers one extra enrichment per feed.
*/
type DedupEntry struct {
	last_timestamp  uint64
	has_timestamp   bool
	last_rough_hash uint64
	has_rough_hash  bool
}

/*
	Dedup_index is C1. Safe for concurrent use: a single mutex guards the
	whole map since critical sections are O(1) lookups/updates, and the key
	cardinality stays in the low thousands across the whole operator
	universe.
*/
type Dedup_index struct {
	mu      sync.Mutex
	entries map[FeedKey]*DedupEntry
}

/*
	Mk_dedup_index allocates an empty index.
*/
func Mk_dedup_index() *Dedup_index {
	return &Dedup_index{
		entries: make(map[FeedKey]*DedupEntry),
	}
}

/*
	Observe implements a four-step test:
		1. no timestamp on the message -> New (force processing)
		2. same timestamp as last time -> Old, hash not touched
		3. new timestamp, same rough hash -> Old
		4. new timestamp, different rough hash -> New

	entity_ids is the caller-supplied set used to compute the rough hash;
	passing it in (rather than recomputing from msg here) keeps this
	function ignorant of the FeedMessage shape and lets callers avoid
	recomputing Entity_ids twice when they already have it.
*/
func (d *Dedup_index) Observe(key FeedKey, timestamp uint64, has_timestamp bool, entity_ids []string) Verdict {
	if !has_timestamp {
		obj_sheep.Baa(2, "dedup: %s/%s has no header timestamp, forcing New", key.FeedId, key.Kind)
		return New
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	entry := d.entries[key]
	if entry == nil {
		entry = &DedupEntry{}
		d.entries[key] = entry
	}

	if entry.has_timestamp && entry.last_timestamp == timestamp {
		return Old
	}

	entry.last_timestamp = timestamp
	entry.has_timestamp = true

	hash := Rough_hash(entity_ids)
	if entry.has_rough_hash && entry.last_rough_hash == hash {
		return Old
	}

	entry.last_rough_hash = hash
	entry.has_rough_hash = true

	return New
}

/*
	Len reports the number of distinct (feed, kind) keys observed so far.
	Exposed for tests and for a future metrics surface; not used to bound
	memory -- this index is allowed to grow unbounded and is lossy across a
	restart.
*/
func (d *Dedup_index) Len() int {
	d.mu.Lock()
	defer d.mu.Unlock()

	return len(d.entries)
}
