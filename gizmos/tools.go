// vi: sw=4 ts=4:

/*

	Mnemonic:	tools
	Abstract:	General functions that don't warrant their own file: the rough/fast
				hashing helpers used by the dedup index (C1) and by the query plane's
				conditional-GET route cache hash (C8).
	Date:		31 July 2026
	Author:		Aspen team
*/

package gizmos

import (
	"sort"

	"github.com/cespare/xxhash/v2"
)

/*
	Rough_hash computes a stable, non-cryptographic hash over a FeedMessage's
	entity ids, ignoring the order entities arrived in. It is "rough" in the
	sense the dedup index (C1) needs: two payloads that differ only in
	cosmetic field reordering hash identically, and adding, removing or
	renaming an entity changes the hash. Only the ids are hashed, so a
	payload whose entities keep their ids but change their content hashes
	the same as before.

	Entity ids are sorted before hashing so that upstream re-serialization of
	the same logical payload (which may reorder the entity slice) still
	produces the same hash.
*/
func Rough_hash(entity_ids []string) uint64 {
	ids := append([]string(nil), entity_ids...)
	sort.Strings(ids)

	h := xxhash.New()
	for _, id := range ids {
		h.WriteString(id)
		h.Write([]byte{0}) // separator so "ab","c" and "a","bc" don't collide
	}

	return h.Sum64()
}

/*
	Fast_hash hashes an arbitrary ordered list of strings, in the order
	given. Used by the query plane (C8) to fingerprint the current
	vehicle_routes_cache so that conditional-GET callers can skip re-sending
	it when nothing changed. Unlike Rough_hash this does NOT sort first: the
	caller is expected to present the values in a stable (e.g. route-id
	sorted) order already.
*/
func Fast_hash(values []string) uint64 {
	h := xxhash.New()
	for _, v := range values {
		h.WriteString(v)
		h.Write([]byte{0})
	}

	return h.Sum64()
}
