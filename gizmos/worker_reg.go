// vi: sw=4 ts=4:

/*

	Mnemonic:	worker_reg
	Abstract:	WorkerRegistration and ChateauAssignment -- the two records C9
				writes to the coordinator. ChateauMetadata links to a
				WorkerRegistration by embedding its fields (copy by value),
				not by reference: the coordinator's lease semantics delete
				both atomically, and a pointer would dangle.
	Date:		31 July 2026
	Author:		Aspen team
*/

package gizmos

/*
	WorkerRegistration is written to /aspen_workers/<worker_id>, bound to the
	worker's own lease.
*/
type WorkerRegistration struct {
	WorkerId   string
	SocketAddr string
	LeaseId    int64
}

/*
	ChateauMetadata is the value written to
	/aspen_assigned_chateaus/<chateau_id>, bound to the assignee's lease.
	It embeds the assignee's routing info directly rather than pointing at a
	WorkerRegistration record.
*/
type ChateauMetadata struct {
	ChateauId  string
	WorkerId   string
	SocketAddr string
}

/*
	Mk_chateau_metadata builds a ChateauMetadata from a chateau id and the
	WorkerRegistration of its assignee.
*/
func Mk_chateau_metadata(chateau_id string, wr WorkerRegistration) ChateauMetadata {
	return ChateauMetadata{
		ChateauId:  chateau_id,
		WorkerId:   wr.WorkerId,
		SocketAddr: wr.SocketAddr,
	}
}
