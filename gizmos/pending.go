// vi: sw=4 ts=4:

/*

	Mnemonic:	pending
	Abstract:	PendingChateau -- the C5 work-queue entry. Carries the bit of
				metadata enrichment (C6) needs beyond the bare chateau id: the
				feed that triggered the submission and when.
	Date:		31 July 2026
	Author:		Aspen team
*/

package gizmos

/*
	PendingChateau describes one queued-or-in-flight enrichment job. Two
	submissions for the same ChateauId are coalesced by C5;
	the fields below are informational only -- C6 re-reads C3 fresh when it
	actually runs the job, so a coalesced submission's payload is never
	lost, only its notification is.
*/
type PendingChateau struct {
	ChateauId            string
	RealtimeFeedId       string
	HasVehicles          bool
	HasTrips             bool
	HasAlerts            bool
	VehiclesResponseCode int
	TripsResponseCode    int
	AlertsResponseCode   int
	TimeOfSubmissionMs   uint64
}
