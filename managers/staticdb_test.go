// vi: sw=4 ts=4:

package managers

import (
	"testing"

	"github.com/tanneberger/aspen/gizmos"
)

func TestParseRtKind(t *testing.T) {
	cases := map[string]gizmos.RtKind{
		"trip_updates":     gizmos.TripUpdates,
		"alerts":           gizmos.Alerts,
		"vehicle_positions": gizmos.VehiclePositions,
		"":                  gizmos.VehiclePositions,
		"garbage":           gizmos.VehiclePositions,
	}

	for in, want := range cases {
		if got := parse_rt_kind(in); got != want {
			t.Fatalf("parse_rt_kind(%q) = %v, want %v", in, got, want)
		}
	}
}
