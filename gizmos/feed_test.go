// vi: sw=4 ts=4:

package gizmos

import (
	"testing"

	gtfsrt "github.com/MobilityData/gtfs-realtime-bindings/golang/gtfs"
	"google.golang.org/protobuf/proto"
)

func TestHeaderTimestampPresent(t *testing.T) {
	msg := &FeedMessage{Header: &gtfsrt.FeedHeader{Timestamp: proto.Uint64(42)}}

	ts, present := Header_timestamp(msg)
	if !present || ts != 42 {
		t.Fatalf("expected (42, true), got (%d, %v)", ts, present)
	}
}

func TestHeaderTimestampAbsent(t *testing.T) {
	cases := []*FeedMessage{
		nil,
		{},
		{Header: &gtfsrt.FeedHeader{}},
	}

	for i, msg := range cases {
		if _, present := Header_timestamp(msg); present {
			t.Fatalf("case %d: expected absent timestamp", i)
		}
	}
}

func TestEntityIdsSkipsNilEntities(t *testing.T) {
	msg := &FeedMessage{
		Entity: []*gtfsrt.FeedEntity{
			{Id: proto.String("a")},
			nil,
			{Id: proto.String("b")},
		},
	}

	ids := Entity_ids(msg)
	if len(ids) != 2 || ids[0] != "a" || ids[1] != "b" {
		t.Fatalf("expected [a b], got %v", ids)
	}
}

func TestEntityIdsNilMessage(t *testing.T) {
	if ids := Entity_ids(nil); ids != nil {
		t.Fatalf("expected nil slice for a nil message, got %v", ids)
	}
}
