// vi: sw=4 ts=4:

package managers

import (
	"context"
	"testing"

	"github.com/tanneberger/aspen/gizmos"
)

func TestChateauRegistryRefreshAndGet(t *testing.T) {
	db := Mk_fake_static_db()
	db.Chateaus = []gizmos.Chateau{
		*gizmos.Mk_chateau("c1", []string{"s1"}, nil),
		*gizmos.Mk_chateau("c2", []string{"s2"}, nil),
	}

	reg := Mk_chateau_registry()
	if _, ok := reg.Get("c1"); ok {
		t.Fatalf("expected an empty registry before Refresh")
	}

	if err := reg.Refresh(context.Background(), db); err != nil {
		t.Fatalf("unexpected error: %s", err)
	}

	c, ok := reg.Get("c1")
	if !ok || c.Id != "c1" {
		t.Fatalf("expected chateau c1 after refresh, got %+v ok=%v", c, ok)
	}
	if len(reg.All()) != 2 {
		t.Fatalf("expected 2 chateaus, got %d", len(reg.All()))
	}
}

func TestChateauRegistryRefreshReplacesWholesale(t *testing.T) {
	db := Mk_fake_static_db()
	db.Chateaus = []gizmos.Chateau{*gizmos.Mk_chateau("c1", nil, nil)}

	reg := Mk_chateau_registry()
	reg.Refresh(context.Background(), db)

	db.Chateaus = []gizmos.Chateau{*gizmos.Mk_chateau("c2", nil, nil)}
	reg.Refresh(context.Background(), db)

	if _, ok := reg.Get("c1"); ok {
		t.Fatalf("expected c1 gone after a refresh that dropped it")
	}
	if _, ok := reg.Get("c2"); !ok {
		t.Fatalf("expected c2 present after refresh")
	}
}
