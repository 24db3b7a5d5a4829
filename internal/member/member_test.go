package member

import (
	"errors"
	"testing"

	"github.com/crewtide/crewplan/internal/clierr"
)

func TestLookup(t *testing.T) {
	reg := DefaultRegistry()

	m, err := reg.Lookup("jordan")
	if err != nil {
		t.Fatalf("Lookup: %v", err)
	}
	if m.Label != "Jordan" || m.Color != "#722C79" {
		t.Errorf("member: %+v", m)
	}

	_, err = reg.Lookup("ghost")
	var cliErr *clierr.Error
	if !errors.As(err, &cliErr) {
		t.Fatalf("want *clierr.Error, got %v", err)
	}
	if cliErr.Code != clierr.MemberNotFound {
		t.Errorf("code: got %s, want %s", cliErr.Code, clierr.MemberNotFound)
	}
}

func TestIndexFollowsRosterOrder(t *testing.T) {
	reg := DefaultRegistry()

	for i, id := range []string{"christian", "jordan", "crew"} {
		if got := reg.Index(id); got != i {
			t.Errorf("Index(%s): got %d, want %d", id, got, i)
		}
	}
	if got := reg.Index("ghost"); got != -1 {
		t.Errorf("Index(ghost): got %d, want -1", got)
	}
}

func TestLabelFallsBackToID(t *testing.T) {
	reg := DefaultRegistry()

	if got := reg.Label("stale-id"); got != "stale-id" {
		t.Errorf("Label fallback: got %q", got)
	}
	if got := reg.Color("stale-id"); got != "" {
		t.Errorf("Color fallback: got %q", got)
	}
}

func TestMembersReturnsCopy(t *testing.T) {
	reg := DefaultRegistry()

	members := reg.Members()
	members[0].Label = "mutated"

	if fresh := reg.Members(); fresh[0].Label == "mutated" {
		t.Error("Members() must return a defensive copy")
	}
}
