package core

import (
	"errors"
	"testing"

	"github.com/danpedrabranca/netbox/model"
)

func TestPathNodeRoundTrip(t *testing.T) {
	cases := []struct {
		ot model.ObjectType
		id int64
	}{
		{model.TypeInterface, 1},
		{model.TypeRearPort, 42},
		{model.TypeCircuitTermination, 9000},
		{model.TypeCable, 7},
	}
	for _, tc := range cases {
		node := NewPathNode(tc.ot, tc.id)
		ot, id, err := node.Decode()
		if err != nil {
			t.Fatalf("Decode(%s): %v", node, err)
		}
		if ot != tc.ot || id != tc.id {
			t.Fatalf("Decode(%s) = (%s, %d), want (%s, %d)", node, ot, id, tc.ot, tc.id)
		}
	}
}

func TestPathNodeEncodeTermination(t *testing.T) {
	iface := &model.Interface{ID: 12, DeviceID: 1}
	if got := EncodeTermination(iface); got != PathNode("interface:12") {
		t.Fatalf("EncodeTermination = %s", got)
	}
	cable := &model.Cable{ID: 3}
	if got := EncodeLink(cable); got != PathNode("cable:3") {
		t.Fatalf("EncodeLink = %s", got)
	}
}

func TestPathNodeDecodeRejectsMalformed(t *testing.T) {
	for _, raw := range []string{
		"",
		"interface",
		"interface:",
		":12",
		"interface:zero",
		"interface:0",
		"interface:-4",
	} {
		if _, _, err := PathNode(raw).Decode(); !errors.Is(err, ErrBadPathNode) {
			t.Fatalf("Decode(%q) err = %v, want ErrBadPathNode", raw, err)
		}
	}
}

func TestFlattenPathPreservesOrder(t *testing.T) {
	path := []HopGroup{
		{"interface:1"},
		{"cable:1"},
		{"frontport:1", "frontport:2"},
		{"rearport:1"},
	}
	nodes := FlattenPath(path)
	want := []PathNode{"interface:1", "cable:1", "frontport:1", "frontport:2", "rearport:1"}
	if len(nodes) != len(want) {
		t.Fatalf("FlattenPath returned %d nodes, want %d", len(nodes), len(want))
	}
	for i := range want {
		if nodes[i] != want[i] {
			t.Fatalf("node %d = %s, want %s", i, nodes[i], want[i])
		}
	}
}

func TestFlattenPathEmpty(t *testing.T) {
	if nodes := FlattenPath(nil); len(nodes) != 0 {
		t.Fatalf("FlattenPath(nil) = %v, want empty", nodes)
	}
}
