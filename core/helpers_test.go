package core

import (
	"context"
	"testing"

	"github.com/danpedrabranca/netbox/model"
)

// Topology builder helpers shared across the tracer tests. IDs are
// caller-chosen so test cases read as literal topologies.

func addInterface(t *testing.T, inv *Inventory, id, device int64) *model.Interface {
	t.Helper()
	iface := &model.Interface{ID: id, DeviceID: device, Name: "eth"}
	if err := inv.AddInterface(iface); err != nil {
		t.Fatalf("AddInterface(%d): %v", id, err)
	}
	return iface
}

func addWirelessInterface(t *testing.T, inv *Inventory, id, device int64) *model.Interface {
	t.Helper()
	iface := &model.Interface{ID: id, DeviceID: device, Name: "radio", Kind: model.KindWireless}
	if err := inv.AddInterface(iface); err != nil {
		t.Fatalf("AddInterface(%d): %v", id, err)
	}
	return iface
}

func addRearPort(t *testing.T, inv *Inventory, id, device int64, positions int) *model.RearPort {
	t.Helper()
	rp := &model.RearPort{ID: id, DeviceID: device, Name: "rear", Positions: positions}
	if err := inv.AddRearPort(rp); err != nil {
		t.Fatalf("AddRearPort(%d): %v", id, err)
	}
	return rp
}

func addFrontPort(t *testing.T, inv *Inventory, id, device, rearPort int64, position int) *model.FrontPort {
	t.Helper()
	fp := &model.FrontPort{ID: id, DeviceID: device, Name: "front", RearPortID: rearPort, RearPortPosition: position}
	if err := inv.AddFrontPort(fp); err != nil {
		t.Fatalf("AddFrontPort(%d): %v", id, err)
	}
	return fp
}

func addCircuitTermination(t *testing.T, inv *Inventory, id, circuit int64, side model.CircuitSide) *model.CircuitTermination {
	t.Helper()
	ct := &model.CircuitTermination{ID: id, CircuitID: circuit, Side: side}
	if err := inv.AddCircuitTermination(ct); err != nil {
		t.Fatalf("AddCircuitTermination(%d): %v", id, err)
	}
	return ct
}

func addCable(t *testing.T, inv *Inventory, id int64, a, b []model.Termination) *model.Cable {
	t.Helper()
	cable := &model.Cable{ID: id}
	if err := inv.AddCable(cable, a, b); err != nil {
		t.Fatalf("AddCable(%d): %v", id, err)
	}
	return cable
}

func terms(ts ...model.Termination) []model.Termination {
	return ts
}

func mustTrace(t *testing.T, tracer *PathTracer, origins ...model.Termination) *CablePath {
	t.Helper()
	path, err := tracer.Trace(context.Background(), origins)
	if err != nil {
		t.Fatalf("Trace: %v", err)
	}
	if path == nil {
		t.Fatalf("Trace returned no path for %s", EncodeTermination(origins[0]))
	}
	return path
}

func assertNodes(t *testing.T, path *CablePath, want ...PathNode) {
	t.Helper()
	if len(path.Nodes) != len(want) {
		t.Fatalf("path has %d nodes, want %d: %v", len(path.Nodes), len(want), path.Nodes)
	}
	for i, node := range want {
		if path.Nodes[i] != node {
			t.Fatalf("node %d = %s, want %s (full path: %v)", i, path.Nodes[i], node, path.Nodes)
		}
	}
}
