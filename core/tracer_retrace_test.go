package core

import (
	"context"
	"testing"

	"github.com/danpedrabranca/netbox/model"
)

func TestRetraceUnchangedTopologyIsIdempotent(t *testing.T) {
	inv := NewInventory()
	a := addInterface(t, inv, 1, 100)
	b := addInterface(t, inv, 2, 200)
	addCable(t, inv, 1, terms(a), terms(b))

	tracer := NewPathTracer(inv, inv)
	path := mustTrace(t, tracer, a)
	if err := inv.SavePath(path); err != nil {
		t.Fatalf("SavePath: %v", err)
	}
	id := path.ID
	before := append([]PathNode(nil), path.Nodes...)

	outcome, err := tracer.Retrace(context.Background(), path)
	if err != nil {
		t.Fatalf("Retrace: %v", err)
	}
	if outcome != RetraceUpdated {
		t.Fatalf("outcome = %s, want %s", outcome, RetraceUpdated)
	}
	if path.ID != id {
		t.Fatalf("path identity changed: %d -> %d", id, path.ID)
	}
	if len(path.Nodes) != len(before) {
		t.Fatalf("node count changed: %d -> %d", len(before), len(path.Nodes))
	}
	for i := range before {
		if path.Nodes[i] != before[i] {
			t.Fatalf("node %d changed: %s -> %s", i, before[i], path.Nodes[i])
		}
	}
	if !path.IsComplete || !path.IsActive {
		t.Fatalf("flags changed: complete=%v active=%v", path.IsComplete, path.IsActive)
	}
}

func TestRetraceReflectsStatusChange(t *testing.T) {
	inv := NewInventory()
	a := addInterface(t, inv, 1, 100)
	b := addInterface(t, inv, 2, 200)
	addCable(t, inv, 1, terms(a), terms(b))

	tracer := NewPathTracer(inv, inv)
	path := mustTrace(t, tracer, a)
	if err := inv.SavePath(path); err != nil {
		t.Fatalf("SavePath: %v", err)
	}
	if !path.IsActive {
		t.Fatal("precondition: path starts active")
	}

	if err := inv.SetCableStatus(1, model.StatusDecommissioning); err != nil {
		t.Fatalf("SetCableStatus: %v", err)
	}
	outcome, err := tracer.Retrace(context.Background(), path)
	if err != nil {
		t.Fatalf("Retrace: %v", err)
	}
	if outcome != RetraceUpdated {
		t.Fatalf("outcome = %s, want %s", outcome, RetraceUpdated)
	}
	if !path.IsComplete {
		t.Fatal("status change must not truncate the path")
	}
	if path.IsActive {
		t.Fatal("decommissioning cable must deactivate the path")
	}

	// Flipping back restores the active flag.
	if err := inv.SetCableStatus(1, model.StatusConnected); err != nil {
		t.Fatalf("SetCableStatus: %v", err)
	}
	if _, err := tracer.Retrace(context.Background(), path); err != nil {
		t.Fatalf("Retrace: %v", err)
	}
	if !path.IsActive {
		t.Fatal("reconnected cable must reactivate the path")
	}
}

func TestRetraceDeletesPathForUnlinkedOrigin(t *testing.T) {
	inv := NewInventory()
	a := addInterface(t, inv, 1, 100)
	b := addInterface(t, inv, 2, 200)
	addCable(t, inv, 1, terms(a), terms(b))

	tracer := NewPathTracer(inv, inv)
	path := mustTrace(t, tracer, a)
	if err := inv.SavePath(path); err != nil {
		t.Fatalf("SavePath: %v", err)
	}

	if err := inv.RemoveCable(1); err != nil {
		t.Fatalf("RemoveCable: %v", err)
	}
	outcome, err := tracer.Retrace(context.Background(), path)
	if err != nil {
		t.Fatalf("Retrace: %v", err)
	}
	if outcome != RetraceDeleted {
		t.Fatalf("outcome = %s, want %s", outcome, RetraceDeleted)
	}
	stored, err := inv.PathFor(a)
	if err != nil {
		t.Fatalf("PathFor: %v", err)
	}
	if stored != nil {
		t.Fatalf("deleted path still resolvable: %v", stored.Nodes)
	}
	if got := len(inv.Paths()); got != 0 {
		t.Fatalf("store still holds %d paths", got)
	}
}

func TestRetraceShortensPathAfterMidpointRemoval(t *testing.T) {
	inv := NewInventory()
	a := addInterface(t, inv, 1, 100)
	b := addInterface(t, inv, 2, 200)
	addRearPort(t, inv, 20, 300, 1)
	fp := addFrontPort(t, inv, 10, 300, 20, 1)
	rp, _ := inv.RearPorts([]int64{20})
	addCable(t, inv, 1, terms(a), terms(fp))
	addCable(t, inv, 2, terms(rp[0]), terms(b))

	tracer := NewPathTracer(inv, inv)
	path := mustTrace(t, tracer, a)
	if err := inv.SavePath(path); err != nil {
		t.Fatalf("SavePath: %v", err)
	}
	if !path.IsComplete {
		t.Fatal("precondition: full path is complete")
	}

	// Removing the second cable leaves the walk dangling at the rear
	// port.
	if err := inv.RemoveCable(2); err != nil {
		t.Fatalf("RemoveCable: %v", err)
	}
	outcome, err := tracer.Retrace(context.Background(), path)
	if err != nil {
		t.Fatalf("Retrace: %v", err)
	}
	if outcome != RetraceUpdated {
		t.Fatalf("outcome = %s, want %s", outcome, RetraceUpdated)
	}
	assertNodes(t, path, "interface:1", "cable:1", "frontport:10", "rearport:20")
	if path.IsComplete || path.IsActive {
		t.Fatalf("truncated path flags: complete=%v active=%v", path.IsComplete, path.IsActive)
	}
}

func TestPathsThroughFindsAffectedPaths(t *testing.T) {
	inv := NewInventory()
	a := addInterface(t, inv, 1, 100)
	b := addInterface(t, inv, 2, 200)
	c := addInterface(t, inv, 3, 300)
	d := addInterface(t, inv, 4, 400)
	addCable(t, inv, 1, terms(a), terms(b))
	addCable(t, inv, 2, terms(c), terms(d))

	tracer := NewPathTracer(inv, inv)
	for _, origin := range []model.Termination{a, b, c, d} {
		p := mustTrace(t, tracer, origin)
		if err := inv.SavePath(p); err != nil {
			t.Fatalf("SavePath: %v", err)
		}
	}

	through := inv.PathsThrough(NewPathNode(model.TypeCable, 1))
	if len(through) != 2 {
		t.Fatalf("PathsThrough(cable:1) returned %d paths, want 2", len(through))
	}
	for _, p := range through {
		if p.Origin()[0] != "interface:1" && p.Origin()[0] != "interface:2" {
			t.Fatalf("unexpected path through cable 1: origin %s", p.Origin()[0])
		}
	}
}
