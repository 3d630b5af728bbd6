package core

import (
	"errors"
	"testing"

	"github.com/danpedrabranca/netbox/model"
)

func TestAddDuplicateIDs(t *testing.T) {
	inv := NewInventory()
	addInterface(t, inv, 1, 100)
	if err := inv.AddInterface(&model.Interface{ID: 1, DeviceID: 100}); !errors.Is(err, ErrDuplicateID) {
		t.Fatalf("err = %v, want ErrDuplicateID", err)
	}
	addRearPort(t, inv, 20, 300, 1)
	if err := inv.AddRearPort(&model.RearPort{ID: 20, DeviceID: 300, Positions: 1}); !errors.Is(err, ErrDuplicateID) {
		t.Fatalf("err = %v, want ErrDuplicateID", err)
	}
}

func TestAddRearPortRequiresPositions(t *testing.T) {
	inv := NewInventory()
	if err := inv.AddRearPort(&model.RearPort{ID: 20, DeviceID: 300, Positions: 0}); !errors.Is(err, ErrBadInput) {
		t.Fatalf("err = %v, want ErrBadInput", err)
	}
}

func TestAddFrontPortValidation(t *testing.T) {
	inv := NewInventory()
	addRearPort(t, inv, 20, 300, 2)

	// Unknown rear port.
	err := inv.AddFrontPort(&model.FrontPort{ID: 10, DeviceID: 300, RearPortID: 99, RearPortPosition: 1})
	if !errors.Is(err, ErrBadFrontPort) {
		t.Fatalf("unknown rear port err = %v, want ErrBadFrontPort", err)
	}

	// Position out of range.
	err = inv.AddFrontPort(&model.FrontPort{ID: 10, DeviceID: 300, RearPortID: 20, RearPortPosition: 3})
	if !errors.Is(err, ErrBadFrontPort) {
		t.Fatalf("out-of-range position err = %v, want ErrBadFrontPort", err)
	}

	// Same position mapped twice.
	addFrontPort(t, inv, 10, 300, 20, 1)
	err = inv.AddFrontPort(&model.FrontPort{ID: 11, DeviceID: 300, RearPortID: 20, RearPortPosition: 1})
	if !errors.Is(err, ErrBadFrontPort) {
		t.Fatalf("duplicate position err = %v, want ErrBadFrontPort", err)
	}
}

func TestAddCircuitTerminationValidation(t *testing.T) {
	inv := NewInventory()
	if err := inv.AddCircuitTermination(&model.CircuitTermination{ID: 1, CircuitID: 5, Side: "Q"}); !errors.Is(err, ErrBadInput) {
		t.Fatalf("bad side err = %v, want ErrBadInput", err)
	}
	addCircuitTermination(t, inv, 1, 5, model.SideA)
	if err := inv.AddCircuitTermination(&model.CircuitTermination{ID: 2, CircuitID: 5, Side: model.SideA}); !errors.Is(err, ErrDuplicateID) {
		t.Fatalf("taken side err = %v, want ErrDuplicateID", err)
	}
}

func TestAddCableRejectsDoubleCabling(t *testing.T) {
	inv := NewInventory()
	a := addInterface(t, inv, 1, 100)
	b := addInterface(t, inv, 2, 200)
	c := addInterface(t, inv, 3, 300)
	addCable(t, inv, 1, terms(a), terms(b))

	cable := &model.Cable{ID: 2}
	if err := inv.AddCable(cable, terms(a), terms(c)); !errors.Is(err, ErrAlreadyLinked) {
		t.Fatalf("err = %v, want ErrAlreadyLinked", err)
	}
}

func TestAddCableRejectsVirtualInterface(t *testing.T) {
	inv := NewInventory()
	virt := &model.Interface{ID: 1, DeviceID: 100, Kind: model.KindVirtual}
	if err := inv.AddInterface(virt); err != nil {
		t.Fatalf("AddInterface: %v", err)
	}
	b := addInterface(t, inv, 2, 200)

	if err := inv.AddCable(&model.Cable{ID: 1}, terms(virt), terms(b)); !errors.Is(err, ErrNotCableable) {
		t.Fatalf("err = %v, want ErrNotCableable", err)
	}
}

func TestAddCableRejectsProviderNetworkTermination(t *testing.T) {
	inv := NewInventory()
	ct := &model.CircuitTermination{ID: 1, CircuitID: 5, Side: model.SideA, ProviderNetworkID: 7}
	if err := inv.AddCircuitTermination(ct); err != nil {
		t.Fatalf("AddCircuitTermination: %v", err)
	}
	b := addInterface(t, inv, 2, 200)

	if err := inv.AddCable(&model.Cable{ID: 1}, terms(ct), terms(b)); !errors.Is(err, ErrNotCableable) {
		t.Fatalf("err = %v, want ErrNotCableable", err)
	}
}

func TestAddCableRejectsMixedEnd(t *testing.T) {
	inv := NewInventory()
	a := addInterface(t, inv, 1, 100)
	cp := &model.ConsolePort{ID: 2, DeviceID: 100}
	if err := inv.AddConsolePort(cp); err != nil {
		t.Fatalf("AddConsolePort: %v", err)
	}
	b := addInterface(t, inv, 3, 200)

	if err := inv.AddCable(&model.Cable{ID: 1}, terms(a, cp), terms(b)); !errors.Is(err, ErrMixedCableEnd) {
		t.Fatalf("err = %v, want ErrMixedCableEnd", err)
	}
}

func TestAddCableRejectsEmptyEnd(t *testing.T) {
	inv := NewInventory()
	a := addInterface(t, inv, 1, 100)
	if err := inv.AddCable(&model.Cable{ID: 1}, terms(a), nil); !errors.Is(err, ErrEmptyCableEnd) {
		t.Fatalf("err = %v, want ErrEmptyCableEnd", err)
	}
}

func TestAddWirelessLinkValidation(t *testing.T) {
	inv := NewInventory()
	addWirelessInterface(t, inv, 1, 100)
	addWirelessInterface(t, inv, 2, 200)
	addInterface(t, inv, 3, 300)

	if err := inv.AddWirelessLink(&model.WirelessLink{ID: 1, InterfaceAID: 1, InterfaceBID: 1}); !errors.Is(err, ErrBadInput) {
		t.Fatalf("self link err = %v, want ErrBadInput", err)
	}
	if err := inv.AddWirelessLink(&model.WirelessLink{ID: 1, InterfaceAID: 1, InterfaceBID: 3}); !errors.Is(err, ErrBadInput) {
		t.Fatalf("non-wireless err = %v, want ErrBadInput", err)
	}

	if err := inv.AddWirelessLink(&model.WirelessLink{ID: 1, InterfaceAID: 1, InterfaceBID: 2}); err != nil {
		t.Fatalf("AddWirelessLink: %v", err)
	}
	addWirelessInterface(t, inv, 4, 400)
	if err := inv.AddWirelessLink(&model.WirelessLink{ID: 2, InterfaceAID: 1, InterfaceBID: 4}); !errors.Is(err, ErrAlreadyLinked) {
		t.Fatalf("double link err = %v, want ErrAlreadyLinked", err)
	}
}

func TestRemoveCableFreesTerminations(t *testing.T) {
	inv := NewInventory()
	a := addInterface(t, inv, 1, 100)
	b := addInterface(t, inv, 2, 200)
	addCable(t, inv, 1, terms(a), terms(b))

	if err := inv.RemoveCable(1); err != nil {
		t.Fatalf("RemoveCable: %v", err)
	}
	if err := inv.RemoveCable(1); !errors.Is(err, ErrNotFound) {
		t.Fatalf("second remove err = %v, want ErrNotFound", err)
	}

	// The freed terminations can be cabled again.
	addCable(t, inv, 2, terms(a), terms(b))
	link, err := inv.LinkFor(a)
	if err != nil {
		t.Fatalf("LinkFor: %v", err)
	}
	if link == nil || link.LinkID() != 2 {
		t.Fatalf("LinkFor after recable = %v", link)
	}
}

func TestSetCableStatusValidation(t *testing.T) {
	inv := NewInventory()
	a := addInterface(t, inv, 1, 100)
	b := addInterface(t, inv, 2, 200)
	addCable(t, inv, 1, terms(a), terms(b))

	if err := inv.SetCableStatus(1, "severed"); !errors.Is(err, ErrBadInput) {
		t.Fatalf("bad status err = %v, want ErrBadInput", err)
	}
	if err := inv.SetCableStatus(99, model.StatusPlanned); !errors.Is(err, ErrNotFound) {
		t.Fatalf("missing cable err = %v, want ErrNotFound", err)
	}
	if err := inv.SetCableStatus(1, model.StatusPlanned); err != nil {
		t.Fatalf("SetCableStatus: %v", err)
	}
}

func TestTerminationLookup(t *testing.T) {
	inv := NewInventory()
	addInterface(t, inv, 1, 100)

	got, err := inv.Termination(model.TypeInterface, 1)
	if err != nil {
		t.Fatalf("Termination: %v", err)
	}
	if got.ObjectID() != 1 || got.ObjectType() != model.TypeInterface {
		t.Fatalf("Termination = %v", got)
	}

	if _, err := inv.Termination(model.TypeInterface, 99); !errors.Is(err, ErrNotFound) {
		t.Fatalf("missing err = %v, want ErrNotFound", err)
	}
	if _, err := inv.Termination(model.TypeCable, 1); !errors.Is(err, ErrBadInput) {
		t.Fatalf("non-termination type err = %v, want ErrBadInput", err)
	}
}

func TestEndpointsStableOrder(t *testing.T) {
	inv := NewInventory()
	a := addInterface(t, inv, 1, 100)
	b := addInterface(t, inv, 2, 200)
	addWirelessInterface(t, inv, 3, 300)
	addWirelessInterface(t, inv, 4, 400)
	addCable(t, inv, 1, terms(a), terms(b))
	if err := inv.AddWirelessLink(&model.WirelessLink{ID: 1, InterfaceAID: 3, InterfaceBID: 4}); err != nil {
		t.Fatalf("AddWirelessLink: %v", err)
	}

	endpoints := inv.Endpoints()
	if len(endpoints) != 4 {
		t.Fatalf("Endpoints returned %d terminations, want 4", len(endpoints))
	}
	for i := 1; i < len(endpoints); i++ {
		prev := EncodeTermination(endpoints[i-1])
		cur := EncodeTermination(endpoints[i])
		if cur < prev {
			t.Fatalf("endpoints out of order: %s before %s", prev, cur)
		}
	}
}

func TestSavePathMovesOriginReference(t *testing.T) {
	inv := NewInventory()
	a := addInterface(t, inv, 1, 100)
	b := addInterface(t, inv, 2, 200)
	addCable(t, inv, 1, terms(a), terms(b))

	path := mustTrace(t, NewPathTracer(inv, inv), a)
	if err := inv.SavePath(path); err != nil {
		t.Fatalf("SavePath: %v", err)
	}

	stored, err := inv.PathFor(a)
	if err != nil {
		t.Fatalf("PathFor: %v", err)
	}
	if stored == nil || stored.ID != path.ID {
		t.Fatalf("PathFor = %v, want path %d", stored, path.ID)
	}

	// Re-saving under a different origin group drops the old reference.
	path.Path[0] = HopGroup{EncodeTermination(b)}
	path.refreshNodes()
	if err := inv.SavePath(path); err != nil {
		t.Fatalf("SavePath: %v", err)
	}
	if p, _ := inv.PathFor(a); p != nil {
		t.Fatalf("stale origin still resolves: %v", p.Nodes)
	}
	if p, _ := inv.PathFor(b); p == nil || p.ID != path.ID {
		t.Fatalf("new origin does not resolve")
	}
}

func TestSavePathRejectsEmptyPath(t *testing.T) {
	inv := NewInventory()
	if err := inv.SavePath(&CablePath{}); !errors.Is(err, ErrBadInput) {
		t.Fatalf("err = %v, want ErrBadInput", err)
	}
}
