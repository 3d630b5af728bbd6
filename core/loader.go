package core

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"github.com/danpedrabranca/netbox/model"
)

// TopologySummary is a small summary of what a fixture load produced,
// mainly useful for logging from the CLI.
type TopologySummary struct {
	Terminations  int
	Cables        int
	WirelessLinks int
}

// internal fixture shapes, unexported so they can evolve freely.
type topologyFixture struct {
	Interfaces          []interfaceFixture   `json:"interfaces" yaml:"interfaces"`
	ConsolePorts        []portFixture        `json:"console_ports" yaml:"console_ports"`
	ConsoleServerPorts  []portFixture        `json:"console_server_ports" yaml:"console_server_ports"`
	PowerPorts          []portFixture        `json:"power_ports" yaml:"power_ports"`
	PowerOutlets        []portFixture        `json:"power_outlets" yaml:"power_outlets"`
	RearPorts           []rearPortFixture    `json:"rear_ports" yaml:"rear_ports"`
	FrontPorts          []frontPortFixture   `json:"front_ports" yaml:"front_ports"`
	CircuitTerminations []circuitTermFixture `json:"circuit_terminations" yaml:"circuit_terminations"`
	ProviderNetworks    []namedFixture       `json:"provider_networks" yaml:"provider_networks"`
	Sites               []namedFixture       `json:"sites" yaml:"sites"`
	Cables              []cableFixture       `json:"cables" yaml:"cables"`
	WirelessLinks       []wirelessFixture    `json:"wireless_links" yaml:"wireless_links"`
}

type interfaceFixture struct {
	ID     int64  `json:"id" yaml:"id"`
	Device int64  `json:"device" yaml:"device"`
	Name   string `json:"name" yaml:"name"`
	Kind   string `json:"kind" yaml:"kind"` // physical (default), virtual, lag, bridge, wireless
}

type portFixture struct {
	ID     int64  `json:"id" yaml:"id"`
	Device int64  `json:"device" yaml:"device"`
	Name   string `json:"name" yaml:"name"`
}

type rearPortFixture struct {
	ID        int64  `json:"id" yaml:"id"`
	Device    int64  `json:"device" yaml:"device"`
	Name      string `json:"name" yaml:"name"`
	Positions int    `json:"positions" yaml:"positions"`
}

type frontPortFixture struct {
	ID       int64  `json:"id" yaml:"id"`
	Device   int64  `json:"device" yaml:"device"`
	Name     string `json:"name" yaml:"name"`
	RearPort int64  `json:"rear_port" yaml:"rear_port"`
	Position int    `json:"position" yaml:"position"`
}

type circuitTermFixture struct {
	ID              int64  `json:"id" yaml:"id"`
	Circuit         int64  `json:"circuit" yaml:"circuit"`
	Side            string `json:"side" yaml:"side"` // A or Z
	ProviderNetwork int64  `json:"provider_network" yaml:"provider_network"`
	Site            int64  `json:"site" yaml:"site"`
}

type namedFixture struct {
	ID   int64  `json:"id" yaml:"id"`
	Name string `json:"name" yaml:"name"`
}

type cableFixture struct {
	ID         int64    `json:"id" yaml:"id"`
	Status     string   `json:"status" yaml:"status"`
	Type       string   `json:"type" yaml:"type"`
	Label      string   `json:"label" yaml:"label"`
	Color      string   `json:"color" yaml:"color"`
	Length     string   `json:"length" yaml:"length"`
	LengthUnit string   `json:"length_unit" yaml:"length_unit"`
	A          []string `json:"a" yaml:"a"` // termination refs, "type:id"
	B          []string `json:"b" yaml:"b"`
}

type wirelessFixture struct {
	ID         int64  `json:"id" yaml:"id"`
	Status     string `json:"status" yaml:"status"`
	InterfaceA int64  `json:"interface_a" yaml:"interface_a"`
	InterfaceB int64  `json:"interface_b" yaml:"interface_b"`
}

// LoadTopologyFile loads a topology fixture into the inventory,
// picking the decoder from the file extension (.json, or YAML for
// anything else).
func LoadTopologyFile(inv *Inventory, path string) (*TopologySummary, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open topology %q: %w", path, err)
	}
	defer f.Close()

	format := "yaml"
	if strings.EqualFold(filepath.Ext(path), ".json") {
		format = "json"
	}
	return LoadTopology(inv, f, format)
}

// LoadTopology reads a topology fixture from r ("json" or "yaml") and
// populates the inventory. Structural and invariant violations fail
// the load; nothing is rolled back, so load into a fresh inventory.
func LoadTopology(inv *Inventory, r io.Reader, format string) (*TopologySummary, error) {
	if inv == nil {
		return nil, fmt.Errorf("LoadTopology: inventory is nil")
	}

	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("LoadTopology: read failed: %w", err)
	}

	var fixture topologyFixture
	switch strings.ToLower(format) {
	case "json":
		if err := json.Unmarshal(raw, &fixture); err != nil {
			return nil, fmt.Errorf("LoadTopology: decode failed: %w", err)
		}
	case "yaml", "yml", "":
		if err := yaml.Unmarshal(raw, &fixture); err != nil {
			return nil, fmt.Errorf("LoadTopology: decode failed: %w", err)
		}
	default:
		return nil, fmt.Errorf("LoadTopology: unsupported format %q", format)
	}

	summary := &TopologySummary{}

	for _, pn := range fixture.ProviderNetworks {
		if err := inv.AddProviderNetwork(&model.ProviderNetwork{ID: pn.ID, Name: pn.Name}); err != nil {
			return nil, err
		}
	}
	for _, s := range fixture.Sites {
		if err := inv.AddSite(&model.Site{ID: s.ID, Name: s.Name}); err != nil {
			return nil, err
		}
	}

	for _, f := range fixture.Interfaces {
		iface := &model.Interface{ID: f.ID, DeviceID: f.Device, Name: f.Name, Kind: model.InterfaceKind(f.Kind)}
		if f.Kind == "" {
			iface.Kind = model.KindPhysical
		}
		if err := inv.AddInterface(iface); err != nil {
			return nil, err
		}
		summary.Terminations++
	}
	for _, f := range fixture.ConsolePorts {
		if err := inv.AddConsolePort(&model.ConsolePort{ID: f.ID, DeviceID: f.Device, Name: f.Name}); err != nil {
			return nil, err
		}
		summary.Terminations++
	}
	for _, f := range fixture.ConsoleServerPorts {
		if err := inv.AddConsoleServerPort(&model.ConsoleServerPort{ID: f.ID, DeviceID: f.Device, Name: f.Name}); err != nil {
			return nil, err
		}
		summary.Terminations++
	}
	for _, f := range fixture.PowerPorts {
		if err := inv.AddPowerPort(&model.PowerPort{ID: f.ID, DeviceID: f.Device, Name: f.Name}); err != nil {
			return nil, err
		}
		summary.Terminations++
	}
	for _, f := range fixture.PowerOutlets {
		if err := inv.AddPowerOutlet(&model.PowerOutlet{ID: f.ID, DeviceID: f.Device, Name: f.Name}); err != nil {
			return nil, err
		}
		summary.Terminations++
	}
	for _, f := range fixture.RearPorts {
		positions := f.Positions
		if positions == 0 {
			positions = 1
		}
		if err := inv.AddRearPort(&model.RearPort{ID: f.ID, DeviceID: f.Device, Name: f.Name, Positions: positions}); err != nil {
			return nil, err
		}
		summary.Terminations++
	}
	for _, f := range fixture.FrontPorts {
		position := f.Position
		if position == 0 {
			position = 1
		}
		fp := &model.FrontPort{ID: f.ID, DeviceID: f.Device, Name: f.Name, RearPortID: f.RearPort, RearPortPosition: position}
		if err := inv.AddFrontPort(fp); err != nil {
			return nil, err
		}
		summary.Terminations++
	}
	for _, f := range fixture.CircuitTerminations {
		ct := &model.CircuitTermination{
			ID:                f.ID,
			CircuitID:         f.Circuit,
			Side:              model.CircuitSide(strings.ToUpper(f.Side)),
			ProviderNetworkID: f.ProviderNetwork,
			SiteID:            f.Site,
		}
		if err := inv.AddCircuitTermination(ct); err != nil {
			return nil, err
		}
		summary.Terminations++
	}

	for _, f := range fixture.Cables {
		cable := &model.Cable{
			ID:     f.ID,
			Status: model.LinkStatus(f.Status),
			Type:   f.Type,
			Label:  f.Label,
			Color:  f.Color,
		}
		if f.Length != "" {
			length, err := decimal.NewFromString(f.Length)
			if err != nil {
				return nil, fmt.Errorf("cable %d: bad length %q: %w", f.ID, f.Length, err)
			}
			cable.Length = &length
			cable.LengthUnit = model.LengthUnit(f.LengthUnit)
		}
		aTerms, err := resolveRefs(inv, f.A)
		if err != nil {
			return nil, fmt.Errorf("cable %d end A: %w", f.ID, err)
		}
		bTerms, err := resolveRefs(inv, f.B)
		if err != nil {
			return nil, fmt.Errorf("cable %d end B: %w", f.ID, err)
		}
		if err := inv.AddCable(cable, aTerms, bTerms); err != nil {
			return nil, err
		}
		summary.Cables++
	}

	for _, f := range fixture.WirelessLinks {
		link := &model.WirelessLink{
			ID:           f.ID,
			Status:       model.LinkStatus(f.Status),
			InterfaceAID: f.InterfaceA,
			InterfaceBID: f.InterfaceB,
		}
		if err := inv.AddWirelessLink(link); err != nil {
			return nil, err
		}
		summary.WirelessLinks++
	}

	return summary, nil
}

// resolveRefs maps "type:id" termination references to live entities.
func resolveRefs(inv *Inventory, refs []string) ([]model.Termination, error) {
	out := make([]model.Termination, 0, len(refs))
	for _, ref := range refs {
		ot, id, err := PathNode(ref).Decode()
		if err != nil {
			return nil, err
		}
		t, err := inv.Termination(ot, id)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, nil
}
