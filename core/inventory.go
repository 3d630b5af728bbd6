package core

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/danpedrabranca/netbox/model"
)

var (
	ErrNotFound      = errors.New("object not found")
	ErrDuplicateID   = errors.New("object already exists")
	ErrBadInput      = errors.New("invalid object")
	ErrAlreadyLinked = errors.New("termination is already linked")
	ErrNotCableable  = errors.New("termination cannot be cabled")
	ErrBadFrontPort  = errors.New("invalid front port mapping")
	ErrEmptyCableEnd = errors.New("cable end has no terminations")
	ErrMixedCableEnd = errors.New("cable end mixes termination types")
)

// TopologyMetrics is the optional gauge hook the inventory drives on
// every mutation. *observability.TraceCollector satisfies it.
type TopologyMetrics interface {
	SetTopologyCounts(cables, paths int)
}

// Inventory is an in-memory, thread-safe topology store implementing
// both Repository and PathStore. All reads taken under one RLock are
// a consistent snapshot, which is what the tracer requires.
type Inventory struct {
	mu sync.RWMutex

	interfaces         map[int64]*model.Interface
	consolePorts       map[int64]*model.ConsolePort
	consoleServerPorts map[int64]*model.ConsoleServerPort
	powerPorts         map[int64]*model.PowerPort
	powerOutlets       map[int64]*model.PowerOutlet
	frontPorts         map[int64]*model.FrontPort
	rearPorts          map[int64]*model.RearPort
	circuitTerms       map[int64]*model.CircuitTermination
	providerNetworks   map[int64]*model.ProviderNetwork
	sites              map[int64]*model.Site

	cables        map[int64]*model.Cable
	wirelessLinks map[int64]*model.WirelessLink

	// cableTermsByCable preserves insertion order per end so fan-out
	// groups resolve deterministically.
	cableTermsByCable map[int64]map[model.CableEnd][]*model.CableTermination
	cableTermByNode   map[PathNode]*model.CableTermination
	frontPortsByRear  map[int64][]*model.FrontPort
	circuitsBySide    map[int64]map[model.CircuitSide]*model.CircuitTermination
	wirelessByIface   map[int64]*model.WirelessLink

	paths        map[int64]*CablePath
	pathByOrigin map[PathNode]int64
	nextPathID   int64

	metrics TopologyMetrics
}

// NewInventory creates an empty topology inventory.
func NewInventory() *Inventory {
	return &Inventory{
		interfaces:         make(map[int64]*model.Interface),
		consolePorts:       make(map[int64]*model.ConsolePort),
		consoleServerPorts: make(map[int64]*model.ConsoleServerPort),
		powerPorts:         make(map[int64]*model.PowerPort),
		powerOutlets:       make(map[int64]*model.PowerOutlet),
		frontPorts:         make(map[int64]*model.FrontPort),
		rearPorts:          make(map[int64]*model.RearPort),
		circuitTerms:       make(map[int64]*model.CircuitTermination),
		providerNetworks:   make(map[int64]*model.ProviderNetwork),
		sites:              make(map[int64]*model.Site),
		cables:             make(map[int64]*model.Cable),
		wirelessLinks:      make(map[int64]*model.WirelessLink),
		cableTermsByCable:  make(map[int64]map[model.CableEnd][]*model.CableTermination),
		cableTermByNode:    make(map[PathNode]*model.CableTermination),
		frontPortsByRear:   make(map[int64][]*model.FrontPort),
		circuitsBySide:     make(map[int64]map[model.CircuitSide]*model.CircuitTermination),
		wirelessByIface:    make(map[int64]*model.WirelessLink),
		paths:              make(map[int64]*CablePath),
		pathByOrigin:       make(map[PathNode]int64),
	}
}

// SetMetricsRecorder wires an optional gauge recorder. Safe to leave
// unset.
func (inv *Inventory) SetMetricsRecorder(m TopologyMetrics) {
	inv.mu.Lock()
	defer inv.mu.Unlock()
	inv.metrics = m
	inv.updateGaugesLocked()
}

//
// ---------- Terminations ----------
//

func (inv *Inventory) AddInterface(iface *model.Interface) error {
	if iface == nil || iface.ID <= 0 {
		return fmt.Errorf("%w: interface", ErrBadInput)
	}
	inv.mu.Lock()
	defer inv.mu.Unlock()
	if _, exists := inv.interfaces[iface.ID]; exists {
		return fmt.Errorf("%w: interface %d", ErrDuplicateID, iface.ID)
	}
	if iface.Kind == "" {
		iface.Kind = model.KindPhysical
	}
	inv.interfaces[iface.ID] = iface
	return nil
}

func (inv *Inventory) AddConsolePort(p *model.ConsolePort) error {
	if p == nil || p.ID <= 0 {
		return fmt.Errorf("%w: console port", ErrBadInput)
	}
	inv.mu.Lock()
	defer inv.mu.Unlock()
	if _, exists := inv.consolePorts[p.ID]; exists {
		return fmt.Errorf("%w: console port %d", ErrDuplicateID, p.ID)
	}
	inv.consolePorts[p.ID] = p
	return nil
}

func (inv *Inventory) AddConsoleServerPort(p *model.ConsoleServerPort) error {
	if p == nil || p.ID <= 0 {
		return fmt.Errorf("%w: console server port", ErrBadInput)
	}
	inv.mu.Lock()
	defer inv.mu.Unlock()
	if _, exists := inv.consoleServerPorts[p.ID]; exists {
		return fmt.Errorf("%w: console server port %d", ErrDuplicateID, p.ID)
	}
	inv.consoleServerPorts[p.ID] = p
	return nil
}

func (inv *Inventory) AddPowerPort(p *model.PowerPort) error {
	if p == nil || p.ID <= 0 {
		return fmt.Errorf("%w: power port", ErrBadInput)
	}
	inv.mu.Lock()
	defer inv.mu.Unlock()
	if _, exists := inv.powerPorts[p.ID]; exists {
		return fmt.Errorf("%w: power port %d", ErrDuplicateID, p.ID)
	}
	inv.powerPorts[p.ID] = p
	return nil
}

func (inv *Inventory) AddPowerOutlet(p *model.PowerOutlet) error {
	if p == nil || p.ID <= 0 {
		return fmt.Errorf("%w: power outlet", ErrBadInput)
	}
	inv.mu.Lock()
	defer inv.mu.Unlock()
	if _, exists := inv.powerOutlets[p.ID]; exists {
		return fmt.Errorf("%w: power outlet %d", ErrDuplicateID, p.ID)
	}
	inv.powerOutlets[p.ID] = p
	return nil
}

func (inv *Inventory) AddRearPort(rp *model.RearPort) error {
	if rp == nil || rp.ID <= 0 {
		return fmt.Errorf("%w: rear port", ErrBadInput)
	}
	if rp.Positions < 1 {
		return fmt.Errorf("%w: rear port %d must have at least 1 position", ErrBadInput, rp.ID)
	}
	inv.mu.Lock()
	defer inv.mu.Unlock()
	if _, exists := inv.rearPorts[rp.ID]; exists {
		return fmt.Errorf("%w: rear port %d", ErrDuplicateID, rp.ID)
	}
	inv.rearPorts[rp.ID] = rp
	return nil
}

func (inv *Inventory) AddFrontPort(fp *model.FrontPort) error {
	if fp == nil || fp.ID <= 0 {
		return fmt.Errorf("%w: front port", ErrBadInput)
	}
	inv.mu.Lock()
	defer inv.mu.Unlock()
	if _, exists := inv.frontPorts[fp.ID]; exists {
		return fmt.Errorf("%w: front port %d", ErrDuplicateID, fp.ID)
	}
	rp, ok := inv.rearPorts[fp.RearPortID]
	if !ok {
		return fmt.Errorf("%w: front port %d references unknown rear port %d", ErrBadFrontPort, fp.ID, fp.RearPortID)
	}
	if fp.RearPortPosition < 1 || fp.RearPortPosition > rp.Positions {
		return fmt.Errorf("%w: front port %d position %d out of range 1..%d",
			ErrBadFrontPort, fp.ID, fp.RearPortPosition, rp.Positions)
	}
	for _, other := range inv.frontPortsByRear[fp.RearPortID] {
		if other.RearPortPosition == fp.RearPortPosition {
			return fmt.Errorf("%w: rear port %d position %d already mapped to front port %d",
				ErrBadFrontPort, fp.RearPortID, fp.RearPortPosition, other.ID)
		}
	}
	inv.frontPorts[fp.ID] = fp
	inv.frontPortsByRear[fp.RearPortID] = append(inv.frontPortsByRear[fp.RearPortID], fp)
	return nil
}

func (inv *Inventory) AddCircuitTermination(ct *model.CircuitTermination) error {
	if ct == nil || ct.ID <= 0 || ct.CircuitID <= 0 {
		return fmt.Errorf("%w: circuit termination", ErrBadInput)
	}
	if ct.Side != model.SideA && ct.Side != model.SideZ {
		return fmt.Errorf("%w: circuit termination %d has side %q", ErrBadInput, ct.ID, ct.Side)
	}
	inv.mu.Lock()
	defer inv.mu.Unlock()
	if _, exists := inv.circuitTerms[ct.ID]; exists {
		return fmt.Errorf("%w: circuit termination %d", ErrDuplicateID, ct.ID)
	}
	sides, ok := inv.circuitsBySide[ct.CircuitID]
	if !ok {
		sides = make(map[model.CircuitSide]*model.CircuitTermination, 2)
		inv.circuitsBySide[ct.CircuitID] = sides
	}
	if _, taken := sides[ct.Side]; taken {
		return fmt.Errorf("%w: circuit %d side %s", ErrDuplicateID, ct.CircuitID, ct.Side)
	}
	inv.circuitTerms[ct.ID] = ct
	sides[ct.Side] = ct
	return nil
}

func (inv *Inventory) AddProviderNetwork(pn *model.ProviderNetwork) error {
	if pn == nil || pn.ID <= 0 {
		return fmt.Errorf("%w: provider network", ErrBadInput)
	}
	inv.mu.Lock()
	defer inv.mu.Unlock()
	if _, exists := inv.providerNetworks[pn.ID]; exists {
		return fmt.Errorf("%w: provider network %d", ErrDuplicateID, pn.ID)
	}
	inv.providerNetworks[pn.ID] = pn
	return nil
}

func (inv *Inventory) AddSite(site *model.Site) error {
	if site == nil || site.ID <= 0 {
		return fmt.Errorf("%w: site", ErrBadInput)
	}
	inv.mu.Lock()
	defer inv.mu.Unlock()
	if _, exists := inv.sites[site.ID]; exists {
		return fmt.Errorf("%w: site %d", ErrDuplicateID, site.ID)
	}
	inv.sites[site.ID] = site
	return nil
}

//
// ---------- Links ----------
//

// AddCable inserts a cable plus its termination join records. Every
// termination may be cabled at most once across the whole topology,
// and all terminations on one end must be of the same type.
func (inv *Inventory) AddCable(cable *model.Cable, aTerms, bTerms []model.Termination) error {
	if cable == nil || cable.ID <= 0 {
		return fmt.Errorf("%w: cable", ErrBadInput)
	}
	if cable.Status == "" {
		cable.Status = model.StatusConnected
	}
	if err := cable.Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrBadInput, err)
	}
	if len(aTerms) == 0 || len(bTerms) == 0 {
		return fmt.Errorf("%w: cable %d", ErrEmptyCableEnd, cable.ID)
	}

	inv.mu.Lock()
	defer inv.mu.Unlock()

	if _, exists := inv.cables[cable.ID]; exists {
		return fmt.Errorf("%w: cable %d", ErrDuplicateID, cable.ID)
	}
	if err := inv.validateCableEndLocked(cable.ID, aTerms); err != nil {
		return err
	}
	if err := inv.validateCableEndLocked(cable.ID, bTerms); err != nil {
		return err
	}

	inv.cables[cable.ID] = cable
	byEnd := map[model.CableEnd][]*model.CableTermination{}
	inv.cableTermsByCable[cable.ID] = byEnd
	for end, terms := range map[model.CableEnd][]model.Termination{model.EndA: aTerms, model.EndB: bTerms} {
		for _, t := range terms {
			ct := &model.CableTermination{
				CableID:         cable.ID,
				End:             end,
				TerminationType: t.ObjectType(),
				TerminationID:   t.ObjectID(),
			}
			byEnd[end] = append(byEnd[end], ct)
			inv.cableTermByNode[EncodeTermination(t)] = ct
		}
	}

	inv.updateGaugesLocked()
	return nil
}

func (inv *Inventory) validateCableEndLocked(cableID int64, terms []model.Termination) error {
	for _, t := range terms {
		if t.ObjectType() != terms[0].ObjectType() {
			return fmt.Errorf("%w: cable %d", ErrMixedCableEnd, cableID)
		}
		stored, err := inv.terminationLocked(t.ObjectType(), t.ObjectID())
		if err != nil {
			return err
		}
		if err := cableableLocked(stored); err != nil {
			return err
		}
		node := EncodeTermination(t)
		if _, taken := inv.cableTermByNode[node]; taken {
			return fmt.Errorf("%w: %s", ErrAlreadyLinked, node)
		}
		if iface, ok := stored.(*model.Interface); ok {
			if _, taken := inv.wirelessByIface[iface.ID]; taken {
				return fmt.Errorf("%w: %s", ErrAlreadyLinked, node)
			}
		}
	}
	return nil
}

func cableableLocked(t model.Termination) error {
	switch v := t.(type) {
	case *model.Interface:
		if !v.Cableable() {
			return fmt.Errorf("%w: %s interface %d", ErrNotCableable, v.Kind, v.ID)
		}
	case *model.CircuitTermination:
		if v.ProviderNetworkID != 0 {
			return fmt.Errorf("%w: circuit termination %d attaches to a provider network", ErrNotCableable, v.ID)
		}
	}
	return nil
}

// AddWirelessLink inserts a wireless link between two wireless
// interfaces. Each interface may carry at most one link of any kind.
func (inv *Inventory) AddWirelessLink(link *model.WirelessLink) error {
	if link == nil || link.ID <= 0 || link.InterfaceAID == link.InterfaceBID {
		return fmt.Errorf("%w: wireless link", ErrBadInput)
	}
	if link.Status == "" {
		link.Status = model.StatusConnected
	}

	inv.mu.Lock()
	defer inv.mu.Unlock()

	if _, exists := inv.wirelessLinks[link.ID]; exists {
		return fmt.Errorf("%w: wireless link %d", ErrDuplicateID, link.ID)
	}
	for _, ifaceID := range []int64{link.InterfaceAID, link.InterfaceBID} {
		iface, ok := inv.interfaces[ifaceID]
		if !ok {
			return fmt.Errorf("%w: interface %d", ErrNotFound, ifaceID)
		}
		if iface.Kind != model.KindWireless {
			return fmt.Errorf("%w: interface %d is not wireless", ErrBadInput, ifaceID)
		}
		node := EncodeTermination(iface)
		if _, taken := inv.wirelessByIface[ifaceID]; taken {
			return fmt.Errorf("%w: %s", ErrAlreadyLinked, node)
		}
		if _, taken := inv.cableTermByNode[node]; taken {
			return fmt.Errorf("%w: %s", ErrAlreadyLinked, node)
		}
	}

	inv.wirelessLinks[link.ID] = link
	inv.wirelessByIface[link.InterfaceAID] = link
	inv.wirelessByIface[link.InterfaceBID] = link
	return nil
}

// RemoveCable deletes a cable and its join records. Stored paths that
// cross the cable are left for the caller to retrace.
func (inv *Inventory) RemoveCable(id int64) error {
	inv.mu.Lock()
	defer inv.mu.Unlock()

	if _, exists := inv.cables[id]; !exists {
		return fmt.Errorf("%w: cable %d", ErrNotFound, id)
	}
	for _, group := range inv.cableTermsByCable[id] {
		for _, ct := range group {
			delete(inv.cableTermByNode, NewPathNode(ct.TerminationType, ct.TerminationID))
		}
	}
	delete(inv.cableTermsByCable, id)
	delete(inv.cables, id)

	inv.updateGaugesLocked()
	return nil
}

// RemoveWirelessLink deletes a wireless link, freeing both interfaces.
func (inv *Inventory) RemoveWirelessLink(id int64) error {
	inv.mu.Lock()
	defer inv.mu.Unlock()

	link, exists := inv.wirelessLinks[id]
	if !exists {
		return fmt.Errorf("%w: wireless link %d", ErrNotFound, id)
	}
	delete(inv.wirelessByIface, link.InterfaceAID)
	delete(inv.wirelessByIface, link.InterfaceBID)
	delete(inv.wirelessLinks, id)
	return nil
}

// SetCableStatus updates a cable's administrative status.
func (inv *Inventory) SetCableStatus(id int64, status model.LinkStatus) error {
	inv.mu.Lock()
	defer inv.mu.Unlock()

	cable, ok := inv.cables[id]
	if !ok {
		return fmt.Errorf("%w: cable %d", ErrNotFound, id)
	}
	switch status {
	case model.StatusConnected, model.StatusPlanned, model.StatusDecommissioning:
	default:
		return fmt.Errorf("%w: status %q", ErrBadInput, status)
	}
	cable.Status = status
	return nil
}

//
// ---------- Repository ----------
//

func (inv *Inventory) Termination(ot model.ObjectType, id int64) (model.Termination, error) {
	inv.mu.RLock()
	defer inv.mu.RUnlock()
	return inv.terminationLocked(ot, id)
}

func (inv *Inventory) terminationLocked(ot model.ObjectType, id int64) (model.Termination, error) {
	var (
		t  model.Termination
		ok bool
	)
	switch ot {
	case model.TypeInterface:
		var v *model.Interface
		v, ok = inv.interfaces[id]
		t = v
	case model.TypeConsolePort:
		var v *model.ConsolePort
		v, ok = inv.consolePorts[id]
		t = v
	case model.TypeConsoleServerPort:
		var v *model.ConsoleServerPort
		v, ok = inv.consoleServerPorts[id]
		t = v
	case model.TypePowerPort:
		var v *model.PowerPort
		v, ok = inv.powerPorts[id]
		t = v
	case model.TypePowerOutlet:
		var v *model.PowerOutlet
		v, ok = inv.powerOutlets[id]
		t = v
	case model.TypeFrontPort:
		var v *model.FrontPort
		v, ok = inv.frontPorts[id]
		t = v
	case model.TypeRearPort:
		var v *model.RearPort
		v, ok = inv.rearPorts[id]
		t = v
	case model.TypeCircuitTermination:
		var v *model.CircuitTermination
		v, ok = inv.circuitTerms[id]
		t = v
	default:
		return nil, fmt.Errorf("%w: %s is not a termination type", ErrBadInput, ot)
	}
	if !ok {
		return nil, fmt.Errorf("%w: %s:%d", ErrNotFound, ot, id)
	}
	return t, nil
}

func (inv *Inventory) LinkFor(t model.Termination) (model.Link, error) {
	inv.mu.RLock()
	defer inv.mu.RUnlock()

	if ct, ok := inv.cableTermByNode[EncodeTermination(t)]; ok {
		cable, found := inv.cables[ct.CableID]
		if !found {
			return nil, fmt.Errorf("%w: cable %d", ErrNotFound, ct.CableID)
		}
		return cable, nil
	}
	if t.ObjectType() == model.TypeInterface {
		if link, ok := inv.wirelessByIface[t.ObjectID()]; ok {
			return link, nil
		}
	}
	return nil, nil
}

func (inv *Inventory) CableEndFor(t model.Termination) (model.CableEnd, error) {
	inv.mu.RLock()
	defer inv.mu.RUnlock()

	ct, ok := inv.cableTermByNode[EncodeTermination(t)]
	if !ok {
		return "", fmt.Errorf("%w: %s is not cabled", ErrNotFound, EncodeTermination(t))
	}
	return ct.End, nil
}

func (inv *Inventory) CableTerminations(cableID int64, end model.CableEnd) ([]model.Termination, error) {
	inv.mu.RLock()
	defer inv.mu.RUnlock()

	group, ok := inv.cableTermsByCable[cableID]
	if !ok {
		return nil, fmt.Errorf("%w: cable %d", ErrNotFound, cableID)
	}
	records := group[end]
	out := make([]model.Termination, 0, len(records))
	for _, ct := range records {
		t, err := inv.terminationLocked(ct.TerminationType, ct.TerminationID)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, nil
}

func (inv *Inventory) RearPorts(ids []int64) ([]*model.RearPort, error) {
	inv.mu.RLock()
	defer inv.mu.RUnlock()

	out := make([]*model.RearPort, 0, len(ids))
	for _, id := range ids {
		if rp, ok := inv.rearPorts[id]; ok {
			out = append(out, rp)
		}
	}
	return out, nil
}

func (inv *Inventory) FrontPorts(rearPortIDs []int64, positions []int) ([]*model.FrontPort, error) {
	inv.mu.RLock()
	defer inv.mu.RUnlock()

	var wanted map[int]struct{}
	if positions != nil {
		wanted = make(map[int]struct{}, len(positions))
		for _, p := range positions {
			wanted[p] = struct{}{}
		}
	}

	var out []*model.FrontPort
	for _, rpID := range rearPortIDs {
		ports := append([]*model.FrontPort(nil), inv.frontPortsByRear[rpID]...)
		sort.Slice(ports, func(i, j int) bool { return ports[i].RearPortPosition < ports[j].RearPortPosition })
		for _, fp := range ports {
			if wanted != nil {
				if _, ok := wanted[fp.RearPortPosition]; !ok {
					continue
				}
			}
			out = append(out, fp)
		}
	}
	return out, nil
}

func (inv *Inventory) OppositeCircuitTermination(ct *model.CircuitTermination) (*model.CircuitTermination, error) {
	if ct == nil {
		return nil, fmt.Errorf("%w: nil circuit termination", ErrBadInput)
	}
	inv.mu.RLock()
	defer inv.mu.RUnlock()

	sides, ok := inv.circuitsBySide[ct.CircuitID]
	if !ok {
		return nil, nil
	}
	return sides[ct.Side.Opposite()], nil
}

func (inv *Inventory) Cables(ids []int64) ([]*model.Cable, error) {
	inv.mu.RLock()
	defer inv.mu.RUnlock()

	out := make([]*model.Cable, 0, len(ids))
	for _, id := range ids {
		if cable, ok := inv.cables[id]; ok {
			out = append(out, cable)
		}
	}
	return out, nil
}

func (inv *Inventory) Objects(ot model.ObjectType, ids []int64) (map[int64]any, error) {
	inv.mu.RLock()
	defer inv.mu.RUnlock()

	out := make(map[int64]any, len(ids))
	for _, id := range ids {
		switch ot {
		case model.TypeCable:
			if cable, ok := inv.cables[id]; ok {
				out[id] = cable
			}
		case model.TypeWirelessLink:
			if link, ok := inv.wirelessLinks[id]; ok {
				out[id] = link
			}
		case model.TypeProviderNetwork:
			if pn, ok := inv.providerNetworks[id]; ok {
				out[id] = pn
			}
		case model.TypeSite:
			if site, ok := inv.sites[id]; ok {
				out[id] = site
			}
		default:
			t, err := inv.terminationLocked(ot, id)
			if err != nil {
				if errors.Is(err, ErrNotFound) {
					continue
				}
				return nil, err
			}
			out[id] = t
		}
	}
	return out, nil
}

//
// ---------- PathStore ----------
//

// SavePath stores the path and repoints the origin back-references in
// the same locked section, so a reader never sees a stored path whose
// origins still reference a stale one.
func (inv *Inventory) SavePath(p *CablePath) error {
	if p == nil || len(p.Path) == 0 || len(p.Path[0]) == 0 {
		return fmt.Errorf("%w: path without origin", ErrBadInput)
	}

	inv.mu.Lock()
	defer inv.mu.Unlock()

	if p.ID == 0 {
		inv.nextPathID++
		p.ID = inv.nextPathID
	}

	// Drop back-references left over from a previous origin set.
	for node, id := range inv.pathByOrigin {
		if id == p.ID {
			delete(inv.pathByOrigin, node)
		}
	}
	inv.paths[p.ID] = p
	for _, node := range p.Path[0] {
		inv.pathByOrigin[node] = p.ID
	}

	inv.updateGaugesLocked()
	return nil
}

func (inv *Inventory) DeletePath(id int64) error {
	inv.mu.Lock()
	defer inv.mu.Unlock()

	if _, ok := inv.paths[id]; !ok {
		return fmt.Errorf("%w: path %d", ErrNotFound, id)
	}
	delete(inv.paths, id)
	for node, pathID := range inv.pathByOrigin {
		if pathID == id {
			delete(inv.pathByOrigin, node)
		}
	}

	inv.updateGaugesLocked()
	return nil
}

func (inv *Inventory) PathFor(t model.Termination) (*CablePath, error) {
	inv.mu.RLock()
	defer inv.mu.RUnlock()

	id, ok := inv.pathByOrigin[EncodeTermination(t)]
	if !ok {
		return nil, nil
	}
	return inv.paths[id], nil
}

// Paths returns all stored paths ordered by ID.
func (inv *Inventory) Paths() []*CablePath {
	inv.mu.RLock()
	defer inv.mu.RUnlock()

	out := make([]*CablePath, 0, len(inv.paths))
	for _, p := range inv.paths {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// PathsThrough returns every stored path whose flattened node list
// contains the given node. Change tracking uses this to find the
// paths to retrace after an entity along them changes.
func (inv *Inventory) PathsThrough(node PathNode) []*CablePath {
	inv.mu.RLock()
	defer inv.mu.RUnlock()

	var out []*CablePath
	for _, p := range inv.paths {
		for _, n := range p.Nodes {
			if n == node {
				out = append(out, p)
				break
			}
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Endpoints returns every termination currently able to originate a
// path (cabled or wireless-linked), in stable node order.
func (inv *Inventory) Endpoints() []model.Termination {
	inv.mu.RLock()
	defer inv.mu.RUnlock()

	nodes := make([]PathNode, 0, len(inv.cableTermByNode)+len(inv.wirelessByIface))
	for node := range inv.cableTermByNode {
		nodes = append(nodes, node)
	}
	for ifaceID := range inv.wirelessByIface {
		nodes = append(nodes, NewPathNode(model.TypeInterface, ifaceID))
	}
	sort.Slice(nodes, func(i, j int) bool { return nodes[i] < nodes[j] })

	out := make([]model.Termination, 0, len(nodes))
	for _, node := range nodes {
		ot, id, err := node.Decode()
		if err != nil {
			continue
		}
		t, err := inv.terminationLocked(ot, id)
		if err != nil {
			continue
		}
		out = append(out, t)
	}
	return out
}

// updateGaugesLocked pushes current counts to the metrics recorder.
// Caller must hold inv.mu.
func (inv *Inventory) updateGaugesLocked() {
	if inv.metrics == nil {
		return
	}
	inv.metrics.SetTopologyCounts(len(inv.cables), len(inv.paths))
}
