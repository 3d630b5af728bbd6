package model

// Termination is implemented by every entity a Cable or WirelessLink
// can attach to. The concrete variants form a closed set, so the
// tracer can match on them exhaustively instead of reflecting over a
// generic foreign key.
type Termination interface {
	ObjectType() ObjectType
	ObjectID() int64

	// Parent identifies the owning object (device or circuit). All
	// members of a fan-out group must share the same parent.
	Parent() (ObjectType, int64)
}

// InterfaceKind distinguishes physical interfaces from virtual ones
// and from radios. Virtual kinds can never be cabled; wireless
// interfaces attach to WirelessLinks rather than Cables.
type InterfaceKind string

const (
	KindPhysical InterfaceKind = "physical"
	KindVirtual  InterfaceKind = "virtual"
	KindLAG      InterfaceKind = "lag"
	KindBridge   InterfaceKind = "bridge"
	KindWireless InterfaceKind = "wireless"
)

// Interface is a network interface on a device.
type Interface struct {
	ID       int64
	DeviceID int64
	Name     string
	Kind     InterfaceKind
}

func (i *Interface) ObjectType() ObjectType      { return TypeInterface }
func (i *Interface) ObjectID() int64             { return i.ID }
func (i *Interface) Parent() (ObjectType, int64) { return TypeDevice, i.DeviceID }

// Cableable reports whether a physical cable may terminate here.
func (i *Interface) Cableable() bool {
	switch i.Kind {
	case KindVirtual, KindLAG, KindBridge, KindWireless:
		return false
	}
	return true
}

// ConsolePort is a console connection on a device.
type ConsolePort struct {
	ID       int64
	DeviceID int64
	Name     string
}

func (p *ConsolePort) ObjectType() ObjectType      { return TypeConsolePort }
func (p *ConsolePort) ObjectID() int64             { return p.ID }
func (p *ConsolePort) Parent() (ObjectType, int64) { return TypeDevice, p.DeviceID }

// ConsoleServerPort is the server-side counterpart of a ConsolePort.
type ConsoleServerPort struct {
	ID       int64
	DeviceID int64
	Name     string
}

func (p *ConsoleServerPort) ObjectType() ObjectType      { return TypeConsoleServerPort }
func (p *ConsoleServerPort) ObjectID() int64             { return p.ID }
func (p *ConsoleServerPort) Parent() (ObjectType, int64) { return TypeDevice, p.DeviceID }

// PowerPort draws power into a device.
type PowerPort struct {
	ID       int64
	DeviceID int64
	Name     string
}

func (p *PowerPort) ObjectType() ObjectType      { return TypePowerPort }
func (p *PowerPort) ObjectID() int64             { return p.ID }
func (p *PowerPort) Parent() (ObjectType, int64) { return TypeDevice, p.DeviceID }

// PowerOutlet supplies power from a device (e.g. a PDU).
type PowerOutlet struct {
	ID       int64
	DeviceID int64
	Name     string
}

func (p *PowerOutlet) ObjectType() ObjectType      { return TypePowerOutlet }
func (p *PowerOutlet) ObjectID() int64             { return p.ID }
func (p *PowerOutlet) Parent() (ObjectType, int64) { return TypeDevice, p.DeviceID }

// FrontPort is the front side of a pass-through (patch panel) pair.
// It maps to exactly one position on its paired RearPort.
type FrontPort struct {
	ID       int64
	DeviceID int64
	Name     string

	RearPortID int64
	// RearPortPosition is the 1-based position on the paired RearPort
	// this front port corresponds to.
	RearPortPosition int
}

func (p *FrontPort) ObjectType() ObjectType      { return TypeFrontPort }
func (p *FrontPort) ObjectID() int64             { return p.ID }
func (p *FrontPort) Parent() (ObjectType, int64) { return TypeDevice, p.DeviceID }

// RearPort is the rear side of a pass-through pair. A rear port with
// more than one position carries several independent signals (e.g. a
// fiber trunk), each mapped to its own FrontPort.
type RearPort struct {
	ID       int64
	DeviceID int64
	Name     string

	// Positions is the number of front-port positions, at least 1.
	Positions int
}

func (p *RearPort) ObjectType() ObjectType      { return TypeRearPort }
func (p *RearPort) ObjectID() int64             { return p.ID }
func (p *RearPort) Parent() (ObjectType, int64) { return TypeDevice, p.DeviceID }

// CircuitTermination is one side (A or Z) of a provider circuit. It
// either hands off to cabled infrastructure, to a ProviderNetwork, or
// to a Site with no further tracked cabling.
type CircuitTermination struct {
	ID        int64
	CircuitID int64
	Side      CircuitSide

	// ProviderNetworkID is non-zero when the circuit hands off to a
	// provider network; such a termination may not be cabled.
	ProviderNetworkID int64
	// SiteID is non-zero when the termination lands at a site.
	SiteID int64
}

func (c *CircuitTermination) ObjectType() ObjectType      { return TypeCircuitTermination }
func (c *CircuitTermination) ObjectID() int64             { return c.ID }
func (c *CircuitTermination) Parent() (ObjectType, int64) { return TypeCircuit, c.CircuitID }

// ProviderNetwork is an endpoint stub for circuits that hand off to a
// provider's infrastructure. It never terminates a cable itself; it
// only appears as the final node of a path.
type ProviderNetwork struct {
	ID   int64
	Name string
}

// Site is an endpoint stub for circuit terminations without tracked
// cabling at the far site.
type Site struct {
	ID   int64
	Name string
}
