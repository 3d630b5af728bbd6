package model

// ObjectType tags every entity kind that can appear in a cable path.
// The tag doubles as the type half of an encoded path node, so values
// must be stable and unique across all entity kinds.
type ObjectType string

const (
	TypeInterface          ObjectType = "interface"
	TypeConsolePort        ObjectType = "consoleport"
	TypeConsoleServerPort  ObjectType = "consoleserverport"
	TypePowerPort          ObjectType = "powerport"
	TypePowerOutlet        ObjectType = "poweroutlet"
	TypeFrontPort          ObjectType = "frontport"
	TypeRearPort           ObjectType = "rearport"
	TypeCircuitTermination ObjectType = "circuittermination"

	TypeCable        ObjectType = "cable"
	TypeWirelessLink ObjectType = "wirelesslink"

	TypeProviderNetwork ObjectType = "providernetwork"
	TypeSite            ObjectType = "site"

	TypeDevice  ObjectType = "device"
	TypeCircuit ObjectType = "circuit"
)

// LinkStatus is the administrative status of a Cable or WirelessLink.
// Anything other than StatusConnected marks the segment, and therefore
// any path crossing it, as inactive.
type LinkStatus string

const (
	StatusConnected       LinkStatus = "connected"
	StatusPlanned         LinkStatus = "planned"
	StatusDecommissioning LinkStatus = "decommissioning"
)

// CableEnd identifies which side of a cable a termination attaches to.
type CableEnd string

const (
	EndA CableEnd = "A"
	EndB CableEnd = "B"
)

// Opposite returns the other end of the cable.
func (e CableEnd) Opposite() CableEnd {
	if e == EndA {
		return EndB
	}
	return EndA
}

// CircuitSide identifies the A or Z side of a circuit.
type CircuitSide string

const (
	SideA CircuitSide = "A"
	SideZ CircuitSide = "Z"
)

// Opposite returns the other side of the circuit.
func (s CircuitSide) Opposite() CircuitSide {
	if s == SideA {
		return SideZ
	}
	return SideA
}
