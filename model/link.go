package model

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Link is implemented by the two physical connection variants, Cable
// and WirelessLink.
type Link interface {
	LinkType() ObjectType
	LinkID() int64
	LinkStatus() LinkStatus
}

// Cable is a physical connection between one or more terminations on
// each of its two ends. Terminations are attached through
// CableTermination join records rather than stored on the cable
// itself, so a single end can fan out (e.g. a breakout trunk).
type Cable struct {
	ID     int64
	Status LinkStatus
	Type   string
	Label  string
	Color  string

	// Length is optional; when set, LengthUnit must also be set.
	Length     *decimal.Decimal
	LengthUnit LengthUnit
}

func (c *Cable) LinkType() ObjectType   { return TypeCable }
func (c *Cable) LinkID() int64          { return c.ID }
func (c *Cable) LinkStatus() LinkStatus { return c.Status }

// AbsLength returns the cable length normalized to meters. The second
// return value is false when no length is recorded.
func (c *Cable) AbsLength() (decimal.Decimal, bool) {
	if c.Length == nil {
		return decimal.Decimal{}, false
	}
	m, err := ToMeters(*c.Length, c.LengthUnit)
	if err != nil {
		return decimal.Decimal{}, false
	}
	return m, true
}

// Validate checks the cable's own field invariants.
func (c *Cable) Validate() error {
	if c.Length != nil && c.LengthUnit == "" {
		return fmt.Errorf("cable %d: a unit must be specified when setting a length", c.ID)
	}
	if c.Length != nil {
		if _, err := ToMeters(*c.Length, c.LengthUnit); err != nil {
			return fmt.Errorf("cable %d: %w", c.ID, err)
		}
	}
	switch c.Status {
	case "", StatusConnected, StatusPlanned, StatusDecommissioning:
	default:
		return fmt.Errorf("cable %d: unknown status %q", c.ID, c.Status)
	}
	return nil
}

// WirelessLink connects exactly two wireless interfaces directly,
// with no join records and no pass-through hops.
type WirelessLink struct {
	ID     int64
	Status LinkStatus

	InterfaceAID int64
	InterfaceBID int64
}

func (w *WirelessLink) LinkType() ObjectType   { return TypeWirelessLink }
func (w *WirelessLink) LinkID() int64          { return w.ID }
func (w *WirelessLink) LinkStatus() LinkStatus { return w.Status }

// CableTermination joins one end of a Cable to a single termination.
// A termination may appear in at most one CableTermination across the
// whole topology; all records sharing a (cable, end) pair form one
// fan-out group and must resolve to the same termination type.
type CableTermination struct {
	CableID int64
	End     CableEnd

	TerminationType ObjectType
	TerminationID   int64
}

func (ct *CableTermination) String() string {
	return fmt.Sprintf("cable %d end %s to %s:%d", ct.CableID, ct.End, ct.TerminationType, ct.TerminationID)
}
