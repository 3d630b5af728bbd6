package core

import "github.com/danpedrabranca/netbox/model"

// Repository is the topology lookup contract the tracer consumes. All
// methods return point-in-time consistent results; the tracer never
// retries a failed lookup itself.
type Repository interface {
	// Termination fetches a termination entity by type tag and ID.
	Termination(ot model.ObjectType, id int64) (model.Termination, error)

	// LinkFor returns the Cable or WirelessLink attached to the
	// termination, or nil when it is unlinked.
	LinkFor(t model.Termination) (model.Link, error)

	// CableEndFor reports which end of its cable the termination is
	// attached to. Only meaningful after LinkFor returned a Cable.
	CableEndFor(t model.Termination) (model.CableEnd, error)

	// CableTerminations returns the terminations attached to one end
	// of a cable, in stable order.
	CableTerminations(cableID int64, end model.CableEnd) ([]model.Termination, error)

	// RearPorts fetches rear ports by ID.
	RearPorts(ids []int64) ([]*model.RearPort, error)

	// FrontPorts returns the front ports on the given rear ports whose
	// position is one of positions, in stable order. A nil positions
	// slice matches every position.
	FrontPorts(rearPortIDs []int64, positions []int) ([]*model.FrontPort, error)

	// OppositeCircuitTermination returns the termination on the other
	// side of the same circuit, or nil when none exists.
	OppositeCircuitTermination(ct *model.CircuitTermination) (*model.CircuitTermination, error)

	// Cables fetches cables by ID, skipping IDs with no cable.
	Cables(ids []int64) ([]*model.Cable, error)

	// Objects batch-fetches entities of one type by ID, keyed by ID.
	// Used to expand a flattened node list with one lookup per type.
	Objects(ot model.ObjectType, ids []int64) (map[int64]any, error)
}

// PathStore persists traced paths. Storing a path and updating the
// back-reference on its origin terminations must happen as one atomic
// unit.
type PathStore interface {
	// SavePath stores the path, assigning an ID when it has none, and
	// points every origin termination's back-reference at it.
	SavePath(p *CablePath) error

	// DeletePath removes a stored path and clears the origin
	// back-references that point at it.
	DeletePath(id int64) error

	// PathFor returns the stored path originating at the termination,
	// or nil when the termination starts no path.
	PathFor(t model.Termination) (*CablePath, error)
}
