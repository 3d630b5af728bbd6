package core

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/danpedrabranca/netbox/model"
)

// CablePath is the materialized result of a trace: the ordered hop
// groups from an origin termination set to wherever the walk stopped,
// plus classification flags.
//
// For the topology
//
//	Interface A --- Front Port A | Rear Port A --- Rear Port B | Front Port B --- Interface B
//	             1                              2                              3
//
// the path reads
//
//	[[Interface A] [Cable 1] [Front Port A] [Rear Port A] [Cable 2] [Rear Port B] [Front Port B] [Cable 3] [Interface B]]
//
// Hop groups strictly alternate between termination sets and
// single-link sets, starting with a termination set. Nodes always
// equals the in-order concatenation of the hop groups.
type CablePath struct {
	ID int64

	Path []HopGroup

	// IsComplete is true when the walk reached a genuine terminal
	// object rather than halting early.
	IsComplete bool
	// IsActive is true only for complete paths whose every cable has
	// status "connected".
	IsActive bool
	// IsSplit is true when the walk stopped at a multi-position rear
	// port with no position context to pick a front port.
	IsSplit bool

	// Nodes is the flattened node sequence, maintained alongside Path
	// for indexed membership queries.
	Nodes []PathNode
}

func (p *CablePath) String() string {
	status := ""
	switch {
	case p.IsActive:
		status = " (active)"
	case p.IsSplit:
		status = " (split)"
	}
	return fmt.Sprintf("path #%d: %d nodes%s", p.ID, len(p.Nodes), status)
}

// Origin returns the first hop group, the termination set the path
// was traced from.
func (p *CablePath) Origin() HopGroup {
	if len(p.Path) == 0 {
		return nil
	}
	return p.Path[0]
}

// SegmentCount is the number of links crossed by the path.
func (p *CablePath) SegmentCount() int {
	return len(p.Path) / 3
}

// refreshNodes recomputes the flattened node list from the hop
// groups. Called whenever Path is (re)assigned.
func (p *CablePath) refreshNodes() {
	p.Nodes = FlattenPath(p.Path)
}

// Origins resolves the origin hop group to live termination entities.
func (p *CablePath) Origins(repo Repository) ([]model.Termination, error) {
	return decodeTerminations(repo, p.Origin())
}

// Destinations resolves the final hop group to live termination
// entities. A path that is not complete has no destinations.
func (p *CablePath) Destinations(repo Repository) ([]model.Termination, error) {
	if !p.IsComplete || len(p.Path) == 0 {
		return nil, nil
	}
	return decodeTerminations(repo, p.Path[len(p.Path)-1])
}

// CableIDs returns the ID of every cable in the path, in path order.
func (p *CablePath) CableIDs() []int64 {
	var ids []int64
	for _, node := range p.Nodes {
		ot, id, err := node.Decode()
		if err != nil {
			continue
		}
		if ot == model.TypeCable {
			ids = append(ids, id)
		}
	}
	return ids
}

// TotalLength sums the normalized length of every cable in the path
// that has one recorded. The returned total is nil when no cable has
// a length. definitive is true only when every cable in the path has
// a recorded length; otherwise the total is a lower bound.
func (p *CablePath) TotalLength(repo Repository) (total *decimal.Decimal, definitive bool, err error) {
	cableIDs := p.CableIDs()
	if len(cableIDs) == 0 {
		return nil, true, nil
	}
	cables, err := repo.Cables(cableIDs)
	if err != nil {
		return nil, false, err
	}

	measured := 0
	sum := decimal.Zero
	for _, cable := range cables {
		abs, ok := cable.AbsLength()
		if !ok {
			continue
		}
		sum = sum.Add(abs)
		measured++
	}
	if measured == 0 {
		return nil, false, nil
	}
	return &sum, measured == len(cableIDs), nil
}

// SplitCandidates returns the front ports paired to the rear port the
// trace split at: the possible next hops an operator must pick from.
// It returns nil for paths that are not split.
func (p *CablePath) SplitCandidates(repo Repository) ([]*model.FrontPort, error) {
	if !p.IsSplit || len(p.Nodes) == 0 {
		return nil, nil
	}
	ot, id, err := p.Nodes[len(p.Nodes)-1].Decode()
	if err != nil {
		return nil, err
	}
	if ot != model.TypeRearPort {
		return nil, fmt.Errorf("split path ends at %s:%d, not a rear port", ot, id)
	}
	return repo.FrontPorts([]int64{id}, nil)
}

// PathObjects expands the path into live entities, one slice per hop
// group, fetching each entity type in a single batch. The repository
// is passed explicitly so repeated calls have an explicit cost.
func (p *CablePath) PathObjects(repo Repository) ([][]any, error) {
	byType := make(map[model.ObjectType][]int64)
	for _, node := range p.Nodes {
		ot, id, err := node.Decode()
		if err != nil {
			return nil, err
		}
		byType[ot] = append(byType[ot], id)
	}

	fetched := make(map[model.ObjectType]map[int64]any, len(byType))
	for ot, ids := range byType {
		objs, err := repo.Objects(ot, ids)
		if err != nil {
			return nil, err
		}
		fetched[ot] = objs
	}

	out := make([][]any, 0, len(p.Path))
	for _, hop := range p.Path {
		group := make([]any, 0, len(hop))
		for _, node := range hop {
			ot, id, err := node.Decode()
			if err != nil {
				return nil, err
			}
			obj, ok := fetched[ot][id]
			if !ok {
				return nil, fmt.Errorf("path references missing object %s:%d", ot, id)
			}
			group = append(group, obj)
		}
		out = append(out, group)
	}
	return out, nil
}

func decodeTerminations(repo Repository, hop HopGroup) ([]model.Termination, error) {
	terms := make([]model.Termination, 0, len(hop))
	for _, node := range hop {
		ot, id, err := node.Decode()
		if err != nil {
			return nil, err
		}
		t, err := repo.Termination(ot, id)
		if err != nil {
			return nil, err
		}
		terms = append(terms, t)
	}
	return terms, nil
}
