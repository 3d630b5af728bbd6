package core

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"github.com/danpedrabranca/netbox/internal/logging"
	"github.com/danpedrabranca/netbox/internal/observability"
	"github.com/danpedrabranca/netbox/model"
)

var (
	// ErrInconsistentGroup reports a malformed origin group: empty, of
	// mixed termination types, or spanning multiple parents. This is a
	// caller error, not a topology condition.
	ErrInconsistentGroup = errors.New("inconsistent termination group")

	// ErrInconsistentLink reports a fan-out group whose members
	// disagree on their attached link. This indicates corrupted
	// topology data and is never repaired silently.
	ErrInconsistentLink = errors.New("terminations in group attach to different links")

	// ErrInconsistentFanout reports a pass-through or circuit fan-out
	// that is not representable, e.g. a multi-position trunk split
	// across several rear ports.
	ErrInconsistentFanout = errors.New("unresolvable fan-out")

	// ErrInfiniteLoop reports a walk that exceeded the hop ceiling,
	// which only happens when the topology contains a cycle.
	ErrInfiniteLoop = errors.New("path exceeds hop ceiling")
)

// DefaultMaxHops bounds the trace loop. Real topologies are short
// chains; the ceiling only exists to fail closed on cyclic data.
const DefaultMaxHops = 1000

// RetraceOutcome reports what Retrace did with the stored path.
type RetraceOutcome string

const (
	RetraceUpdated RetraceOutcome = "updated"
	RetraceDeleted RetraceOutcome = "deleted"
)

// PathTracer walks the chain of links and pass-through components
// from an origin termination set and materializes the result as a
// CablePath. Tracing is a pure, synchronous computation over the
// repository snapshot; concurrent traces of distinct origins are
// safe.
type PathTracer struct {
	Repo  Repository
	Store PathStore

	Log     logging.Logger
	Metrics *observability.TraceCollector

	// MaxHops caps the number of termination hop groups per walk.
	MaxHops int
}

// NewPathTracer constructs a tracer over the given repository and
// path store.
func NewPathTracer(repo Repository, store PathStore) *PathTracer {
	return &PathTracer{
		Repo:    repo,
		Store:   store,
		Log:     logging.Noop(),
		MaxHops: DefaultMaxHops,
	}
}

// positionStack tracks front-port position indices pushed when the
// walk enters a multi-position rear port, so the matching rear-to-
// front transition further along can be disambiguated. It is owned by
// a single trace invocation.
type positionStack struct {
	entries [][]int
}

func (s *positionStack) push(positions []int) {
	s.entries = append(s.entries, positions)
}

func (s *positionStack) pop() []int {
	top := s.entries[len(s.entries)-1]
	s.entries = s.entries[:len(s.entries)-1]
	return top
}

func (s *positionStack) empty() bool {
	return len(s.entries) == 0
}

// Trace walks the topology from the given origin termination set and
// returns the resulting path, or nil when the origin has no link at
// all. All origins must be of the same termination type and belong to
// the same parent object; normally the set has one member, more only
// for trunk/breakout cabling where several terminations share one
// cable end.
//
// The returned path is not persisted; callers decide whether to store
// it through the PathStore.
func (pt *PathTracer) Trace(ctx context.Context, origins []model.Termination) (*CablePath, error) {
	ctx, span := otel.Tracer(observability.TracerName).Start(ctx, "PathTracer.Trace")
	defer span.End()

	start := time.Now()
	path, err := pt.trace(ctx, origins)

	outcome := observability.OutcomeNone
	segments := 0
	switch {
	case err != nil:
		outcome = observability.OutcomeError
	case path == nil:
	case path.IsSplit:
		outcome = observability.OutcomeSplit
		segments = path.SegmentCount()
	case path.IsComplete:
		outcome = observability.OutcomeComplete
		segments = path.SegmentCount()
	default:
		outcome = observability.OutcomePartial
		segments = path.SegmentCount()
	}
	span.SetAttributes(
		attribute.String("cablepath.outcome", outcome),
		attribute.Int("cablepath.segments", segments),
	)
	pt.Metrics.ObserveTrace(outcome, segments, time.Since(start))

	if err != nil {
		return nil, err
	}
	if path != nil {
		pt.Log.Debug(ctx, "traced path",
			logging.String("origin", string(path.Origin()[0])),
			logging.Int("nodes", len(path.Nodes)),
			logging.Bool("complete", path.IsComplete),
			logging.Bool("active", path.IsActive),
			logging.Bool("split", path.IsSplit),
		)
	}
	return path, nil
}

func (pt *PathTracer) trace(ctx context.Context, origins []model.Termination) (*CablePath, error) {
	if err := validateGroup(origins); err != nil {
		return nil, err
	}

	maxHops := pt.MaxHops
	if maxHops <= 0 {
		maxHops = DefaultMaxHops
	}

	var (
		path       []HopGroup
		stack      positionStack
		isComplete bool
		isActive   = true
		isSplit    bool
	)

	terminations := origins
	for hops := 0; len(terminations) > 0; hops++ {
		if hops >= maxHops {
			return nil, fmt.Errorf("%w: %d hops from %s", ErrInfiniteLoop, hops, EncodeTermination(origins[0]))
		}

		// Record the near-end termination group.
		path = append(path, encodeGroup(terminations))

		// Resolve the single link shared by the whole group.
		link, err := pt.resolveLink(terminations)
		if err != nil {
			return nil, err
		}
		if link == nil {
			if len(path) == 1 {
				// No link at the origin: no path exists at all.
				return nil, nil
			}
			break
		}

		path = append(path, HopGroup{EncodeLink(link)})
		if link.LinkStatus() != model.StatusConnected {
			isActive = false
		}

		// Determine the far-end termination group.
		remote, err := pt.farEnd(link, terminations)
		if err != nil {
			return nil, err
		}
		if len(remote) == 0 {
			break
		}
		path = append(path, encodeGroup(remote))

		// Resolve the next hop from the far-end group.
		next, err := pt.nextHop(remote, &stack)
		if err != nil {
			return nil, err
		}
		switch next.kind {
		case hopContinue:
			terminations = next.terminations
		case hopTerminal:
			isComplete = true
			terminations = nil
		case hopSplit:
			isSplit = true
			terminations = nil
		case hopBreak:
			path = append(path, next.extra...)
			terminations = nil
		}
	}

	// An incomplete path can never be active, even if every cable
	// crossed so far is connected.
	if !isComplete {
		isActive = false
	}

	cp := &CablePath{
		Path:       path,
		IsComplete: isComplete,
		IsActive:   isActive,
		IsSplit:    isSplit,
	}
	cp.refreshNodes()
	return cp, nil
}

// Retrace recomputes the stored path from its origin set. A changed
// topology replaces the path content in place (same identity); an
// origin that is no longer linked deletes the path. External change
// tracking decides when to call this; the tracer only exposes the
// re-entry point.
func (pt *PathTracer) Retrace(ctx context.Context, path *CablePath) (RetraceOutcome, error) {
	ctx, span := otel.Tracer(observability.TracerName).Start(ctx, "PathTracer.Retrace")
	defer span.End()

	origins, err := path.Origins(pt.Repo)
	if err != nil {
		return "", err
	}

	fresh, err := pt.Trace(ctx, origins)
	if err != nil {
		return "", err
	}
	if fresh == nil {
		if err := pt.Store.DeletePath(path.ID); err != nil {
			return "", err
		}
		pt.Log.Info(ctx, "deleted path for unlinked origin", logging.Int64("path_id", path.ID))
		return RetraceDeleted, nil
	}

	path.Path = fresh.Path
	path.IsComplete = fresh.IsComplete
	path.IsActive = fresh.IsActive
	path.IsSplit = fresh.IsSplit
	path.refreshNodes()
	if err := pt.Store.SavePath(path); err != nil {
		return "", err
	}
	return RetraceUpdated, nil
}

// resolveLink looks up the link attached to each group member and
// checks they all resolve to the same one (or all to none).
func (pt *PathTracer) resolveLink(terminations []model.Termination) (model.Link, error) {
	link, err := pt.Repo.LinkFor(terminations[0])
	if err != nil {
		return nil, err
	}
	for _, t := range terminations[1:] {
		other, err := pt.Repo.LinkFor(t)
		if err != nil {
			return nil, err
		}
		if !sameLink(link, other) {
			return nil, fmt.Errorf("%w: %s", ErrInconsistentLink, EncodeTermination(t))
		}
	}
	return link, nil
}

// farEnd returns the termination set on the opposite side of the
// link: the other cable end's fan-out group for a Cable, the other
// interface for a WirelessLink.
func (pt *PathTracer) farEnd(link model.Link, near []model.Termination) ([]model.Termination, error) {
	switch l := link.(type) {
	case *model.Cable:
		end, err := pt.Repo.CableEndFor(near[0])
		if err != nil {
			return nil, err
		}
		for _, t := range near[1:] {
			otherEnd, err := pt.Repo.CableEndFor(t)
			if err != nil {
				return nil, err
			}
			if otherEnd != end {
				return nil, fmt.Errorf("%w: %s is on end %s, expected %s",
					ErrInconsistentLink, EncodeTermination(t), otherEnd, end)
			}
		}
		return pt.Repo.CableTerminations(l.ID, end.Opposite())
	case *model.WirelessLink:
		farID := l.InterfaceAID
		if near[0].ObjectID() == l.InterfaceAID {
			farID = l.InterfaceBID
		}
		far, err := pt.Repo.Termination(model.TypeInterface, farID)
		if err != nil {
			return nil, err
		}
		return []model.Termination{far}, nil
	default:
		return nil, fmt.Errorf("%w: unknown link type %s", ErrInconsistentLink, link.LinkType())
	}
}

// hopKind classifies the fan-out resolution of a far-end group.
type hopKind int

const (
	hopContinue hopKind = iota
	hopTerminal
	hopSplit
	hopBreak
)

type hopResult struct {
	kind         hopKind
	terminations []model.Termination
	// extra holds endpoint hop groups recorded on a circuit break
	// (the far-side termination plus its provider network or site).
	extra []HopGroup
}

// nextHop applies the fan-out rules to the far-end group reached
// after crossing a link.
func (pt *PathTracer) nextHop(remote []model.Termination, stack *positionStack) (hopResult, error) {
	for _, t := range remote[1:] {
		if t.ObjectType() != remote[0].ObjectType() {
			return hopResult{}, fmt.Errorf("%w: mixed termination types %s and %s on one cable end",
				ErrInconsistentFanout, remote[0].ObjectType(), t.ObjectType())
		}
	}

	switch first := remote[0].(type) {
	case *model.FrontPort:
		return pt.frontToRear(remote, stack)
	case *model.RearPort:
		return pt.rearToFront(remote, stack)
	case *model.CircuitTermination:
		return pt.crossCircuit(remote, first)
	default:
		// Interfaces, console ports, power ports: a genuine endpoint.
		return hopResult{kind: hopTerminal}, nil
	}
}

// frontToRear follows front ports to their paired rear ports,
// pushing position context when entering a multi-position trunk.
func (pt *PathTracer) frontToRear(remote []model.Termination, stack *positionStack) (hopResult, error) {
	rearIDs := make([]int64, 0, len(remote))
	seen := make(map[int64]struct{}, len(remote))
	positions := make([]int, 0, len(remote))
	for _, t := range remote {
		fp := t.(*model.FrontPort)
		positions = append(positions, fp.RearPortPosition)
		if _, dup := seen[fp.RearPortID]; !dup {
			seen[fp.RearPortID] = struct{}{}
			rearIDs = append(rearIDs, fp.RearPortID)
		}
	}

	rearPorts, err := pt.Repo.RearPorts(rearIDs)
	if err != nil {
		return hopResult{}, err
	}
	if len(rearPorts) == 0 {
		return hopResult{kind: hopBreak}, nil
	}

	if len(rearPorts) > 1 {
		// A group fanning out across several rear ports is only
		// representable when every one of them carries a single
		// position.
		for _, rp := range rearPorts {
			if rp.Positions != 1 {
				return hopResult{}, fmt.Errorf("%w: rear port %d has %d positions in a multi-port fan-out",
					ErrInconsistentFanout, rp.ID, rp.Positions)
			}
		}
	} else if rearPorts[0].Positions > 1 {
		// Remember which positions entered this trunk so the far
		// rear-to-front transition can pick the matching front ports.
		stack.push(positions)
	}

	next := make([]model.Termination, 0, len(rearPorts))
	for _, rp := range rearPorts {
		next = append(next, rp)
	}
	return hopResult{kind: hopContinue, terminations: next}, nil
}

// rearToFront resolves rear ports to front ports, consuming position
// context for multi-position trunks. With no context available the
// path is split.
func (pt *PathTracer) rearToFront(remote []model.Termination, stack *positionStack) (hopResult, error) {
	first := remote[0].(*model.RearPort)

	var (
		frontPorts []*model.FrontPort
		err        error
	)
	if len(remote) > 1 || first.Positions == 1 {
		ids := make([]int64, 0, len(remote))
		for _, t := range remote {
			ids = append(ids, t.ObjectID())
		}
		frontPorts, err = pt.Repo.FrontPorts(ids, []int{1})
	} else if !stack.empty() {
		frontPorts, err = pt.Repo.FrontPorts([]int64{first.ID}, stack.pop())
	} else {
		// No position context: the walk cannot pick a front port.
		return hopResult{kind: hopSplit}, nil
	}
	if err != nil {
		return hopResult{}, err
	}
	if len(frontPorts) == 0 {
		return hopResult{kind: hopBreak}, nil
	}

	next := make([]model.Termination, 0, len(frontPorts))
	for _, fp := range frontPorts {
		next = append(next, fp)
	}
	return hopResult{kind: hopContinue, terminations: next}, nil
}

// crossCircuit follows a circuit termination to the opposite side of
// its circuit, or records the provider-network / site endpoint when
// the circuit leaves tracked cabling.
func (pt *PathTracer) crossCircuit(remote []model.Termination, first *model.CircuitTermination) (hopResult, error) {
	for _, t := range remote[1:] {
		if t.(*model.CircuitTermination).Side != first.Side {
			return hopResult{}, fmt.Errorf("%w: circuit terminations on mixed sides", ErrInconsistentFanout)
		}
	}

	opposite, err := pt.Repo.OppositeCircuitTermination(first)
	if err != nil {
		return hopResult{}, err
	}
	if opposite == nil {
		return hopResult{kind: hopBreak}, nil
	}

	if opposite.ProviderNetworkID != 0 {
		// The circuit hands off to a provider network: record both
		// and halt. The path ends at a valid but non-cabled endpoint,
		// so it is not marked complete.
		return hopResult{kind: hopBreak, extra: []HopGroup{
			{EncodeTermination(opposite)},
			{NewPathNode(model.TypeProviderNetwork, opposite.ProviderNetworkID)},
		}}, nil
	}

	if opposite.SiteID != 0 {
		oppositeLink, err := pt.Repo.LinkFor(opposite)
		if err != nil {
			return hopResult{}, err
		}
		if oppositeLink == nil {
			// The far side lands at a site with no onward cable.
			return hopResult{kind: hopBreak, extra: []HopGroup{
				{EncodeTermination(opposite)},
				{NewPathNode(model.TypeSite, opposite.SiteID)},
			}}, nil
		}
	}

	return hopResult{kind: hopContinue, terminations: []model.Termination{opposite}}, nil
}

func validateGroup(terminations []model.Termination) error {
	if len(terminations) == 0 {
		return fmt.Errorf("%w: empty group", ErrInconsistentGroup)
	}
	ot := terminations[0].ObjectType()
	parentType, parentID := terminations[0].Parent()
	for _, t := range terminations[1:] {
		if t.ObjectType() != ot {
			return fmt.Errorf("%w: mixed types %s and %s", ErrInconsistentGroup, ot, t.ObjectType())
		}
		pType, pID := t.Parent()
		if pType != parentType || pID != parentID {
			return fmt.Errorf("%w: members belong to different parents", ErrInconsistentGroup)
		}
	}
	return nil
}

func encodeGroup(terminations []model.Termination) HopGroup {
	hop := make(HopGroup, 0, len(terminations))
	for _, t := range terminations {
		hop = append(hop, EncodeTermination(t))
	}
	return hop
}

func sameLink(a, b model.Link) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return a.LinkType() == b.LinkType() && a.LinkID() == b.LinkID()
}
