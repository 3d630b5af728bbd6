package core

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/danpedrabranca/netbox/model"
)

// ErrBadPathNode reports a path node that cannot be decoded back into
// an object reference.
var ErrBadPathNode = errors.New("malformed path node")

// PathNode is the compact, orderable encoding of one entity in a
// path: the entity's type tag and numeric ID joined by a colon. Being
// a plain string it works directly as a map key and sorts stably.
type PathNode string

// NewPathNode encodes an (object type, ID) pair.
func NewPathNode(ot model.ObjectType, id int64) PathNode {
	return PathNode(fmt.Sprintf("%s:%d", ot, id))
}

// EncodeTermination encodes a termination entity as a path node.
func EncodeTermination(t model.Termination) PathNode {
	return NewPathNode(t.ObjectType(), t.ObjectID())
}

// EncodeLink encodes a Cable or WirelessLink as a path node.
func EncodeLink(l model.Link) PathNode {
	return NewPathNode(l.LinkType(), l.LinkID())
}

// Decode splits a path node back into its type tag and numeric ID.
func (n PathNode) Decode() (model.ObjectType, int64, error) {
	raw := string(n)
	sep := strings.LastIndex(raw, ":")
	if sep <= 0 || sep == len(raw)-1 {
		return "", 0, fmt.Errorf("%w: %q", ErrBadPathNode, raw)
	}
	id, err := strconv.ParseInt(raw[sep+1:], 10, 64)
	if err != nil || id <= 0 {
		return "", 0, fmt.Errorf("%w: %q", ErrBadPathNode, raw)
	}
	return model.ObjectType(raw[:sep]), id, nil
}

// HopGroup is one step of a path: a non-empty set of nodes sharing a
// position in the walk. Hop groups strictly alternate between
// termination sets and single-link sets, starting with a termination
// set.
type HopGroup []PathNode

// FlattenPath concatenates all hop groups into one ordered node
// sequence for indexed membership lookups. The result is always
// exactly the concatenation of hop-group contents in order, so
// recomputing it after a no-op retrace yields an identical sequence.
func FlattenPath(path []HopGroup) []PathNode {
	n := 0
	for _, hop := range path {
		n += len(hop)
	}
	nodes := make([]PathNode, 0, n)
	for _, hop := range path {
		nodes = append(nodes, hop...)
	}
	return nodes
}
