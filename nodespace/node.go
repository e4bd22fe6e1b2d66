package nodespace

import (
	"context"

	"github.com/uakit/nodeset-go/ua"
)

// hierarchicalRefs holds the standard hierarchical reference type ids
// consulted when deriving a node's parent.
var hierarchicalRefs = map[uint32]struct{}{
	ua.IDHasChild:            {},
	ua.IDOrganizes:           {},
	ua.IDHasEventSource:      {},
	ua.IDAggregates:          {},
	ua.IDHasSubtype:          {},
	ua.IDHasProperty:         {},
	ua.IDHasComponent:        {},
	ua.IDHasNotifier:         {},
	ua.IDHasOrderedComponent: {},
}

func isHierarchical(id ua.NodeID) bool {
	if id.Namespace() != 0 {
		return false
	}
	num, ok := id.Numeric()
	if !ok {
		return false
	}
	_, ok = hierarchicalRefs[num]
	return ok
}

// Node is one entry of a Space. All fields except references are fixed at
// creation; references grow through Space.AddReference.
type Node struct {
	space       *Space
	id          ua.NodeID
	class       ua.NodeClass
	browseName  ua.QualifiedName
	displayName ua.LocalizedText
	description ua.LocalizedText
	dataType    ua.NodeID
	value       ua.Variant
	attrs       map[ua.AttributeID]ua.Variant
	refs        []ua.Reference
}

// ID returns the node's identity.
func (n *Node) ID() ua.NodeID { return n.id }

// NodeClass returns the node's class.
func (n *Node) NodeClass(context.Context) (ua.NodeClass, error) {
	return n.class, nil
}

// BrowseName returns the node's qualified browse name.
func (n *Node) BrowseName(context.Context) (ua.QualifiedName, error) {
	return n.browseName, nil
}

// DisplayName returns the node's display text.
func (n *Node) DisplayName(context.Context) (ua.LocalizedText, error) {
	return n.displayName, nil
}

// Description returns the node's description, zero when absent.
func (n *Node) Description(context.Context) (ua.LocalizedText, error) {
	return n.description, nil
}

// Parent returns the target of the node's first inverse hierarchical
// reference, reporting false when it has none.
func (n *Node) Parent(context.Context) (ua.NodeID, bool, error) {
	n.space.mu.RLock()
	defer n.space.mu.RUnlock()
	for _, ref := range n.refs {
		if !ref.IsForward && isHierarchical(ref.TypeID) {
			return ref.TargetID, true, nil
		}
	}
	return ua.NodeID{}, false, nil
}

// References returns a copy of the node's references in insertion order.
func (n *Node) References(context.Context) ([]ua.Reference, error) {
	n.space.mu.RLock()
	defer n.space.mu.RUnlock()
	out := make([]ua.Reference, len(n.refs))
	copy(out, n.refs)
	return out, nil
}

// DataType returns the declared data type of a variable-like node.
func (n *Node) DataType(context.Context) (ua.NodeID, error) {
	return n.dataType, nil
}

// Value returns the node's value, the zero Variant when it has none.
func (n *Node) Value(context.Context) (ua.Variant, error) {
	return n.value, nil
}

// Attribute reads one attribute by id. Attributes the node does not carry
// return the zero Variant.
func (n *Node) Attribute(_ context.Context, attr ua.AttributeID) (ua.Variant, error) {
	v, ok := n.attrs[attr]
	if !ok {
		return ua.Variant{}, nil
	}
	return v, nil
}

// supertype returns the target of the node's inverse HasSubtype
// reference.
func (n *Node) supertype() (ua.NodeID, bool) {
	n.space.mu.RLock()
	defer n.space.mu.RUnlock()
	for _, ref := range n.refs {
		if ref.IsForward {
			continue
		}
		if num, ok := ref.TypeID.Numeric(); ok && ref.TypeID.Namespace() == 0 && num == ua.IDHasSubtype {
			return ref.TargetID, true
		}
	}
	return ua.NodeID{}, false
}
