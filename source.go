package nodeset

import (
	"context"

	"github.com/uakit/nodeset-go/ua"
)

// AddressSpace exposes the namespace table of the address space nodes are
// exported from.
type AddressSpace interface {
	// NamespaceArray returns the ordered namespace URI table. Index 0 is
	// the OPC UA namespace.
	NamespaceArray(ctx context.Context) ([]string, error)
}

// TypeResolver resolves data types to their built-in base representation.
type TypeResolver interface {
	// BaseDataType walks the supertype chain of a data type until it
	// reaches a namespace-0 base id, at most the Image id (i=30). The
	// result may be the Enumeration marker (i=29), which the exporter
	// encodes as Int32.
	BaseDataType(ctx context.Context, id ua.NodeID) (ua.NodeID, error)
}

// Node is the read-only view of one address-space entry the exporter
// serializes. Implementations may block on I/O; every read takes the
// Build context.
type Node interface {
	// ID returns the node's identity.
	ID() ua.NodeID

	// NodeClass returns the node's class.
	NodeClass(ctx context.Context) (ua.NodeClass, error)

	// BrowseName returns the node's qualified browse name.
	BrowseName(ctx context.Context) (ua.QualifiedName, error)

	// DisplayName returns the node's display text.
	DisplayName(ctx context.Context) (ua.LocalizedText, error)

	// Description returns the node's description, zero when absent.
	Description(ctx context.Context) (ua.LocalizedText, error)

	// Parent returns the node's hierarchical parent, reporting false when
	// the node has none.
	Parent(ctx context.Context) (ua.NodeID, bool, error)

	// References returns every reference the node reports, forward and
	// inverse, in its own order.
	References(ctx context.Context) ([]ua.Reference, error)

	// DataType returns the declared data type of a variable-like node.
	DataType(ctx context.Context) (ua.NodeID, error)

	// Value returns the node's current value. An absent value is the zero
	// Variant with a nil error.
	Value(ctx context.Context) (ua.Variant, error)

	// Attribute reads one attribute by id. Optional attributes the node
	// does not carry return the zero Variant with a nil error.
	Attribute(ctx context.Context, attr ua.AttributeID) (ua.Variant, error)
}
