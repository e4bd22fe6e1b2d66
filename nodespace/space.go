// Package nodespace provides an in-memory address space. It implements
// the source interfaces the exporter reads from and is the backing store
// for models loaded from definition files.
//
// A Space starts with the OPC UA namespace at index 0 and no nodes.
// Standard data types resolve through the built-in hierarchy without any
// nodes present; custom data types resolve through HasSubtype references
// between their nodes.
package nodespace

import (
	"context"
	"fmt"
	"sync"

	"github.com/uakit/nodeset-go/ua"
)

// opcUANamespace is the reserved URI at namespace index 0.
const opcUANamespace = "http://opcfoundation.org/UA/"

// Space is an in-memory address space. It is safe for concurrent use.
type Space struct {
	mu         sync.RWMutex
	namespaces []string
	nodes      map[ua.NodeID]*Node
	order      []*Node
}

// New returns an empty Space holding only the OPC UA namespace.
func New() *Space {
	return &Space{
		namespaces: []string{opcUANamespace},
		nodes:      make(map[ua.NodeID]*Node),
	}
}

// AddNamespace registers uri in the namespace table and returns its
// index. A URI already in the table keeps its index.
func (s *Space) AddNamespace(uri string) uint16 {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, entry := range s.namespaces {
		if entry == uri {
			return uint16(i)
		}
	}
	s.namespaces = append(s.namespaces, uri)
	return uint16(len(s.namespaces) - 1)
}

// NamespaceArray returns a copy of the namespace table.
func (s *Space) NamespaceArray(context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]string, len(s.namespaces))
	copy(out, s.namespaces)
	return out, nil
}

// NodeConfig describes a node to create. An empty display name falls back
// to the browse name.
type NodeConfig struct {
	ID          ua.NodeID
	Class       ua.NodeClass
	BrowseName  ua.QualifiedName
	DisplayName string
	Description string
	DataType    ua.NodeID
	Value       interface{}
	Attributes  map[ua.AttributeID]interface{}
}

// AddNode creates a node from cfg and registers it. The id must be
// unused.
func (s *Space) AddNode(cfg NodeConfig) (*Node, error) {
	display := cfg.DisplayName
	if display == "" {
		display = cfg.BrowseName.Name
	}
	node := &Node{
		space:       s,
		id:          cfg.ID,
		class:       cfg.Class,
		browseName:  cfg.BrowseName,
		displayName: ua.NewLocalizedText(display),
		description: ua.NewLocalizedText(cfg.Description),
		dataType:    cfg.DataType,
		value:       ua.NewVariant(cfg.Value),
	}
	if len(cfg.Attributes) != 0 {
		node.attrs = make(map[ua.AttributeID]ua.Variant, len(cfg.Attributes))
		for attr, v := range cfg.Attributes {
			node.attrs[attr] = ua.NewVariant(v)
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.nodes[cfg.ID]; ok {
		return nil, fmt.Errorf("node %s already exists", cfg.ID)
	}
	s.nodes[cfg.ID] = node
	s.order = append(s.order, node)
	return node, nil
}

// Node returns the node with the given id.
func (s *Space) Node(id ua.NodeID) (*Node, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	node, ok := s.nodes[id]
	return node, ok
}

// Nodes returns every node in insertion order.
func (s *Space) Nodes() []*Node {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*Node, len(s.order))
	copy(out, s.order)
	return out
}

// AddReference records a reference from source to target: forward on the
// source node and inverse on the target node, on whichever of the two is
// local. One side may be an external node, typically a standard node of
// namespace 0; referencing two unknown nodes is an error.
func (s *Space) AddReference(source, refType, target ua.NodeID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	src, srcOK := s.nodes[source]
	tgt, tgtOK := s.nodes[target]
	if !srcOK && !tgtOK {
		return fmt.Errorf("add reference %s -> %s: neither node found", source, target)
	}
	if srcOK {
		src.refs = append(src.refs, ua.Reference{TypeID: refType, TargetID: target, IsForward: true})
	}
	if tgtOK {
		tgt.refs = append(tgt.refs, ua.Reference{TypeID: refType, TargetID: source, IsForward: false})
	}
	return nil
}

// BaseDataType walks the supertype chain of a data type until it reaches
// a namespace-0 base id. Standard subtypes resolve through the built-in
// hierarchy; custom types walk their inverse HasSubtype references.
func (s *Space) BaseDataType(_ context.Context, id ua.NodeID) (ua.NodeID, error) {
	seen := make(map[ua.NodeID]struct{})
	for {
		if num, ok := id.Numeric(); ok && id.Namespace() == 0 {
			if num <= ua.IDImage {
				return id, nil
			}
			if super, ok := ua.StandardSupertype(num); ok {
				id = ua.NewNumericID(0, super)
				continue
			}
		}
		if _, ok := seen[id]; ok {
			return ua.NodeID{}, fmt.Errorf("data type %s: supertype cycle", id)
		}
		seen[id] = struct{}{}

		node, ok := s.Node(id)
		if !ok {
			return ua.NodeID{}, fmt.Errorf("data type %s: node not found", id)
		}
		super, ok := node.supertype()
		if !ok {
			return ua.NodeID{}, fmt.Errorf("data type %s: no supertype", id)
		}
		id = super
	}
}
