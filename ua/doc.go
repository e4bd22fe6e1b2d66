// Package ua holds the OPC UA type-system pieces the exporter works with:
// node identities (NodeID, QualifiedName), node classes and attribute ids,
// the table of well-known namespace-0 identifiers, typed values (Variant),
// and the structured-value descriptors extension objects expose.
//
// The package is deliberately small: it models exactly what a NodeSet2
// export reads, not the full protocol surface.
package ua
