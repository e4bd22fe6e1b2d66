// Package nodeset exports typed OPC UA address-space nodes as a UANodeSet
// XML document.
//
// An Exporter reads nodes through the AddressSpace, TypeResolver and Node
// interfaces, remaps their namespace indices into a compact document-local
// table, encodes scalar, array and structured values under their declared
// data types, and assembles the document with its NamespaceUris and Aliases
// blocks:
//
//	exp := nodeset.New(space, space)
//	doc, err := exp.Build(ctx, nodes)
//	if err != nil {
//		return err
//	}
//	enc := xml.NewEncoder(w)
//	enc.Indent("  ")
//	return enc.Encode(doc)
//
// The nodespace package provides an in-memory implementation of the
// collaborator interfaces, and the nodedef package loads one from a YAML
// model definition.
package nodeset
