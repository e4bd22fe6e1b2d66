// Package xml builds and renders XML element trees.
//
// The tree model exists because document assembly is not a single forward
// pass: header blocks are inserted ahead of children that were built first,
// and attribute sets grow as serialization discovers them. An Element is
// built up with Sub, SetAttr and InsertChild, then rendered by an Encoder.
//
// The renderer writes explicit end tags for empty elements and escapes
// character data and attribute values the same way.
package xml
