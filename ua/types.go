package ua

import (
	"fmt"
	"strconv"
	"strings"
)

// NodeClass identifies the class of a node.
type NodeClass uint32

const (
	NodeClassUnspecified   NodeClass = 0
	NodeClassObject        NodeClass = 1
	NodeClassVariable      NodeClass = 2
	NodeClassMethod        NodeClass = 4
	NodeClassObjectType    NodeClass = 8
	NodeClassVariableType  NodeClass = 16
	NodeClassReferenceType NodeClass = 32
	NodeClassDataType      NodeClass = 64
	NodeClassView          NodeClass = 128
)

func (c NodeClass) String() string {
	switch c {
	case NodeClassObject:
		return "Object"
	case NodeClassVariable:
		return "Variable"
	case NodeClassMethod:
		return "Method"
	case NodeClassObjectType:
		return "ObjectType"
	case NodeClassVariableType:
		return "VariableType"
	case NodeClassReferenceType:
		return "ReferenceType"
	case NodeClassDataType:
		return "DataType"
	case NodeClassView:
		return "View"
	}
	return "Unspecified"
}

// ParseNodeClass maps a class name back to its NodeClass.
func ParseNodeClass(s string) (NodeClass, error) {
	switch s {
	case "Object":
		return NodeClassObject, nil
	case "Variable":
		return NodeClassVariable, nil
	case "Method":
		return NodeClassMethod, nil
	case "ObjectType":
		return NodeClassObjectType, nil
	case "VariableType":
		return NodeClassVariableType, nil
	case "ReferenceType":
		return NodeClassReferenceType, nil
	case "DataType":
		return NodeClassDataType, nil
	case "View":
		return NodeClassView, nil
	}
	return NodeClassUnspecified, fmt.Errorf("unknown node class %q", s)
}

// AttributeID identifies a node attribute.
type AttributeID uint32

const (
	AttrNodeID                  AttributeID = 1
	AttrNodeClass               AttributeID = 2
	AttrBrowseName              AttributeID = 3
	AttrDisplayName             AttributeID = 4
	AttrDescription             AttributeID = 5
	AttrWriteMask               AttributeID = 6
	AttrUserWriteMask           AttributeID = 7
	AttrIsAbstract              AttributeID = 8
	AttrSymmetric               AttributeID = 9
	AttrInverseName             AttributeID = 10
	AttrContainsNoLoops         AttributeID = 11
	AttrEventNotifier           AttributeID = 12
	AttrValue                   AttributeID = 13
	AttrDataType                AttributeID = 14
	AttrValueRank               AttributeID = 15
	AttrArrayDimensions         AttributeID = 16
	AttrAccessLevel             AttributeID = 17
	AttrUserAccessLevel         AttributeID = 18
	AttrMinimumSamplingInterval AttributeID = 19
	AttrHistorizing             AttributeID = 20
	AttrExecutable              AttributeID = 21
	AttrUserExecutable          AttributeID = 22
	AttrDataTypeDefinition      AttributeID = 23
)

// Access level bits for the AccessLevel and UserAccessLevel attributes.
const (
	AccessLevelCurrentRead  uint8 = 1
	AccessLevelCurrentWrite uint8 = 2
	AccessLevelHistoryRead  uint8 = 4
	AccessLevelHistoryWrite uint8 = 8
)

// ValueRankScalar is the ValueRank attribute value for scalar variables.
const ValueRankScalar int32 = -1

// QualifiedName is a name qualified by a namespace index.
type QualifiedName struct {
	NamespaceIndex uint16
	Name           string
}

// NewQualifiedName builds a QualifiedName.
func NewQualifiedName(ns uint16, name string) QualifiedName {
	return QualifiedName{NamespaceIndex: ns, Name: name}
}

// ParseQualifiedName parses "<idx>:<name>" or a bare name (namespace 0).
func ParseQualifiedName(s string) (QualifiedName, error) {
	idx := strings.IndexByte(s, ':')
	if idx < 0 {
		return QualifiedName{Name: s}, nil
	}
	ns, err := strconv.ParseUint(s[:idx], 10, 16)
	if err != nil {
		return QualifiedName{}, fmt.Errorf("invalid qualified name %q: %w", s, err)
	}
	return QualifiedName{NamespaceIndex: uint16(ns), Name: s[idx+1:]}, nil
}

// String renders "<idx>:<name>", omitting the prefix for namespace 0.
func (q QualifiedName) String() string {
	if q.NamespaceIndex == 0 {
		return q.Name
	}
	return strconv.FormatUint(uint64(q.NamespaceIndex), 10) + ":" + q.Name
}

// WithNamespace returns a copy of the name in the given namespace.
func (q QualifiedName) WithNamespace(ns uint16) QualifiedName {
	q.NamespaceIndex = ns
	return q
}

// StructureTypeName implements Structure.
func (q QualifiedName) StructureTypeName() string { return "QualifiedName" }

// StructureFields implements Structure.
func (q QualifiedName) StructureFields() []Field {
	return []Field{
		{Name: "NamespaceIndex", TypeName: "UInt16", Value: q.NamespaceIndex},
		{Name: "Name", TypeName: "String", Value: q.Name},
	}
}

// LocalizedText is human-readable text with an optional locale.
type LocalizedText struct {
	Locale string
	Text   string
}

// NewLocalizedText builds a LocalizedText without a locale.
func NewLocalizedText(text string) LocalizedText {
	return LocalizedText{Text: text}
}

// StructureTypeName implements Structure.
func (l LocalizedText) StructureTypeName() string { return "LocalizedText" }

// StructureFields implements Structure.
func (l LocalizedText) StructureFields() []Field {
	return []Field{
		{Name: "Locale", TypeName: "String", Value: l.Locale},
		{Name: "Text", TypeName: "String", Value: l.Text},
	}
}

// StatusCode is an OPC UA status code.
type StatusCode uint32

// StatusGood is the all-clear status.
const StatusGood StatusCode = 0

// Reference is one directed reference as a node reports it: the reference
// type, the target node, and the direction.
type Reference struct {
	TypeID    NodeID
	TargetID  NodeID
	IsForward bool
}

// StructureField describes one field of a structure data type definition.
type StructureField struct {
	Name            string
	DataType        NodeID
	ValueRank       int32
	ArrayDimensions []uint32
	IsOptional      bool
}

// StructureDefinition is the DataTypeDefinition attribute value of a
// structure data type node.
type StructureDefinition struct {
	Fields []StructureField
}

// EnumField describes one value of an enumeration data type definition.
type EnumField struct {
	Name  string
	Value int64
}

// EnumDefinition is the DataTypeDefinition attribute value of an
// enumeration data type node.
type EnumDefinition struct {
	Fields []EnumField
}
