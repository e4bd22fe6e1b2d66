package ua

// Structure is a structured value that can describe itself for encoding.
// StructureTypeName names the data type; StructureFields lists the members
// in declaration order, each with the member name, the member's data type
// name (prefixed "ListOf" for array members), and the member value.
type Structure interface {
	StructureTypeName() string
	StructureFields() []Field
}

// Field is one member of a structured value.
type Field struct {
	Name     string
	TypeName string
	Value    any
}

// Argument describes one input or output argument of a method. Optional
// members left at their zero value are omitted from the encoded form.
type Argument struct {
	Name            string
	DataType        NodeID
	ValueRank       int32
	ArrayDimensions []uint32
	Description     *LocalizedText
}

// StructureTypeName implements Structure.
func (a Argument) StructureTypeName() string { return "Argument" }

// StructureFields implements Structure.
func (a Argument) StructureFields() []Field {
	fields := []Field{
		{Name: "Name", TypeName: "String", Value: a.Name},
		{Name: "DataType", TypeName: "NodeId", Value: a.DataType},
		{Name: "ValueRank", TypeName: "Int32", Value: a.ValueRank},
	}
	if a.ArrayDimensions != nil {
		fields = append(fields, Field{Name: "ArrayDimensions", TypeName: "ListOfUInt32", Value: a.ArrayDimensions})
	}
	if a.Description != nil {
		fields = append(fields, Field{Name: "Description", TypeName: "LocalizedText", Value: *a.Description})
	}
	return fields
}

// Range bounds a value domain.
type Range struct {
	Low  float64
	High float64
}

// StructureTypeName implements Structure.
func (r Range) StructureTypeName() string { return "Range" }

// StructureFields implements Structure.
func (r Range) StructureFields() []Field {
	return []Field{
		{Name: "Low", TypeName: "Double", Value: r.Low},
		{Name: "High", TypeName: "Double", Value: r.High},
	}
}

// EUInformation describes the engineering unit of a variable.
type EUInformation struct {
	NamespaceUri string
	UnitId       int32
	DisplayName  LocalizedText
	Description  LocalizedText
}

// StructureTypeName implements Structure.
func (e EUInformation) StructureTypeName() string { return "EUInformation" }

// StructureFields implements Structure.
func (e EUInformation) StructureFields() []Field {
	return []Field{
		{Name: "NamespaceUri", TypeName: "String", Value: e.NamespaceUri},
		{Name: "UnitId", TypeName: "Int32", Value: e.UnitId},
		{Name: "DisplayName", TypeName: "LocalizedText", Value: e.DisplayName},
		{Name: "Description", TypeName: "LocalizedText", Value: e.Description},
	}
}

// EnumValueType names one value of an enumerated data type.
type EnumValueType struct {
	Value       int64
	DisplayName LocalizedText
	Description LocalizedText
}

// StructureTypeName implements Structure.
func (e EnumValueType) StructureTypeName() string { return "EnumValueType" }

// StructureFields implements Structure.
func (e EnumValueType) StructureFields() []Field {
	return []Field{
		{Name: "Value", TypeName: "Int64", Value: e.Value},
		{Name: "DisplayName", TypeName: "LocalizedText", Value: e.DisplayName},
		{Name: "Description", TypeName: "LocalizedText", Value: e.Description},
	}
}
