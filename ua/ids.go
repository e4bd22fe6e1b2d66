package ua

// Well-known numeric identifiers in namespace 0. Only the ids the exporter
// actually consults are listed: the builtin data types, the hierarchy of
// abstract base data types, the standard reference types, and the structured
// types that carry ordered-field encodings.

// Builtin data types and the abstract bases above them.
const (
	IDBoolean        uint32 = 1
	IDSByte          uint32 = 2
	IDByte           uint32 = 3
	IDInt16          uint32 = 4
	IDUInt16         uint32 = 5
	IDInt32          uint32 = 6
	IDUInt32         uint32 = 7
	IDInt64          uint32 = 8
	IDUInt64         uint32 = 9
	IDFloat          uint32 = 10
	IDDouble         uint32 = 11
	IDString         uint32 = 12
	IDDateTime       uint32 = 13
	IDGuid           uint32 = 14
	IDByteString     uint32 = 15
	IDXmlElement     uint32 = 16
	IDNodeId         uint32 = 17
	IDExpandedNodeId uint32 = 18
	IDStatusCode     uint32 = 19
	IDQualifiedName  uint32 = 20
	IDLocalizedText  uint32 = 21
	IDStructure      uint32 = 22
	IDDataValue      uint32 = 23
	IDBaseDataType   uint32 = 24
	IDDiagnosticInfo uint32 = 25
	IDNumber         uint32 = 26
	IDInteger        uint32 = 27
	IDUInteger       uint32 = 28
	IDEnumeration    uint32 = 29
	IDImage          uint32 = 30
)

// Standard reference types.
const (
	IDReferences                 uint32 = 31
	IDNonHierarchicalReferences  uint32 = 32
	IDHierarchicalReferences     uint32 = 33
	IDHasChild                   uint32 = 34
	IDOrganizes                  uint32 = 35
	IDHasEventSource             uint32 = 36
	IDHasModellingRule           uint32 = 37
	IDHasTypeDefinition          uint32 = 40
	IDAggregates                 uint32 = 44
	IDHasSubtype                 uint32 = 45
	IDHasProperty                uint32 = 46
	IDHasComponent               uint32 = 47
	IDHasNotifier                uint32 = 48
	IDHasOrderedComponent        uint32 = 49
	IDFromState                  uint32 = 51
	IDToState                    uint32 = 52
	IDHasCause                   uint32 = 53
	IDHasEffect                  uint32 = 54
	IDHasHistoricalConfiguration uint32 = 56
)

// Base object and variable types, modelling rules, and the standard folders.
const (
	IDBaseObjectType         uint32 = 58
	IDFolderType             uint32 = 61
	IDBaseVariableType       uint32 = 62
	IDBaseDataVariableType   uint32 = 63
	IDPropertyType           uint32 = 68
	IDModellingRuleMandatory uint32 = 78
	IDModellingRuleOptional  uint32 = 80
	IDRootFolder             uint32 = 84
	IDObjectsFolder          uint32 = 85
	IDTypesFolder            uint32 = 86
	IDViewsFolder            uint32 = 87
	IDObjectTypesFolder      uint32 = 88
	IDVariableTypesFolder    uint32 = 89
	IDDataTypesFolder        uint32 = 90
	IDReferenceTypesFolder   uint32 = 91
)

// Standard subtypes of the builtins and the structured types with ordered
// field encodings.
const (
	IDDuration      uint32 = 290
	IDUtcTime       uint32 = 294
	IDLocaleId      uint32 = 295
	IDArgument      uint32 = 296
	IDRange         uint32 = 884
	IDEUInformation uint32 = 887
	IDEnumValueType uint32 = 7594
)

// AliasThreshold is the highest numeric identifier treated as a builtin data
// type for value encoding: ids 1 through 21 name the scalar builtins.
const AliasThreshold = IDLocalizedText

// builtinNames maps the builtin data type ids (1..21) to their type names.
var builtinNames = [...]string{
	IDBoolean:        "Boolean",
	IDSByte:          "SByte",
	IDByte:           "Byte",
	IDInt16:          "Int16",
	IDUInt16:         "UInt16",
	IDInt32:          "Int32",
	IDUInt32:         "UInt32",
	IDInt64:          "Int64",
	IDUInt64:         "UInt64",
	IDFloat:          "Float",
	IDDouble:         "Double",
	IDString:         "String",
	IDDateTime:       "DateTime",
	IDGuid:           "Guid",
	IDByteString:     "ByteString",
	IDXmlElement:     "XmlElement",
	IDNodeId:         "NodeId",
	IDExpandedNodeId: "ExpandedNodeId",
	IDStatusCode:     "StatusCode",
	IDQualifiedName:  "QualifiedName",
	IDLocalizedText:  "LocalizedText",
}

// BuiltinName returns the type name for a builtin data type id (1..21).
func BuiltinName(id uint32) (string, bool) {
	if id == 0 || id > AliasThreshold {
		return "", false
	}
	return builtinNames[id], true
}

// ObjectIDNames maps well-known namespace-0 numeric identifiers to their
// standard names. The alias registry and the structured-value encoder both
// key into it.
var ObjectIDNames = map[uint32]string{
	IDBoolean:        "Boolean",
	IDSByte:          "SByte",
	IDByte:           "Byte",
	IDInt16:          "Int16",
	IDUInt16:         "UInt16",
	IDInt32:          "Int32",
	IDUInt32:         "UInt32",
	IDInt64:          "Int64",
	IDUInt64:         "UInt64",
	IDFloat:          "Float",
	IDDouble:         "Double",
	IDString:         "String",
	IDDateTime:       "DateTime",
	IDGuid:           "Guid",
	IDByteString:     "ByteString",
	IDXmlElement:     "XmlElement",
	IDNodeId:         "NodeId",
	IDExpandedNodeId: "ExpandedNodeId",
	IDStatusCode:     "StatusCode",
	IDQualifiedName:  "QualifiedName",
	IDLocalizedText:  "LocalizedText",
	IDStructure:      "Structure",
	IDDataValue:      "DataValue",
	IDBaseDataType:   "BaseDataType",
	IDDiagnosticInfo: "DiagnosticInfo",
	IDNumber:         "Number",
	IDInteger:        "Integer",
	IDUInteger:       "UInteger",
	IDEnumeration:    "Enumeration",
	IDImage:          "Image",

	IDReferences:                 "References",
	IDNonHierarchicalReferences:  "NonHierarchicalReferences",
	IDHierarchicalReferences:     "HierarchicalReferences",
	IDHasChild:                   "HasChild",
	IDOrganizes:                  "Organizes",
	IDHasEventSource:             "HasEventSource",
	IDHasModellingRule:           "HasModellingRule",
	38:                           "HasEncoding",
	39:                           "HasDescription",
	IDHasTypeDefinition:          "HasTypeDefinition",
	41:                           "GeneratesEvent",
	IDAggregates:                 "Aggregates",
	IDHasSubtype:                 "HasSubtype",
	IDHasProperty:                "HasProperty",
	IDHasComponent:               "HasComponent",
	IDHasNotifier:                "HasNotifier",
	IDHasOrderedComponent:        "HasOrderedComponent",
	IDFromState:                  "FromState",
	IDToState:                    "ToState",
	IDHasCause:                   "HasCause",
	IDHasEffect:                  "HasEffect",
	IDHasHistoricalConfiguration: "HasHistoricalConfiguration",

	IDBaseObjectType:         "BaseObjectType",
	IDFolderType:             "FolderType",
	IDBaseVariableType:       "BaseVariableType",
	IDBaseDataVariableType:   "BaseDataVariableType",
	IDPropertyType:           "PropertyType",
	77:                       "ModellingRuleType",
	IDModellingRuleMandatory: "Mandatory",
	IDModellingRuleOptional:  "Optional",
	83:                       "ExposesItsArray",
	IDRootFolder:             "RootFolder",
	IDObjectsFolder:          "ObjectsFolder",
	IDTypesFolder:            "TypesFolder",
	IDViewsFolder:            "ViewsFolder",
	IDObjectTypesFolder:      "ObjectTypesFolder",
	IDVariableTypesFolder:    "VariableTypesFolder",
	IDDataTypesFolder:        "DataTypesFolder",
	IDReferenceTypesFolder:   "ReferenceTypesFolder",

	IDDuration:      "Duration",
	IDUtcTime:       "UtcTime",
	IDLocaleId:      "LocaleId",
	IDArgument:      "Argument",
	IDRange:         "Range",
	IDEUInformation: "EUInformation",
	IDEnumValueType: "EnumValueType",
}

// objectIDByName is the reverse of ObjectIDNames.
var objectIDByName map[string]uint32

func init() {
	objectIDByName = make(map[string]uint32, len(ObjectIDNames))
	for id, name := range ObjectIDNames {
		objectIDByName[name] = id
	}
}

// ObjectIDByName returns the namespace-0 numeric identifier for a standard
// name.
func ObjectIDByName(name string) (uint32, bool) {
	id, ok := objectIDByName[name]
	return id, ok
}

// StandardName returns the standard name of a namespace-0 NodeID: the id
// must be numeric, in namespace 0, and present in the well-known table.
func StandardName(id NodeID) (string, bool) {
	if id.Namespace() != 0 {
		return "", false
	}
	num, ok := id.Numeric()
	if !ok {
		return "", false
	}
	name, ok := ObjectIDNames[num]
	return name, ok
}

// standardSupertypes maps the well-known subtype ids this package names to
// their immediate supertypes.
var standardSupertypes = map[uint32]uint32{
	IDDuration:      IDDouble,
	IDUtcTime:       IDDateTime,
	IDLocaleId:      IDString,
	IDArgument:      IDStructure,
	IDRange:         IDStructure,
	IDEUInformation: IDStructure,
	IDEnumValueType: IDStructure,
}

// StandardSupertype returns the immediate supertype of a well-known
// namespace-0 subtype id. It covers only the standard subtypes this package
// names, enough to resolve their base data type without the full type
// hierarchy loaded.
func StandardSupertype(id uint32) (uint32, bool) {
	super, ok := standardSupertypes[id]
	return super, ok
}
