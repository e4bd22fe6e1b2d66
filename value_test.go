package nodeset

import (
	"context"
	"math"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"
	"github.com/uakit/nodeset-go/logging"
	"github.com/uakit/nodeset-go/ua"
	"github.com/uakit/nodeset-go/xml"
)

func codecExporter(bases map[ua.NodeID]ua.NodeID) *Exporter {
	e := New(&mockSpace{namespaces: testNamespaces}, &mockResolver{bases: bases})
	e.log = logging.WithContext(context.Background(), e.logger)
	e.indexes = map[uint16]uint16{0: 0}
	e.aliases = newAliasRegistry()
	return e
}

func encodeTestValue(t *testing.T, e *Exporter, typeID ua.NodeID, val interface{}) *xml.Element {
	t.Helper()
	typeName, ok := ua.StandardName(typeID)
	if !ok {
		typeName = typeID.String()
	}
	parent := xml.NewElement("Value")
	if err := e.encodeValue(context.Background(), parent, typeName, typeID, val); err != nil {
		t.Fatalf("expect no error, got %v", err)
	}
	return parent
}

func TestEncodeScalarLeaves(t *testing.T) {
	cases := map[string]struct {
		typeID ua.NodeID
		val    interface{}
		leaf   string
		text   string
	}{
		"boolean":       {ua.NewNumericID(0, ua.IDBoolean), true, "Boolean", "true"},
		"sbyte":         {ua.NewNumericID(0, ua.IDSByte), int8(-5), "SByte", "-5"},
		"byte":          {ua.NewNumericID(0, ua.IDByte), uint8(200), "Byte", "200"},
		"int64":         {ua.NewNumericID(0, ua.IDInt64), int64(-9000000000), "Int64", "-9000000000"},
		"float":         {ua.NewNumericID(0, ua.IDFloat), float32(0.25), "Float", "0.25"},
		"double":        {ua.NewNumericID(0, ua.IDDouble), 3.5, "Double", "3.5"},
		"double nan":    {ua.NewNumericID(0, ua.IDDouble), math.NaN(), "Double", "NaN"},
		"double inf":    {ua.NewNumericID(0, ua.IDDouble), math.Inf(1), "Double", "INF"},
		"string":        {ua.NewNumericID(0, ua.IDString), "flow & <rate>", "String", "flow & <rate>"},
		"xml element":   {ua.NewNumericID(0, ua.IDXmlElement), "<a>1</a>", "XmlElement", "<a>1</a>"},
		"status code":   {ua.NewNumericID(0, ua.IDStatusCode), ua.StatusGood, "StatusCode", "0"},
		"date time":     {ua.NewNumericID(0, ua.IDDateTime), time.Date(2020, time.January, 2, 3, 4, 5, 0, time.UTC), "DateTime", "2020-01-02T03:04:05Z"},
		"empty string":  {ua.NewNumericID(0, ua.IDString), "", "String", ""},
		"uint64 as int": {ua.NewNumericID(0, ua.IDUInt64), uint64(18000000000000000000), "UInt64", "18000000000000000000"},
	}

	for name, c := range cases {
		t.Run(name, func(t *testing.T) {
			parent := encodeTestValue(t, codecExporter(nil), c.typeID, c.val)
			if e, a := 1, len(parent.Children); e != a {
				t.Fatalf("expect %v child, got %v", e, a)
			}
			leaf := parent.Children[0]
			if e, a := "uax", leaf.Name.Space; e != a {
				t.Errorf("expect prefix %v, got %v", e, a)
			}
			if e, a := c.leaf, leaf.Name.Local; e != a {
				t.Errorf("expect leaf %v, got %v", e, a)
			}
			if e, a := c.text, leaf.Text; e != a {
				t.Errorf("expect text %q, got %q", e, a)
			}
		})
	}
}

func TestEncodeGuidValue(t *testing.T) {
	id := uuid.MustParse("72962b91-fa75-4ae6-8d28-b404dc7daf63")
	parent := encodeTestValue(t, codecExporter(nil), ua.NewNumericID(0, ua.IDGuid), id)

	leaf := parent.Children[0]
	if e, a := "Guid", leaf.Name.Local; e != a {
		t.Fatalf("expect leaf %v, got %v", e, a)
	}
	if e, a := 1, len(leaf.Children); e != a {
		t.Fatalf("expect %v child, got %v", e, a)
	}
	inner := leaf.Children[0]
	if e, a := "String", inner.Name.Local; e != a {
		t.Errorf("expect inner %v, got %v", e, a)
	}
	if e, a := "72962b91-fa75-4ae6-8d28-b404dc7daf63", inner.Text; e != a {
		t.Errorf("expect text %v, got %v", e, a)
	}
}

func TestEncodeNodeIDValue(t *testing.T) {
	exporter := codecExporter(nil)
	exporter.indexes = map[uint16]uint16{0: 0, 2: 1}
	parent := encodeTestValue(t, exporter, ua.NewNumericID(0, ua.IDNodeId), ua.NewNumericID(2, 99))

	leaf := parent.Children[0]
	if e, a := "NodeId", leaf.Name.Local; e != a {
		t.Fatalf("expect leaf %v, got %v", e, a)
	}
	inner := leaf.Children[0]
	if e, a := "Identifier", inner.Name.Local; e != a {
		t.Errorf("expect inner %v, got %v", e, a)
	}
	// NodeId values remap with the rest of the document.
	if e, a := "ns=1;i=99", inner.Text; e != a {
		t.Errorf("expect text %v, got %v", e, a)
	}
}

func TestEncodeByteStringValue(t *testing.T) {
	t.Run("payload", func(t *testing.T) {
		parent := encodeTestValue(t, codecExporter(nil), ua.NewNumericID(0, ua.IDByteString), []byte("hi"))
		leaf := parent.Children[0]
		if e, a := "ByteString", leaf.Name.Local; e != a {
			t.Fatalf("expect leaf %v, got %v", e, a)
		}
		if e, a := "aGk=", leaf.Text; e != a {
			t.Errorf("expect text %v, got %v", e, a)
		}
	})

	t.Run("empty", func(t *testing.T) {
		parent := encodeTestValue(t, codecExporter(nil), ua.NewNumericID(0, ua.IDByteString), []byte{})
		if e, a := "", parent.Children[0].Text; e != a {
			t.Errorf("expect text %q, got %q", e, a)
		}
	})

	t.Run("nil", func(t *testing.T) {
		parent := encodeTestValue(t, codecExporter(nil), ua.NewNumericID(0, ua.IDByteString), []byte(nil))
		if e, a := 0, len(parent.Children); e != a {
			t.Errorf("expect %v children, got %v", e, a)
		}
	})
}

func TestEncodeLocalizedTextValue(t *testing.T) {
	parent := encodeTestValue(t, codecExporter(nil), ua.NewNumericID(0, ua.IDLocalizedText), ua.NewLocalizedText("Hello"))

	leaf := parent.Children[0]
	if e, a := "LocalizedText", leaf.Name.Local; e != a {
		t.Fatalf("expect leaf %v, got %v", e, a)
	}
	if diff := cmp.Diff([]string{"Locale", "Text"}, childNames(leaf)); diff != "" {
		t.Errorf("member order mismatch (-want +got):\n%s", diff)
	}
	if e, a := "", leaf.Children[0].Text; e != a {
		t.Errorf("expect locale %q, got %q", e, a)
	}
	if e, a := "Hello", leaf.Children[1].Text; e != a {
		t.Errorf("expect text %v, got %v", e, a)
	}
}

func TestEncodeQualifiedNameValue(t *testing.T) {
	parent := encodeTestValue(t, codecExporter(nil), ua.NewNumericID(0, ua.IDQualifiedName), ua.NewQualifiedName(2, "Flow"))

	leaf := parent.Children[0]
	if diff := cmp.Diff([]string{"NamespaceIndex", "Name"}, childNames(leaf)); diff != "" {
		t.Errorf("member order mismatch (-want +got):\n%s", diff)
	}
	if e, a := "2", leaf.Children[0].Text; e != a {
		t.Errorf("expect namespace index %v, got %v", e, a)
	}
	if e, a := "Flow", leaf.Children[1].Text; e != a {
		t.Errorf("expect name %v, got %v", e, a)
	}
}

func TestEncodeEnumerationAsInt32(t *testing.T) {
	enumType := ua.NewNumericID(1, 888)
	e := codecExporter(map[ua.NodeID]ua.NodeID{
		enumType: ua.NewNumericID(0, ua.IDEnumeration),
	})
	parent := encodeTestValue(t, e, enumType, int32(2))

	leaf := parent.Children[0]
	if e, a := "Int32", leaf.Name.Local; e != a {
		t.Errorf("expect leaf %v, got %v", e, a)
	}
	if e, a := "2", leaf.Text; e != a {
		t.Errorf("expect text %v, got %v", e, a)
	}
}

func TestEncodeListWrapperNames(t *testing.T) {
	t.Run("builtin", func(t *testing.T) {
		parent := encodeTestValue(t, codecExporter(nil), ua.NewNumericID(0, ua.IDString), []string{"a", "b"})
		if e, a := "ListOfString", parent.Children[0].Name.Local; e != a {
			t.Errorf("expect wrapper %v, got %v", e, a)
		}
	})

	t.Run("structured", func(t *testing.T) {
		rangeType := ua.NewNumericID(1, 3001)
		e := codecExporter(map[ua.NodeID]ua.NodeID{
			rangeType: ua.NewNumericID(0, ua.IDStructure),
		})
		parent := encodeTestValue(t, e, rangeType, []ua.Range{{Low: 1, High: 2}})

		list := parent.Children[0]
		if e, a := "ListOfExtensionObject", list.Name.Local; e != a {
			t.Fatalf("expect wrapper %v, got %v", e, a)
		}
		if e, a := "ExtensionObject", list.Children[0].Name.Local; e != a {
			t.Errorf("expect item %v, got %v", e, a)
		}
	})
}

func TestEncodeArgumentList(t *testing.T) {
	argType := ua.NewNumericID(0, ua.IDArgument)
	e := codecExporter(map[ua.NodeID]ua.NodeID{
		argType: ua.NewNumericID(0, ua.IDStructure),
	})
	args := []ua.Argument{
		{
			Name:            "Speed",
			DataType:        ua.NewNumericID(0, ua.IDDouble),
			ValueRank:       1,
			ArrayDimensions: []uint32{2, 3},
			Description:     &ua.LocalizedText{Text: "Engine speed"},
		},
		{
			Name:      "Result",
			DataType:  ua.NewNumericID(0, ua.IDInt32),
			ValueRank: ua.ValueRankScalar,
		},
	}
	parent := encodeTestValue(t, e, argType, args)

	list := parent.Children[0]
	if e, a := "ListOfExtensionObject", list.Name.Local; e != a {
		t.Fatalf("expect wrapper %v, got %v", e, a)
	}
	if e, a := 2, len(list.Children); e != a {
		t.Fatalf("expect %v items, got %v", e, a)
	}

	first := list.Children[0]
	typeID := childByName(t, childByName(t, first, "TypeId"), "Identifier")
	if e, a := "i=296", typeID.Text; e != a {
		t.Errorf("expect type id %v, got %v", e, a)
	}
	body := childByName(t, childByName(t, first, "Body"), "Argument")

	// Members follow the fixed Argument order, absent ones omitted.
	expect := []string{"Name", "DataType", "ValueRank", "ArrayDimensions", "Description"}
	if diff := cmp.Diff(expect, childNames(body)); diff != "" {
		t.Errorf("member order mismatch (-want +got):\n%s", diff)
	}
	if e, a := "Speed", childByName(t, body, "Name").Text; e != a {
		t.Errorf("expect name %v, got %v", e, a)
	}
	dataType := childByName(t, childByName(t, body, "DataType"), "Identifier")
	if e, a := "i=11", dataType.Text; e != a {
		t.Errorf("expect data type %v, got %v", e, a)
	}
	if e, a := "1", childByName(t, body, "ValueRank").Text; e != a {
		t.Errorf("expect value rank %v, got %v", e, a)
	}
	dims := childByName(t, body, "ArrayDimensions")
	var dimTexts []string
	for _, d := range dims.Children {
		if e, a := "UInt32", d.Name.Local; e != a {
			t.Errorf("expect dimension element %v, got %v", e, a)
		}
		dimTexts = append(dimTexts, d.Text)
	}
	if diff := cmp.Diff([]string{"2", "3"}, dimTexts); diff != "" {
		t.Errorf("dimensions mismatch (-want +got):\n%s", diff)
	}
	desc := childByName(t, body, "Description")
	if e, a := "Engine speed", childByName(t, desc, "Text").Text; e != a {
		t.Errorf("expect description %v, got %v", e, a)
	}

	second := childByName(t, childByName(t, list.Children[1], "Body"), "Argument")
	if diff := cmp.Diff([]string{"Name", "DataType", "ValueRank"}, childNames(second)); diff != "" {
		t.Errorf("member order mismatch (-want +got):\n%s", diff)
	}
	if e, a := "-1", childByName(t, second, "ValueRank").Text; e != a {
		t.Errorf("expect value rank %v, got %v", e, a)
	}
}

func TestEncodeNilValues(t *testing.T) {
	cases := map[string]interface{}{
		"untyped nil":       nil,
		"typed nil pointer": (*ua.LocalizedText)(nil),
		"typed nil slice":   []int32(nil),
	}

	for name, val := range cases {
		t.Run(name, func(t *testing.T) {
			parent := encodeTestValue(t, codecExporter(nil), ua.NewNumericID(0, ua.IDInt32), val)
			if e, a := 0, len(parent.Children); e != a {
				t.Errorf("expect %v children, got %v", e, a)
			}
		})
	}
}

// plainStruct is a Structure with caller-controlled fields.
type plainStruct struct {
	name   string
	fields []ua.Field
}

func (s plainStruct) StructureTypeName() string { return s.name }
func (s plainStruct) StructureFields() []ua.Field { return s.fields }

func TestEncodeMemberUnknownTypeName(t *testing.T) {
	structType := ua.NewNumericID(1, 3001)
	e := codecExporter(map[ua.NodeID]ua.NodeID{
		structType: ua.NewNumericID(0, ua.IDStructure),
	})
	val := plainStruct{
		name: "Custom",
		fields: []ua.Field{
			{Name: "Level", TypeName: "Bogus", Value: int32(1)},
		},
	}

	parent := xml.NewElement("Value")
	err := e.encodeValue(context.Background(), parent, structType.String(), structType, val)
	if err == nil {
		t.Fatalf("expect error, got none")
	}
	if e, a := "unknown type name", err.Error(); !strings.Contains(a, e) {
		t.Errorf("expect error to contain %q, got %v", e, a)
	}
}

func TestEncodeExtensionObjectRequiresStructure(t *testing.T) {
	structType := ua.NewNumericID(1, 3001)
	e := codecExporter(map[ua.NodeID]ua.NodeID{
		structType: ua.NewNumericID(0, ua.IDStructure),
	})

	parent := xml.NewElement("Value")
	err := e.encodeValue(context.Background(), parent, structType.String(), structType, int32(5))
	if err == nil {
		t.Fatalf("expect error, got none")
	}
	if e, a := "does not describe its structure fields", err.Error(); !strings.Contains(a, e) {
		t.Errorf("expect error to contain %q, got %v", e, a)
	}
}
