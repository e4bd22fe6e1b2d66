package nodeset

import (
	"context"
	"encoding/base64"
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/uakit/nodeset-go/ua"
	"github.com/uakit/nodeset-go/xml"
)

// uax prefixes every typed value element.
const uax = "uax"

var (
	enumerationID = ua.NewNumericID(0, ua.IDEnumeration)
	int32ID       = ua.NewNumericID(0, ua.IDInt32)
)

// structureFieldOrder forces an explicit member order on specific
// structured types: members are emitted in listed order and only when
// present. Types without an entry keep their declared member order.
var structureFieldOrder = map[ua.NodeID][]string{
	ua.NewNumericID(0, ua.IDArgument): {
		"Name",
		"DataType",
		"ValueRank",
		"ArrayDimensions",
		"Description",
	},
}

// encodeValue appends the XML form of val under parent, directed by the
// declared data type. typeName is the name the DataType attribute carries
// (alias for standard types, remapped id string otherwise); typeID is the
// declared type itself.
func (e *Exporter) encodeValue(ctx context.Context, parent *xml.Element, typeName string, typeID ua.NodeID, val interface{}) error {
	if isNilValue(val) {
		return nil
	}

	if rv := reflect.ValueOf(val); isArray(rv) {
		name := "ListOfExtensionObject"
		if num, ok := typeID.Numeric(); ok && typeID.Namespace() == 0 && num <= ua.AliasThreshold {
			name = "ListOf" + typeName
		}
		list := parent.SubNS(uax, name)
		for i := 0; i < rv.Len(); i++ {
			if err := e.encodeValue(ctx, list, typeName, typeID, rv.Index(i).Interface()); err != nil {
				return err
			}
		}
		return nil
	}

	base, err := e.types.BaseDataType(ctx, typeID)
	if err != nil {
		return fmt.Errorf("resolve base data type of %s: %w", typeID, err)
	}
	if base == enumerationID {
		base = int32ID
	}
	if num, ok := base.Numeric(); ok && base.Namespace() == 0 && num <= ua.AliasThreshold {
		name, _ := ua.BuiltinName(num)
		return e.encodeScalar(ctx, parent.SubNS(uax, name), base, val)
	}
	return e.encodeExtensionObject(ctx, parent, typeID, val)
}

// encodeScalar fills leaf with a built-in typed value. NodeId and Guid
// nest an inner element, structured values recurse member-wise, everything
// else becomes character data. An absent value leaves the element empty.
func (e *Exporter) encodeScalar(ctx context.Context, leaf *xml.Element, dtype ua.NodeID, val interface{}) error {
	if isNilValue(val) {
		return nil
	}

	num, _ := dtype.Numeric()
	switch num {
	case ua.IDNodeId:
		id, ok := val.(ua.NodeID)
		if !ok {
			return fmt.Errorf("encode NodeId value: unexpected %T", val)
		}
		leaf.SubNS(uax, "Identifier").SetText(e.nodeIDString(id))
		return nil
	case ua.IDGuid:
		leaf.SubNS(uax, "String").SetText(scalarText(val))
		return nil
	case ua.IDByteString:
		b, ok := val.([]byte)
		if !ok {
			return fmt.Errorf("encode ByteString value: unexpected %T", val)
		}
		leaf.SetText(base64.StdEncoding.EncodeToString(b))
		return nil
	}

	if s, ok := val.(ua.Structure); ok {
		return e.encodeMembers(ctx, leaf, dtype, s)
	}
	leaf.SetText(scalarText(val))
	return nil
}

// encodeExtensionObject wraps a structured value in the ExtensionObject
// envelope: the declared type id, then a Body element named after the
// value's structure type.
func (e *Exporter) encodeExtensionObject(ctx context.Context, parent *xml.Element, typeID ua.NodeID, val interface{}) error {
	s, ok := val.(ua.Structure)
	if !ok {
		return fmt.Errorf("encode %s value: %T does not describe its structure fields", typeID, val)
	}
	obj := parent.SubNS(uax, "ExtensionObject")
	obj.SubNS(uax, "TypeId").SubNS(uax, "Identifier").SetText(typeID.String())
	body := obj.SubNS(uax, "Body").SubNS(uax, s.StructureTypeName())
	return e.encodeMembers(ctx, body, typeID, s)
}

// encodeMembers appends one member element per structure field, honoring
// the forced order table for types registered there.
func (e *Exporter) encodeMembers(ctx context.Context, el *xml.Element, typeID ua.NodeID, s ua.Structure) error {
	fields := s.StructureFields()
	if order, ok := structureFieldOrder[typeID]; ok {
		fields = orderFields(fields, order)
	}
	for _, f := range fields {
		if err := e.encodeMember(ctx, el, f); err != nil {
			return err
		}
	}
	return nil
}

// encodeMember appends the member element for one field. For array
// members the member element itself is the wrapper; every item runs
// through the full codec.
func (e *Exporter) encodeMember(ctx context.Context, parent *xml.Element, f ua.Field) error {
	typeName := strings.TrimPrefix(f.TypeName, "ListOf")
	num, ok := ua.ObjectIDByName(typeName)
	if !ok {
		return fmt.Errorf("structure member %s: unknown type name %q", f.Name, f.TypeName)
	}
	typeID := ua.NewNumericID(0, num)
	member := parent.SubNS(uax, f.Name)

	if f.Value != nil {
		if rv := reflect.ValueOf(f.Value); isArray(rv) {
			for i := 0; i < rv.Len(); i++ {
				if err := e.encodeValue(ctx, member, typeName, typeID, rv.Index(i).Interface()); err != nil {
					return err
				}
			}
			return nil
		}
	}
	return e.encodeScalar(ctx, member, typeID, f.Value)
}

// orderFields filters fields down to the forced order: listed names only,
// absent values dropped.
func orderFields(fields []ua.Field, order []string) []ua.Field {
	byName := make(map[string]ua.Field, len(fields))
	for _, f := range fields {
		byName[f.Name] = f
	}
	out := make([]ua.Field, 0, len(order))
	for _, name := range order {
		f, ok := byName[name]
		if !ok || isNilValue(f.Value) {
			continue
		}
		out = append(out, f)
	}
	return out
}

// scalarText renders a leaf value's character data.
func scalarText(val interface{}) string {
	switch v := val.(type) {
	case string:
		return v
	case []byte:
		return string(v)
	case bool:
		return strconv.FormatBool(v)
	case float32:
		return xml.FormatFloat(float64(v), 32)
	case float64:
		return xml.FormatFloat(v, 64)
	case time.Time:
		return ua.FormatDateTime(v)
	case uuid.UUID:
		return v.String()
	case ua.StatusCode:
		return strconv.FormatUint(uint64(v), 10)
	case int8:
		return strconv.FormatInt(int64(v), 10)
	case int16:
		return strconv.FormatInt(int64(v), 10)
	case int32:
		return strconv.FormatInt(int64(v), 10)
	case int64:
		return strconv.FormatInt(v, 10)
	case int:
		return strconv.FormatInt(int64(v), 10)
	case uint8:
		return strconv.FormatUint(uint64(v), 10)
	case uint16:
		return strconv.FormatUint(uint64(v), 10)
	case uint32:
		return strconv.FormatUint(uint64(v), 10)
	case uint64:
		return strconv.FormatUint(v, 10)
	case uint:
		return strconv.FormatUint(uint64(v), 10)
	default:
		return fmt.Sprint(val)
	}
}

// isNilValue reports whether val is absent, counting typed nil pointers,
// slices and maps.
func isNilValue(val interface{}) bool {
	if val == nil {
		return true
	}
	rv := reflect.ValueOf(val)
	switch rv.Kind() {
	case reflect.Ptr, reflect.Slice, reflect.Map, reflect.Interface:
		return rv.IsNil()
	}
	return false
}

// isArray reports whether rv holds an array value. Byte slices are scalar
// ByteString payloads, not arrays.
func isArray(rv reflect.Value) bool {
	switch rv.Kind() {
	case reflect.Slice:
		return rv.Type().Elem().Kind() != reflect.Uint8
	case reflect.Array:
		return true
	}
	return false
}
