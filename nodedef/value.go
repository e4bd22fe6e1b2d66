package nodedef

import (
	"encoding/base64"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/uakit/nodeset-go/ua"
	"gopkg.in/yaml.v3"
)

// valueDef is a typed value: a builtin type name (or Argument) and the
// value itself, a YAML scalar or a list of them.
type valueDef struct {
	Type  string    `yaml:"type"`
	Value yaml.Node `yaml:"value"`
}

func (v *valueDef) parse() (interface{}, error) {
	if v.Type == "" {
		return nil, errors.New("value: type is required")
	}
	id, ok := ua.ObjectIDByName(v.Type)
	if !ok {
		return nil, fmt.Errorf("value: unknown type name %q", v.Type)
	}
	if v.Value.IsZero() {
		return nil, errors.New("value: value is required")
	}
	if v.Value.Kind == yaml.SequenceNode {
		items := make([]interface{}, len(v.Value.Content))
		for i, node := range v.Value.Content {
			item, err := decodeScalar(id, v.Type, node)
			if err != nil {
				return nil, err
			}
			items[i] = item
		}
		return items, nil
	}
	return decodeScalar(id, v.Type, &v.Value)
}

// decodeScalar decodes one YAML scalar (or, for Argument, mapping) into
// the Go value the codec expects for the named type.
func decodeScalar(id uint32, name string, node *yaml.Node) (interface{}, error) {
	var (
		out interface{}
		err error
	)
	switch id {
	case ua.IDBoolean:
		var v bool
		err = node.Decode(&v)
		out = v
	case ua.IDSByte:
		var v int8
		err = node.Decode(&v)
		out = v
	case ua.IDByte:
		var v uint8
		err = node.Decode(&v)
		out = v
	case ua.IDInt16:
		var v int16
		err = node.Decode(&v)
		out = v
	case ua.IDUInt16:
		var v uint16
		err = node.Decode(&v)
		out = v
	case ua.IDInt32:
		var v int32
		err = node.Decode(&v)
		out = v
	case ua.IDUInt32:
		var v uint32
		err = node.Decode(&v)
		out = v
	case ua.IDInt64:
		var v int64
		err = node.Decode(&v)
		out = v
	case ua.IDUInt64:
		var v uint64
		err = node.Decode(&v)
		out = v
	case ua.IDFloat:
		var v float32
		err = node.Decode(&v)
		out = v
	case ua.IDDouble:
		var v float64
		err = node.Decode(&v)
		out = v
	case ua.IDString, ua.IDXmlElement:
		var v string
		err = node.Decode(&v)
		out = v
	case ua.IDDateTime:
		var s string
		if err = node.Decode(&s); err == nil {
			out, err = ua.ParseDateTime(s)
		}
	case ua.IDGuid:
		var s string
		if err = node.Decode(&s); err == nil {
			out, err = uuid.Parse(s)
		}
	case ua.IDByteString:
		var s string
		if err = node.Decode(&s); err == nil {
			out, err = base64.StdEncoding.DecodeString(s)
		}
	case ua.IDNodeId:
		var s string
		if err = node.Decode(&s); err == nil {
			out, err = ua.ParseNodeID(s)
		}
	case ua.IDStatusCode:
		var v uint32
		err = node.Decode(&v)
		out = ua.StatusCode(v)
	case ua.IDQualifiedName:
		var s string
		if err = node.Decode(&s); err == nil {
			out, err = ua.ParseQualifiedName(s)
		}
	case ua.IDLocalizedText:
		var s string
		if err = node.Decode(&s); err == nil {
			out = ua.NewLocalizedText(s)
		}
	case ua.IDArgument:
		var a argumentDef
		if err = node.Decode(&a); err == nil {
			out, err = a.argument()
		}
	default:
		return nil, fmt.Errorf("value type %q is not supported", name)
	}
	if err != nil {
		return nil, fmt.Errorf("value of type %s: %w", name, err)
	}
	return out, nil
}

// argumentDef is one method argument. An absent value_rank means scalar.
type argumentDef struct {
	Name            string   `yaml:"name"`
	DataType        string   `yaml:"data_type"`
	ValueRank       *int32   `yaml:"value_rank"`
	ArrayDimensions []uint32 `yaml:"array_dimensions"`
	Description     string   `yaml:"description"`
}

func (a argumentDef) argument() (ua.Argument, error) {
	dataType, err := resolveNodeID(a.DataType)
	if err != nil {
		return ua.Argument{}, fmt.Errorf("argument %s: data_type: %w", a.Name, err)
	}
	arg := ua.Argument{
		Name:            a.Name,
		DataType:        dataType,
		ValueRank:       ua.ValueRankScalar,
		ArrayDimensions: a.ArrayDimensions,
	}
	if a.ValueRank != nil {
		arg.ValueRank = *a.ValueRank
	}
	if a.Description != "" {
		text := ua.NewLocalizedText(a.Description)
		arg.Description = &text
	}
	return arg, nil
}

// definitionDef is a data type definition: structure fields or enum
// fields, never both.
type definitionDef struct {
	Structure []structureFieldDef `yaml:"structure"`
	Enum      []enumFieldDef      `yaml:"enum"`
}

type structureFieldDef struct {
	Name            string   `yaml:"name"`
	DataType        string   `yaml:"data_type"`
	ValueRank       *int32   `yaml:"value_rank"`
	ArrayDimensions []uint32 `yaml:"array_dimensions"`
	IsOptional      bool     `yaml:"is_optional"`
}

type enumFieldDef struct {
	Name  string `yaml:"name"`
	Value int64  `yaml:"value"`
}

func (d *definitionDef) value() (interface{}, error) {
	switch {
	case len(d.Structure) > 0 && len(d.Enum) > 0:
		return nil, errors.New("structure and enum fields are mutually exclusive")
	case len(d.Structure) > 0:
		def := ua.StructureDefinition{Fields: make([]ua.StructureField, len(d.Structure))}
		for i, f := range d.Structure {
			dataType, err := resolveNodeID(f.DataType)
			if err != nil {
				return nil, fmt.Errorf("field %s: data_type: %w", f.Name, err)
			}
			field := ua.StructureField{
				Name:            f.Name,
				DataType:        dataType,
				ValueRank:       ua.ValueRankScalar,
				ArrayDimensions: f.ArrayDimensions,
				IsOptional:      f.IsOptional,
			}
			if f.ValueRank != nil {
				field.ValueRank = *f.ValueRank
			}
			def.Fields[i] = field
		}
		return def, nil
	case len(d.Enum) > 0:
		def := ua.EnumDefinition{Fields: make([]ua.EnumField, len(d.Enum))}
		for i, f := range d.Enum {
			def.Fields[i] = ua.EnumField{Name: f.Name, Value: f.Value}
		}
		return def, nil
	}
	return nil, errors.New("structure or enum fields are required")
}
