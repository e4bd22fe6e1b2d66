// Package nodedef loads declarative address space models from YAML.
//
// A model lists namespace URIs and the nodes to export. Each node carries
// its class, browse name, optional class-specific attributes, a typed
// value, and references. Build assembles a nodespace.Space from the model
// and returns the declared nodes in order, so an export over them is
// deterministic.
//
// References are declared once, on either endpoint: a forward entry adds
// the edge from the declaring node, an entry with forward: false adds it
// from the target. Both local endpoints receive the edge.
package nodedef

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/uakit/nodeset-go/nodespace"
	"github.com/uakit/nodeset-go/ua"
	"gopkg.in/yaml.v3"
)

// Definition is a parsed model document.
type Definition struct {
	Namespaces []string  `yaml:"namespaces"`
	Nodes      []nodeDef `yaml:"nodes"`
}

type nodeDef struct {
	ID                      string         `yaml:"id"`
	Class                   string         `yaml:"class"`
	BrowseName              string         `yaml:"browse_name"`
	DisplayName             string         `yaml:"display_name"`
	Description             string         `yaml:"description"`
	DataType                string         `yaml:"data_type"`
	Value                   *valueDef      `yaml:"value"`
	EventNotifier           *uint8         `yaml:"event_notifier"`
	IsAbstract              *bool          `yaml:"is_abstract"`
	ValueRank               *int32         `yaml:"value_rank"`
	ArrayDimensions         []uint32       `yaml:"array_dimensions"`
	AccessLevel             *uint8         `yaml:"access_level"`
	UserAccessLevel         *uint8         `yaml:"user_access_level"`
	MinimumSamplingInterval *float64       `yaml:"minimum_sampling_interval"`
	Historizing             *bool          `yaml:"historizing"`
	Executable              *bool          `yaml:"executable"`
	UserExecutable          *bool          `yaml:"user_executable"`
	InverseName             string         `yaml:"inverse_name"`
	Definition              *definitionDef `yaml:"definition"`
	References              []referenceDef `yaml:"references"`
}

type referenceDef struct {
	Type    string `yaml:"type"`
	Target  string `yaml:"target"`
	Forward *bool  `yaml:"forward"`
}

// Load parses a model document. Unknown fields are errors, so typos in
// field names fail the load instead of silently dropping data.
func Load(r io.Reader) (*Definition, error) {
	var d Definition
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&d); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errors.New("model document is empty")
		}
		return nil, fmt.Errorf("parse model: %w", err)
	}
	return &d, nil
}

// LoadFile reads and parses the model document at path.
func LoadFile(path string) (*Definition, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	d, err := Load(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return d, nil
}

// Build assembles an address space from the definition. All nodes are
// created before any reference is added, so references between declared
// nodes resolve regardless of declaration order. The returned slice holds
// the declared nodes in document order.
func (d *Definition) Build() (*nodespace.Space, []*nodespace.Node, error) {
	space := nodespace.New()
	for _, uri := range d.Namespaces {
		space.AddNamespace(uri)
	}

	nodes := make([]*nodespace.Node, 0, len(d.Nodes))
	ids := make([]ua.NodeID, len(d.Nodes))
	for i, def := range d.Nodes {
		cfg, err := def.config()
		if err != nil {
			return nil, nil, fmt.Errorf("node %q: %w", def.ID, err)
		}
		node, err := space.AddNode(cfg)
		if err != nil {
			return nil, nil, err
		}
		nodes = append(nodes, node)
		ids[i] = cfg.ID
	}

	for i, def := range d.Nodes {
		for _, ref := range def.References {
			if err := addReference(space, ids[i], ref); err != nil {
				return nil, nil, fmt.Errorf("node %q: %w", def.ID, err)
			}
		}
	}
	return space, nodes, nil
}

func (n *nodeDef) config() (nodespace.NodeConfig, error) {
	var cfg nodespace.NodeConfig
	if n.ID == "" {
		return cfg, errors.New("id is required")
	}
	id, err := ua.ParseNodeID(n.ID)
	if err != nil {
		return cfg, err
	}
	class, err := ua.ParseNodeClass(n.Class)
	if err != nil {
		return cfg, err
	}
	if n.BrowseName == "" {
		return cfg, errors.New("browse_name is required")
	}
	bname, err := ua.ParseQualifiedName(n.BrowseName)
	if err != nil {
		return cfg, err
	}

	cfg = nodespace.NodeConfig{
		ID:          id,
		Class:       class,
		BrowseName:  bname,
		DisplayName: n.DisplayName,
		Description: n.Description,
	}
	if n.DataType != "" {
		if cfg.DataType, err = resolveNodeID(n.DataType); err != nil {
			return cfg, fmt.Errorf("data_type: %w", err)
		}
	}
	if n.Value != nil {
		if cfg.Value, err = n.Value.parse(); err != nil {
			return cfg, err
		}
	}
	cfg.Attributes, err = n.attributes()
	return cfg, err
}

func (n *nodeDef) attributes() (map[ua.AttributeID]interface{}, error) {
	attrs := make(map[ua.AttributeID]interface{})
	if n.EventNotifier != nil {
		attrs[ua.AttrEventNotifier] = *n.EventNotifier
	}
	if n.IsAbstract != nil {
		attrs[ua.AttrIsAbstract] = *n.IsAbstract
	}
	if n.ValueRank != nil {
		attrs[ua.AttrValueRank] = *n.ValueRank
	}
	if len(n.ArrayDimensions) > 0 {
		attrs[ua.AttrArrayDimensions] = n.ArrayDimensions
	}
	if n.AccessLevel != nil {
		attrs[ua.AttrAccessLevel] = *n.AccessLevel
	}
	if n.UserAccessLevel != nil {
		attrs[ua.AttrUserAccessLevel] = *n.UserAccessLevel
	}
	if n.MinimumSamplingInterval != nil {
		attrs[ua.AttrMinimumSamplingInterval] = *n.MinimumSamplingInterval
	}
	if n.Historizing != nil {
		attrs[ua.AttrHistorizing] = *n.Historizing
	}
	if n.Executable != nil {
		attrs[ua.AttrExecutable] = *n.Executable
	}
	if n.UserExecutable != nil {
		attrs[ua.AttrUserExecutable] = *n.UserExecutable
	}
	if n.InverseName != "" {
		attrs[ua.AttrInverseName] = ua.NewLocalizedText(n.InverseName)
	}
	if n.Definition != nil {
		def, err := n.Definition.value()
		if err != nil {
			return nil, fmt.Errorf("definition: %w", err)
		}
		attrs[ua.AttrDataTypeDefinition] = def
	}
	if len(attrs) == 0 {
		return nil, nil
	}
	return attrs, nil
}

func addReference(space *nodespace.Space, node ua.NodeID, ref referenceDef) error {
	refType, err := resolveNodeID(ref.Type)
	if err != nil {
		return fmt.Errorf("reference type: %w", err)
	}
	target, err := resolveNodeID(ref.Target)
	if err != nil {
		return fmt.Errorf("reference target: %w", err)
	}
	if ref.Forward == nil || *ref.Forward {
		return space.AddReference(node, refType, target)
	}
	return space.AddReference(target, refType, node)
}

// resolveNodeID accepts either a standard node name ("HasComponent",
// "Int32") or a NodeID string ("ns=1;i=2001").
func resolveNodeID(s string) (ua.NodeID, error) {
	if id, ok := ua.ObjectIDByName(s); ok {
		return ua.NewNumericID(0, id), nil
	}
	return ua.ParseNodeID(s)
}
