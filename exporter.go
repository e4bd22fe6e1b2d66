package nodeset

import (
	"context"
	"strconv"
	"strings"

	"github.com/uakit/nodeset-go/logging"
	"github.com/uakit/nodeset-go/ua"
	"github.com/uakit/nodeset-go/xml"
)

// Namespace URIs fixed by the UANodeSet schema, declared on every root
// element in this order.
const (
	xsiNamespace     = "http://www.w3.org/2001/XMLSchema-instance"
	typesNamespace   = "http://opcfoundation.org/UA/2008/02/Types.xsd"
	xsdNamespace     = "http://www.w3.org/2001/XMLSchema"
	nodeSetNamespace = "http://opcfoundation.org/UA/2011/03/UANodeSet.xsd"
)

// Exporter builds UANodeSet documents from address-space nodes. One Build
// runs at a time per Exporter; Build resets all per-run state, so an
// Exporter may be reused sequentially. Concurrent exports need independent
// Exporter instances.
type Exporter struct {
	space  AddressSpace
	types  TypeResolver
	logger logging.Logger
	uris   []string

	// Per-run state owned by Build.
	log     logging.Logger
	indexes map[uint16]uint16
	aliases *aliasRegistry
	root    *xml.Element
}

// An Option configures an Exporter.
type Option func(*Exporter)

// WithLogger sets the logger for progress and skip diagnostics. The
// default discards all entries.
func WithLogger(logger logging.Logger) Option {
	return func(e *Exporter) {
		e.logger = logger
	}
}

// WithNamespaceURIs declares namespace URIs in the document even when no
// exported node references them. URIs missing from the address space's
// namespace table are ignored.
func WithNamespaceURIs(uris ...string) Option {
	return func(e *Exporter) {
		e.uris = append(e.uris, uris...)
	}
}

// New returns an Exporter reading from space and resolving data types
// through types.
func New(space AddressSpace, types TypeResolver, opts ...Option) *Exporter {
	e := &Exporter{
		space:  space,
		types:  types,
		logger: logging.Noop{},
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Build exports nodes, in the given order, into a complete document.
// Namespace indices are remapped before any node is serialized so every
// emitted id is stable across the run; the NamespaceUris and Aliases
// blocks are inserted afterwards as the first two children of the root.
func (e *Exporter) Build(ctx context.Context, nodes []Node) (*xml.Document, error) {
	e.log = logging.WithContext(ctx, e.logger)
	e.aliases = newAliasRegistry()
	e.indexes = nil

	e.root = xml.NewElement("UANodeSet")
	e.root.SetAttrNS("xmlns", "xsi", xsiNamespace)
	e.root.SetAttrNS("xmlns", uax, typesNamespace)
	e.root.SetAttrNS("xmlns", "xsd", xsdNamespace)
	e.root.SetAttrNS("xmlns", "", nodeSetNamespace)

	e.log.Logf(logging.Debug, "exporting %d nodes", len(nodes))
	uris, err := e.mapNamespaces(ctx, nodes)
	if err != nil {
		e.log.Logf(logging.Warn, "export aborted: %v", err)
		return nil, err
	}
	for _, node := range nodes {
		if err := e.serializeNode(ctx, node); err != nil {
			e.log.Logf(logging.Warn, "export aborted: %v", err)
			return nil, err
		}
	}

	e.root.InsertChild(0, namespaceURIsElement(uris))
	e.root.InsertChild(1, aliasesElement(e.aliases))
	return &xml.Document{Root: e.root}, nil
}

// serializeNode appends one element for node, dispatched on its class.
// Classes the document format has no element for are skipped.
func (e *Exporter) serializeNode(ctx context.Context, node Node) error {
	class, err := node.NodeClass(ctx)
	if err != nil {
		return nodeErr(node.ID(), "read node class", err)
	}
	switch class {
	case ua.NodeClassObject:
		return e.serializeObject(ctx, node)
	case ua.NodeClassObjectType:
		return e.serializeObjectType(ctx, node)
	case ua.NodeClassVariable:
		return e.serializeVariable(ctx, node)
	case ua.NodeClassVariableType:
		return e.serializeVariableType(ctx, node)
	case ua.NodeClassReferenceType:
		return e.serializeReferenceType(ctx, node)
	case ua.NodeClassDataType:
		return e.serializeDataType(ctx, node)
	case ua.NodeClassMethod:
		return e.serializeMethod(ctx, node)
	}
	e.log.Logf(logging.Warn, "skipping node %s: unsupported node class %s", node.ID(), class)
	return nil
}

// commonElement appends the node's top-level element with the attributes
// and children every class shares: NodeId, BrowseName, ParentNodeId for
// instance classes, DisplayName and Description.
func (e *Exporter) commonElement(ctx context.Context, tag string, node Node, class ua.NodeClass) (*xml.Element, error) {
	bname, err := node.BrowseName(ctx)
	if err != nil {
		return nil, nodeErr(node.ID(), "read browse name", err)
	}
	display, err := node.DisplayName(ctx)
	if err != nil {
		return nil, nodeErr(node.ID(), "read display name", err)
	}
	desc, err := node.Description(ctx)
	if err != nil {
		return nil, nodeErr(node.ID(), "read description", err)
	}

	el := e.root.Sub(tag)
	el.SetAttr("NodeId", e.nodeIDString(node.ID()))
	el.SetAttr("BrowseName", e.browseNameString(bname))
	switch class {
	case ua.NodeClassObject, ua.NodeClassVariable, ua.NodeClassMethod:
		parent, ok, err := node.Parent(ctx)
		if err != nil {
			return nil, nodeErr(node.ID(), "read parent", err)
		}
		if ok {
			el.SetAttr("ParentNodeId", e.nodeIDString(parent))
		}
	}
	el.Sub("DisplayName").SetText(display.Text)
	if desc.Text != "" {
		el.Sub("Description").SetText(desc.Text)
	}
	return el, nil
}

func (e *Exporter) serializeObject(ctx context.Context, node Node) error {
	el, err := e.commonElement(ctx, "UAObject", node, ua.NodeClassObject)
	if err != nil {
		return err
	}
	notifier, err := node.Attribute(ctx, ua.AttrEventNotifier)
	if err != nil {
		return nodeErr(node.ID(), "read event notifier", err)
	}
	if n, ok := variantInt(notifier); ok && n != 0 {
		el.SetAttr("EventNotifier", strconv.FormatInt(n, 10))
	}
	return e.addReferences(ctx, el, node)
}

func (e *Exporter) serializeObjectType(ctx context.Context, node Node) error {
	el, err := e.commonElement(ctx, "UAObjectType", node, ua.NodeClassObjectType)
	if err != nil {
		return err
	}
	if err := e.addAbstract(ctx, el, node); err != nil {
		return err
	}
	return e.addReferences(ctx, el, node)
}

func (e *Exporter) serializeVariable(ctx context.Context, node Node) error {
	el, err := e.commonElement(ctx, "UAVariable", node, ua.NodeClassVariable)
	if err != nil {
		return err
	}
	if err := e.addReferences(ctx, el, node); err != nil {
		return err
	}
	if err := e.addVariableCommon(ctx, el, node); err != nil {
		return err
	}

	access, err := node.Attribute(ctx, ua.AttrAccessLevel)
	if err != nil {
		return nodeErr(node.ID(), "read access level", err)
	}
	if n, ok := variantInt(access); ok && n != 0 && n != int64(ua.AccessLevelCurrentRead) {
		el.SetAttr("AccessLevel", strconv.FormatInt(n, 10))
	}
	userAccess, err := node.Attribute(ctx, ua.AttrUserAccessLevel)
	if err != nil {
		return nodeErr(node.ID(), "read user access level", err)
	}
	if n, ok := variantInt(userAccess); ok && n != 0 && n != int64(ua.AccessLevelCurrentRead) {
		el.SetAttr("UserAccessLevel", strconv.FormatInt(n, 10))
	}

	interval, err := node.Attribute(ctx, ua.AttrMinimumSamplingInterval)
	if err != nil {
		return nodeErr(node.ID(), "read minimum sampling interval", err)
	}
	if f, ok := variantFloat(interval); ok && f != 0 {
		el.SetAttr("MinimumSamplingInterval", xml.FormatFloat(f, 64))
	}
	historizing, err := node.Attribute(ctx, ua.AttrHistorizing)
	if err != nil {
		return nodeErr(node.ID(), "read historizing", err)
	}
	if b, ok := historizing.Bool(); ok && b {
		el.SetAttr("Historizing", "true")
	}
	return nil
}

func (e *Exporter) serializeVariableType(ctx context.Context, node Node) error {
	el, err := e.commonElement(ctx, "UAVariableType", node, ua.NodeClassVariableType)
	if err != nil {
		return err
	}
	if err := e.addReferences(ctx, el, node); err != nil {
		return err
	}
	if err := e.addVariableCommon(ctx, el, node); err != nil {
		return err
	}
	return e.addAbstract(ctx, el, node)
}

func (e *Exporter) serializeReferenceType(ctx context.Context, node Node) error {
	el, err := e.commonElement(ctx, "UAReferenceType", node, ua.NodeClassReferenceType)
	if err != nil {
		return err
	}
	if err := e.addReferences(ctx, el, node); err != nil {
		return err
	}
	inverse, err := node.Attribute(ctx, ua.AttrInverseName)
	if err != nil {
		return nodeErr(node.ID(), "read inverse name", err)
	}
	if lt, ok := inverse.Value().(ua.LocalizedText); ok && lt.Text != "" {
		el.Sub("InverseName").SetText(lt.Text)
	}
	return nil
}

func (e *Exporter) serializeDataType(ctx context.Context, node Node) error {
	el, err := e.commonElement(ctx, "UADataType", node, ua.NodeClassDataType)
	if err != nil {
		return err
	}
	if err := e.addReferences(ctx, el, node); err != nil {
		return err
	}

	def, err := node.Attribute(ctx, ua.AttrDataTypeDefinition)
	if err != nil {
		return nodeErr(node.ID(), "read data type definition", err)
	}
	if def.IsNil() {
		return nil
	}
	bname, err := node.BrowseName(ctx)
	if err != nil {
		return nodeErr(node.ID(), "read browse name", err)
	}
	defEl := el.Sub("Definition")
	defEl.SetAttr("Name", bname.Name)
	switch d := def.Value().(type) {
	case ua.StructureDefinition:
		appendStructureFields(defEl, d)
	case ua.EnumDefinition:
		appendEnumFields(defEl, d)
	default:
		e.log.Logf(logging.Warn, "node %s: unrecognized data type definition %T", node.ID(), def.Value())
	}
	return nil
}

func (e *Exporter) serializeMethod(ctx context.Context, node Node) error {
	el, err := e.commonElement(ctx, "UAMethod", node, ua.NodeClassMethod)
	if err != nil {
		return err
	}
	exec, err := node.Attribute(ctx, ua.AttrExecutable)
	if err != nil {
		return nodeErr(node.ID(), "read executable", err)
	}
	if b, ok := exec.Bool(); ok && !b {
		el.SetAttr("Executable", "false")
	}
	userExec, err := node.Attribute(ctx, ua.AttrUserExecutable)
	if err != nil {
		return nodeErr(node.ID(), "read user executable", err)
	}
	if b, ok := userExec.Bool(); ok && !b {
		el.SetAttr("UserExecutable", "false")
	}
	return e.addReferences(ctx, el, node)
}

// addVariableCommon sets the data-type directed pieces Variable and
// VariableType share: ValueRank, ArrayDimensions and DataType attributes,
// then the encoded Value child. Standard data types are written by alias
// name and registered; custom ones by remapped id string.
func (e *Exporter) addVariableCommon(ctx context.Context, el *xml.Element, node Node) error {
	dtype, err := node.DataType(ctx)
	if err != nil {
		return nodeErr(node.ID(), "read data type", err)
	}
	dtypeName, ok := ua.StandardName(dtype)
	if ok {
		e.aliases.register(dtype, dtypeName)
	} else {
		dtypeName = e.nodeIDString(dtype)
	}

	rank, err := node.Attribute(ctx, ua.AttrValueRank)
	if err != nil {
		return nodeErr(node.ID(), "read value rank", err)
	}
	if r, ok := variantInt(rank); ok && r != int64(ua.ValueRankScalar) {
		el.SetAttr("ValueRank", strconv.FormatInt(r, 10))
	}
	dims, err := node.Attribute(ctx, ua.AttrArrayDimensions)
	if err != nil {
		return nodeErr(node.ID(), "read array dimensions", err)
	}
	if d, ok := dims.Value().([]uint32); ok && len(d) > 0 {
		el.SetAttr("ArrayDimensions", joinDimensions(d))
	}
	el.SetAttr("DataType", dtypeName)

	value, err := node.Value(ctx)
	if err != nil {
		return nodeErr(node.ID(), "read value", err)
	}
	if value.IsNil() {
		return nil
	}
	if err := e.encodeValue(ctx, el.Sub("Value"), dtypeName, dtype, value.Value()); err != nil {
		return nodeErr(node.ID(), "encode value", err)
	}
	return nil
}

// addAbstract sets IsAbstract for type nodes when the flag is set.
func (e *Exporter) addAbstract(ctx context.Context, el *xml.Element, node Node) error {
	abstract, err := node.Attribute(ctx, ua.AttrIsAbstract)
	if err != nil {
		return nodeErr(node.ID(), "read is abstract", err)
	}
	if b, ok := abstract.Bool(); ok && b {
		el.SetAttr("IsAbstract", "true")
	}
	return nil
}

// addReferences appends the References child: one Reference element per
// edge. Standard reference types are written by name and registered as
// aliases; all others fall back to the remapped id string unregistered.
func (e *Exporter) addReferences(ctx context.Context, el *xml.Element, node Node) error {
	refs, err := node.References(ctx)
	if err != nil {
		return nodeErr(node.ID(), "read references", err)
	}
	refsEl := el.Sub("References")
	for _, ref := range refs {
		name, ok := ua.StandardName(ref.TypeID)
		if ok {
			e.aliases.register(ref.TypeID, name)
		} else {
			name = e.nodeIDString(ref.TypeID)
		}
		refEl := refsEl.Sub("Reference")
		refEl.SetAttr("ReferenceType", name)
		if !ref.IsForward {
			refEl.SetAttr("IsForward", "false")
		}
		refEl.SetText(e.nodeIDString(ref.TargetID))
	}
	return nil
}

func appendStructureFields(defEl *xml.Element, def ua.StructureDefinition) {
	for _, f := range def.Fields {
		fieldEl := defEl.Sub("Field")
		fieldEl.SetAttr("Name", f.Name)
		fieldEl.SetAttr("Datatype", f.DataType.String())
		if f.ValueRank != ua.ValueRankScalar {
			fieldEl.SetAttr("ValueRank", strconv.FormatInt(int64(f.ValueRank), 10))
		}
		if len(f.ArrayDimensions) > 0 {
			fieldEl.SetAttr("ArrayDimensions", joinDimensions(f.ArrayDimensions))
		}
		if f.IsOptional {
			fieldEl.SetAttr("IsOptional", "true")
		}
	}
}

func appendEnumFields(defEl *xml.Element, def ua.EnumDefinition) {
	for _, f := range def.Fields {
		fieldEl := defEl.Sub("Field")
		fieldEl.SetAttr("Name", f.Name)
		fieldEl.SetAttr("Value", strconv.FormatInt(f.Value, 10))
	}
}

// namespaceURIsElement builds the NamespaceUris block.
func namespaceURIsElement(uris []string) *xml.Element {
	el := xml.NewElement("NamespaceUris")
	for _, uri := range uris {
		el.Sub("Uri").SetText(uri)
	}
	return el
}

// aliasesElement builds the Aliases block, ordered by node id.
func aliasesElement(aliases *aliasRegistry) *xml.Element {
	el := xml.NewElement("Aliases")
	for _, entry := range aliases.entries() {
		alias := el.Sub("Alias")
		alias.SetAttr("Alias", entry.Name)
		alias.SetText(entry.ID.String())
	}
	return el
}

// joinDimensions renders array dimensions as a comma separated decimal
// list.
func joinDimensions(dims []uint32) string {
	parts := make([]string, len(dims))
	for i, d := range dims {
		parts[i] = strconv.FormatUint(uint64(d), 10)
	}
	return strings.Join(parts, ",")
}

// variantInt widens any integer variant to int64.
func variantInt(v ua.Variant) (int64, bool) {
	if n, ok := v.Int(); ok {
		return n, true
	}
	if n, ok := v.Uint(); ok {
		return int64(n), true
	}
	return 0, false
}

// variantFloat widens any numeric variant to float64.
func variantFloat(v ua.Variant) (float64, bool) {
	if f, ok := v.Float(); ok {
		return f, true
	}
	if n, ok := variantInt(v); ok {
		return float64(n), true
	}
	return 0, false
}
