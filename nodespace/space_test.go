package nodespace

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	nodeset "github.com/uakit/nodeset-go"
	"github.com/uakit/nodeset-go/ua"
)

var (
	_ nodeset.AddressSpace = (*Space)(nil)
	_ nodeset.TypeResolver = (*Space)(nil)
	_ nodeset.Node         = (*Node)(nil)
)

func TestAddNamespace(t *testing.T) {
	s := New()
	assert.Equal(t, uint16(1), s.AddNamespace("urn:example:machines"))
	assert.Equal(t, uint16(2), s.AddNamespace("urn:example:sensors"))
	assert.Equal(t, uint16(1), s.AddNamespace("urn:example:machines"))
	assert.Equal(t, uint16(0), s.AddNamespace(opcUANamespace))

	table, err := s.NamespaceArray(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{opcUANamespace, "urn:example:machines", "urn:example:sensors"}, table)
}

func TestNamespaceArrayCopies(t *testing.T) {
	s := New()
	s.AddNamespace("urn:example:machines")

	table, err := s.NamespaceArray(context.Background())
	require.NoError(t, err)
	table[0] = "mutated"

	table, err = s.NamespaceArray(context.Background())
	require.NoError(t, err)
	assert.Equal(t, opcUANamespace, table[0])
}

func TestAddNode(t *testing.T) {
	s := New()
	ns := s.AddNamespace("urn:example:plant")

	node, err := s.AddNode(NodeConfig{
		ID:         ua.NewNumericID(ns, 1),
		Class:      ua.NodeClassObject,
		BrowseName: ua.NewQualifiedName(ns, "Pump"),
	})
	require.NoError(t, err)

	display, err := node.DisplayName(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Pump", display.Text)

	_, err = s.AddNode(NodeConfig{
		ID:         ua.NewNumericID(ns, 1),
		Class:      ua.NodeClassObject,
		BrowseName: ua.NewQualifiedName(ns, "Other"),
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")

	found, ok := s.Node(ua.NewNumericID(ns, 1))
	require.True(t, ok)
	assert.Same(t, node, found)

	_, ok = s.Node(ua.NewNumericID(ns, 99))
	assert.False(t, ok)
}

func TestNodesInsertionOrder(t *testing.T) {
	s := New()
	ns := s.AddNamespace("urn:example:plant")
	for i := uint32(1); i <= 3; i++ {
		_, err := s.AddNode(NodeConfig{
			ID:         ua.NewNumericID(ns, i),
			Class:      ua.NodeClassObject,
			BrowseName: ua.NewQualifiedName(ns, "N"),
		})
		require.NoError(t, err)
	}

	nodes := s.Nodes()
	require.Len(t, nodes, 3)
	for i, node := range nodes {
		assert.Equal(t, ua.NewNumericID(ns, uint32(i+1)), node.ID())
	}
}

func TestAddReference(t *testing.T) {
	s := New()
	ns := s.AddNamespace("urn:example:plant")
	folder, err := s.AddNode(NodeConfig{
		ID:         ua.NewNumericID(ns, 1),
		Class:      ua.NodeClassObject,
		BrowseName: ua.NewQualifiedName(ns, "Folder"),
	})
	require.NoError(t, err)
	child, err := s.AddNode(NodeConfig{
		ID:         ua.NewNumericID(ns, 2),
		Class:      ua.NodeClassObject,
		BrowseName: ua.NewQualifiedName(ns, "Child"),
	})
	require.NoError(t, err)

	hasComponent := ua.NewNumericID(0, ua.IDHasComponent)
	require.NoError(t, s.AddReference(folder.ID(), hasComponent, child.ID()))

	refs, err := folder.References(context.Background())
	require.NoError(t, err)
	require.Len(t, refs, 1)
	assert.Equal(t, ua.Reference{TypeID: hasComponent, TargetID: child.ID(), IsForward: true}, refs[0])

	refs, err = child.References(context.Background())
	require.NoError(t, err)
	require.Len(t, refs, 1)
	assert.Equal(t, ua.Reference{TypeID: hasComponent, TargetID: folder.ID(), IsForward: false}, refs[0])

	t.Run("external target", func(t *testing.T) {
		external := ua.NewNumericID(0, ua.IDFolderType)
		require.NoError(t, s.AddReference(folder.ID(), ua.NewNumericID(0, ua.IDHasTypeDefinition), external))

		refs, err := folder.References(context.Background())
		require.NoError(t, err)
		assert.Len(t, refs, 2)
	})

	t.Run("external source", func(t *testing.T) {
		objects := ua.NewNumericID(0, ua.IDObjectsFolder)
		organizes := ua.NewNumericID(0, ua.IDOrganizes)
		require.NoError(t, s.AddReference(objects, organizes, folder.ID()))

		refs, err := folder.References(context.Background())
		require.NoError(t, err)
		last := refs[len(refs)-1]
		assert.Equal(t, ua.Reference{TypeID: organizes, TargetID: objects, IsForward: false}, last)
	})

	t.Run("neither local", func(t *testing.T) {
		err := s.AddReference(ua.NewNumericID(ns, 50), ua.NewNumericID(0, ua.IDHasTypeDefinition), ua.NewNumericID(ns, 51))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "neither node found")
	})
}

func TestBaseDataType(t *testing.T) {
	ctx := context.Background()
	hasSubtype := ua.NewNumericID(0, ua.IDHasSubtype)

	t.Run("builtin", func(t *testing.T) {
		s := New()
		base, err := s.BaseDataType(ctx, ua.NewNumericID(0, ua.IDInt32))
		require.NoError(t, err)
		assert.Equal(t, ua.NewNumericID(0, ua.IDInt32), base)
	})

	t.Run("standard subtype", func(t *testing.T) {
		s := New()
		base, err := s.BaseDataType(ctx, ua.NewNumericID(0, ua.IDDuration))
		require.NoError(t, err)
		assert.Equal(t, ua.NewNumericID(0, ua.IDDouble), base)

		base, err = s.BaseDataType(ctx, ua.NewNumericID(0, ua.IDLocaleId))
		require.NoError(t, err)
		assert.Equal(t, ua.NewNumericID(0, ua.IDString), base)

		base, err = s.BaseDataType(ctx, ua.NewNumericID(0, ua.IDArgument))
		require.NoError(t, err)
		assert.Equal(t, ua.NewNumericID(0, ua.IDStructure), base)
	})

	t.Run("custom structure", func(t *testing.T) {
		s := New()
		ns := s.AddNamespace("urn:example:plant")
		id := ua.NewNumericID(ns, 100)
		_, err := s.AddNode(NodeConfig{
			ID:         id,
			Class:      ua.NodeClassDataType,
			BrowseName: ua.NewQualifiedName(ns, "ServoStatus"),
		})
		require.NoError(t, err)
		require.NoError(t, s.AddReference(ua.NewNumericID(0, ua.IDStructure), hasSubtype, id))

		base, err := s.BaseDataType(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, ua.NewNumericID(0, ua.IDStructure), base)
	})

	t.Run("custom chain", func(t *testing.T) {
		s := New()
		ns := s.AddNamespace("urn:example:plant")
		parent := ua.NewNumericID(ns, 100)
		child := ua.NewNumericID(ns, 101)
		for _, id := range []ua.NodeID{parent, child} {
			_, err := s.AddNode(NodeConfig{
				ID:         id,
				Class:      ua.NodeClassDataType,
				BrowseName: ua.NewQualifiedName(ns, "T"),
			})
			require.NoError(t, err)
		}
		require.NoError(t, s.AddReference(ua.NewNumericID(0, ua.IDEnumeration), hasSubtype, parent))
		require.NoError(t, s.AddReference(parent, hasSubtype, child))

		base, err := s.BaseDataType(ctx, child)
		require.NoError(t, err)
		assert.Equal(t, ua.NewNumericID(0, ua.IDEnumeration), base)
	})

	t.Run("unknown type", func(t *testing.T) {
		s := New()
		_, err := s.BaseDataType(ctx, ua.NewNumericID(1, 999))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "node not found")
	})

	t.Run("missing supertype", func(t *testing.T) {
		s := New()
		ns := s.AddNamespace("urn:example:plant")
		id := ua.NewNumericID(ns, 100)
		_, err := s.AddNode(NodeConfig{
			ID:         id,
			Class:      ua.NodeClassDataType,
			BrowseName: ua.NewQualifiedName(ns, "Detached"),
		})
		require.NoError(t, err)

		_, err = s.BaseDataType(ctx, id)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "no supertype")
	})

	t.Run("cycle", func(t *testing.T) {
		s := New()
		ns := s.AddNamespace("urn:example:plant")
		a := ua.NewNumericID(ns, 100)
		b := ua.NewNumericID(ns, 101)
		for _, id := range []ua.NodeID{a, b} {
			_, err := s.AddNode(NodeConfig{
				ID:         id,
				Class:      ua.NodeClassDataType,
				BrowseName: ua.NewQualifiedName(ns, "T"),
			})
			require.NoError(t, err)
		}
		require.NoError(t, s.AddReference(a, hasSubtype, b))
		require.NoError(t, s.AddReference(b, hasSubtype, a))

		_, err := s.BaseDataType(ctx, a)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "supertype cycle")
	})
}

func TestSpaceExport(t *testing.T) {
	s := New()
	ns := s.AddNamespace("urn:example:plant")

	objID := ua.NewNumericID(ns, 1)
	_, err := s.AddNode(NodeConfig{
		ID:         objID,
		Class:      ua.NodeClassObject,
		BrowseName: ua.NewQualifiedName(ns, "Plant"),
	})
	require.NoError(t, err)

	varID := ua.NewNumericID(ns, 2)
	_, err = s.AddNode(NodeConfig{
		ID:         varID,
		Class:      ua.NodeClassVariable,
		BrowseName: ua.NewQualifiedName(ns, "Temperature"),
		DataType:   ua.NewNumericID(0, ua.IDDouble),
		Value:      21.5,
	})
	require.NoError(t, err)

	require.NoError(t, s.AddReference(ua.NewNumericID(0, ua.IDObjectsFolder), ua.NewNumericID(0, ua.IDOrganizes), objID))
	require.NoError(t, s.AddReference(objID, ua.NewNumericID(0, ua.IDHasComponent), varID))

	var nodes []nodeset.Node
	for _, n := range s.Nodes() {
		nodes = append(nodes, n)
	}
	doc, err := nodeset.New(s, s).Build(context.Background(), nodes)
	require.NoError(t, err)
	require.Len(t, doc.Root.Children, 4)

	obj := doc.Root.Children[2]
	assert.Equal(t, "UAObject", obj.Name.Local)
	parent, ok := obj.AttrValue("ParentNodeId")
	require.True(t, ok)
	assert.Equal(t, "i=85", parent)

	variable := doc.Root.Children[3]
	assert.Equal(t, "UAVariable", variable.Name.Local)
	parent, ok = variable.AttrValue("ParentNodeId")
	require.True(t, ok)
	assert.Equal(t, "ns=1;i=1", parent)
	dataType, ok := variable.AttrValue("DataType")
	require.True(t, ok)
	assert.Equal(t, "Double", dataType)
}
