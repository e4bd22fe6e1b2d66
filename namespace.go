package nodeset

import (
	"context"
	"fmt"
	"sort"

	"github.com/uakit/nodeset-go/ua"
)

// mapNamespaces builds the per-run source-to-document namespace index map
// and returns the URIs the document must declare, ordered by their export
// index.
func (e *Exporter) mapNamespaces(ctx context.Context, nodes []Node) ([]string, error) {
	table, err := e.space.NamespaceArray(ctx)
	if err != nil {
		return nil, fmt.Errorf("read namespace array: %w", err)
	}
	idxs, err := e.collectIndexes(ctx, nodes)
	if err != nil {
		return nil, err
	}
	idxs = addRequestedIndexes(idxs, e.uris, table)
	e.indexes = makeIndexMap(idxs, len(table))
	return exportURIs(e.indexes, table), nil
}

// collectIndexes gathers every non-zero namespace index the nodes use:
// their ids, their browse names, and their references' type and target
// ids. A browse name that cannot be read aborts the export.
func (e *Exporter) collectIndexes(ctx context.Context, nodes []Node) ([]uint16, error) {
	var idxs []uint16
	seen := make(map[uint16]struct{})
	add := func(idx uint16) {
		if idx == 0 {
			return
		}
		if _, ok := seen[idx]; ok {
			return
		}
		seen[idx] = struct{}{}
		idxs = append(idxs, idx)
	}

	for _, node := range nodes {
		add(node.ID().Namespace())
		bname, err := node.BrowseName(ctx)
		if err != nil {
			return nil, nodeErr(node.ID(), "read browse name", err)
		}
		add(bname.NamespaceIndex)
		refs, err := node.References(ctx)
		if err != nil {
			return nil, nodeErr(node.ID(), "read references", err)
		}
		for _, ref := range refs {
			add(ref.TypeID.Namespace())
			add(ref.TargetID.Namespace())
		}
	}
	return idxs, nil
}

// addRequestedIndexes appends the index of every requested URI found in
// the namespace table. Unknown URIs and the reserved index 0 are ignored.
func addRequestedIndexes(idxs []uint16, uris []string, table []string) []uint16 {
	for _, uri := range uris {
		for i, entry := range table {
			if entry != uri {
				continue
			}
			idx := uint16(i)
			if idx != 0 && !containsIndex(idxs, idx) {
				idxs = append(idxs, idx)
			}
			break
		}
	}
	return idxs
}

func containsIndex(idxs []uint16, idx uint16) bool {
	for _, i := range idxs {
		if i == idx {
			return true
		}
	}
	return false
}

// makeIndexMap assigns compact document indices: 0 stays 0, the collected
// indices get 1..N in ascending source order. An index at or beyond the
// table length is a dangling namespace reference and is dropped.
func makeIndexMap(idxs []uint16, tableLen int) map[uint16]uint16 {
	sorted := make([]uint16, len(idxs))
	copy(sorted, idxs)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })

	indexes := map[uint16]uint16{0: 0}
	next := uint16(1)
	for _, idx := range sorted {
		if int(idx) >= tableLen {
			break
		}
		indexes[idx] = next
		next++
	}
	return indexes
}

// exportURIs lists the table URIs for every mapped index except 0,
// ordered by export index.
func exportURIs(indexes map[uint16]uint16, table []string) []string {
	src := make([]uint16, 0, len(indexes))
	for idx := range indexes {
		if idx != 0 {
			src = append(src, idx)
		}
	}
	sort.Slice(src, func(i, j int) bool { return src[i] < src[j] })

	uris := make([]string, 0, len(src))
	for _, idx := range src {
		uris = append(uris, table[idx])
	}
	return uris
}

// nodeIDString renders id with its namespace index remapped into document
// space. An unmapped index passes through unchanged.
func (e *Exporter) nodeIDString(id ua.NodeID) string {
	if docIdx, ok := e.indexes[id.Namespace()]; ok {
		id = id.WithNamespace(docIdx)
	}
	return id.String()
}

// browseNameString renders a browse name with its namespace index
// remapped into document space.
func (e *Exporter) browseNameString(name ua.QualifiedName) string {
	if docIdx, ok := e.indexes[name.NamespaceIndex]; ok {
		name = name.WithNamespace(docIdx)
	}
	return name.String()
}
