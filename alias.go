package nodeset

import (
	"sort"

	"github.com/uakit/nodeset-go/ua"
)

// aliasRegistry accumulates the symbolic names substituted for node id
// strings in DataType and ReferenceType attributes. One name per id;
// re-registering overwrites.
type aliasRegistry struct {
	names map[ua.NodeID]string
}

func newAliasRegistry() *aliasRegistry {
	return &aliasRegistry{names: make(map[ua.NodeID]string)}
}

func (r *aliasRegistry) register(id ua.NodeID, name string) {
	r.names[id] = name
}

// aliasEntry is one emitted Alias pair.
type aliasEntry struct {
	ID   ua.NodeID
	Name string
}

// entries returns all registrations ordered by node id.
func (r *aliasRegistry) entries() []aliasEntry {
	out := make([]aliasEntry, 0, len(r.names))
	for id, name := range r.names {
		out = append(out, aliasEntry{ID: id, Name: name})
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].ID.Compare(out[j].ID) < 0
	})
	return out
}
