package ua

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"
)

// IDType identifies the kind of identifier a NodeID carries.
type IDType uint8

const (
	IDTypeNumeric IDType = iota
	IDTypeString
	IDTypeGUID
	IDTypeOpaque
)

// NodeID identifies a node or type: a namespace index plus a numeric,
// string, GUID, or opaque identifier. NodeID is comparable and usable as a
// map key; opaque identifiers are held as immutable byte strings to keep it
// so. The zero value is the numeric identifier 0 in namespace 0.
type NodeID struct {
	ns   uint16
	typ  IDType
	num  uint32
	str  string
	guid uuid.UUID
}

// NewNumericID returns a NodeID with a numeric identifier.
func NewNumericID(ns uint16, id uint32) NodeID {
	return NodeID{ns: ns, typ: IDTypeNumeric, num: id}
}

// NewStringID returns a NodeID with a string identifier.
func NewStringID(ns uint16, id string) NodeID {
	return NodeID{ns: ns, typ: IDTypeString, str: id}
}

// NewGUIDID returns a NodeID with a GUID identifier.
func NewGUIDID(ns uint16, id uuid.UUID) NodeID {
	return NodeID{ns: ns, typ: IDTypeGUID, guid: id}
}

// NewOpaqueID returns a NodeID with an opaque (byte sequence) identifier.
func NewOpaqueID(ns uint16, id []byte) NodeID {
	return NodeID{ns: ns, typ: IDTypeOpaque, str: string(id)}
}

// Namespace returns the namespace index.
func (n NodeID) Namespace() uint16 { return n.ns }

// Type returns the identifier kind.
func (n NodeID) Type() IDType { return n.typ }

// Numeric returns the numeric identifier and whether the NodeID carries one.
func (n NodeID) Numeric() (uint32, bool) {
	return n.num, n.typ == IDTypeNumeric
}

// StringID returns the string identifier and whether the NodeID carries one.
func (n NodeID) StringID() (string, bool) {
	return n.str, n.typ == IDTypeString
}

// GUID returns the GUID identifier and whether the NodeID carries one.
func (n NodeID) GUID() (uuid.UUID, bool) {
	return n.guid, n.typ == IDTypeGUID
}

// Opaque returns a copy of the opaque identifier bytes and whether the
// NodeID carries one.
func (n NodeID) Opaque() ([]byte, bool) {
	if n.typ != IDTypeOpaque {
		return nil, false
	}
	return []byte(n.str), true
}

// WithNamespace returns a copy of the NodeID in the given namespace. The
// exporter uses this to rewrite source indices into document indices.
func (n NodeID) WithNamespace(ns uint16) NodeID {
	n.ns = ns
	return n
}

// String renders the canonical text form: an optional "ns=<idx>;" prefix
// (omitted for namespace 0) followed by "i=", "s=", "g=" or "b=" and the
// identifier body. Opaque identifiers are base64 encoded.
func (n NodeID) String() string {
	var b strings.Builder
	if n.ns != 0 {
		b.WriteString("ns=")
		b.WriteString(strconv.FormatUint(uint64(n.ns), 10))
		b.WriteByte(';')
	}
	switch n.typ {
	case IDTypeNumeric:
		b.WriteString("i=")
		b.WriteString(strconv.FormatUint(uint64(n.num), 10))
	case IDTypeString:
		b.WriteString("s=")
		b.WriteString(n.str)
	case IDTypeGUID:
		b.WriteString("g=")
		b.WriteString(n.guid.String())
	case IDTypeOpaque:
		b.WriteString("b=")
		b.WriteString(base64.StdEncoding.EncodeToString([]byte(n.str)))
	}
	return b.String()
}

// ParseNodeID parses the canonical text form produced by String.
func ParseNodeID(s string) (NodeID, error) {
	rest := s
	var ns uint16
	if strings.HasPrefix(rest, "ns=") {
		idx := strings.IndexByte(rest, ';')
		if idx < 0 {
			return NodeID{}, fmt.Errorf("invalid node id %q: missing ';' after namespace", s)
		}
		v, err := strconv.ParseUint(rest[3:idx], 10, 16)
		if err != nil {
			return NodeID{}, fmt.Errorf("invalid node id %q: bad namespace index: %w", s, err)
		}
		ns = uint16(v)
		rest = rest[idx+1:]
	}
	if len(rest) < 2 || rest[1] != '=' {
		return NodeID{}, fmt.Errorf("invalid node id %q: missing identifier", s)
	}
	body := rest[2:]
	switch rest[0] {
	case 'i':
		v, err := strconv.ParseUint(body, 10, 32)
		if err != nil {
			return NodeID{}, fmt.Errorf("invalid node id %q: bad numeric identifier: %w", s, err)
		}
		return NewNumericID(ns, uint32(v)), nil
	case 's':
		return NewStringID(ns, body), nil
	case 'g':
		v, err := uuid.Parse(body)
		if err != nil {
			return NodeID{}, fmt.Errorf("invalid node id %q: bad guid identifier: %w", s, err)
		}
		return NewGUIDID(ns, v), nil
	case 'b':
		v, err := base64.StdEncoding.DecodeString(body)
		if err != nil {
			return NodeID{}, fmt.Errorf("invalid node id %q: bad opaque identifier: %w", s, err)
		}
		return NewOpaqueID(ns, v), nil
	}
	return NodeID{}, fmt.Errorf("invalid node id %q: unknown identifier kind %q", s, rest[0])
}

// MustParseNodeID is ParseNodeID that panics on error. Intended for
// declaring well-known ids in tables and tests.
func MustParseNodeID(s string) NodeID {
	n, err := ParseNodeID(s)
	if err != nil {
		panic(err)
	}
	return n
}

// Compare orders NodeIDs by namespace index, then identifier kind, then
// identifier value. It returns -1, 0 or 1.
func (n NodeID) Compare(o NodeID) int {
	if n.ns != o.ns {
		if n.ns < o.ns {
			return -1
		}
		return 1
	}
	if n.typ != o.typ {
		if n.typ < o.typ {
			return -1
		}
		return 1
	}
	switch n.typ {
	case IDTypeNumeric:
		if n.num != o.num {
			if n.num < o.num {
				return -1
			}
			return 1
		}
		return 0
	case IDTypeGUID:
		return bytes.Compare(n.guid[:], o.guid[:])
	default:
		return strings.Compare(n.str, o.str)
	}
}
