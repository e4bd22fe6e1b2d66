package nodeset

import (
	"fmt"

	"github.com/uakit/nodeset-go/ua"
)

// NodeError reports a failure while exporting one node: the node's id, the
// operation that failed, and the underlying cause.
type NodeError struct {
	ID  ua.NodeID
	Op  string
	Err error
}

// Error implements error.
func (e *NodeError) Error() string {
	return fmt.Sprintf("node %s: %s: %v", e.ID, e.Op, e.Err)
}

// Unwrap returns the underlying error.
func (e *NodeError) Unwrap() error { return e.Err }

func nodeErr(id ua.NodeID, op string, err error) error {
	return &NodeError{ID: id, Op: op, Err: err}
}
