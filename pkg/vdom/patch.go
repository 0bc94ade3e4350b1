package vdom

import "fmt"

// PatchOp is the type of patch operation.
type PatchOp uint8

const (
	PatchSetText    PatchOp = 0x01 // Update text content
	PatchSetAttr    PatchOp = 0x02 // Set/update attribute
	PatchInsertNode PatchOp = 0x04 // Insert new node
	PatchRemoveNode PatchOp = 0x05 // Remove node
	PatchMoveNode   PatchOp = 0x06 // Move node to new position
)

// String returns the string representation of the PatchOp.
func (op PatchOp) String() string {
	switch op {
	case PatchSetText:
		return "SetText"
	case PatchSetAttr:
		return "SetAttr"
	case PatchInsertNode:
		return "InsertNode"
	case PatchRemoveNode:
		return "RemoveNode"
	case PatchMoveNode:
		return "MoveNode"
	default:
		return "Unknown"
	}
}

// MarshalText encodes the op by name.
func (op PatchOp) MarshalText() ([]byte, error) {
	return []byte(op.String()), nil
}

// UnmarshalText decodes an op encoded by MarshalText.
func (op *PatchOp) UnmarshalText(text []byte) error {
	for _, candidate := range []PatchOp{PatchSetText, PatchSetAttr, PatchInsertNode, PatchRemoveNode, PatchMoveNode} {
		if candidate.String() == string(text) {
			*op = candidate
			return nil
		}
	}
	return fmt.Errorf("vdom: unknown patch op %q", text)
}

// Patch represents a single tree operation.
type Patch struct {
	Op     PatchOp `json:"op"`
	Node   int     `json:"node"`             // Target node id
	Parent int     `json:"parent,omitempty"` // Parent for Insert/Move/Remove
	Before int     `json:"before,omitempty"` // Reference sibling, 0 appends
	Kind   string  `json:"kind,omitempty"`   // For InsertNode
	Tag    string  `json:"tag,omitempty"`    // For InsertNode of elements
	Key    string  `json:"key,omitempty"`    // Attribute key
	Value  string  `json:"value,omitempty"`  // Text or attribute value
}
