// Package tree builds the object browser tree for a schema snapshot.
//
// Build converts a Snapshot into a forest of Node values with stable,
// path-derived ids so that expansion and selection state held by the
// caller survives a refresh. Nodes are plain values; a refresh builds a
// brand-new tree rather than mutating the old one.
package tree

// Kind is the closed set of node categories. Folder kinds group leaves
// of one object type; leaf kinds carry a payload entity.
type Kind string

// Node kinds.
const (
	KindConnection Kind = "connection"

	KindSchemasFolder     Kind = "schemas"
	KindTablesFolder      Kind = "tables"
	KindViewsFolder       Kind = "views"
	KindFunctionsFolder   Kind = "functions"
	KindSequencesFolder   Kind = "sequences"
	KindTypesFolder       Kind = "types"
	KindColumnsFolder     Kind = "columns"
	KindIndexesFolder     Kind = "indexes"
	KindForeignKeysFolder Kind = "foreignkeys"
	KindTriggersFolder    Kind = "triggers"
	KindPoliciesFolder    Kind = "policies"

	KindSchema           Kind = "schema"
	KindTable            Kind = "table"
	KindView             Kind = "view"
	KindMaterializedView Kind = "matview"
	KindFunction         Kind = "function"
	KindSequence         Kind = "sequence"
	KindType             Kind = "type"
	KindColumn           Kind = "column"
	KindIndex            Kind = "index"
	KindForeignKey       Kind = "foreignkey"
	KindTrigger          Kind = "trigger"
	KindPolicy           Kind = "policy"
)

// IsFolder reports whether the kind groups children rather than
// representing one database object.
func (k Kind) IsFolder() bool {
	switch k {
	case KindSchemasFolder, KindTablesFolder, KindViewsFolder,
		KindFunctionsFolder, KindSequencesFolder, KindTypesFolder,
		KindColumnsFolder, KindIndexesFolder, KindForeignKeysFolder,
		KindTriggersFolder, KindPoliciesFolder:
		return true
	}
	return false
}

// Node is one row in the object browser.
type Node struct {
	// ID is derived from the path of ancestor names and kind tags, never
	// from positions, so it stays valid across rebuilds as long as the
	// underlying object survives.
	ID   string
	Name string
	// DisplayLabel overrides Name for display when non-empty.
	DisplayLabel string
	Kind         Kind
	// OwningSchema is the schema the node belongs to, empty above the
	// schema level.
	OwningSchema string
	// Badge is a short count or status string shown next to the label.
	Badge         string
	Tooltip       string
	SecondaryText string
	// Children are in display order.
	Children []Node
	// HasLazyChildren is true when children exist on the server but have
	// not been materialized into this tree.
	HasLazyChildren bool
	// Payload references the originating schema entity (*schema.Table,
	// *schema.Column, ...) for leaf nodes; nil for folders.
	Payload any
}

// Label returns DisplayLabel when set, otherwise Name.
func (n *Node) Label() string {
	if n.DisplayLabel != "" {
		return n.DisplayLabel
	}
	return n.Name
}

// Walk visits n and every descendant in depth-first display order.
// Walking stops early when fn returns false.
func (n *Node) Walk(fn func(*Node) bool) bool {
	if !fn(n) {
		return false
	}
	for i := range n.Children {
		if !n.Children[i].Walk(fn) {
			return false
		}
	}
	return true
}

// Find returns the first node with the given id, or nil.
func (n *Node) Find(id string) *Node {
	var found *Node
	n.Walk(func(node *Node) bool {
		if node.ID == id {
			found = node
			return false
		}
		return true
	})
	return found
}
