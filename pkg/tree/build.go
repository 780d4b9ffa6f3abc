package tree

import (
	"strconv"
	"strings"

	"github.com/leapstack-labs/pgnav/pkg/schema"
)

// Build converts a snapshot into a browser tree rooted at a connection
// node. rootID seeds every descendant id, so two connections never
// collide even when they expose identical schemas.
//
// Build is total: missing optional fields render as empty strings, and
// an empty snapshot still yields the root with its Schemas folder.
func Build(rootID string, schemas []schema.Schema) Node {
	root := Node{
		ID:   rootID,
		Name: rootID,
		Kind: KindConnection,
	}

	folder := Node{
		ID:    rootID + ":schemas",
		Name:  "Schemas",
		Kind:  KindSchemasFolder,
		Badge: strconv.Itoa(len(schemas)),
	}
	for i := range schemas {
		folder.Children = append(folder.Children, buildSchema(folder.ID, &schemas[i]))
	}

	// The Schemas folder is the one folder kept even when empty.
	root.Children = []Node{folder}
	return root
}

func buildSchema(parentID string, s *schema.Schema) Node {
	node := Node{
		ID:           parentID + ":" + s.Name,
		Name:         s.Name,
		Kind:         KindSchema,
		OwningSchema: s.Name,
		Tooltip:      s.Comment,
	}

	// Fixed folder order: tables, views, functions, sequences, types.
	// Empty folders are dropped.
	if len(s.Tables) > 0 {
		node.Children = append(node.Children, buildTablesFolder(node.ID, s))
	}
	if len(s.Views)+len(s.MaterializedViews) > 0 {
		node.Children = append(node.Children, buildViewsFolder(node.ID, s))
	}
	if len(s.Functions) > 0 {
		node.Children = append(node.Children, buildFunctionsFolder(node.ID, s))
	}
	if len(s.Sequences) > 0 {
		node.Children = append(node.Children, buildSequencesFolder(node.ID, s))
	}
	if len(s.Types) > 0 {
		node.Children = append(node.Children, buildTypesFolder(node.ID, s))
	}
	return node
}

func folderNode(parentID, tag, name string, kind Kind, owningSchema string, count int) Node {
	return Node{
		ID:           parentID + ":" + tag,
		Name:         name,
		Kind:         kind,
		OwningSchema: owningSchema,
		Badge:        strconv.Itoa(count),
	}
}

func buildTablesFolder(parentID string, s *schema.Schema) Node {
	folder := folderNode(parentID, "tables", "Tables", KindTablesFolder, s.Name, len(s.Tables))
	for i := range s.Tables {
		folder.Children = append(folder.Children, buildTable(folder.ID, &s.Tables[i]))
	}
	return folder
}

func buildTable(parentID string, t *schema.Table) Node {
	node := Node{
		ID:            parentID + ":" + t.Name,
		Name:          t.Name,
		Kind:          KindTable,
		OwningSchema:  t.Schema,
		Tooltip:       rowCountLabel(t.RowCount) + " rows, " + FormatBytes(t.SizeBytes),
		SecondaryText: FormatBytes(t.SizeBytes),
		Payload:       t,
	}

	// Fixed sub-folder order: columns, indexes, foreign keys, triggers,
	// policies. Empty folders are dropped.
	if len(t.Columns) > 0 {
		folder := folderNode(node.ID, "columns", "Columns", KindColumnsFolder, t.Schema, len(t.Columns))
		for i := range t.Columns {
			folder.Children = append(folder.Children, buildColumn(folder.ID, t.Schema, &t.Columns[i]))
		}
		node.Children = append(node.Children, folder)
	}
	if len(t.Indexes) > 0 {
		folder := folderNode(node.ID, "indexes", "Indexes", KindIndexesFolder, t.Schema, len(t.Indexes))
		for i := range t.Indexes {
			folder.Children = append(folder.Children, buildIndex(folder.ID, t.Schema, &t.Indexes[i]))
		}
		node.Children = append(node.Children, folder)
	}
	if len(t.ForeignKeys) > 0 {
		folder := folderNode(node.ID, "foreignkeys", "Foreign Keys", KindForeignKeysFolder, t.Schema, len(t.ForeignKeys))
		for i := range t.ForeignKeys {
			folder.Children = append(folder.Children, buildForeignKey(folder.ID, t, &t.ForeignKeys[i]))
		}
		node.Children = append(node.Children, folder)
	}
	if len(t.Triggers) > 0 {
		folder := folderNode(node.ID, "triggers", "Triggers", KindTriggersFolder, t.Schema, len(t.Triggers))
		for i := range t.Triggers {
			trg := &t.Triggers[i]
			folder.Children = append(folder.Children, Node{
				ID:            folder.ID + ":" + trg.Name,
				Name:          trg.Name,
				Kind:          KindTrigger,
				OwningSchema:  t.Schema,
				SecondaryText: trg.Timing + " " + strings.Join(trg.Events, " OR "),
				Payload:       trg,
			})
		}
		node.Children = append(node.Children, folder)
	}
	if len(t.Policies) > 0 {
		folder := folderNode(node.ID, "policies", "Policies", KindPoliciesFolder, t.Schema, len(t.Policies))
		for i := range t.Policies {
			pol := &t.Policies[i]
			folder.Children = append(folder.Children, Node{
				ID:            folder.ID + ":" + pol.Name,
				Name:          pol.Name,
				Kind:          KindPolicy,
				OwningSchema:  t.Schema,
				SecondaryText: pol.Command,
				Payload:       pol,
			})
		}
		node.Children = append(node.Children, folder)
	}
	return node
}

func rowCountLabel(n int64) string {
	if n < 0 {
		return "?"
	}
	return FormatCount(n)
}

func buildColumn(parentID, owningSchema string, c *schema.Column) Node {
	node := Node{
		ID:            parentID + ":" + c.Name,
		Name:          c.Name,
		Kind:          KindColumn,
		OwningSchema:  owningSchema,
		SecondaryText: c.DataType,
		Tooltip:       columnTooltip(c),
		Payload:       c,
	}
	// The asterisk marks required columns.
	if c.NotNull {
		node.DisplayLabel = c.Name + " *"
	}
	return node
}

func columnTooltip(c *schema.Column) string {
	parts := []string{c.DataType}
	if c.NotNull {
		parts = append(parts, "NOT NULL")
	}
	if c.Default != "" {
		parts = append(parts, "DEFAULT "+c.Default)
	}
	if c.Identity != schema.IdentityNone {
		parts = append(parts, "IDENTITY "+string(c.Identity))
	}
	if c.Comment != "" {
		parts = append(parts, "-- "+c.Comment)
	}
	return strings.Join(parts, " ")
}

func buildIndex(parentID, owningSchema string, idx *schema.Index) Node {
	tooltip := strings.ToUpper(idx.Method) + " on (" + strings.Join(idx.Columns, ", ") + ")"
	if idx.Unique {
		tooltip = "UNIQUE " + tooltip
	}
	return Node{
		ID:           parentID + ":" + idx.Name,
		Name:         idx.Name,
		Kind:         KindIndex,
		OwningSchema: owningSchema,
		Tooltip:      tooltip,
		Payload:      idx,
	}
}

func buildForeignKey(parentID string, t *schema.Table, fk *schema.ForeignKey) Node {
	ref := fk.RefTable
	if fk.RefSchema != "" && !strings.EqualFold(fk.RefSchema, t.Schema) {
		ref = fk.RefSchema + "." + fk.RefTable
	}
	return Node{
		ID:           parentID + ":" + fk.Name,
		Name:         fk.Name,
		Kind:         KindForeignKey,
		OwningSchema: t.Schema,
		Tooltip: "(" + strings.Join(fk.Columns, ", ") + ") -> " +
			ref + "(" + strings.Join(fk.RefColumns, ", ") + ")",
		Payload: fk,
	}
}

func buildViewsFolder(parentID string, s *schema.Schema) Node {
	count := len(s.Views) + len(s.MaterializedViews)
	folder := folderNode(parentID, "views", "Views", KindViewsFolder, s.Name, count)
	for i := range s.Views {
		folder.Children = append(folder.Children, buildView(folder.ID, &s.Views[i]))
	}
	for i := range s.MaterializedViews {
		folder.Children = append(folder.Children, buildView(folder.ID, &s.MaterializedViews[i]))
	}
	return folder
}

func buildView(parentID string, v *schema.View) Node {
	node := Node{
		ID:           parentID + ":" + v.Name,
		Name:         v.Name,
		Kind:         KindView,
		OwningSchema: v.Schema,
		Tooltip:      v.Comment,
		Payload:      v,
	}
	if v.Materialized {
		node.Kind = KindMaterializedView
		node.DisplayLabel = v.Name + " (materialized)"
	}
	return node
}

func buildFunctionsFolder(parentID string, s *schema.Schema) Node {
	folder := folderNode(parentID, "functions", "Functions", KindFunctionsFolder, s.Name, len(s.Functions))
	for i := range s.Functions {
		fn := &s.Functions[i]
		folder.Children = append(folder.Children, Node{
			ID:            folder.ID + ":" + fn.Name,
			Name:          fn.Name,
			Kind:          KindFunction,
			OwningSchema:  s.Name,
			SecondaryText: fn.Returns,
			Tooltip:       fn.Name + "(" + fn.Arguments + ")",
			Payload:       fn,
		})
	}
	return folder
}

func buildSequencesFolder(parentID string, s *schema.Schema) Node {
	folder := folderNode(parentID, "sequences", "Sequences", KindSequencesFolder, s.Name, len(s.Sequences))
	for i := range s.Sequences {
		seq := &s.Sequences[i]
		folder.Children = append(folder.Children, Node{
			ID:            folder.ID + ":" + seq.Name,
			Name:          seq.Name,
			Kind:          KindSequence,
			OwningSchema:  s.Name,
			SecondaryText: seq.DataType,
			Tooltip:       sequenceTooltip(seq),
			Payload:       seq,
		})
	}
	return folder
}

func sequenceTooltip(seq *schema.Sequence) string {
	if seq.OwnedBy == "" {
		return ""
	}
	return "owned by " + seq.OwnedBy
}

func buildTypesFolder(parentID string, s *schema.Schema) Node {
	folder := folderNode(parentID, "types", "Types", KindTypesFolder, s.Name, len(s.Types))
	for i := range s.Types {
		td := &s.Types[i]
		folder.Children = append(folder.Children, Node{
			ID:            folder.ID + ":" + td.Name,
			Name:          td.Name,
			Kind:          KindType,
			OwningSchema:  s.Name,
			SecondaryText: string(td.Kind),
			Tooltip:       typeTooltip(td),
			Payload:       td,
		})
	}
	return folder
}

func typeTooltip(td *schema.TypeDef) string {
	if td.Kind == schema.TypeKindEnum && len(td.Labels) > 0 {
		return "(" + strings.Join(td.Labels, ", ") + ")"
	}
	return td.Comment
}
