package tree

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/pgnav/pkg/schema"
)

func sampleSchemas() []schema.Schema {
	return []schema.Schema{
		{
			Name: "public",
			Tables: []schema.Table{
				{
					Schema:    "public",
					Name:      "orders",
					RowCount:  1234,
					SizeBytes: 5 * 1024 * 1024,
					Columns: []schema.Column{
						{Name: "id", DataType: "bigint", NotNull: true, Identity: schema.IdentityAlways},
						{Name: "status", DataType: "text", NotNull: true, Default: "'new'::text", Comment: "order state"},
						{Name: "note", DataType: "text"},
					},
					PrimaryKey: &schema.PrimaryKey{Name: "orders_pkey", Columns: []string{"id"}},
					Indexes: []schema.Index{
						{Name: "orders_status_idx", Method: "btree", Columns: []string{"status"}},
						{Name: "orders_note_uniq", Method: "btree", Unique: true, Columns: []string{"note"}},
					},
					ForeignKeys: []schema.ForeignKey{
						{
							Name: "orders_customer_fkey", Columns: []string{"customer_id"},
							RefSchema: "public", RefTable: "customers", RefColumns: []string{"id"},
						},
					},
				},
				{Schema: "public", Name: "customers", RowCount: -1, SizeBytes: 512},
			},
			Views: []schema.View{
				{Schema: "public", Name: "active_orders"},
			},
			MaterializedViews: []schema.View{
				{Schema: "public", Name: "order_stats", Materialized: true},
			},
			Functions: []schema.Function{
				{Schema: "public", Name: "total_for", Arguments: "order_id bigint", Returns: "numeric"},
			},
		},
		{Name: "audit"},
	}
}

func TestBuildRootAndSchemasFolder(t *testing.T) {
	root := Build("conn", sampleSchemas())

	assert.Equal(t, "conn", root.ID)
	assert.Equal(t, KindConnection, root.Kind)
	require.Len(t, root.Children, 1)

	folder := root.Children[0]
	assert.Equal(t, "conn:schemas", folder.ID)
	assert.Equal(t, KindSchemasFolder, folder.Kind)
	assert.Equal(t, "2", folder.Badge)
	require.Len(t, folder.Children, 2)
	assert.Equal(t, "conn:schemas:public", folder.Children[0].ID)
	assert.Equal(t, "conn:schemas:audit", folder.Children[1].ID)
}

func TestBuildEmptySnapshotKeepsSchemasFolder(t *testing.T) {
	root := Build("conn", nil)

	require.Len(t, root.Children, 1)
	assert.Equal(t, KindSchemasFolder, root.Children[0].Kind)
	assert.Equal(t, "0", root.Children[0].Badge)
	assert.Empty(t, root.Children[0].Children)
}

func TestBuildDropsEmptyFolders(t *testing.T) {
	root := Build("conn", sampleSchemas())

	// audit has no objects at all, so it has no folders.
	audit := root.Find("conn:schemas:audit")
	require.NotNil(t, audit)
	assert.Empty(t, audit.Children)

	// public has no sequences or types, so only tables/views/functions
	// folders appear, in that order.
	public := root.Find("conn:schemas:public")
	require.NotNil(t, public)
	require.Len(t, public.Children, 3)
	assert.Equal(t, KindTablesFolder, public.Children[0].Kind)
	assert.Equal(t, KindViewsFolder, public.Children[1].Kind)
	assert.Equal(t, KindFunctionsFolder, public.Children[2].Kind)
}

func TestBuildIDStabilityAcrossRebuilds(t *testing.T) {
	before := Build("conn", sampleSchemas())

	// A snapshot differing only by an added unrelated table keeps every
	// shared object's id intact.
	grown := sampleSchemas()
	grown[0].Tables = append(grown[0].Tables, schema.Table{Schema: "public", Name: "invoices"})
	after := Build("conn", grown)

	var ids []string
	before.Walk(func(n *Node) bool {
		ids = append(ids, n.ID)
		return true
	})
	for _, id := range ids {
		assert.NotNil(t, after.Find(id), "id %q lost after rebuild", id)
	}
}

func TestBuildTableNode(t *testing.T) {
	root := Build("conn", sampleSchemas())

	orders := root.Find("conn:schemas:public:tables:orders")
	require.NotNil(t, orders)
	assert.Equal(t, "1.2K rows, 5.0 MB", orders.Tooltip)
	assert.Equal(t, "5.0 MB", orders.SecondaryText)

	// Unknown row count renders as "?".
	customers := root.Find("conn:schemas:public:tables:customers")
	require.NotNil(t, customers)
	assert.Equal(t, "? rows, 512 B", customers.Tooltip)

	// Sub-folders in fixed order, empty ones dropped.
	require.Len(t, orders.Children, 3)
	assert.Equal(t, KindColumnsFolder, orders.Children[0].Kind)
	assert.Equal(t, KindIndexesFolder, orders.Children[1].Kind)
	assert.Equal(t, KindForeignKeysFolder, orders.Children[2].Kind)
}

func TestBuildColumnNodes(t *testing.T) {
	root := Build("conn", sampleSchemas())

	id := root.Find("conn:schemas:public:tables:orders:columns:id")
	require.NotNil(t, id)
	assert.Equal(t, "id *", id.Label())
	assert.Equal(t, "bigint NOT NULL IDENTITY ALWAYS", id.Tooltip)

	status := root.Find("conn:schemas:public:tables:orders:columns:status")
	require.NotNil(t, status)
	assert.Equal(t, "text NOT NULL DEFAULT 'new'::text -- order state", status.Tooltip)

	note := root.Find("conn:schemas:public:tables:orders:columns:note")
	require.NotNil(t, note)
	assert.Equal(t, "note", note.Label())
	assert.Equal(t, "text", note.Tooltip)
}

func TestBuildIndexAndForeignKeyTooltips(t *testing.T) {
	root := Build("conn", sampleSchemas())

	idx := root.Find("conn:schemas:public:tables:orders:indexes:orders_status_idx")
	require.NotNil(t, idx)
	assert.Equal(t, "BTREE on (status)", idx.Tooltip)

	uniq := root.Find("conn:schemas:public:tables:orders:indexes:orders_note_uniq")
	require.NotNil(t, uniq)
	assert.Equal(t, "UNIQUE BTREE on (note)", uniq.Tooltip)

	fk := root.Find("conn:schemas:public:tables:orders:foreignkeys:orders_customer_fkey")
	require.NotNil(t, fk)
	assert.Equal(t, "(customer_id) -> customers(id)", fk.Tooltip)
}

func TestBuildViewsFolderMergesMaterialized(t *testing.T) {
	root := Build("conn", sampleSchemas())

	views := root.Find("conn:schemas:public:views")
	require.NotNil(t, views)
	assert.Equal(t, "2", views.Badge)
	require.Len(t, views.Children, 2)

	assert.Equal(t, "active_orders", views.Children[0].Label())
	assert.Equal(t, KindView, views.Children[0].Kind)

	assert.Equal(t, "order_stats (materialized)", views.Children[1].Label())
	assert.Equal(t, KindMaterializedView, views.Children[1].Kind)
}
