package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func snapshotFixture() Snapshot {
	return Snapshot{
		{
			Name: "public",
			Tables: []Table{
				{Schema: "public", Name: "orders"},
				{Schema: "public", Name: "customers"},
			},
		},
		{
			Name: "billing",
			Tables: []Table{
				{Schema: "billing", Name: "orders"},
				{Schema: "billing", Name: "invoices"},
			},
		},
	}
}

func TestSnapshotHasSchema(t *testing.T) {
	snap := snapshotFixture()
	assert.True(t, snap.HasSchema("public"))
	assert.True(t, snap.HasSchema("BILLING"))
	assert.False(t, snap.HasSchema("missing"))
	assert.False(t, Snapshot(nil).HasSchema("public"))
}

func TestSnapshotFindTable(t *testing.T) {
	snap := snapshotFixture()

	// Bare names resolve to the first match in snapshot order.
	tbl, ok := snap.FindTable("orders")
	require.True(t, ok)
	assert.Equal(t, "public", tbl.Schema)

	// Qualified names pin the schema.
	tbl, ok = snap.FindTable("billing.orders")
	require.True(t, ok)
	assert.Equal(t, "billing", tbl.Schema)

	tbl, ok = snap.FindTable("Billing.Invoices")
	require.True(t, ok)
	assert.Equal(t, "invoices", tbl.Name)

	_, ok = snap.FindTable("ghost")
	assert.False(t, ok)
	_, ok = snap.FindTable("public.invoices")
	assert.False(t, ok)
}

func TestTableQualifiedName(t *testing.T) {
	tbl := Table{Schema: "public", Name: "orders"}
	assert.Equal(t, "public.orders", tbl.QualifiedName())
}
