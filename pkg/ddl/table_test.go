package ddl

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/pgnav/pkg/schema"
)

func TestCreateTableQuotingAndColumns(t *testing.T) {
	tbl := &schema.Table{
		Schema: "public",
		Name:   "Users",
		Columns: []schema.Column{
			{Name: "id", DataType: "integer", NotNull: true},
		},
	}

	stmts := CreateTable(tbl)
	require.Len(t, stmts, 1)
	sql := stmts[0]

	assert.Contains(t, sql, "CREATE TABLE")
	assert.Contains(t, sql, `"Users"`)
	assert.Contains(t, sql, "id integer NOT NULL")
	assert.True(t, strings.HasSuffix(sql, ");"))
}

func TestColumnDefinitionPrecedence(t *testing.T) {
	tests := []struct {
		name string
		col  schema.Column
		want string
	}{
		{
			"plain",
			schema.Column{Name: "note", DataType: "text"},
			"note text",
		},
		{
			"not null",
			schema.Column{Name: "id", DataType: "integer", NotNull: true},
			"id integer NOT NULL",
		},
		{
			"default",
			schema.Column{Name: "status", DataType: "text", Default: "'new'::text", NotNull: true},
			"status text DEFAULT 'new'::text NOT NULL",
		},
		{
			"identity beats default",
			schema.Column{Name: "id", DataType: "bigint", Identity: schema.IdentityAlways, Default: "0", NotNull: true},
			"id bigint GENERATED ALWAYS AS IDENTITY NOT NULL",
		},
		{
			"identity by default",
			schema.Column{Name: "id", DataType: "bigint", Identity: schema.IdentityByDefault},
			"id bigint GENERATED BY DEFAULT AS IDENTITY",
		},
		{
			"generated beats identity and default",
			schema.Column{Name: "total", DataType: "numeric", Generated: "price * qty", Default: "0"},
			"total numeric GENERATED ALWAYS AS (price * qty) STORED",
		},
		{
			// Unrecognized generation modes pass through verbatim.
			"unknown identity mode",
			schema.Column{Name: "id", DataType: "bigint", Identity: schema.IdentityMode("SOMETIMES")},
			"id bigint GENERATED SOMETIMES AS IDENTITY",
		},
		{
			"mixed case name quoted",
			schema.Column{Name: "CreatedAt", DataType: "timestamptz"},
			`"CreatedAt" timestamptz`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ColumnDefinition(&tt.col))
		})
	}
}

func TestCreateTableConstraintOrder(t *testing.T) {
	tbl := &schema.Table{
		Schema: "public",
		Name:   "orders",
		Columns: []schema.Column{
			{Name: "id", DataType: "bigint", NotNull: true},
			{Name: "customer_id", DataType: "bigint"},
			{Name: "code", DataType: "text"},
		},
		PrimaryKey: &schema.PrimaryKey{Name: "orders_pkey", Columns: []string{"id"}},
		Uniques: []schema.UniqueConstraint{
			{Name: "orders_code_key", Columns: []string{"code"}},
		},
		Checks: []schema.CheckConstraint{
			{Name: "orders_id_positive", Expression: "id > 0"},
		},
		ForeignKeys: []schema.ForeignKey{
			{
				Name: "orders_customer_fkey", Columns: []string{"customer_id"},
				RefTable: "customers", RefColumns: []string{"id"},
				OnDelete: "CASCADE", OnUpdate: "RESTRICT",
				Deferrable: true, InitiallyDeferred: true,
			},
		},
	}

	stmts := CreateTable(tbl)
	require.Len(t, stmts, 1)
	sql := stmts[0]

	pk := strings.Index(sql, "CONSTRAINT orders_pkey PRIMARY KEY (id)")
	uq := strings.Index(sql, "CONSTRAINT orders_code_key UNIQUE (code)")
	ck := strings.Index(sql, "CONSTRAINT orders_id_positive CHECK (id > 0)")
	fk := strings.Index(sql, "CONSTRAINT orders_customer_fkey FOREIGN KEY (customer_id) REFERENCES public.customers (id) ON DELETE CASCADE ON UPDATE RESTRICT DEFERRABLE INITIALLY DEFERRED")

	require.NotEqual(t, -1, pk, "missing primary key clause in:\n%s", sql)
	require.NotEqual(t, -1, uq, "missing unique clause in:\n%s", sql)
	require.NotEqual(t, -1, ck, "missing check clause in:\n%s", sql)
	require.NotEqual(t, -1, fk, "missing foreign key clause in:\n%s", sql)
	assert.True(t, pk < uq && uq < ck && ck < fk, "constraint clauses out of order")
}

func TestCreateTableTrailingStatements(t *testing.T) {
	tbl := &schema.Table{
		Schema:  "public",
		Name:    "orders",
		Comment: "customer orders",
		Columns: []schema.Column{
			{Name: "id", DataType: "bigint"},
			{Name: "status", DataType: "text", Comment: "order state"},
		},
		PrimaryKey: &schema.PrimaryKey{Name: "orders_pkey", Columns: []string{"id"}},
		Indexes: []schema.Index{
			{Name: "orders_pkey", Method: "btree", Unique: true, Columns: []string{"id"}, IsPrimary: true},
			{Name: "orders_code_key_idx", Method: "btree", Unique: true, Columns: []string{"code"}, BacksConstraint: true},
			{Name: "orders_status_idx", Method: "btree", Columns: []string{"status"}},
		},
	}

	stmts := CreateTable(tbl)
	require.Len(t, stmts, 4)

	assert.True(t, strings.HasPrefix(stmts[0], "CREATE TABLE"))
	assert.Equal(t, "CREATE INDEX orders_status_idx ON public.orders (status);", stmts[1])
	assert.Equal(t, "COMMENT ON TABLE public.orders IS 'customer orders';", stmts[2])
	assert.Equal(t, "COMMENT ON COLUMN public.orders.status IS 'order state';", stmts[3])
}

func TestCreateTableZeroColumnsStillRenders(t *testing.T) {
	stmts := CreateTable(&schema.Table{Schema: "public", Name: "empty"})
	require.Len(t, stmts, 1)
	assert.Contains(t, stmts[0], "CREATE TABLE public.empty")
}
