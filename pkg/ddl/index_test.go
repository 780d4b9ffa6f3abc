package ddl

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/leapstack-labs/pgnav/pkg/schema"
)

func TestCreateIndex(t *testing.T) {
	tbl := &schema.Table{Schema: "public", Name: "orders"}
	tests := []struct {
		name string
		idx  schema.Index
		want string
	}{
		{
			"plain btree",
			schema.Index{Name: "orders_status_idx", Method: "btree", Columns: []string{"status"}},
			"CREATE INDEX orders_status_idx ON public.orders (status);",
		},
		{
			"unique",
			schema.Index{Name: "orders_code_uniq", Method: "btree", Unique: true, Columns: []string{"code"}},
			"CREATE UNIQUE INDEX orders_code_uniq ON public.orders (code);",
		},
		{
			"non-btree method",
			schema.Index{Name: "orders_tags_idx", Method: "GIN", Columns: []string{"tags"}},
			"CREATE INDEX orders_tags_idx ON public.orders USING gin (tags);",
		},
		{
			"include columns",
			schema.Index{Name: "orders_cov_idx", Method: "btree", Columns: []string{"customer_id"}, Include: []string{"status", "total"}},
			"CREATE INDEX orders_cov_idx ON public.orders (customer_id) INCLUDE (status, total);",
		},
		{
			"partial predicate",
			schema.Index{Name: "orders_open_idx", Method: "btree", Columns: []string{"created_at"}, Predicate: "status <> 'done'"},
			"CREATE INDEX orders_open_idx ON public.orders (created_at) WHERE status <> 'done';",
		},
		{
			"expression column kept verbatim",
			schema.Index{Name: "orders_email_idx", Method: "btree", Columns: []string{"lower(email)"}},
			"CREATE INDEX orders_email_idx ON public.orders (lower(email));",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CreateIndex(tbl, &tt.idx))
		})
	}
}
