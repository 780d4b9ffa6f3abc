package ddl

import "github.com/leapstack-labs/pgnav/pkg/schema"

// DropTable renders DROP TABLE IF EXISTS, with CASCADE when requested.
func DropTable(t *schema.Table, cascade bool) string {
	return dropStatement("TABLE", t.Schema, t.Name, cascade)
}

// DropView renders DROP VIEW or DROP MATERIALIZED VIEW IF EXISTS.
func DropView(v *schema.View, cascade bool) string {
	kind := "VIEW"
	if v.Materialized {
		kind = "MATERIALIZED VIEW"
	}
	return dropStatement(kind, v.Schema, v.Name, cascade)
}

// DropSequence renders DROP SEQUENCE IF EXISTS.
func DropSequence(s *schema.Sequence, cascade bool) string {
	return dropStatement("SEQUENCE", s.Schema, s.Name, cascade)
}

// DropIndex renders DROP INDEX IF EXISTS. schemaName qualifies the
// index itself; indexes live in their table's schema.
func DropIndex(schemaName string, idx *schema.Index, cascade bool) string {
	return dropStatement("INDEX", schemaName, idx.Name, cascade)
}

func dropStatement(kind, schemaName, name string, cascade bool) string {
	stmt := "DROP " + kind + " IF EXISTS " + QuoteQualified(schemaName, name)
	if cascade {
		stmt += " CASCADE"
	}
	return stmt + ";"
}

// TruncateTable renders TRUNCATE TABLE, with CASCADE when requested.
func TruncateTable(t *schema.Table, cascade bool) string {
	stmt := "TRUNCATE TABLE " + QuoteQualified(t.Schema, t.Name)
	if cascade {
		stmt += " CASCADE"
	}
	return stmt + ";"
}

// ReindexTable renders REINDEX TABLE, CONCURRENTLY when requested.
func ReindexTable(t *schema.Table, concurrently bool) string {
	stmt := "REINDEX TABLE "
	if concurrently {
		stmt = "REINDEX TABLE CONCURRENTLY "
	}
	return stmt + QuoteQualified(t.Schema, t.Name) + ";"
}

// RefreshMaterializedView renders REFRESH MATERIALIZED VIEW,
// CONCURRENTLY when requested.
func RefreshMaterializedView(v *schema.View, concurrently bool) string {
	stmt := "REFRESH MATERIALIZED VIEW "
	if concurrently {
		stmt = "REFRESH MATERIALIZED VIEW CONCURRENTLY "
	}
	return stmt + QuoteQualified(v.Schema, v.Name) + ";"
}
