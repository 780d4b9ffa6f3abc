package introspect

// Catalog queries. Column lists that are arrays in the catalog are
// flattened with array_to_string and split in Go, which keeps scanning
// on plain database/sql types.

const querySchemas = `
SELECT n.nspname,
       COALESCE(obj_description(n.oid, 'pg_namespace'), '')
FROM pg_namespace n
WHERE n.nspname NOT LIKE 'pg\_%'
  AND n.nspname <> 'information_schema'
ORDER BY n.nspname`

const queryTables = `
SELECT n.nspname,
       c.relname,
       COALESCE(obj_description(c.oid, 'pg_class'), ''),
       c.reltuples::bigint,
       pg_total_relation_size(c.oid)
FROM pg_class c
JOIN pg_namespace n ON n.oid = c.relnamespace
WHERE c.relkind IN ('r', 'p')
  AND n.nspname = ANY(string_to_array($1, ','))
ORDER BY n.nspname, c.relname`

const queryColumns = `
SELECT n.nspname,
       c.relname,
       a.attname,
       format_type(a.atttypid, a.atttypmod),
       a.attnotnull,
       COALESCE(pg_get_expr(d.adbin, d.adrelid), ''),
       a.attidentity,
       a.attgenerated,
       COALESCE(col_description(c.oid, a.attnum), '')
FROM pg_attribute a
JOIN pg_class c ON c.oid = a.attrelid
JOIN pg_namespace n ON n.oid = c.relnamespace
LEFT JOIN pg_attrdef d ON d.adrelid = a.attrelid AND d.adnum = a.attnum
WHERE c.relkind IN ('r', 'p')
  AND n.nspname = ANY(string_to_array($1, ','))
  AND a.attnum > 0
  AND NOT a.attisdropped
ORDER BY n.nspname, c.relname, a.attnum`

const queryConstraints = `
SELECT n.nspname,
       c.relname,
       con.conname,
       con.contype,
       array_to_string(ARRAY(
           SELECT att.attname FROM unnest(con.conkey) WITH ORDINALITY AS k(attnum, ord)
           JOIN pg_attribute att ON att.attrelid = con.conrelid AND att.attnum = k.attnum
           ORDER BY k.ord
       ), ','),
       COALESCE(rn.nspname, ''),
       COALESCE(rc.relname, ''),
       array_to_string(ARRAY(
           SELECT att.attname FROM unnest(con.confkey) WITH ORDINALITY AS k(attnum, ord)
           JOIN pg_attribute att ON att.attrelid = con.confrelid AND att.attnum = k.attnum
           ORDER BY k.ord
       ), ','),
       con.confdeltype,
       con.confupdtype,
       con.condeferrable,
       con.condeferred,
       COALESCE(pg_get_expr(con.conbin, con.conrelid), '')
FROM pg_constraint con
JOIN pg_class c ON c.oid = con.conrelid
JOIN pg_namespace n ON n.oid = c.relnamespace
LEFT JOIN pg_class rc ON rc.oid = con.confrelid
LEFT JOIN pg_namespace rn ON rn.oid = rc.relnamespace
WHERE con.contype IN ('p', 'u', 'c', 'f')
  AND n.nspname = ANY(string_to_array($1, ','))
ORDER BY n.nspname, c.relname, con.conname`

const queryIndexes = `
SELECT n.nspname,
       c.relname,
       ic.relname,
       am.amname,
       i.indisunique,
       i.indisprimary,
       i.indnkeyatts,
       array_to_string(ARRAY(
           SELECT pg_get_indexdef(i.indexrelid, k, true)
           FROM generate_subscripts(i.indkey, 1) WITH ORDINALITY AS s(k, ord)
           ORDER BY s.ord
       ), E'\t'),
       COALESCE(pg_get_expr(i.indpred, i.indrelid), ''),
       EXISTS (SELECT 1 FROM pg_constraint pc WHERE pc.conindid = i.indexrelid)
FROM pg_index i
JOIN pg_class c ON c.oid = i.indrelid
JOIN pg_class ic ON ic.oid = i.indexrelid
JOIN pg_am am ON am.oid = ic.relam
JOIN pg_namespace n ON n.oid = c.relnamespace
WHERE c.relkind IN ('r', 'p')
  AND n.nspname = ANY(string_to_array($1, ','))
ORDER BY n.nspname, c.relname, ic.relname`

const queryTriggers = `
SELECT n.nspname,
       c.relname,
       t.tgname,
       CASE
           WHEN t.tgtype & 2 > 0 THEN 'BEFORE'
           WHEN t.tgtype & 64 > 0 THEN 'INSTEAD OF'
           ELSE 'AFTER'
       END,
       array_to_string(ARRAY(
           SELECT e FROM unnest(ARRAY[
               CASE WHEN t.tgtype & 4 > 0 THEN 'INSERT' END,
               CASE WHEN t.tgtype & 8 > 0 THEN 'DELETE' END,
               CASE WHEN t.tgtype & 16 > 0 THEN 'UPDATE' END,
               CASE WHEN t.tgtype & 32 > 0 THEN 'TRUNCATE' END
           ]) AS e WHERE e IS NOT NULL
       ), ','),
       p.proname,
       t.tgenabled <> 'D'
FROM pg_trigger t
JOIN pg_class c ON c.oid = t.tgrelid
JOIN pg_namespace n ON n.oid = c.relnamespace
JOIN pg_proc p ON p.oid = t.tgfoid
WHERE NOT t.tgisinternal
  AND n.nspname = ANY(string_to_array($1, ','))
ORDER BY n.nspname, c.relname, t.tgname`

const queryPolicies = `
SELECT schemaname,
       tablename,
       policyname,
       permissive = 'PERMISSIVE',
       array_to_string(roles, ','),
       cmd,
       COALESCE(qual, ''),
       COALESCE(with_check, '')
FROM pg_policies
WHERE schemaname = ANY(string_to_array($1, ','))
ORDER BY schemaname, tablename, policyname`

const queryViews = `
SELECT n.nspname,
       c.relname,
       COALESCE(obj_description(c.oid, 'pg_class'), ''),
       pg_get_viewdef(c.oid, true),
       c.relkind = 'm'
FROM pg_class c
JOIN pg_namespace n ON n.oid = c.relnamespace
WHERE c.relkind IN ('v', 'm')
  AND n.nspname = ANY(string_to_array($1, ','))
ORDER BY n.nspname, c.relname`

const queryFunctions = `
SELECT n.nspname,
       p.proname,
       pg_get_function_arguments(p.oid),
       pg_get_function_result(p.oid),
       l.lanname,
       CASE p.provolatile WHEN 'i' THEN 'IMMUTABLE' WHEN 's' THEN 'STABLE' ELSE 'VOLATILE' END,
       p.proisstrict,
       p.prosecdef,
       COALESCE(p.prosrc, ''),
       COALESCE(obj_description(p.oid, 'pg_proc'), '')
FROM pg_proc p
JOIN pg_namespace n ON n.oid = p.pronamespace
JOIN pg_language l ON l.oid = p.prolang
WHERE p.prokind IN ('f', 'p')
  AND n.nspname = ANY(string_to_array($1, ','))
ORDER BY n.nspname, p.proname`

const querySequences = `
SELECT s.schemaname,
       s.sequencename,
       s.data_type::text,
       s.start_value,
       s.increment_by,
       s.min_value,
       s.max_value,
       s.cycle,
       COALESCE(d.refname, '')
FROM pg_sequences s
LEFT JOIN LATERAL (
    SELECT dc.relname || '.' || da.attname AS refname
    FROM pg_depend dep
    JOIN pg_class sc ON sc.oid = dep.objid AND sc.relname = s.sequencename
    JOIN pg_namespace sn ON sn.oid = sc.relnamespace AND sn.nspname = s.schemaname
    JOIN pg_class dc ON dc.oid = dep.refobjid
    JOIN pg_attribute da ON da.attrelid = dep.refobjid AND da.attnum = dep.refobjsubid
    WHERE dep.deptype = 'a' AND dep.classid = 'pg_class'::regclass
    LIMIT 1
) d ON true
WHERE s.schemaname = ANY(string_to_array($1, ','))
ORDER BY s.schemaname, s.sequencename`

const queryTypes = `
SELECT n.nspname,
       t.typname,
       t.typtype,
       array_to_string(ARRAY(
           SELECT e.enumlabel FROM pg_enum e
           WHERE e.enumtypid = t.oid ORDER BY e.enumsortorder
       ), ','),
       COALESCE(obj_description(t.oid, 'pg_type'), '')
FROM pg_type t
JOIN pg_namespace n ON n.oid = t.typnamespace
WHERE t.typtype IN ('e', 'c', 'd', 'r')
  AND n.nspname = ANY(string_to_array($1, ','))
  AND NOT EXISTS (
      SELECT 1 FROM pg_class c
      WHERE c.oid = t.typrelid AND c.relkind <> 'c'
  )
ORDER BY n.nspname, t.typname`
