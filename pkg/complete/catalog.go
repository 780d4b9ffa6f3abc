package complete

import "strings"

// Keywords offered in General context.
var sqlKeywords = []string{
	"SELECT", "FROM", "WHERE", "JOIN", "LEFT JOIN", "RIGHT JOIN",
	"INNER JOIN", "FULL OUTER JOIN", "CROSS JOIN", "GROUP BY", "ORDER BY",
	"HAVING", "LIMIT", "OFFSET", "AS", "ON", "AND", "OR", "NOT", "IN",
	"BETWEEN", "LIKE", "ILIKE", "IS NULL", "IS NOT NULL", "DISTINCT",
	"CASE", "WHEN", "THEN", "ELSE", "END", "WITH", "UNION", "UNION ALL",
	"EXCEPT", "INTERSECT", "INSERT INTO", "UPDATE", "DELETE FROM",
	"VALUES", "SET", "RETURNING", "CREATE TABLE", "CREATE INDEX",
	"ALTER TABLE", "DROP TABLE", "TRUNCATE", "EXPLAIN", "ANALYZE",
}

// FunctionCategory classifies built-in SQL functions.
type FunctionCategory string

// Function categories.
const (
	CategoryAggregate   FunctionCategory = "aggregate"
	CategoryWindow      FunctionCategory = "window"
	CategoryString      FunctionCategory = "string"
	CategoryNumeric     FunctionCategory = "numeric"
	CategoryDate        FunctionCategory = "date"
	CategoryConditional FunctionCategory = "conditional"
	CategoryJSON        FunctionCategory = "json"
	CategoryUtility     FunctionCategory = "utility"
)

// FunctionInfo describes one built-in function for completion.
type FunctionInfo struct {
	Name        string
	Signature   string
	Description string
	Category    FunctionCategory
}

// PostgresCatalog lists the built-in Postgres functions offered as
// completion candidates alongside snapshot-defined functions.
var PostgresCatalog = []FunctionInfo{
	// Aggregates
	{Name: "COUNT", Signature: "COUNT(expr) -> bigint", Description: "Count non-null values", Category: CategoryAggregate},
	{Name: "SUM", Signature: "SUM(expr) -> numeric", Description: "Sum of all values", Category: CategoryAggregate},
	{Name: "AVG", Signature: "AVG(expr) -> numeric", Description: "Average of all values", Category: CategoryAggregate},
	{Name: "MIN", Signature: "MIN(expr) -> same", Description: "Minimum value", Category: CategoryAggregate},
	{Name: "MAX", Signature: "MAX(expr) -> same", Description: "Maximum value", Category: CategoryAggregate},
	{Name: "ARRAY_AGG", Signature: "ARRAY_AGG(expr) -> array", Description: "Collect values into an array", Category: CategoryAggregate},
	{Name: "STRING_AGG", Signature: "STRING_AGG(expr, sep) -> text", Description: "Concatenate strings with separator", Category: CategoryAggregate},
	{Name: "JSONB_AGG", Signature: "JSONB_AGG(expr) -> jsonb", Description: "Collect values into a JSON array", Category: CategoryAggregate},
	{Name: "BOOL_AND", Signature: "BOOL_AND(expr) -> boolean", Description: "True if all values are true", Category: CategoryAggregate},
	{Name: "BOOL_OR", Signature: "BOOL_OR(expr) -> boolean", Description: "True if any value is true", Category: CategoryAggregate},
	{Name: "STDDEV", Signature: "STDDEV(expr) -> numeric", Description: "Sample standard deviation", Category: CategoryAggregate},
	{Name: "VARIANCE", Signature: "VARIANCE(expr) -> numeric", Description: "Sample variance", Category: CategoryAggregate},
	{Name: "PERCENTILE_CONT", Signature: "PERCENTILE_CONT(frac) WITHIN GROUP (ORDER BY expr)", Description: "Continuous percentile", Category: CategoryAggregate},

	// Window
	{Name: "ROW_NUMBER", Signature: "ROW_NUMBER() -> bigint", Description: "Row number within partition", Category: CategoryWindow},
	{Name: "RANK", Signature: "RANK() -> bigint", Description: "Rank with gaps", Category: CategoryWindow},
	{Name: "DENSE_RANK", Signature: "DENSE_RANK() -> bigint", Description: "Rank without gaps", Category: CategoryWindow},
	{Name: "NTILE", Signature: "NTILE(n) -> integer", Description: "Bucket number", Category: CategoryWindow},
	{Name: "LAG", Signature: "LAG(expr[, offset[, default]]) -> same", Description: "Value from a preceding row", Category: CategoryWindow},
	{Name: "LEAD", Signature: "LEAD(expr[, offset[, default]]) -> same", Description: "Value from a following row", Category: CategoryWindow},
	{Name: "FIRST_VALUE", Signature: "FIRST_VALUE(expr) -> same", Description: "First value in frame", Category: CategoryWindow},
	{Name: "LAST_VALUE", Signature: "LAST_VALUE(expr) -> same", Description: "Last value in frame", Category: CategoryWindow},

	// String
	{Name: "LOWER", Signature: "LOWER(text) -> text", Description: "Lowercase", Category: CategoryString},
	{Name: "UPPER", Signature: "UPPER(text) -> text", Description: "Uppercase", Category: CategoryString},
	{Name: "LENGTH", Signature: "LENGTH(text) -> integer", Description: "String length", Category: CategoryString},
	{Name: "SUBSTRING", Signature: "SUBSTRING(text, from[, count]) -> text", Description: "Extract substring", Category: CategoryString},
	{Name: "TRIM", Signature: "TRIM(text) -> text", Description: "Strip whitespace", Category: CategoryString},
	{Name: "REPLACE", Signature: "REPLACE(text, from, to) -> text", Description: "Replace occurrences", Category: CategoryString},
	{Name: "CONCAT", Signature: "CONCAT(any...) -> text", Description: "Concatenate values", Category: CategoryString},
	{Name: "SPLIT_PART", Signature: "SPLIT_PART(text, delim, n) -> text", Description: "Nth field after splitting", Category: CategoryString},
	{Name: "POSITION", Signature: "POSITION(sub IN text) -> integer", Description: "Location of substring", Category: CategoryString},
	{Name: "LEFT", Signature: "LEFT(text, n) -> text", Description: "First n characters", Category: CategoryString},
	{Name: "RIGHT", Signature: "RIGHT(text, n) -> text", Description: "Last n characters", Category: CategoryString},
	{Name: "REGEXP_REPLACE", Signature: "REGEXP_REPLACE(text, pattern, replacement) -> text", Description: "Regex replace", Category: CategoryString},
	{Name: "TO_CHAR", Signature: "TO_CHAR(value, format) -> text", Description: "Format as text", Category: CategoryString},

	// Numeric
	{Name: "ABS", Signature: "ABS(num) -> num", Description: "Absolute value", Category: CategoryNumeric},
	{Name: "ROUND", Signature: "ROUND(num[, places]) -> num", Description: "Round", Category: CategoryNumeric},
	{Name: "CEIL", Signature: "CEIL(num) -> num", Description: "Round up", Category: CategoryNumeric},
	{Name: "FLOOR", Signature: "FLOOR(num) -> num", Description: "Round down", Category: CategoryNumeric},
	{Name: "POWER", Signature: "POWER(x, y) -> double", Description: "x raised to y", Category: CategoryNumeric},
	{Name: "SQRT", Signature: "SQRT(num) -> double", Description: "Square root", Category: CategoryNumeric},
	{Name: "RANDOM", Signature: "RANDOM() -> double", Description: "Random value in [0, 1)", Category: CategoryNumeric},

	// Date/time
	{Name: "NOW", Signature: "NOW() -> timestamptz", Description: "Transaction start time", Category: CategoryDate},
	{Name: "CURRENT_DATE", Signature: "CURRENT_DATE -> date", Description: "Current date", Category: CategoryDate},
	{Name: "CURRENT_TIMESTAMP", Signature: "CURRENT_TIMESTAMP -> timestamptz", Description: "Transaction start time", Category: CategoryDate},
	{Name: "DATE_TRUNC", Signature: "DATE_TRUNC(field, ts) -> timestamp", Description: "Truncate to precision", Category: CategoryDate},
	{Name: "EXTRACT", Signature: "EXTRACT(field FROM ts) -> numeric", Description: "Extract subfield", Category: CategoryDate},
	{Name: "AGE", Signature: "AGE(ts[, ts]) -> interval", Description: "Interval between timestamps", Category: CategoryDate},
	{Name: "TO_DATE", Signature: "TO_DATE(text, format) -> date", Description: "Parse date from text", Category: CategoryDate},
	{Name: "TO_TIMESTAMP", Signature: "TO_TIMESTAMP(text, format) -> timestamptz", Description: "Parse timestamp from text", Category: CategoryDate},

	// Conditional
	{Name: "COALESCE", Signature: "COALESCE(any...) -> same", Description: "First non-null argument", Category: CategoryConditional},
	{Name: "NULLIF", Signature: "NULLIF(a, b) -> same", Description: "Null when a equals b", Category: CategoryConditional},
	{Name: "GREATEST", Signature: "GREATEST(any...) -> same", Description: "Largest argument", Category: CategoryConditional},
	{Name: "LEAST", Signature: "LEAST(any...) -> same", Description: "Smallest argument", Category: CategoryConditional},

	// JSON
	{Name: "JSONB_BUILD_OBJECT", Signature: "JSONB_BUILD_OBJECT(kv...) -> jsonb", Description: "Build a JSON object", Category: CategoryJSON},
	{Name: "JSONB_ARRAY_ELEMENTS", Signature: "JSONB_ARRAY_ELEMENTS(jsonb) -> setof jsonb", Description: "Expand a JSON array", Category: CategoryJSON},
	{Name: "TO_JSONB", Signature: "TO_JSONB(any) -> jsonb", Description: "Convert to JSON", Category: CategoryJSON},

	// Utility
	{Name: "GEN_RANDOM_UUID", Signature: "GEN_RANDOM_UUID() -> uuid", Description: "Random UUID", Category: CategoryUtility},
	{Name: "CAST", Signature: "CAST(expr AS type) -> type", Description: "Type conversion", Category: CategoryUtility},
	{Name: "CURRENT_USER", Signature: "CURRENT_USER -> name", Description: "Current user name", Category: CategoryUtility},
	{Name: "VERSION", Signature: "VERSION() -> text", Description: "Server version string", Category: CategoryUtility},
}

// SearchFunctions returns catalog functions whose name starts with
// prefix, case-insensitively. An empty prefix returns the whole catalog.
func SearchFunctions(prefix string) []FunctionInfo {
	if prefix == "" {
		return PostgresCatalog
	}
	upper := strings.ToUpper(prefix)
	var out []FunctionInfo
	for _, fn := range PostgresCatalog {
		if strings.HasPrefix(fn.Name, upper) {
			out = append(out, fn)
		}
	}
	return out
}
