package drift

// Severity rules:
// - BLOCK when inserts valid for the requested spec would fail on the live table
// - WARN when the tables differ in a way inserts may not notice
// - INFO for harmless differences

const (
	SeverityInfo  = "INFO"
	SeverityWarn  = "WARN"
	SeverityBlock = "BLOCK"
)

// Change kinds supported:
// "column_missing", "column_extra", "type_changed", "nullable_to_notnull", "notnull_to_nullable"
func SeverityForChange(kind string) string {
	switch kind {
	case "column_missing", "nullable_to_notnull":
		return SeverityBlock
	case "type_changed", "notnull_to_nullable":
		return SeverityWarn
	case "column_extra":
		return SeverityInfo
	default:
		return SeverityInfo
	}
}

// MessageForChange returns a concise message for the given change kind.
func MessageForChange(kind, from, to string) string {
	switch kind {
	case "column_missing":
		return "requested but missing in table"
	case "column_extra":
		return "present in table but not requested"
	case "type_changed":
		return "type mismatch: table " + quoted(from) + ", requested " + quoted(to)
	case "nullable_to_notnull":
		return "table column is NOT NULL, requested nullable"
	case "notnull_to_nullable":
		return "table column is nullable, requested NOT NULL"
	default:
		return ""
	}
}

func quoted(s string) string {
	if s == "" {
		return `""`
	}
	return s
}
