package repository

import (
	"encoding/json"
	"fmt"
	"strings"

	"gorm.io/gorm"
)

// dbDialectName returns the dialect name, defaulting to sqlite.
func dbDialectName(db *gorm.DB) string {
	if db == nil || db.Dialector == nil {
		return "sqlite"
	}
	name := strings.ToLower(strings.TrimSpace(db.Dialector.Name()))
	if name == "" {
		return "sqlite"
	}
	return name
}

// likeOperator returns the case-insensitive LIKE operator for the dialect.
// SQLite LIKE is case-insensitive for ASCII by default; postgres needs ILIKE.
func likeOperator(db *gorm.DB) string {
	return likeOperatorByDialect(dbDialectName(db))
}

func likeOperatorByDialect(dialect string) string {
	switch strings.ToLower(strings.TrimSpace(dialect)) {
	case "postgres", "postgresql":
		return "ILIKE"
	default:
		return "LIKE"
	}
}

// jsonArrayContainsCondition builds a condition matching rows whose JSON
// array column contains the given string element.
func jsonArrayContainsCondition(db *gorm.DB, column, element string) (string, interface{}) {
	return jsonArrayContainsConditionByDialect(dbDialectName(db), column, element)
}

func jsonArrayContainsConditionByDialect(dialect, column, element string) (string, interface{}) {
	switch strings.ToLower(strings.TrimSpace(dialect)) {
	case "postgres", "postgresql":
		arg, _ := json.Marshal([]string{element})
		return fmt.Sprintf("(%s::jsonb @> ?::jsonb)", column), string(arg)
	default:
		return fmt.Sprintf("EXISTS (SELECT 1 FROM json_each(%s) WHERE json_each.value = ?)", column), element
	}
}
