package schema

import (
	"strings"

	"github.com/jinzhu/inflection"
)

// Namer derives a table name from a logical entity name.
type Namer interface {
	TableName(entity string) string
}

// NamingStrategy is the stock Namer: uppercase, pluralized table names.
type NamingStrategy struct {
	// TablePrefix is prepended to every derived name.
	TablePrefix string
	// SingularTable disables pluralization.
	SingularTable bool
}

// TableName converts an entity name to a table name.
func (ns NamingStrategy) TableName(entity string) string {
	if ns.SingularTable {
		return strings.ToUpper(ns.TablePrefix + entity)
	}
	return strings.ToUpper(ns.TablePrefix + inflection.Plural(entity))
}

// FullName joins a schema and table into the qualified uppercase form the
// generated SQL uses throughout.
func FullName(schema, table string) string {
	return strings.ToUpper(schema) + "." + strings.ToUpper(table)
}
