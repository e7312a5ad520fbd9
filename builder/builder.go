package builder

import (
	"strings"

	"github.com/tablegate/tablegate/schema"
)

// TableOptions is the fixed option suffix closing every generated CREATE
// TABLE statement. Deployed schemas were created with this exact text.
const TableOptions = "DATA CAPTURE NONE"

// Builder assembles parameterized SQL text and ordered bind lists for one
// table. It never executes anything; the gateway feeds its output to the
// driver. Every literal travels as a bind parameter, with one exception:
// the `IN ?` primary-key form binds its right-hand side as a single
// driver-interpreted value.
type Builder struct {
	// Table is the fully qualified SCHEMA.TABLE name.
	Table string
	// Resolver expands !Name! references in free-text fragments.
	Resolver Resolver
}

// Select builds "SELECT <columns> FROM <from> [WHERE <where>]". Both the
// from fragment and the where fragment undergo table-reference expansion.
func (b *Builder) Select(columns, from, where string, binds ...interface{}) (string, []interface{}, error) {
	return b.buildSelect("SELECT ", columns, from, where, binds)
}

// SelectDistinct is Select with a DISTINCT modifier.
func (b *Builder) SelectDistinct(columns, from, where string, binds ...interface{}) (string, []interface{}, error) {
	return b.buildSelect("SELECT DISTINCT ", columns, from, where, binds)
}

func (b *Builder) buildSelect(verb, columns, from, where string, binds []interface{}) (string, []interface{}, error) {
	from, err := Expand(from, b.Table, b.Resolver)
	if err != nil {
		return "", nil, err
	}

	var sql strings.Builder
	sql.WriteString(verb)
	sql.WriteString(columns)
	sql.WriteString(" FROM ")
	sql.WriteString(from)

	if where != "" {
		where, err = Expand(where, b.Table, b.Resolver)
		if err != nil {
			return "", nil, err
		}
		sql.WriteString(" WHERE ")
		sql.WriteString(where)
	}
	return sql.String(), binds, nil
}

// Insert builds a parameterized INSERT over the creatable columns: columns
// flagged NoCreate and the identity column stay out of both lists. value
// supplies the bind for each included column.
func (b *Builder) Insert(columns []*schema.Column, identity string, value func(name string) interface{}) (string, []interface{}) {
	var names []string
	var binds []interface{}
	for _, col := range columns {
		if col.NoCreate || col.Name == identity {
			continue
		}
		names = append(names, col.Name)
		binds = append(binds, value(col.Name))
	}
	if len(names) == 0 {
		return "", nil
	}

	var sql strings.Builder
	sql.WriteString("INSERT INTO ")
	sql.WriteString(b.Table)
	sql.WriteString(" (")
	sql.WriteString(strings.Join(names, ", "))
	sql.WriteString(") VALUES (")
	sql.WriteString(strings.Repeat("?, ", len(names)-1))
	sql.WriteString("?)")
	return sql.String(), binds
}

// Update builds "UPDATE … SET col = ?, … WHERE <primary> IN ?" over the
// modified columns, excluding the primary column itself. When nothing
// besides the primary column changed there is no statement to run and ok is
// false: the caller reports zero rows affected without touching the driver.
func (b *Builder) Update(primary string, modified []string, value func(name string) interface{}, primaryValue interface{}) (sql string, binds []interface{}, ok bool) {
	var sets []string
	for _, name := range modified {
		if name == primary {
			continue
		}
		sets = append(sets, name+" = ?")
		binds = append(binds, value(name))
	}
	if len(sets) == 0 {
		return "", nil, false
	}

	var out strings.Builder
	out.WriteString("UPDATE ")
	out.WriteString(b.Table)
	out.WriteString(" SET ")
	out.WriteString(strings.Join(sets, ", "))
	out.WriteString(" WHERE ")
	out.WriteString(primary)
	out.WriteString(" IN ?")
	binds = append(binds, primaryValue)
	return out.String(), binds, true
}

// Delete builds "DELETE FROM … WHERE <primary> IN ?". A table without a
// primary column cannot address a row, so ok is false and no statement is
// produced.
func (b *Builder) Delete(primary string, primaryValue interface{}) (sql string, binds []interface{}, ok bool) {
	if primary == "" {
		return "", nil, false
	}
	return "DELETE FROM " + b.Table + " WHERE " + primary + " IN ?", []interface{}{primaryValue}, true
}

// CreateTable builds the full CREATE TABLE statement: column definitions in
// declaration order, a PRIMARY KEY clause when the primary column was
// explicitly flagged, CONSTRAINT clauses, FOREIGN KEY clauses, and the
// fixed table option suffix.
func (b *Builder) CreateTable(columns []*schema.Column, primary string) (string, error) {
	defs := make([]string, 0, len(columns))
	for _, col := range columns {
		defs = append(defs, ColumnDef(col))
	}

	for _, col := range columns {
		if col.Primary && col.Name == primary {
			defs = append(defs, "PRIMARY KEY ("+primary+")")
			break
		}
	}

	for _, col := range columns {
		for _, text := range col.Constraints {
			text, err := Expand(text, b.Table, b.Resolver)
			if err != nil {
				return "", err
			}
			defs = append(defs, "CONSTRAINT "+text)
		}
	}

	for _, col := range columns {
		for _, text := range col.ForeignKeys {
			text, err := Expand(text, b.Table, b.Resolver)
			if err != nil {
				return "", err
			}
			defs = append(defs, "FOREIGN KEY ("+col.Name+") REFERENCES "+text)
		}
	}

	return "CREATE TABLE " + b.Table + " (" + strings.Join(defs, ", ") + ") " + TableOptions, nil
}

// AlterAdd builds one "ALTER TABLE … ADD <definition>" statement for a new
// column. One statement per column keeps the provisioning path simple.
func (b *Builder) AlterAdd(col *schema.Column) string {
	return "ALTER TABLE " + b.Table + " ADD " + ColumnDef(col)
}

// ColumnDef renders a single column definition: name, type, length, options,
// identity directive, and the CHECK clause backing the BOOL pseudo-type.
func ColumnDef(col *schema.Column) string {
	var def strings.Builder
	def.WriteString(col.Name)
	def.WriteByte(' ')
	if col.IsBool() {
		def.WriteString("CHAR")
	} else {
		def.WriteString(col.SQLType)
	}
	if col.Length != "" {
		def.WriteByte('(')
		def.WriteString(col.Length)
		def.WriteByte(')')
	}
	if col.Options != "" {
		def.WriteByte(' ')
		def.WriteString(col.Options)
	}
	if col.Identity {
		def.WriteByte(' ')
		def.WriteString(col.IdentityClause())
	}
	if col.IsBool() {
		def.WriteString(" CHECK (")
		def.WriteString(col.Name)
		def.WriteString(" IN ('Y','N'))")
	}
	return def.String()
}
