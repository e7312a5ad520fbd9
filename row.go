package tablegate

import (
	"strings"
	"time"

	"github.com/jinzhu/now"

	"github.com/tablegate/tablegate/schema"
	"github.com/tablegate/tablegate/utils"
)

// Row is the record collaborator the gateway reads and writes. A row holds
// current column values plus the set of columns modified since it was last
// loaded or saved; Save uses that set to emit partial UPDATEs.
type Row interface {
	// Table returns the owning gateway. Rows reference their table, never
	// the other way around.
	Table() *Table
	Get(column string) interface{}
	Set(column string, value interface{})
	// Modified returns the dirty column names in declaration order.
	Modified() []string
	ClearModified()
	// PrimaryValue returns the current value of the table's primary column.
	PrimaryValue() interface{}
}

// RowFactory constructs a concrete row from its owning table and an initial
// value map. Tables with typed rows register one in their Definition;
// everything else gets the stock Record.
type RowFactory func(t *Table, values map[string]interface{}) Row

// Record is the stock Row implementation: a value map and a dirty set.
// Typed rows embed *Record and add accessors on top.
type Record struct {
	table  *Table
	values map[string]interface{}
	dirty  map[string]bool
}

// NewRecord builds a record over an initial value map. The record starts
// clean: construction never marks columns modified.
func NewRecord(t *Table, values map[string]interface{}) *Record {
	r := &Record{
		table:  t,
		values: make(map[string]interface{}, len(values)),
		dirty:  map[string]bool{},
	}
	for name, value := range values {
		r.values[utils.Upper(name)] = value
	}
	return r
}

// Table returns the owning gateway.
func (r *Record) Table() *Table { return r.table }

// Get returns the current value of a column, nil when unset.
func (r *Record) Get(column string) interface{} {
	return r.values[utils.Upper(column)]
}

// Set assigns a column value and marks the column modified. String values
// destined for temporal columns are parsed into time.Time on the way in.
func (r *Record) Set(column string, value interface{}) {
	name := utils.Upper(column)
	if col, ok := r.table.Registry().Get(name); ok {
		value = coerceTemporal(col, value)
	}
	r.values[name] = value
	r.dirty[name] = true
}

// Modified returns the dirty column names in declaration order.
func (r *Record) Modified() []string {
	var out []string
	for _, name := range r.table.Registry().Columns() {
		if r.dirty[utils.Upper(name)] {
			out = append(out, name)
		}
	}
	return out
}

// ClearModified empties the dirty set; Save calls this after persisting.
func (r *Record) ClearModified() {
	r.dirty = map[string]bool{}
}

// PrimaryValue returns the value of the table's primary column, nil when
// the table has none.
func (r *Record) PrimaryValue() interface{} {
	primary := r.table.Registry().Primary()
	if primary == "" {
		return nil
	}
	return r.Get(primary)
}

func isTemporal(sqlType string) bool {
	switch strings.ToUpper(sqlType) {
	case "DATE", "TIME", "TIMESTAMP":
		return true
	}
	return false
}

// coerceTemporal turns string literals aimed at temporal columns into
// time.Time values, leaving everything else untouched.
func coerceTemporal(col *schema.Column, value interface{}) interface{} {
	s, ok := value.(string)
	if !ok || !isTemporal(col.SQLType) {
		return value
	}
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "CURRENT DATE":
		return now.BeginningOfDay()
	case "CURRENT TIME", "CURRENT TIMESTAMP":
		return time.Now()
	}
	if t, err := now.Parse(s); err == nil {
		return t
	}
	return value
}

// defaultValue resolves a column's declared default for a fresh row.
func defaultValue(col *schema.Column) interface{} {
	if col.Default == nil {
		return nil
	}
	return coerceTemporal(col, col.Default)
}
