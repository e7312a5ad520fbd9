package schema

import (
	"strings"
)

// Registry derives per-table lookup structures from an ordered column list:
// the column name order, a name keyed index, the primary column and the
// identity column. Everything is computed at most once and cached for the
// life of the owning table.
type Registry struct {
	columns   []*Column
	noPrimary bool

	names    []string
	byName   map[string]*Column
	primary  string
	identity string

	namesDone    bool
	primaryDone  bool
	identityDone bool
}

// NewRegistry builds a registry over the declared column list. noPrimary
// declares that the table deliberately has no primary column, suppressing
// the last-column fallback.
func NewRegistry(columns []*Column, noPrimary bool) *Registry {
	return &Registry{columns: columns, noPrimary: noPrimary}
}

// Len returns the number of declared columns.
func (r *Registry) Len() int {
	return len(r.columns)
}

// Columns returns the declared column names in declaration order.
func (r *Registry) Columns() []string {
	if !r.namesDone {
		r.names = make([]string, 0, len(r.columns))
		r.byName = make(map[string]*Column, len(r.columns))
		for _, col := range r.columns {
			r.names = append(r.names, col.Name)
			r.byName[strings.ToUpper(col.Name)] = col
		}
		r.namesDone = true
	}
	return r.names
}

// Descriptors returns the declared column descriptors in declaration order.
func (r *Registry) Descriptors() []*Column {
	return r.columns
}

// Get looks up a column descriptor by name, case-insensitively.
func (r *Registry) Get(name string) (*Column, bool) {
	r.Columns()
	col, ok := r.byName[strings.ToUpper(name)]
	return col, ok
}

// Value returns a single descriptor field by name. The second result is
// false when either the column or the field is unknown.
func (r *Registry) Value(name, field string) (interface{}, bool) {
	col, ok := r.Get(name)
	if !ok {
		return nil, false
	}
	switch strings.ToLower(field) {
	case "name":
		return col.Name, true
	case "type":
		return col.SQLType, true
	case "length":
		return col.Length, true
	case "options":
		return col.Options, true
	case "default":
		return col.Default, true
	case "primary":
		return col.Primary, true
	case "constraint":
		return col.Constraints, true
	case "foreignkey":
		return col.ForeignKeys, true
	case "identity":
		return col.Identity, true
	case "nocreate":
		return col.NoCreate, true
	}
	return nil, false
}

// Primary returns the table's primary column name: the first column flagged
// primary, else the last declared column. Empty when the table declares
// itself primary-less.
func (r *Registry) Primary() string {
	if !r.primaryDone {
		r.primary = r.findPrimary()
		r.primaryDone = true
	}
	return r.primary
}

func (r *Registry) findPrimary() string {
	if r.noPrimary || len(r.columns) == 0 {
		return ""
	}
	for _, col := range r.columns {
		if col.Primary {
			return col.Name
		}
	}
	return r.columns[len(r.columns)-1].Name
}

// Identity returns the first declared column carrying an identity marker,
// or empty when the table has none.
func (r *Registry) Identity() string {
	if !r.identityDone {
		r.identity = ""
		for _, col := range r.columns {
			if col.HasIdentity() {
				r.identity = col.Name
				break
			}
		}
		r.identityDone = true
	}
	return r.identity
}

// Reset drops every cache together. Only test and reinitialization flows
// use this; normal operation never mutates a registry.
func (r *Registry) Reset() {
	r.names = nil
	r.byName = nil
	r.primary = ""
	r.identity = ""
	r.namesDone = false
	r.primaryDone = false
	r.identityDone = false
}
