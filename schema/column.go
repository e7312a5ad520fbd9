package schema

import (
	"strings"
)

// IdentityDirective is the generation clause emitted for identity columns
// that do not supply their own directive. The exact text is load-bearing:
// deployed databases were created with it.
const IdentityDirective = "START WITH 0, INCREMENT BY 1, NO CACHE"

// Column is the static description of one table column. A table declares an
// ordered list of these once; the order is significant, both for lookups and
// for zipping raw result tuples into rows.
type Column struct {
	// Name is the canonical uppercase identifier, unique within a table.
	Name string

	// SQLType is the column type, e.g. CHAR, VARCHAR, DECIMAL, INTEGER.
	// The pseudo-type BOOL renders as CHAR plus a CHECK ('Y','N') clause.
	SQLType string

	// Length sizes the type when non-empty, e.g. "6" or "12,2".
	Length string

	// Options is a free-text column option fragment, e.g. "NOT NULL".
	Options string

	// Default populates the column on freshly constructed rows.
	Default interface{}

	// Primary flags the column as the table's primary column.
	Primary bool

	// Constraints are emitted as independent CONSTRAINT clauses at
	// table-creation time.
	Constraints []string

	// ForeignKeys each become a FOREIGN KEY (col) REFERENCES <text> clause.
	// Table-reference placeholders in the text are expanded before emission.
	ForeignKeys []string

	// Identity marks the column as database-generated.
	Identity bool

	// IdentityOptions overrides the generation directive. Empty or the
	// literal "default" selects IdentityDirective.
	IdentityOptions string

	// NoCreate excludes the column from INSERT statements, e.g. for
	// computed columns.
	NoCreate bool
}

// Bool is the pseudo-type stored as CHAR with a CHECK ('Y','N') constraint.
const Bool = "BOOL"

// IsBool reports whether the column uses the BOOL pseudo-type.
func (c *Column) IsBool() bool {
	return strings.EqualFold(c.SQLType, Bool)
}

// IdentityClause returns the GENERATED ALWAYS AS IDENTITY directive text for
// the column, substituting the stock directive when none was declared.
func (c *Column) IdentityClause() string {
	opts := strings.TrimSpace(c.IdentityOptions)
	if opts == "" || strings.EqualFold(opts, "default") {
		opts = IdentityDirective
	}
	return "GENERATED ALWAYS AS IDENTITY (" + opts + ")"
}

// HasIdentity reports whether the column is database-generated, either via
// the Identity flag or an options fragment that already carries the
// generation clause.
func (c *Column) HasIdentity() bool {
	if c.Identity {
		return true
	}
	return strings.Contains(strings.ToUpper(c.Options), "GENERATED ALWAYS AS IDENTITY")
}
