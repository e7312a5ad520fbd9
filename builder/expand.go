package builder

import (
	"fmt"
	"regexp"
	"strings"
)

// Resolver maps a registered table name to its fully qualified SCHEMA.TABLE
// form. The owning database implements this; the builder never reaches for
// ambient global state.
type Resolver interface {
	ResolveTable(name string) (string, error)
}

// SelfRef is the placeholder for the current table's qualified name.
const SelfRef = "!!!"

var tableRef = regexp.MustCompile(`!([A-Za-z_][A-Za-z0-9_]*)!`)

// Expand rewrites table-reference placeholders inside a free-text SQL
// fragment: SelfRef becomes self, and !Name! resolves through the resolver.
// Unresolved names fail loudly. WHERE clauses, JOIN fragments, CONSTRAINT
// text and FOREIGN KEY text all pass through here before emission.
func Expand(fragment, self string, r Resolver) (string, error) {
	out := strings.ReplaceAll(fragment, SelfRef, self)

	var err error
	out = tableRef.ReplaceAllStringFunc(out, func(ref string) string {
		if err != nil {
			return ref
		}
		name := ref[1 : len(ref)-1]
		if r == nil {
			err = fmt.Errorf("no resolver for table reference %q", ref)
			return ref
		}
		full, rerr := r.ResolveTable(name)
		if rerr != nil {
			err = fmt.Errorf("table reference %q: %w", ref, rerr)
			return ref
		}
		return full
	})
	if err != nil {
		return "", err
	}
	return out, nil
}
