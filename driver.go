package tablegate

import (
	"fmt"
)

// Conn is the database driver collaborator. The gateway never talks to the
// wire itself: it prepares parameterized statements, executes them with bound
// values and reads ordered result tuples back through this interface.
//
// The right-hand side of the `IN ?` form used for primary-key matching is
// bound as a single value that may be a scalar or a slice; supporting that
// binding is part of the driver contract.
type Conn interface {
	Prepare(query string) (Stmt, error)
	Commit() error
	Rollback() error

	// ListTables reports table names visible under the given schema filter.
	ListTables(schema, name string) ([]string, error)
	// ListColumns reports the live column names of an existing table.
	ListColumns(schema, table string) ([]string, error)
}

// Stmt is a prepared statement handle.
type Stmt interface {
	Exec(binds ...interface{}) error
	Rows() ([][]interface{}, error)
	Close() error
}

// DriverError carries the code/state/message triple reported by the driver
// for a failed execution.
type DriverError struct {
	Code    int
	State   string
	Message string
}

func (e *DriverError) Error() string {
	return fmt.Sprintf("driver error %d (%s): %s", e.Code, e.State, e.Message)
}

// ExecError wraps a statement execution failure with the statement that
// produced it. The failing Table retains the most recent ExecError for
// inspection via LastError.
type ExecError struct {
	SQL string
	Err error
}

func (e *ExecError) Error() string {
	return fmt.Sprintf("exec %q: %v", e.SQL, e.Err)
}

func (e *ExecError) Unwrap() error { return e.Err }
