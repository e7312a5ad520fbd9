package tablegate

import (
	"errors"

	"github.com/tablegate/tablegate/logger"
)

var (
	// ErrRecordNotFound record not found error
	ErrRecordNotFound = logger.ErrRecordNotFound
	// ErrTableMismatch row passed to save/delete belongs to a different table
	ErrTableMismatch = errors.New("row belongs to a different table")
	// ErrPrimaryKeyRequired primary keys required
	ErrPrimaryKeyRequired = errors.New("primary key required")
	// ErrUnknownTable table name not registered with the database
	ErrUnknownTable = errors.New("table not registered")
	// ErrUnknownColumn column name not declared in the table schema
	ErrUnknownColumn = errors.New("column not declared")
	// ErrInvalidDefinition table definition incomplete
	ErrInvalidDefinition = errors.New("invalid table definition")
)
