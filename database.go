package tablegate

import (
	"fmt"

	"github.com/tablegate/tablegate/builder"
	"github.com/tablegate/tablegate/logger"
	"github.com/tablegate/tablegate/schema"
	"github.com/tablegate/tablegate/utils"
)

// DB owns a driver connection and the registry of tables declared against
// it. The registry backs !Name! table-reference expansion; there is no
// ambient global state.
type DB struct {
	conn   Conn
	config *Config
	tables map[string]*Table
}

// Open wraps an established driver connection. The connection is assumed
// single-owner: the gateway adds no locking of its own.
func Open(conn Conn, config *Config) (*DB, error) {
	if conn == nil {
		return nil, fmt.Errorf("%w: nil connection", ErrInvalidDefinition)
	}
	if config == nil {
		config = &Config{}
	}
	if config.Logger == nil {
		config.Logger = logger.Default
	}
	if config.NamingStrategy == nil {
		config.NamingStrategy = schema.NamingStrategy{}
	}
	return &DB{
		conn:   conn,
		config: config,
		tables: map[string]*Table{},
	}, nil
}

// Register declares a table against the database and returns its gateway.
// The entity name (the table name when no entity is given) keys !Name!
// references.
func (db *DB) Register(def Definition) (*Table, error) {
	if def.Schema == "" || len(def.Columns) == 0 {
		return nil, fmt.Errorf("%w: schema and columns are required", ErrInvalidDefinition)
	}
	if def.Table == "" {
		if def.Entity == "" {
			return nil, fmt.Errorf("%w: table or entity name required", ErrInvalidDefinition)
		}
		def.Table = db.config.NamingStrategy.TableName(def.Entity)
	}
	if def.Entity == "" {
		def.Entity = def.Table
	}

	key := utils.Upper(def.Entity)
	if _, dup := db.tables[key]; dup {
		return nil, fmt.Errorf("%w: %q already registered", ErrInvalidDefinition, def.Entity)
	}

	t := newTable(db, def)
	db.tables[key] = t
	return t, nil
}

// Table returns a registered gateway by entity name.
func (db *DB) Table(entity string) (*Table, bool) {
	t, ok := db.tables[utils.Upper(entity)]
	return t, ok
}

// ResolveTable implements builder.Resolver over the registered tables.
func (db *DB) ResolveTable(name string) (string, error) {
	t, ok := db.Table(name)
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownTable, name)
	}
	return t.FullName(), nil
}

// Commit delegates to the driver.
func (db *DB) Commit() error {
	return db.conn.Commit()
}

// Rollback delegates to the driver.
func (db *DB) Rollback() error {
	return db.conn.Rollback()
}

// Logger returns the configured logger.
func (db *DB) Logger() logger.Interface {
	return db.config.Logger
}

var _ builder.Resolver = (*DB)(nil)
