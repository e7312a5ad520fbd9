package tablegate

import (
	"fmt"
	"strings"
	"time"

	"github.com/tablegate/tablegate/builder"
	"github.com/tablegate/tablegate/logger"
	"github.com/tablegate/tablegate/schema"
	"github.com/tablegate/tablegate/utils"
)

// Definition declares one table: where it lives, its ordered column list
// and the optional behavioral overrides.
type Definition struct {
	// Schema is the database schema the table lives in.
	Schema string
	// Table is the table name. Derived from Entity via the naming strategy
	// when empty.
	Table string
	// Entity is the logical name keying !Name! references. Defaults to the
	// table name.
	Entity string
	// Columns is the ordered column list. Order is significant.
	Columns []*schema.Column
	// NoPrimary declares the table deliberately primary-less, suppressing
	// the last-column fallback.
	NoPrimary bool
	// NewRow constructs typed rows. Defaults to the stock Record.
	NewRow RowFactory
	// AfterProvision runs once after EnsureSchema creates or alters the
	// table, e.g. to grant default privileges.
	AfterProvision func(*Table, ProvisionChange)
}

// ProvisionChange describes what EnsureSchema did to the live table.
type ProvisionChange struct {
	// Created is set when the table was created from scratch.
	Created bool
	// Added lists columns newly added to an existing table.
	Added []string
}

// Table is the gateway for one declared table: it derives the schema
// registry from the column list, builds parameterized SQL through its
// builder, executes through the shared connection and shapes results back
// into rows.
type Table struct {
	db       *DB
	def      Definition
	registry *schema.Registry
	builder  *builder.Builder
	newRow   RowFactory

	lastErr *ExecError
}

func newTable(db *DB, def Definition) *Table {
	t := &Table{
		db:       db,
		def:      def,
		registry: schema.NewRegistry(def.Columns, def.NoPrimary),
	}
	t.builder = &builder.Builder{
		Table:    schema.FullName(def.Schema, def.Table),
		Resolver: db,
	}
	t.newRow = def.NewRow
	if t.newRow == nil {
		t.newRow = func(t *Table, values map[string]interface{}) Row {
			return NewRecord(t, values)
		}
	}
	return t
}

// Name returns the bare table name.
func (t *Table) Name() string { return utils.Upper(t.def.Table) }

// Schema returns the schema the table lives in.
func (t *Table) Schema() string { return utils.Upper(t.def.Schema) }

// Entity returns the logical name used by !Name! references.
func (t *Table) Entity() string { return t.def.Entity }

// FullName returns the qualified SCHEMA.TABLE name.
func (t *Table) FullName() string { return t.builder.Table }

// Registry exposes the derived schema registry to rows and callers.
func (t *Table) Registry() *schema.Registry { return t.registry }

// DB returns the owning database.
func (t *Table) DB() *DB { return t.db }

// LastError returns the most recent execution failure, nil when the last
// statement succeeded. Execution errors are retained here as well as
// returned, so callers that treat an empty result as answer enough can
// still inspect what happened.
func (t *Table) LastError() *ExecError { return t.lastErr }

// Count returns the table's row count.
func (t *Table) Count() (int64, error) {
	return t.CountWhere("")
}

// CountWhere returns the number of rows matching a predicate. The predicate
// may use table-reference placeholders.
func (t *Table) CountWhere(where string, binds ...interface{}) (int64, error) {
	sql, binds, err := t.builder.Select("COUNT(*)", builder.SelfRef, where, binds...)
	if err != nil {
		return 0, err
	}
	rows, err := t.query(sql, binds)
	if err != nil {
		return 0, err
	}
	if len(rows) == 0 || len(rows[0]) == 0 {
		return 0, nil
	}
	return toInt64(rows[0][0]), nil
}

// FindByID fetches rows by primary-key value. Multiple values bind as one
// tuple on the driver's `IN ?` contract.
func (t *Table) FindByID(ids ...interface{}) ([]Row, error) {
	primary := t.registry.Primary()
	if primary == "" {
		return nil, ErrPrimaryKeyRequired
	}
	if len(ids) == 0 {
		return nil, fmt.Errorf("%w: no values given", ErrPrimaryKeyRequired)
	}
	var bind interface{} = ids[0]
	if len(ids) > 1 {
		bind = ids
	}
	return t.FindAll(primary+" IN ?", bind)
}

// FindAll returns every row matching the predicate, possibly none.
func (t *Table) FindAll(where string, binds ...interface{}) ([]Row, error) {
	return t.findRows(builder.SelfRef, where, binds)
}

// FindOne returns the single row matching the predicate. Zero matches
// yield ErrRecordNotFound; more than one yields the first.
func (t *Table) FindOne(where string, binds ...interface{}) (Row, error) {
	rows, err := t.FindAll(where, binds...)
	if err != nil {
		return nil, err
	}
	return one(rows)
}

// FindJoin returns rows matched through a join fragment. The fragment and
// predicate may use table-reference placeholders.
func (t *Table) FindJoin(join, where string, binds ...interface{}) ([]Row, error) {
	return t.findRows(builder.SelfRef+" "+join, where, binds)
}

// FindJoinOne is FindJoin shaped to a single row, with FindOne's rules.
func (t *Table) FindJoinOne(join, where string, binds ...interface{}) (Row, error) {
	rows, err := t.FindJoin(join, where, binds...)
	if err != nil {
		return nil, err
	}
	return one(rows)
}

func one(rows []Row) (Row, error) {
	if len(rows) == 0 {
		return nil, ErrRecordNotFound
	}
	return rows[0], nil
}

func (t *Table) findRows(from, where string, binds []interface{}) ([]Row, error) {
	columns := strings.Join(t.registry.Columns(), ", ")
	sql, binds, err := t.builder.Select(columns, from, where, binds...)
	if err != nil {
		return nil, err
	}
	raw, err := t.query(sql, binds)
	if err != nil {
		return nil, err
	}
	return t.shapeRows(raw), nil
}

// shapeRows zips raw result tuples against the declared column order and
// hands each to the row factory.
func (t *Table) shapeRows(raw [][]interface{}) []Row {
	names := t.registry.Columns()
	out := make([]Row, 0, len(raw))
	for _, tuple := range raw {
		values := make(map[string]interface{}, len(names))
		for i, name := range names {
			if i < len(tuple) {
				values[name] = tuple[i]
			}
		}
		out = append(out, t.newRow(t, values))
	}
	return out
}

// NewRow constructs a fresh, unsaved row populated with the declared column
// defaults and an empty modified set.
func (t *Table) NewRow() Row {
	values := map[string]interface{}{}
	for _, col := range t.registry.Descriptors() {
		if v := defaultValue(col); v != nil {
			values[col.Name] = v
		}
	}
	return t.newRow(t, values)
}

// Save persists a row: inserts when no stored row matches its primary-key
// value, otherwise updates the modified columns. A row from another table
// is rejected before any SQL runs.
//
// The existence check is a live COUNT on the primary-key value, not a
// memory of where the row came from: a fresh row colliding with a stored
// key updates that stored row. Callers that know their intent should use
// Insert or Update directly.
func (t *Table) Save(row Row) error {
	if err := t.owns(row); err != nil {
		return err
	}
	primary := t.registry.Primary()
	if primary == "" {
		return t.Insert(row)
	}
	n, err := t.CountWhere(primary+" IN ?", row.PrimaryValue())
	if err != nil {
		return err
	}
	if n > 0 {
		return t.Update(row)
	}
	return t.Insert(row)
}

// Insert writes the row's creatable columns unconditionally.
func (t *Table) Insert(row Row) error {
	if err := t.owns(row); err != nil {
		return err
	}
	sql, binds := t.builder.Insert(t.registry.Descriptors(), t.registry.Identity(), row.Get)
	if sql == "" {
		return nil
	}
	if err := t.exec(sql, binds); err != nil {
		return err
	}
	row.ClearModified()
	return nil
}

// Update writes the row's modified columns, primary key excluded. A row
// with nothing modified executes nothing and reports success with zero
// rows affected.
func (t *Table) Update(row Row) error {
	if err := t.owns(row); err != nil {
		return err
	}
	primary := t.registry.Primary()
	if primary == "" {
		return ErrPrimaryKeyRequired
	}
	sql, binds, ok := t.builder.Update(primary, row.Modified(), row.Get, row.PrimaryValue())
	if !ok {
		return nil
	}
	if err := t.exec(sql, binds); err != nil {
		return err
	}
	row.ClearModified()
	return nil
}

// Delete removes the stored row matching the row's primary-key value. A
// primary-less table has nothing to address, so the call is a no-op.
func (t *Table) Delete(row Row) error {
	if err := t.owns(row); err != nil {
		return err
	}
	sql, binds, ok := t.builder.Delete(t.registry.Primary(), row.PrimaryValue())
	if !ok {
		return nil
	}
	return t.exec(sql, binds)
}

// Commit delegates to the driver.
func (t *Table) Commit() error {
	return t.db.Commit()
}

func (t *Table) owns(row Row) error {
	if row == nil || row.Table() != t {
		return ErrTableMismatch
	}
	return nil
}

// EnsureSchema creates the table when it does not exist, otherwise adds any
// declared columns missing from the live table, then runs the provisioning
// hook. DDL failures follow the configured policy: strict mode returns
// them, best-effort mode logs and carries on.
func (t *Table) EnsureSchema() error {
	tables, err := t.db.conn.ListTables(t.Schema(), t.Name())
	if err != nil {
		return t.ddlFailed("list tables", err)
	}

	if !containsName(tables, t.Name()) {
		sql, err := t.builder.CreateTable(t.registry.Descriptors(), t.registry.Primary())
		if err != nil {
			return err
		}
		if err := t.exec(sql, nil); err != nil {
			return t.ddlFailed("create table", err)
		}
		t.provisioned(ProvisionChange{Created: true})
		return nil
	}

	live, err := t.db.conn.ListColumns(t.Schema(), t.Name())
	if err != nil {
		return t.ddlFailed("list columns", err)
	}

	var added []string
	for _, col := range t.registry.Descriptors() {
		if containsName(live, col.Name) {
			continue
		}
		if err := t.exec(t.builder.AlterAdd(col), nil); err != nil {
			return t.ddlFailed("alter table", err)
		}
		added = append(added, col.Name)
	}
	if len(added) > 0 {
		t.provisioned(ProvisionChange{Added: added})
	}
	return nil
}

func (t *Table) provisioned(change ProvisionChange) {
	if t.def.AfterProvision != nil {
		t.def.AfterProvision(t, change)
	}
}

func (t *Table) ddlFailed(op string, err error) error {
	if t.db.config.StrictDDL {
		return fmt.Errorf("%s %s: %w", op, t.FullName(), err)
	}
	t.db.Logger().Error("%s %s failed: %v", op, t.FullName(), err)
	return nil
}

// query prepares and executes a statement, returning the fetched tuples.
// Preparation failures surface loudly; execution failures come back as a
// retained ExecError.
func (t *Table) query(sql string, binds []interface{}) ([][]interface{}, error) {
	begin := time.Now()

	stmt, err := t.db.conn.Prepare(sql)
	if err != nil {
		return nil, fmt.Errorf("prepare %q: %w", sql, err)
	}
	defer stmt.Close()

	if err := stmt.Exec(binds...); err != nil {
		return nil, t.failed(sql, binds, begin, err)
	}
	rows, err := stmt.Rows()
	if err != nil {
		return nil, t.failed(sql, binds, begin, err)
	}

	t.lastErr = nil
	t.trace(sql, binds, begin, int64(len(rows)), nil)
	return rows, nil
}

// exec prepares and executes a statement that returns no rows.
func (t *Table) exec(sql string, binds []interface{}) error {
	begin := time.Now()

	stmt, err := t.db.conn.Prepare(sql)
	if err != nil {
		return fmt.Errorf("prepare %q: %w", sql, err)
	}
	defer stmt.Close()

	if err := stmt.Exec(binds...); err != nil {
		return t.failed(sql, binds, begin, err)
	}

	t.lastErr = nil
	t.trace(sql, binds, begin, -1, nil)
	return nil
}

func (t *Table) failed(sql string, binds []interface{}, begin time.Time, err error) *ExecError {
	execErr := &ExecError{SQL: sql, Err: err}
	t.lastErr = execErr
	t.trace(sql, binds, begin, -1, execErr)
	return execErr
}

func (t *Table) trace(sql string, binds []interface{}, begin time.Time, rows int64, err error) {
	t.db.Logger().Trace(begin, func() (string, int64) {
		return logger.ExplainSQL(sql, binds...), rows
	}, err)
}

func containsName(names []string, name string) bool {
	for _, n := range names {
		if strings.EqualFold(n, name) {
			return true
		}
	}
	return false
}

func toInt64(v interface{}) int64 {
	switch v := v.(type) {
	case int64:
		return v
	case int:
		return int64(v)
	case int32:
		return int64(v)
	case float64:
		return int64(v)
	case string:
		var n int64
		fmt.Sscan(v, &n)
		return n
	}
	return 0
}
