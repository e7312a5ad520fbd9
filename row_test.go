package tablegate

import (
	"testing"
	"time"

	"github.com/jinzhu/now"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tablegate/tablegate/logger"
	"github.com/tablegate/tablegate/schema"
)

func hiringTable(t *testing.T) *Table {
	t.Helper()
	db, err := Open(newFakeConn(), &Config{Logger: logger.Discard})
	require.NoError(t, err)

	tbl, err := db.Register(Definition{
		Schema: "PAYROLL",
		Table:  "HIRES",
		Columns: []*schema.Column{
			{Name: "EMPNO", SQLType: "CHAR", Length: "6", Primary: true},
			{Name: "STATUS", SQLType: "CHAR", Length: "1", Default: "A"},
			{Name: "HIREDATE", SQLType: "DATE", Default: "CURRENT DATE"},
		},
	})
	require.NoError(t, err)
	return tbl
}

func TestNewRowDefaults(t *testing.T) {
	tbl := hiringTable(t)

	row := tbl.NewRow()
	assert.Nil(t, row.Get("EMPNO"), "no declared default")
	assert.Equal(t, "A", row.Get("STATUS"))
	assert.Equal(t, now.BeginningOfDay(), row.Get("HIREDATE"))
	assert.Empty(t, row.Modified(), "defaults do not count as modifications")
}

func TestRecordDirtyTracking(t *testing.T) {
	tbl := hiringTable(t)

	row := tbl.NewRow()
	row.Set("status", "T")
	row.Set("EMPNO", "000050")

	assert.Equal(t, "T", row.Get("STATUS"), "column access is case-insensitive")
	assert.Equal(t, []string{"EMPNO", "STATUS"}, row.Modified(),
		"modified names come back in declaration order")
	assert.Equal(t, "000050", row.PrimaryValue())

	row.ClearModified()
	assert.Empty(t, row.Modified())
	assert.Equal(t, "T", row.Get("STATUS"), "clearing the dirty set keeps values")
}

func TestTemporalCoercion(t *testing.T) {
	tbl := hiringTable(t)

	row := tbl.NewRow()
	row.Set("HIREDATE", "2002-01-15")

	hired, ok := row.Get("HIREDATE").(time.Time)
	require.True(t, ok, "date literals parse into time.Time")
	assert.Equal(t, 2002, hired.Year())
	assert.Equal(t, time.January, hired.Month())
	assert.Equal(t, 15, hired.Day())

	// non-temporal columns keep strings as-is
	row.Set("STATUS", "2002-01-15")
	assert.Equal(t, "2002-01-15", row.Get("STATUS"))
}
