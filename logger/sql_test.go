package logger_test

import (
	"testing"
	"time"

	"github.com/tablegate/tablegate/logger"
)

func TestExplainSQL(t *testing.T) {
	date := time.Date(2002, 1, 15, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		sql  string
		vars []interface{}
		want string
	}{
		{
			sql:  "SELECT EMPNO FROM PAYROLL.EMPLOYEES WHERE NAME = ? AND SALARY > ?",
			vars: []interface{}{"HAAS", int64(50000)},
			want: "SELECT EMPNO FROM PAYROLL.EMPLOYEES WHERE NAME = 'HAAS' AND SALARY > 50000",
		},
		{
			sql:  "UPDATE PAYROLL.EMPLOYEES SET HIREDATE = ? WHERE EMPNO IN ?",
			vars: []interface{}{date, "000010"},
			want: "UPDATE PAYROLL.EMPLOYEES SET HIREDATE = '2002-01-15 00:00:00' WHERE EMPNO IN '000010'",
		},
		{
			sql:  "INSERT INTO PAYROLL.EMPLOYEES (NAME, BONUS) VALUES (?, ?)",
			vars: []interface{}{nil, 812.50},
			want: "INSERT INTO PAYROLL.EMPLOYEES (NAME, BONUS) VALUES (NULL, 812.500000)",
		},
		{
			sql:  "SELECT 1 FROM T WHERE ACTIVE = ?",
			vars: []interface{}{true},
			want: "SELECT 1 FROM T WHERE ACTIVE = true",
		},
	}

	for _, tt := range tests {
		if got := logger.ExplainSQL(tt.sql, tt.vars...); got != tt.want {
			t.Errorf("ExplainSQL(%q) = %q, want %q", tt.sql, got, tt.want)
		}
	}
}
