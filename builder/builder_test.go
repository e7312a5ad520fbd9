package builder_test

import (
	"fmt"
	"reflect"
	"testing"

	"github.com/tablegate/tablegate/builder"
	"github.com/tablegate/tablegate/schema"
)

type staticResolver map[string]string

func (r staticResolver) ResolveTable(name string) (string, error) {
	if full, ok := r[name]; ok {
		return full, nil
	}
	return "", fmt.Errorf("unknown table %q", name)
}

func newBuilder() *builder.Builder {
	return &builder.Builder{
		Table:    "PAYROLL.EMPLOYEES",
		Resolver: staticResolver{"Dept": "PAYROLL.DEPTS"},
	}
}

func TestSelect(t *testing.T) {
	results := []struct {
		Columns  string
		From     string
		Where    string
		Binds    []interface{}
		Distinct bool
		Result   string
	}{
		{
			Columns: "EMPNO, NAME", From: "!!!", Where: "",
			Result: "SELECT EMPNO, NAME FROM PAYROLL.EMPLOYEES",
		},
		{
			Columns: "EMPNO", From: "!!!", Where: "NAME = ?",
			Binds:  []interface{}{"HAAS"},
			Result: "SELECT EMPNO FROM PAYROLL.EMPLOYEES WHERE NAME = ?",
		},
		{
			Columns: "WORKDEPT", From: "!!!", Where: "SALARY > ?",
			Binds:    []interface{}{int64(50000)},
			Distinct: true,
			Result:   "SELECT DISTINCT WORKDEPT FROM PAYROLL.EMPLOYEES WHERE SALARY > ?",
		},
		{
			Columns: "EMPNO", From: "!!! JOIN !Dept! D ON D.DEPTNO = !!!.WORKDEPT",
			Where:  "D.LOCATION = ?",
			Binds:  []interface{}{"TORONTO"},
			Result: "SELECT EMPNO FROM PAYROLL.EMPLOYEES JOIN PAYROLL.DEPTS D ON D.DEPTNO = PAYROLL.EMPLOYEES.WORKDEPT WHERE D.LOCATION = ?",
		},
	}

	for idx, result := range results {
		t.Run(fmt.Sprintf("case #%v", idx), func(t *testing.T) {
			b := newBuilder()
			var sql string
			var binds []interface{}
			var err error
			if result.Distinct {
				sql, binds, err = b.SelectDistinct(result.Columns, result.From, result.Where, result.Binds...)
			} else {
				sql, binds, err = b.Select(result.Columns, result.From, result.Where, result.Binds...)
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if sql != result.Result {
				t.Errorf("got %q, want %q", sql, result.Result)
			}
			if !reflect.DeepEqual(binds, result.Binds) {
				t.Errorf("got binds %v, want %v", binds, result.Binds)
			}
		})
	}
}

func TestSelectUnresolvedReference(t *testing.T) {
	b := newBuilder()
	if _, _, err := b.Select("EMPNO", "!!!", "EXISTS (SELECT 1 FROM !Nowhere!)"); err == nil {
		t.Error("expected an error for an unregistered table reference")
	}
}

func TestInsert(t *testing.T) {
	columns := []*schema.Column{
		{Name: "ID", SQLType: "INTEGER", Identity: true},
		{Name: "EMPNO", SQLType: "CHAR", Length: "6"},
		{Name: "NAME", SQLType: "CHAR", Length: "12"},
		{Name: "AGE", SQLType: "INTEGER", NoCreate: true},
	}
	values := map[string]interface{}{"EMPNO": "000010", "NAME": "HAAS"}

	b := newBuilder()
	sql, binds := b.Insert(columns, "ID", func(name string) interface{} { return values[name] })

	want := "INSERT INTO PAYROLL.EMPLOYEES (EMPNO, NAME) VALUES (?, ?)"
	if sql != want {
		t.Errorf("got %q, want %q", sql, want)
	}
	if !reflect.DeepEqual(binds, []interface{}{"000010", "HAAS"}) {
		t.Errorf("got binds %v", binds)
	}
}

func TestInsertNothingCreatable(t *testing.T) {
	columns := []*schema.Column{{Name: "ID", SQLType: "INTEGER", Identity: true}}

	b := newBuilder()
	sql, binds := b.Insert(columns, "ID", func(string) interface{} { return nil })
	if sql != "" || binds != nil {
		t.Errorf("expected no statement, got %q with %v", sql, binds)
	}
}

func TestUpdate(t *testing.T) {
	values := map[string]interface{}{"NAME": "THOMPSON", "SALARY": "41250.00", "EMPNO": "000020"}
	value := func(name string) interface{} { return values[name] }

	b := newBuilder()

	sql, binds, ok := b.Update("EMPNO", []string{"NAME", "SALARY"}, value, "000020")
	if !ok {
		t.Fatal("expected a statement")
	}
	want := "UPDATE PAYROLL.EMPLOYEES SET NAME = ?, SALARY = ? WHERE EMPNO IN ?"
	if sql != want {
		t.Errorf("got %q, want %q", sql, want)
	}
	if !reflect.DeepEqual(binds, []interface{}{"THOMPSON", "41250.00", "000020"}) {
		t.Errorf("got binds %v", binds)
	}
}

func TestUpdateNothingModified(t *testing.T) {
	b := newBuilder()

	// the primary column never travels through SET, so a dirty set holding
	// only the primary column builds nothing
	if _, _, ok := b.Update("EMPNO", []string{"EMPNO"}, func(string) interface{} { return nil }, "000020"); ok {
		t.Error("expected no statement for an empty modified set")
	}
	if _, _, ok := b.Update("EMPNO", nil, func(string) interface{} { return nil }, "000020"); ok {
		t.Error("expected no statement when nothing was modified")
	}
}

func TestDelete(t *testing.T) {
	b := newBuilder()

	sql, binds, ok := b.Delete("EMPNO", "000030")
	if !ok {
		t.Fatal("expected a statement")
	}
	if want := "DELETE FROM PAYROLL.EMPLOYEES WHERE EMPNO IN ?"; sql != want {
		t.Errorf("got %q, want %q", sql, want)
	}
	if !reflect.DeepEqual(binds, []interface{}{"000030"}) {
		t.Errorf("got binds %v", binds)
	}

	if _, _, ok := b.Delete("", "000030"); ok {
		t.Error("expected no statement for a primary-less table")
	}
}

func TestCreateTable(t *testing.T) {
	results := []struct {
		Columns []*schema.Column
		Primary string
		Result  string
	}{
		{
			Columns: []*schema.Column{
				{Name: "EMPNO", SQLType: "CHAR", Length: "6", Options: "NOT NULL", Primary: true},
				{Name: "NAME", SQLType: "CHAR", Length: "12"},
			},
			Primary: "EMPNO",
			Result:  "CREATE TABLE PAYROLL.EMPLOYEES (EMPNO CHAR(6) NOT NULL, NAME CHAR(12), PRIMARY KEY (EMPNO)) DATA CAPTURE NONE",
		},
		{
			// inferred last-column primary gets no PRIMARY KEY clause
			Columns: []*schema.Column{
				{Name: "A", SQLType: "INTEGER"},
				{Name: "B", SQLType: "INTEGER"},
			},
			Primary: "B",
			Result:  "CREATE TABLE PAYROLL.EMPLOYEES (A INTEGER, B INTEGER) DATA CAPTURE NONE",
		},
		{
			// BOOL pseudo-type rewrites to CHAR plus a CHECK clause
			Columns: []*schema.Column{
				{Name: "ACTIVE", SQLType: "BOOL", Options: "NOT NULL"},
			},
			Primary: "ACTIVE",
			Result:  "CREATE TABLE PAYROLL.EMPLOYEES (ACTIVE CHAR NOT NULL CHECK (ACTIVE IN ('Y','N'))) DATA CAPTURE NONE",
		},
		{
			// identity directive defaults when absent or the word "default"
			Columns: []*schema.Column{
				{Name: "ID", SQLType: "INTEGER", Options: "NOT NULL", Identity: true, IdentityOptions: "default"},
			},
			Primary: "ID",
			Result:  "CREATE TABLE PAYROLL.EMPLOYEES (ID INTEGER NOT NULL GENERATED ALWAYS AS IDENTITY (START WITH 0, INCREMENT BY 1, NO CACHE)) DATA CAPTURE NONE",
		},
		{
			// explicit identity directive passes through
			Columns: []*schema.Column{
				{Name: "ID", SQLType: "INTEGER", Identity: true, IdentityOptions: "START WITH 100, INCREMENT BY 10"},
			},
			Primary: "ID",
			Result:  "CREATE TABLE PAYROLL.EMPLOYEES (ID INTEGER GENERATED ALWAYS AS IDENTITY (START WITH 100, INCREMENT BY 10)) DATA CAPTURE NONE",
		},
		{
			// constraints precede foreign keys; both expand table references
			Columns: []*schema.Column{
				{Name: "WORKDEPT", SQLType: "CHAR", Length: "3",
					Constraints: []string{"CHK_DEPT CHECK (WORKDEPT <> '')"},
					ForeignKeys: []string{"!Dept! (DEPTNO)"}},
			},
			Primary: "WORKDEPT",
			Result:  "CREATE TABLE PAYROLL.EMPLOYEES (WORKDEPT CHAR(3), CONSTRAINT CHK_DEPT CHECK (WORKDEPT <> ''), FOREIGN KEY (WORKDEPT) REFERENCES PAYROLL.DEPTS (DEPTNO)) DATA CAPTURE NONE",
		},
	}

	for idx, result := range results {
		t.Run(fmt.Sprintf("case #%v", idx), func(t *testing.T) {
			b := newBuilder()
			sql, err := b.CreateTable(result.Columns, result.Primary)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if sql != result.Result {
				t.Errorf("got  %q\nwant %q", sql, result.Result)
			}
		})
	}
}

func TestAlterAdd(t *testing.T) {
	b := newBuilder()

	sql := b.AlterAdd(&schema.Column{Name: "BONUS", SQLType: "DECIMAL", Length: "9,2"})
	if want := "ALTER TABLE PAYROLL.EMPLOYEES ADD BONUS DECIMAL(9,2)"; sql != want {
		t.Errorf("got %q, want %q", sql, want)
	}
}
