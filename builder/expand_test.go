package builder_test

import (
	"testing"

	"github.com/tablegate/tablegate/builder"
)

func TestExpand(t *testing.T) {
	resolver := staticResolver{"Dept": "PAYROLL.DEPTS", "Project": "PAYROLL.PROJECTS"}

	tests := []struct {
		fragment string
		want     string
	}{
		{"WORKDEPT = ?", "WORKDEPT = ?"},
		{"!!!.EMPNO = ?", "PAYROLL.EMPLOYEES.EMPNO = ?"},
		{"EXISTS (SELECT 1 FROM !Dept! D WHERE D.DEPTNO = !!!.WORKDEPT)",
			"EXISTS (SELECT 1 FROM PAYROLL.DEPTS D WHERE D.DEPTNO = PAYROLL.EMPLOYEES.WORKDEPT)"},
		{"!Dept! (DEPTNO)", "PAYROLL.DEPTS (DEPTNO)"},
		{"!Dept!, !Project!", "PAYROLL.DEPTS, PAYROLL.PROJECTS"},
	}

	for _, tt := range tests {
		got, err := builder.Expand(tt.fragment, "PAYROLL.EMPLOYEES", resolver)
		if err != nil {
			t.Fatalf("Expand(%q): %v", tt.fragment, err)
		}
		if got != tt.want {
			t.Errorf("Expand(%q) = %q, want %q", tt.fragment, got, tt.want)
		}
	}
}

func TestExpandUnresolved(t *testing.T) {
	if _, err := builder.Expand("!Missing! = ?", "PAYROLL.EMPLOYEES", staticResolver{}); err == nil {
		t.Error("expected an error for an unregistered name")
	}
	if _, err := builder.Expand("!Dept! = ?", "PAYROLL.EMPLOYEES", nil); err == nil {
		t.Error("expected an error with no resolver")
	}
}
