package logger

import (
	"fmt"
	"strings"
	"time"
	"unicode"
)

func isPrintable(s string) bool {
	for _, r := range s {
		if !unicode.IsPrint(r) {
			return false
		}
	}
	return true
}

// ExplainSQL renders bind values into a statement's `?` placeholders for
// trace output. The result is for humans only; execution always uses the
// parameterized form.
func ExplainSQL(sql string, vars ...interface{}) string {
	for _, v := range vars {
		var rendered string
		switch v := v.(type) {
		case bool:
			rendered = fmt.Sprint(v)
		case time.Time:
			rendered = "'" + v.Format("2006-01-02 15:04:05") + "'"
		case *time.Time:
			if v == nil {
				rendered = "NULL"
			} else {
				rendered = "'" + v.Format("2006-01-02 15:04:05") + "'"
			}
		case []byte:
			if isPrintable(string(v)) {
				rendered = "'" + strings.ReplaceAll(string(v), "'", "\\'") + "'"
			} else {
				rendered = "'<binary>'"
			}
		case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
			rendered = fmt.Sprintf("%d", v)
		case float32, float64:
			rendered = fmt.Sprintf("%.6f", v)
		case string:
			rendered = "'" + strings.ReplaceAll(v, "'", "\\'") + "'"
		default:
			if v == nil {
				rendered = "NULL"
			} else {
				rendered = "'" + strings.ReplaceAll(fmt.Sprint(v), "'", "\\'") + "'"
			}
		}
		sql = strings.Replace(sql, "?", rendered, 1)
	}
	return sql
}
