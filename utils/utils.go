package utils

import (
	"path/filepath"
	"runtime"
	"strconv"
	"strings"
)

var sourceDir string

func init() {
	_, file, _, _ := runtime.Caller(0)
	// compatible solution to get the package directory with Go 1.13+
	sourceDir = sourceDirFromFile(file)
}

func sourceDirFromFile(file string) string {
	dir := filepath.Dir(filepath.Dir(file))
	return filepath.ToSlash(dir) + "/"
}

// FileWithLineNum returns the file name and line number of the first caller
// outside this module, so log entries point at application code.
func FileWithLineNum() string {
	for i := 2; i < 15; i++ {
		_, file, line, ok := runtime.Caller(i)
		if ok && (!strings.HasPrefix(file, sourceDir) || strings.HasSuffix(file, "_test.go")) {
			return file + ":" + strconv.FormatInt(int64(line), 10)
		}
	}
	return ""
}

// Upper uppercases an identifier, trimming surrounding space first.
func Upper(name string) string {
	return strings.ToUpper(strings.TrimSpace(name))
}
