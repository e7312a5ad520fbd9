package logger

import (
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"github.com/tablegate/tablegate/utils"
)

// ErrRecordNotFound is matched by Trace implementations so lookups that
// legitimately miss can be kept out of the error stream.
var ErrRecordNotFound = errors.New("record not found")

// LogLevel log level
type LogLevel int

const (
	// Silent silent log level
	Silent LogLevel = iota + 1
	// Error error log level
	Error
	// Warn warn log level
	Warn
	// Info info log level
	Info
)

// Config logger config
type Config struct {
	SlowThreshold             time.Duration
	IgnoreRecordNotFoundError bool
	ParameterizedQueries      bool
	LogLevel                  LogLevel
}

// Interface logger interface
type Interface interface {
	LogMode(LogLevel) Interface
	Info(msg string, data ...interface{})
	Warn(msg string, data ...interface{})
	Error(msg string, data ...interface{})
	Trace(begin time.Time, fc func() (sql string, rowsAffected int64), err error)
}

// Writer log writer interface
type Writer interface {
	Printf(string, ...interface{})
}

var (
	// Discard logger will print any log to io.Discard
	Discard = New(log.New(io.Discard, "", log.LstdFlags), Config{})
	// Default is the stock writer logger at Warn level.
	Default = New(log.New(os.Stdout, "\r\n", log.LstdFlags), Config{
		SlowThreshold: 200 * time.Millisecond,
		LogLevel:      Warn,
	})
)

// New initializes a writer-backed logger.
func New(writer Writer, config Config) Interface {
	return &logger{Writer: writer, Config: config}
}

type logger struct {
	Writer
	Config
}

// LogMode log mode
func (l *logger) LogMode(level LogLevel) Interface {
	newlogger := *l
	newlogger.LogLevel = level
	return &newlogger
}

// Info print info
func (l *logger) Info(msg string, data ...interface{}) {
	if l.LogLevel >= Info {
		l.Printf("[info] "+msg+" %s", append(data, utils.FileWithLineNum())...)
	}
}

// Warn print warn messages
func (l *logger) Warn(msg string, data ...interface{}) {
	if l.LogLevel >= Warn {
		l.Printf("[warn] "+msg+" %s", append(data, utils.FileWithLineNum())...)
	}
}

// Error print error messages
func (l *logger) Error(msg string, data ...interface{}) {
	if l.LogLevel >= Error {
		l.Printf("[error] "+msg+" %s", append(data, utils.FileWithLineNum())...)
	}
}

// Trace print sql message
func (l *logger) Trace(begin time.Time, fc func() (string, int64), err error) {
	if l.LogLevel <= Silent {
		return
	}

	elapsed := time.Since(begin)
	switch {
	case err != nil && l.LogLevel >= Error && (!l.IgnoreRecordNotFoundError || !errors.Is(err, ErrRecordNotFound)):
		sql, rows := fc()
		l.Printf("%s [%.3fms] [rows:%v] %s error: %v", utils.FileWithLineNum(), float64(elapsed.Nanoseconds())/1e6, rows, sql, err)
	case l.SlowThreshold != 0 && elapsed > l.SlowThreshold && l.LogLevel >= Warn:
		sql, rows := fc()
		slowLog := fmt.Sprintf("SLOW SQL >= %v", l.SlowThreshold)
		l.Printf("%s [%.3fms] [rows:%v] %s %s", utils.FileWithLineNum(), float64(elapsed.Nanoseconds())/1e6, rows, slowLog, sql)
	case l.LogLevel == Info:
		sql, rows := fc()
		l.Printf("%s [%.3fms] [rows:%v] %s", utils.FileWithLineNum(), float64(elapsed.Nanoseconds())/1e6, rows, sql)
	}
}
