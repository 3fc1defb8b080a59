package utilities

import (
	"fmt"
	"io"
	"log"
	"os"
	"runtime"
	"sync"

	"gopkg.in/natefinch/lumberjack.v2"
)

var (
	infoLog  *log.Logger
	warnLog  *log.Logger
	errorLog *log.Logger
	debugLog *log.Logger
	logOnce  sync.Once
)

// SetupLogging wires the leveled loggers to stdout/stderr and a rotating
// file under logDir. Safe to call more than once; only the first call wins.
func SetupLogging(logDir string) {
	logOnce.Do(func() {
		rotating := &lumberjack.Logger{
			Filename:   logDir + "/gamifyiq.log",
			MaxSize:    20, // megabytes
			MaxBackups: 5,
			MaxAge:     30, // days
			Compress:   true,
		}

		outWriter := io.MultiWriter(os.Stdout, rotating)
		errWriter := io.MultiWriter(os.Stderr, rotating)

		infoLog = log.New(outWriter, "INFO: ", log.Ldate|log.Ltime)
		warnLog = log.New(outWriter, "WARNING: ", log.Ldate|log.Ltime)
		errorLog = log.New(errWriter, "ERROR: ", log.Ldate|log.Ltime)
		debugLog = log.New(outWriter, "DEBUG: ", log.Ldate|log.Ltime)

		// Override Go's default log output as well.
		log.SetOutput(outWriter)
	})
}

func getCallerInfo() string {
	pc, _, _, ok := runtime.Caller(3)
	if !ok {
		return "unknown"
	}
	return runtime.FuncForPC(pc).Name()
}

func logf(l *log.Logger, format string, v ...interface{}) {
	if l == nil {
		// Logging not set up (tests); fall back to the default logger.
		log.Printf(format, v...)
		return
	}
	l.Printf("[%s] %s", getCallerInfo(), fmt.Sprintf(format, v...))
}

func Info(format string, v ...interface{}) {
	logf(infoLog, format, v...)
}

func Warn(format string, v ...interface{}) {
	logf(warnLog, format, v...)
}

func Error(format string, v ...interface{}) {
	logf(errorLog, format, v...)
}

func Debug(format string, v ...interface{}) {
	logf(debugLog, format, v...)
}
