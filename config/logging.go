package config

import (
	"io"
	"log"
	"os"
	"path/filepath"
)

const logDir = "logs"

// LogWriter receives application and SQL logs. It starts as stdout and
// gains the log file once InitLogging has run.
var LogWriter io.Writer = os.Stdout

// LogFilePath returns where the service writes its log file.
func LogFilePath() string {
	return filepath.Join(logDir, "dev-eval-api.log")
}

// InitLogging routes the standard logger to stdout and the log file.
// When the file cannot be prepared the service keeps running with
// stdout only.
func InitLogging() {
	if err := os.MkdirAll(logDir, os.ModePerm); err != nil {
		log.Printf("Warning: logging to stdout only, cannot create %s: %v", logDir, err)
		return
	}

	logFile, err := os.OpenFile(LogFilePath(), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		log.Printf("Warning: logging to stdout only, cannot open %s: %v", LogFilePath(), err)
		return
	}

	LogWriter = io.MultiWriter(os.Stdout, logFile)
	log.SetOutput(LogWriter)
}
