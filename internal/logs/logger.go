package logs

import (
	"encoding/json"
	"log"
	"os"
	"time"
)

// Niveaux de sévérité acceptés par LogJSON.
const (
	LevelDebug = "DEBUG"
	LevelInfo  = "INFO"
	LevelWarn  = "WARN"
	LevelError = "ERROR"
	LevelFatal = "FATAL"
)

var logger = log.New(os.Stdout, "", 0)

// Verbose active les logs DEBUG et les détails d'erreurs (hors production).
var Verbose bool

func LogJSON(level, message string, fields map[string]interface{}) {
	if level == LevelDebug && !Verbose {
		return
	}
	logEntry := map[string]interface{}{
		"severity": level,
		"message":  message,
		"time":     time.Now().Format(time.RFC3339),
	}
	for k, v := range fields {
		logEntry[k] = v
	}
	jsonLog, _ := json.Marshal(logEntry)
	logger.Println(string(jsonLog))
}
