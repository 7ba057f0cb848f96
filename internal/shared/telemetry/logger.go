// Package telemetry writes one JSON object per log line to stdout.
package telemetry

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"sync/atomic"
	"time"
)

const service = "jobprep-web"

var levelRank = map[string]int32{"debug": 0, "info": 1, "warn": 2, "error": 3}

var minLevel atomic.Int32

func init() {
	if !SetLevel(os.Getenv("LOG_LEVEL")) {
		SetLevel("info")
	}
}

// SetLevel drops lines below level. Unknown levels are rejected.
func SetLevel(level string) bool {
	rank, ok := levelRank[strings.ToLower(strings.TrimSpace(level))]
	if !ok {
		return false
	}
	minLevel.Store(rank)
	return true
}

// Debug writes a debug-level line.
func Debug(msg string, fields map[string]any) {
	write("debug", msg, fields)
}

// Info writes an info-level line.
func Info(msg string, fields map[string]any) {
	write("info", msg, fields)
}

// Warn writes a warn-level line.
func Warn(msg string, fields map[string]any) {
	write("warn", msg, fields)
}

// Error writes an error-level line.
func Error(msg string, fields map[string]any) {
	write("error", msg, fields)
}

// Err is Error with err attached as the "error" field.
func Err(msg string, err error, fields map[string]any) {
	out := make(map[string]any, len(fields)+1)
	for k, v := range fields {
		out[k] = v
	}
	if err != nil {
		out["error"] = err.Error()
	}
	write("error", msg, out)
}

func write(level, msg string, fields map[string]any) {
	if levelRank[level] < minLevel.Load() {
		return
	}
	now := time.Now().UTC().Format(time.RFC3339)
	entry := make(map[string]any, len(fields)+4)
	for k, v := range fields {
		entry[k] = v
	}
	entry["ts"] = now
	entry["level"] = level
	entry["msg"] = msg
	entry["service"] = service
	data, err := json.Marshal(entry)
	if err != nil {
		fmt.Fprintf(os.Stdout, `{"ts":%q,"level":"error","msg":"logger marshal failed","service":%q,"err":%q}`+"\n", now, service, err.Error())
		return
	}
	fmt.Fprintln(os.Stdout, string(data))
}
