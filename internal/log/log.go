// Copyright (c) 2025 snipforge authors.
// SPDX-License-Identifier: Apache-2.0

package log

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/apex/log"
)

// InitLogger sets up Apex with a custom handler and a log level from the
// SNIPCTL_LOG env variable.
func InitLogger() {
	level := strings.ToUpper(os.Getenv("SNIPCTL_LOG"))
	if level == "" {
		level = "ERROR"
	}
	log.SetHandler(&CustomHandler{})
	log.SetLevelFromString(level)
}

// CustomHandler formats log messages and writes to stderr so command
// output on stdout stays clean.
type CustomHandler struct{}

// HandleLog implements the log.Handler interface
func (h *CustomHandler) HandleLog(e *log.Entry) error {
	timestamp := time.Now().Format("2006-01-02 15:04:05")
	level := strings.ToUpper(e.Level.String())
	message := e.Message

	var fields strings.Builder
	for _, f := range e.Fields.Names() {
		fmt.Fprintf(&fields, " %s=%v", f, e.Fields.Get(f))
	}

	fmt.Fprintf(os.Stderr, "%s %.1s %s%s\n", timestamp, level, message, fields.String())
	return nil
}
