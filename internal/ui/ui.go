package ui

import (
	"fmt"
)

// Colors for terminal output
const (
	Reset  = "\033[0m"
	Red    = "\033[31m"
	Green  = "\033[32m"
	Yellow = "\033[33m"
	Cyan   = "\033[36m"
	White  = "\033[97m"
	Gray   = "\033[90m"
)

// Success prints a success message
func Success(format string, args ...interface{}) {
	fmt.Printf(Green+"✓ "+Reset+format+"\n", args...)
}

// Error prints an error message
func Error(format string, args ...interface{}) {
	fmt.Printf(Red+"✗ "+Reset+format+"\n", args...)
}

// Warning prints a warning message
func Warning(format string, args ...interface{}) {
	fmt.Printf(Yellow+"! "+Reset+format+"\n", args...)
}

// Info prints an info message
func Info(format string, args ...interface{}) {
	fmt.Printf(Cyan+"→ "+Reset+format+"\n", args...)
}

// Plain prints a progress line without decoration. Deploy phase messages go
// through here so scripts parsing the output see them verbatim.
func Plain(message string) {
	fmt.Println(message)
}
