package config

import (
	"fmt"
	"strings"
)

// ParseBool accepts exactly "true" or "false" (case-insensitive, trimmed).
// Anything else is rejected rather than silently treated as one of them.
func ParseBool(name, value string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "true":
		return true, nil
	case "false":
		return false, nil
	default:
		return false, fmt.Errorf("invalid value %q for --%s: must be \"true\" or \"false\"", value, name)
	}
}

// ParseCompileMode parses "strict" or "lenient".
func ParseCompileMode(value string) (CompileMode, error) {
	switch CompileMode(strings.ToLower(strings.TrimSpace(value))) {
	case CompileStrict:
		return CompileStrict, nil
	case CompileLenient:
		return CompileLenient, nil
	default:
		return "", fmt.Errorf("invalid compile mode %q: must be %q or %q", value, CompileStrict, CompileLenient)
	}
}
