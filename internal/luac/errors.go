package luac

import "fmt"

// CompileError reports a script the compiler rejected or could not process.
type CompileError struct {
	File   string
	Output string
	Err    error
}

func (e *CompileError) Error() string {
	if e.Output != "" {
		return fmt.Sprintf("failed to compile %s: %v: %s", e.File, e.Err, e.Output)
	}
	return fmt.Sprintf("failed to compile %s: %v", e.File, e.Err)
}

func (e *CompileError) Unwrap() error { return e.Err }

// SyntaxError reports a script that does not parse.
type SyntaxError struct {
	File string
	Err  error
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("syntax error in %s: %v", e.File, e.Err)
}

func (e *SyntaxError) Unwrap() error { return e.Err }
