package luac

import (
	"github.com/Shopify/go-lua"
)

// CheckSyntax parses a Lua source file without running it.
// The parser follows Lua 5.2, so newer syntax is reported as an error.
func CheckSyntax(path string) error {
	state := lua.NewState()
	if err := lua.LoadFile(state, path, ""); err != nil {
		return &SyntaxError{File: path, Err: err}
	}
	state.Pop(1)
	return nil
}
