// Package lua runs user key hooks written in Lua.
//
// A script is loaded into its own sandboxed gopher-lua State with only the
// base, table, string and math libraries. dofile, loadfile and load are
// removed, and require resolves only the built-in libraries and the
// inkwell module.
//
// # Hooks
//
// A script may define two global functions:
//
//	function on_key(keys, text, start, finish, action)
//	    -- return false to cancel the dispatch
//	end
//
//	function on_edit(action, text, start, finish)
//	    -- observe a handled edit
//	end
//
// KeyHook adapts a script to the dispatcher's pre and post hooks:
//
//	h, err := lua.LoadKeyHook("hooks.lua", lua.WithLogger(logger))
//	if err != nil {
//	    return err
//	}
//	system.RegisterHook(h)
//
// # Limits
//
// Each call gets a deadline (WithExecutionTimeout), which stops runaway
// loops. The instruction limit (WithInstructionLimit) bounds calls into
// the inkwell module during one hook invocation.
package lua
