// Package plugin manages the Lua key hook scripts named in the
// configuration.
//
// A Manager loads each script into its own lua.KeyHook and registers it
// with the dispatcher. Loading a new script list replaces the previous
// set, so a config reload picks up added, removed and edited scripts.
// A script that fails to load is reported and skipped; the others still
// run.
package plugin
