// Package session binds the editing engine to one visible editing surface.
//
// A Session is mounted when the surface appears and unmounted when it goes
// away; the key subscription it holds lives exactly that long. Each key is
// dispatched against the latest state: the pending commit if one is
// waiting, otherwise what the surface shows. A handled result is not
// written to the surface directly. It becomes a Commit that the host's
// Scheduler runs after its own render pass, so the host cannot overwrite
// the caret after the engine restored it. When several commits are queued
// before a render, only the newest is applied.
package session
