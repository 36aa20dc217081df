/*
Package session orchestrates concurrent access to tiling sessions.

The reducer is single threaded by contract: one event per session processed
to completion before the next. The Manager enforces that contract for hosts
with many concurrent transports (HTTP handlers, websockets, MCP tools) by
serializing load-reduce-save cycles per session id, with optional
distributed locking for multi-replica deployments.
*/
package session
