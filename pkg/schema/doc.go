/*
Package schema decodes wire-level event envelopes into the closed, typed
event union of pkg/domain.

Transports (HTTP, WebSocket, MCP, journal replay) all deliver events as
loosely typed {type, data} maps. This package is the single place where
those maps are validated and mapped onto payload structs, so the reducer
only ever sees well-formed events.
*/
package schema
