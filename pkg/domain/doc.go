/*
Package domain contains the core model of a Mosaic tiling session.

A session is a set of client devices (screens) that can be swiped together
into clusters sharing one logical canvas. The model is deliberately plain:
value types, JSON-serializable, no behavior beyond geometry helpers and
deep-copy snapshots. All state evolution lives in the reducer, which consumes
and produces these values without ever mutating a shared snapshot.
*/
package domain
