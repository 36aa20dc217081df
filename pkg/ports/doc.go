/*
Package ports defines the driven ports (interfaces) for the Mosaic engine.

These interfaces decouple the reducer core from external implementations,
allowing the engine to work with various snapshot stores, clocks, locking
backends, and host-supplied tiling policies.

# Key Interfaces

  - Policy: the host's lifecycle hooks for opaque client/cluster payloads.
  - Transitioner: the event-to-snapshot transition function.
  - SnapshotStore: persistence of session snapshots.
  - Clock: injectable wall-clock for swipe coincidence windows.
  - DistributedLocker: distributed locking for concurrent session access.
*/
package ports
