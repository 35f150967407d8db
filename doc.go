/*
Copyright © 2026 Rezzed AI.

Released under MIT license.
*/

// Package rategate implements a per-key sliding-window request throttle
// with a pluggable persistence backend.
//
// The Gate decides, for an arbitrary string key (user ID, IP address, API token),
// whether a new event is admissible under a configured limit per window,
// and records admitted events so that future decisions stay accurate.
// Admissibility is computed from the exact timestamps of prior events falling
// within the last window relative to the current instant, so the window
// continuously slides instead of resetting at fixed clock boundaries.
//
// All per-key state lives in a Backend. The package ships a process-local
// InMemoryBackend; the redistore subpackage provides a Redis-backed one,
// and callers may supply their own implementation.
//
// Concurrency: the Gate itself performs no locking and issues Backend calls
// sequentially within one operation. Hit is a read-modify-write over the
// Backend, so strict exactness under concurrent Hit calls for the same key
// requires either external serialization of those calls or a Backend that
// makes the read-modify-write atomic per key. The InMemoryBackend guards
// each individual call but not the pair.
package rategate
