// Package routegraph builds an undirected airport graph from route records and
// answers point queries over it: reachability, shortest path, bounded sets of
// equally short paths, counts and a spanning forest.
//
// A Graph is immutable once built. An Engine holds no mutable state, so a
// single Engine may serve concurrent callers without locking.
package routegraph
