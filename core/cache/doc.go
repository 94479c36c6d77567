// Package cache provides a small in-process TTL cache.
//
// It backs the read-through product lookup: get(key) returns a hit only while
// the entry is fresh, and writers invalidate the key when they mutate the row
// the cached value was derived from. The cache is a capability passed into
// constructors, never a package-level singleton.
package cache
