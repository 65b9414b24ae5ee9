// Package cache provides a small in-memory TTL cache for GET responses.
//
// Keys are derived from the request method, path, and query. Write
// operations invalidate by path prefix so a created or deleted post
// drops every cached /posts listing. State is per-process and never
// persisted.
package cache
