// Package history owns the long-lived, bounded per-entity time series that
// back the dashboard.
//
// A Store is fed one snapshot at a time. Each reconcile pass matches
// snapshot items to existing entities by key, creating or retiring entities
// as needed. Disks and network interfaces that disappear are pruned after a
// full pass. Processes that disappear are deleted outright, since PIDs are
// reused by the OS.
//
// A Store is not safe for concurrent use; the dashboard touches it only from
// its event loop.
package history
