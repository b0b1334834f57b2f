// Package collector runs the background producers that feed the dashboard.
//
// Each collector is a goroutine that samples on its own interval and hands
// immutable snapshots to the UI over a channel. The interval can be changed
// at any time through a Mailbox; a collector adopts the newest value and
// restarts its wait without taking an extra sample.
//
// A collector stops when its context is cancelled or its interval source is
// closed, and closes its output channel so the consumer can tell that it is
// gone.
package collector
