// Package broadcast carries session events between the stores of one
// process and, through a shared signal file, between CLI processes that use
// the same data directory.
//
// Events are typed (Kind) rather than a bare "something changed" ping, so a
// consumer can ignore what it does not care about. Delivery inside a process
// is synchronous and follows subscription order.
package broadcast
