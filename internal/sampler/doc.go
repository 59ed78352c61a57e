// Package sampler tracks the peak total resident memory observed while a
// supervised command runs.
//
// Peak is the single piece of shared mutable state in the program: one
// megabyte value behind a mutex, written only by the Sampler goroutine and
// read by the supervisor once the supervised process tree has exited. It is
// constructed per run, never held in package state, so repeated runs inside
// one process do not leak observations into each other.
package sampler
