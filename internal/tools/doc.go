// Package tools provides the process-execution primitives used by the task
// dispatcher.
//
// Ownership boundary:
// - child process spawning and stdio wiring
//
// - exit status mapping
package tools
