// Package tasks owns the developer task table and its dispatcher.
//
// Ownership boundary:
// - command shape and the embedded, build-time command table
// - read-only command registry
// - name to invocation dispatch, including trailing argument forwarding
package tasks
