// Package gateway runs the forced-command pipeline: capability table
// load, command validation, access resolution, and server execution.
//
// The pipeline is strictly linear and fails closed at every stage.
// The capability table is loaded fresh on every invocation and passed
// explicitly through the stages; there is no ambient state, no retry,
// and no recovery — one SSH session, one decision, one process.
package gateway
