// Package healthcheck implements the liveness probe loop. It probes one
// target at a fixed delay, tracks consecutive failures, and prints one status
// line per probe.
package healthcheck
