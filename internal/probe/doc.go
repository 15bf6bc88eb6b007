// Package probe issues single HTTP GET requests against a target URL and
// classifies the result the way a liveness probe does: transport errors and
// 4xx/5xx responses are failures, everything else is a success.
package probe
