// Package render turns a probe outcome and the rolling health label into the
// one-line status report printed each iteration.
//
// Line computation is pure and has no terminal dependency. Printer adds
// color: DOWN is red, UNHEALTHY yellow, UP green, and the outcome
// description is red or green depending on the current probe alone.
package render
