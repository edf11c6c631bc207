// Package orchestrator wires the contract → view → renderer sequence, giving
// hosts a single entry point that turns a form state into rendered output.
package orchestrator
