// Package workflow tracks which named steps of a directed acyclic
// graph are unblocked, records completion and failure, validates the
// graph's structure, and estimates total duration via critical-path
// analysis.
//
// The engine decides, it does not execute: callers repeatedly ask for
// ready steps, run them externally, and report the outcome back. A
// failed step fails the whole execution fast, with no compensation of
// previously completed steps.
package workflow
