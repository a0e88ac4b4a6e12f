// Package harness provides a scenario-driven conformance harness for the
// graph editor and the CLIF translator.
//
// A scenario is a YAML script of editor operations with symbolic entity
// names, per-step error expectations, and an expected final CLIF rendering.
// The harness executes the script against a fresh editor with a sequential
// ID generator, so every run of a scenario produces byte-identical output.
// The resulting step trace is compared against golden files via goldie.
package harness
