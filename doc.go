// Package medtriage is a triage decision engine for medical chat
// applications. It combines three stages behind one facade: an
// emergency keyword scanner that short-circuits everything else, a
// guided symptom-checker that walks a weighted decision tree across
// stateful sessions, and a fallback free-text pipeline doing lexicon
// entity extraction and naive-Bayes intent classification.
//
// It produces triage guidance, not diagnoses; every final assessment
// carries the medical disclaimer verbatim.
package medtriage

// Version is the library version, reported by the CLI and the MCP
// handshake.
const Version = "0.1.0"
