/*
Package domain holds the core types of the triage engine: the immutable
decision-tree definition, per-session walk state, final assessment
results, and the entity/classification types shared by the text
pipeline.

Types here carry no behavior beyond their own invariants; the engines in
internal/ operate on them.
*/
package domain
