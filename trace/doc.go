// Package trace converts raw agent execution traces into canonical,
// evaluator-ready message sequences.
//
// Normalization is a pure transformation: it never mutates its input,
// keeps no state between calls, and reports every structural anomaly as a
// warning on the result instead of failing, so that partial or malformed
// traces still produce a best-effort record usable for debugging. Distinct
// traces may be normalized concurrently; within one trace event order is
// significant, since later events reference call ids assigned by earlier
// ones.
package trace
