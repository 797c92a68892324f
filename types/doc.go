// Package types provides core types used across the agenteval library.
// This package has ZERO dependencies on other agenteval packages to avoid
// circular imports. All other packages should import types from here.
//
// The package models the boundary artifacts of agent evaluation:
//
//   - TraceEvent: one raw event emitted by an agent runtime (text,
//     function call, function result, built-in capability usage).
//   - ContentItem / CanonicalMessage: the normalized, evaluator-ready
//     representation of one trace step.
//   - ToolDefinition: a declared callable capability with its parameter
//     schema and strictness flag.
//   - EvaluationRecord: the unit submitted for evaluation, aggregating
//     query, response messages, context, tool definitions, observed tool
//     calls and an optional ground truth.
//
// All values are created once and treated as immutable afterwards; a new
// evaluation run re-creates records rather than mutating existing ones.
package types
